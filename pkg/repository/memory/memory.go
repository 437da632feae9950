package memory

import (
	"context"
	"sync"

	"github.com/rallykit/rallybot/pkg/domain/interfaces"
)

// ErrNotFound is returned when a requested record does not exist
var ErrNotFound = interfaces.ErrNotFound

// Memory is an in-memory repository for development and tests. It
// honors the same transactional contract as the durable backend: InTx
// serializes units of work on a store-wide lock and rolls the state
// back on error or panic.
type Memory struct {
	// mu is nil for the transactional view handed to InTx callbacks;
	// the outer Memory holds the lock for the whole transaction.
	mu    *sync.RWMutex
	state *state
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		mu:    &sync.RWMutex{},
		state: newState(),
	}
}

func (m *Memory) Users() interfaces.UserRepository {
	return &userRepo{m}
}

func (m *Memory) Groups() interfaces.GroupRepository {
	return &groupRepo{m}
}

func (m *Memory) Activities() interfaces.ActivityRepository {
	return &activityRepo{m}
}

func (m *Memory) Subscriptions() interfaces.SubscriptionRepository {
	return &subscriptionRepo{m}
}

func (m *Memory) Participants() interfaces.ParticipantRepository {
	return &participantRepo{m}
}

// InTx runs fn against an unlocked view of the store while holding the
// store-wide lock. On error or panic the pre-transaction snapshot is
// restored, so no partial writes survive.
func (m *Memory) InTx(ctx context.Context, fn func(ctx context.Context, tx interfaces.Repository) error) (err error) {
	if m.mu == nil {
		// Already inside a transaction; join it
		return fn(ctx, m)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	snapshot := m.state.clone()
	tx := &Memory{state: m.state}

	defer func() {
		if r := recover(); r != nil {
			*m.state = *snapshot
			panic(r)
		}
		if err != nil {
			*m.state = *snapshot
		}
	}()

	err = fn(ctx, tx)
	return err
}

func (m *Memory) Close() error {
	return nil
}

// rlock acquires the read lock unless running inside a transaction.
// It returns the matching unlock function.
func (m *Memory) rlock() func() {
	if m.mu == nil {
		return func() {}
	}
	m.mu.RLock()
	return m.mu.RUnlock
}

// lock acquires the write lock unless running inside a transaction
func (m *Memory) lock() func() {
	if m.mu == nil {
		return func() {}
	}
	m.mu.Lock()
	return m.mu.Unlock
}
