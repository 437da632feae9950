package interfaces

import (
	"context"
	"time"

	"github.com/rallykit/rallybot/pkg/domain/model"
	"github.com/rallykit/rallybot/pkg/domain/types"
)

// Repository defines the interface for data persistence. InTx runs fn
// against a transactional view of the same repository: every read and
// write inside fn commits atomically, and any error or panic rolls the
// whole unit of work back.
type Repository interface {
	Users() UserRepository
	Groups() GroupRepository
	Activities() ActivityRepository
	Subscriptions() SubscriptionRepository
	Participants() ParticipantRepository

	InTx(ctx context.Context, fn func(ctx context.Context, tx Repository) error) error
	Close() error
}

// UserRepository persists platform users
type UserRepository interface {
	Get(ctx context.Context, id types.UserID) (*model.User, error)
	GetByLogin(ctx context.Context, login string) (*model.User, error)
	ListByIDs(ctx context.Context, ids []types.UserID) ([]*model.User, error)
	Upsert(ctx context.Context, user *model.User) error
}

// GroupRepository persists non-private chats
type GroupRepository interface {
	Get(ctx context.Context, id types.ChatID) (*model.Group, error)
	Upsert(ctx context.Context, group *model.Group) error
}

// ActivityRepository persists named activities. Delete cascades to the
// activity's subscriptions and participants.
type ActivityRepository interface {
	Create(ctx context.Context, activity *model.Activity) (*model.Activity, error)
	Get(ctx context.Context, id types.ActivityID) (*model.Activity, error)
	GetByName(ctx context.Context, name string) (*model.Activity, error)
	List(ctx context.Context) ([]*model.Activity, error)
	Delete(ctx context.Context, id types.ActivityID) error
}

// SubscriptionRepository persists (user, activity) subscription pairs.
// Put and Delete are idempotent set-membership toggles.
type SubscriptionRepository interface {
	Put(ctx context.Context, sub *model.Subscription) error
	Delete(ctx context.Context, userID types.UserID, activityID types.ActivityID) error
	ListByActivity(ctx context.Context, activityID types.ActivityID) ([]*model.Subscription, error)
	ListByUser(ctx context.Context, userID types.UserID) ([]*model.Subscription, error)
}

// ParticipantRepository persists current response states. Upsert keeps
// at most one row per (user, activity) pair; a concurrent duplicate
// insert resolves by one writer winning and the other updating.
type ParticipantRepository interface {
	Get(ctx context.Context, userID types.UserID, activityID types.ActivityID) (*model.Participant, error)
	Upsert(ctx context.Context, p *model.Participant) error
	ListByActivity(ctx context.Context, activityID types.ActivityID) ([]*model.Participant, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error)
	CountOlderThan(ctx context.Context, cutoff time.Time) (int, error)
}
