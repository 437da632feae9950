package memory

import (
	"context"
	"sort"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/rallykit/rallybot/pkg/domain/model"
	"github.com/rallykit/rallybot/pkg/domain/types"
)

type participantRepo struct {
	m *Memory
}

func (r *participantRepo) Get(ctx context.Context, userID types.UserID, activityID types.ActivityID) (*model.Participant, error) {
	defer r.m.rlock()()

	p, exists := r.m.state.participants[pairKey{userID: userID, activityID: activityID}]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "participant not found",
			goerr.V("user_id", userID), goerr.V("activity_id", activityID))
	}
	return p.Clone(), nil
}

func (r *participantRepo) Upsert(ctx context.Context, p *model.Participant) error {
	defer r.m.lock()()

	r.m.state.participants[pairKey{userID: p.UserID, activityID: p.ActivityID}] = p.Clone()
	return nil
}

func (r *participantRepo) ListByActivity(ctx context.Context, activityID types.ActivityID) ([]*model.Participant, error) {
	defer r.m.rlock()()

	var parts []*model.Participant
	for key, p := range r.m.state.participants {
		if key.activityID == activityID {
			parts = append(parts, p.Clone())
		}
	}
	sort.Slice(parts, func(i, j int) bool {
		return parts[i].UserID < parts[j].UserID
	})
	return parts, nil
}

func (r *participantRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	defer r.m.lock()()

	removed := 0
	for key, p := range r.m.state.participants {
		if p.Stale(cutoff) {
			delete(r.m.state.participants, key)
			removed++
		}
	}
	return removed, nil
}

func (r *participantRepo) CountOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	defer r.m.rlock()()

	count := 0
	for _, p := range r.m.state.participants {
		if p.Stale(cutoff) {
			count++
		}
	}
	return count, nil
}
