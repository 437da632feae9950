package memory

import (
	"context"
	"sort"
	"time"

	"github.com/rallykit/rallybot/pkg/domain/model"
	"github.com/rallykit/rallybot/pkg/domain/types"
)

type subscriptionRepo struct {
	m *Memory
}

func (r *subscriptionRepo) Put(ctx context.Context, sub *model.Subscription) error {
	defer r.m.lock()()

	key := pairKey{userID: sub.UserID, activityID: sub.ActivityID}
	if _, exists := r.m.state.subscriptions[key]; exists {
		return nil
	}

	stored := *sub
	stored.CreatedAt = time.Now().UTC()
	r.m.state.subscriptions[key] = &stored
	return nil
}

func (r *subscriptionRepo) Delete(ctx context.Context, userID types.UserID, activityID types.ActivityID) error {
	defer r.m.lock()()

	delete(r.m.state.subscriptions, pairKey{userID: userID, activityID: activityID})
	return nil
}

func (r *subscriptionRepo) ListByActivity(ctx context.Context, activityID types.ActivityID) ([]*model.Subscription, error) {
	defer r.m.rlock()()

	var subs []*model.Subscription
	for key, sub := range r.m.state.subscriptions {
		if key.activityID == activityID {
			cp := *sub
			subs = append(subs, &cp)
		}
	}
	sortSubscriptions(subs)
	return subs, nil
}

func (r *subscriptionRepo) ListByUser(ctx context.Context, userID types.UserID) ([]*model.Subscription, error) {
	defer r.m.rlock()()

	var subs []*model.Subscription
	for key, sub := range r.m.state.subscriptions {
		if key.userID == userID {
			cp := *sub
			subs = append(subs, &cp)
		}
	}
	sortSubscriptions(subs)
	return subs, nil
}

func sortSubscriptions(subs []*model.Subscription) {
	sort.Slice(subs, func(i, j int) bool {
		if subs[i].ActivityID != subs[j].ActivityID {
			return subs[i].ActivityID < subs[j].ActivityID
		}
		return subs[i].UserID < subs[j].UserID
	})
}
