package bunstore

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/uptrace/bun"

	"github.com/rallykit/rallybot/pkg/domain/model"
	"github.com/rallykit/rallybot/pkg/domain/types"
)

type subscriptionRepo struct {
	db bun.IDB
}

func (r *subscriptionRepo) Put(ctx context.Context, sub *model.Subscription) error {
	row := &subscriptionRow{
		UserID:     string(sub.UserID),
		ActivityID: int64(sub.ActivityID),
		CreatedAt:  time.Now().UTC(),
	}

	_, err := r.db.NewInsert().Model(row).
		On("CONFLICT (user_id, activity_id) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return goerr.Wrap(err, "failed to put subscription",
			goerr.V("user_id", sub.UserID), goerr.V("activity_id", sub.ActivityID))
	}
	return nil
}

func (r *subscriptionRepo) Delete(ctx context.Context, userID types.UserID, activityID types.ActivityID) error {
	_, err := r.db.NewDelete().Model((*subscriptionRow)(nil)).
		Where("user_id = ?", string(userID)).
		Where("activity_id = ?", int64(activityID)).
		Exec(ctx)
	if err != nil {
		return goerr.Wrap(err, "failed to delete subscription",
			goerr.V("user_id", userID), goerr.V("activity_id", activityID))
	}
	return nil
}

func (r *subscriptionRepo) ListByActivity(ctx context.Context, activityID types.ActivityID) ([]*model.Subscription, error) {
	var rows []subscriptionRow
	err := r.db.NewSelect().Model(&rows).
		Where("s.activity_id = ?", int64(activityID)).
		Order("user_id ASC").
		Scan(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list subscriptions", goerr.V("activity_id", activityID))
	}

	subs := make([]*model.Subscription, 0, len(rows))
	for i := range rows {
		subs = append(subs, rows[i].toModel())
	}
	return subs, nil
}

func (r *subscriptionRepo) ListByUser(ctx context.Context, userID types.UserID) ([]*model.Subscription, error) {
	var rows []subscriptionRow
	err := r.db.NewSelect().Model(&rows).
		Where("s.user_id = ?", string(userID)).
		Order("activity_id ASC").
		Scan(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list subscriptions", goerr.V("user_id", userID))
	}

	subs := make([]*model.Subscription, 0, len(rows))
	for i := range rows {
		subs = append(subs, rows[i].toModel())
	}
	return subs, nil
}
