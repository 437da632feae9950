package bunstore

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/uptrace/bun"

	"github.com/rallykit/rallybot/pkg/domain/model"
	"github.com/rallykit/rallybot/pkg/domain/types"
)

type participantRepo struct {
	db bun.IDB
}

func (r *participantRepo) Get(ctx context.Context, userID types.UserID, activityID types.ActivityID) (*model.Participant, error) {
	row := new(participantRow)
	err := r.db.NewSelect().Model(row).
		Where("p.user_id = ?", string(userID)).
		Where("p.activity_id = ?", int64(activityID)).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, goerr.Wrap(ErrNotFound, "participant not found",
			goerr.V("user_id", userID), goerr.V("activity_id", activityID))
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to select participant",
			goerr.V("user_id", userID), goerr.V("activity_id", activityID))
	}
	return row.toModel(), nil
}

// Upsert inserts the response row or, when a concurrent or earlier
// writer won the insert, updates it in place. This is what keeps the
// (user, activity) pair unique under concurrent responds.
func (r *participantRepo) Upsert(ctx context.Context, p *model.Participant) error {
	row := toParticipantRow(p)

	_, err := r.db.NewInsert().Model(row).
		On("CONFLICT (user_id, activity_id) DO UPDATE").
		Set("reported_at = EXCLUDED.reported_at").
		Set("accepted = EXCLUDED.accepted").
		Exec(ctx)
	if err != nil {
		return goerr.Wrap(err, "failed to upsert participant",
			goerr.V("user_id", p.UserID), goerr.V("activity_id", p.ActivityID))
	}
	return nil
}

func (r *participantRepo) ListByActivity(ctx context.Context, activityID types.ActivityID) ([]*model.Participant, error) {
	var rows []participantRow
	err := r.db.NewSelect().Model(&rows).
		Where("p.activity_id = ?", int64(activityID)).
		Order("user_id ASC").
		Scan(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list participants", goerr.V("activity_id", activityID))
	}

	parts := make([]*model.Participant, 0, len(rows))
	for i := range rows {
		parts = append(parts, rows[i].toModel())
	}
	return parts, nil
}

func (r *participantRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	res, err := r.db.NewDelete().Model((*participantRow)(nil)).
		Where("reported_at < ?", cutoff).
		Exec(ctx)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to purge stale participants")
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, goerr.Wrap(err, "failed to read affected rows")
	}
	return int(affected), nil
}

func (r *participantRepo) CountOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	count, err := r.db.NewSelect().Model((*participantRow)(nil)).
		Where("reported_at < ?", cutoff).
		Count(ctx)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to count stale participants")
	}
	return count, nil
}
