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

type activityRepo struct {
	db bun.IDB
}

func (r *activityRepo) Create(ctx context.Context, activity *model.Activity) (*model.Activity, error) {
	exists, err := r.db.NewSelect().Model((*activityRow)(nil)).
		Where("a.name = ?", activity.Name).
		Exists(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to check activity name", goerr.V("name", activity.Name))
	}
	if exists {
		return nil, goerr.Wrap(ErrDuplicateName, "activity already exists", goerr.V("name", activity.Name))
	}

	row := toActivityRow(activity)
	row.ID = 0
	row.CreatedAt = time.Now().UTC()

	// The unique index on name backstops concurrent creates that both
	// pass the exists check.
	if _, err := r.db.NewInsert().Model(row).Exec(ctx); err != nil {
		return nil, goerr.Wrap(err, "failed to insert activity", goerr.V("name", activity.Name))
	}
	return row.toModel(), nil
}

func (r *activityRepo) Get(ctx context.Context, id types.ActivityID) (*model.Activity, error) {
	row := new(activityRow)
	err := r.db.NewSelect().Model(row).Where("a.id = ?", int64(id)).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, goerr.Wrap(ErrNotFound, "activity not found", goerr.V("id", id))
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to select activity", goerr.V("id", id))
	}
	return row.toModel(), nil
}

func (r *activityRepo) GetByName(ctx context.Context, name string) (*model.Activity, error) {
	row := new(activityRow)
	err := r.db.NewSelect().Model(row).Where("a.name = ?", name).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, goerr.Wrap(ErrNotFound, "activity not found", goerr.V("name", name))
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to select activity by name", goerr.V("name", name))
	}
	return row.toModel(), nil
}

func (r *activityRepo) List(ctx context.Context) ([]*model.Activity, error) {
	var rows []activityRow
	if err := r.db.NewSelect().Model(&rows).Order("name ASC").Scan(ctx); err != nil {
		return nil, goerr.Wrap(err, "failed to list activities")
	}

	activities := make([]*model.Activity, 0, len(rows))
	for i := range rows {
		activities = append(activities, rows[i].toModel())
	}
	return activities, nil
}

func (r *activityRepo) Delete(ctx context.Context, id types.ActivityID) error {
	res, err := r.db.NewDelete().Model((*activityRow)(nil)).
		Where("id = ?", int64(id)).
		Exec(ctx)
	if err != nil {
		return goerr.Wrap(err, "failed to delete activity", goerr.V("id", id))
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return goerr.Wrap(err, "failed to read affected rows")
	}
	if affected == 0 {
		return goerr.Wrap(ErrNotFound, "activity not found", goerr.V("id", id))
	}
	// Subscriptions and participants go with the activity via
	// ON DELETE CASCADE.
	return nil
}
