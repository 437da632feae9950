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

type groupRepo struct {
	db bun.IDB
}

func (r *groupRepo) Get(ctx context.Context, id types.ChatID) (*model.Group, error) {
	row := new(groupRow)
	err := r.db.NewSelect().Model(row).Where("g.id = ?", string(id)).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, goerr.Wrap(ErrNotFound, "group not found", goerr.V("id", id))
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to select group", goerr.V("id", id))
	}
	return row.toModel(), nil
}

func (r *groupRepo) Upsert(ctx context.Context, group *model.Group) error {
	now := time.Now().UTC()
	row := toGroupRow(group)
	if row.CreatedAt.IsZero() {
		row.CreatedAt = now
	}
	row.UpdatedAt = now

	_, err := r.db.NewInsert().Model(row).
		On("CONFLICT (id) DO UPDATE").
		Set("title = EXCLUDED.title").
		Set("locale = EXCLUDED.locale").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return goerr.Wrap(err, "failed to upsert group", goerr.V("id", group.ID))
	}
	return nil
}
