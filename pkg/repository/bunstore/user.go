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

type userRepo struct {
	db bun.IDB
}

func (r *userRepo) Get(ctx context.Context, id types.UserID) (*model.User, error) {
	row := new(userRow)
	err := r.db.NewSelect().Model(row).Where("u.id = ?", string(id)).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, goerr.Wrap(ErrNotFound, "user not found", goerr.V("id", id))
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to select user", goerr.V("id", id))
	}
	return row.toModel(), nil
}

func (r *userRepo) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	row := new(userRow)
	err := r.db.NewSelect().Model(row).Where("u.login = ?", login).Limit(1).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, goerr.Wrap(ErrNotFound, "user not found", goerr.V("login", login))
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to select user by login", goerr.V("login", login))
	}
	return row.toModel(), nil
}

func (r *userRepo) ListByIDs(ctx context.Context, ids []types.UserID) ([]*model.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	raw := make([]string, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, string(id))
	}

	var rows []userRow
	err := r.db.NewSelect().Model(&rows).Where("u.id IN (?)", bun.In(raw)).Scan(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to select users")
	}

	users := make([]*model.User, 0, len(rows))
	for i := range rows {
		users = append(users, rows[i].toModel())
	}
	return users, nil
}

func (r *userRepo) Upsert(ctx context.Context, user *model.User) error {
	now := time.Now().UTC()
	row := toUserRow(user)
	if row.CreatedAt.IsZero() {
		row.CreatedAt = now
	}
	row.UpdatedAt = now

	_, err := r.db.NewInsert().Model(row).
		On("CONFLICT (id) DO UPDATE").
		Set("login = EXCLUDED.login").
		Set("rights_level = EXCLUDED.rights_level").
		Set("pending_action = EXCLUDED.pending_action").
		Set("active = EXCLUDED.active").
		Set("disabled_chat = EXCLUDED.disabled_chat").
		Set("locale = EXCLUDED.locale").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return goerr.Wrap(err, "failed to upsert user", goerr.V("id", user.ID))
	}
	return nil
}
