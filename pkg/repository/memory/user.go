package memory

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/rallykit/rallybot/pkg/domain/model"
	"github.com/rallykit/rallybot/pkg/domain/types"
)

type userRepo struct {
	m *Memory
}

func (r *userRepo) Get(ctx context.Context, id types.UserID) (*model.User, error) {
	defer r.m.rlock()()

	user, exists := r.m.state.users[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "user not found", goerr.V("id", id))
	}
	return user.Clone(), nil
}

func (r *userRepo) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	defer r.m.rlock()()

	for _, user := range r.m.state.users {
		if user.Login == login {
			return user.Clone(), nil
		}
	}
	return nil, goerr.Wrap(ErrNotFound, "user not found", goerr.V("login", login))
}

func (r *userRepo) ListByIDs(ctx context.Context, ids []types.UserID) ([]*model.User, error) {
	defer r.m.rlock()()

	users := make([]*model.User, 0, len(ids))
	for _, id := range ids {
		if user, exists := r.m.state.users[id]; exists {
			users = append(users, user.Clone())
		}
	}
	return users, nil
}

func (r *userRepo) Upsert(ctx context.Context, user *model.User) error {
	defer r.m.lock()()

	now := time.Now().UTC()
	stored := user.Clone()
	if existing, exists := r.m.state.users[user.ID]; exists {
		stored.CreatedAt = existing.CreatedAt
	} else {
		stored.CreatedAt = now
	}
	stored.UpdatedAt = now

	r.m.state.users[user.ID] = stored
	return nil
}
