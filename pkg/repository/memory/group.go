package memory

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/rallykit/rallybot/pkg/domain/model"
	"github.com/rallykit/rallybot/pkg/domain/types"
)

type groupRepo struct {
	m *Memory
}

func (r *groupRepo) Get(ctx context.Context, id types.ChatID) (*model.Group, error) {
	defer r.m.rlock()()

	group, exists := r.m.state.groups[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "group not found", goerr.V("id", id))
	}
	return group.Clone(), nil
}

func (r *groupRepo) Upsert(ctx context.Context, group *model.Group) error {
	defer r.m.lock()()

	now := time.Now().UTC()
	stored := group.Clone()
	if existing, exists := r.m.state.groups[group.ID]; exists {
		stored.CreatedAt = existing.CreatedAt
	} else {
		stored.CreatedAt = now
	}
	stored.UpdatedAt = now

	r.m.state.groups[group.ID] = stored
	return nil
}
