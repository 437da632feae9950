package memory

import (
	"context"
	"sort"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/rallykit/rallybot/pkg/domain/interfaces"
	"github.com/rallykit/rallybot/pkg/domain/model"
	"github.com/rallykit/rallybot/pkg/domain/types"
)

// ErrDuplicateName is returned when an activity with the same name
// already exists
var ErrDuplicateName = interfaces.ErrDuplicateName

type activityRepo struct {
	m *Memory
}

func (r *activityRepo) Create(ctx context.Context, activity *model.Activity) (*model.Activity, error) {
	defer r.m.lock()()

	for _, existing := range r.m.state.activities {
		if existing.Name == activity.Name {
			return nil, goerr.Wrap(ErrDuplicateName, "activity already exists", goerr.V("name", activity.Name))
		}
	}

	created := activity.Clone()
	created.ID = r.m.state.nextActivityID
	created.CreatedAt = time.Now().UTC()
	r.m.state.nextActivityID++

	r.m.state.activities[created.ID] = created
	return created.Clone(), nil
}

func (r *activityRepo) Get(ctx context.Context, id types.ActivityID) (*model.Activity, error) {
	defer r.m.rlock()()

	activity, exists := r.m.state.activities[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "activity not found", goerr.V("id", id))
	}
	return activity.Clone(), nil
}

func (r *activityRepo) GetByName(ctx context.Context, name string) (*model.Activity, error) {
	defer r.m.rlock()()

	for _, activity := range r.m.state.activities {
		if activity.Name == name {
			return activity.Clone(), nil
		}
	}
	return nil, goerr.Wrap(ErrNotFound, "activity not found", goerr.V("name", name))
}

func (r *activityRepo) List(ctx context.Context) ([]*model.Activity, error) {
	defer r.m.rlock()()

	activities := make([]*model.Activity, 0, len(r.m.state.activities))
	for _, activity := range r.m.state.activities {
		activities = append(activities, activity.Clone())
	}
	sort.Slice(activities, func(i, j int) bool {
		return activities[i].Name < activities[j].Name
	})
	return activities, nil
}

func (r *activityRepo) Delete(ctx context.Context, id types.ActivityID) error {
	defer r.m.lock()()

	if _, exists := r.m.state.activities[id]; !exists {
		return goerr.Wrap(ErrNotFound, "activity not found", goerr.V("id", id))
	}

	delete(r.m.state.activities, id)

	// Cascade to subscriptions and participants
	for key := range r.m.state.subscriptions {
		if key.activityID == id {
			delete(r.m.state.subscriptions, key)
		}
	}
	for key := range r.m.state.participants {
		if key.activityID == id {
			delete(r.m.state.participants, key)
		}
	}
	return nil
}
