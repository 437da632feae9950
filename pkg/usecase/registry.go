package usecase

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/m-mizutani/goerr/v2"

	"github.com/rallykit/rallybot/pkg/domain/interfaces"
	"github.com/rallykit/rallybot/pkg/domain/model"
)

// MaxActivityNameLength bounds activity names so they stay usable as
// quick-reply payloads.
const MaxActivityNameLength = 25

var activityNameRe = regexp.MustCompile(`^[\w .\-]*$`)

// RegistryUseCase manages the activity catalog and subscriptions
type RegistryUseCase struct {
	uc *UseCases
}

// ValidateName normalizes and checks an activity name. Returns the
// trimmed name on success.
func (r *RegistryUseCase) ValidateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", goerr.Wrap(ErrValidation, "activity name is empty",
			goerr.V(ReasonKey, ReasonNameEmpty))
	}
	if len([]rune(name)) > MaxActivityNameLength {
		return "", goerr.Wrap(ErrValidation, "activity name is too long",
			goerr.V(ReasonKey, ReasonNameTooLong),
			goerr.V(MaxLengthKey, MaxActivityNameLength),
			goerr.V(ActivityKey, name))
	}
	if !activityNameRe.MatchString(name) {
		return "", goerr.Wrap(ErrValidation, "activity name has forbidden characters",
			goerr.V(ReasonKey, ReasonNameCharset),
			goerr.V(ActivityKey, name))
	}
	return name, nil
}

// Create validates the name and registers a new activity owned by
// owner. A name collision yields ErrConflict.
func (r *RegistryUseCase) Create(ctx context.Context, tx interfaces.Repository, owner *model.User, name string) (*model.Activity, error) {
	name, err := r.ValidateName(name)
	if err != nil {
		return nil, err
	}

	activity := &model.Activity{
		Name:      name,
		OwnerID:   owner.ID,
		CreatedAt: r.uc.clock.Now(),
	}
	created, err := tx.Activities().Create(ctx, activity)
	if err != nil {
		if errors.Is(err, interfaces.ErrDuplicateName) {
			return nil, goerr.Wrap(ErrConflict, "activity name taken",
				goerr.V(ActivityKey, name))
		}
		return nil, goerr.Wrap(err, "failed to create activity", goerr.V(ActivityKey, name))
	}

	return created, nil
}

// Remove deletes an activity and, through repository cascade, all its
// subscriptions and participants. Only the owner or the superuser may
// remove an activity.
func (r *RegistryUseCase) Remove(ctx context.Context, tx interfaces.Repository, requester *model.User, name string) (*model.Activity, error) {
	activity, err := r.ResolveByName(ctx, tx, name)
	if err != nil {
		return nil, err
	}

	if activity.OwnerID != requester.ID && requester.Login != r.uc.superuserLogin {
		return nil, goerr.Wrap(ErrPermission, "only the owner can remove an activity",
			goerr.V(ActivityKey, activity.Name),
			goerr.V(LoginKey, requester.Login))
	}

	if err := tx.Activities().Delete(ctx, activity.ID); err != nil {
		return nil, goerr.Wrap(err, "failed to remove activity", goerr.V(ActivityKey, activity.Name))
	}

	return activity, nil
}

// ResolveByName finds an activity by its exact trimmed name
func (r *RegistryUseCase) ResolveByName(ctx context.Context, tx interfaces.Repository, name string) (*model.Activity, error) {
	name = strings.TrimSpace(name)
	activity, err := tx.Activities().GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, goerr.Wrap(ErrNotFound, "no such activity",
				goerr.V(ActivityKey, name))
		}
		return nil, goerr.Wrap(err, "failed to look up activity", goerr.V(ActivityKey, name))
	}
	return activity, nil
}

// List returns the full activity catalog
func (r *RegistryUseCase) List(ctx context.Context, tx interfaces.Repository) ([]*model.Activity, error) {
	activities, err := tx.Activities().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list activities")
	}
	return activities, nil
}

// Subscribe marks user as a summon target for the named activity.
// Subscribing twice is a no-op.
func (r *RegistryUseCase) Subscribe(ctx context.Context, tx interfaces.Repository, user *model.User, name string) (*model.Activity, error) {
	activity, err := r.ResolveByName(ctx, tx, name)
	if err != nil {
		return nil, err
	}

	sub := &model.Subscription{
		UserID:     user.ID,
		ActivityID: activity.ID,
		CreatedAt:  r.uc.clock.Now(),
	}
	if err := tx.Subscriptions().Put(ctx, sub); err != nil {
		return nil, goerr.Wrap(err, "failed to subscribe",
			goerr.V(ActivityKey, activity.Name),
			goerr.V("user_id", user.ID))
	}

	return activity, nil
}

// Unsubscribe removes user from the activity's summon targets.
// Unsubscribing when not subscribed is a no-op.
func (r *RegistryUseCase) Unsubscribe(ctx context.Context, tx interfaces.Repository, user *model.User, name string) (*model.Activity, error) {
	activity, err := r.ResolveByName(ctx, tx, name)
	if err != nil {
		return nil, err
	}

	if err := tx.Subscriptions().Delete(ctx, user.ID, activity.ID); err != nil {
		return nil, goerr.Wrap(err, "failed to unsubscribe",
			goerr.V(ActivityKey, activity.Name),
			goerr.V("user_id", user.ID))
	}

	return activity, nil
}
