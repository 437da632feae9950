package usecase

import (
	"context"
	"errors"

	"github.com/m-mizutani/goerr/v2"

	"github.com/rallykit/rallybot/pkg/domain/interfaces"
	"github.com/rallykit/rallybot/pkg/domain/model"
	"github.com/rallykit/rallybot/pkg/domain/types"
)

// AccountUseCase manages per-user settings and privilege tiers
type AccountUseCase struct {
	uc *UseCases
}

// SetActive toggles the user's do-not-disturb state. Inactive users
// keep their subscriptions but are skipped by summon fan-out.
func (a *AccountUseCase) SetActive(ctx context.Context, tx interfaces.Repository, user *model.User, active bool) error {
	if user.Active == active {
		return nil
	}
	user.Active = active
	user.UpdatedAt = a.uc.clock.Now()
	if err := tx.Users().Upsert(ctx, user); err != nil {
		return goerr.Wrap(err, "failed to update active flag", goerr.V("user_id", user.ID))
	}
	return nil
}

// SetPending records or clears the multi-step command the user is in
// the middle of.
func (a *AccountUseCase) SetPending(ctx context.Context, tx interfaces.Repository, user *model.User, action types.PendingAction) error {
	if user.PendingAction == action {
		return nil
	}
	user.PendingAction = action
	user.UpdatedAt = a.uc.clock.Now()
	if err := tx.Users().Upsert(ctx, user); err != nil {
		return goerr.Wrap(err, "failed to update pending action", goerr.V("user_id", user.ID))
	}
	return nil
}

// Promote raises the named user to the trusted tier
func (a *AccountUseCase) Promote(ctx context.Context, tx interfaces.Repository, login string) (*model.User, error) {
	return a.setRights(ctx, tx, login, types.RightsTrusted)
}

// Demote resets the named user to the default tier
func (a *AccountUseCase) Demote(ctx context.Context, tx interfaces.Repository, login string) (*model.User, error) {
	return a.setRights(ctx, tx, login, types.RightsDefault)
}

func (a *AccountUseCase) setRights(ctx context.Context, tx interfaces.Repository, login string, level types.RightsLevel) (*model.User, error) {
	user, err := tx.Users().GetByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, goerr.Wrap(ErrNotFound, "no user with that login", goerr.V(LoginKey, login))
		}
		return nil, goerr.Wrap(err, "failed to look up user", goerr.V(LoginKey, login))
	}

	if user.RightsLevel == level {
		return user, nil
	}

	user.RightsLevel = level
	user.UpdatedAt = a.uc.clock.Now()
	if err := tx.Users().Upsert(ctx, user); err != nil {
		return nil, goerr.Wrap(err, "failed to update rights", goerr.V(LoginKey, login))
	}
	return user, nil
}
