package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/rallykit/rallybot/pkg/domain/interfaces"
	"github.com/rallykit/rallybot/pkg/domain/types"
	"github.com/rallykit/rallybot/pkg/usecase"
)

func TestRegistryCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("trims the name and stores the owner", func(t *testing.T) {
		uc, repo, _, _ := newTestUC(t)
		owner := seedUser(t, repo, "U001", "owner", types.RightsTrusted)

		activity, err := uc.Registry.Create(ctx, repo, owner, "  run-club  ")
		gt.NoError(t, err).Required()
		gt.Value(t, activity.Name).Equal("run-club")
		gt.Value(t, activity.OwnerID).Equal(owner.ID)
	})

	t.Run("rejects empty, overlong and malformed names", func(t *testing.T) {
		uc, repo, _, _ := newTestUC(t)
		owner := seedUser(t, repo, "U001", "owner", types.RightsTrusted)

		for _, name := range []string{
			"",
			"   ",
			strings.Repeat("x", usecase.MaxActivityNameLength+1),
			"no|pipes",
			"no,commas",
		} {
			_, err := uc.Registry.Create(ctx, repo, owner, name)
			gt.Bool(t, errors.Is(err, usecase.ErrValidation)).True()
		}

		// 25 characters is still fine
		_, err := uc.Registry.Create(ctx, repo, owner, strings.Repeat("x", usecase.MaxActivityNameLength))
		gt.NoError(t, err).Required()
	})

	t.Run("rejects duplicate names", func(t *testing.T) {
		uc, repo, _, _ := newTestUC(t)
		owner := seedUser(t, repo, "U001", "owner", types.RightsTrusted)

		_, err := uc.Registry.Create(ctx, repo, owner, "run-club")
		gt.NoError(t, err).Required()

		_, err = uc.Registry.Create(ctx, repo, owner, "run-club")
		gt.Bool(t, errors.Is(err, usecase.ErrConflict)).True()
	})
}

func TestRegistryRemove(t *testing.T) {
	ctx := context.Background()

	t.Run("only the owner may remove", func(t *testing.T) {
		uc, repo, _, _ := newTestUC(t)
		owner := seedUser(t, repo, "U001", "owner", types.RightsTrusted)
		other := seedUser(t, repo, "U002", "other", types.RightsTrusted)
		seedActivity(t, repo, "run-club", owner.ID)

		_, err := uc.Registry.Remove(ctx, repo, other, "run-club")
		gt.Bool(t, errors.Is(err, usecase.ErrPermission)).True()

		_, err = uc.Registry.Remove(ctx, repo, owner, "run-club")
		gt.NoError(t, err).Required()

		_, err = repo.Activities().GetByName(ctx, "run-club")
		gt.Bool(t, errors.Is(err, interfaces.ErrNotFound)).True()
	})

	t.Run("the superuser may remove anything", func(t *testing.T) {
		uc, repo, _, _ := newTestUC(t)
		owner := seedUser(t, repo, "U001", "owner", types.RightsTrusted)
		root := seedUser(t, repo, "U999", "root", types.RightsDefault)
		seedActivity(t, repo, "run-club", owner.ID)

		_, err := uc.Registry.Remove(ctx, repo, root, "run-club")
		gt.NoError(t, err).Required()
	})

	t.Run("unknown activity is reported", func(t *testing.T) {
		uc, repo, _, _ := newTestUC(t)
		owner := seedUser(t, repo, "U001", "owner", types.RightsTrusted)

		_, err := uc.Registry.Remove(ctx, repo, owner, "ghost")
		gt.Bool(t, errors.Is(err, usecase.ErrNotFound)).True()
	})
}

func TestRegistrySubscriptions(t *testing.T) {
	ctx := context.Background()

	t.Run("subscribe and unsubscribe are idempotent", func(t *testing.T) {
		uc, repo, _, _ := newTestUC(t)
		user := seedUser(t, repo, "U001", "member", types.RightsDefault)
		activity := seedActivity(t, repo, "run-club", user.ID)

		for i := 0; i < 2; i++ {
			_, err := uc.Registry.Subscribe(ctx, repo, user, "run-club")
			gt.NoError(t, err).Required()
		}

		subs, err := repo.Subscriptions().ListByActivity(ctx, activity.ID)
		gt.NoError(t, err).Required()
		gt.Array(t, subs).Length(1)

		for i := 0; i < 2; i++ {
			_, err := uc.Registry.Unsubscribe(ctx, repo, user, "run-club")
			gt.NoError(t, err).Required()
		}

		subs, err = repo.Subscriptions().ListByActivity(ctx, activity.ID)
		gt.NoError(t, err).Required()
		gt.Array(t, subs).Length(0)
	})

	t.Run("subscribing to an unknown activity fails", func(t *testing.T) {
		uc, repo, _, _ := newTestUC(t)
		user := seedUser(t, repo, "U001", "member", types.RightsDefault)

		_, err := uc.Registry.Subscribe(ctx, repo, user, "ghost")
		gt.Bool(t, errors.Is(err, usecase.ErrNotFound)).True()
	})
}
