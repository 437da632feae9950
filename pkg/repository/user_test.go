package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/rallykit/rallybot/pkg/domain/interfaces"
	"github.com/rallykit/rallybot/pkg/domain/model"
	"github.com/rallykit/rallybot/pkg/domain/types"
)

func TestUserRepository(t *testing.T) {
	runOnBackends(t, runUserRepositoryTest)
}

func runUserRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Upsert creates user with defaults", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		user := model.NewUser("U001", "ranger")
		gt.NoError(t, repo.Users().Upsert(ctx, user)).Required()

		got, err := repo.Users().Get(ctx, "U001")
		gt.NoError(t, err).Required()
		gt.Value(t, got.Login).Equal("ranger")
		gt.Value(t, got.RightsLevel).Equal(types.RightsDefault)
		gt.Bool(t, got.Active).True()
		gt.Bool(t, got.DisabledChat).False()
		gt.Bool(t, got.CreatedAt.IsZero()).False()
		gt.Bool(t, got.UpdatedAt.IsZero()).False()
	})

	t.Run("Upsert updates existing user in place", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		user := mustUser(t, repo, "U002", "old-login")

		user.Login = "new-login"
		user.RightsLevel = types.RightsTrusted
		user.Active = false
		user.DisabledChat = true
		gt.NoError(t, repo.Users().Upsert(ctx, user)).Required()

		got, err := repo.Users().Get(ctx, "U002")
		gt.NoError(t, err).Required()
		gt.Value(t, got.Login).Equal("new-login")
		gt.Value(t, got.RightsLevel).Equal(types.RightsTrusted)
		gt.Bool(t, got.Active).False()
		gt.Bool(t, got.DisabledChat).True()
	})

	t.Run("Get returns ErrNotFound for unknown user", func(t *testing.T) {
		repo := newRepo(t)

		_, err := repo.Users().Get(context.Background(), "U404")
		gt.Bool(t, errors.Is(err, interfaces.ErrNotFound)).True()
	})

	t.Run("GetByLogin finds user by current login", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		mustUser(t, repo, "U003", "finder")

		got, err := repo.Users().GetByLogin(ctx, "finder")
		gt.NoError(t, err).Required()
		gt.Value(t, got.ID).Equal(types.UserID("U003"))

		_, err = repo.Users().GetByLogin(ctx, "nobody")
		gt.Bool(t, errors.Is(err, interfaces.ErrNotFound)).True()
	})

	t.Run("ListByIDs skips unknown IDs", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		mustUser(t, repo, "U010", "a")
		mustUser(t, repo, "U011", "b")

		users, err := repo.Users().ListByIDs(ctx, []types.UserID{"U010", "U404", "U011"})
		gt.NoError(t, err).Required()
		gt.Array(t, users).Length(2)
	})

	t.Run("ListByIDs with no IDs returns nothing", func(t *testing.T) {
		repo := newRepo(t)

		users, err := repo.Users().ListByIDs(context.Background(), nil)
		gt.NoError(t, err).Required()
		gt.Array(t, users).Length(0)
	})
}
