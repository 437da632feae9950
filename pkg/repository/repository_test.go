package repository_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/rallykit/rallybot/pkg/domain/interfaces"
	"github.com/rallykit/rallybot/pkg/domain/model"
	"github.com/rallykit/rallybot/pkg/domain/types"
	"github.com/rallykit/rallybot/pkg/repository/bunstore"
	"github.com/rallykit/rallybot/pkg/repository/memory"
)

func newMemoryRepo(t *testing.T) interfaces.Repository {
	t.Helper()
	return memory.New()
}

func newSQLiteRepo(t *testing.T) interfaces.Repository {
	t.Helper()

	dsn := fmt.Sprintf("file:%s/rallybot_test.db?_foreign_keys=on", t.TempDir())
	store, err := bunstore.Open(dsn)
	gt.NoError(t, err).Required()
	t.Cleanup(func() {
		gt.NoError(t, store.Close())
	})

	gt.NoError(t, store.Migrate(context.Background())).Required()
	return store
}

// runOnBackends runs the same suite against every repository backend
func runOnBackends(t *testing.T, run func(t *testing.T, newRepo func(t *testing.T) interfaces.Repository)) {
	t.Run("Memory", func(t *testing.T) {
		run(t, newMemoryRepo)
	})
	t.Run("SQLite", func(t *testing.T) {
		run(t, newSQLiteRepo)
	})
}

// mustUser registers a user so foreign keys hold for dependent rows
func mustUser(t *testing.T, repo interfaces.Repository, id types.UserID, login string) *model.User {
	t.Helper()

	user := model.NewUser(id, login)
	gt.NoError(t, repo.Users().Upsert(context.Background(), user)).Required()
	return user
}

// mustActivity registers an activity owned by ownerID
func mustActivity(t *testing.T, repo interfaces.Repository, name string, ownerID types.UserID) *model.Activity {
	t.Helper()

	created, err := repo.Activities().Create(context.Background(), &model.Activity{
		Name:    name,
		OwnerID: ownerID,
	})
	gt.NoError(t, err).Required()
	return created
}
