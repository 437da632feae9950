package bunstore

import (
	"context"
	"database/sql"

	"github.com/m-mizutani/goerr/v2"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/rallykit/rallybot/pkg/domain/interfaces"
)

// ErrNotFound is returned when a requested record does not exist
var ErrNotFound = interfaces.ErrNotFound

// ErrDuplicateName is returned when an activity with the same name
// already exists
var ErrDuplicateName = interfaces.ErrDuplicateName

// Store is the durable repository backed by sqlite via bun. A Store
// handed to an InTx callback wraps the transaction; all other stores
// wrap the root connection.
type Store struct {
	db   bun.IDB
	root *bun.DB
}

var _ interfaces.Repository = &Store{}

// Open connects to the sqlite database at dsn. Foreign keys must be
// enabled in the dsn (e.g. "file:rallybot.db?_foreign_keys=on") for
// activity deletion to cascade. Migrations are applied separately by
// the migrate command, not as a side effect of opening the store.
func Open(dsn string) (*Store, error) {
	sqldb, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open sqlite database", goerr.V("dsn", dsn))
	}

	db := bun.NewDB(sqldb, sqlitedialect.New())
	return NewFromDB(db), nil
}

// NewFromDB wraps an existing bun connection
func NewFromDB(db *bun.DB) *Store {
	return &Store{db: db, root: db}
}

func (s *Store) Users() interfaces.UserRepository {
	return &userRepo{db: s.db}
}

func (s *Store) Groups() interfaces.GroupRepository {
	return &groupRepo{db: s.db}
}

func (s *Store) Activities() interfaces.ActivityRepository {
	return &activityRepo{db: s.db}
}

func (s *Store) Subscriptions() interfaces.SubscriptionRepository {
	return &subscriptionRepo{db: s.db}
}

func (s *Store) Participants() interfaces.ParticipantRepository {
	return &participantRepo{db: s.db}
}

// InTx runs fn inside one database transaction. bun commits when fn
// returns nil and rolls back on error or panic.
func (s *Store) InTx(ctx context.Context, fn func(ctx context.Context, tx interfaces.Repository) error) error {
	if s.root == nil {
		// Already inside a transaction; join it
		return fn(ctx, s)
	}

	return s.root.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		return fn(ctx, &Store{db: tx})
	})
}

func (s *Store) Close() error {
	if s.root == nil {
		return nil
	}
	return s.root.Close()
}
