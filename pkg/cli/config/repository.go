package config

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/rallykit/rallybot/pkg/domain/interfaces"
	"github.com/rallykit/rallybot/pkg/repository/bunstore"
	"github.com/rallykit/rallybot/pkg/repository/memory"
	"github.com/rallykit/rallybot/pkg/utils/logging"
)

// Repository holds CLI flags for repository backend configuration
type Repository struct {
	backend string
	dsn     string
}

// Flags returns CLI flags for repository configuration
func (r *Repository) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "repository-backend",
			Usage:       "Repository backend type (sqlite or memory)",
			Category:    "Repository",
			Value:       "sqlite",
			Sources:     cli.EnvVars("RALLYBOT_REPOSITORY_BACKEND"),
			Destination: &r.backend,
		},
		&cli.StringFlag{
			Name:        "sqlite-dsn",
			Usage:       "SQLite DSN (required when using sqlite backend)",
			Category:    "Repository",
			Value:       "file:rallybot.db?_foreign_keys=on",
			Sources:     cli.EnvVars("RALLYBOT_SQLITE_DSN"),
			Destination: &r.dsn,
		},
	}
}

// Backend returns the configured backend type
func (r *Repository) Backend() string {
	return r.backend
}

// DSN returns the SQLite DSN
func (r *Repository) DSN() string {
	return r.dsn
}

// Configure initializes and returns a repository based on the configured
// backend. The caller is responsible for calling Close() on the returned
// repository.
func (r *Repository) Configure(ctx context.Context) (interfaces.Repository, error) {
	switch r.backend {
	case "sqlite":
		if r.dsn == "" {
			return nil, goerr.New("sqlite-dsn is required when using sqlite backend")
		}
		repo, err := bunstore.Open(r.dsn)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to initialize sqlite repository")
		}
		logging.Default().Info("Using SQLite repository", "dsn", r.dsn)
		return repo, nil

	case "memory":
		logging.Default().Info("Using in-memory repository (development mode)")
		return memory.New(), nil

	default:
		return nil, goerr.New("invalid repository backend", goerr.V("backend", r.backend))
	}
}
