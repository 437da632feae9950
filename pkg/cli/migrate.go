package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/rallykit/rallybot/pkg/repository/bunstore"
	"github.com/rallykit/rallybot/pkg/utils/logging"
	"github.com/rallykit/rallybot/pkg/utils/safe"
)

func cmdMigrate() *cli.Command {
	var dsn string

	return &cli.Command{
		Name:    "migrate",
		Aliases: []string{"m"},
		Usage:   "Apply the SQLite schema",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "sqlite-dsn",
				Usage:       "SQLite DSN",
				Value:       "file:rallybot.db?_foreign_keys=on",
				Sources:     cli.EnvVars("RALLYBOT_SQLITE_DSN"),
				Destination: &dsn,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()
			logger.Info("Applying migrations", "dsn", dsn)

			store, err := bunstore.Open(dsn)
			if err != nil {
				return goerr.Wrap(err, "failed to open sqlite database")
			}
			defer safe.Close(ctx, store)

			if err := store.Migrate(ctx); err != nil {
				return goerr.Wrap(err, "failed to apply migrations")
			}

			logger.Info("Migrations applied")
			return nil
		},
	}
}
