package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/rallykit/rallybot/pkg/cli/config"
	httpctrl "github.com/rallykit/rallybot/pkg/controller/http"
	"github.com/rallykit/rallybot/pkg/service/i18n"
	"github.com/rallykit/rallybot/pkg/service/worker"
	"github.com/rallykit/rallybot/pkg/usecase"
	"github.com/rallykit/rallybot/pkg/utils/logging"
	"github.com/rallykit/rallybot/pkg/utils/safe"
)

func cmdServe() *cli.Command {
	var addr string
	var repoCfg config.Repository
	var slackCfg config.Slack
	var coordCfg config.Coordination

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("RALLYBOT_ADDR"),
			Destination: &addr,
		},
	}
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, slackCfg.Flags()...)
	flags = append(flags, coordCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := coordCfg.Load(); err != nil {
				return goerr.Wrap(err, "failed to load coordination policy")
			}

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer safe.Close(ctx, repo)

			ucOpts := []usecase.Option{
				usecase.WithTranslator(i18n.New()),
				usecase.WithCooldown(coordCfg.Cooldown()),
				usecase.WithDefaultLocale(coordCfg.DefaultLocale),
			}
			if coordCfg.Superuser != "" {
				ucOpts = append(ucOpts, usecase.WithSuperuser(coordCfg.Superuser))
				logging.Default().Info("Superuser login configured")
			}

			if slackCfg.IsConfigured() {
				notifier, err := slackCfg.Configure()
				if err != nil {
					return goerr.Wrap(err, "failed to initialize slack notifier")
				}
				ucOpts = append(ucOpts, usecase.WithNotifier(notifier))
				logging.Default().Info("Slack notifier enabled", "slack", slackCfg)
			} else {
				logging.Default().Warn("Slack bot token not configured, notifications are disabled")
			}

			uc := usecase.New(repo, ucOpts...)

			sweeper := worker.NewExpirySweeper(repo, coordCfg.Cooldown(), coordCfg.SweepInterval())
			if err := sweeper.Start(ctx); err != nil {
				return goerr.Wrap(err, "failed to start expiry sweeper")
			}

			httpOpts := []httpctrl.Options{}
			if slackCfg.IsWebhookConfigured() {
				httpOpts = append(httpOpts, httpctrl.WithSigningSecret(slackCfg.SigningSecret()))
			} else {
				logging.Default().Warn("Slack signing secret not configured, webhook verification is disabled")
			}

			server := &http.Server{
				Addr:              addr,
				Handler:           httpctrl.New(uc, httpOpts...),
				ReadHeaderTimeout: 30 * time.Second,
			}

			// Setup signal handling for graceful shutdown
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server", "addr", addr)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			select {
			case err := <-errCh:
				sweeper.Stop()
				return err
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)

				sweeper.Stop()

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}

				logging.Default().Info("Server shutdown completed")
				return nil
			}
		},
	}
}
