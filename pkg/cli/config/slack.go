package config

import (
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	slacksvc "github.com/rallykit/rallybot/pkg/service/slack"
)

// Slack holds CLI flags for the Slack transport
type Slack struct {
	botToken      string
	signingSecret string
}

func (x *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-bot-token",
			Usage:       "Slack Bot User OAuth Token (for sending DMs)",
			Category:    "Slack",
			Destination: &x.botToken,
			Sources:     cli.EnvVars("RALLYBOT_SLACK_BOT_TOKEN"),
		},
		&cli.StringFlag{
			Name:        "slack-signing-secret",
			Usage:       "Slack Signing Secret (for webhook verification)",
			Category:    "Slack",
			Destination: &x.signingSecret,
			Sources:     cli.EnvVars("RALLYBOT_SLACK_SIGNING_SECRET"),
		},
	}
}

// Secrets never reach the logs; only their presence does
func (x Slack) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("bot-token.len", len(x.botToken)),
		slog.Int("signing-secret.len", len(x.signingSecret)),
	)
}

// BotToken returns the Slack bot token
func (x *Slack) BotToken() string {
	return x.botToken
}

// SigningSecret returns the Slack signing secret
func (x *Slack) SigningSecret() string {
	return x.signingSecret
}

// IsConfigured checks if the Slack transport is usable
func (x *Slack) IsConfigured() bool {
	return x.botToken != ""
}

// IsWebhookConfigured checks if webhook verification is configured
func (x *Slack) IsWebhookConfigured() bool {
	return x.signingSecret != ""
}

// Configure creates the Slack notifier from the bot token
func (x *Slack) Configure() (*slacksvc.Notifier, error) {
	if x.botToken == "" {
		return nil, goerr.New("slack-bot-token is required")
	}
	return slacksvc.New(x.botToken)
}
