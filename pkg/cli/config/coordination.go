package config

import (
	"os"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
	"golang.org/x/text/language"

	"github.com/rallykit/rallybot/pkg/service/i18n"
	"github.com/rallykit/rallybot/pkg/usecase"
)

// Coordination is the coordination policy, loaded from an optional
// TOML file. Every field has a working default so the file can be
// omitted entirely.
type Coordination struct {
	path string

	Superuser            string `toml:"superuser"`
	CooldownMinutes      int    `toml:"cooldown_minutes"`
	DefaultLocale        string `toml:"default_locale"`
	SweepIntervalMinutes int    `toml:"sweep_interval_minutes"`
}

// Flags returns CLI flags for coordination configuration
func (c *Coordination) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Usage:       "Path to coordination policy TOML file",
			Category:    "Coordination",
			Sources:     cli.EnvVars("RALLYBOT_CONFIG"),
			Destination: &c.path,
		},
	}
}

// Validate checks if the Coordination policy is valid
func (c *Coordination) Validate() error {
	if c.CooldownMinutes < 0 {
		return goerr.New("cooldown_minutes must not be negative", goerr.V("cooldown_minutes", c.CooldownMinutes))
	}
	if c.SweepIntervalMinutes < 0 {
		return goerr.New("sweep_interval_minutes must not be negative", goerr.V("sweep_interval_minutes", c.SweepIntervalMinutes))
	}
	if c.DefaultLocale != "" {
		tag, err := language.Parse(c.DefaultLocale)
		if err != nil {
			return goerr.Wrap(err, "invalid default_locale", goerr.V("default_locale", c.DefaultLocale))
		}
		supported := false
		for _, s := range i18n.Supported() {
			if s == tag {
				supported = true
				break
			}
		}
		if !supported {
			return goerr.New("unsupported default_locale", goerr.V("default_locale", c.DefaultLocale))
		}
	}
	return nil
}

// Load reads the policy file when a path is configured and applies
// defaults for anything left unset.
func (c *Coordination) Load() error {
	if c.path != "" {
		// #nosec G304 - path is expected to be provided by CLI argument
		data, err := os.ReadFile(c.path)
		if err != nil {
			return goerr.Wrap(err, "failed to read config file", goerr.V("path", c.path))
		}
		if err := toml.Unmarshal(data, c); err != nil {
			return goerr.Wrap(err, "failed to parse TOML config", goerr.V("path", c.path))
		}
	}

	if c.CooldownMinutes == 0 {
		c.CooldownMinutes = int(usecase.DefaultCooldown / time.Minute)
	}
	if c.DefaultLocale == "" {
		c.DefaultLocale = i18n.DefaultLocale
	}
	if c.SweepIntervalMinutes == 0 {
		c.SweepIntervalMinutes = 30
	}

	if err := c.Validate(); err != nil {
		return goerr.Wrap(err, "config validation failed", goerr.V("path", c.path))
	}

	return nil
}

// Cooldown returns the participation expiry window
func (c *Coordination) Cooldown() time.Duration {
	return time.Duration(c.CooldownMinutes) * time.Minute
}

// SweepInterval returns the background sweeper interval
func (c *Coordination) SweepInterval() time.Duration {
	return time.Duration(c.SweepIntervalMinutes) * time.Minute
}
