package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
)

func TestCoordinationLoad(t *testing.T) {
	t.Run("works without a file", func(t *testing.T) {
		var c Coordination
		gt.NoError(t, c.Load()).Required()

		gt.Value(t, c.Cooldown()).Equal(180 * time.Minute)
		gt.Value(t, c.DefaultLocale).Equal("en")
		gt.Value(t, c.SweepInterval()).Equal(30 * time.Minute)
		gt.Value(t, c.Superuser).Equal("")
	})

	t.Run("reads the policy file and keeps defaults for unset fields", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "rallybot.toml")
		body := "superuser = \"root\"\ncooldown_minutes = 60\n"
		gt.NoError(t, os.WriteFile(path, []byte(body), 0600)).Required()

		c := Coordination{path: path}
		gt.NoError(t, c.Load()).Required()

		gt.Value(t, c.Superuser).Equal("root")
		gt.Value(t, c.Cooldown()).Equal(time.Hour)
		gt.Value(t, c.DefaultLocale).Equal("en")
		gt.Value(t, c.SweepInterval()).Equal(30 * time.Minute)
	})

	t.Run("rejects negative durations", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "rallybot.toml")
		gt.NoError(t, os.WriteFile(path, []byte("cooldown_minutes = -5\n"), 0600)).Required()

		c := Coordination{path: path}
		err := c.Load()
		gt.Value(t, err).NotNil()
	})

	t.Run("rejects an unsupported default_locale", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "rallybot.toml")
		gt.NoError(t, os.WriteFile(path, []byte("default_locale = \"fr\"\n"), 0600)).Required()

		c := Coordination{path: path}
		err := c.Load()
		gt.Value(t, err).NotNil()
	})

	t.Run("rejects a malformed default_locale", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "rallybot.toml")
		gt.NoError(t, os.WriteFile(path, []byte("default_locale = \"!!\"\n"), 0600)).Required()

		c := Coordination{path: path}
		err := c.Load()
		gt.Value(t, err).NotNil()
	})

	t.Run("rejects a missing file", func(t *testing.T) {
		c := Coordination{path: filepath.Join(t.TempDir(), "absent.toml")}
		err := c.Load()
		gt.Value(t, err).NotNil()
	})

	t.Run("rejects malformed TOML", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "rallybot.toml")
		gt.NoError(t, os.WriteFile(path, []byte("superuser = [broken\n"), 0600)).Required()

		c := Coordination{path: path}
		err := c.Load()
		gt.Value(t, err).NotNil()
	})
}
