package cast

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "castshell.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Run("defaults without a file", func(t *testing.T) {
		t.Chdir(t.TempDir())

		cfg, err := LoadConfig("")
		require.NoError(t, err)
		assert.Equal(t, DefaultConfig(), cfg)
	})

	t.Run("file overrides defaults", func(t *testing.T) {
		path := writeConfig(t, `
audio:
  stream: alarm
  gain: transient_may_duck
finish_on_user_leave: false
logging:
  level: debug
`)

		cfg, err := LoadConfig(path)
		require.NoError(t, err)

		assert.True(t, cfg.Audio.RequestFocus)
		assert.Equal(t, "alarm", cfg.Audio.Stream)
		assert.Equal(t, "transient_may_duck", cfg.Audio.Gain)
		assert.False(t, cfg.FinishOnUserLeave)
		assert.True(t, cfg.MuteOnFocusLoss)
		assert.Equal(t, "debug", cfg.Logging.Level)
		assert.Equal(t, "console", cfg.Logging.Format)

		req, err := cfg.FocusRequest()
		require.NoError(t, err)
		assert.Equal(t, FocusRequest{Stream: StreamAlarm, Gain: GainTransientMayDuck}, req)
	})

	t.Run("environment overrides the file", func(t *testing.T) {
		path := writeConfig(t, "audio:\n  stream: alarm\n")
		t.Setenv("CASTSHELL_AUDIO_STREAM", "notification")
		t.Setenv("CASTSHELL_MUTE_ON_FOCUS_LOSS", "false")

		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "notification", cfg.Audio.Stream)
		assert.False(t, cfg.MuteOnFocusLoss)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
		require.Error(t, err)

		var castErr *Error
		require.ErrorAs(t, err, &castErr)
		assert.Equal(t, KindConfig, castErr.Kind)
	})

	t.Run("unknown values", func(t *testing.T) {
		_, err := LoadConfig(writeConfig(t, "audio:\n  gain: forever\n"))
		require.Error(t, err)

		_, err = LoadConfig(writeConfig(t, "logging:\n  format: xml\n"))
		require.Error(t, err)

		_, err = LoadConfig(writeConfig(t, "logging:\n  level: loud\n"))
		require.Error(t, err)
	})
}

func TestConfigLogging(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Logging.Level = "warn"
	cfg.Logging.Format = "json"

	lc, err := cfg.LoggingConfig()
	require.NoError(t, err)
	assert.Equal(t, zerolog.WarnLevel, lc.Level)
	assert.Equal(t, "json", lc.Format)
}
