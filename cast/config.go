package cast

import (
	"errors"
	"fmt"
	"strings"

	"github.com/AnatoleLucet/reactive/internal/logging"
	"github.com/spf13/viper"
)

// Config holds the shell configuration.
type Config struct {
	Audio             AudioConfig   `mapstructure:"audio" yaml:"audio"`
	FinishOnUserLeave bool          `mapstructure:"finish_on_user_leave" yaml:"finish_on_user_leave"`
	MuteOnFocusLoss   bool          `mapstructure:"mute_on_focus_loss" yaml:"mute_on_focus_loss"`
	Logging           LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

type AudioConfig struct {
	// RequestFocus makes resumed activities hold audio focus.
	RequestFocus bool   `mapstructure:"request_focus" yaml:"request_focus"`
	Stream       string `mapstructure:"stream" yaml:"stream"`
	Gain         string `mapstructure:"gain" yaml:"gain"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Audio: AudioConfig{
			RequestFocus: true,
			Stream:       StreamMusic.String(),
			Gain:         GainFull.String(),
		},
		FinishOnUserLeave: true,
		MuteOnFocusLoss:   true,
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// LoadConfig reads the configuration from path, CASTSHELL_* environment
// variables and defaults, in decreasing priority.
// With an empty path, castshell.yaml is looked up in the working directory
// and its absence is not an error.
func LoadConfig(path string) (Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("castshell")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("CASTSHELL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v, DefaultConfig())

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, &Error{Op: "LoadConfig", Kind: KindConfig, Err: fmt.Errorf("failed to read config file: %w", err)}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, &Error{Op: "LoadConfig", Kind: KindConfig, Err: fmt.Errorf("failed to decode config: %w", err)}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("audio.request_focus", d.Audio.RequestFocus)
	v.SetDefault("audio.stream", d.Audio.Stream)
	v.SetDefault("audio.gain", d.Audio.Gain)
	v.SetDefault("finish_on_user_leave", d.FinishOnUserLeave)
	v.SetDefault("mute_on_focus_loss", d.MuteOnFocusLoss)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
}

// Validate checks that every enumerated value is known.
func (c Config) Validate() error {
	if _, err := c.FocusRequest(); err != nil {
		return err
	}
	if _, err := c.LoggingConfig(); err != nil {
		return err
	}

	return nil
}

// FocusRequest builds the audio focus request described by the config.
func (c Config) FocusRequest() (FocusRequest, error) {
	stream, err := ParseStreamType(c.Audio.Stream)
	if err != nil {
		return FocusRequest{}, &Error{Op: "Config.FocusRequest", Kind: KindConfig, Err: err}
	}

	gain, err := ParseFocusGain(c.Audio.Gain)
	if err != nil {
		return FocusRequest{}, &Error{Op: "Config.FocusRequest", Kind: KindConfig, Err: err}
	}

	return FocusRequest{Stream: stream, Gain: gain}, nil
}

// LoggingConfig converts the logging section for the logging package.
func (c Config) LoggingConfig() (logging.Config, error) {
	cfg := logging.DefaultConfig()

	level, err := logging.ParseLevel(c.Logging.Level)
	if err != nil {
		return cfg, &Error{Op: "Config.LoggingConfig", Kind: KindConfig, Err: err}
	}
	cfg.Level = level

	switch c.Logging.Format {
	case "", "console":
		cfg.Format = "console"
	case "json":
		cfg.Format = "json"
	default:
		return cfg, &Error{Op: "Config.LoggingConfig", Kind: KindConfig, Err: fmt.Errorf("unknown log format %q", c.Logging.Format)}
	}

	return cfg, nil
}
