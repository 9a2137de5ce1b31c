package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/viper"
)

// Config is the sidecar's process-level configuration. Policy numbers
// live in the tuning file it points at, not here.
type Config struct {
	Socket   string        `mapstructure:"socket"`
	LogLevel string        `mapstructure:"logLevel"`
	Tuning   string        `mapstructure:"tuning"`
	Seed     int64         `mapstructure:"seed"`
	Reports  ReportsConfig `mapstructure:"reports"`
}

type ReportsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// Load reads defaults, then the optional config file, then ELERIUM_*
// environment variables. An empty path skips the file.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetDefault("socket", "/tmp/elerium.sock")
	v.SetDefault("logLevel", "info")
	v.SetDefault("tuning", "")
	v.SetDefault("seed", 1)
	v.SetDefault("reports.enabled", false)
	v.SetDefault("reports.path", "./data/reports.db")

	v.SetEnvPrefix("elerium")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return c, nil
}

// Level maps the configured level name onto slog, defaulting to info.
func (c Config) Level() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
