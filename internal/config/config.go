// Package config loads miniature's settings from .miniature/config.yaml,
// MINIATURE_* environment variables and command-line flags, in increasing
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/inovacc/miniature/internal/application"
	"github.com/inovacc/miniature/internal/history"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix prefixes every environment variable read by miniature.
	EnvPrefix = "MINIATURE"

	// ProjectDir holds the per-project configuration and registry.
	ProjectDir = ".miniature"

	// DefaultFile is the project-relative configuration file.
	DefaultFile = ProjectDir + "/config.yaml"

	// DefaultRegistry is the project-relative registry file.
	DefaultRegistry = ProjectDir + "/gitdbs.json"
)

// HistoryConfig controls the load history store.
type HistoryConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// Config holds all runtime configuration.
type Config struct {
	Registry         string        `mapstructure:"registry"`
	MetaFile         string        `mapstructure:"meta_file"`
	Remote           string        `mapstructure:"remote"`
	GitPath          string        `mapstructure:"git_path"`
	CredentialHelper bool          `mapstructure:"credential_helper"`
	ScanSecrets      bool          `mapstructure:"scan_secrets"`
	LogLevel         string        `mapstructure:"log_level"`
	History          HistoryConfig `mapstructure:"history"`
}

// Loader wraps a dedicated viper instance.
type Loader struct {
	v *viper.Viper
}

// NewLoader returns a Loader with defaults and environment lookup set up.
func NewLoader() *Loader {
	v := viper.New()

	v.SetDefault("registry", DefaultRegistry)
	v.SetDefault("meta_file", "pkg.json")
	v.SetDefault("remote", "origin")
	v.SetDefault("git_path", "")
	v.SetDefault("credential_helper", false)
	v.SetDefault("scan_secrets", true)
	v.SetDefault("log_level", "info")
	v.SetDefault("history.enabled", true)
	v.SetDefault("history.path", "")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return &Loader{v: v}
}

// BindFlag makes flag override key when it is set on the command line.
func (l *Loader) BindFlag(key string, flag *pflag.Flag) error {
	if flag == nil {
		return fmt.Errorf("no flag for config key %s", key)
	}

	return l.v.BindPFlag(key, flag)
}

// Load reads file, or DefaultFile when file is empty. Only an explicitly
// named file is required to exist.
func (l *Loader) Load(file string) (Config, error) {
	explicit := file != ""
	if !explicit {
		file = DefaultFile
	}

	l.v.SetConfigFile(file)

	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		missing := errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)

		if explicit || !missing {
			return Config{}, fmt.Errorf("failed to read config %s: %w", file, err)
		}
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}

	return cfg, nil
}

// ConfigFileUsed returns the file values were read from, if any.
func (l *Loader) ConfigFileUsed() string {
	if _, err := os.Stat(l.v.ConfigFileUsed()); err != nil {
		return ""
	}

	return l.v.ConfigFileUsed()
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q", c.LogLevel)
	}

	return level, nil
}

// HistoryFile returns the history database path, defaulting to a file in
// the per-user state directory.
func (c Config) HistoryFile() (string, error) {
	if c.History.Path != "" {
		return c.History.Path, nil
	}

	return application.StatePath(history.FileName)
}
