// Package config loads the tool configuration: an optional .settingskit.yaml
// file, SETTINGSKIT_* environment overrides and secrets read from the
// environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	// FileName is the config file looked up in the working directory when no
	// explicit path is given.
	FileName = ".settingskit"

	EnvPrefix = "SETTINGSKIT"
)

// Config holds the tool settings that are not part of a blueprint.
type Config struct {
	OutputFormat  string        `mapstructure:"output_format" validate:"oneof=xml yaml json"`
	StateFile     string        `mapstructure:"state_file" validate:"required"`
	PreviewImage  string        `mapstructure:"preview_image" validate:"required"`
	LogLevel      string        `mapstructure:"log_level" validate:"oneof=debug info warn error"`
	WatchDebounce time.Duration `mapstructure:"watch_debounce" validate:"gte=0"`

	Secrets Secrets `mapstructure:"-"`
}

// Secrets are only ever read from the environment.
type Secrets struct {
	GitLabToken string `env:"GITLAB_PRIVATE_TOKEN"`
}

var validate = func() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return strings.SplitN(f.Tag.Get("mapstructure"), ",", 2)[0]
	})
	return v
}()

func setDefaults(v *viper.Viper) {
	v.SetDefault("output_format", "xml")
	v.SetDefault("state_file", ".settingskit.state.json")
	v.SetDefault("preview_image", "jetbrains/teamcity-server:latest")
	v.SetDefault("log_level", "info")
	v.SetDefault("watch_debounce", 300*time.Millisecond)
}

// Load reads the configuration. An empty path looks for .settingskit.yaml in
// the working directory and tolerates its absence; an explicit path must
// exist.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		slog.Debug("Config file loaded", "path", v.ConfigFileUsed())
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.OutputFormat = strings.ToLower(cfg.OutputFormat)
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)

	if err := validate.Struct(&cfg); err != nil {
		return nil, formatValidationError(err)
	}

	if err := env.Parse(&cfg.Secrets); err != nil {
		return nil, fmt.Errorf("failed to read secrets from environment: %w", err)
	}

	return &cfg, nil
}

// SlogLevel maps LogLevel to a slog level.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func formatValidationError(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("config validation failed: %w", err)
	}

	var messages []string
	for _, e := range validationErrors {
		key := e.Field()
		switch e.Tag() {
		case "required":
			messages = append(messages, fmt.Sprintf("'%s' must not be empty", key))
		case "oneof":
			messages = append(messages, fmt.Sprintf("'%s' must be one of: %s", key, e.Param()))
		default:
			messages = append(messages, fmt.Sprintf("'%s' is invalid (%s)", key, e.Tag()))
		}
	}
	return fmt.Errorf("config validation failed: %s", strings.Join(messages, "; "))
}
