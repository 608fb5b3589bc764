package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Economy backends.
const (
	EconomyNone   = "none"
	EconomyMemory = "memory"
	EconomyRedis  = "redis"
	EconomySQLite = "sqlite"
)

type Config struct {
	Environment  string        `mapstructure:"environment" validate:"required,oneof=development production test"`
	LogLevelName string        `mapstructure:"log_level" validate:"required,oneof=debug info warn warning error"`
	Port         string        `mapstructure:"port" validate:"required,numeric"`
	WorldFile    string        `mapstructure:"world_file"`
	MessagesFile string        `mapstructure:"messages_file"`
	ItemsFile    string        `mapstructure:"items_file"`
	Economy      EconomyConfig `mapstructure:"economy"`

	// LogLevel is derived from LogLevelName.
	LogLevel slog.Level `mapstructure:"-"`
}

type EconomyConfig struct {
	Backend    string `mapstructure:"backend" validate:"required,oneof=none memory redis sqlite"`
	RedisURL   string `mapstructure:"redis_url" validate:"required_if=Backend redis"`
	SQLitePath string `mapstructure:"sqlite_path"`
	Currency   string `mapstructure:"currency"`
	Decimals   int    `mapstructure:"decimals" validate:"min=0,max=8"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("port", "8080")
	v.SetDefault("world_file", "")
	v.SetDefault("messages_file", "")
	v.SetDefault("items_file", "")
	v.SetDefault("economy.backend", EconomyMemory)
	v.SetDefault("economy.redis_url", "")
	v.SetDefault("economy.sqlite_path", "")
	v.SetDefault("economy.currency", "coins")
	v.SetDefault("economy.decimals", 2)
}

// Load reads configuration with priority, highest first:
// 1. Environment variables (CRAFT_ prefix, e.g. CRAFT_ECONOMY_BACKEND)
// 2. The config file at path, when path is not empty
// 3. Defaults
// A .env file in the working directory is loaded into the environment first.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("CRAFT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	normalize(&cfg)
	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	cfg.LogLevel = parseLogLevel(cfg.LogLevelName)
	return &cfg, nil
}

// normalize lowercases the enumerated settings so that "DEBUG" or "Redis"
// pass validation.
func normalize(cfg *Config) {
	cfg.Environment = strings.ToLower(strings.TrimSpace(cfg.Environment))
	cfg.LogLevelName = strings.ToLower(strings.TrimSpace(cfg.LogLevelName))
	cfg.Economy.Backend = strings.ToLower(strings.TrimSpace(cfg.Economy.Backend))
}

// Validate checks cfg against its struct tags.
func Validate(cfg *Config) error {
	err := validator.New().Struct(cfg)

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	messages := make([]string, 0, len(validationErrs))
	for _, e := range validationErrs {
		messages = append(messages, fmt.Sprintf(
			"field '%s' failed validation: %s (value: '%v')",
			e.Namespace(),
			e.Tag(),
			e.Value(),
		))
	}
	return fmt.Errorf("validation failed:\n  %s", strings.Join(messages, "\n  "))
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
