package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/example/tvorets/pkg/models"
)

// Config is the runtime configuration of the app
type Config struct {
	DBType      string `validate:"oneof=sqlite postgres badger memory"`
	DBPath      string `validate:"required_if=DBType sqlite"`
	DatabaseURL string `validate:"required_if=DBType postgres"`
	BadgerDir   string `validate:"required_if=DBType badger"`

	Language string `validate:"oneof=ua en"`
	Timezone string

	LogLevel       string `validate:"oneof=debug info warn error"`
	LogDevelopment bool

	TelegramToken  string
	TelegramChatID int64

	MetricsAddr string `validate:"omitempty,hostname_port"`
	CatalogPath string `validate:"omitempty,file"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		DBType:    "sqlite",
		DBPath:    "data/tvorets.db",
		BadgerDir: "data/badger",
		Language:  string(models.LangEN),
		LogLevel:  "info",
	}
}

// Load reads .env files (missing ones are fine) and the environment on top of
// the defaults, then validates the result
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	cfg := DefaultConfig()
	if err := cfg.applyEnv(os.Getenv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	str := func(key string, dst *string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}

	str("DB_TYPE", &c.DBType)
	str("DB_PATH", &c.DBPath)
	str("DATABASE_URL", &c.DatabaseURL)
	str("BADGER_DIR", &c.BadgerDir)
	str("APP_LANGUAGE", &c.Language)
	str("TZ_NAME", &c.Timezone)
	str("LOG_LEVEL", &c.LogLevel)
	str("TELEGRAM_BOT_TOKEN", &c.TelegramToken)
	str("METRICS_ADDR", &c.MetricsAddr)
	str("CHALLENGE_CATALOG", &c.CatalogPath)

	c.DBType = strings.ToLower(c.DBType)
	c.Language = strings.ToLower(c.Language)
	c.LogLevel = strings.ToLower(c.LogLevel)

	if v := strings.TrimSpace(getenv("LOG_DEVELOPMENT")); v != "" {
		dev, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid LOG_DEVELOPMENT %q: %w", v, err)
		}
		c.LogDevelopment = dev
	}
	if v := strings.TrimSpace(getenv("TELEGRAM_CHAT_ID")); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid TELEGRAM_CHAT_ID %q: %w", v, err)
		}
		c.TelegramChatID = id
	}
	return nil
}

// Validate checks the struct tags and the timezone name
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves Timezone, empty means time.Local
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid TZ_NAME %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Lang is the default language of generated copy
func (c *Config) Lang() models.Language {
	return models.ParseLanguage(c.Language)
}

// TelegramEnabled reports whether the bot can start
func (c *Config) TelegramEnabled() bool {
	return c.TelegramToken != ""
}
