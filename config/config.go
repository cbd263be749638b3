package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
)

// Config holds application configuration loaded from environment variables.
// The static admin sources (Telegram ids and phone numbers) are loaded once
// at startup and never change for the lifetime of the process.
type Config struct {
	Port  string `env:"PORT" envDefault:"8080"`
	Debug bool   `env:"DEBUG" envDefault:"false"`

	// Either a full DSN or the discrete DB_* parts.
	DatabaseURL string `env:"DATABASE_URL"`
	DBHost      string `env:"DB_HOST" envDefault:"localhost"`
	DBPort      string `env:"DB_PORT" envDefault:"5432"`
	DBUser      string `env:"DB_USER" envDefault:"postgres"`
	DBPassword  string `env:"DB_PASSWORD" envDefault:"postgres"`
	DBName      string `env:"DB_NAME" envDefault:"telegram_mini_app"`

	CORSAllowedOrigins []string `env:"BACKEND_CORS_ORIGINS" envSeparator:"," envDefault:"*"`

	AdminTelegramIDs  []int64  `env:"ADMIN_TELEGRAM_IDS" envSeparator:","`
	AdminPhoneNumbers []string `env:"ADMIN_PHONE_NUMBERS" envSeparator:","`

	MediaRoot string `env:"MEDIA_ROOT" envDefault:"static/uploads"`
	MediaURL  string `env:"MEDIA_URL" envDefault:"/static/uploads"`
}

// Load parses the environment into a Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

// DSN returns the Postgres connection string, preferring DATABASE_URL.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort,
	)
}
