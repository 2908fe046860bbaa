package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds every environment-driven setting the server needs. It is
// parsed once in main and injected explicitly — nothing reads the
// environment ambiently after startup.
type Config struct {
	Port        string `env:"PORT" envDefault:"8080"`
	Environment string `env:"APP_ENV" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	MongoURI string `env:"MONGODB_URI,required"`
	DBName   string `env:"DB_NAME" envDefault:"velvet"`

	JWTSecret string `env:"JWT_SECRET,required"`

	// OnboardingEnabled gates the whole onboarding surface; when false the
	// routes redirect to HomeURL instead of serving.
	OnboardingEnabled bool   `env:"ONBOARDING_ENABLED" envDefault:"true"`
	HomeURL           string `env:"HOME_URL" envDefault:"/"`

	// SessionDurationHours overrides the nominal onboarding session lifetime
	// used for expiry calculations.
	SessionDurationHours int `env:"SESSION_DURATION_HOURS" envDefault:"24"`

	BillingAPIURL string `env:"BILLING_API_URL"`
	BillingAPIKey string `env:"BILLING_API_KEY"`

	ResendAPIKey string `env:"RESEND_API_KEY"`
	FromEmail    string `env:"FROM_EMAIL"`
}

// Load reads .env (if present) and parses the environment into a Config.
func Load() (*Config, error) {
	// Ignore error in production — env vars set directly
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &cfg, nil
}

// SessionDuration returns the configured session lifetime, falling back to
// 24 hours when the override is zero or negative.
func (c *Config) SessionDuration() time.Duration {
	if c.SessionDurationHours <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(c.SessionDurationHours) * time.Hour
}
