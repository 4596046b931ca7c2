package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

const (
	MailDriverSES = "ses"
	MailDriverLog = "log"
)

// AppConfig holds all configuration for the application
type AppConfig struct {
	DatabaseURL string `env:"DATABASE_URL,required"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`

	DispatchCronSpec     string        `env:"DISPATCH_CRON_SPEC" envDefault:"* * * * *"` // Every minute
	DispatchCycleTimeout time.Duration `env:"DISPATCH_CYCLE_TIMEOUT" envDefault:"55s"`
	MailSendTimeout      time.Duration `env:"MAIL_SEND_TIMEOUT" envDefault:"10s"`
	ReminderClaimLease   time.Duration `env:"REMINDER_CLAIM_LEASE" envDefault:"5m"`
	DisplayTimezone      string        `env:"DISPLAY_TIMEZONE" envDefault:"Local"`

	MailDriver         string `env:"MAIL_DRIVER" envDefault:"ses"`
	MailFrom           string `env:"MAIL_FROM"`
	AwsRegion          string `env:"AWS_REGION" envDefault:"us-east-1"`
	AwsAccessKeyID     string `env:"AWS_ACCESS_KEY_ID"`
	AwsSecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY"`

	location *time.Location
}

// Load reads configuration from environment variables and .env file (if present).
func Load() (*AppConfig, error) {
	// Attempt to load .env file. Errors are ignored if the file doesn't exist.
	// godotenv.Load will not override existing env variables.
	_ = godotenv.Load()
	return Parse(env.Options{})
}

// Parse builds the configuration from the process environment, or from opts.Environment when set.
func Parse(opts env.Options) (*AppConfig, error) {
	cfg := &AppConfig{}
	if err := env.Parse(cfg, opts); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.Environment = strings.ToLower(cfg.Environment)
	cfg.MailDriver = strings.ToLower(cfg.MailDriver)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *AppConfig) validate() error {
	switch c.MailDriver {
	case MailDriverSES:
		if c.MailFrom == "" {
			return errors.New("MAIL_FROM is not set")
		}
	case MailDriverLog:
	default:
		return fmt.Errorf("invalid MAIL_DRIVER %q: expected %q or %q", c.MailDriver, MailDriverSES, MailDriverLog)
	}

	if c.MailSendTimeout <= 0 {
		return errors.New("MAIL_SEND_TIMEOUT must be positive")
	}
	if c.DispatchCycleTimeout <= 0 {
		return errors.New("DISPATCH_CYCLE_TIMEOUT must be positive")
	}
	if c.ReminderClaimLease <= c.MailSendTimeout {
		return fmt.Errorf("REMINDER_CLAIM_LEASE (%s) must be longer than MAIL_SEND_TIMEOUT (%s)", c.ReminderClaimLease, c.MailSendTimeout)
	}

	loc, err := time.LoadLocation(c.DisplayTimezone)
	if err != nil {
		return fmt.Errorf("invalid DISPLAY_TIMEZONE: %w", err)
	}
	c.location = loc
	return nil
}

// Location is the time zone event dates are printed in.
func (c *AppConfig) Location() *time.Location {
	if c.location == nil {
		return time.Local
	}
	return c.location
}
