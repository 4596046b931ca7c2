package config

import (
	"testing"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/stretchr/testify/require"
)

func parse(vars map[string]string) (*AppConfig, error) {
	return Parse(env.Options{Environment: vars})
}

func TestParseDefaults(t *testing.T) {
	cfg, err := parse(map[string]string{
		"DATABASE_URL": "postgres://localhost/planner",
		"MAIL_FROM":    "planner@example.com",
	})

	assert := require.New(t)
	assert.NoError(err)
	assert.Equal("postgres://localhost/planner", cfg.DatabaseURL)
	assert.Equal("info", cfg.LogLevel)
	assert.Equal("development", cfg.Environment)
	assert.Equal("* * * * *", cfg.DispatchCronSpec)
	assert.Equal(55*time.Second, cfg.DispatchCycleTimeout)
	assert.Equal(10*time.Second, cfg.MailSendTimeout)
	assert.Equal(5*time.Minute, cfg.ReminderClaimLease)
	assert.Equal(MailDriverSES, cfg.MailDriver)
	assert.Equal("us-east-1", cfg.AwsRegion)
	assert.Equal(time.Local, cfg.Location())
}

func TestParseOverrides(t *testing.T) {
	cfg, err := parse(map[string]string{
		"DATABASE_URL":       "postgres://db/planner",
		"LOG_LEVEL":          "DEBUG",
		"ENVIRONMENT":        "Production",
		"DISPATCH_CRON_SPEC": "*/2 * * * *",
		"MAIL_DRIVER":        "LOG",
		"MAIL_SEND_TIMEOUT":  "3s",
		"DISPLAY_TIMEZONE":   "UTC",
	})

	assert := require.New(t)
	assert.NoError(err)
	assert.Equal("debug", cfg.LogLevel)
	assert.Equal("production", cfg.Environment)
	assert.Equal("*/2 * * * *", cfg.DispatchCronSpec)
	assert.Equal(MailDriverLog, cfg.MailDriver)
	assert.Equal(3*time.Second, cfg.MailSendTimeout)
	assert.Equal(time.UTC, cfg.Location())
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		vars map[string]string
	}{
		{name: "missing database url", vars: map[string]string{"MAIL_DRIVER": "log"}},
		{name: "ses without sender", vars: map[string]string{"DATABASE_URL": "postgres://db"}},
		{name: "unknown mail driver", vars: map[string]string{"DATABASE_URL": "postgres://db", "MAIL_DRIVER": "pigeon"}},
		{name: "lease shorter than send timeout", vars: map[string]string{
			"DATABASE_URL": "postgres://db", "MAIL_DRIVER": "log", "REMINDER_CLAIM_LEASE": "5s",
		}},
		{name: "bad duration", vars: map[string]string{
			"DATABASE_URL": "postgres://db", "MAIL_DRIVER": "log", "MAIL_SEND_TIMEOUT": "soon",
		}},
		{name: "unknown timezone", vars: map[string]string{
			"DATABASE_URL": "postgres://db", "MAIL_DRIVER": "log", "DISPLAY_TIMEZONE": "Mars/Olympus",
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := parse(tc.vars)
			require.Error(t, err)
			require.Nil(t, cfg)
		})
	}
}
