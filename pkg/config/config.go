// Package config reads the job's settings from the environment.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/spencer-p/nykpcurrents/pkg/noaa"
)

// ErrNoDestination means neither a Slack webhook nor a bot token is set.
var ErrNoDestination = errors.New("no Slack destination: set SLACK_WEBHOOK_URL, or SLACK_TOKEN and SLACK_CHANNEL")

type Config struct {
	NOAAURL         string        `envconfig:"NOAA_URL"`
	NOAAApplication string        `envconfig:"NOAA_APPLICATION" default:"nykp_currents"`
	HTTPTimeout     time.Duration `envconfig:"HTTP_TIMEOUT" default:"30s"`

	SlackWebhookURL string `envconfig:"SLACK_WEBHOOK_URL"`
	SlackToken      string `envconfig:"SLACK_TOKEN"`
	SlackChannel    string `envconfig:"SLACK_CHANNEL"`
	SlackAPIURL     string `envconfig:"SLACK_API_URL" default:"https://slack.com/api/"`

	DatabaseURL    string `envconfig:"DATABASE_URL"`
	PushgatewayURL string `envconfig:"PUSHGATEWAY_URL"`
	PushJob        string `envconfig:"PUSH_JOB" default:"postcurrents"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"text"`

	Daylight bool `envconfig:"DAYLIGHT" default:"false"`
}

// Load reads the environment, applying defaults where unset.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if cfg.NOAAURL == "" {
		cfg.NOAAURL = noaa.NOAA_URL
	}

	if cfg.HTTPTimeout <= 0 {
		return nil, fmt.Errorf("HTTP_TIMEOUT must be positive, got %s", cfg.HTTPTimeout)
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("LOG_LEVEL must be debug, info, warn or error, got %q", cfg.LogLevel)
	}
	switch cfg.LogFormat {
	case "text", "json":
	default:
		return nil, fmt.Errorf("LOG_FORMAT must be text or json, got %q", cfg.LogFormat)
	}
	if cfg.SlackToken != "" && cfg.SlackChannel == "" {
		return nil, errors.New("SLACK_TOKEN is set but SLACK_CHANNEL is not")
	}

	return &cfg, nil
}

// Destination reports which Slack delivery is configured, preferring the
// webhook: "slack-webhook" or "slack-bot". It returns ErrNoDestination if
// there is none.
func (c *Config) Destination() (string, error) {
	switch {
	case c.SlackWebhookURL != "":
		return "slack-webhook", nil
	case c.SlackToken != "":
		return "slack-bot", nil
	default:
		return "", ErrNoDestination
	}
}
