// Package config provides slaccbot configuration from environment variables.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds service configuration. Values come from env vars or defaults.
type Config struct {
	// BotToken is the Slack bot OAuth token, xoxb-... (env: SLACK_BOT_TOKEN).
	BotToken string `env:"SLACK_BOT_TOKEN"`

	// AppToken is the Slack app-level token for Socket Mode, xapp-...
	// (env: SLACK_APP_TOKEN).
	AppToken string `env:"SLACK_APP_TOKEN"`

	// SigningSecret verifies webhook slash-command requests
	// (env: SLACK_SIGNING_SECRET). Empty disables verification.
	SigningSecret string `env:"SLACK_SIGNING_SECRET"`

	// Channel is where the startup greeting is posted (env: SLACK_CHANNEL).
	// The bot must have been added to the channel. Empty disables the greeting.
	Channel string `env:"SLACK_CHANNEL"`

	// ListenAddr is the HTTP listen address for health endpoints and the
	// slash-command webhook (env: LISTEN_ADDR).
	ListenAddr string `env:"LISTEN_ADDR" envDefault:":8090"`

	// LogLevel controls log verbosity: debug, info, warn, error (env: LOG_LEVEL).
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Debug enables Socket Mode client debug logging (env: DEBUG).
	Debug bool `env:"DEBUG" envDefault:"false"`
}

// Parse reads configuration from environment variables.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.BotToken == "" {
		return nil, fmt.Errorf("SLACK_BOT_TOKEN is required")
	}
	if cfg.AppToken == "" {
		return nil, fmt.Errorf("SLACK_APP_TOKEN is required")
	}
	return cfg, nil
}
