// Package config loads service configuration from environment variables
// using go-envconfig. Defaults mirror the long-standing deployment values:
// port 3333, the shared token secret, a file-based sqlite database.
package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

// Config is the full service configuration.
//
// JWTSecret defaults to the historical shared secret so tokens issued by
// prior deployments keep verifying. Override it in any environment where
// that compatibility is not needed.
type Config struct {
	Port     int    `env:"PORT,       default=3333"`
	DBPath   string `env:"DB_PATH,    default=data/taskboard.db"`
	LogLevel string `env:"LOG_LEVEL,  default=info"`

	JWTSecret string `env:"JWT_SECRET, default=random123"`

	GitHub GitHubConfig
}

// GitHubConfig holds the optional OAuth app credentials. When ClientID is
// empty the /auth/github routes are not registered.
type GitHubConfig struct {
	ClientID     string `env:"GITHUB_CLIENT_ID"`
	ClientSecret string `env:"GITHUB_CLIENT_SECRET"`
	CallbackURL  string `env:"GITHUB_CALLBACK_URL"`
}

// Load reads configuration from the environment.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: processing environment: %w", err)
	}
	return &cfg, nil
}
