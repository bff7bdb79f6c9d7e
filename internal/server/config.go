package server

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/avdeyev/mortgage-planner/internal/config"
	"github.com/avdeyev/mortgage-planner/pkg/constants"
	"gopkg.in/yaml.v3"
)

// Config defines runtime parameters for the HTTP server.
type Config struct {
	Address string               `yaml:"address"`
	Logging config.LoggingConfig `yaml:"logging"`
	Feeds   config.FeedsConfig   `yaml:"feeds"`
}

// LoadConfig loads the server configuration from YAML. If the file does not
// exist, defaults are returned without error.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{
		Address: constants.DefaultServerAddress,
	}
	cfg.normalize()

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read server config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse server config: %w", err)
	}

	cfg.normalize()
	return cfg, nil
}

func (c *Config) normalize() {
	if c.Address == "" {
		c.Address = constants.DefaultServerAddress
	}
	if c.Feeds.MarketURL == "" {
		c.Feeds.MarketURL = constants.DefaultMarketFeedURL
	}
	if c.Feeds.RateURL == "" {
		c.Feeds.RateURL = constants.DefaultRateFeedURL
	}
	if c.Feeds.TimeoutSeconds <= 0 {
		c.Feeds.TimeoutSeconds = constants.DefaultFeedTimeoutSeconds
	}
	if c.Feeds.Redis.TTLSeconds <= 0 {
		c.Feeds.Redis.TTLSeconds = constants.DefaultFeedCacheTTLSeconds
	}
}
