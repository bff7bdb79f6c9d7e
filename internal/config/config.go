// Package config defines the data structures related to configuration and
// includes functions for loading and validating the config.
package config

import (
	"fmt"

	"github.com/avdeyev/mortgage-planner/internal/engine"
	"github.com/avdeyev/mortgage-planner/pkg/constants"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for mortgage-planner.
type Configuration struct {
	Inputs  engine.Inputs `yaml:"inputs"`
	Logging LoggingConfig `yaml:"logging,omitempty"`
	Output  OutputConfig  `yaml:"output,omitempty"`
	Feeds   FeedsConfig   `yaml:"feeds,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv
}

// FeedsConfig holds the endpoints and caching options for the live data feeds.
type FeedsConfig struct {
	Enabled        bool        `yaml:"enabled,omitempty"`
	MarketURL      string      `yaml:"marketUrl,omitempty"`
	RateURL        string      `yaml:"rateUrl,omitempty"`
	TimeoutSeconds int         `yaml:"timeoutSeconds,omitempty"`
	Redis          RedisConfig `yaml:"redis,omitempty"`
}

// RedisConfig holds the optional feed-cache connection options. An empty
// address disables caching entirely.
type RedisConfig struct {
	Address    string `yaml:"address,omitempty"`
	Password   string `yaml:"password,omitempty"`
	DB         int    `yaml:"db,omitempty"`
	TTLSeconds int    `yaml:"ttlSeconds,omitempty"`
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	viper.SetConfigFile(configPath)
	viper.AutomaticEnv()

	viper.SetConfigType("yml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	var configuration Configuration
	err := viper.Unmarshal(&configuration)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	configuration.applyFeedDefaults()
	return &configuration, nil
}

func (c *Configuration) applyFeedDefaults() {
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

// ApplyInputDefaults fills zero-valued calculator inputs with the application
// defaults, so partial configs still produce a complete scenario.
func (c *Configuration) ApplyInputDefaults() {
	defaults := engine.DefaultInputs()
	if c.Inputs.ApartmentPrice == 0 {
		c.Inputs.ApartmentPrice = defaults.ApartmentPrice
	}
	if c.Inputs.Salary == 0 {
		c.Inputs.Salary = defaults.Salary
	}
	if c.Inputs.DownPaymentPercent == 0 {
		c.Inputs.DownPaymentPercent = defaults.DownPaymentPercent
	}
	if c.Inputs.MortgageTerm == 0 {
		c.Inputs.MortgageTerm = defaults.MortgageTerm
	}
	if c.Inputs.MortgageRate == 0 {
		c.Inputs.MortgageRate = defaults.MortgageRate
	}
}

// ValidateConfiguration performs general validation of the configuration and
// returns warnings. The engine itself never validates; questionable inputs
// produce warnings here rather than hard errors.
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if c.Inputs.ApartmentPrice <= 0 {
		warnings = append(warnings, fmt.Sprintf("apartment price %.2f is not positive", c.Inputs.ApartmentPrice))
	}
	if c.Inputs.Salary <= 0 {
		warnings = append(warnings, fmt.Sprintf("salary %.2f is not positive", c.Inputs.Salary))
	}
	if c.Inputs.MonthlySavings < 0 {
		warnings = append(warnings, fmt.Sprintf("monthly savings %.2f is negative", c.Inputs.MonthlySavings))
	}
	if c.Inputs.InitialSavings < 0 {
		warnings = append(warnings, fmt.Sprintf("initial savings %.2f is negative", c.Inputs.InitialSavings))
	}
	if c.Inputs.DownPaymentPercent <= 0 || c.Inputs.DownPaymentPercent > 100 {
		warnings = append(warnings, fmt.Sprintf("down payment percent %.2f is outside (0, 100]", c.Inputs.DownPaymentPercent))
	}
	if c.Inputs.MortgageTerm <= 0 {
		warnings = append(warnings, fmt.Sprintf("mortgage term %d years is not positive", c.Inputs.MortgageTerm))
	}
	if c.Inputs.MonthlySavings > c.Inputs.Salary && c.Inputs.Salary > 0 {
		warnings = append(warnings, "monthly savings exceed salary")
	}
	if c.Inputs.PriceGrowthRate < 0 {
		warnings = append(warnings, fmt.Sprintf("price growth rate %.2f models a declining market", c.Inputs.PriceGrowthRate))
	}

	return warnings
}
