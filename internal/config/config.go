// Package config defines the data structures related to configuration and
// includes functions for loading and validating the config.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/loanlens/loanlens/internal/banks"
	"github.com/loanlens/loanlens/pkg/constants"
	"github.com/loanlens/loanlens/pkg/validation"
)

// Configuration holds all configuration for loanlens.
type Configuration struct {
	Logging  LoggingConfig  `yaml:"logging,omitempty"`
	Output   OutputConfig   `yaml:"output,omitempty"`
	Server   ServerConfig   `yaml:"server,omitempty"`
	Cache    CacheConfig    `yaml:"cache,omitempty"`
	Currency CurrencyConfig `yaml:"currency,omitempty"`
	Bounds   BoundsConfig   `yaml:"bounds,omitempty"`
	Banks    []BankOffer    `yaml:"banks,omitempty"`
	Expenses ExpensesConfig `yaml:"expenses,omitempty"`
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

// ServerConfig holds the HTTP server options.
type ServerConfig struct {
	Address        string   `yaml:"address,omitempty"`
	AllowedOrigins []string `yaml:"allowedOrigins,omitempty"`
}

// CacheConfig holds the schedule cache options. An empty RedisAddr selects
// the in-memory cache.
type CacheConfig struct {
	RedisAddr  string `yaml:"redisAddr,omitempty"`
	TTLMinutes int    `yaml:"ttlMinutes,omitempty"`
}

// CurrencyConfig selects the currency symbol used in rendered output.
type CurrencyConfig struct {
	Symbol string `yaml:"symbol,omitempty"`
}

// BoundsConfig holds the input ranges enforced before the engine runs.
type BoundsConfig struct {
	MinPrincipal   float64 `yaml:"minPrincipal,omitempty"`
	MaxRatePercent float64 `yaml:"maxRatePercent,omitempty"`
	MinTermYears   int     `yaml:"minTermYears,omitempty"`
	MaxTermYears   int     `yaml:"maxTermYears,omitempty"`
}

// BankOffer is one row of the static bank offer table.
type BankOffer struct {
	Bank                 string  `yaml:"bank"`
	MinAmount            float64 `yaml:"minAmount"`
	MaxAmount            float64 `yaml:"maxAmount"`
	AnnualRatePercent    float64 `yaml:"annualRatePercent"`
	MaxTermYears         int     `yaml:"maxTermYears"`
	ProcessingFeePercent float64 `yaml:"processingFeePercent,omitempty"`
}

// ExpensesConfig selects the expense tracker backend.
type ExpensesConfig struct {
	Backend string `yaml:"backend,omitempty"` // csv, sqlite
	Path    string `yaml:"path,omitempty"`
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there. A .env file in the working directory, when present,
// is loaded first so environment overrides apply.
func LoadConfiguration(configPath string) (*Configuration, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("error loading .env file, %s", err)
		}
	}

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

	configuration.applyDefaults()
	return &configuration, nil
}

func (c *Configuration) applyDefaults() {
	if c.Server.Address == "" {
		c.Server.Address = constants.DefaultServerAddress
	}
	if c.Cache.TTLMinutes <= 0 {
		c.Cache.TTLMinutes = constants.DefaultCacheTTLMinutes
	}
	if c.Currency.Symbol == "" {
		c.Currency.Symbol = constants.DefaultCurrencySymbol
	}
	if c.Bounds.MinPrincipal <= 0 {
		c.Bounds.MinPrincipal = constants.DefaultMinPrincipal
	}
	if c.Bounds.MaxRatePercent <= 0 {
		c.Bounds.MaxRatePercent = constants.DefaultMaxRatePercent
	}
	if c.Bounds.MinTermYears <= 0 {
		c.Bounds.MinTermYears = constants.DefaultMinTermYears
	}
	if c.Bounds.MaxTermYears <= 0 {
		c.Bounds.MaxTermYears = constants.DefaultMaxTermYears
	}
	if c.Expenses.Backend == "" {
		c.Expenses.Backend = "csv"
	}
	if c.Expenses.Path == "" {
		c.Expenses.Path = "expenses.csv"
	}
}

// ValidationBounds converts the configured bounds for the validation layer.
func (c *Configuration) ValidationBounds() validation.Bounds {
	return validation.Bounds{
		MinPrincipal:   c.Bounds.MinPrincipal,
		MaxRatePercent: c.Bounds.MaxRatePercent,
		MinTermYears:   c.Bounds.MinTermYears,
		MaxTermYears:   c.Bounds.MaxTermYears,
	}
}

// BankOffers converts the configured offer table for the comparator.
func (c *Configuration) BankOffers() []banks.Offer {
	offers := make([]banks.Offer, 0, len(c.Banks))
	for _, row := range c.Banks {
		offers = append(offers, banks.Offer{
			Bank:                 row.Bank,
			MinAmount:            row.MinAmount,
			MaxAmount:            row.MaxAmount,
			AnnualRatePercent:    row.AnnualRatePercent,
			MaxTermYears:         row.MaxTermYears,
			ProcessingFeePercent: row.ProcessingFeePercent,
		})
	}
	return offers
}

// ValidateConfiguration performs general validation of the configuration and
// returns warnings.
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if c.Bounds.MinTermYears > c.Bounds.MaxTermYears {
		warnings = append(warnings, fmt.Sprintf("term bounds inverted (%d > %d years)",
			c.Bounds.MinTermYears, c.Bounds.MaxTermYears))
	}
	for _, offer := range c.Banks {
		if offer.Bank == "" {
			warnings = append(warnings, "bank offer with empty name")
		}
		if offer.MinAmount > offer.MaxAmount {
			warnings = append(warnings, fmt.Sprintf("bank offer '%s' has inverted amount bounds (%.2f > %.2f)",
				offer.Bank, offer.MinAmount, offer.MaxAmount))
		}
		if offer.AnnualRatePercent < 0 {
			warnings = append(warnings, fmt.Sprintf("bank offer '%s' has a negative rate", offer.Bank))
		}
		if offer.MaxTermYears <= 0 {
			warnings = append(warnings, fmt.Sprintf("bank offer '%s' has a non-positive term cap", offer.Bank))
		}
	}
	if c.Expenses.Backend != "csv" && c.Expenses.Backend != "sqlite" {
		warnings = append(warnings, fmt.Sprintf("unknown expense backend '%s', expected csv or sqlite",
			c.Expenses.Backend))
	}
	return warnings
}
