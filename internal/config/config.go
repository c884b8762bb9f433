// Package config provides configuration management.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"

	"freight-rate/core/types"
	"freight-rate/internal/logging"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version"`

	// Rating contains rating engine defaults
	Rating Defaults `json:"rating"`

	// Store contains document store configuration
	Store StoreConfig `json:"store"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// Defaults holds the engine's business defaults. Every value here is a
// system-wide fallback that carrier configuration may override.
type Defaults struct {
	// DimFactor is the dimensional weight divisor
	DimFactor float64 `json:"dim_factor"`

	// CostMarginRatio is the assumed internal-cost fraction of the
	// customer charge when a rate card carries no explicit cost
	CostMarginRatio decimal.Decimal `json:"cost_margin_ratio"`

	// ZonePrefixLen is how many postal/zip characters key a zone-pair lookup
	ZonePrefixLen int `json:"zone_prefix_len"`

	// RoundUpSkidBreaks rounds an unlisted skid count up to the next
	// published break instead of failing the lookup
	RoundUpSkidBreaks bool `json:"round_up_skid_breaks"`

	// DefaultCurrency is used when a rate card names none
	DefaultCurrency types.Currency `json:"default_currency"`

	// ShopWorkers bounds concurrent carrier evaluations in a shop
	ShopWorkers int `json:"shop_workers"`

	// Accessorials is the seed table of additional services
	Accessorials []types.AccessorialDef `json:"accessorials"`
}

// StoreConfig contains document store settings
type StoreConfig struct {
	// Backend selects the store implementation (memory, mongo)
	Backend string `json:"backend"`

	// SnapshotPath is the JSON snapshot file for the memory backend
	SnapshotPath string `json:"snapshot_path"`

	// MongoURI is the connection string for the mongo backend
	MongoURI string `json:"mongo_uri,omitempty"`

	// MongoDatabase is the database name for the mongo backend
	MongoDatabase string `json:"mongo_database,omitempty"`
}

// DefaultDefaults returns the engine's stock business defaults.
func DefaultDefaults() Defaults {
	return Defaults{
		DimFactor:         166,
		CostMarginRatio:   decimal.NewFromFloat(0.70),
		ZonePrefixLen:     3,
		RoundUpSkidBreaks: true,
		DefaultCurrency:   types.CurrencyCAD,
		ShopWorkers:       4,
		Accessorials:      types.SeedAccessorials(),
	}
}

// Default returns a default configuration
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	snapshotPath := filepath.Join(homeDir, ".freight-rate", "carriers.json")

	return &Config{
		Version: "1.0",
		Rating:  DefaultDefaults(),
		Store: StoreConfig{
			Backend:       "memory",
			SnapshotPath:  snapshotPath,
			MongoDatabase: "freight",
		},
		Logging: logging.DefaultConfig(),
	}
}

// Load loads configuration from a file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, err
	}

	return config, nil
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}
