package config

import "time"

// CatalogConfig holds recipe dataset configuration
type CatalogConfig struct {
	// Path is the directory holding the recipe JSON files
	Path string `mapstructure:"path" validate:"required"`

	// DefaultQuantity is the product quantity assumed when resolve is
	// called without an explicit --quantity
	DefaultQuantity int `mapstructure:"default_quantity" validate:"min=1"`
}

// OutputConfig holds presentation configuration
type OutputConfig struct {
	// Format: text, json
	Format string `mapstructure:"format" validate:"required,oneof=text json"`
}

// CacheConfig holds resolution cache configuration
type CacheConfig struct {
	// Enabled toggles the resolution cache
	Enabled bool `mapstructure:"enabled"`

	// TTL is how long resolved trees stay cached
	TTL time.Duration `mapstructure:"ttl"`
}
