package config

import "time"

// SetDefaults sets default values for all configuration fields
func SetDefaults(cfg *Config) {
	if cfg.Catalog.Path == "" {
		cfg.Catalog.Path = "./recipes"
	}
	if cfg.Catalog.DefaultQuantity == 0 {
		cfg.Catalog.DefaultQuantity = 1
	}

	if cfg.Output.Format == "" {
		cfg.Output.Format = "text"
	}

	if cfg.Cache.TTL == 0 {
		cfg.Cache.TTL = 5 * time.Minute
	}
}
