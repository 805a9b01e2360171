package config

import (
	"fmt"
	"time"
)

// ApplyPreset overlays a named tuning preset on the config. Presets adjust
// timing, limits and the output path; explicit CLI flags still win because
// they are applied after the preset.
func ApplyPreset(cfg *Config, name string) error {
	switch name {
	case "":
		return nil
	case "development":
		cfg.Browser.Headless = false
		cfg.Scroll.InitialWait = 2 * time.Second
		cfg.Scroll.ScrollWait = 1500 * time.Millisecond
		cfg.Limits.MaxProducts = 10
		cfg.Limits.MaxPerCategory = 5
		cfg.Storage.OutputPath = "dev_products.json"
	case "testing":
		cfg.Browser.Headless = true
		cfg.Scroll.InitialWait = 1 * time.Second
		cfg.Scroll.ScrollWait = 1 * time.Second
		cfg.Limits.MaxProducts = 6
		cfg.Limits.MaxPerCategory = 3
		cfg.Limits.MaxRetries = 2
		cfg.Storage.OutputPath = "test_products.json"
	case "production":
		cfg.Browser.Headless = true
		cfg.Scroll.InitialWait = 3 * time.Second
		cfg.Scroll.ScrollWait = 2 * time.Second
		cfg.Limits.MaxRetries = 5
		cfg.Storage.OutputPath = "products.json"
	case "fast":
		cfg.Browser.Headless = true
		cfg.Scroll.InitialWait = 1 * time.Second
		cfg.Scroll.ScrollWait = 1 * time.Second
		cfg.Limits.MaxRetries = 2
		cfg.Limits.MaxPerCategory = 20
		cfg.Storage.OutputPath = "fast_products.json"
	default:
		return fmt.Errorf("unknown preset %q (valid: development, testing, production, fast)", name)
	}
	return nil
}
