package config

import (
	"fmt"
	"net/url"
	"time"
)

// Validate checks the configuration for invalid values.
func Validate(cfg *Config) error {
	if err := ValidateURL(cfg.Site.BaseURL); err != nil {
		return fmt.Errorf("site.base_url: %w", err)
	}
	if err := ValidateURL(cfg.Site.DiscoveryURL); err != nil {
		return fmt.Errorf("site.discovery_url: %w", err)
	}

	if cfg.Browser.ViewportWidth < 800 || cfg.Browser.ViewportHeight < 600 {
		return fmt.Errorf("browser viewport must be at least 800x600, got %dx%d",
			cfg.Browser.ViewportWidth, cfg.Browser.ViewportHeight)
	}
	if cfg.Browser.NavTimeout <= 0 {
		return fmt.Errorf("browser.nav_timeout must be > 0")
	}

	if cfg.Scroll.StepDivisor <= 0 {
		return fmt.Errorf("scroll.step_divisor must be > 0, got %v", cfg.Scroll.StepDivisor)
	}
	if cfg.Scroll.ScrollWait < 200*time.Millisecond {
		return fmt.Errorf("scroll.scroll_wait must be at least 200ms, got %s", cfg.Scroll.ScrollWait)
	}
	if cfg.Scroll.CheckInterval <= 0 || cfg.Scroll.MaxWait <= 0 {
		return fmt.Errorf("scroll.check_interval and scroll.max_wait must be > 0")
	}
	if cfg.Scroll.Tolerance < 0 {
		return fmt.Errorf("scroll.tolerance must be >= 0, got %d", cfg.Scroll.Tolerance)
	}

	if cfg.Limits.MaxRetries < 1 {
		return fmt.Errorf("limits.max_retries must be >= 1, got %d", cfg.Limits.MaxRetries)
	}
	for name, v := range map[string]int{
		"limits.max_products":     cfg.Limits.MaxProducts,
		"limits.max_per_category": cfg.Limits.MaxPerCategory,
		"limits.max_categories":   cfg.Limits.MaxCategories,
		"limits.max_collections":  cfg.Limits.MaxCollections,
		"limits.max_occasions":    cfg.Limits.MaxOccasions,
	} {
		if v < 0 {
			return fmt.Errorf("%s must be >= 0, got %d", name, v)
		}
	}

	if cfg.Detail.Enabled {
		if cfg.Detail.Timeout <= 0 {
			return fmt.Errorf("detail.timeout must be > 0")
		}
		if cfg.Detail.Concurrency < 1 {
			return fmt.Errorf("detail.concurrency must be >= 1, got %d", cfg.Detail.Concurrency)
		}
	}

	switch cfg.Storage.Type {
	case "json":
		if cfg.Storage.OutputPath == "" {
			return fmt.Errorf("storage.output_path is required for json storage")
		}
	case "mongodb":
		if cfg.Storage.MongoURI == "" {
			return fmt.Errorf("storage.mongo_uri is required for mongodb storage")
		}
	default:
		return fmt.Errorf("storage.type %q is not supported (valid: json, mongodb)", cfg.Storage.Type)
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLogLevels[cfg.Logging.Level] {
		return fmt.Errorf("logging.level must be debug/info/warn/error, got %q", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "text" && cfg.Logging.Format != "json" {
		return fmt.Errorf("logging.format must be 'text' or 'json', got %q", cfg.Logging.Format)
	}

	if cfg.Metrics.Enabled {
		if cfg.Metrics.Port < 1 || cfg.Metrics.Port > 65535 {
			return fmt.Errorf("metrics.port must be 1-65535, got %d", cfg.Metrics.Port)
		}
	}

	return nil
}

// ValidateURL checks if a URL string is usable as a crawl root.
func ValidateURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("URL scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("URL has no host")
	}
	return nil
}
