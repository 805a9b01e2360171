package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Load reads configuration from file, environment, and CLI flags.
// Priority (highest to lowest): CLI flags > env vars > config file > defaults.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigType("yaml")

	setDefaults(v, cfg)

	v.SetEnvPrefix("BLOOMHOUND")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("bloomhound")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(home, ".bloomhound"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && configPath != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is okay if not explicitly specified
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

// setDefaults registers default values in viper.
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("site.base_url", cfg.Site.BaseURL)
	v.SetDefault("site.discovery_url", cfg.Site.DiscoveryURL)
	v.SetDefault("site.ignored_collections", cfg.Site.IgnoredCollections)

	v.SetDefault("browser.viewport_width", cfg.Browser.ViewportWidth)
	v.SetDefault("browser.viewport_height", cfg.Browser.ViewportHeight)
	v.SetDefault("browser.headless", cfg.Browser.Headless)
	v.SetDefault("browser.stealth", cfg.Browser.Stealth)
	v.SetDefault("browser.nav_timeout", cfg.Browser.NavTimeout)
	v.SetDefault("browser.modal_timeout", cfg.Browser.ModalTimeout)
	v.SetDefault("browser.modal_close_wait", cfg.Browser.ModalCloseWait)

	v.SetDefault("scroll.step_divisor", cfg.Scroll.StepDivisor)
	v.SetDefault("scroll.initial_wait", cfg.Scroll.InitialWait)
	v.SetDefault("scroll.scroll_wait", cfg.Scroll.ScrollWait)
	v.SetDefault("scroll.check_interval", cfg.Scroll.CheckInterval)
	v.SetDefault("scroll.max_wait", cfg.Scroll.MaxWait)
	v.SetDefault("scroll.tolerance", cfg.Scroll.Tolerance)

	v.SetDefault("limits.max_products", cfg.Limits.MaxProducts)
	v.SetDefault("limits.max_per_category", cfg.Limits.MaxPerCategory)
	v.SetDefault("limits.max_categories", cfg.Limits.MaxCategories)
	v.SetDefault("limits.max_collections", cfg.Limits.MaxCollections)
	v.SetDefault("limits.max_occasions", cfg.Limits.MaxOccasions)
	v.SetDefault("limits.max_retries", cfg.Limits.MaxRetries)

	v.SetDefault("detail.enabled", cfg.Detail.Enabled)
	v.SetDefault("detail.timeout", cfg.Detail.Timeout)
	v.SetDefault("detail.concurrency", cfg.Detail.Concurrency)
	v.SetDefault("detail.scroll_step", cfg.Detail.ScrollStep)
	v.SetDefault("detail.scroll_pause", cfg.Detail.ScrollPause)

	v.SetDefault("storage.type", cfg.Storage.Type)
	v.SetDefault("storage.output_path", cfg.Storage.OutputPath)
	v.SetDefault("storage.mongo_uri", cfg.Storage.MongoURI)
	v.SetDefault("storage.mongo_database", cfg.Storage.MongoDatabase)
	v.SetDefault("storage.mongo_collection", cfg.Storage.MongoCollection)

	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.format", cfg.Logging.Format)

	v.SetDefault("metrics.enabled", cfg.Metrics.Enabled)
	v.SetDefault("metrics.port", cfg.Metrics.Port)
	v.SetDefault("metrics.path", cfg.Metrics.Path)
}
