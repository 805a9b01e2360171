package config

import (
	"time"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Config is the root configuration for Bloomhound.
type Config struct {
	Site    SiteConfig    `mapstructure:"site"    yaml:"site"`
	Browser BrowserConfig `mapstructure:"browser" yaml:"browser"`
	Scroll  ScrollConfig  `mapstructure:"scroll"  yaml:"scroll"`
	Limits  LimitsConfig  `mapstructure:"limits"  yaml:"limits"`
	Detail  DetailConfig  `mapstructure:"detail"  yaml:"detail"`
	Storage StorageConfig `mapstructure:"storage" yaml:"storage"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
	Metrics MetricsConfig `mapstructure:"metrics" yaml:"metrics"`
}

// SiteConfig identifies the storefront being crawled.
type SiteConfig struct {
	BaseURL            string   `mapstructure:"base_url"            yaml:"base_url"`
	DiscoveryURL       string   `mapstructure:"discovery_url"       yaml:"discovery_url"`
	IgnoredCollections []string `mapstructure:"ignored_collections" yaml:"ignored_collections"`
}

// BrowserConfig controls the rendering driver.
type BrowserConfig struct {
	ViewportWidth  int           `mapstructure:"viewport_width"  yaml:"viewport_width"`
	ViewportHeight int           `mapstructure:"viewport_height" yaml:"viewport_height"`
	Headless       bool          `mapstructure:"headless"        yaml:"headless"`
	Stealth        bool          `mapstructure:"stealth"         yaml:"stealth"`
	NavTimeout     time.Duration `mapstructure:"nav_timeout"     yaml:"nav_timeout"`
	ModalTimeout   time.Duration `mapstructure:"modal_timeout"   yaml:"modal_timeout"`
	ModalCloseWait time.Duration `mapstructure:"modal_close_wait" yaml:"modal_close_wait"`
}

// ScrollConfig controls the incremental scroll loop on taxonomy pages.
type ScrollConfig struct {
	StepDivisor   float64       `mapstructure:"step_divisor"   yaml:"step_divisor"`
	InitialWait   time.Duration `mapstructure:"initial_wait"   yaml:"initial_wait"`
	ScrollWait    time.Duration `mapstructure:"scroll_wait"    yaml:"scroll_wait"`
	CheckInterval time.Duration `mapstructure:"check_interval" yaml:"check_interval"`
	MaxWait       time.Duration `mapstructure:"max_wait"       yaml:"max_wait"`
	Tolerance     int           `mapstructure:"tolerance"      yaml:"tolerance"`
}

// LimitsConfig caps the size of a run. Zero means unlimited.
type LimitsConfig struct {
	MaxProducts    int `mapstructure:"max_products"     yaml:"max_products"`
	MaxPerCategory int `mapstructure:"max_per_category" yaml:"max_per_category"`
	MaxCategories  int `mapstructure:"max_categories"   yaml:"max_categories"`
	MaxCollections int `mapstructure:"max_collections"  yaml:"max_collections"`
	MaxOccasions   int `mapstructure:"max_occasions"    yaml:"max_occasions"`
	MaxRetries     int `mapstructure:"max_retries"      yaml:"max_retries"`
}

// DetailConfig controls product detail-page enrichment.
type DetailConfig struct {
	Enabled     bool          `mapstructure:"enabled"     yaml:"enabled"`
	Timeout     time.Duration `mapstructure:"timeout"     yaml:"timeout"`
	Concurrency int           `mapstructure:"concurrency" yaml:"concurrency"`
	ScrollStep  int           `mapstructure:"scroll_step" yaml:"scroll_step"`
	ScrollPause time.Duration `mapstructure:"scroll_pause" yaml:"scroll_pause"`
}

// StorageConfig controls catalog persistence.
type StorageConfig struct {
	Type            string `mapstructure:"type"             yaml:"type"`
	OutputPath      string `mapstructure:"output_path"      yaml:"output_path"`
	MongoURI        string `mapstructure:"mongo_uri"        yaml:"mongo_uri"`
	MongoDatabase   string `mapstructure:"mongo_database"   yaml:"mongo_database"`
	MongoCollection string `mapstructure:"mongo_collection" yaml:"mongo_collection"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// MetricsConfig controls the metrics endpoint.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Port    int    `mapstructure:"port"    yaml:"port"`
	Path    string `mapstructure:"path"    yaml:"path"`
}

// ScrollStep derives the per-iteration scroll advance from the viewport height.
func (c *Config) ScrollStep() int {
	if c.Scroll.StepDivisor <= 0 {
		return c.Browser.ViewportHeight
	}
	return int(float64(c.Browser.ViewportHeight) / c.Scroll.StepDivisor)
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Site: SiteConfig{
			BaseURL:            "https://urbanstems.com",
			DiscoveryURL:       "https://urbanstems.com",
			IgnoredCollections: []string{"shop all", "today", "tomorrow"},
		},
		Browser: BrowserConfig{
			ViewportWidth:  1280,
			ViewportHeight: 800,
			Headless:       true,
			Stealth:        false,
			NavTimeout:     30 * time.Second,
			ModalTimeout:   8 * time.Second,
			ModalCloseWait: 1 * time.Second,
		},
		Scroll: ScrollConfig{
			StepDivisor:   1.6,
			InitialWait:   200 * time.Millisecond,
			ScrollWait:    200 * time.Millisecond,
			CheckInterval: 50 * time.Millisecond,
			MaxWait:       3 * time.Second,
			Tolerance:     50,
		},
		Limits: LimitsConfig{
			MaxRetries: 1,
		},
		Detail: DetailConfig{
			Enabled:     true,
			Timeout:     10 * time.Second,
			Concurrency: 3,
			ScrollStep:  80,
			ScrollPause: 2 * time.Second,
		},
		Storage: StorageConfig{
			Type:            "json",
			OutputPath:      "products.json",
			MongoDatabase:   "bloomhound",
			MongoCollection: "products",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Port:    9090,
			Path:    "/metrics",
		},
	}
}
