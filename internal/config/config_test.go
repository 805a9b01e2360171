package config

import (
	"strings"
	"testing"
	"time"
)

// --- Default Config Tests ---

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := Validate(cfg); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestScrollStep(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Browser.ViewportHeight = 800
	cfg.Scroll.StepDivisor = 1.6
	if got := cfg.ScrollStep(); got != 500 {
		t.Errorf("ScrollStep() = %d, want 500", got)
	}

	cfg.Scroll.StepDivisor = 0
	if got := cfg.ScrollStep(); got != 800 {
		t.Errorf("ScrollStep() with zero divisor = %d, want viewport height", got)
	}
}

// --- Validation Tests ---

func TestValidateRejects(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		frag   string
	}{
		{"tiny viewport", func(c *Config) { c.Browser.ViewportHeight = 400 }, "viewport"},
		{"fast scroll wait", func(c *Config) { c.Scroll.ScrollWait = 50 * time.Millisecond }, "scroll_wait"},
		{"zero retries", func(c *Config) { c.Limits.MaxRetries = 0 }, "max_retries"},
		{"negative cap", func(c *Config) { c.Limits.MaxProducts = -1 }, "max_products"},
		{"bad storage", func(c *Config) { c.Storage.Type = "csv" }, "storage"},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }, "logging.level"},
		{"bad base url", func(c *Config) { c.Site.BaseURL = "not a url" }, "base_url"},
		{"zero divisor", func(c *Config) { c.Scroll.StepDivisor = 0 }, "step_divisor"},
	}

	for _, c := range cases {
		cfg := DefaultConfig()
		c.mutate(cfg)
		err := Validate(cfg)
		if err == nil {
			t.Errorf("%s: expected validation error", c.name)
			continue
		}
		if !strings.Contains(err.Error(), c.frag) {
			t.Errorf("%s: error %q does not mention %q", c.name, err, c.frag)
		}
	}
}

func TestValidateURL(t *testing.T) {
	if err := ValidateURL("https://urbanstems.com"); err != nil {
		t.Errorf("valid URL rejected: %v", err)
	}
	for _, bad := range []string{"", "urbanstems.com", "ftp://x", "https://"} {
		if err := ValidateURL(bad); err == nil {
			t.Errorf("ValidateURL(%q) accepted", bad)
		}
	}
}

// --- Preset Tests ---

func TestApplyPreset(t *testing.T) {
	cfg := DefaultConfig()
	if err := ApplyPreset(cfg, "testing"); err != nil {
		t.Fatalf("testing preset: %v", err)
	}
	if cfg.Limits.MaxProducts != 6 || cfg.Limits.MaxPerCategory != 3 {
		t.Errorf("testing preset limits = %d/%d",
			cfg.Limits.MaxProducts, cfg.Limits.MaxPerCategory)
	}
	if err := Validate(cfg); err != nil {
		t.Errorf("testing preset produced invalid config: %v", err)
	}

	if err := ApplyPreset(cfg, "warp-speed"); err == nil {
		t.Error("unknown preset accepted")
	}
	if err := ApplyPreset(cfg, ""); err != nil {
		t.Errorf("empty preset should be a no-op: %v", err)
	}
}

func TestPresetsAllValid(t *testing.T) {
	for _, name := range []string{"development", "testing", "production", "fast"} {
		cfg := DefaultConfig()
		if err := ApplyPreset(cfg, name); err != nil {
			t.Fatalf("preset %s: %v", name, err)
		}
		if err := Validate(cfg); err != nil {
			t.Errorf("preset %s produces invalid config: %v", name, err)
		}
	}
}
