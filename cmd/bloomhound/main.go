package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/bloomhound/bloomhound/internal/browser"
	"github.com/bloomhound/bloomhound/internal/config"
	"github.com/bloomhound/bloomhound/internal/engine"
	"github.com/bloomhound/bloomhound/internal/observability"
	"github.com/bloomhound/bloomhound/internal/storage"
)

var (
	cfgFile        string
	verbose        bool
	preset         string
	fast           bool
	headless       bool
	stealthMode    bool
	baseURL        string
	outputPath     string
	storageType    string
	maxProducts    int
	maxPerCategory int
	maxCategories  int
	maxCollections int
	maxOccasions   int
	maxRetries     int
	viewportWidth  int
	viewportHeight int
	initialWait    string
	scrollWait     string
	noDetail       bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "bloomhound",
		Short: "Bloomhound — scroll-driven flower storefront catalog scraper",
		Long: `Bloomhound builds a structured product catalog from a scroll-rendered
flower storefront. It discovers category, collection and occasion pages
from the shop navigation menu, scrolls each page to force lazy-loaded
tiles into view, extracts per-tile fields, cross-links bouquet size
variants and enriches records from product detail pages.`,
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(crawlCmd())
	rootCmd.AddCommand(versionCmd())
	rootCmd.AddCommand(configCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// crawlCmd creates the "crawl" subcommand.
func crawlCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crawl",
		Short: "Run a full catalog crawl",
		Long:  "Discover taxonomy pages from the storefront navigation and scrape every product tile they render.",
		RunE:  runCrawl,
	}

	cmd.Flags().StringVar(&preset, "preset", "", "config preset: development, testing, production, fast")
	cmd.Flags().BoolVar(&fast, "fast", false, "shorthand for --preset fast")
	cmd.Flags().BoolVar(&headless, "headless", true, "run the browser headless")
	cmd.Flags().BoolVar(&stealthMode, "stealth", false, "enable stealth page evasions")
	cmd.Flags().StringVar(&baseURL, "base-url", "", "storefront base URL override")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "catalog output path")
	cmd.Flags().StringVarP(&storageType, "storage", "s", "", "storage backend: json, mongodb")
	cmd.Flags().IntVarP(&maxProducts, "max-products", "m", 0, "global product cap (0 = unlimited)")
	cmd.Flags().IntVar(&maxPerCategory, "max-per-category", 0, "per-category product cap (0 = unlimited)")
	cmd.Flags().IntVar(&maxCategories, "max-categories", 0, "category page cap (0 = all)")
	cmd.Flags().IntVar(&maxCollections, "max-collections", 0, "collection page cap (0 = all)")
	cmd.Flags().IntVar(&maxOccasions, "max-occasions", 0, "occasion page cap (0 = all)")
	cmd.Flags().IntVar(&maxRetries, "max-retries", -1, "card retry attempts (-1 = use config default)")
	cmd.Flags().IntVar(&viewportWidth, "viewport-width", 0, "browser viewport width")
	cmd.Flags().IntVar(&viewportHeight, "viewport-height", 0, "browser viewport height")
	cmd.Flags().StringVar(&initialWait, "initial-wait", "", "settle delay after navigation (duration)")
	cmd.Flags().StringVar(&scrollWait, "scroll-wait", "", "settle delay after each scroll step (duration)")
	cmd.Flags().BoolVar(&noDetail, "no-detail", false, "skip product detail-page enrichment")

	return cmd
}

// runCrawl executes the crawl command.
func runCrawl(cmd *cobra.Command, args []string) error {
	logger := setupLogger()

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if fast && preset == "" {
		preset = "fast"
	}
	if preset != "" {
		if err := config.ApplyPreset(cfg, preset); err != nil {
			return fmt.Errorf("apply preset: %w", err)
		}
	}
	applyCLIOverrides(cmd, cfg)

	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := config.ValidateURL(cfg.Site.BaseURL); err != nil {
		return fmt.Errorf("invalid base URL %q: %w", cfg.Site.BaseURL, err)
	}

	// Rebuild the logger now that the configured level and format are known.
	logger = configureLogger(cfg)

	logger.Info("starting crawl",
		"base_url", cfg.Site.BaseURL,
		"headless", cfg.Browser.Headless,
		"max_products", cfg.Limits.MaxProducts,
		"detail", cfg.Detail.Enabled,
		"storage", cfg.Storage.Type,
	)

	// Browser launch failure is fatal: nothing can run without a driver.
	driver, err := browser.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("launch browser: %w", err)
	}
	defer driver.Close()

	store, err := storage.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("create storage: %w", err)
	}

	metrics := observability.NewMetrics(logger)
	if cfg.Metrics.Enabled {
		if err := metrics.StartServer(cfg.Metrics.Port, cfg.Metrics.Path); err != nil {
			logger.Warn("failed to start metrics server", "error", err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received signal, shutting down...", "signal", sig)
		cancel()
	}()

	eng := engine.New(driver, cfg, store, metrics, logger)

	start := time.Now()
	runErr := eng.Run(ctx)
	if cerr := store.Close(context.Background()); cerr != nil {
		logger.Warn("storage close failed", "error", cerr)
	}
	if runErr != nil {
		return fmt.Errorf("crawl: %w", runErr)
	}

	stats := eng.Catalog().Stats()
	elapsed := time.Since(start)
	fmt.Printf("\nCrawl complete in %s\n", elapsed.Round(time.Millisecond))
	fmt.Printf("   Products:  %d (%d singles, %d sized variants)\n", stats.Total, stats.Singles, stats.Variants)
	fmt.Printf("   Families:  %d (%d cross-referenced)\n", stats.Families, stats.CrossReferenced)
	if cfg.Storage.Type == "json" {
		fmt.Printf("   Output:    %s\n", cfg.Storage.OutputPath)
	} else {
		fmt.Printf("   Output:    %s/%s.%s\n", cfg.Storage.Type, cfg.Storage.MongoDatabase, cfg.Storage.MongoCollection)
	}

	return nil
}

// versionCmd creates the "version" subcommand.
func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("Bloomhound %s\n", config.Version)
		},
	}
}

// configCmd creates the "config" subcommand for inspecting configuration.
func configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			fmt.Printf("Site:\n")
			fmt.Printf("  Base URL:          %s\n", cfg.Site.BaseURL)
			fmt.Printf("  Discovery URL:     %s\n", cfg.Site.DiscoveryURL)
			fmt.Printf("  Ignored:           %s\n", strings.Join(cfg.Site.IgnoredCollections, ", "))
			fmt.Printf("\nBrowser:\n")
			fmt.Printf("  Viewport:          %dx%d\n", cfg.Browser.ViewportWidth, cfg.Browser.ViewportHeight)
			fmt.Printf("  Headless:          %v\n", cfg.Browser.Headless)
			fmt.Printf("  Stealth:           %v\n", cfg.Browser.Stealth)
			fmt.Printf("  Nav Timeout:       %s\n", cfg.Browser.NavTimeout)
			fmt.Printf("\nScroll:\n")
			fmt.Printf("  Step:              %d px (height / %.1f)\n", cfg.ScrollStep(), cfg.Scroll.StepDivisor)
			fmt.Printf("  Scroll Wait:       %s\n", cfg.Scroll.ScrollWait)
			fmt.Printf("  Max Wait:          %s\n", cfg.Scroll.MaxWait)
			fmt.Printf("  Tolerance:         %d px\n", cfg.Scroll.Tolerance)
			fmt.Printf("\nLimits:\n")
			fmt.Printf("  Max Products:      %d\n", cfg.Limits.MaxProducts)
			fmt.Printf("  Max Per Category:  %d\n", cfg.Limits.MaxPerCategory)
			fmt.Printf("  Max Retries:       %d\n", cfg.Limits.MaxRetries)
			fmt.Printf("\nDetail:\n")
			fmt.Printf("  Enabled:           %v\n", cfg.Detail.Enabled)
			fmt.Printf("  Timeout:           %s\n", cfg.Detail.Timeout)
			fmt.Printf("  Concurrency:       %d\n", cfg.Detail.Concurrency)
			fmt.Printf("\nStorage:\n")
			fmt.Printf("  Type:              %s\n", cfg.Storage.Type)
			fmt.Printf("  Output Path:       %s\n", cfg.Storage.OutputPath)
			fmt.Printf("\nMetrics:\n")
			fmt.Printf("  Enabled:           %v\n", cfg.Metrics.Enabled)
			fmt.Printf("  Port:              %d\n", cfg.Metrics.Port)
			return nil
		},
	}
}

// setupLogger creates the bootstrap logger used before config is loaded.
func setupLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	handler := slog.NewTextHandler(os.Stderr, opts)
	return slog.New(handler)
}

// configureLogger builds the run logger from the validated config. The -v
// flag always wins over the configured level.
func configureLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.Logging.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Logging.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	return slog.New(handler)
}

// applyCLIOverrides applies command-line flag values to the config. Only
// flags the user actually set override file and preset values.
func applyCLIOverrides(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("headless") {
		cfg.Browser.Headless = headless
	}
	if cmd.Flags().Changed("stealth") {
		cfg.Browser.Stealth = stealthMode
	}
	if baseURL != "" {
		cfg.Site.BaseURL = baseURL
		cfg.Site.DiscoveryURL = baseURL
	}
	if outputPath != "" {
		cfg.Storage.OutputPath = outputPath
	}
	if storageType != "" {
		cfg.Storage.Type = strings.ToLower(storageType)
	}
	if maxProducts > 0 {
		cfg.Limits.MaxProducts = maxProducts
	}
	if maxPerCategory > 0 {
		cfg.Limits.MaxPerCategory = maxPerCategory
	}
	if maxCategories > 0 {
		cfg.Limits.MaxCategories = maxCategories
	}
	if maxCollections > 0 {
		cfg.Limits.MaxCollections = maxCollections
	}
	if maxOccasions > 0 {
		cfg.Limits.MaxOccasions = maxOccasions
	}
	if maxRetries >= 0 {
		cfg.Limits.MaxRetries = maxRetries
	}
	if viewportWidth > 0 {
		cfg.Browser.ViewportWidth = viewportWidth
	}
	if viewportHeight > 0 {
		cfg.Browser.ViewportHeight = viewportHeight
	}
	if initialWait != "" {
		if d, err := time.ParseDuration(initialWait); err == nil {
			cfg.Scroll.InitialWait = d
		}
	}
	if scrollWait != "" {
		if d, err := time.ParseDuration(scrollWait); err == nil {
			cfg.Scroll.ScrollWait = d
		}
	}
	if noDetail {
		cfg.Detail.Enabled = false
	}
}
