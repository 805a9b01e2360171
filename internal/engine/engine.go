// Package engine drives a full crawl run: taxonomy discovery, scroll-driven
// tile collection on each taxonomy page, per-card record construction and
// end-of-run persistence.
package engine

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/bloomhound/bloomhound/internal/browser"
	"github.com/bloomhound/bloomhound/internal/catalog"
	"github.com/bloomhound/bloomhound/internal/config"
	"github.com/bloomhound/bloomhound/internal/detail"
	"github.com/bloomhound/bloomhound/internal/extract"
	"github.com/bloomhound/bloomhound/internal/observability"
	"github.com/bloomhound/bloomhound/internal/storage"
	"github.com/bloomhound/bloomhound/internal/types"
)

// Engine owns the shared state of one crawl run. The run is a single
// logical task; only detail fetches go through a concurrency gate.
type Engine struct {
	driver    *browser.Driver
	cfg       *config.Config
	catalog   *catalog.Catalog
	extractor *extract.TileExtractor
	fetcher   *detail.Fetcher
	store     storage.Storage
	metrics   *observability.Metrics
	logger    *slog.Logger

	// Browser-bound steps, replaceable so the run loop is testable
	// without a live Chromium.
	discover  func(ctx context.Context) []types.TaxonomyTarget
	crawlPage func(ctx context.Context, target types.TaxonomyTarget) error
}

// New assembles an engine from its components.
func New(driver *browser.Driver, cfg *config.Config, store storage.Storage, metrics *observability.Metrics, logger *slog.Logger) *Engine {
	e := &Engine{
		driver:    driver,
		cfg:       cfg,
		catalog:   catalog.New(cfg.Limits.MaxProducts, logger),
		extractor: extract.NewTileExtractor(cfg.Site.BaseURL, logger),
		fetcher:   detail.NewFetcher(driver, cfg, logger),
		store:     store,
		metrics:   metrics,
		logger:    logger.With("component", "engine"),
	}
	e.discover = e.discoverTargets
	e.crawlPage = e.crawlOne
	return e
}

// Catalog exposes the run's catalog, mainly for tests and stats.
func (e *Engine) Catalog() *catalog.Catalog { return e.catalog }

// Run executes a full crawl: discover taxonomy targets, crawl each on an
// isolated page, then persist the catalog. Per-target failures are logged
// and skipped. Cancellation stops crawling but still persists everything
// collected so far; partial results always beat none.
func (e *Engine) Run(ctx context.Context) error {
	start := time.Now()

	targets := e.discover(ctx)
	if len(targets) == 0 {
		e.logger.Warn("no taxonomy targets discovered, nothing to crawl")
	}
	targets = e.truncateTargets(targets)

	runErr := e.crawlAll(ctx, targets)

	// The save must survive the cancellation that ended the crawl.
	if err := e.store.Save(context.WithoutCancel(ctx), e.catalog.Products()); err != nil {
		return err
	}

	e.logStats(time.Since(start))
	return runErr
}

// crawlAll walks the target list until it is done, the global cap fires or
// the context is cancelled. Only cancellation is returned to the caller.
func (e *Engine) crawlAll(ctx context.Context, targets []types.TaxonomyTarget) error {
	for _, target := range targets {
		if err := ctx.Err(); err != nil {
			e.logger.Warn("crawl interrupted", "error", err)
			return err
		}

		err := e.crawlPage(ctx, target)
		switch {
		case err == nil:
			e.metrics.PagesCrawled.Add(1)
		case errors.Is(err, types.ErrCatalogFull):
			e.logger.Info("global product limit reached, stopping crawl",
				"limit", e.cfg.Limits.MaxProducts)
			return nil
		case errors.Is(err, types.ErrPageExhausted):
			e.logger.Info("taxonomy page had no product tiles",
				"kind", target.Kind, "name", target.Name)
			e.metrics.PagesCrawled.Add(1)
		case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
			e.logger.Warn("crawl interrupted mid-page",
				"kind", target.Kind, "name", target.Name, "error", err)
			return err
		default:
			e.metrics.PagesFailed.Add(1)
			e.logger.Error("taxonomy page failed",
				"error", &types.TargetError{Target: target, Err: err})
		}
	}
	return nil
}

// crawlOne runs the scroll-discovery loop for one target on a fresh page,
// closing the page on every exit path.
func (e *Engine) crawlOne(ctx context.Context, target types.TaxonomyTarget) error {
	page, err := e.driver.NewPage()
	if err != nil {
		return err
	}
	defer func() {
		if cerr := page.Close(); cerr != nil {
			e.logger.Debug("page close failed", "target", target.Name, "error", cerr)
		}
	}()

	e.logger.Info("crawling taxonomy page",
		"kind", target.Kind, "name", target.Name, "url", target.URL)
	return e.crawlTarget(ctx, page, target)
}

// truncateTargets applies the per-kind caps and returns the ordered work
// list: categories first, then collections, then occasions.
func (e *Engine) truncateTargets(targets []types.TaxonomyTarget) []types.TaxonomyTarget {
	byKind := make(map[types.PageKind][]types.TaxonomyTarget)
	for _, t := range targets {
		byKind[t.Kind] = append(byKind[t.Kind], t)
	}

	take := func(list []types.TaxonomyTarget, max int) []types.TaxonomyTarget {
		if max > 0 && len(list) > max {
			return list[:max]
		}
		return list
	}

	var out []types.TaxonomyTarget
	out = append(out, take(byKind[types.KindCategory], e.cfg.Limits.MaxCategories)...)
	out = append(out, take(byKind[types.KindCollection], e.cfg.Limits.MaxCollections)...)
	out = append(out, take(byKind[types.KindOccasion], e.cfg.Limits.MaxOccasions)...)

	e.logger.Info("work list assembled",
		"categories", len(byKind[types.KindCategory]),
		"collections", len(byKind[types.KindCollection]),
		"occasions", len(byKind[types.KindOccasion]),
		"total", len(out))
	return out
}

func (e *Engine) logStats(elapsed time.Duration) {
	stats := e.catalog.Stats()
	e.logger.Info("crawl finished",
		"duration", elapsed.Round(time.Millisecond),
		"products", stats.Total,
		"singles", stats.Singles,
		"variants", stats.Variants,
		"families", stats.Families,
		"cross_referenced", stats.CrossReferenced,
		"pages_crawled", e.metrics.PagesCrawled.Load(),
		"pages_failed", e.metrics.PagesFailed.Load(),
		"cards_processed", e.metrics.CardsProcessed.Load(),
		"cards_skipped", e.metrics.CardsSkipped.Load(),
		"duplicates_merged", e.metrics.DuplicatesMerged.Load(),
	)
}
