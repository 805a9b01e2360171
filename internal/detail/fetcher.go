// Package detail enriches product records from their detail pages:
// accordion sections (description, care instructions) and lifestyle media.
// Enrichment is best-effort; a failed fetch never blocks record ingestion.
package detail

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"golang.org/x/sync/semaphore"

	"github.com/bloomhound/bloomhound/internal/browser"
	"github.com/bloomhound/bloomhound/internal/config"
	"github.com/bloomhound/bloomhound/internal/extract"
	"github.com/bloomhound/bloomhound/internal/types"
)

// Fetcher opens isolated pages to read long-form product fields. A counting
// semaphore bounds how many fetches may hold a page at once.
type Fetcher struct {
	driver *browser.Driver
	cfg    *config.Config
	gate   *semaphore.Weighted
	logger *slog.Logger
}

// NewFetcher creates a detail fetcher with the configured concurrency gate.
func NewFetcher(driver *browser.Driver, cfg *config.Config, logger *slog.Logger) *Fetcher {
	n := cfg.Detail.Concurrency
	if n < 1 {
		n = 1
	}
	return &Fetcher{
		driver: driver,
		cfg:    cfg,
		gate:   semaphore.NewWeighted(int64(n)),
		logger: logger.With("component", "detail_fetcher"),
	}
}

// Fetch reads the detail payload for one product. It returns nil on any
// failure, on timeout with nothing collected, or when enrichment is
// disabled; the isolated page is closed on every exit path.
func (f *Fetcher) Fetch(ctx context.Context, name, url, productKey string) *types.DetailInfo {
	if !f.cfg.Detail.Enabled {
		return nil
	}
	if url == "" {
		f.logger.Warn("no detail URL for product", "product", name, "key", productKey)
		return nil
	}

	if err := f.gate.Acquire(ctx, 1); err != nil {
		f.logger.Warn("detail gate closed", "product", name, "error", err)
		return nil
	}
	defer f.gate.Release(1)

	start := time.Now()
	page, err := f.driver.NewPage()
	if err != nil {
		f.logger.Error("detail page open failed", "product", name, "error", err)
		return nil
	}
	defer func() {
		if cerr := page.Close(); cerr != nil {
			f.logger.Debug("detail page close failed", "product", name, "error", cerr)
		}
	}()

	if err := f.driver.Navigate(page, url); err != nil {
		f.logger.Warn("detail navigation failed",
			"error", &types.DetailError{Name: name, URL: url, Err: err})
		return nil
	}

	// Readiness is advisory: partial detail beats none.
	if _, err := page.Timeout(f.cfg.Detail.Timeout).Element(extract.DetailReadySelector); err != nil {
		f.logger.Warn("detail content not ready, proceeding anyway",
			"product", name, "timeout", f.cfg.Detail.Timeout)
	}

	accordions, gallery := f.collect(page)
	media := f.mediaInfo(page)

	info := &types.DetailInfo{
		Description:      pick(accordions, KeyDescription),
		CareInstructions: pick(accordions, KeyCareInstructions),
		Media:            media,
	}

	f.logger.Info("detail extracted",
		"product", name,
		"duration", time.Since(start).Round(time.Millisecond),
		"accordions", len(accordions),
		"gallery_images", len(gallery),
		"has_description", info.Description != nil,
		"has_care", info.CareInstructions != nil,
	)
	return info
}

// collect scroll-steps the detail page gathering accordion sections keyed
// by their summary text and gallery image sources.
func (f *Fetcher) collect(page *rod.Page) (map[string]string, []string) {
	accordions := make(map[string]string)
	var gallery []string
	seenImages := make(map[string]struct{})

	collectors := []browser.Collector{
		{
			Name:     "accordions",
			Selector: extract.DetailAccordion,
			Visit: func(el *rod.Element) error {
				key, html, err := readAccordion(el)
				if err != nil {
					return err
				}
				if key == "" || html == "" {
					return nil
				}
				accordions[key] = html
				return nil
			},
		},
		{
			Name:     "images",
			Selector: extract.DetailImageCard,
			Visit: func(el *rod.Element) error {
				src := imageSrc(el)
				if src == "" {
					return nil
				}
				if _, ok := seenImages[src]; ok {
					return nil
				}
				seenImages[src] = struct{}{}
				gallery = append(gallery, src)
				return nil
			},
		},
	}

	f.driver.ScrollCollect(page, collectors, f.cfg.Detail.ScrollStep, f.cfg.Detail.ScrollPause, 0)
	return accordions, gallery
}

// readAccordion returns an accordion's heading text and the concatenated
// paragraph markup of its content block.
func readAccordion(el *rod.Element) (string, string, error) {
	summaries, err := el.Elements(extract.DetailAccordionSummary)
	if err != nil || len(summaries) == 0 {
		return "", "", err
	}
	key, err := summaries.First().Text()
	if err != nil {
		return "", "", err
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return "", "", nil
	}

	contents, err := el.Elements(extract.DetailAccordionContent)
	if err != nil || len(contents) == 0 {
		return key, "", err
	}
	html, err := contents.First().HTML()
	if err != nil {
		return key, "", err
	}
	return key, ParagraphsHTML(html), nil
}

// imageSrc reads the img src of a gallery card.
func imageSrc(el *rod.Element) string {
	imgs, err := el.Elements("img")
	if err != nil || len(imgs) == 0 {
		return ""
	}
	src, err := imgs.First().Attribute("src")
	if err != nil || src == nil {
		return ""
	}
	return browser.NormalizeMediaURL(*src)
}
