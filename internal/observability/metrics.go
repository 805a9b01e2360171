package observability

import (
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"
)

// Metrics tracks operational counters for a crawl run.
type Metrics struct {
	// Page metrics
	PagesCrawled atomic.Int64
	PagesFailed  atomic.Int64
	ScrollSteps  atomic.Int64

	// Tile metrics
	TilesSeen        atomic.Int64
	CardsProcessed   atomic.Int64
	CardsSkipped     atomic.Int64
	CardRetries      atomic.Int64
	DuplicatesMerged atomic.Int64

	// Product metrics
	ProductsAdded  atomic.Int64
	VariantsLinked atomic.Int64

	// Detail metrics
	DetailFetches  atomic.Int64
	DetailFailures atomic.Int64

	logger *slog.Logger
}

// NewMetrics creates a new Metrics instance.
func NewMetrics(logger *slog.Logger) *Metrics {
	return &Metrics{
		logger: logger.With("component", "metrics"),
	}
}

// ServeHTTP serves metrics in Prometheus text exposition format.
func (m *Metrics) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; version=0.0.4; charset=utf-8")

	metrics := []struct {
		name  string
		help  string
		value int64
	}{
		{"bloomhound_pages_crawled_total", "Total taxonomy pages crawled", m.PagesCrawled.Load()},
		{"bloomhound_pages_failed_total", "Total taxonomy pages that failed", m.PagesFailed.Load()},
		{"bloomhound_scroll_steps_total", "Total scroll steps performed", m.ScrollSteps.Load()},
		{"bloomhound_tiles_seen_total", "Total product tiles enumerated", m.TilesSeen.Load()},
		{"bloomhound_cards_processed_total", "Total product cards processed", m.CardsProcessed.Load()},
		{"bloomhound_cards_skipped_total", "Total product cards skipped", m.CardsSkipped.Load()},
		{"bloomhound_card_retries_total", "Total card processing retries", m.CardRetries.Load()},
		{"bloomhound_duplicates_merged_total", "Total cross-page duplicate merges", m.DuplicatesMerged.Load()},
		{"bloomhound_products_added_total", "Total products added to the catalog", m.ProductsAdded.Load()},
		{"bloomhound_variants_linked_total", "Total variant cross-links created", m.VariantsLinked.Load()},
		{"bloomhound_detail_fetches_total", "Total detail pages fetched", m.DetailFetches.Load()},
		{"bloomhound_detail_failures_total", "Total detail fetch failures", m.DetailFailures.Load()},
	}

	for _, metric := range metrics {
		fmt.Fprintf(w, "# HELP %s %s\n", metric.name, metric.help)
		fmt.Fprintf(w, "# TYPE %s counter\n", metric.name)
		fmt.Fprintf(w, "%s %d\n", metric.name, metric.value)
	}
}

// StartServer starts the metrics HTTP server.
func (m *Metrics) StartServer(port int, path string) error {
	mux := http.NewServeMux()
	mux.Handle(path, m)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "ok")
	})

	addr := fmt.Sprintf(":%d", port)
	m.logger.Info("metrics server starting", "addr", addr, "path", path)

	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			m.logger.Error("metrics server error", "error", err)
		}
	}()

	return nil
}

// Snapshot returns all metrics as a map.
func (m *Metrics) Snapshot() map[string]int64 {
	return map[string]int64{
		"pages_crawled":     m.PagesCrawled.Load(),
		"pages_failed":      m.PagesFailed.Load(),
		"scroll_steps":      m.ScrollSteps.Load(),
		"tiles_seen":        m.TilesSeen.Load(),
		"cards_processed":   m.CardsProcessed.Load(),
		"cards_skipped":     m.CardsSkipped.Load(),
		"card_retries":      m.CardRetries.Load(),
		"duplicates_merged": m.DuplicatesMerged.Load(),
		"products_added":    m.ProductsAdded.Load(),
		"variants_linked":   m.VariantsLinked.Load(),
		"detail_fetches":    m.DetailFetches.Load(),
		"detail_failures":   m.DetailFailures.Load(),
	}
}
