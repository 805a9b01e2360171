// Package catalog owns the mutable state of one crawl run: the product
// list, the cross-page seen-key set and the variant family lookup. The run
// is single-tasked, so nothing here is synchronized.
package catalog

import (
	"log/slog"
	"strconv"

	"github.com/bloomhound/bloomhound/internal/types"
)

// Catalog accumulates product records for the lifetime of a run. Records
// are created once per dedup key, mutated in place afterwards and never
// deleted.
type Catalog struct {
	products    []*types.ProductRecord
	seen        map[string]struct{}
	variations  map[string]map[types.VariantType]*types.ProductRecord
	maxProducts int
	logger      *slog.Logger
}

// New creates an empty catalog. maxProducts <= 0 means unlimited.
func New(maxProducts int, logger *slog.Logger) *Catalog {
	return &Catalog{
		products:    make([]*types.ProductRecord, 0),
		seen:        make(map[string]struct{}),
		variations:  make(map[string]map[types.VariantType]*types.ProductRecord),
		maxProducts: maxProducts,
		logger:      logger.With("component", "catalog"),
	}
}

// Len returns the number of retained records.
func (c *Catalog) Len() int { return len(c.products) }

// Products returns the live record list in insertion order. Callers share
// the underlying records with the variation lookup.
func (c *Catalog) Products() []*types.ProductRecord { return c.products }

// NextID returns the run-scoped id the next inserted record will get:
// sequential decimal strings in insertion order.
func (c *Catalog) NextID() string { return strconv.Itoa(len(c.products)) }

// Full reports whether the global product cap has been reached.
func (c *Catalog) Full() bool {
	return c.maxProducts > 0 && len(c.products) >= c.maxProducts
}

// Seen reports whether a dedup key was already processed this run.
func (c *Catalog) Seen(key string) bool {
	_, ok := c.seen[key]
	return ok
}

// MarkSeen records a dedup key. Broken cards are marked too, so they are
// never reprocessed at a later scroll position.
func (c *Catalog) MarkSeen(key string) {
	c.seen[key] = struct{}{}
}

// Append inserts a record and links it into its variant family. Returns
// types.ErrCatalogFull when the global cap is already reached.
func (c *Catalog) Append(rec *types.ProductRecord, variant types.VariantType, baseName string) error {
	if c.Full() {
		return types.ErrCatalogFull
	}
	c.products = append(c.products, rec)
	c.link(rec, variant, baseName)
	return nil
}

// MergeTag finds the record whose stored URL re-derives to key and appends
// the tag for the given page kind if not already present. Returns true when
// the record was found (whether or not the tag was new).
func (c *Catalog) MergeTag(key string, kind types.PageKind, tag string) bool {
	for _, p := range c.products {
		if p.DedupKey() == key {
			if p.AddTag(kind, tag) {
				c.logger.Info("tag merged into existing product",
					"product", p.Name, "kind", kind, "tag", tag)
			}
			return true
		}
	}
	return false
}

// Families returns the number of distinct base-name variant families seen.
func (c *Catalog) Families() int { return len(c.variations) }

// Stats aggregates end-of-run catalog numbers.
type Stats struct {
	Total           int
	Singles         int
	Variants        int
	Families        int
	CrossReferenced int
}

// Stats computes the aggregate statistics logged at end of run. Singles are
// records whose variant type was never materialized.
func (c *Catalog) Stats() Stats {
	s := Stats{Total: len(c.products), Families: len(c.variations)}
	for _, p := range c.products {
		if p.VariantType == nil {
			s.Singles++
		} else {
			s.Variants++
		}
		if len(p.VariationLinks) > 0 {
			s.CrossReferenced++
		}
	}
	return s
}
