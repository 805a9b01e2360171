package engine

import (
	"context"
	"errors"
	"time"

	"github.com/go-rod/rod"

	"github.com/bloomhound/bloomhound/internal/types"
)

// retryBackoff spaces the bounded re-attempts after a transient tile
// interaction failure.
const retryBackoff = 250 * time.Millisecond

// processCard turns one visible tile into a catalog record. Returns true
// when a record was appended. Transient failures are retried up to the
// configured limit; a card with no name or no URL is skipped outright.
func (e *Engine) processCard(ctx context.Context, tile *rod.Element, idx int, target types.TaxonomyTarget) bool {
	maxAttempts := e.cfg.Limits.MaxRetries
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			e.metrics.CardRetries.Add(1)
			time.Sleep(retryBackoff)
		}

		added, err := e.extractCard(ctx, tile, target)
		if err == nil {
			e.metrics.CardsProcessed.Add(1)
			return added
		}
		if errors.Is(err, types.ErrNoName) || errors.Is(err, types.ErrNoURL) ||
			errors.Is(err, types.ErrCatalogFull) {
			// Retrying cannot help these.
			e.metrics.CardsSkipped.Add(1)
			e.logger.Debug("card skipped", "target", target.Name, "reason", err)
			return false
		}
		lastErr = err
	}

	e.metrics.CardsSkipped.Add(1)
	if lastErr == nil {
		lastErr = types.ErrMaxRetries
	}
	e.logger.Warn("card abandoned after retries",
		"error", &types.CardError{
			Page:    target.Name,
			Index:   idx,
			Attempt: maxAttempts,
			Err:     lastErr,
		})
	return false
}

// extractCard runs one extraction attempt. The field extractors degrade to
// nil on their own, so the only hard failures here are a vanished tile, a
// nameless card and a card without a product URL.
func (e *Engine) extractCard(ctx context.Context, tile *rod.Element, target types.TaxonomyTarget) (bool, error) {
	visible, err := tile.Visible()
	if err != nil {
		return false, err
	}
	if !visible {
		return false, types.ErrNotVisible
	}

	basic := e.extractor.BasicInfo(tile)
	if basic.Name == "" {
		return false, types.ErrNoName
	}

	images := e.extractor.ImageInfo(tile)
	pricing := e.extractor.PricingInfo(tile)
	additional := e.extractor.AdditionalInfo(tile)
	if additional.ProductURL == nil {
		return false, types.ErrNoURL
	}

	rec := &types.ProductRecord{
		ID:               e.catalog.NextID(),
		Name:             basic.Name,
		BaseName:         basic.BaseName,
		URL:              *additional.ProductURL,
		Price:            pricing.Price,
		DiscountedPrice:  pricing.DiscountedPrice,
		MainImage:        images.MainImage,
		HoverImage:       images.HoverImage,
		BadgeText:        additional.BadgeText,
		DeliveryLeadTime: additional.DeliveryLeadTime,
		Stock:            additional.Stock,
		ReviewsRating:    basic.ReviewsRating,
		ReviewsCount:     basic.ReviewsCount,
		Categories:       []string{},
		Collections:      []string{},
		Occasions:        []string{},
	}
	if basic.VariantType != types.VariantSingle {
		v := basic.VariantType
		rec.VariantType = &v
	}
	rec.AddTag(target.Kind, target.Tag())

	e.enrich(ctx, rec)

	if err := e.catalog.Append(rec, basic.VariantType, basic.BaseName); err != nil {
		return false, err
	}
	e.metrics.ProductsAdded.Add(1)
	if len(rec.VariationLinks) > 0 {
		e.metrics.VariantsLinked.Add(1)
	}
	e.logger.Info("product added",
		"id", rec.ID, "name", rec.Name, "kind", target.Kind, "tag", target.Tag())
	return true, nil
}

// enrich merges the detail-page payload into the record. Failures leave
// the detail fields nil.
func (e *Engine) enrich(ctx context.Context, rec *types.ProductRecord) {
	if !e.cfg.Detail.Enabled {
		return
	}
	e.metrics.DetailFetches.Add(1)
	info := e.fetcher.Fetch(ctx, rec.Name, rec.URL, rec.DedupKey())
	if info == nil {
		e.metrics.DetailFailures.Add(1)
		return
	}
	rec.Description = info.Description
	rec.CareInstructions = info.CareInstructions
	if m := info.Media; m != nil {
		rec.MainDetailSrc = m.MainDetailSrc
		rec.IsMainDetailVideo = m.IsMainDetailVideo
		rec.DetailImage1Src = m.DetailImage1Src
		rec.DetailImage2Src = m.DetailImage2Src
	}
}
