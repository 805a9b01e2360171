package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/go-rod/rod"

	"github.com/bloomhound/bloomhound/internal/extract"
	"github.com/bloomhound/bloomhound/internal/types"
)

// crawlTarget walks one taxonomy page top to bottom, processing every tile
// that enters the viewport. It stops cleanly when the page is exhausted or
// a cap fires. types.ErrCatalogFull tells the caller to halt the whole run;
// driver failures surface as ordinary errors and fail only this target.
func (e *Engine) crawlTarget(ctx context.Context, page *rod.Page, target types.TaxonomyTarget) error {
	if err := e.driver.Navigate(page, target.URL); err != nil {
		return err
	}
	time.Sleep(e.cfg.Scroll.InitialWait)
	e.driver.DismissModal(page, extract.ModalClose)

	if err := e.driver.ScrollToTop(page); err != nil {
		e.logger.Warn("scroll reset failed", "target", target.Name, "error", err)
	}

	step := e.cfg.ScrollStep()
	pos := 0
	added := 0

	height, err := e.driver.ScrollHeight(page)
	if err != nil {
		return err
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		tiles, err := page.Elements(extract.ProductCard)
		if err != nil {
			return fmt.Errorf("enumerate product tiles: %w", err)
		}
		if len(tiles) == 0 {
			return types.ErrPageExhausted
		}
		e.metrics.TilesSeen.Add(int64(len(tiles)))

		for i, tile := range tiles {
			if !e.driver.InViewport(tile) {
				continue
			}

			key := types.ProductKey(e.extractor.Href(tile))
			if key != "" && e.catalog.Seen(key) {
				if e.catalog.MergeTag(key, target.Kind, target.Tag()) {
					e.metrics.DuplicatesMerged.Add(1)
				}
				continue
			}

			if e.processCard(ctx, tile, i, target) {
				added++
			}
			if key != "" {
				e.catalog.MarkSeen(key)
			}
		}

		containerGone := false
		if container := firstElement(page, extract.ProductContainer); container != nil {
			containerGone = e.driver.ContainerAbove(container)
		}
		if stop, serr := e.stopAfterBatch(target, added, containerGone); stop {
			return serr
		}

		if pos >= height {
			// Lazy loading may have grown the page since the last read.
			grown, err := e.driver.ScrollHeight(page)
			if err != nil || grown <= height {
				break
			}
			height = grown
		}

		pos += step
		if pos > height {
			pos = height
		}
		e.driver.ScrollToPosition(page, pos)
		e.metrics.ScrollSteps.Add(1)
	}

	e.logger.Info("taxonomy page exhausted", "target", target.Name, "added", added)
	return nil
}

// stopAfterBatch applies the page stop conditions after one batch of
// visible tiles, in fixed order: per-category cap (category pages only),
// global cap, then container scrolled past. Only the global cap returns an
// error, telling the caller to halt the whole run.
func (e *Engine) stopAfterBatch(target types.TaxonomyTarget, added int, containerGone bool) (bool, error) {
	if target.Kind == types.KindCategory &&
		e.cfg.Limits.MaxPerCategory > 0 && added >= e.cfg.Limits.MaxPerCategory {
		e.logger.Info("per-category limit reached",
			"target", target.Name, "added", added)
		return true, nil
	}
	if e.catalog.Full() {
		return true, types.ErrCatalogFull
	}
	if containerGone {
		e.logger.Debug("product container scrolled past, page done",
			"target", target.Name)
		return true, nil
	}
	return false, nil
}

// firstElement returns the first match for sel without waiting, or nil.
func firstElement(page *rod.Page, sel string) *rod.Element {
	els, err := page.Elements(sel)
	if err != nil || len(els) == 0 {
		return nil
	}
	return els.First()
}
