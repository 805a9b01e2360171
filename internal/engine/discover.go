package engine

import (
	"context"
	"strings"
	"time"

	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"

	"github.com/bloomhound/bloomhound/internal/extract"
	"github.com/bloomhound/bloomhound/internal/types"
)

// Navigation menu heading → page kind. Columns with any other heading are
// not crawlable taxonomy groups.
var headingKinds = map[string]types.PageKind{
	"categories": types.KindCategory,
	"featured":   types.KindCollection,
	"occasions":  types.KindOccasion,
}

// discoverTargets opens the storefront root, dismisses the signup modal if
// present, hovers the shop menu open and parses the revealed columns into
// taxonomy targets. It never fails the run: any error yields an empty list.
func (e *Engine) discoverTargets(ctx context.Context) []types.TaxonomyTarget {
	page, err := e.driver.NewPage()
	if err != nil {
		e.logger.Error("discovery page open failed", "error", err)
		return nil
	}
	defer func() {
		if cerr := page.Close(); cerr != nil {
			e.logger.Debug("discovery page close failed", "error", cerr)
		}
	}()

	if err := e.driver.Navigate(page, e.cfg.Site.DiscoveryURL); err != nil {
		e.logger.Error("discovery navigation failed",
			"url", e.cfg.Site.DiscoveryURL, "error", err)
		return nil
	}
	time.Sleep(e.cfg.Scroll.InitialWait)
	e.driver.DismissModal(page, extract.ModalClose)

	menu, err := page.Timeout(e.cfg.Browser.NavTimeout).Element(extract.NavShopMenu)
	if err != nil {
		e.logger.Error("shop menu not found", "error", err)
		return nil
	}
	if err := menu.Hover(); err != nil {
		e.logger.Error("shop menu hover failed", "error", err)
		return nil
	}
	if _, err := page.Timeout(e.cfg.Browser.NavTimeout).Element(extract.NavMenuColumn); err != nil {
		e.logger.Error("shop menu never expanded", "error", err)
		return nil
	}

	markup, err := menu.HTML()
	if err != nil {
		e.logger.Error("shop menu read failed", "error", err)
		return nil
	}

	targets := ParseMenu(markup, e.cfg.Site.BaseURL, e.cfg.Site.IgnoredCollections)
	e.logger.Info("taxonomy discovered", "targets", len(targets))
	return targets
}

// ParseMenu extracts taxonomy targets from the expanded shop menu markup.
// Each menu column carries a headline naming the group and a list of links;
// ignored collection names are dropped case-insensitively.
func ParseMenu(markup, baseURL string, ignored []string) []types.TaxonomyTarget {
	doc, err := htmlquery.Parse(strings.NewReader(markup))
	if err != nil {
		return nil
	}

	skip := make(map[string]struct{}, len(ignored))
	for _, name := range ignored {
		skip[strings.ToLower(name)] = struct{}{}
	}

	var targets []types.TaxonomyTarget
	for _, col := range htmlquery.Find(doc, "//div[contains(@class, 'menu__col')]") {
		headline := htmlquery.FindOne(col, ".//strong[contains(@class, 'nav__menu-headline')]")
		if headline == nil {
			continue
		}
		kind, ok := headingKinds[strings.ToLower(strings.TrimSpace(htmlquery.InnerText(headline)))]
		if !ok {
			continue
		}

		for _, link := range htmlquery.Find(col, ".//a[contains(@class, 'hover-u')]") {
			name := linkName(link)
			if name == "" {
				continue
			}
			if kind == types.KindCollection {
				if _, drop := skip[name]; drop {
					continue
				}
			}
			url := extract.ResolveURL(htmlquery.SelectAttr(link, "href"), baseURL)
			if url == nil {
				continue
			}
			targets = append(targets, types.TaxonomyTarget{Name: name, URL: *url, Kind: kind})
		}
	}
	return targets
}

// linkName prefers the link's inner strong label over its full text, both
// lower-cased. Some menu links wrap the display name in a strong to carry a
// count badge alongside it.
func linkName(link *html.Node) string {
	if inner := htmlquery.FindOne(link, ".//strong"); inner != nil {
		if name := strings.ToLower(strings.TrimSpace(htmlquery.InnerText(inner))); name != "" {
			return name
		}
	}
	return strings.ToLower(strings.TrimSpace(htmlquery.InnerText(link)))
}
