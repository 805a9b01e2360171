package extract

import (
	"log/slog"
	"strings"
	"time"

	"github.com/go-rod/rod"

	"github.com/bloomhound/bloomhound/internal/browser"
	"github.com/bloomhound/bloomhound/internal/types"
)

// PlaceholderStock is the stock signal recorded when a delivery date is
// present. It is a placeholder, not real inventory.
const PlaceholderStock = 100

// TileExtractor reads semantic fields from a single product tile handle.
type TileExtractor struct {
	baseURL string
	now     func() time.Time
	logger  *slog.Logger
}

// NewTileExtractor creates a tile extractor resolving hrefs against baseURL.
func NewTileExtractor(baseURL string, logger *slog.Logger) *TileExtractor {
	return &TileExtractor{
		baseURL: baseURL,
		now:     time.Now,
		logger:  logger.With("component", "tile_extractor"),
	}
}

// Name returns the normalized tile title, or "" when the title element is
// missing entirely.
func (x *TileExtractor) Name(tile *rod.Element) string {
	el := x.first(tile, CardTitle)
	if el == nil {
		return ""
	}
	text, err := el.Text()
	if err != nil {
		x.logger.Debug("name read failed", "error", err)
		return ""
	}
	return NormalizeName(text)
}

// Price reads the price element with the given tag and role modifier and
// returns it in integer cents.
func (x *TileExtractor) Price(tile *rod.Element, element, modifier string) *int {
	el := x.first(tile, PriceSelector(element, modifier))
	if el == nil {
		return nil
	}
	text, err := el.Text()
	if err != nil {
		x.logger.Debug("price read failed", "modifier", modifier, "error", err)
		return nil
	}
	return ParsePriceCents(text)
}

// Image reads the media image src for the given modifier ("main"/"hover"),
// falling back to data-src and normalizing protocol-relative URLs.
func (x *TileExtractor) Image(tile *rod.Element, modifier string) *string {
	el := x.first(tile, MediaSelector(modifier))
	if el == nil {
		return nil
	}
	src := x.attr(el, "src")
	if src == "" {
		src = x.attr(el, "data-src")
	}
	if src == "" {
		return nil
	}
	u := browser.NormalizeMediaURL(src)
	return &u
}

// Badge returns the trimmed promotional badge text, if any.
func (x *TileExtractor) Badge(tile *rod.Element) *string {
	el := x.first(tile, CardBadge)
	if el == nil {
		return nil
	}
	text, err := el.Text()
	if err != nil {
		x.logger.Debug("badge read failed", "error", err)
		return nil
	}
	if t := strings.TrimSpace(text); t != "" {
		return &t
	}
	return nil
}

// URL resolves the tile's cover-link href to an absolute product URL.
func (x *TileExtractor) URL(tile *rod.Element) *string {
	el := x.first(tile, CardCoverLink)
	if el == nil {
		return nil
	}
	return ResolveURL(x.attr(el, "href"), x.baseURL)
}

// Href returns the raw cover-link href, the source of the dedup key.
func (x *TileExtractor) Href(tile *rod.Element) string {
	el := x.first(tile, CardCoverLink)
	if el == nil {
		return ""
	}
	return x.attr(el, "href")
}

// DeliveryLeadTime reads the tile's delivery date attribute and converts it
// to days from today.
func (x *TileExtractor) DeliveryLeadTime(tile *rod.Element) *int {
	el := x.first(tile, CardTime)
	if el == nil {
		return nil
	}
	return ParseLeadTime(x.attr(el, "datetime"), x.now())
}

// ReviewInfo reads the rating widget's rating and count attributes.
func (x *TileExtractor) ReviewInfo(tile *rod.Element) (*float64, *int) {
	var rating *float64
	var count *int
	if el := x.first(tile, RatingStars); el != nil {
		rating = ParseRating(x.attr(el, "content"))
	}
	if el := x.first(tile, RatingCount); el != nil {
		count = ParseCount(x.attr(el, "content"))
	}
	return rating, count
}

// BasicInfo extracts name, variant split and review info. An empty Name in
// the result marks an unrecoverable card.
func (x *TileExtractor) BasicInfo(tile *rod.Element) types.BasicInfo {
	name := x.Name(tile)
	variant, base := SplitVariantName(name)
	rating, count := x.ReviewInfo(tile)
	return types.BasicInfo{
		Name:          name,
		VariantType:   variant,
		BaseName:      base,
		ReviewsRating: rating,
		ReviewsCount:  count,
	}
}

// ImageInfo extracts the main and hover images independently.
func (x *TileExtractor) ImageInfo(tile *rod.Element) types.ImageInfo {
	return types.ImageInfo{
		MainImage:  x.Image(tile, "main"),
		HoverImage: x.Image(tile, "hover"),
	}
}

// PricingInfo extracts the regular and compare prices independently.
func (x *TileExtractor) PricingInfo(tile *rod.Element) types.PricingInfo {
	return types.PricingInfo{
		Price:           x.Price(tile, "span", "regular"),
		DiscountedPrice: x.Price(tile, "s", "compare"),
	}
}

// AdditionalInfo extracts badge, URL and delivery signal. Stock is the
// placeholder 100 when a delivery date is present, else 0.
func (x *TileExtractor) AdditionalInfo(tile *rod.Element) types.AdditionalInfo {
	lead := x.DeliveryLeadTime(tile)
	stock := 0
	if lead != nil {
		stock = PlaceholderStock
	}
	return types.AdditionalInfo{
		BadgeText:        x.Badge(tile),
		ProductURL:       x.URL(tile),
		DeliveryLeadTime: lead,
		Stock:            stock,
	}
}

// first returns the first element matching sel under tile without waiting,
// or nil if none exists.
func (x *TileExtractor) first(tile *rod.Element, sel string) *rod.Element {
	els, err := tile.Elements(sel)
	if err != nil || len(els) == 0 {
		return nil
	}
	return els.First()
}

// attr reads a named attribute, returning "" when absent or unreadable.
func (x *TileExtractor) attr(el *rod.Element, name string) string {
	v, err := el.Attribute(name)
	if err != nil || v == nil {
		return ""
	}
	return *v
}
