package extract

import (
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/bloomhound/bloomhound/internal/types"
)

// UnnamedProduct is substituted when a tile's title element is present but
// carries no text.
const UnnamedProduct = "Unnamed Product"

// NormalizeName trims the raw title text, strips a leading "View " prefix
// and title-cases the remainder. Empty input yields UnnamedProduct.
func NormalizeName(raw string) string {
	name := strings.TrimSpace(raw)
	name = strings.TrimPrefix(name, "View ")
	name = strings.TrimSpace(name)
	if name == "" {
		return UnnamedProduct
	}
	return TitleCase(name)
}

// TitleCase upper-cases the first letter of every space-separated word and
// lower-cases the rest, matching the display-name normalization the record
// dedup and variant grouping rely on.
func TitleCase(s string) string {
	words := strings.Split(s, " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		runes := []rune(strings.ToLower(w))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

// ParsePriceCents parses a display price like "$24.99" into integer cents.
// Empty or unparsable text yields nil.
func ParsePriceCents(text string) *int {
	raw := strings.TrimSpace(text)
	raw = strings.TrimPrefix(raw, "$")
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	// Round, don't truncate: 24.99*100 is 2498.999... in float64.
	cents := int(math.Round(f * 100))
	return &cents
}

// SplitVariantName derives the variant type and base name from a normalized
// display name: a "Double "/"Triple " prefix marks a sibling size, anything
// else is a single with the full name as base.
func SplitVariantName(name string) (types.VariantType, string) {
	name = strings.TrimSpace(name)
	if rest, ok := strings.CutPrefix(name, "Double "); ok {
		return types.VariantDouble, rest
	}
	if rest, ok := strings.CutPrefix(name, "Triple "); ok {
		return types.VariantTriple, rest
	}
	return types.VariantSingle, name
}

// ParseLeadTime converts a YYYY-MM-DD delivery attribute into the signed
// number of days from today. Missing, literal "null" or unparsable values
// yield nil.
func ParseLeadTime(attr string, today time.Time) *int {
	raw := strings.TrimSpace(attr)
	if raw == "" || strings.EqualFold(raw, "null") {
		return nil
	}
	d, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil
	}
	t := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	days := int(d.Sub(t).Hours() / 24)
	return &days
}

// ResolveURL turns a tile href into an absolute product URL. Rooted paths
// are joined to the base URL, absolute URLs pass through, anything else
// yields nil.
func ResolveURL(href, baseURL string) *string {
	href = strings.TrimSpace(href)
	if href == "" {
		return nil
	}
	if strings.HasPrefix(href, "/") {
		u := strings.TrimSuffix(baseURL, "/") + href
		return &u
	}
	if strings.HasPrefix(href, "http") {
		return &href
	}
	return nil
}

// ParseRating converts a rating attribute to a float. "0", empty or
// unparsable values yield nil.
func ParseRating(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "0" {
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &f
}

// ParseCount converts a review-count attribute to an int. "0", empty or
// unparsable values yield nil.
func ParseCount(raw string) *int {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "0" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &n
}
