package types

import (
	"net/url"
	"strings"
)

// VariantType identifies the bouquet size of a product within its family.
type VariantType string

const (
	VariantSingle VariantType = "single"
	VariantDouble VariantType = "double"
	VariantTriple VariantType = "triple"
)

// PageKind classifies a taxonomy page discovered from the storefront navigation.
type PageKind string

const (
	KindCategory   PageKind = "category"
	KindCollection PageKind = "collection"
	KindOccasion   PageKind = "occasion"
)

// TaxonomyTarget is one crawlable grouping page (category, collection or occasion).
type TaxonomyTarget struct {
	Name string
	URL  string
	Kind PageKind
}

// Slug returns the lowercase dash-joined form of the target name, used as the
// tag value for category pages.
func (t TaxonomyTarget) Slug() string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(t.Name)), " ", "-")
}

// Tag returns the value appended to a product's tag list for this target:
// the slug for categories, the display name for collections and occasions.
func (t TaxonomyTarget) Tag() string {
	if t.Kind == KindCategory {
		return t.Slug()
	}
	return t.Name
}

// ProductRecord is one catalog entry. Optional scalar fields are pointers and
// serialize as JSON null when absent; VariantType stays nil until a sibling
// variant makes "single" meaningful.
type ProductRecord struct {
	ID                string                 `json:"id"`
	Name              string                 `json:"name"`
	VariantType       *VariantType           `json:"variantType"`
	BaseName          string                 `json:"baseName"`
	URL               string                 `json:"url"`
	Price             *int                   `json:"price"`
	DiscountedPrice   *int                   `json:"discountedPrice"`
	MainImage         *string                `json:"mainImage"`
	HoverImage        *string                `json:"hoverImage"`
	BadgeText         *string                `json:"badgeText"`
	DeliveryLeadTime  *int                   `json:"deliveryLeadTime"`
	Stock             int                    `json:"stock"`
	ReviewsRating     *float64               `json:"reviewsRating"`
	ReviewsCount      *int                   `json:"reviewsCount"`
	Description       *string                `json:"description"`
	CareInstructions  *string                `json:"careInstructions"`
	MainDetailSrc     *string                `json:"mainDetailSrc"`
	IsMainDetailVideo bool                   `json:"isMainDetailVideo"`
	DetailImage1Src   *string                `json:"detailImage1Src"`
	DetailImage2Src   *string                `json:"detailImage2Src"`
	Categories        []string               `json:"categories"`
	Collections       []string               `json:"collections"`
	Occasions         []string               `json:"occasions"`
	VariationLinks    map[VariantType]string `json:"variationLinks,omitempty"`
}

// DedupKey returns the cross-page identity of the record: the trailing path
// segment of its detail URL.
func (p *ProductRecord) DedupKey() string {
	return ProductKey(p.URL)
}

// TagSlice returns the tag list for the given page kind. The returned pointer
// aliases the record's slice so appends are visible through the record.
func (p *ProductRecord) TagSlice(kind PageKind) *[]string {
	switch kind {
	case KindCategory:
		return &p.Categories
	case KindCollection:
		return &p.Collections
	case KindOccasion:
		return &p.Occasions
	}
	return nil
}

// AddTag appends value to the tag list for kind unless it is already present.
// Returns true when the list changed.
func (p *ProductRecord) AddTag(kind PageKind, value string) bool {
	list := p.TagSlice(kind)
	if list == nil || value == "" {
		return false
	}
	for _, v := range *list {
		if v == value {
			return false
		}
	}
	*list = append(*list, value)
	return true
}

// ProductKey derives the dedup key from a product detail href or URL: the
// trailing segment of the URL path. Assumes slugs are stable and unique
// across taxonomy pages.
func ProductKey(rawURL string) string {
	path := rawURL
	if u, err := url.Parse(rawURL); err == nil {
		path = u.Path
	}
	path = strings.TrimSuffix(path, "/")
	if i := strings.LastIndex(path, "/"); i >= 0 {
		return path[i+1:]
	}
	return path
}

// DetailInfo carries the long-form fields fetched from a product detail page.
type DetailInfo struct {
	Description      *string
	CareInstructions *string
	Media            *MediaInfo
}

// MediaInfo holds the lifestyle gallery media of a detail page.
type MediaInfo struct {
	MainDetailSrc     *string
	IsMainDetailVideo bool
	DetailImage1Src   *string
	DetailImage2Src   *string
}

// BasicInfo is the first extraction pass over a tile; an empty Name rejects
// the card before anything else runs.
type BasicInfo struct {
	Name          string
	VariantType   VariantType
	BaseName      string
	ReviewsRating *float64
	ReviewsCount  *int
}

// ImageInfo holds the tile-level media URLs.
type ImageInfo struct {
	MainImage  *string
	HoverImage *string
}

// PricingInfo holds tile prices in integer cents.
type PricingInfo struct {
	Price           *int
	DiscountedPrice *int
}

// AdditionalInfo holds badge, resolved URL and delivery signal for a tile.
type AdditionalInfo struct {
	BadgeText        *string
	ProductURL       *string
	DeliveryLeadTime *int
	Stock            int
}
