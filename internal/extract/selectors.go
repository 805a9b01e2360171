// Package extract reads semantic fields from rendered product tiles. Every
// extractor degrades to an absent value instead of failing: one malformed
// tile must never abort a page.
package extract

import "fmt"

// Product tile selectors.
const (
	ProductCard      = "#products .product-card"
	ProductContainer = "#products"
	CardTitle        = ".product-card__title"
	CardBadge        = ".badge"
	CardCoverLink    = "a.cover"
	CardTime         = "time"
	RatingStars      = ".rating-stars__icons"
	RatingCount      = ".rating-stars__count"
)

// Detail page selectors.
const (
	DetailAccordion        = ".pdp__accordion"
	DetailAccordionSummary = "summary"
	DetailAccordionContent = ".pdp__accordion-content"
	DetailReadySelector    = ".pdp__accordion-content p"
	DetailImageCard        = ".image-card"
	DetailLifestyleFigure  = ".pdp__lifestyle-grid figure"
)

// Navigation selectors. The headline and link structure inside each menu
// column is matched by XPath once the captured menu markup is parsed.
const (
	NavShopMenu   = `div[data-nav-menu="shop"]`
	NavMenuColumn = ".menu__col"
	ModalClose    = "button.big-close"
)

// PriceSelector builds the selector for a price element with the given role
// modifier ("regular" or "compare") on the given tag.
func PriceSelector(element, modifier string) string {
	return fmt.Sprintf("%s[data-product-card-price-%s]", element, modifier)
}

// MediaSelector builds the selector for a tile media image with the given
// modifier ("main" or "hover").
func MediaSelector(modifier string) string {
	return fmt.Sprintf("picture.product-card__media--%s img", modifier)
}
