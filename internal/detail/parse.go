package detail

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Accordion keys whose content is lifted onto the product record. All other
// accordion sections are collected but currently unused.
const (
	KeyDescription      = "Description"
	KeyCareInstructions = "Care Instructions"
)

// ParagraphsHTML extracts every <p> element from an HTML fragment and
// returns their outer HTML concatenated, or "" when the fragment holds no
// paragraphs.
func ParagraphsHTML(fragment string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return ""
	}
	var b strings.Builder
	doc.Find("p").Each(func(_ int, s *goquery.Selection) {
		if h, err := goquery.OuterHtml(s); err == nil {
			b.WriteString(h)
		}
	})
	return b.String()
}

// pick returns a pointer to the accordion content stored under key, or nil.
func pick(accordions map[string]string, key string) *string {
	if v, ok := accordions[key]; ok && v != "" {
		return &v
	}
	return nil
}
