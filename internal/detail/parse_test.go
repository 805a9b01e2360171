package detail

import (
	"strings"
	"testing"
)

func TestParagraphsHTML(t *testing.T) {
	fragment := `<div class="pdp__accordion-content">
		<p>A fresh bouquet of asters.</p>
		<span>not a paragraph</span>
		<p>Hand-tied and <em>delivered</em>.</p>
	</div>`

	got := ParagraphsHTML(fragment)
	if !strings.Contains(got, "<p>A fresh bouquet of asters.</p>") {
		t.Errorf("first paragraph missing: %s", got)
	}
	if !strings.Contains(got, "<em>delivered</em>") {
		t.Errorf("inline markup stripped: %s", got)
	}
	if strings.Contains(got, "not a paragraph") {
		t.Errorf("non-paragraph content leaked: %s", got)
	}
}

func TestParagraphsHTMLEmpty(t *testing.T) {
	if got := ParagraphsHTML("<div><span>no paragraphs here</span></div>"); got != "" {
		t.Errorf("expected empty result, got %q", got)
	}
	if got := ParagraphsHTML(""); got != "" {
		t.Errorf("expected empty result for empty fragment, got %q", got)
	}
}

func TestPick(t *testing.T) {
	accordions := map[string]string{
		KeyDescription: "<p>desc</p>",
		"Delivery":     "<p>tomorrow</p>",
		"Empty":        "",
	}

	if got := pick(accordions, KeyDescription); got == nil || *got != "<p>desc</p>" {
		t.Errorf("pick(Description) = %v", got)
	}
	if got := pick(accordions, KeyCareInstructions); got != nil {
		t.Errorf("pick(missing) = %q, want nil", *got)
	}
	if got := pick(accordions, "Empty"); got != nil {
		t.Errorf("pick(empty) = %q, want nil", *got)
	}
}
