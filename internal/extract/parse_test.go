package extract

import (
	"testing"
	"time"

	"github.com/bloomhound/bloomhound/internal/types"
)

// --- Name Normalization Tests ---

func TestNormalizeName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"View The Margot", "The Margot"},
		{"  View the aster  ", "The Aster"},
		{"double the juliet", "Double The Juliet"},
		{"", "Unnamed Product"},
		{"   ", "Unnamed Product"},
		{"View ", "Unnamed Product"},
		{"ROSES", "Roses"},
	}
	for _, c := range cases {
		if got := NormalizeName(c.in); got != c.want {
			t.Errorf("NormalizeName(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestTitleCase(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"the margot", "The Margot"},
		{"THE MARGOT", "The Margot"},
		{"double  spaced", "Double  Spaced"},
	}
	for _, c := range cases {
		if got := TitleCase(c.in); got != c.want {
			t.Errorf("TitleCase(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

// --- Price Parsing Tests ---

func TestParsePriceCents(t *testing.T) {
	cases := []struct {
		in   string
		want *int
	}{
		{"$24.99", intPtr(2499)},
		{"$100", intPtr(10000)},
		{" $55.50 ", intPtr(5550)},
		{"24.99", intPtr(2499)},
		{"", nil},
		{"$", nil},
		{"free", nil},
	}
	for _, c := range cases {
		got := ParsePriceCents(c.in)
		if !eqIntPtr(got, c.want) {
			t.Errorf("ParsePriceCents(%q) = %v, want %v", c.in, deref(got), deref(c.want))
		}
	}
}

// --- Variant Split Tests ---

func TestSplitVariantName(t *testing.T) {
	cases := []struct {
		in      string
		variant types.VariantType
		base    string
	}{
		{"The Aster", types.VariantSingle, "The Aster"},
		{"Double The Aster", types.VariantDouble, "The Aster"},
		{"Triple The Aster", types.VariantTriple, "The Aster"},
		{"Doubleheader", types.VariantSingle, "Doubleheader"},
	}
	for _, c := range cases {
		variant, base := SplitVariantName(c.in)
		if variant != c.variant || base != c.base {
			t.Errorf("SplitVariantName(%q) = (%s, %q), want (%s, %q)",
				c.in, variant, base, c.variant, c.base)
		}
	}
}

// --- Lead Time Tests ---

func TestParseLeadTime(t *testing.T) {
	today := time.Date(2024, 12, 30, 15, 4, 5, 0, time.UTC)

	cases := []struct {
		in   string
		want *int
	}{
		{"2025-01-01", intPtr(2)},
		{"2024-12-30", intPtr(0)},
		{"2024-12-28", intPtr(-2)},
		{"null", nil},
		{"NULL", nil},
		{"", nil},
		{"tomorrow", nil},
	}
	for _, c := range cases {
		got := ParseLeadTime(c.in, today)
		if !eqIntPtr(got, c.want) {
			t.Errorf("ParseLeadTime(%q) = %v, want %v", c.in, deref(got), deref(c.want))
		}
	}
}

// --- URL Resolution Tests ---

func TestResolveURL(t *testing.T) {
	base := "https://urbanstems.com"

	if got := ResolveURL("/products/the-aster", base); got == nil || *got != "https://urbanstems.com/products/the-aster" {
		t.Errorf("rooted href = %v", got)
	}
	if got := ResolveURL("https://cdn.example.com/x", base); got == nil || *got != "https://cdn.example.com/x" {
		t.Errorf("absolute href = %v", got)
	}
	if got := ResolveURL("", base); got != nil {
		t.Errorf("empty href = %v, want nil", *got)
	}
	if got := ResolveURL("javascript:void(0)", base); got != nil {
		t.Errorf("scheme href = %v, want nil", *got)
	}
	if got := ResolveURL("/x", base+"/"); got == nil || *got != "https://urbanstems.com/x" {
		t.Errorf("trailing-slash base = %v", got)
	}
}

// --- Review Attribute Tests ---

func TestParseRating(t *testing.T) {
	if got := ParseRating("4.8"); got == nil || *got != 4.8 {
		t.Errorf("ParseRating(4.8) = %v", got)
	}
	for _, in := range []string{"0", "", "n/a"} {
		if got := ParseRating(in); got != nil {
			t.Errorf("ParseRating(%q) = %v, want nil", in, *got)
		}
	}
}

func TestParseCount(t *testing.T) {
	if got := ParseCount("231"); got == nil || *got != 231 {
		t.Errorf("ParseCount(231) = %v", got)
	}
	for _, in := range []string{"0", "", "many"} {
		if got := ParseCount(in); got != nil {
			t.Errorf("ParseCount(%q) = %v, want nil", in, *got)
		}
	}
}

// --- helpers ---

func intPtr(n int) *int { return &n }

func eqIntPtr(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func deref(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}
