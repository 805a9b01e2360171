package browser

import (
	"testing"

	"github.com/bloomhound/bloomhound/internal/config"
)

func TestViewportHeight(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Browser.ViewportHeight = 1024
	d := &Driver{cfg: cfg}
	if got := d.ViewportHeight(); got != 1024 {
		t.Errorf("ViewportHeight() = %d, want 1024", got)
	}
}

// --- Viewport Intersection Tests ---

func TestBoxIntersectsViewport(t *testing.T) {
	const viewport = 800.0

	cases := []struct {
		name      string
		y, height float64
		want      bool
	}{
		{"fully inside", 100, 200, true},
		{"straddles top edge", -50, 100, true},
		{"straddles bottom edge", 750, 200, true},
		{"entirely above", -300, 200, false},
		{"entirely below", 900, 200, false},
		{"bottom edge at viewport top", -200, 200, true},
		{"top edge at viewport bottom", 800, 100, true},
		{"just above", -201, 200, false},
		{"just below", 801, 100, false},
	}
	for _, c := range cases {
		if got := BoxIntersectsViewport(c.y, c.height, viewport); got != c.want {
			t.Errorf("%s: BoxIntersectsViewport(%v, %v) = %v, want %v",
				c.name, c.y, c.height, got, c.want)
		}
	}
}

// --- Media URL Tests ---

func TestNormalizeMediaURL(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"//cdn.urbanstems.com/x.jpg", "https://cdn.urbanstems.com/x.jpg"},
		{"https://cdn.urbanstems.com/x.jpg", "https://cdn.urbanstems.com/x.jpg"},
		{"/local/x.jpg", "/local/x.jpg"},
		{"", ""},
	}
	for _, c := range cases {
		if got := NormalizeMediaURL(c.in); got != c.want {
			t.Errorf("NormalizeMediaURL(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
