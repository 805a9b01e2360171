package engine

import (
	"testing"

	"github.com/bloomhound/bloomhound/internal/types"
)

const menuHTML = `<div data-nav-menu="shop">
  <div class="menu__col">
    <strong class="nav__menu-headline">Categories</strong>
    <ul>
      <li><a class="hover-u" href="/flowers">Flowers</a></li>
      <li><a class="hover-u" href="/plants"><strong>Plants</strong> <span>12</span></a></li>
      <li><a class="hover-u" href="https://urbanstems.com/gifts">Gifts</a></li>
    </ul>
  </div>
  <div class="menu__col">
    <strong class="nav__menu-headline">Featured</strong>
    <ul>
      <li><a class="hover-u" href="/collections/best-sellers">Best Sellers</a></li>
      <li><a class="hover-u" href="/collections/shop-all">Shop All</a></li>
      <li><a class="hover-u" href="/collections/today">Today</a></li>
    </ul>
  </div>
  <div class="menu__col">
    <strong class="nav__menu-headline">Occasions</strong>
    <ul>
      <li><a class="hover-u" href="/occasions/birthday">Birthday</a></li>
      <li><a class="hover-u" href="mailto:help@urbanstems.com">Contact</a></li>
    </ul>
  </div>
  <div class="menu__col">
    <strong class="nav__menu-headline">About</strong>
    <ul>
      <li><a class="hover-u" href="/our-story">Our Story</a></li>
    </ul>
  </div>
</div>`

// --- Menu Parsing Tests ---

func TestParseMenu(t *testing.T) {
	targets := ParseMenu(menuHTML, "https://urbanstems.com", []string{"shop all", "today", "tomorrow"})

	want := []types.TaxonomyTarget{
		{Name: "flowers", URL: "https://urbanstems.com/flowers", Kind: types.KindCategory},
		{Name: "plants", URL: "https://urbanstems.com/plants", Kind: types.KindCategory},
		{Name: "gifts", URL: "https://urbanstems.com/gifts", Kind: types.KindCategory},
		{Name: "best sellers", URL: "https://urbanstems.com/collections/best-sellers", Kind: types.KindCollection},
		{Name: "birthday", URL: "https://urbanstems.com/occasions/birthday", Kind: types.KindOccasion},
	}

	if len(targets) != len(want) {
		t.Fatalf("got %d targets, want %d: %+v", len(targets), len(want), targets)
	}
	for i, w := range want {
		if targets[i] != w {
			t.Errorf("target %d = %+v, want %+v", i, targets[i], w)
		}
	}
}

func TestParseMenuIgnoreListOnlyAffectsCollections(t *testing.T) {
	markup := `<div>
	  <div class="menu__col">
	    <strong class="nav__menu-headline">Categories</strong>
	    <a class="hover-u" href="/today">Today</a>
	  </div>
	</div>`

	targets := ParseMenu(markup, "https://urbanstems.com", []string{"today"})
	if len(targets) != 1 || targets[0].Kind != types.KindCategory {
		t.Fatalf("category named like an ignored collection was dropped: %+v", targets)
	}
}

func TestParseMenuLinkNamePrefersInnerStrong(t *testing.T) {
	markup := `<div>
	  <div class="menu__col">
	    <strong class="nav__menu-headline">Occasions</strong>
	    <a class="hover-u" href="/occasions/sympathy"><strong>Sympathy</strong> &amp; Loss</a>
	  </div>
	</div>`

	targets := ParseMenu(markup, "https://urbanstems.com", nil)
	if len(targets) != 1 {
		t.Fatalf("got %d targets, want 1", len(targets))
	}
	if targets[0].Name != "sympathy" {
		t.Errorf("name = %q, want inner strong text", targets[0].Name)
	}
}

func TestParseMenuEmptyMarkup(t *testing.T) {
	if targets := ParseMenu("", "https://urbanstems.com", nil); len(targets) != 0 {
		t.Errorf("empty markup produced targets: %+v", targets)
	}
	if targets := ParseMenu("<div><p>no menu here</p></div>", "https://urbanstems.com", nil); len(targets) != 0 {
		t.Errorf("menuless markup produced targets: %+v", targets)
	}
}
