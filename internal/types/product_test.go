package types

import (
	"encoding/json"
	"strings"
	"testing"
)

// --- Dedup Key Tests ---

func TestProductKey(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"https://urbanstems.com/products/the-aster", "the-aster"},
		{"https://urbanstems.com/products/the-aster/", "the-aster"},
		{"/products/the-aster", "the-aster"},
		{"https://urbanstems.com/products/the-aster?ref=nav", "the-aster"},
		{"the-aster", "the-aster"},
	}
	for _, c := range cases {
		if got := ProductKey(c.in); got != c.want {
			t.Errorf("ProductKey(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

// --- Tag Accumulation Tests ---

func TestAddTagIdempotent(t *testing.T) {
	p := &ProductRecord{}

	if !p.AddTag(KindCategory, "bouquets") {
		t.Fatal("first add reported no change")
	}
	if p.AddTag(KindCategory, "bouquets") {
		t.Error("duplicate add reported a change")
	}
	if len(p.Categories) != 1 {
		t.Errorf("categories = %v, want one entry", p.Categories)
	}

	p.AddTag(KindCategory, "plants")
	if len(p.Categories) != 2 || p.Categories[1] != "plants" {
		t.Errorf("categories = %v, want append in order", p.Categories)
	}

	if p.AddTag(KindOccasion, "") {
		t.Error("empty tag reported a change")
	}
}

func TestTagSliceSelectsKind(t *testing.T) {
	p := &ProductRecord{}
	p.AddTag(KindCategory, "bouquets")
	p.AddTag(KindCollection, "best sellers")
	p.AddTag(KindOccasion, "birthday")

	if len(p.Categories) != 1 || len(p.Collections) != 1 || len(p.Occasions) != 1 {
		t.Errorf("tags landed in wrong slices: %v %v %v",
			p.Categories, p.Collections, p.Occasions)
	}
}

// --- Taxonomy Target Tests ---

func TestTaxonomyTargetTag(t *testing.T) {
	cat := TaxonomyTarget{Name: "best sellers", Kind: KindCategory}
	if got := cat.Tag(); got != "best-sellers" {
		t.Errorf("category tag = %q, want slug", got)
	}

	col := TaxonomyTarget{Name: "best sellers", Kind: KindCollection}
	if got := col.Tag(); got != "best sellers" {
		t.Errorf("collection tag = %q, want display name", got)
	}
}

// --- Serialization Tests ---

func TestRecordSerializesAbsentFieldsAsNull(t *testing.T) {
	p := &ProductRecord{
		ID:          "0",
		Name:        "The Aster",
		BaseName:    "The Aster",
		URL:         "/products/the-aster",
		Categories:  []string{},
		Collections: []string{},
		Occasions:   []string{},
	}

	out, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	s := string(out)

	for _, key := range []string{`"price":null`, `"variantType":null`, `"description":null`} {
		if !strings.Contains(s, key) {
			t.Errorf("output missing explicit null %s: %s", key, s)
		}
	}
	if strings.Contains(s, "variationLinks") {
		t.Errorf("empty variation links serialized: %s", s)
	}
	if !strings.Contains(s, `"categories":[]`) {
		t.Errorf("empty tag slice not serialized as []: %s", s)
	}
}
