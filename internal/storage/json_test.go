package storage

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/bloomhound/bloomhound/internal/types"
)

var testLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

func TestJSONStorageRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "products.json")
	s := NewJSONStorage(path, testLogger)

	price := 2499
	products := []*types.ProductRecord{
		{
			ID:          "0",
			Name:        "The Aster",
			BaseName:    "The Aster",
			URL:         "https://urbanstems.com/products/the-aster",
			Price:       &price,
			Categories:  []string{"flowers"},
			Collections: []string{},
			Occasions:   []string{},
		},
	}

	if err := s.Save(context.Background(), products); err != nil {
		t.Fatalf("save: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}

	var got []*types.ProductRecord
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(got) != 1 || got[0].Name != "The Aster" {
		t.Fatalf("round trip lost data: %+v", got)
	}
	if got[0].Price == nil || *got[0].Price != 2499 {
		t.Errorf("price = %v", got[0].Price)
	}
	if got[0].DiscountedPrice != nil {
		t.Errorf("absent field came back non-nil: %v", *got[0].DiscountedPrice)
	}
}

func TestJSONStorageOverwritesAtomically(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "products.json")
	s := NewJSONStorage(path, testLogger)

	if err := s.Save(context.Background(), []*types.ProductRecord{{ID: "0", Name: "Old"}}); err != nil {
		t.Fatalf("first save: %v", err)
	}
	if err := s.Save(context.Background(), []*types.ProductRecord{{ID: "0", Name: "New"}}); err != nil {
		t.Fatalf("second save: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	var got []*types.ProductRecord
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(got) != 1 || got[0].Name != "New" {
		t.Fatalf("expected overwritten catalog, got %+v", got)
	}

	// No stray temp files survive a successful save.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("leftover files in output dir: %v", entries)
	}
}

func TestJSONStorageEmptyCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.json")
	s := NewJSONStorage(path, testLogger)

	if err := s.Save(context.Background(), []*types.ProductRecord{}); err != nil {
		t.Fatalf("save: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	var got []*types.ProductRecord
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("empty catalog not a valid JSON array: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty array, got %+v", got)
	}
}
