package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/bloomhound/bloomhound/internal/types"
)

// JSONStorage writes the catalog as an indented JSON array. The write is
// atomic: a failed run never leaves a truncated catalog behind.
type JSONStorage struct {
	path   string
	logger *slog.Logger
}

// NewJSONStorage creates a JSON file sink for the given output path.
func NewJSONStorage(outputPath string, logger *slog.Logger) *JSONStorage {
	return &JSONStorage{
		path:   outputPath,
		logger: logger.With("component", "json_storage"),
	}
}

func (s *JSONStorage) Name() string { return "json" }

// Save writes the product list to a temp file in the target directory and
// renames it into place.
func (s *JSONStorage) Save(ctx context.Context, products []*types.ProductRecord) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &types.StorageError{Backend: s.Name(), Err: fmt.Errorf("create output dir: %w", err)}
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return &types.StorageError{Backend: s.Name(), Err: fmt.Errorf("create temp file: %w", err)}
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(products); err != nil {
		tmp.Close()
		return &types.StorageError{Backend: s.Name(), Err: fmt.Errorf("encode JSON: %w", err)}
	}
	if err := tmp.Close(); err != nil {
		return &types.StorageError{Backend: s.Name(), Err: fmt.Errorf("close temp file: %w", err)}
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		return &types.StorageError{Backend: s.Name(), Err: fmt.Errorf("rename into place: %w", err)}
	}

	s.logger.Info("catalog written", "path", s.path, "products", len(products))
	return nil
}

func (s *JSONStorage) Close(ctx context.Context) error { return nil }
