// Package storage persists the finished catalog at end of run.
package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bloomhound/bloomhound/internal/config"
	"github.com/bloomhound/bloomhound/internal/types"
)

// Storage is a catalog sink.
type Storage interface {
	// Name identifies the backend for logs and errors.
	Name() string

	// Save persists the full product list.
	Save(ctx context.Context, products []*types.ProductRecord) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}

// New creates the configured storage backend.
func New(cfg *config.Config, logger *slog.Logger) (Storage, error) {
	switch cfg.Storage.Type {
	case "json":
		return NewJSONStorage(cfg.Storage.OutputPath, logger), nil
	case "mongodb":
		return NewMongoStorage(cfg.Storage.MongoURI, cfg.Storage.MongoDatabase, cfg.Storage.MongoCollection, logger)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Storage.Type)
	}
}
