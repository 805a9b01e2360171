package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/bloomhound/bloomhound/internal/types"
)

// MongoStorage persists the catalog into a MongoDB collection. Each run
// replaces the collection contents so downstream consumers always see a
// consistent snapshot.
type MongoStorage struct {
	client     *mongo.Client
	collection *mongo.Collection
	logger     *slog.Logger
}

// NewMongoStorage connects to MongoDB and verifies the connection with a ping.
func NewMongoStorage(uri, database, collection string, logger *slog.Logger) (*MongoStorage, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, &types.StorageError{Backend: "mongodb", Err: fmt.Errorf("connect: %w", err)}
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		client.Disconnect(ctx)
		return nil, &types.StorageError{Backend: "mongodb", Err: fmt.Errorf("ping: %w", err)}
	}

	return &MongoStorage{
		client:     client,
		collection: client.Database(database).Collection(collection),
		logger:     logger.With("component", "mongo_storage"),
	}, nil
}

func (s *MongoStorage) Name() string { return "mongodb" }

// Save clears the collection and inserts the full product list.
func (s *MongoStorage) Save(ctx context.Context, products []*types.ProductRecord) error {
	if _, err := s.collection.DeleteMany(ctx, map[string]any{}); err != nil {
		return &types.StorageError{Backend: s.Name(), Err: fmt.Errorf("clear collection: %w", err)}
	}
	if len(products) == 0 {
		s.logger.Info("catalog written", "products", 0)
		return nil
	}

	docs := make([]any, len(products))
	for i, p := range products {
		docs[i] = p
	}
	if _, err := s.collection.InsertMany(ctx, docs); err != nil {
		return &types.StorageError{Backend: s.Name(), Err: fmt.Errorf("insert products: %w", err)}
	}

	s.logger.Info("catalog written", "products", len(products))
	return nil
}

func (s *MongoStorage) Close(ctx context.Context) error {
	if err := s.client.Disconnect(ctx); err != nil {
		return &types.StorageError{Backend: s.Name(), Err: fmt.Errorf("disconnect: %w", err)}
	}
	return nil
}
