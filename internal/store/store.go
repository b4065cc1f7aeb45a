// Package store provides collection persistence on top of Badger.
// Collections are written and read as whole snapshots (stores and folios
// embedded), matching the core engine's contract of operating on a fresh
// snapshot per call.
package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"

	"github.com/storefolioapp/storefolio-server/internal/domain"
)

// SearchIndexer is the interface for updating the search index.
// Store uses this to keep search in sync without depending on search implementation.
type SearchIndexer interface {
	IndexStore(ctx context.Context, s *domain.Store) error
	DeleteStore(ctx context.Context, storeID string) error
}

// NoopSearchIndexer is a no-op implementation for testing.
type NoopSearchIndexer struct{}

// IndexStore is a no-op.
func (NoopSearchIndexer) IndexStore(context.Context, *domain.Store) error { return nil }

// DeleteStore is a no-op.
func (NoopSearchIndexer) DeleteStore(context.Context, string) error { return nil }

// NewNoopSearchIndexer creates a new no-op search indexer for testing.
func NewNoopSearchIndexer() SearchIndexer {
	return NoopSearchIndexer{}
}

// Store wraps a Badger database instance.
type Store struct {
	db     *badger.DB
	logger *slog.Logger

	// Search indexer for keeping search in sync with store changes.
	// Set via SetSearchIndexer after store creation to avoid circular dependencies.
	searchIndexer SearchIndexer

	// Generic entities
	Collections *Entity[domain.Collection]
}

// New creates a new Store instance with the given database path.
func New(path string, logger *slog.Logger) (*Store, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil            // Disable Badger's internal logging
	opts.SyncWrites = true       // Ensure writes are synced to disk to prevent corruption on crashes
	opts.CompactL0OnClose = true // Compact L0 tables on close for faster startup

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger db: %w", err)
	}

	store := &Store{
		db:     db,
		logger: logger,
	}

	store.initCollections()

	if logger != nil {
		logger.Info("Badger database opened successfully", "path", path)
	}

	return store, nil
}

// Close gracefully closes the database connection.
func (s *Store) Close() error {
	if s.logger != nil {
		s.logger.Info("Closing database connection")
	}
	return s.db.Close()
}

// SetSearchIndexer sets the search indexer for keeping search in sync.
// This is set after store creation to avoid circular dependencies
// (store needs to exist before the search service can be created).
func (s *Store) SetSearchIndexer(indexer SearchIndexer) {
	s.searchIndexer = indexer
}

// initCollections initializes the Collections entity on the store.
// Indexed by owner so a user's collections can be listed without a full scan.
func (s *Store) initCollections() {
	s.Collections = NewEntity[domain.Collection](s, "collection:").
		WithIndex("owner", func(c *domain.Collection) []string {
			return []string{c.OwnerID}
		})
}

// SaveCollection persists a whole collection snapshot and re-indexes its
// stores. Index failures are logged, never fatal: search lags behind the
// store rather than blocking writes.
func (s *Store) SaveCollection(ctx context.Context, coll *domain.Collection) error {
	if err := s.Collections.Update(ctx, coll.ID, coll); err != nil {
		return err
	}
	if s.searchIndexer == nil {
		return nil
	}
	for i := range coll.Stores {
		if err := s.searchIndexer.IndexStore(ctx, &coll.Stores[i]); err != nil && s.logger != nil {
			s.logger.Warn("failed to index store", "store_id", coll.Stores[i].ID, "error", err)
		}
	}
	return nil
}

// DeleteCollection removes a collection and drops its stores from the index.
func (s *Store) DeleteCollection(ctx context.Context, coll *domain.Collection) error {
	if err := s.Collections.Delete(ctx, coll.ID); err != nil {
		return err
	}
	if s.searchIndexer == nil {
		return nil
	}
	for i := range coll.Stores {
		if err := s.searchIndexer.DeleteStore(ctx, coll.Stores[i].ID); err != nil && s.logger != nil {
			s.logger.Warn("failed to remove store from index", "store_id", coll.Stores[i].ID, "error", err)
		}
	}
	return nil
}

// RemoveStoreFromIndex drops a single store document from the search index.
func (s *Store) RemoveStoreFromIndex(ctx context.Context, storeID string) {
	if s.searchIndexer == nil {
		return
	}
	if err := s.searchIndexer.DeleteStore(ctx, storeID); err != nil && s.logger != nil {
		s.logger.Warn("failed to remove store from index", "store_id", storeID, "error", err)
	}
}
