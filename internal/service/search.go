package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/storefolioapp/storefolio-server/internal/domain"
	"github.com/storefolioapp/storefolio-server/internal/search"
	"github.com/storefolioapp/storefolio-server/internal/store"
)

// SearchService serves the cross-collection search bar from the Bleve index
// and keeps that index in sync with store writes (it is the store layer's
// SearchIndexer). Per-collection facet filtering does not go through here;
// that is the catalog engine's job.
type SearchService struct {
	index  *search.Index
	store  *store.Store
	logger *slog.Logger
}

// NewSearchService creates a search service over the given index.
func NewSearchService(index *search.Index, st *store.Store, logger *slog.Logger) *SearchService {
	return &SearchService{
		index:  index,
		store:  st,
		logger: logger,
	}
}

// IndexStore adds or updates a store document in the index.
func (s *SearchService) IndexStore(_ context.Context, st *domain.Store) error {
	return s.index.IndexDocument(search.StoreToDocument(st))
}

// DeleteStore removes a store document from the index.
func (s *SearchService) DeleteStore(_ context.Context, storeID string) error {
	return s.index.DeleteDocument(storeID)
}

// DocumentCount reports how many store documents the index holds.
func (s *SearchService) DocumentCount() (uint64, error) {
	return s.index.DocumentCount()
}

// Search executes a query, restricted to the user's own collections.
// An explicit collection filter is honored only if the user owns it.
func (s *SearchService) Search(ctx context.Context, userID string, params search.Params) (*search.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	owned := make(map[string]bool)
	for coll, err := range s.store.Collections.ListByIndex(ctx, "owner", userID) {
		if err != nil {
			return nil, fmt.Errorf("list collections: %w", err)
		}
		owned[coll.ID] = true
	}

	if params.CollectionID != "" && !owned[params.CollectionID] {
		// Unowned filter target: nothing to see
		return &search.Result{Query: params.Query, Hits: []search.Hit{}}, nil
	}

	result, err := s.index.Search(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	// The index is global; drop hits from collections the user doesn't own.
	filtered := result.Hits[:0]
	var dropped uint64
	for _, hit := range result.Hits {
		if owned[hit.CollectionID] {
			filtered = append(filtered, hit)
		} else {
			dropped++
		}
	}
	result.Hits = filtered
	result.Total -= min(dropped, result.Total)

	return result, nil
}

// Rebuild drops the index and reindexes every store from persistence.
func (s *SearchService) Rebuild(ctx context.Context) error {
	if err := s.index.Rebuild(); err != nil {
		return fmt.Errorf("rebuild index: %w", err)
	}

	var docs []*search.StoreDocument
	for coll, err := range s.store.Collections.List(ctx) {
		if err != nil {
			return fmt.Errorf("list collections: %w", err)
		}
		for i := range coll.Stores {
			docs = append(docs, search.StoreToDocument(&coll.Stores[i]))
		}
	}

	if err := s.index.IndexDocuments(docs); err != nil {
		return fmt.Errorf("reindex stores: %w", err)
	}

	s.logger.Info("search index rebuilt", "documents", len(docs))
	return nil
}
