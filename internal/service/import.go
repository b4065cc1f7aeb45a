package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/storefolioapp/storefolio-server/internal/catalog"
	"github.com/storefolioapp/storefolio-server/internal/domain"
	domainerrors "github.com/storefolioapp/storefolio-server/internal/errors"
	"github.com/storefolioapp/storefolio-server/internal/store"
)

// ImportResult summarizes one tabular import: how many stores were added,
// which rows failed, and whether input past the capacity cap was dropped.
type ImportResult struct {
	Added     int                `json:"added"`
	RowErrors []catalog.RowError `json:"row_errors,omitempty"`
	Truncated bool               `json:"truncated"`
}

// ImportService turns raw CSV text into stores inside a collection.
// Parsing and normalization are delegated to the catalog engine; this
// service owns capacity enforcement and persistence.
type ImportService struct {
	store     *store.Store
	logger    *slog.Logger
	maxStores int
}

// NewImportService creates an import service.
func NewImportService(st *store.Store, logger *slog.Logger, maxStores int) *ImportService {
	return &ImportService{
		store:     st,
		logger:    logger,
		maxStores: maxStores,
	}
}

// Import parses CSV text against the collection's template and appends the
// accepted records as stores, attributed to the importing user. Row-level
// failures are collected, never fatal; rows past the remaining capacity are
// dropped and reported via Truncated.
func (s *ImportService) Import(ctx context.Context, user domain.UserRef, collectionID, text string) (*ImportResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	coll, err := s.store.Collections.Get(ctx, collectionID)
	if err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFoundf("collection %s not found", collectionID)
		}
		return nil, fmt.Errorf("get collection: %w", err)
	}
	if coll.OwnerID != user.ID {
		return nil, domainerrors.Forbidden("you do not own this collection")
	}

	return s.importInto(ctx, coll, user, text)
}

// ImportAsOwner imports on behalf of whoever owns the collection. Used by
// the drop-directory watcher, which has no requesting user.
func (s *ImportService) ImportAsOwner(ctx context.Context, collectionID, text string) (*ImportResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	coll, err := s.store.Collections.Get(ctx, collectionID)
	if err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFoundf("collection %s not found", collectionID)
		}
		return nil, fmt.Errorf("get collection: %w", err)
	}

	return s.importInto(ctx, coll, domain.UserRef{ID: coll.OwnerID}, text)
}

func (s *ImportService) importInto(ctx context.Context, coll *domain.Collection, user domain.UserRef, text string) (*ImportResult, error) {
	remaining := 0
	if s.maxStores > 0 {
		remaining = s.maxStores - len(coll.Stores)
		if remaining <= 0 {
			return nil, domainerrors.Conflictf("collection is full (%d stores max)", s.maxStores)
		}
	}

	parsed, err := catalog.ParseTabular(text, catalog.SchemaFromTemplate(coll.Template), remaining)
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeValidation, "parse import")
	}

	normCtx := catalog.Context{
		CollectionID: coll.ID,
		User:         user,
	}
	for _, record := range parsed.Records {
		coll.AddStore(catalog.NormalizeStore(record, normCtx))
	}

	if len(parsed.Records) > 0 {
		if err := s.store.SaveCollection(ctx, coll); err != nil {
			return nil, fmt.Errorf("save collection: %w", err)
		}
	}

	s.logger.Info("import completed",
		"collection_id", coll.ID,
		"added", len(parsed.Records),
		"row_errors", len(parsed.Errors),
		"truncated", parsed.Truncated,
	)

	return &ImportResult{
		Added:     len(parsed.Records),
		RowErrors: parsed.Errors,
		Truncated: parsed.Truncated,
	}, nil
}
