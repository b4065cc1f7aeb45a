package service

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/storefolioapp/storefolio-server/internal/catalog"
	"github.com/storefolioapp/storefolio-server/internal/domain"
	"github.com/storefolioapp/storefolio-server/internal/enrich"
	domainerrors "github.com/storefolioapp/storefolio-server/internal/errors"
	"github.com/storefolioapp/storefolio-server/internal/media/images"
	"github.com/storefolioapp/storefolio-server/internal/store"
)

// EnrichmentResult summarizes an enrichment pass over a collection.
type EnrichmentResult struct {
	Enriched int `json:"enriched"` // Stores that gained at least one field
	Failed   int `json:"failed"`   // Provider lookups that errored
	Skipped  int `json:"skipped"`  // Archived stores and provider misses
}

// EnrichmentService fans out over a collection's stores, asks the provider
// for supplemental data, and applies it through the fill-only merger. One
// failing store never affects its siblings.
type EnrichmentService struct {
	store         *store.Store
	provider      enrich.Provider
	imageProvider enrich.ImageProvider // optional
	images        *images.Processor    // optional, required when imageProvider is set
	logger        *slog.Logger
	maxConcurrent int
}

// NewEnrichmentService creates an enrichment service.
// imageProvider and imageProcessor may be nil to disable the image side channel.
func NewEnrichmentService(st *store.Store, provider enrich.Provider, imageProvider enrich.ImageProvider, imageProcessor *images.Processor, logger *slog.Logger, maxConcurrent int) *EnrichmentService {
	if maxConcurrent <= 0 {
		maxConcurrent = 4
	}
	return &EnrichmentService{
		store:         st,
		provider:      provider,
		imageProvider: imageProvider,
		images:        imageProcessor,
		logger:        logger,
		maxConcurrent: maxConcurrent,
	}
}

// storeOutcome is one worker's result, written only to its own slot.
type storeOutcome struct {
	merged  domain.Store
	applied bool
	failed  bool
	skipped bool
}

// EnrichCollection runs the provider over every active store in the
// collection and persists the merged snapshot once at the end.
func (s *EnrichmentService) EnrichCollection(ctx context.Context, userID, collectionID string) (*EnrichmentResult, error) {
	coll, err := s.getOwned(ctx, userID, collectionID)
	if err != nil {
		return nil, err
	}

	outcomes := make([]storeOutcome, len(coll.Stores))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrent)

	for i := range coll.Stores {
		g.Go(func() error {
			outcomes[i] = s.enrichOne(gctx, &coll.Stores[i])
			return nil // per-store failures are recorded, never propagated
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("enrichment fan-out: %w", err)
	}

	result := &EnrichmentResult{}
	changed := false
	for i, outcome := range outcomes {
		switch {
		case outcome.failed:
			result.Failed++
		case outcome.skipped:
			result.Skipped++
		case outcome.applied:
			coll.Stores[i] = outcome.merged
			result.Enriched++
			changed = true
		default:
			result.Skipped++
		}
	}

	if changed {
		coll.Touch()
		if err := s.store.SaveCollection(ctx, coll); err != nil {
			return nil, fmt.Errorf("save collection: %w", err)
		}
	}

	s.logger.Info("enrichment pass completed",
		"collection_id", collectionID,
		"enriched", result.Enriched,
		"failed", result.Failed,
		"skipped", result.Skipped,
	)

	return result, nil
}

// EnrichStore enriches a single store.
func (s *EnrichmentService) EnrichStore(ctx context.Context, userID, collectionID, storeID string) (*domain.Store, error) {
	coll, err := s.getOwned(ctx, userID, collectionID)
	if err != nil {
		return nil, err
	}

	st := coll.FindStore(storeID)
	if st == nil {
		return nil, domainerrors.NotFoundf("store %s not found", storeID)
	}

	outcome := s.enrichOne(ctx, st)
	if outcome.failed {
		return nil, domainerrors.Internalf("enrichment failed for store %s", storeID)
	}
	if !outcome.applied {
		return st, nil
	}

	*st = outcome.merged
	coll.Touch()
	if err := s.store.SaveCollection(ctx, coll); err != nil {
		return nil, fmt.Errorf("save collection: %w", err)
	}
	return st, nil
}

// enrichOne fetches and merges supplemental data for one store. The input
// store is never mutated; the merged copy is returned in the outcome.
func (s *EnrichmentService) enrichOne(ctx context.Context, st *domain.Store) storeOutcome {
	if st.Archived {
		return storeOutcome{skipped: true}
	}

	merged := *st
	applied := false

	partial, err := s.provider.Enrich(ctx, st)
	switch {
	case err == nil:
		merged = catalog.MergeEnrichment(*st, partial)
		applied = merged.Website != st.Website || merged.Description != st.Description
	case domainerrors.Is(err, enrich.ErrNoMatch):
		// A miss still gets a shot at the image side channel below.
	default:
		s.logger.Warn("enrichment lookup failed",
			"store_id", st.ID,
			"name", st.Name,
			"error", err,
		)
		return storeOutcome{failed: true}
	}

	if s.generateImage(ctx, &merged) {
		applied = true
	}

	if !applied {
		return storeOutcome{skipped: true}
	}
	return storeOutcome{merged: merged, applied: applied}
}

// generateImage runs the image side channel: provider bytes in, file plus
// blurhash out, ImageURL set. Best-effort; failures only log.
func (s *EnrichmentService) generateImage(ctx context.Context, st *domain.Store) bool {
	if s.imageProvider == nil || s.images == nil || st.ImageURL != "" {
		return false
	}

	data, err := s.imageProvider.GenerateImage(ctx, st)
	if err != nil {
		if !domainerrors.Is(err, enrich.ErrNoMatch) {
			s.logger.Warn("image generation failed",
				"store_id", st.ID,
				"error", err,
			)
		}
		return false
	}

	hash, err := s.images.Process(st.ID, data)
	if err != nil {
		s.logger.Warn("image processing failed",
			"store_id", st.ID,
			"error", err,
		)
		return false
	}

	st.ImageURL = fmt.Sprintf("/api/v1/collections/%s/stores/%s/image", st.CollectionID, st.ID)
	st.ImageBlurhash = hash
	st.Touch()
	return true
}

// getOwned fetches a collection and verifies the user owns it.
func (s *EnrichmentService) getOwned(ctx context.Context, userID, collectionID string) (*domain.Collection, error) {
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
	if coll.OwnerID != userID {
		return nil, domainerrors.Forbidden("you do not own this collection")
	}
	return coll, nil
}
