package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/storefolioapp/storefolio-server/internal/domain"
	domainerrors "github.com/storefolioapp/storefolio-server/internal/errors"
	"github.com/storefolioapp/storefolio-server/internal/id"
	"github.com/storefolioapp/storefolio-server/internal/store"
	"github.com/storefolioapp/storefolio-server/internal/validation"
)

// FolioService manages folios: ordered, named sub-groups of a collection's
// stores. Folios only reference store ids; orphaned references are tolerated
// and cleaned up when stores are deleted.
type FolioService struct {
	store     *store.Store
	logger    *slog.Logger
	validator *validation.Validator
}

// NewFolioService creates a folio service.
func NewFolioService(st *store.Store, logger *slog.Logger) *FolioService {
	return &FolioService{
		store:     st,
		logger:    logger,
		validator: validation.New(),
	}
}

// CreateFolio adds a new empty folio to the collection.
func (s *FolioService) CreateFolio(ctx context.Context, userID, collectionID, name string) (*domain.Folio, error) {
	coll, err := s.getOwned(ctx, userID, collectionID)
	if err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if err := s.validator.Validate(entityName{Name: name}); err != nil {
		return nil, err
	}

	folioID, err := id.Generate("folio")
	if err != nil {
		return nil, fmt.Errorf("generate folio ID: %w", err)
	}

	now := time.Now()
	folio := domain.Folio{
		CreatedAt: now,
		UpdatedAt: now,
		ID:        folioID,
		Name:      name,
		StoreIDs:  []string{},
	}
	coll.Folios = append(coll.Folios, folio)
	coll.Touch()

	if err := s.store.SaveCollection(ctx, coll); err != nil {
		return nil, fmt.Errorf("save collection: %w", err)
	}

	s.logger.Info("folio created",
		"collection_id", collectionID,
		"folio_id", folioID,
		"name", name,
	)

	return coll.FindFolio(folioID), nil
}

// ListFolios returns the collection's folios.
func (s *FolioService) ListFolios(ctx context.Context, userID, collectionID string) ([]domain.Folio, error) {
	coll, err := s.getOwned(ctx, userID, collectionID)
	if err != nil {
		return nil, err
	}
	return coll.Folios, nil
}

// RenameFolio updates a folio's name.
func (s *FolioService) RenameFolio(ctx context.Context, userID, collectionID, folioID, name string) (*domain.Folio, error) {
	coll, err := s.getOwned(ctx, userID, collectionID)
	if err != nil {
		return nil, err
	}

	folio := coll.FindFolio(folioID)
	if folio == nil {
		return nil, domainerrors.NotFoundf("folio %s not found", folioID)
	}

	name = strings.TrimSpace(name)
	if err := s.validator.Validate(entityName{Name: name}); err != nil {
		return nil, err
	}

	folio.Name = name
	folio.UpdatedAt = time.Now()
	coll.Touch()

	if err := s.store.SaveCollection(ctx, coll); err != nil {
		return nil, fmt.Errorf("save collection: %w", err)
	}
	return folio, nil
}

// DeleteFolio removes a folio. The stores it referenced are untouched.
func (s *FolioService) DeleteFolio(ctx context.Context, userID, collectionID, folioID string) error {
	coll, err := s.getOwned(ctx, userID, collectionID)
	if err != nil {
		return err
	}

	if !coll.RemoveFolio(folioID) {
		return domainerrors.NotFoundf("folio %s not found", folioID)
	}

	if err := s.store.SaveCollection(ctx, coll); err != nil {
		return fmt.Errorf("save collection: %w", err)
	}

	s.logger.Info("folio deleted",
		"collection_id", collectionID,
		"folio_id", folioID,
	)

	return nil
}

// AddStoreToFolio puts a store at the front of a folio.
// Adding a store that is already present is a no-op.
func (s *FolioService) AddStoreToFolio(ctx context.Context, userID, collectionID, folioID, storeID string) (*domain.Folio, error) {
	coll, err := s.getOwned(ctx, userID, collectionID)
	if err != nil {
		return nil, err
	}

	folio := coll.FindFolio(folioID)
	if folio == nil {
		return nil, domainerrors.NotFoundf("folio %s not found", folioID)
	}
	if coll.FindStore(storeID) == nil {
		return nil, domainerrors.NotFoundf("store %s not found", storeID)
	}

	if !folio.AddStore(storeID) {
		return folio, nil
	}
	coll.Touch()

	if err := s.store.SaveCollection(ctx, coll); err != nil {
		return nil, fmt.Errorf("save collection: %w", err)
	}
	return folio, nil
}

// RemoveStoreFromFolio takes a store out of a folio.
// Removing a store that is not present is a no-op.
func (s *FolioService) RemoveStoreFromFolio(ctx context.Context, userID, collectionID, folioID, storeID string) (*domain.Folio, error) {
	coll, err := s.getOwned(ctx, userID, collectionID)
	if err != nil {
		return nil, err
	}

	folio := coll.FindFolio(folioID)
	if folio == nil {
		return nil, domainerrors.NotFoundf("folio %s not found", folioID)
	}

	if !folio.RemoveStore(storeID) {
		return folio, nil
	}
	coll.Touch()

	if err := s.store.SaveCollection(ctx, coll); err != nil {
		return nil, fmt.Errorf("save collection: %w", err)
	}
	return folio, nil
}

// getOwned fetches a collection and verifies the user owns it.
func (s *FolioService) getOwned(ctx context.Context, userID, collectionID string) (*domain.Collection, error) {
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
