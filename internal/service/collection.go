// Package service orchestrates catalog operations over the persistence and
// search layers. Services enforce ownership and capacity; the pure rules
// (normalization, merging, filtering) live in the catalog engine.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/storefolioapp/storefolio-server/internal/catalog"
	"github.com/storefolioapp/storefolio-server/internal/domain"
	domainerrors "github.com/storefolioapp/storefolio-server/internal/errors"
	"github.com/storefolioapp/storefolio-server/internal/id"
	"github.com/storefolioapp/storefolio-server/internal/store"
	"github.com/storefolioapp/storefolio-server/internal/validation"
)

// entityName carries a user-supplied display name through validation.
type entityName struct {
	Name string `json:"name" validate:"required,min=1,max=200"`
}

// CollectionService orchestrates collection and store operations with
// ownership enforcement and the store capacity cap.
type CollectionService struct {
	store     *store.Store
	logger    *slog.Logger
	validator *validation.Validator
	maxStores int
}

// NewCollectionService creates a collection service.
// maxStores caps how many stores a single collection may hold.
func NewCollectionService(st *store.Store, logger *slog.Logger, maxStores int) *CollectionService {
	return &CollectionService{
		store:     st,
		logger:    logger,
		validator: validation.New(),
		maxStores: maxStores,
	}
}

// MaxStores returns the per-collection store cap.
func (s *CollectionService) MaxStores() int {
	return s.maxStores
}

// CreateCollection creates a new collection for the user.
func (s *CollectionService) CreateCollection(ctx context.Context, owner domain.UserRef, name string, template domain.Template) (*domain.Collection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if err := s.validator.Validate(entityName{Name: name}); err != nil {
		return nil, err
	}

	collectionID, err := id.Generate("coll")
	if err != nil {
		return nil, fmt.Errorf("generate collection ID: %w", err)
	}

	coll := &domain.Collection{
		OwnerID:  owner.ID,
		Name:     name,
		Template: template,
		Stores:   []domain.Store{},
		Folios:   []domain.Folio{},
	}
	coll.ID = collectionID
	coll.InitTimestamps()

	if err := s.store.Collections.Create(ctx, coll.ID, coll); err != nil {
		return nil, fmt.Errorf("create collection: %w", err)
	}

	s.logger.Info("collection created",
		"collection_id", collectionID,
		"owner_id", owner.ID,
		"name", name,
	)

	return coll, nil
}

// GetCollection retrieves a collection, enforcing ownership.
func (s *CollectionService) GetCollection(ctx context.Context, userID, collectionID string) (*domain.Collection, error) {
	return s.getOwned(ctx, userID, collectionID)
}

// ListCollections returns all collections owned by the user.
func (s *CollectionService) ListCollections(ctx context.Context, ownerID string) ([]*domain.Collection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var out []*domain.Collection
	for coll, err := range s.store.Collections.ListByIndex(ctx, "owner", ownerID) {
		if err != nil {
			return nil, fmt.Errorf("list collections: %w", err)
		}
		out = append(out, coll)
	}
	return out, nil
}

// RenameCollection updates a collection's name.
func (s *CollectionService) RenameCollection(ctx context.Context, userID, collectionID, name string) (*domain.Collection, error) {
	coll, err := s.getOwned(ctx, userID, collectionID)
	if err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if err := s.validator.Validate(entityName{Name: name}); err != nil {
		return nil, err
	}

	coll.Name = name
	coll.Touch()

	if err := s.store.SaveCollection(ctx, coll); err != nil {
		return nil, fmt.Errorf("save collection: %w", err)
	}

	s.logger.Info("collection renamed",
		"collection_id", collectionID,
		"name", name,
	)

	return coll, nil
}

// DeleteCollection removes a collection and all its stores.
func (s *CollectionService) DeleteCollection(ctx context.Context, userID, collectionID string) error {
	coll, err := s.getOwned(ctx, userID, collectionID)
	if err != nil {
		return err
	}

	if err := s.store.DeleteCollection(ctx, coll); err != nil {
		return fmt.Errorf("delete collection: %w", err)
	}

	s.logger.Info("collection deleted",
		"collection_id", collectionID,
		"user_id", userID,
		"stores", len(coll.Stores),
	)

	return nil
}

// AddStore normalizes a raw payload and appends it to the collection.
// The per-collection store cap is enforced here, not in the domain model.
func (s *CollectionService) AddStore(ctx context.Context, user domain.UserRef, collectionID string, raw domain.PartialStore) (*domain.Store, error) {
	coll, err := s.getOwned(ctx, user.ID, collectionID)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(raw.Name) == "" {
		return nil, domainerrors.Validation("store name cannot be empty")
	}
	if s.maxStores > 0 && len(coll.Stores) >= s.maxStores {
		return nil, domainerrors.Conflictf("collection is full (%d stores max)", s.maxStores)
	}

	st := catalog.NormalizeStore(raw, catalog.Context{
		CollectionID: collectionID,
		User:         user,
	})
	coll.AddStore(st)

	if err := s.store.SaveCollection(ctx, coll); err != nil {
		return nil, fmt.Errorf("save collection: %w", err)
	}

	s.logger.Info("store added",
		"collection_id", collectionID,
		"store_id", st.ID,
		"name", st.Name,
	)

	return coll.FindStore(st.ID), nil
}

// UpdateStore applies an edited payload to an existing store. Identity,
// provenance, favorites, and notes are untouched; the editable fields go
// through the same normalization as a fresh add.
func (s *CollectionService) UpdateStore(ctx context.Context, userID, collectionID, storeID string, raw domain.PartialStore) (*domain.Store, error) {
	coll, err := s.getOwned(ctx, userID, collectionID)
	if err != nil {
		return nil, err
	}

	st := coll.FindStore(storeID)
	if st == nil {
		return nil, domainerrors.NotFoundf("store %s not found", storeID)
	}

	if strings.TrimSpace(raw.Name) == "" {
		return nil, domainerrors.Validation("store name cannot be empty")
	}

	normalized := catalog.NormalizeStore(raw, catalog.Context{
		CollectionID: collectionID,
		User:         st.AddedBy,
	})
	st.Name = normalized.Name
	st.Description = normalized.Description
	st.Website = normalized.Website
	st.Country = normalized.Country
	st.City = normalized.City
	st.Tags = normalized.Tags
	st.PriceBucket = normalized.PriceBucket
	st.OnSale = normalized.OnSale
	st.Rating = normalized.Rating
	st.Sustainability = normalized.Sustainability
	st.CustomFields = normalized.CustomFields
	st.Touch()
	coll.Touch()

	if err := s.store.SaveCollection(ctx, coll); err != nil {
		return nil, fmt.Errorf("save collection: %w", err)
	}

	return st, nil
}

// SetStoreArchived archives or restores a store. Archived stores drop out of
// the default filter view but keep all their data.
func (s *CollectionService) SetStoreArchived(ctx context.Context, userID, collectionID, storeID string, archived bool) (*domain.Store, error) {
	coll, err := s.getOwned(ctx, userID, collectionID)
	if err != nil {
		return nil, err
	}

	st := coll.FindStore(storeID)
	if st == nil {
		return nil, domainerrors.NotFoundf("store %s not found", storeID)
	}

	if st.Archived != archived {
		st.Archived = archived
		st.Touch()
		coll.Touch()
		if err := s.store.SaveCollection(ctx, coll); err != nil {
			return nil, fmt.Errorf("save collection: %w", err)
		}
	}

	return st, nil
}

// DeleteStore removes a store from the collection, strips its folio
// references, and drops it from the search index.
func (s *CollectionService) DeleteStore(ctx context.Context, userID, collectionID, storeID string) error {
	coll, err := s.getOwned(ctx, userID, collectionID)
	if err != nil {
		return err
	}

	if !coll.RemoveStore(storeID) {
		return domainerrors.NotFoundf("store %s not found", storeID)
	}
	for i := range coll.Folios {
		coll.Folios[i].RemoveStore(storeID)
	}

	if err := s.store.SaveCollection(ctx, coll); err != nil {
		return fmt.Errorf("save collection: %w", err)
	}
	s.store.RemoveStoreFromIndex(ctx, storeID)

	s.logger.Info("store deleted",
		"collection_id", collectionID,
		"store_id", storeID,
	)

	return nil
}

// FavoriteStore marks a store as a favorite of the user.
func (s *CollectionService) FavoriteStore(ctx context.Context, userID, collectionID, storeID string) error {
	return s.setFavorite(ctx, userID, collectionID, storeID, true)
}

// UnfavoriteStore removes the user's favorite mark.
func (s *CollectionService) UnfavoriteStore(ctx context.Context, userID, collectionID, storeID string) error {
	return s.setFavorite(ctx, userID, collectionID, storeID, false)
}

func (s *CollectionService) setFavorite(ctx context.Context, userID, collectionID, storeID string, favorite bool) error {
	coll, err := s.getOwned(ctx, userID, collectionID)
	if err != nil {
		return err
	}

	st := coll.FindStore(storeID)
	if st == nil {
		return domainerrors.NotFoundf("store %s not found", storeID)
	}

	var changed bool
	if favorite {
		changed = st.Favorite(userID)
	} else {
		changed = st.Unfavorite(userID)
	}
	if !changed {
		return nil
	}

	if err := s.store.SaveCollection(ctx, coll); err != nil {
		return fmt.Errorf("save collection: %w", err)
	}
	return nil
}

// AddStoreNote appends a private note to a store.
func (s *CollectionService) AddStoreNote(ctx context.Context, user domain.UserRef, collectionID, storeID, text string) (*domain.Store, error) {
	coll, err := s.getOwned(ctx, user.ID, collectionID)
	if err != nil {
		return nil, err
	}

	st := coll.FindStore(storeID)
	if st == nil {
		return nil, domainerrors.NotFoundf("store %s not found", storeID)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, domainerrors.Validation("note text cannot be empty")
	}

	st.AddNote(user, text)
	coll.Touch()

	if err := s.store.SaveCollection(ctx, coll); err != nil {
		return nil, fmt.Errorf("save collection: %w", err)
	}
	return st, nil
}

// FilterStores applies the facet filter engine to the collection's current
// snapshot and returns the matching stores in canonical name order.
func (s *CollectionService) FilterStores(ctx context.Context, userID, collectionID string, filter domain.FilterState, viewArchived bool) ([]domain.Store, error) {
	coll, err := s.getOwned(ctx, userID, collectionID)
	if err != nil {
		return nil, err
	}
	return catalog.FilterAndSort(coll.Stores, filter, viewArchived), nil
}

// getOwned fetches a collection and verifies the user owns it.
func (s *CollectionService) getOwned(ctx context.Context, userID, collectionID string) (*domain.Collection, error) {
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
