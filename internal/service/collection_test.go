package service

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefolioapp/storefolio-server/internal/domain"
	domainerrors "github.com/storefolioapp/storefolio-server/internal/errors"
	"github.com/storefolioapp/storefolio-server/internal/store"
)

var testUser = domain.UserRef{ID: "user-1", Name: "Ada"}

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.New(t.TempDir(), nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func newCollectionService(t *testing.T, maxStores int) *CollectionService {
	t.Helper()
	return NewCollectionService(newTestStore(t), testLogger(), maxStores)
}

func createTestCollection(t *testing.T, svc *CollectionService) *domain.Collection {
	t.Helper()
	coll, err := svc.CreateCollection(context.Background(), testUser, "Brands", domain.Template{
		Fields: []string{"name", "description", "website", "country", "city", "tags", "price", "sale"},
	})
	require.NoError(t, err)
	return coll
}

func TestCollectionService_CreateAndGet(t *testing.T) {
	svc := newCollectionService(t, 100)
	ctx := context.Background()

	coll := createTestCollection(t, svc)
	assert.NotEmpty(t, coll.ID)
	assert.Equal(t, "user-1", coll.OwnerID)

	got, err := svc.GetCollection(ctx, "user-1", coll.ID)
	require.NoError(t, err)
	assert.Equal(t, "Brands", got.Name)
}

func TestCollectionService_CreateRejectsEmptyName(t *testing.T) {
	svc := newCollectionService(t, 100)

	_, err := svc.CreateCollection(context.Background(), testUser, "  ", domain.Template{})
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}

func TestCollectionService_GetEnforcesOwnership(t *testing.T) {
	svc := newCollectionService(t, 100)
	coll := createTestCollection(t, svc)

	_, err := svc.GetCollection(context.Background(), "user-2", coll.ID)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestCollectionService_GetMissing(t *testing.T) {
	svc := newCollectionService(t, 100)

	_, err := svc.GetCollection(context.Background(), "user-1", "coll-nope")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestCollectionService_ListCollections(t *testing.T) {
	svc := newCollectionService(t, 100)
	ctx := context.Background()

	createTestCollection(t, svc)
	_, err := svc.CreateCollection(ctx, domain.UserRef{ID: "user-2"}, "Other", domain.Template{})
	require.NoError(t, err)

	mine, err := svc.ListCollections(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}

func TestCollectionService_AddStoreNormalizes(t *testing.T) {
	svc := newCollectionService(t, 100)
	ctx := context.Background()
	coll := createTestCollection(t, svc)

	st, err := svc.AddStore(ctx, testUser, coll.ID, domain.PartialStore{
		Name:       "  Acme   Supply  ",
		Tags:       []string{"Vegan", " vegan ", "Denim"},
		PriceRange: "$$",
	})
	require.NoError(t, err)
	assert.Equal(t, "Acme Supply", st.Name)
	assert.Equal(t, []string{"vegan", "denim"}, st.Tags)
	assert.Equal(t, domain.BucketMid, st.PriceBucket)
	assert.Equal(t, testUser, st.AddedBy)
	assert.Equal(t, coll.ID, st.CollectionID)

	got, err := svc.GetCollection(ctx, "user-1", coll.ID)
	require.NoError(t, err)
	assert.Len(t, got.Stores, 1)
}

func TestCollectionService_AddStoreEnforcesCap(t *testing.T) {
	svc := newCollectionService(t, 2)
	ctx := context.Background()
	coll := createTestCollection(t, svc)

	for _, name := range []string{"One", "Two"} {
		_, err := svc.AddStore(ctx, testUser, coll.ID, domain.PartialStore{Name: name})
		require.NoError(t, err)
	}

	_, err := svc.AddStore(ctx, testUser, coll.ID, domain.PartialStore{Name: "Three"})
	assert.ErrorIs(t, err, domainerrors.ErrConflict)
}

func TestCollectionService_AddStoreRejectsBlankName(t *testing.T) {
	svc := newCollectionService(t, 100)
	coll := createTestCollection(t, svc)

	_, err := svc.AddStore(context.Background(), testUser, coll.ID, domain.PartialStore{Name: "   "})
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}

func TestCollectionService_UpdateStorePreservesIdentityAndProvenance(t *testing.T) {
	svc := newCollectionService(t, 100)
	ctx := context.Background()
	coll := createTestCollection(t, svc)

	st, err := svc.AddStore(ctx, testUser, coll.ID, domain.PartialStore{Name: "Acme"})
	require.NoError(t, err)
	_, err = svc.AddStoreNote(ctx, testUser, coll.ID, st.ID, "keep an eye on this one")
	require.NoError(t, err)

	updated, err := svc.UpdateStore(ctx, "user-1", coll.ID, st.ID, domain.PartialStore{
		Name:       "Acme Supply",
		PriceRange: "luxury",
	})
	require.NoError(t, err)
	assert.Equal(t, st.ID, updated.ID)
	assert.Equal(t, "Acme Supply", updated.Name)
	assert.Equal(t, domain.BucketUltra, updated.PriceBucket)
	assert.Equal(t, testUser, updated.AddedBy)
	assert.Len(t, updated.PrivateNotes, 1)
}

func TestCollectionService_SetStoreArchived(t *testing.T) {
	svc := newCollectionService(t, 100)
	ctx := context.Background()
	coll := createTestCollection(t, svc)

	st, err := svc.AddStore(ctx, testUser, coll.ID, domain.PartialStore{Name: "Acme"})
	require.NoError(t, err)

	archived, err := svc.SetStoreArchived(ctx, "user-1", coll.ID, st.ID, true)
	require.NoError(t, err)
	assert.True(t, archived.Archived)

	// Archived stores disappear from the active view.
	active, err := svc.FilterStores(ctx, "user-1", coll.ID, domain.FilterState{}, false)
	require.NoError(t, err)
	assert.Empty(t, active)

	view, err := svc.FilterStores(ctx, "user-1", coll.ID, domain.FilterState{}, true)
	require.NoError(t, err)
	assert.Len(t, view, 1)
}

func TestCollectionService_DeleteStoreStripsFolioReferences(t *testing.T) {
	st := newTestStore(t)
	collSvc := NewCollectionService(st, testLogger(), 100)
	folioSvc := NewFolioService(st, testLogger())
	ctx := context.Background()

	coll, err := collSvc.CreateCollection(ctx, testUser, "Brands", domain.Template{})
	require.NoError(t, err)
	added, err := collSvc.AddStore(ctx, testUser, coll.ID, domain.PartialStore{Name: "Acme"})
	require.NoError(t, err)
	folio, err := folioSvc.CreateFolio(ctx, "user-1", coll.ID, "Picks")
	require.NoError(t, err)
	_, err = folioSvc.AddStoreToFolio(ctx, "user-1", coll.ID, folio.ID, added.ID)
	require.NoError(t, err)

	require.NoError(t, collSvc.DeleteStore(ctx, "user-1", coll.ID, added.ID))

	got, err := collSvc.GetCollection(ctx, "user-1", coll.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Stores)
	require.Len(t, got.Folios, 1)
	assert.Empty(t, got.Folios[0].StoreIDs)
}

func TestCollectionService_FavoriteRoundTrip(t *testing.T) {
	svc := newCollectionService(t, 100)
	ctx := context.Background()
	coll := createTestCollection(t, svc)

	st, err := svc.AddStore(ctx, testUser, coll.ID, domain.PartialStore{Name: "Acme"})
	require.NoError(t, err)

	require.NoError(t, svc.FavoriteStore(ctx, "user-1", coll.ID, st.ID))
	// Favoriting twice is a no-op, not an error.
	require.NoError(t, svc.FavoriteStore(ctx, "user-1", coll.ID, st.ID))

	got, err := svc.GetCollection(ctx, "user-1", coll.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"user-1"}, got.Stores[0].FavoritedBy)

	require.NoError(t, svc.UnfavoriteStore(ctx, "user-1", coll.ID, st.ID))
	got, err = svc.GetCollection(ctx, "user-1", coll.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Stores[0].FavoritedBy)
}

func TestCollectionService_FilterStores(t *testing.T) {
	svc := newCollectionService(t, 100)
	ctx := context.Background()
	coll := createTestCollection(t, svc)

	for _, raw := range []domain.PartialStore{
		{Name: "Zed Outfitters", Tags: []string{"vegan"}, OnSale: true},
		{Name: "Acme Supply", Tags: []string{"vegan"}},
		{Name: "Crate", Tags: []string{"denim"}},
	} {
		_, err := svc.AddStore(ctx, testUser, coll.ID, raw)
		require.NoError(t, err)
	}

	got, err := svc.FilterStores(ctx, "user-1", coll.ID, domain.FilterState{Tags: []string{"vegan"}}, false)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Acme Supply", got[0].Name)
	assert.Equal(t, "Zed Outfitters", got[1].Name)
}

func TestCollectionService_RenameAndDelete(t *testing.T) {
	svc := newCollectionService(t, 100)
	ctx := context.Background()
	coll := createTestCollection(t, svc)

	renamed, err := svc.RenameCollection(ctx, "user-1", coll.ID, "Better Brands")
	require.NoError(t, err)
	assert.Equal(t, "Better Brands", renamed.Name)

	require.NoError(t, svc.DeleteCollection(ctx, "user-1", coll.ID))
	_, err = svc.GetCollection(ctx, "user-1", coll.ID)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}
