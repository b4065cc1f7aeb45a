package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefolioapp/storefolio-server/internal/domain"
	domainerrors "github.com/storefolioapp/storefolio-server/internal/errors"
)

type folioFixture struct {
	collections *CollectionService
	folios      *FolioService
	coll        *domain.Collection
	storeIDs    []string
}

func newFolioFixture(t *testing.T, storeNames ...string) *folioFixture {
	t.Helper()
	st := newTestStore(t)
	f := &folioFixture{
		collections: NewCollectionService(st, testLogger(), 100),
		folios:      NewFolioService(st, testLogger()),
	}

	ctx := context.Background()
	coll, err := f.collections.CreateCollection(ctx, testUser, "Brands", domain.Template{})
	require.NoError(t, err)
	f.coll = coll

	for _, name := range storeNames {
		added, err := f.collections.AddStore(ctx, testUser, coll.ID, domain.PartialStore{Name: name})
		require.NoError(t, err)
		f.storeIDs = append(f.storeIDs, added.ID)
	}
	return f
}

func TestFolioService_CreateAndList(t *testing.T) {
	f := newFolioFixture(t)
	ctx := context.Background()

	folio, err := f.folios.CreateFolio(ctx, "user-1", f.coll.ID, "Picks")
	require.NoError(t, err)
	assert.NotEmpty(t, folio.ID)
	assert.Empty(t, folio.StoreIDs)

	folios, err := f.folios.ListFolios(ctx, "user-1", f.coll.ID)
	require.NoError(t, err)
	assert.Len(t, folios, 1)
}

func TestFolioService_CreateRejectsEmptyName(t *testing.T) {
	f := newFolioFixture(t)

	_, err := f.folios.CreateFolio(context.Background(), "user-1", f.coll.ID, "  ")
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}

func TestFolioService_OwnershipEnforced(t *testing.T) {
	f := newFolioFixture(t)

	_, err := f.folios.CreateFolio(context.Background(), "user-2", f.coll.ID, "Picks")
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestFolioService_MembershipNewestFirst(t *testing.T) {
	f := newFolioFixture(t, "Acme", "Bolt")
	ctx := context.Background()

	folio, err := f.folios.CreateFolio(ctx, "user-1", f.coll.ID, "Picks")
	require.NoError(t, err)

	for _, id := range f.storeIDs {
		_, err := f.folios.AddStoreToFolio(ctx, "user-1", f.coll.ID, folio.ID, id)
		require.NoError(t, err)
	}

	got, err := f.folios.ListFolios(ctx, "user-1", f.coll.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{f.storeIDs[1], f.storeIDs[0]}, got[0].StoreIDs)
}

func TestFolioService_AddDuplicateIsNoOp(t *testing.T) {
	f := newFolioFixture(t, "Acme")
	ctx := context.Background()

	folio, err := f.folios.CreateFolio(ctx, "user-1", f.coll.ID, "Picks")
	require.NoError(t, err)

	_, err = f.folios.AddStoreToFolio(ctx, "user-1", f.coll.ID, folio.ID, f.storeIDs[0])
	require.NoError(t, err)
	got, err := f.folios.AddStoreToFolio(ctx, "user-1", f.coll.ID, folio.ID, f.storeIDs[0])
	require.NoError(t, err)
	assert.Len(t, got.StoreIDs, 1)
}

func TestFolioService_AddUnknownStore(t *testing.T) {
	f := newFolioFixture(t)
	ctx := context.Background()

	folio, err := f.folios.CreateFolio(ctx, "user-1", f.coll.ID, "Picks")
	require.NoError(t, err)

	_, err = f.folios.AddStoreToFolio(ctx, "user-1", f.coll.ID, folio.ID, "store-nope")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestFolioService_RemoveStore(t *testing.T) {
	f := newFolioFixture(t, "Acme")
	ctx := context.Background()

	folio, err := f.folios.CreateFolio(ctx, "user-1", f.coll.ID, "Picks")
	require.NoError(t, err)
	_, err = f.folios.AddStoreToFolio(ctx, "user-1", f.coll.ID, folio.ID, f.storeIDs[0])
	require.NoError(t, err)

	got, err := f.folios.RemoveStoreFromFolio(ctx, "user-1", f.coll.ID, folio.ID, f.storeIDs[0])
	require.NoError(t, err)
	assert.Empty(t, got.StoreIDs)

	// Removing again is a no-op.
	_, err = f.folios.RemoveStoreFromFolio(ctx, "user-1", f.coll.ID, folio.ID, f.storeIDs[0])
	require.NoError(t, err)
}

func TestFolioService_DeleteFolioLeavesStores(t *testing.T) {
	f := newFolioFixture(t, "Acme")
	ctx := context.Background()

	folio, err := f.folios.CreateFolio(ctx, "user-1", f.coll.ID, "Picks")
	require.NoError(t, err)
	_, err = f.folios.AddStoreToFolio(ctx, "user-1", f.coll.ID, folio.ID, f.storeIDs[0])
	require.NoError(t, err)

	require.NoError(t, f.folios.DeleteFolio(ctx, "user-1", f.coll.ID, folio.ID))

	coll, err := f.collections.GetCollection(ctx, "user-1", f.coll.ID)
	require.NoError(t, err)
	assert.Empty(t, coll.Folios)
	assert.Len(t, coll.Stores, 1)
}

func TestFolioService_RenameFolio(t *testing.T) {
	f := newFolioFixture(t)
	ctx := context.Background()

	folio, err := f.folios.CreateFolio(ctx, "user-1", f.coll.ID, "Picks")
	require.NoError(t, err)

	renamed, err := f.folios.RenameFolio(ctx, "user-1", f.coll.ID, folio.ID, "Top Picks")
	require.NoError(t, err)
	assert.Equal(t, "Top Picks", renamed.Name)

	_, err = f.folios.RenameFolio(ctx, "user-1", f.coll.ID, "folio-nope", "x")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}
