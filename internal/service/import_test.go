package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefolioapp/storefolio-server/internal/domain"
	domainerrors "github.com/storefolioapp/storefolio-server/internal/errors"
)

type importFixture struct {
	collections *CollectionService
	imports     *ImportService
	coll        *domain.Collection
}

func newImportFixture(t *testing.T, maxStores int) *importFixture {
	t.Helper()
	st := newTestStore(t)
	f := &importFixture{
		collections: NewCollectionService(st, testLogger(), maxStores),
		imports:     NewImportService(st, testLogger(), maxStores),
	}

	coll, err := f.collections.CreateCollection(context.Background(), testUser, "Brands", domain.Template{
		Fields: []string{"name", "description", "website", "country", "city", "tags", "price", "sale"},
	})
	require.NoError(t, err)
	f.coll = coll
	return f
}

func TestImportService_Import(t *testing.T) {
	f := newImportFixture(t, 100)
	ctx := context.Background()

	csv := "name,tags,price\nAcme Supply,vegan,$$\nZed Outfitters,denim,luxury\n"
	result, err := f.imports.Import(ctx, testUser, f.coll.ID, csv)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Added)
	assert.Empty(t, result.RowErrors)
	assert.False(t, result.Truncated)

	coll, err := f.collections.GetCollection(ctx, "user-1", f.coll.ID)
	require.NoError(t, err)
	require.Len(t, coll.Stores, 2)
	assert.Equal(t, "Acme Supply", coll.Stores[0].Name)
	assert.Equal(t, domain.BucketMid, coll.Stores[0].PriceBucket)
	assert.Equal(t, domain.BucketUltra, coll.Stores[1].PriceBucket)
	assert.Equal(t, testUser, coll.Stores[0].AddedBy)
}

func TestImportService_RowErrorsDoNotAbort(t *testing.T) {
	f := newImportFixture(t, 100)
	ctx := context.Background()

	csv := "name,tags\nAcme,vegan\n,orphan\nBolt,denim\n"
	result, err := f.imports.Import(ctx, testUser, f.coll.ID, csv)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Added)
	require.Len(t, result.RowErrors, 1)
	assert.Equal(t, 2, result.RowErrors[0].Row)
}

func TestImportService_EmptyInputIsValidationError(t *testing.T) {
	f := newImportFixture(t, 100)

	_, err := f.imports.Import(context.Background(), testUser, f.coll.ID, "")
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}

func TestImportService_OwnershipEnforced(t *testing.T) {
	f := newImportFixture(t, 100)

	_, err := f.imports.Import(context.Background(), domain.UserRef{ID: "user-2"}, f.coll.ID, "name\nAcme\n")
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestImportService_UnknownCollection(t *testing.T) {
	f := newImportFixture(t, 100)

	_, err := f.imports.Import(context.Background(), testUser, "coll-nope", "name\nAcme\n")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestImportService_TruncatesAtRemainingCapacity(t *testing.T) {
	f := newImportFixture(t, 3)
	ctx := context.Background()

	_, err := f.collections.AddStore(ctx, testUser, f.coll.ID, domain.PartialStore{Name: "Existing"})
	require.NoError(t, err)

	csv := "name\nOne\nTwo\nThree\n"
	result, err := f.imports.Import(ctx, testUser, f.coll.ID, csv)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Added)
	assert.True(t, result.Truncated)

	coll, err := f.collections.GetCollection(ctx, "user-1", f.coll.ID)
	require.NoError(t, err)
	assert.Len(t, coll.Stores, 3)
}

func TestImportService_FullCollectionIsConflict(t *testing.T) {
	f := newImportFixture(t, 1)
	ctx := context.Background()

	_, err := f.collections.AddStore(ctx, testUser, f.coll.ID, domain.PartialStore{Name: "Existing"})
	require.NoError(t, err)

	_, err = f.imports.Import(ctx, testUser, f.coll.ID, "name\nOne\n")
	assert.ErrorIs(t, err, domainerrors.ErrConflict)
}

func TestImportService_ImportAsOwnerAttributesOwner(t *testing.T) {
	f := newImportFixture(t, 100)
	ctx := context.Background()

	result, err := f.imports.ImportAsOwner(ctx, f.coll.ID, "name\nAcme\n")
	require.NoError(t, err)
	assert.Equal(t, 1, result.Added)

	coll, err := f.collections.GetCollection(ctx, "user-1", f.coll.ID)
	require.NoError(t, err)
	assert.Equal(t, "user-1", coll.Stores[0].AddedBy.ID)
}

func TestImportService_UnmatchedHeadersBecomeCustomFields(t *testing.T) {
	f := newImportFixture(t, 100)
	ctx := context.Background()

	csv := "name,fabric\nAcme,linen\n"
	_, err := f.imports.Import(ctx, testUser, f.coll.ID, csv)
	require.NoError(t, err)

	coll, err := f.collections.GetCollection(ctx, "user-1", f.coll.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"linen"}, coll.Stores[0].CustomFields["fabric"])
}
