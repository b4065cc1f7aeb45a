package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefolioapp/storefolio-server/internal/domain"
	"github.com/storefolioapp/storefolio-server/internal/search"
)

func newSearchFixture(t *testing.T) (*CollectionService, *SearchService) {
	t.Helper()
	st := newTestStore(t)

	idx, err := search.NewIndex(search.Options{DataPath: t.TempDir(), Logger: testLogger()})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = idx.Close()
	})

	searchSvc := NewSearchService(idx, st, testLogger())
	st.SetSearchIndexer(searchSvc)

	return NewCollectionService(st, testLogger(), 100), searchSvc
}

func TestSearchService_StoreWritesReachTheIndex(t *testing.T) {
	collections, searchSvc := newSearchFixture(t)
	ctx := context.Background()

	coll, err := collections.CreateCollection(ctx, testUser, "Brands", domain.Template{})
	require.NoError(t, err)
	_, err = collections.AddStore(ctx, testUser, coll.ID, domain.PartialStore{Name: "Acme Supply", City: "Porto"})
	require.NoError(t, err)

	params := search.DefaultParams()
	params.Query = "acme"
	result, err := searchSvc.Search(ctx, "user-1", params)
	require.NoError(t, err)
	require.Len(t, result.Hits, 1)
	assert.Equal(t, "Acme Supply", result.Hits[0].Name)
}

func TestSearchService_HitsScopedToOwnCollections(t *testing.T) {
	collections, searchSvc := newSearchFixture(t)
	ctx := context.Background()

	mine, err := collections.CreateCollection(ctx, testUser, "Mine", domain.Template{})
	require.NoError(t, err)
	_, err = collections.AddStore(ctx, testUser, mine.ID, domain.PartialStore{Name: "Acme Mine"})
	require.NoError(t, err)

	other := domain.UserRef{ID: "user-2", Name: "Brook"}
	theirs, err := collections.CreateCollection(ctx, other, "Theirs", domain.Template{})
	require.NoError(t, err)
	_, err = collections.AddStore(ctx, other, theirs.ID, domain.PartialStore{Name: "Acme Theirs"})
	require.NoError(t, err)

	params := search.DefaultParams()
	params.Query = "acme"
	result, err := searchSvc.Search(ctx, "user-1", params)
	require.NoError(t, err)
	require.Len(t, result.Hits, 1)
	assert.Equal(t, "Acme Mine", result.Hits[0].Name)

	// An explicit filter on someone else's collection yields nothing.
	params.CollectionID = theirs.ID
	result, err = searchSvc.Search(ctx, "user-1", params)
	require.NoError(t, err)
	assert.Empty(t, result.Hits)
}

func TestSearchService_DeletedStoreLeavesTheIndex(t *testing.T) {
	collections, searchSvc := newSearchFixture(t)
	ctx := context.Background()

	coll, err := collections.CreateCollection(ctx, testUser, "Brands", domain.Template{})
	require.NoError(t, err)
	added, err := collections.AddStore(ctx, testUser, coll.ID, domain.PartialStore{Name: "Acme"})
	require.NoError(t, err)
	require.NoError(t, collections.DeleteStore(ctx, "user-1", coll.ID, added.ID))

	params := search.DefaultParams()
	params.Query = "acme"
	result, err := searchSvc.Search(ctx, "user-1", params)
	require.NoError(t, err)
	assert.Empty(t, result.Hits)
}

func TestSearchService_Rebuild(t *testing.T) {
	collections, searchSvc := newSearchFixture(t)
	ctx := context.Background()

	coll, err := collections.CreateCollection(ctx, testUser, "Brands", domain.Template{})
	require.NoError(t, err)
	for _, name := range []string{"Acme", "Bolt"} {
		_, err := collections.AddStore(ctx, testUser, coll.ID, domain.PartialStore{Name: name})
		require.NoError(t, err)
	}

	require.NoError(t, searchSvc.Rebuild(ctx))

	result, err := searchSvc.Search(ctx, "user-1", search.DefaultParams())
	require.NoError(t, err)
	assert.Len(t, result.Hits, 2)
}
