package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCollection() *Collection {
	return &Collection{
		Syncable: Syncable{ID: "coll-1"},
		OwnerID:  "user-1",
		Name:     "Sustainable Brands",
		Stores: []Store{
			{Syncable: Syncable{ID: "store-1"}, CollectionID: "coll-1", Name: "Acme"},
			{Syncable: Syncable{ID: "store-2"}, CollectionID: "coll-1", Name: "Birch"},
		},
		Folios: []Folio{
			{ID: "folio-1", Name: "Picks", StoreIDs: []string{"store-1"}},
		},
	}
}

func TestCollection_FindStore(t *testing.T) {
	coll := testCollection()

	store := coll.FindStore("store-2")
	require.NotNil(t, store)
	assert.Equal(t, "Birch", store.Name)

	assert.Nil(t, coll.FindStore("store-nonexistent"))
}

func TestCollection_FindStore_ReturnsMutablePointer(t *testing.T) {
	coll := testCollection()

	coll.FindStore("store-1").OnSale = true

	assert.True(t, coll.Stores[0].OnSale)
}

func TestCollection_RemoveStore(t *testing.T) {
	coll := testCollection()

	removed := coll.RemoveStore("store-1")

	assert.True(t, removed)
	require.Len(t, coll.Stores, 1)
	assert.Equal(t, "store-2", coll.Stores[0].ID)
	// Folio references are not cascaded here; the service layer strips them.
	assert.True(t, coll.Folios[0].ContainsStore("store-1"))
}

func TestCollection_RemoveStore_NotPresent(t *testing.T) {
	coll := testCollection()

	assert.False(t, coll.RemoveStore("store-nonexistent"))
	assert.Len(t, coll.Stores, 2)
}

func TestCollection_FindFolio(t *testing.T) {
	coll := testCollection()

	folio := coll.FindFolio("folio-1")
	require.NotNil(t, folio)
	assert.Equal(t, "Picks", folio.Name)

	assert.Nil(t, coll.FindFolio("folio-nonexistent"))
}

func TestCollection_RemoveFolio(t *testing.T) {
	coll := testCollection()

	assert.True(t, coll.RemoveFolio("folio-1"))
	assert.Empty(t, coll.Folios)
	assert.False(t, coll.RemoveFolio("folio-1"))
}

func TestTemplate_CustomFieldLookups(t *testing.T) {
	tmpl := &Template{
		Name:   "fashion",
		Fields: []string{"name", "description", "tags"},
		CustomFields: []CustomFieldDef{
			{Name: "material", Options: []string{"cotton", "wool"}},
		},
	}

	assert.Equal(t, []string{"material"}, tmpl.CustomFieldNames())
	assert.True(t, tmpl.HasCustomField("material"))
	assert.False(t, tmpl.HasCustomField("fit"))
	assert.Equal(t, []string{"cotton", "wool"}, tmpl.OptionsFor("material"))
	assert.Nil(t, tmpl.OptionsFor("fit"))
}
