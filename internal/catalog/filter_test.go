package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefolioapp/storefolio-server/internal/domain"
)

func store(name string, mutate ...func(*domain.Store)) domain.Store {
	s := domain.Store{
		Syncable: domain.Syncable{ID: "store-" + name},
		Name:     name,
	}
	for _, m := range mutate {
		m(&s)
	}
	return s
}

func names(stores []domain.Store) []string {
	out := make([]string, len(stores))
	for i, s := range stores {
		out[i] = s.Name
	}
	return out
}

func TestFilterAndSort_EmptyFilterReturnsAllActiveSorted(t *testing.T) {
	stores := []domain.Store{
		store("Birch"),
		store("acme"),
		store("Cedar", func(s *domain.Store) { s.Archived = true }),
	}

	result := FilterAndSort(stores, domain.FilterState{}, false)

	assert.Equal(t, []string{"acme", "Birch"}, names(result))
}

func TestFilterAndSort_ArchivedViewIsExclusive(t *testing.T) {
	stores := []domain.Store{
		store("Active"),
		store("Dormant", func(s *domain.Store) { s.Archived = true }),
	}

	assert.Equal(t, []string{"Active"}, names(FilterAndSort(stores, domain.FilterState{}, false)))
	assert.Equal(t, []string{"Dormant"}, names(FilterAndSort(stores, domain.FilterState{}, true)))
}

func TestFilterAndSort_SearchMatchesNameCityCountryAndTags(t *testing.T) {
	stores := []domain.Store{
		store("Acme", func(s *domain.Store) { s.City = "Porto" }),
		store("Birch", func(s *domain.Store) { s.Country = "Portugal" }),
		store("Cedar", func(s *domain.Store) { s.Tags = []string{"portable"} }),
		store("Dune"),
	}

	result := FilterAndSort(stores, domain.FilterState{Search: "PORT"}, false)
	assert.Equal(t, []string{"Acme", "Birch", "Cedar"}, names(result))
}

func TestFilterAndSort_SearchTrimsAndIgnoresEmpty(t *testing.T) {
	stores := []domain.Store{store("Acme")}

	assert.Len(t, FilterAndSort(stores, domain.FilterState{Search: "   "}, false), 1)
	assert.Len(t, FilterAndSort(stores, domain.FilterState{Search: " acme "}, false), 1)
}

func TestFilterAndSort_TagsRequireAll(t *testing.T) {
	// A store matching only one of two required tags is excluded.
	stores := []domain.Store{
		store("Zed", func(s *domain.Store) { s.Tags = []string{"vegan"} }),
	}

	filter := domain.FilterState{Search: "zed", Tags: []string{"vegan", "sale"}}
	assert.Empty(t, FilterAndSort(stores, filter, false))

	filter.Tags = []string{"vegan"}
	assert.Len(t, FilterAndSort(stores, filter, false), 1)
}

func TestFilterAndSort_SaleGate(t *testing.T) {
	stores := []domain.Store{
		store("OnSale", func(s *domain.Store) { s.OnSale = true }),
		store("Regular"),
	}

	result := FilterAndSort(stores, domain.FilterState{OnSale: true}, false)
	assert.Equal(t, []string{"OnSale"}, names(result))
}

func TestFilterAndSort_PriceBucketsOrSemantics(t *testing.T) {
	stores := []domain.Store{
		store("Cheap", func(s *domain.Store) { s.PriceBucket = domain.BucketLow }),
		store("Pricey", func(s *domain.Store) { s.PriceBucket = domain.BucketHigh }),
		store("Mystery"), // unclassified
	}

	result := FilterAndSort(stores, domain.FilterState{
		PriceBuckets: []domain.Bucket{domain.BucketLow, domain.BucketHigh},
	}, false)
	assert.Equal(t, []string{"Cheap", "Pricey"}, names(result))
}

func TestFilterAndSort_UnclassifiedNeverMatchesActivePriceFacet(t *testing.T) {
	stores := []domain.Store{store("Mystery")}

	result := FilterAndSort(stores, domain.FilterState{
		PriceBuckets: []domain.Bucket{domain.BucketHigh},
	}, false)
	assert.Empty(t, result)
}

func TestFilterAndSort_CustomFieldsAndAcrossOrWithin(t *testing.T) {
	stores := []domain.Store{
		store("Both", func(s *domain.Store) {
			s.CustomFields = map[string][]string{"material": {"cotton"}, "fit": {"slim"}}
		}),
		store("OnlyMaterial", func(s *domain.Store) {
			s.CustomFields = map[string][]string{"material": {"wool"}}
		}),
	}

	filter := domain.FilterState{
		CustomFields: map[string][]string{
			"material": {"cotton", "wool"}, // OR within field
			"fit":      {"slim"},           // ANDed with material
		},
	}
	assert.Equal(t, []string{"Both"}, names(FilterAndSort(stores, filter, false)))
}

func TestFilterAndSort_EmptyOptionSetImposesNoConstraint(t *testing.T) {
	stores := []domain.Store{store("Acme")}

	filter := domain.FilterState{
		CustomFields: map[string][]string{"material": {}},
	}
	assert.Len(t, FilterAndSort(stores, filter, false), 1)
}

func TestFilterAndSort_TagMonotonicity(t *testing.T) {
	// Each added required tag can only shrink or preserve the match set.
	stores := []domain.Store{
		store("A", func(s *domain.Store) { s.Tags = []string{"vegan", "local"} }),
		store("B", func(s *domain.Store) { s.Tags = []string{"vegan"} }),
		store("C"),
	}

	none := FilterAndSort(stores, domain.FilterState{}, false)
	one := FilterAndSort(stores, domain.FilterState{Tags: []string{"vegan"}}, false)
	two := FilterAndSort(stores, domain.FilterState{Tags: []string{"vegan", "local"}}, false)

	assert.GreaterOrEqual(t, len(none), len(one))
	assert.GreaterOrEqual(t, len(one), len(two))
}

func TestFilterAndSort_BucketMonotonicity(t *testing.T) {
	// Each added bucket can only grow or preserve the match set.
	stores := []domain.Store{
		store("Cheap", func(s *domain.Store) { s.PriceBucket = domain.BucketLow }),
		store("Pricey", func(s *domain.Store) { s.PriceBucket = domain.BucketHigh }),
	}

	one := FilterAndSort(stores, domain.FilterState{PriceBuckets: []domain.Bucket{domain.BucketLow}}, false)
	two := FilterAndSort(stores, domain.FilterState{PriceBuckets: []domain.Bucket{domain.BucketLow, domain.BucketHigh}}, false)

	assert.LessOrEqual(t, len(one), len(two))
}

func TestFilterAndSort_StableOrderForCaseOnlyNameDifferences(t *testing.T) {
	forward := []domain.Store{store("Acme"), store("acme")}
	reversed := []domain.Store{store("acme"), store("Acme")}

	a := FilterAndSort(forward, domain.FilterState{}, false)
	b := FilterAndSort(reversed, domain.FilterState{}, false)

	require.Equal(t, names(a), names(b))
	assert.Equal(t, []string{"Acme", "acme"}, names(a))
}

func TestFilterAndSort_DoesNotMutateInput(t *testing.T) {
	stores := []domain.Store{store("Birch"), store("Acme")}

	_ = FilterAndSort(stores, domain.FilterState{}, false)

	assert.Equal(t, []string{"Birch", "Acme"}, names(stores))
}
