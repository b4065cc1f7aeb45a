package catalog

import (
	"slices"
	"strings"

	"github.com/storefolioapp/storefolio-server/internal/domain"
)

// FilterAndSort evaluates the facet filter against a store snapshot and
// returns the matching subset sorted by CompareNames, independent of
// insertion order. Every call is a full re-scan over the list it is given;
// no index is maintained. Correctness over the bounded per-collection set on
// each invocation is the explicit simplicity trade-off.
//
// The input slice is never mutated.
func FilterAndSort(stores []domain.Store, filter domain.FilterState, viewArchived bool) []domain.Store {
	matched := make([]domain.Store, 0, len(stores))
	for _, store := range stores {
		if matchesFilter(&store, filter, viewArchived) {
			matched = append(matched, store)
		}
	}

	slices.SortFunc(matched, func(a, b domain.Store) int {
		return CompareNames(a.Name, b.Name)
	})
	return matched
}

// matchesFilter ANDs every facet clause; each clause is vacuously true when
// its facet is unset.
func matchesFilter(store *domain.Store, filter domain.FilterState, viewArchived bool) bool {
	// Archived and active stores are mutually exclusive views, never mixed.
	if store.Archived != viewArchived {
		return false
	}

	if !matchesSearch(store, filter.Search) {
		return false
	}

	// Every selected tag is required, not any.
	for _, tag := range filter.Tags {
		if !store.HasTag(strings.ToLower(strings.TrimSpace(tag))) {
			return false
		}
	}

	if filter.OnSale && !store.OnSale {
		return false
	}

	// OR across selected buckets. An unclassified price never matches while
	// this facet is active.
	if len(filter.PriceBuckets) > 0 {
		if !store.PriceBucket.IsClassified() || !slices.Contains(filter.PriceBuckets, store.PriceBucket) {
			return false
		}
	}

	// AND across fields, OR within each field's requested options.
	for field, wanted := range filter.CustomFields {
		if len(wanted) == 0 {
			continue // no constraint
		}
		if !anyOptionSelected(store.CustomFields[field], wanted) {
			return false
		}
	}

	return true
}

func matchesSearch(store *domain.Store, search string) bool {
	term := strings.TrimSpace(search)
	if term == "" {
		return true
	}
	if foldContains(store.Name, term) ||
		foldContains(store.City, term) ||
		foldContains(store.Country, term) {
		return true
	}
	for _, tag := range store.Tags {
		if foldContains(tag, term) {
			return true
		}
	}
	return false
}

func anyOptionSelected(selected, wanted []string) bool {
	for _, opt := range selected {
		if slices.Contains(wanted, opt) {
			return true
		}
	}
	return false
}
