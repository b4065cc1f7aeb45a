package domain

import (
	"slices"
	"time"
)

// Folio represents a named, ordered subset of a collection's stores,
// referenced by id. Membership does not imply ownership: a store may sit in
// zero or many folios. A folio reference to a deleted store is tolerated and
// simply skipped when rendering.
type Folio struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	StoreIDs  []string  `json:"store_ids"` // Ordered list of store IDs (newest first)
}

// AddStore adds a store ID to the folio, prepending it to maintain newest-first ordering.
// If the store is already present, this is a no-op. Updates UpdatedAt on success.
func (f *Folio) AddStore(storeID string) bool {
	if slices.Contains(f.StoreIDs, storeID) {
		return false // Already present
	}
	// Prepend to maintain newest-first ordering
	f.StoreIDs = append([]string{storeID}, f.StoreIDs...)
	f.UpdatedAt = time.Now()
	return true
}

// RemoveStore removes a store ID from the folio.
// Updates UpdatedAt on success. Returns false if the store was not present.
func (f *Folio) RemoveStore(storeID string) bool {
	for i, id := range f.StoreIDs {
		if id == storeID {
			f.StoreIDs = append(f.StoreIDs[:i], f.StoreIDs[i+1:]...)
			f.UpdatedAt = time.Now()
			return true
		}
	}
	return false
}

// ContainsStore checks if a store ID is in this folio.
func (f *Folio) ContainsStore(storeID string) bool {
	return slices.Contains(f.StoreIDs, storeID)
}
