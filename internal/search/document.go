// Package search provides full-text search over catalog stores using Bleve.
// It powers the cross-collection search bar; per-collection facet filtering
// stays in the catalog engine and never touches this index.
package search

import (
	"github.com/storefolioapp/storefolio-server/internal/domain"
)

// StoreDocument is the document structure for the Bleve index, one per store.
type StoreDocument struct {
	ID           string `json:"id"`
	CollectionID string `json:"collection_id"`

	// Searchable text
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	City        string `json:"city,omitempty"`
	Country     string `json:"country,omitempty"`

	// Keyword fields
	Tags        []string `json:"tags,omitempty"`
	PriceBucket string   `json:"price_bucket,omitempty"`

	// Timestamps for sorting, Unix millis
	CreatedAt int64 `json:"created_at"`
	UpdatedAt int64 `json:"updated_at"`
}

// ToMap converts the document to a map with lowercase field names.
// Bleve by default uses Go struct field names (capitalized), but our
// mapping uses lowercase names, so we convert explicitly.
func (d *StoreDocument) ToMap() map[string]interface{} {
	m := map[string]interface{}{
		"id":            d.ID,
		"collection_id": d.CollectionID,
		"name":          d.Name,
		"created_at":    d.CreatedAt,
		"updated_at":    d.UpdatedAt,
	}

	if d.Description != "" {
		m["description"] = d.Description
	}
	if d.City != "" {
		m["city"] = d.City
	}
	if d.Country != "" {
		m["country"] = d.Country
	}
	if len(d.Tags) > 0 {
		m["tags"] = d.Tags
	}
	if d.PriceBucket != "" {
		m["price_bucket"] = d.PriceBucket
	}

	return m
}

// StoreToDocument converts a domain Store to its index document.
func StoreToDocument(s *domain.Store) *StoreDocument {
	return &StoreDocument{
		ID:           s.ID,
		CollectionID: s.CollectionID,
		Name:         s.Name,
		Description:  s.Description,
		City:         s.City,
		Country:      s.Country,
		Tags:         s.Tags,
		PriceBucket:  string(s.PriceBucket),
		CreatedAt:    s.CreatedAt.UnixMilli(),
		UpdatedAt:    s.UpdatedAt.UnixMilli(),
	}
}
