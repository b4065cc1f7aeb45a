// Package enrich fetches supplemental store data from external providers.
// Providers return loose partial payloads; what actually lands on a store
// is decided by the catalog merger, never here.
package enrich

import (
	"context"

	"github.com/storefolioapp/storefolio-server/internal/domain"
)

// Provider looks up supplemental data for a store.
type Provider interface {
	// Enrich returns a partial payload for the store. A provider that has
	// nothing for the store returns ErrNoMatch.
	Enrich(ctx context.Context, store *domain.Store) (domain.PartialStore, error)
}

// ImageProvider generates or fetches an image for a store.
type ImageProvider interface {
	// GenerateImage returns encoded image bytes (PNG or JPEG).
	GenerateImage(ctx context.Context, store *domain.Store) ([]byte, error)
}
