package enrich

import (
	"context"
	"strings"

	"github.com/storefolioapp/storefolio-server/internal/domain"
)

// StubProvider is a deterministic in-memory provider for tests and local
// development. Payloads are keyed by lowercase store name.
type StubProvider struct {
	Payloads map[string]domain.PartialStore
	Image    []byte
	Err      error // Returned from every call when set
}

// NewStubProvider creates an empty stub.
func NewStubProvider() *StubProvider {
	return &StubProvider{Payloads: make(map[string]domain.PartialStore)}
}

// Add registers a payload for a store name.
func (p *StubProvider) Add(name string, payload domain.PartialStore) {
	p.Payloads[strings.ToLower(name)] = payload
}

func (p *StubProvider) Enrich(_ context.Context, store *domain.Store) (domain.PartialStore, error) {
	if p.Err != nil {
		return domain.PartialStore{}, p.Err
	}
	payload, ok := p.Payloads[strings.ToLower(store.Name)]
	if !ok {
		return domain.PartialStore{}, ErrNoMatch
	}
	return payload, nil
}

func (p *StubProvider) GenerateImage(_ context.Context, _ *domain.Store) ([]byte, error) {
	if p.Err != nil {
		return nil, p.Err
	}
	if p.Image == nil {
		return nil, ErrNoMatch
	}
	return p.Image, nil
}
