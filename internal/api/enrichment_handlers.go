package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (s *Server) registerEnrichmentRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "enrichCollection",
		Method:      http.MethodPost,
		Path:        "/api/v1/collections/{id}/enrich",
		Summary:     "Enrich collection",
		Description: "Runs the enrichment provider over every active store in the collection",
		Tags:        []string{"Enrichment"},
	}, s.handleEnrichCollection)

	huma.Register(s.api, huma.Operation{
		OperationID: "enrichStore",
		Method:      http.MethodPost,
		Path:        "/api/v1/collections/{id}/stores/{storeID}/enrich",
		Summary:     "Enrich store",
		Description: "Runs the enrichment provider over a single store",
		Tags:        []string{"Enrichment"},
	}, s.handleEnrichStore)
}

// === DTOs ===

type EnrichCollectionInput struct {
	ID string `path:"id" doc:"Collection ID"`
}

type EnrichmentResponse struct {
	Enriched int `json:"enriched" doc:"Stores that gained at least one field"`
	Failed   int `json:"failed" doc:"Provider lookups that errored"`
	Skipped  int `json:"skipped" doc:"Archived stores and provider misses"`
}

type EnrichmentOutput struct {
	Body EnrichmentResponse
}

// === Handlers ===

func (s *Server) handleEnrichCollection(ctx context.Context, input *EnrichCollectionInput) (*EnrichmentOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	result, err := s.services.Enrichment.EnrichCollection(ctx, userID, input.ID)
	if err != nil {
		return nil, err
	}

	return &EnrichmentOutput{Body: EnrichmentResponse{
		Enriched: result.Enriched,
		Failed:   result.Failed,
		Skipped:  result.Skipped,
	}}, nil
}

func (s *Server) handleEnrichStore(ctx context.Context, input *StoreRefInput) (*StoreOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	st, err := s.services.Enrichment.EnrichStore(ctx, userID, input.ID, input.StoreID)
	if err != nil {
		return nil, err
	}

	return &StoreOutput{Body: mapStoreResponse(st)}, nil
}
