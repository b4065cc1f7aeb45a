package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/storefolioapp/storefolio-server/internal/search"
)

func (s *Server) registerSearchRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "searchStores",
		Method:      http.MethodGet,
		Path:        "/api/v1/search",
		Summary:     "Search stores",
		Description: "Full-text search across the caller's collections",
		Tags:        []string{"Search"},
	}, s.handleSearchStores)

	huma.Register(s.api, huma.Operation{
		OperationID: "rebuildSearchIndex",
		Method:      http.MethodPost,
		Path:        "/api/v1/search/rebuild",
		Summary:     "Rebuild search index",
		Description: "Drops and reindexes every store document",
		Tags:        []string{"Search"},
	}, s.handleRebuildSearchIndex)
}

// === DTOs ===

type SearchInput struct {
	Query        string   `query:"q" doc:"Search query; empty matches everything"`
	CollectionID string   `query:"collection_id" doc:"Restrict to one collection"`
	Tags         []string `query:"tags" doc:"Exact tag filter"`
	PriceBuckets []string `query:"price_buckets" doc:"Exact price bucket filter"`
	Limit        int      `query:"limit" minimum:"1" maximum:"100" default:"20" doc:"Page size"`
	Offset       int      `query:"offset" minimum:"0" default:"0" doc:"Page offset"`
	SortBy       string   `query:"sort_by" enum:"relevance,name,recent" default:"relevance" doc:"Sort field"`
	SortOrder    string   `query:"sort_order" enum:"asc,desc" default:"desc" doc:"Sort direction"`
	Facets       bool     `query:"facets" default:"true" doc:"Include facet counts"`
	Highlight    bool     `query:"highlight" default:"true" doc:"Include match highlighting"`
}

type SearchOutput struct {
	Body search.Result
}

// === Handlers ===

func (s *Server) handleSearchStores(ctx context.Context, input *SearchInput) (*SearchOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	params := search.Params{
		Query:         input.Query,
		CollectionID:  input.CollectionID,
		Tags:          input.Tags,
		PriceBuckets:  input.PriceBuckets,
		Limit:         input.Limit,
		Offset:        input.Offset,
		SortBy:        input.SortBy,
		SortOrder:     input.SortOrder,
		IncludeFacets: input.Facets,
		Highlight:     input.Highlight,
	}

	result, err := s.services.Search.Search(ctx, userID, params)
	if err != nil {
		return nil, err
	}

	return &SearchOutput{Body: *result}, nil
}

func (s *Server) handleRebuildSearchIndex(ctx context.Context, _ *struct{}) (*MessageOutput, error) {
	if _, err := GetUserID(ctx); err != nil {
		return nil, err
	}

	if err := s.services.Search.Rebuild(ctx); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Search index rebuilt"}}, nil
}
