package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (s *Server) registerImportRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "importStores",
		Method:      http.MethodPost,
		Path:        "/api/v1/collections/{id}/import",
		Summary:     "Import stores",
		Description: "Parses CSV text and appends the accepted rows as stores",
		Tags:        []string{"Import"},
	}, s.handleImportStores)
}

// === DTOs ===

type ImportRequest struct {
	CSV string `json:"csv" minLength:"1" doc:"Raw CSV text; the header row binds columns to fields"`
}

type ImportInput struct {
	ID   string `path:"id" doc:"Collection ID"`
	Body ImportRequest
}

type RowErrorResponse struct {
	Row    int    `json:"row" doc:"1-based data row number"`
	Reason string `json:"reason" doc:"Why the row was rejected"`
}

type ImportResponse struct {
	Added     int                `json:"added" doc:"Stores added"`
	RowErrors []RowErrorResponse `json:"row_errors,omitempty" doc:"Rejected rows"`
	Truncated bool               `json:"truncated" doc:"Whether rows past the capacity cap were dropped"`
}

type ImportOutput struct {
	Body ImportResponse
}

// === Handlers ===

func (s *Server) handleImportStores(ctx context.Context, input *ImportInput) (*ImportOutput, error) {
	user, err := GetUser(ctx)
	if err != nil {
		return nil, err
	}

	result, err := s.services.Import.Import(ctx, user, input.ID, input.Body.CSV)
	if err != nil {
		return nil, err
	}

	rowErrors := make([]RowErrorResponse, len(result.RowErrors))
	for i, re := range result.RowErrors {
		rowErrors[i] = RowErrorResponse{Row: re.Row, Reason: re.Reason}
	}
	if len(rowErrors) == 0 {
		rowErrors = nil
	}

	return &ImportOutput{Body: ImportResponse{
		Added:     result.Added,
		RowErrors: rowErrors,
		Truncated: result.Truncated,
	}}, nil
}
