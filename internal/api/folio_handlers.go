package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/storefolioapp/storefolio-server/internal/domain"
)

func (s *Server) registerFolioRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "createFolio",
		Method:      http.MethodPost,
		Path:        "/api/v1/collections/{id}/folios",
		Summary:     "Create folio",
		Description: "Creates a named folio inside a collection",
		Tags:        []string{"Folios"},
	}, s.handleCreateFolio)

	huma.Register(s.api, huma.Operation{
		OperationID: "listFolios",
		Method:      http.MethodGet,
		Path:        "/api/v1/collections/{id}/folios",
		Summary:     "List folios",
		Description: "Returns a collection's folios",
		Tags:        []string{"Folios"},
	}, s.handleListFolios)

	huma.Register(s.api, huma.Operation{
		OperationID: "renameFolio",
		Method:      http.MethodPatch,
		Path:        "/api/v1/collections/{id}/folios/{folioID}",
		Summary:     "Rename folio",
		Description: "Renames a folio",
		Tags:        []string{"Folios"},
	}, s.handleRenameFolio)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteFolio",
		Method:      http.MethodDelete,
		Path:        "/api/v1/collections/{id}/folios/{folioID}",
		Summary:     "Delete folio",
		Description: "Deletes a folio; its stores remain in the collection",
		Tags:        []string{"Folios"},
	}, s.handleDeleteFolio)

	huma.Register(s.api, huma.Operation{
		OperationID: "addStoreToFolio",
		Method:      http.MethodPut,
		Path:        "/api/v1/collections/{id}/folios/{folioID}/stores/{storeID}",
		Summary:     "Add store to folio",
		Description: "Adds a store reference to a folio (newest first)",
		Tags:        []string{"Folios"},
	}, s.handleAddStoreToFolio)

	huma.Register(s.api, huma.Operation{
		OperationID: "removeStoreFromFolio",
		Method:      http.MethodDelete,
		Path:        "/api/v1/collections/{id}/folios/{folioID}/stores/{storeID}",
		Summary:     "Remove store from folio",
		Description: "Removes a store reference from a folio",
		Tags:        []string{"Folios"},
	}, s.handleRemoveStoreFromFolio)
}

// === DTOs ===

type FolioResponse struct {
	ID        string    `json:"id" doc:"Folio ID"`
	Name      string    `json:"name" doc:"Folio name"`
	StoreIDs  []string  `json:"store_ids" doc:"Member store IDs, newest first"`
	CreatedAt time.Time `json:"created_at" doc:"Creation time"`
	UpdatedAt time.Time `json:"updated_at" doc:"Last update time"`
}

type CreateFolioRequest struct {
	Name string `json:"name" minLength:"1" maxLength:"200" doc:"Folio name"`
}

type CreateFolioInput struct {
	ID   string `path:"id" doc:"Collection ID"`
	Body CreateFolioRequest
}

type FolioOutput struct {
	Body FolioResponse
}

type ListFoliosInput struct {
	ID string `path:"id" doc:"Collection ID"`
}

type ListFoliosResponse struct {
	Folios []FolioResponse `json:"folios" doc:"Folios in the collection"`
}

type ListFoliosOutput struct {
	Body ListFoliosResponse
}

type RenameFolioRequest struct {
	Name string `json:"name" minLength:"1" maxLength:"200" doc:"New folio name"`
}

type RenameFolioInput struct {
	ID      string `path:"id" doc:"Collection ID"`
	FolioID string `path:"folioID" doc:"Folio ID"`
	Body    RenameFolioRequest
}

type FolioRefInput struct {
	ID      string `path:"id" doc:"Collection ID"`
	FolioID string `path:"folioID" doc:"Folio ID"`
}

type FolioStoreInput struct {
	ID      string `path:"id" doc:"Collection ID"`
	FolioID string `path:"folioID" doc:"Folio ID"`
	StoreID string `path:"storeID" doc:"Store ID"`
}

// === Handlers ===

func (s *Server) handleCreateFolio(ctx context.Context, input *CreateFolioInput) (*FolioOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	folio, err := s.services.Folio.CreateFolio(ctx, userID, input.ID, input.Body.Name)
	if err != nil {
		return nil, err
	}

	return &FolioOutput{Body: mapFolioResponse(folio)}, nil
}

func (s *Server) handleListFolios(ctx context.Context, input *ListFoliosInput) (*ListFoliosOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	folios, err := s.services.Folio.ListFolios(ctx, userID, input.ID)
	if err != nil {
		return nil, err
	}

	resp := make([]FolioResponse, len(folios))
	for i := range folios {
		resp[i] = mapFolioResponse(&folios[i])
	}

	return &ListFoliosOutput{Body: ListFoliosResponse{Folios: resp}}, nil
}

func (s *Server) handleRenameFolio(ctx context.Context, input *RenameFolioInput) (*FolioOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	folio, err := s.services.Folio.RenameFolio(ctx, userID, input.ID, input.FolioID, input.Body.Name)
	if err != nil {
		return nil, err
	}

	return &FolioOutput{Body: mapFolioResponse(folio)}, nil
}

func (s *Server) handleDeleteFolio(ctx context.Context, input *FolioRefInput) (*MessageOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.services.Folio.DeleteFolio(ctx, userID, input.ID, input.FolioID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Folio deleted"}}, nil
}

func (s *Server) handleAddStoreToFolio(ctx context.Context, input *FolioStoreInput) (*FolioOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	folio, err := s.services.Folio.AddStoreToFolio(ctx, userID, input.ID, input.FolioID, input.StoreID)
	if err != nil {
		return nil, err
	}

	return &FolioOutput{Body: mapFolioResponse(folio)}, nil
}

func (s *Server) handleRemoveStoreFromFolio(ctx context.Context, input *FolioStoreInput) (*FolioOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	folio, err := s.services.Folio.RemoveStoreFromFolio(ctx, userID, input.ID, input.FolioID, input.StoreID)
	if err != nil {
		return nil, err
	}

	return &FolioOutput{Body: mapFolioResponse(folio)}, nil
}

// === Mappers ===

func mapFolioResponse(f *domain.Folio) FolioResponse {
	return FolioResponse{
		ID:        f.ID,
		Name:      f.Name,
		StoreIDs:  f.StoreIDs,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}
