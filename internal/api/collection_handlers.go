package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/storefolioapp/storefolio-server/internal/domain"
)

func (s *Server) registerCollectionRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "createCollection",
		Method:      http.MethodPost,
		Path:        "/api/v1/collections",
		Summary:     "Create collection",
		Description: "Creates a new collection owned by the caller",
		Tags:        []string{"Collections"},
	}, s.handleCreateCollection)

	huma.Register(s.api, huma.Operation{
		OperationID: "listCollections",
		Method:      http.MethodGet,
		Path:        "/api/v1/collections",
		Summary:     "List collections",
		Description: "Returns the caller's collections",
		Tags:        []string{"Collections"},
	}, s.handleListCollections)

	huma.Register(s.api, huma.Operation{
		OperationID: "getCollection",
		Method:      http.MethodGet,
		Path:        "/api/v1/collections/{id}",
		Summary:     "Get collection",
		Description: "Returns a collection with its stores and folios",
		Tags:        []string{"Collections"},
	}, s.handleGetCollection)

	huma.Register(s.api, huma.Operation{
		OperationID: "renameCollection",
		Method:      http.MethodPatch,
		Path:        "/api/v1/collections/{id}",
		Summary:     "Rename collection",
		Description: "Renames a collection",
		Tags:        []string{"Collections"},
	}, s.handleRenameCollection)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteCollection",
		Method:      http.MethodDelete,
		Path:        "/api/v1/collections/{id}",
		Summary:     "Delete collection",
		Description: "Deletes a collection and all its stores",
		Tags:        []string{"Collections"},
	}, s.handleDeleteCollection)

	huma.Register(s.api, huma.Operation{
		OperationID: "filterCollectionStores",
		Method:      http.MethodPost,
		Path:        "/api/v1/collections/{id}/filter",
		Summary:     "Filter stores",
		Description: "Evaluates a facet filter over a collection's stores",
		Tags:        []string{"Collections"},
	}, s.handleFilterStores)
}

// === DTOs ===

type CollectionResponse struct {
	ID         string          `json:"id" doc:"Collection ID"`
	Name       string          `json:"name" doc:"Collection name"`
	OwnerID    string          `json:"owner_id" doc:"Owning user ID"`
	Template   domain.Template `json:"template" doc:"Field template"`
	StoreCount int             `json:"store_count" doc:"Number of stores"`
	FolioCount int             `json:"folio_count" doc:"Number of folios"`
	CreatedAt  time.Time       `json:"created_at" doc:"Creation time"`
	UpdatedAt  time.Time       `json:"updated_at" doc:"Last update time"`
}

type CollectionDetailResponse struct {
	CollectionResponse
	Stores []StoreResponse `json:"stores" doc:"Stores in the collection"`
	Folios []FolioResponse `json:"folios" doc:"Folios in the collection"`
}

type CreateCollectionRequest struct {
	Name     string          `json:"name" minLength:"1" maxLength:"200" doc:"Collection name"`
	Template domain.Template `json:"template,omitempty" doc:"Field template"`
}

type CreateCollectionInput struct {
	Body CreateCollectionRequest
}

type CollectionOutput struct {
	Body CollectionResponse
}

type CollectionDetailOutput struct {
	Body CollectionDetailResponse
}

type ListCollectionsResponse struct {
	Collections []CollectionResponse `json:"collections" doc:"The caller's collections"`
}

type ListCollectionsOutput struct {
	Body ListCollectionsResponse
}

type GetCollectionInput struct {
	ID string `path:"id" doc:"Collection ID"`
}

type RenameCollectionRequest struct {
	Name string `json:"name" minLength:"1" maxLength:"200" doc:"New collection name"`
}

type RenameCollectionInput struct {
	ID   string `path:"id" doc:"Collection ID"`
	Body RenameCollectionRequest
}

type DeleteCollectionInput struct {
	ID string `path:"id" doc:"Collection ID"`
}

type FilterRequest struct {
	Search       string              `json:"search,omitempty" doc:"Substring over name, city, country, and tags"`
	Tags         []string            `json:"tags,omitempty" doc:"Required tags (all must match)"`
	OnSale       bool                `json:"on_sale,omitempty" doc:"Admit only on-sale stores"`
	PriceBuckets []string            `json:"price_buckets,omitempty" doc:"Admitted price buckets (any may match)"`
	CustomFields map[string][]string `json:"custom_fields,omitempty" doc:"Per-field option sets (all fields must intersect)"`
}

type FilterStoresInput struct {
	ID           string `path:"id" doc:"Collection ID"`
	ViewArchived bool   `query:"view_archived" doc:"Evaluate over archived stores instead of active ones"`
	Body         FilterRequest
}

type StoresResponse struct {
	Stores []StoreResponse `json:"stores" doc:"Matching stores, sorted by name"`
}

type StoresOutput struct {
	Body StoresResponse
}

// === Handlers ===

func (s *Server) handleCreateCollection(ctx context.Context, input *CreateCollectionInput) (*CollectionOutput, error) {
	user, err := GetUser(ctx)
	if err != nil {
		return nil, err
	}

	coll, err := s.services.Collection.CreateCollection(ctx, user, input.Body.Name, input.Body.Template)
	if err != nil {
		return nil, err
	}

	return &CollectionOutput{Body: mapCollectionResponse(coll)}, nil
}

func (s *Server) handleListCollections(ctx context.Context, _ *struct{}) (*ListCollectionsOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	collections, err := s.services.Collection.ListCollections(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := make([]CollectionResponse, len(collections))
	for i, coll := range collections {
		resp[i] = mapCollectionResponse(coll)
	}

	return &ListCollectionsOutput{Body: ListCollectionsResponse{Collections: resp}}, nil
}

func (s *Server) handleGetCollection(ctx context.Context, input *GetCollectionInput) (*CollectionDetailOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	coll, err := s.services.Collection.GetCollection(ctx, userID, input.ID)
	if err != nil {
		return nil, err
	}

	return &CollectionDetailOutput{Body: mapCollectionDetailResponse(coll)}, nil
}

func (s *Server) handleRenameCollection(ctx context.Context, input *RenameCollectionInput) (*CollectionOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	coll, err := s.services.Collection.RenameCollection(ctx, userID, input.ID, input.Body.Name)
	if err != nil {
		return nil, err
	}

	return &CollectionOutput{Body: mapCollectionResponse(coll)}, nil
}

func (s *Server) handleDeleteCollection(ctx context.Context, input *DeleteCollectionInput) (*MessageOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.services.Collection.DeleteCollection(ctx, userID, input.ID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Collection deleted"}}, nil
}

func (s *Server) handleFilterStores(ctx context.Context, input *FilterStoresInput) (*StoresOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	filter := domain.FilterState{
		Search:       input.Body.Search,
		Tags:         input.Body.Tags,
		OnSale:       input.Body.OnSale,
		CustomFields: input.Body.CustomFields,
	}
	for _, bucket := range input.Body.PriceBuckets {
		filter.PriceBuckets = append(filter.PriceBuckets, domain.Bucket(bucket))
	}

	stores, err := s.services.Collection.FilterStores(ctx, userID, input.ID, filter, input.ViewArchived)
	if err != nil {
		return nil, err
	}

	resp := make([]StoreResponse, len(stores))
	for i := range stores {
		resp[i] = mapStoreResponse(&stores[i])
	}

	return &StoresOutput{Body: StoresResponse{Stores: resp}}, nil
}

// === Mappers ===

func mapCollectionResponse(coll *domain.Collection) CollectionResponse {
	return CollectionResponse{
		ID:         coll.ID,
		Name:       coll.Name,
		OwnerID:    coll.OwnerID,
		Template:   coll.Template,
		StoreCount: len(coll.Stores),
		FolioCount: len(coll.Folios),
		CreatedAt:  coll.CreatedAt,
		UpdatedAt:  coll.UpdatedAt,
	}
}

func mapCollectionDetailResponse(coll *domain.Collection) CollectionDetailResponse {
	stores := make([]StoreResponse, len(coll.Stores))
	for i := range coll.Stores {
		stores[i] = mapStoreResponse(&coll.Stores[i])
	}
	folios := make([]FolioResponse, len(coll.Folios))
	for i := range coll.Folios {
		folios[i] = mapFolioResponse(&coll.Folios[i])
	}
	return CollectionDetailResponse{
		CollectionResponse: mapCollectionResponse(coll),
		Stores:             stores,
		Folios:             folios,
	}
}
