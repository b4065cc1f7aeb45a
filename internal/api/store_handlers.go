package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/go-chi/chi/v5"

	"github.com/storefolioapp/storefolio-server/internal/domain"
)

func (s *Server) registerStoreRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "addStore",
		Method:      http.MethodPost,
		Path:        "/api/v1/collections/{id}/stores",
		Summary:     "Add store",
		Description: "Normalizes and adds a store to a collection",
		Tags:        []string{"Stores"},
	}, s.handleAddStore)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateStore",
		Method:      http.MethodPatch,
		Path:        "/api/v1/collections/{id}/stores/{storeID}",
		Summary:     "Update store",
		Description: "Re-normalizes and updates a store's editable fields",
		Tags:        []string{"Stores"},
	}, s.handleUpdateStore)

	huma.Register(s.api, huma.Operation{
		OperationID: "archiveStore",
		Method:      http.MethodPost,
		Path:        "/api/v1/collections/{id}/stores/{storeID}/archive",
		Summary:     "Archive store",
		Description: "Sets or clears a store's archived flag",
		Tags:        []string{"Stores"},
	}, s.handleArchiveStore)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteStore",
		Method:      http.MethodDelete,
		Path:        "/api/v1/collections/{id}/stores/{storeID}",
		Summary:     "Delete store",
		Description: "Deletes a store and removes it from all folios",
		Tags:        []string{"Stores"},
	}, s.handleDeleteStore)

	huma.Register(s.api, huma.Operation{
		OperationID: "favoriteStore",
		Method:      http.MethodPut,
		Path:        "/api/v1/collections/{id}/stores/{storeID}/favorite",
		Summary:     "Favorite store",
		Description: "Marks a store as a favorite of the caller",
		Tags:        []string{"Stores"},
	}, s.handleFavoriteStore)

	huma.Register(s.api, huma.Operation{
		OperationID: "unfavoriteStore",
		Method:      http.MethodDelete,
		Path:        "/api/v1/collections/{id}/stores/{storeID}/favorite",
		Summary:     "Unfavorite store",
		Description: "Removes the caller's favorite from a store",
		Tags:        []string{"Stores"},
	}, s.handleUnfavoriteStore)

	huma.Register(s.api, huma.Operation{
		OperationID: "addStoreNote",
		Method:      http.MethodPost,
		Path:        "/api/v1/collections/{id}/stores/{storeID}/notes",
		Summary:     "Add store note",
		Description: "Appends a private note to a store",
		Tags:        []string{"Stores"},
	}, s.handleAddStoreNote)

	// Direct chi route for image bytes; huma handles JSON only.
	s.router.Get("/api/v1/collections/{id}/stores/{storeID}/image", s.handleStoreImage)
}

// === DTOs ===

type NoteResponse struct {
	CreatedAt time.Time `json:"created_at" doc:"When the note was written"`
	UserID    string    `json:"user_id" doc:"Author user ID"`
	UserName  string    `json:"user_name" doc:"Author display name at write time"`
	Text      string    `json:"text" doc:"Note text"`
}

type StoreResponse struct {
	ID             string              `json:"id" doc:"Store ID"`
	CollectionID   string              `json:"collection_id" doc:"Owning collection ID"`
	Name           string              `json:"name" doc:"Store name"`
	Description    string              `json:"description,omitempty" doc:"Description"`
	Website        string              `json:"website,omitempty" doc:"Website URL"`
	Country        string              `json:"country,omitempty" doc:"Country"`
	City           string              `json:"city,omitempty" doc:"City"`
	Tags           []string            `json:"tags,omitempty" doc:"Normalized tags"`
	PriceBucket    string              `json:"price_bucket,omitempty" doc:"Classified price bucket"`
	OnSale         bool                `json:"on_sale" doc:"Currently on sale"`
	Archived       bool                `json:"archived" doc:"Archived flag"`
	Rating         float64             `json:"rating,omitempty" doc:"Rating"`
	Sustainability string              `json:"sustainability,omitempty" doc:"Sustainability notes"`
	CustomFields   map[string][]string `json:"custom_fields,omitempty" doc:"Template-scoped custom field selections"`
	AddedBy        domain.UserRef      `json:"added_by" doc:"Who added the store"`
	FavoritedBy    []string            `json:"favorited_by,omitempty" doc:"User IDs that favorited this store"`
	PrivateNotes   []NoteResponse      `json:"private_notes,omitempty" doc:"Private annotations"`
	ImageURL       string              `json:"image_url,omitempty" doc:"Generated image URL"`
	ImageBlurhash  string              `json:"image_blurhash,omitempty" doc:"BlurHash placeholder"`
	CreatedAt      time.Time           `json:"created_at" doc:"Creation time"`
	UpdatedAt      time.Time           `json:"updated_at" doc:"Last update time"`
}

type StorePayload struct {
	Name           string              `json:"name" doc:"Store name"`
	Description    string              `json:"description,omitempty" doc:"Description"`
	Website        string              `json:"website,omitempty" doc:"Website URL"`
	Country        string              `json:"country,omitempty" doc:"Country"`
	City           string              `json:"city,omitempty" doc:"City"`
	Tags           []string            `json:"tags,omitempty" doc:"Tags, normalized on write"`
	PriceRange     string              `json:"price_range,omitempty" doc:"Raw price text, classified on write"`
	OnSale         bool                `json:"on_sale,omitempty" doc:"Currently on sale"`
	Rating         float64             `json:"rating,omitempty" doc:"Rating"`
	Sustainability string              `json:"sustainability,omitempty" doc:"Sustainability notes"`
	CustomFields   map[string][]string `json:"custom_fields,omitempty" doc:"Custom field selections"`
}

type AddStoreInput struct {
	ID   string `path:"id" doc:"Collection ID"`
	Body StorePayload
}

type StoreOutput struct {
	Body StoreResponse
}

type UpdateStoreInput struct {
	ID      string `path:"id" doc:"Collection ID"`
	StoreID string `path:"storeID" doc:"Store ID"`
	Body    StorePayload
}

type StoreRefInput struct {
	ID      string `path:"id" doc:"Collection ID"`
	StoreID string `path:"storeID" doc:"Store ID"`
}

type ArchiveStoreRequest struct {
	Archived bool `json:"archived" doc:"Desired archived state"`
}

type ArchiveStoreInput struct {
	ID      string `path:"id" doc:"Collection ID"`
	StoreID string `path:"storeID" doc:"Store ID"`
	Body    ArchiveStoreRequest
}

type AddStoreNoteRequest struct {
	Text string `json:"text" minLength:"1" doc:"Note text"`
}

type AddStoreNoteInput struct {
	ID      string `path:"id" doc:"Collection ID"`
	StoreID string `path:"storeID" doc:"Store ID"`
	Body    AddStoreNoteRequest
}

// === Handlers ===

func (s *Server) handleAddStore(ctx context.Context, input *AddStoreInput) (*StoreOutput, error) {
	user, err := GetUser(ctx)
	if err != nil {
		return nil, err
	}

	st, err := s.services.Collection.AddStore(ctx, user, input.ID, payloadToPartial(input.Body))
	if err != nil {
		return nil, err
	}

	return &StoreOutput{Body: mapStoreResponse(st)}, nil
}

func (s *Server) handleUpdateStore(ctx context.Context, input *UpdateStoreInput) (*StoreOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	st, err := s.services.Collection.UpdateStore(ctx, userID, input.ID, input.StoreID, payloadToPartial(input.Body))
	if err != nil {
		return nil, err
	}

	return &StoreOutput{Body: mapStoreResponse(st)}, nil
}

func (s *Server) handleArchiveStore(ctx context.Context, input *ArchiveStoreInput) (*StoreOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	st, err := s.services.Collection.SetStoreArchived(ctx, userID, input.ID, input.StoreID, input.Body.Archived)
	if err != nil {
		return nil, err
	}

	return &StoreOutput{Body: mapStoreResponse(st)}, nil
}

func (s *Server) handleDeleteStore(ctx context.Context, input *StoreRefInput) (*MessageOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.services.Collection.DeleteStore(ctx, userID, input.ID, input.StoreID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Store deleted"}}, nil
}

func (s *Server) handleFavoriteStore(ctx context.Context, input *StoreRefInput) (*MessageOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.services.Collection.FavoriteStore(ctx, userID, input.ID, input.StoreID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Store favorited"}}, nil
}

func (s *Server) handleUnfavoriteStore(ctx context.Context, input *StoreRefInput) (*MessageOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.services.Collection.UnfavoriteStore(ctx, userID, input.ID, input.StoreID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Store unfavorited"}}, nil
}

func (s *Server) handleAddStoreNote(ctx context.Context, input *AddStoreNoteInput) (*StoreOutput, error) {
	user, err := GetUser(ctx)
	if err != nil {
		return nil, err
	}

	st, err := s.services.Collection.AddStoreNote(ctx, user, input.ID, input.StoreID, input.Body.Text)
	if err != nil {
		return nil, err
	}

	return &StoreOutput{Body: mapStoreResponse(st)}, nil
}

// handleStoreImage streams the generated image for a store. The ETag is the
// content hash, so unchanged images stay cached client-side.
func (s *Server) handleStoreImage(w http.ResponseWriter, r *http.Request) {
	if s.storage == nil || s.storage.Images == nil {
		http.Error(w, "images not configured", http.StatusNotFound)
		return
	}

	user, err := GetUser(r.Context())
	if err != nil {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	collectionID := chi.URLParam(r, "id")
	storeID := chi.URLParam(r, "storeID")

	// Ownership gate; the image namespace is flat, so check the collection.
	if _, err := s.services.Collection.GetCollection(r.Context(), user.ID, collectionID); err != nil {
		http.Error(w, "collection not found", http.StatusNotFound)
		return
	}

	hash, err := s.storage.Images.Hash(storeID)
	if err != nil {
		http.Error(w, "image not found", http.StatusNotFound)
		return
	}
	if match := r.Header.Get("If-None-Match"); match == `"`+hash+`"` {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	data, err := s.storage.Images.Get(storeID)
	if err != nil {
		http.Error(w, "image not found", http.StatusNotFound)
		return
	}

	w.Header().Set("ETag", `"`+hash+`"`)
	w.Header().Set("Content-Type", http.DetectContentType(data))
	w.Header().Set("Cache-Control", "private, max-age=86400")
	_, _ = w.Write(data)
}

// === Mappers ===

func payloadToPartial(p StorePayload) domain.PartialStore {
	return domain.PartialStore{
		Name:           p.Name,
		Description:    p.Description,
		Website:        p.Website,
		Country:        p.Country,
		City:           p.City,
		Tags:           p.Tags,
		PriceRange:     p.PriceRange,
		OnSale:         p.OnSale,
		Rating:         p.Rating,
		Sustainability: p.Sustainability,
		CustomFields:   p.CustomFields,
	}
}

func mapStoreResponse(st *domain.Store) StoreResponse {
	notes := make([]NoteResponse, len(st.PrivateNotes))
	for i, n := range st.PrivateNotes {
		notes[i] = NoteResponse{
			CreatedAt: n.CreatedAt,
			UserID:    n.UserID,
			UserName:  n.UserName,
			Text:      n.Text,
		}
	}
	if len(notes) == 0 {
		notes = nil
	}

	return StoreResponse{
		ID:             st.ID,
		CollectionID:   st.CollectionID,
		Name:           st.Name,
		Description:    st.Description,
		Website:        st.Website,
		Country:        st.Country,
		City:           st.City,
		Tags:           st.Tags,
		PriceBucket:    string(st.PriceBucket),
		OnSale:         st.OnSale,
		Archived:       st.Archived,
		Rating:         st.Rating,
		Sustainability: st.Sustainability,
		CustomFields:   st.CustomFields,
		AddedBy:        st.AddedBy,
		FavoritedBy:    st.FavoritedBy,
		PrivateNotes:   notes,
		ImageURL:       st.ImageURL,
		ImageBlurhash:  st.ImageBlurhash,
		CreatedAt:      st.CreatedAt,
		UpdatedAt:      st.UpdatedAt,
	}
}
