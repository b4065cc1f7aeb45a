package domain

import (
	"slices"
	"time"
)

// Store represents one catalog entry: a brand curated inside a collection.
// A store belongs to exactly one collection for its lifetime; moving between
// collections is modeled as delete and recreate, never by mutating CollectionID.
type Store struct {
	Syncable
	CollectionID   string              `json:"collection_id"`
	Name           string              `json:"name"`
	Description    string              `json:"description"`
	Website        string              `json:"website"`
	Country        string              `json:"country"`
	City           string              `json:"city"`
	Tags           []string            `json:"tags"` // lowercase, trimmed; insertion order preserved for display
	PriceBucket    Bucket              `json:"price_bucket"`
	OnSale         bool                `json:"on_sale"`
	Archived       bool                `json:"archived"`
	Rating         float64             `json:"rating"`
	Sustainability string              `json:"sustainability"`
	CustomFields   map[string][]string `json:"custom_fields,omitempty"` // field name -> selected options
	AddedBy        UserRef             `json:"added_by"`                // immutable once set
	FavoritedBy    []string            `json:"favorited_by,omitempty"`
	PrivateNotes   []Note              `json:"private_notes,omitempty"`
	ImageURL       string              `json:"image_url,omitempty"` // set only by the image-generation side channel
	ImageBlurhash  string              `json:"image_blurhash,omitempty"`
}

// HasTag checks if the store carries the given tag.
func (s *Store) HasTag(tag string) bool {
	return slices.Contains(s.Tags, tag)
}

// Favorite records a user's favorite. Returns false if already favorited.
func (s *Store) Favorite(userID string) bool {
	if slices.Contains(s.FavoritedBy, userID) {
		return false
	}
	s.FavoritedBy = append(s.FavoritedBy, userID)
	s.Touch()
	return true
}

// Unfavorite removes a user's favorite. Returns false if it was not set.
func (s *Store) Unfavorite(userID string) bool {
	for i, id := range s.FavoritedBy {
		if id == userID {
			s.FavoritedBy = append(s.FavoritedBy[:i], s.FavoritedBy[i+1:]...)
			s.Touch()
			return true
		}
	}
	return false
}

// IsFavoritedBy checks if a user has favorited this store.
func (s *Store) IsFavoritedBy(userID string) bool {
	return slices.Contains(s.FavoritedBy, userID)
}

// AddNote appends a private annotation from the given user.
func (s *Store) AddNote(user UserRef, text string) {
	s.PrivateNotes = append(s.PrivateNotes, Note{
		CreatedAt: time.Now(),
		UserID:    user.ID,
		UserName:  user.Name,
		Text:      text,
	})
	s.Touch()
}
