package domain

import "time"

// UserRef is a snapshot of a user's identity taken when they touch an entity.
// It is immutable once written; a later display-name change does not rewrite history.
type UserRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Note is a per-user private annotation on a store.
type Note struct {
	CreatedAt time.Time `json:"created_at"`
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name"`
	Text      string    `json:"text"`
}
