package models

import "time"

// Event records a single activity entry in a user's audit trail.
type Event struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Type      string    `json:"type"` // e.g. asset.create, asset.update, asset.delete
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}
