package model

import "time"

// LinkCreatedEvent is published to the broker after a link is persisted.
type LinkCreatedEvent struct {
	OwnerID   string    `json:"owner_id"`
	URL       string    `json:"url"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}
