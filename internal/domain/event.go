package domain

import "time"

// Event is owned by the event catalog; this engine only reads it to
// validate requests and to denormalize display fields into tickets.
type Event struct {
	ID          string
	Slug        string
	OrganizerID string
	Title       string
	Location    string
	StartsAt    time.Time
}
