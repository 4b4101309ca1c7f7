package domain

import "time"

// Booking is one attendee's registration for one event. The pair
// (EventID, Email) is unique; Email is stored lower-cased and trimmed.
type Booking struct {
	ID          string
	EventID     string
	Name        string
	Email       string
	CheckedInAt *time.Time
	CreatedAt   time.Time
}

// CheckedIn reports whether the one-way check-in transition has happened.
func (b Booking) CheckedIn() bool {
	return b.CheckedInAt != nil
}
