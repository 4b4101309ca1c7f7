package domain

import "errors"

var (
	ErrEventNotFound         = errors.New("event not found")
	ErrBookingNotFound       = errors.New("booking not found")
	ErrDuplicateBooking      = errors.New("already booked for this event")
	ErrAlreadyCheckedIn      = errors.New("already checked in")
	ErrMalformedToken        = errors.New("malformed ticket token")
	ErrTicketEventMismatch   = errors.New("ticket issued for a different event")
	ErrTicketBookingMismatch = errors.New("ticket does not match booking record")
	ErrTicketEmailMismatch   = errors.New("ticket email does not match booking")
	ErrForbidden             = errors.New("forbidden")
	ErrInvalidID             = errors.New("invalid id")
	ErrNameRequired          = errors.New("name is required")
	ErrEmailRequired         = errors.New("email is required")
	ErrUnavailable           = errors.New("storage unavailable")
)

// IsTicketRejection reports whether err belongs to the family of
// ticket-validation failures that the boundary collapses into a single
// generic response, so callers cannot learn which check failed.
func IsTicketRejection(err error) bool {
	return errors.Is(err, ErrMalformedToken) ||
		errors.Is(err, ErrTicketEventMismatch) ||
		errors.Is(err, ErrTicketBookingMismatch) ||
		errors.Is(err, ErrTicketEmailMismatch)
}
