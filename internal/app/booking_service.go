package app

import (
	"context"
	"strings"

	"github.com/attendly/attendly/internal/clock"
	"github.com/attendly/attendly/internal/domain"
	"github.com/attendly/attendly/internal/ticket"
	"github.com/google/uuid"
)

// EventResolver is the narrow read-only view of the event catalog.
type EventResolver interface {
	GetByID(ctx context.Context, id string) (domain.Event, error)
}

type BookingRepository interface {
	Insert(ctx context.Context, b domain.Booking) error
	GetByEventAndEmail(ctx context.Context, eventID, email string) (domain.Booking, error)
	Delete(ctx context.Context, eventID, bookingID string) error
}

// TicketEncoder mints opaque tokens from ticket payloads.
type TicketEncoder interface {
	Encode(payload ticket.Payload) (string, error)
}

// BookingService is the authoritative booking ledger.
type BookingService struct {
	repo   BookingRepository
	events EventResolver
	codec  TicketEncoder
	clock  clock.Clock
}

func NewBookingService(repo BookingRepository, events EventResolver, codec TicketEncoder, clk clock.Clock) *BookingService {
	return &BookingService{
		repo:   repo,
		events: events,
		codec:  codec,
		clock:  clk,
	}
}

type CreateBookingInput struct {
	EventID string
	Name    string
	Email   string
}

type BookingWithToken struct {
	Booking domain.Booking
	Token   string
}

// NormalizeEmail lower-cases and trims an address; every identity comparison
// in the ledger happens on this form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// CreateBooking registers one attendee for one event. Uniqueness of
// (event, email) is enforced by the repository's atomic insert, never by a
// read-then-write; duplicates surface as ErrDuplicateBooking.
func (s *BookingService) CreateBooking(ctx context.Context, in CreateBookingInput) (BookingWithToken, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return BookingWithToken{}, domain.ErrNameRequired
	}
	email := NormalizeEmail(in.Email)
	if email == "" {
		return BookingWithToken{}, domain.ErrEmailRequired
	}

	event, err := s.events.GetByID(ctx, in.EventID)
	if err != nil {
		return BookingWithToken{}, err
	}

	booking := domain.Booking{
		ID:        uuid.NewString(),
		EventID:   event.ID,
		Name:      name,
		Email:     email,
		CreatedAt: s.clock.Now(),
	}

	if err := s.repo.Insert(ctx, booking); err != nil {
		return BookingWithToken{}, err
	}

	token, err := s.codec.Encode(ticket.Payload{
		BookingID:  booking.ID,
		EventID:    event.ID,
		EventTitle: event.Title,
		Name:       booking.Name,
		Email:      booking.Email,
		IssuedAt:   booking.CreatedAt,
	})
	if err != nil {
		return BookingWithToken{}, err
	}

	return BookingWithToken{Booking: booking, Token: token}, nil
}

// ResendTicket mints a fresh token for an existing booking. Persisted state
// is untouched; only the nonce (and issue time) differ from the original.
func (s *BookingService) ResendTicket(ctx context.Context, eventID, email string) (BookingWithToken, error) {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return BookingWithToken{}, err
	}

	booking, err := s.repo.GetByEventAndEmail(ctx, event.ID, NormalizeEmail(email))
	if err != nil {
		return BookingWithToken{}, err
	}

	token, err := s.codec.Encode(ticket.Payload{
		BookingID:  booking.ID,
		EventID:    event.ID,
		EventTitle: event.Title,
		Name:       booking.Name,
		Email:      booking.Email,
		IssuedAt:   s.clock.Now(),
	})
	if err != nil {
		return BookingWithToken{}, err
	}

	return BookingWithToken{Booking: booking, Token: token}, nil
}

// Remove deletes a booking scoped to its event; a booking ID that exists
// under a different event is treated as not found.
func (s *BookingService) Remove(ctx context.Context, eventID, bookingID string) error {
	return s.repo.Delete(ctx, eventID, bookingID)
}
