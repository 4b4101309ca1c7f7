package app

import (
	"context"
	"time"

	"github.com/attendly/attendly/internal/clock"
	"github.com/attendly/attendly/internal/domain"
	"github.com/attendly/attendly/internal/ticket"
)

type CheckInRepository interface {
	GetByID(ctx context.Context, id string) (domain.Booking, error)
	SetCheckedIn(ctx context.Context, bookingID string, at time.Time) (bool, error)
}

// TicketDecoder opens opaque tokens back into ticket payloads.
type TicketDecoder interface {
	Decode(token string) (ticket.Payload, error)
}

// CheckInService drives the one-way Registered → CheckedIn transition.
type CheckInService struct {
	repo   CheckInRepository
	events EventResolver
	codec  TicketDecoder
	clock  clock.Clock
}

func NewCheckInService(repo CheckInRepository, events EventResolver, codec TicketDecoder, clk clock.Clock) *CheckInService {
	return &CheckInService{
		repo:   repo,
		events: events,
		codec:  codec,
		clock:  clk,
	}
}

type CheckInResult struct {
	Name        string
	Email       string
	EventTitle  string
	CheckedInAt time.Time
}

// CheckIn validates a presented token against the live booking record and
// records admission. The final write is conditional on checked_in_at still
// being null, so concurrent calls for the same booking resolve to exactly
// one success; every loser sees ErrAlreadyCheckedIn.
func (s *CheckInService) CheckIn(ctx context.Context, eventID, token string) (CheckInResult, error) {
	event, booking, err := s.verify(ctx, eventID, token)
	if err != nil {
		return CheckInResult{}, err
	}

	if booking.CheckedIn() {
		return CheckInResult{}, domain.ErrAlreadyCheckedIn
	}

	now := s.clock.Now()
	won, err := s.repo.SetCheckedIn(ctx, booking.ID, now)
	if err != nil {
		return CheckInResult{}, err
	}
	if !won {
		// A concurrent check-in raced past the read above and wrote first.
		return CheckInResult{}, domain.ErrAlreadyCheckedIn
	}

	return CheckInResult{
		Name:        booking.Name,
		Email:       booking.Email,
		EventTitle:  event.Title,
		CheckedInAt: now,
	}, nil
}

// VerifyTicket runs the full validation chain without mutating state; used
// for scan previews before a check-in is confirmed.
func (s *CheckInService) VerifyTicket(ctx context.Context, eventID, token string) (domain.Booking, error) {
	_, booking, err := s.verify(ctx, eventID, token)
	return booking, err
}

func (s *CheckInService) verify(ctx context.Context, eventID, token string) (domain.Event, domain.Booking, error) {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return domain.Event{}, domain.Booking{}, err
	}

	payload, err := s.codec.Decode(token)
	if err != nil {
		return domain.Event{}, domain.Booking{}, err
	}

	// Tokens are scoped to a single event; one minted elsewhere must not
	// validate here even though it decodes cleanly.
	if payload.EventID != event.ID {
		return domain.Event{}, domain.Booking{}, domain.ErrTicketEventMismatch
	}

	booking, err := s.repo.GetByID(ctx, payload.BookingID)
	if err != nil {
		return domain.Event{}, domain.Booking{}, err
	}

	// The token's embedded claims must still match the live record; a stale
	// or altered booking invalidates any previously issued token.
	if booking.EventID != event.ID {
		return domain.Event{}, domain.Booking{}, domain.ErrTicketBookingMismatch
	}
	if booking.Email != NormalizeEmail(payload.Email) {
		return domain.Event{}, domain.Booking{}, domain.ErrTicketEmailMismatch
	}

	return event, booking, nil
}
