package app

import (
	"context"

	"github.com/attendly/attendly/internal/clock"
	"github.com/attendly/attendly/internal/domain"
	"github.com/attendly/attendly/internal/ticket"
)

type TicketRepository interface {
	GetByID(ctx context.Context, id string) (domain.Booking, error)
}

// TicketService serves a participant their own ticket: booking, event and a
// freshly minted token.
type TicketService struct {
	repo   TicketRepository
	events EventResolver
	codec  TicketEncoder
	clock  clock.Clock
}

func NewTicketService(repo TicketRepository, events EventResolver, codec TicketEncoder, clk clock.Clock) *TicketService {
	return &TicketService{
		repo:   repo,
		events: events,
		codec:  codec,
		clock:  clk,
	}
}

type TicketView struct {
	Booking domain.Booking
	Event   domain.Event
	Token   string
}

// Get returns the ticket for a booking, restricted to its owner: the
// requester's email must match the booking's. Everyone else sees not-found
// rather than forbidden, so booking IDs cannot be probed.
func (s *TicketService) Get(ctx context.Context, bookingID, requesterEmail string) (TicketView, error) {
	booking, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return TicketView{}, err
	}
	if booking.Email != NormalizeEmail(requesterEmail) {
		return TicketView{}, domain.ErrBookingNotFound
	}

	event, err := s.events.GetByID(ctx, booking.EventID)
	if err != nil {
		return TicketView{}, err
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
		return TicketView{}, err
	}

	return TicketView{Booking: booking, Event: event, Token: token}, nil
}
