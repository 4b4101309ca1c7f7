package app

import (
	"context"
	"strings"

	"github.com/attendly/attendly/internal/domain"
)

const defaultPageSize = 10

type ParticipantRepository interface {
	List(ctx context.Context, eventID, search string, offset, limit int) ([]domain.Booking, error)
	Count(ctx context.Context, eventID, search string) (int, error)
	ListAll(ctx context.Context, eventID string) ([]domain.Booking, error)
}

// ParticipantService is the organizer-facing administration surface over the
// ledger: listing, removal, ticket resend, CSV export.
type ParticipantService struct {
	repo   ParticipantRepository
	events EventResolver
	ledger *BookingService
}

func NewParticipantService(repo ParticipantRepository, events EventResolver, ledger *BookingService) *ParticipantService {
	return &ParticipantService{
		repo:   repo,
		events: events,
		ledger: ledger,
	}
}

type ListInput struct {
	EventID     string
	RequesterID string
	Page        int
	PageSize    int
	Search      string
}

type ParticipantPage struct {
	Items      []domain.Booking
	TotalCount int
	Page       int
	PageSize   int
	TotalPages int
}

// List returns one page of an event's bookings, newest first. Pages are
// 1-based; PageSize defaults to 10 and is clamped to a minimum of 1.
func (s *ParticipantService) List(ctx context.Context, in ListInput) (ParticipantPage, error) {
	if _, err := s.requireOrganizer(ctx, in.EventID, in.RequesterID); err != nil {
		return ParticipantPage{}, err
	}

	page := in.Page
	if page < 1 {
		page = 1
	}
	pageSize := in.PageSize
	if pageSize == 0 {
		pageSize = defaultPageSize
	}
	if pageSize < 1 {
		pageSize = 1
	}
	search := strings.TrimSpace(in.Search)

	total, err := s.repo.Count(ctx, in.EventID, search)
	if err != nil {
		return ParticipantPage{}, err
	}

	items, err := s.repo.List(ctx, in.EventID, search, (page-1)*pageSize, pageSize)
	if err != nil {
		return ParticipantPage{}, err
	}

	totalPages := total / pageSize
	if total%pageSize != 0 {
		totalPages++
	}

	return ParticipantPage{
		Items:      items,
		TotalCount: total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

func (s *ParticipantService) Remove(ctx context.Context, eventID, bookingID, requesterID string) error {
	if _, err := s.requireOrganizer(ctx, eventID, requesterID); err != nil {
		return err
	}
	return s.ledger.Remove(ctx, eventID, bookingID)
}

func (s *ParticipantService) Resend(ctx context.Context, eventID, email, requesterID string) (BookingWithToken, error) {
	if _, err := s.requireOrganizer(ctx, eventID, requesterID); err != nil {
		return BookingWithToken{}, err
	}
	return s.ledger.ResendTicket(ctx, eventID, email)
}

// ExportCSV renders every booking for the event as quoted CSV rows under the
// fixed Name,Email,Checked In,Registration Date header.
func (s *ParticipantService) ExportCSV(ctx context.Context, eventID, requesterID string) (string, error) {
	if _, err := s.requireOrganizer(ctx, eventID, requesterID); err != nil {
		return "", err
	}

	bookings, err := s.repo.ListAll(ctx, eventID)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString("Name,Email,Checked In,Registration Date\n")
	for _, b := range bookings {
		checkedIn := "No"
		if b.CheckedIn() {
			checkedIn = "Yes"
		}
		row := []string{b.Name, b.Email, checkedIn, b.CreatedAt.Format("2006-01-02 15:04:05")}
		for i, field := range row {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(csvQuote(field))
		}
		sb.WriteByte('\n')
	}
	return sb.String(), nil
}

// csvQuote wraps a field in double quotes, doubling any embedded quotes.
// Every data field is quoted so the export shape is stable regardless of
// content.
func csvQuote(field string) string {
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}

func (s *ParticipantService) requireOrganizer(ctx context.Context, eventID, requesterID string) (domain.Event, error) {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return domain.Event{}, err
	}
	if requesterID == "" || event.OrganizerID != requesterID {
		return domain.Event{}, domain.ErrForbidden
	}
	return event, nil
}
