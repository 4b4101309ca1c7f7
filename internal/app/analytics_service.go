package app

import (
	"context"
	"time"

	"github.com/attendly/attendly/internal/clock"
	"github.com/attendly/attendly/internal/domain"
)

const topEventsLimit = 5

type AnalyticsRepository interface {
	EventCounts(ctx context.Context, eventID string) (total, checkedIn int, err error)
	BookingsByDay(ctx context.Context, eventID string, since time.Time) ([]domain.DayBucket, error)
	OrganizerTotals(ctx context.Context, organizerID string) (events, bookings, checkIns int, err error)
	TopEvents(ctx context.Context, organizerID string, limit int) ([]domain.EventCount, error)
}

// AnalyticsService computes aggregates on demand from the booking ledger's
// read view; nothing here writes.
type AnalyticsService struct {
	repo   AnalyticsRepository
	events EventResolver
	clock  clock.Clock
}

func NewAnalyticsService(repo AnalyticsRepository, events EventResolver, clk clock.Clock) *AnalyticsService {
	return &AnalyticsService{
		repo:   repo,
		events: events,
		clock:  clk,
	}
}

// EventStats returns totals, rate and the trailing-7-day booking series for
// one event. An event that does not exist and an event owned by someone else
// both report ErrEventNotFound, so callers cannot probe which events exist.
func (s *AnalyticsService) EventStats(ctx context.Context, eventID, requesterID string) (domain.EventStats, error) {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return domain.EventStats{}, err
	}
	if requesterID == "" || event.OrganizerID != requesterID {
		return domain.EventStats{}, domain.ErrEventNotFound
	}

	total, checkedIn, err := s.repo.EventCounts(ctx, event.ID)
	if err != nil {
		return domain.EventStats{}, err
	}

	since := s.clock.Now().AddDate(0, 0, -7).Truncate(24 * time.Hour)
	byDay, err := s.repo.BookingsByDay(ctx, event.ID, since)
	if err != nil {
		return domain.EventStats{}, err
	}

	rate := 0.0
	if total > 0 {
		rate = float64(checkedIn) / float64(total) * 100
	}

	return domain.EventStats{
		TotalBookings: total,
		TotalCheckIns: checkedIn,
		CheckInRate:   rate,
		BookingsByDay: byDay,
	}, nil
}

// OrganizerStats aggregates across every event the requester owns, with the
// five most-booked events ranked descending.
func (s *AnalyticsService) OrganizerStats(ctx context.Context, requesterID string) (domain.OrganizerStats, error) {
	if requesterID == "" {
		return domain.OrganizerStats{}, domain.ErrForbidden
	}

	events, bookings, checkIns, err := s.repo.OrganizerTotals(ctx, requesterID)
	if err != nil {
		return domain.OrganizerStats{}, err
	}

	top, err := s.repo.TopEvents(ctx, requesterID, topEventsLimit)
	if err != nil {
		return domain.OrganizerStats{}, err
	}

	return domain.OrganizerStats{
		TotalEvents:   events,
		TotalBookings: bookings,
		TotalCheckIns: checkIns,
		TopEvents:     top,
	}, nil
}
