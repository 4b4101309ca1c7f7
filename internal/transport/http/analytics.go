package http

import (
	"context"
	"net/http"

	"github.com/attendly/attendly/internal/domain"
)

// StatsProvider computes on-demand aggregates over the ledger.
type StatsProvider interface {
	EventStats(ctx context.Context, eventID, requesterID string) (domain.EventStats, error)
	OrganizerStats(ctx context.Context, requesterID string) (domain.OrganizerStats, error)
}

// HandleEventStats returns the handler for GET /analytics/event/{id}.
func HandleEventStats(svc StatsProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := IdentityFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		stats, err := svc.EventStats(r.Context(), r.PathValue("id"), identity.UserID)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		buckets := make([]dayBucket, 0, len(stats.BookingsByDay))
		for _, b := range stats.BookingsByDay {
			buckets = append(buckets, dayBucket{Date: b.Date, Count: b.Count})
		}

		writeJSON(w, http.StatusOK, eventStatsResponse{
			TotalBookings: stats.TotalBookings,
			TotalCheckIns: stats.TotalCheckIns,
			CheckInRate:   stats.CheckInRate,
			BookingsByDay: buckets,
		})
	}
}

// HandleOrganizerStats returns the handler for GET /analytics/organizer.
func HandleOrganizerStats(svc StatsProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := IdentityFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		stats, err := svc.OrganizerStats(r.Context(), identity.UserID)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		top := make([]topEvent, 0, len(stats.TopEvents))
		for _, e := range stats.TopEvents {
			top = append(top, topEvent{Title: e.Title, Bookings: e.Bookings})
		}

		writeJSON(w, http.StatusOK, organizerStatsResponse{
			TotalEvents:   stats.TotalEvents,
			TotalBookings: stats.TotalBookings,
			TotalCheckIns: stats.TotalCheckIns,
			TopEvents:     top,
		})
	}
}

type dayBucket struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type eventStatsResponse struct {
	TotalBookings int         `json:"totalBookings"`
	TotalCheckIns int         `json:"totalCheckIns"`
	CheckInRate   float64     `json:"checkInRate"`
	BookingsByDay []dayBucket `json:"bookingsByDay"`
}

type topEvent struct {
	Title    string `json:"title"`
	Bookings int    `json:"bookings"`
}

type organizerStatsResponse struct {
	TotalEvents   int        `json:"totalEvents"`
	TotalBookings int        `json:"totalBookings"`
	TotalCheckIns int        `json:"totalCheckIns"`
	TopEvents     []topEvent `json:"topEvents"`
}
