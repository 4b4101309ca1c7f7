package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/attendly/attendly/internal/domain"
)

type stubStatsService struct {
	event     domain.EventStats
	organizer domain.OrganizerStats
	err       error
}

func (s *stubStatsService) EventStats(_ context.Context, _, _ string) (domain.EventStats, error) {
	if s.err != nil {
		return domain.EventStats{}, s.err
	}
	return s.event, nil
}

func (s *stubStatsService) OrganizerStats(_ context.Context, _ string) (domain.OrganizerStats, error) {
	if s.err != nil {
		return domain.OrganizerStats{}, s.err
	}
	return s.organizer, nil
}

func statsRequest(t *testing.T, target string, identity *Identity) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.SetPathValue("id", "event-1")
	if identity != nil {
		req = req.WithContext(context.WithValue(req.Context(), identityKey{}, *identity))
	}
	return req
}

func TestHandleEventStats(t *testing.T) {
	t.Parallel()

	organizer := Identity{UserID: "org-1"}

	t.Run("success", func(t *testing.T) {
		svc := &stubStatsService{event: domain.EventStats{
			TotalBookings: 4,
			TotalCheckIns: 1,
			CheckInRate:   25,
			BookingsByDay: []domain.DayBucket{{Date: "2025-03-01", Count: 3}, {Date: "2025-03-02", Count: 1}},
		}}
		rec := httptest.NewRecorder()

		HandleEventStats(svc).ServeHTTP(rec, statsRequest(t, "/analytics/event/event-1", &organizer))

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		body := rec.Body.String()
		if !strings.Contains(body, `"checkInRate":25`) || !strings.Contains(body, `"date":"2025-03-01"`) {
			t.Fatalf("unexpected body %q", body)
		}
	})

	t.Run("empty stats encode as empty array", func(t *testing.T) {
		svc := &stubStatsService{}
		rec := httptest.NewRecorder()

		HandleEventStats(svc).ServeHTTP(rec, statsRequest(t, "/analytics/event/event-1", &organizer))

		if !strings.Contains(rec.Body.String(), `"bookingsByDay":[]`) {
			t.Fatalf("expected empty array, got %q", rec.Body.String())
		}
	})

	t.Run("foreign event reads as not found", func(t *testing.T) {
		svc := &stubStatsService{err: domain.ErrEventNotFound}
		rec := httptest.NewRecorder()

		HandleEventStats(svc).ServeHTTP(rec, statsRequest(t, "/analytics/event/event-1", &organizer))

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})

	t.Run("missing identity is unauthorized", func(t *testing.T) {
		svc := &stubStatsService{}
		rec := httptest.NewRecorder()

		HandleEventStats(svc).ServeHTTP(rec, statsRequest(t, "/analytics/event/event-1", nil))

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})
}

func TestHandleOrganizerStats(t *testing.T) {
	t.Parallel()

	organizer := Identity{UserID: "org-1"}

	t.Run("success", func(t *testing.T) {
		svc := &stubStatsService{organizer: domain.OrganizerStats{
			TotalEvents:   2,
			TotalBookings: 9,
			TotalCheckIns: 4,
			TopEvents:     []domain.EventCount{{Title: "GopherCon", Bookings: 7}, {Title: "Meetup", Bookings: 2}},
		}}
		rec := httptest.NewRecorder()

		HandleOrganizerStats(svc).ServeHTTP(rec, statsRequest(t, "/analytics/organizer", &organizer))

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if !strings.Contains(rec.Body.String(), `"title":"GopherCon"`) {
			t.Fatalf("unexpected body %q", rec.Body.String())
		}
	})

	t.Run("storage outage maps to 503", func(t *testing.T) {
		svc := &stubStatsService{err: domain.ErrUnavailable}
		rec := httptest.NewRecorder()

		HandleOrganizerStats(svc).ServeHTTP(rec, statsRequest(t, "/analytics/organizer", &organizer))

		if rec.Code != http.StatusServiceUnavailable {
			t.Fatalf("expected 503, got %d", rec.Code)
		}
	})
}
