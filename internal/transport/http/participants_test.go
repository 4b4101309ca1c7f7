package http

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/attendly/attendly/internal/app"
	"github.com/attendly/attendly/internal/domain"
)

type stubParticipantService struct {
	page      app.ParticipantPage
	resend    app.BookingWithToken
	csv       string
	err       error
	lastInput app.ListInput
}

func (s *stubParticipantService) List(_ context.Context, in app.ListInput) (app.ParticipantPage, error) {
	s.lastInput = in
	if s.err != nil {
		return app.ParticipantPage{}, s.err
	}
	return s.page, nil
}

func (s *stubParticipantService) Remove(_ context.Context, _, _, _ string) error {
	return s.err
}

func (s *stubParticipantService) Resend(_ context.Context, _, _, _ string) (app.BookingWithToken, error) {
	if s.err != nil {
		return app.BookingWithToken{}, s.err
	}
	return s.resend, nil
}

func (s *stubParticipantService) ExportCSV(_ context.Context, _, _ string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.csv, nil
}

func participantRequest(t *testing.T, method, target string, identity *Identity, body string) *http.Request {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, bytes.NewBufferString(body))
	}
	req.SetPathValue("id", "event-1")
	if identity != nil {
		req = req.WithContext(context.WithValue(req.Context(), identityKey{}, *identity))
	}
	return req
}

func TestHandleListParticipants(t *testing.T) {
	t.Parallel()

	organizer := Identity{UserID: "org-1", Email: "org@example.com"}
	created := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("returns one page", func(t *testing.T) {
		svc := &stubParticipantService{page: app.ParticipantPage{
			Items: []domain.Booking{
				{ID: "b-1", EventID: "event-1", Name: "Ada", Email: "ada@example.com", CreatedAt: created},
			},
			TotalCount: 11,
			Page:       2,
			PageSize:   10,
			TotalPages: 2,
		}}
		rec := httptest.NewRecorder()

		HandleListParticipants(svc).ServeHTTP(rec,
			participantRequest(t, http.MethodGet, "/event/event-1/participants?page=2&limit=10&search=ada", &organizer, ""))

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if !strings.Contains(rec.Body.String(), `"totalPages":2`) {
			t.Fatalf("unexpected body %q", rec.Body.String())
		}
		in := svc.lastInput
		if in.Page != 2 || in.PageSize != 10 || in.Search != "ada" || in.RequesterID != "org-1" {
			t.Fatalf("query not forwarded: %+v", in)
		}
	})

	t.Run("empty page encodes as empty array", func(t *testing.T) {
		svc := &stubParticipantService{page: app.ParticipantPage{Items: nil, Page: 1, PageSize: 10}}
		rec := httptest.NewRecorder()

		HandleListParticipants(svc).ServeHTTP(rec,
			participantRequest(t, http.MethodGet, "/event/event-1/participants", &organizer, ""))

		if !strings.Contains(rec.Body.String(), `"items":[]`) {
			t.Fatalf("expected empty array, got %q", rec.Body.String())
		}
	})

	t.Run("missing identity is unauthorized", func(t *testing.T) {
		svc := &stubParticipantService{}
		rec := httptest.NewRecorder()

		HandleListParticipants(svc).ServeHTTP(rec,
			participantRequest(t, http.MethodGet, "/event/event-1/participants", nil, ""))

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("foreign event is forbidden", func(t *testing.T) {
		svc := &stubParticipantService{err: domain.ErrForbidden}
		rec := httptest.NewRecorder()

		HandleListParticipants(svc).ServeHTTP(rec,
			participantRequest(t, http.MethodGet, "/event/event-1/participants", &organizer, ""))

		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", rec.Code)
		}
	})
}

func TestHandleRemoveParticipant(t *testing.T) {
	t.Parallel()

	organizer := Identity{UserID: "org-1"}

	t.Run("success", func(t *testing.T) {
		svc := &stubParticipantService{}
		rec := httptest.NewRecorder()
		req := participantRequest(t, http.MethodDelete, "/event/event-1/participants/b-1", &organizer, "")
		req.SetPathValue("bookingId", "b-1")

		HandleRemoveParticipant(svc).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), `"success":true`) {
			t.Fatalf("unexpected body %q", rec.Body.String())
		}
	})

	t.Run("unknown booking is not found", func(t *testing.T) {
		svc := &stubParticipantService{err: domain.ErrBookingNotFound}
		rec := httptest.NewRecorder()
		req := participantRequest(t, http.MethodDelete, "/event/event-1/participants/nope", &organizer, "")
		req.SetPathValue("bookingId", "nope")

		HandleRemoveParticipant(svc).ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}

func TestHandleResendTicket(t *testing.T) {
	t.Parallel()

	organizer := Identity{UserID: "org-1"}

	t.Run("success", func(t *testing.T) {
		svc := &stubParticipantService{resend: app.BookingWithToken{
			Booking: domain.Booking{ID: "b-1", Email: "ada@example.com"},
			Token:   "aabb:ccdd",
		}}
		rec := httptest.NewRecorder()

		HandleResendTicket(svc).ServeHTTP(rec,
			participantRequest(t, http.MethodPost, "/event/event-1/participants/resend-qr", &organizer, `{"email":"ada@example.com"}`))

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if !strings.Contains(rec.Body.String(), `"token":"aabb:ccdd"`) {
			t.Fatalf("unexpected body %q", rec.Body.String())
		}
	})

	t.Run("missing email is rejected", func(t *testing.T) {
		svc := &stubParticipantService{}
		rec := httptest.NewRecorder()

		HandleResendTicket(svc).ServeHTTP(rec,
			participantRequest(t, http.MethodPost, "/event/event-1/participants/resend-qr", &organizer, `{}`))

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestHandleExportParticipants(t *testing.T) {
	t.Parallel()

	organizer := Identity{UserID: "org-1"}
	svc := &stubParticipantService{csv: "Name,Email,Checked In,Registration Date\n\"Ada\",\"ada@example.com\",\"Yes\",\"2025-03-01 10:00:00\"\n"}
	rec := httptest.NewRecorder()

	HandleExportParticipants(svc).ServeHTTP(rec,
		participantRequest(t, http.MethodGet, "/event/event-1/participants/export", &organizer, ""))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "text/csv" {
		t.Fatalf("expected text/csv, got %q", got)
	}
	if got := rec.Header().Get("Content-Disposition"); !strings.Contains(got, "participants.csv") {
		t.Fatalf("unexpected disposition %q", got)
	}
	if !strings.HasPrefix(rec.Body.String(), "Name,Email,Checked In,Registration Date") {
		t.Fatalf("unexpected body %q", rec.Body.String())
	}
}
