package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/attendly/attendly/internal/app"
	"github.com/attendly/attendly/internal/domain"
	"github.com/attendly/attendly/internal/monitoring"
)

// CheckInPerformer drives the check-in transition and its read-only preview.
type CheckInPerformer interface {
	CheckIn(ctx context.Context, eventID, token string) (app.CheckInResult, error)
	VerifyTicket(ctx context.Context, eventID, token string) (domain.Booking, error)
}

// EventAuthorizer resolves events for organizer checks at the boundary.
type EventAuthorizer interface {
	GetByID(ctx context.Context, id string) (domain.Event, error)
}

// HandleCheckIn returns the handler for POST /event/{id}/checkin. Only the
// event's organizer may admit participants.
func HandleCheckIn(svc CheckInPerformer, events EventAuthorizer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		eventID := r.PathValue("id")
		if !authorizeOrganizer(w, r, events, eventID) {
			return
		}

		req, ok := decodeCheckInRequest(w, r)
		if !ok {
			return
		}

		res, err := svc.CheckIn(r.Context(), eventID, req.QRData)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		monitoring.CheckIn()
		writeJSON(w, http.StatusOK, checkInResponse{
			Name:        res.Name,
			Email:       res.Email,
			EventTitle:  res.EventTitle,
			CheckedInAt: res.CheckedInAt,
		})
	}
}

// HandleVerifyTicket returns the handler for POST /event/{id}/checkin/verify:
// the full validation chain with no state change, for scan previews.
func HandleVerifyTicket(svc CheckInPerformer, events EventAuthorizer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		eventID := r.PathValue("id")
		if !authorizeOrganizer(w, r, events, eventID) {
			return
		}

		req, ok := decodeCheckInRequest(w, r)
		if !ok {
			return
		}

		booking, err := svc.VerifyTicket(r.Context(), eventID, req.QRData)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, verifyResponse{
			Name:      booking.Name,
			Email:     booking.Email,
			CheckedIn: booking.CheckedIn(),
		})
	}
}

func authorizeOrganizer(w http.ResponseWriter, r *http.Request, events EventAuthorizer, eventID string) bool {
	identity, ok := IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return false
	}
	event, err := events.GetByID(r.Context(), eventID)
	if err != nil {
		writeDomainError(w, err)
		return false
	}
	if event.OrganizerID != identity.UserID {
		writeError(w, http.StatusForbidden, domain.ErrForbidden.Error())
		return false
	}
	return true
}

func decodeCheckInRequest(w http.ResponseWriter, r *http.Request) (checkInRequest, bool) {
	var req checkInRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil || req.QRData == "" {
		writeError(w, http.StatusBadRequest, "qrData is required")
		return checkInRequest{}, false
	}
	return req, true
}

type checkInRequest struct {
	QRData string `json:"qrData"`
}

type checkInResponse struct {
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	EventTitle  string    `json:"eventTitle"`
	CheckedInAt time.Time `json:"checkedInAt"`
}

type verifyResponse struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	CheckedIn bool   `json:"checkedIn"`
}
