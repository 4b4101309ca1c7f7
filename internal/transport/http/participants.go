package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/attendly/attendly/internal/app"
)

// ParticipantAdmin is the organizer-facing participant surface.
type ParticipantAdmin interface {
	List(ctx context.Context, in app.ListInput) (app.ParticipantPage, error)
	Remove(ctx context.Context, eventID, bookingID, requesterID string) error
	Resend(ctx context.Context, eventID, email, requesterID string) (app.BookingWithToken, error)
	ExportCSV(ctx context.Context, eventID, requesterID string) (string, error)
}

// HandleListParticipants returns the handler for
// GET /event/{id}/participants?page&limit&search.
func HandleListParticipants(svc ParticipantAdmin) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := IdentityFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		q := r.URL.Query()
		page, _ := strconv.Atoi(q.Get("page"))
		limit, _ := strconv.Atoi(q.Get("limit"))

		result, err := svc.List(r.Context(), app.ListInput{
			EventID:     r.PathValue("id"),
			RequesterID: identity.UserID,
			Page:        page,
			PageSize:    limit,
			Search:      q.Get("search"),
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}

		items := make([]participantItem, 0, len(result.Items))
		for _, b := range result.Items {
			items = append(items, participantItem{
				ID:          b.ID,
				Name:        b.Name,
				Email:       b.Email,
				CheckedInAt: b.CheckedInAt,
				CreatedAt:   b.CreatedAt,
			})
		}

		writeJSON(w, http.StatusOK, participantListResponse{
			Items:      items,
			TotalCount: result.TotalCount,
			Page:       result.Page,
			PageSize:   result.PageSize,
			TotalPages: result.TotalPages,
		})
	}
}

// HandleRemoveParticipant returns the handler for
// DELETE /event/{id}/participants/{bookingId}.
func HandleRemoveParticipant(svc ParticipantAdmin) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := IdentityFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		err := svc.Remove(r.Context(), r.PathValue("id"), r.PathValue("bookingId"), identity.UserID)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	}
}

// HandleResendTicket returns the handler for
// POST /event/{id}/participants/resend-qr.
func HandleResendTicket(svc ParticipantAdmin) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := IdentityFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		var req resendRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil || req.Email == "" {
			writeError(w, http.StatusBadRequest, "email is required")
			return
		}

		res, err := svc.Resend(r.Context(), r.PathValue("id"), req.Email, identity.UserID)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, resendResponse{
			BookingID: res.Booking.ID,
			Email:     res.Booking.Email,
			Token:     res.Token,
		})
	}
}

// HandleExportParticipants returns the handler for
// GET /event/{id}/participants/export (CSV download).
func HandleExportParticipants(svc ParticipantAdmin) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := IdentityFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		csv, err := svc.ExportCSV(r.Context(), r.PathValue("id"), identity.UserID)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="participants.csv"`)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(csv))
	}
}

type participantItem struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	CheckedInAt *time.Time `json:"checkedInAt"`
	CreatedAt   time.Time  `json:"createdAt"`
}

type participantListResponse struct {
	Items      []participantItem `json:"items"`
	TotalCount int               `json:"totalCount"`
	Page       int               `json:"page"`
	PageSize   int               `json:"pageSize"`
	TotalPages int               `json:"totalPages"`
}

type resendRequest struct {
	Email string `json:"email"`
}

type resendResponse struct {
	BookingID string `json:"bookingId"`
	Email     string `json:"email"`
	Token     string `json:"token"`
}
