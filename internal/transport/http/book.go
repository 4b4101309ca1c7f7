package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/attendly/attendly/internal/app"
	"github.com/attendly/attendly/internal/monitoring"
)

// BookingCreator is the minimal interface needed to create a booking.
type BookingCreator interface {
	CreateBooking(ctx context.Context, in app.CreateBookingInput) (app.BookingWithToken, error)
}

// HandleCreateBooking returns the handler for POST /event/{id}/book. The
// endpoint is public: booking requires no authentication.
func HandleCreateBooking(svc BookingCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createBookingRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" {
			writeError(w, http.StatusBadRequest, "name and email are required")
			return
		}

		res, err := svc.CreateBooking(r.Context(), app.CreateBookingInput{
			EventID: r.PathValue("id"),
			Name:    req.Name,
			Email:   req.Email,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}

		monitoring.BookingCreated()
		writeJSON(w, http.StatusCreated, bookingResponse{
			ID:        res.Booking.ID,
			EventID:   res.Booking.EventID,
			Name:      res.Booking.Name,
			Email:     res.Booking.Email,
			CreatedAt: res.Booking.CreatedAt,
			Token:     res.Token,
		})
	}
}

type createBookingRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type bookingResponse struct {
	ID        string    `json:"id"`
	EventID   string    `json:"eventId"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	Token     string    `json:"token"`
}
