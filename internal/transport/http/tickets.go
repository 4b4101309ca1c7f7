package http

import (
	"context"
	"net/http"
	"time"

	"github.com/attendly/attendly/internal/app"
	"github.com/attendly/attendly/internal/ticket"
)

// TicketFetcher serves a participant their own ticket.
type TicketFetcher interface {
	Get(ctx context.Context, bookingID, requesterEmail string) (app.TicketView, error)
}

// HandleGetTicket returns the handler for GET /bookings/ticket/{id}.
func HandleGetTicket(svc TicketFetcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, ok := fetchOwnTicket(w, r, svc)
		if !ok {
			return
		}

		writeJSON(w, http.StatusOK, ticketResponse{
			BookingID:   view.Booking.ID,
			EventID:     view.Event.ID,
			EventTitle:  view.Event.Title,
			Location:    view.Event.Location,
			StartsAt:    view.Event.StartsAt,
			Name:        view.Booking.Name,
			Email:       view.Booking.Email,
			CheckedInAt: view.Booking.CheckedInAt,
			Token:       view.Token,
		})
	}
}

// HandleTicketICS returns the handler for GET /bookings/ticket/{id}/ics: a
// minimal calendar file for the booked event.
func HandleTicketICS(svc TicketFetcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, ok := fetchOwnTicket(w, r, svc)
		if !ok {
			return
		}

		w.Header().Set("Content-Type", "text/calendar")
		w.Header().Set("Content-Disposition", `attachment; filename="event.ics"`)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(renderICS(view, time.Now().UTC())))
	}
}

// HandleTicketQR returns the handler for GET /bookings/ticket/{id}/qr: the
// current token rendered as a PNG QR code.
func HandleTicketQR(svc TicketFetcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, ok := fetchOwnTicket(w, r, svc)
		if !ok {
			return
		}

		png, err := ticket.QRPNG(view.Token, ticket.DefaultQRSize)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		w.Header().Set("Content-Type", "image/png")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(png)
	}
}

func fetchOwnTicket(w http.ResponseWriter, r *http.Request, svc TicketFetcher) (app.TicketView, bool) {
	identity, ok := IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return app.TicketView{}, false
	}

	view, err := svc.Get(r.Context(), r.PathValue("id"), identity.Email)
	if err != nil {
		writeDomainError(w, err)
		return app.TicketView{}, false
	}
	return view, true
}

type ticketResponse struct {
	BookingID   string     `json:"bookingId"`
	EventID     string     `json:"eventId"`
	EventTitle  string     `json:"eventTitle"`
	Location    string     `json:"location"`
	StartsAt    time.Time  `json:"startsAt"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	CheckedInAt *time.Time `json:"checkedInAt"`
	Token       string     `json:"token"`
}
