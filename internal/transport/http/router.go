package http

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Services bundles everything the router wires into handlers.
type Services struct {
	Bookings     BookingCreator
	CheckIns     CheckInPerformer
	Participants ParticipantAdmin
	Analytics    StatsProvider
	Tickets      TicketFetcher
	Events       EventAuthorizer
	Auth         *Authenticator
}

// NewRouter builds the full REST surface. Booking creation is public; every
// other route requires a bearer token, with organizer/owner checks enforced
// inside the handlers and services.
func NewRouter(s Services) http.Handler {
	mux := http.NewServeMux()
	auth := s.Auth.Require

	mux.HandleFunc("GET /health", HealthHandler)
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("POST /event/{id}/book", HandleCreateBooking(s.Bookings))
	mux.HandleFunc("POST /event/{id}/checkin", auth(HandleCheckIn(s.CheckIns, s.Events)))
	mux.HandleFunc("POST /event/{id}/checkin/verify", auth(HandleVerifyTicket(s.CheckIns, s.Events)))

	mux.HandleFunc("GET /event/{id}/participants", auth(HandleListParticipants(s.Participants)))
	mux.HandleFunc("DELETE /event/{id}/participants/{bookingId}", auth(HandleRemoveParticipant(s.Participants)))
	mux.HandleFunc("POST /event/{id}/participants/resend-qr", auth(HandleResendTicket(s.Participants)))
	mux.HandleFunc("GET /event/{id}/participants/export", auth(HandleExportParticipants(s.Participants)))

	mux.HandleFunc("GET /analytics/event/{id}", auth(HandleEventStats(s.Analytics)))
	mux.HandleFunc("GET /analytics/organizer", auth(HandleOrganizerStats(s.Analytics)))

	mux.HandleFunc("GET /bookings/ticket/{id}", auth(HandleGetTicket(s.Tickets)))
	mux.HandleFunc("GET /bookings/ticket/{id}/ics", auth(HandleTicketICS(s.Tickets)))
	mux.HandleFunc("GET /bookings/ticket/{id}/qr", auth(HandleTicketQR(s.Tickets)))

	mux.Handle("/", NotFoundHandler())
	return mux
}
