package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/attendly/attendly/internal/domain"
	"github.com/attendly/attendly/internal/monitoring"
)

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	payload, err := json.Marshal(errorResponse{Error: msg})
	if err != nil {
		_, _ = w.Write([]byte(`{"success":false,"error":"internal error"}`))
		return
	}
	_, _ = w.Write(payload)
}

// writeDomainError maps a typed failure to its fixed status code and
// envelope. The whole ticket-rejection family collapses into one generic
// 400 so a forger cannot learn which validation failed.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case domain.IsTicketRejection(err):
		monitoring.TicketRejection()
		writeError(w, http.StatusBadRequest, "invalid ticket")
	case errors.Is(err, domain.ErrEventNotFound), errors.Is(err, domain.ErrBookingNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrDuplicateBooking):
		monitoring.BookingConflict()
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrAlreadyCheckedIn):
		monitoring.CheckInConflict()
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrNameRequired),
		errors.Is(err, domain.ErrEmailRequired):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnavailable):
		writeError(w, http.StatusServiceUnavailable, "temporarily unavailable, retry later")
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
