package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	bookingsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bookings_created_total",
			Help: "Bookings successfully created",
		},
	)

	bookingConflicts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "booking_conflicts_total",
			Help: "Booking attempts rejected as duplicates",
		},
	)

	checkIns = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "checkins_total",
			Help: "Successful check-ins",
		},
	)

	checkInConflicts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "checkin_conflicts_total",
			Help: "Check-in attempts rejected as already checked in",
		},
	)

	ticketRejections = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ticket_rejections_total",
			Help: "Presented tickets rejected as invalid",
		},
	)
)

func BookingCreated()  { bookingsCreated.Inc() }
func BookingConflict() { bookingConflicts.Inc() }
func CheckIn()         { checkIns.Inc() }
func CheckInConflict() { checkInConflicts.Inc() }
func TicketRejection() { ticketRejections.Inc() }
