package http

import (
	"strings"
	"time"

	"github.com/attendly/attendly/internal/app"
)

const icsTimeLayout = "20060102T150405Z"

// renderICS produces a minimal VCALENDAR/VEVENT block for one booking. The
// event runs a fixed hour from its start time.
func renderICS(view app.TicketView, stamp time.Time) string {
	start := view.Event.StartsAt.UTC()
	end := start.Add(time.Hour)

	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//attendly//ticket//EN",
		"BEGIN:VEVENT",
		"UID:" + view.Booking.ID + "@attendly",
		"DTSTAMP:" + stamp.Format(icsTimeLayout),
		"DTSTART:" + start.Format(icsTimeLayout),
		"DTEND:" + end.Format(icsTimeLayout),
		"SUMMARY:" + icsEscape(view.Event.Title),
		"DESCRIPTION:" + icsEscape("Ticket for "+view.Booking.Name),
		"LOCATION:" + icsEscape(view.Event.Location),
		"END:VEVENT",
		"END:VCALENDAR",
	}
	return strings.Join(lines, "\r\n") + "\r\n"
}

func icsEscape(s string) string {
	r := strings.NewReplacer("\\", "\\\\", ";", "\\;", ",", "\\,", "\n", "\\n")
	return r.Replace(s)
}
