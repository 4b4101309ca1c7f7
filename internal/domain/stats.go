package domain

// DayBucket is one calendar day of booking activity.
type DayBucket struct {
	Date  string // YYYY-MM-DD
	Count int
}

// EventStats is the per-event aggregate, recomputed on demand.
type EventStats struct {
	TotalBookings int
	TotalCheckIns int
	CheckInRate   float64
	BookingsByDay []DayBucket
}

// EventCount pairs an event title with its booking count.
type EventCount struct {
	Title    string
	Bookings int
}

// OrganizerStats aggregates over every event owned by one organizer.
type OrganizerStats struct {
	TotalEvents   int
	TotalBookings int
	TotalCheckIns int
	TopEvents     []EventCount
}
