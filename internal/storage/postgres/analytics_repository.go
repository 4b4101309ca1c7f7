package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/attendly/attendly/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AnalyticsRepository is a read-only aggregation view over the booking
// ledger; it never writes.
type AnalyticsRepository struct {
	pool *pgxpool.Pool
}

func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepository {
	return &AnalyticsRepository{pool: pool}
}

func (r *AnalyticsRepository) EventCounts(ctx context.Context, eventID string) (total, checkedIn int, err error) {
	const query = `
SELECT COUNT(*), COUNT(checked_in_at)
FROM bookings
WHERE event_id = $1`

	if err := r.pool.QueryRow(ctx, query, eventID).Scan(&total, &checkedIn); err != nil {
		if isInvalidUUID(err) {
			return 0, 0, domain.ErrEventNotFound
		}
		return 0, 0, fmt.Errorf("event counts: %w", mapUnavailable(err))
	}
	return total, checkedIn, nil
}

// BookingsByDay buckets bookings created at or after since by calendar day,
// ascending. Days without bookings produce no bucket.
func (r *AnalyticsRepository) BookingsByDay(ctx context.Context, eventID string, since time.Time) ([]domain.DayBucket, error) {
	const query = `
SELECT TO_CHAR(DATE_TRUNC('day', created_at), 'YYYY-MM-DD') AS day, COUNT(*)
FROM bookings
WHERE event_id = $1 AND created_at >= $2
GROUP BY day
ORDER BY day ASC`

	rows, err := r.pool.Query(ctx, query, eventID, since)
	if err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("bookings by day: %w", mapUnavailable(err))
	}
	defer rows.Close()

	var buckets []domain.DayBucket
	for rows.Next() {
		var b domain.DayBucket
		if err := rows.Scan(&b.Date, &b.Count); err != nil {
			return nil, fmt.Errorf("scan day bucket: %w", err)
		}
		buckets = append(buckets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("bookings by day: %w", mapUnavailable(err))
	}
	return buckets, nil
}

func (r *AnalyticsRepository) OrganizerTotals(ctx context.Context, organizerID string) (events, bookings, checkIns int, err error) {
	const query = `
SELECT COUNT(DISTINCT e.id), COUNT(b.id), COUNT(b.checked_in_at)
FROM events e
LEFT JOIN bookings b ON b.event_id = e.id
WHERE e.organizer_id = $1`

	if err := r.pool.QueryRow(ctx, query, organizerID).Scan(&events, &bookings, &checkIns); err != nil {
		return 0, 0, 0, fmt.Errorf("organizer totals: %w", mapUnavailable(err))
	}
	return events, bookings, checkIns, nil
}

// TopEvents returns the organizer's events ranked by booking count
// descending; equal counts order by event ID ascending so the ranking is
// deterministic.
func (r *AnalyticsRepository) TopEvents(ctx context.Context, organizerID string, limit int) ([]domain.EventCount, error) {
	const query = `
SELECT e.title, COUNT(b.id) AS bookings
FROM events e
LEFT JOIN bookings b ON b.event_id = e.id
WHERE e.organizer_id = $1
GROUP BY e.id, e.title
ORDER BY bookings DESC, e.id ASC
LIMIT $2`

	rows, err := r.pool.Query(ctx, query, organizerID, limit)
	if err != nil {
		return nil, fmt.Errorf("top events: %w", mapUnavailable(err))
	}
	defer rows.Close()

	var top []domain.EventCount
	for rows.Next() {
		var ec domain.EventCount
		if err := rows.Scan(&ec.Title, &ec.Bookings); err != nil {
			return nil, fmt.Errorf("scan event count: %w", err)
		}
		top = append(top, ec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("top events: %w", mapUnavailable(err))
	}
	return top, nil
}
