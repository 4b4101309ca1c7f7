package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/attendly/attendly/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingRepository struct {
	pool *pgxpool.Pool
}

func NewBookingRepository(pool *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{pool: pool}
}

// Insert persists a new booking. The UNIQUE (event_id, email) constraint is
// the only duplicate check: a violation surfaces as ErrDuplicateBooking, so
// two concurrent inserts for the same pair resolve to exactly one success.
func (r *BookingRepository) Insert(ctx context.Context, b domain.Booking) error {
	const stmt = `
INSERT INTO bookings (id, event_id, name, email, created_at)
VALUES ($1, $2, $3, $4, $5)`

	_, err := r.pool.Exec(ctx, stmt, b.ID, b.EventID, b.Name, b.Email, b.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateBooking
		}
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("insert booking: %w", mapUnavailable(err))
	}
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id string) (domain.Booking, error) {
	const query = `
SELECT id, event_id, name, email, checked_in_at, created_at
FROM bookings
WHERE id = $1`

	var b domain.Booking
	err := r.pool.QueryRow(ctx, query, id).
		Scan(&b.ID, &b.EventID, &b.Name, &b.Email, &b.CheckedInAt, &b.CreatedAt)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Booking{}, domain.ErrBookingNotFound
		}
		if err == pgx.ErrNoRows {
			return domain.Booking{}, domain.ErrBookingNotFound
		}
		return domain.Booking{}, fmt.Errorf("get booking: %w", mapUnavailable(err))
	}
	return b, nil
}

func (r *BookingRepository) GetByEventAndEmail(ctx context.Context, eventID, email string) (domain.Booking, error) {
	const query = `
SELECT id, event_id, name, email, checked_in_at, created_at
FROM bookings
WHERE event_id = $1 AND email = $2`

	var b domain.Booking
	err := r.pool.QueryRow(ctx, query, eventID, email).
		Scan(&b.ID, &b.EventID, &b.Name, &b.Email, &b.CheckedInAt, &b.CreatedAt)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Booking{}, domain.ErrBookingNotFound
		}
		if err == pgx.ErrNoRows {
			return domain.Booking{}, domain.ErrBookingNotFound
		}
		return domain.Booking{}, fmt.Errorf("get booking by email: %w", mapUnavailable(err))
	}
	return b, nil
}

// SetCheckedIn performs the conditional one-way transition: the row is
// updated only while checked_in_at is still null. The boolean result reports
// whether this call won; false means a concurrent check-in got there first.
func (r *BookingRepository) SetCheckedIn(ctx context.Context, bookingID string, at time.Time) (bool, error) {
	const stmt = `
UPDATE bookings
SET checked_in_at = $2
WHERE id = $1 AND checked_in_at IS NULL`

	tag, err := r.pool.Exec(ctx, stmt, bookingID, at)
	if err != nil {
		if isInvalidUUID(err) {
			return false, domain.ErrBookingNotFound
		}
		return false, fmt.Errorf("set checked in: %w", mapUnavailable(err))
	}
	return tag.RowsAffected() == 1, nil
}

func (r *BookingRepository) Delete(ctx context.Context, eventID, bookingID string) error {
	const stmt = `DELETE FROM bookings WHERE id = $1 AND event_id = $2`

	tag, err := r.pool.Exec(ctx, stmt, bookingID, eventID)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrBookingNotFound
		}
		return fmt.Errorf("delete booking: %w", mapUnavailable(err))
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBookingNotFound
	}
	return nil
}

// List returns one page of an event's bookings, newest first, optionally
// filtered by a case-insensitive substring match on name or email.
func (r *BookingRepository) List(ctx context.Context, eventID, search string, offset, limit int) ([]domain.Booking, error) {
	const query = `
SELECT id, event_id, name, email, checked_in_at, created_at
FROM bookings
WHERE event_id = $1
  AND ($2 = '' OR name ILIKE '%' || $2 || '%' OR email ILIKE '%' || $2 || '%')
ORDER BY created_at DESC, id DESC
OFFSET $3 LIMIT $4`

	rows, err := r.pool.Query(ctx, query, eventID, search, offset, limit)
	if err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("list bookings: %w", mapUnavailable(err))
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		var b domain.Booking
		if err := rows.Scan(&b.ID, &b.EventID, &b.Name, &b.Email, &b.CheckedInAt, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list bookings: %w", mapUnavailable(err))
	}
	return bookings, nil
}

// ListAll returns every booking for an event, newest first; used by the CSV
// export.
func (r *BookingRepository) ListAll(ctx context.Context, eventID string) ([]domain.Booking, error) {
	const query = `
SELECT id, event_id, name, email, checked_in_at, created_at
FROM bookings
WHERE event_id = $1
ORDER BY created_at DESC, id DESC`

	rows, err := r.pool.Query(ctx, query, eventID)
	if err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("list all bookings: %w", mapUnavailable(err))
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		var b domain.Booking
		if err := rows.Scan(&b.ID, &b.EventID, &b.Name, &b.Email, &b.CheckedInAt, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list all bookings: %w", mapUnavailable(err))
	}
	return bookings, nil
}

func (r *BookingRepository) Count(ctx context.Context, eventID, search string) (int, error) {
	const query = `
SELECT COUNT(*)
FROM bookings
WHERE event_id = $1
  AND ($2 = '' OR name ILIKE '%' || $2 || '%' OR email ILIKE '%' || $2 || '%')`

	var total int
	if err := r.pool.QueryRow(ctx, query, eventID, search).Scan(&total); err != nil {
		if isInvalidUUID(err) {
			return 0, domain.ErrEventNotFound
		}
		return 0, fmt.Errorf("count bookings: %w", mapUnavailable(err))
	}
	return total, nil
}
