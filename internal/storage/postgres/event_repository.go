package postgres

import (
	"context"
	"fmt"

	"github.com/attendly/attendly/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// EventRepository is the read-only view of the event catalog this engine
// consumes; event rows are owned and written elsewhere.
type EventRepository struct {
	pool *pgxpool.Pool
}

func NewEventRepository(pool *pgxpool.Pool) *EventRepository {
	return &EventRepository{pool: pool}
}

func (r *EventRepository) GetByID(ctx context.Context, id string) (domain.Event, error) {
	const query = `
SELECT id, slug, organizer_id, title, location, starts_at
FROM events
WHERE id = $1`

	var e domain.Event
	err := r.pool.QueryRow(ctx, query, id).
		Scan(&e.ID, &e.Slug, &e.OrganizerID, &e.Title, &e.Location, &e.StartsAt)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Event{}, domain.ErrEventNotFound
		}
		if err == pgx.ErrNoRows {
			return domain.Event{}, domain.ErrEventNotFound
		}
		return domain.Event{}, fmt.Errorf("get event: %w", mapUnavailable(err))
	}
	return e, nil
}
