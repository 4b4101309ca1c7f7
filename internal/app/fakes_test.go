package app

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/attendly/attendly/internal/domain"
)

// fakeStore is an in-memory stand-in for the Postgres repositories. Writes
// take a mutex so the concurrency property tests exercise the same
// single-winner semantics the real store gets from its constraints.
type fakeStore struct {
	mu       sync.Mutex
	events   map[string]domain.Event
	bookings map[string]domain.Booking
}

func newFakeStore(events ...domain.Event) *fakeStore {
	s := &fakeStore{
		events:   make(map[string]domain.Event),
		bookings: make(map[string]domain.Booking),
	}
	for _, e := range events {
		s.events[e.ID] = e
	}
	return s
}

func (s *fakeStore) GetByID(_ context.Context, id string) (domain.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	event, ok := s.events[id]
	if !ok {
		return domain.Event{}, domain.ErrEventNotFound
	}
	return event, nil
}

// bookingStore adapts fakeStore to the booking repository interfaces; a
// separate type keeps GetByID unambiguous between events and bookings.
type bookingStore struct {
	*fakeStore
}

func (s bookingStore) Insert(_ context.Context, b domain.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.bookings {
		if existing.EventID == b.EventID && existing.Email == b.Email {
			return domain.ErrDuplicateBooking
		}
	}
	s.bookings[b.ID] = b
	return nil
}

func (s bookingStore) GetByID(_ context.Context, id string) (domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok {
		return domain.Booking{}, domain.ErrBookingNotFound
	}
	return b, nil
}

func (s bookingStore) GetByEventAndEmail(_ context.Context, eventID, email string) (domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.bookings {
		if b.EventID == eventID && b.Email == email {
			return b, nil
		}
	}
	return domain.Booking{}, domain.ErrBookingNotFound
}

func (s bookingStore) SetCheckedIn(_ context.Context, bookingID string, at time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[bookingID]
	if !ok {
		return false, domain.ErrBookingNotFound
	}
	if b.CheckedInAt != nil {
		return false, nil
	}
	b.CheckedInAt = &at
	s.bookings[bookingID] = b
	return true, nil
}

func (s bookingStore) Delete(_ context.Context, eventID, bookingID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[bookingID]
	if !ok || b.EventID != eventID {
		return domain.ErrBookingNotFound
	}
	delete(s.bookings, bookingID)
	return nil
}

func (s bookingStore) List(_ context.Context, eventID, search string, offset, limit int) ([]domain.Booking, error) {
	all := s.matching(eventID, search)
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (s bookingStore) Count(_ context.Context, eventID, search string) (int, error) {
	return len(s.matching(eventID, search)), nil
}

func (s bookingStore) ListAll(_ context.Context, eventID string) ([]domain.Booking, error) {
	return s.matching(eventID, ""), nil
}

func (s bookingStore) matching(eventID, search string) []domain.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	needle := strings.ToLower(search)
	var out []domain.Booking
	for _, b := range s.bookings {
		if b.EventID != eventID {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(b.Name), needle) &&
			!strings.Contains(strings.ToLower(b.Email), needle) {
			continue
		}
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

// analyticsStore computes aggregates from the fake store's contents the way
// the SQL view does, including the deterministic top-events ordering.
type analyticsStore struct {
	*fakeStore
}

func (s analyticsStore) EventCounts(_ context.Context, eventID string) (int, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	total, checkedIn := 0, 0
	for _, b := range s.bookings {
		if b.EventID != eventID {
			continue
		}
		total++
		if b.CheckedInAt != nil {
			checkedIn++
		}
	}
	return total, checkedIn, nil
}

func (s analyticsStore) BookingsByDay(_ context.Context, eventID string, since time.Time) ([]domain.DayBucket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	counts := make(map[string]int)
	for _, b := range s.bookings {
		if b.EventID != eventID || b.CreatedAt.Before(since) {
			continue
		}
		counts[b.CreatedAt.UTC().Format("2006-01-02")]++
	}
	days := make([]string, 0, len(counts))
	for day := range counts {
		days = append(days, day)
	}
	sort.Strings(days)
	buckets := make([]domain.DayBucket, 0, len(days))
	for _, day := range days {
		buckets = append(buckets, domain.DayBucket{Date: day, Count: counts[day]})
	}
	return buckets, nil
}

func (s analyticsStore) OrganizerTotals(_ context.Context, organizerID string) (int, int, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	events, bookings, checkIns := 0, 0, 0
	for _, e := range s.events {
		if e.OrganizerID != organizerID {
			continue
		}
		events++
		for _, b := range s.bookings {
			if b.EventID != e.ID {
				continue
			}
			bookings++
			if b.CheckedInAt != nil {
				checkIns++
			}
		}
	}
	return events, bookings, checkIns, nil
}

func (s analyticsStore) TopEvents(_ context.Context, organizerID string, limit int) ([]domain.EventCount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	type ranked struct {
		id    string
		title string
		count int
	}
	var all []ranked
	for _, e := range s.events {
		if e.OrganizerID != organizerID {
			continue
		}
		count := 0
		for _, b := range s.bookings {
			if b.EventID == e.ID {
				count++
			}
		}
		all = append(all, ranked{id: e.ID, title: e.Title, count: count})
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].count != all[j].count {
			return all[i].count > all[j].count
		}
		return all[i].id < all[j].id
	})
	if len(all) > limit {
		all = all[:limit]
	}
	out := make([]domain.EventCount, 0, len(all))
	for _, r := range all {
		out = append(out, domain.EventCount{Title: r.title, Bookings: r.count})
	}
	return out, nil
}
