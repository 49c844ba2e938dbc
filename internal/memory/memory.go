package memory

import (
	"context"
	"sort"
	"sync"

	"keur/internal/core"
	"keur/internal/store"
)

// Store keeps everything in process memory. Used in tests and when no
// SQLite path is configured.
type Store struct {
	mu         sync.RWMutex
	bookings   map[string]core.Booking
	expenses   map[string]core.Expense
	properties map[string]core.Property
}

var _ store.Store = (*Store)(nil)

func NewStore() *Store {
	return &Store{
		bookings:   make(map[string]core.Booking),
		expenses:   make(map[string]core.Expense),
		properties: make(map[string]core.Property),
	}
}

func (s *Store) Close() error { return nil }

func (s *Store) CreateBooking(_ context.Context, b core.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookings[b.ID] = b
	return nil
}

func (s *Store) ListBookings(_ context.Context, rng core.DateRange) ([]core.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []core.Booking
	for _, b := range s.bookings {
		if !b.CheckIn.After(rng.End.Time) && !b.CheckOut.Before(rng.Start.Time) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CheckIn.Equal(out[j].CheckIn.Time) {
			return out[i].CheckIn.Before(out[j].CheckIn.Time)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *Store) UpdateBookingStatus(_ context.Context, id string, status core.BookingStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[id]
	if !ok {
		return store.ErrNotFound
	}
	b.Status = status
	s.bookings[id] = b
	return nil
}

func (s *Store) DeleteBooking(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.bookings[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.bookings, id)
	return nil
}

func (s *Store) CreateExpense(_ context.Context, e core.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expenses[e.ID] = e
	return nil
}

func (s *Store) ListExpenses(_ context.Context, rng core.DateRange) ([]core.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []core.Expense
	for _, e := range s.expenses {
		if !e.Date.Before(rng.Start.Time) && !e.Date.After(rng.End.Time) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date.Time) {
			return out[i].Date.Before(out[j].Date.Time)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *Store) DeleteExpense(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.expenses[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.expenses, id)
	return nil
}

func (s *Store) CreateProperty(_ context.Context, p core.Property) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.properties[p.ID] = p
	return nil
}

func (s *Store) ListProperties(_ context.Context) ([]core.Property, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]core.Property, 0, len(s.properties))
	for _, p := range s.properties {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *Store) GetProperty(_ context.Context, id string) (core.Property, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.properties[id]
	if !ok {
		return core.Property{}, store.ErrNotFound
	}
	return p, nil
}

func (s *Store) UpdatePropertyStatus(_ context.Context, id string, status core.PropertyStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.properties[id]
	if !ok {
		return store.ErrNotFound
	}
	p.Status = status
	s.properties[id] = p
	return nil
}
