package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"keur/internal/core"
	"keur/internal/store"
)

// BookingService validates bookings at the boundary, persists them, and
// nudges the report worker so dashboards stay fresh. Publish failures never
// fail the request; the write already landed locally.
type BookingService struct {
	store     store.BookingStore
	publisher RefreshPublisher
}

func NewBookingService(s store.BookingStore, publisher RefreshPublisher) *BookingService {
	return &BookingService{store: s, publisher: publisher}
}

func (s *BookingService) CreateBooking(ctx context.Context, b core.Booking) (core.Booking, error) {
	b.ID = uuid.NewString()
	b.CreatedAt = time.Now().UTC()
	if b.Status == "" {
		b.Status = core.StatusConfirmed
	}

	if err := b.Validate(); err != nil {
		return core.Booking{}, fmt.Errorf("validate booking: %w", err)
	}

	if err := s.store.CreateBooking(ctx, b); err != nil {
		return core.Booking{}, fmt.Errorf("save booking: %w", err)
	}

	s.notifyRefresh(ctx, b.CheckIn)
	return b, nil
}

func (s *BookingService) ListBookings(ctx context.Context, rng core.DateRange) ([]core.Booking, error) {
	if err := rng.Validate(); err != nil {
		return nil, fmt.Errorf("validate range: %w", err)
	}
	return s.store.ListBookings(ctx, rng)
}

func (s *BookingService) UpdateBookingStatus(ctx context.Context, id string, status core.BookingStatus) error {
	if !status.Valid() {
		return core.ErrInvalidStatus
	}
	if err := s.store.UpdateBookingStatus(ctx, id, status); err != nil {
		return fmt.Errorf("update booking status: %w", err)
	}
	return nil
}

func (s *BookingService) DeleteBooking(ctx context.Context, id string) error {
	if err := s.store.DeleteBooking(ctx, id); err != nil {
		return fmt.Errorf("delete booking: %w", err)
	}
	return nil
}

func (s *BookingService) notifyRefresh(ctx context.Context, d core.Date) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishSummaryRefresh(ctx, d.Year(), int(d.Month())); err != nil {
		slog.ErrorContext(ctx, "Failed to publish summary refresh",
			"year", d.Year(), "month", int(d.Month()), "error", err)
	}
}
