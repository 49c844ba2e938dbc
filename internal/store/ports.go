// Package store declares the ports the HTTP layer and the worker use
// to reach persistence. SQLite and in-memory adapters implement them.
package store

import (
	"context"
	"errors"

	"keur/internal/core"
)

// ErrNotFound is returned when a record id does not exist.
var ErrNotFound = errors.New("record not found")

type (
	BookingStore interface {
		CreateBooking(ctx context.Context, b core.Booking) error
		// ListBookings returns every booking whose stay interval overlaps
		// the range, cancelled ones included (the aggregation layer
		// decides what to exclude).
		ListBookings(ctx context.Context, r core.DateRange) ([]core.Booking, error)
		UpdateBookingStatus(ctx context.Context, id string, status core.BookingStatus) error
		DeleteBooking(ctx context.Context, id string) error
	}

	ExpenseStore interface {
		CreateExpense(ctx context.Context, e core.Expense) error
		// ListExpenses returns expenses whose effective date falls inside
		// the inclusive range.
		ListExpenses(ctx context.Context, r core.DateRange) ([]core.Expense, error)
		DeleteExpense(ctx context.Context, id string) error
	}

	PropertyStore interface {
		CreateProperty(ctx context.Context, p core.Property) error
		ListProperties(ctx context.Context) ([]core.Property, error)
		GetProperty(ctx context.Context, id string) (core.Property, error)
		UpdatePropertyStatus(ctx context.Context, id string, status core.PropertyStatus) error
	}

	// Store is the full persistence surface a backend must provide.
	Store interface {
		BookingStore
		ExpenseStore
		PropertyStore
	}
)
