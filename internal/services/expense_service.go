package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"keur/internal/core"
	"keur/internal/store"
)

// ExpenseService mirrors BookingService for cost records.
type ExpenseService struct {
	store     store.ExpenseStore
	publisher RefreshPublisher
}

func NewExpenseService(s store.ExpenseStore, publisher RefreshPublisher) *ExpenseService {
	return &ExpenseService{store: s, publisher: publisher}
}

func (s *ExpenseService) CreateExpense(ctx context.Context, e core.Expense) (core.Expense, error) {
	e.ID = uuid.NewString()

	if err := e.Validate(); err != nil {
		return core.Expense{}, fmt.Errorf("validate expense: %w", err)
	}

	if err := s.store.CreateExpense(ctx, e); err != nil {
		return core.Expense{}, fmt.Errorf("save expense: %w", err)
	}

	s.notifyRefresh(ctx, e.Date)
	return e, nil
}

func (s *ExpenseService) ListExpenses(ctx context.Context, rng core.DateRange) ([]core.Expense, error) {
	if err := rng.Validate(); err != nil {
		return nil, fmt.Errorf("validate range: %w", err)
	}
	return s.store.ListExpenses(ctx, rng)
}

func (s *ExpenseService) DeleteExpense(ctx context.Context, id string) error {
	if err := s.store.DeleteExpense(ctx, id); err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	return nil
}

func (s *ExpenseService) notifyRefresh(ctx context.Context, d core.Date) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishSummaryRefresh(ctx, d.Year(), int(d.Month())); err != nil {
		slog.ErrorContext(ctx, "Failed to publish summary refresh",
			"year", d.Year(), "month", int(d.Month()), "error", err)
	}
}
