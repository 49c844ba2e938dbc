package http

import (
	"context"
	"fmt"
	"net/http"

	"golang.org/x/sync/errgroup"

	"keur/internal/core"
	"keur/internal/report"
)

func (s *Server) handleDashboardSummary(w http.ResponseWriter, r *http.Request) {
	rng, err := parseRange(r)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	summary, err := s.summarize(r.Context(), rng)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, newSummaryView(summary, s.conv()))
}

// handleDashboardMonthly returns one summary per calendar month in the
// requested window.
func (s *Server) handleDashboardMonthly(w http.ResponseWriter, r *http.Request) {
	rng, err := parseRange(r)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	bookings, expenses, properties, err := s.loadRange(r.Context(), rng)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	conv := s.conv()
	months := report.MonthsBetween(rng.Start, rng.End)
	views := make([]summaryView, 0, len(months))
	for _, month := range months {
		summary := report.Summarize(bookings, expenses, report.ActiveProperties(properties), month)
		views = append(views, newSummaryView(summary, conv))
	}
	respondJSON(w, http.StatusOK, views)
}

func (s *Server) handleDashboardCashflow(w http.ResponseWriter, r *http.Request) {
	rng, err := parseRange(r)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	bookings, expenses, _, err := s.loadRange(r.Context(), rng)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	months := report.MonthsBetween(rng.Start, rng.End)
	points := report.CashflowSeries(bookings, expenses, months)
	respondJSON(w, http.StatusOK, newCashflowView(points, s.conv()))
}

// summarize serves window aggregates through the LRU cache.
func (s *Server) summarize(ctx context.Context, rng core.DateRange) (report.Summary, error) {
	key := fmt.Sprintf("%s..%s", rng.Start.ISO(), rng.End.ISO())
	if cached, ok := s.summaryCache.Get(key); ok {
		return cached, nil
	}

	bookings, expenses, properties, err := s.loadRange(ctx, rng)
	if err != nil {
		return report.Summary{}, err
	}

	summary := report.Summarize(bookings, expenses, report.ActiveProperties(properties), rng)
	s.summaryCache.Set(key, summary)
	return summary, nil
}

// loadRange fetches the three datasets in parallel.
func (s *Server) loadRange(ctx context.Context, rng core.DateRange) ([]core.Booking, []core.Expense, []core.Property, error) {
	var (
		bookings   []core.Booking
		expenses   []core.Expense
		properties []core.Property
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		bookings, err = s.store.ListBookings(gctx, rng)
		return err
	})
	g.Go(func() error {
		var err error
		expenses, err = s.store.ListExpenses(gctx, rng)
		return err
	})
	g.Go(func() error {
		var err error
		properties, err = s.store.ListProperties(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, nil, nil, err
	}
	return bookings, expenses, properties, nil
}
