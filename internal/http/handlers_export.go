package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"keur/internal/export"
)

func (s *Server) handleExportExpensesCSV(w http.ResponseWriter, r *http.Request) {
	rng, err := parseRange(r)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	expenses, err := s.expenses.ListExpenses(r.Context(), rng)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	filename := fmt.Sprintf("expenses-%s-%s.csv", rng.Start.ISO(), rng.End.ISO())
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := export.WriteExpensesCSV(w, expenses); err != nil {
		// Headers are already out; all we can do is log and cut the stream.
		slog.ErrorContext(r.Context(), "CSV export failed", "error", err)
	}
}

func (s *Server) handleExportBookingsCSV(w http.ResponseWriter, r *http.Request) {
	rng, err := parseRange(r)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	bookings, err := s.bookings.ListBookings(r.Context(), rng)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	filename := fmt.Sprintf("bookings-%s-%s.csv", rng.Start.ISO(), rng.End.ISO())
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := export.WriteBookingsCSV(w, bookings); err != nil {
		slog.ErrorContext(r.Context(), "CSV export failed", "error", err)
	}
}

type monthlyExportRequest struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// handleRequestMonthlyExport queues an Excel export for the worker.
func (s *Server) handleRequestMonthlyExport(w http.ResponseWriter, r *http.Request) {
	if s.publisher == nil {
		respondError(w, http.StatusServiceUnavailable, "export queue not configured")
		return
	}

	var req monthlyExportRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if req.Month < 1 || req.Month > 12 {
		respondError(w, http.StatusUnprocessableEntity, "month out of range")
		return
	}
	if req.Year < 2000 || req.Year > 2200 {
		respondError(w, http.StatusUnprocessableEntity, "year out of range")
		return
	}

	if err := s.publisher.PublishExportRequest(r.Context(), req.Year, req.Month); err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusAccepted, map[string]string{"status": "queued"})
}
