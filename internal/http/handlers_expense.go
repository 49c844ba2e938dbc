package http

import (
	"net/http"

	"keur/internal/core"
)

type createExpenseRequest struct {
	PropertyID string `json:"property_id"`
	Category   string `json:"category"`
	Amount     string `json:"amount"`
	Date       string `json:"date"`
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var req createExpenseRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	date, err := core.ParseDate(req.Date)
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, "invalid date")
		return
	}
	cents, err := core.ParseDecimalToCents(req.Amount)
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, "invalid amount")
		return
	}

	conv := s.conv()
	expense := core.Expense{
		PropertyID: req.PropertyID,
		Category:   core.ExpenseCategory(req.Category),
		Amount:     conv.Pair(cents),
		Date:       date,
	}

	created, err := s.expenses.CreateExpense(r.Context(), expense)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	s.invalidateSummaries()
	respondJSON(w, http.StatusCreated, newExpenseView(created, conv))
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
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

	conv := s.conv()
	views := make([]expenseView, 0, len(expenses))
	for _, e := range expenses {
		views = append(views, newExpenseView(e, conv))
	}
	respondJSON(w, http.StatusOK, views)
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.expenses.DeleteExpense(r.Context(), id); err != nil {
		respondStoreError(w, err)
		return
	}

	s.invalidateSummaries()
	respondJSON(w, http.StatusNoContent, nil)
}
