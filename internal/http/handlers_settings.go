package http

import (
	"net/http"

	"keur/internal/currency"
)

type currencySettingsView struct {
	Rate            float64 `json:"rate"`
	BaseSymbol      string  `json:"base_symbol"`
	SecondarySuffix string  `json:"secondary_suffix"`
}

type updateCurrencyRequest struct {
	Rate float64 `json:"rate"`
}

func (s *Server) handleGetCurrency(w http.ResponseWriter, _ *http.Request) {
	conv := s.conv()
	respondJSON(w, http.StatusOK, currencySettingsView{
		Rate:            conv.Rate(),
		BaseSymbol:      conv.BaseSymbol(),
		SecondarySuffix: conv.SecondarySuffix(),
	})
}

func (s *Server) handleUpdateCurrency(w http.ResponseWriter, r *http.Request) {
	var req updateCurrencyRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	current := s.conv()
	next, err := currency.New(currency.Config{
		Rate:            req.Rate,
		BaseSymbol:      current.BaseSymbol(),
		SecondarySuffix: current.SecondarySuffix(),
	})
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, "invalid exchange rate")
		return
	}

	s.setConv(next)
	respondJSON(w, http.StatusOK, currencySettingsView{
		Rate:            next.Rate(),
		BaseSymbol:      next.BaseSymbol(),
		SecondarySuffix: next.SecondarySuffix(),
	})
}
