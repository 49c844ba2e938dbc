package http

import (
	"net/http"

	"keur/internal/core"
	"keur/internal/currency"
)

type investmentRequest struct {
	Purchase   string `json:"purchase"`
	Renovation string `json:"renovation"`
	Furniture  string `json:"furniture"`
	Equipment  string `json:"equipment"`
}

type createPropertyRequest struct {
	Name        string             `json:"name"`
	Status      string             `json:"status"`
	NightlyRate string             `json:"nightly_rate"`
	Investment  *investmentRequest `json:"investment"`
}

func (s *Server) handleCreateProperty(w http.ResponseWriter, r *http.Request) {
	var req createPropertyRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	conv := s.conv()
	rateCents, err := core.ParseDecimalToCents(req.NightlyRate)
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, "invalid nightly_rate amount")
		return
	}

	property := core.Property{
		Name:        req.Name,
		Status:      core.PropertyStatus(req.Status),
		NightlyRate: conv.Pair(rateCents),
	}

	if req.Investment != nil {
		inv, err := parseInvestment(req.Investment, conv)
		if err != nil {
			respondError(w, http.StatusUnprocessableEntity, "invalid investment amount")
			return
		}
		property.Investment = inv
	}

	created, err := s.properties.CreateProperty(r.Context(), property)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, newPropertyView(created, conv))
}

// parseInvestment treats missing parts as zero so partial breakdowns work.
func parseInvestment(req *investmentRequest, conv currency.Converter) (*core.Investment, error) {
	parse := func(v string) (core.AmountPair, error) {
		if v == "" {
			return core.AmountPair{}, nil
		}
		cents, err := core.ParseDecimalToCents(v)
		if err != nil {
			return core.AmountPair{}, err
		}
		return conv.Pair(cents), nil
	}

	purchase, err := parse(req.Purchase)
	if err != nil {
		return nil, err
	}
	renovation, err := parse(req.Renovation)
	if err != nil {
		return nil, err
	}
	furniture, err := parse(req.Furniture)
	if err != nil {
		return nil, err
	}
	equipment, err := parse(req.Equipment)
	if err != nil {
		return nil, err
	}

	return &core.Investment{
		Purchase:   purchase,
		Renovation: renovation,
		Furniture:  furniture,
		Equipment:  equipment,
	}, nil
}

func (s *Server) handleListProperties(w http.ResponseWriter, r *http.Request) {
	properties, err := s.properties.ListProperties(r.Context())
	if err != nil {
		respondStoreError(w, err)
		return
	}

	conv := s.conv()
	views := make([]propertyView, 0, len(properties))
	for _, p := range properties {
		views = append(views, newPropertyView(p, conv))
	}
	respondJSON(w, http.StatusOK, views)
}

func (s *Server) handleGetProperty(w http.ResponseWriter, r *http.Request) {
	property, err := s.properties.GetProperty(r.Context(), r.PathValue("id"))
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, newPropertyView(property, s.conv()))
}

func (s *Server) handleUpdatePropertyStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	id := r.PathValue("id")
	if err := s.properties.UpdatePropertyStatus(r.Context(), id, core.PropertyStatus(req.Status)); err != nil {
		respondStoreError(w, err)
		return
	}

	s.invalidateSummaries()
	respondJSON(w, http.StatusNoContent, nil)
}
