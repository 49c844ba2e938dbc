package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"keur/internal/core"
	"keur/internal/store"
)

type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, errorResponse{Error: msg})
}

// respondStoreError maps service errors onto HTTP statuses. Validation
// errors become 422, missing records 404, everything else 500.
func respondStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		respondError(w, http.StatusNotFound, "not found")
	case isValidationError(err):
		respondError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		slog.Error("Request failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}

func isValidationError(err error) bool {
	for _, known := range []error{
		core.ErrInvalidDate, core.ErrInvalidRange, core.ErrInvalidStay,
		core.ErrInvalidChannel, core.ErrInvalidStatus, core.ErrInvalidProperty,
		core.ErrInvalidCategory, core.ErrNegativeAmount, core.ErrInvalidAmount,
		core.ErrEmptyName, core.ErrEmptyPropertyID,
	} {
		if errors.Is(err, known) {
			return true
		}
	}
	return false
}

func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// parseRange reads from/to query parameters. When absent the range
// defaults to the current calendar month.
func parseRange(r *http.Request) (core.DateRange, error) {
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")

	if from == "" && to == "" {
		now := time.Now().UTC()
		start := core.NewDate(now.Year(), int(now.Month()), 1)
		end := core.DateOf(start.AddDate(0, 1, -1))
		return core.DateRange{Start: start, End: end}, nil
	}

	start, err := core.ParseDate(from)
	if err != nil {
		return core.DateRange{}, core.ErrInvalidDate
	}
	end, err := core.ParseDate(to)
	if err != nil {
		return core.DateRange{}, core.ErrInvalidDate
	}

	rng := core.DateRange{Start: start, End: end}
	if err := rng.Validate(); err != nil {
		return core.DateRange{}, err
	}
	return rng, nil
}
