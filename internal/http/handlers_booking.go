package http

import (
	"net/http"

	"keur/internal/core"
)

type createBookingRequest struct {
	PropertyID string `json:"property_id"`
	CheckIn    string `json:"check_in"`
	CheckOut   string `json:"check_out"`
	Channel    string `json:"channel"`
	Status     string `json:"status"`
	Revenue    string `json:"revenue"`
}

func (s *Server) handleCreateBooking(w http.ResponseWriter, r *http.Request) {
	var req createBookingRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	checkIn, err := core.ParseDate(req.CheckIn)
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, "invalid check_in date")
		return
	}
	checkOut, err := core.ParseDate(req.CheckOut)
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, "invalid check_out date")
		return
	}
	cents, err := core.ParseDecimalToCents(req.Revenue)
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, "invalid revenue amount")
		return
	}

	conv := s.conv()
	booking := core.Booking{
		PropertyID: req.PropertyID,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Channel:    core.Channel(req.Channel),
		Status:     core.BookingStatus(req.Status),
		Revenue:    conv.Pair(cents),
	}

	created, err := s.bookings.CreateBooking(r.Context(), booking)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	s.invalidateSummaries()
	respondJSON(w, http.StatusCreated, newBookingView(created, conv))
}

func (s *Server) handleListBookings(w http.ResponseWriter, r *http.Request) {
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

	conv := s.conv()
	views := make([]bookingView, 0, len(bookings))
	for _, b := range bookings {
		views = append(views, newBookingView(b, conv))
	}
	respondJSON(w, http.StatusOK, views)
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (s *Server) handleUpdateBookingStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	id := r.PathValue("id")
	if err := s.bookings.UpdateBookingStatus(r.Context(), id, core.BookingStatus(req.Status)); err != nil {
		respondStoreError(w, err)
		return
	}

	s.invalidateSummaries()
	respondJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleDeleteBooking(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.bookings.DeleteBooking(r.Context(), id); err != nil {
		respondStoreError(w, err)
		return
	}

	s.invalidateSummaries()
	respondJSON(w, http.StatusNoContent, nil)
}
