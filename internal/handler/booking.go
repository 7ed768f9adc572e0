package handler

import (
	"errors"
	"net/http"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/guestbook/internal/domain"
)

// ListBookings handles GET /bookings.
// It returns the current snapshot in insertion order.
func (s *Server) ListBookings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, BookingList{Data: entriesToResponse(s.bookings.List(r.Context()))})
}

// CreateBooking handles POST /bookings.
func (s *Server) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var body BookingInput
	if err := decodeJSON(r, &body); err != nil {
		writeDecodeError(w, err)
		return
	}

	created, err := s.bookings.Add(r.Context(), inputToRequest(body))
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			writeJSON(w, http.StatusUnprocessableEntity, validationBody(err))
			return
		}
		s.log.ErrorContext(r.Context(), "create booking failed", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, entryToResponse(created))
}

// DeleteBooking handles DELETE /bookings.
// The body identifies the booking by value; every equal booking is removed.
// Deleting a booking that does not exist returns 200 with removed=0.
func (s *Server) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	var body BookingInput
	if err := decodeJSON(r, &body); err != nil {
		writeDecodeError(w, err)
		return
	}
	if body.ArrivalDate == nil || body.DepartureDate == nil {
		writeJSON(w, http.StatusBadRequest, requestBody("arrival_date and departure_date are required"))
		return
	}

	entry := domain.NewBookingEntry(
		domain.DateOf(body.ArrivalDate.Time),
		domain.DateOf(body.DepartureDate.Time),
		body.Name,
	)
	writeJSON(w, http.StatusOK, DeleteResult{Removed: s.bookings.Delete(r.Context(), entry)})
}

// --- mapping helpers --------------------------------------------------------

// inputToRequest converts the wire body into a domain.BookingRequest,
// keeping absent dates as nil.
func inputToRequest(body BookingInput) domain.BookingRequest {
	req := domain.BookingRequest{Name: body.Name}
	if body.ArrivalDate != nil {
		d := domain.DateOf(body.ArrivalDate.Time)
		req.ArrivalDate = &d
	}
	if body.DepartureDate != nil {
		d := domain.DateOf(body.DepartureDate.Time)
		req.DepartureDate = &d
	}
	return req
}

// entryToResponse converts a domain.BookingEntry into its wire form.
func entryToResponse(e domain.BookingEntry) Booking {
	return Booking{
		Name:          e.Name,
		ArrivalDate:   openapi_types.Date{Time: e.ArrivalDate.Time()},
		DepartureDate: openapi_types.Date{Time: e.DepartureDate.Time()},
		DateRange:     e.DateRangeLabel(),
	}
}

// entriesToResponse maps a snapshot, always returning a non-nil slice so the
// JSON body carries [] rather than null.
func entriesToResponse(entries []domain.BookingEntry) []Booking {
	out := make([]Booking, len(entries))
	for i, e := range entries {
		out[i] = entryToResponse(e)
	}
	return out
}
