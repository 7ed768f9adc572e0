package handler

import (
	"net/http"
	"strconv"

	"github.com/pkordes/guestbook/internal/domain"
)

// ListHistory handles GET /bookings/history.
// Supports ?page= and ?limit= query parameters (defaults: page=1, limit=20, max=100).
func (s *Server) ListHistory(w http.ResponseWriter, r *http.Request) {
	page, err := optionalInt(r, "page")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, requestBody(err.Error()))
		return
	}
	limit, err := optionalInt(r, "limit")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, requestBody(err.Error()))
		return
	}

	params := domain.NewPaginationParams(page, limit)
	events, total, err := s.bookings.History(r.Context(), params)
	if err != nil {
		s.log.ErrorContext(r.Context(), "list history failed", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	data := make([]BookingEvent, len(events))
	for i, ev := range events {
		data[i] = eventToResponse(ev)
	}
	writeJSON(w, http.StatusOK, HistoryPage{
		Data: data,
		Pagination: Pagination{
			Page:  params.Page,
			Limit: params.Limit,
			Total: int(total),
		},
	})
}

// optionalInt reads an integer query parameter, returning nil when absent.
func optionalInt(r *http.Request, key string) (*int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, &queryParamError{key: key, value: raw}
	}
	return &v, nil
}

type queryParamError struct {
	key, value string
}

func (e *queryParamError) Error() string {
	return "invalid " + e.key + " parameter: " + strconv.Quote(e.value)
}

// eventToResponse converts a domain.BookingEvent into its wire form.
func eventToResponse(ev domain.BookingEvent) BookingEvent {
	return BookingEvent{
		Id:         ev.ID,
		Kind:       string(ev.Kind),
		Booking:    entryToResponse(ev.Entry),
		Removed:    ev.Removed,
		Size:       ev.Size,
		OccurredAt: ev.OccurredAt,
	}
}
