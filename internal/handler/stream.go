package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// StreamBookings handles GET /bookings/stream.
// It sends the current snapshot and then every later one as Server-Sent
// Events, one "snapshot" event per value. A client that reads slowly skips
// intermediate snapshots and receives the latest.
func (s *Server) StreamBookings(w http.ResponseWriter, r *http.Request) {
	if s.watcher == nil {
		writeJSON(w, http.StatusNotFound, notFoundBody("snapshot stream is not available"))
		return
	}

	rc := http.NewResponseController(w)
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	for snapshot := range s.watcher.Watch(r.Context()) {
		data, err := json.Marshal(BookingList{Data: entriesToResponse(snapshot)})
		if err != nil {
			s.log.ErrorContext(r.Context(), "encode snapshot failed", "error", err)
			return
		}
		if _, err := fmt.Fprintf(w, "event: snapshot\ndata: %s\n\n", data); err != nil {
			return
		}
		if err := rc.Flush(); err != nil {
			s.log.WarnContext(r.Context(), "stream flush failed", "error", err)
			return
		}
	}
}
