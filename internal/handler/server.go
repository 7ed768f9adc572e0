// Package handler implements the HTTP presentation layer for guest bookings.
// All handlers are methods on Server. Methods are split into files by concern
// (health.go, booking.go, history.go, export.go, stream.go) but share the same
// Server struct so they can access its dependencies.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/guestbook/apidoc"
	"github.com/pkordes/guestbook/internal/domain"
)

// BookingServicer defines the booking operations the handlers depend on.
// Defining the interface here (in the consumer package) lets handler tests
// inject a mock without touching the registry or the journal.
type BookingServicer interface {
	Add(ctx context.Context, req domain.BookingRequest) (domain.BookingEntry, error)
	Delete(ctx context.Context, entry domain.BookingEntry) int
	List(ctx context.Context) []domain.BookingEntry
	History(ctx context.Context, p domain.PaginationParams) ([]domain.BookingEvent, int64, error)
	Export(ctx context.Context) []domain.ExportRow
}

// SnapshotWatcher is the subscription side of the registry.
type SnapshotWatcher interface {
	Watch(ctx context.Context) <-chan []domain.BookingEntry
}

// Server holds the dependencies shared by all handlers.
type Server struct {
	bookings BookingServicer
	watcher  SnapshotWatcher
	log      *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
// watcher may be nil, in which case /bookings/stream responds 404.
func NewServer(bookings BookingServicer, watcher SnapshotWatcher, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{bookings: bookings, watcher: watcher, log: log}
}

// NewHealthHandler returns a Server for health-check-only use.
func NewHealthHandler() *Server {
	return NewServer(nil, nil, nil)
}

// Routes returns a chi router with every endpoint registered.
// Cross-cutting middleware is applied by the caller.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", serveOpenAPI)

	r.Route("/bookings", func(r chi.Router) {
		r.Get("/", s.ListBookings)
		r.Post("/", s.CreateBooking)
		r.Delete("/", s.DeleteBooking)
		r.Get("/history", s.ListHistory)
		r.Get("/export", s.GetExport)
		r.Get("/stream", s.StreamBookings)
	})
	return r
}

// serveOpenAPI writes the embedded API description.
func serveOpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(apidoc.OpenAPI)
}
