// Package service contains the presentation-layer rules for guest bookings.
// The registry trusts its caller; BookingService is that caller. It applies the
// form's guard conditions, forwards to the registry, and records each mutation
// in the optional journal.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/pkordes/guestbook/internal/domain"
	"github.com/pkordes/guestbook/internal/repo"
)

// Registry is the subset of *registry.BookingRegistry the service depends on.
type Registry interface {
	Append(entry domain.BookingEntry) (size int)
	Remove(entry domain.BookingEntry) (removed, size int)
	Snapshot() []domain.BookingEntry
}

// BookingService implements the booking form's behaviour on top of a Registry.
type BookingService struct {
	registry Registry
	journal  repo.JournalRepo // nil disables the journal
	now      func() time.Time
	log      *slog.Logger
}

// Option configures a BookingService.
type Option func(*BookingService)

// WithJournal records every mutation in j.
func WithJournal(j repo.JournalRepo) Option {
	return func(s *BookingService) { s.journal = j }
}

// WithClock overrides the clock used for the past-date check and event timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *BookingService) { s.now = now }
}

// WithLogger sets the logger used for journal failures.
func WithLogger(log *slog.Logger) Option {
	return func(s *BookingService) { s.log = log }
}

// NewBookingService constructs a BookingService backed by r.
func NewBookingService(r Registry, opts ...Option) *BookingService {
	s := &BookingService{registry: r, now: time.Now, log: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add validates req and appends the resulting entry to the registry.
// Returns domain.ErrValidation when a guard condition fails; the registry is
// not touched in that case.
func (s *BookingService) Add(ctx context.Context, req domain.BookingRequest) (domain.BookingEntry, error) {
	if err := s.validate(req); err != nil {
		return domain.BookingEntry{}, err
	}

	entry := domain.NewBookingEntry(*req.ArrivalDate, *req.DepartureDate, req.Name)
	size := s.registry.Append(entry)

	s.record(ctx, domain.BookingEvent{Kind: domain.EventAdded, Entry: entry, Size: size})
	return entry, nil
}

// Delete removes every entry equal to entry and returns how many were present.
// Deleting an absent entry is not an error and returns 0.
func (s *BookingService) Delete(ctx context.Context, entry domain.BookingEntry) int {
	removed, size := s.registry.Remove(entry)

	s.record(ctx, domain.BookingEvent{Kind: domain.EventDeleted, Entry: entry, Removed: removed, Size: size})
	return removed
}

// List returns the current bookings in insertion order.
// Always returns a non-nil slice so callers can safely range over it.
func (s *BookingService) List(_ context.Context) []domain.BookingEntry {
	entries := s.registry.Snapshot()
	if entries == nil {
		return []domain.BookingEntry{}
	}
	return entries
}

// History returns one page of the mutation journal and the total count.
// With no journal configured it returns an empty page.
func (s *BookingService) History(ctx context.Context, p domain.PaginationParams) ([]domain.BookingEvent, int64, error) {
	if s.journal == nil {
		return []domain.BookingEvent{}, 0, nil
	}
	events, total, err := s.journal.ListPaged(ctx, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.BookingService.History: %w", err)
	}
	if events == nil {
		events = []domain.BookingEvent{}
	}
	return events, total, nil
}

// validate enforces the booking form's guard conditions, in order:
//   - blank name and no date range
//   - no date range
//   - blank name
//   - either date before today
//
// Departure before arrival is deliberately accepted.
func (s *BookingService) validate(req domain.BookingRequest) error {
	blank := strings.TrimSpace(req.Name) == ""
	switch {
	case blank && !req.HasDateRange():
		return fmt.Errorf("%w: please fill all the fields", domain.ErrValidation)
	case !req.HasDateRange():
		return fmt.Errorf("%w: please select a date range", domain.ErrValidation)
	case blank:
		return fmt.Errorf("%w: name can't be empty", domain.ErrValidation)
	}

	today := domain.DateOf(s.now().Local())
	if req.ArrivalDate.Before(today) || req.DepartureDate.Before(today) {
		return fmt.Errorf("%w: dates must not be in the past", domain.ErrValidation)
	}
	return nil
}

// record appends ev to the journal. Registry mutations cannot fail, so a
// journal error is logged and otherwise ignored.
func (s *BookingService) record(ctx context.Context, ev domain.BookingEvent) {
	if s.journal == nil {
		return
	}
	ev.OccurredAt = s.now().UTC()
	if _, err := s.journal.Append(ctx, ev); err != nil {
		s.log.ErrorContext(ctx, "journal append failed",
			"kind", string(ev.Kind),
			"name", ev.Entry.Name,
			"error", err,
		)
	}
}
