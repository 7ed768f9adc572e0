// Package registry holds the authoritative, in-memory list of bookings for a
// session and publishes every change to its observers.
//
// The registry trusts its caller: it performs no validation, and both mutating
// operations are total. Validation lives in the service layer.
package registry

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/pkordes/guestbook/internal/domain"
)

// Observer receives a snapshot of the registry. Each call gets its own copy,
// so the observer may keep or modify the slice freely.
//
// Observers run synchronously on the writer's goroutine and must not mutate
// the registry.
type Observer func(snapshot []domain.BookingEntry)

type subscription struct {
	id uint64
	fn Observer
}

// BookingRegistry owns the ordered sequence of booking entries.
//
// The current sequence is held behind an atomic pointer and replaced whole on
// every write, so Snapshot never observes a half-applied mutation. Writes and
// observer notification are serialized by mu.
type BookingRegistry struct {
	entries atomic.Pointer[[]domain.BookingEntry]

	mu     sync.Mutex
	subs   []subscription
	nextID uint64

	log *slog.Logger
}

// New returns an empty registry. A nil logger falls back to slog.Default().
func New(log *slog.Logger) *BookingRegistry {
	if log == nil {
		log = slog.Default()
	}
	r := &BookingRegistry{log: log}
	empty := []domain.BookingEntry{}
	r.entries.Store(&empty)
	return r
}

// AddBookingEntry appends a new entry built from the three inputs and
// publishes the new snapshot.
func (r *BookingRegistry) AddBookingEntry(arrival, departure domain.Date, name string) {
	r.Append(domain.NewBookingEntry(arrival, departure, name))
}

// Append adds entry to the end of the sequence, publishes the new snapshot
// and returns the resulting size.
func (r *BookingRegistry) Append(entry domain.BookingEntry) (size int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur := *r.entries.Load()
	next := make([]domain.BookingEntry, len(cur), len(cur)+1)
	copy(next, cur)
	next = append(next, entry)

	r.replace(next)
	r.log.Debug("booking added", "name", entry.Name, "arrival", entry.ArrivalDate.String(), "departure", entry.DepartureDate.String(), "size", len(next))
	return len(next)
}

// DeleteBookingEntry removes every entry equal to entry and publishes the
// result. Deleting an absent entry leaves the sequence unchanged.
func (r *BookingRegistry) DeleteBookingEntry(entry domain.BookingEntry) {
	r.Remove(entry)
}

// Remove is DeleteBookingEntry reporting how many entries it removed and the
// size left behind. Both numbers are taken under the same lock as the write.
func (r *BookingRegistry) Remove(entry domain.BookingEntry) (removed, size int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur := *r.entries.Load()
	next := make([]domain.BookingEntry, 0, len(cur))
	for _, e := range cur {
		if e != entry {
			next = append(next, e)
		}
	}

	r.replace(next)
	removed = len(cur) - len(next)
	r.log.Debug("booking deleted", "name", entry.Name, "removed", removed, "size", len(next))
	return removed, len(next)
}

// Snapshot returns a copy of the current sequence in insertion order.
func (r *BookingRegistry) Snapshot() []domain.BookingEntry {
	return slices.Clone(*r.entries.Load())
}

// Len returns the number of entries currently held.
func (r *BookingRegistry) Len() int {
	return len(*r.entries.Load())
}

// Subscribe registers fn and immediately calls it with the current snapshot.
// fn is then called after every mutation, after all previously registered
// observers. The returned function removes the subscription; calling it more
// than once is harmless.
func (r *BookingRegistry) Subscribe(fn Observer) (unsubscribe func()) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	id := r.nextID
	r.subs = append(r.subs, subscription{id: id, fn: fn})
	fn(r.Snapshot())

	var once sync.Once
	return func() {
		once.Do(func() {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.dropSubscription(id)
		})
	}
}

// Watch returns a channel that yields the current snapshot and then every
// later one. The channel holds at most one pending value: a reader that falls
// behind skips straight to the latest snapshot. The channel is closed once
// ctx is done.
func (r *BookingRegistry) Watch(ctx context.Context) <-chan []domain.BookingEntry {
	ch := make(chan []domain.BookingEntry, 1)

	r.mu.Lock()
	r.nextID++
	id := r.nextID
	r.subs = append(r.subs, subscription{id: id, fn: func(s []domain.BookingEntry) { offerLatest(ch, s) }})
	offerLatest(ch, r.Snapshot())
	r.mu.Unlock()

	go func() {
		<-ctx.Done()
		r.mu.Lock()
		defer r.mu.Unlock()
		// Sends only happen under mu, so nothing can write to ch after this.
		r.dropSubscription(id)
		close(ch)
	}()

	return ch
}

// replace stores next as the current sequence and notifies observers in
// registration order. Callers must hold mu.
func (r *BookingRegistry) replace(next []domain.BookingEntry) {
	r.entries.Store(&next)
	for _, s := range r.subs {
		s.fn(slices.Clone(next))
	}
}

// dropSubscription drops the subscription with the given id. Callers must hold mu.
func (r *BookingRegistry) dropSubscription(id uint64) {
	r.subs = slices.DeleteFunc(r.subs, func(s subscription) bool { return s.id == id })
}

// offerLatest puts v on ch, discarding a stale pending value if ch is full.
// Only one goroutine (the writer holding mu) sends, so the loop settles after
// at most one drain.
func offerLatest(ch chan []domain.BookingEntry, v []domain.BookingEntry) {
	for {
		select {
		case ch <- v:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}
