// Package repo contains all database access logic for the guest bookings service.
// The only table is the booking journal, an append-only audit trail of
// registry mutations. No business logic lives here, only SQL and type mapping.
package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/guestbook/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// JournalRepo defines the persistence operations for booking events.
// The service layer depends on this interface, not the concrete Postgres
// implementation, which allows the service to be unit-tested with a mock.
type JournalRepo interface {
	// Append inserts one event. A zero ID is replaced with a fresh UUID and a
	// zero OccurredAt with the current time.
	Append(ctx context.Context, ev domain.BookingEvent) (domain.BookingEvent, error)

	// ListPaged returns one page of events, newest first, and the total count.
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.BookingEvent, int64, error)
}

// pgJournalRepo is the Postgres implementation of JournalRepo.
type pgJournalRepo struct {
	db db
}

// NewJournalRepo constructs a JournalRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewJournalRepo(db db) JournalRepo {
	return &pgJournalRepo{db: db}
}

// Append inserts an event row and returns the persisted record.
func (r *pgJournalRepo) Append(ctx context.Context, ev domain.BookingEvent) (domain.BookingEvent, error) {
	const q = `
		INSERT INTO booking_events (id, kind, name, arrival_date, departure_date, removed, size, occurred_at)
		VALUES (@id, @kind, @name, @arrival_date, @departure_date, @removed, @size, @occurred_at)
		RETURNING id, kind, name, arrival_date, departure_date, removed, size, occurred_at`

	if ev.ID == uuid.Nil {
		ev.ID = uuid.New()
	}
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now().UTC()
	}

	args := pgx.NamedArgs{
		"id":             ev.ID,
		"kind":           string(ev.Kind),
		"name":           ev.Entry.Name,
		"arrival_date":   ev.Entry.ArrivalDate.Time(),
		"departure_date": ev.Entry.DepartureDate.Time(),
		"removed":        ev.Removed,
		"size":           ev.Size,
		"occurred_at":    ev.OccurredAt,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanEvent(row)
	if err != nil {
		return domain.BookingEvent{}, fmt.Errorf("repo.JournalRepo.Append: %w", err)
	}
	return result, nil
}

// ListPaged returns one page of events ordered by occurred_at descending.
// The total is computed with a window function so a single round trip serves
// both the page and the count.
func (r *pgJournalRepo) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.BookingEvent, int64, error) {
	const q = `
		SELECT id, kind, name, arrival_date, departure_date, removed, size, occurred_at,
		       COUNT(*) OVER () AS total
		FROM booking_events
		ORDER BY occurred_at DESC, id
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"limit": p.Limit, "offset": p.Offset()})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.JournalRepo.ListPaged: %w", err)
	}
	defer rows.Close()

	var (
		events []domain.BookingEvent
		total  int64
	)
	for rows.Next() {
		ev, err := scanEvent(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("repo.JournalRepo.ListPaged: scan: %w", err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.JournalRepo.ListPaged: rows: %w", err)
	}

	return events, total, nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing scanEvent to be
// reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanEvent maps a single database row into a domain.BookingEvent.
// extra receives any columns selected after occurred_at.
func scanEvent(s scanner, extra ...any) (domain.BookingEvent, error) {
	var (
		ev        domain.BookingEvent
		id        pgtype.UUID
		kind      string
		arrival   pgtype.Date
		departure pgtype.Date
	)

	dest := []any{&id, &kind, &ev.Entry.Name, &arrival, &departure, &ev.Removed, &ev.Size, &ev.OccurredAt}
	if err := s.Scan(append(dest, extra...)...); err != nil {
		return domain.BookingEvent{}, err
	}

	ev.ID = uuid.UUID(id.Bytes)
	ev.Kind = domain.EventKind(kind)
	ev.Entry.ArrivalDate = domain.DateOf(arrival.Time)
	ev.Entry.DepartureDate = domain.DateOf(departure.Time)
	return ev, nil
}
