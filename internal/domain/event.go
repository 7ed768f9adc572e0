package domain

import (
	"time"

	"github.com/google/uuid"
)

// EventKind names the registry mutation a BookingEvent records.
type EventKind string

const (
	EventAdded   EventKind = "added"
	EventDeleted EventKind = "deleted"
)

// BookingEvent is one entry in the mutation journal.
// The journal is an audit trail only; the registry is never rebuilt from it.
type BookingEvent struct {
	ID         uuid.UUID
	Kind       EventKind
	Entry      BookingEntry
	Removed    int // number of entries removed; always 0 for EventAdded
	Size       int // registry length after the mutation
	OccurredAt time.Time
}
