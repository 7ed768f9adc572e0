package handler

import (
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status string `json:"status"`
}

// Booking is the wire form of a domain.BookingEntry.
type Booking struct {
	Name          string             `json:"name"`
	ArrivalDate   openapi_types.Date `json:"arrival_date"`
	DepartureDate openapi_types.Date `json:"departure_date"`
	DateRange     string             `json:"date_range"` // "dd.MM.yyyy - dd.MM.yyyy"
}

// BookingList is the body of GET /bookings.
type BookingList struct {
	Data []Booking `json:"data"`
}

// BookingInput is the body of POST /bookings and DELETE /bookings.
// Dates are optional on the wire so a half-filled form can be reported
// with the right message instead of a decode error.
type BookingInput struct {
	Name          string              `json:"name"`
	ArrivalDate   *openapi_types.Date `json:"arrival_date,omitempty"`
	DepartureDate *openapi_types.Date `json:"departure_date,omitempty"`
}

// DeleteResult is the body of DELETE /bookings.
type DeleteResult struct {
	Removed int `json:"removed"`
}

// BookingEvent is the wire form of a journal record.
type BookingEvent struct {
	Id         uuid.UUID `json:"id"`
	Kind       string    `json:"kind"`
	Booking    Booking   `json:"booking"`
	Removed    int       `json:"removed"`
	Size       int       `json:"size"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Pagination describes the page returned by a paged list endpoint.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// HistoryPage is the body of GET /bookings/history.
type HistoryPage struct {
	Data       []BookingEvent `json:"data"`
	Pagination Pagination     `json:"pagination"`
}

// ExportRow is one row of GET /bookings/export in JSON form.
type ExportRow struct {
	Name          string `json:"name"`
	ArrivalDate   string `json:"arrival_date"`
	DepartureDate string `json:"departure_date"`
	DateRange     string `json:"date_range"`
}

// ErrorDetail carries a machine-readable code and a human-readable message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse is the body of every 4xx response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}
