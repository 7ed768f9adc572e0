package domain

// ExportRow is a single row in the bookings export.
// Dates are pre-formatted so CSV and JSON writers need no date logic.
type ExportRow struct {
	Name          string
	ArrivalDate   string // "2006-01-02"
	DepartureDate string // "2006-01-02"
	DateRange     string // "dd.MM.yyyy - dd.MM.yyyy"
}
