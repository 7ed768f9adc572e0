package domain

// BookingEntry is a single guest booking.
// It is a plain value: two entries are equal when all three fields are equal,
// and == is the equality the registry uses for deletion.
//
// No ordering is enforced between ArrivalDate and DepartureDate.
type BookingEntry struct {
	ArrivalDate   Date
	DepartureDate Date
	Name          string
}

// NewBookingEntry builds an entry from its three parts without validating them.
func NewBookingEntry(arrival, departure Date, name string) BookingEntry {
	return BookingEntry{ArrivalDate: arrival, DepartureDate: departure, Name: name}
}

// DateRangeLabel renders the stay as "dd.MM.yyyy - dd.MM.yyyy".
func (e BookingEntry) DateRangeLabel() string {
	return e.ArrivalDate.Format() + " - " + e.DepartureDate.Format()
}

// BookingRequest is the raw input collected by the booking form.
// A nil date means the user has not picked a range yet.
type BookingRequest struct {
	Name          string
	ArrivalDate   *Date
	DepartureDate *Date
}

// HasDateRange reports whether both ends of the range have been selected.
func (r BookingRequest) HasDateRange() bool {
	return r.ArrivalDate != nil && r.DepartureDate != nil
}
