package service

import (
	"context"

	"github.com/pkordes/guestbook/internal/domain"
)

// Export returns one ExportRow per booking, in insertion order.
func (s *BookingService) Export(ctx context.Context) []domain.ExportRow {
	entries := s.List(ctx)
	rows := make([]domain.ExportRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, domain.ExportRow{
			Name:          e.Name,
			ArrivalDate:   e.ArrivalDate.String(),
			DepartureDate: e.DepartureDate.String(),
			DateRange:     e.DateRangeLabel(),
		})
	}
	return rows
}
