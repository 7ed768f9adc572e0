package handler

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strconv"

	"github.com/pkordes/guestbook/internal/domain"
)

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{"name", "arrival_date", "departure_date", "date_range"}

// GetExport handles GET /bookings/export.
// It returns every current booking as a flat table.
// Use ?format=csv to receive CSV; default is JSON.
func (s *Server) GetExport(w http.ResponseWriter, r *http.Request) {
	rows := s.bookings.Export(r.Context())

	switch format := r.URL.Query().Get("format"); format {
	case "csv":
		writeCSV(w, rows)
	case "", "json":
		writeJSON(w, http.StatusOK, exportToResponse(rows))
	default:
		writeJSON(w, http.StatusBadRequest, requestBody("unsupported format: "+strconv.Quote(format)))
	}
}

// exportToResponse maps domain rows to the JSON row type.
func exportToResponse(rows []domain.ExportRow) []ExportRow {
	out := make([]ExportRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, ExportRow(r))
	}
	return out
}

// writeCSV encodes rows as CSV with a header line.
func writeCSV(w http.ResponseWriter, rows []domain.ExportRow) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	//nolint:errcheck // bytes.Buffer.Write never returns an error.
	cw.Write(csvHeaders)
	for _, r := range rows {
		//nolint:errcheck
		cw.Write([]string{r.Name, r.ArrivalDate, r.DepartureDate, r.DateRange})
	}
	cw.Flush()

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="bookings.csv"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
