package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/guestbook/internal/domain"
	"github.com/pkordes/guestbook/internal/handler"
)

// mockBookingServicer is a test double for handler.BookingServicer.
// Set only the method fields your test needs.
type mockBookingServicer struct {
	add     func(ctx context.Context, req domain.BookingRequest) (domain.BookingEntry, error)
	delete  func(ctx context.Context, entry domain.BookingEntry) int
	list    func(ctx context.Context) []domain.BookingEntry
	history func(ctx context.Context, p domain.PaginationParams) ([]domain.BookingEvent, int64, error)
	export  func(ctx context.Context) []domain.ExportRow
}

func (m *mockBookingServicer) Add(ctx context.Context, req domain.BookingRequest) (domain.BookingEntry, error) {
	return m.add(ctx, req)
}
func (m *mockBookingServicer) Delete(ctx context.Context, entry domain.BookingEntry) int {
	return m.delete(ctx, entry)
}
func (m *mockBookingServicer) List(ctx context.Context) []domain.BookingEntry {
	return m.list(ctx)
}
func (m *mockBookingServicer) History(ctx context.Context, p domain.PaginationParams) ([]domain.BookingEvent, int64, error) {
	return m.history(ctx, p)
}
func (m *mockBookingServicer) Export(ctx context.Context) []domain.ExportRow {
	return m.export(ctx)
}

// compile-time check: mockBookingServicer must satisfy handler.BookingServicer.
var _ handler.BookingServicer = (*mockBookingServicer)(nil)

// ---- helpers ---------------------------------------------------------------

// newHTTPHandler wires a Server with the given mock into the chi router.
// This mirrors how main.go wires it in production.
func newHTTPHandler(svc handler.BookingServicer) http.Handler {
	return handler.NewServer(svc, nil, nil).Routes()
}

func aliceEntry() domain.BookingEntry {
	return domain.NewBookingEntry(domain.NewDate(2024, time.June, 1), domain.NewDate(2024, time.June, 5), "Alice")
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) handler.ErrorResponse {
	t.Helper()
	var resp handler.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

// ---- GET /bookings ---------------------------------------------------------

func TestListBookings_200(t *testing.T) {
	svc := &mockBookingServicer{
		list: func(context.Context) []domain.BookingEntry {
			return []domain.BookingEntry{aliceEntry()}
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/bookings", nil)
	rec := httptest.NewRecorder()
	newHTTPHandler(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp handler.BookingList
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "Alice", resp.Data[0].Name)
	assert.Equal(t, "2024-06-01", resp.Data[0].ArrivalDate.Format("2006-01-02"))
	assert.Equal(t, "01.06.2024 - 05.06.2024", resp.Data[0].DateRange)
}

func TestListBookings_Empty_ReturnsArray(t *testing.T) {
	svc := &mockBookingServicer{
		list: func(context.Context) []domain.BookingEntry { return []domain.BookingEntry{} },
	}

	req := httptest.NewRequest(http.MethodGet, "/bookings", nil)
	rec := httptest.NewRecorder()
	newHTTPHandler(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":[]}`, rec.Body.String())
}

// ---- POST /bookings --------------------------------------------------------

func TestCreateBooking_201(t *testing.T) {
	var got domain.BookingRequest
	svc := &mockBookingServicer{
		add: func(_ context.Context, req domain.BookingRequest) (domain.BookingEntry, error) {
			got = req
			return aliceEntry(), nil
		},
	}

	body := jsonBody(t, map[string]any{
		"name":           "Alice",
		"arrival_date":   "2024-06-01",
		"departure_date": "2024-06-05",
	})
	req := httptest.NewRequest(http.MethodPost, "/bookings", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	newHTTPHandler(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Alice", got.Name)
	require.NotNil(t, got.ArrivalDate)
	require.NotNil(t, got.DepartureDate)
	assert.Equal(t, domain.NewDate(2024, time.June, 1), *got.ArrivalDate)
	assert.Equal(t, domain.NewDate(2024, time.June, 5), *got.DepartureDate)

	var resp handler.Booking
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "Alice", resp.Name)
	assert.Equal(t, "2024-06-05", resp.DepartureDate.Format("2006-01-02"))
}

func TestCreateBooking_MissingDates_PassedAsNil(t *testing.T) {
	var got domain.BookingRequest
	svc := &mockBookingServicer{
		add: func(_ context.Context, req domain.BookingRequest) (domain.BookingEntry, error) {
			got = req
			return domain.BookingEntry{}, fmt.Errorf("%w: please select a date range", domain.ErrValidation)
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/bookings", jsonBody(t, map[string]any{"name": "Alice"}))
	rec := httptest.NewRecorder()
	newHTTPHandler(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Nil(t, got.ArrivalDate)
	assert.Nil(t, got.DepartureDate)

	resp := decodeError(t, rec)
	assert.Equal(t, "validation_error", resp.Error.Code)
	assert.Equal(t, "please select a date range", resp.Error.Message)
}

func TestCreateBooking_400_MalformedJSON(t *testing.T) {
	svc := &mockBookingServicer{}

	req := httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(`{"name":`))
	rec := httptest.NewRecorder()
	newHTTPHandler(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "bad_request", decodeError(t, rec).Error.Code)
}

func TestCreateBooking_400_BadDate(t *testing.T) {
	svc := &mockBookingServicer{}

	body := jsonBody(t, map[string]any{
		"name":           "Alice",
		"arrival_date":   "01.06.2024",
		"departure_date": "2024-06-05",
	})
	req := httptest.NewRequest(http.MethodPost, "/bookings", body)
	rec := httptest.NewRecorder()
	newHTTPHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateBooking_400_UnknownField(t *testing.T) {
	svc := &mockBookingServicer{}

	req := httptest.NewRequest(http.MethodPost, "/bookings", jsonBody(t, map[string]any{"guest": "Alice"}))
	rec := httptest.NewRecorder()
	newHTTPHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateBooking_400_EmptyBody(t *testing.T) {
	svc := &mockBookingServicer{}

	req := httptest.NewRequest(http.MethodPost, "/bookings", nil)
	rec := httptest.NewRecorder()
	newHTTPHandler(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "request body is required", decodeError(t, rec).Error.Message)
}

func TestCreateBooking_413_BodyTooLarge(t *testing.T) {
	svc := &mockBookingServicer{}

	body := `{"name":"` + strings.Repeat("x", 200) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(body))
	rec := httptest.NewRecorder()
	req.Body = http.MaxBytesReader(rec, req.Body, 50)
	newHTTPHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestCreateBooking_500_UnexpectedError(t *testing.T) {
	svc := &mockBookingServicer{
		add: func(context.Context, domain.BookingRequest) (domain.BookingEntry, error) {
			return domain.BookingEntry{}, fmt.Errorf("something broke")
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/bookings", jsonBody(t, map[string]any{"name": "Alice"}))
	rec := httptest.NewRecorder()
	newHTTPHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

// ---- DELETE /bookings ------------------------------------------------------

func TestDeleteBooking_200(t *testing.T) {
	var got domain.BookingEntry
	svc := &mockBookingServicer{
		delete: func(_ context.Context, entry domain.BookingEntry) int {
			got = entry
			return 2
		},
	}

	body := jsonBody(t, map[string]any{
		"name":           "Alice",
		"arrival_date":   "2024-06-01",
		"departure_date": "2024-06-05",
	})
	req := httptest.NewRequest(http.MethodDelete, "/bookings", body)
	rec := httptest.NewRecorder()
	newHTTPHandler(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, aliceEntry(), got)
	assert.JSONEq(t, `{"removed":2}`, rec.Body.String())
}

func TestDeleteBooking_Absent_200WithZero(t *testing.T) {
	svc := &mockBookingServicer{
		delete: func(context.Context, domain.BookingEntry) int { return 0 },
	}

	body := jsonBody(t, map[string]any{
		"name":           "Nobody",
		"arrival_date":   "2024-06-01",
		"departure_date": "2024-06-05",
	})
	req := httptest.NewRequest(http.MethodDelete, "/bookings", body)
	rec := httptest.NewRecorder()
	newHTTPHandler(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"removed":0}`, rec.Body.String())
}

func TestDeleteBooking_400_MissingDates(t *testing.T) {
	svc := &mockBookingServicer{}

	req := httptest.NewRequest(http.MethodDelete, "/bookings", jsonBody(t, map[string]any{"name": "Alice"}))
	rec := httptest.NewRecorder()
	newHTTPHandler(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeError(t, rec).Error.Message, "arrival_date and departure_date are required")
}
