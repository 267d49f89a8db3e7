package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/mkrogh/hotel-booking-service/internal/dto"
	"github.com/mkrogh/hotel-booking-service/internal/models"
	"github.com/mkrogh/hotel-booking-service/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Mock BookingService ---

type mockBookingService struct {
	createFn   func(ctx context.Context, req models.BookingRequest) (bool, error)
	findFn     func(ctx context.Context, start, end time.Time) (int, bool, error)
	occupiedFn func(ctx context.Context, start, end time.Time) ([]time.Time, error)
}

func (m *mockBookingService) CreateBooking(ctx context.Context, req models.BookingRequest) (bool, error) {
	return m.createFn(ctx, req)
}
func (m *mockBookingService) FindAvailableRoom(ctx context.Context, start, end time.Time) (int, bool, error) {
	return m.findFn(ctx, start, end)
}
func (m *mockBookingService) GetFullyOccupiedDates(ctx context.Context, start, end time.Time) ([]time.Time, error) {
	return m.occupiedFn(ctx, start, end)
}

// --- Mock Publisher ---

type mockPublisher struct {
	published []string
}

func (m *mockPublisher) Publish(routingKey string, payload any) error {
	m.published = append(m.published, routingKey)
	return nil
}

func newContext(e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// --- CreateBooking ---

func TestCreateBooking_Handler_Success(t *testing.T) {
	svc := &mockBookingService{
		createFn: func(ctx context.Context, req models.BookingRequest) (bool, error) {
			return true, nil
		},
	}
	pub := &mockPublisher{}

	e := echo.New()
	body := `{"customer_id":1,"start_date":"2026-10-01","end_date":"2026-10-05"}`
	c, rec := newContext(e, http.MethodPost, "/api/v1/bookings", body)

	h := NewBookingHandler(svc, nil, pub)
	err := h.CreateBooking(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, []string{"booking.created"}, pub.published)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["created"])
}

func TestCreateBooking_Handler_NoRoomAvailable(t *testing.T) {
	svc := &mockBookingService{
		createFn: func(ctx context.Context, req models.BookingRequest) (bool, error) {
			return false, nil
		},
	}
	pub := &mockPublisher{}

	e := echo.New()
	body := `{"customer_id":1,"start_date":"2026-10-01","end_date":"2026-10-05"}`
	c, _ := newContext(e, http.MethodPost, "/api/v1/bookings", body)

	h := NewBookingHandler(svc, nil, pub)
	err := h.CreateBooking(c)

	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusConflict, he.Code)
	assert.Empty(t, pub.published)
}

func TestCreateBooking_Handler_StartDateNotInFuture(t *testing.T) {
	svc := &mockBookingService{
		createFn: func(ctx context.Context, req models.BookingRequest) (bool, error) {
			return false, service.ErrStartDateNotInFuture
		},
	}

	e := echo.New()
	body := `{"customer_id":1,"start_date":"2020-01-01","end_date":"2020-01-05"}`
	c, _ := newContext(e, http.MethodPost, "/api/v1/bookings", body)

	h := NewBookingHandler(svc, nil, nil)
	err := h.CreateBooking(c)

	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestCreateBooking_Handler_UnknownCustomer(t *testing.T) {
	svc := &mockBookingService{
		createFn: func(ctx context.Context, req models.BookingRequest) (bool, error) {
			return false, service.ErrCustomerNotFound
		},
	}

	e := echo.New()
	body := `{"customer_id":99,"start_date":"2026-10-01","end_date":"2026-10-05"}`
	c, _ := newContext(e, http.MethodPost, "/api/v1/bookings", body)

	h := NewBookingHandler(svc, nil, nil)
	err := h.CreateBooking(c)

	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusNotFound, he.Code)
}

func TestCreateBooking_Handler_BadDate(t *testing.T) {
	e := echo.New()
	body := `{"customer_id":1,"start_date":"01/10/2026","end_date":"2026-10-05"}`
	c, _ := newContext(e, http.MethodPost, "/api/v1/bookings", body)

	h := NewBookingHandler(&mockBookingService{}, nil, nil)
	err := h.CreateBooking(c)

	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestCreateBooking_Handler_MissingCustomerID(t *testing.T) {
	e := echo.New()
	body := `{"start_date":"2026-10-01","end_date":"2026-10-05"}`
	c, _ := newContext(e, http.MethodPost, "/api/v1/bookings", body)

	h := NewBookingHandler(&mockBookingService{}, nil, nil)
	err := h.CreateBooking(c)

	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

// --- GetAvailableRoom ---

func TestGetAvailableRoom_Handler_Found(t *testing.T) {
	svc := &mockBookingService{
		findFn: func(ctx context.Context, start, end time.Time) (int, bool, error) {
			return 2, true, nil
		},
	}

	e := echo.New()
	c, rec := newContext(e, http.MethodGet, "/api/v1/rooms/available?start=2026-10-01&end=2026-10-05", "")

	h := NewBookingHandler(svc, nil, nil)
	err := h.GetAvailableRoom(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp dto.AvailableRoomResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Available)
	require.NotNil(t, resp.RoomID)
	assert.Equal(t, 2, *resp.RoomID)
}

func TestGetAvailableRoom_Handler_NotFound(t *testing.T) {
	svc := &mockBookingService{
		findFn: func(ctx context.Context, start, end time.Time) (int, bool, error) {
			return 0, false, nil
		},
	}

	e := echo.New()
	c, rec := newContext(e, http.MethodGet, "/api/v1/rooms/available?start=2026-10-01&end=2026-10-05", "")

	h := NewBookingHandler(svc, nil, nil)
	err := h.GetAvailableRoom(c)

	assert.NoError(t, err, "no free room is a normal response, not an HTTP error")
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp dto.AvailableRoomResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Available)
	assert.Nil(t, resp.RoomID)
}

func TestGetAvailableRoom_Handler_MissingParams(t *testing.T) {
	e := echo.New()
	c, _ := newContext(e, http.MethodGet, "/api/v1/rooms/available", "")

	h := NewBookingHandler(&mockBookingService{}, nil, nil)
	err := h.GetAvailableRoom(c)

	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

// --- GetFullyOccupiedDates ---

func TestGetFullyOccupiedDates_Handler_Success(t *testing.T) {
	first := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	svc := &mockBookingService{
		occupiedFn: func(ctx context.Context, start, end time.Time) ([]time.Time, error) {
			return []time.Time{first, first.AddDate(0, 0, 1)}, nil
		},
	}

	e := echo.New()
	c, rec := newContext(e, http.MethodGet, "/api/v1/dates/fully-occupied?start=2026-10-01&end=2026-10-05", "")

	h := NewBookingHandler(svc, nil, nil)
	err := h.GetFullyOccupiedDates(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp dto.FullyOccupiedDatesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []string{"2026-10-01", "2026-10-02"}, resp.Dates)
}

func TestGetFullyOccupiedDates_Handler_Empty(t *testing.T) {
	svc := &mockBookingService{
		occupiedFn: func(ctx context.Context, start, end time.Time) ([]time.Time, error) {
			return []time.Time{}, nil
		},
	}

	e := echo.New()
	c, rec := newContext(e, http.MethodGet, "/api/v1/dates/fully-occupied?start=2026-10-01&end=2026-10-05", "")

	h := NewBookingHandler(svc, nil, nil)
	err := h.GetFullyOccupiedDates(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"dates":[]}`, rec.Body.String())
}

func TestGetFullyOccupiedDates_Handler_ReversedRange(t *testing.T) {
	svc := &mockBookingService{
		occupiedFn: func(ctx context.Context, start, end time.Time) ([]time.Time, error) {
			return nil, service.ErrInvalidDateRange
		},
	}

	e := echo.New()
	c, _ := newContext(e, http.MethodGet, "/api/v1/dates/fully-occupied?start=2026-10-05&end=2026-10-01", "")

	h := NewBookingHandler(svc, nil, nil)
	err := h.GetFullyOccupiedDates(c)

	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

// --- ListBookings / GetBooking ---

type stubBookingRepo struct {
	bookings []models.Booking
}

func (s *stubBookingRepo) FindAll(ctx context.Context) ([]models.Booking, error) {
	return s.bookings, nil
}
func (s *stubBookingRepo) FindByID(ctx context.Context, id int) (*models.Booking, error) {
	for i := range s.bookings {
		if s.bookings[i].ID == id {
			return &s.bookings[i], nil
		}
	}
	return nil, fmt.Errorf("booking %d not found", id)
}
func (s *stubBookingRepo) Create(ctx context.Context, b *models.Booking) error { return nil }
func (s *stubBookingRepo) Update(ctx context.Context, b *models.Booking) error { return nil }
func (s *stubBookingRepo) Delete(ctx context.Context, id int) error            { return nil }

func TestListBookings_Handler(t *testing.T) {
	repo := &stubBookingRepo{bookings: []models.Booking{
		{ID: 1, RoomID: 1, CustomerID: 1, StartDate: time.Now(), EndDate: time.Now(), IsActive: true},
		{ID: 2, RoomID: 2, CustomerID: 2, StartDate: time.Now(), EndDate: time.Now(), IsActive: true},
	}}

	e := echo.New()
	c, rec := newContext(e, http.MethodGet, "/api/v1/bookings", "")

	h := NewBookingHandler(&mockBookingService{}, repo, nil)
	err := h.ListBookings(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp []dto.BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp, 2)
}

func TestGetBooking_Handler_NotFound(t *testing.T) {
	e := echo.New()
	c, _ := newContext(e, http.MethodGet, "/api/v1/bookings/9", "")
	c.SetParamNames("id")
	c.SetParamValues("9")

	h := NewBookingHandler(&mockBookingService{}, &stubBookingRepo{}, nil)
	err := h.GetBooking(c)

	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusNotFound, he.Code)
}
