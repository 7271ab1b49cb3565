package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/futsala/futsala-backend/internal/dto"
	"github.com/futsala/futsala-backend/internal/middleware"
	"github.com/futsala/futsala-backend/internal/models"
	"github.com/futsala/futsala-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

// --- Mock BookingService ---

type mockBookingService struct {
	availabilityFn func(ctx context.Context, venueID uint, date string) ([]dto.CourtAvailability, int, error)
	createFn       func(ctx context.Context, userID uint, req dto.CreateBookingRequest) (*models.Booking, error)
	rescheduleFn   func(ctx context.Context, userID, bookingID uint, req dto.RescheduleBookingRequest) (*models.Booking, error)
	cancelFn       func(ctx context.Context, userID, bookingID uint) (*models.Booking, error)
	getFn          func(ctx context.Context, userID, bookingID uint) (*models.Booking, error)
	listFn         func(ctx context.Context, userID uint) ([]models.Booking, error)
}

func (m *mockBookingService) CheckAvailability(ctx context.Context, venueID uint, date string) ([]dto.CourtAvailability, int, error) {
	return m.availabilityFn(ctx, venueID, date)
}
func (m *mockBookingService) CreateBooking(ctx context.Context, userID uint, req dto.CreateBookingRequest) (*models.Booking, error) {
	return m.createFn(ctx, userID, req)
}
func (m *mockBookingService) RescheduleBooking(ctx context.Context, userID, bookingID uint, req dto.RescheduleBookingRequest) (*models.Booking, error) {
	return m.rescheduleFn(ctx, userID, bookingID, req)
}
func (m *mockBookingService) CancelBooking(ctx context.Context, userID, bookingID uint) (*models.Booking, error) {
	return m.cancelFn(ctx, userID, bookingID)
}
func (m *mockBookingService) GetBooking(ctx context.Context, userID, bookingID uint) (*models.Booking, error) {
	return m.getFn(ctx, userID, bookingID)
}
func (m *mockBookingService) ListMyBookings(ctx context.Context, userID uint) ([]models.Booking, error) {
	return m.listFn(ctx, userID)
}

func authedContext(e *echo.Echo, req *http.Request, rec *httptest.ResponseRecorder, userID uint) echo.Context {
	c := e.NewContext(req, rec)
	c.Set(middleware.ContextUserID, userID)
	return c
}

func sampleBooking() *models.Booking {
	return &models.Booking{
		ID:          1,
		Reference:   "7a8b9c0d-0000-0000-0000-000000000001",
		UserID:      7,
		CourtID:     3,
		BookingDate: time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC),
		StartTime:   "08:00",
		EndTime:     "10:00",
		StartMin:    8 * 60,
		EndMin:      10 * 60,
		TotalHours:  2,
		TotalPrice:  1000,
		Status:      models.StatusPending,
	}
}

// --- Tests ---

func TestCreateBooking_Handler_Success(t *testing.T) {
	svc := &mockBookingService{
		createFn: func(ctx context.Context, userID uint, req dto.CreateBookingRequest) (*models.Booking, error) {
			assert.Equal(t, uint(7), userID)
			assert.Equal(t, uint(3), req.CourtID)
			return sampleBooking(), nil
		},
	}

	e := echo.New()
	body := `{"courtId":3,"bookingDate":"2026-09-07","startTime":"08:00","endTime":"10:00"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, 7)

	h := NewBookingHandler(svc, nil)
	err := h.CreateBooking(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Success bool                `json:"success"`
		Message string              `json:"message"`
		Data    dto.BookingResponse `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, uint(1), resp.Data.ID)
	assert.Equal(t, "2026-09-07", resp.Data.BookingDate)
	assert.Equal(t, 1000.0, resp.Data.TotalPrice)
	assert.Equal(t, models.StatusPending, resp.Data.Status)
}

func TestCreateBooking_Handler_MissingFields(t *testing.T) {
	e := echo.New()
	body := `{"courtId":3,"bookingDate":"2026-09-07"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, 7)

	h := NewBookingHandler(nil, nil)
	err := h.CreateBooking(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestCreateBooking_Handler_NoIdentity(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := NewBookingHandler(nil, nil)
	err := h.CreateBooking(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestCreateBooking_Handler_Conflict(t *testing.T) {
	svc := &mockBookingService{
		createFn: func(ctx context.Context, userID uint, req dto.CreateBookingRequest) (*models.Booking, error) {
			return nil, service.ErrSlotConflict
		},
	}

	e := echo.New()
	body := `{"courtId":3,"bookingDate":"2026-09-07","startTime":"09:00","endTime":"11:00"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, 7)

	h := NewBookingHandler(svc, nil)
	err := h.CreateBooking(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusConflict, he.Code)
}

func TestCreateBooking_Handler_InvalidTimeRange(t *testing.T) {
	svc := &mockBookingService{
		createFn: func(ctx context.Context, userID uint, req dto.CreateBookingRequest) (*models.Booking, error) {
			return nil, service.ErrInvalidTimeRange
		},
	}

	e := echo.New()
	body := `{"courtId":3,"bookingDate":"2026-09-07","startTime":"10:00","endTime":"09:00"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, 7)

	h := NewBookingHandler(svc, nil)
	err := h.CreateBooking(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestCreateBooking_Handler_CourtUnavailable(t *testing.T) {
	svc := &mockBookingService{
		createFn: func(ctx context.Context, userID uint, req dto.CreateBookingRequest) (*models.Booking, error) {
			return nil, service.ErrCourtUnavailable
		},
	}

	e := echo.New()
	body := `{"courtId":99,"bookingDate":"2026-09-07","startTime":"08:00","endTime":"09:00"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, 7)

	h := NewBookingHandler(svc, nil)
	err := h.CreateBooking(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Code)
}

func TestCancelBooking_Handler_Success(t *testing.T) {
	svc := &mockBookingService{
		cancelFn: func(ctx context.Context, userID, bookingID uint) (*models.Booking, error) {
			b := sampleBooking()
			b.Status = models.StatusCancelled
			return b, nil
		},
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodPut, "/api/v1/bookings/cancel/1", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, 7)
	c.SetParamNames("id")
	c.SetParamValues("1")

	h := NewBookingHandler(svc, nil)
	err := h.CancelBooking(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success bool                `json:"success"`
		Data    dto.BookingResponse `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, models.StatusCancelled, resp.Data.Status)
}

func TestCancelBooking_Handler_AlreadyCancelled(t *testing.T) {
	svc := &mockBookingService{
		cancelFn: func(ctx context.Context, userID, bookingID uint) (*models.Booking, error) {
			return nil, service.ErrInvalidStatusTransition
		},
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodPut, "/api/v1/bookings/cancel/1", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, 7)
	c.SetParamNames("id")
	c.SetParamValues("1")

	h := NewBookingHandler(svc, nil)
	err := h.CancelBooking(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestCancelBooking_Handler_NotOwner(t *testing.T) {
	svc := &mockBookingService{
		cancelFn: func(ctx context.Context, userID, bookingID uint) (*models.Booking, error) {
			return nil, service.ErrForbidden
		},
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodPut, "/api/v1/bookings/cancel/1", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, 99)
	c.SetParamNames("id")
	c.SetParamValues("1")

	h := NewBookingHandler(svc, nil)
	err := h.CancelBooking(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusForbidden, he.Code)
}

func TestRescheduleBooking_Handler_PartialBody(t *testing.T) {
	var captured dto.RescheduleBookingRequest
	svc := &mockBookingService{
		rescheduleFn: func(ctx context.Context, userID, bookingID uint, req dto.RescheduleBookingRequest) (*models.Booking, error) {
			captured = req
			b := sampleBooking()
			b.StartTime = "14:00"
			b.EndTime = "16:00"
			return b, nil
		},
	}

	e := echo.New()
	body := `{"startTime":"14:00","endTime":"16:00"}`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/bookings/reschedule/1", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, 7)
	c.SetParamNames("id")
	c.SetParamValues("1")

	h := NewBookingHandler(svc, nil)
	err := h.RescheduleBooking(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, captured.BookingDate, "absent date must stay nil")
	if assert.NotNil(t, captured.StartTime) {
		assert.Equal(t, "14:00", *captured.StartTime)
	}
}

func TestRescheduleBooking_Handler_NotFound(t *testing.T) {
	svc := &mockBookingService{
		rescheduleFn: func(ctx context.Context, userID, bookingID uint, req dto.RescheduleBookingRequest) (*models.Booking, error) {
			return nil, service.ErrBookingNotFound
		},
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodPut, "/api/v1/bookings/reschedule/42", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, 7)
	c.SetParamNames("id")
	c.SetParamValues("42")

	h := NewBookingHandler(svc, nil)
	err := h.RescheduleBooking(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Code)
}

func TestCheckAvailability_Handler_Success(t *testing.T) {
	svc := &mockBookingService{
		availabilityFn: func(ctx context.Context, venueID uint, date string) ([]dto.CourtAvailability, int, error) {
			assert.Equal(t, uint(5), venueID)
			return []dto.CourtAvailability{
				{
					CourtID:      1,
					CourtName:    "Court A",
					PricePerHour: 500,
					AvailableSlots: []dto.SlotWindow{
						{StartTime: "08:00", EndTime: "09:00"},
					},
				},
			}, 1, nil
		},
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/availability/5?date=2026-09-07", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("futsalId")
	c.SetParamValues("5")

	h := NewBookingHandler(svc, nil)
	err := h.CheckAvailability(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp dto.AvailabilityResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "2026-09-07", resp.Date)
	assert.Equal(t, 1, resp.DayOfWeek)
	assert.Len(t, resp.Data, 1)
}

func TestCheckAvailability_Handler_MissingDate(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/availability/5", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("futsalId")
	c.SetParamValues("5")

	h := NewBookingHandler(nil, nil)
	err := h.CheckAvailability(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestCheckAvailability_Handler_BadDate(t *testing.T) {
	svc := &mockBookingService{
		availabilityFn: func(ctx context.Context, venueID uint, date string) ([]dto.CourtAvailability, int, error) {
			return nil, 0, service.ErrInvalidDate
		},
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/availability/5?date=notadate", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("futsalId")
	c.SetParamValues("5")

	h := NewBookingHandler(svc, nil)
	err := h.CheckAvailability(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestListMyBookings_Handler(t *testing.T) {
	svc := &mockBookingService{
		listFn: func(ctx context.Context, userID uint) ([]models.Booking, error) {
			return []models.Booking{*sampleBooking()}, nil
		},
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/my", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, 7)

	h := NewBookingHandler(svc, nil)
	err := h.ListMyBookings(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success bool                  `json:"success"`
		Count   int                   `json:"count"`
		Data    []dto.BookingResponse `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)
	assert.Len(t, resp.Data, 1)
}
