package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/futsala/futsala-backend/internal/dto"
	"github.com/futsala/futsala-backend/internal/middleware"
	"github.com/futsala/futsala-backend/internal/service"
	"github.com/futsala/futsala-backend/pkg/token"
	"github.com/labstack/echo/v4"
)

type BookingHandler struct {
	svc    service.BookingService
	tokens *token.Manager
}

func NewBookingHandler(svc service.BookingService, tokens *token.Manager) *BookingHandler {
	return &BookingHandler{svc: svc, tokens: tokens}
}

func (h *BookingHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/availability/:futsalId", h.CheckAvailability)

	auth := middleware.JWTAuth(h.tokens)
	g.POST("", h.CreateBooking, auth)
	g.GET("/my", h.ListMyBookings, auth)
	g.GET("/:id", h.GetBooking, auth)
	g.PUT("/cancel/:id", h.CancelBooking, auth)
	g.PUT("/reschedule/:id", h.RescheduleBooking, auth)
}

func (h *BookingHandler) CheckAvailability(c echo.Context) error {
	venueID, err := strconv.ParseUint(c.Param("futsalId"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid venue id")
	}
	date := c.QueryParam("date")
	if date == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "date parameter is required")
	}

	availability, dayOfWeek, err := h.svc.CheckAvailability(c.Request().Context(), uint(venueID), date)
	if err != nil {
		if errors.Is(err, service.ErrInvalidDate) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to check availability")
	}

	return c.JSON(http.StatusOK, dto.AvailabilityResponse{
		Success:   true,
		Date:      date,
		DayOfWeek: dayOfWeek,
		Data:      availability,
	})
}

func (h *BookingHandler) CreateBooking(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var req dto.CreateBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.CourtID == 0 || req.BookingDate == "" || req.StartTime == "" || req.EndTime == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "all fields are required: courtId, bookingDate, startTime, endTime")
	}

	booking, err := h.svc.CreateBooking(c.Request().Context(), userID, req)
	if err != nil {
		return bookingError(err)
	}

	return c.JSON(http.StatusCreated, dto.OKMessage("Booking created successfully", dto.ToBookingResponse(booking)))
}

func (h *BookingHandler) ListMyBookings(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	bookings, err := h.svc.ListMyBookings(c.Request().Context(), userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch bookings")
	}

	resp := make([]dto.BookingResponse, len(bookings))
	for i := range bookings {
		resp[i] = dto.ToBookingResponse(&bookings[i])
	}
	return c.JSON(http.StatusOK, dto.OKCount(len(resp), resp))
}

func (h *BookingHandler) GetBooking(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	bookingID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid booking id")
	}

	booking, err := h.svc.GetBooking(c.Request().Context(), userID, uint(bookingID))
	if err != nil {
		return bookingError(err)
	}

	return c.JSON(http.StatusOK, dto.OK(dto.ToBookingResponse(booking)))
}

func (h *BookingHandler) CancelBooking(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	bookingID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid booking id")
	}

	booking, err := h.svc.CancelBooking(c.Request().Context(), userID, uint(bookingID))
	if err != nil {
		return bookingError(err)
	}

	return c.JSON(http.StatusOK, dto.OKMessage("Booking cancelled successfully", dto.ToBookingResponse(booking)))
}

func (h *BookingHandler) RescheduleBooking(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	bookingID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid booking id")
	}

	var req dto.RescheduleBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	booking, err := h.svc.RescheduleBooking(c.Request().Context(), userID, uint(bookingID), req)
	if err != nil {
		return bookingError(err)
	}

	return c.JSON(http.StatusOK, dto.OKMessage("Booking rescheduled successfully", dto.ToBookingResponse(booking)))
}

// bookingError maps the booking service error taxonomy to HTTP statuses.
func bookingError(err error) error {
	switch {
	case errors.Is(err, service.ErrInvalidTimeRange),
		errors.Is(err, service.ErrInvalidDate),
		errors.Is(err, service.ErrInvalidStatusTransition):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrCourtUnavailable),
		errors.Is(err, service.ErrBookingNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrSlotConflict):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
}
