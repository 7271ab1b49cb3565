package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/futsala/futsala-backend/internal/dto"
	"github.com/futsala/futsala-backend/internal/service"
	"github.com/labstack/echo/v4"
)

type VenueHandler struct {
	svc service.VenueService
}

func NewVenueHandler(svc service.VenueService) *VenueHandler {
	return &VenueHandler{svc: svc}
}

func (h *VenueHandler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.ListVenues)
	g.GET("/search-venue", h.SearchVenues)
	g.GET("/:id", h.GetVenue)
}

func (h *VenueHandler) ListVenues(c echo.Context) error {
	venues, err := h.svc.ListVenues(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch venues")
	}

	resp := make([]dto.VenueResponse, len(venues))
	for i := range venues {
		resp[i] = dto.ToVenueResponse(&venues[i])
	}
	return c.JSON(http.StatusOK, dto.OKCount(len(resp), resp))
}

func (h *VenueHandler) GetVenue(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid venue id")
	}

	venue, err := h.svc.GetVenue(c.Request().Context(), uint(id))
	if err != nil {
		if errors.Is(err, service.ErrVenueNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch venue details")
	}

	return c.JSON(http.StatusOK, dto.OK(dto.ToVenueResponse(venue)))
}

func (h *VenueHandler) SearchVenues(c echo.Context) error {
	q := dto.VenueSearchQuery{
		Location:  c.QueryParam("location"),
		City:      c.QueryParam("city"),
		CourtType: c.QueryParam("courtType"),
	}
	if s := c.QueryParam("price"); s != "" {
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			q.MaxPrice = &v
		}
	}
	if s := c.QueryParam("minRating"); s != "" {
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			q.MinRating = &v
		}
	}

	venues, err := h.svc.SearchVenues(c.Request().Context(), q)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to search venues")
	}

	resp := make([]dto.VenueResponse, len(venues))
	for i := range venues {
		resp[i] = dto.ToVenueResponse(&venues[i])
	}
	return c.JSON(http.StatusOK, dto.OKCount(len(resp), resp))
}
