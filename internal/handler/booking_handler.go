package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/mkrogh/hotel-booking-service/internal/dto"
	"github.com/mkrogh/hotel-booking-service/internal/metrics"
	"github.com/mkrogh/hotel-booking-service/internal/models"
	"github.com/mkrogh/hotel-booking-service/internal/repository"
	"github.com/mkrogh/hotel-booking-service/internal/service"
)

// Publisher emits domain events to the broker. A nil Publisher disables
// publishing (used in tests).
type Publisher interface {
	Publish(routingKey string, payload any) error
}

type BookingHandler struct {
	svc      service.BookingService
	bookRepo repository.Repository[models.Booking]
	pub      Publisher
}

func NewBookingHandler(svc service.BookingService, bookRepo repository.Repository[models.Booking], pub Publisher) *BookingHandler {
	return &BookingHandler{svc: svc, bookRepo: bookRepo, pub: pub}
}

func (h *BookingHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/v1/bookings", h.CreateBooking)
	e.GET("/api/v1/bookings", h.ListBookings)
	e.GET("/api/v1/bookings/:id", h.GetBooking)
	e.GET("/api/v1/rooms/available", h.GetAvailableRoom)
	e.GET("/api/v1/dates/fully-occupied", h.GetFullyOccupiedDates)
}

func (h *BookingHandler) CreateBooking(c echo.Context) error {
	var req dto.CreateBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.CustomerID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "customer_id is required")
	}

	start, err := parseDate(req.StartDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "start_date must be a YYYY-MM-DD date")
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "end_date must be a YYYY-MM-DD date")
	}

	created, err := h.svc.CreateBooking(c.Request().Context(), models.BookingRequest{
		CustomerID: req.CustomerID,
		StartDate:  start,
		EndDate:    end,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCustomerNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrStartDateNotInFuture):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	if !created {
		metrics.RecordBooking("rejected")
		return echo.NewHTTPError(http.StatusConflict, "no rooms available for the requested period")
	}

	metrics.RecordBooking("created")
	if h.pub != nil {
		if err := h.pub.Publish("booking.created", req); err != nil {
			log.Printf("failed to publish booking.created: %v", err)
		}
	}

	return c.JSON(http.StatusCreated, map[string]any{
		"created":     true,
		"customer_id": req.CustomerID,
		"start_date":  req.StartDate,
		"end_date":    req.EndDate,
	})
}

func (h *BookingHandler) GetAvailableRoom(c echo.Context) error {
	start, end, err := parseDateRange(c)
	if err != nil {
		return err
	}

	metrics.RecordAvailabilityQuery()

	roomID, found, err := h.svc.FindAvailableRoom(c.Request().Context(), start, end)
	if err != nil {
		if errors.Is(err, service.ErrStartDateNotInFuture) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resp := dto.AvailableRoomResponse{Available: found}
	if found {
		resp.RoomID = &roomID
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *BookingHandler) GetFullyOccupiedDates(c echo.Context) error {
	start, end, err := parseDateRange(c)
	if err != nil {
		return err
	}

	metrics.RecordOccupancyQuery()

	dates, err := h.svc.GetFullyOccupiedDates(c.Request().Context(), start, end)
	if err != nil {
		if errors.Is(err, service.ErrInvalidDateRange) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, dto.ToFullyOccupiedDatesResponse(dates))
}

func (h *BookingHandler) ListBookings(c echo.Context) error {
	bookings, err := h.bookRepo.FindAll(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resp := make([]dto.BookingResponse, len(bookings))
	for i, b := range bookings {
		resp[i] = dto.ToBookingResponse(&b)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *BookingHandler) GetBooking(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid booking id")
	}

	booking, err := h.bookRepo.FindByID(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "booking not found")
	}
	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func parseDate(s string) (time.Time, error) {
	return time.Parse(time.DateOnly, s)
}

func parseDateRange(c echo.Context) (time.Time, time.Time, error) {
	start, err := parseDate(c.QueryParam("start"))
	if err != nil {
		return time.Time{}, time.Time{}, echo.NewHTTPError(http.StatusBadRequest, "start must be a YYYY-MM-DD date")
	}
	end, err := parseDate(c.QueryParam("end"))
	if err != nil {
		return time.Time{}, time.Time{}, echo.NewHTTPError(http.StatusBadRequest, "end must be a YYYY-MM-DD date")
	}
	return start, end, nil
}
