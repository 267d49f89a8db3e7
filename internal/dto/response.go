package dto

import (
	"time"

	"github.com/mkrogh/hotel-booking-service/internal/models"
)

type BookingResponse struct {
	ID         int       `json:"id"`
	RoomID     int       `json:"room_id"`
	CustomerID int       `json:"customer_id"`
	StartDate  string    `json:"start_date"`
	EndDate    string    `json:"end_date"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
}

type AvailableRoomResponse struct {
	Available bool `json:"available"`
	RoomID    *int `json:"room_id,omitempty"`
}

type FullyOccupiedDatesResponse struct {
	Dates []string `json:"dates"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

func ToBookingResponse(b *models.Booking) BookingResponse {
	return BookingResponse{
		ID:         b.ID,
		RoomID:     b.RoomID,
		CustomerID: b.CustomerID,
		StartDate:  b.StartDate.Format(time.DateOnly),
		EndDate:    b.EndDate.Format(time.DateOnly),
		IsActive:   b.IsActive,
		CreatedAt:  b.CreatedAt,
	}
}

func ToFullyOccupiedDatesResponse(dates []time.Time) FullyOccupiedDatesResponse {
	out := make([]string, len(dates))
	for i, d := range dates {
		out[i] = d.Format(time.DateOnly)
	}
	return FullyOccupiedDatesResponse{Dates: out}
}
