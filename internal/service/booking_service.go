package service

import (
	"context"
	"errors"
	"time"

	"github.com/mkrogh/hotel-booking-service/internal/models"
	"github.com/mkrogh/hotel-booking-service/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrStartDateNotInFuture = errors.New("start date must be later than today")
	ErrInvalidDateRange     = errors.New("end date must not be earlier than start date")
	ErrCustomerNotFound     = errors.New("customer not found")
)

// BookingService is the room-availability engine. It holds no state between
// calls: every operation re-reads the stores and computes from scratch.
//
// CreateBooking is a plain read-then-write with no isolation, so two
// concurrent calls can both see the same room as free and both book it.
// Callers needing a stronger guarantee must serialize creation themselves
// (e.g. wrap find-then-add in a transaction holding a room row lock).
type BookingService interface {
	// CreateBooking allocates a room for the request and persists the
	// booking. A false result means no room was free; nothing is written.
	CreateBooking(ctx context.Context, req models.BookingRequest) (bool, error)

	// FindAvailableRoom returns the first room, in store order, with no
	// active booking overlapping [start, end]. found=false is a normal
	// outcome, not an error.
	FindAvailableRoom(ctx context.Context, start, end time.Time) (roomID int, found bool, err error)

	// GetFullyOccupiedDates returns, in ascending order, every date in
	// [start, end] on which all rooms have a covering active booking.
	GetFullyOccupiedDates(ctx context.Context, start, end time.Time) ([]time.Time, error)
}

type bookingService struct {
	bookingRepo  repository.Repository[models.Booking]
	roomRepo     repository.Repository[models.Room]
	customerRepo repository.Repository[models.Customer]
}

func NewBookingService(
	bookingRepo repository.Repository[models.Booking],
	roomRepo repository.Repository[models.Room],
	customerRepo repository.Repository[models.Customer],
) BookingService {
	return &bookingService{
		bookingRepo:  bookingRepo,
		roomRepo:     roomRepo,
		customerRepo: customerRepo,
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, req models.BookingRequest) (bool, error) {
	if _, err := s.customerRepo.FindByID(ctx, req.CustomerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrCustomerNotFound
		}
		return false, err
	}

	roomID, found, err := s.FindAvailableRoom(ctx, req.StartDate, req.EndDate)
	if err != nil {
		return false, err
	}
	if !found {
		return false, nil
	}

	booking := &models.Booking{
		RoomID:     roomID,
		CustomerID: req.CustomerID,
		StartDate:  toDate(req.StartDate),
		EndDate:    toDate(req.EndDate),
		IsActive:   true,
	}
	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return false, err
	}
	return true, nil
}

func (s *bookingService) FindAvailableRoom(ctx context.Context, start, end time.Time) (int, bool, error) {
	start, end = toDate(start), toDate(end)
	if !start.After(toDate(time.Now())) {
		return 0, false, ErrStartDateNotInFuture
	}

	rooms, err := s.roomRepo.FindAll(ctx)
	if err != nil {
		return 0, false, err
	}
	bookings, err := s.bookingRepo.FindAll(ctx)
	if err != nil {
		return 0, false, err
	}

	for _, room := range rooms {
		booked := false
		for _, b := range bookings {
			if !b.IsActive || b.RoomID != room.ID {
				continue
			}
			if overlaps(start, end, toDate(b.StartDate), toDate(b.EndDate)) {
				booked = true
				break
			}
		}
		if !booked {
			return room.ID, true, nil
		}
	}
	return 0, false, nil
}

func (s *bookingService) GetFullyOccupiedDates(ctx context.Context, start, end time.Time) ([]time.Time, error) {
	start, end = toDate(start), toDate(end)
	if end.Before(start) {
		return nil, ErrInvalidDateRange
	}

	rooms, err := s.roomRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	dates := make([]time.Time, 0)
	if len(rooms) == 0 {
		return dates, nil
	}

	bookings, err := s.bookingRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		full := true
		for _, room := range rooms {
			if !roomOccupiedOn(bookings, room.ID, d) {
				full = false
				break
			}
		}
		if full {
			dates = append(dates, d)
		}
	}
	return dates, nil
}

func roomOccupiedOn(bookings []models.Booking, roomID int, day time.Time) bool {
	for _, b := range bookings {
		if !b.IsActive || b.RoomID != roomID {
			continue
		}
		if overlaps(day, day, toDate(b.StartDate), toDate(b.EndDate)) {
			return true
		}
	}
	return false
}

// overlaps reports whether the closed date intervals [a1,a2] and [b1,b2]
// share at least one day. Boundary days count: a stay ending on day D
// conflicts with a stay starting on day D.
func overlaps(a1, a2, b1, b2 time.Time) bool {
	return !a1.After(b2) && !b1.After(a2)
}

// toDate strips time-of-day and zone so bookings compare as calendar dates.
func toDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
