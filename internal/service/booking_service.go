package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"stayhub/internal/domain"
	"stayhub/internal/repository"
)

// ErrDatesUnavailable is returned when a booking's date range intersects an
// existing booking for the same place.
var ErrDatesUnavailable = errors.New("dates unavailable")

// BookingInput carries the fields of a booking request. The booker is never
// part of the input; it is always the resolved identity.
type BookingInput struct {
	PlaceID  int64
	CheckIn  time.Time
	CheckOut time.Time
	Guests   int
	Name     string
	Phone    string
	Price    int64
}

// BookingService coordinates booking operations.
type BookingService interface {
	Create(ctx context.Context, identity domain.Identity, input BookingInput) (*domain.Booking, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error)
}

type bookingService struct {
	bookings repository.BookingRepository
	places   repository.PlaceRepository
}

func NewBookingService(bookings repository.BookingRepository, places repository.PlaceRepository) BookingService {
	return &bookingService{
		bookings: bookings,
		places:   places,
	}
}

// Create records a stay for the authenticated identity. Any authenticated
// user may book any place, including their own; place ownership is not
// consulted.
func (s *bookingService) Create(ctx context.Context, identity domain.Identity, input BookingInput) (*domain.Booking, error) {
	input.Name = strings.TrimSpace(input.Name)

	if input.PlaceID <= 0 {
		return nil, fmt.Errorf("%w: place is required", ErrInvalidInput)
	}
	if input.CheckIn.IsZero() || input.CheckOut.IsZero() {
		return nil, fmt.Errorf("%w: check-in and check-out dates are required", ErrInvalidInput)
	}
	if !input.CheckOut.After(input.CheckIn) {
		return nil, fmt.Errorf("%w: check-out must be after check-in", ErrInvalidInput)
	}
	if input.Guests < 1 {
		return nil, fmt.Errorf("%w: at least one guest is required", ErrInvalidInput)
	}
	if input.Name == "" {
		return nil, fmt.Errorf("%w: contact name is required", ErrInvalidInput)
	}

	if _, err := s.places.GetByID(ctx, input.PlaceID); err != nil {
		return nil, err
	}

	taken, err := s.bookings.ListOverlapping(ctx, input.PlaceID, input.CheckIn, input.CheckOut)
	if err != nil {
		return nil, err
	}
	if len(taken) > 0 {
		return nil, ErrDatesUnavailable
	}

	booking := &domain.Booking{
		PlaceID:  input.PlaceID,
		UserID:   identity.UserID,
		CheckIn:  input.CheckIn,
		CheckOut: input.CheckOut,
		Guests:   input.Guests,
		Name:     input.Name,
		Phone:    input.Phone,
		Price:    input.Price,
	}

	if _, err := s.bookings.Create(ctx, booking); err != nil {
		return nil, err
	}
	return booking, nil
}

// ListByUser returns the caller's bookings with their places attached.
func (s *bookingService) ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	bookings, err := s.bookings.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	for i := range bookings {
		place, err := s.places.GetByID(ctx, bookings[i].PlaceID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				continue
			}
			return nil, err
		}
		bookings[i].Place = place
	}
	return bookings, nil
}
