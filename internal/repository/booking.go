package repository

import (
	"context"
	"time"

	"stayhub/internal/domain"
)

// BookingRepository exposes persistence operations for Bookings.
type BookingRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, booking *domain.Booking) (int64, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error)
	ListOverlapping(ctx context.Context, placeID int64, checkIn, checkOut time.Time) ([]domain.Booking, error)
}
