package domain

import "time"

// Booking represents a stay reserved against a place. UserID is always the
// identity that created the booking, independent of who owns the place.
type Booking struct {
	ID        int64
	PlaceID   int64
	UserID    int64
	CheckIn   time.Time
	CheckOut  time.Time
	Guests    int
	Name      string
	Phone     string
	Price     int64
	CreatedAt time.Time

	Place *Place
}
