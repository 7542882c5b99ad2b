package domain

import "time"

// Place represents a rental listing. OwnerID is set at creation and never
// changes afterwards.
type Place struct {
	ID          int64
	OwnerID     int64
	Title       string
	Address     string
	Description string
	ExtraInfo   string
	Photos      []string
	Perks       []string
	CheckIn     string
	CheckOut    string
	MaxGuests   int
	Price       int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
