package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"stayhub/internal/domain"
	"stayhub/internal/repository"
)

const createBookingsTable = `
CREATE TABLE IF NOT EXISTS bookings (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	place_id INTEGER NOT NULL REFERENCES places(id),
	user_id INTEGER NOT NULL REFERENCES users(id),
	check_in DATETIME NOT NULL,
	check_out DATETIME NOT NULL,
	guests INTEGER NOT NULL,
	name TEXT NOT NULL,
	phone TEXT NOT NULL DEFAULT '',
	price INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_bookings_user ON bookings(user_id);
CREATE INDEX IF NOT EXISTS idx_bookings_place ON bookings(place_id);
`

type BookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) repository.BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createBookingsTable); err != nil {
		return fmt.Errorf("create bookings table: %w", err)
	}
	return nil
}

func (r *BookingRepository) Create(ctx context.Context, booking *domain.Booking) (int64, error) {
	booking.CreatedAt = time.Now().UTC()

	res, err := r.db.ExecContext(ctx, `
INSERT INTO bookings (place_id, user_id, check_in, check_out, guests, name, phone, price, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		booking.PlaceID,
		booking.UserID,
		booking.CheckIn,
		booking.CheckOut,
		booking.Guests,
		booking.Name,
		booking.Phone,
		booking.Price,
		booking.CreatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert booking: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("booking last insert id: %w", err)
	}
	booking.ID = id
	return id, nil
}

func (r *BookingRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	rows, err := r.db.QueryContext(ctx, selectBooking+` WHERE user_id = ? ORDER BY check_in`, userID)
	if err != nil {
		return nil, fmt.Errorf("list bookings by user: %w", err)
	}
	defer rows.Close()
	return collectBookings(rows)
}

// ListOverlapping returns bookings for the place whose [check_in, check_out)
// interval intersects the given range.
func (r *BookingRepository) ListOverlapping(ctx context.Context, placeID int64, checkIn, checkOut time.Time) ([]domain.Booking, error) {
	rows, err := r.db.QueryContext(ctx, selectBooking+`
 WHERE place_id = ? AND check_in < ? AND check_out > ?`,
		placeID, checkOut, checkIn,
	)
	if err != nil {
		return nil, fmt.Errorf("list overlapping bookings: %w", err)
	}
	defer rows.Close()
	return collectBookings(rows)
}

const selectBooking = `
SELECT id, place_id, user_id, check_in, check_out, guests, name, phone, price, created_at
FROM bookings`

func collectBookings(rows *sql.Rows) ([]domain.Booking, error) {
	var bookings []domain.Booking
	for rows.Next() {
		var b domain.Booking
		if err := rows.Scan(
			&b.ID,
			&b.PlaceID,
			&b.UserID,
			&b.CheckIn,
			&b.CheckOut,
			&b.Guests,
			&b.Name,
			&b.Phone,
			&b.Price,
			&b.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bookings: %w", err)
	}
	return bookings, nil
}
