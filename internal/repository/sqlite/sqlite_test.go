package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"stayhub/internal/domain"
	"stayhub/internal/repository"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()
	require.NoError(t, repo.Init(ctx))

	_, err := repo.Create(ctx, &domain.User{Name: "Ann", Email: "ann@x.com", PasswordHash: "h1"})
	require.NoError(t, err)

	_, err = repo.Create(ctx, &domain.User{Name: "Ann 2", Email: "ann@x.com", PasswordHash: "h2"})
	require.ErrorIs(t, err, repository.ErrDuplicate)
}

func TestUserRepository_NotFound(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()
	require.NoError(t, repo.Init(ctx))

	_, err := repo.GetByEmail(ctx, "nobody@x.com")
	require.ErrorIs(t, err, repository.ErrNotFound)

	_, err = repo.GetByID(ctx, 42)
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestPlaceRepository_ListsRoundTrip(t *testing.T) {
	db := openTestDB(t)
	users := NewUserRepository(db)
	places := NewPlaceRepository(db)
	ctx := context.Background()
	require.NoError(t, users.Init(ctx))
	require.NoError(t, places.Init(ctx))

	ownerID, err := users.Create(ctx, &domain.User{Name: "Ann", Email: "ann@x.com", PasswordHash: "h"})
	require.NoError(t, err)

	place := &domain.Place{
		OwnerID:   ownerID,
		Title:     "Seaside flat",
		Address:   "1 Harbour Rd",
		Photos:    []string{"/uploads/a.jpg", "/uploads/b.jpg"},
		Perks:     []string{"wifi", "parking"},
		MaxGuests: 4,
		Price:     120,
	}
	id, err := places.Create(ctx, place)
	require.NoError(t, err)

	stored, err := places.GetByID(ctx, id)
	require.NoError(t, err)
	require.Equal(t, []string{"/uploads/a.jpg", "/uploads/b.jpg"}, stored.Photos)
	require.Equal(t, []string{"wifi", "parking"}, stored.Perks)
	require.Equal(t, ownerID, stored.OwnerID)
}

func TestPlaceRepository_UpdateMissing(t *testing.T) {
	db := openTestDB(t)
	places := NewPlaceRepository(db)
	ctx := context.Background()
	require.NoError(t, places.Init(ctx))

	err := places.Update(ctx, &domain.Place{ID: 999, Title: "T", Address: "A"})
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestBookingRepository_OverlapWindow(t *testing.T) {
	db := openTestDB(t)
	users := NewUserRepository(db)
	places := NewPlaceRepository(db)
	bookings := NewBookingRepository(db)
	ctx := context.Background()
	require.NoError(t, users.Init(ctx))
	require.NoError(t, places.Init(ctx))
	require.NoError(t, bookings.Init(ctx))

	ownerID, err := users.Create(ctx, &domain.User{Name: "Ann", Email: "ann@x.com", PasswordHash: "h"})
	require.NoError(t, err)
	placeID, err := places.Create(ctx, &domain.Place{OwnerID: ownerID, Title: "T", Address: "A", MaxGuests: 2})
	require.NoError(t, err)

	at := func(d int) time.Time {
		return time.Date(2026, time.September, d, 0, 0, 0, 0, time.UTC)
	}

	_, err = bookings.Create(ctx, &domain.Booking{
		PlaceID: placeID, UserID: ownerID,
		CheckIn: at(10), CheckOut: at(15),
		Guests: 2, Name: "Ann",
	})
	require.NoError(t, err)

	tests := []struct {
		name     string
		in, out  int
		overlaps bool
	}{
		{"inside", 11, 13, true},
		{"straddles start", 8, 11, true},
		{"straddles end", 14, 18, true},
		{"covers", 8, 18, true},
		{"before", 5, 10, false},
		{"after", 15, 20, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			found, err := bookings.ListOverlapping(ctx, placeID, at(tt.in), at(tt.out))
			require.NoError(t, err)
			if tt.overlaps {
				require.Len(t, found, 1)
			} else {
				require.Empty(t, found)
			}
		})
	}

	// other places never collide
	found, err := bookings.ListOverlapping(ctx, placeID+1, at(11), at(13))
	require.NoError(t, err)
	require.Empty(t, found)
}
