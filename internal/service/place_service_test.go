package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"stayhub/internal/auth"
	"stayhub/internal/domain"
	"stayhub/internal/repository"
	"stayhub/internal/repository/sqlite"
)

func placeFixture() PlaceInput {
	return PlaceInput{
		Title:     "Seaside flat",
		Address:   "1 Harbour Rd",
		Photos:    []string{"/uploads/photo-1.jpg"},
		Perks:     []string{"wifi"},
		CheckIn:   "14:00",
		CheckOut:  "11:00",
		MaxGuests: 4,
		Price:     120,
	}
}

// newPlaceService seeds two users and returns their ids so fixtures satisfy
// the owner foreign key.
func newPlaceService(t *testing.T) (PlaceService, repository.PlaceRepository, int64, int64) {
	t.Helper()
	db := newTestDB(t)
	annID := seedUser(t, db, "Ann", "ann@x.com")
	bobID := seedUser(t, db, "Bob", "bob@x.com")
	repo := sqlite.NewPlaceRepository(db)
	return NewPlaceService(repo), repo, annID, bobID
}

func TestPlaceCreate_SetsOwner(t *testing.T) {
	svc, _, annID, _ := newPlaceService(t)
	ctx := context.Background()

	place, err := svc.Create(ctx, annID, placeFixture())
	require.NoError(t, err)
	require.NotZero(t, place.ID)
	require.Equal(t, annID, place.OwnerID)
}

func TestPlaceUpdate_OwnerOnly(t *testing.T) {
	svc, repo, annID, bobID := newPlaceService(t)
	ctx := context.Background()

	place, err := svc.Create(ctx, annID, placeFixture())
	require.NoError(t, err)

	input := placeFixture()
	input.Title = "Hijacked title"
	input.Price = 1

	_, err = svc.Update(ctx, domain.Identity{UserID: bobID, Email: "bob@x.com"}, place.ID, input)
	require.ErrorIs(t, err, auth.ErrForbidden)

	// the record is untouched regardless of the payload
	stored, err := repo.GetByID(ctx, place.ID)
	require.NoError(t, err)
	require.Equal(t, "Seaside flat", stored.Title)
	require.EqualValues(t, 120, stored.Price)
	require.Equal(t, annID, stored.OwnerID)
}

func TestPlaceUpdate_ByOwner(t *testing.T) {
	svc, repo, annID, _ := newPlaceService(t)
	ctx := context.Background()

	place, err := svc.Create(ctx, annID, placeFixture())
	require.NoError(t, err)

	input := placeFixture()
	input.Title = "Seaside flat, renovated"
	input.Price = 150

	updated, err := svc.Update(ctx, domain.Identity{UserID: annID, Email: "ann@x.com"}, place.ID, input)
	require.NoError(t, err)
	require.Equal(t, "Seaside flat, renovated", updated.Title)

	stored, err := repo.GetByID(ctx, place.ID)
	require.NoError(t, err)
	require.Equal(t, "Seaside flat, renovated", stored.Title)
	require.EqualValues(t, 150, stored.Price)
	require.Equal(t, annID, stored.OwnerID, "owner is immutable")
}

func TestPlaceUpdate_NotFound(t *testing.T) {
	svc, _, annID, _ := newPlaceService(t)

	_, err := svc.Update(context.Background(), domain.Identity{UserID: annID}, 9999, placeFixture())
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestPlaceListByOwner(t *testing.T) {
	svc, _, annID, bobID := newPlaceService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, annID, placeFixture())
	require.NoError(t, err)
	other := placeFixture()
	other.Title = "City loft"
	_, err = svc.Create(ctx, bobID, other)
	require.NoError(t, err)

	mine, err := svc.ListByOwner(ctx, annID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.Equal(t, "Seaside flat", mine[0].Title)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
}
