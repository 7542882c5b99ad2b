package repository

import (
	"context"

	"stayhub/internal/domain"
)

// PlaceRepository exposes persistence operations for Place listings.
type PlaceRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, place *domain.Place) (int64, error)
	Update(ctx context.Context, place *domain.Place) error
	GetByID(ctx context.Context, id int64) (*domain.Place, error)
	List(ctx context.Context) ([]domain.Place, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.Place, error)
}
