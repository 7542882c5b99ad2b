package service

import (
	"context"
	"fmt"
	"strings"

	"stayhub/internal/auth"
	"stayhub/internal/domain"
	"stayhub/internal/repository"
)

// PlaceInput carries the descriptive, mutable fields of a listing. The owner
// is never part of the input; it comes from the resolved identity at
// creation and is immutable afterwards.
type PlaceInput struct {
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
}

// PlaceService coordinates listing operations.
type PlaceService interface {
	Create(ctx context.Context, ownerID int64, input PlaceInput) (*domain.Place, error)
	Update(ctx context.Context, identity domain.Identity, id int64, input PlaceInput) (*domain.Place, error)
	Get(ctx context.Context, id int64) (*domain.Place, error)
	List(ctx context.Context) ([]domain.Place, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.Place, error)
}

type placeService struct {
	places repository.PlaceRepository
}

func NewPlaceService(places repository.PlaceRepository) PlaceService {
	return &placeService{places: places}
}

func (s *placeService) Create(ctx context.Context, ownerID int64, input PlaceInput) (*domain.Place, error) {
	if err := validatePlaceInput(&input); err != nil {
		return nil, err
	}

	place := &domain.Place{
		OwnerID:     ownerID,
		Title:       input.Title,
		Address:     input.Address,
		Description: input.Description,
		ExtraInfo:   input.ExtraInfo,
		Photos:      input.Photos,
		Perks:       input.Perks,
		CheckIn:     input.CheckIn,
		CheckOut:    input.CheckOut,
		MaxGuests:   input.MaxGuests,
		Price:       input.Price,
	}

	if _, err := s.places.Create(ctx, place); err != nil {
		return nil, err
	}
	return place, nil
}

// Update loads the target listing, authorizes the caller against its owner,
// and only then applies the mutation. The order is load, authorize, mutate;
// reordering would void the ownership check.
func (s *placeService) Update(ctx context.Context, identity domain.Identity, id int64, input PlaceInput) (*domain.Place, error) {
	if err := validatePlaceInput(&input); err != nil {
		return nil, err
	}

	place, err := s.places.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := auth.AuthorizeOwner(place.OwnerID, identity); err != nil {
		return nil, err
	}

	place.Title = input.Title
	place.Address = input.Address
	place.Description = input.Description
	place.ExtraInfo = input.ExtraInfo
	place.Photos = input.Photos
	place.Perks = input.Perks
	place.CheckIn = input.CheckIn
	place.CheckOut = input.CheckOut
	place.MaxGuests = input.MaxGuests
	place.Price = input.Price

	if err := s.places.Update(ctx, place); err != nil {
		return nil, err
	}
	return place, nil
}

func (s *placeService) Get(ctx context.Context, id int64) (*domain.Place, error) {
	return s.places.GetByID(ctx, id)
}

func (s *placeService) List(ctx context.Context) ([]domain.Place, error) {
	return s.places.List(ctx)
}

func (s *placeService) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Place, error) {
	return s.places.ListByOwner(ctx, ownerID)
}

func validatePlaceInput(input *PlaceInput) error {
	input.Title = strings.TrimSpace(input.Title)
	input.Address = strings.TrimSpace(input.Address)

	if input.Title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if input.Address == "" {
		return fmt.Errorf("%w: address is required", ErrInvalidInput)
	}
	if input.MaxGuests < 1 {
		return fmt.Errorf("%w: max guests must be at least 1", ErrInvalidInput)
	}
	if input.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}
	return nil
}
