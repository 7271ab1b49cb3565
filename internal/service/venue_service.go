package service

import (
	"context"
	"errors"

	"github.com/futsala/futsala-backend/internal/dto"
	"github.com/futsala/futsala-backend/internal/models"
	"github.com/futsala/futsala-backend/internal/repository"
)

var ErrVenueNotFound = errors.New("venue not found")

type VenueService interface {
	ListVenues(ctx context.Context) ([]models.Venue, error)
	GetVenue(ctx context.Context, id uint) (*models.Venue, error)
	SearchVenues(ctx context.Context, q dto.VenueSearchQuery) ([]models.Venue, error)
}

type venueService struct {
	venueRepo repository.VenueRepository
}

func NewVenueService(venueRepo repository.VenueRepository) VenueService {
	return &venueService{venueRepo: venueRepo}
}

func (s *venueService) ListVenues(ctx context.Context) ([]models.Venue, error) {
	return s.venueRepo.FindAllActive(ctx)
}

func (s *venueService) GetVenue(ctx context.Context, id uint) (*models.Venue, error) {
	venue, err := s.venueRepo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrVenueNotFound
	}
	if !venue.IsActive {
		return nil, ErrVenueNotFound
	}
	return venue, nil
}

func (s *venueService) SearchVenues(ctx context.Context, q dto.VenueSearchQuery) ([]models.Venue, error) {
	venues, err := s.venueRepo.Search(ctx, q)
	if err != nil {
		return nil, err
	}

	// Court-level filters drop venues with no matching court.
	if q.MaxPrice == nil && q.CourtType == "" {
		return venues, nil
	}
	filtered := venues[:0]
	for _, v := range venues {
		if len(v.Courts) > 0 {
			filtered = append(filtered, v)
		}
	}
	return filtered, nil
}
