package repository

import (
	"context"

	"github.com/futsala/futsala-backend/internal/dto"
	"github.com/futsala/futsala-backend/internal/models"
	"gorm.io/gorm"
)

type VenueRepository interface {
	FindAllActive(ctx context.Context) ([]models.Venue, error)
	FindByID(ctx context.Context, id uint) (*models.Venue, error)
	Search(ctx context.Context, q dto.VenueSearchQuery) ([]models.Venue, error)
}

type venueRepository struct {
	db *gorm.DB
}

func NewVenueRepository(db *gorm.DB) VenueRepository {
	return &venueRepository{db: db}
}

func (r *venueRepository) FindAllActive(ctx context.Context) ([]models.Venue, error) {
	var venues []models.Venue
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Preload("Courts", "is_active = ?", true).
		Preload("Owner").
		Order("rating DESC").
		Find(&venues).Error
	if err != nil {
		return nil, err
	}
	return venues, nil
}

func (r *venueRepository) FindByID(ctx context.Context, id uint) (*models.Venue, error) {
	var venue models.Venue
	err := r.db.WithContext(ctx).
		Preload("Courts", "is_active = ?", true).
		Preload("Courts.TimeSlots", func(db *gorm.DB) *gorm.DB {
			return db.Order("day_of_week ASC, start_time ASC")
		}).
		Preload("Owner").
		Preload("Reviews", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC").Limit(10)
		}).
		Preload("Reviews.User").
		First(&venue, id).Error
	if err != nil {
		return nil, err
	}
	return &venue, nil
}

func (r *venueRepository) Search(ctx context.Context, q dto.VenueSearchQuery) ([]models.Venue, error) {
	db := r.db.WithContext(ctx).Where("is_active = ?", true)

	if q.Location != "" {
		pattern := "%" + q.Location + "%"
		db = db.Where("address ILIKE ? OR city ILIKE ?", pattern, pattern)
	}
	if q.City != "" {
		db = db.Where("city ILIKE ?", "%"+q.City+"%")
	}
	if q.MinRating != nil {
		db = db.Where("rating >= ?", *q.MinRating)
	}

	db = db.Preload("Courts", func(cdb *gorm.DB) *gorm.DB {
		cdb = cdb.Where("is_active = ?", true)
		if q.MaxPrice != nil {
			cdb = cdb.Where("price_per_hour <= ?", *q.MaxPrice)
		}
		if q.CourtType != "" {
			cdb = cdb.Where("court_type ILIKE ?", "%"+q.CourtType+"%")
		}
		return cdb
	}).Preload("Owner")

	var venues []models.Venue
	if err := db.Order("rating DESC").Find(&venues).Error; err != nil {
		return nil, err
	}
	return venues, nil
}
