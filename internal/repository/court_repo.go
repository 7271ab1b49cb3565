package repository

import (
	"context"

	"github.com/futsala/futsala-backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CourtRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Court, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Court, error)
	FindActiveByVenueID(ctx context.Context, venueID uint) ([]models.Court, error)
	FindTimeSlots(ctx context.Context, courtID uint, dayOfWeek int) ([]models.TimeSlot, error)
}

type courtRepository struct {
	db *gorm.DB
}

func NewCourtRepository(db *gorm.DB) CourtRepository {
	return &courtRepository{db: db}
}

func (r *courtRepository) FindByID(ctx context.Context, id uint) (*models.Court, error) {
	var court models.Court
	if err := r.db.WithContext(ctx).Preload("Venue").First(&court, id).Error; err != nil {
		return nil, err
	}
	return &court, nil
}

// FindByIDForUpdate acquires a row-level lock on the court within the given
// transaction, serializing concurrent booking writes for that court.
func (r *courtRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Court, error) {
	var court models.Court
	if err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&court, id).Error; err != nil {
		return nil, err
	}
	return &court, nil
}

func (r *courtRepository) FindActiveByVenueID(ctx context.Context, venueID uint) ([]models.Court, error) {
	var courts []models.Court
	err := r.db.WithContext(ctx).
		Where("venue_id = ? AND is_active = ?", venueID, true).
		Order("id ASC").
		Find(&courts).Error
	if err != nil {
		return nil, err
	}
	return courts, nil
}

func (r *courtRepository) FindTimeSlots(ctx context.Context, courtID uint, dayOfWeek int) ([]models.TimeSlot, error) {
	var slots []models.TimeSlot
	err := r.db.WithContext(ctx).
		Where("court_id = ? AND day_of_week = ? AND is_available = ?", courtID, dayOfWeek, true).
		Order("start_time ASC").
		Find(&slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}
