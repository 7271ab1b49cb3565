package service

import (
	"context"
	"time"

	"github.com/futsala/futsala-backend/internal/dto"
	"github.com/futsala/futsala-backend/internal/models"
	"gorm.io/gorm"
)

// --- Mock UserRepository ---

type mockUserRepo struct {
	createFn      func(ctx context.Context, user *models.User) error
	findByIDFn    func(ctx context.Context, id uint) (*models.User, error)
	findByEmailFn func(ctx context.Context, email string) (*models.User, error)
	findByPhoneFn func(ctx context.Context, phone string) (*models.User, error)
	findAllFn     func(ctx context.Context) ([]models.User, error)
	resetTokenFn  func(ctx context.Context, token *models.PasswordResetToken) error
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	return m.createFn(ctx, user)
}
func (m *mockUserRepo) FindByID(ctx context.Context, id uint) (*models.User, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return m.findByEmailFn(ctx, email)
}
func (m *mockUserRepo) FindByPhone(ctx context.Context, phone string) (*models.User, error) {
	return m.findByPhoneFn(ctx, phone)
}
func (m *mockUserRepo) FindAll(ctx context.Context) ([]models.User, error) {
	return m.findAllFn(ctx)
}
func (m *mockUserRepo) CreateResetToken(ctx context.Context, token *models.PasswordResetToken) error {
	if m.resetTokenFn != nil {
		return m.resetTokenFn(ctx, token)
	}
	return nil
}

// --- Mock VenueRepository ---

type mockVenueRepo struct {
	findAllActiveFn func(ctx context.Context) ([]models.Venue, error)
	findByIDFn      func(ctx context.Context, id uint) (*models.Venue, error)
	searchFn        func(ctx context.Context, q dto.VenueSearchQuery) ([]models.Venue, error)
}

func (m *mockVenueRepo) FindAllActive(ctx context.Context) ([]models.Venue, error) {
	return m.findAllActiveFn(ctx)
}
func (m *mockVenueRepo) FindByID(ctx context.Context, id uint) (*models.Venue, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockVenueRepo) Search(ctx context.Context, q dto.VenueSearchQuery) ([]models.Venue, error) {
	return m.searchFn(ctx, q)
}

// --- Mock CourtRepository ---

type mockCourtRepo struct {
	findByIDFn      func(ctx context.Context, id uint) (*models.Court, error)
	findActiveFn    func(ctx context.Context, venueID uint) ([]models.Court, error)
	findTimeSlotsFn func(ctx context.Context, courtID uint, dayOfWeek int) ([]models.TimeSlot, error)
	findForUpdateFn func(ctx context.Context, id uint) (*models.Court, error)
}

func (m *mockCourtRepo) FindByID(ctx context.Context, id uint) (*models.Court, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockCourtRepo) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Court, error) {
	if m.findForUpdateFn != nil {
		return m.findForUpdateFn(ctx, id)
	}
	return m.findByIDFn(ctx, id)
}
func (m *mockCourtRepo) FindActiveByVenueID(ctx context.Context, venueID uint) ([]models.Court, error) {
	return m.findActiveFn(ctx, venueID)
}
func (m *mockCourtRepo) FindTimeSlots(ctx context.Context, courtID uint, dayOfWeek int) ([]models.TimeSlot, error) {
	return m.findTimeSlotsFn(ctx, courtID, dayOfWeek)
}

// --- Mock BookingRepository ---

type mockBookingRepo struct {
	createFn       func(ctx context.Context, booking *models.Booking) error
	saveFn         func(ctx context.Context, booking *models.Booking) error
	findByIDFn     func(ctx context.Context, id uint) (*models.Booking, error)
	findByUserFn   func(ctx context.Context, userID uint) ([]models.Booking, error)
	findActiveFn   func(ctx context.Context, courtID uint, date time.Time) ([]models.Booking, error)
	updateStatusFn func(ctx context.Context, bookingID uint, status models.BookingStatus) error
}

func (m *mockBookingRepo) Create(ctx context.Context, tx *gorm.DB, booking *models.Booking) error {
	return m.createFn(ctx, booking)
}
func (m *mockBookingRepo) Save(ctx context.Context, tx *gorm.DB, booking *models.Booking) error {
	return m.saveFn(ctx, booking)
}
func (m *mockBookingRepo) FindByID(ctx context.Context, id uint) (*models.Booking, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockBookingRepo) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Booking, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockBookingRepo) FindByUserID(ctx context.Context, userID uint) ([]models.Booking, error) {
	return m.findByUserFn(ctx, userID)
}
func (m *mockBookingRepo) FindActiveByCourtAndDate(ctx context.Context, tx *gorm.DB, courtID uint, date time.Time) ([]models.Booking, error) {
	return m.findActiveFn(ctx, courtID, date)
}
func (m *mockBookingRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, bookingID uint, status models.BookingStatus) error {
	return m.updateStatusFn(ctx, bookingID, status)
}
func (m *mockBookingRepo) GetDB() *gorm.DB { return nil }
