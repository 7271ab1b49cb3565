package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/futsala/futsala-backend/internal/dto"
	"github.com/futsala/futsala-backend/internal/events"
	"github.com/futsala/futsala-backend/internal/models"
	"github.com/futsala/futsala-backend/internal/repository"
	"github.com/futsala/futsala-backend/internal/schedule"
	"github.com/futsala/futsala-backend/pkg/rabbitmq"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrInvalidTimeRange        = errors.New("invalid time range: end time must be after start time")
	ErrSlotConflict            = errors.New("time slot is already booked")
	ErrCourtUnavailable        = errors.New("court not found or inactive")
	ErrBookingNotFound         = errors.New("booking not found")
	ErrForbidden               = errors.New("access denied")
	ErrInvalidStatusTransition = errors.New("booking status does not permit this operation")
	ErrInvalidDate             = errors.New("invalid booking date, expected YYYY-MM-DD")
)

// exclusionViolation is the Postgres error code raised when the
// bookings_no_overlap constraint rejects a write.
const exclusionViolation = "23P01"

type BookingService interface {
	CheckAvailability(ctx context.Context, venueID uint, date string) ([]dto.CourtAvailability, int, error)
	CreateBooking(ctx context.Context, userID uint, req dto.CreateBookingRequest) (*models.Booking, error)
	RescheduleBooking(ctx context.Context, userID, bookingID uint, req dto.RescheduleBookingRequest) (*models.Booking, error)
	CancelBooking(ctx context.Context, userID, bookingID uint) (*models.Booking, error)
	GetBooking(ctx context.Context, userID, bookingID uint) (*models.Booking, error)
	ListMyBookings(ctx context.Context, userID uint) ([]models.Booking, error)
}

type bookingService struct {
	bookingRepo repository.BookingRepository
	courtRepo   repository.CourtRepository
	publisher   *rabbitmq.Publisher
}

func NewBookingService(bookingRepo repository.BookingRepository, courtRepo repository.CourtRepository, publisher *rabbitmq.Publisher) BookingService {
	return &bookingService{
		bookingRepo: bookingRepo,
		courtRepo:   courtRepo,
		publisher:   publisher,
	}
}

func parseDate(s string) (time.Time, error) {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return d, nil
}

// CheckAvailability lists, per active court of the venue, the configured
// slots for the date's weekday that overlap no active booking on that date.
func (s *bookingService) CheckAvailability(ctx context.Context, venueID uint, date string) ([]dto.CourtAvailability, int, error) {
	day, err := parseDate(date)
	if err != nil {
		return nil, 0, err
	}
	dayOfWeek := int(day.Weekday())

	courts, err := s.courtRepo.FindActiveByVenueID(ctx, venueID)
	if err != nil {
		return nil, 0, err
	}

	db := s.bookingRepo.GetDB()
	result := make([]dto.CourtAvailability, 0, len(courts))
	for i := range courts {
		court := &courts[i]

		slots, err := s.courtRepo.FindTimeSlots(ctx, court.ID, dayOfWeek)
		if err != nil {
			return nil, 0, err
		}
		booked, err := s.bookingRepo.FindActiveByCourtAndDate(ctx, db, court.ID, day)
		if err != nil {
			return nil, 0, err
		}

		slotIvs := make([]schedule.Interval, 0, len(slots))
		for _, ts := range slots {
			iv, err := schedule.NewInterval(ts.StartTime, ts.EndTime)
			if err != nil {
				// Misconfigured slot rows never count as free.
				continue
			}
			slotIvs = append(slotIvs, iv)
		}
		bookedIvs := make([]schedule.Interval, 0, len(booked))
		for _, b := range booked {
			bookedIvs = append(bookedIvs, schedule.Interval{Start: b.StartMin, End: b.EndMin})
		}

		free := schedule.Free(slotIvs, bookedIvs)
		windows := make([]dto.SlotWindow, 0, len(free))
		for _, iv := range free {
			windows = append(windows, dto.SlotWindow{
				StartTime: schedule.FormatClock(iv.Start),
				EndTime:   schedule.FormatClock(iv.End),
			})
		}

		result = append(result, dto.CourtAvailability{
			CourtID:        court.ID,
			CourtName:      court.Name,
			CourtType:      court.CourtType,
			PricePerHour:   court.PricePerHour,
			AvailableSlots: windows,
		})
	}

	return result, dayOfWeek, nil
}

func (s *bookingService) CreateBooking(ctx context.Context, userID uint, req dto.CreateBookingRequest) (*models.Booking, error) {
	day, err := parseDate(req.BookingDate)
	if err != nil {
		return nil, err
	}
	interval, err := schedule.NewInterval(req.StartTime, req.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTimeRange, err)
	}

	var result *models.Booking

	err = s.bookingRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Lock the court row: serializes concurrent booking attempts for
		// the same court within one database.
		court, err := s.courtRepo.FindByIDForUpdate(ctx, tx, req.CourtID)
		if err != nil {
			return ErrCourtUnavailable
		}
		if !court.IsActive {
			return ErrCourtUnavailable
		}

		totalHours := interval.Hours()
		totalPrice := totalHours * court.PricePerHour

		if err := s.checkConflict(ctx, tx, court.ID, day, interval, 0); err != nil {
			return err
		}

		booking := &models.Booking{
			Reference:   uuid.NewString(),
			UserID:      userID,
			CourtID:     court.ID,
			BookingDate: day,
			StartTime:   schedule.FormatClock(interval.Start),
			EndTime:     schedule.FormatClock(interval.End),
			StartMin:    interval.Start,
			EndMin:      interval.End,
			TotalHours:  totalHours,
			TotalPrice:  totalPrice,
			Status:      models.StatusPending,
			Notes:       req.Notes,
		}
		if err := s.bookingRepo.Create(ctx, tx, booking); err != nil {
			return translateConstraint(err)
		}
		result = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Reload with court+venue for the response and event payload.
	if full, err := s.bookingRepo.FindByID(ctx, result.ID); err == nil {
		result = full
	}
	s.publish(events.BookingCreated, result)
	return result, nil
}

func (s *bookingService) RescheduleBooking(ctx context.Context, userID, bookingID uint, req dto.RescheduleBookingRequest) (*models.Booking, error) {
	var result *models.Booking

	err := s.bookingRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Lock the booking row: a concurrent cancel either commits before
		// this read and fails the terminal check, or waits for this
		// transaction. An unlocked read could let the Save below rewrite a
		// committed CANCELLED status.
		booking, err := s.bookingRepo.FindByIDForUpdate(ctx, tx, bookingID)
		if err != nil {
			return ErrBookingNotFound
		}
		if booking.UserID != userID {
			return fmt.Errorf("%w: you can only reschedule your own bookings", ErrForbidden)
		}
		if booking.Status.Terminal() {
			return fmt.Errorf("%w: cannot reschedule a %s booking", ErrInvalidStatusTransition, booking.Status)
		}

		// Merge: each absent field keeps the booking's current value.
		day := booking.BookingDate
		if req.BookingDate != nil {
			day, err = parseDate(*req.BookingDate)
			if err != nil {
				return err
			}
		}
		startTime := booking.StartTime
		endTime := booking.EndTime
		timeChanged := false
		if req.StartTime != nil {
			startTime = *req.StartTime
			timeChanged = true
		}
		if req.EndTime != nil {
			endTime = *req.EndTime
			timeChanged = true
		}

		interval, err := schedule.NewInterval(startTime, endTime)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidTimeRange, err)
		}

		court, err := s.courtRepo.FindByIDForUpdate(ctx, tx, booking.CourtID)
		if err != nil {
			return err
		}

		// A booking never conflicts with itself.
		if err := s.checkConflict(ctx, tx, booking.CourtID, day, interval, booking.ID); err != nil {
			return err
		}

		booking.BookingDate = day
		booking.StartTime = schedule.FormatClock(interval.Start)
		booking.EndTime = schedule.FormatClock(interval.End)
		booking.StartMin = interval.Start
		booking.EndMin = interval.End
		if timeChanged {
			booking.TotalHours = interval.Hours()
			booking.TotalPrice = booking.TotalHours * court.PricePerHour
		}

		if err := s.bookingRepo.Save(ctx, tx, booking); err != nil {
			return translateConstraint(err)
		}
		result = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	// The locked read skips associations; reload for the response and event.
	if full, err := s.bookingRepo.FindByID(ctx, result.ID); err == nil {
		result = full
	}
	s.publish(events.BookingRescheduled, result)
	return result, nil
}

func (s *bookingService) CancelBooking(ctx context.Context, userID, bookingID uint) (*models.Booking, error) {
	var result *models.Booking

	err := s.bookingRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Locked read: of two racing cancels, the second sees the committed
		// CANCELLED status and is rejected instead of silently passing.
		booking, err := s.bookingRepo.FindByIDForUpdate(ctx, tx, bookingID)
		if err != nil {
			return ErrBookingNotFound
		}
		if booking.UserID != userID {
			return fmt.Errorf("%w: you can only cancel your own bookings", ErrForbidden)
		}
		if booking.Status == models.StatusCancelled {
			return fmt.Errorf("%w: booking is already cancelled", ErrInvalidStatusTransition)
		}
		if booking.Status == models.StatusCompleted {
			return fmt.Errorf("%w: cannot cancel a completed booking", ErrInvalidStatusTransition)
		}

		if err := s.bookingRepo.UpdateStatus(ctx, tx, booking.ID, models.StatusCancelled); err != nil {
			return err
		}
		booking.Status = models.StatusCancelled
		result = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	if full, err := s.bookingRepo.FindByID(ctx, result.ID); err == nil {
		result = full
	}
	s.publish(events.BookingCancelled, result)
	return result, nil
}

// GetBooking allows the booking's owner and the venue's owner to read it.
func (s *bookingService) GetBooking(ctx context.Context, userID, bookingID uint) (*models.Booking, error) {
	booking, err := s.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, ErrBookingNotFound
	}
	if booking.UserID != userID && !ownsVenue(booking, userID) {
		return nil, ErrForbidden
	}
	return booking, nil
}

func (s *bookingService) ListMyBookings(ctx context.Context, userID uint) ([]models.Booking, error) {
	return s.bookingRepo.FindByUserID(ctx, userID)
}

// checkConflict scans the active bookings for the court on the given date and
// rejects the proposed window if it overlaps any of them. excludeID is the
// booking being rescheduled, zero otherwise. Pure query, no writes.
func (s *bookingService) checkConflict(ctx context.Context, tx *gorm.DB, courtID uint, day time.Time, proposed schedule.Interval, excludeID uint) error {
	active, err := s.bookingRepo.FindActiveByCourtAndDate(ctx, tx, courtID, day)
	if err != nil {
		return err
	}
	for _, b := range active {
		if b.ID == excludeID {
			continue
		}
		if proposed.Overlaps(schedule.Interval{Start: b.StartMin, End: b.EndMin}) {
			return ErrSlotConflict
		}
	}
	return nil
}

// translateConstraint maps a bookings_no_overlap violation to ErrSlotConflict.
// The exclusion constraint catches the race where two requests pass the
// conflict check concurrently in separate transactions or processes.
func translateConstraint(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == exclusionViolation {
		return ErrSlotConflict
	}
	return err
}

func ownsVenue(b *models.Booking, userID uint) bool {
	return b.Court != nil && b.Court.Venue != nil && b.Court.Venue.OwnerID == userID
}

func (s *bookingService) publish(routingKey string, b *models.Booking) {
	if s.publisher == nil || b == nil {
		return
	}
	ev := events.BookingEvent{
		Reference:   b.Reference,
		BookingDate: b.BookingDate.Format("2006-01-02"),
		StartTime:   b.StartTime,
		EndTime:     b.EndTime,
		TotalPrice:  b.TotalPrice,
	}
	if b.User != nil {
		ev.UserEmail = b.User.Email
	}
	if b.Court != nil {
		ev.CourtName = b.Court.Name
		if b.Court.Venue != nil {
			ev.VenueName = b.Court.Venue.Name
		}
	}
	_ = s.publisher.Publish(routingKey, ev)
}
