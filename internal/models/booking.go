package models

import "time"

type BookingStatus string

const (
	StatusPending   BookingStatus = "PENDING"
	StatusConfirmed BookingStatus = "CONFIRMED"
	StatusCompleted BookingStatus = "COMPLETED"
	StatusCancelled BookingStatus = "CANCELLED"
	StatusRejected  BookingStatus = "REJECTED"
)

// Active reports whether a booking still occupies its court window.
// CANCELLED and REJECTED bookings release the slot.
func (s BookingStatus) Active() bool {
	return s != StatusCancelled && s != StatusRejected
}

// Terminal statuses permit no further status or time mutation.
func (s BookingStatus) Terminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

type Booking struct {
	ID          uint          `gorm:"primaryKey" json:"id"`
	Reference   string        `gorm:"type:varchar(36);uniqueIndex;not null" json:"reference"`
	UserID      uint          `gorm:"not null;index" json:"user_id"`
	CourtID     uint          `gorm:"not null;index" json:"court_id"`
	BookingDate time.Time     `gorm:"type:date;not null" json:"booking_date"`
	StartTime   string        `gorm:"type:varchar(5);not null" json:"start_time"`
	EndTime     string        `gorm:"type:varchar(5);not null" json:"end_time"`
	StartMin    int           `gorm:"not null" json:"-"`
	EndMin      int           `gorm:"not null" json:"-"`
	TotalHours  float64       `gorm:"not null" json:"total_hours"`
	TotalPrice  float64       `gorm:"not null" json:"total_price"`
	Status      BookingStatus `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"`
	Notes       string        `json:"notes,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`

	User  *User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Court *Court `gorm:"foreignKey:CourtID" json:"court,omitempty"`
}
