package models

import "time"

type Venue struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Address     string    `gorm:"not null" json:"address"`
	City        string    `gorm:"not null;index" json:"city"`
	PhoneNumber string    `json:"phone_number"`
	Rating      float64   `gorm:"not null;default:0" json:"rating"`
	IsActive    bool      `gorm:"not null;default:true" json:"is_active"`
	OwnerID     uint      `gorm:"not null" json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Owner   *User    `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Courts  []Court  `gorm:"foreignKey:VenueID" json:"courts,omitempty"`
	Reviews []Review `gorm:"foreignKey:VenueID" json:"reviews,omitempty"`
}

type Court struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	VenueID      uint      `gorm:"not null;index" json:"venue_id"`
	Name         string    `gorm:"not null" json:"name"`
	CourtType    string    `gorm:"not null" json:"court_type"`
	SurfaceType  string    `json:"surface_type"`
	IsIndoor     bool      `gorm:"not null;default:false" json:"is_indoor"`
	PricePerHour float64   `gorm:"not null" json:"price_per_hour"`
	IsActive     bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Venue     *Venue     `gorm:"foreignKey:VenueID" json:"venue,omitempty"`
	TimeSlots []TimeSlot `gorm:"foreignKey:CourtID" json:"time_slots,omitempty"`
}

// TimeSlot is a recurring bookable window: day-of-week 0-6 (Sunday-Saturday)
// plus a wall-clock range. Static configuration, never mutated by bookings.
type TimeSlot struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	CourtID     uint   `gorm:"not null;index" json:"court_id"`
	DayOfWeek   int    `gorm:"not null" json:"day_of_week"`
	StartTime   string `gorm:"type:varchar(5);not null" json:"start_time"`
	EndTime     string `gorm:"type:varchar(5);not null" json:"end_time"`
	IsAvailable bool   `gorm:"not null;default:true" json:"is_available"`
}

type Review struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	VenueID   uint      `gorm:"not null;index" json:"venue_id"`
	UserID    uint      `gorm:"not null" json:"user_id"`
	Rating    int       `gorm:"not null" json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
