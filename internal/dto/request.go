package dto

type RegisterRequest struct {
	FullName    string `json:"fullName" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	PhoneNumber string `json:"phoneNumber" validate:"required"`
	Role        string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type CreateBookingRequest struct {
	CourtID     uint   `json:"courtId" validate:"required"`
	BookingDate string `json:"bookingDate" validate:"required"` // ISO date, e.g. 2026-09-01
	StartTime   string `json:"startTime" validate:"required"`   // "08:00"
	EndTime     string `json:"endTime" validate:"required"`     // "10:00"
	Notes       string `json:"notes"`
}

// RescheduleBookingRequest carries the optional fields of a reschedule; nil
// means "keep the booking's current value".
type RescheduleBookingRequest struct {
	BookingDate *string `json:"bookingDate"`
	StartTime   *string `json:"startTime"`
	EndTime     *string `json:"endTime"`
}

type VenueSearchQuery struct {
	Location  string
	City      string
	CourtType string
	MaxPrice  *float64
	MinRating *float64
}
