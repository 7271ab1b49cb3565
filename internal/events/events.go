// Package events defines the payloads published to the bookings exchange.
package events

const (
	BookingCreated     = "booking.created"
	BookingRescheduled = "booking.rescheduled"
	BookingCancelled   = "booking.cancelled"
	PasswordReset      = "auth.password_reset"
)

type BookingEvent struct {
	Reference   string  `json:"reference"`
	UserEmail   string  `json:"user_email,omitempty"`
	VenueName   string  `json:"venue_name,omitempty"`
	CourtName   string  `json:"court_name,omitempty"`
	BookingDate string  `json:"booking_date"`
	StartTime   string  `json:"start_time"`
	EndTime     string  `json:"end_time"`
	TotalPrice  float64 `json:"total_price"`
}

type PasswordResetEvent struct {
	Email string `json:"email"`
	Token string `json:"token"`
}
