package dto

import (
	"time"

	"github.com/futsala/futsala-backend/internal/models"
)

// Envelope is the uniform response wrapper: {success, data?, message?, error?}.
type Envelope struct {
	Success bool   `json:"success"`
	Count   *int   `json:"count,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func OK(data any) Envelope {
	return Envelope{Success: true, Data: data}
}

func OKMessage(message string, data any) Envelope {
	return Envelope{Success: true, Message: message, Data: data}
}

func OKCount(count int, data any) Envelope {
	return Envelope{Success: true, Count: &count, Data: data}
}

type UserResponse struct {
	ID          uint      `json:"id"`
	FullName    string    `json:"fullName"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phoneNumber"`
	Role        string    `json:"role"`
	IsVerified  bool      `json:"isVerified"`
	CreatedAt   time.Time `json:"createdAt"`
}

type AuthTokens struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken,omitempty"`
	ExpiresIn    int    `json:"expiresIn"` // access token lifetime in seconds
}

type LoginResponse struct {
	User UserResponse `json:"user"`
	Auth AuthTokens   `json:"auth"`
}

type VenueOwnerResponse struct {
	ID          uint   `json:"id"`
	FullName    string `json:"fullName"`
	PhoneNumber string `json:"phoneNumber"`
}

type TimeSlotResponse struct {
	DayOfWeek int    `json:"dayOfWeek"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

type CourtResponse struct {
	ID           uint               `json:"id"`
	Name         string             `json:"name"`
	CourtType    string             `json:"courtType"`
	SurfaceType  string             `json:"surfaceType,omitempty"`
	IsIndoor     bool               `json:"isIndoor"`
	PricePerHour float64            `json:"pricePerHour"`
	TimeSlots    []TimeSlotResponse `json:"timeSlots,omitempty"`
}

type ReviewResponse struct {
	ID        uint      `json:"id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	Author    string    `json:"author,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type VenueResponse struct {
	ID          uint                `json:"id"`
	Name        string              `json:"name"`
	Address     string              `json:"address"`
	City        string              `json:"city"`
	PhoneNumber string              `json:"phoneNumber,omitempty"`
	Rating      float64             `json:"rating"`
	Courts      []CourtResponse     `json:"courts"`
	Owner       *VenueOwnerResponse `json:"owner,omitempty"`
	Reviews     []ReviewResponse    `json:"reviews,omitempty"`
}

type VenueSummary struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	City string `json:"city"`
}

type BookingResponse struct {
	ID          uint                 `json:"id"`
	Reference   string               `json:"reference"`
	CourtID     uint                 `json:"courtId"`
	BookingDate string               `json:"bookingDate"`
	StartTime   string               `json:"startTime"`
	EndTime     string               `json:"endTime"`
	TotalHours  float64              `json:"totalHours"`
	TotalPrice  float64              `json:"totalPrice"`
	Status      models.BookingStatus `json:"status"`
	Notes       string               `json:"notes,omitempty"`
	CreatedAt   time.Time            `json:"createdAt"`
	Court       *CourtResponse       `json:"court,omitempty"`
	Venue       *VenueSummary        `json:"venue,omitempty"`
}

// SlotWindow is one bookable window in an availability response.
type SlotWindow struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

type CourtAvailability struct {
	CourtID        uint         `json:"courtId"`
	CourtName      string       `json:"courtName"`
	CourtType      string       `json:"courtType"`
	PricePerHour   float64      `json:"pricePerHour"`
	AvailableSlots []SlotWindow `json:"availableSlots"`
}

type AvailabilityResponse struct {
	Success   bool                `json:"success"`
	Date      string              `json:"date"`
	DayOfWeek int                 `json:"dayOfWeek"`
	Data      []CourtAvailability `json:"data"`
}

func ToUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		FullName:    u.FullName,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		Role:        string(u.Role),
		IsVerified:  u.IsVerified,
		CreatedAt:   u.CreatedAt,
	}
}

func ToCourtResponse(c *models.Court) CourtResponse {
	resp := CourtResponse{
		ID:           c.ID,
		Name:         c.Name,
		CourtType:    c.CourtType,
		SurfaceType:  c.SurfaceType,
		IsIndoor:     c.IsIndoor,
		PricePerHour: c.PricePerHour,
	}
	for _, ts := range c.TimeSlots {
		resp.TimeSlots = append(resp.TimeSlots, TimeSlotResponse{
			DayOfWeek: ts.DayOfWeek,
			StartTime: ts.StartTime,
			EndTime:   ts.EndTime,
		})
	}
	return resp
}

func ToVenueResponse(v *models.Venue) VenueResponse {
	resp := VenueResponse{
		ID:          v.ID,
		Name:        v.Name,
		Address:     v.Address,
		City:        v.City,
		PhoneNumber: v.PhoneNumber,
		Rating:      v.Rating,
		Courts:      make([]CourtResponse, 0, len(v.Courts)),
	}
	for i := range v.Courts {
		resp.Courts = append(resp.Courts, ToCourtResponse(&v.Courts[i]))
	}
	if v.Owner != nil {
		resp.Owner = &VenueOwnerResponse{
			ID:          v.Owner.ID,
			FullName:    v.Owner.FullName,
			PhoneNumber: v.Owner.PhoneNumber,
		}
	}
	for i := range v.Reviews {
		r := &v.Reviews[i]
		author := ""
		if r.User != nil {
			author = r.User.FullName
		}
		resp.Reviews = append(resp.Reviews, ReviewResponse{
			ID:        r.ID,
			Rating:    r.Rating,
			Comment:   r.Comment,
			Author:    author,
			CreatedAt: r.CreatedAt,
		})
	}
	return resp
}

func ToBookingResponse(b *models.Booking) BookingResponse {
	resp := BookingResponse{
		ID:          b.ID,
		Reference:   b.Reference,
		CourtID:     b.CourtID,
		BookingDate: b.BookingDate.Format("2006-01-02"),
		StartTime:   b.StartTime,
		EndTime:     b.EndTime,
		TotalHours:  b.TotalHours,
		TotalPrice:  b.TotalPrice,
		Status:      b.Status,
		Notes:       b.Notes,
		CreatedAt:   b.CreatedAt,
	}
	if b.Court != nil {
		court := ToCourtResponse(b.Court)
		resp.Court = &court
		if b.Court.Venue != nil {
			resp.Venue = &VenueSummary{
				ID:   b.Court.Venue.ID,
				Name: b.Court.Venue.Name,
				City: b.Court.Venue.City,
			}
		}
	}
	return resp
}
