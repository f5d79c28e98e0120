package dto

import (
	"time"

	"github.com/emrekaya/clubsphere/internal/app/models"
)

// --- Request DTOs ---

// RegisterForEventRequest represents the registration form submitted when
// joining an event. The variant fields are validated against the event's
// category: hackathon events require team info, workshops an experience
// level, field trips emergency contact details.
type RegisterForEventRequest struct {
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Phone       string `json:"phone,omitempty"`
	Major       string `json:"major,omitempty"`
	StudentYear string `json:"studentYear,omitempty"`

	// Hackathon fields
	TeamName    string `json:"teamName,omitempty"`
	ProjectIdea string `json:"projectIdea,omitempty"`

	// Workshop fields
	ExperienceLevel string `json:"experienceLevel,omitempty"`

	// Field trip fields
	EmergencyContact string `json:"emergencyContact,omitempty"`
	EmergencyPhone   string `json:"emergencyPhone,omitempty"`
	Dietary          string `json:"dietary,omitempty"`
}

// --- Response DTOs ---

// RegistrationResponse represents one registration record
type RegistrationResponse struct {
	ID          int64                `json:"id"`
	EventID     int64                `json:"eventId"`
	UserID      int64                `json:"userId"`
	Category    models.EventCategory `json:"category"`
	Name        string               `json:"name"`
	Email       string               `json:"email"`
	Phone       string               `json:"phone,omitempty"`
	Major       string               `json:"major,omitempty"`
	StudentYear string               `json:"studentYear,omitempty"`
	Details     interface{}          `json:"details,omitempty"`
	CreatedAt   time.Time            `json:"createdAt"`
}

// RegistrationResultResponse is returned from register/cancel calls. It
// carries the authoritative attendee count after the operation so clients
// can update their UI without a second round trip.
type RegistrationResultResponse struct {
	EventID        int64 `json:"eventId"`
	RegistrationID int64 `json:"registrationId,omitempty"`
	Registered     bool  `json:"registered"`
	AlreadyApplied bool  `json:"alreadyApplied,omitempty"`
	AttendeeCount  int   `json:"attendeeCount"`
	SpotsRemaining int   `json:"spotsRemaining"`
}

// RegistrationStatusResponse reports whether the caller is registered
type RegistrationStatusResponse struct {
	EventID    int64 `json:"eventId"`
	Registered bool  `json:"registered"`
}

// AttendeeListResponse represents a paginated list of event registrations
type AttendeeListResponse struct {
	EventID   int64                  `json:"eventId"`
	Attendees []RegistrationResponse `json:"attendees"`
	PaginationInfo
}
