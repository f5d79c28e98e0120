package models

import "time"

// Registration is a single member's confirmed attendance record for one
// event. Its existence in the ledger is the source of truth that the member
// is attending; at most one live registration exists per (event, user) pair.
type Registration struct {
	ID      int64 `json:"id" db:"id"`
	EventID int64 `json:"eventId" db:"event_id"`
	UserID  int64 `json:"userId" db:"user_id"`

	// Category is copied from the event at registration time so the form
	// variant stays interpretable even if the event is later recategorized.
	Category EventCategory `json:"category" db:"category"`

	Name        string `json:"name" db:"name"`
	Email       string `json:"email" db:"email"`
	Phone       string `json:"phone" db:"phone"`
	Major       string `json:"major" db:"major"`
	StudentYear string `json:"studentYear" db:"student_year"`

	// Details carries the category-specific form payload.
	Details RegistrationDetails `json:"details" db:"details"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// RegistrationDetails is the variant payload of a registration, keyed by the
// registration's category. Exactly one of the pointers is set for a
// non-generic category.
type RegistrationDetails struct {
	Hackathon *HackathonDetails `json:"hackathon,omitempty"`
	Workshop  *WorkshopDetails  `json:"workshop,omitempty"`
	FieldTrip *FieldTripDetails `json:"fieldTrip,omitempty"`
}

// HackathonDetails holds the extra fields of a hackathon registration
type HackathonDetails struct {
	TeamName    string `json:"teamName"`
	ProjectIdea string `json:"projectIdea"`
}

// WorkshopDetails holds the extra fields of a workshop registration
type WorkshopDetails struct {
	ExperienceLevel string `json:"experienceLevel"`
}

// FieldTripDetails holds the extra fields of a field trip registration
type FieldTripDetails struct {
	EmergencyContact string `json:"emergencyContact"`
	EmergencyPhone   string `json:"emergencyPhone"`
	Dietary          string `json:"dietary"`
}
