package models

import "time"

// DefaultEventTitle is used when an event is created without a title.
const DefaultEventTitle = "Untitled Event"

// DefaultAttendeePreviewSize is how many attendees an event keeps on its
// preview strip when no size is configured.
const DefaultAttendeePreviewSize = 5

// Event represents a scheduled club activity
type Event struct {
	ID          int64         `json:"id" db:"id"`
	Title       string        `json:"title" db:"title"`
	Date        time.Time     `json:"date" db:"event_date"`
	TimeLabel   string        `json:"time" db:"time_label"`
	Location    string        `json:"location" db:"location"`
	Category    EventCategory `json:"category" db:"category"`
	Description string        `json:"description" db:"description"`
	ImageURL    string        `json:"image" db:"image_url"`

	// Spots is the configured capacity; 0 means unlimited.
	Spots int `json:"spots" db:"spots"`

	Organizer    Organizer    `json:"organizer" db:"-"`
	Agenda       []AgendaItem `json:"agenda" db:"agenda"`
	Requirements []string     `json:"requirements" db:"requirements"`

	// AttendeeCount is a cached copy of the registration ledger count,
	// kept for fast display. The ledger is authoritative; the reconciler
	// overwrites this field when it drifts.
	AttendeeCount int `json:"attendeeCount" db:"attendee_count"`

	// AttendeePreview holds the first few attendees for list rendering.
	AttendeePreview []AttendeePreview `json:"attendeePreview" db:"attendee_preview"`

	CreatedBy int64     `json:"createdBy" db:"created_by"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// HasStarted reports whether the event's start time has passed.
func (e *Event) HasStarted(now time.Time) bool {
	return !e.Date.IsZero() && !now.Before(e.Date)
}

// Organizer identifies who runs the event
type Organizer struct {
	Name   string `json:"name"`
	Role   string `json:"role"`
	Avatar string `json:"avatar"`
}

// AgendaItem is a single entry of an event's schedule
type AgendaItem struct {
	Time     string `json:"time"`
	Title    string `json:"title"`
	Duration string `json:"duration"`
}

// AttendeePreview is the lightweight attendee entry shown on event cards
type AttendeePreview struct {
	UserID    int64  `json:"userId"`
	Name      string `json:"name"`
	Major     string `json:"major"`
	AvatarURL string `json:"avatarUrl"`
}
