package dto

import (
	"time"

	"github.com/emrekaya/clubsphere/internal/app/models"
)

// --- Request DTOs ---

// OrganizerRequest represents organizer contact information for an event
type OrganizerRequest struct {
	Name   string `json:"name" binding:"required"`
	Role   string `json:"role,omitempty"`
	Avatar string `json:"avatar,omitempty"`
}

// AgendaItemRequest represents a single agenda entry
type AgendaItemRequest struct {
	Time     string `json:"time" binding:"required"`
	Title    string `json:"title" binding:"required"`
	Duration string `json:"duration,omitempty"`
}

// CreateEventRequest represents event creation data.
// Date accepts either an RFC3339 timestamp string or epoch seconds/milliseconds.
type CreateEventRequest struct {
	Title        string               `json:"title,omitempty"`
	Date         interface{}          `json:"date" binding:"required" swaggertype:"string" example:"2026-05-14T18:00:00Z"`
	TimeLabel    string               `json:"time,omitempty" example:"18:00 - 20:00"`
	Location     string               `json:"location" binding:"required"`
	Category     models.EventCategory `json:"category" binding:"required"`
	Description  string               `json:"description,omitempty"`
	ImageURL     string               `json:"imageUrl,omitempty"`
	Spots        int                  `json:"spots" binding:"min=0"`
	Organizer    *OrganizerRequest    `json:"organizer,omitempty"`
	Agenda       []AgendaItemRequest  `json:"agenda,omitempty"`
	Requirements []string             `json:"requirements,omitempty"`
}

// UpdateEventRequest represents event update data. Nil fields are left unchanged.
type UpdateEventRequest struct {
	Title        *string               `json:"title,omitempty"`
	Date         interface{}           `json:"date,omitempty" swaggertype:"string"`
	TimeLabel    *string               `json:"time,omitempty"`
	Location     *string               `json:"location,omitempty"`
	Category     *models.EventCategory `json:"category,omitempty"`
	Description  *string               `json:"description,omitempty"`
	ImageURL     *string               `json:"imageUrl,omitempty"`
	Spots        *int                  `json:"spots,omitempty"`
	Organizer    *OrganizerRequest     `json:"organizer,omitempty"`
	Agenda       []AgendaItemRequest   `json:"agenda,omitempty"`
	Requirements []string              `json:"requirements,omitempty"`
}

// EventFilterRequest represents event filter parameters
type EventFilterRequest struct {
	Category *string `form:"category,omitempty"`
	Search   *string `form:"search,omitempty"`
	From     *string `form:"from,omitempty"`
	To       *string `form:"to,omitempty"`
	Page     int     `form:"page,default=1" binding:"min=1"`
	PageSize int     `form:"pageSize,default=10" binding:"min=1,max=100"`
}

// --- Response DTOs ---

// OrganizerResponse represents organizer contact information
type OrganizerResponse struct {
	Name   string `json:"name"`
	Role   string `json:"role,omitempty"`
	Avatar string `json:"avatar,omitempty"`
}

// AgendaItemResponse represents a single agenda entry
type AgendaItemResponse struct {
	Time     string `json:"time"`
	Title    string `json:"title"`
	Duration string `json:"duration,omitempty"`
}

// AttendeePreviewResponse represents one attendee in the event preview strip
type AttendeePreviewResponse struct {
	UserID    int64  `json:"userId"`
	Name      string `json:"name"`
	Major     string `json:"major,omitempty"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

// EventResponse represents full event information
type EventResponse struct {
	ID              int64                     `json:"id"`
	Title           string                    `json:"title"`
	Date            time.Time                 `json:"date"`
	Day             string                    `json:"day" example:"2026-05-14"`
	TimeLabel       string                    `json:"time,omitempty"`
	Location        string                    `json:"location"`
	Category        models.EventCategory      `json:"category"`
	Description     string                    `json:"description,omitempty"`
	ImageURL        string                    `json:"imageUrl,omitempty"`
	Spots           int                       `json:"spots"`
	SpotsRemaining  int                       `json:"spotsRemaining"`
	FillPercent     int                       `json:"fillPercent"`
	Full            bool                      `json:"full"`
	Organizer       *OrganizerResponse        `json:"organizer,omitempty"`
	Agenda          []AgendaItemResponse      `json:"agenda,omitempty"`
	Requirements    []string                  `json:"requirements,omitempty"`
	AttendeeCount   int                       `json:"attendeeCount"`
	AttendeePreview []AttendeePreviewResponse `json:"attendeePreview,omitempty"`
	Registered      bool                      `json:"registered"`
	CreatedBy       int64                     `json:"createdBy"`
	CreatedAt       time.Time                 `json:"createdAt"`
	UpdatedAt       time.Time                 `json:"updatedAt"`
}

// EventListResponse represents a paginated list of events
type EventListResponse struct {
	Events []EventResponse `json:"events"`
	PaginationInfo
}

// AttendeeCountResponse represents the current attendee count for an event
type AttendeeCountResponse struct {
	EventID        int64 `json:"eventId"`
	AttendeeCount  int   `json:"attendeeCount"`
	Spots          int   `json:"spots"`
	SpotsRemaining int   `json:"spotsRemaining"`
	Full           bool  `json:"full"`
}
