package models

// RoleType defines the member role type
type RoleType string

const (
	RoleMember RoleType = "MEMBER"
	RoleAdmin  RoleType = "ADMIN"
)

// EventCategory drives which registration form variant an event uses.
type EventCategory string

const (
	CategoryHackathon EventCategory = "hackathon"
	CategoryWorkshop  EventCategory = "workshop"
	CategoryFieldTrip EventCategory = "field_trip"
	CategoryGeneric   EventCategory = "event"
)

// Valid reports whether the category is one of the known variants.
func (c EventCategory) Valid() bool {
	switch c {
	case CategoryHackathon, CategoryWorkshop, CategoryFieldTrip, CategoryGeneric:
		return true
	}
	return false
}

// NotificationType enumerates the actions a notification can describe.
type NotificationType string

const (
	NotificationLike    NotificationType = "like"
	NotificationComment NotificationType = "comment"
	NotificationReply   NotificationType = "reply"
	NotificationMention NotificationType = "mention"
	NotificationMessage NotificationType = "message"
	NotificationEvent   NotificationType = "event"
)
