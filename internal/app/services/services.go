package services

// Services defined in this package:
// - AuthService: registration, login, token refresh, logout
// - MemberService: member profiles and admin member listing
// - EventService: event CRUD with notification fan-out on create
// - RSVPService: event registration lifecycle and attendee counting
// - NotificationService: notification feed and event fan-out
// - ChatService: event-scoped chat for registered attendees
// - AdminService: dashboard aggregates
// - Reconciler: background attendee counter reconciliation
