package dto

import "time"

// OverviewResponse represents aggregate statistics for the admin dashboard
type OverviewResponse struct {
	TotalMembers       int64     `json:"totalMembers"`
	TotalEvents        int64     `json:"totalEvents"`
	UpcomingEvents     int64     `json:"upcomingEvents"`
	TotalRegistrations int64     `json:"totalRegistrations"`
	DriftedCounters    int64     `json:"driftedCounters"`
	GeneratedAt        time.Time `json:"generatedAt"`
}

// ReconcileResultResponse reports the outcome of an on-demand counter reconciliation
type ReconcileResultResponse struct {
	EventsChecked int       `json:"eventsChecked"`
	Corrected     int       `json:"corrected"`
	StartedAt     time.Time `json:"startedAt"`
	Duration      string    `json:"duration"`
}
