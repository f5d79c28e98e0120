package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/emrekaya/clubsphere/internal/app/models/dto"
	"github.com/emrekaya/clubsphere/internal/monitoring"
)

// readNotificationTTL is how long read notifications are kept before the
// reconciler sweeps them away.
const readNotificationTTL = 30 * 24 * time.Hour

// counterReconciler recomputes cached attendee counters from the ledger
type counterReconciler interface {
	ReconcileAttendeeCounts(ctx context.Context) (checked int, corrected int, err error)
}

// notificationSweeper deletes read notifications past their retention window
type notificationSweeper interface {
	DeleteOldRead(ctx context.Context, olderThan time.Time) (int64, error)
}

// Reconciler periodically recomputes every event's cached attendee counter
// from the registrations ledger. The register/cancel paths keep the counter
// correct under normal operation; the reconciler heals drift introduced by
// crashes or manual data changes. Each pass also sweeps old read
// notifications.
type Reconciler struct {
	eventRepo        counterReconciler
	notificationRepo notificationSweeper
	interval         time.Duration
	logger           zerolog.Logger
}

// NewReconciler creates a new Reconciler. notificationRepo may be nil to
// skip the notification sweep.
func NewReconciler(eventRepo counterReconciler, notificationRepo notificationSweeper, interval time.Duration, logger zerolog.Logger) *Reconciler {
	return &Reconciler{
		eventRepo:        eventRepo,
		notificationRepo: notificationRepo,
		interval:         interval,
		logger:           logger,
	}
}

// Run loops until the context is cancelled, reconciling once per interval.
// An immediate pass runs on startup to heal any drift from a prior crash.
func (r *Reconciler) Run(ctx context.Context) {
	r.logger.Info().Dur("interval", r.interval).Msg("Starting attendee count reconciler")

	if _, err := r.RunOnce(ctx); err != nil {
		r.logger.Error().Err(err).Msg("Initial reconcile pass failed")
	}

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info().Msg("Stopping attendee count reconciler")
			return
		case <-ticker.C:
			if _, err := r.RunOnce(ctx); err != nil {
				r.logger.Error().Err(err).Msg("Reconcile pass failed")
			}
		}
	}
}

// RunOnce performs a single reconcile pass
func (r *Reconciler) RunOnce(ctx context.Context) (*dto.ReconcileResultResponse, error) {
	startedAt := time.Now()

	checked, corrected, err := r.eventRepo.ReconcileAttendeeCounts(ctx)
	if err != nil {
		return nil, err
	}

	monitoring.RecordReconcileCorrections(corrected)

	if r.notificationRepo != nil {
		swept, err := r.notificationRepo.DeleteOldRead(ctx, startedAt.Add(-readNotificationTTL))
		if err != nil {
			r.logger.Error().Err(err).Msg("Notification sweep failed")
		} else if swept > 0 {
			r.logger.Info().Int64("swept", swept).Msg("Swept old read notifications")
		}
	}

	duration := time.Since(startedAt)
	if corrected > 0 {
		r.logger.Warn().
			Int("eventsChecked", checked).
			Int("corrected", corrected).
			Dur("duration", duration).
			Msg("Reconciler corrected drifted attendee counters")
	} else {
		r.logger.Debug().
			Int("eventsChecked", checked).
			Dur("duration", duration).
			Msg("Attendee counters in sync")
	}

	return &dto.ReconcileResultResponse{
		EventsChecked: checked,
		Corrected:     corrected,
		StartedAt:     startedAt,
		Duration:      duration.String(),
	}, nil
}
