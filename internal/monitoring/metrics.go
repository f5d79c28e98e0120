package monitoring

import (
	"context"
	"runtime"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	registrationOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "registration_operations_total",
			Help: "Total registration operations",
		},
		[]string{"operation", "status"},
	)

	attendeeCount = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "event_attendee_count",
			Help: "Current attendee count per event",
		},
		[]string{"event_id"},
	)

	notificationFanOuts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notification_fanouts_total",
			Help: "Total notification fan-out attempts",
		},
		[]string{"status"},
	)

	reconcileCorrections = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "reconcile_corrections_total",
			Help: "Total attendee counter corrections applied by the reconciler",
		},
	)

	goroutineCount = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "active_goroutines_total",
			Help: "Current number of active goroutines",
		},
	)
)

// Monitor periodically collects runtime metrics
type Monitor struct{}

// NewMonitor creates a monitor. Call Run to start collection.
func NewMonitor() *Monitor {
	return &Monitor{}
}

// Run collects runtime metrics until the context is cancelled
func (m *Monitor) Run(ctx context.Context) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			goroutineCount.Set(float64(runtime.NumGoroutine()))
		}
	}
}

// RecordRegistration counts a register/cancel operation with its outcome
func RecordRegistration(operation, status string) {
	registrationOperations.WithLabelValues(operation, status).Inc()
}

// SetAttendeeCount records the current attendee count for an event
func SetAttendeeCount(eventID int64, count int) {
	attendeeCount.WithLabelValues(strconv.FormatInt(eventID, 10)).Set(float64(count))
}

// RecordFanOut counts a notification fan-out attempt
func RecordFanOut(status string) {
	notificationFanOuts.WithLabelValues(status).Inc()
}

// RecordReconcileCorrections counts counter corrections applied by the reconciler
func RecordReconcileCorrections(n int) {
	if n > 0 {
		reconcileCorrections.Add(float64(n))
	}
}
