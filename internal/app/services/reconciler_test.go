package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCounterReconciler struct {
	mu        sync.Mutex
	calls     int
	checked   int
	corrected int
	err       error
}

func (f *fakeCounterReconciler) ReconcileAttendeeCounts(ctx context.Context) (int, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.checked, f.corrected, f.err
}

func (f *fakeCounterReconciler) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func TestReconcilerRunOnce(t *testing.T) {
	repo := &fakeCounterReconciler{checked: 12, corrected: 3}
	reconciler := NewReconciler(repo, nil, time.Minute, zerolog.Nop())

	resp, err := reconciler.RunOnce(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 12, resp.EventsChecked)
	assert.Equal(t, 3, resp.Corrected)
	assert.NotEmpty(t, resp.Duration)
	assert.WithinDuration(t, time.Now(), resp.StartedAt, time.Minute)
}

type fakeNotificationSweeper struct {
	mu     sync.Mutex
	swept  int64
	cutoff time.Time
	err    error
}

func (f *fakeNotificationSweeper) DeleteOldRead(ctx context.Context, olderThan time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cutoff = olderThan
	return f.swept, f.err
}

func TestReconcilerRunOnce_SweepsOldReadNotifications(t *testing.T) {
	repo := &fakeCounterReconciler{}
	sweeper := &fakeNotificationSweeper{swept: 4}
	reconciler := NewReconciler(repo, sweeper, time.Minute, zerolog.Nop())

	_, err := reconciler.RunOnce(context.Background())
	require.NoError(t, err)

	// Retention window is roughly thirty days
	assert.WithinDuration(t, time.Now().Add(-readNotificationTTL), sweeper.cutoff, time.Minute)
}

func TestReconcilerRunOnce_SweepErrorDoesNotFailThePass(t *testing.T) {
	repo := &fakeCounterReconciler{checked: 2}
	sweeper := &fakeNotificationSweeper{err: errors.New("db down")}
	reconciler := NewReconciler(repo, sweeper, time.Minute, zerolog.Nop())

	resp, err := reconciler.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, resp.EventsChecked)
}

func TestReconcilerRunOnce_Error(t *testing.T) {
	repo := &fakeCounterReconciler{err: errors.New("db down")}
	reconciler := NewReconciler(repo, nil, time.Minute, zerolog.Nop())

	_, err := reconciler.RunOnce(context.Background())
	assert.Error(t, err)
}

func TestReconcilerRun_ImmediatePassAndStop(t *testing.T) {
	repo := &fakeCounterReconciler{}
	reconciler := NewReconciler(repo, nil, time.Hour, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		reconciler.Run(ctx)
		close(done)
	}()

	// The startup pass runs before the first tick
	assert.Eventually(t, func() bool {
		return repo.callCount() == 1
	}, time.Second, 10*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("reconciler did not stop after context cancellation")
	}
}

func TestReconcilerRun_TicksUntilCancelled(t *testing.T) {
	repo := &fakeCounterReconciler{}
	reconciler := NewReconciler(repo, nil, 20*time.Millisecond, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		reconciler.Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		return repo.callCount() >= 3
	}, time.Second, 10*time.Millisecond)

	cancel()
	<-done
}
