package monitoring

import (
	"context"
	"testing"
	"time"
)

func TestMonitorRun_StopsOnContextCancel(t *testing.T) {
	monitor := NewMonitor()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		monitor.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("monitor did not stop after context cancellation")
	}
}
