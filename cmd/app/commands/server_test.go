package commands

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// fakeListener blocks in Start until Shutdown is called, or fails immediately
// when startErr is set.
type fakeListener struct {
	startErr    error
	shutdownErr error
	stopped     chan struct{}
	shutdowns   atomic.Int32
	deadline    atomic.Bool
}

func newFakeListener() *fakeListener {
	return &fakeListener{stopped: make(chan struct{})}
}

func (f *fakeListener) Start(ctx context.Context) error {
	if f.startErr != nil {
		return f.startErr
	}
	<-f.stopped
	return nil
}

func (f *fakeListener) Shutdown(ctx context.Context) error {
	if f.shutdowns.Add(1) == 1 {
		close(f.stopped)
	}
	_, ok := ctx.Deadline()
	f.deadline.Store(ok)
	return f.shutdownErr
}

func TestServe(t *testing.T) {
	t.Run("signal-drains-every-server", func(t *testing.T) {
		var logs bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&logs, nil))
		api, metricsListener := newFakeListener(), newFakeListener()

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() {
			done <- serve(ctx, logger, map[string]lifecycle{"api": api, "metrics": metricsListener}, time.Second)
		}()
		cancel()

		select {
		case err := <-done:
			require.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("serve did not return after cancellation")
		}
		require.Equal(t, int32(1), api.shutdowns.Load())
		require.Equal(t, int32(1), metricsListener.shutdowns.Load())
		require.True(t, api.deadline.Load())
		require.Contains(t, logs.String(), "shutdown signal received")
	})

	t.Run("listener-failure-stops-the-others", func(t *testing.T) {
		var logs bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&logs, nil))
		api := newFakeListener()
		metricsListener := newFakeListener()
		metricsListener.startErr = errors.New("address already in use")

		err := serve(context.Background(), logger, map[string]lifecycle{"api": api, "metrics": metricsListener}, time.Second)
		require.Error(t, err)
		require.Contains(t, err.Error(), "metrics server error: address already in use")
		require.Equal(t, int32(1), api.shutdowns.Load())
		require.Contains(t, logs.String(), "server stopped unexpectedly")
	})

	t.Run("shutdown-error-is-returned", func(t *testing.T) {
		logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
		api := newFakeListener()
		api.shutdownErr = context.DeadlineExceeded

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := serve(ctx, logger, map[string]lifecycle{"api": api}, time.Millisecond)
		require.ErrorIs(t, err, context.DeadlineExceeded)
		require.Contains(t, err.Error(), "api server shutdown")
	})
}
