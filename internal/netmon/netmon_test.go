package netmon

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/travel-journal-sync/internal/logger"
)

func TestMonitor_StartsOffline(t *testing.T) {
	m := NewMonitor(func(ctx context.Context) error { return nil }, time.Hour, logger.Nop())

	assert.False(t, m.Online())
}

func TestMonitor_FirstProbeRunsImmediately(t *testing.T) {
	m := NewMonitor(func(ctx context.Context) error { return nil }, time.Hour, logger.Nop())
	ch := m.Subscribe()

	m.Start(context.Background())
	defer m.Close()

	select {
	case online := <-ch:
		assert.True(t, online)
	case <-time.After(2 * time.Second):
		t.Fatal("no transition observed")
	}
	assert.True(t, m.Online())
}

func TestMonitor_PublishesTransitions(t *testing.T) {
	var failing atomic.Bool
	probe := func(ctx context.Context) error {
		if failing.Load() {
			return errors.New("unreachable")
		}
		return nil
	}

	m := NewMonitor(probe, 10*time.Millisecond, logger.Nop())
	ch := m.Subscribe()

	m.Start(context.Background())
	defer m.Close()

	// offline -> online
	require.True(t, waitForState(t, ch, true))

	// online -> offline
	failing.Store(true)
	require.True(t, waitForState(t, ch, false))
	assert.False(t, m.Online())

	// offline -> online again
	failing.Store(false)
	require.True(t, waitForState(t, ch, true))
	assert.True(t, m.Online())
}

func TestMonitor_NoEventWithoutTransition(t *testing.T) {
	m := NewMonitor(func(ctx context.Context) error { return nil }, 10*time.Millisecond, logger.Nop())
	ch := m.Subscribe()

	m.Start(context.Background())
	defer m.Close()

	require.True(t, waitForState(t, ch, true))

	// state stays online, so no further events arrive
	select {
	case online := <-ch:
		t.Fatalf("unexpected transition to %v", online)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestMonitor_CloseStopsProbing(t *testing.T) {
	var calls atomic.Int32
	m := NewMonitor(func(ctx context.Context) error {
		calls.Add(1)
		return nil
	}, 10*time.Millisecond, logger.Nop())

	m.Start(context.Background())
	time.Sleep(50 * time.Millisecond)
	m.Close()

	after := calls.Load()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, after, calls.Load())
}

func waitForState(t *testing.T, ch <-chan bool, want bool) bool {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case got := <-ch:
			if got == want {
				return true
			}
		case <-deadline:
			return false
		}
	}
}
