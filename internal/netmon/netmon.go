// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package netmon tracks reachability of the remote backend.
//
// Mobile runtimes push connectivity events to the application; a headless
// client has to find out for itself. [Monitor] polls a caller-supplied probe
// on a fixed interval and publishes online/offline transitions to
// subscribers, so the sync engine can fire as soon as the device comes back
// online instead of waiting for the next scheduled run.
package netmon

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/travel-journal-sync/internal/logger"
)

// Probe checks whether the backend is reachable right now. A nil return
// means online. Implementations must honour ctx cancellation.
type Probe func(ctx context.Context) error

// Monitor polls a [Probe] and exposes the current connectivity state.
type Monitor struct {
	probe    Probe
	interval time.Duration
	logger   *logger.Logger

	mu     sync.Mutex
	online bool
	subs   []chan bool

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewMonitor returns a stopped monitor. The state is offline until the
// first probe succeeds.
func NewMonitor(probe Probe, interval time.Duration, logger *logger.Logger) *Monitor {
	return &Monitor{
		probe:    probe,
		interval: interval,
		logger:   logger,
	}
}

// Start launches the polling loop. The first probe runs immediately so
// callers get a real state without waiting a full interval.
func (m *Monitor) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)

	m.mu.Lock()
	m.cancel = cancel
	m.mu.Unlock()

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()

		m.check(ctx)

		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.check(ctx)
			}
		}
	}()
}

// Online reports the state observed by the most recent probe.
func (m *Monitor) Online() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.online
}

// Subscribe returns a channel that receives the new state on every
// online/offline transition. The channel is buffered; a slow consumer
// misses intermediate flips but always ends up seeing the latest state.
func (m *Monitor) Subscribe() <-chan bool {
	ch := make(chan bool, 4)

	m.mu.Lock()
	m.subs = append(m.subs, ch)
	m.mu.Unlock()

	return ch
}

// Close stops the polling loop and waits for it to exit.
func (m *Monitor) Close() {
	m.mu.Lock()
	cancel := m.cancel
	m.cancel = nil
	m.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	m.wg.Wait()
}

func (m *Monitor) check(ctx context.Context) {
	probeCtx, cancel := context.WithTimeout(ctx, m.interval)
	defer cancel()

	err := m.probe(probeCtx)
	m.setOnline(err == nil)
}

func (m *Monitor) setOnline(online bool) {
	m.mu.Lock()
	changed := m.online != online
	m.online = online
	subs := m.subs
	m.mu.Unlock()

	if !changed {
		return
	}

	m.logger.Info().Str("func", "Monitor.setOnline").Bool("online", online).Msg("connectivity changed")

	for _, ch := range subs {
		select {
		case ch <- online:
		default:
			// subscriber is behind, it will catch up on the next flip
		}
	}
}
