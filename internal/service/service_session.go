// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/travel-journal-sync/internal/logger"
	"github.com/MKhiriev/travel-journal-sync/models"
)

// connectivity is the slice of netmon.Monitor the session needs.
type connectivity interface {
	Online() bool
	Subscribe() <-chan bool
}

// SyncSession owns all mutable sync-scheduling state: the in-flight
// guard, the last observed result, and the background triggers. One
// session lives as long as the process.
type SyncSession struct {
	sync     SyncService
	monitor  connectivity
	interval time.Duration
	logger   *logger.Logger

	inFlight atomic.Bool

	mu         sync.Mutex
	syncing    bool
	lastResult models.SyncResult
	lastError  string

	foreground chan struct{}
	cancel     context.CancelFunc
	wg         sync.WaitGroup
}

// NewSyncSession creates an idle session. interval is the period of the
// background trigger; zero or negative falls back to 5 minutes.
func NewSyncSession(syncService SyncService, monitor connectivity, interval time.Duration, logger *logger.Logger) *SyncSession {
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	return &SyncSession{
		sync:       syncService,
		monitor:    monitor,
		interval:   interval,
		logger:     logger,
		foreground: make(chan struct{}, 1),
	}
}

// SyncData runs one sync pass. While a pass is already in flight, the
// call fails fast without touching the network or the stored result.
// While offline it fails fast too; the pending records stay pending.
func (s *SyncSession) SyncData(ctx context.Context) models.SyncResult {
	if !s.inFlight.CompareAndSwap(false, true) {
		return models.SyncResult{Success: false, Error: ErrSyncInProgress.Error()}
	}
	defer s.inFlight.Store(false)

	s.setSyncing(true)
	defer s.setSyncing(false)

	if !s.monitor.Online() {
		result := models.SyncResult{Success: false, Error: ErrNoConnection.Error()}
		s.record(result)
		return result
	}

	result := s.sync.SyncAll(ctx)
	s.record(result)
	return result
}

// IsSyncing reports whether a pass is currently running.
func (s *SyncSession) IsSyncing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.syncing
}

// LastResult returns the outcome of the most recent completed pass.
func (s *SyncSession) LastResult() models.SyncResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastResult
}

// LastError returns the error text of the most recent failed pass, or
// "" when the last pass succeeded.
func (s *SyncSession) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastError
}

// NotifyForeground signals that the app returned to the foreground.
// Never blocks; a signal that arrives while one is already queued is
// folded into it.
func (s *SyncSession) NotifyForeground() {
	select {
	case s.foreground <- struct{}{}:
	default:
	}
}

// Run starts the background triggers: an initial pass when the device
// is already online, offline-to-online transitions, foreground
// notifications, and the periodic ticker. It returns immediately; the
// triggers run until ctx is cancelled or Close is called.
func (s *SyncSession) Run(ctx context.Context) {
	s.mu.Lock()
	sessionCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.mu.Unlock()

	transitions := s.monitor.Subscribe()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		if s.monitor.Online() {
			s.SyncData(sessionCtx)
		}

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-sessionCtx.Done():
				return
			case online := <-transitions:
				if online {
					s.logger.Info().Str("func", "SyncSession.Run").Msg("back online, syncing")
					s.SyncData(sessionCtx)
				}
			case <-s.foreground:
				// skipped while a pass is running, same as the mobile app
				// returning to the foreground mid-sync
				if !s.IsSyncing() && s.monitor.Online() {
					s.SyncData(sessionCtx)
				}
			case <-ticker.C:
				if s.monitor.Online() {
					s.SyncData(sessionCtx)
				}
			}
		}
	}()
}

// Close stops the background triggers and blocks until the trigger
// goroutine has exited. Safe to call when Run was never called.
func (s *SyncSession) Close() {
	s.mu.Lock()
	cancel := s.cancel
	s.cancel = nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	s.wg.Wait()
}

func (s *SyncSession) setSyncing(v bool) {
	s.mu.Lock()
	s.syncing = v
	s.mu.Unlock()
}

func (s *SyncSession) record(result models.SyncResult) {
	s.mu.Lock()
	s.lastResult = result
	s.lastError = result.Error
	s.mu.Unlock()
}
