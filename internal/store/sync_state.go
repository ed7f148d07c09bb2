// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// LastSyncKey is the key under which the watermark of the last
// successful full sync is stored.
const LastSyncKey = "last_sync_timestamp"

// fileSyncStateStore keeps sync bookkeeping in a small JSON file next
// to the database, outside the relational store. The file survives
// schema migrations and database resets, which is exactly what a sync
// watermark must do.
type fileSyncStateStore struct {
	path string

	mu     sync.Mutex
	loaded bool
	values map[string]string
}

var _ SyncStateStore = (*fileSyncStateStore)(nil)

// NewFileSyncStateStore returns a SyncStateStore backed by the JSON
// file at path. The file is created lazily on the first Set.
func NewFileSyncStateStore(path string) SyncStateStore {
	return &fileSyncStateStore{path: path, values: make(map[string]string)}
}

func (s *fileSyncStateStore) Get(key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(); err != nil {
		return "", err
	}

	return s.values[key], nil
}

func (s *fileSyncStateStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(); err != nil {
		return err
	}

	s.values[key] = value
	return s.persist()
}

func (s *fileSyncStateStore) load() error {
	if s.loaded {
		return nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.loaded = true
			return nil
		}
		return fmt.Errorf("read sync state file: %w", err)
	}

	if err = json.Unmarshal(data, &s.values); err != nil {
		return fmt.Errorf("decode sync state file: %w", err)
	}
	if s.values == nil {
		s.values = make(map[string]string)
	}

	s.loaded = true
	return nil
}

func (s *fileSyncStateStore) persist() error {
	dir := filepath.Dir(s.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create sync state dir: %w", err)
		}
	}

	payload, err := json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		return fmt.Errorf("encode sync state: %w", err)
	}

	if err = os.WriteFile(s.path, payload, 0o600); err != nil {
		return fmt.Errorf("write sync state file: %w", err)
	}

	return nil
}
