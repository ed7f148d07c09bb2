// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides transport-layer abstractions for communicating with
// the remote journal backend.
//
// The primary abstraction is [RemoteStore], which decouples the sync engine
// from the underlying protocol. The package ships an HTTP/REST implementation
// ([NewHTTPRemoteStore]) speaking the PostgREST dialect used by Supabase-style
// backends.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic error
// handling (e.g. [ErrUnauthorized] for 401, [ErrConflict] for 409).
package adapter

import (
	"context"
	"time"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/remote_store_mock.go -package=mock

// RemoteStore defines transport-agnostic communication with the remote
// journal backend. Implementations are responsible for serialisation,
// session management, and mapping transport-level errors to the sentinel
// values defined in this package.
type RemoteStore interface {
	// EnsureSession makes sure the adapter holds a usable access token,
	// signing in anonymously if the current one is missing or about to
	// expire. Safe to call before every request; it is a no-op while the
	// session is still fresh.
	EnsureSession(ctx context.Context) error

	// Ping performs a lightweight reachability check against the backend.
	// Returns nil when the backend answered, an error otherwise. It does
	// not require a session.
	Ping(ctx context.Context) error

	// Select fetches all rows of table whose updated_at is strictly after
	// updatedAfter, ordered by updated_at ascending, and decodes them into
	// dest (a pointer to a slice of row structs).
	Select(ctx context.Context, table string, updatedAfter time.Time, dest any) error

	// Upsert writes one full row to table, inserting it or overwriting the
	// existing row with the same primary key.
	Upsert(ctx context.Context, table string, row any) error

	// UpdateFields patches the row of table identified by id, writing only
	// the given columns. Used for remote soft deletes, where the rest of
	// the row must stay untouched.
	UpdateFields(ctx context.Context, table string, id string, fields map[string]any) error
}
