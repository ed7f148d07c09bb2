// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// travel-journal sync client. It aggregates all sub-configurations and
// is populated by merging values from environment variables,
// command-line flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as the background sync
	// interval.
	App App `envPrefix:"APP_"`

	// Storage holds configuration for the local persistence backends:
	// the SQLite database and the sync-state file.
	Storage Storage `envPrefix:"STORAGE_"`

	// Remote holds the endpoint and credentials of the remote backend.
	Remote Remote `envPrefix:"REMOTE_"`

	// API holds the listen address of the local status API consumed by
	// the UI process.
	API API `envPrefix:"API_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the
	// values already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level settings.
type App struct {
	// SyncInterval is the period of the background sync trigger.
	SyncInterval time.Duration `env:"SYNC_INTERVAL"`

	// ProbeInterval is how often the connectivity monitor re-checks
	// reachability of the remote backend.
	ProbeInterval time.Duration `env:"PROBE_INTERVAL"`
}

// Storage groups the configuration for the local persistence backends.
type Storage struct {
	// DB holds the SQLite database settings.
	DB DB `envPrefix:"DB_"`

	// StatePath is the path of the JSON file holding the sync
	// watermark, kept outside the relational database.
	StatePath string `env:"STATE_PATH"`
}

// DB contains local database connection settings.
type DB struct {
	// DSN is the SQLite file path (or ":memory:").
	DSN string `env:"DSN"`
}

// Remote contains the remote backend endpoint settings.
type Remote struct {
	// BaseURL is the root URL of the backend, e.g.
	// "https://abc.supabase.co".
	BaseURL string `env:"BASE_URL"`

	// AnonKey is the publishable API key sent with every request and
	// used for the anonymous session bootstrap.
	AnonKey string `env:"ANON_KEY"`

	// RequestTimeout is the per-request timeout of the HTTP transport.
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// API holds the local status API settings.
type API struct {
	// Address is the listen address, loopback by default — the status
	// API is meant for the UI process on the same device.
	Address string `env:"ADDRESS"`
}

// GetConfig assembles the configuration from environment variables,
// command-line flags, and the optional JSON file, in that order of
// precedence, then applies defaults and validates the result.
func GetConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}

func (c *StructuredConfig) applyDefaults() {
	if c.App.SyncInterval <= 0 {
		c.App.SyncInterval = 5 * time.Minute
	}
	if c.App.ProbeInterval <= 0 {
		c.App.ProbeInterval = 15 * time.Second
	}
	if c.Storage.DB.DSN == "" {
		c.Storage.DB.DSN = "journal.db"
	}
	if c.Storage.StatePath == "" {
		c.Storage.StatePath = "sync-state.json"
	}
	if c.Remote.RequestTimeout <= 0 {
		c.Remote.RequestTimeout = 15 * time.Second
	}
	if c.API.Address == "" {
		c.API.Address = "127.0.0.1:8723"
	}
}

func (c *StructuredConfig) validate() error {
	if c.Remote.BaseURL == "" {
		return ErrRemoteBaseURLRequired
	}
	if c.Remote.AnonKey == "" {
		return ErrRemoteAnonKeyRequired
	}
	return nil
}
