// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the sync client application runtime.
//
// It wires the connectivity monitor, the background sync session, and the
// loopback API server into a single process lifecycle.
package client
