// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package httpapi exposes the sync engine to the UI process over a
// small loopback HTTP API: screens poll the sync status and can
// trigger a manual sync.
package httpapi

import (
	"context"

	"github.com/MKhiriev/travel-journal-sync/internal/logger"
	"github.com/MKhiriev/travel-journal-sync/models"
)

// syncController is the slice of service.SyncSession the API needs.
type syncController interface {
	SyncData(ctx context.Context) models.SyncResult
	IsSyncing() bool
	LastResult() models.SyncResult
	LastError() string
}

type Handler struct {
	session syncController

	logger *logger.Logger
}

func NewHandler(session syncController, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		session: session,
		logger:  logger,
	}
}
