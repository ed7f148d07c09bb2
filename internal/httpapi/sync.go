package httpapi

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/travel-journal-sync/internal/logger"
	"github.com/MKhiriev/travel-journal-sync/models"
)

type statusResponse struct {
	IsSyncing  bool              `json:"is_syncing"`
	LastResult models.SyncResult `json:"last_result"`
	LastError  string            `json:"last_error,omitempty"`
}

func (h *Handler) status(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	resp := statusResponse{
		IsSyncing:  h.session.IsSyncing(),
		LastResult: h.session.LastResult(),
		LastError:  h.session.LastError(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Err(err).Msg("failed to encode sync status")
	}
}

// sync triggers one pass and reports its outcome. Overlap and offline
// are ordinary outcomes, not transport errors, so the status stays 200
// and the body carries the failure.
func (h *Handler) sync(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	// A started pass runs to completion even when the UI client
	// disconnects mid-request, so the pass must not inherit the
	// request's cancellation.
	result := h.session.SyncData(context.WithoutCancel(r.Context()))

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		log.Err(err).Msg("failed to encode sync result")
	}
}
