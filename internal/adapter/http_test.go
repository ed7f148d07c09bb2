// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/travel-journal-sync/internal/config"
	"github.com/MKhiriev/travel-journal-sync/internal/logger"
	"github.com/MKhiriev/travel-journal-sync/models"
)

func newTestRemote(t *testing.T, serverURL string) *httpRemoteStore {
	t.Helper()
	cfg := config.Remote{
		BaseURL:        serverURL,
		AnonKey:        "test_anon_key",
		RequestTimeout: 5 * time.Second,
	}

	r, err := NewHTTPRemoteStore(cfg, logger.Nop())
	require.NoError(t, err)
	return r.(*httpRemoteStore)
}

func signedTestToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "anon-user",
		"exp": expiresAt.Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

// signupHandler answers the anonymous sign-in endpoint with a fresh token.
func signupHandler(t *testing.T, calls *atomic.Int32, token string) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "test_anon_key", r.Header.Get("apikey"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": token,
			"token_type":   "bearer",
			"expires_in":   3600,
		})
	}
}

// ── EnsureSession ───────────────────────────────────────────────────────────

func TestEnsureSession_SignsInAnonymously(t *testing.T) {
	var calls atomic.Int32
	token := signedTestToken(t, time.Now().Add(time.Hour))

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/v1/signup", signupHandler(t, &calls, token))
	srv := httptest.NewServer(mux)
	defer srv.Close()

	a := newTestRemote(t, srv.URL)

	require.NoError(t, a.EnsureSession(context.Background()))
	assert.Equal(t, token, a.currentToken())

	// the fresh token is reused, no second sign-in
	require.NoError(t, a.EnsureSession(context.Background()))
	assert.Equal(t, int32(1), calls.Load())
}

func TestEnsureSession_RefreshesExpiredToken(t *testing.T) {
	var calls atomic.Int32
	token := signedTestToken(t, time.Now().Add(time.Hour))

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/v1/signup", signupHandler(t, &calls, token))
	srv := httptest.NewServer(mux)
	defer srv.Close()

	a := newTestRemote(t, srv.URL)
	a.token = signedTestToken(t, time.Now().Add(-time.Minute))

	require.NoError(t, a.EnsureSession(context.Background()))
	assert.Equal(t, token, a.currentToken())
	assert.Equal(t, int32(1), calls.Load())
}

func TestEnsureSession_EmptyAccessToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	a := newTestRemote(t, srv.URL)

	err := a.EnsureSession(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty access token")
}

func TestEnsureSession_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("internal server error"))
	}))
	defer srv.Close()

	a := newTestRemote(t, srv.URL)

	err := a.EnsureSession(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInternalServerError)
}

// ── Ping ────────────────────────────────────────────────────────────────────

func TestPing_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/health", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	a := newTestRemote(t, srv.URL)

	assert.NoError(t, a.Ping(context.Background()))
}

func TestPing_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // immediately, so the address refuses connections

	a := newTestRemote(t, srv.URL)

	err := a.Ping(context.Background())
	require.Error(t, err)
	assert.True(t, IsConnectivityError(err))
}

// ── Select ──────────────────────────────────────────────────────────────────

func TestSelect_QueryAndDecode(t *testing.T) {
	var calls atomic.Int32
	token := signedTestToken(t, time.Now().Add(time.Hour))
	watermark := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/v1/signup", signupHandler(t, &calls, token))
	mux.HandleFunc("/rest/v1/trips", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "Bearer "+token, r.Header.Get("Authorization"))
		assert.Equal(t, "*", r.URL.Query().Get("select"))
		assert.Equal(t, "gt.2026-08-30T10:00:00Z", r.URL.Query().Get("updated_at"))
		assert.Equal(t, "updated_at.asc", r.URL.Query().Get("order"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id": "trip-1", "title": "Norway"}]`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	a := newTestRemote(t, srv.URL)

	var rows []models.TripRow
	require.NoError(t, a.Select(context.Background(), "trips", watermark, &rows))

	require.Len(t, rows, 1)
	assert.Equal(t, "trip-1", rows[0].ID)
	assert.Equal(t, "Norway", rows[0].Title)
}

func TestSelect_Unauthorized(t *testing.T) {
	var calls atomic.Int32
	token := signedTestToken(t, time.Now().Add(time.Hour))

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/v1/signup", signupHandler(t, &calls, token))
	mux.HandleFunc("/rest/v1/trips", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte("jwt expired"))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	a := newTestRemote(t, srv.URL)

	var rows []models.TripRow
	err := a.Select(context.Background(), "trips", time.Time{}, &rows)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

// ── Upsert ──────────────────────────────────────────────────────────────────

func TestUpsert_MergeDuplicates(t *testing.T) {
	var calls atomic.Int32
	token := signedTestToken(t, time.Now().Add(time.Hour))

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/v1/signup", signupHandler(t, &calls, token))
	mux.HandleFunc("/rest/v1/entries", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Contains(t, r.Header.Get("Prefer"), "resolution=merge-duplicates")

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "entry-1", body["id"])

		w.WriteHeader(http.StatusCreated)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	a := newTestRemote(t, srv.URL)

	err := a.Upsert(context.Background(), "entries", map[string]any{"id": "entry-1"})
	assert.NoError(t, err)
}

// ── UpdateFields ────────────────────────────────────────────────────────────

func TestUpdateFields_PatchesByID(t *testing.T) {
	var calls atomic.Int32
	token := signedTestToken(t, time.Now().Add(time.Hour))

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/v1/signup", signupHandler(t, &calls, token))
	mux.HandleFunc("/rest/v1/trips", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "eq.trip-1", r.URL.Query().Get("id"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, true, body["deleted"])

		w.WriteHeader(http.StatusNoContent)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	a := newTestRemote(t, srv.URL)

	err := a.UpdateFields(context.Background(), "trips", "trip-1", map[string]any{"deleted": true})
	assert.NoError(t, err)
}

// ── helpers ─────────────────────────────────────────────────────────────────

func TestNewHTTPRemoteStore_InvalidURL(t *testing.T) {
	_, err := NewHTTPRemoteStore(config.Remote{BaseURL: "   "}, logger.Nop())
	assert.Error(t, err)
}

func TestTokenUsable(t *testing.T) {
	now := time.Now()

	assert.False(t, tokenUsable("", now))
	assert.False(t, tokenUsable("not-a-jwt", now))

	expired := signedTestToken(t, now.Add(-time.Minute))
	assert.False(t, tokenUsable(expired, now))

	almostExpired := signedTestToken(t, now.Add(10*time.Second))
	assert.False(t, tokenUsable(almostExpired, now))

	fresh := signedTestToken(t, now.Add(time.Hour))
	assert.True(t, tokenUsable(fresh, now))
}
