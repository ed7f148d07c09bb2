package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/MKhiriev/travel-journal-sync/internal/config"
	"github.com/MKhiriev/travel-journal-sync/internal/logger"
	"github.com/MKhiriev/travel-journal-sync/internal/utils"
)

// sessionLeeway is subtracted from the token expiry so a request started
// just before expiry does not arrive with a dead token.
const sessionLeeway = 30 * time.Second

type httpRemoteStore struct {
	client  *utils.HTTPClient
	anonKey string

	mu    sync.Mutex
	token string

	now func() time.Time

	logger *logger.Logger
}

// NewHTTPRemoteStore constructs an HTTP/REST implementation of [RemoteStore]
// speaking the PostgREST dialect. It normalises and validates the base URL
// from cfg.BaseURL and configures the underlying HTTP client with the
// resolved base URL, the request timeout, and the apikey header sent with
// every request.
//
// Returns an error if cfg.BaseURL is empty or cannot be parsed as a valid URL.
func NewHTTPRemoteStore(cfg config.Remote, logger *logger.Logger) (RemoteStore, error) {
	baseURL, err := normalizeBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid remote base url: %w", err)
	}

	client := utils.NewHTTPClient()
	client.
		SetBaseURL(baseURL).
		SetTimeout(cfg.RequestTimeout).
		SetHeader("apikey", cfg.AnonKey)

	return &httpRemoteStore{
		client:  client,
		anonKey: cfg.AnonKey,
		now:     time.Now,
		logger:  logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

type sessionResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// EnsureSession implements [RemoteStore]. The journal backend has no user
// accounts; the device signs in anonymously and reuses the returned access
// token until shortly before it expires.
func (h *httpRemoteStore) EnsureSession(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if tokenUsable(h.token, h.now()) {
		return nil
	}

	var session sessionResponse
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]any{}).
		SetResult(&session).
		Post("/auth/v1/signup")
	if err != nil {
		return fmt.Errorf("anonymous sign-in request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return fmt.Errorf("anonymous sign-in: %w", err)
	}
	if session.AccessToken == "" {
		return fmt.Errorf("anonymous sign-in: empty access token in response")
	}

	h.token = session.AccessToken
	h.logger.Debug().Str("func", "httpRemoteStore.EnsureSession").Msg("anonymous session established")

	return nil
}

func tokenUsable(token string, now time.Time) bool {
	if token == "" {
		return false
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}

	return exp.After(now.Add(sessionLeeway))
}

// Ping implements [RemoteStore]. It hits the auth health endpoint, which
// answers without a session.
func (h *httpRemoteStore) Ping(ctx context.Context) error {
	resp, err := h.client.R().
		SetContext(ctx).
		Get("/auth/v1/health")
	if err != nil {
		return fmt.Errorf("ping request: %w", err)
	}

	return mapHTTPError(resp)
}

// Select implements [RemoteStore]. Rows changed strictly after updatedAfter
// come back ordered oldest-first, so a partially applied batch still moves
// the watermark forward consistently on the next run.
func (h *httpRemoteStore) Select(ctx context.Context, table string, updatedAfter time.Time, dest any) error {
	if err := h.EnsureSession(ctx); err != nil {
		return err
	}

	resp, err := h.client.R().
		SetContext(ctx).
		SetAuthToken(h.currentToken()).
		SetQueryParams(map[string]string{
			"select":     "*",
			"updated_at": "gt." + updatedAfter.UTC().Format(time.RFC3339Nano),
			"order":      "updated_at.asc",
		}).
		Get("/rest/v1/" + table)
	if err != nil {
		return fmt.Errorf("select %s request: %w", table, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return fmt.Errorf("select %s: %w", table, err)
	}

	if err = json.Unmarshal(resp.Body(), dest); err != nil {
		return fmt.Errorf("select %s decode: %w", table, err)
	}

	return nil
}

// Upsert implements [RemoteStore]. The whole row is written; merge-duplicates
// makes the backend overwrite an existing row with the same primary key
// instead of rejecting the insert.
func (h *httpRemoteStore) Upsert(ctx context.Context, table string, row any) error {
	if err := h.EnsureSession(ctx); err != nil {
		return err
	}

	resp, err := h.client.R().
		SetContext(ctx).
		SetAuthToken(h.currentToken()).
		SetHeader("Content-Type", "application/json").
		SetHeader("Prefer", "resolution=merge-duplicates,return=minimal").
		SetBody(row).
		Post("/rest/v1/" + table)
	if err != nil {
		return fmt.Errorf("upsert %s request: %w", table, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return fmt.Errorf("upsert %s: %w", table, err)
	}

	return nil
}

// UpdateFields implements [RemoteStore].
func (h *httpRemoteStore) UpdateFields(ctx context.Context, table string, id string, fields map[string]any) error {
	if err := h.EnsureSession(ctx); err != nil {
		return err
	}

	resp, err := h.client.R().
		SetContext(ctx).
		SetAuthToken(h.currentToken()).
		SetHeader("Content-Type", "application/json").
		SetHeader("Prefer", "return=minimal").
		SetQueryParam("id", "eq."+id).
		SetBody(fields).
		Patch("/rest/v1/" + table)
	if err != nil {
		return fmt.Errorf("update %s %s request: %w", table, id, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return fmt.Errorf("update %s %s: %w", table, id, err)
	}

	return nil
}

func (h *httpRemoteStore) currentToken() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.token
}
