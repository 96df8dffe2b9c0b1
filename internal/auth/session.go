// Package auth is the boundary to the excluded authentication collaborator.
// It reads the token blobs the login flow owns, performs the single silent
// refresh the backend allows, and clears credentials when that fails. It
// never issues tokens itself.
package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"furnistore/internal/blob"
	"furnistore/internal/model"

	"github.com/rs/zerolog"
)

// LoginPath is the entry point users are sent to when their session
// expires.
const LoginPath = "/login.html"

// TokenSource supplies bearer tokens for authenticated catalogue calls.
type TokenSource interface {
	// Token returns the current access token, or "" when the session is
	// anonymous.
	Token(ctx context.Context) (string, error)

	// Refresh performs one token-refresh attempt and returns the new
	// access token. On failure it clears the stored credentials and
	// returns model.ErrSessionExpired.
	Refresh(ctx context.Context) (string, error)

	// Clear removes all stored credentials.
	Clear(ctx context.Context) error
}

// Session reads and refreshes the token blobs of one browser session.
type Session struct {
	blobs      blob.Store
	refreshURL string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewSession creates a token source over the session's blob store.
// baseURL is the backend API root.
func NewSession(blobs blob.Store, baseURL string, httpClient *http.Client, logger zerolog.Logger) *Session {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Session{
		blobs:      blobs,
		refreshURL: baseURL + "/users/token/refresh/",
		httpClient: httpClient,
		logger:     logger.With().Str("component", "auth-session").Logger(),
	}
}

// Token returns the stored access token, or "" for anonymous sessions.
func (s *Session) Token(ctx context.Context) (string, error) {
	var token string
	ok, err := s.blobs.Get(ctx, blob.KeyAccessToken, &token)
	if err != nil {
		return "", fmt.Errorf("failed to read access token: %w", err)
	}
	if !ok {
		return "", nil
	}
	return token, nil
}

// refreshRequest and refreshResponse mirror the backend's token refresh
// endpoint payloads.
type refreshRequest struct {
	Refresh string `json:"refresh"`
}

type refreshResponse struct {
	Access string `json:"access"`
}

// Refresh exchanges the stored refresh token for a new access token. One
// attempt only; on any failure the credentials are cleared so the caller
// can redirect to the login page.
func (s *Session) Refresh(ctx context.Context) (string, error) {
	var refresh string
	ok, err := s.blobs.Get(ctx, blob.KeyRefreshToken, &refresh)
	if err != nil {
		return "", fmt.Errorf("failed to read refresh token: %w", err)
	}
	if !ok || refresh == "" {
		s.logger.Debug().Msg("no refresh token stored")
		return "", s.expire(ctx)
	}

	body, err := json.Marshal(refreshRequest{Refresh: refresh})
	if err != nil {
		return "", fmt.Errorf("failed to marshal refresh request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.refreshURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build refresh request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.logger.Warn().Err(err).Msg("token refresh request failed")
		return "", s.expire(ctx)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.logger.Warn().Int("status", resp.StatusCode).Msg("token refresh rejected")
		return "", s.expire(ctx)
	}

	var out refreshResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil || out.Access == "" {
		s.logger.Warn().Err(err).Msg("token refresh response unreadable")
		return "", s.expire(ctx)
	}

	if err := s.blobs.Set(ctx, blob.KeyAccessToken, out.Access); err != nil {
		return "", fmt.Errorf("failed to store refreshed token: %w", err)
	}

	s.logger.Debug().Msg("access token refreshed")
	return out.Access, nil
}

// Clear removes the access token, refresh token and user info blobs.
func (s *Session) Clear(ctx context.Context) error {
	for _, key := range []string{blob.KeyAccessToken, blob.KeyRefreshToken, blob.KeyUserInfo} {
		if err := s.blobs.Delete(ctx, key); err != nil {
			return fmt.Errorf("failed to clear credentials: %w", err)
		}
	}
	return nil
}

// expire clears the credentials and returns the session-expired error.
func (s *Session) expire(ctx context.Context) error {
	if err := s.Clear(ctx); err != nil {
		s.logger.Error().Err(err).Msg("failed to clear expired credentials")
	}
	return model.ErrSessionExpired
}

// LoginRedirect builds the login entry point URL carrying the path to
// return to after signing in.
func LoginRedirect(returnPath string) string {
	return LoginPath + "?next=" + url.QueryEscape(returnPath)
}
