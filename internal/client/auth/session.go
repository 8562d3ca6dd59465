// Package auth holds the client-side credential session. A Session keeps
// only the long-lived refresh token; access tokens are minted fresh for
// every request because they expire quickly.
package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
)

// Session implements api.CredentialProvider against the auth endpoints.
type Session struct {
	baseURL string
	http    *http.Client

	mu           sync.Mutex
	refreshToken string
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type tokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	TokenType    string `json:"tokenType"`
	ExpiresIn    int64  `json:"expiresIn"`
}

// Login authenticates with email and password and returns a session
// holding the issued refresh token.
func Login(ctx context.Context, baseURL, email, password string) (*Session, error) {
	s := &Session{
		baseURL: baseURL,
		http:    &http.Client{},
	}

	resp, err := s.post(ctx, "/api/v1/auth/login", credentialsRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}

	s.refreshToken = resp.RefreshToken
	return s, nil
}

// Register creates an account and returns a logged-in session.
func Register(ctx context.Context, baseURL, email, password string) (*Session, error) {
	s := &Session{
		baseURL: baseURL,
		http:    &http.Client{},
	}

	resp, err := s.post(ctx, "/api/v1/auth/register", credentialsRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}

	s.refreshToken = resp.RefreshToken
	return s, nil
}

// Token mints a fresh access token for one request. The server rotates
// refresh tokens, so the stored one is replaced on every call.
func (s *Session) Token(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.refreshToken == "" {
		return "", fmt.Errorf("no active session")
	}

	resp, err := s.post(ctx, "/api/v1/auth/refresh", refreshRequest{RefreshToken: s.refreshToken})
	if err != nil {
		return "", err
	}

	s.refreshToken = resp.RefreshToken
	return resp.AccessToken, nil
}

func (s *Session) post(ctx context.Context, path string, body interface{}) (*tokenResponse, error) {
	encoded, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+path, bytes.NewReader(encoded))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("auth request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("auth request rejected with status %d", resp.StatusCode)
	}

	var tokens tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokens); err != nil {
		return nil, fmt.Errorf("failed to decode auth response: %w", err)
	}

	return &tokens, nil
}
