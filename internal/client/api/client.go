// Package api implements the remote todo API client. It translates todo
// intents into authenticated HTTP calls and parses responses into entity
// values. Every call obtains a fresh bearer credential from its
// CredentialProvider; tokens expire, so they are never cached here.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/quadrant/core/internal/domain/entities"
)

// CredentialProvider supplies a bearer token for a single request.
// Implementations must return a token that is valid at call time.
type CredentialProvider interface {
	Token(ctx context.Context) (string, error)
}

// TodoPatch carries the fields of a partial update. Nil fields are
// omitted from the request body and left untouched server-side.
type TodoPatch struct {
	Title       *string            `json:"title,omitempty"`
	Description *string            `json:"description,omitempty"`
	Priority    *entities.Priority `json:"priority,omitempty"`
	DueDate     *time.Time         `json:"dueDate,omitempty"`
	Completed   *bool              `json:"completed,omitempty"`
}

// CreateRequest carries the fields of a create call.
type CreateRequest struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Priority    entities.Priority `json:"priority"`
	DueDate     time.Time         `json:"dueDate"`
}

// Client is the remote todo API client
type Client struct {
	baseURL string
	http    *http.Client
	creds   CredentialProvider
}

// NewClient creates a client for the API at baseURL, e.g.
// "http://localhost:8080". The owner of returned todos is implied by
// the credential; the server scopes every call to the token's subject.
func NewClient(baseURL string, creds CredentialProvider) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{},
		creds:   creds,
	}
}

// FetchAll returns the caller's todos, newest first. The server caps the
// result at its list limit (20), so this is not the complete history.
func (c *Client) FetchAll(ctx context.Context) ([]entities.Todo, error) {
	var todos []entities.Todo
	if err := c.do(ctx, http.MethodGet, "/api/v1/todos", nil, &todos); err != nil {
		return nil, err
	}
	return todos, nil
}

// Create creates a todo and returns the server-assigned record,
// including its generated id and timestamps.
func (c *Client) Create(ctx context.Context, req CreateRequest) (*entities.Todo, error) {
	var todo entities.Todo
	if err := c.do(ctx, http.MethodPost, "/api/v1/todos", req, &todo); err != nil {
		return nil, err
	}
	return &todo, nil
}

// Update sends only the set fields of patch; absent fields are not
// overwritten server-side.
func (c *Client) Update(ctx context.Context, id uuid.UUID, patch TodoPatch) error {
	return c.do(ctx, http.MethodPut, "/api/v1/todos/"+id.String(), patch, nil)
}

// Remove deletes a todo. The server does not guarantee idempotence: a
// repeat call on an already-deleted id yields ErrNotFound.
func (c *Client) Remove(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/api/v1/todos/"+id.String(), nil, nil)
}

// ToggleComplete flips the completed flag; a restricted form of Update.
func (c *Client) ToggleComplete(ctx context.Context, id uuid.UUID, completed bool) error {
	return c.Update(ctx, id, TodoPatch{Completed: &completed})
}

// do performs one authenticated request. A fresh token is acquired per
// call; out, when non-nil, receives the decoded JSON response body.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	token, err := c.creds.Token(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrAuth, err)
	}

	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return c.statusError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%w: failed to decode response: %v", ErrNetwork, err)
		}
	}

	return nil
}

// statusError maps an HTTP failure status onto the error taxonomy.
func (c *Client) statusError(resp *http.Response) error {
	detail := readErrorMessage(resp.Body)

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrAuth, detail)
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return fmt.Errorf("%w: %s", ErrValidation, detail)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, detail)
	default:
		return fmt.Errorf("%w: server returned %d: %s", ErrNetwork, resp.StatusCode, detail)
	}
}

func readErrorMessage(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil || len(raw) == 0 {
		return "no error detail"
	}

	// Echo error payloads are either a bare string or {"message": ...}
	var asString string
	if json.Unmarshal(raw, &asString) == nil {
		return asString
	}
	var asObject struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(raw, &asObject) == nil && asObject.Message != "" {
		return asObject.Message
	}

	return string(raw)
}
