// Package client provides a Go client for the Telanix engagement API. It
// keeps a local mirror of the authenticated user's likes, ratings and
// reviews, updated only after the server acknowledges each mutation.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"telanix/internal/models"
)

// ErrNotAuthenticated is returned by every mutating call made before a
// successful Login. The mirror is never touched in that case.
var ErrNotAuthenticated = errors.New("client: not authenticated")

// envelope mirrors the server's uniform response shape with the payload
// left raw for per-call decoding.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Code    string          `json:"code"`
	Message string          `json:"message"`
}

// APIError carries a failed envelope back to the caller.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("client: api error %d (%s): %s", e.Status, e.Code, e.Message)
}

// Client talks to the engagement API on behalf of one user session.
// All methods are safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client

	mu      sync.RWMutex
	token   string
	userID  uint
	likes   map[uint]struct{}
	ratings map[uint]models.Rating
	reviews []models.Review
}

// New creates a Client against the given base URL, e.g.
// "http://localhost:3001".
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
		likes:   map[uint]struct{}{},
		ratings: map[uint]models.Rating{},
	}
}

func (c *Client) do(ctx context.Context, method, path string, payload any, out any) error {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	c.mu.RLock()
	token := c.token
	c.mu.RUnlock()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("client: decoding response: %w", err)
	}
	if !env.Success {
		return &APIError{Status: resp.StatusCode, Code: env.Code, Message: env.Error}
	}
	if out != nil && len(env.Data) > 0 {
		return json.Unmarshal(env.Data, out)
	}
	return nil
}

type authPayload struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// Register creates an account and starts a session for it.
func (c *Client) Register(ctx context.Context, email, password, name string) (*models.User, error) {
	var auth authPayload
	err := c.do(ctx, http.MethodPost, "/api/auth/register", map[string]string{
		"email": email, "password": password, "name": name,
	}, &auth)
	if err != nil {
		return nil, err
	}
	return &auth.User, c.startSession(ctx, auth)
}

// Login authenticates and replaces the local mirror wholesale with the
// server's engagement state for this account. Any state from a previous
// session is discarded, not merged.
func (c *Client) Login(ctx context.Context, email, password string) (*models.User, error) {
	var auth authPayload
	err := c.do(ctx, http.MethodPost, "/api/auth/login", map[string]string{
		"email": email, "password": password,
	}, &auth)
	if err != nil {
		return nil, err
	}
	return &auth.User, c.startSession(ctx, auth)
}

func (c *Client) startSession(ctx context.Context, auth authPayload) error {
	c.mu.Lock()
	c.token = auth.Token
	c.userID = auth.User.ID
	c.likes = map[uint]struct{}{}
	c.ratings = map[uint]models.Rating{}
	c.reviews = nil
	c.mu.Unlock()
	return c.Refresh(ctx)
}

// Refresh reloads the full mirror from the server.
func (c *Client) Refresh(ctx context.Context) error {
	c.mu.RLock()
	userID := c.userID
	c.mu.RUnlock()
	if userID == 0 {
		return ErrNotAuthenticated
	}

	var movieIDs []uint
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/likes/user/%d", userID), nil, &movieIDs); err != nil {
		return err
	}
	var ratings []models.Rating
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/ratings/user/%d", userID), nil, &ratings); err != nil {
		return err
	}
	var reviews []models.Review
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/reviews/user/%d", userID), nil, &reviews); err != nil {
		return err
	}

	c.mu.Lock()
	c.likes = make(map[uint]struct{}, len(movieIDs))
	for _, id := range movieIDs {
		c.likes[id] = struct{}{}
	}
	c.ratings = make(map[uint]models.Rating, len(ratings))
	for _, r := range ratings {
		c.ratings[r.MovieID] = r
	}
	c.reviews = reviews
	c.mu.Unlock()
	return nil
}

// Logout ends the session and clears the mirror.
func (c *Client) Logout(ctx context.Context) error {
	c.mu.RLock()
	authenticated := c.userID != 0
	c.mu.RUnlock()

	if authenticated {
		// Best-effort server-side revocation; the local session ends
		// regardless.
		_ = c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
	}

	c.mu.Lock()
	c.token = ""
	c.userID = 0
	c.likes = map[uint]struct{}{}
	c.ratings = map[uint]models.Rating{}
	c.reviews = nil
	c.mu.Unlock()
	return nil
}

// CurrentUserID returns the authenticated user's ID, or zero.
func (c *Client) CurrentUserID() uint {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.userID
}

func (c *Client) requireAuth() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.userID == 0 {
		return ErrNotAuthenticated
	}
	return nil
}
