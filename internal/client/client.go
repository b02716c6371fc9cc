// Package client talks to the lead funnel HTTP API. It backs the terminal
// wizard (as a wizard.Submitter) and the admin dashboard (as a
// dashboard.Lister).
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/mercury-homes/lead-funnel/internal/core/domain"
	"github.com/mercury-homes/lead-funnel/internal/wizard"
)

const defaultTimeout = 15 * time.Second

var ErrNotLoggedIn = errors.New("client: not logged in")

// APIError is a non-2xx answer from the API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: status %d", e.StatusCode)
	}
	return fmt.Sprintf("api: status %d: %s", e.StatusCode, e.Message)
}

// IsUnauthorized reports whether err means the stored token is missing,
// expired or rejected, so logging in again may help.
func IsUnauthorized(err error) bool {
	if errors.Is(err, ErrNotLoggedIn) {
		return true
	}
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

type Client struct {
	baseURL    string
	httpClient *http.Client

	mu    sync.RWMutex
	token string
}

// New returns a client for the API rooted at baseURL.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

type submitResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
}

// Submit posts a finished wizard session. The session's idempotency key is
// sent along so a retried request cannot create a second record.
func (c *Client) Submit(ctx context.Context, sub wizard.Submission) (string, error) {
	var out submitResponse
	err := c.do(ctx, http.MethodPost, "/api/applications/"+string(sub.Kind), sub.Values, func(req *http.Request) {
		if sub.IdempotencyKey != "" {
			req.Header.Set("Idempotency-Key", sub.IdempotencyKey)
		}
	}, &out)
	if err != nil {
		return "", err
	}
	if out.ID == "" {
		return "", errors.New("api: response without id")
	}
	return out.ID, nil
}

// Login exchanges admin credentials for a token used by the list calls.
func (c *Client) Login(ctx context.Context, username, password string) error {
	body := map[string]string{"username": username, "password": password}
	var out struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/admin/login", body, nil, &out); err != nil {
		return err
	}

	c.mu.Lock()
	c.token = out.Token
	c.mu.Unlock()
	return nil
}

func (c *Client) ListRenters(ctx context.Context) ([]*domain.RenterApplication, error) {
	var out []*domain.RenterApplication
	if err := c.authed(ctx, "/api/applications/renter", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListLandlords(ctx context.Context) ([]*domain.LandlordApplication, error) {
	var out []*domain.LandlordApplication
	if err := c.authed(ctx, "/api/applications/landlord", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) authed(ctx context.Context, path string, out any) error {
	c.mu.RLock()
	token := c.token
	c.mu.RUnlock()
	if token == "" {
		return ErrNotLoggedIn
	}

	return c.do(ctx, http.MethodGet, path, nil, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+token)
	}, out)
}

func (c *Client) do(ctx context.Context, method, path string, body any, prepare func(*http.Request), out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if prepare != nil {
		prepare(req)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var envelope struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&envelope)
		return &APIError{StatusCode: resp.StatusCode, Message: envelope.Error}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
