// Package client is a Go client for the flashdeck REST API. Besides plain
// request wrappers it keeps optimistic toggle state for featured flags and
// card annotations so that a UI can flip them without waiting for the
// server and still converge on the last request issued.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/flashdeck-backend/internal/domain"
	"github.com/heartmarshall/flashdeck-backend/pkg/toggle"
)

// APIError is a non-2xx response decoded from the server's error body.
type APIError struct {
	Status  int
	Kind    domain.ErrorKind
	Reason  domain.Precondition
	Message string
}

func (e *APIError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("api: %d %s (%s): %s", e.Status, e.Kind, e.Reason, e.Message)
	}
	return fmt.Sprintf("api: %d %s: %s", e.Status, e.Kind, e.Message)
}

// Unwrap maps the error onto the domain sentinels so callers can use
// errors.Is the same way they would against the services.
func (e *APIError) Unwrap() error {
	switch e.Kind {
	case domain.KindNotFound:
		return domain.ErrNotFound
	case domain.KindForbidden:
		return domain.ErrForbidden
	case domain.KindUnauthenticated:
		return domain.ErrUnauthorized
	case domain.KindValidation:
		return domain.ErrValidation
	case domain.KindPreconditionFailed:
		return domain.ErrPreconditionFailed
	case domain.KindConflict:
		return domain.ErrConflict
	case domain.KindAlreadyExists:
		return domain.ErrAlreadyExists
	}
	return nil
}

// ReasonOf returns the precondition reason of an API error.
func ReasonOf(err error) (domain.Precondition, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Reason != "" {
		return apiErr.Reason, true
	}
	return "", false
}

// Client talks to one flashdeck server on behalf of one caller.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	log        *slog.Logger

	mu      sync.Mutex
	toggles map[uuid.UUID]*toggle.Set
}

// New creates a Client. token may be empty for anonymous access.
func New(baseURL, token string, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		log:        logger.With("adapter", "flashdeck_client"),
		toggles:    make(map[uuid.UUID]*toggle.Set),
	}
}

// NewWithHTTPClient creates a Client using hc for transport (for testing).
func NewWithHTTPClient(baseURL, token string, hc *http.Client, logger *slog.Logger) *Client {
	c := New(baseURL, token, logger)
	c.httpClient = hc
	return c
}

// do sends one request. A nil out discards the response body.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("client: encode body: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("client: create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("client: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	c.log.DebugContext(ctx, "flashdeck response",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
	)

	if resp.StatusCode >= 300 {
		return decodeAPIError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("client: decode %s %s: %w", method, path, err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode, Kind: domain.KindInternal}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		apiErr.Message = err.Error()
		return apiErr
	}

	var body wireError
	if json.Unmarshal(raw, &body) != nil || body.Kind == "" {
		// Middleware rejections are plain text.
		apiErr.Kind = kindForStatus(resp.StatusCode)
		apiErr.Message = strings.TrimSpace(string(raw))
		return apiErr
	}

	apiErr.Kind = domain.ErrorKind(body.Kind)
	apiErr.Reason = domain.Precondition(body.Reason)
	apiErr.Message = body.Error
	return apiErr
}

func kindForStatus(status int) domain.ErrorKind {
	switch status {
	case http.StatusNotFound:
		return domain.KindNotFound
	case http.StatusForbidden:
		return domain.KindForbidden
	case http.StatusUnauthorized:
		return domain.KindUnauthenticated
	case http.StatusBadRequest:
		return domain.KindValidation
	case http.StatusConflict:
		return domain.KindConflict
	}
	return domain.KindInternal
}

func (c *Client) toggleSet(id uuid.UUID) *toggle.Set {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.toggles[id]
	if !ok {
		s = toggle.NewSet()
		c.toggles[id] = s
	}
	return s
}
