// Package api implements the HTTP client for the Intervue backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/tidwall/gjson"

	"github.com/pedrosal/intervue/internal/config"
	apierrors "github.com/pedrosal/intervue/internal/errors"
	"github.com/pedrosal/intervue/internal/models"
)

// ClientInterface defines the backend operations consumed by the TUI and
// the CLI commands. The concrete Client and the MockClient implement it.
type ClientInterface interface {
	ListChats(ctx context.Context) ([]models.ChatItem, error)
	NewChat(ctx context.Context) (string, error)
	LoadChat(ctx context.Context, id string) (*models.Chat, error)
	SendMessage(ctx context.Context, chatID, text string) (string, error)
	GetHint(ctx context.Context, chatID string) (string, error)
	GetAnswer(ctx context.Context, chatID string) (string, error)
	FinishChat(ctx context.Context, chatID string) (models.Summary, error)
}

// Client talks to the Intervue backend over HTTP with bearer-token auth.
// Credentials are injected explicitly; the client never reads them from
// ambient storage, only rotates and persists them after a refresh.
type Client struct {
	httpClient *http.Client
	baseURL    string
	creds      *config.Credentials
	verbose    bool

	// persist is called with the rotated credentials after a refresh.
	// It defaults to config.SaveCredentials.
	persist func(*config.Credentials) error

	refreshMu sync.Mutex
	mu        sync.RWMutex
	closed    bool
}

var _ ClientInterface = (*Client)(nil)

// ClientOption is a function that configures the client
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the per-request timeout
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithVerbose enables request logging to stderr
func WithVerbose(enabled bool) ClientOption {
	return func(c *Client) {
		c.verbose = enabled
	}
}

// WithPersist replaces the credential persistence hook
func WithPersist(fn func(*config.Credentials) error) ClientOption {
	return func(c *Client) {
		c.persist = fn
	}
}

// NewClient creates a new backend client
func NewClient(baseURL string, creds *config.Credentials, opts ...ClientOption) (*Client, error) {
	if err := config.ValidateCredentials(creds); err != nil {
		return nil, err
	}
	if baseURL == "" {
		return nil, fmt.Errorf("backend URL is empty")
	}

	client := &Client{
		httpClient: &http.Client{Timeout: 60 * time.Second},
		baseURL:    strings.TrimRight(baseURL, "/"),
		creds:      creds,
		persist:    config.SaveCredentials,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

// Close marks the client as closed
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

// IsClosed returns whether the client is closed
func (c *Client) IsClosed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.closed
}

// BaseURL returns the configured backend base URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

// doJSON performs an authenticated request and returns the response body.
// A 401 triggers one token refresh followed by a single retry; anything
// else above 399 becomes an APIError carrying the backend detail string.
func (c *Client) doJSON(ctx context.Context, method, path string, body any, header http.Header) ([]byte, error) {
	if c.IsClosed() {
		return nil, fmt.Errorf("client is closed")
	}

	data, err := c.send(ctx, method, path, body, header)
	if err == nil {
		return data, nil
	}

	if apierrors.HTTPStatus(err) != http.StatusUnauthorized {
		return nil, err
	}

	// Access token likely expired: rotate once and retry.
	if refreshErr := c.refreshTokens(ctx); refreshErr != nil {
		return nil, refreshErr
	}

	data, err = c.send(ctx, method, path, body, header)
	if err != nil && apierrors.HTTPStatus(err) == http.StatusUnauthorized {
		return nil, apierrors.NewAuthError(apierrors.Detail(err, "token rejected after refresh"))
	}
	return data, err
}

func (c *Client) send(ctx context.Context, method, path string, body any, header http.Header) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	access, _ := c.creds.Snapshot()
	req.Header.Set("Authorization", "Bearer "+access)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, values := range header {
		for _, value := range values {
			req.Header.Set(key, value)
		}
	}

	if c.verbose {
		fmt.Fprintf(os.Stderr, "[api] %s %s\n", method, path)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		var urlErr *url.Error
		if errors.As(err, &urlErr) && urlErr.Timeout() {
			return nil, apierrors.NewTimeoutError(fmt.Sprintf("%s %s", method, path))
		}
		return nil, apierrors.NewNetworkError(fmt.Sprintf("%s %s", method, path), err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apierrors.NewNetworkError("reading response body", err)
	}

	if resp.StatusCode >= 400 {
		apiErr := apierrors.NewAPIError(resp.StatusCode, path, http.StatusText(resp.StatusCode))
		if detail := gjson.GetBytes(data, "detail"); detail.Exists() {
			apiErr.Detail = detail.String()
		}
		return nil, apiErr
	}

	return data, nil
}
