package catalog

import (
	"context"
	"encoding/json/v2"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shelfsyncapp/shelfsync-server/internal/ratelimit"
)

const (
	// Rate limit: 2 requests per second per host, burst of 5
	defaultRPS   = 2.0
	defaultBurst = 5

	// HTTP client settings
	defaultTimeout = 30 * time.Second
)

// Client is a rate-limited catalog server client.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *ratelimit.KeyedRateLimiter
	logger  *slog.Logger
}

// NewClient creates a catalog client for the given server base URL.
func NewClient(baseURL string, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http: &http.Client{
			Timeout: defaultTimeout,
		},
		limiter: ratelimit.New(defaultRPS, defaultBurst),
		logger:  logger,
	}
}

// ListBooks fetches the server's book records.
func (c *Client) ListBooks(ctx context.Context) ([]wireBook, error) {
	body, err := c.doRequest(ctx, "/api/v1/books")
	if err != nil {
		return nil, wrapError("listBooks", err)
	}

	var resp booksResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, wrapError("listBooks", fmt.Errorf("parse response: %w", err))
	}
	return resp.Books, nil
}

// ListTracks fetches the server's track records.
func (c *Client) ListTracks(ctx context.Context) ([]wireTrack, error) {
	body, err := c.doRequest(ctx, "/api/v1/tracks")
	if err != nil {
		return nil, wrapError("listTracks", err)
	}

	var resp tracksResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, wrapError("listTracks", fmt.Errorf("parse response: %w", err))
	}
	return resp.Tracks, nil
}

// doRequest executes a GET against the catalog server with rate limiting.
func (c *Client) doRequest(ctx context.Context, path string) ([]byte, error) {
	host := c.baseURL
	if u, err := url.Parse(c.baseURL); err == nil && u.Host != "" {
		host = u.Host
	}
	if err := c.limiter.Wait(ctx, host); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "ShelfSync/1.0")

	c.logger.Debug("catalog request", "path", path)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return body, nil
	case http.StatusNotFound:
		return nil, ErrNotFound
	case http.StatusTooManyRequests:
		return nil, ErrRateLimited
	case http.StatusBadRequest:
		return nil, ErrBadRequest
	default:
		if resp.StatusCode >= 500 {
			return nil, ErrServer
		}
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}
}
