// Package roster fetches player rosters from the external backend that
// owns them. The engine only depends on id, name and position; the
// remaining fields feed the form heuristic.
package roster

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/okian/gaffer/internal/domain/model"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// defaultTimeout bounds a single roster fetch.
const defaultTimeout = 5 * time.Second

// Client is a typed HTTP client for the roster backend.
type Client struct {
	baseURL string
	httpc   *http.Client
}

// Option applies a configuration option to the Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpc.Timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.httpc = h
		}
	}
}

// New creates a Client against the given base URL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch returns the roster for a team. The response is the backend's array
// of player records {id, name, position, number, age, goals, assists,
// minutes, photoRef}.
func (c *Client) Fetch(ctx context.Context, teamKey string) ([]model.Player, error) {
	endpoint := fmt.Sprintf("%s/teams/%s/players", c.baseURL, url.PathEscape(teamKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s returned %d", ErrStatus, endpoint, resp.StatusCode)
	}

	var players []model.Player
	if err := json.NewDecoder(resp.Body).Decode(&players); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return players, nil
}
