// Package api provides a REST client for the task service v2 API.
// It implements a deep module interface - simple fetch methods hiding paging,
// payload decoding and deleted-entity filtering.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// MaxPageSize is the largest page the service returns.
const MaxPageSize = 1000

var (
	// ErrUnauthorized is wrapped by errors for 401 and 403 responses.
	ErrUnauthorized = errors.New("unauthorized: check your API token")
	// ErrNoToken indicates the client was created without a token.
	ErrNoToken = errors.New("no API token configured")
)

// Error is a non-2xx API response.
type Error struct {
	Status  int
	Message string
	err     error
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: %d %s", e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("api error: %d %s", e.Status, e.Message)
}

func (e *Error) Unwrap() error {
	return e.err
}

// Options configures a Client.
type Options struct {
	BaseURL    string       // Service root, e.g. https://yougile.com
	Token      string       // Bearer token
	PageSize   int          // Items per page, 1..MaxPageSize (0 means MaxPageSize)
	HTTPClient *http.Client // Optional; defaults to a client with a 30s timeout
}

// Client is a task service REST API client.
type Client struct {
	base     string
	token    string
	pageSize int
	http     *http.Client
	logger   *log.Logger
}

// New creates a client. Returns ErrNoToken when opts.Token is empty.
func New(opts Options, logger *log.Logger) (*Client, error) {
	if opts.Token == "" {
		return nil, ErrNoToken
	}
	if _, err := url.Parse(opts.BaseURL); err != nil || opts.BaseURL == "" {
		return nil, fmt.Errorf("invalid base URL %q", opts.BaseURL)
	}

	pageSize := opts.PageSize
	if pageSize <= 0 || pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: 30 * time.Second}
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return &Client{
		base:     strings.TrimRight(opts.BaseURL, "/") + "/api-v2",
		token:    opts.Token,
		pageSize: pageSize,
		http:     hc,
		logger:   logger,
	}, nil
}

// paging is the envelope metadata of list responses.
type paging struct {
	Count  int  `json:"count"`
	Limit  int  `json:"limit"`
	Offset int  `json:"offset"`
	Next   bool `json:"next"`
}

type page[T any] struct {
	Paging  paging `json:"paging"`
	Content []T    `json:"content"`
}

// listAll fetches every page of a list endpoint.
func listAll[T any](ctx context.Context, c *Client, path string, query url.Values) ([]T, error) {
	if query == nil {
		query = url.Values{}
	}
	var all []T
	offset := 0
	for {
		query.Set("limit", strconv.Itoa(c.pageSize))
		query.Set("offset", strconv.Itoa(offset))

		var p page[T]
		if err := c.get(ctx, path, query, &p); err != nil {
			return nil, err
		}
		all = append(all, p.Content...)

		if !p.Paging.Next || len(p.Content) == 0 {
			return all, nil
		}
		offset += len(p.Content)
	}
}

// get performs an authenticated GET and decodes the JSON body into out.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	u := c.base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	reqID := uuid.NewString()
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", reqID)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("request failed", "path", path, "request_id", reqID, "err", err)
		return fmt.Errorf("failed to reach %s: %w", path, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("request", "path", path, "status", resp.StatusCode,
		"request_id", reqID, "elapsed", time.Since(start))

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &Error{Status: resp.StatusCode, Message: errorMessage(body)}
		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			apiErr.err = ErrUnauthorized
		}
		c.logger.Warn("api error", "path", path, "status", resp.StatusCode, "request_id", reqID)
		return apiErr
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return nil
}

// errorMessage extracts the message of an error body, falling back to the
// raw text.
func errorMessage(body []byte) string {
	var payload struct {
		Message any    `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		switch m := payload.Message.(type) {
		case string:
			if m != "" {
				return m
			}
		case []any:
			parts := make([]string, 0, len(m))
			for _, p := range m {
				parts = append(parts, fmt.Sprint(p))
			}
			if len(parts) > 0 {
				return strings.Join(parts, "; ")
			}
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	return strings.TrimSpace(string(body))
}
