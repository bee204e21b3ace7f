// Package api provides the HTTP client for the remote character API.
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

	"github.com/cristianoliveira/rmgrid/internal/domain"
	"github.com/cristianoliveira/rmgrid/internal/logging"
	"github.com/google/uuid"
)

const (
	// DefaultBaseURL is the public Rick and Morty API.
	DefaultBaseURL = "https://rickandmortyapi.com/api"
	// DefaultTimeout bounds a single page request.
	DefaultTimeout = 15 * time.Second

	charactersPath = "/character"
	maxErrorBody   = 512
)

var (
	// ErrFetchFailed is the single user-visible fetch error. Its text is shown verbatim.
	ErrFetchFailed = errors.New("Failed to fetch characters")
	// ErrInvalidPage indicates a page number below 1.
	ErrInvalidPage = errors.New("invalid page number")
)

// FetchError wraps the underlying cause of a failed fetch.
// Error() always returns the user-visible message; the cause is for logs.
type FetchError struct {
	Page       int
	StatusCode int
	Cause      error
}

func (e *FetchError) Error() string {
	return ErrFetchFailed.Error()
}

// Unwrap exposes both the sentinel and the cause to errors.Is/As.
func (e *FetchError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrFetchFailed}
	}
	return []error{ErrFetchFailed, e.Cause}
}

// Detail describes the cause for logging.
func (e *FetchError) Detail() string {
	switch {
	case e.StatusCode != 0 && e.Cause != nil:
		return fmt.Sprintf("page %d: status %d: %v", e.Page, e.StatusCode, e.Cause)
	case e.Cause != nil:
		return fmt.Sprintf("page %d: %v", e.Page, e.Cause)
	default:
		return fmt.Sprintf("page %d", e.Page)
	}
}

// CharacterFetcher fetches one page of characters.
type CharacterFetcher interface {
	FetchCharacters(ctx context.Context, page int) (*domain.CharacterPage, error)
}

// Client talks to the character list endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
	logger     logging.Logger
}

var _ CharacterFetcher = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if strings.TrimSpace(baseURL) != "" {
			c.baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets the per-request timeout. Non-positive values disable it.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout < 0 {
			timeout = 0
		}
		c.httpClient.Timeout = timeout
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithLogger sets the structured logger.
func WithLogger(l logging.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewClient creates a client for the character API.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		userAgent:  "rmgrid",
		logger:     logging.GetGlobal(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// FetchCharacters issues GET {base}/character?page={n} and decodes the page.
// Transport errors, non-2xx statuses and malformed bodies all match ErrFetchFailed.
func (c *Client) FetchCharacters(ctx context.Context, page int) (*domain.CharacterPage, error) {
	if page < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPage, page)
	}

	requestID := uuid.NewString()
	log := c.logger.With("request_id", requestID, "page", page)
	start := time.Now()

	endpoint, err := c.pageURL(page)
	if err != nil {
		return nil, c.fail(log, &FetchError{Page: page, Cause: err})
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, c.fail(log, &FetchError{Page: page, Cause: fmt.Errorf("create request: %w", err)})
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	req.Header.Set("X-Request-ID", requestID)

	log.Debug("fetching characters", "url", endpoint)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.fail(log, &FetchError{Page: page, Cause: fmt.Errorf("request failed: %w", err)})
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, c.fail(log, &FetchError{
			Page:       page,
			StatusCode: resp.StatusCode,
			Cause:      fmt.Errorf("unexpected status: %s", strings.TrimSpace(string(body))),
		})
	}

	var result domain.CharacterPage
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, c.fail(log, &FetchError{Page: page, StatusCode: resp.StatusCode, Cause: fmt.Errorf("decode response: %w", err)})
	}
	if result.Results == nil {
		result.Results = []domain.Character{}
	}

	log.Info("fetched characters",
		"status", resp.StatusCode,
		"results", len(result.Results),
		"pages", result.Info.Pages,
		"duration_ms", time.Since(start).Milliseconds())
	return &result, nil
}

func (c *Client) pageURL(page int) (string, error) {
	u, err := url.Parse(c.baseURL + charactersPath)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (c *Client) fail(log logging.Logger, ferr *FetchError) error {
	log.Warn("fetch failed", "detail", ferr.Detail())
	return ferr
}
