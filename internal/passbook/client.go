package passbook

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"Cryptbook/internal/errors"
	"Cryptbook/internal/log"

	"github.com/google/uuid"
)

// DefaultTimeout bounds a single metadata request.
const DefaultTimeout = 10 * time.Second

// maxBodySize caps how much of a response is read.
const maxBodySize = 1 << 20

// Fetcher retrieves password book metadata.
type Fetcher interface {
	FetchMetadata(ctx context.Context, id string) (*Metadata, error)
}

// NotFoundError reports an id the backend does not know.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("password book %q not found", e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return errors.ErrMetadataNotFound
}

// Client talks to the encryption backend over HTTP.
type Client struct {
	base       *url.URL
	httpClient *http.Client
	logger     log.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// NewClient creates a client for the backend at baseURL.
func NewClient(baseURL string, opts ...ClientOption) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("backend url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("backend url %q: scheme must be http or https", baseURL)
	}
	c := &Client{
		base:       u,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		logger:     log.With(log.String("component", "passbook")),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// FetchMetadata issues GET {base}/api/password_books/{id}.
func (c *Client) FetchMetadata(ctx context.Context, id string) (*Metadata, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, errors.ErrEmptyID
	}
	if id == "." || id == ".." {
		return nil, errors.ErrInvalidID
	}

	endpoint := c.base.JoinPath("api", "password_books", url.PathEscape(id))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, errors.NewFetchError(id, 0, err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("metadata request failed", log.String("id", id), log.String("request_id", requestID), log.Err(err))
		return nil, errors.NewFetchError(id, 0, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("metadata response",
		log.String("id", id),
		log.String("request_id", requestID),
		log.Int("status", resp.StatusCode),
		log.Duration("elapsed", time.Since(start)))

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, &NotFoundError{ID: id}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, errors.NewFetchError(id, resp.StatusCode, nil)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, errors.NewFetchError(id, resp.StatusCode, err)
	}
	var m Metadata
	if err := json.Unmarshal(body, &m); err != nil {
		return nil, errors.NewFetchError(id, resp.StatusCode, fmt.Errorf("%w: %v", errors.ErrInvalidResponse, err))
	}
	if m.ID == "" {
		return nil, errors.NewFetchError(id, resp.StatusCode, fmt.Errorf("%w: missing id", errors.ErrInvalidResponse))
	}
	if m.ID != id {
		return nil, errors.NewFetchError(id, resp.StatusCode, fmt.Errorf("%w: got id %q", errors.ErrInvalidResponse, m.ID))
	}
	return &m, nil
}

// Result is the outcome of an asynchronous fetch.
type Result struct {
	Metadata *Metadata
	Err      error
}

// FetchAsync starts a fetch and returns immediately. The channel receives
// exactly one Result and is then closed. Cancelling ctx aborts the request.
func FetchAsync(ctx context.Context, f Fetcher, id string) <-chan Result {
	ch := make(chan Result, 1)
	go func() {
		defer close(ch)
		m, err := f.FetchMetadata(ctx, id)
		ch <- Result{Metadata: m, Err: err}
	}()
	return ch
}
