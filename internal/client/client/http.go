package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"github.com/dmitrijs2005/geotracker/internal/client/models"
)

const (
	headerContentType = "Content-Type"
	headerAccept      = "Accept"
	headerUserAgent   = "User-Agent"
	contentTypeJSON   = "application/json"
	userAgent         = "geotracker-cli/1.0"

	// DefaultTimeout bounds every backend call unless overridden.
	DefaultTimeout = 10 * time.Second
)

// HTTPClient talks JSON to the geotracker backend. The session cookie is
// kept in the http.Client's cookie jar and sent automatically.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
}

// Option configures an HTTPClient.
type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying http.Client. Its jar is used as is.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) {
		c.httpClient = hc
	}
}

// WithCookieJar sets the jar used to carry the session cookie.
func WithCookieJar(jar http.CookieJar) Option {
	return func(c *HTTPClient) {
		c.httpClient.Jar = jar
	}
}

// WithTimeout sets the per-call deadline. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) {
		c.timeout = d
	}
}

// NewHTTPClient builds a backend client rooted at baseURL.
func NewHTTPClient(baseURL string, opts ...Option) (*HTTPClient, error) {
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	c := &HTTPClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Jar: jar},
		timeout:    DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// sessionForgetter is a cookie jar that can drop its saved session, such as
// PersistentJar.
type sessionForgetter interface {
	Clear(ctx context.Context) error
}

// Me resolves the current session. When the backend rejects it the jar's
// saved session is forgotten, so a stale token is not replayed next start.
func (c *HTTPClient) Me(ctx context.Context) (*models.User, error) {
	var resp struct {
		User *models.User `json:"user"`
	}
	err := c.get(ctx, "/auth/me", &resp)
	if err == nil && resp.User == nil {
		err = &APIError{StatusCode: http.StatusUnauthorized, Message: "no user in session"}
	}
	if err == nil {
		return resp.User, nil
	}
	if jar, ok := c.httpClient.Jar.(sessionForgetter); ok && errors.Is(err, ErrUnauthorized) {
		if cerr := jar.Clear(ctx); cerr != nil {
			return nil, errors.Join(err, cerr)
		}
	}
	return nil, err
}

func (c *HTTPClient) Login(ctx context.Context, credentials models.LoginData) (*AuthPayload, error) {
	var resp AuthPayload
	if err := c.post(ctx, "/auth/login", credentials, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) Signup(ctx context.Context, profile models.SignupData) (*AuthPayload, error) {
	var resp AuthPayload
	if err := c.post(ctx, "/auth/signup", profile, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) Logout(ctx context.Context) error {
	return c.post(ctx, "/auth/logout", struct{}{}, nil)
}

func (c *HTTPClient) ListHistory(ctx context.Context) ([]models.HistoryEntry, error) {
	var resp struct {
		History []models.HistoryEntry `json:"history"`
	}
	if err := c.get(ctx, "/history", &resp); err != nil {
		return nil, err
	}
	if resp.History == nil {
		return []models.HistoryEntry{}, nil
	}
	return resp.History, nil
}

func (c *HTTPClient) CreateHistory(ctx context.Context, entry models.NewHistoryEntry) (*models.HistoryEntry, error) {
	var created models.HistoryEntry
	if err := c.post(ctx, "/history", entry, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *HTTPClient) DeleteHistory(ctx context.Context, ids []int64) error {
	return c.post(ctx, "/history/bulk-delete", struct {
		IDs []int64 `json:"ids"`
	}{IDs: ids}, nil)
}

func (c *HTTPClient) get(ctx context.Context, path string, result any) error {
	return c.doRequest(ctx, http.MethodGet, path, nil, result)
}

func (c *HTTPClient) post(ctx context.Context, path string, body any, result any) error {
	return c.doRequest(ctx, http.MethodPost, path, body, result)
}

// doRequest performs one JSON round trip and maps failures to the package
// sentinels and *APIError.
func (c *HTTPClient) doRequest(ctx context.Context, method, path string, body any, result any) error {
	reqURL, err := url.JoinPath(c.baseURL, path)
	if err != nil {
		return fmt.Errorf("failed to build URL: %w", err)
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var bodyReader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set(headerAccept, contentTypeJSON)
	req.Header.Set(headerUserAgent, userAgent)
	if body != nil {
		req.Header.Set(headerContentType, contentTypeJSON)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return mapTransportError(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return mapTransportError(err)
	}

	if resp.StatusCode >= 400 {
		return parseError(resp.StatusCode, respBody)
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}
	return nil
}
