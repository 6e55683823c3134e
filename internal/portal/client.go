// Package portal is the client side of PlacementHub: an API client that keeps the session
// cookie, the session store, the role guard and route table, the placement statistics form
// and the list pages built on top of them. The CLI drives it; any other front end can too.
package portal

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
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// APIPrefix is the versioned base path of every REST endpoint.
const APIPrefix = "/api/v1"

// GenericErrorMessage is shown when the server gave no usable message.
const GenericErrorMessage = "Something went wrong. Please try again."

// maxErrorBody bounds how much of a failed response is read for its message.
const maxErrorBody = 64 << 10

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status  int
	Code    string
	Field   string
	Message string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s (%d %s)", e.Message, e.Status, e.Code)
	}
	return fmt.Sprintf("%s (%d)", e.Message, e.Status)
}

// ErrorMessage returns the text a user should see for err: the server message when there
// is one, else the generic fallback.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return GenericErrorMessage
}

// IsStatus reports whether err is an APIError with the given HTTP status.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Field   string `json:"field"`
	} `json:"error"`
}

// sessionJar is a cookie jar that can be emptied on logout.
type sessionJar struct {
	mu  sync.Mutex
	jar *cookiejar.Jar
}

func newSessionJar() *sessionJar {
	jar, _ := cookiejar.New(nil) // only fails with a bad PublicSuffixList
	return &sessionJar{jar: jar}
}

func (j *sessionJar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.jar.SetCookies(u, cookies)
}

func (j *sessionJar) Cookies(u *url.URL) []*http.Cookie {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.jar.Cookies(u)
}

func (j *sessionJar) reset() {
	jar, _ := cookiejar.New(nil)
	j.mu.Lock()
	j.jar = jar
	j.mu.Unlock()
}

// Client talks to the PlacementHub API and carries the session cookie between calls.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	jar     *sessionJar
	logger  zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. Its Jar is overwritten.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		copied := *hc
		c.http = &copied
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient creates a client for the server at baseURL, e.g. http://localhost:3003.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid base URL %q: scheme must be http or https", baseURL)
	}

	c := &Client{
		baseURL: u,
		http:    &http.Client{},
		jar:     newSessionJar(),
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.http.Jar = c.jar
	return c, nil
}

// BaseURL returns the server address the client was created with.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// ClearSession drops every cookie the client holds.
func (c *Client) ClearSession() {
	c.jar.reset()
}

// HasSessionCookie reports whether a session cookie is held for the server.
func (c *Client) HasSessionCookie() bool {
	return len(c.jar.Cookies(c.baseURL)) > 0
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := *c.baseURL
	u.Path = c.baseURL.Path + APIPrefix + path
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body interface{}) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, query), reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// do performs a JSON call and decodes the data field of the success envelope into out.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	req, err := c.newRequest(ctx, method, path, query, body)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	c.logger.Debug().Str("method", method).Str("path", path).Int("status", resp.StatusCode).Msg("API call")

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeError(resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("failed to decode %s %s data: %w", method, path, err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var env envelope
	if err := json.Unmarshal(raw, &env); err == nil {
		switch {
		case env.Error != nil:
			apiErr.Code = env.Error.Code
			apiErr.Field = env.Error.Field
			apiErr.Message = env.Error.Message
		case env.Message != "":
			apiErr.Message = env.Message
		}
	}
	if apiErr.Message == "" {
		apiErr.Message = GenericErrorMessage
	}
	return apiErr
}
