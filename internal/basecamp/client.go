package basecamp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

// DefaultBaseURL is the Basecamp 4 API root. The account ID is appended per
// client, giving https://3.basecampapi.com/{account_id}/... request URLs.
const DefaultBaseURL = "https://3.basecampapi.com"

// DefaultMaxPages caps Link-header pagination walks so a huge account cannot
// stall a single tool call indefinitely.
const DefaultMaxPages = 25

const requestTimeout = 30 * time.Second

// APIError describes a non-2xx response from the Basecamp API. The message is
// passed through to callers unmodified; this layer does not translate
// upstream failures.
type APIError struct {
	StatusCode int
	Message    string
	RetryAfter string
}

func (e *APIError) Error() string {
	if e.RetryAfter != "" {
		return fmt.Sprintf("basecamp api: %d %s (retry after %ss)", e.StatusCode, e.Message, e.RetryAfter)
	}
	return fmt.Sprintf("basecamp api: %d %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether err is a Basecamp 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// Client provides access to the Basecamp 4 API for a single account.
type Client struct {
	httpClient *http.Client
	baseURL    string
	accountID  string
	userAgent  string
	maxPages   int
}

// ClientOption customizes a Client.
type ClientOption func(*Client)

// WithBaseURL overrides the API root, mainly for tests.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) { c.baseURL = strings.TrimRight(baseURL, "/") }
}

// WithHTTPClient replaces the underlying HTTP client, bypassing the OAuth
// transport. Mainly for tests.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = hc }
}

// WithMaxPages changes the pagination cap.
func WithMaxPages(n int) ClientOption {
	return func(c *Client) {
		if n > 0 {
			c.maxPages = n
		}
	}
}

// NewClient creates a Basecamp API client authenticated by the token source.
// Token refresh happens inside the oauth2 transport; this client never sees
// raw tokens. Every request carries the configured User-Agent, which
// Basecamp requires of API clients.
func NewClient(ctx context.Context, accountID, userAgent string, ts oauth2.TokenSource, opts ...ClientOption) (*Client, error) {
	if accountID == "" {
		return nil, fmt.Errorf("accountID cannot be empty")
	}
	if ts == nil {
		return nil, fmt.Errorf("token source cannot be nil")
	}

	hc := oauth2.NewClient(ctx, ts)
	hc.Timeout = requestTimeout

	c := &Client{
		httpClient: hc,
		baseURL:    DefaultBaseURL,
		accountID:  accountID,
		userAgent:  userAgent,
		maxPages:   DefaultMaxPages,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// AccountID returns the Basecamp account this client talks to.
func (c *Client) AccountID() string {
	return c.accountID
}

// apiURL joins the account-scoped API root with a path like "/projects.json".
func (c *Client) apiURL(path string) string {
	return fmt.Sprintf("%s/%s%s", c.baseURL, c.accountID, path)
}

// newRequest builds a request with the headers Basecamp expects.
func (c *Client) newRequest(ctx context.Context, method, url string, body any) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// do performs a request and decodes the JSON response into out when out is
// non-nil.
func (c *Client) do(ctx context.Context, method, url string, body, out any) error {
	req, err := c.newRequest(ctx, method, url, body)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return readAPIError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	} else {
		_, _ = io.Copy(io.Discard, resp.Body)
	}
	return nil
}

// getPages performs GET requests starting at url and follows rel="next" Link
// headers, invoking decode with each page body, up to the page cap.
func (c *Client) getPages(ctx context.Context, url string, decode func([]byte) error) error {
	for page := 0; url != "" && page < c.maxPages; page++ {
		req, err := c.newRequest(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("request failed: %w", err)
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			apiErr := readAPIError(resp)
			_ = resp.Body.Close()
			return apiErr
		}

		data, err := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if err != nil {
			return fmt.Errorf("failed to read response: %w", err)
		}
		if err := decode(data); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}

		url = nextPageURL(resp.Header.Get("Link"))
	}
	return nil
}

// nextPageURL extracts the rel="next" target from an RFC 5988 Link header.
// Basecamp sends at most one link, but the parser tolerates several.
func nextPageURL(link string) string {
	for _, part := range strings.Split(link, ",") {
		sections := strings.Split(part, ";")
		if len(sections) < 2 {
			continue
		}
		target := strings.Trim(strings.TrimSpace(sections[0]), "<>")
		for _, param := range sections[1:] {
			if strings.TrimSpace(param) == `rel="next"` {
				return target
			}
		}
	}
	return ""
}

// readAPIError turns an error response into an APIError, preserving the
// upstream message and any Retry-After hint.
func readAPIError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	message := strings.TrimSpace(string(body))
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		message = payload.Error
	}
	if message == "" {
		message = http.StatusText(resp.StatusCode)
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		Message:    message,
		RetryAfter: resp.Header.Get("Retry-After"),
	}
}
