package slackapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/hatchpad/slackbridge/pkg/utils/safe"
)

const (
	// DefaultTimeout bounds every upstream call.
	DefaultTimeout = 20 * time.Second

	DefaultBaseURL      = "https://slack.com/api"
	DefaultAuthorizeURL = "https://slack.com/oauth/v2/authorize"
	DefaultTokenURL     = "https://slack.com/api/oauth.v2.access"
)

// Client issues authenticated calls against the Slack Web API. It performs
// at most one attempt per call; retry policy belongs to the caller.
type Client struct {
	baseURL      string
	authorizeURL string
	tokenURL     string
	httpClient   *http.Client
}

// Option is a functional option for Client configuration
type Option func(*Client)

// WithBaseURL overrides the Web API base URL
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(u, "/")
	}
}

// WithAuthorizeURL overrides the OAuth authorization endpoint
func WithAuthorizeURL(u string) Option {
	return func(c *Client) {
		c.authorizeURL = u
	}
}

// WithTokenURL overrides the OAuth token exchange endpoint
func WithTokenURL(u string) Option {
	return func(c *Client) {
		c.tokenURL = u
	}
}

// WithTimeout overrides the per-call timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// New creates a Client pointed at the Slack production endpoints unless
// overridden.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL:      DefaultBaseURL,
		authorizeURL: DefaultAuthorizeURL,
		tokenURL:     DefaultTokenURL,
		httpClient:   &http.Client{Timeout: DefaultTimeout},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// apiResponse is the envelope every Web API response carries.
type apiResponse struct {
	OK  bool   `json:"ok"`
	Err string `json:"error"`
}

func (r apiResponse) status() (bool, string) { return r.OK, r.Err }

// envelope is implemented by all typed responses via apiResponse embedding.
type envelope interface {
	status() (bool, string)
}

// postForm sends a form-encoded POST and decodes the response envelope. The
// bearer token is attached when non-empty. Error classification:
// ErrTimeout / ErrTransport on the wire, ErrUpstreamStatus on non-200,
// ErrUpstreamRejected when the platform reports ok=false.
func (c *Client) postForm(ctx context.Context, rawURL, token string, form url.Values, out envelope) error {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, body)
	if err != nil {
		return goerr.Wrap(err, "failed to create request", goerr.V("url", rawURL))
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return classifyTransport(err, rawURL)
	}
	defer safe.Close(ctx, resp.Body)

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return classifyTransport(err, rawURL)
	}

	if resp.StatusCode != http.StatusOK {
		return goerr.Wrap(ErrUpstreamStatus, "unexpected status from upstream",
			goerr.V("status", resp.StatusCode), goerr.V("url", rawURL))
	}

	if err := json.Unmarshal(data, out); err != nil {
		return goerr.Wrap(err, "failed to parse upstream response", goerr.V("url", rawURL))
	}

	if ok, reason := out.status(); !ok {
		// The upstream error code goes into the message so it survives into
		// HTTP error bodies, not only into structured log values.
		msg := "upstream reported failure"
		if reason != "" {
			msg += ": " + reason
		}
		return goerr.Wrap(ErrUpstreamRejected, msg,
			goerr.V("reason", reason), goerr.V("url", rawURL))
	}

	return nil
}

// classifyTransport separates deadline expiry from other wire failures.
func classifyTransport(err error, rawURL string) error {
	if isTimeout(err) {
		return goerr.Wrap(ErrTimeout, "upstream call exceeded deadline", goerr.V("url", rawURL))
	}
	return goerr.Wrap(ErrTransport, "upstream call failed",
		goerr.V("url", rawURL), goerr.V("cause", err.Error()))
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

// RejectReason extracts the upstream-supplied error code from an
// ErrUpstreamRejected chain. Returns an empty string when absent.
func RejectReason(err error) string {
	var ge *goerr.Error
	if !errors.As(err, &ge) {
		return ""
	}
	if v, ok := ge.Values()["reason"].(string); ok {
		return v
	}
	return ""
}
