package shippin

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/goliatone/go-print"
)

const defaultAuthScheme = "Bearer"

// Response is the decoded outcome of a backend call.
type Response struct {
	Status int
	Body   []byte
	Header http.Header
}

// Decode unmarshals the response body into v.
func (r *Response) Decode(v any) error {
	if len(r.Body) == 0 {
		return ErrMalformedResponse
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return ErrMalformedResponse
	}
	return nil
}

// Client issues calls against the Shippin backend. It holds no session state:
// the caller supplies the token per call, so the same client serves both
// anonymous operations (login, registration) and authenticated ones
// (shipments, profile).
type Client struct {
	baseURL    string
	authScheme string
	httpClient *http.Client
	logger     Logger
	debug      bool
}

type ClientOption func(*Client)

// WithHTTPClient overrides the underlying http.Client. The default carries no
// timeout: backend calls may legitimately take minutes while the free-tier
// host cold-starts, and callers own cancellation through ctx.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

func WithClientLogger(logger Logger) ClientOption {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func WithAuthScheme(scheme string) ClientOption {
	return func(c *Client) {
		if scheme != "" {
			c.authScheme = scheme
		}
	}
}

func WithClientDebug(debug bool) ClientOption {
	return func(c *Client) {
		c.debug = debug
	}
}

func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		authScheme: defaultAuthScheme,
		httpClient: &http.Client{},
		logger:     defLogger{},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	return c
}

// NewClientFromConfig builds a Client from a Config implementation. Explicit
// options take precedence over config values.
func NewClientFromConfig(cfg Config, opts ...ClientOption) *Client {
	base := []ClientOption{
		WithAuthScheme(cfg.GetAuthScheme()),
		WithClientDebug(cfg.GetDebug()),
	}
	return NewClient(cfg.GetBaseURL(), append(base, opts...)...)
}

// Do performs one backend call. If token is non-empty it is attached as a
// bearer credential; otherwise the call goes out unauthenticated and the
// server decides. Payloads of type url.Values are form-encoded (the login
// endpoints take OAuth2 password forms), everything else is JSON.
func (c *Client) Do(ctx context.Context, method, path string, payload any, token string) (*Response, error) {
	var body io.Reader
	contentType := ""

	switch p := payload.(type) {
	case nil:
	case url.Values:
		body = strings.NewReader(p.Encode())
		contentType = "application/x-www-form-urlencoded"
	default:
		encoded, err := json.Marshal(p)
		if err != nil {
			return nil, WrapValidationError(err)
		}
		body = bytes.NewReader(encoded)
		contentType = "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, WrapTransportError(err)
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	if token != "" {
		req.Header.Set("Authorization", c.authScheme+" "+token)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("backend call failed", "method", method, "path", path, "error", err)
		return nil, WrapTransportError(err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, WrapTransportError(err)
	}

	resp := &Response{
		Status: res.StatusCode,
		Body:   raw,
		Header: res.Header,
	}

	if c.debug {
		fmt.Printf("=== %s %s -> %d ===\n", method, path, resp.Status)
		fmt.Println(print.MaybePrettyJSON(string(raw)))
	}

	if err := ClassifyResponse(resp.Status); err != nil {
		return resp, err
	}

	return resp, nil
}

// Get issues an authenticated-if-possible GET.
func (c *Client) Get(ctx context.Context, path, token string) (*Response, error) {
	return c.Do(ctx, http.MethodGet, path, nil, token)
}

// Post issues a JSON POST.
func (c *Client) Post(ctx context.Context, path string, payload any, token string) (*Response, error) {
	return c.Do(ctx, http.MethodPost, path, payload, token)
}

// PostForm issues a form-encoded POST (login endpoints).
func (c *Client) PostForm(ctx context.Context, path string, form url.Values, token string) (*Response, error) {
	return c.Do(ctx, http.MethodPost, path, form, token)
}
