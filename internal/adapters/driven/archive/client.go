package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/arsipkita/arsip-cli/internal/core/ports/driven"
	"github.com/arsipkita/arsip-cli/internal/logger"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// Client is the shared HTTP client behind every archive gateway. It
// owns the base URL, the bearer transport and the rate limiter; the
// per-resource gateways are thin views over it.
type Client struct {
	baseURL        string
	http           *http.Client
	limiter        *RateLimiter
	onUnauthorized func()
}

// Option configures the client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. The bearer and
// request-id transport is still layered on top.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithUnauthorizedHook registers a callback invoked when an
// authenticated endpoint answers 401, which means the session expired
// or was revoked. Login failures do not trigger it.
func WithUnauthorizedHook(hook func()) Option {
	return func(c *Client) {
		c.onUnauthorized = hook
	}
}

// WithRateLimiter replaces the rate limiter, for tests.
func WithRateLimiter(limiter *RateLimiter) Option {
	return func(c *Client) {
		c.limiter = limiter
	}
}

// NewClient creates a client for the backend at baseURL. The bearer
// token is read from tokens on every request, so a re-login in another
// process is picked up without restarting.
func NewClient(baseURL string, tokens driven.TokenStore, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
		limiter: NewRateLimiter(),
	}
	for _, opt := range opts {
		opt(c)
	}

	base := c.http.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	c.http.Transport = &authTransport{
		source: &storeTokenSource{tokens: tokens},
		base:   base,
	}
	return c
}

// storeTokenSource adapts a TokenStore to oauth2.TokenSource. An empty
// store yields an empty token rather than an error, so unauthenticated
// endpoints still work.
type storeTokenSource struct {
	tokens driven.TokenStore
}

func (s *storeTokenSource) Token() (*oauth2.Token, error) {
	token, err := s.tokens.Load()
	if err != nil {
		return nil, fmt.Errorf("loading token: %w", err)
	}
	return &oauth2.Token{AccessToken: token}, nil
}

// authTransport attaches the bearer token and a per-request id.
type authTransport struct {
	source oauth2.TokenSource
	base   http.RoundTripper
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	clone.Header.Set("X-Request-ID", uuid.NewString())
	clone.Header.Set("Accept", "application/json")

	token, err := t.source.Token()
	if err != nil {
		return nil, err
	}
	if token.AccessToken != "" {
		token.SetAuthHeader(clone)
	}
	return t.base.RoundTrip(clone)
}

// request describes one HTTP call.
type request struct {
	method      string
	path        string
	query       url.Values
	body        io.Reader
	contentType string

	// public marks login/register, where a 401 means bad credentials
	// and must not trigger the forced sign-out hook.
	public bool
}

// do runs one request and decodes the JSON response into out when out
// is non-nil.
func (c *Client) do(ctx context.Context, req request, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	target := c.baseURL + req.path
	if len(req.query) > 0 {
		target += "?" + req.query.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, target, req.body)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	if req.contentType != "" {
		httpReq.Header.Set("Content-Type", req.contentType)
	}

	logger.Debug("archive: %s %s", req.method, req.path)
	resp, err := c.http.Do(httpReq)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.method, req.path, err)
	}
	defer resp.Body.Close()

	if err := c.limiter.CheckResponse(resp); err != nil {
		return err
	}
	if resp.StatusCode >= 400 {
		return c.errorFrom(resp, req.public)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s %s response: %w", req.method, req.path, err)
	}
	return nil
}

// doJSON marshals body and runs a JSON request.
func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encoding request body: %w", err)
	}
	return c.do(ctx, request{
		method:      method,
		path:        path,
		body:        bytes.NewReader(payload),
		contentType: "application/json",
	}, out)
}

// multipartField is one text field of a multipart upload.
type multipartField struct {
	name, value string
}

// doMultipart uploads file under fileField alongside text fields. file
// may be nil for updates that keep the stored file.
func (c *Client) doMultipart(
	ctx context.Context, method, path string,
	fields []multipartField, fileField, fileName string, file io.Reader,
	out any,
) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for _, field := range fields {
		if err := writer.WriteField(field.name, field.value); err != nil {
			return fmt.Errorf("encoding field %s: %w", field.name, err)
		}
	}
	if file != nil {
		part, err := writer.CreateFormFile(fileField, fileName)
		if err != nil {
			return fmt.Errorf("encoding file part: %w", err)
		}
		if _, err := io.Copy(part, file); err != nil {
			return fmt.Errorf("reading upload: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("finalising upload: %w", err)
	}

	return c.do(ctx, request{
		method:      method,
		path:        path,
		body:        &buf,
		contentType: writer.FormDataContentType(),
	}, out)
}

// download streams a stored file. fileURL may be absolute (object
// storage) or a path on the backend.
func (c *Client) download(ctx context.Context, fileURL string) (io.ReadCloser, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	target := fileURL
	if !strings.HasPrefix(fileURL, "http://") && !strings.HasPrefix(fileURL, "https://") {
		target = c.baseURL + "/" + strings.TrimLeft(fileURL, "/")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("building download request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("downloading %s: %w", fileURL, err)
	}
	if resp.StatusCode >= 400 {
		defer resp.Body.Close()
		return nil, c.errorFrom(resp, false)
	}
	return resp.Body, nil
}
