package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/dmitrymomot/storefront/pkg/i18n"
	"github.com/dmitrymomot/storefront/pkg/logger"
	"github.com/dmitrymomot/storefront/pkg/metrics"
	"github.com/dmitrymomot/storefront/pkg/requestid"
)

const (
	// HeaderAuthorization is the default header carrying the session token.
	HeaderAuthorization = "Authorization"
	bearerPrefix        = "Bearer "

	maxBodySize = 4 << 20
)

// Response describes a completed exchange. Observers receive one for every
// request that produced an HTTP status.
type Response struct {
	Method string
	Path   string
	Status int
	// Authorization is the header value the request was sent with.
	Authorization string
}

// Observer is notified synchronously before the issuing call returns.
type Observer func(Response)

// Client is the shared HTTP transport of the storefront. Default headers are
// mutable at runtime and apply to every request issued afterwards.
// It is safe for concurrent use.
type Client struct {
	baseURL    *url.URL
	http       *http.Client
	logger     *slog.Logger
	metrics    *metrics.Collector
	limiter    *rate.Limiter
	translator *i18n.Translator
	lang       string

	mu        sync.RWMutex
	header    http.Header
	observers map[uint64]Observer
	nextObs   uint64
}

// New creates a client for baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: only http and https schemes are supported", ErrInvalidBaseURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("%w: host is required", ErrInvalidBaseURL)
	}

	c := &Client{
		baseURL:    u,
		http:       &http.Client{Timeout: 15 * time.Second},
		logger:     logger.Nop(),
		translator: i18n.Default(),
		header:     make(http.Header),
		observers:  make(map[uint64]Observer),
	}
	c.header.Set("Accept", "application/json")

	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// NewFromConfig creates a client from cfg plus any extra options.
func NewFromConfig(cfg Config, opts ...Option) (*Client, error) {
	base := []Option{
		WithLanguage(cfg.Language),
		WithRateLimit(cfg.RateLimit, cfg.RateBurst),
	}
	if cfg.Timeout > 0 {
		base = append(base, WithHTTPClient(&http.Client{Timeout: cfg.Timeout}))
	}
	if cfg.UserAgent != "" {
		base = append(base, WithDefaultHeader("User-Agent", cfg.UserAgent))
	}
	return New(cfg.BaseURL, append(base, opts...)...)
}

// BaseURL returns the API root.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Localizer returns the message catalog bound to the client's language.
func (c *Client) Localizer() i18n.Localizer {
	return c.translator.Localizer(c.lang)
}

// SetHeader sets a default header.
func (c *Client) SetHeader(key, value string) {
	c.mu.Lock()
	c.header.Set(key, value)
	c.mu.Unlock()
}

// DelHeader removes a default header.
func (c *Client) DelHeader(key string) {
	c.mu.Lock()
	c.header.Del(key)
	c.mu.Unlock()
}

// Header returns the current value of a default header.
func (c *Client) Header(key string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.header.Get(key)
}

// SetBearer installs "Authorization: Bearer <token>", or removes the header
// when token is empty.
func (c *Client) SetBearer(token string) {
	if token == "" {
		c.DelHeader(HeaderAuthorization)
		return
	}
	c.SetHeader(HeaderAuthorization, BearerValue(token))
}

// BearerValue formats token as an Authorization header value.
func BearerValue(token string) string {
	return bearerPrefix + token
}

// Observe registers fn and returns a function that unregisters it.
func (c *Client) Observe(fn Observer) (remove func()) {
	c.mu.Lock()
	id := c.nextObs
	c.nextObs++
	c.observers[id] = fn
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.observers, id)
			c.mu.Unlock()
		})
	}
}

// Get issues a GET and decodes the response into out.
func (c *Client) Get(ctx context.Context, path string, out any, opts ...RequestOption) error {
	return c.Do(ctx, http.MethodGet, path, nil, out, opts...)
}

// Post issues a JSON POST.
func (c *Client) Post(ctx context.Context, path string, body, out any, opts ...RequestOption) error {
	return c.Do(ctx, http.MethodPost, path, body, out, opts...)
}

// Put issues a JSON PUT.
func (c *Client) Put(ctx context.Context, path string, body, out any, opts ...RequestOption) error {
	return c.Do(ctx, http.MethodPut, path, body, out, opts...)
}

// Do sends a request and decodes a 2xx body into out. A *string out receives
// the raw body text. Every failure is returned as *Error.
func (c *Client) Do(ctx context.Context, method, path string, body, out any, opts ...RequestOption) error {
	ro := requestOptions{query: make(url.Values), header: make(http.Header)}
	for _, opt := range opts {
		opt(&ro)
	}

	target, err := c.resolve(path, ro.query)
	if err != nil {
		return c.newError(KindUnknown, 0, err)
	}

	var payload io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return c.newError(KindUnknown, 0, fmt.Errorf("marshal request body: %w", err))
		}
		payload = bytes.NewReader(raw)
	}

	ctx, reqID := requestid.Ensure(ctx)

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return c.newError(KindNetwork, 0, err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), payload)
	if err != nil {
		return c.newError(KindUnknown, 0, err)
	}

	c.mu.RLock()
	for k, vs := range c.header {
		req.Header[k] = append([]string(nil), vs...)
	}
	c.mu.RUnlock()
	if ro.anonymous {
		req.Header.Del(HeaderAuthorization)
	}
	for k, vs := range ro.header {
		req.Header[k] = vs
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(requestid.Header, reqID)

	log := c.logger.With(logger.Method(method), logger.URL(target.Path))
	done := c.metrics.RequestStarted(method, target.Path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		done(0, string(KindNetwork))
		log.WarnContext(ctx, "request failed", logger.Error(err), logger.Duration(time.Since(start)))
		return c.newError(KindNetwork, 0, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		done(resp.StatusCode, string(KindNetwork))
		return c.newError(KindNetwork, resp.StatusCode, fmt.Errorf("read response body: %w", err))
	}

	c.notify(Response{
		Method:        method,
		Path:          target.Path,
		Status:        resp.StatusCode,
		Authorization: req.Header.Get(HeaderAuthorization),
	})

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		e := c.classifyResponse(resp.StatusCode, raw, req.Header.Get(HeaderAuthorization) != "")
		done(resp.StatusCode, string(e.Kind))
		log.DebugContext(ctx, "request rejected",
			logger.Status(resp.StatusCode),
			slog.String("kind", string(e.Kind)),
			logger.Duration(time.Since(start)),
		)
		return e
	}

	if err := decodeBody(raw, out); err != nil {
		done(resp.StatusCode, string(KindUnknown))
		log.WarnContext(ctx, "unexpected response body", logger.Status(resp.StatusCode), logger.Error(err))
		e := c.newError(KindUnknown, resp.StatusCode, err)
		e.Payload = jsonPayload(raw)
		return e
	}

	done(resp.StatusCode, "ok")
	log.DebugContext(ctx, "request completed", logger.Status(resp.StatusCode), logger.Duration(time.Since(start)))
	return nil
}

func (c *Client) resolve(path string, query url.Values) (*url.URL, error) {
	ref, err := url.Parse(path)
	if err != nil {
		return nil, err
	}
	u := *c.baseURL
	if ref.IsAbs() {
		u = *ref
	} else {
		u.Path = strings.TrimRight(c.baseURL.Path, "/") + "/" + strings.TrimLeft(ref.Path, "/")
		u.RawQuery = ref.RawQuery
	}
	if len(query) > 0 {
		q := u.Query()
		for k, vs := range query {
			for _, v := range vs {
				q.Add(k, v)
			}
		}
		u.RawQuery = q.Encode()
	}
	return &u, nil
}

func (c *Client) notify(r Response) {
	c.mu.RLock()
	obs := make([]Observer, 0, len(c.observers))
	for _, fn := range c.observers {
		obs = append(obs, fn)
	}
	c.mu.RUnlock()

	for _, fn := range obs {
		fn(r)
	}
}

func decodeBody(raw []byte, out any) error {
	if out == nil {
		return nil
	}
	if s, ok := out.(*string); ok {
		var str string
		if json.Unmarshal(raw, &str) == nil {
			*s = str
			return nil
		}
		*s = strings.TrimSpace(string(raw))
		return nil
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return fmt.Errorf("empty response body")
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response body: %w", err)
	}
	return nil
}
