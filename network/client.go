package network

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"

	apperrors "github.com/skillsenselab/appkit/errors"
	"github.com/skillsenselab/appkit/logger"
	"github.com/skillsenselab/appkit/observe"
	"github.com/skillsenselab/appkit/resilience"
)

// Client is the baseline network provider: a configured HTTP client with
// typed error classification, optional retry, and a connectivity observable
// fed by a native connectivity source.
type Client struct {
	httpClient *http.Client
	config     Config
	log        *logger.Logger

	connectivity *observe.Observable[bool]
}

// NewClient creates a network client over the given connectivity source.
// Pass AlwaysOnline() when no native monitor exists.
func NewClient(cfg Config, source ConnectivitySource) (*Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if source == nil {
		source = AlwaysOnline()
	}

	c := &Client{
		httpClient:   &http.Client{Timeout: cfg.Timeout},
		config:       cfg,
		log:          logger.WithComponent("network"),
		connectivity: observe.NewObservable(source.Online()),
	}

	stop := source.Watch(func(online bool) {
		c.connectivity.Set(online)
	})
	c.connectivity.OnDetach(stop)

	return c, nil
}

// Request executes an HTTP request against url (absolute, or relative to the
// configured base URL).
func (c *Client) Request(ctx context.Context, url string, opts RequestOptions) (*Response, error) {
	if c.config.Retry != nil {
		return resilience.Retry(ctx, *c.config.Retry, func() (*Response, error) {
			return c.doOnce(ctx, url, opts)
		})
	}
	return c.doOnce(ctx, url, opts)
}

// IsOnline reports the last known connectivity state.
func (c *Client) IsOnline() bool {
	return c.connectivity.Get()
}

// SubscribeConnectivity registers a connectivity listener; the current state
// is delivered before the call returns.
func (c *Client) SubscribeConnectivity(fn observe.Listener[bool]) *observe.Subscription {
	return c.connectivity.Subscribe(fn)
}

// Dispose releases the native connectivity watch and all listeners.
func (c *Client) Dispose() {
	c.connectivity.Dispose()
	c.httpClient.CloseIdleConnections()
}

func (c *Client) doOnce(ctx context.Context, url string, opts RequestOptions) (*Response, error) {
	fullURL := c.resolveURL(url)

	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	var body io.Reader
	if opts.Body != nil {
		body = bytes.NewReader(opts.Body)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return nil, apperrors.Validation("invalid request: " + err.Error())
	}

	for k, v := range c.config.Headers {
		req.Header.Set(k, v)
	}
	for k, v := range opts.Headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, classify(err, method+" "+fullURL, req.URL.Host)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, classify(err, method+" "+fullURL, req.URL.Host)
	}

	return &Response{
		Status:  resp.StatusCode,
		Headers: resp.Header,
		Body:    raw,
	}, nil
}

func (c *Client) resolveURL(url string) string {
	if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
		return url
	}
	base := strings.TrimSuffix(c.config.BaseURL, "/")
	return base + "/" + strings.TrimPrefix(url, "/")
}

// classify converts transport errors into the typed taxonomy: deadline
// overruns become REQUEST_TIMEOUT so callers can retry them specifically.
func classify(err error, operation, host string) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.RequestTimeout(operation).WithCause(err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return apperrors.RequestTimeout(operation).WithCause(err)
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	return apperrors.ConnectionFailed(host).WithCause(err)
}
