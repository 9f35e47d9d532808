package http

import (
	"context"
	"fmt"
	"time"
)

// MaxRedirects is the number of redirect hops followed for one logical call.
const MaxRedirects = 5

// Params are the non-URL parts of a logical call. They are sent unchanged
// on every redirect hop.
type Params struct {
	Query   Pairs
	Headers Pairs
	Body    any
}

// Client performs one logical call against a target URL, following
// redirects. It holds no state between calls and is cheap to build.
type Client struct {
	url       ParsedURL
	timeout   time.Duration
	logger    Logger
	transport Transport
}

// ClientOption is a function that configures a Client.
type ClientOption func(*Client)

// NewClient creates a client bound to target.
func NewClient(target ParsedURL, options ...ClientOption) *Client {
	c := &Client{
		url:     target,
		timeout: DefaultTimeout,
		logger:  NopLogger{},
	}
	for _, option := range options {
		option(c)
	}
	if c.transport == nil {
		c.transport = &SocketTransport{Timeout: c.timeout}
	}
	return c
}

// WithTimeout sets the per-operation socket timeout.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithLogger sets where requests and responses are logged.
func WithLogger(logger Logger) ClientOption {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithTransport replaces the socket transport, e.g. to supply a TLS
// configuration or a scripted peer in tests.
func WithTransport(transport Transport) ClientOption {
	return func(c *Client) {
		c.transport = transport
	}
}

// URL returns the target the client was built for.
func (c *Client) URL() ParsedURL {
	return c.url
}

// Do sends method to the client's target and follows redirects.
//
// A 3xx response with a Location header is followed with a GET carrying
// the original params; a relative Location replaces the path of the
// current target, an absolute one becomes the new target. A 3xx without
// Location is returned as is. Once MaxRedirects hops have been followed,
// a further redirect fails with ErrTooManyRedirects.
func (c *Client) Do(ctx context.Context, method Method, p Params) (*Response, error) {
	req, err := NewRequest(method, c.url, p.Query, p.Headers, p.Body)
	if err != nil {
		return nil, err
	}
	resp, err := c.send(ctx, req)
	if err != nil {
		return nil, err
	}

	current := c.url
	for hops := 0; resp.IsRedirect(); hops++ {
		location := resp.Header("Location")
		if location == "" {
			return resp, nil
		}
		if hops >= MaxRedirects {
			return nil, &Error{
				Kind: KindTooManyRedirects,
				Msg:  fmt.Sprintf("maximum %d redirects reached at %s", MaxRedirects, location),
			}
		}

		if IsRelative(location) {
			current = current.WithPath(location)
		} else if current, err = ParseURL(location); err != nil {
			return nil, err
		}

		req, err = NewRequest(MethodGet, current, p.Query, p.Headers, p.Body)
		if err != nil {
			return nil, err
		}
		if resp, err = c.send(ctx, req); err != nil {
			return nil, err
		}
	}
	return resp, nil
}

func (c *Client) send(ctx context.Context, req *Request) (*Response, error) {
	raw := req.Raw()
	c.logger.Info(string(raw), "request")

	start := time.Now()
	data, err := c.transport.Exchange(ctx, req.URL.Host, req.URL.Port, raw)
	if err != nil {
		return nil, err
	}
	resp, err := ParseResponse(data)
	if err != nil {
		return nil, err
	}
	resp.ResponseTime = time.Since(start)

	c.logger.Info(resp.String(), "response")
	return resp, nil
}
