package http

import (
	"context"
	"time"
)

// Session carries default configuration across calls. Each verb call
// parses its URL and runs on a fresh Client, so a Session can be shared by
// goroutines as long as its options are not changed after construction.
type Session struct {
	timeout   time.Duration
	headers   Pairs
	logger    Logger
	transport Transport
}

// SessionOption is a function that configures a Session.
type SessionOption func(*Session)

// NewSession creates a session. Without options it uses DefaultTimeout,
// no extra headers and a NopLogger.
func NewSession(options ...SessionOption) *Session {
	s := &Session{
		timeout: DefaultTimeout,
		logger:  NopLogger{},
	}
	for _, option := range options {
		option(s)
	}
	return s
}

// WithSessionTimeout sets the socket timeout used by every call.
func WithSessionTimeout(timeout time.Duration) SessionOption {
	return func(s *Session) {
		s.timeout = timeout
	}
}

// WithSessionHeader adds a default header to every call. Headers passed to
// a call override these.
func WithSessionHeader(key, value string) SessionOption {
	return func(s *Session) {
		s.headers.Set(key, value)
	}
}

// WithSessionHeaders adds several default headers.
func WithSessionHeaders(headers Pairs) SessionOption {
	return func(s *Session) {
		s.headers = s.headers.Merge(headers)
	}
}

// WithSessionLogger sets the logger handed to every client.
func WithSessionLogger(logger Logger) SessionOption {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithSessionTransport replaces the socket transport for every call.
func WithSessionTransport(transport Transport) SessionOption {
	return func(s *Session) {
		s.transport = transport
	}
}

// Timeout returns the configured socket timeout.
func (s *Session) Timeout() time.Duration {
	return s.timeout
}

// Headers returns a copy of the default headers.
func (s *Session) Headers() Pairs {
	return append(Pairs(nil), s.headers...)
}

// Get issues a GET. p may be nil; its Body is ignored.
func (s *Session) Get(ctx context.Context, rawURL string, p *Params) (*Response, error) {
	return s.do(ctx, MethodGet, rawURL, withoutBody(p))
}

// Post issues a POST with an optional JSON body.
func (s *Session) Post(ctx context.Context, rawURL string, p *Params) (*Response, error) {
	return s.do(ctx, MethodPost, rawURL, p)
}

// Put issues a PUT with an optional JSON body.
func (s *Session) Put(ctx context.Context, rawURL string, p *Params) (*Response, error) {
	return s.do(ctx, MethodPut, rawURL, p)
}

// Patch is an alias for Put; the request goes out as PUT.
func (s *Session) Patch(ctx context.Context, rawURL string, p *Params) (*Response, error) {
	return s.Put(ctx, rawURL, p)
}

// Delete issues a DELETE. p may be nil; its Body is ignored.
func (s *Session) Delete(ctx context.Context, rawURL string, p *Params) (*Response, error) {
	return s.do(ctx, MethodDelete, rawURL, withoutBody(p))
}

// Head issues a HEAD. p may be nil; its Body is ignored.
func (s *Session) Head(ctx context.Context, rawURL string, p *Params) (*Response, error) {
	return s.do(ctx, MethodHead, rawURL, withoutBody(p))
}

// Do issues any supported method. The Body of a GET, DELETE or HEAD is
// ignored.
func (s *Session) Do(ctx context.Context, method Method, rawURL string, p *Params) (*Response, error) {
	if !method.HasBody() {
		p = withoutBody(p)
	}
	return s.do(ctx, method, rawURL, p)
}

// NewRequest builds the request the first hop of Do would send, without
// sending it.
func (s *Session) NewRequest(method Method, rawURL string, p *Params) (*Request, error) {
	target, err := ParseURL(rawURL)
	if err != nil {
		return nil, err
	}
	if !method.HasBody() {
		p = withoutBody(p)
	}
	prepared := s.prepare(p)
	return NewRequest(method, target, prepared.Query, prepared.Headers, prepared.Body)
}

func (s *Session) do(ctx context.Context, method Method, rawURL string, p *Params) (*Response, error) {
	target, err := ParseURL(rawURL)
	if err != nil {
		return nil, err
	}
	return s.NewClient(target).Do(ctx, method, s.prepare(p))
}

// NewClient builds a client for target with the session's configuration.
func (s *Session) NewClient(target ParsedURL) *Client {
	options := []ClientOption{
		WithTimeout(s.timeout),
		WithLogger(s.logger),
	}
	if s.transport != nil {
		options = append(options, WithTransport(s.transport))
	}
	return NewClient(target, options...)
}

// prepare merges the session headers under the call headers. Unset fields
// stay unset; only the merged headers are always materialized.
func (s *Session) prepare(p *Params) Params {
	var out Params
	if p != nil {
		out = *p
	}
	if len(s.headers) > 0 || len(out.Headers) > 0 {
		out.Headers = s.headers.Merge(out.Headers)
	}
	return out
}

func withoutBody(p *Params) *Params {
	if p == nil || p.Body == nil {
		return p
	}
	cp := *p
	cp.Body = nil
	return &cp
}

// Get issues a GET with a default session.
func Get(ctx context.Context, rawURL string, p *Params) (*Response, error) {
	return NewSession().Get(ctx, rawURL, p)
}

// Post issues a POST with a default session.
func Post(ctx context.Context, rawURL string, p *Params) (*Response, error) {
	return NewSession().Post(ctx, rawURL, p)
}

// Put issues a PUT with a default session.
func Put(ctx context.Context, rawURL string, p *Params) (*Response, error) {
	return NewSession().Put(ctx, rawURL, p)
}

// Patch issues a PUT with a default session.
func Patch(ctx context.Context, rawURL string, p *Params) (*Response, error) {
	return NewSession().Patch(ctx, rawURL, p)
}

// Delete issues a DELETE with a default session.
func Delete(ctx context.Context, rawURL string, p *Params) (*Response, error) {
	return NewSession().Delete(ctx, rawURL, p)
}
