package http

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Response is a parsed HTTP/1.1 response.
type Response struct {
	// Raw is the response exactly as read from the socket.
	Raw string

	// Proto is the first token of the status line, e.g. "HTTP/1.1".
	Proto string

	// StatusCode is the HTTP status code (e.g., 200, 404, 500)
	StatusCode int

	// Status is the status line after the protocol, e.g. "200 OK".
	Status string

	// Headers in the order the peer sent them.
	Headers Pairs

	// Body is sliced to Content-Length bytes.
	Body string

	// ResponseTime covers connect, send and receive for the final hop.
	ResponseTime time.Duration
}

// ParseResponse splits a raw response into status, headers and body.
//
// Headers end at the first empty line and each must be "Name: Value",
// split on the first ": ". The body is what follows the empty line,
// truncated to Content-Length; extra bytes are ignored. Without a
// Content-Length the body must be empty unless the status never carries
// one (1xx, 204, 304), otherwise ErrMissingContentLength is returned.
func ParseResponse(raw []byte) (*Response, error) {
	text := string(raw)
	resp := &Response{Raw: text}

	head, rest, _ := strings.Cut(text, crlf+crlf)
	lines := strings.Split(head, crlf)

	if err := resp.parseStatusLine(lines[0]); err != nil {
		return nil, err
	}
	for _, line := range lines[1:] {
		if line == "" {
			break
		}
		name, value, ok := strings.Cut(line, ": ")
		if !ok {
			return nil, &Error{Kind: KindInvalidHeaderLine, Msg: fmt.Sprintf("%q", line)}
		}
		resp.Headers.Set(name, value)
	}

	cl, ok := resp.Headers.Lookup("Content-Length")
	if !ok {
		if rest != "" && !bodylessStatus(resp.StatusCode) {
			return nil, &Error{Kind: KindMissingContentLength, Msg: fmt.Sprintf("status %d carries %d body bytes", resp.StatusCode, len(rest))}
		}
		return resp, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(cl))
	if err != nil || n < 0 {
		return nil, &Error{Kind: KindInvalidHeaderLine, Msg: fmt.Sprintf("Content-Length: %s", cl), Err: err}
	}
	if n < len(rest) {
		rest = rest[:n]
	}
	resp.Body = rest
	return resp, nil
}

func (r *Response) parseStatusLine(line string) error {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return &Error{Kind: KindInvalidStatusLine, Msg: fmt.Sprintf("%q", line)}
	}
	code, err := strconv.Atoi(fields[1])
	if err != nil {
		return &Error{Kind: KindInvalidStatusLine, Msg: fmt.Sprintf("%q", line), Err: err}
	}
	r.Proto = fields[0]
	r.StatusCode = code
	r.Status = strings.Join(fields[1:], " ")
	return nil
}

func bodylessStatus(code int) bool {
	return (code >= 100 && code < 200) || code == 204 || code == 304
}

// Header returns the value of the named header, matched case-insensitively.
func (r *Response) Header(name string) string {
	v, _ := r.Headers.Lookup(name)
	return v
}

// JSON decodes the body into a generic value. "{}" yields an empty
// map[string]any.
func (r *Response) JSON() (any, error) {
	var v any
	if err := r.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// Decode unmarshals the body into v.
func (r *Response) Decode(v any) error {
	if err := json.Unmarshal([]byte(r.Body), v); err != nil {
		return &Error{
			Kind: KindJSONParse,
			Msg:  fmt.Sprintf("cannot deserialize %q", r.Body),
			Body: r.Body,
			Err:  err,
		}
	}
	return nil
}

// IsSuccess returns true if the response status code is in the 2xx range
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// IsRedirect returns true if the response status code is in the 3xx range
func (r *Response) IsRedirect() bool {
	return r.StatusCode >= 300 && r.StatusCode < 400
}

// IsClientError returns true if the response status code is in the 4xx range
func (r *Response) IsClientError() bool {
	return r.StatusCode >= 400 && r.StatusCode < 500
}

// IsServerError returns true if the response status code is in the 5xx range
func (r *Response) IsServerError() bool {
	return r.StatusCode >= 500 && r.StatusCode < 600
}

// GetResponseTimeMillis returns the response time in milliseconds
func (r *Response) GetResponseTimeMillis() int64 {
	return r.ResponseTime.Milliseconds()
}

func (r *Response) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, kv := range r.Headers {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%q: %q", kv.Key, kv.Value)
	}
	sb.WriteByte('}')
	return fmt.Sprintf("Response(status=%d, body=%q, headers=%s)", r.StatusCode, r.Body, sb.String())
}
