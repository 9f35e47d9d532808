package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"
)

// Method is an HTTP request method.
type Method string

// Supported methods.
const (
	MethodGet    Method = "GET"
	MethodPost   Method = "POST"
	MethodPut    Method = "PUT"
	MethodDelete Method = "DELETE"
	MethodHead   Method = "HEAD"
)

// Valid reports whether m is one of the supported methods.
func (m Method) Valid() bool {
	switch m {
	case MethodGet, MethodPost, MethodPut, MethodDelete, MethodHead:
		return true
	}
	return false
}

// HasBody reports whether requests with method m carry a body.
func (m Method) HasBody() bool {
	return m == MethodPost || m == MethodPut
}

// DefaultHeaders are sent with every request unless the caller overrides
// them. Host is added after these.
var DefaultHeaders = Pairs{
	{Key: "Accept", Value: "*/*"},
	{Key: "User-Agent", Value: "CustomClient/1.0"},
	{Key: "Connection", Value: "close"},
}

const crlf = "\r\n"

// Request is a single HTTP/1.1 request ready to be written to a socket.
type Request struct {
	Method Method
	URL    ParsedURL
	Query  Pairs
	// Headers holds the effective headers: defaults, Host, caller headers
	// and, when a body is present, Content-Length and Content-Type.
	Headers Pairs
	Body    any

	body []byte
	once sync.Once
	raw  []byte
}

// NewRequest validates method, merges the default headers with headers
// (caller wins) and serializes body as JSON. A body that is nil or encodes
// to null, {}, [] or "" counts as empty and adds no entity headers.
func NewRequest(method Method, target ParsedURL, query, headers Pairs, body any) (*Request, error) {
	if !method.Valid() {
		return nil, &Error{Kind: KindInvalidMethod, Msg: fmt.Sprintf("method %q is not allowed", method)}
	}

	encoded, err := encodeBody(body)
	if err != nil {
		return nil, err
	}

	h := DefaultHeaders.Merge(Pairs{{Key: "Host", Value: target.Host}}).Merge(headers)
	if len(encoded) > 0 {
		h.Set("Content-Length", strconv.Itoa(len(encoded)))
		h.Set("Content-Type", "application/json")
	}

	return &Request{
		Method:  method,
		URL:     target,
		Query:   query,
		Headers: h,
		Body:    body,
		body:    encoded,
	}, nil
}

func encodeBody(body any) ([]byte, error) {
	if body == nil {
		return nil, nil
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(body); err != nil {
		return nil, fmt.Errorf("encode request body: %w", err)
	}
	encoded := bytes.TrimRight(buf.Bytes(), "\n")
	switch string(encoded) {
	case "null", "{}", "[]", `""`:
		return nil, nil
	}
	return encoded, nil
}

// Target returns the request-target: the path followed by the encoded
// query, if any.
func (r *Request) Target() string {
	if len(r.Query) == 0 {
		return r.URL.Path
	}
	sep := "?"
	if strings.Contains(r.URL.Path, "?") {
		sep = "&"
	}
	return r.URL.Path + sep + r.Query.Encode()
}

// JSON returns the serialized body, empty when there is none.
func (r *Request) JSON() []byte {
	return r.body
}

// Raw returns the exact bytes to transmit:
//
//	<METHOD> <target> HTTP/1.1\r\n
//	Name: Value\r\n
//	...
//	\r\n
//	<json body>
//
// The result is computed once; later calls return the same slice.
func (r *Request) Raw() []byte {
	r.once.Do(func() {
		var buf bytes.Buffer
		buf.WriteString(string(r.Method))
		buf.WriteByte(' ')
		buf.WriteString(r.Target())
		buf.WriteString(" HTTP/1.1" + crlf)
		for _, kv := range r.Headers {
			buf.WriteString(kv.Key)
			buf.WriteString(": ")
			buf.WriteString(kv.Value)
			buf.WriteString(crlf)
		}
		buf.WriteString(crlf)
		buf.Write(r.body)
		r.raw = buf.Bytes()
	})
	return r.raw
}
