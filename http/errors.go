package http

import (
	"fmt"
	"time"
)

// Kind classifies the failures a logical call can end with.
//
// KindTransport extends the usual set: it covers socket failures that are
// not timeouts, such as a refused connection or a failed TLS handshake, so
// every error returned carries some kind.
type Kind int

const (
	// KindInvalidURL means the URL lacks a protocol separator, has a
	// non-numeric port or uses a protocol with no default port.
	KindInvalidURL Kind = iota + 1
	// KindInvalidMethod means the method is not one of the supported verbs.
	KindInvalidMethod
	// KindRequestTimeout means connect, send or receive exceeded the timeout.
	KindRequestTimeout
	// KindTransport covers socket failures other than timeouts.
	KindTransport
	// KindInvalidStatusLine means the status line had no numeric code.
	KindInvalidStatusLine
	// KindInvalidHeaderLine means a header line had no ": " separator.
	KindInvalidHeaderLine
	// KindMissingContentLength means a body was present without Content-Length.
	KindMissingContentLength
	// KindJSONParse means the response body is not valid JSON.
	KindJSONParse
	// KindTooManyRedirects means the redirect hop cap was exceeded.
	KindTooManyRedirects
)

var kindNames = map[Kind]string{
	KindInvalidURL:           "invalid url",
	KindInvalidMethod:        "invalid method",
	KindRequestTimeout:       "request timeout",
	KindTransport:            "transport error",
	KindInvalidStatusLine:    "invalid status line",
	KindInvalidHeaderLine:    "invalid header line",
	KindMissingContentLength: "missing content length",
	KindJSONParse:            "json parse error",
	KindTooManyRedirects:     "too many redirects",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Error is the error type returned by every operation in this package.
//
// Use errors.Is with one of the Err* sentinels to test the kind, and
// errors.As to reach the detail fields:
//
//	var herr *http.Error
//	if errors.As(err, &herr) && herr.Kind == http.KindJSONParse {
//	    fmt.Println(herr.Body)
//	}
type Error struct {
	Kind Kind
	Msg  string

	// URL is set for KindInvalidURL.
	URL string
	// Body is set for KindJSONParse.
	Body string
	// Timeout is set for KindRequestTimeout.
	Timeout time.Duration

	// Err is the underlying cause, if any.
	Err error
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Msg != "" {
		msg += ": " + e.Msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Sentinels for errors.Is.
var (
	ErrInvalidURL           = &Error{Kind: KindInvalidURL}
	ErrInvalidMethod        = &Error{Kind: KindInvalidMethod}
	ErrRequestTimeout       = &Error{Kind: KindRequestTimeout}
	ErrTransport            = &Error{Kind: KindTransport}
	ErrInvalidStatusLine    = &Error{Kind: KindInvalidStatusLine}
	ErrInvalidHeaderLine    = &Error{Kind: KindInvalidHeaderLine}
	ErrMissingContentLength = &Error{Kind: KindMissingContentLength}
	ErrJSONParse            = &Error{Kind: KindJSONParse}
	ErrTooManyRedirects     = &Error{Kind: KindTooManyRedirects}
)
