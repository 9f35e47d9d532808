// Package http is a minimal HTTP/1.1 client written directly against TCP
// sockets. It builds the request line, headers and JSON body by hand, sends
// them over a fresh connection (TLS when the port is 443), reads until the
// peer closes, and parses the status line, headers and body back.
//
// This package is designed for programmatic use and provides:
//   - URL decomposition into protocol, host, port and path
//   - A request builder that produces the exact bytes sent on the wire
//   - A response parser that slices the body to Content-Length
//   - Redirect following, bounded to MaxRedirects hops
//   - A Session that carries a timeout, default headers and a Logger
//
// A Session built without WithSessionLogger logs nothing, and neither do
// the package-level Get, Post, Put, Patch and Delete. Pass a Logger to see
// the raw request and response text.
//
// Basic Usage:
//
//	resp, err := http.Get(ctx, "http://127.0.0.1:5000/status", nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(resp.StatusCode, resp.Body)
//
// Session Example:
//
//	session := http.NewSession(
//	    http.WithSessionTimeout(15*time.Second),
//	    http.WithSessionHeader("Authorization", "Token 123-123"),
//	)
//
//	resp, err := session.Post(ctx, "http://127.0.0.1:5000/echo", &http.Params{
//	    Query: http.P("param", "value"),
//	    Body:  map[string]any{"dict": map[string]string{"key": "value"}},
//	})
//
// Errors:
//
// Every failure is an *Error whose Kind tells which step failed. Test for
// a kind with errors.Is:
//
//	if errors.Is(err, http.ErrTooManyRedirects) { ... }
//
// Not supported: connection reuse, HTTP/2, chunked transfer-encoding,
// compression, cookies.
package http
