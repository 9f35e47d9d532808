package http

import (
	"errors"
	"testing"
)

func TestParseResponse(t *testing.T) {
	raw := "HTTP/1.1 200 OK\r\nContent-Length: 13\r\nContent-Type: application/json\r\n\r\n{\"ok\": true}"

	resp, err := ParseResponse([]byte(raw))
	if err != nil {
		t.Fatalf("ParseResponse error: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Errorf("Expected status code 200, got %d", resp.StatusCode)
	}
	if resp.Status != "200 OK" {
		t.Errorf("Expected status 200 OK, got %q", resp.Status)
	}
	if resp.Proto != "HTTP/1.1" {
		t.Errorf("Expected proto HTTP/1.1, got %q", resp.Proto)
	}
	if resp.Body != `{"ok": true}` {
		t.Errorf("Unexpected body %q", resp.Body)
	}
	if !resp.IsSuccess() {
		t.Error("Expected response to be a success")
	}
	if resp.Header("content-type") != "application/json" {
		t.Errorf("Unexpected Content-Type %q", resp.Header("content-type"))
	}
	if resp.Raw != raw {
		t.Error("Raw text not kept")
	}
}

func TestParseResponse_TruncatesToContentLength(t *testing.T) {
	raw := "HTTP/1.1 200 OK\r\nContent-Length: 4\r\n\r\nbodyEXTRA"
	resp, err := ParseResponse([]byte(raw))
	if err != nil {
		t.Fatal(err)
	}
	if resp.Body != "body" {
		t.Errorf("Expected body %q, got %q", "body", resp.Body)
	}
}

func TestParseResponse_BodyWithCRLF(t *testing.T) {
	raw := "HTTP/1.1 200 OK\r\nContent-Length: 11\r\n\r\nline\r\nline2"
	resp, err := ParseResponse([]byte(raw))
	if err != nil {
		t.Fatal(err)
	}
	if resp.Body != "line\r\nline2" {
		t.Errorf("Unexpected body %q", resp.Body)
	}
}

func TestParseResponse_HeaderValueWithSeparator(t *testing.T) {
	raw := "HTTP/1.1 200 OK\r\nX-Note: a: b\r\nContent-Length: 0\r\n\r\n"
	resp, err := ParseResponse([]byte(raw))
	if err != nil {
		t.Fatal(err)
	}
	if resp.Header("X-Note") != "a: b" {
		t.Errorf("Unexpected header value %q", resp.Header("X-Note"))
	}
}

func TestParseResponse_Errors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want error
	}{
		{"empty", "", ErrInvalidStatusLine},
		{"no code", "HTTP/1.1\r\n\r\n", ErrInvalidStatusLine},
		{"non-numeric code", "HTTP/1.1 OK\r\n\r\n", ErrInvalidStatusLine},
		{"header without separator", "HTTP/1.1 200 OK\r\nBroken\r\n\r\n", ErrInvalidHeaderLine},
		{"header with bare colon", "HTTP/1.1 200 OK\r\nX-A:b\r\n\r\n", ErrInvalidHeaderLine},
		{"bad content length", "HTTP/1.1 200 OK\r\nContent-Length: ten\r\n\r\nbody", ErrInvalidHeaderLine},
		{"body without content length", "HTTP/1.1 200 OK\r\nX-A: b\r\n\r\nbody", ErrMissingContentLength},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseResponse([]byte(tt.raw))
			if !errors.Is(err, tt.want) {
				t.Errorf("ParseResponse error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestParseResponse_BodylessWithoutContentLength(t *testing.T) {
	for _, raw := range []string{
		"HTTP/1.1 204 No Content\r\nX-A: b\r\n\r\n",
		"HTTP/1.1 304 Not Modified\r\n\r\nstray",
		"HTTP/1.1 301 Moved Permanently\r\nLocation: /status\r\n\r\n",
	} {
		resp, err := ParseResponse([]byte(raw))
		if err != nil {
			t.Errorf("ParseResponse(%q) error: %v", raw, err)
			continue
		}
		if resp.Body != "" {
			t.Errorf("Expected empty body, got %q", resp.Body)
		}
	}
}

func TestResponse_JSON(t *testing.T) {
	resp := &Response{Body: "{}"}
	v, err := resp.JSON()
	if err != nil {
		t.Fatalf("JSON error: %v", err)
	}
	m, ok := v.(map[string]any)
	if !ok || len(m) != 0 {
		t.Errorf("Expected empty map, got %#v", v)
	}

	resp = &Response{Body: "not json"}
	_, err = resp.JSON()
	if !errors.Is(err, ErrJSONParse) {
		t.Fatalf("Expected ErrJSONParse, got %v", err)
	}
	var herr *Error
	if !errors.As(err, &herr) || herr.Body != "not json" {
		t.Errorf("Error does not carry the body: %#v", err)
	}
}

func TestResponse_Decode(t *testing.T) {
	resp := &Response{Body: `{"status":"Server is running"}`}
	var out struct {
		Status string `json:"status"`
	}
	if err := resp.Decode(&out); err != nil {
		t.Fatal(err)
	}
	if out.Status != "Server is running" {
		t.Errorf("Unexpected status %q", out.Status)
	}
}

func TestResponse_StatusClasses(t *testing.T) {
	tests := []struct {
		code                                      int
		success, redirect, clientError, serverErr bool
	}{
		{200, true, false, false, false},
		{299, true, false, false, false},
		{301, false, true, false, false},
		{399, false, true, false, false},
		{404, false, false, true, false},
		{500, false, false, false, true},
		{199, false, false, false, false},
	}
	for _, tt := range tests {
		resp := &Response{StatusCode: tt.code}
		if resp.IsSuccess() != tt.success || resp.IsRedirect() != tt.redirect ||
			resp.IsClientError() != tt.clientError || resp.IsServerError() != tt.serverErr {
			t.Errorf("status %d classified wrongly", tt.code)
		}
	}
}

func TestResponse_String(t *testing.T) {
	resp := &Response{StatusCode: 200, Body: `{"a":1}`, Headers: P("Content-Length", "7")}
	expected := `Response(status=200, body="{\"a\":1}", headers={"Content-Length": "7"})`
	if got := resp.String(); got != expected {
		t.Errorf("String() = %s, want %s", got, expected)
	}
}
