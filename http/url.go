package http

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const protocolSep = "://"

// defaultPorts maps the supported protocols to the port used when the URL
// does not name one. It is never written outside tests.
var defaultPorts = map[string]int{
	"http":  80,
	"https": 443,
}

// DefaultPort returns the port used for protocol when a URL names none.
func DefaultPort(protocol string) (int, bool) {
	n, ok := defaultPorts[protocol]
	return n, ok
}

// ParsedURL is a URL decomposed into the parts the wire protocol needs.
// It is a value type; redirects build a new one instead of mutating.
type ParsedURL struct {
	Protocol string
	Host     string
	Port     int
	// Path always starts with "/".
	Path string
}

// ParseURL decomposes rawURL of the form "<protocol>://host[:port][/path]".
//
// An explicit port is accepted for any protocol; without one the port
// comes from DefaultPort and unknown protocols are rejected. The path is
// whatever follows the host part, or "/" when nothing does.
func ParseURL(rawURL string) (ParsedURL, error) {
	u, err := parseURL(rawURL)
	if err != nil {
		return ParsedURL{}, &Error{
			Kind: KindInvalidURL,
			Msg:  fmt.Sprintf("url %q is invalid", rawURL),
			URL:  rawURL,
			Err:  err,
		}
	}
	return u, nil
}

func parseURL(rawURL string) (ParsedURL, error) {
	var u ParsedURL

	protocol, rest, ok := strings.Cut(rawURL, protocolSep)
	if !ok {
		return u, fmt.Errorf("missing %q separator", protocolSep)
	}
	if protocol == "" {
		return u, errors.New("empty protocol")
	}
	u.Protocol = protocol

	hostPart := rest
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		hostPart = rest[:i]
	}

	host, port, hasPort := strings.Cut(hostPart, ":")
	if hasPort {
		n, err := strconv.Atoi(port)
		if err != nil {
			return u, fmt.Errorf("invalid port %q: %w", port, err)
		}
		if n <= 0 || n > 65535 {
			return u, fmt.Errorf("port %d out of range", n)
		}
		u.Port = n
	} else {
		n, ok := DefaultPort(protocol)
		if !ok {
			return u, fmt.Errorf("no default port for protocol %q", protocol)
		}
		u.Port = n
	}
	if host == "" {
		return u, errors.New("empty host")
	}
	u.Host = host

	u.Path = strings.TrimPrefix(rest, hostPart)
	if u.Path == "" {
		u.Path = "/"
	}
	return u, nil
}

// IsRelative reports whether a Location value lacks a protocol separator
// and must be resolved against the current target.
func IsRelative(location string) bool {
	return !strings.Contains(location, protocolSep)
}

// IsSecure reports whether the URL names the https protocol.
func (u ParsedURL) IsSecure() bool {
	return u.Protocol == "https"
}

// WithPath returns a copy of u pointing at path.
func (u ParsedURL) WithPath(path string) ParsedURL {
	u.Path = path
	return u
}

// Address returns the "host:port" pair to dial.
func (u ParsedURL) Address() string {
	return u.Host + ":" + strconv.Itoa(u.Port)
}

// String reassembles the URL, omitting the port when it is the default.
func (u ParsedURL) String() string {
	var sb strings.Builder
	sb.WriteString(u.Protocol)
	sb.WriteString(protocolSep)
	sb.WriteString(u.Host)
	if def, ok := DefaultPort(u.Protocol); !ok || def != u.Port {
		sb.WriteByte(':')
		sb.WriteString(strconv.Itoa(u.Port))
	}
	sb.WriteString(u.Path)
	return sb.String()
}
