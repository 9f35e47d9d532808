package http

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"strconv"
	"time"
)

const (
	// DefaultTimeout bounds each connect, send and receive operation.
	DefaultTimeout = 30 * time.Second

	// ResponseChunkSize is the read buffer size used while draining a response.
	ResponseChunkSize = 256 * 1024
)

// Transport sends raw request bytes to host:port and returns everything
// the peer wrote back before closing the connection.
type Transport interface {
	Exchange(ctx context.Context, host string, port int, raw []byte) ([]byte, error)
}

// SocketTransport opens a fresh TCP connection per exchange. Connections
// to port 443 are wrapped in TLS with the host as ServerName, whatever the
// URL's protocol.
//
// The response is read until the peer closes; Content-Length is not used
// to stop early, which is why every request carries "Connection: close".
type SocketTransport struct {
	// Timeout applies to connect, to the TLS handshake, to the send and to
	// every individual read. Zero means DefaultTimeout.
	Timeout time.Duration

	// TLSConfig is cloned for TLS connections. Nil means the system roots.
	TLSConfig *tls.Config
}

func (t *SocketTransport) timeout() time.Duration {
	if t == nil || t.Timeout <= 0 {
		return DefaultTimeout
	}
	return t.Timeout
}

// Exchange implements Transport. The connection is closed on every path.
func (t *SocketTransport) Exchange(ctx context.Context, host string, port int, raw []byte) ([]byte, error) {
	timeout := t.timeout()
	addr := net.JoinHostPort(host, strconv.Itoa(port))

	dialer := net.Dialer{Timeout: timeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, t.wrap(err, "connect to "+addr)
	}
	defer func() { conn.Close() }()

	if tlsPort, _ := DefaultPort("https"); port == tlsPort {
		var config *tls.Config
		if t.TLSConfig != nil {
			config = t.TLSConfig.Clone()
		} else {
			config = &tls.Config{}
		}
		config.ServerName = host
		tc := tls.Client(conn, config)
		if err := tc.SetDeadline(time.Now().Add(timeout)); err != nil {
			return nil, t.wrap(err, "tls handshake")
		}
		if err := tc.HandshakeContext(ctx); err != nil {
			tc.Close()
			return nil, t.wrap(err, "tls handshake with "+host)
		}
		conn = tc
	}

	if err := conn.SetWriteDeadline(time.Now().Add(timeout)); err != nil {
		return nil, t.wrap(err, "send")
	}
	if _, err := conn.Write(raw); err != nil {
		return nil, t.wrap(err, "send")
	}

	var out bytes.Buffer
	buf := make([]byte, ResponseChunkSize)
	for {
		if err := conn.SetReadDeadline(time.Now().Add(timeout)); err != nil {
			return nil, t.wrap(err, "receive")
		}
		n, err := conn.Read(buf)
		out.Write(buf[:n])
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, t.wrap(err, "receive")
		}
	}
	return out.Bytes(), nil
}

func (t *SocketTransport) wrap(err error, op string) error {
	var ne net.Error
	if errors.Is(err, os.ErrDeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) ||
		(errors.As(err, &ne) && ne.Timeout()) {
		return &Error{
			Kind:    KindRequestTimeout,
			Msg:     fmt.Sprintf("request timed out in %s", t.timeout()),
			Timeout: t.timeout(),
			Err:     err,
		}
	}
	return &Error{Kind: KindTransport, Msg: op, Err: err}
}
