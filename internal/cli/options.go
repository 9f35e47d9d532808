package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/wesleyorama2/sockhttp/http"
	"github.com/wesleyorama2/sockhttp/internal/logging"
	"github.com/wesleyorama2/sockhttp/internal/output"
)

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	timeout   time.Duration
	format    output.OutputFormat
	verbose   bool
	noColor   bool
	logFile   string
	logStderr bool
}

func readGlobals(cmd *cobra.Command) (globalOptions, error) {
	var g globalOptions
	flags := cmd.Flags()
	g.timeout, _ = flags.GetDuration("timeout")
	g.verbose, _ = flags.GetBool("verbose")
	g.noColor, _ = flags.GetBool("no-color")
	g.logFile, _ = flags.GetString("log-file")
	g.logStderr, _ = flags.GetBool("log")

	if g.timeout <= 0 {
		return g, fmt.Errorf("timeout must be positive, got %s", g.timeout)
	}
	raw, _ := flags.GetString("output")
	format, err := output.ParseFormat(raw)
	if err != nil {
		return g, err
	}
	g.format = format
	return g, nil
}

func (g globalOptions) formatter() output.FormatProvider {
	return output.GetFormatter(g.format, g.verbose, g.noColor)
}

// openLogger returns the session logger described by lc and the flags.
// Without a file or --log the raw exchange is not logged at all.
func (g globalOptions) openLogger(lc logging.Config, stderr io.Writer) (http.Logger, func() error, error) {
	if g.logFile != "" {
		lc.File = g.logFile
	}
	if g.noColor {
		lc.Color = logging.ColorNever
	}
	if lc.File == "" && !g.logStderr {
		return http.NopLogger{}, func() error { return nil }, nil
	}
	if lc.File == "" {
		lc.Writer = stderr
	}
	l, err := logging.New(lc)
	if err != nil {
		return nil, nil, err
	}
	return l, l.Close, nil
}

// parseHeaders reads repeated "Name: value" flags, keeping their order.
func parseHeaders(values []string) (http.Pairs, error) {
	var out http.Pairs
	for _, v := range values {
		key, value, ok := strings.Cut(v, ":")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid header %q, want Name: value", v)
		}
		out.Set(key, strings.TrimSpace(value))
	}
	return out, nil
}

// parseQuery reads repeated "key=value" flags, keeping their order.
func parseQuery(values []string) (http.Pairs, error) {
	var out http.Pairs
	for _, v := range values {
		key, value, ok := strings.Cut(v, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid query parameter %q, want key=value", v)
		}
		out.Set(key, value)
	}
	return out, nil
}

// parseVars reads repeated "name=value" flags into a map.
func parseVars(values []string) (map[string]string, error) {
	out := make(map[string]string, len(values))
	for _, v := range values {
		key, value, ok := strings.Cut(v, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid variable %q, want name=value", v)
		}
		out[key] = value
	}
	return out, nil
}

// parseBody decodes a -d value as JSON. A leading @ names a file to read.
// Numbers are kept as json.Number so they re-encode unchanged.
func parseBody(data string) (interface{}, error) {
	if data == "" {
		return nil, nil
	}
	raw := []byte(data)
	if strings.HasPrefix(data, "@") {
		b, err := os.ReadFile(data[1:])
		if err != nil {
			return nil, fmt.Errorf("read body: %w", err)
		}
		raw = b
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var body interface{}
	if err := dec.Decode(&body); err != nil {
		return nil, fmt.Errorf("body must be JSON: %w", err)
	}
	if dec.More() {
		return nil, fmt.Errorf("body must be a single JSON value")
	}
	return body, nil
}
