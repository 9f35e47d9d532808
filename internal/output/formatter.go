package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/wesleyorama2/sockhttp/http"
)

// Formatter is responsible for formatting requests and responses in text format
type Formatter struct {
	Verbose bool
	NoColor bool
	colors  *ColorScheme
}

// NewFormatter creates a new formatter with the given options
func NewFormatter(verbose, noColor bool) *Formatter {
	colors := DefaultColorScheme()
	if noColor {
		colors = NoColorScheme()
	}
	return &Formatter{
		Verbose: verbose,
		NoColor: noColor,
		colors:  colors,
	}
}

// FormatRequest formats a request for display. Headers are shown in the
// order they go on the wire.
func (f *Formatter) FormatRequest(req *http.Request) string {
	var buf strings.Builder

	fullURL := req.URL.WithPath(req.Target()).String()
	buf.WriteString(fmt.Sprintf("▶ REQUEST: %s %s\n",
		f.colors.Method.Sprint(req.Method), f.colors.URL.Sprint(fullURL)))

	if f.Verbose && len(req.Headers) > 0 {
		buf.WriteString("  Headers:\n")
		for _, kv := range req.Headers {
			buf.WriteString(fmt.Sprintf("    %s: %s\n", f.colors.HeaderKey.Sprint(kv.Key), kv.Value))
		}
	}

	if body := req.JSON(); len(body) > 0 {
		buf.WriteString("  Body: ")
		buf.WriteString(formatJSONString(string(body)))
		buf.WriteString("\n")
	}

	return buf.String()
}

// FormatResponse formats a response for display
func (f *Formatter) FormatResponse(resp *http.Response) string {
	var buf strings.Builder

	buf.WriteString(fmt.Sprintf("◀ RESPONSE: %s (%dms)\n",
		f.colors.Status(resp.StatusCode).Sprint(resp.Status),
		resp.GetResponseTimeMillis()))

	if f.Verbose && len(resp.Headers) > 0 {
		buf.WriteString("  Headers:\n")
		for _, kv := range resp.Headers {
			buf.WriteString(fmt.Sprintf("    %s: %s\n", f.colors.HeaderKey.Sprint(kv.Key), kv.Value))
		}
	}

	if resp.Body != "" {
		buf.WriteString("  Body:\n  ")
		buf.WriteString(formatJSONString(resp.Body))
		buf.WriteString("\n")
	}

	return buf.String()
}

// FormatReport formats a run summary: one line per call, then latency
// percentiles overall and per request name.
func (f *Formatter) FormatReport(report *Report) string {
	var buf strings.Builder

	buf.WriteString(fmt.Sprintf("%s %s (repeat %d, %dms)\n",
		f.colors.Highlight.Sprint("RUN:"), report.Name, report.Repeat, report.Duration))

	for _, c := range report.Calls {
		icon := SuccessIcon(f.NoColor)
		if !c.Passed {
			icon = ErrorIcon(f.NoColor)
		}
		status := "---"
		if c.StatusCode != 0 {
			status = f.colors.Status(c.StatusCode).Sprint(c.StatusCode)
		}
		buf.WriteString(fmt.Sprintf("  %s #%d %s %s %s %s (%dms)\n",
			icon, c.Iteration, c.Name, f.colors.Method.Sprint(c.Method), c.URL, status, c.Duration))
		for _, e := range c.Errors {
			buf.WriteString(fmt.Sprintf("      %s\n", f.colors.Error.Sprint(e)))
		}
		if f.Verbose {
			for _, k := range sortedKeys(c.Extracted) {
				buf.WriteString(fmt.Sprintf("      %s = %s\n", k, c.Extracted[k]))
			}
		}
	}

	summary := fmt.Sprintf("%d passed, %d failed", report.Passed, report.Failed)
	if report.Failed > 0 {
		summary = f.colors.Error.Sprint(summary)
	} else {
		summary = f.colors.Success.Sprint(summary)
	}
	buf.WriteString("\n" + summary + "\n")

	buf.WriteString("\nLatency (ms)        count     min     p50     p90     p99     max\n")
	buf.WriteString(statsLine("total", report.Total))
	names := make([]string, 0, len(report.ByName))
	for n := range report.ByName {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		buf.WriteString(statsLine(n, report.ByName[n]))
	}

	return buf.String()
}

func statsLine(name string, s StatsData) string {
	return fmt.Sprintf("  %-16s %7d %7.1f %7.1f %7.1f %7.1f %7.1f\n",
		name, s.Count, s.Min, s.P50, s.P90, s.P99, s.Max)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// formatJSONString attempts to pretty-print a JSON string
func formatJSONString(s string) string {
	var prettyJSON bytes.Buffer
	err := json.Indent(&prettyJSON, []byte(s), "  ", "  ")
	if err != nil {
		return s
	}
	return prettyJSON.String()
}
