package output

import (
	"encoding/json"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/wesleyorama2/sockhttp/http"
	"github.com/wesleyorama2/sockhttp/internal/metrics"
)

// OutputFormat represents the available output formats
type OutputFormat string

const (
	// FormatText is the default human-readable text format
	FormatText OutputFormat = "text"
	// FormatJSON outputs in JSON format
	FormatJSON OutputFormat = "json"
	// FormatYAML outputs in YAML format
	FormatYAML OutputFormat = "yaml"
)

// ParseFormat validates a --output value.
func ParseFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(s); f {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON, FormatYAML:
		return f, nil
	}
	return "", fmt.Errorf("unknown output format %q (want text, json or yaml)", s)
}

// FormatProvider is an interface for different output formatters
type FormatProvider interface {
	FormatRequest(req *http.Request) string
	FormatResponse(resp *http.Response) string
	FormatReport(report *Report) string
}

// RequestData represents the structured data of a request
type RequestData struct {
	Method  string            `json:"method" yaml:"method"`
	URL     string            `json:"url" yaml:"url"`
	Headers map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`
	Body    interface{}       `json:"body,omitempty" yaml:"body,omitempty"`
}

// ResponseData represents the structured data of a response
type ResponseData struct {
	StatusCode    int               `json:"statusCode" yaml:"statusCode"`
	Status        string            `json:"status" yaml:"status"`
	Headers       map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`
	Body          interface{}       `json:"body,omitempty" yaml:"body,omitempty"`
	ResponseTime  int64             `json:"responseTimeMs" yaml:"responseTimeMs"`
	ContentLength int               `json:"contentLength" yaml:"contentLength"`
}

// CallResult is the outcome of one configured request in a run.
type CallResult struct {
	Name       string            `json:"name" yaml:"name"`
	Iteration  int               `json:"iteration" yaml:"iteration"`
	Method     string            `json:"method" yaml:"method"`
	URL        string            `json:"url" yaml:"url"`
	StatusCode int               `json:"statusCode,omitempty" yaml:"statusCode,omitempty"`
	Duration   int64             `json:"durationMs" yaml:"durationMs"`
	Extracted  map[string]string `json:"extracted,omitempty" yaml:"extracted,omitempty"`
	Errors     []string          `json:"errors,omitempty" yaml:"errors,omitempty"`
	Passed     bool              `json:"passed" yaml:"passed"`
}

// StatsData is the serializable form of metrics.Stats.
type StatsData struct {
	Count   int64   `json:"count" yaml:"count"`
	Success int64   `json:"success" yaml:"success"`
	Failed  int64   `json:"failed" yaml:"failed"`
	Bytes   int64   `json:"bytes" yaml:"bytes"`
	Min     float64 `json:"minMs" yaml:"minMs"`
	Mean    float64 `json:"meanMs" yaml:"meanMs"`
	P50     float64 `json:"p50Ms" yaml:"p50Ms"`
	P90     float64 `json:"p90Ms" yaml:"p90Ms"`
	P95     float64 `json:"p95Ms" yaml:"p95Ms"`
	P99     float64 `json:"p99Ms" yaml:"p99Ms"`
	Max     float64 `json:"maxMs" yaml:"maxMs"`
}

// Report summarizes a run of one request or suite.
type Report struct {
	Name     string               `json:"name" yaml:"name"`
	Repeat   int                  `json:"repeat" yaml:"repeat"`
	Passed   int                  `json:"passed" yaml:"passed"`
	Failed   int                  `json:"failed" yaml:"failed"`
	Duration int64                `json:"durationMs" yaml:"durationMs"`
	Calls    []CallResult         `json:"calls" yaml:"calls"`
	Total    StatsData            `json:"total" yaml:"total"`
	ByName   map[string]StatsData `json:"byName,omitempty" yaml:"byName,omitempty"`
}

// NewReport builds a report from per-call results and the recorder that
// timed them.
func NewReport(name string, repeat int, calls []CallResult, rec *metrics.Recorder, elapsed time.Duration) *Report {
	r := &Report{
		Name:     name,
		Repeat:   repeat,
		Duration: elapsed.Milliseconds(),
		Calls:    calls,
		Total:    toStatsData(rec.Total()),
		ByName:   make(map[string]StatsData),
	}
	for n, s := range rec.ByName() {
		r.ByName[n] = toStatsData(s)
	}
	for _, c := range calls {
		if c.Passed {
			r.Passed++
		} else {
			r.Failed++
		}
	}
	return r
}

func toStatsData(s metrics.Stats) StatsData {
	ms := func(d time.Duration) float64 { return float64(d) / float64(time.Millisecond) }
	return StatsData{
		Count:   s.Count,
		Success: s.Success,
		Failed:  s.Failed,
		Bytes:   s.Bytes,
		Min:     ms(s.Min),
		Mean:    ms(s.Mean),
		P50:     ms(s.P50),
		P90:     ms(s.P90),
		P95:     ms(s.P95),
		P99:     ms(s.P99),
		Max:     ms(s.Max),
	}
}

func requestData(req *http.Request) RequestData {
	d := RequestData{
		Method: string(req.Method),
		URL:    req.URL.WithPath(req.Target()).String(),
	}
	if len(req.Headers) > 0 {
		d.Headers = req.Headers.Map()
	}
	if body := req.JSON(); len(body) > 0 {
		d.Body = decodeOrString(string(body))
	}
	return d
}

func responseData(resp *http.Response) ResponseData {
	d := ResponseData{
		StatusCode:    resp.StatusCode,
		Status:        resp.Status,
		ResponseTime:  resp.GetResponseTimeMillis(),
		ContentLength: len(resp.Body),
	}
	if len(resp.Headers) > 0 {
		d.Headers = resp.Headers.Map()
	}
	if resp.Body != "" {
		d.Body = decodeOrString(resp.Body)
	}
	return d
}

// decodeOrString returns s decoded as JSON, or s itself when it is not JSON.
func decodeOrString(s string) interface{} {
	var v interface{}
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return s
	}
	return v
}

// JSONFormatter formats output as JSON
type JSONFormatter struct {
	Pretty bool
}

func (f *JSONFormatter) marshal(v interface{}) string {
	var (
		data []byte
		err  error
	)
	if f.Pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return fmt.Sprintf(`{"error": %q}`, err.Error())
	}
	return string(data)
}

// FormatRequest formats a request as JSON
func (f *JSONFormatter) FormatRequest(req *http.Request) string {
	return f.marshal(map[string]interface{}{"request": requestData(req)})
}

// FormatResponse formats a response as JSON
func (f *JSONFormatter) FormatResponse(resp *http.Response) string {
	return f.marshal(map[string]interface{}{"response": responseData(resp)})
}

// FormatReport formats a run report as JSON
func (f *JSONFormatter) FormatReport(report *Report) string {
	return f.marshal(report)
}

// YAMLFormatter formats output as YAML
type YAMLFormatter struct{}

func (f *YAMLFormatter) marshal(v interface{}) string {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Sprintf("error: %q\n", err.Error())
	}
	return string(data)
}

// FormatRequest formats a request as YAML
func (f *YAMLFormatter) FormatRequest(req *http.Request) string {
	return f.marshal(map[string]interface{}{"request": requestData(req)})
}

// FormatResponse formats a response as YAML
func (f *YAMLFormatter) FormatResponse(resp *http.Response) string {
	return f.marshal(map[string]interface{}{"response": responseData(resp)})
}

// FormatReport formats a run report as YAML
func (f *YAMLFormatter) FormatReport(report *Report) string {
	return f.marshal(report)
}

// GetFormatter returns the appropriate formatter for the given format
func GetFormatter(format OutputFormat, verbose bool, noColor bool) FormatProvider {
	switch format {
	case FormatJSON:
		return &JSONFormatter{Pretty: true}
	case FormatYAML:
		return &YAMLFormatter{}
	default:
		return NewFormatter(verbose, noColor)
	}
}
