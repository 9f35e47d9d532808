package output

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/wesleyorama2/sockhttp/http"
)

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]OutputFormat{"": FormatText, "text": FormatText, "json": FormatJSON, "yaml": FormatYAML} {
		got, err := ParseFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseFormat("junit")
	assert.Error(t, err)
}

func TestJSONFormatter_FormatRequest(t *testing.T) {
	f := &JSONFormatter{Pretty: true}
	req := mustRequest(t, http.MethodPut, "http://localhost:8080/items/3", http.P("v", "2"), map[string]int{"qty": 4})

	var out struct {
		Request RequestData `json:"request"`
	}
	require.NoError(t, json.Unmarshal([]byte(f.FormatRequest(req)), &out))

	assert.Equal(t, "PUT", out.Request.Method)
	assert.Equal(t, "http://localhost:8080/items/3?v=2", out.Request.URL)
	assert.Equal(t, "localhost", out.Request.Headers["Host"])
	assert.Equal(t, map[string]interface{}{"qty": float64(4)}, out.Request.Body)
}

func TestJSONFormatter_FormatResponse(t *testing.T) {
	f := &JSONFormatter{}
	var out struct {
		Response ResponseData `json:"response"`
	}
	require.NoError(t, json.Unmarshal([]byte(f.FormatResponse(mustResponse(t, okJSON))), &out))

	assert.Equal(t, 200, out.Response.StatusCode)
	assert.Equal(t, "200 OK", out.Response.Status)
	assert.Equal(t, int64(42), out.Response.ResponseTime)
	assert.Equal(t, 14, out.Response.ContentLength)
	assert.Equal(t, map[string]interface{}{"id": float64(1), "a": float64(2)}, out.Response.Body)
}

func TestJSONFormatter_NonJSONBody(t *testing.T) {
	f := &JSONFormatter{}
	var out struct {
		Response ResponseData `json:"response"`
	}
	raw := "HTTP/1.1 200 OK\r\nContent-Length: 5\r\n\r\nhello"
	require.NoError(t, json.Unmarshal([]byte(f.FormatResponse(mustResponse(t, raw))), &out))
	assert.Equal(t, "hello", out.Response.Body)
}

func TestJSONFormatter_FormatReport(t *testing.T) {
	f := &JSONFormatter{Pretty: true}
	var out Report
	require.NoError(t, json.Unmarshal([]byte(f.FormatReport(sampleReport())), &out))

	assert.Equal(t, "smoke", out.Name)
	assert.Len(t, out.Calls, 2)
	assert.Equal(t, int64(2), out.Total.Count)
	assert.Contains(t, out.ByName, "status")
}

func TestYAMLFormatter(t *testing.T) {
	f := &YAMLFormatter{}

	var req struct {
		Request RequestData `yaml:"request"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(f.FormatRequest(mustRequest(t, http.MethodDelete, "http://h/x", nil, nil))), &req))
	assert.Equal(t, "DELETE", req.Request.Method)
	assert.Equal(t, "http://h/x", req.Request.URL)
	assert.Nil(t, req.Request.Body)

	var resp struct {
		Response ResponseData `yaml:"response"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(f.FormatResponse(mustResponse(t, okJSON))), &resp))
	assert.Equal(t, 200, resp.Response.StatusCode)

	var report Report
	require.NoError(t, yaml.Unmarshal([]byte(f.FormatReport(sampleReport())), &report))
	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, []string{"request timed out in 1s"}, report.Calls[1].Errors)
}
