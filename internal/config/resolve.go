package config

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/wesleyorama2/sockhttp/http"
	"github.com/wesleyorama2/sockhttp/internal/logging"
)

// Call is a configured request with every variable substituted and its
// URL made absolute, ready to hand to a Session.
type Call struct {
	Name    string
	Method  http.Method
	URL     string
	Params  http.Params
	Extract map[string]string
	// Schema is the JSON encoding of the request's validate block, or "".
	Schema string
}

// Resolve prepares request reqName under environment envName. vars are
// layered on top of the environment's variables; envName may be empty
// when every URL is absolute.
func (c *Config) Resolve(reqName, envName string, vars map[string]string) (*Call, error) {
	req, ok := c.Requests[reqName]
	if !ok {
		return nil, fmt.Errorf("request not found: %s", reqName)
	}

	var env Environment
	if envName != "" {
		if err := ValidateEnvironment(c, envName); err != nil {
			return nil, err
		}
		env = c.Environments[envName]
	}
	all := MergeEnvironments(env.Vars, vars)

	method, err := ParseMethod(req.Method)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", reqName, err)
	}

	call := &Call{
		Name:    reqName,
		Method:  method,
		URL:     JoinURL(ProcessEnvironment(env.BaseURL, all), ProcessEnvironment(req.URL, all)),
		Extract: req.Extract,
		Params: http.Params{
			Query:   req.Query.Pairs(all),
			Headers: mergeHeaders(env.Headers.Pairs(all), req.Headers.Pairs(all)),
			Body:    ProcessValue(req.Body, all),
		},
	}
	if req.Validate != nil {
		schema, err := json.Marshal(req.Validate)
		if err != nil {
			return nil, fmt.Errorf("request %s: encode schema: %w", reqName, err)
		}
		call.Schema = string(schema)
	}
	return call, nil
}

// JoinURL resolves path against base. Absolute paths are returned as is.
func JoinURL(base, path string) string {
	if base == "" || strings.Contains(path, "://") {
		return path
	}
	return strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(path, "/")
}

func mergeHeaders(base, over http.Pairs) http.Pairs {
	if len(base) == 0 && len(over) == 0 {
		return nil
	}
	return base.Merge(over)
}

// SessionHeaders returns the session-wide headers.
func (c *Config) SessionHeaders() http.Pairs {
	return c.Session.Headers.Pairs(nil)
}

// LoggingConfig maps the session.log section onto a logging.Config.
func (c *Config) LoggingConfig() (logging.Config, error) {
	lc := logging.Config{
		Name: c.Session.Log.Name,
		File: c.Session.Log.File,
	}
	if c.Session.Log.Level != "" {
		level, err := logging.ParseLevel(c.Session.Log.Level)
		if err != nil {
			return lc, err
		}
		lc.Level = level
	} else {
		lc.Level = logging.Info
	}
	color, err := parseColor(c.Session.Log.Color)
	if err != nil {
		return lc, err
	}
	lc.Color = color
	return lc, nil
}
