package config

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/wesleyorama2/sockhttp/http"
	"github.com/wesleyorama2/sockhttp/internal/logging"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Path    string
	Message string
}

// Error returns the error message
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// ValidateConfig validates the configuration. Errors come back sorted by path.
func ValidateConfig(config *Config) []ValidationError {
	var errors []ValidationError

	if config.Session.Timeout != "" {
		d, err := time.ParseDuration(config.Session.Timeout)
		if err != nil || d <= 0 {
			errors = append(errors, ValidationError{
				Path:    "session.timeout",
				Message: fmt.Sprintf("invalid duration: %s", config.Session.Timeout),
			})
		}
	}
	if config.Session.Log.Level != "" {
		if _, err := logging.ParseLevel(config.Session.Log.Level); err != nil {
			errors = append(errors, ValidationError{Path: "session.log.level", Message: err.Error()})
		}
	}
	if config.Session.Log.Color != "" {
		if _, err := parseColor(config.Session.Log.Color); err != nil {
			errors = append(errors, ValidationError{Path: "session.log.color", Message: err.Error()})
		}
	}

	for name, env := range config.Environments {
		if env.BaseURL == "" {
			errors = append(errors, ValidationError{
				Path:    fmt.Sprintf("environments.%s.baseUrl", name),
				Message: "baseUrl is required",
			})
			continue
		}
		if strings.Contains(env.BaseURL, "{{") {
			continue
		}
		if _, err := http.ParseURL(env.BaseURL); err != nil {
			errors = append(errors, ValidationError{
				Path:    fmt.Sprintf("environments.%s.baseUrl", name),
				Message: err.Error(),
			})
		}
	}

	if len(config.Requests) == 0 {
		errors = append(errors, ValidationError{
			Path:    "requests",
			Message: "at least one request is required",
		})
	}

	for name, req := range config.Requests {
		if req.URL == "" {
			errors = append(errors, ValidationError{
				Path:    fmt.Sprintf("requests.%s.url", name),
				Message: "url is required",
			})
		}

		if req.Method == "" {
			errors = append(errors, ValidationError{
				Path:    fmt.Sprintf("requests.%s.method", name),
				Message: "method is required",
			})
		} else if _, err := ParseMethod(req.Method); err != nil {
			errors = append(errors, ValidationError{
				Path:    fmt.Sprintf("requests.%s.method", name),
				Message: fmt.Sprintf("invalid method: %s", req.Method),
			})
		}

		for varName, path := range req.Extract {
			if path == "" {
				errors = append(errors, ValidationError{
					Path:    fmt.Sprintf("requests.%s.extract.%s", name, varName),
					Message: "extract path cannot be empty",
				})
			}
		}
	}

	for name, suite := range config.Suites {
		if len(suite.Requests) == 0 {
			errors = append(errors, ValidationError{
				Path:    fmt.Sprintf("suites.%s.requests", name),
				Message: "at least one request is required",
			})
		}

		for i, reqName := range suite.Requests {
			if _, ok := config.Requests[reqName]; !ok {
				errors = append(errors, ValidationError{
					Path:    fmt.Sprintf("suites.%s.requests[%d]", name, i),
					Message: fmt.Sprintf("request not found: %s", reqName),
				})
			}
		}
	}

	sort.Slice(errors, func(i, j int) bool { return errors[i].Path < errors[j].Path })
	return errors
}

// ValidateEnvironment validates that an environment exists
func ValidateEnvironment(config *Config, envName string) error {
	if _, ok := config.Environments[envName]; !ok {
		return fmt.Errorf("environment not found: %s", envName)
	}
	return nil
}

// ValidateRequest validates that a request exists
func ValidateRequest(config *Config, reqName string) error {
	if _, ok := config.Requests[reqName]; !ok {
		return fmt.Errorf("request not found: %s", reqName)
	}
	return nil
}

// ValidateSuite validates that a suite exists
func ValidateSuite(config *Config, suiteName string) error {
	if _, ok := config.Suites[suiteName]; !ok {
		return fmt.Errorf("suite not found: %s", suiteName)
	}
	return nil
}

// ParseMethod maps a configured method name onto the client's verbs.
// PATCH is accepted and sent as PUT, matching Session.Patch.
func ParseMethod(s string) (http.Method, error) {
	m := http.Method(strings.ToUpper(strings.TrimSpace(s)))
	if m == "PATCH" {
		return http.MethodPut, nil
	}
	if !m.Valid() {
		return "", fmt.Errorf("invalid method: %s", s)
	}
	return m, nil
}

func parseColor(s string) (logging.ColorMode, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return logging.ColorAuto, nil
	case "always", "true":
		return logging.ColorAlways, nil
	case "never", "false":
		return logging.ColorNever, nil
	}
	return logging.ColorAuto, fmt.Errorf("invalid color mode: %s", s)
}
