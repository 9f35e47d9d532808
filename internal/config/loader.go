package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/wesleyorama2/sockhttp/http"
)

// Config represents the top-level configuration
type Config struct {
	Session      Session                `yaml:"session"`
	Environments map[string]Environment `yaml:"environments"`
	Requests     map[string]Request     `yaml:"requests"`
	Suites       map[string]Suite       `yaml:"suites"`
}

// Session holds the defaults every call of a run shares.
type Session struct {
	Timeout string  `yaml:"timeout"`
	Headers Ordered `yaml:"headers"`
	Log     Log     `yaml:"log"`
}

// Log configures the request/response log.
type Log struct {
	File  string `yaml:"file"`
	Name  string `yaml:"name"`
	Level string `yaml:"level"`
	// Color is one of auto, always or never.
	Color string `yaml:"color"`
}

// Environment represents an environment configuration
type Environment struct {
	BaseURL string            `yaml:"baseUrl"`
	Headers Ordered           `yaml:"headers"`
	Vars    map[string]string `yaml:"variables"`
}

// Request represents a request configuration
type Request struct {
	Method  string            `yaml:"method"`
	URL     string            `yaml:"url"`
	Query   Ordered           `yaml:"query"`
	Headers Ordered           `yaml:"headers"`
	Body    interface{}       `yaml:"body"`
	Extract map[string]string `yaml:"extract"`
	// Validate is an inline JSON Schema the response body must satisfy.
	Validate interface{} `yaml:"validate"`
}

// Suite represents an ordered list of requests
type Suite struct {
	Requests []string          `yaml:"requests"`
	Vars     map[string]string `yaml:"variables"`
}

// DefaultTimeout applies when session.timeout is empty.
const DefaultTimeout = http.DefaultTimeout

// LoadConfig loads a YAML or JSON configuration file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("error parsing config file %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes configuration from YAML. JSON input is accepted as well.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Timeout returns the parsed session timeout.
func (c *Config) Timeout() (time.Duration, error) {
	if strings.TrimSpace(c.Session.Timeout) == "" {
		return DefaultTimeout, nil
	}
	d, err := time.ParseDuration(c.Session.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid session timeout %q: %w", c.Session.Timeout, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("session timeout must be positive, got %s", d)
	}
	return d, nil
}

// ProcessEnvironment replaces {{name}} placeholders in a string
func ProcessEnvironment(input string, env map[string]string) string {
	result := input
	for key, value := range env {
		result = strings.ReplaceAll(result, "{{"+key+"}}", value)
	}
	return result
}

// ProcessValue applies ProcessEnvironment to every string inside a decoded
// YAML/JSON value, returning a new value.
func ProcessValue(v interface{}, env map[string]string) interface{} {
	switch t := v.(type) {
	case string:
		return ProcessEnvironment(t, env)
	case map[string]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, val := range t {
			out[k] = ProcessValue(val, env)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, val := range t {
			out[i] = ProcessValue(val, env)
		}
		return out
	default:
		return v
	}
}

// MergeEnvironments merges two variable sets, with the second taking precedence
func MergeEnvironments(base, override map[string]string) map[string]string {
	result := make(map[string]string, len(base)+len(override))
	for key, value := range base {
		result[key] = value
	}
	for key, value := range override {
		result[key] = value
	}
	return result
}
