package jsonschema

import (
	"strings"
	"testing"
)

const statusSchema = `{
	"type": "object",
	"properties": {
		"status": { "type": "string" },
		"uptime": { "type": "integer" }
	},
	"required": ["status"]
}`

func TestValidate(t *testing.T) {
	tests := []struct {
		name          string
		schema        string
		body          string
		expectedValid bool
	}{
		{
			name:          "Valid object",
			schema:        statusSchema,
			body:          `{"status": "Server is running", "uptime": 3}`,
			expectedValid: true,
		},
		{
			name:          "Missing required property",
			schema:        statusSchema,
			body:          `{"uptime": 3}`,
			expectedValid: false,
		},
		{
			name:          "Wrong type",
			schema:        statusSchema,
			body:          `{"status": "ok", "uptime": "three"}`,
			expectedValid: false,
		},
		{
			name:          "Body is not JSON",
			schema:        statusSchema,
			body:          `Welcome to the Basic HTTP Server`,
			expectedValid: false,
		},
		{
			name:          "Schema is not JSON",
			schema:        `{"type": `,
			body:          `{}`,
			expectedValid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := Validate(tt.body, tt.schema)
			if tt.expectedValid && errs != nil {
				t.Errorf("Expected valid, got %v", errs)
			}
			if !tt.expectedValid && len(errs) == 0 {
				t.Errorf("Expected validation errors, got none")
			}
		})
	}
}

func TestSchema_CheckReportsLocations(t *testing.T) {
	s, err := Compile(statusSchema)
	if err != nil {
		t.Fatalf("Compile error: %v", err)
	}

	errs := s.Check(`{"status": 1}`)
	if len(errs) == 0 {
		t.Fatal("Expected validation errors")
	}
	if !strings.Contains(errs.Error(), "/status") {
		t.Errorf("Expected error to name /status, got %q", errs.Error())
	}

	if errs := s.Check(`{"status": "ok"}`); errs != nil {
		t.Errorf("Expected no errors, got %v", errs)
	}
}

func TestValidationErrors_Error(t *testing.T) {
	var none ValidationErrors
	if none.Error() != "" {
		t.Errorf("Expected empty message, got %q", none.Error())
	}
}
