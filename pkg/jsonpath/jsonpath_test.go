package jsonpath

import (
	"testing"
)

const echoBody = `{
	"Body": {"list": [1, 2, 3], "dict": {"key": "value"}},
	"Query": {"param": ["value"]},
	"Headers": {"Authorization": "Token 123-123"},
	"ok": true,
	"missing": null
}`

func TestExtract(t *testing.T) {
	tests := []struct {
		name          string
		path          string
		expected      string
		expectedError bool
	}{
		{name: "Nested property", path: "$.Body.dict.key", expected: "value"},
		{name: "Array element", path: "$.Body.list[1]", expected: "2"},
		{name: "Array in object", path: "$.Query.param[0]", expected: "value"},
		{name: "Bracket notation", path: "$['Headers']['Authorization']", expected: "Token 123-123"},
		{name: "Boolean", path: "$.ok", expected: "true"},
		{name: "Null value", path: "$.missing", expected: "null"},
		{name: "Raw array", path: "$.Body.list", expected: "[1, 2, 3]"},
		{name: "Non-existent property", path: "$.Body.nope", expectedError: true},
		{name: "Index out of bounds", path: "$.Body.list[10]", expectedError: true},
		{name: "Empty path", path: "", expectedError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Extract(echoBody, tt.path)

			if tt.expectedError && err == nil {
				t.Errorf("Expected error, got nil")
			}
			if !tt.expectedError && err != nil {
				t.Errorf("Expected no error, got %v", err)
			}
			if !tt.expectedError && result != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, result)
			}
		})
	}
}

func TestExtract_BadBodies(t *testing.T) {
	if _, err := Extract("", "$.a"); err == nil {
		t.Errorf("Expected error for empty body, got nil")
	}
	if _, err := Extract("not json", "$.a"); err == nil {
		t.Errorf("Expected error for invalid body, got nil")
	}
}

func TestExtractAll(t *testing.T) {
	values, err := ExtractAll(echoBody, map[string]string{
		"token": "$.Headers.Authorization",
		"first": "$.Body.list[0]",
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if values["token"] != "Token 123-123" || values["first"] != "1" {
		t.Errorf("Unexpected values %v", values)
	}

	values, err = ExtractAll(echoBody, map[string]string{
		"token": "$.Headers.Authorization",
		"gone":  "$.Headers.Cookie",
	})
	if err == nil {
		t.Errorf("Expected error for missing path, got nil")
	}
	if values["token"] != "Token 123-123" {
		t.Errorf("Expected partial results, got %v", values)
	}

	if _, err := ExtractAll(echoBody, nil); err == nil {
		t.Errorf("Expected error for no paths, got nil")
	}
}

func TestToGjson(t *testing.T) {
	tests := []struct {
		jsonPath  string
		gjsonPath string
	}{
		{"$.name", "name"},
		{"$['name']", "name"},
		{`$["name"]`, "name"},
		{"$.items[0].name", "items.0.name"},
		{"$.deeply.nested[0].array[1].value", "deeply.nested.0.array.1.value"},
		{"$", "@this"},
		{"$[0]", "0"},
		{"$[0].name", "0.name"},
	}

	for _, tt := range tests {
		t.Run(tt.jsonPath, func(t *testing.T) {
			if result := toGjson(tt.jsonPath); result != tt.gjsonPath {
				t.Errorf("toGjson(%q) = %q, want %q", tt.jsonPath, result, tt.gjsonPath)
			}
		})
	}
}
