// Package jsonpath pulls values out of JSON response bodies using a small
// JSONPath subset ($.a.b, $.list[0], $['key']) translated to gjson syntax.
package jsonpath

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tidwall/gjson"
)

// Extract returns the value at path as a string. Objects and arrays come
// back as raw JSON and null comes back as "null".
func Extract(body string, path string) (string, error) {
	if body == "" {
		return "", fmt.Errorf("empty JSON body")
	}
	if path == "" {
		return "", fmt.Errorf("empty JSONPath expression")
	}
	if !gjson.Valid(body) {
		return "", fmt.Errorf("body is not valid JSON")
	}

	result := gjson.Get(body, toGjson(path))
	if !result.Exists() {
		return "", fmt.Errorf("path not found: %s", path)
	}
	if result.Type == gjson.Null {
		return "null", nil
	}
	return result.String(), nil
}

// ExtractAll evaluates every named path. Values that could be extracted
// are returned even when others fail; failures are joined into one error
// in name order.
func ExtractAll(body string, paths map[string]string) (map[string]string, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no JSONPath expressions provided")
	}

	names := make([]string, 0, len(paths))
	for name := range paths {
		names = append(names, name)
	}
	sort.Strings(names)

	values := make(map[string]string, len(paths))
	var failures []string
	for _, name := range names {
		v, err := Extract(body, paths[name])
		if err != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", name, err))
			continue
		}
		values[name] = v
	}
	if len(failures) > 0 {
		return values, fmt.Errorf("extraction errors: %s", strings.Join(failures, "; "))
	}
	return values, nil
}

// toGjson converts $.users[0]['name'] into users.0.name.
func toGjson(path string) string {
	path = strings.TrimPrefix(path, "$")
	path = strings.TrimPrefix(path, ".")
	if path == "" {
		return "@this"
	}

	r := strings.NewReplacer(
		"['", ".", "']", "",
		`["`, ".", `"]`, "",
		"[", ".", "]", "",
	)
	path = r.Replace(path)
	return strings.TrimPrefix(path, ".")
}
