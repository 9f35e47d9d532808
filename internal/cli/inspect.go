package cli

import (
	"fmt"
	"os"

	"github.com/wesleyorama2/sockhttp/http"
	"github.com/wesleyorama2/sockhttp/pkg/jsonpath"
	"github.com/wesleyorama2/sockhttp/pkg/jsonschema"
)

// inspect pulls the extract paths out of the response body and checks it
// against schema, when one is given. Problems come back as messages.
func inspect(resp *http.Response, extract map[string]string, schema *jsonschema.Schema) (map[string]string, []string) {
	var problems []string

	var extracted map[string]string
	if len(extract) > 0 {
		var err error
		extracted, err = jsonpath.ExtractAll(resp.Body, extract)
		if err != nil {
			problems = append(problems, fmt.Sprintf("extract: %v", err))
		}
	}

	if schema != nil {
		for _, e := range schema.Check(resp.Body) {
			problems = append(problems, fmt.Sprintf("schema: %v", e))
		}
	}
	return extracted, problems
}

func loadSchema(path string) (*jsonschema.Schema, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema: %w", err)
	}
	return jsonschema.Compile(string(data))
}
