package config

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/wesleyorama2/sockhttp/http"
)

// Ordered is a string mapping that keeps the order it was written in,
// so query strings and headers go out exactly as configured.
type Ordered http.Pairs

// UnmarshalYAML implements yaml.Unmarshaler.
func (o *Ordered) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping", node.Line)
	}
	pairs := make(http.Pairs, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		k, v := node.Content[i], node.Content[i+1]
		if v.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: value of %q must be a scalar", v.Line, k.Value)
		}
		pairs.Set(k.Value, v.Value)
	}
	*o = Ordered(pairs)
	return nil
}

// Pairs converts to the client's key/value list, substituting variables.
func (o Ordered) Pairs(env map[string]string) http.Pairs {
	if o == nil {
		return nil
	}
	out := make(http.Pairs, 0, len(o))
	for _, kv := range o {
		out.Set(kv.Key, ProcessEnvironment(kv.Value, env))
	}
	return out
}
