package http

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPairs_SetKeepsPosition(t *testing.T) {
	p := P("a", "1", "b", "2", "c", "3")
	p.Set("b", "20")
	p.Set("d", "4")

	assert.Equal(t, Pairs{{"a", "1"}, {"b", "20"}, {"c", "3"}, {"d", "4"}}, p)
}

func TestPairs_Merge(t *testing.T) {
	base := P("Authorization", "Token 1", "X-Trace", "on")
	merged := base.Merge(P("Authorization", "Token 2", "X-Extra", "yes"))

	assert.Equal(t, Pairs{{"Authorization", "Token 2"}, {"X-Trace", "on"}, {"X-Extra", "yes"}}, merged)
	assert.Equal(t, "Token 1", base.Map()["Authorization"], "merge must not modify the receiver")
}

func TestPairs_Lookup(t *testing.T) {
	p := P("content-length", "12")

	_, ok := p.Get("Content-Length")
	assert.False(t, ok)

	v, ok := p.Lookup("Content-Length")
	assert.True(t, ok)
	assert.Equal(t, "12", v)
}

func TestPairs_Encode(t *testing.T) {
	tests := []struct {
		name     string
		pairs    Pairs
		expected string
	}{
		{"empty", nil, ""},
		{"insertion order", P("z", "1", "a", "2"), "z=1&a=2"},
		{"escaping", P("q", "a b&c", "k/x", "é"), "q=a+b%26c&k%2Fx=%C3%A9"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.pairs.Encode())
		})
	}
}

func TestP_IgnoresDanglingKey(t *testing.T) {
	assert.Equal(t, Pairs{{"a", "1"}}, P("a", "1", "b"))
}
