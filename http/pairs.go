package http

import (
	"net/url"
	"strings"
)

// Pair is a single key/value entry.
type Pair struct {
	Key   string
	Value string
}

// Pairs is an insertion-ordered key/value list used for query parameters
// and headers. Keys are case-sensitive; setting an existing key replaces
// its value in place so the original position is kept.
type Pairs []Pair

// P builds Pairs from alternating keys and values. A trailing key with
// no value is ignored.
func P(kv ...string) Pairs {
	var p Pairs
	for i := 0; i+1 < len(kv); i += 2 {
		p.Set(kv[i], kv[i+1])
	}
	return p
}

// Set replaces the value of key or appends it.
func (p *Pairs) Set(key, value string) {
	for i := range *p {
		if (*p)[i].Key == key {
			(*p)[i].Value = value
			return
		}
	}
	*p = append(*p, Pair{Key: key, Value: value})
}

// Get returns the value stored under exactly key.
func (p Pairs) Get(key string) (string, bool) {
	for _, kv := range p {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return "", false
}

// Lookup is Get with ASCII case-insensitive key matching.
func (p Pairs) Lookup(key string) (string, bool) {
	for _, kv := range p {
		if strings.EqualFold(kv.Key, key) {
			return kv.Value, true
		}
	}
	return "", false
}

// Merge returns a copy of p with every entry of over applied on top.
// Entries of over win on key collision.
func (p Pairs) Merge(over Pairs) Pairs {
	out := make(Pairs, 0, len(p)+len(over))
	out = append(out, p...)
	for _, kv := range over {
		out.Set(kv.Key, kv.Value)
	}
	return out
}

// Map returns the entries as a map. Order is lost.
func (p Pairs) Map() map[string]string {
	m := make(map[string]string, len(p))
	for _, kv := range p {
		m[kv.Key] = kv.Value
	}
	return m
}

// Encode percent-encodes the entries as "k=v&k2=v2" in insertion order.
func (p Pairs) Encode() string {
	var sb strings.Builder
	for i, kv := range p {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(url.QueryEscape(kv.Key))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(kv.Value))
	}
	return sb.String()
}
