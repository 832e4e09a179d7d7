package checker

import (
	"net/http"
	"strings"
)

// Headers is a response header set keyed by lower-cased name. Repeated
// headers are joined with ", ".
type Headers map[string]string

// NewHeaders normalizes an http.Header into a Headers set.
func NewHeaders(h http.Header) Headers {
	out := make(Headers, len(h))
	for name, values := range h {
		key := strings.ToLower(name)
		joined := strings.Join(values, ", ")
		if prev, ok := out[key]; ok && prev != "" {
			joined = prev + ", " + joined
		}
		out[key] = joined
	}
	return out
}

// Get returns the value for name, matched case-insensitively.
func (h Headers) Get(name string) string {
	return h[strings.ToLower(name)]
}

// Has reports whether name is present with a non-empty value.
func (h Headers) Has(name string) bool {
	return strings.TrimSpace(h.Get(name)) != ""
}
