package models

import "strings"

// HeaderValue is one value of a header in CloudFront's representation,
// carrying the canonical display name alongside the value.
type HeaderValue struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

// Headers maps a lowercase header name to its ordered values
type Headers map[string][]HeaderValue

// Get returns the first value of the named header
func (h Headers) Get(name string) (string, bool) {
	values := h[strings.ToLower(name)]
	if len(values) == 0 {
		return "", false
	}
	return values[0].Value, true
}

// Values returns every value of the named header in order
func (h Headers) Values(name string) []string {
	values := h[strings.ToLower(name)]
	if len(values) == 0 {
		return nil
	}

	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, v.Value)
	}
	return out
}

// Set replaces the named header with a single value. key keeps its casing
// as the display name; the map entry is stored under its lowercase form.
func (h Headers) Set(key, value string) {
	h[strings.ToLower(key)] = []HeaderValue{{Key: key, Value: value}}
}
