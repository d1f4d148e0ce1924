package services

import (
	"strings"

	"edge-header-policy/internal/models"
)

// SecurityHeader is a header the policy sets on every response
type SecurityHeader struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

var contentSecurityPolicy = strings.Join([]string{
	"default-src 'none';",
	"img-src 'self';",
	"script-src 'self';",
	"style-src 'self';",
	"font-src 'self';",
	"object-src 'none'",
}, " ")

var securityHeaders = []SecurityHeader{
	{Key: "Strict-Transport-Security", Value: "max-age=31536000; includeSubdomains; preload"},
	{Key: "Content-Security-Policy", Value: contentSecurityPolicy},
	{Key: "X-Content-Type-Options", Value: "nosniff"},
	{Key: "X-Frame-Options", Value: "DENY"},
	{Key: "X-XSS-Protection", Value: "1; mode=block"},
	{Key: "Referrer-Policy", Value: "same-origin"},
}

// SecurityHeaders returns a copy of the static security header bundle
func SecurityHeaders() []SecurityHeader {
	return append([]SecurityHeader(nil), securityHeaders...)
}

// ApplySecurityHeaders overwrites each security header with its single value
func ApplySecurityHeaders(headers models.Headers) {
	for _, h := range securityHeaders {
		headers.Set(h.Key, h.Value)
	}
}
