package middleware

import (
	"net/http"

	"github.com/unrolled/secure"
)

// APIHeaders returns the response-header policy for this JSON-only service.
// No route serves markup, so the CSP denies everything and embedding is
// blocked outright. dev relaxes host and TLS enforcement for plain-HTTP
// local runs.
func APIHeaders(dev bool) func(next http.Handler) http.Handler {
	s := secure.New(secure.Options{
		IsDevelopment:         dev,
		ContentTypeNosniff:    true,
		FrameDeny:             true,
		ContentSecurityPolicy: "default-src 'none'; frame-ancestors 'none'",
		ReferrerPolicy:        "no-referrer",
	})
	return s.Handler
}
