// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file provides SecurityHeaders, which attaches the response headers the
// water API sends on every reply: content sniffing and framing protection,
// optional HSTS and no-store caching, and the list of response headers a
// browser client is allowed to read (request id, ETag of a day list, the
// idempotent replay marker).
package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	headerExpose      = "Access-Control-Expose-Headers"
	defaultHSTSMaxAge = 180 * 24 * time.Hour
	permissionsPolicy = "geolocation=(), microphone=(), camera=(), payment=()"
	hstsDirectives    = "; includeSubDomains; preload"
)

// SecurityOptions configures SecurityHeaders.
type SecurityOptions struct {
	// EnableHSTS emits Strict-Transport-Security on HTTPS requests only.
	// Enable it only when traffic is HTTPS end-to-end.
	EnableHSTS bool
	// HSTSMaxAge defaults to 180 days when <= 0.
	HSTSMaxAge time.Duration
	// NoStore adds Cache-Control: no-store plus legacy Pragma/Expires.
	NoStore bool
	// EnablePolicy adds Permissions-Policy and X-Permitted-Cross-Domain-Policies.
	EnablePolicy bool

	// ExposeHeaders are appended to Access-Control-Expose-Headers.
	// Defaults to DefaultExposeHeaders.
	ExposeHeaders []string
}

// DefaultExposeHeaders lists the response headers browser clients of the
// water API need to read.
var DefaultExposeHeaders = []string{"X-Request-ID", "ETag", "Idempotency-Replayed"}

type headerValue struct{ name, value string }

// staticHeaders returns the headers that do not depend on the request.
func (opt SecurityOptions) staticHeaders() []headerValue {
	out := []headerValue{
		{"X-Content-Type-Options", "nosniff"},
		{"X-Frame-Options", "DENY"},
		{"Referrer-Policy", "no-referrer"},
	}
	if opt.EnablePolicy {
		out = append(out,
			headerValue{"Permissions-Policy", permissionsPolicy},
			headerValue{"X-Permitted-Cross-Domain-Policies", "none"},
		)
	}
	if opt.NoStore {
		out = append(out,
			headerValue{"Cache-Control", "no-store"},
			headerValue{"Pragma", "no-cache"},
			headerValue{"Expires", "0"},
		)
	}
	return out
}

// hstsValue renders the Strict-Transport-Security directive.
func (opt SecurityOptions) hstsValue() string {
	maxAge := opt.HSTSMaxAge
	if maxAge <= 0 {
		maxAge = defaultHSTSMaxAge
	}
	return "max-age=" + strconv.Itoa(int(maxAge.Seconds())) + hstsDirectives
}

// SecurityHeaders returns a Gin middleware that sets conservative security
// headers on every response:
//
//	X-Content-Type-Options: nosniff
//	X-Frame-Options: DENY
//	Referrer-Policy: no-referrer
//
// plus the optional policy, no-store and HSTS headers selected by opt, and
// appends opt.ExposeHeaders to Access-Control-Expose-Headers without
// duplicating names a CORS layer already listed.
func SecurityHeaders(opt SecurityOptions) gin.HandlerFunc {
	static := opt.staticHeaders()
	hsts := opt.hstsValue()
	expose := opt.ExposeHeaders
	if len(expose) == 0 {
		expose = DefaultExposeHeaders
	}

	return func(c *gin.Context) {
		h := c.Writer.Header()
		for _, hv := range static {
			h.Set(hv.name, hv.value)
		}
		if opt.EnableHSTS && isHTTPS(c.Request) {
			h.Set("Strict-Transport-Security", hsts)
		}
		exposeHeaders(h, expose)
		c.Next()
	}
}

// exposeHeaders appends every name of expose to Access-Control-Expose-Headers
// without duplicating entries already listed.
func exposeHeaders(h http.Header, expose []string) {
	for _, name := range expose {
		cur := h.Get(headerExpose)
		switch {
		case cur == "":
			h.Set(headerExpose, name)
		case !containsToken(cur, name):
			h.Set(headerExpose, cur+", "+name)
		}
	}
}

func containsToken(list, name string) bool {
	for _, part := range strings.Split(list, ",") {
		if strings.EqualFold(strings.TrimSpace(part), name) {
			return true
		}
	}
	return false
}

// isHTTPS reports whether the request arrived over TLS, directly or behind a
// proxy that set X-Forwarded-Proto: https.
func isHTTPS(r *http.Request) bool {
	if r.TLS != nil {
		return true
	}
	return strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
}
