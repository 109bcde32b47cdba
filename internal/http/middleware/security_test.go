package middleware

import (
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

// secured runs one GET through SecurityHeaders. pre runs before the
// middleware, prep mutates the request.
func secured(t *testing.T, opt SecurityOptions, pre gin.HandlerFunc, prep func(*http.Request)) http.Header {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	if pre != nil {
		r.Use(pre)
	}
	r.Use(SecurityHeaders(opt))
	r.GET("/water", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/water", nil)
	if prep != nil {
		prep(req)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Header()
}

func TestSecurityHeaders_Baseline(t *testing.T) {
	h := secured(t, SecurityOptions{}, nil, nil)

	if h.Get("X-Content-Type-Options") != "nosniff" ||
		h.Get("X-Frame-Options") != "DENY" ||
		h.Get("Referrer-Policy") != "no-referrer" {
		t.Fatalf("baseline headers missing: %#v", h)
	}
	for _, name := range []string{
		"Permissions-Policy", "X-Permitted-Cross-Domain-Policies",
		"Cache-Control", "Pragma", "Expires", "Strict-Transport-Security",
	} {
		if h.Get(name) != "" {
			t.Fatalf("unexpected %s: %q", name, h.Get(name))
		}
	}
	if want := strings.Join(DefaultExposeHeaders, ", "); h.Get(headerExpose) != want {
		t.Fatalf("expose = %q; want %q", h.Get(headerExpose), want)
	}
}

func TestSecurityHeaders_ExposeList(t *testing.T) {
	cases := []struct {
		name     string
		existing string
		custom   []string
		want     string
	}{
		{"append after CORS entries", "Foo", nil, "Foo, X-Request-ID, ETag, Idempotency-Replayed"},
		{"keep existing names once", "X-Request-ID, Foo", nil, "X-Request-ID, Foo, ETag, Idempotency-Replayed"},
		{"case-insensitive match", "etag", nil, "etag, X-Request-ID, Idempotency-Replayed"},
		{"custom list deduplicated", "", []string{"ETag", "etag"}, "ETag"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var pre gin.HandlerFunc
			if tc.existing != "" {
				pre = func(c *gin.Context) {
					c.Header(headerExpose, tc.existing)
					c.Next()
				}
			}
			h := secured(t, SecurityOptions{ExposeHeaders: tc.custom}, pre, nil)
			if got := h.Get(headerExpose); got != tc.want {
				t.Fatalf("expose = %q; want %q", got, tc.want)
			}
		})
	}
}

func TestSecurityHeaders_OptionalSets(t *testing.T) {
	opt := SecurityOptions{
		EnableHSTS:   true,
		HSTSMaxAge:   24 * time.Hour,
		NoStore:      true,
		EnablePolicy: true,
	}
	h := secured(t, opt, nil, func(r *http.Request) { r.TLS = &tls.ConnectionState{} })

	if h.Get("Permissions-Policy") != permissionsPolicy || h.Get("X-Permitted-Cross-Domain-Policies") != "none" {
		t.Fatalf("missing policy headers: %#v", h)
	}
	if h.Get("Cache-Control") != "no-store" || h.Get("Pragma") != "no-cache" || h.Get("Expires") != "0" {
		t.Fatalf("missing cache headers: %#v", h)
	}
	if got := h.Get("Strict-Transport-Security"); got != "max-age=86400; includeSubDomains; preload" {
		t.Fatalf("HSTS = %q", got)
	}
}

func TestSecurityHeaders_HSTSOnlyOverHTTPS(t *testing.T) {
	opt := SecurityOptions{EnableHSTS: true}

	if got := secured(t, opt, nil, nil).Get("Strict-Transport-Security"); got != "" {
		t.Fatalf("plain HTTP must not get HSTS, got %q", got)
	}
	proxied := secured(t, opt, nil, func(r *http.Request) { r.Header.Set("X-Forwarded-Proto", "HTTPS") })
	if got := proxied.Get("Strict-Transport-Security"); got != "max-age=15552000; includeSubDomains; preload" {
		t.Fatalf("proxied HTTPS HSTS = %q", got)
	}
}

func Test_isHTTPS(t *testing.T) {
	plain := httptest.NewRequest(http.MethodGet, "/", nil)
	direct := httptest.NewRequest(http.MethodGet, "/", nil)
	direct.TLS = &tls.ConnectionState{}
	proxied := httptest.NewRequest(http.MethodGet, "/", nil)
	proxied.Header.Set("X-Forwarded-Proto", "https")

	if isHTTPS(plain) || !isHTTPS(direct) || !isHTTPS(proxied) {
		t.Fatalf("isHTTPS: plain=%v direct=%v proxied=%v", isHTTPS(plain), isHTTPS(direct), isHTTPS(proxied))
	}
}
