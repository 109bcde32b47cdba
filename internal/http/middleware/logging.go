// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file provides request correlation, caller identity, structured access
// logging with PII scrubbing, and panic recovery:
//
//   - RequestID() ensures every request carries a stable correlation ID
//     (propagated via X-Request-ID and stored in the Gin context).
//   - Identity() resolves the caller from the X-User-ID header when nothing
//     upstream has set "userID" already.
//   - Logger() emits one access log per request with latency, status and
//     sizes, attaches a request-scoped zerolog.Logger, and selects the level
//     by outcome. E-mail addresses and UUIDs are scrubbed from the logged
//     query string and sensitive headers are masked.
//   - Recovery() converts panics into JSON 500 responses.
//   - LoggerFrom() retrieves the request-scoped logger for handlers.
//
// Recommended order: RequestID, Identity, Logger, Recovery.
package middleware

import (
	"net/http"
	"regexp"
	"runtime/debug"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	// requestIDKey is the Gin context key under which the request ID is stored.
	requestIDKey = "requestID"
	// requestIDHeader is the HTTP header used to propagate the correlation ID.
	requestIDHeader = "X-Request-ID"
	// userIDKey is the Gin context key holding the caller identity.
	userIDKey = "userID"
	// UserIDHeader carries the caller identity when no auth layer sets one.
	UserIDHeader = "X-User-ID"
	// maxQueryLogLength caps the number of bytes of the raw query string logged.
	maxQueryLogLength = 2048
	// maxUserIDLength caps the accepted X-User-ID value.
	maxUserIDLength = 128
)

var (
	uuidRE  = regexp.MustCompile(`(?i)\b[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}\b`)
	emailRE = regexp.MustCompile(`(?i)[a-z0-9._%+\-]+(@|%40)[a-z0-9.\-]+\.[a-z]{2,}`)
)

// RequestID attaches (or propagates) a correlation identifier per request.
//
// If the incoming request has X-Request-ID that value is reused, otherwise a
// new UUIDv4 is generated. The ID is written back to the response header and
// stored in the Gin context under "requestID".
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(requestIDHeader)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set(requestIDKey, rid)
		c.Writer.Header().Set(requestIDHeader, rid)
		c.Next()
	}
}

// Identity stores the X-User-ID header value under the "userID" context key
// unless an upstream middleware already set one. Oversized values are
// ignored. Downstream code falls back to a demo identity when nothing is set.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := c.Get(userIDKey); !ok {
			if uid := strings.TrimSpace(c.GetHeader(UserIDHeader)); uid != "" && len(uid) <= maxUserIDLength {
				c.Set(userIDKey, uid)
			}
		}
		c.Next()
	}
}

// LogOptions configures Logger.
//
// MaskHeaders names extra request headers whose values are logged as
// "[REDACTED]". Authorization, Cookie and Set-Cookie are always masked.
// LogHeaders adds the (masked) request headers to each access log line.
type LogOptions struct {
	MaskHeaders []string
	LogHeaders  bool
}

// maskedSet returns the lowercased header names Logger redacts.
func (o LogOptions) maskedSet() map[string]struct{} {
	set := map[string]struct{}{"authorization": {}, "cookie": {}, "set-cookie": {}}
	for _, h := range o.MaskHeaders {
		if h = strings.ToLower(strings.TrimSpace(h)); h != "" {
			set[h] = struct{}{}
		}
	}
	return set
}

// Logger writes a structured access log for each request and response.
//
// The request-scoped logger is stored under the "logger" Gin context key and
// carries request id, user id, method, route, client IP and the scrubbed
// query. The final line is logged at error level for 5xx or when Gin
// collected errors, warn for 4xx and info otherwise.
//
// Place this after RequestID() and Identity().
func Logger(opts LogOptions) gin.HandlerFunc {
	masked := opts.maskedSet()

	return func(c *gin.Context) {
		start := time.Now()
		l := requestLogger(c, opts.LogHeaders, masked)
		c.Set("logger", &l)

		c.Next()

		status := c.Writer.Status()
		ev := levelFor(&l, status, len(c.Errors) > 0).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Int("bytes_out", c.Writer.Size())
		if len(c.Errors) > 0 {
			ev = ev.Str("errors", c.Errors.String())
		}
		ev.Msg("request")
	}
}

// requestLogger derives the per-request logger from the global one.
func requestLogger(c *gin.Context, withHeaders bool, masked map[string]struct{}) zerolog.Logger {
	rid, _ := c.Get(requestIDKey)
	uid, _ := c.Get(userIDKey)
	route := c.FullPath()
	if route == "" {
		route = c.Request.URL.Path // unmatched route
	}

	lc := log.With().
		Str("request_id", asString(rid)).
		Str("user_id", asString(uid)).
		Str("method", c.Request.Method).
		Str("path", route).
		Str("remote_ip", c.ClientIP()).
		Str("user_agent", c.Request.UserAgent()).
		Str("query", truncate(scrub(c.Request.URL.RawQuery), maxQueryLogLength)).
		Int64("bytes_in", c.Request.ContentLength) // -1 when unknown
	if withHeaders {
		lc = lc.Interface("headers", maskHeaders(c.Request.Header, masked))
	}
	return lc.Logger()
}

func levelFor(l *zerolog.Logger, status int, hasErrors bool) *zerolog.Event {
	switch {
	case hasErrors || status >= http.StatusInternalServerError:
		return l.Error()
	case status >= http.StatusBadRequest:
		return l.Warn()
	default:
		return l.Info()
	}
}

// Recovery intercepts panics, logs a stack trace, and returns a JSON 500 error
// of the form {"request_id", "code": "internal_error", "message"} when nothing
// has been written yet.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			rid := c.GetString(requestIDKey)
			log.Error().
				Interface("panic", rec).
				Bytes("stack", debug.Stack()).
				Str("request_id", rid).
				Msg("panic recovered")

			if c.Writer.Written() {
				c.AbortWithStatus(http.StatusInternalServerError)
				return
			}
			c.Header(requestIDHeader, rid)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"request_id": rid,
				"code":       "internal_error",
				"message":    "internal server error",
			})
		}()
		c.Next()
	}
}

// LoggerFrom returns the request-scoped zerolog.Logger, or a plain logger
// when Logger() is not installed.
func LoggerFrom(c *gin.Context) *zerolog.Logger {
	if v, ok := c.Get("logger"); ok {
		if lg, ok := v.(*zerolog.Logger); ok {
			return lg
		}
	}
	l := log.With().Logger()
	return &l
}

// scrub replaces UUIDs and e-mail addresses (raw or percent-encoded) with
// placeholders. UUIDs go first so their hex groups are not half-matched.
func scrub(s string) string {
	if s == "" {
		return s
	}
	s = uuidRE.ReplaceAllString(s, "[REDACTED:id]")
	return emailRE.ReplaceAllString(s, "[REDACTED:email]")
}

func maskHeaders(h http.Header, masked map[string]struct{}) map[string]string {
	out := make(map[string]string, len(h))
	for k, vv := range h {
		if _, ok := masked[strings.ToLower(k)]; ok {
			out[k] = "[REDACTED]"
			continue
		}
		out[k] = scrub(strings.Join(vv, ", "))
	}
	return out
}

// asString converts an arbitrary interface to a string, returning an empty
// string when the value is not a string. Used for context values.
func asString(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

// truncate returns s unchanged when within max length, otherwise it truncates
// s to max bytes and appends an ellipsis. A max <= 0 disables truncation.
func truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	return s[:max] + "…"
}
