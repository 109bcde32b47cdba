package middleware

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func captureLogger(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := log.Logger
	t.Cleanup(func() { log.Logger = prev })
	log.Logger = zerolog.New(&buf)
	return &buf
}

// logLines decodes every JSON line written to buf.
func logLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	sc := bufio.NewScanner(bytes.NewReader(buf.Bytes()))
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		var m map[string]any
		if err := json.Unmarshal(sc.Bytes(), &m); err != nil {
			t.Fatalf("bad log line %q: %v", sc.Text(), err)
		}
		out = append(out, m)
	}
	return out
}

// accessLine returns the access log entry for path.
func accessLine(t *testing.T, lines []map[string]any, path string) map[string]any {
	t.Helper()
	for _, l := range lines {
		if l["message"] == "request" && l["path"] == path {
			return l
		}
	}
	t.Fatalf("no access log for %s in %v", path, lines)
	return nil
}

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var inCtx string
	r := gin.New()
	r.Use(RequestID())
	r.GET("/water/today", func(c *gin.Context) {
		v, _ := c.Get(requestIDKey)
		inCtx = asString(v)
		c.Status(http.StatusOK)
	})

	cases := []struct {
		name, header, value string
	}{
		{"generated", "", ""},
		{"canonical header", requestIDHeader, "Z-REQ-123"},
		{"lowercase header", strings.ToLower(requestIDHeader), "abc-123"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/water/today", nil)
			if tc.header != "" {
				req.Header.Set(tc.header, tc.value)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			got := w.Header().Get(requestIDHeader)
			if got == "" || got != inCtx {
				t.Fatalf("header %q, context %q; want equal and non-empty", got, inCtx)
			}
			if tc.value != "" && got != tc.value {
				t.Fatalf("request id = %q; want propagated %q", got, tc.value)
			}
		})
	}
}

func TestLogger_LevelByOutcome(t *testing.T) {
	gin.SetMode(gin.TestMode)
	buf := captureLogger(t)

	r := gin.New()
	r.Use(RequestID(), Logger(LogOptions{}))
	r.GET("/water/:id", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.DELETE("/water/:id", func(c *gin.Context) {
		_ = c.Error(errors.New("record vanished"))
		c.Status(http.StatusNotFound)
	})
	r.GET("/norma", func(c *gin.Context) { c.Status(http.StatusServiceUnavailable) })

	for _, req := range []*http.Request{
		httptest.NewRequest(http.MethodGet, "/water/w1", nil),
		httptest.NewRequest(http.MethodDelete, "/water/w1", nil),
		httptest.NewRequest(http.MethodGet, "/norma", nil),
		httptest.NewRequest(http.MethodGet, "/nowhere", nil),
	} {
		r.ServeHTTP(httptest.NewRecorder(), req)
	}

	lines := logLines(t, buf)
	if len(lines) != 4 {
		t.Fatalf("got %d log lines; want 4", len(lines))
	}
	cases := []struct {
		idx    int
		path   string
		level  string
		status float64
	}{
		{0, "/water/:id", "info", 200},
		{1, "/water/:id", "error", 404},
		{2, "/norma", "error", 503},
		{3, "/nowhere", "warn", 404},
	}
	for _, tc := range cases {
		l := lines[tc.idx]
		if l["path"] != tc.path || l["level"] != tc.level || l["status"] != tc.status {
			t.Errorf("line %d = path %v level %v status %v; want %s %s %v",
				tc.idx, l["path"], l["level"], l["status"], tc.path, tc.level, tc.status)
		}
		if l["request_id"] == "" {
			t.Errorf("line %d has no request_id", tc.idx)
		}
	}
	if errs, _ := lines[1]["errors"].(string); !strings.Contains(errs, "record vanished") {
		t.Fatalf("gin errors not logged: %v", lines[1])
	}
}

func TestRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	buf := captureLogger(t)

	r := gin.New()
	r.Use(RequestID(), Logger(LogOptions{}), Recovery())
	r.POST("/water", func(c *gin.Context) { panic("ledger exploded") })
	r.GET("/water/today", func(c *gin.Context) {
		c.String(http.StatusOK, "partial")
		panic("late failure")
	})

	req := httptest.NewRequest(http.MethodPost, "/water", nil)
	req.Header.Set(requestIDHeader, "rid-panic")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d; want 500", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["code"] != "internal_error" || body["message"] != "internal server error" || body["request_id"] != "rid-panic" {
		t.Fatalf("unexpected body: %v", body)
	}

	// Once bytes are out, Recovery must not append a JSON error.
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/water/today", nil))
	if w.Body.String() != "partial" {
		t.Fatalf("body after late panic = %q; want untouched", w.Body.String())
	}

	var panics int
	for _, l := range logLines(t, buf) {
		if l["message"] == "panic recovered" {
			panics++
			if s, _ := l["stack"].(string); s == "" {
				t.Fatalf("panic log without stack: %v", l)
			}
		}
	}
	if panics != 2 {
		t.Fatalf("panic logs = %d; want 2", panics)
	}
}

func TestLoggerFrom(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name        string
		withLogger  bool
		wantScoping bool
	}{
		{"fallback without Logger", false, false},
		{"request scoped", true, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			buf := captureLogger(t)
			r := gin.New()
			r.Use(RequestID())
			if tc.withLogger {
				r.Use(Logger(LogOptions{}))
			}
			r.GET("/norma", func(c *gin.Context) {
				LoggerFrom(c).Info().Msg("norma computed")
				c.Status(http.StatusOK)
			})
			r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/norma", nil))

			var found map[string]any
			for _, l := range logLines(t, buf) {
				if l["message"] == "norma computed" {
					found = l
				}
			}
			if found == nil {
				t.Fatalf("handler log line missing")
			}
			if _, scoped := found["request_id"]; scoped != tc.wantScoping {
				t.Fatalf("request_id present = %v; want %v (%v)", scoped, tc.wantScoping, found)
			}
		})
	}
}

func TestLogger_ScrubsQueryAndMasksHeaders(t *testing.T) {
	gin.SetMode(gin.TestMode)
	buf := captureLogger(t)

	r := gin.New()
	r.Use(RequestID(), Identity())
	r.Use(Logger(LogOptions{MaskHeaders: []string{"X-Api-Key"}, LogHeaders: true}))
	r.GET("/water", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet,
		"/water?date=2024-05-14&owner=anna%40example.com&id=1b4e28ba-2d1f-41c0-9f00-6f8b5d1a3c9e", nil)
	req.Header.Set("Authorization", "Bearer secret-token")
	req.Header.Set("X-Api-Key", "k-123")
	req.Header.Set(UserIDHeader, "u-42")
	r.ServeHTTP(httptest.NewRecorder(), req)

	out := buf.String()
	for _, leaked := range []string{"anna", "1b4e28ba", "secret-token", "k-123"} {
		if strings.Contains(out, leaked) {
			t.Fatalf("log leaked %q:\n%s", leaked, out)
		}
	}
	line := accessLine(t, logLines(t, buf), "/water")
	if line["user_id"] != "u-42" {
		t.Fatalf("user_id = %v", line["user_id"])
	}
	if q, _ := line["query"].(string); !strings.Contains(q, "date=2024-05-14") ||
		!strings.Contains(q, "[REDACTED:email]") || !strings.Contains(q, "[REDACTED:id]") {
		t.Fatalf("query = %q", q)
	}
	headers, _ := line["headers"].(map[string]any)
	if headers["Authorization"] != "[REDACTED]" || headers["X-Api-Key"] != "[REDACTED]" {
		t.Fatalf("headers not masked: %v", headers)
	}
}

func TestIdentity_HeaderAndUpstreamPrecedence(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var seen []string
	handler := func(c *gin.Context) {
		v, _ := c.Get(userIDKey)
		seen = append(seen, asString(v))
		c.Status(http.StatusNoContent)
	}

	r := gin.New()
	r.Use(Identity())
	r.GET("/me", handler)

	up := gin.New()
	up.Use(func(c *gin.Context) { c.Set(userIDKey, "auth-user"); c.Next() }, Identity())
	up.GET("/me", handler)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(UserIDHeader, "  header-user ")
	r.ServeHTTP(httptest.NewRecorder(), req)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/me", nil))

	long := httptest.NewRequest(http.MethodGet, "/me", nil)
	long.Header.Set(UserIDHeader, strings.Repeat("x", maxUserIDLength+1))
	r.ServeHTTP(httptest.NewRecorder(), long)

	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(UserIDHeader, "header-user")
	up.ServeHTTP(httptest.NewRecorder(), req)

	want := []string{"header-user", "", "", "auth-user"}
	if strings.Join(seen, ",") != strings.Join(want, ",") {
		t.Fatalf("identities = %q; want %q", seen, want)
	}
}

func TestScrub(t *testing.T) {
	cases := []struct{ in, want string }{
		{"", ""},
		{"date=2024-05-14", "date=2024-05-14"},
		{"u=a.b@mail.io", "u=[REDACTED:email]"},
		{"id=00000000-0000-0000-0000-000000000001", "id=[REDACTED:id]"},
	}
	for _, tc := range cases {
		if got := scrub(tc.in); got != tc.want {
			t.Errorf("scrub(%q) = %q; want %q", tc.in, got, tc.want)
		}
	}
}

func TestTruncateAndAsString(t *testing.T) {
	cases := []struct {
		in   string
		max  int
		want string
	}{
		{"250ml", 10, "250ml"},
		{"abcdefgh", 5, "abcde…"},
		{"abc", 0, "abc"},
		{"abc", -1, "abc"},
	}
	for _, tc := range cases {
		if got := truncate(tc.in, tc.max); got != tc.want {
			t.Errorf("truncate(%q, %d) = %q; want %q", tc.in, tc.max, got, tc.want)
		}
	}
	if asString("anna") != "anna" || asString(250) != "" || asString(nil) != "" {
		t.Fatalf("asString mismatch")
	}
}
