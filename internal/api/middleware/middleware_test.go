package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Wikid82/snare/internal/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRecovery(t *testing.T) {
	tests := []struct {
		name      string
		verbose   bool
		wantStack bool
	}{
		{"verbose logs stack trace", true, true},
		{"brief when not verbose", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger.Init(true, buf)

			router := gin.New()
			router.Use(RequestID())
			router.Use(Recovery(tt.verbose))
			router.GET("/panic", func(c *gin.Context) { panic("test panic") })

			req := httptest.NewRequest(http.MethodGet, "/panic", nil)
			req.Header.Set("Authorization", "Bearer secret-token")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusInternalServerError, w.Code)
			out := buf.String()
			assert.Contains(t, out, "PANIC: test panic")
			assert.Contains(t, out, "request_id")
			assert.Equal(t, tt.wantStack, strings.Contains(out, "Stacktrace:"))
			assert.NotContains(t, out, "secret-token")
		})
	}
}

func TestRequestID(t *testing.T) {
	logger.Init(true, &bytes.Buffer{})
	router := gin.New()
	router.Use(RequestID())
	router.GET("/test", func(c *gin.Context) {
		_, ok := c.Get("logger")
		assert.True(t, ok)
		c.String(http.StatusOK, c.GetString(RequestIDKey))
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
	assert.Equal(t, w.Header().Get(RequestIDHeader), w.Body.String())

	const inbound = "6f1c2f1e-3a3b-4c4d-8e8f-9a9b0c0d1e1f"
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(RequestIDHeader, inbound)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, inbound, w.Header().Get(RequestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(RequestIDHeader, "not-a-uuid\ninjected")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.NotContains(t, w.Header().Get(RequestIDHeader), "injected")
}

func TestGetRequestLogger_Fallback(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.NotNil(t, GetRequestLogger(c))
}

func TestRequestLogger(t *testing.T) {
	buf := &bytes.Buffer{}
	logger.Init(false, buf)

	router := gin.New()
	router.Use(RequestID())
	router.Use(RequestLogger("/metrics"))
	router.GET("/ok", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	router.GET("/metrics", func(c *gin.Context) { c.String(http.StatusOK, "") })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok?token=abc", nil))
	out := buf.String()
	assert.Contains(t, out, "request_id")
	assert.Contains(t, out, "handled request")
	assert.NotContains(t, out, "token=abc")

	buf.Reset()
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Empty(t, buf.String(), "skipped paths log at debug only")
}

func TestSanitizeHeaders(t *testing.T) {
	assert.Nil(t, SanitizeHeaders(nil))

	h := http.Header{}
	h.Set("Cookie", "session=abc")
	h.Set("X-Api-Key", "k")
	h.Set("User-Agent", "curl\r\n/8.0")
	h.Set("X-Long", strings.Repeat("a", 500))

	out := SanitizeHeaders(h)
	assert.Equal(t, []string{"<redacted>"}, out["Cookie"])
	assert.Equal(t, []string{"<redacted>"}, out["X-Api-Key"])
	assert.Equal(t, []string{"curl /8.0"}, out["User-Agent"])
	assert.Len(t, out["X-Long"][0], maxLoggedValue)
}

func TestSanitizePath(t *testing.T) {
	assert.Equal(t, "/console/v1/hit", SanitizePath("/console/v1/hit?x=1"))
	assert.Equal(t, "/a b", SanitizePath("/a\nb"))
	assert.Len(t, SanitizePath("/"+strings.Repeat("x", 400)), maxLoggedValue)
}

func TestSecurityHeaders(t *testing.T) {
	tests := []struct {
		name   string
		cfg    SecurityHeadersConfig
		assert func(t *testing.T, h http.Header)
	}{
		{
			name: "production sets HSTS",
			cfg:  SecurityHeadersConfig{},
			assert: func(t *testing.T, h http.Header) {
				assert.Contains(t, h.Get("Strict-Transport-Security"), "max-age=31536000")
				assert.Contains(t, h.Get("Content-Security-Policy"), "script-src 'self';")
			},
		},
		{
			name: "development skips HSTS and allows websockets",
			cfg:  SecurityHeadersConfig{IsDevelopment: true},
			assert: func(t *testing.T, h http.Header) {
				assert.Empty(t, h.Get("Strict-Transport-Security"))
				assert.Contains(t, h.Get("Content-Security-Policy"), "connect-src 'self' ws: wss:")
			},
		},
		{
			name: "custom directives override defaults",
			cfg:  SecurityHeadersConfig{CustomCSPDirectives: map[string]string{"img-src": "'self' https:"}},
			assert: func(t *testing.T, h http.Header) {
				assert.Contains(t, h.Get("Content-Security-Policy"), "img-src 'self' https:")
			},
		},
		{
			name: "static hardening headers",
			cfg:  SecurityHeadersConfig{},
			assert: func(t *testing.T, h http.Header) {
				assert.Equal(t, "DENY", h.Get("X-Frame-Options"))
				assert.Equal(t, "nosniff", h.Get("X-Content-Type-Options"))
				assert.Equal(t, "same-origin", h.Get("Cross-Origin-Opener-Policy"))
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(SecurityHeaders(tt.cfg))
			router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
			tt.assert(t, w.Header())
		})
	}
}

func TestBuildCSP_Deterministic(t *testing.T) {
	cfg := SecurityHeadersConfig{}
	assert.Equal(t, buildCSP(cfg), buildCSP(cfg))
	assert.True(t, strings.HasPrefix(buildCSP(cfg), "base-uri 'self'; connect-src"))
}
