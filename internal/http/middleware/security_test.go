package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestSecurityHeaders(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name   string
		opt    SecurityOptions
		https  bool
		check  map[string]string
		absent []string
	}{
		{
			name:   "baseline",
			check:  map[string]string{"X-Content-Type-Options": "nosniff", "X-Frame-Options": "DENY", "Referrer-Policy": "no-referrer"},
			absent: []string{"Cache-Control", "Permissions-Policy", "Strict-Transport-Security"},
		},
		{
			name:  "no-store and policy",
			opt:   SecurityOptions{NoStore: true, EnablePolicy: true},
			check: map[string]string{"Cache-Control": "no-store", "Pragma": "no-cache", "X-Permitted-Cross-Domain-Policies": "none"},
		},
		{
			name:   "hsts skipped on plain http",
			opt:    SecurityOptions{EnableHSTS: true},
			absent: []string{"Strict-Transport-Security"},
		},
		{
			name:  "hsts behind https proxy",
			opt:   SecurityOptions{EnableHSTS: true, HSTSMaxAge: time.Hour},
			https: true,
			check: map[string]string{"Strict-Transport-Security": "max-age=3600; includeSubDomains; preload"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := gin.New()
			r.Use(RequestID(), SecurityHeaders(tc.opt))
			r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

			req := httptest.NewRequest(http.MethodGet, "/x", nil)
			if tc.https {
				req.Header.Set("X-Forwarded-Proto", "https")
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			for k, v := range tc.check {
				if got := w.Header().Get(k); got != v {
					t.Errorf("%s = %q, want %q", k, got, v)
				}
			}
			for _, k := range tc.absent {
				if got := w.Header().Get(k); got != "" {
					t.Errorf("%s should be absent, got %q", k, got)
				}
			}
			if got := w.Header().Get("Access-Control-Expose-Headers"); got != "X-Request-ID" {
				t.Errorf("expose headers %q", got)
			}
		})
	}
}

func TestSecurityHeaders_AppendsExposeHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), func(c *gin.Context) {
		c.Header("Access-Control-Expose-Headers", "Idempotency-Replayed")
		c.Next()
	}, SecurityHeaders(SecurityOptions{}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	if got := w.Header().Get("Access-Control-Expose-Headers"); got != "Idempotency-Replayed, X-Request-ID" {
		t.Fatalf("expose headers %q", got)
	}
}
