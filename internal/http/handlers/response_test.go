package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/tbourn/go-jobtracker/internal/domain"
)

func serve(r http.Handler, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func Test_Envelopes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var logs bytes.Buffer
	logger := zerolog.New(&logs)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("X-Request-ID", "rid-"+c.Request.Method)
		c.Set("logger", &logger)
		c.Next()
	})
	r.GET("/boom", func(c *gin.Context) { fail(c, http.StatusInternalServerError, ErrCodeInternal, "kaboom") })
	r.PUT("/missing", func(c *gin.Context) { Fail(c, http.StatusNotFound, ErrCodeNotFound, "application not found: a1") })
	r.POST("/made", func(c *gin.Context) { ok(c, http.StatusCreated, gin.H{"id": "c1", "n": 1}) })
	r.DELETE("/gone", func(c *gin.Context) { noContent(c) })

	errCases := []struct {
		method, path string
		status       int
		code, msg    string
	}{
		{http.MethodGet, "/boom", http.StatusInternalServerError, ErrCodeInternal, "kaboom"},
		{http.MethodPut, "/missing", http.StatusNotFound, ErrCodeNotFound, "application not found: a1"},
	}
	for _, tc := range errCases {
		w := serve(r, tc.method, tc.path)
		if w.Code != tc.status {
			t.Fatalf("%s %s: status=%d", tc.method, tc.path, w.Code)
		}
		var er ErrorResponse
		if err := json.Unmarshal(w.Body.Bytes(), &er); err != nil {
			t.Fatalf("json: %v", err)
		}
		want := ErrorResponse{Code: tc.code, Message: tc.msg, RequestID: "rid-" + tc.method}
		if er != want {
			t.Fatalf("%s %s: body=%+v want %+v", tc.method, tc.path, er, want)
		}
	}
	if !strings.Contains(logs.String(), `"level":"error"`) {
		t.Fatalf("5xx should log at error level, got: %s", logs.String())
	}

	w := serve(r, http.MethodPost, "/made")
	if w.Code != http.StatusCreated || w.Body.String() != `{"id":"c1","n":1}` {
		t.Fatalf("ok: %d %s", w.Code, w.Body.String())
	}

	w = serve(r, http.MethodDelete, "/gone")
	if w.Code != http.StatusNoContent || w.Body.Len() != 0 {
		t.Fatalf("noContent: %d %q", w.Code, w.Body.String())
	}
}

func Test_failErr_MapsKinds(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		err    error
		status int
		code   string
		msg    string
	}{
		{domain.Validation("email", "must contain @"), http.StatusBadRequest, ErrCodeBadRequest, "email: must contain @"},
		{domain.NotFound("job", "j1"), http.StatusNotFound, ErrCodeNotFound, ""},
		{domain.Conflict("job_id", "user has already applied to this job"), http.StatusConflict, ErrCodeConflict, ""},
		{domain.DependencyConflict("company", "company has jobs"), http.StatusConflict, ErrCodeConflict, ""},
		{domain.Persistence("insert user", errors.New("disk I/O error")), http.StatusInternalServerError, ErrCodeInternal, ""},
	}
	for _, tc := range cases {
		var buf bytes.Buffer
		logger := zerolog.New(&buf)
		r := gin.New()
		r.GET("/x", func(c *gin.Context) {
			c.Set("logger", &logger)
			failErr(c, tc.err)
		})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
		if w.Code != tc.status {
			t.Fatalf("%v: status=%d want %d", tc.err, w.Code, tc.status)
		}
		var er ErrorResponse
		if err := json.Unmarshal(w.Body.Bytes(), &er); err != nil {
			t.Fatalf("json: %v", err)
		}
		if er.Code != tc.code || er.Message == "" {
			t.Fatalf("%v: body=%+v", tc.err, er)
		}
		if tc.msg != "" && !strings.Contains(er.Message, "must contain @") {
			t.Fatalf("validation message lost: %q", er.Message)
		}
		if tc.status == http.StatusInternalServerError {
			if strings.Contains(er.Message, "disk I/O") {
				t.Fatalf("persistence cause leaked: %q", er.Message)
			}
			if !strings.Contains(buf.String(), "disk I/O error") {
				t.Fatalf("persistence cause not logged: %s", buf.String())
			}
		}
	}
}

func Test_page_DefaultsAndErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := New(Services{DefaultListLimit: 7})
	r := gin.New()
	r.GET("/p", func(c *gin.Context) {
		p, good := h.page(c)
		if good {
			ok(c, http.StatusOK, p)
		}
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/p", nil))
	if w.Body.String() != `{"limit":7,"offset":0}` {
		t.Fatalf("defaults body=%s", w.Body.String())
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/p?limit=3&offset=9", nil))
	if w.Body.String() != `{"limit":3,"offset":9}` {
		t.Fatalf("explicit body=%s", w.Body.String())
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/p?offset=x", nil))
	if w.Code != http.StatusBadRequest || !strings.Contains(w.Body.String(), "offset must be an integer") {
		t.Fatalf("bad offset: %d %s", w.Code, w.Body.String())
	}

	if New(Services{}).defaultLimit != 20 {
		t.Fatal("zero default limit should become 20")
	}
}

func Test_bindJSON_Malformed(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/b", func(c *gin.Context) {
		var v struct{ A int }
		if bindJSON(c, &v) {
			noContent(c)
		}
	})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/b", strings.NewReader(`{"A":`)))
	if w.Code != http.StatusBadRequest || !strings.Contains(w.Body.String(), "invalid JSON body") {
		t.Fatalf("malformed: %d %s", w.Code, w.Body.String())
	}
}
