package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-jobtracker/internal/domain"
	"github.com/tbourn/go-jobtracker/internal/http/middleware"
	"github.com/tbourn/go-jobtracker/internal/services"
)

// --- stubs ---

type stubUsers struct {
	saved []*domain.User
	byID  map[string]*domain.User
	err   error
}

func (s *stubUsers) Save(_ context.Context, u *domain.User) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	cp := *u
	s.saved = append(s.saved, &cp)
	if u.ID == "" {
		return "u-new", nil
	}
	return u.ID, nil
}

func (s *stubUsers) Get(_ context.Context, id string) (*domain.User, error) {
	if u, ok := s.byID[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (s *stubUsers) List(context.Context, int, int) ([]domain.User, error) { return nil, nil }
func (s *stubUsers) Delete(context.Context, string) error                 { return nil }
func (s *stubUsers) EmailExists(_ context.Context, email string) (bool, error) {
	return email == "ann@example.com", nil
}

type stubApps struct {
	ApplicationService
	saves  int
	exists bool
	err    error
}

func (s *stubApps) Save(context.Context, *domain.Application) (string, error) {
	s.saves++
	if s.err != nil {
		return "", s.err
	}
	return "app-1", nil
}

func (s *stubApps) Exists(context.Context, string) (bool, error) { return s.exists, s.err }

type stubActivities struct {
	ActivityService
	items []domain.Activity
}

func (s *stubActivities) ForApplication(context.Context, string) ([]domain.Activity, error) {
	return s.items, nil
}

type memIdem struct {
	ids map[string]string
	err error
}

func (m *memIdem) Lookup(_ context.Context, scope, key string) (string, bool, error) {
	if m.err != nil {
		return "", false, m.err
	}
	id, ok := m.ids[scope+"|"+key]
	return id, ok, nil
}

func (m *memIdem) Remember(_ context.Context, scope, key, id string, _ int) error {
	if m.ids == nil {
		m.ids = map[string]string{}
	}
	m.ids[scope+"|"+key] = id
	return nil
}

func newEngine(h *Handlers) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.IdempotencyValidator(middleware.IdempotencyOptions{}, nil))
	r.POST("/users", h.CreateUser)
	r.PUT("/users/:id", h.UpdateUser)
	r.GET("/users/:id", h.GetUser)
	r.GET("/users/email/:email/exists", h.UserEmailExists)
	r.POST("/applications", h.CreateApplication)
	r.GET("/applications/:id/activities", h.ApplicationTimeline)
	return r
}

func send(r http.Handler, method, path, body string, hdr ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(hdr); i += 2 {
		req.Header.Set(hdr[i], hdr[i+1])
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// --- tests ---

func TestCreateUser_HashesPassword(t *testing.T) {
	users := &stubUsers{}
	r := newEngine(New(Services{Users: users}))

	w := send(r, http.MethodPost, "/users", `{"email":"ann@example.com","password":"pw","name":"Ann"}`)
	if w.Code != http.StatusCreated || !strings.Contains(w.Body.String(), `"id":"u-new"`) {
		t.Fatalf("create = %d %s", w.Code, w.Body.String())
	}
	if len(users.saved) != 1 {
		t.Fatalf("saved %d users", len(users.saved))
	}
	if h := users.saved[0].PasswordHash; h == "pw" || !services.CheckPassword(h, "pw") {
		t.Fatalf("password not hashed: %q", h)
	}

	w = send(r, http.MethodPost, "/users", `{"email":"bo@example.com","name":"Bo"}`)
	if w.Code != http.StatusBadRequest || len(users.saved) != 1 {
		t.Fatalf("missing password = %d", w.Code)
	}
}

func TestUpdateUser_KeepsHashWhenPasswordBlank(t *testing.T) {
	users := &stubUsers{byID: map[string]*domain.User{
		"u1": {ID: "u1", Email: "old@example.com", PasswordHash: "keep-me", Name: "Old"},
	}}
	r := newEngine(New(Services{Users: users}))

	w := send(r, http.MethodPut, "/users/u1", `{"email":"new@example.com","name":"New"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("update = %d %s", w.Code, w.Body.String())
	}
	got := users.saved[0]
	if got.PasswordHash != "keep-me" || got.Email != "new@example.com" || got.Name != "New" {
		t.Fatalf("saved = %+v", got)
	}
	if strings.Contains(w.Body.String(), "keep-me") {
		t.Fatal("hash must never be serialized")
	}

	if w = send(r, http.MethodPut, "/users/zz", `{"email":"a@b.c","name":"N"}`); w.Code != http.StatusNotFound {
		t.Fatalf("missing user = %d", w.Code)
	}

	users.err = domain.Conflict("email", "email already registered")
	if w = send(r, http.MethodPut, "/users/u1", `{"email":"x@y.z","name":"N","password":"new"}`); w.Code != http.StatusConflict {
		t.Fatalf("conflict = %d", w.Code)
	}
}

func TestGetUser_NotFoundAndExists(t *testing.T) {
	r := newEngine(New(Services{Users: &stubUsers{}}))

	w := send(r, http.MethodGet, "/users/nope", "")
	var er ErrorResponse
	_ = json.Unmarshal(w.Body.Bytes(), &er)
	if w.Code != http.StatusNotFound || er.Code != ErrCodeNotFound || er.RequestID == "" {
		t.Fatalf("get missing = %d %+v", w.Code, er)
	}

	w = send(r, http.MethodGet, "/users/email/ann@example.com/exists", "")
	if w.Body.String() != `{"exists":true}` {
		t.Fatalf("exists body = %s", w.Body.String())
	}
}

func TestCreateApplication_IdempotentReplay(t *testing.T) {
	apps := &stubApps{}
	idem := &memIdem{}
	r := newEngine(New(Services{Applications: apps, Idempotency: idem}))
	body := `{"user_id":"u1","job_id":"j1","status":"applied"}`

	w1 := send(r, http.MethodPost, "/applications", body, middleware.HeaderIdempotencyKey, "abc")
	w2 := send(r, http.MethodPost, "/applications", body, middleware.HeaderIdempotencyKey, "abc")
	if w1.Code != http.StatusCreated || w2.Code != http.StatusCreated {
		t.Fatalf("codes = %d %d", w1.Code, w2.Code)
	}
	if apps.saves != 1 {
		t.Fatalf("service called %d times", apps.saves)
	}
	if w2.Header().Get(middleware.HeaderReplayed) != "true" || w1.Body.String() != w2.Body.String() {
		t.Fatalf("replay headers=%v body=%s", w2.Header(), w2.Body.String())
	}

	// no key: every call creates
	send(r, http.MethodPost, "/applications", body)
	if apps.saves != 2 {
		t.Fatalf("keyless create not forwarded, saves=%d", apps.saves)
	}
}

func TestCreateApplication_LookupErrorFallsThrough(t *testing.T) {
	apps := &stubApps{}
	r := newEngine(New(Services{Applications: apps, Idempotency: &memIdem{err: errors.New("db down")}}))

	w := send(r, http.MethodPost, "/applications", `{"user_id":"u1","job_id":"j1","status":"applied"}`,
		middleware.HeaderIdempotencyKey, "k")
	if w.Code != http.StatusCreated || apps.saves != 1 {
		t.Fatalf("code=%d saves=%d", w.Code, apps.saves)
	}
}

func TestCreateApplication_ServiceErrorNotRemembered(t *testing.T) {
	apps := &stubApps{err: domain.Conflict("job_id", "user has already applied to this job")}
	idem := &memIdem{}
	r := newEngine(New(Services{Applications: apps, Idempotency: idem}))

	w := send(r, http.MethodPost, "/applications", `{"user_id":"u1","job_id":"j1","status":"applied"}`,
		middleware.HeaderIdempotencyKey, "k")
	if w.Code != http.StatusConflict {
		t.Fatalf("code = %d", w.Code)
	}
	if len(idem.ids) != 0 {
		t.Fatalf("failed create must not be remembered: %v", idem.ids)
	}
}

func TestApplicationTimeline(t *testing.T) {
	acts := &stubActivities{}
	apps := &stubApps{}
	r := newEngine(New(Services{Applications: apps, Activities: acts}))

	if w := send(r, http.MethodGet, "/applications/a1/activities", ""); w.Code != http.StatusNotFound {
		t.Fatalf("missing application = %d", w.Code)
	}

	apps.exists = true
	w := send(r, http.MethodGet, "/applications/a1/activities", "")
	if w.Code != http.StatusOK || w.Body.String() != `{"application_id":"a1","activities":null}` {
		t.Fatalf("empty timeline = %d %s", w.Code, w.Body.String())
	}

	acts.items = []domain.Activity{{ID: "e1", ApplicationID: "a1", EventType: domain.EventCreated}}
	w = send(r, http.MethodGet, "/applications/a1/activities", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"event_type":"created"`) {
		t.Fatalf("timeline = %d %s", w.Code, w.Body.String())
	}
}
