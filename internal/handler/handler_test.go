package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/myfoodmap/webclient/internal/app"
	"github.com/myfoodmap/webclient/internal/middleware"
	"github.com/myfoodmap/webclient/internal/model"
	"github.com/myfoodmap/webclient/internal/places"
	"github.com/myfoodmap/webclient/internal/session"
	"github.com/myfoodmap/webclient/internal/upstream"
)

// fakeAuth is a scriptable AuthGateway.
type fakeAuth struct {
	loginErr  error
	available bool
	signups   int
}

func (f *fakeAuth) Login(_ context.Context, username, _ string) (string, model.User, string, error) {
	if f.loginErr != nil {
		return "", model.User{}, "", f.loginErr
	}
	return "tok-" + username, model.User{Username: username, Nickname: "Nick"}, "welcome back", nil
}

func (f *fakeAuth) Signup(_ context.Context, _, _, _ string) (string, error) {
	f.signups++
	return "account created", nil
}

func (f *fakeAuth) CheckUsername(_ context.Context, _ string) (bool, error) {
	return f.available, nil
}

// fakeReviews is a scriptable review.Gateway.
type fakeReviews struct {
	deleteErr error
	deletes   int
}

func (f *fakeReviews) FetchReviews(_ context.Context, _, _, _, _ string) ([]model.Review, model.Stats, error) {
	return nil, model.Stats{}, nil
}
func (f *fakeReviews) CreateReview(_ context.Context, _ string, _ upstream.CreatePayload) error {
	return nil
}
func (f *fakeReviews) UpdateReview(_ context.Context, _ string, _ int64, _ upstream.UpdatePayload) error {
	return nil
}
func (f *fakeReviews) DeleteReview(_ context.Context, _ string, _ int64) error {
	f.deletes++
	return f.deleteErr
}
func (f *fakeReviews) UploadPhoto(_ context.Context, _, _ string, _ io.Reader) (string, error) {
	return "", nil
}

type noSearch struct{}

func (noSearch) SearchKeyword(_ context.Context, _ string, _ places.SearchOptions) ([]model.Place, error) {
	return nil, nil
}

type env struct {
	e        *echo.Echo
	sessions session.Store
	states   *app.Registry
	auth     *fakeAuth
	reviews  *fakeReviews
}

func newEnv(t *testing.T) *env {
	t.Helper()
	fr := &fakeReviews{}
	sessions := session.NewMemoryStore(time.Hour)
	states := app.NewRegistry(time.Hour)
	newState := func(s *session.Session) *app.State {
		return app.NewState(fr, noSearch{}, s.Token, s.User)
	}

	ah := &AuthHandler{
		Upstream:   &fakeAuth{available: true},
		Sessions:   sessions,
		States:     states,
		NewState:   newState,
		SessionTTL: time.Hour,
	}
	rh := &ReviewHandler{Sessions: sessions, States: states}

	e := echo.New()
	e.POST("/v1/auth/login", ah.Login)
	e.POST("/v1/auth/signup", ah.Signup)
	authed := e.Group("/v1", middleware.SessionAuth(sessions, states, newState))
	authed.DELETE("/reviews/:id", rh.Delete)
	authed.GET("/reviews", rh.List)

	return &env{e: e, sessions: sessions, states: states, auth: ah.Upstream.(*fakeAuth), reviews: fr}
}

func (v *env) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	v.e.ServeHTTP(rec, req)
	return rec
}

func (v *env) login(t *testing.T) *http.Cookie {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/login",
		strings.NewReader(`{"username":"alice","password":"pw"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := v.do(req)
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d body %s", rec.Code, rec.Body)
	}
	for _, c := range rec.Result().Cookies() {
		if c.Name == middleware.CookieName && c.Value != "" {
			return c
		}
	}
	t.Fatal("login did not set the session cookie")
	return nil
}

func TestLoginEstablishesSessionAndState(t *testing.T) {
	v := newEnv(t)
	cookie := v.login(t)

	sess, err := v.sessions.Get(context.Background(), cookie.Value)
	if err != nil {
		t.Fatalf("session not persisted: %v", err)
	}
	if sess.Token != "tok-alice" || sess.User.Username != "alice" {
		t.Errorf("session = %+v", sess)
	}
	if _, ok := v.states.Get(cookie.Value); !ok {
		t.Error("login must build the session's UI state")
	}
}

func TestLoginValidation(t *testing.T) {
	v := newEnv(t)
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/login",
		strings.NewReader(`{"username":"  ","password":""}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if rec := v.do(req); rec.Code != http.StatusBadRequest {
		t.Errorf("blank credentials status = %d, want 400", rec.Code)
	}
}

func TestSignupPasswordMismatchStaysLocal(t *testing.T) {
	v := newEnv(t)
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/signup",
		strings.NewReader(`{"username":"bob","nickname":"Bob","password":"a","confirmPassword":"b"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := v.do(req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("mismatch status = %d, want 400", rec.Code)
	}
	if v.auth.signups != 0 {
		t.Error("a password mismatch must not reach the backend")
	}
}

func TestSignupTakenUsername(t *testing.T) {
	v := newEnv(t)
	v.auth.available = false
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/signup",
		strings.NewReader(`{"username":"bob","nickname":"Bob","password":"a","confirmPassword":"a"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := v.do(req)
	if rec.Code != http.StatusConflict {
		t.Errorf("taken username status = %d, want 409", rec.Code)
	}
	if v.auth.signups != 0 {
		t.Error("an unavailable username must not be registered")
	}
}

func TestRequestsWithoutSessionRedirectToLogin(t *testing.T) {
	v := newEnv(t)
	rec := v.do(httptest.NewRequest(http.MethodGet, "/v1/reviews", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	var body map[string]string
	json.Unmarshal(rec.Body.Bytes(), &body)
	if body["redirect"] != "/login" {
		t.Errorf("body = %v, want a login redirect", body)
	}
}

func TestUpstreamForbiddenTearsSessionDown(t *testing.T) {
	v := newEnv(t)
	cookie := v.login(t)
	v.reviews.deleteErr = upstream.ErrSessionExpired

	req := httptest.NewRequest(http.MethodDelete, "/v1/reviews/7?confirm=true", nil)
	req.AddCookie(cookie)
	rec := v.do(req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	var body map[string]string
	json.Unmarshal(rec.Body.Bytes(), &body)
	if body["redirect"] != "/login" {
		t.Errorf("body = %v, want a login redirect", body)
	}
	if _, err := v.sessions.Get(context.Background(), cookie.Value); !errors.Is(err, session.ErrNotFound) {
		t.Error("the persisted session must be gone after a 403")
	}
	if _, ok := v.states.Get(cookie.Value); ok {
		t.Error("the UI state must be gone after a 403")
	}

	// The dead cookie now behaves like no session at all.
	req = httptest.NewRequest(http.MethodGet, "/v1/reviews", nil)
	req.AddCookie(cookie)
	if rec := v.do(req); rec.Code != http.StatusUnauthorized {
		t.Errorf("follow-up status = %d, want 401", rec.Code)
	}
}

func TestDeleteRequiresConfirmParam(t *testing.T) {
	v := newEnv(t)
	cookie := v.login(t)

	req := httptest.NewRequest(http.MethodDelete, "/v1/reviews/7", nil)
	req.AddCookie(cookie)
	rec := v.do(req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unconfirmed delete status = %d, want 400", rec.Code)
	}
	if v.reviews.deletes != 0 {
		t.Error("unconfirmed delete must not reach the backend")
	}
}

func TestListRejectsMalformedDates(t *testing.T) {
	v := newEnv(t)
	cookie := v.login(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/reviews?startDate=junk", nil)
	req.AddCookie(cookie)
	if rec := v.do(req); rec.Code != http.StatusBadRequest {
		t.Errorf("malformed date status = %d, want 400", rec.Code)
	}
}
