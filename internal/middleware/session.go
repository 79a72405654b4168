package middleware // package middleware contains reusable HTTP middleware for the client

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/myfoodmap/webclient/internal/app"
	"github.com/myfoodmap/webclient/internal/session"
)

// CookieName is the session cookie the browser carries between requests.
const CookieName = "sid"

// Context keys under which the middleware exposes the resolved session
// and its UI state to handlers.
const (
	ctxSession = "session"
	ctxState   = "state"
)

// SessionAuth resolves the session cookie into a session and its UI state
// and injects both into the request context. Requests without a valid
// session, or whose bearer token has already expired, are answered with
// 401 and the login redirect; an expired token also tears the session
// down so the teardown happens exactly once per occurrence. newState
// rebuilds UI state when the registry has evicted it.
func SessionAuth(store session.Store, states *app.Registry, newState func(*session.Session) *app.State) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(CookieName)
			if err != nil || cookie.Value == "" {
				return loginRequired(c, "login required")
			}
			sess, err := store.Get(c.Request().Context(), cookie.Value)
			if errors.Is(err, session.ErrNotFound) {
				ExpireCookie(c)
				return loginRequired(c, "login required")
			}
			if err != nil {
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "session lookup failed"})
			}
			if session.TokenExpired(sess.Token, time.Now()) {
				Teardown(c, store, states, sess.ID)
				return loginRequired(c, "Your session has expired. Please log in again.")
			}
			st, ok := states.Get(sess.ID)
			if !ok {
				st = newState(sess)
				states.Put(sess.ID, st)
			}
			c.Set(ctxSession, sess)
			c.Set(ctxState, st)
			return next(c)
		}
	}
}

// SessionFrom returns the session injected by SessionAuth.
func SessionFrom(c echo.Context) *session.Session {
	sess, _ := c.Get(ctxSession).(*session.Session)
	return sess
}

// StateFrom returns the UI state injected by SessionAuth.
func StateFrom(c echo.Context) *app.State {
	st, _ := c.Get(ctxState).(*app.State)
	return st
}

// Teardown clears every trace of a session: the persisted session, its UI
// state, and the browser cookie. Store deletion is idempotent, so a
// concurrent teardown cannot double-fire side effects.
func Teardown(c echo.Context, store session.Store, states *app.Registry, sessionID string) {
	_ = store.Delete(c.Request().Context(), sessionID)
	states.Delete(sessionID)
	ExpireCookie(c)
}

// ExpireCookie tells the browser to drop the session cookie.
func ExpireCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

// loginRequired is the single shape of every auth rejection: the client
// must navigate to the login view.
func loginRequired(c echo.Context, msg string) error {
	return c.JSON(http.StatusUnauthorized, echo.Map{"error": msg, "redirect": "/login"})
}
