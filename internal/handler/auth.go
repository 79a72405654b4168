package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/myfoodmap/webclient/internal/app"
	"github.com/myfoodmap/webclient/internal/middleware"
	"github.com/myfoodmap/webclient/internal/model"
	"github.com/myfoodmap/webclient/internal/session"
)

// AuthGateway is the slice of the upstream client the auth endpoints use.
type AuthGateway interface {
	Login(ctx context.Context, username, password string) (string, model.User, string, error)
	Signup(ctx context.Context, username, nickname, password string) (string, error)
	CheckUsername(ctx context.Context, username string) (bool, error)
}

// AuthHandler bundles dependencies for the auth endpoints.
type AuthHandler struct {
	Upstream   AuthGateway
	Sessions   session.Store
	States     *app.Registry
	NewState   func(*session.Session) *app.State
	SessionTTL time.Duration
}

// ----- DTOs -----

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type signupReq struct {
	Username        string `json:"username"`
	Nickname        string `json:"nickname"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type logoutReq struct {
	Confirm bool `json:"confirm"`
}

// Login exchanges credentials for a backend token, persists the session,
// sets the session cookie, and builds the UI state the home screen needs.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username and password are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	token, user, message, err := h.Upstream.Login(ctx, req.Username, req.Password)
	if err != nil {
		return fail(c, h.Sessions, h.States, err)
	}

	sess := session.New(token, user)
	if err := h.Sessions.Save(ctx, sess); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not persist session"})
	}
	h.States.Put(sess.ID, h.NewState(sess))

	c.SetCookie(&http.Cookie{
		Name:     middleware.CookieName,
		Value:    sess.ID,
		Path:     "/",
		MaxAge:   int(h.SessionTTL / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return c.JSON(http.StatusOK, echo.Map{"user": user, "message": message})
}

// Signup validates locally first (blank fields and a password mismatch
// never reach the network), then re-checks username availability against
// the backend before registering. The backend's message is passed through.
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Username = strings.TrimSpace(req.Username)
	req.Nickname = strings.TrimSpace(req.Nickname)
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username and password are required"})
	}
	if req.Password != req.ConfirmPassword {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "passwords do not match"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	available, err := h.Upstream.CheckUsername(ctx, req.Username)
	if err != nil {
		return fail(c, h.Sessions, h.States, err)
	}
	if !available {
		return c.JSON(http.StatusConflict, echo.Map{"error": "username is already in use"})
	}

	message, err := h.Upstream.Signup(ctx, req.Username, req.Nickname, req.Password)
	if err != nil {
		return fail(c, h.Sessions, h.States, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": message})
}

// CheckUsername proxies the availability probe the signup screen uses.
func (h *AuthHandler) CheckUsername(c echo.Context) error {
	username := strings.TrimSpace(c.Param("username"))
	if username == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	available, err := h.Upstream.CheckUsername(ctx, username)
	if err != nil {
		return fail(c, h.Sessions, h.States, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"available": available})
}

// Logout requires an explicit confirmation, then tears the session down.
func (h *AuthHandler) Logout(c echo.Context) error {
	var req logoutReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if !req.Confirm {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "confirmation required"})
	}
	sess := middleware.SessionFrom(c)
	middleware.Teardown(c, h.Sessions, h.States, sess.ID)
	return c.JSON(http.StatusOK, echo.Map{"message": "logged out"})
}

// Me returns the authenticated user's profile.
func (h *AuthHandler) Me(c echo.Context) error {
	sess := middleware.SessionFrom(c)
	return c.JSON(http.StatusOK, echo.Map{"user": sess.User})
}
