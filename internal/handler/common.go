package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/myfoodmap/webclient/internal/app"
	"github.com/myfoodmap/webclient/internal/editor"
	"github.com/myfoodmap/webclient/internal/mapview"
	"github.com/myfoodmap/webclient/internal/middleware"
	"github.com/myfoodmap/webclient/internal/review"
	"github.com/myfoodmap/webclient/internal/search"
	"github.com/myfoodmap/webclient/internal/session"
	"github.com/myfoodmap/webclient/internal/upstream"
)

// fail maps an error from the stores onto an HTTP response. Authorization
// expiry is the distinct, higher-priority case: it tears the session down
// and forces the login redirect regardless of which request triggered it.
// Validation failures become 400s with their message; upstream errors keep
// the server's own message so the user sees it verbatim.
func fail(c echo.Context, store session.Store, states *app.Registry, err error) error {
	if errors.Is(err, upstream.ErrSessionExpired) {
		if sess := middleware.SessionFrom(c); sess != nil {
			middleware.Teardown(c, store, states, sess.ID)
		}
		return c.JSON(http.StatusUnauthorized, echo.Map{
			"error":    "Your session has expired. Please log in again.",
			"redirect": "/login",
		})
	}

	var apiErr *upstream.APIError
	if errors.As(err, &apiErr) {
		status := apiErr.Status
		if status < 400 || status > 599 {
			status = http.StatusBadGateway
		}
		return c.JSON(status, echo.Map{"error": apiErr.Message})
	}

	switch {
	case errors.Is(err, editor.ErrRequiredFields),
		errors.Is(err, editor.ErrClosed),
		errors.Is(err, review.ErrNoPlace),
		errors.Is(err, review.ErrConfirmationRequired),
		errors.Is(err, search.ErrEmptyKeyword),
		errors.Is(err, search.ErrMapNotReady):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, editor.ErrBusy):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	case errors.Is(err, mapview.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	}
	return c.JSON(http.StatusBadGateway, echo.Map{"error": "request failed"})
}
