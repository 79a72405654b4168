package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/myfoodmap/webclient/internal/app"
	"github.com/myfoodmap/webclient/internal/middleware"
	"github.com/myfoodmap/webclient/internal/search"
	"github.com/myfoodmap/webclient/internal/session"
)

// SearchHandler serves the keyword place search.
type SearchHandler struct {
	Sessions session.Store
	States   *app.Registry
}

// Search runs the nearby-first keyword search. Validation problems are
// 400s; a transport failure is reported without touching the current
// result set; a completion superseded by a newer search reports nothing.
func (h *SearchHandler) Search(c echo.Context) error {
	st := middleware.StateFrom(c)
	outcome, err := st.Search.Search(c.Request().Context(), c.QueryParam("keyword"))
	if err != nil {
		if errors.Is(err, search.ErrEmptyKeyword) || errors.Is(err, search.ErrMapNotReady) {
			return fail(c, h.Sessions, h.States, err)
		}
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "search failed"})
	}
	if outcome.Stale {
		return c.JSON(http.StatusOK, echo.Map{"superseded": true})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"places":   outcome.Places,
		"notice":   outcome.Notice,
		"viewport": st.Map.Viewport.Snapshot(),
	})
}
