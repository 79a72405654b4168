package router // package router defines how HTTP routes are registered for the client

import (
	"github.com/labstack/echo/v4"

	"github.com/myfoodmap/webclient/internal/handler"
)

// RegisterRoutes registers routes that do not require a session on the
// provided Echo instance. Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the authentication endpoints. Login, signup and
// the availability probe are unauthenticated; logout and the profile
// endpoint need a session and receive sessionMW.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, sessionMW echo.MiddlewareFunc) {
	g := e.Group("/v1/auth")
	g.POST("/login", a.Login)
	g.POST("/signup", a.Signup)
	g.GET("/check-username/:username", a.CheckUsername)

	auth := e.Group("/v1/auth", sessionMW)
	auth.POST("/logout", a.Logout)
	auth.GET("/me", a.Me)
}

// RegisterApp registers the session-scoped application endpoints: the
// review list and form flow, place search, the map surface and the
// sidebar panel. Every route runs behind the session middleware.
func RegisterApp(e *echo.Echo, r *handler.ReviewHandler, s *handler.SearchHandler, m *handler.MapHandler, sb *handler.SidebarHandler, sessionMW echo.MiddlewareFunc) {
	g := e.Group("/v1", sessionMW)

	g.GET("/reviews", r.List)
	g.POST("/reviews/submit", r.Submit)
	g.DELETE("/reviews/:id", r.Delete)

	g.GET("/search", s.Search)

	g.GET("/map", m.View)
	g.POST("/map/select", m.Select)
	g.POST("/map/carousel", m.Carousel)
	g.POST("/map/click", m.Click)
	g.POST("/map/compose", m.Compose)
	g.POST("/map/edit", m.Edit)
	g.GET("/modal", m.Modal)
	g.POST("/modal/close", m.CloseModal)

	g.GET("/sidebar", sb.View)
	g.POST("/sidebar/sort", sb.Sort)
	g.POST("/sidebar/page", sb.Page)
	g.POST("/sidebar/filter", sb.Filter)
	g.POST("/sidebar/clear", sb.Clear)
	g.POST("/sidebar/select", sb.Select)
	g.POST("/sidebar/open", sb.Open)
	g.POST("/sidebar/close", sb.Close)
}
