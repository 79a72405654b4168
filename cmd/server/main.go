package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/myfoodmap/webclient/internal/app"
	"github.com/myfoodmap/webclient/internal/config"
	"github.com/myfoodmap/webclient/internal/handler"
	"github.com/myfoodmap/webclient/internal/middleware"
	"github.com/myfoodmap/webclient/internal/places"
	"github.com/myfoodmap/webclient/internal/router"
	"github.com/myfoodmap/webclient/internal/session"
	"github.com/myfoodmap/webclient/internal/upstream"
)

func main() {
	_ = godotenv.Load() // .env is optional; real environments set vars directly
	cfg := config.Load()

	sessionTTL := time.Duration(cfg.SessionTTLMin) * time.Minute
	var sessions session.Store
	if rdb := config.NewRedisClient(); rdb != nil {
		sessions = session.NewRedisStore(rdb, sessionTTL)
		log.Printf("session store: redis")
	} else {
		sessions = session.NewMemoryStore(sessionTTL)
		log.Printf("session store: in-memory (redis unavailable)")
	}

	backend := upstream.New(cfg.UpstreamBaseURL)
	kakao := places.New(cfg.KakaoAPIKey)

	states := app.NewRegistry(time.Duration(cfg.AppIdleMin) * time.Minute)
	states.StartJanitor(context.Background(), 5*time.Minute)

	newState := func(sess *session.Session) *app.State {
		return app.NewState(backend, kakao, sess.Token, sess.User)
	}
	sessionMW := middleware.SessionAuth(sessions, states, newState)

	authH := &handler.AuthHandler{
		Upstream:   backend,
		Sessions:   sessions,
		States:     states,
		NewState:   newState,
		SessionTTL: sessionTTL,
	}
	reviewH := &handler.ReviewHandler{Sessions: sessions, States: states}
	searchH := &handler.SearchHandler{Sessions: sessions, States: states}
	mapH := &handler.MapHandler{Sessions: sessions, States: states}
	sidebarH := &handler.SidebarHandler{Sessions: sessions, States: states}

	e := echo.New()
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, sessionMW)
	router.RegisterApp(e, reviewH, searchH, mapH, sidebarH, sessionMW)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
