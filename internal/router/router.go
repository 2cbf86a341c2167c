package router

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/landahan-pos/console/internal/config"
	"github.com/landahan-pos/console/internal/handler"
	mw "github.com/landahan-pos/console/internal/middleware"
	"github.com/landahan-pos/console/internal/session"
	"github.com/landahan-pos/console/internal/view"
	"github.com/landahan-pos/console/internal/ws"
)

// New creates a Chi router with all console routes wired up. Login and
// the OTP reset flow are public; every page fragment and action sits
// behind the console session gate.
func New(cfg *config.Config, manager *session.Manager, hub *ws.Hub, views *view.Engine) chi.Router {
	r := chi.NewRouter()

	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300, // 5 minutes
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Auth routes (public; they establish the session themselves)
	authHandler := handler.NewAuthHandler(manager, cfg)
	authHandler.RegisterRoutes(r)

	// WebSocket route; authorizes via the session cookie itself
	r.Get("/ws/notifications", func(w http.ResponseWriter, r *http.Request) {
		ws.ServeWS(hub, sessionAuthorizer(manager, cfg.SessionCookie), w, r)
	})

	// Session-gated routes
	r.Group(func(r chi.Router) {
		r.Use(mw.RequireSession(manager, cfg.SessionCookie, cfg.LoginRedirect))

		authHandler.RegisterSessionRoutes(r)

		handler.NewInventoryHandler(views).RegisterRoutes(r)
		handler.NewSellersHandler(views).RegisterRoutes(r)
		handler.NewProfitHandler(views).RegisterRoutes(r)
		handler.NewForecastHandler().RegisterRoutes(r)
		handler.NewPOSHandler().RegisterRoutes(r)
		handler.NewNotificationsHandler(views).RegisterRoutes(r)
	})

	log.Println("Router initialized with all handlers")
	return r
}

// sessionAuthorizer resolves the websocket upgrade request to a session
// room keyed by the console session ID.
func sessionAuthorizer(manager *session.Manager, cookieName string) ws.Authorizer {
	return func(r *http.Request) (string, error) {
		cookie, err := r.Cookie(cookieName)
		if err != nil {
			return "", err
		}
		state, err := manager.Lookup(cookie.Value)
		if err != nil {
			return "", err
		}
		return state.ID.String(), nil
	}
}
