package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/teamplan/teamplan/internal/api/handler"
	"github.com/teamplan/teamplan/internal/api/middleware"
	"github.com/teamplan/teamplan/internal/event"
	"github.com/teamplan/teamplan/internal/member"
)

// RouterDeps holds all dependencies needed by the router.
type RouterDeps struct {
	Members  member.Repository
	Events   event.Repository
	DBPinger handler.DBPinger
	Version  string
}

// NewRouter creates and configures a Chi router with all middleware and routes.
func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery)
	r.Use(chimiddleware.Logger)

	healthHandler := handler.NewHealthHandler(deps.DBPinger, deps.Version)
	r.Get("/health", healthHandler.ServeHTTP)

	memberHandler := handler.NewMemberHandler(deps.Members)
	eventHandler := handler.NewEventHandler(deps.Events)

	r.Route("/api", func(r chi.Router) {
		r.Route("/members", func(r chi.Router) {
			r.Get("/", memberHandler.List)
			r.Post("/", memberHandler.Create)
			r.Delete("/{id}", memberHandler.Delete)
		})
		r.Route("/events", func(r chi.Router) {
			r.Get("/", eventHandler.List)
			r.Post("/", eventHandler.Create)
			r.Put("/{id}", eventHandler.Update)
			r.Delete("/{id}", eventHandler.Delete)
		})
	})

	return r
}
