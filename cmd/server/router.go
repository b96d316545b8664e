package main

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/phrazzld/roster-api/internal/api"
	"github.com/phrazzld/roster-api/internal/api/middleware"
	"github.com/phrazzld/roster-api/internal/api/problem"
	"github.com/phrazzld/roster-api/internal/domain"
)

// setupRouter creates the router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	errs := api.NewErrorHandler(app.logger, app.config.Server.Debug)
	authMiddleware := middleware.NewAuthMiddleware(app.jwtService, app.userService, errs.Handle)

	userHandler := api.NewUserHandler(app.userService, app.logger)
	groupHandler := api.NewGroupHandler(app.groupService, app.logger)
	securityHandler := api.NewSecurityHandler(app.authService)

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Trace(app.logger))
	r.Use(app.metrics.Handler)
	r.Use(middleware.Recoverer(errs.Handle))
	if origins := app.config.CORS.AllowedOrigins; len(origins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   origins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			ExposedHeaders:   []string{"Location", middleware.TraceHeader},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}

	// Must be set before subrouters are mounted so they inherit them.
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		errs.Handle(w, r, problem.NotFound(fmt.Sprintf("No route found for %q", r.Method+" "+r.URL.Path)))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		errs.Handle(w, r, problem.MethodNotAllowed(fmt.Sprintf("Method %s is not allowed for %q", r.Method, r.URL.Path)))
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})
	r.Handle("/metrics", promhttp.HandlerFor(app.registry, promhttp.HandlerOpts{}))

	routes := func(r chi.Router) {
		r.Post("/login", errs.Wrap(securityHandler.Login))

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)
			r.Use(authMiddleware.RequireRole(domain.RoleAdmin))

			r.Post("/users", errs.Wrap(userHandler.Create))
			r.Get("/users/{id}", errs.Wrap(userHandler.Get))
			r.Delete("/users/{id}", errs.Wrap(userHandler.Delete))
			r.Post("/users/{id}/assign-to-group", errs.Wrap(userHandler.AssignToGroup))
			r.Post("/users/{id}/remove-from-group", errs.Wrap(userHandler.RemoveFromGroup))

			r.Post("/groups", errs.Wrap(groupHandler.Create))
			r.Get("/groups/{id}", errs.Wrap(groupHandler.Get))
			r.Delete("/groups/{id}", errs.Wrap(groupHandler.Delete))
		})
	}

	if base := app.config.Server.BasePath; base != "" {
		r.Route(base, routes)
	} else {
		r.Group(routes)
	}

	return r
}
