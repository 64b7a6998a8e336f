package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/userbase-api/internal/api"
	apiMiddleware "github.com/phrazzld/userbase-api/internal/api/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// setupRouter creates the router with all middleware and routes.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(apiMiddleware.TraceMiddleware(app.logger))
	r.Use(chimiddleware.Recoverer)

	metrics, err := apiMiddleware.NewMetrics(app.registerer)
	if err != nil {
		app.logger.Error("HTTP metrics disabled", "error", err)
	} else {
		r.Use(metrics.Handler)
	}

	authHandler := api.NewAuthHandler(app.userService, app.jwtService, app.tokenLifetime(), app.logger)
	userHandler := api.NewUserHandler(app.userService, app.logger)
	healthHandler := api.NewHealthHandler(app.db)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Post("/users", userHandler.CreateUser)
			r.Get("/users", userHandler.ListUsers)
			r.Get("/users/by-email", userHandler.GetUserByEmail)
			r.Get("/users/{id}", userHandler.GetUser)
			r.Patch("/users/{id}", userHandler.UpdateUser)
			r.Delete("/users/{id}", userHandler.DeleteUser)
		})
	})

	r.Get("/health", healthHandler.Check)
	r.Handle("/metrics", promhttp.HandlerFor(app.gatherer, promhttp.HandlerOpts{}))

	return r
}
