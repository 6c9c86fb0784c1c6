package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	calchandler "usersvc/internal/http/handlers/calc"
	"usersvc/internal/http/handlers/health"
	userhandler "usersvc/internal/http/handlers/user"
	"usersvc/internal/http/responses"
	"usersvc/internal/logging"
)

func NewRouter(
	logger logging.Logger,
	healthHandler *health.Handler,
	calcHandler *calchandler.Handler,
	userHandler *userhandler.Handler,
) chi.Router {
	r := chi.NewRouter()

	useBaseMiddlewares(r, logger)

	// Health
	r.Get("/health", healthHandler.Check)
	r.Get("/health/db", healthHandler.CheckDB)

	// Calculator warm-up
	r.Get("/calculate", calcHandler.Calculate)

	// Users resource
	r.Route("/users", func(r chi.Router) {
		r.Get("/", userHandler.List)
		r.Post("/", userHandler.Create)
		r.Get("/{id}", userHandler.GetByID)
		r.Put("/{id}", userHandler.Update)
		r.Delete("/{id}", userHandler.Delete)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		responses.WriteNotFound(w, r)
	})

	return r
}
