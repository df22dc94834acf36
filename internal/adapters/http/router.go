// Package http provides the inbound HTTP adapter including routing and server lifecycle.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jsamuelsen11/todo-service/internal/adapters/http/handlers"
)

// NewRouter creates an HTTP handler with all application routes registered.
// Middleware is applied globally in the order given.
func NewRouter(
	todoHandler *handlers.TodoHandler,
	labelHandler *handlers.LabelHandler,
	rootHandler *handlers.RootHandler,
	healthHandler *handlers.HealthHandler,
	middlewares ...func(http.Handler) http.Handler,
) http.Handler {
	r := chi.NewRouter()

	for _, mw := range middlewares {
		r.Use(mw)
	}

	r.Get("/", rootHandler.Hello)
	r.Get("/flaky", rootHandler.Flaky)

	r.Get("/health/live", healthHandler.Liveness)
	r.Get("/health/ready", healthHandler.Readiness)

	r.Route("/todos", func(r chi.Router) {
		r.Get("/", todoHandler.ListTodos)
		r.Post("/", handlers.ValidatedJSON(todoHandler.CreateTodo))
		r.Get("/{id}", todoHandler.GetTodo)
		r.Patch("/{id}", handlers.ValidatedJSON(todoHandler.UpdateTodo))
		r.Delete("/{id}", todoHandler.DeleteTodo)
	})

	r.Route("/labels", func(r chi.Router) {
		r.Get("/", labelHandler.ListLabels)
		r.Post("/", handlers.ValidatedJSON(labelHandler.CreateLabel))
		r.Delete("/{id}", labelHandler.DeleteLabel)
	})

	return r
}
