package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter builds the chi router with the standard middleware stack.
func NewRouter(app *App) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	RegisterRoutes(r, app)
	return r
}

// RegisterRoutes mounts the task tracker routes on r.
func RegisterRoutes(r chi.Router, app *App) {
	r.Get("/healthz", healthHandler)
	r.Get("/", app.indexHandler)
	r.Post("/tasks", app.createTaskHandler)
	r.Get("/tasks/{id}", app.detailHandler)
	r.Post("/tasks/{id}/complete", app.completeTaskHandler)
	r.Post("/tasks/{id}/delete", app.deleteTaskHandler)
	r.Post("/filters/{tab}", app.setFilterHandler)
	r.Get("/api/tasks", app.listTasksHandler)
}
