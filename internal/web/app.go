package web

import (
	"html/template"

	"github.com/nhle/task-tracker/internal/tracker"
)

// App holds the dependencies shared by the HTTP handlers.
type App struct {
	Tracker   *tracker.Tracker
	templates *template.Template
}

// NewApp creates an App serving t.
func NewApp(t *tracker.Tracker) *App {
	return &App{
		Tracker:   t,
		templates: newTemplates(),
	}
}
