package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/nhle/task-tracker/internal/model"
	"github.com/nhle/task-tracker/internal/tracker"
	"github.com/nhle/task-tracker/internal/view"
)

type tabSection struct {
	Tab    model.Tab
	Label  string
	Count  int
	Active bool
	List   template.HTML
	Filter template.HTML
}

type formValues struct {
	Title       string
	Description string
	Priority    string
	Category    string
}

type pageData struct {
	ActiveTab  model.Tab
	Tabs       []tabSection
	Detail     template.HTML
	Error      string
	Form       formValues
	Priorities []view.Option
	Categories []string
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError answers err with status and logs server-side failures.
func writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	if status >= http.StatusInternalServerError {
		log.Printf("web: %s %s: %v", r.Method, r.URL.Path, err)
	}
	http.Error(w, err.Error(), status)
}

// redirectToTab answers a mutation with 303 back to the page on tab.
func redirectToTab(w http.ResponseWriter, r *http.Request, tab model.Tab) {
	http.Redirect(w, r, "/?tab="+url.QueryEscape(string(tab)), http.StatusSeeOther)
}

func tabParam(r *http.Request) model.Tab {
	if tab, ok := model.ParseTab(r.URL.Query().Get("tab")); ok {
		return tab
	}
	return model.TabActive
}

func idParam(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid task id %q", raw)
	}
	return id, nil
}

func (a *App) indexHandler(w http.ResponseWriter, r *http.Request) {
	a.Tracker.ClearSelection()
	data, err := a.page(tabParam(r), nil)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, err)
		return
	}
	a.render(w, http.StatusOK, data)
}

func (a *App) detailHandler(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}

	task, ok := a.Tracker.Select(id)
	if !ok {
		writeError(w, r, http.StatusNotFound, fmt.Errorf("task %d not found", id))
		return
	}

	data, err := a.page(task.Tab(), &task)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, err)
		return
	}
	a.render(w, http.StatusOK, data)
}

func (a *App) createTaskHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}

	in := tracker.NewTask{
		Title:       r.PostForm.Get("title"),
		Description: r.PostForm.Get("description"),
		Priority:    r.PostForm.Get("priority"),
		Category:    r.PostForm.Get("category"),
	}

	_, err := a.Tracker.Create(r.Context(), in)
	switch {
	case errors.Is(err, tracker.ErrEmptyTitle), errors.Is(err, tracker.ErrInvalidPriority):
		data, perr := a.page(model.TabActive, nil)
		if perr != nil {
			writeError(w, r, http.StatusInternalServerError, perr)
			return
		}
		data.Error = err.Error()
		data.Form = formValues(in)
		a.render(w, http.StatusBadRequest, data)
		return
	case err != nil:
		writeError(w, r, http.StatusInternalServerError, err)
		return
	}

	redirectToTab(w, r, model.TabActive)
}

func (a *App) completeTaskHandler(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}
	if _, err := a.Tracker.Complete(r.Context(), id); err != nil {
		writeError(w, r, http.StatusInternalServerError, err)
		return
	}
	redirectToTab(w, r, model.TabActive)
}

func (a *App) deleteTaskHandler(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}
	if _, err := a.Tracker.Delete(r.Context(), id); err != nil {
		writeError(w, r, http.StatusInternalServerError, err)
		return
	}
	redirectToTab(w, r, model.TabActive)
}

func (a *App) setFilterHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}

	tab := model.Tab(chi.URLParam(r, "tab"))
	if err := a.Tracker.SetFilter(tab, r.PostForm.Get("category")); err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}
	redirectToTab(w, r, tab)
}

func (a *App) listTasksHandler(w http.ResponseWriter, r *http.Request) {
	tasks := a.Tracker.Snapshot().Tasks
	if raw := r.URL.Query().Get("tab"); raw != "" {
		tab, ok := model.ParseTab(raw)
		if !ok {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown tab"})
			return
		}
		tasks = a.Tracker.Project().Tab(tab).Tasks
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	writeJSON(w, http.StatusOK, tasks)
}

// page assembles the full page for tab, with the detail panel for
// selected when non-nil.
func (a *App) page(tab model.Tab, selected *model.Task) (pageData, error) {
	p := a.Tracker.Project()

	data := pageData{
		ActiveTab:  tab,
		Form:       formValues{Priority: string(model.PriorityMedium)},
		Categories: p.Categories,
	}
	for _, pr := range model.Priorities {
		data.Priorities = append(data.Priorities, view.Option{
			Value: string(pr),
			Label: view.PriorityLabel(pr),
		})
	}

	for _, tv := range p.Tabs {
		list, err := view.RenderTaskList(tv.Tasks, string(tv.Tab)+"Tasks",
			tv.Tab == model.TabCompleted, tv.Tab == model.TabDeleted)
		if err != nil {
			return pageData{}, err
		}
		filter, err := view.RenderFilter(tv.Tab, tv.Options)
		if err != nil {
			return pageData{}, err
		}
		data.Tabs = append(data.Tabs, tabSection{
			Tab:    tv.Tab,
			Label:  view.TabLabel(tv.Tab),
			Count:  tv.Total,
			Active: tv.Tab == tab,
			List:   list,
			Filter: filter,
		})
	}

	if selected != nil {
		detail, err := view.RenderDetail(*selected)
		if err != nil {
			return pageData{}, err
		}
		data.Detail = detail
	}
	return data, nil
}

func (a *App) render(w http.ResponseWriter, status int, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := a.templates.ExecuteTemplate(w, "page", data); err != nil {
		log.Printf("web: rendering page: %v", err)
	}
}
