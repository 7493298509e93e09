package view

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/nhle/task-tracker/internal/model"
)

var fragments = template.Must(template.New("fragments").Funcs(template.FuncMap{
	"priorityLabel":          PriorityLabel,
	"formatDate":             FormatDate,
	"formatDateTime":         FormatDateTime,
	"formatOptionalDateTime": FormatOptionalDateTime,
	"orNoDescription": func(s string) string {
		if s == "" {
			return NoDescription
		}
		return s
	},
}).Parse(fragmentTemplates))

type listData struct {
	ContainerID string
	Tasks       []model.Task
	Completed   bool
	Deleted     bool
	Empty       EmptyState
}

// RenderTaskList renders tasks as summary cards inside the container with
// the given id, or the tab's empty state when tasks is empty. All task
// text is HTML-escaped.
func RenderTaskList(tasks []model.Task, containerID string, completed, deleted bool) (template.HTML, error) {
	tab := model.TabActive
	switch {
	case deleted:
		tab = model.TabDeleted
	case completed:
		tab = model.TabCompleted
	}

	return execute("list", listData{
		ContainerID: containerID,
		Tasks:       tasks,
		Completed:   completed,
		Deleted:     deleted,
		Empty:       EmptyStateFor(tab),
	})
}

// RenderDetail renders the detail panel for a single task. Actions are
// only offered while the task is active.
func RenderDetail(task model.Task) (template.HTML, error) {
	return execute("detail", task)
}

// RenderFilter renders a tab's category filter control.
func RenderFilter(tab model.Tab, opts []Option) (template.HTML, error) {
	return execute("filter", struct {
		Tab     model.Tab
		Options []Option
	}{tab, opts})
}

func execute(name string, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := fragments.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("rendering %s: %w", name, err)
	}
	return template.HTML(buf.String()), nil
}

const fragmentTemplates = `
{{define "list"}}<div class="task-list" id="{{.ContainerID}}">
{{- if not .Tasks}}
  <div class="empty-state">
    <h3>{{.Empty.Title}}</h3>
    <p>{{.Empty.Hint}}</p>
  </div>
{{- else}}{{range .Tasks}}
  <a class="task-card{{if .Completed}} completed{{end}} priority-{{.Priority}}" data-task-id="{{.ID}}" href="/tasks/{{.ID}}">
    <div class="task-header">
      <span class="priority-badge {{.Priority}}">{{priorityLabel .Priority}}</span>
    </div>
    <h3 class="task-title">{{.Title}}</h3>
    <p class="task-description">{{orNoDescription .Description}}</p>
    <div class="task-meta">
      <span class="task-category">{{.Category}}</span>
      <span class="task-date">{{formatDate .CreatedAt}}</span>
    </div>
  </a>
{{- end}}{{end}}
</div>{{end}}

{{define "detail"}}<section class="task-detail" data-task-id="{{.ID}}">
  <h2>{{.Title}}</h2>
  <dl>
    <dt>Priority</dt><dd><span class="priority-badge {{.Priority}}">{{priorityLabel .Priority}}</span></dd>
    <dt>Category</dt><dd>{{.Category}}</dd>
    <dt>Created</dt><dd>{{formatDateTime .CreatedAt}}</dd>
    {{- if .Completed}}
    <dt>Completed</dt><dd>{{formatOptionalDateTime .CompletedAt}}</dd>
    {{- end}}
    {{- if .Deleted}}
    <dt>Deleted</dt><dd>{{formatOptionalDateTime .DeletedAt}}</dd>
    {{- end}}
  </dl>
  <p class="task-description">{{orNoDescription .Description}}</p>
  {{- if and (not .Completed) (not .Deleted)}}
  <div class="task-actions">
    <form method="post" action="/tasks/{{.ID}}/complete"><button type="submit">Complete</button></form>
    <form method="post" action="/tasks/{{.ID}}/delete"><button type="submit">Delete</button></form>
  </div>
  {{- end}}
  <a href="/">Close</a>
</section>{{end}}

{{define "filter"}}<form class="filter" method="post" action="/filters/{{.Tab}}">
  <select name="category" onchange="this.form.submit()">
  {{- range .Options}}
    <option value="{{.Value}}"{{if .Selected}} selected{{end}}>{{.Label}}</option>
  {{- end}}
  </select>
  <noscript><button type="submit">Apply</button></noscript>
</form>{{end}}
`
