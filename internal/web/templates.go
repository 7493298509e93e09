package web

import "html/template"

func newTemplates() *template.Template {
	return template.Must(template.New("page").Parse(pageTemplate))
}

const pageTemplate = `{{define "page"}}<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>Task Tracker</title>
  <style>
    body { margin: 0; font-family: system-ui, sans-serif; color: #1a202c; background: #f7fafc; }
    header { padding: 16px 24px; background: #2b6cb0; color: #fff; }
    header h1 { margin: 0 0 8px 0; font-size: 20px; }
    .tabs { display: flex; gap: 12px; }
    .tab { padding: 6px 12px; border-radius: 999px; color: #e2e8f0; text-decoration: none; }
    .tab.active { background: #fff; color: #2b6cb0; font-weight: 600; }
    main { display: grid; grid-template-columns: 2fr 1fr; gap: 24px; padding: 24px; }
    .tab-pane { display: none; }
    .tab-pane.active { display: block; }
    .task-card { display: block; padding: 12px; margin-bottom: 12px; border-radius: 8px; background: #fff; color: inherit; text-decoration: none; border-left: 4px solid #cbd5e0; }
    .task-card.priority-high { border-left-color: #c53030; }
    .task-card.priority-medium { border-left-color: #b7791f; }
    .task-card.priority-low { border-left-color: #2b6cb0; }
    .task-card.completed { opacity: 0.7; }
    .priority-badge { font-size: 12px; font-weight: 600; text-transform: uppercase; }
    .task-meta { display: flex; gap: 12px; color: #718096; font-size: 13px; }
    .empty-state { text-align: center; color: #718096; padding: 48px 0; }
    .error { color: #c53030; font-weight: 600; }
    form.create label { display: block; margin-top: 8px; }
    form.create input, form.create textarea, form.create select { width: 100%; }
  </style>
</head>
<body>
  <header>
    <h1>Task Tracker</h1>
    <nav class="tabs">
    {{- range .Tabs}}
      <a class="tab{{if .Active}} active{{end}}" href="/?tab={{.Tab}}">{{.Label}} ({{.Count}})</a>
    {{- end}}
    </nav>
  </header>
  <main>
    <div>
    {{- range .Tabs}}
      <section class="tab-pane{{if .Active}} active{{end}}" id="{{.Tab}}Tab">
        {{.Filter}}
        {{.List}}
      </section>
    {{- end}}
    </div>
    <aside>
      {{if .Detail}}{{.Detail}}{{end}}
      <form class="create" method="post" action="/tasks">
        <h2>New task</h2>
        {{if .Error}}<p class="error">{{.Error}}</p>{{end}}
        <label>Title <input name="title" value="{{.Form.Title}}" required></label>
        <label>Description <textarea name="description">{{.Form.Description}}</textarea></label>
        <label>Priority
          <select name="priority">
          {{- $selected := .Form.Priority}}
          {{- range .Priorities}}
            <option value="{{.Value}}"{{if eq .Value $selected}} selected{{end}}>{{.Label}}</option>
          {{- end}}
          </select>
        </label>
        <label>Category <input name="category" value="{{.Form.Category}}" placeholder="General" list="categories"></label>
        <datalist id="categories">
        {{- range .Categories}}
          <option value="{{.}}">
        {{- end}}
        </datalist>
        <button type="submit">Create</button>
      </form>
    </aside>
  </main>
</body>
</html>{{end}}`
