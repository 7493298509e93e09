package importer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/nhle/task-tracker/internal/model"
	"github.com/nhle/task-tracker/internal/tracker"
)

// Supported export formats.
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// ErrUnknownFormat is returned by Export for formats other than yaml/json.
var ErrUnknownFormat = errors.New("unknown export format")

// YAMLTask represents a single task in the YAML input.
type YAMLTask struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description,omitempty"`
	Priority    string `yaml:"priority,omitempty"`
	Category    string `yaml:"category,omitempty"`
}

// YAMLInput represents the root structure of the YAML input.
type YAMLInput struct {
	Tasks []YAMLTask `yaml:"tasks"`
}

// yamlExport is the root written by Export. Its tasks key matches
// YAMLInput so an export can be re-imported.
type yamlExport struct {
	Tasks []model.Task `yaml:"tasks"`
}

// Import parses a YAML document and creates each task through the
// tracker, so defaults and validation apply. It stops at the first entry
// that fails and returns the number of tasks created before it.
func Import(ctx context.Context, t *tracker.Tracker, data []byte) (int, error) {
	var input YAMLInput
	if err := yaml.Unmarshal(data, &input); err != nil {
		return 0, fmt.Errorf("YAML parse error: %w", err)
	}

	if len(input.Tasks) == 0 {
		return 0, fmt.Errorf("no tasks found in YAML")
	}

	count := 0
	for i, yt := range input.Tasks {
		priority := yt.Priority
		if priority == "" {
			priority = string(model.PriorityMedium)
		}

		_, err := t.Create(ctx, tracker.NewTask{
			Title:       yt.Title,
			Description: yt.Description,
			Priority:    priority,
			Category:    yt.Category,
		})
		if err != nil {
			return count, fmt.Errorf("import task %d (%q): %w", i+1, yt.Title, err)
		}
		count++
	}
	return count, nil
}

// Export writes tasks to w in the given format. JSON output is the same
// array the repository persists.
func Export(w io.Writer, tasks []model.Task, format string) error {
	if tasks == nil {
		tasks = []model.Task{}
	}

	switch format {
	case FormatYAML, "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(yamlExport{Tasks: tasks}); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(tasks); err != nil {
			return fmt.Errorf("encoding json: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}
