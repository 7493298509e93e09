package command

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nhle/task-tracker/internal/model"
)

// ErrEmpty is returned for blank input.
var ErrEmpty = errors.New("empty command")

// Kind identifies a palette command.
type Kind int

const (
	KindNew Kind = iota
	KindComplete
	KindDelete
	KindTab
	KindFilter
	KindHelp
	KindQuit
)

// Command is a parsed palette entry.
type Command struct {
	Kind Kind

	// Tab is set for KindTab.
	Tab model.Tab

	// Category is set for KindFilter. "all" clears the filter.
	Category string
}

// Parse turns palette input into a Command. Filter categories keep their
// case and inner spacing since category matching is exact.
func Parse(input string) (Command, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return Command{}, ErrEmpty
	}

	name, arg, _ := strings.Cut(input, " ")
	arg = strings.TrimSpace(arg)

	switch strings.ToLower(name) {
	case "new", "add", "n":
		return Command{Kind: KindNew}, nil
	case "complete", "done", "x":
		return Command{Kind: KindComplete}, nil
	case "delete", "rm", "d":
		return Command{Kind: KindDelete}, nil
	case "help", "?":
		return Command{Kind: KindHelp}, nil
	case "quit", "q", "exit":
		return Command{Kind: KindQuit}, nil
	case "tab":
		tab, ok := model.ParseTab(arg)
		if !ok {
			return Command{}, fmt.Errorf("unknown tab %q", arg)
		}
		return Command{Kind: KindTab, Tab: tab}, nil
	case "active", "completed", "deleted":
		tab, _ := model.ParseTab(name)
		return Command{Kind: KindTab, Tab: tab}, nil
	case "filter":
		if arg == "" || strings.EqualFold(arg, model.FilterAll) {
			return Command{Kind: KindFilter, Category: model.FilterAll}, nil
		}
		return Command{Kind: KindFilter, Category: arg}, nil
	default:
		return Command{}, fmt.Errorf("unknown command %q", name)
	}
}
