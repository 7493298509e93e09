package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/task-tracker/internal/model"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  Command
	}{
		{"new", Command{Kind: KindNew}},
		{"  NEW  ", Command{Kind: KindNew}},
		{"complete", Command{Kind: KindComplete}},
		{"delete", Command{Kind: KindDelete}},
		{"quit", Command{Kind: KindQuit}},
		{"q", Command{Kind: KindQuit}},
		{"help", Command{Kind: KindHelp}},
		{"tab completed", Command{Kind: KindTab, Tab: model.TabCompleted}},
		{"tab Deleted", Command{Kind: KindTab, Tab: model.TabDeleted}},
		{"active", Command{Kind: KindTab, Tab: model.TabActive}},
		{"filter Work", Command{Kind: KindFilter, Category: "Work"}},
		{"filter Side Project", Command{Kind: KindFilter, Category: "Side Project"}},
		{"filter all", Command{Kind: KindFilter, Category: model.FilterAll}},
		{"filter ALL", Command{Kind: KindFilter, Category: model.FilterAll}},
		{"filter", Command{Kind: KindFilter, Category: model.FilterAll}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse("   ")
	assert.ErrorIs(t, err, ErrEmpty)

	_, err = Parse("tab archive")
	assert.Error(t, err)

	_, err = Parse("frobnicate")
	assert.Error(t, err)
}
