package notation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/giantt/pkg/types"
)

func TestParseFullLine(t *testing.T) {
	line := `○ learn_python!! 3mo "Finally learn python" {"Programming","Education"} personal_development >>> ⊢[git_basics] ►[django_proj,flask_app]`

	item, err := Parse(line, false)
	require.NoError(t, err)

	assert.Equal(t, "learn_python", item.ID)
	assert.Equal(t, types.StatusNotStarted, item.Status)
	assert.Equal(t, types.PriorityHigh, item.Priority)
	assert.Equal(t, "3mo", item.Duration.String())
	assert.Equal(t, "Finally learn python", item.Title)
	assert.Equal(t, []string{"Programming", "Education"}, item.Charts)
	assert.Equal(t, []string{"personal_development"}, item.Tags)
	assert.Equal(t, []string{"git_basics"}, item.Relations[types.RelationRequires])
	assert.Equal(t, []string{"django_proj", "flask_app"}, item.Relations[types.RelationBlocks])
	assert.False(t, item.Occlude)
}

func TestParseMinimalLine(t *testing.T) {
	item, err := Parse(`● done 0s "All done" {}`, true)
	require.NoError(t, err)

	assert.Equal(t, "done", item.ID)
	assert.Equal(t, types.StatusCompleted, item.Status)
	assert.Equal(t, types.PriorityNeutral, item.Priority)
	assert.True(t, item.Duration.IsZero())
	assert.Empty(t, item.Charts)
	assert.Empty(t, item.Tags)
	assert.Empty(t, item.Relations)
	assert.True(t, item.Occlude)
}

func TestParsePriorityGlyphs(t *testing.T) {
	tests := []struct {
		token    string
		id       string
		priority types.Priority
	}{
		{"task,,,", "task", types.PriorityLowest},
		{"task...", "task", types.PriorityLow},
		{"task", "task", types.PriorityNeutral},
		{"task?", "task", types.PriorityUnsure},
		{"task!", "task", types.PriorityMedium},
		{"task!!", "task", types.PriorityHigh},
		{"task!!!", "task", types.PriorityCritical},
	}
	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			item, err := Parse(`○ `+tt.token+` 1d "T" {}`, false)
			require.NoError(t, err)
			assert.Equal(t, tt.id, item.ID)
			assert.Equal(t, tt.priority, item.Priority)
		})
	}
}

func TestParseConstraintsAndComments(t *testing.T) {
	line := `◑ ship! 2w "Ship the release" {"Work"} release,urgent @@@ due(2026-10-01,severe) every(1w,escalate:!,stack) # handle with care ### synced from planner`

	item, err := Parse(line, false)
	require.NoError(t, err)

	assert.Equal(t, types.StatusInProgress, item.Status)
	assert.Equal(t, []string{"release", "urgent"}, item.Tags)
	require.Len(t, item.Constraints, 2)
	assert.Equal(t, types.ConstraintDeadline, item.Constraints[0].Kind)
	assert.Equal(t, "2026-10-01", item.Constraints[0].DueDate)
	assert.Equal(t, types.ConstraintRecurring, item.Constraints[1].Kind)
	assert.True(t, item.Constraints[1].Stack)
	assert.Equal(t, "handle with care", item.UserComment)
	assert.Equal(t, "synced from planner", item.AutoComment)
}

func TestParseAutoCommentOnly(t *testing.T) {
	item, err := Parse(`○ x 1d "X" {} ### generated`, false)
	require.NoError(t, err)
	assert.Equal(t, "", item.UserComment)
	assert.Equal(t, "generated", item.AutoComment)
}

func TestParseTitleWithEscapes(t *testing.T) {
	item, err := Parse(`○ quoting 1d "Say \"hello\" \\ there" {}`, false)
	require.NoError(t, err)
	assert.Equal(t, `Say "hello" \ there`, item.Title)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"empty", ""},
		{"bad status glyph", `x task 1d "T" {}`},
		{"bad id", `○ bad-id 1d "T" {}`},
		{"missing duration", `○ task`},
		{"bad duration", `○ task 1z "T" {}`},
		{"missing title", `○ task 1d {}`},
		{"unterminated title", `○ task 1d "T {}`},
		{"missing charts", `○ task 1d "T"`},
		{"unterminated charts", `○ task 1d "T" {"a"`},
		{"uppercase tag", `○ task 1d "T" {} Bad`},
		{"bad relation symbol", `○ task 1d "T" {} >>> x[y]`},
		{"relation missing targets", `○ task 1d "T" {} >>> ⊢[]`},
		{"unterminated relation", `○ task 1d "T" {} >>> ⊢[a`},
		{"bad constraint", `○ task 1d "T" {} @@@ nope(1d,severe)`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.line, false)
			require.Error(t, err)
			var perr *types.ParseError
			assert.ErrorAs(t, err, &perr)
		})
	}
}

func TestRoundTrip(t *testing.T) {
	lines := []string{
		`○ learn_python!! 3mo "Finally learn python" {"Programming","Education"} personal_development >>> ⊢[git_basics] ►[django_proj,flask_app]`,
		`● done 0s "All done" {}`,
		`◑ ship! 2w "Ship the release" {"Work"} release,urgent @@@ due(2026-10-01,severe) # careful ### auto`,
		`⊘ blocked... 1.5h "Stuck \"here\"" {"Ops"} >>> ⋲[alt_a,alt_b] ∪[buddy]`,
	}
	for _, line := range lines {
		t.Run(line[:20], func(t *testing.T) {
			item, err := Parse(line, false)
			require.NoError(t, err)
			assert.Equal(t, line, Serialize(item))

			again, err := Parse(Serialize(item), false)
			require.NoError(t, err)
			assert.Equal(t, item, again)
		})
	}
}
