package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeConstraint(t *testing.T) {
	tests := []struct {
		name  string
		input string
		check func(t *testing.T, tc TimeConstraint)
	}{
		{
			name:  "window severe",
			input: "window(3d,severe)",
			check: func(t *testing.T, tc TimeConstraint) {
				assert.Equal(t, ConstraintWindow, tc.Kind)
				assert.Equal(t, "3d", tc.Window.String())
				assert.Equal(t, ConsequenceSevere, tc.Consequence)
				assert.Nil(t, tc.Grace)
			},
		},
		{
			name:  "due with grace and warn",
			input: "due(2026-09-15:2d,warn)",
			check: func(t *testing.T, tc TimeConstraint) {
				assert.Equal(t, ConstraintDeadline, tc.Kind)
				assert.Equal(t, "2026-09-15", tc.DueDate)
				require.NotNil(t, tc.Grace)
				assert.Equal(t, "2d", tc.Grace.String())
				assert.Equal(t, ConsequenceWarning, tc.Consequence)
			},
		},
		{
			name:  "recurring escalating stacked",
			input: "every(1w,escalate:!!,stack)",
			check: func(t *testing.T, tc TimeConstraint) {
				assert.Equal(t, ConstraintRecurring, tc.Kind)
				assert.Equal(t, "1w", tc.Interval.String())
				assert.Equal(t, ConsequenceEscalating, tc.Consequence)
				assert.Equal(t, PriorityHigh, tc.Rate)
				assert.True(t, tc.Stack)
			},
		},
		{
			name:  "recurring without stack",
			input: "every(2d,severe)",
			check: func(t *testing.T, tc TimeConstraint) {
				assert.Equal(t, ConstraintRecurring, tc.Kind)
				assert.False(t, tc.Stack)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tc, err := ParseTimeConstraint(tt.input)
			require.NoError(t, err)
			tt.check(t, tc)
			assert.Equal(t, tt.input, tc.String(), "String must round-trip the expression")
		})
	}
}

func TestParseTimeConstraintErrors(t *testing.T) {
	inputs := []string{
		"window(3d,severe",
		"sometime(3d,severe)",
		"window(3d)",
		"due(2026-13-40,warn)",
		"due(tomorrow,warn)",
		"window(xx,severe)",
		"every(1w,escalate:zz)",
		"window(3d,meh)",
	}
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			_, err := ParseTimeConstraint(input)
			require.Error(t, err)
			var perr *ParseError
			assert.ErrorAs(t, err, &perr)
		})
	}
}
