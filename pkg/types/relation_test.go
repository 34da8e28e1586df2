package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelationMirrors(t *testing.T) {
	assert.Equal(t, RelationBlocks, RelationRequires.Mirror())
	assert.Equal(t, RelationRequires, RelationBlocks.Mirror())
	assert.Equal(t, RelationSufficient, RelationAnyOf.Mirror())
	assert.Equal(t, RelationAnyOf, RelationSufficient.Mirror())

	for _, r := range []RelationType{RelationSupercharges, RelationIndicates, RelationTogether, RelationConflicts} {
		assert.Equal(t, r, r.Mirror(), "symmetric relation %s must mirror to itself", r)
	}
}

func TestRelationMirrorIsInvolution(t *testing.T) {
	for _, r := range RelationTypes() {
		assert.Equal(t, r, r.Mirror().Mirror())
	}
}

func TestRelationStrict(t *testing.T) {
	assert.True(t, RelationRequires.Strict())
	assert.True(t, RelationAnyOf.Strict())
	for _, r := range []RelationType{RelationBlocks, RelationSufficient, RelationSupercharges, RelationIndicates, RelationTogether, RelationConflicts} {
		assert.False(t, r.Strict(), "%s must not be strict", r)
	}
}

func TestRelationSymbolRoundTrip(t *testing.T) {
	for _, r := range RelationTypes() {
		got, ok := RelationFromSymbol(r.Symbol())
		require.True(t, ok)
		assert.Equal(t, r, got)
	}

	_, ok := RelationFromSymbol("x")
	assert.False(t, ok)
}

func TestStatusAndPriorityGlyphs(t *testing.T) {
	tests := []struct {
		glyph  string
		status Status
	}{
		{"○", StatusNotStarted},
		{"◑", StatusInProgress},
		{"⊘", StatusBlocked},
		{"●", StatusCompleted},
	}
	for _, tt := range tests {
		got, ok := StatusFromGlyph(tt.glyph)
		require.True(t, ok)
		assert.Equal(t, tt.status, got)
		assert.Equal(t, tt.glyph, got.Glyph())
	}

	prios := []struct {
		glyph string
		p     Priority
	}{
		{",,,", PriorityLowest},
		{"...", PriorityLow},
		{"", PriorityNeutral},
		{"?", PriorityUnsure},
		{"!", PriorityMedium},
		{"!!", PriorityHigh},
		{"!!!", PriorityCritical},
	}
	for _, tt := range prios {
		got, ok := PriorityFromGlyph(tt.glyph)
		require.True(t, ok)
		assert.Equal(t, tt.p, got)
		assert.Equal(t, tt.glyph, got.Glyph())
	}
}

func TestPriorityGlyphsLongestFirst(t *testing.T) {
	glyphs := PriorityGlyphs()
	for i := 1; i < len(glyphs); i++ {
		assert.GreaterOrEqual(t, len(glyphs[i-1]), len(glyphs[i]))
	}
}
