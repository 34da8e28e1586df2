package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/giantt/pkg/graph"
	"github.com/mesh-intelligence/giantt/pkg/types"
)

func TestSplitCSV(t *testing.T) {
	assert.Nil(t, splitCSV(""))
	assert.Equal(t, []string{"a"}, splitCSV("a"))
	assert.Equal(t, []string{"a", "b", "c"}, splitCSV("a, b ,c"))
	assert.Equal(t, []string{"a", "b"}, splitCSV("a,,b,"))
}

func TestPlural(t *testing.T) {
	assert.Equal(t, "s", plural(0))
	assert.Equal(t, "", plural(1))
	assert.Equal(t, "s", plural(2))
}

func TestOrNone(t *testing.T) {
	assert.Equal(t, "None", orNone(nil))
	assert.Equal(t, "a, b", orNone([]string{"a", "b"}))
}

func TestSortedIDs(t *testing.T) {
	ids := map[string]bool{"c": true, "a": true, "b": true}
	assert.Equal(t, []string{"a", "b", "c"}, sortedIDs(ids))
}

func TestRelationImpact(t *testing.T) {
	g := graph.New()
	g.AddItem(types.NewItem("a", "A"))
	g.AddItem(types.NewItem("b", "B"))
	g.AddItem(types.NewItem("c", "C"))
	require.NoError(t, g.AddRelation("a", types.RelationRequires, "b"))
	require.NoError(t, g.AddRelation("c", types.RelationRequires, "b"))
	require.NoError(t, g.AddRelation("c", types.RelationTogether, "b"))

	counts := relationImpact(g, "b")
	assert.Equal(t, 2, counts[types.RelationRequires])
	assert.Equal(t, 1, counts[types.RelationTogether])
	assert.Zero(t, counts[types.RelationBlocks])

	assert.Empty(t, relationImpact(g, "a")[types.RelationRequires])
}