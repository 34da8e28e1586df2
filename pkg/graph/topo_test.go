package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/giantt/pkg/types"
)

func sortedIDs(t *testing.T, g *Graph) []string {
	t.Helper()
	sorted, err := g.TopologicalSort()
	require.NoError(t, err)
	ids := make([]string, len(sorted))
	for i, it := range sorted {
		ids[i] = it.ID
	}
	return ids
}

func TestTopologicalSortChain(t *testing.T) {
	g := newTestGraph("deploy", "test", "build")
	require.NoError(t, g.AddRelation("deploy", types.RelationRequires, "test"))
	require.NoError(t, g.AddRelation("test", types.RelationRequires, "build"))

	assert.Equal(t, []string{"build", "test", "deploy"}, sortedIDs(t, g))
}

func TestTopologicalSortDepthThenID(t *testing.T) {
	// root requires both mid and leaf; mid requires leaf. Depths: leaf 0,
	// mid 1, root 2. A second independent item at depth zero sorts by ID
	// among the depth-zero candidates.
	g := newTestGraph("root", "mid", "leaf", "aside")
	require.NoError(t, g.AddRelation("root", types.RelationRequires, "mid"))
	require.NoError(t, g.AddRelation("root", types.RelationRequires, "leaf"))
	require.NoError(t, g.AddRelation("mid", types.RelationRequires, "leaf"))

	assert.Equal(t, []string{"aside", "leaf", "mid", "root"}, sortedIDs(t, g))
}

func TestTopologicalSortIdempotent(t *testing.T) {
	g := newTestGraph("e", "d", "c", "b", "a")
	require.NoError(t, g.AddRelation("a", types.RelationRequires, "c"))
	require.NoError(t, g.AddRelation("b", types.RelationRequires, "c"))
	require.NoError(t, g.AddRelation("c", types.RelationAnyOf, "d"))
	require.NoError(t, g.AddRelation("c", types.RelationAnyOf, "e"))

	first := sortedIDs(t, g)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, sortedIDs(t, g))
	}
}

func TestTopologicalSortAnyOfCounts(t *testing.T) {
	g := newTestGraph("goal", "path_a", "path_b")
	require.NoError(t, g.AddRelation("goal", types.RelationAnyOf, "path_a"))
	require.NoError(t, g.AddRelation("goal", types.RelationAnyOf, "path_b"))

	ids := sortedIDs(t, g)
	assert.Equal(t, "goal", ids[2], "alternatives precede the item that can use them")
}

func TestTopologicalSortIgnoresNonStrict(t *testing.T) {
	g := newTestGraph("a", "b")
	require.NoError(t, g.AddRelation("a", types.RelationSupercharges, "b"))
	require.NoError(t, g.AddRelation("b", types.RelationIndicates, "a"))

	assert.Equal(t, []string{"a", "b"}, sortedIDs(t, g))
}

func TestTopologicalSortDanglingTarget(t *testing.T) {
	g := newTestGraph("a", "b")
	require.NoError(t, g.AddRelation("a", types.RelationRequires, "b"))
	g.RemoveItem("b", false)

	ids, err := g.TopologicalSort()
	require.NoError(t, err)
	require.Len(t, ids, 1)
	assert.Equal(t, "a", ids[0].ID)
}

func TestTopologicalSortCycle(t *testing.T) {
	g := newTestGraph("a", "b", "c")
	// Build the cycle on the raw items; AddRelation would refuse it.
	for from, to := range map[string]string{"a": "b", "b": "c", "c": "a"} {
		it, _ := g.Item(from)
		it.Relations[types.RelationRequires] = []string{to}
	}

	_, err := g.TopologicalSort()
	var cycleErr *types.CycleError
	require.ErrorAs(t, err, &cycleErr)
	require.NotEmpty(t, cycleErr.Path)
	assert.Equal(t, cycleErr.Path[0], cycleErr.Path[len(cycleErr.Path)-1])
	assert.ElementsMatch(t, []string{"a", "b", "c"}, cycleErr.Path[:len(cycleErr.Path)-1])
}

func TestTopologicalSortEmpty(t *testing.T) {
	sorted, err := New().TopologicalSort()
	require.NoError(t, err)
	assert.Empty(t, sorted)
}

func TestDetectCycleSelfLoop(t *testing.T) {
	adj := map[string][]string{"a": {"a"}}
	assert.Equal(t, []string{"a", "a"}, detectCycle(adj))
}

func TestDetectCycleAcyclic(t *testing.T) {
	adj := map[string][]string{
		"a": {"b", "c"},
		"b": {"c"},
		"c": nil,
	}
	assert.Nil(t, detectCycle(adj))
}
