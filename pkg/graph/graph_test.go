package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/giantt/pkg/types"
)

func newTestGraph(ids ...string) *Graph {
	g := New()
	for _, id := range ids {
		g.AddItem(types.NewItem(id, "Title of "+id))
	}
	return g
}

func TestAddRelationMirrors(t *testing.T) {
	tests := []struct {
		rel    types.RelationType
		mirror types.RelationType
	}{
		{types.RelationRequires, types.RelationBlocks},
		{types.RelationAnyOf, types.RelationSufficient},
		{types.RelationBlocks, types.RelationRequires},
		{types.RelationSufficient, types.RelationAnyOf},
		{types.RelationTogether, types.RelationTogether},
		{types.RelationConflicts, types.RelationConflicts},
	}
	for _, tt := range tests {
		t.Run(string(tt.rel), func(t *testing.T) {
			g := newTestGraph("a", "b")
			require.NoError(t, g.AddRelation("a", tt.rel, "b"))

			a, _ := g.Item("a")
			b, _ := g.Item("b")
			assert.Equal(t, []string{"b"}, a.Relations[tt.rel])
			assert.Equal(t, []string{"a"}, b.Relations[tt.mirror])
		})
	}
}

func TestAddRelationIdempotent(t *testing.T) {
	g := newTestGraph("a", "b")
	require.NoError(t, g.AddRelation("a", types.RelationRequires, "b"))
	require.NoError(t, g.AddRelation("a", types.RelationRequires, "b"))

	a, _ := g.Item("a")
	assert.Equal(t, []string{"b"}, a.Relations[types.RelationRequires])
}

func TestAddRelationMissingItem(t *testing.T) {
	g := newTestGraph("a")
	err := g.AddRelation("a", types.RelationRequires, "ghost")
	assert.ErrorIs(t, err, types.ErrItemNotFound)

	err = g.AddRelation("ghost", types.RelationRequires, "a")
	assert.ErrorIs(t, err, types.ErrItemNotFound)
}

func TestAddRelationRejectsCycle(t *testing.T) {
	g := newTestGraph("a", "b")
	require.NoError(t, g.AddRelation("a", types.RelationRequires, "b"))

	err := g.AddRelation("b", types.RelationRequires, "a")
	require.Error(t, err)
	var cycleErr *types.CycleError
	require.ErrorAs(t, err, &cycleErr)
	assert.Equal(t, cycleErr.Path[0], cycleErr.Path[len(cycleErr.Path)-1])

	// The rejected mutation must leave both items untouched.
	a, _ := g.Item("a")
	b, _ := g.Item("b")
	assert.Equal(t, []string{"b"}, a.Relations[types.RelationRequires])
	assert.Empty(t, b.Relations[types.RelationRequires])
	assert.Empty(t, a.Relations[types.RelationBlocks])
}

func TestAddRelationCycleThroughMirror(t *testing.T) {
	// BLOCKS is the mirror of REQUIRES: a blocks b means b requires a, so
	// blocking in a loop must be rejected too.
	g := newTestGraph("a", "b")
	require.NoError(t, g.AddRelation("a", types.RelationRequires, "b"))

	err := g.AddRelation("a", types.RelationBlocks, "b")
	var cycleErr *types.CycleError
	require.ErrorAs(t, err, &cycleErr)
}

func TestAddRelationSymmetricNeverCycles(t *testing.T) {
	g := newTestGraph("a", "b")
	require.NoError(t, g.AddRelation("a", types.RelationRequires, "b"))
	require.NoError(t, g.AddRelation("b", types.RelationConflicts, "a"))
	require.NoError(t, g.AddRelation("b", types.RelationTogether, "a"))
}

func TestRemoveRelationCollapsesEmptyBucket(t *testing.T) {
	g := newTestGraph("a", "b")
	require.NoError(t, g.AddRelation("a", types.RelationRequires, "b"))

	g.RemoveRelation("a", types.RelationRequires, "b")

	a, _ := g.Item("a")
	b, _ := g.Item("b")
	_, hasBucket := a.Relations[types.RelationRequires]
	assert.False(t, hasBucket, "empty bucket must be dropped, not left as []")
	_, hasMirror := b.Relations[types.RelationBlocks]
	assert.False(t, hasMirror)

	// Removing again is a no-op.
	g.RemoveRelation("a", types.RelationRequires, "b")
	g.RemoveRelation("ghost", types.RelationRequires, "b")
}

func TestRemoveItemCascade(t *testing.T) {
	g := newTestGraph("a", "b", "c")
	require.NoError(t, g.AddRelation("a", types.RelationRequires, "b"))
	require.NoError(t, g.AddRelation("c", types.RelationRequires, "b"))

	g.RemoveItem("b", true)

	assert.False(t, g.Has("b"))
	a, _ := g.Item("a")
	c, _ := g.Item("c")
	assert.Empty(t, a.Relations[types.RelationRequires])
	assert.Empty(t, c.Relations[types.RelationRequires])
}

func TestRemoveItemKeepRelations(t *testing.T) {
	g := newTestGraph("a", "b")
	require.NoError(t, g.AddRelation("a", types.RelationRequires, "b"))

	g.RemoveItem("b", false)

	a, _ := g.Item("a")
	assert.Equal(t, []string{"b"}, a.Relations[types.RelationRequires], "reference survives as a dangling target")
}

func TestFindBySubstring(t *testing.T) {
	g := New()
	g.AddItem(types.NewItem("alpha", "Set up the database"))
	g.AddItem(types.NewItem("beta", "Write documentation"))
	g.AddItem(types.NewItem("gamma", "Database migration scripts"))

	item, err := g.FindBySubstring("beta")
	require.NoError(t, err)
	assert.Equal(t, "beta", item.ID)

	item, err = g.FindBySubstring("documentation")
	require.NoError(t, err)
	assert.Equal(t, "beta", item.ID)

	_, err = g.FindBySubstring("database")
	var ambiguous *types.AmbiguousMatchError
	require.ErrorAs(t, err, &ambiguous)
	assert.ElementsMatch(t, []string{"alpha", "gamma"}, ambiguous.IDs)

	_, err = g.FindBySubstring("nothing_here")
	assert.ErrorIs(t, err, types.ErrNoMatch)
}

func TestInsertBetween(t *testing.T) {
	g := newTestGraph("before", "after")
	require.NoError(t, g.AddRelation("before", types.RelationRequires, "after"))

	mid := types.NewItem("mid", "Middle step")
	require.NoError(t, g.InsertBetween(mid, "before", "after"))

	before, _ := g.Item("before")
	inserted, _ := g.Item("mid")
	after, _ := g.Item("after")

	assert.Equal(t, []string{"mid"}, before.Relations[types.RelationRequires])
	assert.Equal(t, []string{"after"}, inserted.Relations[types.RelationRequires])
	assert.Contains(t, inserted.Relations[types.RelationBlocks], "before")
	assert.Contains(t, after.Relations[types.RelationBlocks], "mid")
	assert.NotContains(t, after.Relations[types.RelationBlocks], "before")
}

func TestInsertBetweenMissingAnchor(t *testing.T) {
	g := newTestGraph("a")
	err := g.InsertBetween(types.NewItem("mid", "Mid"), "a", "ghost")
	assert.ErrorIs(t, err, types.ErrItemNotFound)
	assert.False(t, g.Has("mid"))
}

func TestCopyIsDeep(t *testing.T) {
	g := newTestGraph("a", "b")
	require.NoError(t, g.AddRelation("a", types.RelationRequires, "b"))

	cp := g.Copy()
	cpA, _ := cp.Item("a")
	cpA.Relations[types.RelationRequires] = append(cpA.Relations[types.RelationRequires], "extra")

	a, _ := g.Item("a")
	assert.Equal(t, []string{"b"}, a.Relations[types.RelationRequires])
}

func TestMergeOtherWins(t *testing.T) {
	g := New()
	g.AddItem(types.NewItem("x", "Original"))

	other := New()
	other.AddItem(types.NewItem("x", "Replacement"))
	other.AddItem(types.NewItem("y", "New"))

	merged := g.Merge(other)
	assert.Equal(t, 2, merged.Len())
	x, _ := merged.Item("x")
	assert.Equal(t, "Replacement", x.Title)

	// Operands are unchanged.
	origX, _ := g.Item("x")
	assert.Equal(t, "Original", origX.Title)
}

func TestIncludedAndOccludedItems(t *testing.T) {
	g := newTestGraph("a", "b", "c")
	b, _ := g.Item("b")
	b.SetOcclude(true)

	included := g.IncludedItems()
	require.Len(t, included, 2)
	assert.Equal(t, "a", included[0].ID)
	assert.Equal(t, "c", included[1].ID)

	occluded := g.OccludedItems()
	require.Len(t, occluded, 1)
	assert.Equal(t, "b", occluded[0].ID)
}
