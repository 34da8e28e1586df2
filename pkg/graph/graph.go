// Package graph holds the in-memory dependency graph and its algorithms:
// relation mutation with automatic bidirectional mirroring, cycle detection
// over the strict-edge subgraph, deterministic topological ordering, and
// chain insertion.
//
// Every mutating operation validates before committing: a rejected mutation
// leaves the graph exactly as it was. Dangling relation targets are
// tolerated (items can be removed independently of their referrers) and are
// surfaced by the doctor package rather than prevented here.
package graph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mesh-intelligence/giantt/pkg/types"
)

// Graph is a mutable set of items keyed by ID.
type Graph struct {
	items map[string]*types.Item
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{items: map[string]*types.Item{}}
}

// Len returns the number of items.
func (g *Graph) Len() int {
	return len(g.items)
}

// Has reports whether an item with the given ID exists.
func (g *Graph) Has(id string) bool {
	_, ok := g.items[id]
	return ok
}

// Item returns the item with the given ID.
func (g *Graph) Item(id string) (*types.Item, bool) {
	it, ok := g.items[id]
	return it, ok
}

// Items returns all items ordered by ID.
func (g *Graph) Items() []*types.Item {
	out := make([]*types.Item, 0, len(g.items))
	for _, it := range g.items {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// IncludedItems returns the items whose occlude flag is unset, ordered by ID.
func (g *Graph) IncludedItems() []*types.Item {
	var out []*types.Item
	for _, it := range g.Items() {
		if !it.Occlude {
			out = append(out, it)
		}
	}
	return out
}

// OccludedItems returns the archived items, ordered by ID.
func (g *Graph) OccludedItems() []*types.Item {
	var out []*types.Item
	for _, it := range g.Items() {
		if it.Occlude {
			out = append(out, it)
		}
	}
	return out
}

// AddItem upserts an item. The item's relation map is normalized so later
// mutation methods never observe a nil map.
func (g *Graph) AddItem(item *types.Item) {
	if item.Relations == nil {
		item.Relations = types.Relations{}
	}
	g.items[item.ID] = item
}

// RemoveItem deletes an item. When cascade is set, every relation entry in
// other items naming the removed ID is dropped as well, collapsing buckets
// that become empty. Removing an absent ID is a no-op.
func (g *Graph) RemoveItem(id string, cascade bool) {
	delete(g.items, id)
	if !cascade {
		return
	}
	for _, it := range g.items {
		for rel, targets := range it.Relations {
			kept := targets[:0]
			for _, t := range targets {
				if t != id {
					kept = append(kept, t)
				}
			}
			if len(kept) == 0 {
				delete(it.Relations, rel)
			} else {
				it.Relations[rel] = kept
			}
		}
	}
}

// FindBySubstring resolves a query to exactly one item: a case-insensitive
// ID match or a case-insensitive title substring match. Zero hits return
// types.ErrNoMatch; more than one returns a *types.AmbiguousMatchError
// listing every candidate.
func (g *Graph) FindBySubstring(query string) (*types.Item, error) {
	lower := strings.ToLower(query)
	var matches []*types.Item
	for _, it := range g.Items() {
		if strings.ToLower(it.ID) == lower || strings.Contains(strings.ToLower(it.Title), lower) {
			matches = append(matches, it)
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%w for %q", types.ErrNoMatch, query)
	case 1:
		return matches[0], nil
	default:
		ids := make([]string, len(matches))
		for i, it := range matches {
			ids[i] = it.ID
		}
		return nil, &types.AmbiguousMatchError{Query: query, IDs: ids}
	}
}

// AddRelation adds a typed edge from one item to another, together with its
// mirrored counterpart on the target. When the edge (or its mirror) is
// strict, the resulting strict subgraph is checked for cycles before
// anything is committed; on a cycle the graph is left untouched and a
// *types.CycleError carrying the full cycle path is returned.
func (g *Graph) AddRelation(fromID string, rel types.RelationType, toID string) error {
	from, ok := g.items[fromID]
	if !ok {
		return fmt.Errorf("%w: %s", types.ErrItemNotFound, fromID)
	}
	to, ok := g.items[toID]
	if !ok {
		return fmt.Errorf("%w: %s", types.ErrItemNotFound, toID)
	}

	if src, dst, strict := strictEndpoints(fromID, rel, toID); strict {
		adj := g.strictAdjacency()
		adj[src] = appendMissing(adj[src], dst)
		if cycle := detectCycle(adj); cycle != nil {
			return &types.CycleError{Path: cycle}
		}
	}

	if !from.Relations.Contains(rel, toID) {
		from.Relations[rel] = append(from.Relations[rel], toID)
	}
	mirror := rel.Mirror()
	if !to.Relations.Contains(mirror, fromID) {
		to.Relations[mirror] = append(to.Relations[mirror], fromID)
	}
	return nil
}

// RemoveRelation removes the edge and its mirror. Absent items, buckets, or
// targets make this a no-op, never an error. A bucket emptied by the removal
// is dropped entirely.
func (g *Graph) RemoveRelation(fromID string, rel types.RelationType, toID string) {
	if from, ok := g.items[fromID]; ok {
		removeTarget(from.Relations, rel, toID)
	}
	if to, ok := g.items[toID]; ok {
		removeTarget(to.Relations, rel.Mirror(), fromID)
	}
}

// InsertBetween splices a new item into an existing dependency: afterward
// newItem requires afterID and beforeID requires newItem instead of afterID,
// with the mirrored BLOCKS buckets updated to match. Both anchors must
// exist. The rewrite is simulated first; if the strict subgraph would gain a
// cycle, nothing changes.
func (g *Graph) InsertBetween(newItem *types.Item, beforeID, afterID string) error {
	if _, ok := g.items[beforeID]; !ok {
		return fmt.Errorf("%w: %s", types.ErrItemNotFound, beforeID)
	}
	if _, ok := g.items[afterID]; !ok {
		return fmt.Errorf("%w: %s", types.ErrItemNotFound, afterID)
	}

	scratch := g.Copy()
	inserted := newItem.Clone()
	if inserted.Relations == nil {
		inserted.Relations = types.Relations{}
	}
	scratch.items[inserted.ID] = inserted

	before := scratch.items[beforeID]
	after := scratch.items[afterID]

	inserted.Relations[types.RelationRequires] = []string{afterID}
	after.Relations[types.RelationBlocks] = appendMissing(after.Relations[types.RelationBlocks], inserted.ID)
	removeTarget(after.Relations, types.RelationBlocks, beforeID)

	replaceTarget(before.Relations, types.RelationRequires, afterID, inserted.ID)
	inserted.Relations[types.RelationBlocks] = appendMissing(inserted.Relations[types.RelationBlocks], beforeID)

	if cycle := detectCycle(scratch.strictAdjacency()); cycle != nil {
		return &types.CycleError{Path: cycle}
	}

	g.items = scratch.items
	return nil
}

// Copy returns a deep value copy; mutations on either graph are invisible to
// the other.
func (g *Graph) Copy() *Graph {
	out := New()
	for id, it := range g.items {
		out.items[id] = it.Clone()
	}
	return out
}

// Merge combines two graphs into a new one without mutating either operand.
// On ID collision the item from other wins.
func (g *Graph) Merge(other *Graph) *Graph {
	out := g.Copy()
	for _, it := range other.items {
		out.items[it.ID] = it.Clone()
	}
	return out
}

// strictEndpoints maps a candidate relation onto its strict edge, if any.
// A strict relation contributes the edge from→to; the mirror of a strict
// relation (BLOCKS, SUFFICIENT) contributes the same logical edge reversed.
func strictEndpoints(fromID string, rel types.RelationType, toID string) (src, dst string, strict bool) {
	if rel.Strict() {
		return fromID, toID, true
	}
	if rel.Mirror().Strict() {
		return toID, fromID, true
	}
	return "", "", false
}

// strictAdjacency builds the adjacency view of the strict subgraph:
// for each item, its REQUIRES and ANYOF targets restricted to items that
// exist. Mirror buckets are redundancy and are not counted as edges.
func (g *Graph) strictAdjacency() map[string][]string {
	adj := make(map[string][]string, len(g.items))
	for id := range g.items {
		adj[id] = nil
	}
	for id, it := range g.items {
		for _, rel := range []types.RelationType{types.RelationRequires, types.RelationAnyOf} {
			for _, target := range it.Relations[rel] {
				if _, ok := g.items[target]; !ok {
					continue
				}
				adj[id] = appendMissing(adj[id], target)
			}
		}
	}
	return adj
}

func appendMissing(list []string, v string) []string {
	for _, x := range list {
		if x == v {
			return list
		}
	}
	return append(list, v)
}

func removeTarget(relations types.Relations, rel types.RelationType, target string) {
	targets, ok := relations[rel]
	if !ok {
		return
	}
	kept := targets[:0]
	for _, t := range targets {
		if t != target {
			kept = append(kept, t)
		}
	}
	if len(kept) == 0 {
		delete(relations, rel)
	} else {
		relations[rel] = kept
	}
}

func replaceTarget(relations types.Relations, rel types.RelationType, old, repl string) {
	targets := relations[rel]
	for i, t := range targets {
		if t == old {
			targets[i] = repl
			return
		}
	}
	relations[rel] = append(targets, repl)
}
