package graph

import (
	"sort"

	"github.com/mesh-intelligence/giantt/pkg/types"
)

// DFS colors for cycle detection.
const (
	white = iota // unvisited
	gray         // on the current path
	black        // finished
)

// detectCycle runs a three-color DFS over the adjacency view and returns the
// first cycle found as a path with the first ID repeated at the end, or nil
// if the subgraph is acyclic. Start nodes are visited in sorted order so the
// reported cycle is deterministic. Runs in O(V+E).
func detectCycle(adj map[string][]string) []string {
	color := make(map[string]int, len(adj))
	var path []string

	var visit func(id string) []string
	visit = func(id string) []string {
		color[id] = gray
		path = append(path, id)
		for _, next := range adj[id] {
			switch color[next] {
			case gray:
				// Back edge: slice the current path from the first
				// occurrence of next and close the loop.
				for i, p := range path {
					if p == next {
						cycle := append([]string(nil), path[i:]...)
						return append(cycle, next)
					}
				}
			case white:
				if cycle := visit(next); cycle != nil {
					return cycle
				}
			}
		}
		path = path[:len(path)-1]
		color[id] = black
		return nil
	}

	for _, id := range sortedKeys(adj) {
		if color[id] != white {
			continue
		}
		path = path[:0]
		if cycle := visit(id); cycle != nil {
			return cycle
		}
	}
	return nil
}

// TopologicalSort orders items so every strict dependency precedes its
// dependents, using Kahn's algorithm over the strict subgraph. Ties among
// ready nodes break by ascending dependency depth, then ascending ID, so
// re-sorting an unmutated graph is idempotent. A cycle among the remaining
// nodes is reconstructed by DFS and returned as a *types.CycleError.
func (g *Graph) TopologicalSort() ([]*types.Item, error) {
	adj := g.strictAdjacency()
	depth := g.dependencyDepths()

	// in-degree here counts unmet strict dependencies.
	inDegree := make(map[string]int, len(adj))
	dependents := make(map[string][]string, len(adj))
	for id, targets := range adj {
		inDegree[id] = len(targets)
		for _, t := range targets {
			dependents[t] = append(dependents[t], id)
		}
	}

	var ready []string
	for _, id := range sortedKeys(adj) {
		if inDegree[id] == 0 {
			ready = append(ready, id)
		}
	}

	less := func(a, b string) bool {
		if depth[a] != depth[b] {
			return depth[a] < depth[b]
		}
		return a < b
	}

	sorted := make([]*types.Item, 0, len(adj))
	emitted := make(map[string]bool, len(adj))
	for len(ready) > 0 {
		// Pop the minimum (depth, id) candidate.
		min := 0
		for i := 1; i < len(ready); i++ {
			if less(ready[i], ready[min]) {
				min = i
			}
		}
		id := ready[min]
		ready = append(ready[:min], ready[min+1:]...)

		sorted = append(sorted, g.items[id])
		emitted[id] = true
		for _, dep := range dependents[id] {
			inDegree[dep]--
			if inDegree[dep] == 0 {
				ready = append(ready, dep)
			}
		}
	}

	if len(sorted) != len(g.items) {
		// The unconsumed remainder contains a cycle; restrict the DFS to it.
		remainder := make(map[string][]string)
		for id, targets := range adj {
			if emitted[id] {
				continue
			}
			var kept []string
			for _, t := range targets {
				if !emitted[t] {
					kept = append(kept, t)
				}
			}
			remainder[id] = kept
		}
		return nil, &types.CycleError{Path: detectCycle(remainder)}
	}

	return sorted, nil
}

// dependencyDepths computes, for every item, the length of the longest
// REQUIRES chain rooted at it. Memoized; nodes already on the recursion
// path count as depth zero so a cyclic graph cannot recurse forever.
func (g *Graph) dependencyDepths() map[string]int {
	memo := make(map[string]int, len(g.items))
	onPath := make(map[string]bool, len(g.items))

	var depth func(id string) int
	depth = func(id string) int {
		if d, ok := memo[id]; ok {
			return d
		}
		if onPath[id] {
			return 0
		}
		onPath[id] = true
		max := 0
		if it, ok := g.items[id]; ok {
			for _, target := range it.Relations[types.RelationRequires] {
				if _, exists := g.items[target]; !exists {
					continue
				}
				if d := depth(target) + 1; d > max {
					max = d
				}
			}
		}
		onPath[id] = false
		memo[id] = max
		return max
	}

	for id := range g.items {
		depth(id)
	}
	return memo
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
