// Package doctor validates the structural health of a dependency graph and
// applies bounded auto-fixes. Issues are data, not errors: callers inspect
// the returned list and decide what to act on.
package doctor

import (
	"fmt"

	"github.com/mesh-intelligence/giantt/pkg/graph"
	"github.com/mesh-intelligence/giantt/pkg/types"
)

// IssueType classifies a structural problem.
type IssueType string

const (
	// DanglingReference is a relation target absent from the item map.
	DanglingReference IssueType = "dangling_reference"

	// IncompleteChain is a one-sided REQUIRES/BLOCKS or ANYOF/SUFFICIENT
	// pair: the target lacks the reciprocal entry.
	IncompleteChain IssueType = "incomplete_chain"
)

// IssueTypes returns all issue types.
func IssueTypes() []IssueType {
	return []IssueType{DanglingReference, IncompleteChain}
}

// IssueTypeFromString validates a user-supplied issue type name.
func IssueTypeFromString(s string) (IssueType, error) {
	for _, t := range IssueTypes() {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("invalid issue type %q", s)
}

// Issue describes one structural problem found during diagnosis. Relation
// and TargetID identify the offending bucket entry so fixes operate
// structurally rather than by re-parsing messages.
type Issue struct {
	Type         IssueType
	ItemID       string
	Relation     types.RelationType
	TargetID     string
	Message      string
	SuggestedFix string
}

// Filter restricts FixIssues to a subset of issues. Zero values match
// everything.
type Filter struct {
	Type   IssueType
	ItemID string
}

func (f Filter) matches(issue Issue) bool {
	if f.Type != "" && issue.Type != f.Type {
		return false
	}
	if f.ItemID != "" && issue.ItemID != f.ItemID {
		return false
	}
	return true
}

// Doctor inspects and repairs one graph.
type Doctor struct {
	graph  *graph.Graph
	issues []Issue
}

// New returns a doctor bound to the given graph.
func New(g *graph.Graph) *Doctor {
	return &Doctor{graph: g}
}

// QuickCheck returns the number of dangling references without building
// Issue values, for cheap health gating after saves.
func (d *Doctor) QuickCheck() int {
	count := 0
	for _, it := range d.graph.Items() {
		for _, targets := range it.Relations {
			for _, target := range targets {
				if !d.graph.Has(target) {
					count++
				}
			}
		}
	}
	return count
}

// FullDiagnosis scans the whole graph once and returns every issue found.
// The scan is O(V+E): one pass for dangling references, one for reciprocal
// pair checks.
func (d *Doctor) FullDiagnosis() []Issue {
	d.issues = nil
	d.checkReferences()
	d.checkChains()
	return d.issues
}

// Issues returns the findings of the most recent diagnosis.
func (d *Doctor) Issues() []Issue {
	return d.issues
}

// IssuesByType filters the most recent findings.
func (d *Doctor) IssuesByType(t IssueType) []Issue {
	var out []Issue
	for _, issue := range d.issues {
		if issue.Type == t {
			out = append(out, issue)
		}
	}
	return out
}

// FixIssues repairs the issues matched by the filter and returns exactly
// those that were resolved. Only dangling references are auto-fixable: the
// missing target is removed from the offending bucket, collapsing the bucket
// once empty. Incomplete chains are never auto-fixed, since neither side of
// a one-way pair is authoritative, and are excluded from the returned set.
func (d *Doctor) FixIssues(filter Filter) []Issue {
	var fixed []Issue
	var remaining []Issue
	for _, issue := range d.issues {
		if filter.matches(issue) && d.fix(issue) {
			fixed = append(fixed, issue)
			continue
		}
		remaining = append(remaining, issue)
	}
	d.issues = remaining
	return fixed
}

func (d *Doctor) fix(issue Issue) bool {
	if issue.Type != DanglingReference {
		return false
	}
	item, ok := d.graph.Item(issue.ItemID)
	if !ok {
		return false
	}
	if !item.Relations.Contains(issue.Relation, issue.TargetID) {
		return false
	}
	kept := item.Relations[issue.Relation][:0]
	for _, t := range item.Relations[issue.Relation] {
		if t != issue.TargetID {
			kept = append(kept, t)
		}
	}
	if len(kept) == 0 {
		delete(item.Relations, issue.Relation)
	} else {
		item.Relations[issue.Relation] = kept
	}
	return true
}

// checkReferences emits one DanglingReference per relation target that does
// not exist in the item map.
func (d *Doctor) checkReferences() {
	for _, it := range d.graph.Items() {
		for _, rel := range types.RelationTypes() {
			for _, target := range it.Relations[rel] {
				if d.graph.Has(target) {
					continue
				}
				d.issues = append(d.issues, Issue{
					Type:         DanglingReference,
					ItemID:       it.ID,
					Relation:     rel,
					TargetID:     target,
					Message:      fmt.Sprintf("references non-existent item %q in %s relation", target, rel),
					SuggestedFix: fmt.Sprintf("giantt modify %s --remove %s %s", it.ID, rel, target),
				})
			}
		}
	}
}

// reciprocalPairs lists the forward/mirror bucket pairs whose two sides must
// reference each other.
var reciprocalPairs = []struct {
	forward, mirror types.RelationType
}{
	{types.RelationRequires, types.RelationBlocks},
	{types.RelationBlocks, types.RelationRequires},
	{types.RelationAnyOf, types.RelationSufficient},
	{types.RelationSufficient, types.RelationAnyOf},
}

// checkChains emits one IncompleteChain per paired relation entry whose
// target exists but lacks the reciprocal entry.
func (d *Doctor) checkChains() {
	for _, it := range d.graph.Items() {
		for _, pair := range reciprocalPairs {
			for _, target := range it.Relations[pair.forward] {
				other, ok := d.graph.Item(target)
				if !ok {
					continue // reported as a dangling reference
				}
				if other.Relations.Contains(pair.mirror, it.ID) {
					continue
				}
				d.issues = append(d.issues, Issue{
					Type:         IncompleteChain,
					ItemID:       it.ID,
					Relation:     pair.forward,
					TargetID:     target,
					Message:      fmt.Sprintf("has %s %q without the reciprocal %s entry", pair.forward, target, pair.mirror),
					SuggestedFix: fmt.Sprintf("giantt modify %s --add %s %s", target, pair.mirror, it.ID),
				})
			}
		}
	}
}
