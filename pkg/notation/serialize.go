package notation

import (
	"encoding/json"
	"strings"

	"github.com/mesh-intelligence/giantt/pkg/types"
)

// Serialize renders an item as one notation line. It is total over
// well-formed items and the exact inverse of Parse. The occlude flag is not
// part of the line; it only selects which file the line is written to.
func Serialize(item *types.Item) string {
	var b strings.Builder

	b.WriteString(item.Status.Glyph())
	b.WriteString(" ")
	b.WriteString(item.ID)
	b.WriteString(item.Priority.Glyph())
	b.WriteString(" ")
	b.WriteString(item.Duration.String())
	b.WriteString(" ")
	b.WriteString(jsonString(item.Title))
	b.WriteString(" ")
	b.WriteString(serializeCharts(item.Charts))

	if len(item.Tags) > 0 {
		b.WriteString(" ")
		b.WriteString(strings.Join(item.Tags, ","))
	}

	if rels := serializeRelations(item.Relations); rels != "" {
		b.WriteString(" >>> ")
		b.WriteString(rels)
	}

	if len(item.Constraints) > 0 {
		b.WriteString(" @@@ ")
		exprs := make([]string, len(item.Constraints))
		for i, tc := range item.Constraints {
			exprs[i] = tc.String()
		}
		b.WriteString(strings.Join(exprs, " "))
	}

	if item.UserComment != "" {
		b.WriteString(" # ")
		b.WriteString(item.UserComment)
	}
	if item.AutoComment != "" {
		b.WriteString(" ### ")
		b.WriteString(item.AutoComment)
	}

	return b.String()
}

func serializeCharts(charts []string) string {
	if len(charts) == 0 {
		return "{}"
	}
	quoted := make([]string, len(charts))
	for i, c := range charts {
		quoted[i] = jsonString(c)
	}
	return "{" + strings.Join(quoted, ",") + "}"
}

// serializeRelations renders relation buckets in the fixed display order of
// relation types so repeated saves are byte-stable.
func serializeRelations(relations types.Relations) string {
	var parts []string
	for _, rel := range types.RelationTypes() {
		targets := relations[rel]
		if len(targets) == 0 {
			continue
		}
		parts = append(parts, rel.Symbol()+"["+strings.Join(targets, ",")+"]")
	}
	return strings.Join(parts, " ")
}

func jsonString(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}
