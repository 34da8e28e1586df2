package types

// RelationType identifies a directed typed edge between two items.
type RelationType string

const (
	RelationRequires     RelationType = "REQUIRES"
	RelationAnyOf        RelationType = "ANYOF"
	RelationSupercharges RelationType = "SUPERCHARGES"
	RelationIndicates    RelationType = "INDICATES"
	RelationTogether     RelationType = "TOGETHER"
	RelationConflicts    RelationType = "CONFLICTS"
	RelationBlocks       RelationType = "BLOCKS"
	RelationSufficient   RelationType = "SUFFICIENT"
)

// relationSymbols maps each relation type to its notation symbol.
var relationSymbols = map[RelationType]string{
	RelationRequires:     "⊢",
	RelationAnyOf:        "⋲",
	RelationSupercharges: "≫",
	RelationIndicates:    "∴",
	RelationTogether:     "∪",
	RelationConflicts:    "⊟",
	RelationBlocks:       "►",
	RelationSufficient:   "≻",
}

// relationMirrors pairs each relation type with its automatically maintained
// counterpart on the target item. REQUIRES/BLOCKS and ANYOF/SUFFICIENT are
// proper pairs; the remaining four are symmetric and mirror to themselves.
var relationMirrors = map[RelationType]RelationType{
	RelationRequires:     RelationBlocks,
	RelationBlocks:       RelationRequires,
	RelationAnyOf:        RelationSufficient,
	RelationSufficient:   RelationAnyOf,
	RelationSupercharges: RelationSupercharges,
	RelationIndicates:    RelationIndicates,
	RelationTogether:     RelationTogether,
	RelationConflicts:    RelationConflicts,
}

// Symbol returns the notation symbol for the relation type.
func (r RelationType) Symbol() string {
	return relationSymbols[r]
}

// Mirror returns the counterpart relation type kept on the target item.
func (r RelationType) Mirror() RelationType {
	return relationMirrors[r]
}

// Strict reports whether the relation participates in cycle detection and
// topological ordering. Only REQUIRES and ANYOF edges are strict; their
// mirrors are redundancy, not independent edges.
func (r RelationType) Strict() bool {
	return r == RelationRequires || r == RelationAnyOf
}

// Valid reports whether the relation type is one of the eight kinds.
func (r RelationType) Valid() bool {
	_, ok := relationSymbols[r]
	return ok
}

// RelationFromSymbol returns the relation type for a notation symbol.
func RelationFromSymbol(symbol string) (RelationType, bool) {
	for r, s := range relationSymbols {
		if s == symbol {
			return r, true
		}
	}
	return "", false
}

// RelationTypes returns all relation types in notation-symbol display order.
func RelationTypes() []RelationType {
	return []RelationType{
		RelationRequires, RelationAnyOf, RelationSupercharges, RelationIndicates,
		RelationTogether, RelationConflicts, RelationBlocks, RelationSufficient,
	}
}
