package types

// Status is the lifecycle state of an item. Each status has a fixed
// single-rune glyph used by the line notation.
type Status string

const (
	StatusNotStarted Status = "NOT_STARTED"
	StatusInProgress Status = "IN_PROGRESS"
	StatusBlocked    Status = "BLOCKED"
	StatusCompleted  Status = "COMPLETED"
)

// statusGlyphs maps each status to its notation glyph.
var statusGlyphs = map[Status]string{
	StatusNotStarted: "○",
	StatusInProgress: "◑",
	StatusBlocked:    "⊘",
	StatusCompleted:  "●",
}

// Glyph returns the notation glyph for the status, or the empty string for
// an unknown status.
func (s Status) Glyph() string {
	return statusGlyphs[s]
}

// Valid reports whether the status is one of the recognized values.
func (s Status) Valid() bool {
	_, ok := statusGlyphs[s]
	return ok
}

// StatusFromGlyph returns the status for a notation glyph.
func StatusFromGlyph(glyph string) (Status, bool) {
	for s, g := range statusGlyphs {
		if g == glyph {
			return s, true
		}
	}
	return "", false
}

// Statuses returns all statuses in display order.
func Statuses() []Status {
	return []Status{StatusNotStarted, StatusInProgress, StatusBlocked, StatusCompleted}
}

// Priority is the urgency level of an item. The glyph scale is shared with
// escalation rates on time constraints.
type Priority string

const (
	PriorityLowest   Priority = "LOWEST"
	PriorityLow      Priority = "LOW"
	PriorityNeutral  Priority = "NEUTRAL"
	PriorityUnsure   Priority = "UNSURE"
	PriorityMedium   Priority = "MEDIUM"
	PriorityHigh     Priority = "HIGH"
	PriorityCritical Priority = "CRITICAL"
)

// priorityGlyphs maps each priority to its notation glyph. NEUTRAL has no
// glyph: a bare id means neutral priority.
var priorityGlyphs = map[Priority]string{
	PriorityLowest:   ",,,",
	PriorityLow:      "...",
	PriorityNeutral:  "",
	PriorityUnsure:   "?",
	PriorityMedium:   "!",
	PriorityHigh:     "!!",
	PriorityCritical: "!!!",
}

// priorityGlyphOrder lists non-empty glyphs longest-first so suffix matching
// against an id token is unambiguous ("!!!" before "!!").
var priorityGlyphOrder = []string{"!!!", "...", ",,,", "!!", "!", "?"}

// Glyph returns the notation glyph for the priority.
func (p Priority) Glyph() string {
	return priorityGlyphs[p]
}

// Valid reports whether the priority is one of the recognized values.
func (p Priority) Valid() bool {
	_, ok := priorityGlyphs[p]
	return ok
}

// PriorityFromGlyph returns the priority for a notation glyph. The empty
// glyph maps to NEUTRAL.
func PriorityFromGlyph(glyph string) (Priority, bool) {
	for p, g := range priorityGlyphs {
		if g == glyph {
			return p, true
		}
	}
	return "", false
}

// PriorityGlyphs returns the non-empty priority glyphs, longest first.
func PriorityGlyphs() []string {
	out := make([]string, len(priorityGlyphOrder))
	copy(out, priorityGlyphOrder)
	return out
}

// Priorities returns all priorities from lowest to critical.
func Priorities() []Priority {
	return []Priority{
		PriorityLowest, PriorityLow, PriorityNeutral, PriorityUnsure,
		PriorityMedium, PriorityHigh, PriorityCritical,
	}
}

// Relations maps a relation type to an ordered list of target item IDs.
type Relations map[RelationType][]string

// Clone returns a deep copy of the relation map.
func (r Relations) Clone() Relations {
	if r == nil {
		return nil
	}
	out := make(Relations, len(r))
	for rel, targets := range r {
		out[rel] = append([]string(nil), targets...)
	}
	return out
}

// Contains reports whether the bucket for rel contains target.
func (r Relations) Contains(rel RelationType, target string) bool {
	for _, t := range r[rel] {
		if t == target {
			return true
		}
	}
	return false
}

// Item is a task node in the dependency graph. Identity is the ID; every
// other field is replaceable. The Occlude flag controls which file the item
// is written to on save and is never part of the serialized line.
type Item struct {
	ID          string
	Title       string
	Description string
	Status      Status
	Priority    Priority
	Duration    Duration
	Charts      []string
	Tags        []string
	Relations   Relations
	Constraints []TimeConstraint
	UserComment string
	AutoComment string
	Occlude     bool
}

// NewItem returns an item with the given id and title and neutral defaults.
func NewItem(id, title string) *Item {
	return &Item{
		ID:        id,
		Title:     title,
		Status:    StatusNotStarted,
		Priority:  PriorityNeutral,
		Relations: Relations{},
	}
}

// Clone returns a deep copy of the item.
func (it *Item) Clone() *Item {
	cp := *it
	cp.Duration = it.Duration.Clone()
	cp.Charts = append([]string(nil), it.Charts...)
	cp.Tags = append([]string(nil), it.Tags...)
	cp.Relations = it.Relations.Clone()
	cp.Constraints = append([]TimeConstraint(nil), it.Constraints...)
	return &cp
}

// SetOcclude flips the archive flag.
func (it *Item) SetOcclude(occlude bool) {
	it.Occlude = occlude
}

// HasTag reports whether the item carries the given tag.
func (it *Item) HasTag(tag string) bool {
	for _, t := range it.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
