package types

import (
	"strings"
	"time"
)

// TimeConstraintKind selects the constraint variant.
type TimeConstraintKind string

const (
	ConstraintWindow    TimeConstraintKind = "window"
	ConstraintDeadline  TimeConstraintKind = "deadline"
	ConstraintRecurring TimeConstraintKind = "recurring"
)

// ConsequenceKind describes what happens when a constraint is violated.
type ConsequenceKind string

const (
	ConsequenceSevere     ConsequenceKind = "severe"
	ConsequenceWarning    ConsequenceKind = "warn"
	ConsequenceEscalating ConsequenceKind = "escalating"
)

// TimeConstraint is a deadline, completion window, or recurrence attached to
// an item. Exactly one of Window, DueDate, or Interval is meaningful,
// selected by Kind. The escalation rate reuses the priority glyph scale.
type TimeConstraint struct {
	Kind        TimeConstraintKind
	Window      Duration
	DueDate     string
	Interval    Duration
	Grace       *Duration
	Consequence ConsequenceKind
	Rate        Priority
	Stack       bool
}

// ParseTimeConstraint parses a constraint expression:
//
//	window(D[:G],cons)
//	due(YYYY-MM-DD[:G],cons)
//	every(D[:G],cons[,stack])
//
// where cons is "severe", "warn", or "escalate:<rate glyph>".
func ParseTimeConstraint(s string) (TimeConstraint, error) {
	open := strings.IndexByte(s, '(')
	if open < 0 || !strings.HasSuffix(s, ")") {
		return TimeConstraint{}, &ParseError{Line: s, Msg: "malformed time constraint"}
	}
	head := s[:open]
	body := s[open+1 : len(s)-1]

	var kind TimeConstraintKind
	switch head {
	case "window":
		kind = ConstraintWindow
	case "due":
		kind = ConstraintDeadline
	case "every":
		kind = ConstraintRecurring
	default:
		return TimeConstraint{}, &ParseError{Line: s, Msg: "unknown time constraint kind " + head}
	}

	comma := strings.IndexByte(body, ',')
	if comma < 0 {
		return TimeConstraint{}, &ParseError{Line: s, Msg: "time constraint missing consequence"}
	}
	spanStr := body[:comma]
	consStr := body[comma+1:]

	tc := TimeConstraint{Kind: kind}

	// Split off the optional :grace suffix.
	if colon := strings.IndexByte(spanStr, ':'); colon >= 0 {
		grace, err := ParseDuration(spanStr[colon+1:])
		if err != nil {
			return TimeConstraint{}, &ParseError{Line: s, Msg: "invalid grace period"}
		}
		tc.Grace = &grace
		spanStr = spanStr[:colon]
	}

	switch kind {
	case ConstraintDeadline:
		if _, err := time.Parse("2006-01-02", spanStr); err != nil {
			return TimeConstraint{}, &ParseError{Line: s, Msg: "invalid due date " + spanStr}
		}
		tc.DueDate = spanStr
	case ConstraintWindow:
		d, err := ParseDuration(spanStr)
		if err != nil {
			return TimeConstraint{}, &ParseError{Line: s, Msg: "invalid window duration"}
		}
		tc.Window = d
	case ConstraintRecurring:
		d, err := ParseDuration(spanStr)
		if err != nil {
			return TimeConstraint{}, &ParseError{Line: s, Msg: "invalid recurrence interval"}
		}
		tc.Interval = d
	}

	if kind == ConstraintRecurring && strings.HasSuffix(consStr, ",stack") {
		tc.Stack = true
		consStr = strings.TrimSuffix(consStr, ",stack")
	}

	switch {
	case consStr == string(ConsequenceSevere):
		tc.Consequence = ConsequenceSevere
	case consStr == string(ConsequenceWarning):
		tc.Consequence = ConsequenceWarning
	case strings.HasPrefix(consStr, "escalate:"):
		rate, ok := PriorityFromGlyph(strings.TrimPrefix(consStr, "escalate:"))
		if !ok {
			return TimeConstraint{}, &ParseError{Line: s, Msg: "invalid escalation rate"}
		}
		tc.Consequence = ConsequenceEscalating
		tc.Rate = rate
	default:
		return TimeConstraint{}, &ParseError{Line: s, Msg: "invalid consequence " + consStr}
	}

	return tc, nil
}

// String renders the constraint in notation form.
func (tc TimeConstraint) String() string {
	var b strings.Builder
	switch tc.Kind {
	case ConstraintWindow:
		b.WriteString("window(")
		b.WriteString(tc.Window.String())
	case ConstraintDeadline:
		b.WriteString("due(")
		b.WriteString(tc.DueDate)
	case ConstraintRecurring:
		b.WriteString("every(")
		b.WriteString(tc.Interval.String())
	}
	if tc.Grace != nil {
		b.WriteString(":")
		b.WriteString(tc.Grace.String())
	}
	b.WriteString(",")
	switch tc.Consequence {
	case ConsequenceEscalating:
		b.WriteString("escalate:")
		b.WriteString(tc.Rate.Glyph())
	default:
		b.WriteString(string(tc.Consequence))
	}
	if tc.Kind == ConstraintRecurring && tc.Stack {
		b.WriteString(",stack")
	}
	b.WriteString(")")
	return b.String()
}
