package types

import (
	"strconv"
	"strings"
)

// unitSeconds is the fixed unit table. Months and years are calendar
// approximations (30 and 365 days).
var unitSeconds = map[string]float64{
	"s":   1,
	"min": 60,
	"h":   3600,
	"d":   86400,
	"w":   604800,
	"mo":  2592000,
	"y":   31536000,
}

// unitAliases normalizes long-form unit spellings to canonical units.
var unitAliases = map[string]string{
	"hr":      "h",
	"hour":    "h",
	"hours":   "h",
	"minute":  "min",
	"minutes": "min",
	"day":     "d",
	"days":    "d",
	"week":    "w",
	"weeks":   "w",
	"month":   "mo",
	"months":  "mo",
	"year":    "y",
	"years":   "y",
}

// unitsDescending lists canonical units from largest to smallest, used when
// collapsing a duration sum back to a single part.
var unitsDescending = []string{"y", "mo", "w", "d", "h", "min", "s"}

// DurationPart is a single amount/unit pair within a compound duration.
type DurationPart struct {
	Amount float64
	Unit   string
}

// NewDurationPart normalizes the unit and validates it against the unit
// table.
func NewDurationPart(amount float64, unit string) (DurationPart, error) {
	if canonical, ok := unitAliases[unit]; ok {
		unit = canonical
	}
	if _, ok := unitSeconds[unit]; !ok {
		return DurationPart{}, &ParseError{Line: unit, Msg: "invalid duration unit"}
	}
	return DurationPart{Amount: amount, Unit: unit}, nil
}

// Seconds returns the part's length in seconds.
func (p DurationPart) Seconds() float64 {
	return p.Amount * unitSeconds[p.Unit]
}

// String renders the part in notation form; whole amounts print without a
// decimal point.
func (p DurationPart) String() string {
	return strconv.FormatFloat(p.Amount, 'f', -1, 64) + p.Unit
}

// Duration is an ordered sum of parts, e.g. "6mo8d3.5s". A duration with no
// parts is valid and renders as "0s".
type Duration struct {
	Parts []DurationPart
}

// ParseDuration scans a compound duration string. Each part is a decimal
// number immediately followed by a unit, with no separators between parts.
func ParseDuration(s string) (Duration, error) {
	if s == "" {
		return Duration{}, &ParseError{Line: s, Msg: "empty duration"}
	}
	var parts []DurationPart
	i := 0
	for i < len(s) {
		start := i
		for i < len(s) && (isDigit(s[i]) || s[i] == '.') {
			i++
		}
		if i == start {
			return Duration{}, &ParseError{Line: s, Msg: "expected number in duration"}
		}
		amount, err := strconv.ParseFloat(s[start:i], 64)
		if err != nil {
			return Duration{}, &ParseError{Line: s, Msg: "invalid duration amount"}
		}
		start = i
		for i < len(s) && isLetter(s[i]) {
			i++
		}
		if i == start {
			return Duration{}, &ParseError{Line: s, Msg: "missing duration unit"}
		}
		part, err := NewDurationPart(amount, s[start:i])
		if err != nil {
			return Duration{}, &ParseError{Line: s, Msg: "invalid duration unit " + strconv.Quote(s[start:i])}
		}
		parts = append(parts, part)
	}
	d := Duration{Parts: parts}
	// An all-zero input like "0s" normalizes to the zero value so it is
	// indistinguishable from a duration that was never set.
	if d.Seconds() == 0 {
		return Duration{}, nil
	}
	return d, nil
}

// Seconds returns the total length in seconds.
func (d Duration) Seconds() float64 {
	var total float64
	for _, p := range d.Parts {
		total += p.Seconds()
	}
	return total
}

// IsZero reports whether the duration has no parts.
func (d Duration) IsZero() bool {
	return len(d.Parts) == 0
}

// Clone returns a deep copy of the duration.
func (d Duration) Clone() Duration {
	return Duration{Parts: append([]DurationPart(nil), d.Parts...)}
}

// Equal compares two durations by total seconds.
func (d Duration) Equal(other Duration) bool {
	return d.Seconds() == other.Seconds()
}

// Less compares two durations by total seconds.
func (d Duration) Less(other Duration) bool {
	return d.Seconds() < other.Seconds()
}

// Add sums two durations and collapses the result to the largest unit that
// divides it, falling back to seconds.
func (d Duration) Add(other Duration) Duration {
	total := d.Seconds() + other.Seconds()
	for _, unit := range unitsDescending {
		if total >= unitSeconds[unit] {
			return Duration{Parts: []DurationPart{{Amount: total / unitSeconds[unit], Unit: unit}}}
		}
	}
	return Duration{Parts: []DurationPart{{Amount: total, Unit: "s"}}}
}

// String renders the duration in notation form.
func (d Duration) String() string {
	if len(d.Parts) == 0 {
		return "0s"
	}
	var b strings.Builder
	for _, p := range d.Parts {
		b.WriteString(p.String())
	}
	return b.String()
}

func isDigit(c byte) bool  { return c >= '0' && c <= '9' }
func isLetter(c byte) bool { return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }
