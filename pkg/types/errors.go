package types

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for conditions that carry no payload.
var (
	// ErrNoMatch is returned when a substring lookup finds no item.
	ErrNoMatch = errors.New("no matching item")

	// ErrItemNotFound is returned when a mutation references an item ID
	// absent from the graph.
	ErrItemNotFound = errors.New("item not found")

	// ErrItemExists is returned when adding an item whose ID is taken.
	ErrItemExists = errors.New("item already exists")
)

// ParseError reports a malformed line, duration, or constraint expression.
// Line carries the offending text.
type ParseError struct {
	Line string
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error: %s in %q", e.Msg, e.Line)
}

// CycleError reports a rejected mutation that would create a cycle among
// strict edges. Path is the full cycle with the first ID repeated at the end.
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	return "cycle detected in dependencies: " + strings.Join(e.Path, " -> ")
}

// AmbiguousMatchError reports a substring lookup that matched more than one
// item.
type AmbiguousMatchError struct {
	Query string
	IDs   []string
}

func (e *AmbiguousMatchError) Error() string {
	return fmt.Sprintf("multiple items match %q: %s", e.Query, strings.Join(e.IDs, ", "))
}

// StorageError reports a workspace-level failure: a circular or missing
// include, or a failed multi-file save.
type StorageError struct {
	Path string
	Msg  string
	Err  error
}

func (e *StorageError) Error() string {
	s := "storage error"
	if e.Path != "" {
		s += " in " + e.Path
	}
	if e.Msg != "" {
		s += ": " + e.Msg
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

func (e *StorageError) Unwrap() error { return e.Err }

// IncludeCycleError reports a circular #include chain at load time. Chain
// lists the files along the cycle, the first repeated at the end.
type IncludeCycleError struct {
	Chain []string
}

func (e *IncludeCycleError) Error() string {
	return "circular include: " + strings.Join(e.Chain, " -> ")
}
