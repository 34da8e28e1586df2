package types

import (
	"sort"
	"strings"
	"time"
)

// LogEntry is an append-only tagged record. Identity is structural: there is
// no separate ID and duplicate entries are not rejected. The Occlude flag is
// positional (which file the entry is written to) and never serialized.
type LogEntry struct {
	Session   string
	Timestamp time.Time
	Message   string
	Tags      map[string]bool
	Metadata  map[string]string
	Occlude   bool
}

// NewLogEntry creates an entry stamped with the current UTC time. The
// session tag is always included in the tag set.
func NewLogEntry(session, message string, extraTags []string, occlude bool) *LogEntry {
	tags := map[string]bool{session: true}
	for _, t := range extraTags {
		if t != "" {
			tags[t] = true
		}
	}
	return &LogEntry{
		Session:   session,
		Timestamp: time.Now().UTC(),
		Message:   message,
		Tags:      tags,
		Metadata:  map[string]string{},
		Occlude:   occlude,
	}
}

// HasTag reports whether the entry carries the tag.
func (e *LogEntry) HasTag(tag string) bool {
	return e.Tags[tag]
}

// HasAnyTag reports whether the entry carries at least one of the tags.
func (e *LogEntry) HasAnyTag(tags []string) bool {
	for _, t := range tags {
		if e.Tags[t] {
			return true
		}
	}
	return false
}

// HasAllTags reports whether the entry carries every tag.
func (e *LogEntry) HasAllTags(tags []string) bool {
	for _, t := range tags {
		if !e.Tags[t] {
			return false
		}
	}
	return true
}

// AddTag adds a tag to the entry.
func (e *LogEntry) AddTag(tag string) {
	if e.Tags == nil {
		e.Tags = map[string]bool{}
	}
	e.Tags[tag] = true
}

// RemoveTag removes a tag from the entry.
func (e *LogEntry) RemoveTag(tag string) {
	delete(e.Tags, tag)
}

// SetOcclude flips the archive flag.
func (e *LogEntry) SetOcclude(occlude bool) {
	e.Occlude = occlude
}

// SortedTags returns the entry's tags in lexical order.
func (e *LogEntry) SortedTags() []string {
	out := make([]string, 0, len(e.Tags))
	for t := range e.Tags {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Clone returns a deep copy of the entry.
func (e *LogEntry) Clone() *LogEntry {
	cp := *e
	cp.Tags = make(map[string]bool, len(e.Tags))
	for t := range e.Tags {
		cp.Tags[t] = true
	}
	cp.Metadata = make(map[string]string, len(e.Metadata))
	for k, v := range e.Metadata {
		cp.Metadata[k] = v
	}
	return &cp
}

// String renders the entry for display.
func (e *LogEntry) String() string {
	return e.Timestamp.Format(time.RFC3339) + " - " + e.Message + " (" + strings.Join(e.SortedTags(), ", ") + ")"
}
