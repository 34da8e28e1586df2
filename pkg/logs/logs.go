// Package logs holds the append-only log collection: timestamp-ordered
// insertion, tag and session queries, and the JSONL line codec shared with
// the storage layer.
package logs

import (
	"encoding/json"
	"sort"
	"strings"
	"time"

	"github.com/mesh-intelligence/giantt/pkg/types"
)

// Collection is an ordered list of log entries, kept sorted by timestamp.
type Collection struct {
	entries []*types.LogEntry
}

// NewCollection returns an empty collection.
func NewCollection() *Collection {
	return &Collection{}
}

// Add inserts the entry at its timestamp position.
func (c *Collection) Add(entry *types.LogEntry) {
	i := sort.Search(len(c.entries), func(i int) bool {
		return c.entries[i].Timestamp.After(entry.Timestamp)
	})
	c.entries = append(c.entries, nil)
	copy(c.entries[i+1:], c.entries[i:])
	c.entries[i] = entry
}

// AddAll inserts multiple entries and re-sorts once.
func (c *Collection) AddAll(entries []*types.LogEntry) {
	c.entries = append(c.entries, entries...)
	sort.SliceStable(c.entries, func(i, j int) bool {
		return c.entries[i].Timestamp.Before(c.entries[j].Timestamp)
	})
}

// Create builds a new entry stamped now, adds it, and returns it.
func (c *Collection) Create(session, message string, extraTags []string, occlude bool) *types.LogEntry {
	entry := types.NewLogEntry(session, message, extraTags, occlude)
	c.Add(entry)
	return entry
}

// Len returns the number of entries.
func (c *Collection) Len() int {
	return len(c.entries)
}

// Entries returns all entries in timestamp order.
func (c *Collection) Entries() []*types.LogEntry {
	return c.entries
}

// Included returns the entries whose occlude flag is unset.
func (c *Collection) Included() []*types.LogEntry {
	var out []*types.LogEntry
	for _, e := range c.entries {
		if !e.Occlude {
			out = append(out, e)
		}
	}
	return out
}

// Occluded returns the archived entries.
func (c *Collection) Occluded() []*types.LogEntry {
	var out []*types.LogEntry
	for _, e := range c.entries {
		if e.Occlude {
			out = append(out, e)
		}
	}
	return out
}

// BySession returns the entries carrying the given session tag.
func (c *Collection) BySession(session string) []*types.LogEntry {
	var out []*types.LogEntry
	for _, e := range c.entries {
		if e.Session == session {
			out = append(out, e)
		}
	}
	return out
}

// ByTags returns entries matching the tag list. When requireAll is set an
// entry must carry every tag; otherwise any one tag matches.
func (c *Collection) ByTags(tags []string, requireAll bool) []*types.LogEntry {
	var out []*types.LogEntry
	for _, e := range c.entries {
		if (requireAll && e.HasAllTags(tags)) || (!requireAll && e.HasAnyTag(tags)) {
			out = append(out, e)
		}
	}
	return out
}

// ByDateRange returns entries with start <= timestamp <= end. A zero end
// means now.
func (c *Collection) ByDateRange(start, end time.Time) []*types.LogEntry {
	if end.IsZero() {
		end = time.Now().UTC()
	}
	var out []*types.LogEntry
	for _, e := range c.entries {
		if !e.Timestamp.Before(start) && !e.Timestamp.After(end) {
			out = append(out, e)
		}
	}
	return out
}

// BySubstring returns entries whose message contains the substring,
// case-insensitively.
func (c *Collection) BySubstring(sub string) []*types.LogEntry {
	lower := strings.ToLower(sub)
	var out []*types.LogEntry
	for _, e := range c.entries {
		if strings.Contains(strings.ToLower(e.Message), lower) {
			out = append(out, e)
		}
	}
	return out
}

// wireEntry is the JSONL representation. Keys stay single-letter for
// compactness; the occlude flag is positional and never serialized.
type wireEntry struct {
	Session   string            `json:"s"`
	Timestamp string            `json:"t"`
	Message   string            `json:"m"`
	Tags      []string          `json:"tags"`
	Metadata  map[string]string `json:"meta"`
}

// ParseLine decodes one JSONL log line. The occlude flag comes from which
// file the line was read from.
func ParseLine(line string, occlude bool) (*types.LogEntry, error) {
	var w wireEntry
	if err := json.Unmarshal([]byte(line), &w); err != nil {
		return nil, &types.ParseError{Line: line, Msg: "invalid log line"}
	}
	ts, err := time.Parse(time.RFC3339Nano, w.Timestamp)
	if err != nil {
		return nil, &types.ParseError{Line: line, Msg: "invalid log timestamp"}
	}
	tags := make(map[string]bool, len(w.Tags))
	for _, t := range w.Tags {
		tags[t] = true
	}
	meta := w.Metadata
	if meta == nil {
		meta = map[string]string{}
	}
	return &types.LogEntry{
		Session:   w.Session,
		Timestamp: ts,
		Message:   w.Message,
		Tags:      tags,
		Metadata:  meta,
		Occlude:   occlude,
	}, nil
}

// SerializeLine encodes one entry as a JSONL line with sorted tags.
func SerializeLine(entry *types.LogEntry) string {
	w := wireEntry{
		Session:   entry.Session,
		Timestamp: entry.Timestamp.Format(time.RFC3339Nano),
		Message:   entry.Message,
		Tags:      entry.SortedTags(),
		Metadata:  entry.Metadata,
	}
	b, _ := json.Marshal(w)
	return string(b)
}
