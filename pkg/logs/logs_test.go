package logs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/giantt/pkg/types"
)

func entryAt(session, message string, ts time.Time, tags ...string) *types.LogEntry {
	tagSet := map[string]bool{session: true}
	for _, t := range tags {
		tagSet[t] = true
	}
	return &types.LogEntry{
		Session:   session,
		Timestamp: ts,
		Message:   message,
		Tags:      tagSet,
		Metadata:  map[string]string{},
	}
}

func TestAddKeepsTimestampOrder(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	c := NewCollection()
	c.Add(entryAt("s1", "second", base.Add(time.Hour)))
	c.Add(entryAt("s1", "first", base))
	c.Add(entryAt("s1", "third", base.Add(2*time.Hour)))

	require.Equal(t, 3, c.Len())
	var messages []string
	for _, e := range c.Entries() {
		messages = append(messages, e.Message)
	}
	assert.Equal(t, []string{"first", "second", "third"}, messages)
}

func TestAddAll(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	c := NewCollection()
	c.Add(entryAt("s1", "b", base.Add(time.Minute)))
	c.AddAll([]*types.LogEntry{
		entryAt("s2", "c", base.Add(2*time.Minute)),
		entryAt("s2", "a", base),
	})

	var messages []string
	for _, e := range c.Entries() {
		messages = append(messages, e.Message)
	}
	assert.Equal(t, []string{"a", "b", "c"}, messages)
}

func TestCreateIncludesSessionTag(t *testing.T) {
	c := NewCollection()
	entry := c.Create("deploy-2026-03", "Rolled out v2", []string{"release"}, false)

	assert.Equal(t, 1, c.Len())
	assert.Equal(t, "deploy-2026-03", entry.Session)
	assert.True(t, entry.HasTag("deploy-2026-03"))
	assert.True(t, entry.HasTag("release"))
	assert.False(t, entry.Occlude)
	assert.WithinDuration(t, time.Now().UTC(), entry.Timestamp, 5*time.Second)
}

func TestQueries(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	c := NewCollection()
	c.Add(entryAt("alpha", "Fixed the login bug", base, "bugfix"))
	c.Add(entryAt("alpha", "Deployed to staging", base.Add(time.Hour), "deploy"))
	c.Add(entryAt("beta", "Deployed to production", base.Add(2*time.Hour), "deploy", "release"))

	assert.Len(t, c.BySession("alpha"), 2)
	assert.Len(t, c.BySession("beta"), 1)
	assert.Empty(t, c.BySession("gamma"))

	assert.Len(t, c.ByTags([]string{"deploy"}, false), 2)
	assert.Len(t, c.ByTags([]string{"deploy", "release"}, true), 1)
	assert.Len(t, c.ByTags([]string{"bugfix", "release"}, false), 2)

	assert.Len(t, c.BySubstring("deployed"), 2)
	assert.Len(t, c.BySubstring("LOGIN"), 1)
	assert.Empty(t, c.BySubstring("rollback"))

	ranged := c.ByDateRange(base.Add(30*time.Minute), base.Add(90*time.Minute))
	require.Len(t, ranged, 1)
	assert.Equal(t, "Deployed to staging", ranged[0].Message)

	open := c.ByDateRange(base.Add(30*time.Minute), time.Time{})
	assert.Len(t, open, 2)
}

func TestIncludedOccludedSplit(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	c := NewCollection()
	kept := entryAt("s1", "keep", base)
	archived := entryAt("s1", "archive", base.Add(time.Minute))
	archived.Occlude = true
	c.AddAll([]*types.LogEntry{kept, archived})

	require.Len(t, c.Included(), 1)
	assert.Equal(t, "keep", c.Included()[0].Message)
	require.Len(t, c.Occluded(), 1)
	assert.Equal(t, "archive", c.Occluded()[0].Message)
}

func TestParseLine(t *testing.T) {
	line := `{"s":"alpha","t":"2026-03-01T10:00:00Z","m":"Did the thing","tags":["alpha","work"],"meta":{"host":"dev1"}}`
	entry, err := ParseLine(line, true)
	require.NoError(t, err)
	assert.Equal(t, "alpha", entry.Session)
	assert.Equal(t, time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC), entry.Timestamp.UTC())
	assert.Equal(t, "Did the thing", entry.Message)
	assert.True(t, entry.HasTag("work"))
	assert.Equal(t, "dev1", entry.Metadata["host"])
	assert.True(t, entry.Occlude)
}

func TestParseLineErrors(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"not json", "plainly not json"},
		{"truncated", `{"s":"alpha","t":"2026-`},
		{"bad timestamp", `{"s":"a","t":"yesterday","m":"x","tags":[],"meta":{}}`},
		{"missing timestamp", `{"s":"a","m":"x","tags":[],"meta":{}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseLine(tt.line, false)
			var parseErr *types.ParseError
			require.ErrorAs(t, err, &parseErr)
		})
	}
}

func TestParseLineNilMetadata(t *testing.T) {
	entry, err := ParseLine(`{"s":"a","t":"2026-03-01T10:00:00Z","m":"x","tags":null}`, false)
	require.NoError(t, err)
	assert.NotNil(t, entry.Metadata)
	assert.Empty(t, entry.Tags)
}

func TestSerializeLineRoundTrip(t *testing.T) {
	orig := entryAt("alpha", "Round and round", time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC), "zz", "aa")
	orig.Metadata["k"] = "v"

	line := SerializeLine(orig)
	again, err := ParseLine(line, false)
	require.NoError(t, err)
	assert.Equal(t, orig.Session, again.Session)
	assert.True(t, orig.Timestamp.Equal(again.Timestamp))
	assert.Equal(t, orig.Message, again.Message)
	assert.Equal(t, orig.Tags, again.Tags)
	assert.Equal(t, orig.Metadata, again.Metadata)

	// Stable output: tags serialize sorted.
	assert.Equal(t, line, SerializeLine(again))
}
