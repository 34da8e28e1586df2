package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		seconds float64
		out     string
	}{
		{"seconds", "30s", 30, "30s"},
		{"minutes", "5min", 300, "5min"},
		{"hours", "2h", 7200, "2h"},
		{"days", "1d", 86400, "1d"},
		{"weeks", "2w", 1209600, "2w"},
		{"months", "3mo", 7776000, "3mo"},
		{"years", "1y", 31536000, "1y"},
		{"fractional", "1.5h", 5400, "1.5h"},
		{"compound", "6mo8d3.5s", 6*2592000 + 8*86400 + 3.5, "6mo8d3.5s"},
		{"alias hour", "2hours", 7200, "2h"},
		{"alias days", "3days", 259200, "3d"},
		{"alias minutes", "10minutes", 600, "10min"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := ParseDuration(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.seconds, d.Seconds())
			assert.Equal(t, tt.out, d.String())
		})
	}
}

func TestParseDurationErrors(t *testing.T) {
	for _, input := range []string{"", "d", "5", "5x", "5d3", "abc"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseDuration(input)
			require.Error(t, err)
			var perr *ParseError
			assert.ErrorAs(t, err, &perr)
		})
	}
}

func TestDurationZero(t *testing.T) {
	var d Duration
	assert.True(t, d.IsZero())
	assert.Equal(t, "0s", d.String())
	assert.Equal(t, float64(0), d.Seconds())
}

func TestParseDurationNormalizesZero(t *testing.T) {
	for _, input := range []string{"0s", "0d", "0mo0s"} {
		t.Run(input, func(t *testing.T) {
			d, err := ParseDuration(input)
			require.NoError(t, err)
			assert.True(t, d.IsZero())
			assert.Equal(t, Duration{}, d)
			assert.Equal(t, "0s", d.String())
		})
	}
}

func TestDurationCompare(t *testing.T) {
	day, err := ParseDuration("1d")
	require.NoError(t, err)
	hours, err := ParseDuration("24h")
	require.NoError(t, err)
	week, err := ParseDuration("1w")
	require.NoError(t, err)

	assert.True(t, day.Equal(hours))
	assert.True(t, day.Less(week))
	assert.False(t, week.Less(day))
}

func TestDurationAddCollapses(t *testing.T) {
	a, err := ParseDuration("3d")
	require.NoError(t, err)
	b, err := ParseDuration("4d")
	require.NoError(t, err)

	sum := a.Add(b)
	assert.Equal(t, "1w", sum.String())

	c, err := ParseDuration("12h")
	require.NoError(t, err)
	d, err := ParseDuration("12h")
	require.NoError(t, err)
	assert.Equal(t, "1d", c.Add(d).String())
}

func TestDurationCloneIsIndependent(t *testing.T) {
	d, err := ParseDuration("2w3d")
	require.NoError(t, err)
	cp := d.Clone()
	cp.Parts[0].Amount = 99
	assert.Equal(t, "2w3d", d.String())
}
