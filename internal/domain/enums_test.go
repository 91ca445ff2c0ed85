package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatusCategory(t *testing.T) {
	cases := []struct {
		in   string
		want StatusCategory
	}{
		{"To Do", CategoryTodo},
		{"todo", CategoryTodo},
		{"TO_DO", CategoryTodo},
		{"In Progress", CategoryInProgress},
		{"in-progress", CategoryInProgress},
		{"Done", CategoryDone},
		{" done ", CategoryDone},
		{"Blocked", CategoryUnknown},
		{"", CategoryUnknown},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ParseStatusCategory(tc.in), "input=%q", tc.in)
	}
}

func TestStatusCategory_String(t *testing.T) {
	assert.Equal(t, "To Do", CategoryTodo.String())
	assert.Equal(t, "In Progress", CategoryInProgress.String())
	assert.Equal(t, "Done", CategoryDone.String())
	assert.Equal(t, "Unknown", StatusCategory(42).String())
}

func TestParseGranularity(t *testing.T) {
	for _, in := range []string{"weeks", "week", "W"} {
		g, err := ParseGranularity(in)
		require.NoError(t, err)
		assert.Equal(t, GranularityWeeks, g)
	}
	g, err := ParseGranularity(" Months ")
	require.NoError(t, err)
	assert.Equal(t, GranularityMonths, g)

	_, err = ParseGranularity("days")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "days")
}

func TestGranularity_NextCycles(t *testing.T) {
	assert.Equal(t, GranularityMonths, GranularityWeeks.Next())
	assert.Equal(t, GranularityYears, GranularityMonths.Next())
	assert.Equal(t, GranularityWeeks, GranularityYears.Next())
	assert.Equal(t, GranularityMonths, Granularity("bogus").Next())
}

func TestParseSprintStatus(t *testing.T) {
	cases := map[string]SprintStatus{
		"":            SprintNotStarted,
		"notStarted":  SprintNotStarted,
		"not-started": SprintNotStarted,
		"started":     SprintStarted,
		"active":      SprintStarted,
		"completed":   SprintCompleted,
	}
	for in, want := range cases {
		got, err := ParseSprintStatus(in)
		require.NoError(t, err, "input=%q", in)
		assert.Equal(t, want, got)
	}
	_, err := ParseSprintStatus("cancelled")
	assert.Error(t, err)
}

func TestDateOnly_DropsClockAndZone(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*3600)
	in := time.Date(2024, 3, 10, 23, 30, 0, 0, loc)
	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), DateOnly(in))
	assert.Nil(t, DateOnlyPtr(nil))
}

func TestDaysBetween(t *testing.T) {
	a := time.Date(2024, 2, 27, 18, 0, 0, 0, time.UTC)
	b := time.Date(2024, 3, 1, 1, 0, 0, 0, time.UTC)
	assert.Equal(t, 3, DaysBetween(a, b))
	assert.Equal(t, -3, DaysBetween(b, a))
	assert.Equal(t, 0, DaysBetween(a, a))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-01-20")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC), d)

	d, err = ParseDate("2024-01-20T15:04:05Z")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseDate("20/01/2024")
	assert.Error(t, err)

	blank := "  "
	p, err := ParseOptionalDate(&blank)
	require.NoError(t, err)
	assert.Nil(t, p)
}
