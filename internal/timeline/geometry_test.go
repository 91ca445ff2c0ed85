package timeline

import (
	"testing"
	"time"

	"github.com/alexanderramin/gantt/internal/domain"
	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(t time.Time) *time.Time { return &t }

func TestPosition_FullSpanIsZeroToHundred(t *testing.T) {
	cols := GenerateColumns(domain.GranularityWeeks, day(2024, 1, 1), day(2024, 1, 20))
	span, _ := Span(cols)

	bar := Position(&span.Start, &span.End, cols)
	assert.Equal(t, "0%", bar.LeftPct())
	assert.Equal(t, "100%", bar.WidthPct())
}

func TestPosition_Proportional(t *testing.T) {
	// 2024-01-01 .. 2024-01-21 spans 20 days.
	cols := GenerateColumns(domain.GranularityWeeks, day(2024, 1, 1), day(2024, 1, 20))

	bar := Position(ptr(day(2024, 1, 6)), ptr(day(2024, 1, 11)), cols)
	assert.InDelta(t, 25.0, bar.Left, 1e-9)
	assert.InDelta(t, 25.0, bar.Width, 1e-9)
	assert.Equal(t, "25%", bar.LeftPct())
}

func TestPosition_EmptyColumns(t *testing.T) {
	bar := Position(ptr(day(2024, 1, 1)), ptr(day(2024, 1, 2)), nil)
	assert.Equal(t, "0%", bar.LeftPct())
	assert.Equal(t, "0%", bar.WidthPct())
	assert.True(t, bar.Empty())
}

func TestPosition_MissingDatesIsZeroWidth(t *testing.T) {
	cols := GenerateColumns(domain.GranularityMonths, day(2024, 1, 1), day(2024, 3, 1))
	assert.Equal(t, Bar{}, Position(nil, ptr(day(2024, 2, 1)), cols))

	startOnly := Position(ptr(day(2024, 2, 1)), nil, cols)
	assert.True(t, startOnly.Empty())
	assert.InDelta(t, pctOfSpan(cols, 31), startOnly.Left, 1e-9, "left still follows the start")
}

func TestPosition_EndBeforeStartIsZeroWidth(t *testing.T) {
	cols := GenerateColumns(domain.GranularityMonths, day(2024, 1, 1), day(2024, 3, 1))
	bar := Position(ptr(day(2024, 2, 10)), ptr(day(2024, 2, 1)), cols)
	assert.True(t, bar.Empty())
	assert.InDelta(t, pctOfSpan(cols, 40), bar.Left, 1e-9)
}

// pctOfSpan converts a day offset from the first column into percent.
func pctOfSpan(cols []Column, days float64) float64 {
	span, _ := Span(cols)
	return days / (span.End.Sub(span.Start).Hours() / 24) * 100
}

func TestPosition_OpenOrInvertedEndsKeepStartOrder(t *testing.T) {
	cols := GenerateColumns(domain.GranularityMonths, day(2024, 1, 1), day(2024, 6, 30))

	a := Position(ptr(day(2024, 2, 1)), ptr(day(2024, 2, 10)), cols)
	b := Position(ptr(day(2024, 4, 1)), nil, cols)
	c := Position(ptr(day(2024, 5, 1)), ptr(day(2024, 4, 1)), cols)
	assert.Less(t, a.Left, b.Left)
	assert.Less(t, b.Left, c.Left)
}

func TestPosition_OutsideRangeIsNotClamped(t *testing.T) {
	cols := GenerateColumns(domain.GranularityWeeks, day(2024, 1, 1), day(2024, 1, 20))

	bar := Position(ptr(day(2023, 12, 27)), ptr(day(2024, 2, 5)), cols)
	assert.Less(t, bar.Left, 0.0)
	assert.Greater(t, bar.Right(), 100.0)
}

func TestPosition_WithClamp(t *testing.T) {
	cols := GenerateColumns(domain.GranularityWeeks, day(2024, 1, 1), day(2024, 1, 20))

	bar := Position(ptr(day(2023, 12, 27)), ptr(day(2024, 2, 5)), cols, WithClamp())
	assert.Equal(t, 0.0, bar.Left)
	assert.Equal(t, 100.0, bar.Width)

	after := Position(ptr(day(2024, 3, 1)), ptr(day(2024, 3, 5)), cols, ClampIf(true))
	assert.Equal(t, 100.0, after.Left)
	assert.True(t, after.Empty())

	before := Position(ptr(day(2023, 3, 1)), ptr(day(2023, 3, 5)), cols, ClampIf(true))
	assert.Equal(t, 0.0, before.Left)
	assert.True(t, before.Empty())
}

func TestTaskBar_UsesDueDateWhenNoEnd(t *testing.T) {
	cols := GenerateColumns(domain.GranularityWeeks, day(2024, 1, 1), day(2024, 1, 20))
	task := &domain.Task{StartDate: ptr(day(2024, 1, 1)), DueDate: ptr(day(2024, 1, 11))}

	bar := TaskBar(task, cols)
	assert.InDelta(t, 50.0, bar.Width, 1e-9)
}

func TestSprintAndProjectBar(t *testing.T) {
	cols := GenerateColumns(domain.GranularityWeeks, day(2024, 1, 1), day(2024, 1, 20))
	s := &domain.Sprint{StartDate: ptr(day(2024, 1, 1)), EndDate: ptr(day(2024, 1, 21))}
	p := &domain.Project{StartDate: ptr(day(2024, 1, 11)), EndDate: ptr(day(2024, 1, 21))}

	assert.Equal(t, "100%", SprintBar(s, cols).WidthPct())
	assert.Equal(t, "50%", ProjectBar(p, cols).LeftPct())
}

func TestBar_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(Bar{Left: 12.5, Width: 100})
	require.NoError(t, err)
	assert.JSONEq(t, `{"left":"12.5%","width":"100%"}`, string(data))

	var back Bar
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, Bar{Left: 12.5, Width: 100}, back)

	require.NoError(t, json.Unmarshal([]byte(`{"left":"-3.25%","width":"0%"}`), &back))
	assert.Equal(t, Bar{Left: -3.25}, back)

	assert.Error(t, json.Unmarshal([]byte(`{"left":"wide","width":"1%"}`), &back))
}
