package hierarchy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpansion_ToggleReturnsNewValue(t *testing.T) {
	base := NewExpansion()
	opened := base.Toggle("p1")

	assert.False(t, base.IsExpanded("p1"), "original must be untouched")
	assert.True(t, opened.IsExpanded("p1"))

	closed := opened.Toggle("p1")
	assert.False(t, closed.IsExpanded("p1"))
	assert.True(t, opened.IsExpanded("p1"))
}

func TestExpansion_ExpandCollapse(t *testing.T) {
	e := NewExpansion("a").Expand("b", "c", "")
	assert.Equal(t, []string{"a", "b", "c"}, e.IDs())

	e2 := e.Collapse("b", "missing")
	assert.Equal(t, []string{"a", "c"}, e2.IDs())
	assert.Equal(t, 3, e.Len())
}

func TestExpansion_ZeroValueIsUsable(t *testing.T) {
	var e Expansion
	assert.False(t, e.IsExpanded("x"))
	assert.Equal(t, 0, e.Len())
	assert.True(t, e.Toggle("x").IsExpanded("x"))
}

func TestExpansion_StaleIDsAreHarmless(t *testing.T) {
	h := sampleHierarchy()
	exp := NewExpansion("gone-project", "gone-sprint")

	rows := Rows(h, exp)
	for _, r := range rows {
		assert.NotEqual(t, RowSprint, r.Kind)
		assert.NotEqual(t, RowTask, r.Kind)
	}
	assert.Equal(t, 2, exp.Len())
}

func TestExpandAll(t *testing.T) {
	h := sampleHierarchy()
	e := ExpandAll(h)

	require.True(t, e.IsExpanded(BacklogGroupID))
	for _, p := range h.Projects {
		assert.True(t, e.IsExpanded(p.ID))
		for _, s := range p.Sprints {
			assert.True(t, e.IsExpanded(s.ID))
		}
	}
	// 2 projects + 3 sprints + backlog group
	assert.Equal(t, 6, e.Len())
}
