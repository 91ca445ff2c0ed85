package formatter

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"github.com/alexanderramin/gantt/internal/hierarchy"
)

func TestRowLabel_Glyphs(t *testing.T) {
	collapsed := stripANSI(RowLabel(hierarchy.RowProject, 0, "Website", true, false, 20))
	expanded := stripANSI(RowLabel(hierarchy.RowProject, 0, "Website", true, true, 20))
	leaf := stripANSI(RowLabel(hierarchy.RowTask, 2, "WEB-1 Fix", false, false, 20))

	assert.Equal(t, "▸ Website", trimRight(collapsed))
	assert.Equal(t, "▾ Website", trimRight(expanded))
	assert.Equal(t, "      WEB-1 Fix", trimRight(leaf))
}

func TestRowLabel_FixedWidth(t *testing.T) {
	for _, label := range []string{"x", "A very long sprint name that overflows"} {
		got := RowLabel(hierarchy.RowSprint, 1, label, true, false, 16)
		assert.Equal(t, 16, lipgloss.Width(got), label)
	}
}

func trimRight(s string) string {
	for len(s) > 0 && s[len(s)-1] == ' ' {
		s = s[:len(s)-1]
	}
	return s
}
