package formatter

import (
	"strings"

	"github.com/alexanderramin/gantt/internal/hierarchy"
)

const (
	glyphCollapsed = "▸ "
	glyphExpanded  = "▾ "
	glyphLeaf      = "  "
	indentUnit     = "  "
)

// RowLabel renders a row's label indented by depth with an expand glyph for
// expandable rows, padded or truncated to width.
func RowLabel(kind hierarchy.RowKind, depth int, label string, expandable, expanded bool, width int) string {
	glyph := glyphLeaf
	if expandable {
		glyph = glyphCollapsed
		if expanded {
			glyph = glyphExpanded
		}
	}
	text := Truncate(strings.Repeat(indentUnit, depth)+glyph+label, width)
	text = PadRight(text, width)
	switch kind {
	case hierarchy.RowProject:
		return StyleBold.Render(text)
	case hierarchy.RowBacklog:
		return StyleDim.Render(text)
	}
	return text
}
