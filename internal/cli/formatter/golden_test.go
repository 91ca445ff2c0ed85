package formatter

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// ansiPattern matches ANSI escape sequences for stripping before comparison.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// stripANSI removes ANSI escape codes so assertions are terminal-independent.
func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

// lineContaining returns the first stripped line of out containing needle.
func lineContaining(t *testing.T, out, needle string) string {
	t.Helper()
	for _, line := range strings.Split(stripANSI(out), "\n") {
		if strings.Contains(line, needle) {
			return line
		}
	}
	require.Failf(t, "line not found", "no line containing %q in:\n%s", needle, stripANSI(out))
	return ""
}
