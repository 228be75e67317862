package output

import (
	"strings"
)

// IndentDiff indents a rendered diff for display under an indicator line.
// Blank lines are dropped.
func IndentDiff(diff, indent string) string {
	if diff == "" {
		return ""
	}

	var sb strings.Builder
	for _, line := range strings.Split(diff, "\n") {
		if line == "" {
			continue
		}
		sb.WriteString(indent)
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	return sb.String()
}
