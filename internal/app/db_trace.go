package app

import (
	"regexp"
	"strings"
)

// Span attributes have a soft size cap at the collector; anything past
// this is noise in the trace UI anyway.
const maxTracedQueryLength = 512

var collapseWhitespace = regexp.MustCompile(`\s+`)

// formatDBQueryForTrace flattens a SQL statement to a single trimmed
// line and truncates it for span attribute use.
func formatDBQueryForTrace(query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return query
	}

	flat := collapseWhitespace.ReplaceAllString(query, " ")
	if len(flat) <= maxTracedQueryLength {
		return flat
	}

	return flat[:maxTracedQueryLength] + "..."
}
