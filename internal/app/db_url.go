package app

import (
	"net/url"
	"strings"
)

// normalizeDBURL appends disable_prepared_binary_result=yes when the
// deployment asks for it. Some poolers choke on binary result rows for
// prepared statements; the flag forces text mode.
func normalizeDBURL(raw string, disablePreparedBinaryResult bool) string {
	if !disablePreparedBinaryResult {
		return raw
	}

	parsed, err := url.Parse(raw)
	if err != nil || parsed == nil {
		return raw
	}

	params := parsed.Query()
	if params.Get("disable_prepared_binary_result") == "" {
		params.Set("disable_prepared_binary_result", "yes")
		parsed.RawQuery = params.Encode()
	}

	return parsed.String()
}

// dbNameFromURL extracts the database name from either URL or
// key=value DSN form, for span attributes only.
func dbNameFromURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	parsed, err := url.Parse(trimmed)
	if err == nil && parsed != nil && parsed.Scheme != "" {
		if name := strings.TrimSpace(strings.TrimPrefix(parsed.Path, "/")); name != "" {
			return name
		}
	}

	for _, field := range strings.Fields(trimmed) {
		if !strings.HasPrefix(field, "dbname=") {
			continue
		}
		name := strings.Trim(strings.TrimSpace(strings.TrimPrefix(field, "dbname=")), `"'`)
		if name != "" {
			return name
		}
	}

	return ""
}
