package domain

import "time"

// dateLayouts are the ISO-8601 shapes accepted from the backend, tried in order.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02",
}

// ParseDate parses an ISO-8601 timestamp. Timestamps without an offset are
// read as UTC.
func ParseDate(iso string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, iso); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatDate renders an ISO-8601 timestamp as YYYY-MM-DD using its UTC
// calendar fields. Empty or unparseable input yields "".
func FormatDate(iso string) string {
	if iso == "" {
		return ""
	}
	t, ok := ParseDate(iso)
	if !ok {
		return ""
	}
	return t.UTC().Format("2006-01-02")
}
