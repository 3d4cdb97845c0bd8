package servicenow

import (
	"strings"
	"time"
)

// DisplayLayout is the layout approvals dates are rendered with.
const DisplayLayout = "02 Jan 2006, 15:04"

var parseLayouts = []string{
	"2006-01-02T15:04:05.999999999-07:00",
	"2006-01-02T15:04:05-07:00",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// FormatDateTime renders an ISO-8601-ish timestamp with DisplayLayout.
func FormatDateTime(raw string) string {
	return FormatDateTimeAs(raw, DisplayLayout)
}

// FormatDateTimeAs renders a timestamp with a caller-supplied layout. A
// trailing literal Z is replaced with an explicit +00:00 offset before
// parsing. On any parse failure the input is returned unchanged, so a
// malformed date can never break page rendering.
func FormatDateTimeAs(raw, layout string) string {
	s := raw
	if strings.HasSuffix(s, "Z") {
		s = strings.TrimSuffix(s, "Z") + "+00:00"
	}
	for _, parseLayout := range parseLayouts {
		if t, err := time.Parse(parseLayout, s); err == nil {
			return t.Format(layout)
		}
	}
	return raw
}
