package servicenow

import (
	"fmt"
	"sort"
	"strconv"
)

// TargetFields is the fixed field set every flattened record carries.
var TargetFields = []string{
	"approval_state",
	"short_description",
	"requested_by",
	"opened_at",
	"urgency",
}

// FlattenApproval normalizes one raw approval record into the fixed target
// field set. ServiceNow does not pin the record shape: fields may sit at the
// top level or one level down inside a sub-object, and any value may be
// wrapped as {"display_value": ..., "value": ...}. Unresolved fields default
// to the empty string; the function is total and never fails, whatever the
// input is.
func FlattenApproval(record any) map[string]string {
	flat := make(map[string]string, len(TargetFields))
	for _, field := range TargetFields {
		flat[field] = ""
	}

	m, ok := record.(map[string]any)
	if !ok {
		return flat
	}

	for _, field := range TargetFields {
		if v, ok := lookupField(m, field); ok {
			flat[field] = v
		}
	}

	// Nested groups are searched in sorted key order so the first match is
	// deterministic. A field resolved by an earlier group is never overridden.
	var groups []string
	for key, value := range m {
		if _, ok := value.(map[string]any); ok {
			groups = append(groups, key)
		}
	}
	sort.Strings(groups)

	for _, key := range groups {
		nested := m[key].(map[string]any)
		for _, field := range TargetFields {
			if flat[field] != "" {
				continue
			}
			if v, ok := lookupField(nested, field); ok {
				flat[field] = v
			}
		}
	}

	return flat
}

// lookupField resolves one target field within a mapping, unwrapping the
// display_value convention. A sub-object without a display_value key is left
// for the nested-group pass rather than stringified.
func lookupField(m map[string]any, field string) (string, bool) {
	value, ok := m[field]
	if !ok || value == nil {
		return "", false
	}
	if wrapped, ok := value.(map[string]any); ok {
		display, ok := wrapped["display_value"]
		if !ok || display == nil {
			return "", false
		}
		return stringify(display), true
	}
	s := stringify(value)
	if s == "" {
		return "", false
	}
	return s, true
}

func stringify(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
