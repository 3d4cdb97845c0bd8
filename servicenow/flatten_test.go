package servicenow_test

import (
	"testing"

	"github.com/JTonyC/servicenow-entraid-approvals/servicenow"
	"github.com/stretchr/testify/require"
)

func TestFlattenApproval(t *testing.T) {
	t.Run("non-mapping inputs yield all-empty fields", func(t *testing.T) {
		for _, input := range []any{"not a record", nil, 42.0, []any{"x"}, true} {
			flat := servicenow.FlattenApproval(input)
			require.Len(t, flat, len(servicenow.TargetFields))
			for _, field := range servicenow.TargetFields {
				require.Equal(t, "", flat[field])
			}
		}
	})

	t.Run("top-level fields", func(t *testing.T) {
		flat := servicenow.FlattenApproval(map[string]any{
			"approval_state":    "open",
			"short_description": "x",
		})
		require.Equal(t, "open", flat["approval_state"])
		require.Equal(t, "x", flat["short_description"])
		require.Equal(t, "", flat["requested_by"])
		require.Equal(t, "", flat["opened_at"])
		require.Equal(t, "", flat["urgency"])
	})

	t.Run("top-level display_value unwrap", func(t *testing.T) {
		flat := servicenow.FlattenApproval(map[string]any{
			"urgency": map[string]any{"display_value": "2 - High", "value": "2"},
		})
		require.Equal(t, "2 - High", flat["urgency"])
	})

	t.Run("nested group with display_value", func(t *testing.T) {
		flat := servicenow.FlattenApproval(map[string]any{
			"details": map[string]any{
				"approval_state": map[string]any{"display_value": "closed"},
			},
		})
		require.Equal(t, "closed", flat["approval_state"])
	})

	t.Run("nested group with plain values", func(t *testing.T) {
		flat := servicenow.FlattenApproval(map[string]any{
			"record": map[string]any{
				"requested_by": "Jane Doe",
				"opened_at":    "2025-09-01T12:00:00Z",
			},
		})
		require.Equal(t, "Jane Doe", flat["requested_by"])
		require.Equal(t, "2025-09-01T12:00:00Z", flat["opened_at"])
	})

	t.Run("earlier group is not overridden by a later one", func(t *testing.T) {
		flat := servicenow.FlattenApproval(map[string]any{
			"a_group": map[string]any{"urgency": "1 - Critical"},
			"z_group": map[string]any{"urgency": "3 - Low"},
		})
		require.Equal(t, "1 - Critical", flat["urgency"])
	})

	t.Run("top level wins over nested", func(t *testing.T) {
		flat := servicenow.FlattenApproval(map[string]any{
			"approval_state": "requested",
			"details":        map[string]any{"approval_state": "approved"},
		})
		require.Equal(t, "requested", flat["approval_state"])
	})

	t.Run("null and empty values resolve to empty string", func(t *testing.T) {
		flat := servicenow.FlattenApproval(map[string]any{
			"approval_state": nil,
			"urgency":        "",
		})
		require.Equal(t, "", flat["approval_state"])
		require.Equal(t, "", flat["urgency"])
	})

	t.Run("numeric values are stringified", func(t *testing.T) {
		flat := servicenow.FlattenApproval(map[string]any{"urgency": 2.0})
		require.Equal(t, "2", flat["urgency"])
	})
}

func TestFormatDateTime(t *testing.T) {
	t.Run("UTC designator", func(t *testing.T) {
		require.Equal(t, "01 Sep 2025, 12:00", servicenow.FormatDateTime("2025-09-01T12:00:00Z"))
	})

	t.Run("explicit offset", func(t *testing.T) {
		require.Equal(t, "01 Sep 2025, 12:00", servicenow.FormatDateTime("2025-09-01T12:00:00+00:00"))
	})

	t.Run("servicenow space-separated form", func(t *testing.T) {
		require.Equal(t, "15 Mar 2024, 09:30", servicenow.FormatDateTime("2024-03-15 09:30:00"))
	})

	t.Run("unparseable input passes through unchanged", func(t *testing.T) {
		require.Equal(t, "not-a-date", servicenow.FormatDateTime("not-a-date"))
		require.Equal(t, "", servicenow.FormatDateTime(""))
	})
}
