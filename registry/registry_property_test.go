package registry

import (
	"testing"
	"time"

	"pgregory.net/rapid"

	"toolcrib/document"
)

// Random take/return/maintenance sequences must keep the holder/status
// pairing coherent: a tool is in-use exactly when it has a holder, and the
// ledger grows by one entry per successful take or return.
func TestRegistryStateMachineProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		doc := document.Seed(time.Date(2026, 8, 1, 8, 0, 0, 0, time.UTC))
		operators := []string{"jdoe", "asmith", "mlee"}
		when := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)

		nOps := rapid.IntRange(1, 40).Draw(t, "nOps")
		for i := 0; i < nOps; i++ {
			toolID := int64(rapid.IntRange(1, 8).Draw(t, "toolID"))
			operator := operators[rapid.IntRange(0, len(operators)-1).Draw(t, "operatorIdx")]
			before := len(doc.History)

			var err error
			switch rapid.IntRange(0, 3).Draw(t, "action") {
			case 0:
				_, err = TakeTool(doc, toolID, operator, "150", "station-1", when)
			case 1:
				_, err = ReturnTool(doc, toolID, operator, "150", when)
			case 2:
				_, err = SetToolMaintenance(doc, toolID, true)
			case 3:
				_, err = SetToolMaintenance(doc, toolID, false)
			}
			recorded := len(doc.History) - before
			if err != nil && recorded != 0 {
				t.Fatalf("failed operation recorded history")
			}

			for j := range doc.Tools {
				tool := &doc.Tools[j]
				inUse := tool.Status == document.StatusInUse
				if inUse != (tool.Holder != "") {
					t.Fatalf("holder/status mismatch: %+v", tool)
				}
				switch tool.Status {
				case document.StatusAvailable, document.StatusInUse, document.StatusMaintenance:
				default:
					t.Fatalf("unexpected tool status %q", tool.Status)
				}
			}
		}
	})
}
