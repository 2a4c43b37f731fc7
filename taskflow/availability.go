package taskflow

import (
	"fmt"

	"toolcrib/document"
)

// ToolAvailability is the human-readable answer to "can this tool be
// locked right now, and if not, why".
type ToolAvailability struct {
	Available bool   `json:"available"`
	Reason    string `json:"reason"`
}

// Availability cross-checks a serial against the registry state and the
// other in-progress tasks. A tool held by a running task is reported as
// locked by that task rather than by its holder.
func Availability(doc *document.Document, serial string) ToolAvailability {
	tool := doc.ToolBySerial(serial)
	if tool == nil {
		return ToolAvailability{Available: false, Reason: "tool not found in inventory"}
	}

	switch tool.Status {
	case document.StatusAvailable:
		return ToolAvailability{Available: true, Reason: "available"}
	case document.StatusMaintenance:
		return ToolAvailability{Available: false, Reason: "in maintenance"}
	case document.StatusInUse:
		if task := inProgressTaskUsing(doc, serial); task != nil {
			return ToolAvailability{Available: false, Reason: fmt.Sprintf("in use by task: %s", task.Name)}
		}
		return ToolAvailability{Available: false, Reason: fmt.Sprintf("held by %s", tool.Holder)}
	}
	return ToolAvailability{Available: false, Reason: "unknown status"}
}

func inProgressTaskUsing(doc *document.Document, serial string) *document.Task {
	for i := range doc.Tasks {
		t := &doc.Tasks[i]
		if t.Status != document.TaskInProgress {
			continue
		}
		for _, ref := range t.Tools {
			if ref.Serial == serial {
				return t
			}
		}
	}
	return nil
}
