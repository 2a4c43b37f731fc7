// Package reservation manages the per-tool FIFO wait queues. The queue is
// advisory: a tool becoming available is never handed to the next entry,
// the waiting operator still has to take it through the registry.
package reservation

import (
	"errors"
	"time"

	"toolcrib/document"
)

var (
	// ErrAlreadyQueued means the operator already holds a reservation
	// for this tool.
	ErrAlreadyQueued = errors.New("operator already queued for this tool")

	// ErrNotQueued means no reservation matched (tool, operator).
	ErrNotQueued = errors.New("operator not queued for this tool")

	// ErrNotFound means no tool matched the given id.
	ErrNotFound = errors.New("tool not found")
)

// Join appends a reservation to the end of the tool's queue. At most one
// entry per (tool, operator) pair may exist. Joining is legal regardless
// of the tool's current status; callers decide when to offer it.
func Join(doc *document.Document, toolID int64, operator, operationNumber, station string, now time.Time) (*document.Reservation, error) {
	tool := doc.ToolByID(toolID)
	if tool == nil {
		return nil, ErrNotFound
	}
	for _, r := range doc.WaitQueue {
		if r.ToolID == toolID && r.Operator == operator {
			return nil, ErrAlreadyQueued
		}
	}

	entry := document.Reservation{
		ToolID:          toolID,
		ToolName:        tool.Name,
		ToolSerial:      tool.Serial,
		Operator:        operator,
		OperationNumber: operationNumber,
		Station:         station,
		JoinedAt:        now,
	}
	doc.WaitQueue = append(doc.WaitQueue, entry)
	return &doc.WaitQueue[len(doc.WaitQueue)-1], nil
}

// Leave removes the (tool, operator) reservation. A missing entry is
// reported, not fatal.
func Leave(doc *document.Document, toolID int64, operator string) error {
	for i, r := range doc.WaitQueue {
		if r.ToolID == toolID && r.Operator == operator {
			doc.WaitQueue = append(doc.WaitQueue[:i], doc.WaitQueue[i+1:]...)
			return nil
		}
	}
	return ErrNotQueued
}

// NextInLine returns the earliest reservation for a tool that is still
// busy, or nil. Display only: it never assigns the tool.
func NextInLine(doc *document.Document, toolID int64) *document.Reservation {
	tool := doc.ToolByID(toolID)
	if tool == nil || tool.Status == document.StatusAvailable {
		return nil
	}
	for i := range doc.WaitQueue {
		if doc.WaitQueue[i].ToolID == toolID {
			return &doc.WaitQueue[i]
		}
	}
	return nil
}

// Active returns the reservations whose tool is currently not available,
// in stored (FIFO) order. Entries for available tools stay in the queue
// but are hidden from every view and count until the tool is busy again.
func Active(doc *document.Document) []document.Reservation {
	busy := make(map[int64]bool)
	for _, t := range doc.Tools {
		if t.Status != document.StatusAvailable {
			busy[t.ID] = true
		}
	}
	var out []document.Reservation
	for _, r := range doc.WaitQueue {
		if busy[r.ToolID] {
			out = append(out, r)
		}
	}
	return out
}

// Group is one busy tool's queue in FIFO order, for display.
type Group struct {
	ToolID   int64                  `json:"tool_id"`
	ToolName string                 `json:"tool_name"`
	Entries  []document.Reservation `json:"entries"`
}

// GroupedActive buckets the active reservations by tool, preserving FIFO
// order within each group and first-seen order across groups.
func GroupedActive(doc *document.Document) []Group {
	var groups []Group
	index := make(map[int64]int)
	for _, r := range Active(doc) {
		i, ok := index[r.ToolID]
		if !ok {
			i = len(groups)
			index[r.ToolID] = i
			groups = append(groups, Group{ToolID: r.ToolID, ToolName: r.ToolName})
		}
		groups[i].Entries = append(groups[i].Entries, r)
	}
	return groups
}

// CountActive reports how many reservations are currently visible.
func CountActive(doc *document.Document) int {
	return len(Active(doc))
}

// Position reports the operator's 1-based place in a tool's active queue,
// or 0 if not queued.
func Position(doc *document.Document, toolID int64, operator string) int {
	pos := 0
	for _, r := range doc.WaitQueue {
		if r.ToolID != toolID {
			continue
		}
		pos++
		if r.Operator == operator {
			return pos
		}
	}
	return 0
}
