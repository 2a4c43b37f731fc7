package engine

import "toolcrib/document"

const (
	EventToolTaken EventType = iota + 1
	EventToolReturned
	EventMaterialTaken
	EventMaterialReturned
	EventMaintenanceChanged
	EventQuantityAdjusted
	EventQueueJoined
	EventQueueLeft
	EventTaskCreated
	EventTaskStarted
	EventTaskCompleted
	EventTaskCancelled
	EventTaskDeleted
	EventOperationSaved
	EventOperationDeleted
	EventHistoryAppended
	EventDocumentReplaced
	EventSyncFailed
	EventMessagingConnected
	EventMessagingDisconnected
)

// --- Event payloads ---

type ToolEvent struct {
	ToolID   int64
	Serial   string
	Name     string
	Operator string
	Station  string
}

type MaterialEvent struct {
	MaterialID int64
	Code       string
	Name       string
	Operator   string
	Quantity   int
}

type MaintenanceEvent struct {
	ToolID int64
	Serial string
	On     bool
	Actor  string
}

type QueueEvent struct {
	ToolID   int64
	ToolName string
	Operator string
	Position int
}

type TaskEvent struct {
	TaskID   string
	Name     string
	Status   string
	Operator string
}

type OperationEvent struct {
	OperationID string
	Code        string
	Action      string // "saved", "deleted"
	Actor       string
}

type HistoryAppendedEvent struct {
	Entry document.HistoryEntry
}

type DocumentReplacedEvent struct {
	Origin string // "local", "remote", "seed"
}

type SyncFailedEvent struct {
	Detail string
}

type ConnectionEvent struct {
	Detail string
}
