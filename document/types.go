package document

import "time"

// Status of a tool or material.
const (
	StatusAvailable   = "available"
	StatusInUse       = "in-use"
	StatusMaintenance = "maintenance"
	StatusDepleted    = "depleted"
)

// History actions.
const (
	ActionTaken    = "taken"
	ActionReturned = "returned"
)

// Resource kinds used in history entries.
const (
	KindTool     = "tool"
	KindMaterial = "material"
)

// Task statuses.
const (
	TaskPending    = "pending"
	TaskInProgress = "in-progress"
	TaskCompleted  = "completed"
)

type Tool struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Serial   string `json:"serial"`
	Group    string `json:"group"`
	IsTorque bool   `json:"is_torque"`
	Status   string `json:"status"`
	Holder   string `json:"holder"`
	Station  string `json:"station"`
	Location string `json:"location"` // home shelf, where the tool returns to
}

type Material struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Code        string `json:"code"`
	Status      string `json:"status"`
	Holder      string `json:"holder"`
	Station     string `json:"station"`
	Location    string `json:"location"`
	Quantity    int    `json:"quantity"`
	MinQuantity int    `json:"min_quantity"`
}

type Station struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Reservation is one operator waiting in a tool's FIFO queue.
type Reservation struct {
	ToolID          int64     `json:"tool_id"`
	ToolName        string    `json:"tool_name"`
	ToolSerial      string    `json:"tool_serial"`
	Operator        string    `json:"operator"`
	OperationNumber string    `json:"operation_number"`
	Station         string    `json:"station"`
	JoinedAt        time.Time `json:"joined_at"`
}

// ToolRef identifies a tool required by a task or operation template.
// Serial is the lookup key; Name is carried for display.
type ToolRef struct {
	Serial string `json:"serial"`
	Name   string `json:"name"`
}

type Task struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	OperationNumber string     `json:"operation_number"`
	Description     string     `json:"description"`
	DueDate         string     `json:"due_date,omitempty"`
	OperationID     string     `json:"operation_id,omitempty"`
	Tools           []ToolRef  `json:"tools"`
	Status          string     `json:"status"`
	AssignedTo      string     `json:"assigned_to"`
	CreatedAt       time.Time  `json:"created_at"`
	StartedAt       *time.Time `json:"started_at,omitempty"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
}

// HistoryEntry is an immutable take/return record. Entries are prepended,
// so index 0 is always the most recent event.
type HistoryEntry struct {
	ID              string    `json:"id"`
	Resource        string    `json:"resource"`
	Kind            string    `json:"kind"`
	Serial          string    `json:"serial"`
	Action          string    `json:"action"`
	Operator        string    `json:"operator"`
	OperationNumber string    `json:"operation_number"`
	Station         string    `json:"station"`
	Time            time.Time `json:"time"`
	TaskID          string    `json:"task_id,omitempty"`
	TaskName        string    `json:"task_name,omitempty"`
}

type OperationDocument struct {
	Name string `json:"name"`
	Type string `json:"type"`
	URL  string `json:"url"`
}

// Operation is a catalog template used to spawn tasks. It is not a live
// resource lock; the task coordinator copies its fields at creation time.
type Operation struct {
	ID            string              `json:"id"`
	Code          string              `json:"code"`
	Name          string              `json:"name"`
	Description   string              `json:"description"`
	Documents     []OperationDocument `json:"documents"`
	Steps         []string            `json:"steps"`
	RequiredTools []ToolRef           `json:"required_tools,omitempty"`
}
