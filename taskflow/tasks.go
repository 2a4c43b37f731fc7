// Package taskflow coordinates tasks: bundles of tools acquired and
// released together. A task locks every listed tool atomically on start;
// availability is checked for the full list before any tool is touched.
package taskflow

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"toolcrib/document"
	"toolcrib/ledger"
)

// Create adds a pending task. DueDate is optional free-form (ISO date).
func Create(doc *document.Document, name, operationNumber, description, dueDate, operator string, now time.Time) (*document.Task, error) {
	if name == "" || operationNumber == "" {
		return nil, fmt.Errorf("task name and operation number are required")
	}
	task := document.Task{
		ID:              "task-" + uuid.New().String()[:8],
		Name:            name,
		OperationNumber: operationNumber,
		Description:     description,
		DueDate:         dueDate,
		Tools:           []document.ToolRef{},
		Status:          document.TaskPending,
		AssignedTo:      operator,
		CreatedAt:       now,
	}
	doc.Tasks = append(doc.Tasks, task)
	return doc.TaskByID(task.ID), nil
}

// FromOperation spawns a pending task from a catalog template, inheriting
// its code, name, description and required tool list.
func FromOperation(doc *document.Document, operationID, operator string, now time.Time) (*document.Task, error) {
	op, ok := doc.Operations[operationID]
	if !ok {
		return nil, ErrNotFound
	}
	task := document.Task{
		ID:              "task-" + uuid.New().String()[:8],
		Name:            op.Name,
		OperationNumber: op.Code,
		Description:     op.Description,
		OperationID:     op.ID,
		Tools:           append([]document.ToolRef{}, op.RequiredTools...),
		Status:          document.TaskPending,
		AssignedTo:      operator,
		CreatedAt:       now,
	}
	doc.Tasks = append(doc.Tasks, task)
	return doc.TaskByID(task.ID), nil
}

// AddTool appends a tool reference to a pending task's list. Serials must
// be unique within one task.
func AddTool(doc *document.Document, taskID, serial, name string) (*document.Task, error) {
	task := doc.TaskByID(taskID)
	if task == nil {
		return nil, ErrNotFound
	}
	if task.Status != document.TaskPending {
		return nil, ErrNotPending
	}
	for _, ref := range task.Tools {
		if ref.Serial == serial {
			return nil, ErrDuplicateTool
		}
	}
	task.Tools = append(task.Tools, document.ToolRef{Serial: serial, Name: name})
	return task, nil
}

// RemoveTool drops a tool reference from a pending task's list. Removing
// a serial that is not listed is a no-op.
func RemoveTool(doc *document.Document, taskID, serial string) (*document.Task, error) {
	task := doc.TaskByID(taskID)
	if task == nil {
		return nil, ErrNotFound
	}
	if task.Status != document.TaskPending {
		return nil, ErrNotPending
	}
	for i, ref := range task.Tools {
		if ref.Serial == serial {
			task.Tools = append(task.Tools[:i], task.Tools[i+1:]...)
			break
		}
	}
	return task, nil
}

// Start transitions a pending task to in-progress, locking every listed
// tool. All-or-nothing: every tool is checked first and all blockers are
// collected into one UnavailableError; no tool changes state unless all
// are available.
func Start(doc *document.Document, taskID, operator string, now time.Time) (*document.Task, error) {
	task := doc.TaskByID(taskID)
	if task == nil {
		return nil, ErrNotFound
	}
	if task.Status != document.TaskPending {
		return nil, ErrNotPending
	}
	if len(task.Tools) == 0 {
		return nil, ErrNoToolsAssigned
	}

	var blocked []Unavailable
	for _, ref := range task.Tools {
		avail := Availability(doc, ref.Serial)
		if !avail.Available {
			blocked = append(blocked, Unavailable{Serial: ref.Serial, Name: ref.Name, Reason: avail.Reason})
		}
	}
	if len(blocked) > 0 {
		return nil, &UnavailableError{Tools: blocked}
	}

	label := "task: " + task.Name
	for _, ref := range task.Tools {
		tool := doc.ToolBySerial(ref.Serial)
		tool.Status = document.StatusInUse
		tool.Holder = operator
		tool.Station = label

		ledger.Record(doc, document.HistoryEntry{
			ID:              uuid.New().String(),
			Resource:        tool.Name,
			Kind:            document.KindTool,
			Serial:          tool.Serial,
			Action:          document.ActionTaken,
			Operator:        operator,
			OperationNumber: task.OperationNumber,
			Station:         label,
			Time:            now,
			TaskID:          task.ID,
			TaskName:        task.Name,
		})
	}

	task.Status = document.TaskInProgress
	started := now
	task.StartedAt = &started
	task.AssignedTo = operator
	return task, nil
}

// Complete releases the task's tools and marks it completed. Tools already
// returned out-of-band (no longer in-use) are skipped, not errors.
func Complete(doc *document.Document, taskID, operator string, now time.Time) (*document.Task, error) {
	task := doc.TaskByID(taskID)
	if task == nil {
		return nil, ErrNotFound
	}
	release(doc, task, operator, "task completed: "+task.Name, now)
	task.Status = document.TaskCompleted
	completed := now
	task.CompletedAt = &completed
	return task, nil
}

// Cancel releases the task's tools and returns it to pending with a
// cleared start time.
func Cancel(doc *document.Document, taskID, operator string, now time.Time) (*document.Task, error) {
	task := doc.TaskByID(taskID)
	if task == nil {
		return nil, ErrNotFound
	}
	release(doc, task, operator, "task cancelled: "+task.Name, now)
	task.Status = document.TaskPending
	task.StartedAt = nil
	return task, nil
}

// Delete removes a task. An in-progress task is refused: deleting it would
// strand its tool locks with no owning task.
func Delete(doc *document.Document, taskID string) error {
	task := doc.TaskByID(taskID)
	if task == nil {
		return ErrNotFound
	}
	if task.Status == document.TaskInProgress {
		return ErrTaskInProgress
	}
	for i := range doc.Tasks {
		if doc.Tasks[i].ID == taskID {
			doc.Tasks = append(doc.Tasks[:i], doc.Tasks[i+1:]...)
			break
		}
	}
	return nil
}

func release(doc *document.Document, task *document.Task, operator, label string, now time.Time) {
	for _, ref := range task.Tools {
		tool := doc.ToolBySerial(ref.Serial)
		if tool == nil || tool.Status != document.StatusInUse {
			continue
		}
		tool.Status = document.StatusAvailable
		tool.Holder = ""
		tool.Station = ""

		ledger.Record(doc, document.HistoryEntry{
			ID:              uuid.New().String(),
			Resource:        tool.Name,
			Kind:            document.KindTool,
			Serial:          tool.Serial,
			Action:          document.ActionReturned,
			Operator:        operator,
			OperationNumber: task.OperationNumber,
			Station:         label,
			Time:            now,
			TaskID:          task.ID,
			TaskName:        task.Name,
		})
	}
}
