package taskflow

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound means no task matched the given id.
	ErrNotFound = errors.New("task not found")

	// ErrNoToolsAssigned means a start was attempted on a task with an
	// empty tool list.
	ErrNoToolsAssigned = errors.New("task has no tools assigned")

	// ErrDuplicateTool means the serial is already on the task's list.
	ErrDuplicateTool = errors.New("tool already listed on task")

	// ErrNotPending means the tool list can only change while pending.
	ErrNotPending = errors.New("task is not pending")

	// ErrTaskInProgress means an in-progress task cannot be deleted;
	// complete or cancel it first so its tool locks are released.
	ErrTaskInProgress = errors.New("task is in progress")
)

// Unavailable describes one tool that blocks a task from starting.
type Unavailable struct {
	Serial string `json:"serial"`
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// UnavailableError reports every tool that blocked a start attempt, not
// just the first.
type UnavailableError struct {
	Tools []Unavailable
}

func (e *UnavailableError) Error() string {
	parts := make([]string, len(e.Tools))
	for i, t := range e.Tools {
		parts[i] = fmt.Sprintf("%s (%s): %s", t.Name, t.Serial, t.Reason)
	}
	return "tools unavailable: " + strings.Join(parts, "; ")
}
