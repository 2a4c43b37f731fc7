package taskflow

import (
	"errors"
	"strings"
	"testing"
	"time"

	"toolcrib/document"
	"toolcrib/registry"
)

func testDoc() *document.Document {
	return document.Seed(time.Date(2026, 8, 1, 8, 0, 0, 0, time.UTC))
}

func now() time.Time {
	return time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
}

func pendingTask(t *testing.T, doc *document.Document, serials ...string) *document.Task {
	t.Helper()
	task, err := Create(doc, "Test Task", "150", "", "", "jdoe", now())
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	for _, s := range serials {
		tool := doc.ToolBySerial(s)
		if tool == nil {
			t.Fatalf("unknown serial %q", s)
		}
		if _, err := AddTool(doc, task.ID, tool.Serial, tool.Name); err != nil {
			t.Fatalf("add tool %s: %v", s, err)
		}
	}
	return doc.TaskByID(task.ID)
}

func TestCreateValidation(t *testing.T) {
	doc := testDoc()
	if _, err := Create(doc, "", "150", "", "", "jdoe", now()); err == nil {
		t.Fatal("expected error for empty name")
	}
	if _, err := Create(doc, "Task", "", "", "", "jdoe", now()); err == nil {
		t.Fatal("expected error for empty operation number")
	}

	task, err := Create(doc, "Task", "150", "desc", "2026-09-01", "jdoe", now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.Status != document.TaskPending || !strings.HasPrefix(task.ID, "task-") {
		t.Fatalf("task wrong: %+v", task)
	}
	if len(task.Tools) != 0 {
		t.Fatalf("new task must start with no tools: %+v", task.Tools)
	}
}

func TestFromOperation(t *testing.T) {
	doc := testDoc()

	task, err := FromOperation(doc, "disconnector", "jdoe", now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.OperationNumber != "150" || task.OperationID != "disconnector" {
		t.Fatalf("template fields not inherited: %+v", task)
	}
	if len(task.Tools) != 2 {
		t.Fatalf("expected 2 required tools, got %d", len(task.Tools))
	}

	// The task owns a copy of the tool list.
	if _, err := RemoveTool(doc, task.ID, "TW-001"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Operations["disconnector"].RequiredTools) != 2 {
		t.Fatal("template tool list must be unaffected")
	}

	if _, err := FromOperation(doc, "nope", "jdoe", now()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAddToolGuards(t *testing.T) {
	doc := testDoc()
	task := pendingTask(t, doc, "WR-013")

	if _, err := AddTool(doc, task.ID, "WR-013", "Wrench 13"); !errors.Is(err, ErrDuplicateTool) {
		t.Fatalf("expected ErrDuplicateTool, got %v", err)
	}

	if _, err := Start(doc, task.ID, "jdoe", now()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := AddTool(doc, task.ID, "WR-018", "Wrench 18"); !errors.Is(err, ErrNotPending) {
		t.Fatalf("expected ErrNotPending after start, got %v", err)
	}
	if _, err := RemoveTool(doc, task.ID, "WR-013"); !errors.Is(err, ErrNotPending) {
		t.Fatalf("expected ErrNotPending after start, got %v", err)
	}
}

func TestRemoveToolMissingIsNoop(t *testing.T) {
	doc := testDoc()
	task := pendingTask(t, doc, "WR-013")

	got, err := RemoveTool(doc, task.ID, "not-listed")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Tools) != 1 {
		t.Fatalf("no-op remove changed tools: %+v", got.Tools)
	}
}

func TestStartNoTools(t *testing.T) {
	doc := testDoc()
	task := pendingTask(t, doc)
	if _, err := Start(doc, task.ID, "jdoe", now()); !errors.Is(err, ErrNoToolsAssigned) {
		t.Fatalf("expected ErrNoToolsAssigned, got %v", err)
	}
}

func TestStartLocksAllTools(t *testing.T) {
	doc := testDoc()
	task := pendingTask(t, doc, "WR-022", "WR-018")

	got, err := Start(doc, task.ID, "jdoe", now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != document.TaskInProgress || got.StartedAt == nil {
		t.Fatalf("task not started: %+v", got)
	}

	label := "task: Test Task"
	for _, serial := range []string{"WR-022", "WR-018"} {
		tool := doc.ToolBySerial(serial)
		if tool.Status != document.StatusInUse || tool.Holder != "jdoe" || tool.Station != label {
			t.Fatalf("tool %s not locked by task: %+v", serial, tool)
		}
	}
	if len(doc.History) != 2 {
		t.Fatalf("expected 2 taken entries, got %d", len(doc.History))
	}
	for _, e := range doc.History[:2] {
		if e.TaskID != task.ID || e.TaskName != "Test Task" || e.Station != label {
			t.Fatalf("history entry missing task linkage: %+v", e)
		}
	}
}

// Starting with any blocked tool must change nothing and report every
// blocker, not just the first.
func TestStartAllOrNothing(t *testing.T) {
	doc := testDoc()
	if _, err := registry.TakeTool(doc, 6, "asmith", "200", "station-1", now()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := registry.SetToolMaintenance(doc, 7, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	histBefore := len(doc.History)

	task := pendingTask(t, doc, "WR-022", "WR-018", "WR-013")
	_, err := Start(doc, task.ID, "jdoe", now())

	var unavailable *UnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("expected UnavailableError, got %v", err)
	}
	if len(unavailable.Tools) != 2 {
		t.Fatalf("expected 2 blockers, got %+v", unavailable.Tools)
	}
	reasons := map[string]string{}
	for _, u := range unavailable.Tools {
		reasons[u.Serial] = u.Reason
	}
	if reasons["WR-022"] != "held by asmith" {
		t.Fatalf("WR-022 reason wrong: %q", reasons["WR-022"])
	}
	if reasons["WR-018"] != "in maintenance" {
		t.Fatalf("WR-018 reason wrong: %q", reasons["WR-018"])
	}

	// Nothing moved.
	if tool := doc.ToolBySerial("WR-013"); tool.Status != document.StatusAvailable {
		t.Fatalf("available tool was touched: %+v", tool)
	}
	if doc.TaskByID(task.ID).Status != document.TaskPending {
		t.Fatal("task must stay pending")
	}
	if len(doc.History) != histBefore {
		t.Fatalf("failed start recorded history")
	}
}

func TestCompleteReleasesAndSkipsReturned(t *testing.T) {
	doc := testDoc()
	task := pendingTask(t, doc, "WR-022", "WR-018")
	if _, err := Start(doc, task.ID, "jdoe", now()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// One tool returned out-of-band mid-task.
	wr22 := doc.ToolBySerial("WR-022")
	if _, err := registry.ReturnTool(doc, wr22.ID, "jdoe", "150", now()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	histBefore := len(doc.History)

	got, err := Complete(doc, task.ID, "jdoe", now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != document.TaskCompleted || got.CompletedAt == nil {
		t.Fatalf("task not completed: %+v", got)
	}
	if tool := doc.ToolBySerial("WR-018"); tool.Status != document.StatusAvailable {
		t.Fatalf("WR-018 not released: %+v", tool)
	}
	// Only WR-018 produced a release entry; WR-022 was already back.
	if len(doc.History) != histBefore+1 {
		t.Fatalf("expected 1 release entry, got %d", len(doc.History)-histBefore)
	}
	if e := doc.History[0]; e.Serial != "WR-018" || e.Station != "task completed: Test Task" {
		t.Fatalf("release entry wrong: %+v", e)
	}
}

func TestCancelReturnsToPending(t *testing.T) {
	doc := testDoc()
	task := pendingTask(t, doc, "WR-022")
	if _, err := Start(doc, task.ID, "jdoe", now()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := Cancel(doc, task.ID, "jdoe", now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != document.TaskPending || got.StartedAt != nil {
		t.Fatalf("cancel must reset to pending: %+v", got)
	}
	if tool := doc.ToolBySerial("WR-022"); tool.Status != document.StatusAvailable {
		t.Fatalf("tool not released on cancel: %+v", tool)
	}
	if e := doc.History[0]; e.Station != "task cancelled: Test Task" {
		t.Fatalf("cancel entry wrong: %+v", e)
	}

	// The tool list survives for a later restart.
	if len(got.Tools) != 1 {
		t.Fatalf("tool list lost on cancel: %+v", got.Tools)
	}
}

func TestDeleteGuards(t *testing.T) {
	doc := testDoc()
	task := pendingTask(t, doc, "WR-022")
	if _, err := Start(doc, task.ID, "jdoe", now()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := Delete(doc, task.ID); !errors.Is(err, ErrTaskInProgress) {
		t.Fatalf("expected ErrTaskInProgress, got %v", err)
	}

	if _, err := Complete(doc, task.ID, "jdoe", now()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := Delete(doc, task.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.TaskByID(task.ID) != nil {
		t.Fatal("task not removed")
	}
	if err := Delete(doc, task.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAvailabilityReasons(t *testing.T) {
	doc := testDoc()

	if a := Availability(doc, "WR-022"); !a.Available || a.Reason != "available" {
		t.Fatalf("expected available, got %+v", a)
	}
	if a := Availability(doc, "nope"); a.Available || a.Reason != "tool not found in inventory" {
		t.Fatalf("expected not found, got %+v", a)
	}

	if _, err := registry.SetToolMaintenance(doc, 6, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a := Availability(doc, "WR-022"); a.Available || a.Reason != "in maintenance" {
		t.Fatalf("expected maintenance, got %+v", a)
	}

	if _, err := registry.TakeTool(doc, 7, "asmith", "200", "station-1", now()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a := Availability(doc, "WR-018"); a.Available || a.Reason != "held by asmith" {
		t.Fatalf("expected held by, got %+v", a)
	}

	// Tool locked by a running task reports the task, not the holder.
	task := pendingTask(t, doc, "WR-013")
	if _, err := Start(doc, task.ID, "jdoe", now()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a := Availability(doc, "WR-013"); a.Available || a.Reason != "in use by task: Test Task" {
		t.Fatalf("expected task lock reason, got %+v", a)
	}
}

func TestUnavailableErrorMessage(t *testing.T) {
	err := &UnavailableError{Tools: []Unavailable{
		{Serial: "WR-022", Name: "Wrench 22", Reason: "held by asmith"},
		{Serial: "WR-018", Name: "Wrench 18", Reason: "in maintenance"},
	}}
	msg := err.Error()
	if !strings.Contains(msg, "Wrench 22 (WR-022): held by asmith") {
		t.Fatalf("message missing first blocker: %q", msg)
	}
	if !strings.Contains(msg, "; ") {
		t.Fatalf("blockers not joined: %q", msg)
	}
}
