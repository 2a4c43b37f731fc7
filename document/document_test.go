package document

import (
	"testing"
	"time"
)

func seedTime() time.Time {
	return time.Date(2026, 8, 1, 8, 0, 0, 0, time.UTC)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	doc := Seed(seedTime())
	doc.History = append(doc.History, HistoryEntry{
		ID: "h1", Resource: "Wrench 22", Kind: KindTool, Serial: "WR-022",
		Action: ActionTaken, Operator: "jdoe", Time: seedTime(),
	})

	data, err := doc.Encode()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := Decode(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(got.Tools) != len(doc.Tools) {
		t.Fatalf("expected %d tools, got %d", len(doc.Tools), len(got.Tools))
	}
	if len(got.History) != 1 || got.History[0].Serial != "WR-022" {
		t.Fatalf("history did not survive round trip: %+v", got.History)
	}
	if got.Operations["disconnector"].Code != "150" {
		t.Fatalf("operations did not survive round trip")
	}
	if !got.LastUpdate.Equal(doc.LastUpdate) {
		t.Fatalf("expected last update %v, got %v", doc.LastUpdate, got.LastUpdate)
	}
}

func TestDecodeInvalid(t *testing.T) {
	if _, err := Decode([]byte("{not json")); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	doc := Seed(seedTime())
	clone := doc.Clone()

	clone.Tools[0].Status = StatusInUse
	clone.Tools[0].Holder = "jdoe"
	clone.Tasks[0].Tools = append(clone.Tasks[0].Tools, ToolRef{Serial: "WR-013", Name: "Wrench 13"})
	clone.Operations["disconnector"] = Operation{ID: "disconnector", Code: "999"}
	clone.WaitQueue = append(clone.WaitQueue, Reservation{ToolID: 1, Operator: "jdoe"})

	if doc.Tools[0].Status != StatusAvailable || doc.Tools[0].Holder != "" {
		t.Fatalf("clone mutation leaked into original tool: %+v", doc.Tools[0])
	}
	if len(doc.Tasks[0].Tools) != 2 {
		t.Fatalf("clone mutation leaked into original task tools: %d", len(doc.Tasks[0].Tools))
	}
	if doc.Operations["disconnector"].Code != "150" {
		t.Fatalf("clone mutation leaked into original operations")
	}
	if len(doc.WaitQueue) != 0 {
		t.Fatalf("clone mutation leaked into original wait queue")
	}
}

func TestLookupHelpers(t *testing.T) {
	doc := Seed(seedTime())

	if tool := doc.ToolByID(6); tool == nil || tool.Serial != "WR-022" {
		t.Fatalf("ToolByID(6) = %+v", tool)
	}
	if tool := doc.ToolBySerial("TW-003"); tool == nil || tool.ID != 3 {
		t.Fatalf("ToolBySerial(TW-003) = %+v", tool)
	}
	if doc.ToolByID(99) != nil {
		t.Fatal("expected nil for unknown tool id")
	}
	if mat := doc.MaterialByID(2); mat == nil || mat.Code != "LOC-270" {
		t.Fatalf("MaterialByID(2) = %+v", mat)
	}
	if task := doc.TaskByID("task-seed-150"); task == nil || task.OperationNumber != "150" {
		t.Fatalf("TaskByID(task-seed-150) = %+v", task)
	}
}

func TestStationName(t *testing.T) {
	doc := Seed(seedTime())

	if got := doc.StationName("station-2"); got != "Station 2" {
		t.Fatalf("expected Station 2, got %q", got)
	}
	// Free-text stations pass through unresolved.
	if got := doc.StationName("task: Disconnector Overhaul"); got != "task: Disconnector Overhaul" {
		t.Fatalf("free text station mangled: %q", got)
	}
	if got := doc.StationName(""); got != "" {
		t.Fatalf("expected empty passthrough, got %q", got)
	}
}
