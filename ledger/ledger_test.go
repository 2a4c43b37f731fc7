package ledger

import (
	"fmt"
	"testing"
	"time"

	"toolcrib/document"
)

func entry(i int, serial, operator, kind string) document.HistoryEntry {
	return document.HistoryEntry{
		ID:       fmt.Sprintf("h-%d", i),
		Serial:   serial,
		Operator: operator,
		Kind:     kind,
		Action:   document.ActionTaken,
		Time:     time.Date(2026, 8, 1, 8, 0, i, 0, time.UTC),
	}
}

func TestRecordPrepends(t *testing.T) {
	doc := &document.Document{}
	for i := 0; i < 3; i++ {
		Record(doc, entry(i, "TW-001", "jdoe", document.KindTool))
	}
	if doc.History[0].ID != "h-2" {
		t.Fatalf("expected newest first, got %q", doc.History[0].ID)
	}
	if doc.History[2].ID != "h-0" {
		t.Fatalf("expected oldest last, got %q", doc.History[2].ID)
	}
}

func TestRecent(t *testing.T) {
	doc := &document.Document{}
	for i := 0; i < 5; i++ {
		Record(doc, entry(i, "TW-001", "jdoe", document.KindTool))
	}

	got := Recent(doc, 2)
	if len(got) != 2 || got[0].ID != "h-4" {
		t.Fatalf("Recent(2) wrong: %+v", got)
	}
	if got := Recent(doc, 100); len(got) != 5 {
		t.Fatalf("limit beyond length should return all, got %d", len(got))
	}

	// Returned slice must not alias the document.
	got[0].ID = "mutated"
	if doc.History[0].ID == "mutated" {
		t.Fatal("Recent must copy entries")
	}
}

func TestRecentFor(t *testing.T) {
	doc := &document.Document{}
	Record(doc, entry(0, "TW-001", "jdoe", document.KindTool))
	Record(doc, entry(1, "WR-022", "asmith", document.KindTool))
	Record(doc, entry(2, "TW-001", "mlee", document.KindTool))

	got := RecentFor(doc, "TW-001", 10)
	if len(got) != 2 || got[0].ID != "h-2" || got[1].ID != "h-0" {
		t.Fatalf("RecentFor wrong: %+v", got)
	}
	if RecentFor(doc, "", 10) != nil {
		t.Fatal("empty serial should return nil")
	}
}

func TestForOperatorCaseInsensitive(t *testing.T) {
	doc := &document.Document{}
	Record(doc, entry(0, "TW-001", "JDoe", document.KindTool))
	Record(doc, entry(1, "TW-002", "asmith", document.KindTool))

	got := ForOperator(doc, "jdoe", 10)
	if len(got) != 1 || got[0].ID != "h-0" {
		t.Fatalf("ForOperator wrong: %+v", got)
	}
}

func TestForKind(t *testing.T) {
	doc := &document.Document{}
	Record(doc, entry(0, "TW-001", "jdoe", document.KindTool))
	Record(doc, entry(1, "MOLY-001", "jdoe", document.KindMaterial))

	got := ForKind(doc, document.KindMaterial, 10)
	if len(got) != 1 || got[0].Serial != "MOLY-001" {
		t.Fatalf("ForKind wrong: %+v", got)
	}
}
