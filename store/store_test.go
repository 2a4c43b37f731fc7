package store

import (
	"path/filepath"
	"testing"
	"time"

	"toolcrib/config"
	"toolcrib/document"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	cfg := &config.DatabaseConfig{
		Driver: "sqlite",
		SQLite: config.SQLiteConfig{Path: filepath.Join(t.TempDir(), "test.db")},
	}
	db, err := Open(cfg)
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func sampleEntry(id string, at time.Time) *document.HistoryEntry {
	return &document.HistoryEntry{
		ID:              id,
		Resource:        "Wrench 22",
		Kind:            document.KindTool,
		Serial:          "WR-022",
		Action:          document.ActionTaken,
		Operator:        "jdoe",
		OperationNumber: "150",
		Station:         "Station 1",
		Time:            at,
	}
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(&config.DatabaseConfig{Driver: "mysql"})
	if err == nil {
		t.Fatal("expected error for unknown driver")
	}
}

func TestAppendAndListHistory(t *testing.T) {
	db := testDB(t)
	base := time.Date(2026, 8, 1, 8, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		e := sampleEntry(string(rune('a'+i)), base.Add(time.Duration(i)*time.Minute))
		if err := db.AppendHistory("crib-1", e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	entries, err := db.ListHistory("crib-1", 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].ID != "c" {
		t.Fatalf("expected newest first, got %q", entries[0].ID)
	}
	if !entries[0].Time.Equal(base.Add(2 * time.Minute)) {
		t.Fatalf("occurred_at lost: %v", entries[0].Time)
	}

	n, err := db.CountHistory("crib-1")
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 3 {
		t.Fatalf("expected count 3, got %d", n)
	}

	// Scoped by workshop.
	if n, _ := db.CountHistory("other"); n != 0 {
		t.Fatalf("expected 0 for other workshop, got %d", n)
	}
}

func TestAppendHistoryIdempotent(t *testing.T) {
	db := testDB(t)
	e := sampleEntry("same-id", time.Date(2026, 8, 1, 8, 0, 0, 0, time.UTC))

	if err := db.AppendHistory("crib-1", e); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := db.AppendHistory("crib-1", e); err != nil {
		t.Fatalf("replayed append must not error: %v", err)
	}
	if n, _ := db.CountHistory("crib-1"); n != 1 {
		t.Fatalf("expected 1 row after replay, got %d", n)
	}
}

func TestListHistoryBySerial(t *testing.T) {
	db := testDB(t)
	base := time.Date(2026, 8, 1, 8, 0, 0, 0, time.UTC)

	a := sampleEntry("a", base)
	b := sampleEntry("b", base.Add(time.Minute))
	b.Serial = "TW-001"
	if err := db.AppendHistory("crib-1", a); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := db.AppendHistory("crib-1", b); err != nil {
		t.Fatalf("append: %v", err)
	}

	entries, err := db.ListHistoryBySerial("crib-1", "WR-022", 10)
	if err != nil {
		t.Fatalf("list by serial: %v", err)
	}
	if len(entries) != 1 || entries[0].ID != "a" {
		t.Fatalf("serial filter wrong: %+v", entries)
	}
}

func TestSnapshots(t *testing.T) {
	db := testDB(t)

	got, err := db.LatestSnapshot("crib-1")
	if err != nil {
		t.Fatalf("latest on empty: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil snapshot, got %+v", got)
	}

	doc := document.Seed(time.Date(2026, 8, 1, 8, 0, 0, 0, time.UTC))
	if err := db.SaveSnapshot("crib-1", doc); err != nil {
		t.Fatalf("save snapshot: %v", err)
	}
	doc.Tools[0].Status = document.StatusInUse
	doc.Tools[0].Holder = "jdoe"
	if err := db.SaveSnapshot("crib-1", doc); err != nil {
		t.Fatalf("save snapshot: %v", err)
	}

	got, err = db.LatestSnapshot("crib-1")
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if got.Tools[0].Holder != "jdoe" {
		t.Fatalf("latest snapshot is not the newest: %+v", got.Tools[0])
	}
	if n, _ := db.CountSnapshots("crib-1"); n != 2 {
		t.Fatalf("expected 2 snapshots, got %d", n)
	}
}

func TestRebind(t *testing.T) {
	got := Rebind("INSERT INTO t (a, b) VALUES (?, ?) ON CONFLICT (id) DO NOTHING")
	want := "INSERT INTO t (a, b) VALUES ($1, $2) ON CONFLICT (id) DO NOTHING"
	if got != want {
		t.Fatalf("Rebind:\n got %q\nwant %q", got, want)
	}
	// Question marks inside literals survive.
	got = Rebind("SELECT * FROM t WHERE a = '?' AND b = ?")
	want = "SELECT * FROM t WHERE a = '?' AND b = $1"
	if got != want {
		t.Fatalf("Rebind:\n got %q\nwant %q", got, want)
	}
}
