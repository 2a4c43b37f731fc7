package docstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"toolcrib/document"
)

func TestMemoryLoadEmpty(t *testing.T) {
	mem := NewMemory()
	doc, err := mem.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc != nil {
		t.Fatalf("expected nil for empty store, got %+v", doc)
	}
}

func TestMemorySaveLoadCopies(t *testing.T) {
	mem := NewMemory()
	doc := document.Seed(time.Date(2026, 8, 1, 8, 0, 0, 0, time.UTC))
	if err := mem.Save(context.Background(), doc); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := mem.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Loads are independent copies, mutating one never leaks.
	got.Tools[0].Holder = "someone"
	again, _ := mem.Load(context.Background())
	if again.Tools[0].Holder != "" {
		t.Fatal("load returned a shared document")
	}
}

func TestMemoryFailSaves(t *testing.T) {
	mem := NewMemory()
	doc := document.Seed(time.Date(2026, 8, 1, 8, 0, 0, 0, time.UTC))
	if err := mem.Save(context.Background(), doc); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mem.FailSaves(errors.New("down"))
	doc.Tools[0].Holder = "jdoe"
	err := mem.Save(context.Background(), doc)
	if !errors.Is(err, ErrSync) {
		t.Fatalf("expected ErrSync, got %v", err)
	}
	got, _ := mem.Load(context.Background())
	if got.Tools[0].Holder != "" {
		t.Fatal("failed save still stored the document")
	}
}

func TestMemorySubscribeInject(t *testing.T) {
	mem := NewMemory()
	var received *document.Document
	unsub, err := mem.Subscribe(context.Background(), func(doc *document.Document, err error) {
		received = doc
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	doc := document.Seed(time.Date(2026, 8, 1, 8, 0, 0, 0, time.UTC))
	if err := mem.Inject(doc); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if received == nil || len(received.Tools) != 8 {
		t.Fatalf("subscriber did not receive document: %+v", received)
	}

	unsub()
	received = nil
	if err := mem.Inject(doc); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if received != nil {
		t.Fatal("unsubscribed handler still invoked")
	}
}
