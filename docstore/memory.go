package docstore

import (
	"context"
	"fmt"
	"sync"

	"toolcrib/document"
)

// Memory is a single-process gateway. It round-trips the document through
// its JSON encoding on every load and save so callers see the same copy
// semantics as the redis backend.
type Memory struct {
	mu       sync.Mutex
	data     []byte
	subs     map[int]ChangeFunc
	nextSub  int
	failSave error
}

func NewMemory() *Memory {
	return &Memory{subs: map[int]ChangeFunc{}}
}

// FailSaves makes every subsequent Save return err. Pass nil to clear.
func (m *Memory) FailSaves(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failSave = err
}

func (m *Memory) Load(ctx context.Context) (*document.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		return nil, nil
	}
	doc, err := document.Decode(m.data)
	if err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrSync, err)
	}
	return doc, nil
}

func (m *Memory) Save(ctx context.Context, doc *document.Document) error {
	data, err := doc.Encode()
	if err != nil {
		return fmt.Errorf("%w: encode: %v", ErrSync, err)
	}
	m.mu.Lock()
	if m.failSave != nil {
		err := m.failSave
		m.mu.Unlock()
		return fmt.Errorf("%w: save: %v", ErrSync, err)
	}
	m.data = data
	m.mu.Unlock()
	return nil
}

func (m *Memory) Subscribe(ctx context.Context, fn ChangeFunc) (Unsubscribe, error) {
	m.mu.Lock()
	id := m.nextSub
	m.nextSub++
	m.subs[id] = fn
	m.mu.Unlock()
	return func() {
		m.mu.Lock()
		delete(m.subs, id)
		m.mu.Unlock()
	}, nil
}

// Inject replaces the stored document and notifies subscribers, standing
// in for a foreign writer on the shared store.
func (m *Memory) Inject(doc *document.Document) error {
	data, err := doc.Encode()
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.data = data
	fns := make([]ChangeFunc, 0, len(m.subs))
	for _, fn := range m.subs {
		fns = append(fns, fn)
	}
	m.mu.Unlock()
	for _, fn := range fns {
		fresh, err := document.Decode(data)
		fn(fresh, err)
	}
	return nil
}

func (m *Memory) Close() error { return nil }
