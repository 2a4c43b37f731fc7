package engine

import "sync"

type EventType int

type Event struct {
	Type    EventType
	Payload any
}

type EventFunc func(Event)

// EventBus is a synchronous in-process fanout. Handlers run on the
// emitting goroutine, so they must not call back into the engine's
// mutation path.
type EventBus struct {
	mu       sync.RWMutex
	all      []EventFunc
	byType   map[EventType][]EventFunc
}

func NewEventBus() *EventBus {
	return &EventBus{byType: make(map[EventType][]EventFunc)}
}

// Subscribe registers a handler for every event.
func (b *EventBus) Subscribe(fn EventFunc) {
	b.mu.Lock()
	b.all = append(b.all, fn)
	b.mu.Unlock()
}

// SubscribeTypes registers a handler for the listed event types only.
func (b *EventBus) SubscribeTypes(fn EventFunc, types ...EventType) {
	b.mu.Lock()
	for _, t := range types {
		b.byType[t] = append(b.byType[t], fn)
	}
	b.mu.Unlock()
}

func (b *EventBus) Emit(evt Event) {
	b.mu.RLock()
	all := b.all
	typed := b.byType[evt.Type]
	b.mu.RUnlock()
	for _, fn := range all {
		fn(evt)
	}
	for _, fn := range typed {
		fn(evt)
	}
}
