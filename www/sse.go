package www

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"toolcrib/engine"
)

// eventHub fans engine events out to connected SSE clients. Slow clients
// drop events rather than block the bus.
type eventHub struct {
	mu      sync.Mutex
	clients map[chan []byte]struct{}
}

func newEventHub(bus *engine.EventBus) *eventHub {
	hub := &eventHub{clients: make(map[chan []byte]struct{})}
	bus.Subscribe(hub.broadcast)
	return hub
}

var eventNames = map[engine.EventType]string{
	engine.EventToolTaken:          "tool_taken",
	engine.EventToolReturned:       "tool_returned",
	engine.EventMaterialTaken:      "material_taken",
	engine.EventMaterialReturned:   "material_returned",
	engine.EventMaintenanceChanged: "maintenance_changed",
	engine.EventQuantityAdjusted:   "quantity_adjusted",
	engine.EventQueueJoined:        "queue_joined",
	engine.EventQueueLeft:          "queue_left",
	engine.EventTaskCreated:        "task_created",
	engine.EventTaskStarted:        "task_started",
	engine.EventTaskCompleted:      "task_completed",
	engine.EventTaskCancelled:      "task_cancelled",
	engine.EventTaskDeleted:        "task_deleted",
	engine.EventOperationSaved:     "operation_saved",
	engine.EventOperationDeleted:   "operation_deleted",
	engine.EventDocumentReplaced:   "document_replaced",
	engine.EventSyncFailed:         "sync_failed",
}

func (hub *eventHub) broadcast(evt engine.Event) {
	name, ok := eventNames[evt.Type]
	if !ok {
		return
	}
	payload, err := json.Marshal(map[string]any{"type": name, "payload": evt.Payload})
	if err != nil {
		return
	}
	hub.mu.Lock()
	defer hub.mu.Unlock()
	for ch := range hub.clients {
		select {
		case ch <- payload:
		default:
		}
	}
}

func (hub *eventHub) register() chan []byte {
	ch := make(chan []byte, 16)
	hub.mu.Lock()
	hub.clients[ch] = struct{}{}
	hub.mu.Unlock()
	return ch
}

func (hub *eventHub) unregister(ch chan []byte) {
	hub.mu.Lock()
	delete(hub.clients, ch)
	hub.mu.Unlock()
}

func (hub *eventHub) clientCount() int {
	hub.mu.Lock()
	defer hub.mu.Unlock()
	return len(hub.clients)
}

// handleEvents streams engine events as server-sent events.
func (h *Handlers) handleEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		h.jsonError(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := h.hub.register()
	defer h.hub.unregister(ch)

	fmt.Fprintf(w, "event: connected\ndata: {}\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case payload := <-ch:
			fmt.Fprintf(w, "data: %s\n\n", payload)
			flusher.Flush()
		}
	}
}
