package www

import (
	"net/http"

	"toolcrib/document"
	"toolcrib/registry"
	"toolcrib/reservation"
)

func (h *Handlers) handleDashboard(w http.ResponseWriter, r *http.Request) {
	doc := h.engine.Snapshot()
	if doc == nil {
		h.jsonError(w, "document not loaded", http.StatusServiceUnavailable)
		return
	}

	toolCounts := map[string]int{}
	for _, t := range doc.Tools {
		toolCounts[t.Status]++
	}

	lowStock := 0
	depleted := 0
	for i := range doc.Materials {
		m := &doc.Materials[i]
		if registry.EffectiveMaterialStatus(m) == document.StatusDepleted {
			depleted++
		}
		if m.Quantity <= m.MinQuantity {
			lowStock++
		}
	}

	taskCounts := map[string]int{}
	for _, t := range doc.Tasks {
		taskCounts[t.Status]++
	}

	h.jsonOK(w, map[string]any{
		"workshop":       h.engine.AppConfig().Workshop.Name,
		"tools":          toolCounts,
		"tools_total":    len(doc.Tools),
		"materials":      map[string]int{"low_stock": lowStock, "depleted": depleted},
		"tasks":          taskCounts,
		"queue_waiting":  reservation.CountActive(doc),
		"history_length": len(doc.History),
		"last_update":    doc.LastUpdate,
	})
}

func (h *Handlers) handleStations(w http.ResponseWriter, r *http.Request) {
	doc := h.engine.Snapshot()
	if doc == nil {
		h.jsonError(w, "document not loaded", http.StatusServiceUnavailable)
		return
	}
	type stationView struct {
		document.Station
		ToolsInUse []document.Tool `json:"tools_in_use"`
	}
	out := make([]stationView, 0, len(doc.Stations))
	for _, s := range doc.Stations {
		out = append(out, stationView{
			Station:    s,
			ToolsInUse: registry.ToolsAtStation(doc, s.ID),
		})
	}
	h.jsonOK(w, map[string]any{"stations": out})
}

func (h *Handlers) handleHealth(w http.ResponseWriter, r *http.Request) {
	loaded := h.engine.Snapshot() != nil
	status := "ok"
	if !loaded {
		status = "starting"
	}
	messaging := false
	if mc := h.engine.MsgClient(); mc != nil {
		messaging = mc.IsConnected()
	}
	h.jsonOK(w, map[string]any{
		"status":      status,
		"document":    loaded,
		"messaging":   messaging,
		"archive":     h.engine.DB() != nil,
		"sse_clients": h.hub.clientCount(),
	})
}
