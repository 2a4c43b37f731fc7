package www

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"toolcrib/document"
	"toolcrib/ledger"
	"toolcrib/registry"
	"toolcrib/reservation"
)

func (h *Handlers) toolID(w http.ResponseWriter, r *http.Request, param string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	if err != nil {
		h.jsonError(w, "invalid tool id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func (h *Handlers) handleListTools(w http.ResponseWriter, r *http.Request) {
	doc := h.engine.Snapshot()
	if doc == nil {
		h.jsonError(w, "document not loaded", http.StatusServiceUnavailable)
		return
	}

	tools := doc.Tools
	if status := r.URL.Query().Get("status"); status != "" {
		tools = registry.ToolsByStatus(doc, status)
	} else if station := r.URL.Query().Get("station"); station != "" {
		tools = registry.ToolsAtStation(doc, station)
	}

	if group := r.URL.Query().Get("group"); group != "" {
		grouped, available := registry.ToolsByGroup(doc, group)
		h.jsonOK(w, map[string]any{"tools": grouped, "available": available})
		return
	}
	h.jsonOK(w, map[string]any{"tools": tools})
}

func (h *Handlers) handleToolDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := h.toolID(w, r, "id")
	if !ok {
		return
	}
	doc := h.engine.Snapshot()
	tool := doc.ToolByID(id)
	if tool == nil {
		h.jsonError(w, "tool not found", http.StatusNotFound)
		return
	}
	h.jsonOK(w, map[string]any{
		"tool":    tool,
		"history": ledger.RecentFor(doc, tool.Serial, 20),
		"queue":   queueForTool(doc, id),
	})
}

func queueForTool(doc *document.Document, toolID int64) []document.Reservation {
	entries := []document.Reservation{}
	for _, g := range reservation.GroupedActive(doc) {
		if g.ToolID == toolID {
			entries = g.Entries
		}
	}
	return entries
}

func (h *Handlers) handleTakeTool(w http.ResponseWriter, r *http.Request) {
	id, ok := h.toolID(w, r, "id")
	if !ok {
		return
	}
	var req struct {
		OperationNumber string `json:"operation_number"`
		Station         string `json:"station"`
	}
	if !h.decode(w, r, &req) {
		return
	}
	opNumber := h.operationNumber(w, r, req.OperationNumber)
	tool, err := h.engine.TakeTool(r.Context(), operatorFrom(r), id, opNumber, req.Station)
	if err != nil {
		h.jsonOpError(w, err)
		return
	}
	h.jsonOK(w, tool)
}

func (h *Handlers) handleReturnTool(w http.ResponseWriter, r *http.Request) {
	id, ok := h.toolID(w, r, "id")
	if !ok {
		return
	}
	var req struct {
		OperationNumber string `json:"operation_number"`
	}
	if !h.decode(w, r, &req) {
		return
	}
	opNumber := h.operationNumber(w, r, req.OperationNumber)
	tool, err := h.engine.ReturnTool(r.Context(), operatorFrom(r), id, opNumber)
	if err != nil {
		h.jsonOpError(w, err)
		return
	}
	// Advisory only: the next operator still has to take the tool.
	var next *document.Reservation
	queue := h.engine.Snapshot().WaitQueue
	for i := range queue {
		if queue[i].ToolID == id {
			next = &queue[i]
			break
		}
	}
	h.jsonOK(w, map[string]any{"tool": tool, "next_in_line": next})
}

func (h *Handlers) handleToolMaintenance(w http.ResponseWriter, r *http.Request) {
	id, ok := h.toolID(w, r, "id")
	if !ok {
		return
	}
	var req struct {
		On bool `json:"on"`
	}
	if !h.decode(w, r, &req) {
		return
	}
	tool, err := h.engine.SetToolMaintenance(r.Context(), operatorFrom(r), id, req.On)
	if err != nil {
		h.jsonOpError(w, err)
		return
	}
	h.jsonOK(w, tool)
}
