package www

import (
	"net/http"

	"toolcrib/reservation"
)

func (h *Handlers) handleListQueue(w http.ResponseWriter, r *http.Request) {
	doc := h.engine.Snapshot()
	if doc == nil {
		h.jsonError(w, "document not loaded", http.StatusServiceUnavailable)
		return
	}
	h.jsonOK(w, map[string]any{
		"groups": reservation.GroupedActive(doc),
		"count":  reservation.CountActive(doc),
	})
}

func (h *Handlers) handleJoinQueue(w http.ResponseWriter, r *http.Request) {
	toolID, ok := h.toolID(w, r, "toolID")
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
	entry, err := h.engine.JoinQueue(r.Context(), operatorFrom(r), toolID, opNumber, req.Station)
	if err != nil {
		h.jsonOpError(w, err)
		return
	}
	position := reservation.Position(h.engine.Snapshot(), toolID, entry.Operator)
	h.jsonOK(w, map[string]any{"reservation": entry, "position": position})
}

func (h *Handlers) handleLeaveQueue(w http.ResponseWriter, r *http.Request) {
	toolID, ok := h.toolID(w, r, "toolID")
	if !ok {
		return
	}
	if err := h.engine.LeaveQueue(r.Context(), operatorFrom(r), toolID); err != nil {
		h.jsonOpError(w, err)
		return
	}
	h.jsonOK(w, map[string]string{"status": "left"})
}

func (h *Handlers) handleQueueNext(w http.ResponseWriter, r *http.Request) {
	toolID, ok := h.toolID(w, r, "toolID")
	if !ok {
		return
	}
	doc := h.engine.Snapshot()
	if doc.ToolByID(toolID) == nil {
		h.jsonError(w, "tool not found", http.StatusNotFound)
		return
	}
	h.jsonOK(w, map[string]any{"next": reservation.NextInLine(doc, toolID)})
}
