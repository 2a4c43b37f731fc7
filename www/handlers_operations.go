package www

import (
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"

	"toolcrib/document"
)

func (h *Handlers) handleListOperations(w http.ResponseWriter, r *http.Request) {
	doc := h.engine.Snapshot()
	if doc == nil {
		h.jsonError(w, "document not loaded", http.StatusServiceUnavailable)
		return
	}
	ops := make([]document.Operation, 0, len(doc.Operations))
	for _, op := range doc.Operations {
		ops = append(ops, op)
	}
	sort.Slice(ops, func(i, j int) bool { return ops[i].Code < ops[j].Code })
	h.jsonOK(w, map[string]any{"operations": ops})
}

func (h *Handlers) handleOperationDetail(w http.ResponseWriter, r *http.Request) {
	doc := h.engine.Snapshot()
	op, ok := doc.Operations[chi.URLParam(r, "id")]
	if !ok {
		h.jsonError(w, "operation not found", http.StatusNotFound)
		return
	}
	h.jsonOK(w, op)
}

func (h *Handlers) handleSaveOperation(w http.ResponseWriter, r *http.Request) {
	var op document.Operation
	if !h.decode(w, r, &op) {
		return
	}
	if op.Code == "" || op.Name == "" {
		h.jsonError(w, "operation code and name are required", http.StatusBadRequest)
		return
	}
	saved, err := h.engine.SaveOperation(r.Context(), operatorFrom(r), op)
	if err != nil {
		h.jsonOpError(w, err)
		return
	}
	h.jsonOK(w, saved)
}

func (h *Handlers) handleDeleteOperation(w http.ResponseWriter, r *http.Request) {
	if err := h.engine.DeleteOperation(r.Context(), operatorFrom(r), chi.URLParam(r, "id")); err != nil {
		h.jsonOpError(w, err)
		return
	}
	h.jsonOK(w, map[string]string{"status": "deleted"})
}
