package www

import (
	"net/http"

	"toolcrib/document"
	"toolcrib/ledger"
	"toolcrib/registry"
)

// materialView is a material with its effective status: zero stock shows
// as depleted regardless of the stored status.
type materialView struct {
	document.Material
	EffectiveStatus string `json:"effective_status"`
	LowStock        bool   `json:"low_stock"`
}

func materialViews(doc *document.Document) []materialView {
	out := make([]materialView, 0, len(doc.Materials))
	for i := range doc.Materials {
		m := doc.Materials[i]
		out = append(out, materialView{
			Material:        m,
			EffectiveStatus: registry.EffectiveMaterialStatus(&m),
			LowStock:        m.Quantity <= m.MinQuantity,
		})
	}
	return out
}

func (h *Handlers) handleListMaterials(w http.ResponseWriter, r *http.Request) {
	doc := h.engine.Snapshot()
	if doc == nil {
		h.jsonError(w, "document not loaded", http.StatusServiceUnavailable)
		return
	}
	views := materialViews(doc)
	if r.URL.Query().Get("low_stock") == "true" {
		var low []materialView
		for _, v := range views {
			if v.LowStock {
				low = append(low, v)
			}
		}
		views = low
	}
	h.jsonOK(w, map[string]any{"materials": views})
}

func (h *Handlers) handleMaterialDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := h.toolID(w, r, "id")
	if !ok {
		return
	}
	doc := h.engine.Snapshot()
	mat := doc.MaterialByID(id)
	if mat == nil {
		h.jsonError(w, "material not found", http.StatusNotFound)
		return
	}
	h.jsonOK(w, map[string]any{
		"material": materialView{
			Material:        *mat,
			EffectiveStatus: registry.EffectiveMaterialStatus(mat),
			LowStock:        mat.Quantity <= mat.MinQuantity,
		},
		"history": ledger.RecentFor(doc, mat.Code, 20),
	})
}

func (h *Handlers) handleTakeMaterial(w http.ResponseWriter, r *http.Request) {
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
	mat, err := h.engine.TakeMaterial(r.Context(), operatorFrom(r), id, opNumber, req.Station)
	if err != nil {
		h.jsonOpError(w, err)
		return
	}
	h.jsonOK(w, mat)
}

func (h *Handlers) handleReturnMaterial(w http.ResponseWriter, r *http.Request) {
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
	mat, err := h.engine.ReturnMaterial(r.Context(), operatorFrom(r), id, opNumber)
	if err != nil {
		h.jsonOpError(w, err)
		return
	}
	h.jsonOK(w, mat)
}

func (h *Handlers) handleAdjustQuantity(w http.ResponseWriter, r *http.Request) {
	id, ok := h.toolID(w, r, "id")
	if !ok {
		return
	}
	var req struct {
		Quantity int `json:"quantity"`
	}
	if !h.decode(w, r, &req) {
		return
	}
	mat, err := h.engine.AdjustMaterialQuantity(r.Context(), operatorFrom(r), id, req.Quantity)
	if err != nil {
		h.jsonOpError(w, err)
		return
	}
	h.jsonOK(w, mat)
}
