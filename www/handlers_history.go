package www

import (
	"net/http"
	"strconv"

	"toolcrib/ledger"
)

func limitParam(r *http.Request, def int) int {
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 {
			return n
		}
	}
	return def
}

// handleHistory serves the in-document ledger, newest first.
func (h *Handlers) handleHistory(w http.ResponseWriter, r *http.Request) {
	doc := h.engine.Snapshot()
	if doc == nil {
		h.jsonError(w, "document not loaded", http.StatusServiceUnavailable)
		return
	}
	limit := limitParam(r, 50)

	q := r.URL.Query()
	switch {
	case q.Get("serial") != "":
		h.jsonOK(w, map[string]any{"history": ledger.RecentFor(doc, q.Get("serial"), limit)})
	case q.Get("operator") != "":
		h.jsonOK(w, map[string]any{"history": ledger.ForOperator(doc, q.Get("operator"), limit)})
	case q.Get("kind") != "":
		h.jsonOK(w, map[string]any{"history": ledger.ForKind(doc, q.Get("kind"), limit)})
	default:
		h.jsonOK(w, map[string]any{"history": ledger.Recent(doc, limit)})
	}
}

// handleHistoryArchive serves the SQL archive, which outlives document
// resets and holds the full record.
func (h *Handlers) handleHistoryArchive(w http.ResponseWriter, r *http.Request) {
	db := h.engine.DB()
	if db == nil {
		h.jsonError(w, "archive not configured", http.StatusServiceUnavailable)
		return
	}
	workshopID := h.engine.AppConfig().Workshop.ID
	limit := limitParam(r, 100)

	var err error
	var entries any
	if serial := r.URL.Query().Get("serial"); serial != "" {
		entries, err = db.ListHistoryBySerial(workshopID, serial, limit)
	} else {
		entries, err = db.ListHistory(workshopID, limit)
	}
	if err != nil {
		h.jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	total, err := db.CountHistory(workshopID)
	if err != nil {
		h.jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	h.jsonOK(w, map[string]any{"history": entries, "total": total})
}
