// Package www is the JSON API over the engine. Handlers never touch the
// document directly: reads go through engine.Snapshot, writes through the
// engine's operation methods.
package www

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/sessions"

	"toolcrib/auth"
	"toolcrib/engine"
	"toolcrib/registry"
	"toolcrib/reservation"
	"toolcrib/taskflow"
)

const sessionName = "toolcrib"

type Handlers struct {
	engine   *engine.Engine
	sessions *sessions.CookieStore
	hub      *eventHub
	logFn    engine.LogFunc
}

func NewHandlers(e *engine.Engine, sessionSecret string, logFn engine.LogFunc) *Handlers {
	store := sessions.NewCookieStore([]byte(sessionSecret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return &Handlers{engine: e, sessions: store, hub: newEventHub(e.Events), logFn: logFn}
}

func (h *Handlers) jsonOK(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

func (h *Handlers) jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// jsonOpError maps domain errors onto HTTP statuses. Task start failures
// carry the full per-tool blocker list in the body.
func (h *Handlers) jsonOpError(w http.ResponseWriter, err error) {
	var unavailable *taskflow.UnavailableError
	if errors.As(err, &unavailable) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]any{
			"error":             unavailable.Error(),
			"unavailable_tools": unavailable.Tools,
		})
		return
	}
	switch {
	case errors.Is(err, engine.ErrPermissionDenied):
		h.jsonError(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, registry.ErrNotFound),
		errors.Is(err, reservation.ErrNotFound),
		errors.Is(err, taskflow.ErrNotFound):
		h.jsonError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, registry.ErrNotAvailable),
		errors.Is(err, registry.ErrNotInUse),
		errors.Is(err, registry.ErrDepleted),
		errors.Is(err, reservation.ErrAlreadyQueued),
		errors.Is(err, reservation.ErrNotQueued),
		errors.Is(err, taskflow.ErrNotPending),
		errors.Is(err, taskflow.ErrTaskInProgress),
		errors.Is(err, taskflow.ErrDuplicateTool),
		errors.Is(err, taskflow.ErrNoToolsAssigned):
		h.jsonError(w, err.Error(), http.StatusConflict)
	case errors.Is(err, engine.ErrNotReady):
		h.jsonError(w, err.Error(), http.StatusServiceUnavailable)
	default:
		h.jsonError(w, err.Error(), http.StatusBadGateway)
	}
}

func (h *Handlers) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.jsonError(w, "invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

// currentOperator resolves the session against the directory so revoked
// accounts lose access on their next request.
func (h *Handlers) currentOperator(r *http.Request) *auth.Operator {
	session, err := h.sessions.Get(r, sessionName)
	if err != nil {
		return nil
	}
	username, ok := session.Values["username"].(string)
	if !ok || username == "" {
		return nil
	}
	op, ok := h.engine.Directory().Lookup(username)
	if !ok {
		return nil
	}
	return op
}

// operationNumber is sticky: an explicit value wins and is remembered,
// otherwise the last one used in this session is reused.
func (h *Handlers) operationNumber(w http.ResponseWriter, r *http.Request, explicit string) string {
	session, err := h.sessions.Get(r, sessionName)
	if err != nil {
		return explicit
	}
	if explicit != "" {
		session.Values["operation_number"] = explicit
		session.Save(r, w)
		return explicit
	}
	if remembered, ok := session.Values["operation_number"].(string); ok {
		return remembered
	}
	return ""
}

type contextKey int

const operatorKey contextKey = 1

func (h *Handlers) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		op := h.currentOperator(r)
		if op == nil {
			h.jsonError(w, "authentication required", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r.WithContext(withOperator(r.Context(), op)))
	})
}

func (h *Handlers) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		op := operatorFrom(r)
		if op == nil || !op.Admin {
			h.jsonError(w, "admin required", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
