package www

import (
	"net/http"

	"toolcrib/auth"
)

func (h *Handlers) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if !h.decode(w, r, &req) {
		return
	}
	op, err := h.engine.Directory().Authenticate(req.Username, req.Password)
	if err != nil {
		h.jsonError(w, auth.ErrInvalidCredentials.Error(), http.StatusUnauthorized)
		return
	}
	session, _ := h.sessions.Get(r, sessionName)
	session.Values["username"] = op.Username
	if err := session.Save(r, w); err != nil {
		h.jsonError(w, "session save failed", http.StatusInternalServerError)
		return
	}
	h.logFn("www: %s logged in", op.Username)
	h.jsonOK(w, op)
}

func (h *Handlers) handleLogout(w http.ResponseWriter, r *http.Request) {
	session, _ := h.sessions.Get(r, sessionName)
	session.Options.MaxAge = -1
	session.Save(r, w)
	h.jsonOK(w, map[string]string{"status": "logged out"})
}

func (h *Handlers) handleMe(w http.ResponseWriter, r *http.Request) {
	h.jsonOK(w, operatorFrom(r))
}
