package api

import (
	"context"
	"net/http"
)

// SessionDependencies defines the interface for session control.
type SessionDependencies interface {
	ResetSession(ctx context.Context)
}

// SessionHandler handles session control requests.
type SessionHandler struct {
	deps SessionDependencies
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(deps SessionDependencies) *SessionHandler {
	return &SessionHandler{deps: deps}
}

// HandleReset handles POST /session/reset requests. Calibration survives the
// reset; the sample buffer and swing history do not.
func (h *SessionHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	h.deps.ResetSession(r.Context())
	writeJSON(w, http.StatusOK, ackResponse{Status: "reset"})
}
