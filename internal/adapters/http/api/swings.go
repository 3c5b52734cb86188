package api

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/fairwaylabs/swingsense/internal/domain/model"
)

// defaultMaxHistoryLimit caps the limit query parameter on GET /swings.
const defaultMaxHistoryLimit = 100

// SwingDependencies defines the interface for swing-history access.
type SwingDependencies interface {
	Recent(ctx context.Context, limit int) ([]model.SwingDetectionResult, error)
	Best(ctx context.Context) (model.SwingDetectionResult, error)
	Swing(ctx context.Context, id string) (model.SwingDetectionResult, error)
	ConfirmSwing(ctx context.Context, id string) error
}

// SwingsHandler handles swing-history requests.
type SwingsHandler struct {
	deps     SwingDependencies
	maxLimit int
}

// NewSwingsHandler creates a new swings handler.
func NewSwingsHandler(deps SwingDependencies, maxLimit int) *SwingsHandler {
	return &SwingsHandler{
		deps:     deps,
		maxLimit: maxLimit,
	}
}

// HandleGetSwings handles GET /swings?limit=N requests.
func (h *SwingsHandler) HandleGetSwings(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_swings"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	limit := h.maxLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		n, err := strconv.Atoi(limitStr)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
			return
		}
		if n > h.maxLimit {
			writeError(w, http.StatusBadRequest, "limit_exceeded", NewKind(op, ErrBadRequest))
			return
		}
		limit = n
	}

	swings, err := h.deps.Recent(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	if swings == nil {
		swings = []model.SwingDetectionResult{}
	}
	writeJSON(w, http.StatusOK, swings)
}

// HandleSwing handles GET /swings/best, GET /swings/{id}, and
// POST /swings/{id}/confirm requests.
func (h *SwingsHandler) HandleSwing(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_swing"

	path := strings.TrimPrefix(r.URL.Path, "/swings/")
	if id, ok := strings.CutSuffix(path, "/confirm"); ok {
		h.confirmSwing(w, r, id)
		return
	}

	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	id := path
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	var (
		result model.SwingDetectionResult
		err    error
	)
	if id == "best" {
		result, err = h.deps.Best(r.Context())
	} else {
		result, err = h.deps.Swing(r.Context(), id)
	}

	if err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "not_found", NewKind(op, ErrNotFound))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// confirmSwing acknowledges a detection as a real swing so its metrics feed
// the calibration. Only a POST with a concrete swing ID is accepted.
func (h *SwingsHandler) confirmSwing(w http.ResponseWriter, r *http.Request, id string) {
	const op = "api.confirm_swing"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	if id == "" || id == "best" || strings.Contains(id, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	if err := h.deps.ConfirmSwing(r.Context(), id); err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "not_found", NewKind(op, ErrNotFound))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, ackResponse{Status: "confirmed"})
}
