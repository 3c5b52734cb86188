package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/fairwaylabs/swingsense/internal/domain/model"
)

// CalibrationDependencies defines the interface for calibration access.
type CalibrationDependencies interface {
	Calibration(ctx context.Context) (model.Calibration, bool)
	ReplaceCalibration(ctx context.Context, cal model.Calibration)
}

// CalibrationHandler handles calibration requests.
type CalibrationHandler struct {
	deps CalibrationDependencies
}

// NewCalibrationHandler creates a new calibration handler.
func NewCalibrationHandler(deps CalibrationDependencies) *CalibrationHandler {
	return &CalibrationHandler{deps: deps}
}

// HandleCalibration handles GET and PUT /calibration requests.
func (h *CalibrationHandler) HandleCalibration(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleGet(w, r)
	case http.MethodPut:
		h.handlePut(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *CalibrationHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_calibration"
	cal, ok := h.deps.Calibration(r.Context())
	if !ok {
		writeError(w, http.StatusNotFound, "not_initialized", NewKind(op, ErrNotFound))
		return
	}
	writeJSON(w, http.StatusOK, cal)
}

func (h *CalibrationHandler) handlePut(w http.ResponseWriter, r *http.Request) {
	const op = "api.put_calibration"

	var cal model.Calibration
	if err := json.NewDecoder(r.Body).Decode(&cal); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := validateCalibration(cal); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	h.deps.ReplaceCalibration(r.Context(), cal)
	writeJSON(w, http.StatusOK, cal)
}

func validateCalibration(cal model.Calibration) error {
	switch {
	case strings.TrimSpace(cal.UserID) == "":
		return errors.New("missing user_id")
	case cal.BaselineNoise <= 0:
		return errors.New("baseline_noise must be positive")
	case cal.SwingThreshold <= cal.BaselineNoise:
		return errors.New("swing_threshold must exceed baseline_noise")
	case cal.PersonalizedExpectedTempo <= 0:
		return errors.New("personalized_expected_tempo must be positive")
	}
	switch cal.Handedness {
	case model.RightHanded, model.LeftHanded:
	default:
		return errors.New("invalid handedness")
	}
	return nil
}
