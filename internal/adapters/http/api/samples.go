package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fairwaylabs/swingsense/internal/domain/model"
)

// SampleDependencies defines the interface for sample ingestion.
type SampleDependencies interface {
	Enqueue(ctx context.Context, s model.MotionSample) bool
}

// SamplesHandler handles sample ingestion requests.
type SamplesHandler struct {
	deps SampleDependencies
}

// NewSamplesHandler creates a new samples handler.
func NewSamplesHandler(deps SampleDependencies) *SamplesHandler {
	return &SamplesHandler{deps: deps}
}

// sampleRequest mirrors the wire schema for POST /samples. A request carries
// either a single sample or a batch; batches preserve order.
type sampleRequest struct {
	Samples []model.MotionSample `json:"samples"`
}

func validateSample(s model.MotionSample) error {
	if s.TimestampMs <= 0 {
		return errors.New("missing timestamp_ms")
	}
	return nil
}

// HandlePostSamples handles POST /samples requests. The body is either one
// MotionSample object or {"samples": [...]}.
func (h *SamplesHandler) HandlePostSamples(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_samples"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	samples, err := decodeSamples(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	accepted, rejected := 0, 0
	for _, s := range samples {
		if err := validateSample(s); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		if h.deps.Enqueue(r.Context(), s) {
			accepted++
		} else {
			rejected++
		}
	}

	if accepted == 0 && rejected > 0 {
		writeError(w, http.StatusTooManyRequests, "backpressure", NewKind(op, ErrBackpressure))
		return
	}
	writeJSON(w, http.StatusAccepted, ackResponse{Status: "accepted", Accepted: accepted, Rejected: rejected})
}

// decodeSamples accepts both the single-object and batch body shapes.
func decodeSamples(r *http.Request) ([]model.MotionSample, error) {
	var raw json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		return nil, err
	}

	var batch sampleRequest
	if err := json.Unmarshal(raw, &batch); err == nil && len(batch.Samples) > 0 {
		return batch.Samples, nil
	}

	var single model.MotionSample
	if err := json.Unmarshal(raw, &single); err != nil {
		return nil, err
	}
	return []model.MotionSample{single}, nil
}
