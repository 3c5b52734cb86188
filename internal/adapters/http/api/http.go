// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fairwaylabs/swingsense/internal/adapters/repository"
	"github.com/fairwaylabs/swingsense/internal/domain/model"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Enqueue pushes a sample for async processing. Returns false on
	// backpressure.
	Enqueue(ctx context.Context, s model.MotionSample) bool

	// Read operations expose the session swing history.
	Recent(ctx context.Context, limit int) ([]model.SwingDetectionResult, error)
	Best(ctx context.Context) (model.SwingDetectionResult, error)
	Swing(ctx context.Context, id string) (model.SwingDetectionResult, error)

	// ConfirmSwing acknowledges a recorded swing, feeding its metrics back
	// into the calibration.
	ConfirmSwing(ctx context.Context, id string) error

	// Calibration access for the active session.
	Calibration(ctx context.Context) (model.Calibration, bool)
	ReplaceCalibration(ctx context.Context, cal model.Calibration)

	// ResetSession clears the buffer and swing history between holes.
	ResetSession(ctx context.Context)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	samplesHandler     *SamplesHandler
	swingsHandler      *SwingsHandler
	calibrationHandler *CalibrationHandler
	sessionHandler     *SessionHandler
	streamHandler      http.HandlerFunc
	maxHistoryLimit    int
}

// Option applies a configuration option to the Server.
type Option func(*Server)

// WithMaxHistoryLimit caps the limit query parameter on swing history reads.
func WithMaxHistoryLimit(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxHistoryLimit = n
		}
	}
}

// NewServer creates a new API server with all handlers. streamHandler is the
// WebSocket upgrade endpoint; pass nil to disable streaming.
func NewServer(deps Dependencies, statsProvider StatsProvider, streamHandler http.HandlerFunc, opts ...Option) *Server {
	s := &Server{
		maxHistoryLimit: defaultMaxHistoryLimit,
		streamHandler:   streamHandler,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.healthHandler = NewHealthHandler()
	s.statsHandler = NewStatsHandler(statsProvider)
	s.samplesHandler = NewSamplesHandler(deps)
	s.swingsHandler = NewSwingsHandler(deps, s.maxHistoryLimit)
	s.calibrationHandler = NewCalibrationHandler(deps)
	s.sessionHandler = NewSessionHandler(deps)
	return s
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/samples", MetricsMiddleware(s.samplesHandler.HandlePostSamples, "samples"))
	mux.HandleFunc("/swings", MetricsMiddleware(s.swingsHandler.HandleGetSwings, "swings"))
	mux.HandleFunc("/swings/", MetricsMiddleware(s.swingsHandler.HandleSwing, "swing"))
	mux.HandleFunc("/calibration", MetricsMiddleware(s.calibrationHandler.HandleCalibration, "calibration"))
	mux.HandleFunc("/session/reset", MetricsMiddleware(s.sessionHandler.HandleReset, "session_reset"))
	if s.streamHandler != nil {
		mux.HandleFunc("/stream", s.streamHandler)
	}
}

type ackResponse struct {
	Status   string `json:"status"`
	Accepted int    `json:"accepted,omitempty"`
	Rejected int    `json:"rejected,omitempty"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// isNotFound translates upstream not-found errors to 404. The history store
// surfaces these as sentinel errors, so wrapping is safe.
func isNotFound(err error) bool {
	return errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrNoSwings)
}
