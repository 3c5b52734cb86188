package model

// PhaseKind names a mechanical phase of a golf swing. It is a closed set so
// missing-phase handling stays exhaustive.
type PhaseKind int

// Swing phases in mechanical order.
const (
	PhaseAddress PhaseKind = iota
	PhaseBackswing
	PhaseTransition
	PhaseDownswing
	PhaseImpact
	PhaseFollowThrough
)

// String returns the lowercase phase name.
func (k PhaseKind) String() string {
	switch k {
	case PhaseAddress:
		return "address"
	case PhaseBackswing:
		return "backswing"
	case PhaseTransition:
		return "transition"
	case PhaseDownswing:
		return "downswing"
	case PhaseImpact:
		return "impact"
	case PhaseFollowThrough:
		return "follow_through"
	default:
		return "unknown"
	}
}

// SwingPhase is one sub-interval of a detected swing. Peak values are zero
// when not computed for the phase.
type SwingPhase struct {
	Kind                PhaseKind `json:"kind"`
	StartTimeMs         int64     `json:"start_time_ms"`
	EndTimeMs           int64     `json:"end_time_ms"`
	PeakAcceleration    float64   `json:"peak_acceleration,omitempty"`
	PeakAngularVelocity float64   `json:"peak_angular_velocity,omitempty"`
}

// DurationMs returns the phase duration in milliseconds.
func (p SwingPhase) DurationMs() int64 {
	return p.EndTimeMs - p.StartTimeMs
}

// FindPhase returns the first phase of the given kind, if present.
func FindPhase(phases []SwingPhase, kind PhaseKind) (SwingPhase, bool) {
	for _, p := range phases {
		if p.Kind == kind {
			return p, true
		}
	}
	return SwingPhase{}, false
}
