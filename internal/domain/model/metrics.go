package model

// SwingMetrics are the numeric measurements derived from a segmented swing.
// Pure value object; never mutated after creation.
//
// EstimatedClubheadSpeedMph comes from an empirical model with no physical
// calibration behind it. Treat it as approximate, not ground truth.
type SwingMetrics struct {
	MaxSpeed                  float64 `json:"max_speed"`
	BackswingAngleDeg         float64 `json:"backswing_angle_deg"`
	DownswingAngleDeg         float64 `json:"downswing_angle_deg"`
	FollowThroughAngleDeg     float64 `json:"follow_through_angle_deg"`
	ImpactTimingMs            int64   `json:"impact_timing_ms"`
	SwingTempo                float64 `json:"swing_tempo"`
	SwingPlaneDeg             float64 `json:"swing_plane_deg"`
	EstimatedClubheadSpeedMph float64 `json:"estimated_clubhead_speed_mph"`
}
