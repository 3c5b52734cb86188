package model

// Handedness indicates which hand the player swings with.
type Handedness string

// Handedness values.
const (
	RightHanded Handedness = "right"
	LeftHanded  Handedness = "left"
)

// Club identifies the club category last seen for the user.
type Club string

// Club values.
const (
	ClubDriver Club = "driver"
	ClubIron   Club = "iron"
	ClubWedge  Club = "wedge"
	ClubPutter Club = "putter"
)

// Calibration holds per-user detection thresholds and personalized
// expectations. One instance per active session; never shared across users.
// PersonalizedExpectedTempo is the only field mutated after creation, via
// exponential smoothing once a swing is confirmed.
type Calibration struct {
	UserID                    string     `json:"user_id"`
	BaselineNoise             float64    `json:"baseline_noise"`
	SwingThreshold            float64    `json:"swing_threshold"`
	Handedness                Handedness `json:"handedness"`
	LastKnownClub             Club       `json:"last_known_club"`
	PersonalizedExpectedTempo float64    `json:"personalized_expected_tempo"`
}
