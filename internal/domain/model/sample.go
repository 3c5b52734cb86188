// Package model contains domain models passed between layers.
package model

import "math"

// Vec3 is a 3-axis sensor reading.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Magnitude returns the Euclidean norm of the vector.
func (v Vec3) Magnitude() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// MotionSample is one inertial reading from the device.
// Units: acceleration in m/s², angular velocity in deg/s, timestamp in
// epoch milliseconds. Adapters must convert before handing samples in.
// Immutable once created.
type MotionSample struct {
	Acceleration    Vec3  `json:"acceleration"`
	AngularVelocity Vec3  `json:"angular_velocity"`
	TimestampMs     int64 `json:"timestamp_ms"`
}

// gyroScale compensates for the gyro's numeric range sitting roughly two
// orders of magnitude above acceleration.
const gyroScale = 100.0

// MotionMagnitude is the scalar used for thresholding and peak finding:
// acceleration magnitude plus scaled angular-velocity magnitude.
func (s MotionSample) MotionMagnitude() float64 {
	return s.Acceleration.Magnitude() + s.AngularVelocity.Magnitude()/gyroScale
}
