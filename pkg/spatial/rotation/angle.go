package rotation

import "math"

// NormalizeAngle maps a degree value into [-180, 180]. Exactly 180 stays 180
// and exactly -180 stays -180.
func NormalizeAngle(angle float64) float64 {
	result := math.Mod(angle, 360)
	if result > 180 {
		result -= 360
	} else if result < -180 {
		result += 360
	}
	return result
}

// AngleDifference is the shortest signed delta from a to b, in degrees.
func AngleDifference(a, b float64) float64 {
	return NormalizeAngle(b - a)
}

// LerpRotator interpolates every axis independently along its shortest
// angular path. This is not a spherical interpolation: when several axes
// change at once the intermediate orientations can differ from a slerp of
// the same endpoints. Use Slerp on quaternions when that matters.
func LerpRotator(a, b Rotator, alpha float64) Rotator {
	return Rotator{
		Pitch: a.Pitch + alpha*AngleDifference(a.Pitch, b.Pitch),
		Yaw:   a.Yaw + alpha*AngleDifference(a.Yaw, b.Yaw),
		Roll:  a.Roll + alpha*AngleDifference(a.Roll, b.Roll),
	}
}
