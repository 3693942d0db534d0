package vector

import (
	"fmt"

	"github.com/chewxy/math32"
)

// Vector3f is the single-precision form used where bandwidth matters more
// than precision. Snapshot frames carry RepMovement velocities this way.
type Vector3f struct {
	X float32 `json:"x" yaml:"x"`
	Y float32 `json:"y" yaml:"y"`
	Z float32 `json:"z" yaml:"z"`
}

// Quantize narrows v to single precision.
func (v Vector) Quantize() Vector3f {
	return Vector3f{X: float32(v.X), Y: float32(v.Y), Z: float32(v.Z)}
}

func (v Vector3f) ToVector() Vector {
	return Vector{X: float64(v.X), Y: float64(v.Y), Z: float64(v.Z)}
}

func (v Vector3f) LengthSquared() float32 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

func (v Vector3f) Length() float32 {
	return math32.Sqrt(v.LengthSquared())
}

// SafeNormal mirrors Vector.SafeNormal in single precision, where the
// overflow guards trip much earlier.
func (v Vector3f) SafeNormal(tolerance float32) Vector3f {
	squareSum := v.LengthSquared()
	switch {
	case squareSum == 1:
		return v
	case squareSum < tolerance*tolerance:
		return Vector3f{}
	case math32.IsInf(squareSum, 0) || math32.IsNaN(squareSum):
		return Vector3f{}
	}

	length := math32.Sqrt(squareSum)
	if math32.IsInf(length, 0) || math32.IsNaN(length) || length == 0 {
		return Vector3f{}
	}

	norm := Vector3f{X: v.X / length, Y: v.Y / length, Z: v.Z / length}
	if n := norm.Length(); math32.IsInf(n, 0) || math32.IsNaN(n) {
		return Vector3f{}
	}
	return norm
}

func (v Vector3f) String() string {
	return fmt.Sprintf("X=%.3f Y=%.3f Z=%.3f", v.X, v.Y, v.Z)
}
