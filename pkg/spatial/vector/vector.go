package vector

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// DefaultTolerance is the length below which SafeNormal treats a vector as zero.
const DefaultTolerance = 1e-8

// normalizedTolerance is the fixed slack IsNormalized allows on the squared length.
const normalizedTolerance = 0.01

// Vector is a 3D vector used for positions, velocities and directions.
// X points forward, Y right and Z up.
type Vector struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

// Axis constants. Never mutated.
var (
	Zero    = Vector{}
	One     = Vector{X: 1, Y: 1, Z: 1}
	Forward = Vector{X: 1}
	Right   = Vector{Y: 1}
	Up      = Vector{Z: 1}
)

// New creates a vector from its components.
func New(x, y, z float64) Vector {
	return Vector{X: x, Y: y, Z: z}
}

// Splat returns a vector with all components set to s.
func Splat(s float64) Vector {
	return Vector{X: s, Y: s, Z: s}
}

// FromVec3 converts an mgl64 vector.
func FromVec3(v mgl64.Vec3) Vector {
	return Vector{X: v[0], Y: v[1], Z: v[2]}
}

// Vec3 converts to an mgl64 vector.
func (v Vector) Vec3() mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

func (v Vector) Add(o Vector) Vector {
	return Vector{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

func (v Vector) Sub(o Vector) Vector {
	return Vector{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

// Mul scales every component by s.
func (v Vector) Mul(s float64) Vector {
	return Vector{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// Div divides every component by s.
func (v Vector) Div(s float64) Vector {
	return Vector{X: v.X / s, Y: v.Y / s, Z: v.Z / s}
}

// Scale multiplies component-wise.
func (v Vector) Scale(o Vector) Vector {
	return Vector{X: v.X * o.X, Y: v.Y * o.Y, Z: v.Z * o.Z}
}

func (v Vector) Neg() Vector {
	return Vector{X: -v.X, Y: -v.Y, Z: -v.Z}
}

func (v Vector) Dot(o Vector) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

func (v Vector) Cross(o Vector) Vector {
	return Vector{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

// Min returns the component-wise minimum.
func (v Vector) Min(o Vector) Vector {
	return Vector{X: math.Min(v.X, o.X), Y: math.Min(v.Y, o.Y), Z: math.Min(v.Z, o.Z)}
}

// Max returns the component-wise maximum.
func (v Vector) Max(o Vector) Vector {
	return Vector{X: math.Max(v.X, o.X), Y: math.Max(v.Y, o.Y), Z: math.Max(v.Z, o.Z)}
}

// Clamp limits every component to [lo, hi].
func (v Vector) Clamp(lo, hi Vector) Vector {
	return v.Max(lo).Min(hi)
}

func (v Vector) Abs() Vector {
	return Vector{X: math.Abs(v.X), Y: math.Abs(v.Y), Z: math.Abs(v.Z)}
}

// MaxAbsComponent returns the largest absolute component.
func (v Vector) MaxAbsComponent() float64 {
	return math.Max(math.Abs(v.X), math.Max(math.Abs(v.Y), math.Abs(v.Z)))
}

// Lerp interpolates linearly; alpha is not clamped.
func (v Vector) Lerp(o Vector, alpha float64) Vector {
	return v.Add(o.Sub(v).Mul(alpha))
}

// Length returns the Euclidean norm.
func (v Vector) Length() float64 {
	return math.Sqrt(v.LengthSquared())
}

// LengthSquared avoids the square root where only comparison is needed.
func (v Vector) LengthSquared() float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

func (v Vector) Distance(o Vector) float64 {
	return v.Sub(o).Length()
}

func (v Vector) DistanceSquared(o Vector) float64 {
	return v.Sub(o).LengthSquared()
}

// IsNormalized reports whether the squared length is within 0.01 of one.
func (v Vector) IsNormalized() bool {
	return math.Abs(v.LengthSquared()-1) < normalizedTolerance
}

// IsNearlyZero reports whether the length is at most tolerance.
func (v Vector) IsNearlyZero(tolerance float64) bool {
	return v.LengthSquared() <= tolerance*tolerance
}

// IsNearlyEqual compares per axis.
func (v Vector) IsNearlyEqual(o Vector, tolerance float64) bool {
	return math.Abs(v.X-o.X) <= tolerance &&
		math.Abs(v.Y-o.Y) <= tolerance &&
		math.Abs(v.Z-o.Z) <= tolerance
}

func (v Vector) IsFinite() bool {
	return isFinite(v.X) && isFinite(v.Y) && isFinite(v.Z)
}

func (v Vector) IsNaN() bool {
	return math.IsNaN(v.X) || math.IsNaN(v.Y) || math.IsNaN(v.Z)
}

// SafeNormal returns a unit-length copy of v, or Zero when v cannot be
// normalized. The result is never NaN or infinite:
//   - a vector whose squared length is exactly one is returned unchanged;
//   - squared length below tolerance², non-finite or NaN gives Zero;
//   - a non-finite, NaN or zero length gives Zero;
//   - a quotient that overflowed gives Zero.
func (v Vector) SafeNormal(tolerance float64) Vector {
	squareSum := v.LengthSquared()
	switch {
	case squareSum == 1:
		return v
	case squareSum < tolerance*tolerance:
		return Zero
	case !isFinite(squareSum):
		return Zero
	}

	length := math.Sqrt(squareSum)
	if !isFinite(length) || length == 0 {
		return Zero
	}

	norm := v.Div(length)
	if n := norm.Length(); math.IsInf(n, 0) || math.IsNaN(n) {
		return Zero
	}
	return norm
}

func (v Vector) String() string {
	return fmt.Sprintf("X=%.3f Y=%.3f Z=%.3f", v.X, v.Y, v.Z)
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
