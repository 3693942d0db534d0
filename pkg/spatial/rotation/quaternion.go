package rotation

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/zeusync/spatial/pkg/spatial/vector"
)

// Quaternion is a rotation. It should be unit length; composition and
// Slerp of non-unit inputs are not corrected.
type Quaternion struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
	W float64 `json:"w" yaml:"w"`
}

// Identity is the no-op rotation.
var Identity = Quaternion{W: 1}

// FromQuat converts an mgl64 quaternion.
func FromQuat(q mgl64.Quat) Quaternion {
	return Quaternion{X: q.V[0], Y: q.V[1], Z: q.V[2], W: q.W}
}

// Quat converts to an mgl64 quaternion.
func (q Quaternion) Quat() mgl64.Quat {
	return mgl64.Quat{W: q.W, V: mgl64.Vec3{q.X, q.Y, q.Z}}
}

// FromAxisAngle builds a rotation of angle radians around axis. The axis is
// normalized first; a degenerate axis yields Identity.
func FromAxisAngle(axis vector.Vector, angle float64) Quaternion {
	n := axis.SafeNormal(vector.DefaultTolerance)
	if n == vector.Zero {
		return Identity
	}
	return FromQuat(mgl64.QuatRotate(angle, n.Vec3()))
}

// Mul returns q·o: rotating by the result applies o first, then q.
func (q Quaternion) Mul(o Quaternion) Quaternion {
	return FromQuat(q.Quat().Mul(o.Quat()))
}

// RotateVector rotates v by q.
func (q Quaternion) RotateVector(v vector.Vector) vector.Vector {
	return vector.FromVec3(q.Quat().Rotate(v.Vec3()))
}

func (q Quaternion) Conjugate() Quaternion {
	return Quaternion{X: -q.X, Y: -q.Y, Z: -q.Z, W: q.W}
}

// Inverse returns the multiplicative inverse. A zero quaternion yields Identity.
func (q Quaternion) Inverse() Quaternion {
	lenSq := q.Dot(q)
	if lenSq == 0 {
		return Identity
	}
	c := q.Conjugate()
	return Quaternion{X: c.X / lenSq, Y: c.Y / lenSq, Z: c.Z / lenSq, W: c.W / lenSq}
}

func (q Quaternion) Dot(o Quaternion) float64 {
	return q.X*o.X + q.Y*o.Y + q.Z*o.Z + q.W*o.W
}

func (q Quaternion) Length() float64 {
	return math.Sqrt(q.Dot(q))
}

// Normalize scales q to unit length. Zero or non-finite input yields Identity.
func (q Quaternion) Normalize() Quaternion {
	l := q.Length()
	if l == 0 || math.IsNaN(l) || math.IsInf(l, 0) {
		return Identity
	}
	return Quaternion{X: q.X / l, Y: q.Y / l, Z: q.Z / l, W: q.W / l}
}

func (q Quaternion) IsNormalized() bool {
	return math.Abs(q.Dot(q)-1) < 0.01
}

// AngularDistance returns the angle in radians of the rotation taking q to
// o. q and -q are the same orientation, so the result is in [0, π].
func (q Quaternion) AngularDistance(o Quaternion) float64 {
	d := math.Abs(q.Normalize().Dot(o.Normalize()))
	if d > 1 {
		d = 1
	}
	return 2 * math.Acos(d)
}

// IsNearlyEqual compares orientations, so q and -q are equal.
func (q Quaternion) IsNearlyEqual(o Quaternion, tolerance float64) bool {
	return q.AngularDistance(o) <= tolerance
}

// Slerp interpolates along the shorter arc at constant angular velocity.
func Slerp(a, b Quaternion, alpha float64) Quaternion {
	if a.Dot(b) < 0 {
		b = Quaternion{X: -b.X, Y: -b.Y, Z: -b.Z, W: -b.W}
	}
	return FromQuat(mgl64.QuatSlerp(a.Quat(), b.Quat(), alpha))
}

// Rotator converts to Euler angles.
func (q Quaternion) Rotator() Rotator {
	return FromQuaternion(q)
}

func (q Quaternion) String() string {
	return fmt.Sprintf("X=%.4f Y=%.4f Z=%.4f W=%.4f", q.X, q.Y, q.Z, q.W)
}
