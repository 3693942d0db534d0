package transform

import (
	"fmt"

	"github.com/zeusync/spatial/pkg/spatial/rotation"
	"github.com/zeusync/spatial/pkg/spatial/vector"
)

// Transform is a rigid placement with scale. Points are scaled first, then
// rotated, then translated.
//
// Zero scale on any axis makes the transform non-invertible; Inverse and
// InverseTransformPoint do not guard against it.
type Transform struct {
	Location vector.Vector       `json:"location" yaml:"location"`
	Rotation rotation.Quaternion `json:"rotation" yaml:"rotation"`
	Scale    vector.Vector       `json:"scale" yaml:"scale"`
}

// Identity places nothing anywhere new.
var Identity = Transform{Rotation: rotation.Identity, Scale: vector.One}

func New(location vector.Vector, rot rotation.Quaternion, scale vector.Vector) Transform {
	return Transform{Location: location, Rotation: rot, Scale: scale}
}

func FromLocation(location vector.Vector) Transform {
	return Transform{Location: location, Rotation: rotation.Identity, Scale: vector.One}
}

func FromRotation(rot rotation.Quaternion) Transform {
	return Transform{Rotation: rot, Scale: vector.One}
}

func FromRotator(r rotation.Rotator) Transform {
	return FromRotation(r.ToQuaternion())
}

func FromScale(scale vector.Vector) Transform {
	return Transform{Rotation: rotation.Identity, Scale: scale}
}

func FromUniformScale(s float64) Transform {
	return FromScale(vector.Splat(s))
}

func FromLocationRotator(location vector.Vector, r rotation.Rotator) Transform {
	return Transform{Location: location, Rotation: r.ToQuaternion(), Scale: vector.One}
}

func FromLocationRotatorScale(location vector.Vector, r rotation.Rotator, scale vector.Vector) Transform {
	return Transform{Location: location, Rotation: r.ToQuaternion(), Scale: scale}
}

// ToMatrix composes translation · rotation · scale.
func (t Transform) ToMatrix() Matrix {
	return ComposeMatrix(t.Location, t.Rotation, t.Scale)
}

// FromMatrix decomposes m. The round trip through ToMatrix holds for
// non-zero scale without shear; see Matrix.Decompose.
func FromMatrix(m Matrix) Transform {
	scale, rot, location := m.Decompose()
	return Transform{Location: location, Rotation: rot, Scale: scale}
}

// TransformPoint scales, rotates and then translates p.
func (t Transform) TransformPoint(p vector.Vector) vector.Vector {
	return t.Rotation.RotateVector(p.Scale(t.Scale)).Add(t.Location)
}

// TransformVector scales and rotates v.
func (t Transform) TransformVector(v vector.Vector) vector.Vector {
	return t.Rotation.RotateVector(v.Scale(t.Scale))
}

// TransformDirection only rotates d.
func (t Transform) TransformDirection(d vector.Vector) vector.Vector {
	return t.Rotation.RotateVector(d)
}

// InverseTransformPoint maps a world point back into local space.
func (t Transform) InverseTransformPoint(p vector.Vector) vector.Vector {
	local := t.Rotation.Inverse().RotateVector(p.Sub(t.Location))
	return vector.New(local.X/t.Scale.X, local.Y/t.Scale.Y, local.Z/t.Scale.Z)
}

// Inverse inverts the composed matrix and decomposes it again. Zero scale is
// not guarded: the matrix inverse degenerates and the result is non-finite.
func (t Transform) Inverse() Transform {
	return FromMatrix(t.ToMatrix().Inverse())
}

// Combine returns the transform that applies t first and other second.
// Combine is not commutative.
func (t Transform) Combine(other Transform) Transform {
	return FromMatrix(other.ToMatrix().Mul(t.ToMatrix()))
}

// Lerp interpolates location and scale linearly and rotation by slerp.
func (t Transform) Lerp(other Transform, alpha float64) Transform {
	return Transform{
		Location: t.Location.Lerp(other.Location, alpha),
		Rotation: rotation.Slerp(t.Rotation, other.Rotation, alpha),
		Scale:    t.Scale.Lerp(other.Scale, alpha),
	}
}

// IsNearlyEqual compares location and scale by distance and rotation by
// angular distance, all against the same tolerance.
func (t Transform) IsNearlyEqual(other Transform, tolerance float64) bool {
	return t.Location.Distance(other.Location) <= tolerance &&
		t.Scale.Distance(other.Scale) <= tolerance &&
		t.Rotation.AngularDistance(other.Rotation) <= tolerance
}

func (t Transform) IsNearlyIdentity(tolerance float64) bool {
	return t.IsNearlyEqual(Identity, tolerance)
}

// Rotator returns the rotation as Euler angles.
func (t Transform) Rotator() rotation.Rotator {
	return rotation.FromQuaternion(t.Rotation)
}

func (t Transform) WithRotator(r rotation.Rotator) Transform {
	t.Rotation = r.ToQuaternion()
	return t
}

func (t Transform) ForwardVector() vector.Vector {
	return t.Rotation.RotateVector(vector.Forward)
}

func (t Transform) RightVector() vector.Vector {
	return t.Rotation.RotateVector(vector.Right)
}

func (t Transform) UpVector() vector.Vector {
	return t.Rotation.RotateVector(vector.Up)
}

func (t Transform) AddLocation(delta vector.Vector) Transform {
	t.Location = t.Location.Add(delta)
	return t
}

// AddRotation applies delta after the current rotation.
func (t Transform) AddRotation(delta rotation.Quaternion) Transform {
	t.Rotation = delta.Mul(t.Rotation)
	return t
}

func (t Transform) AddUniformScale(delta float64) Transform {
	t.Scale = t.Scale.Add(vector.Splat(delta))
	return t
}

func (t Transform) String() string {
	return fmt.Sprintf("Location: (%s), Rotation: (%s), Scale: (%s)", t.Location, t.Rotator(), t.Scale)
}
