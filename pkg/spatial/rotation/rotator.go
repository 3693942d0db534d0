package rotation

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/zeusync/spatial/pkg/spatial/vector"
)

// gimbalThreshold is the |sin(pitch)| above which yaw and roll can no longer
// be told apart.
const gimbalThreshold = 0.9999999

// Rotator is an orientation in degrees.
//   - Pitch rotates around the right (Y) axis; positive pitch tilts forward down.
//   - Yaw rotates around the up (Z) axis.
//   - Roll rotates around the forward (X) axis.
//
// No range is enforced; Normalize maps every axis into [-180, 180].
type Rotator struct {
	Pitch float64 `json:"pitch" yaml:"pitch"`
	Yaw   float64 `json:"yaw" yaml:"yaw"`
	Roll  float64 `json:"roll" yaml:"roll"`
}

// ZeroRotator is the identity orientation.
var ZeroRotator = Rotator{}

func NewRotator(pitch, yaw, roll float64) Rotator {
	return Rotator{Pitch: pitch, Yaw: yaw, Roll: roll}
}

func FromPitch(pitch float64) Rotator {
	return Rotator{Pitch: pitch}
}

func FromYaw(yaw float64) Rotator {
	return Rotator{Yaw: yaw}
}

func FromRoll(roll float64) Rotator {
	return Rotator{Roll: roll}
}

// ToQuaternion composes yaw·pitch·roll, i.e. Rz(yaw)·Ry(pitch)·Rx(roll):
// roll is applied to a vector first and yaw last. FromQuaternion inverts
// exactly this order.
func (r Rotator) ToQuaternion() Quaternion {
	return FromQuat(mgl64.AnglesToQuat(
		mgl64.DegToRad(r.Yaw),
		mgl64.DegToRad(r.Pitch),
		mgl64.DegToRad(r.Roll),
		mgl64.ZYX,
	))
}

// FromQuaternion extracts yaw·pitch·roll angles from q. Away from pitch ±90
// the result reproduces the Rotator that built q (angles in (-180, 180]).
// At gimbal lock roll is reported as zero and yaw carries the combined
// rotation, which describes the same orientation.
func FromQuaternion(q Quaternion) Rotator {
	q = q.Normalize()

	sinPitch := 2 * (q.W*q.Y - q.X*q.Z)
	if math.Abs(sinPitch) >= gimbalThreshold {
		pitch := math.Copysign(90, sinPitch)
		yaw := math.Atan2(2*(q.W*q.Z-q.X*q.Y), 1-2*(q.X*q.X+q.Z*q.Z))
		return Rotator{Pitch: pitch, Yaw: mgl64.RadToDeg(yaw)}
	}

	pitch := math.Asin(sinPitch)
	yaw := math.Atan2(2*(q.W*q.Z+q.X*q.Y), 1-2*(q.Y*q.Y+q.Z*q.Z))
	roll := math.Atan2(2*(q.W*q.X+q.Y*q.Z), 1-2*(q.X*q.X+q.Y*q.Y))

	return Rotator{
		Pitch: mgl64.RadToDeg(pitch),
		Yaw:   mgl64.RadToDeg(yaw),
		Roll:  mgl64.RadToDeg(roll),
	}
}

// Normalize maps every axis into [-180, 180].
func (r Rotator) Normalize() Rotator {
	return Rotator{
		Pitch: NormalizeAngle(r.Pitch),
		Yaw:   NormalizeAngle(r.Yaw),
		Roll:  NormalizeAngle(r.Roll),
	}
}

// ForwardVector is the rotated X axis.
func (r Rotator) ForwardVector() vector.Vector {
	return r.ToQuaternion().RotateVector(vector.Forward)
}

// RightVector is the rotated Y axis.
func (r Rotator) RightVector() vector.Vector {
	return r.ToQuaternion().RotateVector(vector.Right)
}

// UpVector is the rotated Z axis.
func (r Rotator) UpVector() vector.Vector {
	return r.ToQuaternion().RotateVector(vector.Up)
}

// RotateVector applies the rotation to v.
func (r Rotator) RotateVector(v vector.Vector) vector.Vector {
	return r.ToQuaternion().RotateVector(v)
}

func (r Rotator) IsNearlyZero(tolerance float64) bool {
	return math.Abs(r.Pitch) <= tolerance &&
		math.Abs(r.Yaw) <= tolerance &&
		math.Abs(r.Roll) <= tolerance
}

// IsNearlyEqual compares raw axis values without wrapping.
func (r Rotator) IsNearlyEqual(o Rotator, tolerance float64) bool {
	return math.Abs(r.Pitch-o.Pitch) <= tolerance &&
		math.Abs(r.Yaw-o.Yaw) <= tolerance &&
		math.Abs(r.Roll-o.Roll) <= tolerance
}

func (r Rotator) Add(o Rotator) Rotator {
	return Rotator{Pitch: r.Pitch + o.Pitch, Yaw: r.Yaw + o.Yaw, Roll: r.Roll + o.Roll}
}

func (r Rotator) Sub(o Rotator) Rotator {
	return Rotator{Pitch: r.Pitch - o.Pitch, Yaw: r.Yaw - o.Yaw, Roll: r.Roll - o.Roll}
}

func (r Rotator) Scale(factor float64) Rotator {
	return Rotator{Pitch: r.Pitch * factor, Yaw: r.Yaw * factor, Roll: r.Roll * factor}
}

func (r Rotator) String() string {
	return fmt.Sprintf("P=%.2f° Y=%.2f° R=%.2f°", r.Pitch, r.Yaw, r.Roll)
}
