package movement

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/zeusync/spatial/pkg/spatial/rotation"
	"github.com/zeusync/spatial/pkg/spatial/transform"
	"github.com/zeusync/spatial/pkg/spatial/vector"
)

// RepMovement is the movement state a server replicates for one actor.
//
// When HasLocationBase is set the actor rides on another entity, identified
// by LocationBase, at RelativeLocation from it. When it is clear both of those
// fields are zero.
type RepMovement struct {
	Location        vector.Vector    `json:"location" yaml:"location"`
	Rotation        rotation.Rotator `json:"rotation" yaml:"rotation"`
	LinearVelocity  vector.Vector    `json:"linear_velocity" yaml:"linear_velocity"`
	AngularVelocity vector.Vector    `json:"angular_velocity" yaml:"angular_velocity"`

	HasLocationBase  bool          `json:"has_location_base" yaml:"has_location_base"`
	LocationBase     uuid.UUID     `json:"location_base" yaml:"location_base"`
	RelativeLocation vector.Vector `json:"relative_location" yaml:"relative_location"`

	ServerFrame uint32 `json:"server_frame" yaml:"server_frame"`
	IsSimulated bool   `json:"is_simulated" yaml:"is_simulated"`
}

// BaseResolver returns the world location of a base entity, or false when
// the entity is unknown.
type BaseResolver func(id uuid.UUID) (vector.Vector, bool)

func New() RepMovement {
	return RepMovement{}
}

func FromTransform(location vector.Vector, rot rotation.Rotator, velocity vector.Vector) RepMovement {
	return RepMovement{Location: location, Rotation: rot, LinearVelocity: velocity}
}

// WithLocationBase attaches the movement to base at the given offset.
func (m RepMovement) WithLocationBase(base uuid.UUID, relative vector.Vector) RepMovement {
	m.HasLocationBase = true
	m.LocationBase = base
	m.RelativeLocation = relative
	return m
}

func (m RepMovement) ClearLocationBase() RepMovement {
	m.HasLocationBase = false
	m.LocationBase = uuid.Nil
	m.RelativeLocation = vector.Zero
	return m
}

func (m RepMovement) WithServerFrame(frame uint32) RepMovement {
	m.ServerFrame = frame
	return m
}

func (m RepMovement) WithSimulated(simulated bool) RepMovement {
	m.IsSimulated = simulated
	return m
}

// WorldLocation resolves the base through resolve and adds the relative
// offset. It falls back to Location when there is no base, resolve is nil,
// or the base is unknown.
func (m RepMovement) WorldLocation(resolve BaseResolver) vector.Vector {
	if !m.HasLocationBase || resolve == nil {
		return m.Location
	}
	base, ok := resolve(m.LocationBase)
	if !ok {
		return m.Location
	}
	return base.Add(m.RelativeLocation)
}

// Transform places the actor at Location with unit scale.
func (m RepMovement) Transform() transform.Transform {
	return transform.FromLocationRotator(m.Location, m.Rotation)
}

// Quantize rounds both velocities to single precision, the form they take in
// snapshot frames.
func (m RepMovement) Quantize() RepMovement {
	m.LinearVelocity = m.LinearVelocity.Quantize().ToVector()
	m.AngularVelocity = m.AngularVelocity.Quantize().ToVector()
	return m
}

// Speed is the single-precision magnitude of LinearVelocity.
func (m RepMovement) Speed() float32 {
	return m.LinearVelocity.Quantize().Length()
}

// Extrapolate advances Location by LinearVelocity over dt seconds.
func (m RepMovement) Extrapolate(dt float64) RepMovement {
	m.Location = m.Location.Add(m.LinearVelocity.Mul(dt))
	return m
}

func (m RepMovement) String() string {
	return fmt.Sprintf("RepMovement(Loc: (%s), Rot: (%s), Vel: (%s), Frame: %d)",
		m.Location, m.Rotation, m.LinearVelocity, m.ServerFrame)
}
