package movement

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/zeusync/spatial/pkg/spatial/rotation"
	"github.com/zeusync/spatial/pkg/spatial/vector"
)

func TestRepMovement(t *testing.T) {
	m := FromTransform(vector.New(10, 20, 30), rotation.FromYaw(90), vector.New(5, 0, 0))

	require.Equal(t, vector.New(10, 20, 30), m.Location)
	require.Equal(t, vector.New(5, 0, 0), m.LinearVelocity)
	require.False(t, m.HasLocationBase)
	require.Equal(t, RepMovement{}, New())

	t.Run("Location base", func(t *testing.T) {
		base := uuid.New()
		attached := m.WithLocationBase(base, vector.New(1, 2, 3))

		require.True(t, attached.HasLocationBase)
		require.Equal(t, base, attached.LocationBase)
		require.Equal(t, vector.New(1, 2, 3), attached.RelativeLocation)
		require.False(t, m.HasLocationBase, "receiver is not modified")

		cleared := attached.ClearLocationBase()
		require.False(t, cleared.HasLocationBase)
		require.Equal(t, uuid.Nil, cleared.LocationBase)
		require.Equal(t, vector.Zero, cleared.RelativeLocation)
		require.Equal(t, m, cleared)
	})

	t.Run("World location", func(t *testing.T) {
		base := uuid.New()
		known := map[uuid.UUID]vector.Vector{base: vector.New(100, 0, 0)}
		resolve := func(id uuid.UUID) (vector.Vector, bool) {
			v, ok := known[id]
			return v, ok
		}

		attached := m.WithLocationBase(base, vector.New(1, 2, 3))
		require.Equal(t, vector.New(101, 2, 3), attached.WorldLocation(resolve))
		require.Equal(t, m.Location, attached.WorldLocation(nil))
		require.Equal(t, m.Location, m.WorldLocation(resolve))

		orphan := m.WithLocationBase(uuid.New(), vector.New(1, 2, 3))
		require.Equal(t, m.Location, orphan.WorldLocation(resolve))
	})

	t.Run("Extrapolate", func(t *testing.T) {
		require.Equal(t, vector.New(20, 20, 30), m.Extrapolate(2).Location)
		require.Equal(t, m, m.Extrapolate(0))
	})

	t.Run("Transform", func(t *testing.T) {
		tr := m.Transform()
		require.Equal(t, m.Location, tr.Location)
		require.True(t, tr.ForwardVector().IsNearlyEqual(vector.Right, 1e-9))
		require.Equal(t, vector.One, tr.Scale)
	})

	t.Run("Quantize and speed", func(t *testing.T) {
		fine := m
		fine.LinearVelocity = vector.New(3, 4, 0.1)
		fine.AngularVelocity = vector.New(0, 0, 1.0/3)

		q := fine.Quantize()
		require.Equal(t, float64(float32(0.1)), q.LinearVelocity.Z)
		require.Equal(t, float64(float32(1.0/3)), q.AngularVelocity.Z)
		require.Equal(t, fine.Location, q.Location)
		require.Equal(t, q, q.Quantize())

		require.InDelta(t, 5.001, float64(fine.Speed()), 1e-3)
		require.Zero(t, New().Speed())
	})

	t.Run("Frame and simulation flags", func(t *testing.T) {
		s := m.WithServerFrame(42).WithSimulated(true)
		require.Equal(t, uint32(42), s.ServerFrame)
		require.True(t, s.IsSimulated)
	})

	require.Equal(t,
		"RepMovement(Loc: (X=10.000 Y=20.000 Z=30.000), Rot: (P=0.00° Y=90.00° R=0.00°), Vel: (X=5.000 Y=0.000 Z=0.000), Frame: 0)",
		m.String(),
	)
}
