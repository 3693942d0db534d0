package bounds

import (
	"math"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zeusync/spatial/pkg/spatial/rotation"
	"github.com/zeusync/spatial/pkg/spatial/transform"
	"github.com/zeusync/spatial/pkg/spatial/vector"
)

func unitCube() Box {
	return NewBox(vector.Splat(-1), vector.Splat(1))
}

// randomGridBox keeps coordinates on a coarse grid so shared faces are common.
func randomGridBox(rng *rand.Rand) Box {
	a := vector.New(float64(rng.IntN(10)), float64(rng.IntN(10)), float64(rng.IntN(10)))
	b := vector.New(float64(rng.IntN(10)), float64(rng.IntN(10)), float64(rng.IntN(10)))
	return NewBox(a.Min(b), a.Max(b))
}

func TestBox_Measures(t *testing.T) {
	b := unitCube()

	require.Equal(t, vector.Zero, b.Center())
	require.Equal(t, vector.One, b.Extent())
	require.Equal(t, vector.Splat(2), b.Size())
	require.Equal(t, 8.0, b.Volume())
	require.Equal(t, 24.0, b.SurfaceArea())
	require.Equal(t, b, FromCenterAndExtent(vector.Zero, vector.One))
	require.Equal(t, "Min=(X=-1.000 Y=-1.000 Z=-1.000) Max=(X=1.000 Y=1.000 Z=1.000)", b.String())
}

func TestBox_Empty(t *testing.T) {
	p := vector.New(1, 2, 3)

	require.True(t, Empty.IsEmpty())
	require.False(t, Empty.IsValid())
	require.Equal(t, Empty, FromPoints())
	require.Equal(t, FromPoint(p), Empty.ExpandToInclude(p))
	require.Equal(t, unitCube(), Empty.Union(unitCube()))
	require.Equal(t, unitCube(), unitCube().Union(Empty))
	require.Equal(t, Empty, Empty.Transform(transform.FromLocation(p)))
	require.False(t, Empty.Intersects(unitCube()))
	require.False(t, unitCube().Intersects(Empty))
	require.False(t, Empty.ContainsPoint(vector.Zero))

	t.Run("Degenerate boxes are empty but valid", func(t *testing.T) {
		flat := NewBox(vector.New(0, 0, 0), vector.New(4, 4, 0))
		require.True(t, flat.IsEmpty())
		require.True(t, flat.IsValid())
		require.True(t, FromPoint(p).IsEmpty())

		moved := flat.Transform(transform.FromLocation(vector.New(0, 0, 5)))
		require.Equal(t, NewBox(vector.New(0, 0, 5), vector.New(4, 4, 5)), moved)
		require.Equal(t, NewBox(vector.Zero, vector.New(4, 4, 3)), flat.Union(FromPoint(vector.New(1, 1, 3))))
	})
}

func TestBox_Containment(t *testing.T) {
	b := unitCube()

	require.True(t, b.ContainsPoint(vector.Zero))
	require.True(t, b.ContainsPoint(vector.New(1, 1, 1)))
	require.False(t, b.ContainsPoint(vector.New(1.0001, 0, 0)))
	require.True(t, b.ContainsBox(NewBox(vector.Splat(-0.5), vector.Splat(0.5))))
	require.True(t, b.ContainsBox(b))
	require.False(t, b.ContainsBox(NewBox(vector.Zero, vector.Splat(2))))
}

func TestBox_Intersection(t *testing.T) {
	a := unitCube()
	b := NewBox(vector.Zero, vector.Splat(2))

	require.True(t, a.Intersects(b))
	require.Equal(t, NewBox(vector.Zero, vector.One), a.Intersection(b))

	t.Run("Touching faces intersect", func(t *testing.T) {
		c := NewBox(vector.New(1, -1, -1), vector.New(3, 1, 1))
		require.True(t, a.Intersects(c))
		require.Equal(t, NewBox(vector.New(1, -1, -1), vector.New(1, 1, 1)), a.Intersection(c))
	})

	t.Run("Disjoint", func(t *testing.T) {
		c := NewBox(vector.Splat(5), vector.Splat(6))
		require.False(t, a.Intersects(c))
		require.Equal(t, Empty, a.Intersection(c))
	})

	t.Run("Symmetric", func(t *testing.T) {
		rng := rand.New(rand.NewPCG(4, 2))
		for i := 0; i < 2000; i++ {
			x, y := randomGridBox(rng), randomGridBox(rng)
			require.Equal(t, x.Intersects(y), y.Intersects(x))
			require.Equal(t, x.Intersection(y), y.Intersection(x))
		}
	})
}

func TestBox_FromPoints(t *testing.T) {
	rng := rand.New(rand.NewPCG(12, 34))
	for i := 0; i < 200; i++ {
		points := make([]vector.Vector, 1+rng.IntN(20))
		for j := range points {
			points[j] = vector.New(rng.NormFloat64()*10, rng.NormFloat64()*10, rng.NormFloat64()*10)
		}
		b := FromPoints(points...)

		lo, hi := points[0], points[0]
		for _, p := range points {
			require.True(t, b.ContainsPoint(p))
			lo, hi = lo.Min(p), hi.Max(p)
		}
		// Tight: every face touches some point.
		require.Equal(t, lo, b.Min)
		require.Equal(t, hi, b.Max)

		// Order does not matter.
		slices.Reverse(points)
		require.Equal(t, b, FromPoints(points...))
		require.Equal(t, b, FromSeq(slices.Values(points)))
	}
}

func TestBox_Transform(t *testing.T) {
	b := unitCube()

	t.Run("Translation", func(t *testing.T) {
		moved := b.Transform(transform.FromLocation(vector.New(10, 0, 0)))
		require.Equal(t, NewBox(vector.New(9, -1, -1), vector.New(11, 1, 1)), moved)
	})

	t.Run("Rotation grows the box", func(t *testing.T) {
		turned := b.Transform(transform.FromRotator(rotation.FromYaw(45)))
		require.InDelta(t, math.Sqrt2, turned.Max.X, 1e-9)
		require.InDelta(t, math.Sqrt2, turned.Max.Y, 1e-9)
		require.InDelta(t, 1, turned.Max.Z, 1e-9)
		require.True(t, turned.ContainsBox(b))
	})

	t.Run("Holds every transformed corner", func(t *testing.T) {
		rng := rand.New(rand.NewPCG(8, 8))
		for i := 0; i < 200; i++ {
			src := randomGridBox(rng)
			tr := transform.FromLocationRotatorScale(
				vector.New(rng.Float64()*20, rng.Float64()*20, rng.Float64()*20),
				rotation.NewRotator(rng.Float64()*360, rng.Float64()*360, rng.Float64()*360),
				vector.New(0.1+rng.Float64()*3, 0.1+rng.Float64()*3, 0.1+rng.Float64()*3),
			)
			out := src.Transform(tr)
			for _, c := range src.Corners() {
				require.True(t, out.ContainsPoint(tr.TransformPoint(c)))
			}
		}
	})
}

func TestBox_Distance(t *testing.T) {
	b := unitCube()

	require.Equal(t, 0.0, b.DistanceToPoint(vector.New(0.5, 0.5, 0.5)))
	require.Equal(t, 2.0, b.DistanceToPoint(vector.New(3, 0, 0)))
	require.Equal(t, vector.New(1, 1, 0), b.ClosestPointTo(vector.New(3, 5, 0)))
	require.Equal(t, NewBox(vector.Splat(-2), vector.Splat(2)), b.ExpandBy(1))
}

func TestSphere(t *testing.T) {
	t.Run("From box reaches the corners", func(t *testing.T) {
		s := SphereFromBox(unitCube())
		require.Equal(t, vector.Zero, s.Center)
		require.InDelta(t, math.Sqrt(3), s.Radius, 1e-12)
		for _, c := range unitCube().Corners() {
			require.InDelta(t, 0, s.DistanceToPoint(c), 1e-12)
		}
	})

	t.Run("From points encloses every point", func(t *testing.T) {
		require.Equal(t, Sphere{}, SphereFromPoints())

		rng := rand.New(rand.NewPCG(6, 1))
		points := make([]vector.Vector, 50)
		for i := range points {
			points[i] = vector.New(rng.NormFloat64(), rng.NormFloat64(), rng.NormFloat64())
		}
		s := SphereFromPoints(points...)
		for _, p := range points {
			require.LessOrEqual(t, s.DistanceToPoint(p), 1e-9)
		}
	})

	t.Run("Containment and overlap", func(t *testing.T) {
		s := NewSphere(vector.Zero, 2)

		require.True(t, s.ContainsPoint(vector.New(2, 0, 0)))
		require.False(t, s.ContainsPoint(vector.New(2, 0.1, 0)))
		require.True(t, s.ContainsSphere(NewSphere(vector.New(1, 0, 0), 1)))
		require.False(t, s.ContainsSphere(NewSphere(vector.New(1.5, 0, 0), 1)))
		require.True(t, s.IntersectsSphere(NewSphere(vector.New(3, 0, 0), 1)))
		require.False(t, s.IntersectsSphere(NewSphere(vector.New(3.5, 0, 0), 1)))

		require.True(t, NewSphere(vector.New(3, 0, 0), 2).IntersectsBox(unitCube()))
		require.False(t, NewSphere(vector.New(3, 0, 0), 1.9).IntersectsBox(unitCube()))
		require.True(t, NewSphere(vector.Zero, 0.1).IntersectsBox(unitCube()))
	})

	t.Run("Distance is signed", func(t *testing.T) {
		s := NewSphere(vector.Zero, 2)
		require.Equal(t, -2.0, s.DistanceToPoint(vector.Zero))
		require.Equal(t, 3.0, s.DistanceToPoint(vector.New(5, 0, 0)))
	})

	t.Run("Transform", func(t *testing.T) {
		s := NewSphere(vector.New(1, 0, 0), 1)
		tr := transform.FromLocationRotatorScale(vector.New(0, 0, 10), rotation.ZeroRotator, vector.New(1, -3, 2))
		out := s.Transform(tr)
		require.Equal(t, vector.New(1, 0, 10), out.Center)
		require.Equal(t, 3.0, out.Radius)
	})

	t.Run("Expand", func(t *testing.T) {
		s := NewSphere(vector.Zero, 1)
		require.Equal(t, s, s.ExpandToInclude(vector.New(0.5, 0, 0)))
		require.Equal(t, NewSphere(vector.Zero, 4), s.ExpandToInclude(vector.New(0, 4, 0)))
		require.Equal(t, NewSphere(vector.Zero, 6), s.ExpandToIncludeSphere(NewSphere(vector.New(0, 0, 5), 1)))
		require.Equal(t, s, s.ExpandToIncludeSphere(NewSphere(vector.Zero, 0.5)))
	})

	t.Run("Measures", func(t *testing.T) {
		s := NewSphere(vector.New(1, 1, 1), 2)
		require.InDelta(t, 32*math.Pi/3, s.Volume(), 1e-9)
		require.InDelta(t, 16*math.Pi, s.SurfaceArea(), 1e-9)
		require.Equal(t, NewBox(vector.Splat(-1), vector.Splat(3)), s.Box())
		require.Equal(t, "Center=(X=1.000 Y=1.000 Z=1.000) Radius=2.000", s.String())
	})
}
