package geometry

import (
	"fmt"
	"math"

	"github.com/zeusync/spatial/pkg/spatial/bounds"
	"github.com/zeusync/spatial/pkg/spatial/transform"
	"github.com/zeusync/spatial/pkg/spatial/vector"
)

// parallelEpsilon is the direction component below which a ray is treated
// as parallel to a slab or plane.
const parallelEpsilon = 1e-12

// Ray is a half-line. NewRay always stores a unit direction, or the zero
// vector when the given direction cannot be normalized.
type Ray struct {
	Origin    vector.Vector `json:"origin" yaml:"origin"`
	Direction vector.Vector `json:"direction" yaml:"direction"`
}

func NewRay(origin, direction vector.Vector) Ray {
	return Ray{Origin: origin, Direction: direction.SafeNormal(vector.DefaultTolerance)}
}

func RayFromOriginToTarget(origin, target vector.Vector) Ray {
	return NewRay(origin, target.Sub(origin))
}

// PointAt returns the point distance units along the ray.
func (r Ray) PointAt(distance float64) vector.Vector {
	return r.Origin.Add(r.Direction.Mul(distance))
}

// DistanceToClosestPoint is how far along the ray the point nearest p lies.
// Points behind the origin clamp to zero.
func (r Ray) DistanceToClosestPoint(p vector.Vector) float64 {
	return math.Max(0, p.Sub(r.Origin).Dot(r.Direction))
}

func (r Ray) ClosestPointTo(p vector.Vector) vector.Vector {
	return r.PointAt(r.DistanceToClosestPoint(p))
}

// DistanceToPoint is the shortest distance from p to the ray.
func (r Ray) DistanceToPoint(p vector.Vector) float64 {
	return p.Distance(r.ClosestPointTo(p))
}

func (r Ray) ContainsPoint(p vector.Vector, tolerance float64) bool {
	return r.DistanceToPoint(p) <= tolerance
}

// Transform moves the origin as a point and the direction as a vector,
// renormalizing the latter.
func (r Ray) Transform(t transform.Transform) Ray {
	return NewRay(t.TransformPoint(r.Origin), t.TransformVector(r.Direction))
}

// IntersectPlane returns the distance along the ray to p. It reports false
// when the ray is parallel to the plane or the plane is behind the origin.
func (r Ray) IntersectPlane(p Plane) (float64, bool) {
	denom := p.Normal.Dot(r.Direction)
	if math.Abs(denom) < parallelEpsilon {
		return 0, false
	}
	t := (p.Distance - p.Normal.Dot(r.Origin)) / denom
	if t < 0 {
		return 0, false
	}
	return t, true
}

// IntersectBox runs a slab test against b and returns the entry distance.
// An origin inside the box hits at distance zero. Faces count as hits.
func (r Ray) IntersectBox(b bounds.Box) (float64, bool) {
	if !b.IsValid() {
		return 0, false
	}

	tmin, tmax := math.Inf(-1), math.Inf(1)
	slabs := [3][4]float64{
		{r.Origin.X, r.Direction.X, b.Min.X, b.Max.X},
		{r.Origin.Y, r.Direction.Y, b.Min.Y, b.Max.Y},
		{r.Origin.Z, r.Direction.Z, b.Min.Z, b.Max.Z},
	}
	for _, s := range slabs {
		o, d, lo, hi := s[0], s[1], s[2], s[3]
		if math.Abs(d) < parallelEpsilon {
			if o < lo || o > hi {
				return 0, false
			}
			continue
		}
		t1, t2 := (lo-o)/d, (hi-o)/d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math.Max(tmin, t1)
		tmax = math.Min(tmax, t2)
	}

	if tmax < 0 || tmin > tmax {
		return 0, false
	}
	return math.Max(0, tmin), true
}

// IntersectSphere returns the distance along the ray to the first point of
// s. An origin inside the sphere hits at distance zero.
func (r Ray) IntersectSphere(s bounds.Sphere) (float64, bool) {
	if s.Radius < 0 || r.Direction.IsNearlyZero(vector.DefaultTolerance) {
		return 0, false
	}

	toCenter := s.Center.Sub(r.Origin)
	r2 := s.Radius * s.Radius
	if toCenter.LengthSquared() <= r2 {
		return 0, true
	}

	along := toCenter.Dot(r.Direction)
	if along < 0 {
		return 0, false
	}
	miss := toCenter.LengthSquared() - along*along
	if miss > r2 {
		return 0, false
	}
	return along - math.Sqrt(r2-miss), true
}

func (r Ray) String() string {
	return fmt.Sprintf("Ray(Origin: (%s), Direction: (%s))", r.Origin, r.Direction)
}
