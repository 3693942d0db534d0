package bounds

import (
	"fmt"
	"math"

	"github.com/zeusync/spatial/pkg/spatial/transform"
	"github.com/zeusync/spatial/pkg/spatial/vector"
)

// Sphere is a bounding sphere. A negative radius is not rejected.
type Sphere struct {
	Center vector.Vector `json:"center" yaml:"center"`
	Radius float64       `json:"radius" yaml:"radius"`
}

func NewSphere(center vector.Vector, radius float64) Sphere {
	return Sphere{Center: center, Radius: radius}
}

// SphereFromBox centers on the box and reaches its corners, which is the
// tightest sphere around an axis-aligned box.
func SphereFromBox(b Box) Sphere {
	c := b.Center()
	return Sphere{Center: c, Radius: b.Max.Distance(c)}
}

// SphereFromPoints centers on the points' bounding box and reaches the
// farthest point. The result encloses every point but is not the minimal
// sphere. No points yield the zero sphere at the origin.
func SphereFromPoints(points ...vector.Vector) Sphere {
	if len(points) == 0 {
		return Sphere{}
	}
	c := FromPoints(points...).Center()
	var r float64
	for _, p := range points {
		r = math.Max(r, p.Distance(c))
	}
	return Sphere{Center: c, Radius: r}
}

func (s Sphere) Volume() float64 {
	return 4.0 / 3.0 * math.Pi * s.Radius * s.Radius * s.Radius
}

func (s Sphere) SurfaceArea() float64 {
	return 4 * math.Pi * s.Radius * s.Radius
}

func (s Sphere) ContainsPoint(p vector.Vector) bool {
	return p.DistanceSquared(s.Center) <= s.Radius*s.Radius
}

func (s Sphere) ContainsSphere(o Sphere) bool {
	return o.Center.Distance(s.Center)+o.Radius <= s.Radius
}

func (s Sphere) IntersectsSphere(o Sphere) bool {
	r := s.Radius + o.Radius
	return o.Center.DistanceSquared(s.Center) <= r*r
}

// IntersectsBox tests the box point closest to the center.
func (s Sphere) IntersectsBox(b Box) bool {
	return s.ContainsPoint(b.ClosestPointTo(s.Center))
}

// Transform moves the center through t and scales the radius by the largest
// absolute scale component. Non-uniform scale over-approximates; the result
// is never an ellipsoid.
func (s Sphere) Transform(t transform.Transform) Sphere {
	return Sphere{
		Center: t.TransformPoint(s.Center),
		Radius: s.Radius * t.Scale.MaxAbsComponent(),
	}
}

// DistanceToPoint is the distance to the surface, negative inside.
func (s Sphere) DistanceToPoint(p vector.Vector) float64 {
	return p.Distance(s.Center) - s.Radius
}

// ExpandToInclude grows the radius about the fixed center.
func (s Sphere) ExpandToInclude(p vector.Vector) Sphere {
	if d := p.Distance(s.Center); d > s.Radius {
		s.Radius = d
	}
	return s
}

// ExpandToIncludeSphere grows the radius about the fixed center.
func (s Sphere) ExpandToIncludeSphere(o Sphere) Sphere {
	s.Radius = math.Max(s.Radius, o.Center.Distance(s.Center)+o.Radius)
	return s
}

// Box returns the axis-aligned box around the sphere.
func (s Sphere) Box() Box {
	return FromCenterAndExtent(s.Center, vector.Splat(s.Radius))
}

func (s Sphere) String() string {
	return fmt.Sprintf("Center=(%s) Radius=%.3f", s.Center, s.Radius)
}
