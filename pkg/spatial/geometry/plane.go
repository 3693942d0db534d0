package geometry

import (
	"fmt"

	"github.com/zeusync/spatial/pkg/spatial/vector"
)

// Plane holds every point p with Normal·p == Distance. The constructors
// normalize the normal; a literal Plane is taken as given.
type Plane struct {
	Normal   vector.Vector `json:"normal" yaml:"normal"`
	Distance float64       `json:"distance" yaml:"distance"`
}

func NewPlane(normal vector.Vector, distance float64) Plane {
	return Plane{Normal: normal, Distance: distance}
}

// PlaneFromPointNormal builds the plane through point. A degenerate normal
// yields a zero normal and distance.
func PlaneFromPointNormal(point, normal vector.Vector) Plane {
	n := normal.SafeNormal(vector.DefaultTolerance)
	return Plane{Normal: n, Distance: point.Dot(n)}
}

// PlaneFromThreePoints orients the normal by the right-hand rule over
// a→b→c. Collinear points give a degenerate plane.
func PlaneFromThreePoints(a, b, c vector.Vector) Plane {
	return PlaneFromPointNormal(a, b.Sub(a).Cross(c.Sub(a)))
}

// DistanceToPoint is signed: positive on the side the normal points to.
func (p Plane) DistanceToPoint(point vector.Vector) float64 {
	return p.Normal.Dot(point) - p.Distance
}

// PointSide is the signed distance; only its sign is meaningful to callers.
func (p Plane) PointSide(point vector.Vector) float64 {
	return p.DistanceToPoint(point)
}

func (p Plane) IsPointInFront(point vector.Vector) bool {
	return p.DistanceToPoint(point) > 0
}

func (p Plane) ProjectPoint(point vector.Vector) vector.Vector {
	return point.Sub(p.Normal.Mul(p.DistanceToPoint(point)))
}

func (p Plane) ClosestPointTo(point vector.Vector) vector.Vector {
	return p.ProjectPoint(point)
}

func (p Plane) String() string {
	return fmt.Sprintf("Plane(Normal: (%s), Distance: %.3f)", p.Normal, p.Distance)
}

// Plane2D is a line in the plane, stored the same way as Plane.
type Plane2D struct {
	Normal   vector.Vector2D `json:"normal" yaml:"normal"`
	Distance float64         `json:"distance" yaml:"distance"`
}

func NewPlane2D(normal vector.Vector2D, distance float64) Plane2D {
	return Plane2D{Normal: normal, Distance: distance}
}

func Plane2DFromPointNormal(point, normal vector.Vector2D) Plane2D {
	n := normal.SafeNormal(vector.DefaultTolerance)
	return Plane2D{Normal: n, Distance: point.Dot(n)}
}

func (p Plane2D) DistanceToPoint(point vector.Vector2D) float64 {
	return p.Normal.Dot(point) - p.Distance
}

func (p Plane2D) PointSide(point vector.Vector2D) float64 {
	return p.DistanceToPoint(point)
}

func (p Plane2D) IsPointInFront(point vector.Vector2D) bool {
	return p.DistanceToPoint(point) > 0
}

func (p Plane2D) ProjectPoint(point vector.Vector2D) vector.Vector2D {
	return point.Sub(p.Normal.Mul(p.DistanceToPoint(point)))
}

func (p Plane2D) String() string {
	return fmt.Sprintf("Plane2D(Normal: (%s), Distance: %.3f)", p.Normal, p.Distance)
}
