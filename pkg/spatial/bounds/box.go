package bounds

import (
	"fmt"
	"iter"
	"math"

	"github.com/zeusync/spatial/pkg/spatial/transform"
	"github.com/zeusync/spatial/pkg/spatial/vector"
)

// Box is an axis-aligned bounding box. It is valid when Min <= Max on every
// axis.
type Box struct {
	Min vector.Vector `json:"min" yaml:"min"`
	Max vector.Vector `json:"max" yaml:"max"`
}

// Empty has inverted infinite bounds, so including a point yields exactly
// that point and a union with Empty changes nothing.
var Empty = Box{
	Min: vector.Splat(math.Inf(1)),
	Max: vector.Splat(math.Inf(-1)),
}

func NewBox(lo, hi vector.Vector) Box {
	return Box{Min: lo, Max: hi}
}

// FromCenterAndExtent builds a box from its center and half-size.
func FromCenterAndExtent(center, extent vector.Vector) Box {
	return Box{Min: center.Sub(extent), Max: center.Add(extent)}
}

func FromPoint(p vector.Vector) Box {
	return Box{Min: p, Max: p}
}

// FromPoints returns the tightest box around points, or Empty for none.
func FromPoints(points ...vector.Vector) Box {
	b := Empty
	for _, p := range points {
		b = b.ExpandToInclude(p)
	}
	return b
}

// FromSeq is FromPoints over an iterator.
func FromSeq(points iter.Seq[vector.Vector]) Box {
	b := Empty
	for p := range points {
		b = b.ExpandToInclude(p)
	}
	return b
}

func (b Box) Center() vector.Vector {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Extent is the half-size.
func (b Box) Extent() vector.Vector {
	return b.Max.Sub(b.Min).Mul(0.5)
}

func (b Box) Size() vector.Vector {
	return b.Max.Sub(b.Min)
}

func (b Box) Volume() float64 {
	s := b.Size()
	return s.X * s.Y * s.Z
}

func (b Box) SurfaceArea() float64 {
	s := b.Size()
	return 2 * (s.X*s.Y + s.Y*s.Z + s.Z*s.X)
}

// IsValid reports Min <= Max on every axis.
func (b Box) IsValid() bool {
	return b.Min.X <= b.Max.X && b.Min.Y <= b.Max.Y && b.Min.Z <= b.Max.Z
}

// IsEmpty reports Min >= Max on any axis. A box that is flat along one axis
// is empty even if it spans the other two.
func (b Box) IsEmpty() bool {
	return b.Min.X >= b.Max.X || b.Min.Y >= b.Max.Y || b.Min.Z >= b.Max.Z
}

// ContainsPoint is boundary-inclusive.
func (b Box) ContainsPoint(p vector.Vector) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

func (b Box) ContainsBox(o Box) bool {
	return b.ContainsPoint(o.Min) && b.ContainsPoint(o.Max)
}

// Intersects is a separating-axis test; touching faces intersect.
func (b Box) Intersects(o Box) bool {
	return b.Min.X <= o.Max.X && b.Max.X >= o.Min.X &&
		b.Min.Y <= o.Max.Y && b.Max.Y >= o.Min.Y &&
		b.Min.Z <= o.Max.Z && b.Max.Z >= o.Min.Z
}

// Intersection returns the overlap, or Empty when the boxes are disjoint.
func (b Box) Intersection(o Box) Box {
	if !b.Intersects(o) {
		return Empty
	}
	return Box{Min: b.Min.Max(o.Min), Max: b.Max.Min(o.Max)}
}

func (b Box) ExpandToInclude(p vector.Vector) Box {
	return Box{Min: b.Min.Min(p), Max: b.Max.Max(p)}
}

// Union returns the smallest box holding both. An invalid operand (Empty
// included) is ignored.
func (b Box) Union(o Box) Box {
	switch {
	case !o.IsValid():
		return b
	case !b.IsValid():
		return o
	}
	return Box{Min: b.Min.Min(o.Min), Max: b.Max.Max(o.Max)}
}

// ExpandBy grows every face outward by amount.
func (b Box) ExpandBy(amount float64) Box {
	d := vector.Splat(amount)
	return Box{Min: b.Min.Sub(d), Max: b.Max.Add(d)}
}

// Corners lists the eight corners, X varying fastest.
func (b Box) Corners() [8]vector.Vector {
	return [8]vector.Vector{
		{X: b.Min.X, Y: b.Min.Y, Z: b.Min.Z},
		{X: b.Max.X, Y: b.Min.Y, Z: b.Min.Z},
		{X: b.Min.X, Y: b.Max.Y, Z: b.Min.Z},
		{X: b.Max.X, Y: b.Max.Y, Z: b.Min.Z},
		{X: b.Min.X, Y: b.Min.Y, Z: b.Max.Z},
		{X: b.Max.X, Y: b.Min.Y, Z: b.Max.Z},
		{X: b.Min.X, Y: b.Max.Y, Z: b.Max.Z},
		{X: b.Max.X, Y: b.Max.Y, Z: b.Max.Z},
	}
}

// Transform moves the eight corners through t and returns the axis-aligned
// box around them. Under rotation this is larger than the true rotated
// extent. An invalid box, Empty included, maps to Empty.
func (b Box) Transform(t transform.Transform) Box {
	if !b.IsValid() {
		return Empty
	}
	corners := b.Corners()
	for i, c := range corners {
		corners[i] = t.TransformPoint(c)
	}
	return FromPoints(corners[:]...)
}

// ClosestPointTo clamps p into the box.
func (b Box) ClosestPointTo(p vector.Vector) vector.Vector {
	return p.Clamp(b.Min, b.Max)
}

// DistanceToPoint is zero inside the box.
func (b Box) DistanceToPoint(p vector.Vector) float64 {
	return p.Distance(b.ClosestPointTo(p))
}

func (b Box) String() string {
	return fmt.Sprintf("Min=(%s) Max=(%s)", b.Min, b.Max)
}
