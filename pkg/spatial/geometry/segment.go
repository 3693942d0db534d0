package geometry

import (
	"fmt"
	"math"

	"github.com/zeusync/spatial/pkg/spatial/vector"
)

// machineEpsilon is the squared length under which a segment is a point.
const machineEpsilon = 0x1p-52

// LineSegment runs from Start to End. Start == End is a valid point segment.
type LineSegment struct {
	Start vector.Vector `json:"start" yaml:"start"`
	End   vector.Vector `json:"end" yaml:"end"`
}

func NewLineSegment(start, end vector.Vector) LineSegment {
	return LineSegment{Start: start, End: end}
}

// DirectionVector is End - Start, not normalized.
func (s LineSegment) DirectionVector() vector.Vector {
	return s.End.Sub(s.Start)
}

// Direction is the unit direction, or zero for a point segment.
func (s LineSegment) Direction() vector.Vector {
	return s.DirectionVector().SafeNormal(vector.DefaultTolerance)
}

func (s LineSegment) Length() float64 {
	return s.DirectionVector().Length()
}

func (s LineSegment) LengthSquared() float64 {
	return s.DirectionVector().LengthSquared()
}

func (s LineSegment) Center() vector.Vector {
	return s.Start.Add(s.End).Mul(0.5)
}

// Lerp returns the point at alpha clamped to [0, 1].
func (s LineSegment) Lerp(alpha float64) vector.Vector {
	return s.Start.Lerp(s.End, math.Max(0, math.Min(1, alpha)))
}

func (s LineSegment) LerpUnclamped(alpha float64) vector.Vector {
	return s.Start.Lerp(s.End, alpha)
}

// ClosestPointTo projects p onto the segment. A point segment returns Start.
func (s LineSegment) ClosestPointTo(p vector.Vector) vector.Vector {
	d := s.DirectionVector()
	lenSq := d.LengthSquared()
	if lenSq < machineEpsilon {
		return s.Start
	}
	return s.Lerp(p.Sub(s.Start).Dot(d) / lenSq)
}

func (s LineSegment) DistanceToPoint(p vector.Vector) float64 {
	return p.Distance(s.ClosestPointTo(p))
}

func (s LineSegment) DistanceSquaredToPoint(p vector.Vector) float64 {
	return p.DistanceSquared(s.ClosestPointTo(p))
}

func (s LineSegment) ContainsPoint(p vector.Vector, tolerance float64) bool {
	return s.DistanceToPoint(p) <= tolerance
}

// Extend lengthens the segment by distance at both ends.
func (s LineSegment) Extend(distance float64) LineSegment {
	d := s.Direction().Mul(distance)
	return LineSegment{Start: s.Start.Sub(d), End: s.End.Add(d)}
}

func (s LineSegment) ScaleFromCenter(factor float64) LineSegment {
	c := s.Center()
	half := s.DirectionVector().Mul(0.5 * factor)
	return LineSegment{Start: c.Sub(half), End: c.Add(half)}
}

// ClosestPointsToSegment approximates the closest pair between s and o by
// projecting o's center onto s and that point back onto o. The pair is not
// the true closest pair in general.
func (s LineSegment) ClosestPointsToSegment(o LineSegment) (onSelf, onOther vector.Vector) {
	onSelf = s.ClosestPointTo(o.Center())
	onOther = o.ClosestPointTo(onSelf)
	return onSelf, onOther
}

func (s LineSegment) String() string {
	return fmt.Sprintf("LineSegment(Start: (%s), End: (%s))", s.Start, s.End)
}
