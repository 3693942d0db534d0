package vector

import (
	"fmt"
	"math"
)

// Vector2D is used for screen, texture and planar map coordinates.
type Vector2D struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

func New2D(x, y float64) Vector2D {
	return Vector2D{X: x, Y: y}
}

func (v Vector2D) Add(o Vector2D) Vector2D {
	return Vector2D{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vector2D) Sub(o Vector2D) Vector2D {
	return Vector2D{X: v.X - o.X, Y: v.Y - o.Y}
}

func (v Vector2D) Mul(s float64) Vector2D {
	return Vector2D{X: v.X * s, Y: v.Y * s}
}

func (v Vector2D) Dot(o Vector2D) float64 {
	return v.X*o.X + v.Y*o.Y
}

func (v Vector2D) Length() float64 {
	return math.Sqrt(v.LengthSquared())
}

func (v Vector2D) LengthSquared() float64 {
	return v.X*v.X + v.Y*v.Y
}

func (v Vector2D) IsNearlyZero(tolerance float64) bool {
	return v.LengthSquared() <= tolerance*tolerance
}

// SafeNormal follows the same guard rules as Vector.SafeNormal.
func (v Vector2D) SafeNormal(tolerance float64) Vector2D {
	n := Vector{X: v.X, Y: v.Y}.SafeNormal(tolerance)
	return Vector2D{X: n.X, Y: n.Y}
}

func (v Vector2D) String() string {
	return fmt.Sprintf("X=%.3f Y=%.3f", v.X, v.Y)
}
