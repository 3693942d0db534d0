package vector

import (
	"fmt"
	"math"
)

// IntVector is a 3D integer vector for grid cells and voxel coordinates.
type IntVector struct {
	X int32 `json:"x" yaml:"x"`
	Y int32 `json:"y" yaml:"y"`
	Z int32 `json:"z" yaml:"z"`
}

// IntVector2 is the 2D counterpart of IntVector.
type IntVector2 struct {
	X int32 `json:"x" yaml:"x"`
	Y int32 `json:"y" yaml:"y"`
}

func NewInt(x, y, z int32) IntVector {
	return IntVector{X: x, Y: y, Z: z}
}

// IntFromVector rounds each component to the nearest integer.
func IntFromVector(v Vector) IntVector {
	return IntVector{
		X: int32(math.Round(v.X)),
		Y: int32(math.Round(v.Y)),
		Z: int32(math.Round(v.Z)),
	}
}

func (v IntVector) ToVector() Vector {
	return Vector{X: float64(v.X), Y: float64(v.Y), Z: float64(v.Z)}
}

func (v IntVector) Add(o IntVector) IntVector {
	return IntVector{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

func (v IntVector) Sub(o IntVector) IntVector {
	return IntVector{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

func (v IntVector) Scale(factor int32) IntVector {
	return IntVector{X: v.X * factor, Y: v.Y * factor, Z: v.Z * factor}
}

func (v IntVector) Dot(o IntVector) int32 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

func (v IntVector) Cross(o IntVector) IntVector {
	return IntVector{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

func (v IntVector) SizeSquared() int32 {
	return v.Dot(v)
}

func (v IntVector) Size() float64 {
	return math.Sqrt(float64(v.SizeSquared()))
}

func (v IntVector) String() string {
	return fmt.Sprintf("IntVector(X=%d, Y=%d, Z=%d)", v.X, v.Y, v.Z)
}

func NewInt2(x, y int32) IntVector2 {
	return IntVector2{X: x, Y: y}
}

// Int2FromVector2D rounds each component to the nearest integer.
func Int2FromVector2D(v Vector2D) IntVector2 {
	return IntVector2{X: int32(math.Round(v.X)), Y: int32(math.Round(v.Y))}
}

func (v IntVector2) ToVector2D() Vector2D {
	return Vector2D{X: float64(v.X), Y: float64(v.Y)}
}

func (v IntVector2) Add(o IntVector2) IntVector2 {
	return IntVector2{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v IntVector2) Sub(o IntVector2) IntVector2 {
	return IntVector2{X: v.X - o.X, Y: v.Y - o.Y}
}

func (v IntVector2) Scale(factor int32) IntVector2 {
	return IntVector2{X: v.X * factor, Y: v.Y * factor}
}

func (v IntVector2) SizeSquared() int32 {
	return v.X*v.X + v.Y*v.Y
}

func (v IntVector2) Size() float64 {
	return math.Sqrt(float64(v.SizeSquared()))
}

func (v IntVector2) String() string {
	return fmt.Sprintf("IntVector2(X=%d, Y=%d)", v.X, v.Y)
}
