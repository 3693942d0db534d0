package transform

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/zeusync/spatial/pkg/spatial/rotation"
	"github.com/zeusync/spatial/pkg/spatial/vector"
)

// Matrix is a 4x4 affine matrix in mgl64's column-major layout. Points are
// column vectors, so A.Mul(B) applies B first.
type Matrix mgl64.Mat4

// IdentityMatrix leaves every point in place.
var IdentityMatrix = Matrix(mgl64.Ident4())

// ComposeMatrix builds translation · rotation · scale.
func ComposeMatrix(location vector.Vector, rot rotation.Quaternion, scale vector.Vector) Matrix {
	t := mgl64.Translate3D(location.X, location.Y, location.Z)
	r := rot.Quat().Mat4()
	s := mgl64.Scale3D(scale.X, scale.Y, scale.Z)
	return Matrix(t.Mul4(r).Mul4(s))
}

// Decompose splits m into scale, rotation and translation. It assumes m has
// no shear. A negative determinant is folded into the X scale. Zero scale
// on any axis is not detected and yields a non-finite rotation.
func (m Matrix) Decompose() (scale vector.Vector, rot rotation.Quaternion, location vector.Vector) {
	mm := mgl64.Mat4(m)

	c0 := mm.Col(0).Vec3()
	c1 := mm.Col(1).Vec3()
	c2 := mm.Col(2).Vec3()

	sx := c0.Len()
	if mm.Mat3().Det() < 0 {
		sx = -sx
	}
	sy := c1.Len()
	sz := c2.Len()

	basis := mgl64.Mat4FromCols(
		c0.Mul(1/sx).Vec4(0),
		c1.Mul(1/sy).Vec4(0),
		c2.Mul(1/sz).Vec4(0),
		mgl64.Vec4{0, 0, 0, 1},
	)
	q := rotation.FromQuat(mgl64.Mat4ToQuat(basis))
	if l := q.Length(); l != 0 && !math.IsNaN(l) {
		q = rotation.Quaternion{X: q.X / l, Y: q.Y / l, Z: q.Z / l, W: q.W / l}
	}

	return vector.New(sx, sy, sz), q, vector.FromVec3(mm.Col(3).Vec3())
}

// Mul returns m·o.
func (m Matrix) Mul(o Matrix) Matrix {
	return Matrix(mgl64.Mat4(m).Mul4(mgl64.Mat4(o)))
}

// Inverse inverts m through its adjugate. Only an exactly zero determinant
// yields the zero matrix, so tiny scales still invert.
func (m Matrix) Inverse() Matrix {
	a := func(r, c int) float64 { return m[c*4+r] }

	s0 := a(0, 0)*a(1, 1) - a(1, 0)*a(0, 1)
	s1 := a(0, 0)*a(1, 2) - a(1, 0)*a(0, 2)
	s2 := a(0, 0)*a(1, 3) - a(1, 0)*a(0, 3)
	s3 := a(0, 1)*a(1, 2) - a(1, 1)*a(0, 2)
	s4 := a(0, 1)*a(1, 3) - a(1, 1)*a(0, 3)
	s5 := a(0, 2)*a(1, 3) - a(1, 2)*a(0, 3)

	c5 := a(2, 2)*a(3, 3) - a(3, 2)*a(2, 3)
	c4 := a(2, 1)*a(3, 3) - a(3, 1)*a(2, 3)
	c3 := a(2, 1)*a(3, 2) - a(3, 1)*a(2, 2)
	c2 := a(2, 0)*a(3, 3) - a(3, 0)*a(2, 3)
	c1 := a(2, 0)*a(3, 2) - a(3, 0)*a(2, 2)
	c0 := a(2, 0)*a(3, 1) - a(3, 0)*a(2, 1)

	det := s0*c5 - s1*c4 + s2*c3 + s3*c2 - s4*c1 + s5*c0
	if det == 0 {
		return Matrix{}
	}

	adj := [4][4]float64{
		{
			a(1, 1)*c5 - a(1, 2)*c4 + a(1, 3)*c3,
			-a(0, 1)*c5 + a(0, 2)*c4 - a(0, 3)*c3,
			a(3, 1)*s5 - a(3, 2)*s4 + a(3, 3)*s3,
			-a(2, 1)*s5 + a(2, 2)*s4 - a(2, 3)*s3,
		},
		{
			-a(1, 0)*c5 + a(1, 2)*c2 - a(1, 3)*c1,
			a(0, 0)*c5 - a(0, 2)*c2 + a(0, 3)*c1,
			-a(3, 0)*s5 + a(3, 2)*s2 - a(3, 3)*s1,
			a(2, 0)*s5 - a(2, 2)*s2 + a(2, 3)*s1,
		},
		{
			a(1, 0)*c4 - a(1, 1)*c2 + a(1, 3)*c0,
			-a(0, 0)*c4 + a(0, 1)*c2 - a(0, 3)*c0,
			a(3, 0)*s4 - a(3, 1)*s2 + a(3, 3)*s0,
			-a(2, 0)*s4 + a(2, 1)*s2 - a(2, 3)*s0,
		},
		{
			-a(1, 0)*c3 + a(1, 1)*c1 - a(1, 2)*c0,
			a(0, 0)*c3 - a(0, 1)*c1 + a(0, 2)*c0,
			-a(3, 0)*s3 + a(3, 1)*s1 - a(3, 2)*s0,
			a(2, 0)*s3 - a(2, 1)*s1 + a(2, 2)*s0,
		},
	}

	var inv Matrix
	for r := range 4 {
		for c := range 4 {
			inv[c*4+r] = adj[r][c] / det
		}
	}
	return inv
}

func (m Matrix) Determinant() float64 {
	return mgl64.Mat4(m).Det()
}

// Column returns the first three entries of column i.
func (m Matrix) Column(i int) vector.Vector {
	return vector.FromVec3(mgl64.Mat4(m).Col(i).Vec3())
}

// TransformPoint applies the full affine map.
func (m Matrix) TransformPoint(p vector.Vector) vector.Vector {
	return vector.FromVec3(mgl64.Mat4(m).Mul4x1(p.Vec3().Vec4(1)).Vec3())
}

// TransformVector ignores translation.
func (m Matrix) TransformVector(v vector.Vector) vector.Vector {
	return vector.FromVec3(mgl64.Mat4(m).Mul4x1(v.Vec3().Vec4(0)).Vec3())
}

func (m Matrix) IsNearlyEqual(o Matrix, tolerance float64) bool {
	for i := range m {
		if math.Abs(m[i]-o[i]) > tolerance {
			return false
		}
	}
	return true
}
