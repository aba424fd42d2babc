package geometry

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// ErrSingular is returned when a matrix has no inverse.
var ErrSingular = errors.New("matrix is not invertible")

// Transform maps a point from one coordinate space into another.
type Transform interface {
	TransformPoint(x, y float64) (float64, float64)
}

// Apply runs t on p.
func Apply(t Transform, p Point) Point {
	x, y := t.TransformPoint(p.X, p.Y)
	return Point{X: x, Y: y}
}

// Matrix is a 2x3 affine transformation matrix.
//
//	[A B TX]
//	[C D TY]
type Matrix struct {
	A, B, TX float64
	C, D, TY float64
}

// Identity returns the identity matrix.
func Identity() Matrix {
	return Matrix{A: 1, D: 1}
}

// Translation returns a translation matrix.
func Translation(tx, ty float64) Matrix {
	return Matrix{A: 1, D: 1, TX: tx, TY: ty}
}

// Scaling returns a scaling matrix.
func Scaling(sx, sy float64) Matrix {
	return Matrix{A: sx, D: sy}
}

// Rotation returns a rotation around the origin.
func Rotation(radians float64) Matrix {
	cos, sin := math.Cos(radians), math.Sin(radians)
	return Matrix{A: cos, B: -sin, C: sin, D: cos}
}

// TransformPoint implements Transform.
func (m Matrix) TransformPoint(x, y float64) (float64, float64) {
	return m.A*x + m.B*y + m.TX, m.C*x + m.D*y + m.TY
}

// TransformDistance applies the matrix without its translation part.
func (m Matrix) TransformDistance(dx, dy float64) (float64, float64) {
	return m.A*dx + m.B*dy, m.C*dx + m.D*dy
}

// Multiply returns m applied after other (m * other).
func (m Matrix) Multiply(other Matrix) Matrix {
	return Matrix{
		A:  m.A*other.A + m.B*other.C,
		B:  m.A*other.B + m.B*other.D,
		TX: m.A*other.TX + m.B*other.TY + m.TX,
		C:  m.C*other.A + m.D*other.C,
		D:  m.C*other.B + m.D*other.D,
		TY: m.C*other.TX + m.D*other.TY + m.TY,
	}
}

// Translate returns m followed by a translation.
func (m Matrix) Translate(tx, ty float64) Matrix {
	return Translation(tx, ty).Multiply(m)
}

// Inverse returns the inverse matrix.
func (m Matrix) Inverse() (Matrix, error) {
	dense := mat.NewDense(3, 3, []float64{
		m.A, m.B, m.TX,
		m.C, m.D, m.TY,
		0, 0, 1,
	})

	var inv mat.Dense
	if err := inv.Inverse(dense); err != nil {
		return Matrix{}, fmt.Errorf("%w: %v", ErrSingular, err)
	}

	return Matrix{
		A: inv.At(0, 0), B: inv.At(0, 1), TX: inv.At(0, 2),
		C: inv.At(1, 0), D: inv.At(1, 1), TY: inv.At(1, 2),
	}, nil
}
