package video

import "math"

// Affine describes a layer rotation and scaling around a screen point.
type Affine struct {
	Angle  float64 // degrees, counterclockwise
	Dx, Dy float64 // rotation center in screen space
	Sx, Sy float64 // scale factors
}

// PixelMap displaces the source pixel sampled for one screen pixel.
type PixelMap struct {
	Dx, Dy int16
}

// Matrix is a 2D affine transform in row-major 2×3 form.
type Matrix struct {
	A, B, C float64
	D, E, F float64
}

// Identity returns the identity transform.
func Identity() Matrix {
	return Matrix{A: 1, E: 1}
}

// Translate returns a translation.
func Translate(x, y float64) Matrix {
	return Matrix{A: 1, C: x, E: 1, F: y}
}

// Scale returns a scaling.
func Scale(sx, sy float64) Matrix {
	return Matrix{A: sx, E: sy}
}

// Rotate returns a counterclockwise rotation in degrees.
func Rotate(degrees float64) Matrix {
	s, c := math.Sincos(degrees * math.Pi / 180)
	return Matrix{A: c, B: -s, D: s, E: c}
}

// Mul returns m·n, the transform that applies n first and then m.
func (m Matrix) Mul(n Matrix) Matrix {
	return Matrix{
		A: m.A*n.A + m.B*n.D,
		B: m.A*n.B + m.B*n.E,
		C: m.A*n.C + m.B*n.F + m.C,
		D: m.D*n.A + m.E*n.D,
		E: m.D*n.B + m.E*n.E,
		F: m.D*n.C + m.E*n.F + m.F,
	}
}

// Apply transforms a point.
func (m Matrix) Apply(x, y float64) (float64, float64) {
	return m.A*x + m.B*y + m.C, m.D*x + m.E*y + m.F
}

// Inverse maps screen space back to layer space for this transform.
// Degenerate scale factors are treated as 1.
func (a Affine) Inverse() Matrix {
	sx, sy := a.Sx, a.Sy
	if sx == 0 {
		sx = 1
	}
	if sy == 0 {
		sy = 1
	}
	return Translate(a.Dx, a.Dy).
		Mul(Rotate(-a.Angle)).
		Mul(Scale(1/sx, 1/sy)).
		Mul(Translate(-a.Dx, -a.Dy))
}
