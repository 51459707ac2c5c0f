package video

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatrix(t *testing.T) {
	m := Translate(10, 20).Mul(Scale(2, 3))
	x, y := m.Apply(1, 1)
	assert.InDelta(t, 12, x, 1e-9)
	assert.InDelta(t, 23, y, 1e-9)

	x, y = Rotate(90).Apply(1, 0)
	assert.InDelta(t, 0, x, 1e-9)
	assert.InDelta(t, 1, y, 1e-9)

	x, y = Identity().Apply(5, -4)
	assert.Equal(t, 5.0, x)
	assert.Equal(t, -4.0, y)
}

func TestAffineInverse(t *testing.T) {
	tests := []struct {
		name   string
		affine Affine
		x, y   float64
		wx, wy float64
	}{
		{"identity", Affine{Sx: 1, Sy: 1}, 7, 3, 7, 3},
		{"zero scale as one", Affine{}, 7, 3, 7, 3},
		{"zoom at origin", Affine{Sx: 2, Sy: 2}, 8, 4, 4, 2},
		{"zoom keeps center", Affine{Dx: 50, Dy: 50, Sx: 4, Sy: 4}, 50, 50, 50, 50},
		{"half turn", Affine{Angle: 180, Dx: 8, Dy: 8, Sx: 1, Sy: 1}, 10, 8, 6, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := tt.affine.Inverse().Apply(tt.x, tt.y)
			assert.InDelta(t, tt.wx, x, 1e-9)
			assert.InDelta(t, tt.wy, y, 1e-9)
		})
	}
}
