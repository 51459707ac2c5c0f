package video

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollisionBuffer_Clear(t *testing.T) {
	buffer := NewCollisionBuffer(16)
	buffer.Claim(0, 5)
	buffer.Claim(15, 3)

	buffer.Clear()

	for i := 0; i < 16; i++ {
		assert.Equal(t, -1, buffer.Owner(i), "pixel %d should have no owner", i)
	}
}

func TestCollisionBuffer_Claim(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(*CollisionBuffer)
		x        int
		sprite   int
		wantPrev int
		wantOwn  int
	}{
		{
			name:     "claim unowned pixel",
			setup:    func(b *CollisionBuffer) {},
			x:        4,
			sprite:   1,
			wantPrev: -1,
			wantOwn:  1,
		},
		{
			name:     "claim pixel of another sprite",
			setup:    func(b *CollisionBuffer) { b.Claim(4, 2) },
			x:        4,
			sprite:   1,
			wantPrev: 2,
			wantOwn:  1,
		},
		{
			name:     "claim own pixel again",
			setup:    func(b *CollisionBuffer) { b.Claim(4, 1) },
			x:        4,
			sprite:   1,
			wantPrev: -1,
			wantOwn:  1,
		},
		{
			name:     "out of range",
			setup:    func(b *CollisionBuffer) {},
			x:        99,
			sprite:   1,
			wantPrev: -1,
			wantOwn:  -1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewCollisionBuffer(16)
			tt.setup(b)
			assert.Equal(t, tt.wantPrev, b.Claim(tt.x, tt.sprite))
			assert.Equal(t, tt.wantOwn, b.Owner(tt.x))
		})
	}
}
