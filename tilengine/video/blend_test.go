package video

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/valerio/go-tilengine/tilengine/resource"
)

func TestBlenderApply(t *testing.T) {
	src := resource.RGB(200, 100, 0)
	dst := resource.RGB(100, 200, 255)

	tests := []struct {
		name string
		mode Blend
		want uint32
	}{
		{"none", BlendNone, src},
		{"mix25", BlendMix25, resource.RGB(125, 175, 191)},
		{"mix50", BlendMix50, resource.RGB(150, 150, 127)},
		{"mix75", BlendMix75, resource.RGB(175, 125, 63)},
		{"add saturates", BlendAdd, resource.RGB(255, 255, 255)},
		{"sub saturates", BlendSub, resource.RGB(0, 100, 255)},
		{"mod", BlendMod, resource.RGB(78, 78, 0)},
		{"custom unset", BlendCustom, src},
		{"out of range", Blend(42), src},
	}

	b := NewBlender()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, b.Apply(tt.mode, src, dst))
		})
	}
}

func TestBlenderCustom(t *testing.T) {
	b := NewBlender()
	b.SetCustom(func(src, dst uint8) uint8 { return dst })

	dst := resource.RGB(1, 2, 3)
	assert.Equal(t, dst, b.Apply(BlendCustom, resource.RGB(9, 9, 9), dst))

	b.SetCustom(nil)
	assert.Equal(t, resource.RGB(9, 9, 9), b.Apply(BlendCustom, resource.RGB(9, 9, 9), dst))

	// other blenders keep their own custom table
	other := NewBlender()
	assert.Equal(t, resource.RGB(9, 9, 9), other.Apply(BlendCustom, resource.RGB(9, 9, 9), dst))
}
