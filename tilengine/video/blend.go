package video

import (
	"sync"

	"github.com/valerio/go-tilengine/tilengine/bit"
	"github.com/valerio/go-tilengine/tilengine/display"
)

// Blend is a pixel blending mode.
type Blend int

const (
	BlendNone Blend = iota
	BlendMix25
	BlendMix50
	BlendMix75
	BlendAdd
	BlendSub
	BlendMod
	BlendCustom

	numBlends
)

// BlendMix is the older name of BlendMix50.
const BlendMix = BlendMix50

// BlendFunc combines a source channel with the destination channel.
type BlendFunc func(src, dst uint8) uint8

// blendTable maps (src<<8 | dst) to the blended channel value.
type blendTable [256 * 256]uint8

var (
	builtinOnce   sync.Once
	builtinTables [BlendCustom]*blendTable
)

func builtinBlends() [BlendCustom]*blendTable {
	builtinOnce.Do(func() {
		funcs := [BlendCustom]BlendFunc{
			BlendMix25: func(s, d uint8) uint8 { return uint8((int(s) + 3*int(d)) / 4) },
			BlendMix50: func(s, d uint8) uint8 { return uint8((int(s) + int(d)) / 2) },
			BlendMix75: func(s, d uint8) uint8 { return uint8((3*int(s) + int(d)) / 4) },
			BlendAdd:   bit.SaturatingAdd,
			BlendSub:   func(s, d uint8) uint8 { return bit.SaturatingSub(d, s) },
			BlendMod:   func(s, d uint8) uint8 { return uint8(int(s) * int(d) / 255) },
		}
		for mode := BlendMix25; mode < BlendCustom; mode++ {
			builtinTables[mode] = buildTable(funcs[mode])
		}
	})
	return builtinTables
}

func buildTable(fn BlendFunc) *blendTable {
	t := new(blendTable)
	for s := 0; s < 256; s++ {
		for d := 0; d < 256; d++ {
			t[s<<8|d] = fn(uint8(s), uint8(d))
		}
	}
	return t
}

// Blender applies blend modes through precomputed per-channel tables.
type Blender struct {
	tables [numBlends]*blendTable
}

// NewBlender creates a blender with the built-in modes.
func NewBlender() *Blender {
	b := &Blender{}
	builtin := builtinBlends()
	copy(b.tables[:], builtin[:])
	return b
}

// SetCustom installs the function used by BlendCustom. A nil function
// makes BlendCustom behave like BlendNone.
func (b *Blender) SetCustom(fn BlendFunc) {
	if fn == nil {
		b.tables[BlendCustom] = nil
		return
	}
	b.tables[BlendCustom] = buildTable(fn)
}

// Apply blends src over dst.
func (b *Blender) Apply(mode Blend, src, dst uint32) uint32 {
	if mode <= BlendNone || mode >= numBlends {
		return src
	}
	t := b.tables[mode]
	if t == nil {
		return src
	}
	channel := func(shift uint) uint32 {
		s := (src >> shift) & display.ColorMask
		d := (dst >> shift) & display.ColorMask
		return uint32(t[s<<8|d]) << shift
	}
	return display.FullAlpha<<display.ARGBAShift |
		channel(display.ARGBRShift) | channel(display.ARGBGShift) | channel(display.ARGBBShift)
}
