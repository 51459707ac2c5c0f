package resource

import (
	"github.com/valerio/go-tilengine/tilengine/bit"
	"github.com/valerio/go-tilengine/tilengine/errcode"
)

// MaxPaletteEntries is the largest palette an 8 bpp pixel can address.
const MaxPaletteEntries = 256

// Palette is an ordered table of packed 0xAARRGGBB colors. Palettes are
// shared, never owned: any number of layers, sprites and animations may
// reference the same instance and see its mutations immediately.
type Palette struct {
	handle
	entries []uint32
}

// NewPalette creates a palette with the given number of black entries.
func NewPalette(entries int) (*Palette, error) {
	if entries <= 0 || entries > MaxPaletteEntries {
		return nil, errcode.New("CreatePalette", errcode.WrongSize)
	}
	p := &Palette{entries: make([]uint32, entries)}
	for i := range p.entries {
		p.entries[i] = RGB(0, 0, 0)
	}
	p.register(KindPalette, entries*4)
	return p, nil
}

func (p *Palette) check(op string) error {
	if p == nil || p.deleted {
		return refError(op, KindPalette)
	}
	return nil
}

// Clone creates an independent copy of the palette.
func (p *Palette) Clone() (*Palette, error) {
	if err := p.check("ClonePalette"); err != nil {
		return nil, err
	}
	clone, err := NewPalette(len(p.entries))
	if err != nil {
		return nil, err
	}
	copy(clone.entries, p.entries)
	return clone, nil
}

// Len returns the number of entries.
func (p *Palette) Len() int {
	if p == nil {
		return 0
	}
	return len(p.entries)
}

// Entries exposes the color table for the renderer. Callers must not retain
// or resize it.
func (p *Palette) Entries() []uint32 {
	return p.entries
}

// SetColor sets the color of one entry.
func (p *Palette) SetColor(index int, r, g, b uint8) error {
	if err := p.check("SetPaletteColor"); err != nil {
		return err
	}
	if index < 0 || index >= len(p.entries) {
		return errcode.New("SetPaletteColor", errcode.IdxPicture)
	}
	p.entries[index] = RGB(r, g, b)
	return nil
}

// Color returns the packed color of one entry.
func (p *Palette) Color(index int) (uint32, error) {
	if err := p.check("GetPaletteData"); err != nil {
		return 0, err
	}
	if index < 0 || index >= len(p.entries) {
		return 0, errcode.New("GetPaletteData", errcode.IdxPicture)
	}
	return p.entries[index], nil
}

// CopyFrom overwrites the overlapping entries with those of src.
func (p *Palette) CopyFrom(src *Palette) error {
	if err := p.check("CopyPalette"); err != nil {
		return err
	}
	if err := src.check("CopyPalette"); err != nil {
		return err
	}
	copy(p.entries, src.entries)
	return nil
}

// AddColor adds a color to a range of entries, saturating each channel at 255.
func (p *Palette) AddColor(r, g, b uint8, start, num int) error {
	return p.modify("AddPaletteColor", start, num, func(c uint32) uint32 {
		cr, cg, cb := Channels(c)
		return RGB(bit.SaturatingAdd(cr, r), bit.SaturatingAdd(cg, g), bit.SaturatingAdd(cb, b))
	})
}

// SubColor subtracts a color from a range of entries, saturating each channel at 0.
func (p *Palette) SubColor(r, g, b uint8, start, num int) error {
	return p.modify("SubPaletteColor", start, num, func(c uint32) uint32 {
		cr, cg, cb := Channels(c)
		return RGB(bit.SaturatingSub(cr, r), bit.SaturatingSub(cg, g), bit.SaturatingSub(cb, b))
	})
}

// ModColor modulates a range of entries: each channel is scaled by the
// matching channel of the color, where 255 leaves it unchanged.
func (p *Palette) ModColor(r, g, b uint8, start, num int) error {
	return p.modify("ModPaletteColor", start, num, func(c uint32) uint32 {
		cr, cg, cb := Channels(c)
		return RGB(
			uint8(uint16(cr)*uint16(r)/255),
			uint8(uint16(cg)*uint16(g)/255),
			uint8(uint16(cb)*uint16(b)/255),
		)
	})
}

func (p *Palette) modify(op string, start, num int, fn func(uint32) uint32) error {
	if err := p.check(op); err != nil {
		return err
	}
	if start < 0 || num < 0 || start+num > len(p.entries) {
		return errcode.New(op, errcode.IdxPicture)
	}
	for i := start; i < start+num; i++ {
		p.entries[i] = fn(p.entries[i])
	}
	return nil
}

// MixPalettes writes into dst the interpolation between src1 and src2, where
// factor 0 yields src1 and 255 yields src2.
func MixPalettes(src1, src2, dst *Palette, factor uint8) error {
	for _, p := range []*Palette{src1, src2, dst} {
		if err := p.check("MixPalettes"); err != nil {
			return err
		}
	}
	n := min(len(src1.entries), len(src2.entries), len(dst.entries))
	for i := 0; i < n; i++ {
		dst.entries[i] = Lerp(src1.entries[i], src2.entries[i], int(factor), 255)
	}
	return nil
}

// Lerp interpolates two packed colors by num/den.
func Lerp(a, b uint32, num, den int) uint32 {
	ar, ag, ab := Channels(a)
	br, bg, bb := Channels(b)
	mix := func(x, y uint8) uint8 {
		return bit.Clamp(int(x) + (int(y)-int(x))*num/den)
	}
	return RGB(mix(ar, br), mix(ag, bg), mix(ab, bb))
}

// Delete releases the palette.
func (p *Palette) Delete() error {
	if err := p.check("DeletePalette"); err != nil {
		return err
	}
	p.release()
	p.entries = nil
	return nil
}
