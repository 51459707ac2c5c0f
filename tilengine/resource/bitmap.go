package resource

import "github.com/valerio/go-tilengine/tilengine/errcode"

// Bitmap is an 8 bpp indexed pixel buffer with its palette.
type Bitmap struct {
	handle
	width   int
	height  int
	pitch   int
	pixels  []byte
	palette *Palette
	owned   *Palette // palette created with the bitmap, deleted with it
}

// NewBitmap creates a cleared bitmap with a 256 entry palette. Only 8 bits
// per pixel are supported.
func NewBitmap(width, height, bpp int) (*Bitmap, error) {
	if bpp != 8 {
		return nil, errcode.New("CreateBitmap", errcode.Unsupported)
	}
	if width <= 0 || height <= 0 {
		return nil, errcode.New("CreateBitmap", errcode.WrongSize)
	}
	palette, err := NewPalette(MaxPaletteEntries)
	if err != nil {
		return nil, err
	}

	// rows are aligned to 4 bytes
	pitch := (width + 3) &^ 3
	b := &Bitmap{
		width:   width,
		height:  height,
		pitch:   pitch,
		pixels:  make([]byte, pitch*height),
		palette: palette,
		owned:   palette,
	}
	b.register(KindBitmap, len(b.pixels))
	return b, nil
}

func (b *Bitmap) check(op string) error {
	if b == nil || b.deleted {
		return refError(op, KindBitmap)
	}
	return nil
}

// Clone creates a deep copy, including a copy of the palette.
func (b *Bitmap) Clone() (*Bitmap, error) {
	if err := b.check("CloneBitmap"); err != nil {
		return nil, err
	}
	clone, err := NewBitmap(b.width, b.height, 8)
	if err != nil {
		return nil, err
	}
	copy(clone.pixels, b.pixels)
	if b.palette != nil && !b.palette.Deleted() {
		clone.palette.entries = clone.palette.entries[:len(b.palette.entries)]
		copy(clone.palette.entries, b.palette.entries)
	}
	return clone, nil
}

func (b *Bitmap) Width() int  { return b.width }
func (b *Bitmap) Height() int { return b.height }
func (b *Bitmap) Pitch() int  { return b.pitch }
func (b *Bitmap) Depth() int  { return 8 }

// Pixels returns the row of pixel data starting at (x, y).
func (b *Bitmap) Pixels(x, y int) ([]byte, error) {
	if err := b.check("GetBitmapPtr"); err != nil {
		return nil, err
	}
	if x < 0 || y < 0 || x >= b.width || y >= b.height {
		return nil, errcode.New("GetBitmapPtr", errcode.WrongSize)
	}
	start := y*b.pitch + x
	return b.pixels[start : y*b.pitch+b.width], nil
}

// Data returns the whole pixel buffer, Pitch bytes per row.
func (b *Bitmap) Data() []byte {
	return b.pixels
}

// Row returns the pixels of line y.
func (b *Bitmap) Row(y int) ([]byte, error) {
	return b.Pixels(0, y)
}

// Pixel returns the color index at (x, y) with no bounds reporting; outside
// pixels read as 0 (transparent).
func (b *Bitmap) Pixel(x, y int) uint8 {
	if x < 0 || y < 0 || x >= b.width || y >= b.height {
		return 0
	}
	return b.pixels[y*b.pitch+x]
}

// SetPixel sets the color index at (x, y).
func (b *Bitmap) SetPixel(x, y int, index uint8) error {
	if err := b.check("SetBitmapPixel"); err != nil {
		return err
	}
	if x < 0 || y < 0 || x >= b.width || y >= b.height {
		return errcode.New("SetBitmapPixel", errcode.WrongSize)
	}
	b.pixels[y*b.pitch+x] = index
	return nil
}

// Palette returns the bitmap palette.
func (b *Bitmap) Palette() *Palette {
	if b == nil {
		return nil
	}
	return b.palette
}

// SetPalette replaces the bitmap palette. The previous palette is not deleted.
func (b *Bitmap) SetPalette(p *Palette) error {
	if err := b.check("SetBitmapPalette"); err != nil {
		return err
	}
	if err := p.check("SetBitmapPalette"); err != nil {
		return err
	}
	b.palette = p
	return nil
}

// Delete releases the bitmap.
func (b *Bitmap) Delete() error {
	if err := b.check("DeleteBitmap"); err != nil {
		return err
	}
	b.release()
	b.pixels = nil
	if b.owned != nil && !b.owned.Deleted() {
		return b.owned.Delete()
	}
	return nil
}
