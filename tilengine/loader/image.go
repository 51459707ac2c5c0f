package loader

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/png"
	"path"
	"strings"

	_ "golang.org/x/image/bmp"

	"github.com/valerio/go-tilengine/tilengine/errcode"
	"github.com/valerio/go-tilengine/tilengine/resource"
)

// ErrNotIndexed is returned for images that carry no palette.
var ErrNotIndexed = errors.New("image is not 8 bit indexed")

// decodeIndexed decodes a PNG, GIF or BMP image into a bitmap with a copy of
// its palette.
func decodeIndexed(op string, data []byte) (*resource.Bitmap, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, formatError(op, err)
	}
	pm, ok := img.(*image.Paletted)
	if !ok {
		return nil, formatError(op, ErrNotIndexed)
	}

	b := pm.Bounds()
	bmp, err := resource.NewBitmap(b.Dx(), b.Dy(), 8)
	if err != nil {
		return nil, err
	}
	for y := 0; y < b.Dy(); y++ {
		row, _ := bmp.Row(y)
		start := pm.PixOffset(b.Min.X, b.Min.Y+y)
		copy(row, pm.Pix[start:start+b.Dx()])
	}
	pal := bmp.Palette()
	for i, c := range pm.Palette {
		if i >= pal.Len() {
			break
		}
		r, g, bl, _ := c.RGBA()
		_ = pal.SetColor(i, uint8(r>>8), uint8(g>>8), uint8(bl>>8))
	}
	return bmp, nil
}

// LoadBitmap loads an indexed PNG, GIF or BMP image.
func (l *Loader) LoadBitmap(name string) (*resource.Bitmap, error) {
	data, err := l.ReadFile("LoadBitmap", name)
	if err != nil {
		return nil, err
	}
	return decodeIndexed("LoadBitmap", data)
}

// LoadPalette loads a palette from an Adobe .act color table or from the
// color table of an indexed image.
func (l *Loader) LoadPalette(name string) (*resource.Palette, error) {
	data, err := l.ReadFile("LoadPalette", name)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(path.Ext(name), ".act") {
		return decodeACT(data)
	}
	bmp, err := decodeIndexed("LoadPalette", data)
	if err != nil {
		return nil, err
	}
	defer bmp.Delete()
	return bmp.Palette().Clone()
}

// decodeACT reads 256 RGB triplets, optionally followed by a big endian
// color count and transparent index.
func decodeACT(data []byte) (*resource.Palette, error) {
	if len(data) != 768 && len(data) != 772 {
		return nil, formatError("LoadPalette", fmt.Errorf("act table is %d bytes", len(data)))
	}
	count := resource.MaxPaletteEntries
	if len(data) == 772 {
		if n := int(data[768])<<8 | int(data[769]); n > 0 && n <= count {
			count = n
		}
	}
	pal, err := resource.NewPalette(count)
	if err != nil {
		return nil, errcode.Wrap("LoadPalette", errcode.WrongFormat, err)
	}
	for i := 0; i < count; i++ {
		_ = pal.SetColor(i, data[i*3], data[i*3+1], data[i*3+2])
	}
	return pal, nil
}
