package video

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/valerio/go-tilengine/tilengine/resource"
)

var (
	red   = resource.RGB(255, 0, 0)
	green = resource.RGB(0, 255, 0)
	blue  = resource.RGB(0, 0, 255)
)

// solidTileset returns an 8x8 tileset whose entry 1 is filled with color.
func solidTileset(t *testing.T, color uint32) *resource.Tileset {
	t.Helper()
	pal, err := resource.NewPalette(4)
	require.NoError(t, err)
	r, g, b := resource.Channels(color)
	require.NoError(t, pal.SetColor(1, r, g, b))

	ts, err := resource.NewTileset(2, 8, 8, pal, nil, nil)
	require.NoError(t, err)
	require.NoError(t, ts.SetPixels(1, bytes.Repeat([]byte{1}, 64), 8))
	return ts
}

// tilemapWith returns a rows x cols tilemap with tile 1 at the given cells.
func tilemapWith(t *testing.T, ts *resource.Tileset, rows, cols int, cells ...[2]int) *resource.Tilemap {
	t.Helper()
	tm, err := resource.NewTilemap(rows, cols, nil, 0, ts)
	require.NoError(t, err)
	for _, c := range cells {
		require.NoError(t, tm.SetTile(c[0], c[1], resource.Tile{Index: 1}))
	}
	return tm
}

// bitmapWith returns a w x h bitmap drawing color at the given pixels.
func bitmapWith(t *testing.T, w, h int, color uint32, pixels ...[2]int) *resource.Bitmap {
	t.Helper()
	bmp, err := resource.NewBitmap(w, h, 8)
	require.NoError(t, err)
	r, g, b := resource.Channels(color)
	require.NoError(t, bmp.Palette().SetColor(1, r, g, b))
	for _, p := range pixels {
		require.NoError(t, bmp.SetPixel(p[0], p[1], 1))
	}
	return bmp
}

// halfSpriteset returns two 8x8 pictures: "left" is opaque on columns 0-3
// and "right" on columns 4-7.
func halfSpriteset(t *testing.T, color uint32) *resource.Spriteset {
	t.Helper()
	atlas := bitmapWith(t, 16, 8, color)
	for y := 0; y < 8; y++ {
		for x := 0; x < 4; x++ {
			require.NoError(t, atlas.SetPixel(x, y, 1))
			require.NoError(t, atlas.SetPixel(12+x, y, 1))
		}
	}
	ss, err := resource.NewSpriteset(atlas, []resource.SpriteData{
		{Name: "left", X: 0, Y: 0, W: 8, H: 8},
		{Name: "right", X: 8, Y: 0, W: 8, H: 8},
	})
	require.NoError(t, err)
	return ss
}

// solidSpriteset returns a single fully opaque 8x8 picture.
func solidSpriteset(t *testing.T, color uint32) *resource.Spriteset {
	t.Helper()
	atlas := bitmapWith(t, 8, 8, color)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			require.NoError(t, atlas.SetPixel(x, y, 1))
		}
	}
	ss, err := resource.NewSpriteset(atlas, []resource.SpriteData{{Name: "block", W: 8, H: 8}})
	require.NoError(t, err)
	return ss
}

func newTestRenderer(t *testing.T, w, h, layers, sprites int) *Renderer {
	t.Helper()
	r, err := NewRenderer(w, h, layers, sprites)
	require.NoError(t, err)
	return r
}
