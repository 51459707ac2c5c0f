package resource

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valerio/go-tilengine/tilengine/errcode"
)

func TestNewBitmap(t *testing.T) {
	_, err := NewBitmap(16, 16, 32)
	assert.ErrorIs(t, err, errcode.ErrUnsupported)

	_, err = NewBitmap(0, 16, 8)
	assert.ErrorIs(t, err, errcode.ErrWrongSize)

	b, err := NewBitmap(13, 5, 8)
	require.NoError(t, err)
	defer b.Delete()

	assert.Equal(t, 13, b.Width())
	assert.Equal(t, 5, b.Height())
	assert.Equal(t, 16, b.Pitch(), "rows are padded to 4 bytes")
	assert.Equal(t, 8, b.Depth())
	assert.Equal(t, MaxPaletteEntries, b.Palette().Len())
}

func TestBitmapPixels(t *testing.T) {
	b, err := NewBitmap(8, 4, 8)
	require.NoError(t, err)
	defer b.Delete()

	require.NoError(t, b.SetPixel(2, 3, 7))
	assert.Equal(t, uint8(7), b.Pixel(2, 3))
	assert.Equal(t, uint8(0), b.Pixel(-1, 0))
	assert.Equal(t, uint8(0), b.Pixel(8, 0))

	row, err := b.Row(3)
	require.NoError(t, err)
	assert.Len(t, row, 8)
	assert.Equal(t, uint8(7), row[2])

	row, err = b.Pixels(2, 3)
	require.NoError(t, err)
	assert.Equal(t, uint8(7), row[0])

	_, err = b.Row(4)
	assert.ErrorIs(t, err, errcode.ErrWrongSize)
	assert.ErrorIs(t, b.SetPixel(8, 0, 1), errcode.ErrWrongSize)
}

func TestBitmapCloneCopiesPalette(t *testing.T) {
	b, _ := NewBitmap(4, 4, 8)
	defer b.Delete()
	require.NoError(t, b.SetPixel(1, 1, 3))
	require.NoError(t, b.Palette().SetColor(3, 1, 2, 3))

	clone, err := b.Clone()
	require.NoError(t, err)
	defer clone.Delete()

	assert.Equal(t, uint8(3), clone.Pixel(1, 1))
	c, _ := clone.Palette().Color(3)
	assert.Equal(t, RGB(1, 2, 3), c)
	assert.NotSame(t, b.Palette(), clone.Palette())
}

func TestBitmapDeleteReleasesOwnedPalette(t *testing.T) {
	b, _ := NewBitmap(4, 4, 8)
	own := b.Palette()

	shared, _ := NewPalette(16)
	defer shared.Delete()
	require.NoError(t, b.SetPalette(shared))

	require.NoError(t, b.Delete())
	assert.True(t, own.Deleted())
	assert.False(t, shared.Deleted(), "assigned palettes are not owned")

	assert.ErrorIs(t, b.Delete(), errcode.ErrRefBitmap)
	assert.ErrorIs(t, b.SetPixel(0, 0, 1), errcode.ErrRefBitmap)
}
