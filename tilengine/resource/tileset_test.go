package resource

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valerio/go-tilengine/tilengine/errcode"
)

func TestNewTileset(t *testing.T) {
	_, err := NewTileset(0, 8, 8, nil, nil, nil)
	assert.ErrorIs(t, err, errcode.ErrWrongSize)

	_, err = NewTileset(4, 8, 8, nil, nil, make([]TileAttribute, 2))
	assert.ErrorIs(t, err, errcode.ErrWrongSize)

	attrs := []TileAttribute{{}, {Type: 3}, {Priority: true}, {}}
	ts, err := NewTileset(4, 8, 16, nil, nil, attrs)
	require.NoError(t, err)
	defer ts.Delete()

	assert.Equal(t, 4, ts.NumTiles())
	assert.Equal(t, 8, ts.TileWidth())
	assert.Equal(t, 16, ts.TileHeight())
	assert.NotNil(t, ts.Palette())

	a, err := ts.Attribute(1)
	require.NoError(t, err)
	assert.Equal(t, uint8(3), a.Type)
	assert.True(t, ts.Priority(2))
	assert.False(t, ts.Priority(9))

	_, err = ts.Attribute(4)
	assert.ErrorIs(t, err, errcode.ErrIdxPicture)
}

func TestTilesetSetPixels(t *testing.T) {
	ts, err := NewTileset(2, 2, 2, nil, nil, nil)
	require.NoError(t, err)
	defer ts.Delete()

	src := []byte{
		1, 2, 9, 9,
		3, 4, 9, 9,
	}
	require.NoError(t, ts.SetPixels(1, src, 4))
	assert.Equal(t, []byte{1, 2, 3, 4}, ts.Tile(1))
	assert.Equal(t, []byte{0, 0, 0, 0}, ts.Tile(0))

	assert.ErrorIs(t, ts.SetPixels(2, src, 4), errcode.ErrIdxPicture)
	assert.ErrorIs(t, ts.SetPixels(0, nil, 4), errcode.ErrNullPointer)
	assert.ErrorIs(t, ts.SetPixels(0, src[:3], 2), errcode.ErrWrongSize)
}

func TestTilesetFrames(t *testing.T) {
	ts, _ := NewTileset(5, 8, 8, nil, nil, nil)
	defer ts.Delete()

	assert.Equal(t, uint16(3), ts.Lookup(3))
	ts.SetFrame(3, 4)
	assert.Equal(t, uint16(4), ts.Lookup(3))
	assert.Equal(t, uint16(99), ts.Lookup(99))
	ts.ResetFrames()
	assert.Equal(t, uint16(3), ts.Lookup(3))
}

func TestImageTileset(t *testing.T) {
	small, _ := NewBitmap(8, 8, 8)
	large, _ := NewBitmap(16, 32, 8)
	defer small.Delete()
	defer large.Delete()

	ts, err := NewImageTileset([]TileImage{
		{Bitmap: small, ID: 10, Type: 1},
		{Bitmap: large, ID: 20, Type: 2},
	})
	require.NoError(t, err)
	defer ts.Delete()

	assert.True(t, ts.IsImageTileset())
	assert.Equal(t, 3, ts.NumTiles())
	assert.Equal(t, 16, ts.TileWidth())
	assert.Equal(t, 32, ts.TileHeight())

	img, ok := ts.Image(20)
	require.True(t, ok)
	assert.Same(t, large, img.Bitmap)
	_, ok = ts.Image(30)
	assert.False(t, ok)

	a, _ := ts.Attribute(2)
	assert.Equal(t, uint8(2), a.Type)
}

func TestTileValue(t *testing.T) {
	tile := Tile{Index: 0x1234, Flags: FlagFlipX | FlagPriority}
	assert.Equal(t, uint32(0x90001234), tile.Value())
	assert.Equal(t, tile, TileFromValue(tile.Value()))
	assert.True(t, Tile{}.Empty())
}

func TestTransformPixel(t *testing.T) {
	tests := []struct {
		name   string
		flags  TileFlags
		x, y   int
		wx, wy int
	}{
		{"none", FlagNone, 1, 2, 1, 2},
		{"flip x", FlagFlipX, 1, 2, 6, 2},
		{"flip y", FlagFlipY, 1, 2, 1, 5},
		{"both", FlagFlipX | FlagFlipY, 0, 0, 7, 7},
		{"rotate", FlagRotate, 1, 2, 2, 1},
		{"rotate flip x", FlagRotate | FlagFlipX, 1, 2, 2, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := TransformPixel(tt.flags, tt.x, tt.y, 8, 8)
			assert.Equal(t, tt.wx, x)
			assert.Equal(t, tt.wy, y)
		})
	}
}

func TestTilemap(t *testing.T) {
	_, err := NewTilemap(0, 4, nil, 0, nil)
	assert.ErrorIs(t, err, errcode.ErrWrongSize)
	_, err = NewTilemap(2, 2, make([]Tile, 3), 0, nil)
	assert.ErrorIs(t, err, errcode.ErrWrongSize)

	ts, _ := NewTileset(4, 8, 8, nil, nil, nil)
	defer ts.Delete()

	tm, err := NewTilemap(3, 4, nil, RGB(1, 2, 3), ts)
	require.NoError(t, err)
	defer tm.Delete()

	assert.Equal(t, 3, tm.Rows())
	assert.Equal(t, 4, tm.Cols())
	assert.Same(t, ts, tm.Tileset())
	assert.Equal(t, RGB(1, 2, 3), tm.BGColor())

	require.NoError(t, tm.SetTile(2, 3, Tile{Index: 2, Flags: FlagFlipY}))
	tile, err := tm.Tile(2, 3)
	require.NoError(t, err)
	assert.Equal(t, Tile{Index: 2, Flags: FlagFlipY}, tile)
	assert.Equal(t, tile, tm.Cell(-1, -1), "cells wrap around")

	_, err = tm.Tile(3, 0)
	assert.ErrorIs(t, err, errcode.ErrIdxPicture)
	assert.ErrorIs(t, tm.SetTile(0, 4, Tile{}), errcode.ErrIdxPicture)
}

func TestCopyTiles(t *testing.T) {
	src, _ := NewTilemap(2, 2, []Tile{{Index: 1}, {Index: 2}, {Index: 3}, {Index: 4}}, 0, nil)
	dst, _ := NewTilemap(3, 3, nil, 0, nil)
	defer src.Delete()
	defer dst.Delete()

	require.NoError(t, CopyTiles(src, 0, 0, 2, 2, dst, 1, 1))
	tile, _ := dst.Tile(2, 2)
	assert.Equal(t, uint16(4), tile.Index)
	tile, _ = dst.Tile(0, 0)
	assert.True(t, tile.Empty())

	assert.ErrorIs(t, CopyTiles(src, 0, 0, 2, 2, dst, 2, 2), errcode.ErrWrongSize)

	// overlapping copy inside one map
	require.NoError(t, CopyTiles(dst, 1, 1, 2, 2, dst, 0, 0))
	tile, _ = dst.Tile(1, 1)
	assert.Equal(t, uint16(4), tile.Index)

	require.NoError(t, src.Delete())
	assert.ErrorIs(t, CopyTiles(src, 0, 0, 1, 1, dst, 0, 0), errcode.ErrRefTilemap)
}
