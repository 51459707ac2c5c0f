package resource

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valerio/go-tilengine/tilengine/errcode"
)

func newTestSpriteset(t *testing.T) *Spriteset {
	t.Helper()
	atlas, err := NewBitmap(32, 16, 8)
	require.NoError(t, err)
	ss, err := NewSpriteset(atlas, []SpriteData{
		{Name: "walk1", X: 0, Y: 0, W: 8, H: 16},
		{Name: "walk2", X: 8, Y: 0, W: 8, H: 16},
		{Name: "walk3", X: 16, Y: 0, W: 8, H: 16},
		{Name: "jump", X: 24, Y: 0, W: 8, H: 8},
	})
	require.NoError(t, err)
	return ss
}

func TestSpriteset(t *testing.T) {
	ss := newTestSpriteset(t)
	defer ss.Delete()

	assert.Equal(t, 4, ss.Count())
	assert.Equal(t, 3, ss.Find("jump"))
	assert.Equal(t, -1, ss.Find("run"))

	info, err := ss.Info(3)
	require.NoError(t, err)
	assert.Equal(t, SpriteInfo{W: 8, H: 8}, info)
	_, err = ss.Info(4)
	assert.ErrorIs(t, err, errcode.ErrIdxPicture)

	assert.Same(t, ss.Bitmap().Palette(), ss.Palette())
}

func TestSpritesetRejectsOutOfBoundsRects(t *testing.T) {
	atlas, _ := NewBitmap(8, 8, 8)
	defer atlas.Delete()
	_, err := NewSpriteset(atlas, []SpriteData{{Name: "big", W: 9, H: 8}})
	assert.ErrorIs(t, err, errcode.ErrWrongSize)
}

func TestSpritesetSetData(t *testing.T) {
	ss := newTestSpriteset(t)
	defer ss.Delete()

	pixels := []byte{1, 2, 3, 4}
	require.NoError(t, ss.SetData(3, SpriteData{Name: "dot", X: 24, Y: 8, W: 2, H: 2}, pixels, 2))
	assert.Equal(t, -1, ss.Find("jump"))
	assert.Equal(t, 3, ss.Find("dot"))
	assert.Equal(t, uint8(4), ss.Pixel(3, 1, 1))

	assert.ErrorIs(t, ss.SetData(9, SpriteData{W: 1, H: 1}, nil, 0), errcode.ErrIdxPicture)
	assert.ErrorIs(t, ss.SetData(0, SpriteData{X: 31, W: 2, H: 1}, nil, 0), errcode.ErrWrongSize)
}

func TestSpritesetDeleteReleasesAtlas(t *testing.T) {
	ss := newTestSpriteset(t)
	atlas := ss.Bitmap()

	require.NoError(t, ss.Delete())
	assert.True(t, atlas.Deleted())
	assert.ErrorIs(t, ss.Delete(), errcode.ErrRefSpriteset)
	assert.Equal(t, -1, ss.Find("walk1"))
}
