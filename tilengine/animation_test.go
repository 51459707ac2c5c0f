package tilengine_test

import (
	"bytes"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valerio/go-tilengine/tilengine"
	"github.com/valerio/go-tilengine/tilengine/errcode"
	"github.com/valerio/go-tilengine/tilengine/resource"
)

func TestPaletteAnimation(t *testing.T) {
	e := newEngine(t, 8, 8, 0, 0, 2)

	pal, err := resource.NewPalette(4)
	require.NoError(t, err)
	defer pal.Delete()
	require.NoError(t, pal.SetColor(0, 10, 10, 10))
	require.NoError(t, pal.SetColor(1, 20, 20, 20))
	seq, err := resource.NewCycle("water", []resource.ColorStrip{{Delay: 1, First: 0, Count: 2, Dir: true}})
	require.NoError(t, err)
	defer seq.Delete()

	assert.Equal(t, 0, e.AvailableAnimation())
	require.NoError(t, e.SetPaletteAnimation(0, pal, seq, false))
	assert.Equal(t, 1, e.AvailableAnimation())
	running, err := e.AnimationState(0)
	require.NoError(t, err)
	assert.True(t, running)

	require.NoError(t, e.UpdateFrame(1))
	c, _ := pal.Color(0)
	assert.Equal(t, resource.RGB(10, 10, 10), c, "the first frame arms the timer")

	require.NoError(t, e.UpdateFrame(2))
	c, _ = pal.Color(0)
	assert.Equal(t, resource.RGB(20, 20, 20), c)

	require.NoError(t, e.DisablePaletteAnimation(0))
	running, _ = e.AnimationState(0)
	assert.False(t, running)
	require.NoError(t, e.UpdateFrame(3))
	c, _ = pal.Color(0)
	assert.Equal(t, resource.RGB(20, 20, 20), c, "disabled animations leave the palette alone")

	assert.ErrorIs(t, e.SetPaletteAnimation(2, pal, seq, false), errcode.ErrIdxAnimation)
	assert.ErrorIs(t, e.SetAnimationDelay(1, 0, 5), errcode.ErrRefSequence)
	frames, _ := resource.NewSequence("frames", 0, []resource.SequenceFrame{{Index: 1, Delay: 1}})
	defer frames.Delete()
	assert.ErrorIs(t, e.SetPaletteAnimation(0, pal, frames, false), errcode.ErrRefSequence)
}

func TestPaletteAnimationRejectsOversizedStrip(t *testing.T) {
	e := newEngine(t, 8, 8, 0, 0, 1)
	pal, err := resource.NewPalette(16)
	require.NoError(t, err)
	defer pal.Delete()
	seq, err := resource.NewCycle("c", []resource.ColorStrip{{Delay: 1, First: 8, Count: 16}})
	require.NoError(t, err)
	defer seq.Delete()

	assert.ErrorIs(t, e.SetPaletteAnimation(0, pal, seq, false), errcode.ErrIdxPicture)
	require.NotPanics(t, func() {
		require.NoError(t, e.UpdateFrame(1))
		require.NoError(t, e.UpdateFrame(2))
	})
}

func TestPaletteAnimationStopsOnDelete(t *testing.T) {
	e := newEngine(t, 8, 8, 0, 0, 1)
	pal, _ := resource.NewPalette(4)
	seq, _ := resource.NewCycle("c", []resource.ColorStrip{{Delay: 1, Count: 2}})
	defer seq.Delete()

	before := e.NumObjects()
	require.NoError(t, e.SetPaletteAnimation(0, pal, seq, true))
	require.NoError(t, pal.Delete())
	require.NoError(t, e.UpdateFrame(1))

	running, _ := e.AnimationState(0)
	assert.False(t, running)
	assert.Equal(t, before-1, e.NumObjects())
}

func TestSpriteAnimation(t *testing.T) {
	e := newEngine(t, 32, 32, 0, 1, 0)
	atlas, err := resource.NewBitmap(24, 8, 8)
	require.NoError(t, err)
	ss, err := resource.NewSpriteset(atlas, []resource.SpriteData{
		{Name: "walk0", W: 8, H: 8},
		{Name: "walk1", X: 8, W: 8, H: 8},
		{Name: "walk2", X: 16, W: 8, H: 8},
	})
	require.NoError(t, err)
	defer ss.Delete()
	seq, err := resource.NewSpriteSequence("walk", ss, "walk", 2)
	require.NoError(t, err)
	defer seq.Delete()

	require.NoError(t, e.ConfigSprite(0, ss, 0))
	require.NoError(t, e.SetSpriteAnimation(0, seq, 1))

	var pictures []int
	for range 7 {
		require.NoError(t, e.UpdateFrame(0))
		p, err := e.SpritePicture(0)
		require.NoError(t, err)
		pictures = append(pictures, p)
	}
	assert.Equal(t, []int{0, 0, 1, 1, 2, 2, 2}, pictures)
	done, err := e.SpriteAnimationDone(0)
	require.NoError(t, err)
	assert.True(t, done)

	require.NoError(t, e.DisableSpriteAnimation(0))
	assert.ErrorIs(t, e.SetSpriteAnimation(0, nil, 0), errcode.ErrRefSequence)
}

func TestSpriteAnimationFrameRange(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	e, err := tilengine.Init(16, 16, 0, 1, 0, tilengine.WithLogger(logger))
	require.NoError(t, err)
	defer e.Deinit()

	atlas, err := resource.NewBitmap(16, 8, 8)
	require.NoError(t, err)
	big, err := resource.NewSpriteset(atlas, []resource.SpriteData{
		{Name: "a", W: 8, H: 8},
		{Name: "b", X: 8, W: 8, H: 8},
	})
	require.NoError(t, err)
	defer big.Delete()

	past, err := resource.NewSequence("past", 0, []resource.SequenceFrame{{Index: 0, Delay: 1}, {Index: 5, Delay: 1}})
	require.NoError(t, err)
	defer past.Delete()
	require.NoError(t, e.ConfigSprite(0, big, 0))
	assert.ErrorIs(t, e.SetSpriteAnimation(0, past, 0), errcode.ErrIdxPicture)
	done, err := e.SpriteAnimationDone(0)
	require.NoError(t, err)
	assert.True(t, done, "a rejected sequence is not played")

	// a spriteset swapped under a running animation is reported, not fatal
	seq, err := resource.NewSequence("ab", 0, []resource.SequenceFrame{{Index: 0, Delay: 1}, {Index: 1, Delay: 1}})
	require.NoError(t, err)
	defer seq.Delete()
	require.NoError(t, e.SetSpriteAnimation(0, seq, 0))
	require.NoError(t, e.SetSpriteSet(0, atlasOf(t, 1)))
	buf.Reset()
	for f := 1; f <= 4; f++ {
		require.NoError(t, e.UpdateFrame(f))
	}
	assert.Contains(t, buf.String(), "sprite animation frame skipped")
}

// atlasOf returns a spriteset of n 8x8 pictures.
func atlasOf(t *testing.T, n int) *resource.Spriteset {
	t.Helper()
	bmp, err := resource.NewBitmap(8*n, 8, 8)
	require.NoError(t, err)
	data := make([]resource.SpriteData, n)
	for i := range data {
		data[i] = resource.SpriteData{Name: fmt.Sprint(i), X: 8 * i, W: 8, H: 8}
	}
	ss, err := resource.NewSpriteset(bmp, data)
	require.NoError(t, err)
	t.Cleanup(func() { ss.Delete() })
	return ss
}

func TestTilesetAnimation(t *testing.T) {
	e := newEngine(t, 16, 16, 1, 0, 0)

	seq, err := resource.NewSequence("flame", 1, []resource.SequenceFrame{
		{Index: 2, Delay: 1},
		{Index: 1, Delay: 1},
	})
	require.NoError(t, err)
	sp, err := resource.NewSequencePack()
	require.NoError(t, err)
	require.NoError(t, sp.Add(seq))
	ts, err := resource.NewTileset(3, 8, 8, nil, sp, nil)
	require.NoError(t, err)
	tm, err := resource.NewTilemap(1, 1, []resource.Tile{{Index: 1}}, 0, ts)
	require.NoError(t, err)

	require.NoError(t, e.SetLayerTilemap(0, tm))
	require.NoError(t, e.UpdateFrame(1))
	assert.Equal(t, uint16(2), ts.Lookup(1))
	require.NoError(t, e.UpdateFrame(2))
	assert.Equal(t, uint16(1), ts.Lookup(1))
	require.NoError(t, e.UpdateFrame(3))
	assert.Equal(t, uint16(2), ts.Lookup(1))
}
