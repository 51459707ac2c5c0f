package tilengine_test

import (
	"bytes"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valerio/go-tilengine/tilengine"
	"github.com/valerio/go-tilengine/tilengine/errcode"
	"github.com/valerio/go-tilengine/tilengine/resource"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newEngine(t *testing.T, w, h, layers, sprites, anims int) *tilengine.Engine {
	t.Helper()
	e, err := tilengine.Init(w, h, layers, sprites, anims, tilengine.WithLogger(quietLogger()))
	require.NoError(t, err)
	t.Cleanup(e.Deinit)
	return e
}

// solidTilemap returns a rows x cols map drawn with an 8x8 tile of color c
// at the given cells.
func solidTilemap(t *testing.T, c uint32, rows, cols int, cells ...[2]int) *resource.Tilemap {
	t.Helper()
	pal, err := resource.NewPalette(2)
	require.NoError(t, err)
	r, g, b := resource.Channels(c)
	require.NoError(t, pal.SetColor(1, r, g, b))
	ts, err := resource.NewTileset(2, 8, 8, pal, nil, nil)
	require.NoError(t, err)
	require.NoError(t, ts.SetPixels(1, bytes.Repeat([]byte{1}, 64), 8))

	tm, err := resource.NewTilemap(rows, cols, nil, 0, ts)
	require.NoError(t, err)
	for _, cell := range cells {
		require.NoError(t, tm.SetTile(cell[0], cell[1], resource.Tile{Index: 1}))
	}
	return tm
}

func TestInit(t *testing.T) {
	_, err := tilengine.Init(0, 240, 1, 1, 1)
	assert.ErrorIs(t, err, errcode.ErrWrongSize)
	_, err = tilengine.Init(400, 240, 1, 1, -1)
	assert.ErrorIs(t, err, errcode.ErrWrongSize)

	e := newEngine(t, 400, 240, 4, 16, 2)
	assert.Same(t, e, tilengine.Context())
	assert.Equal(t, 400, e.Width())
	assert.Equal(t, 240, e.Height())
	assert.Equal(t, 4, e.NumLayers())
	assert.Equal(t, 16, e.NumSprites())
	assert.Equal(t, 0x000F02, e.Version())
	assert.Equal(t, 400, e.FrameBuffer().Width())
}

func TestContexts(t *testing.T) {
	a := newEngine(t, 8, 8, 1, 1, 1)
	b := newEngine(t, 16, 16, 1, 1, 1)
	assert.Same(t, b, tilengine.Context(), "the last engine becomes current")

	tilengine.SetContext(a)
	assert.Same(t, a, tilengine.Context())

	tilengine.DeleteContext(b)
	assert.Same(t, a, tilengine.Context(), "deleting another engine keeps the current one")
	tilengine.DeleteContext(a)
	assert.Nil(t, tilengine.Context())

	assert.ErrorIs(t, a.UpdateFrame(1), errcode.ErrNullPointer)
	assert.ErrorIs(t, a.SetLayerPosition(0, 1, 1), errcode.ErrNullPointer)
	assert.Equal(t, 0, a.Width())
}

func TestLastError(t *testing.T) {
	e := newEngine(t, 8, 8, 1, 1, 1)

	err := e.SetLayerPosition(3, 0, 0)
	assert.ErrorIs(t, err, errcode.ErrIdxLayer)
	assert.Equal(t, errcode.IdxLayer, e.LastError())

	require.NoError(t, e.SetLayerPosition(0, 0, 0))
	assert.Equal(t, errcode.OK, e.LastError())

	e.SetLastError(errcode.WrongFormat)
	assert.Equal(t, errcode.WrongFormat, e.LastError())
	assert.Equal(t, "Resource file has invalid format", e.LastError().String())
}

func TestErrorLogging(t *testing.T) {
	var buf bytes.Buffer
	e, err := tilengine.Init(8, 8, 1, 1, 1, tilengine.WithLogger(slog.New(slog.NewTextHandler(&buf, nil))))
	require.NoError(t, err)
	defer e.Deinit()

	_ = e.EnableSprite(4)
	assert.Contains(t, buf.String(), "EnableSprite")

	buf.Reset()
	e.SetLogLevel(tilengine.LogNone)
	_ = e.EnableSprite(4)
	assert.Empty(t, buf.String())
}

func TestLayerTilemapRoundTrip(t *testing.T) {
	e := newEngine(t, 64, 64, 2, 0, 0)
	tm := solidTilemap(t, resource.RGB(255, 0, 0), 4, 4)

	require.NoError(t, e.SetLayerTilemap(1, tm))
	got, err := e.LayerTilemap(1)
	require.NoError(t, err)
	assert.Same(t, tm, got)
	typ, err := e.LayerType(1)
	require.NoError(t, err)
	assert.Equal(t, tilengine.LayerTile, typ)

	typ, err = e.LayerType(0)
	require.NoError(t, err)
	assert.Equal(t, tilengine.LayerNone, typ)
	empty, err := e.LayerTilemap(0)
	require.NoError(t, err)
	assert.Nil(t, empty)

	_, err = e.LayerTilemap(2)
	assert.ErrorIs(t, err, errcode.ErrIdxLayer)
}

func TestSpriteDisableEnable(t *testing.T) {
	e := newEngine(t, 64, 64, 0, 4, 0)
	atlas, err := resource.NewBitmap(16, 8, 8)
	require.NoError(t, err)
	ss, err := resource.NewSpriteset(atlas, []resource.SpriteData{
		{Name: "a", W: 8, H: 8},
		{Name: "b", X: 8, W: 8, H: 8},
	})
	require.NoError(t, err)

	require.NoError(t, e.ConfigSprite(2, ss, 0))
	require.NoError(t, e.SetSpritePicture(2, 1))
	require.NoError(t, e.SetSpritePosition(2, 30, 40))
	require.NoError(t, e.DisableSprite(2))
	assert.Equal(t, 0, e.AvailableSprite())

	require.NoError(t, e.EnableSprite(2))
	st, err := e.SpriteState(2)
	require.NoError(t, err)
	assert.Equal(t, 1, st.Index)
	assert.Equal(t, 30, st.X)
	assert.Equal(t, 40, st.Y)
	assert.True(t, st.Enabled)

	assert.ErrorIs(t, e.EnableSprite(0), errcode.ErrRefSpriteset)
	assert.ErrorIs(t, e.SetSpritePicture(2, 5), errcode.ErrIdxPicture)
	assert.ErrorIs(t, e.DisableSprite(9), errcode.ErrIdxSprite)
}

func TestRasterCallbackLines(t *testing.T) {
	e := newEngine(t, 40, 24, 1, 1, 1)

	var lines []int
	e.SetRasterCallback(func(line int) { lines = append(lines, line) })
	require.NoError(t, e.UpdateFrame(1))

	require.Len(t, lines, 24)
	for i, line := range lines {
		assert.Equal(t, i, line)
	}
}

func TestUpdateFrameNumbering(t *testing.T) {
	e := newEngine(t, 8, 8, 0, 0, 0)
	var frames []int
	e.SetFrameCallback(func(frame int) { frames = append(frames, frame) })

	require.NoError(t, e.UpdateFrame(0))
	require.NoError(t, e.UpdateFrame(0))
	require.NoError(t, e.UpdateFrame(10))
	require.NoError(t, e.UpdateFrame(0))

	assert.Equal(t, []int{1, 2, 10, 11}, frames)
	assert.Equal(t, 11, e.Frame())
}

func TestPaletteColors(t *testing.T) {
	p, err := resource.NewPalette(4)
	require.NoError(t, err)
	defer p.Delete()

	require.NoError(t, p.SetColor(1, 200, 10, 128))
	c, err := p.Color(1)
	require.NoError(t, err)
	assert.Equal(t, resource.RGB(200, 10, 128), c)

	require.NoError(t, p.AddColor(100, 100, 100, 1, 1))
	c, _ = p.Color(1)
	assert.Equal(t, resource.RGB(255, 110, 228), c)

	require.NoError(t, p.SubColor(120, 200, 0, 1, 1))
	c, _ = p.Color(1)
	assert.Equal(t, resource.RGB(135, 0, 228), c)
}

func TestDoubleDelete(t *testing.T) {
	tm := solidTilemap(t, resource.RGB(1, 2, 3), 2, 2)
	ts := tm.Tileset()

	before := newEngine(t, 8, 8, 0, 0, 0).NumObjects()
	require.NoError(t, tm.Delete())
	assert.ErrorIs(t, tm.Delete(), errcode.ErrRefTilemap)
	require.NoError(t, ts.Delete())
	assert.ErrorIs(t, ts.Delete(), errcode.ErrRefTileset)

	e := newEngine(t, 8, 8, 1, 0, 0)
	assert.Equal(t, before-2, e.NumObjects())
	assert.ErrorIs(t, e.SetLayerTilemap(0, tm), errcode.ErrRefTilemap)
}

func TestTwoLayerScene(t *testing.T) {
	e := newEngine(t, 400, 240, 2, 1, 1)

	const sentinel = 0xDEADBEEF
	buf := make([]uint32, 400*240)
	for i := range buf {
		buf[i] = sentinel
	}
	require.NoError(t, e.SetRenderTarget(buf, 400*4))

	red, green := resource.RGB(255, 0, 0), resource.RGB(0, 255, 0)
	require.NoError(t, e.SetLayerTilemap(0, solidTilemap(t, red, 30, 50, [2]int{0, 0}, [2]int{0, 1})))
	require.NoError(t, e.SetLayerTilemap(1, solidTilemap(t, green, 30, 50, [2]int{0, 1}, [2]int{0, 2})))
	e.SetBGColor(115, 48, 57)

	require.NoError(t, e.UpdateFrame(1))

	bg := resource.RGB(115, 48, 57)
	for y := 0; y < 240; y++ {
		for x := 0; x < 400; x++ {
			c := buf[y*400+x]
			require.NotEqual(t, uint32(sentinel), c)
			want := bg
			switch {
			case y < 8 && x < 16:
				want = red
			case y < 8 && x < 24:
				want = green
			}
			require.Equal(t, want, c, "pixel %d,%d", x, y)
		}
	}
}

func TestCollisionDisjointPixels(t *testing.T) {
	e := newEngine(t, 64, 16, 0, 2, 0)

	// "left" is opaque on columns 0-3, "right" on columns 4-7
	atlas, err := resource.NewBitmap(16, 8, 8)
	require.NoError(t, err)
	for y := 0; y < 8; y++ {
		for x := 0; x < 4; x++ {
			require.NoError(t, atlas.SetPixel(x, y, 1))
			require.NoError(t, atlas.SetPixel(12+x, y, 1))
		}
	}
	ss, err := resource.NewSpriteset(atlas, []resource.SpriteData{
		{Name: "left", W: 8, H: 8},
		{Name: "right", X: 8, W: 8, H: 8},
	})
	require.NoError(t, err)

	for n, picture := range []int{0, 1} {
		require.NoError(t, e.ConfigSprite(n, ss, 0))
		require.NoError(t, e.SetSpritePicture(n, picture))
		require.NoError(t, e.EnableSpriteCollision(n, true))
	}
	require.NoError(t, e.SetSpritePosition(0, 20, 4))
	require.NoError(t, e.SetSpritePosition(1, 24, 4))
	require.NoError(t, e.UpdateFrame(1))

	for n := range 2 {
		hit, err := e.SpriteCollision(n)
		require.NoError(t, err)
		assert.False(t, hit, "sprite %d", n)
	}

	require.NoError(t, e.SetSpritePosition(1, 18, 4))
	require.NoError(t, e.UpdateFrame(2))
	for n := range 2 {
		hit, _ := e.SpriteCollision(n)
		assert.True(t, hit, "sprite %d", n)
	}
}
