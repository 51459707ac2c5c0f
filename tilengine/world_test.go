package tilengine_test

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valerio/go-tilengine/tilengine"
	"github.com/valerio/go-tilengine/tilengine/errcode"
	"github.com/valerio/go-tilengine/tilengine/loader"
	"github.com/valerio/go-tilengine/tilengine/resource"
)

const worldTSX = `<?xml version="1.0" encoding="UTF-8"?>
<tileset name="tiles" tilewidth="8" tileheight="8" tilecount="2" columns="2">
  <image source="tiles.png" width="16" height="8"/>
</tileset>`

const worldTMX = `<?xml version="1.0" encoding="UTF-8"?>
<map orientation="orthogonal" width="4" height="2" tilewidth="8" tileheight="8" backgroundcolor="#204060">
  <tileset firstgid="1" source="tiles.tsx"/>
  <layer name="sky" width="4" height="2" parallaxx="0.5" parallaxy="0.5">
    <data encoding="csv">2,2,2,2,2,2,2,2</data>
  </layer>
  <layer name="ground" width="4" height="2" offsetx="3">
    <data encoding="csv">0,0,0,0,1,1,1,1</data>
  </layer>
</map>`

// tilesPNG is a 16x8 atlas of two tiles: tile 0 uses color index 1 and
// tile 1 color index 2.
func tilesPNG(t *testing.T) []byte {
	t.Helper()
	pal := color.Palette{
		color.RGBA{0, 0, 0, 0xFF},
		color.RGBA{0xFF, 0, 0, 0xFF},
		color.RGBA{0, 0, 0xFF, 0xFF},
	}
	img := image.NewPaletted(image.Rect(0, 0, 16, 8), pal)
	for y := 0; y < 8; y++ {
		for x := 0; x < 16; x++ {
			img.SetColorIndex(x, y, uint8(x/8+1))
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func worldFiles(t *testing.T) map[string][]byte {
	return map[string][]byte{
		"tiles.tsx": []byte(worldTSX),
		"tiles.png": tilesPNG(t),
		"level.tmx": []byte(worldTMX),
	}
}

func writeDir(t *testing.T, files map[string][]byte) string {
	t.Helper()
	dir := t.TempDir()
	for name, data := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0o644))
	}
	return dir
}

func TestLoadWorld(t *testing.T) {
	e := newEngine(t, 32, 16, 3, 1, 0)
	e.SetLoadPath(writeDir(t, worldFiles(t)))

	require.NoError(t, e.LoadWorld("level.tmx", 1))

	typ, _ := e.LayerType(0)
	assert.Equal(t, tilengine.LayerNone, typ, "layers before first are untouched")
	ground, err := e.LayerTilemap(1)
	require.NoError(t, err)
	require.NotNil(t, ground)
	tile, _ := ground.Tile(1, 0)
	assert.Equal(t, uint16(1), tile.Index, "the topmost map layer is the front layer")
	sky, err := e.LayerTilemap(2)
	require.NoError(t, err)
	tile, _ = sky.Tile(0, 0)
	assert.Equal(t, uint16(2), tile.Index)

	e.SetWorldPosition(10, 4)
	x, y, err := e.LayerPosition(1)
	require.NoError(t, err)
	assert.Equal(t, 7, x, "offsets shift the layer")
	assert.Equal(t, 4, y)
	x, y, _ = e.LayerPosition(2)
	assert.Equal(t, 5, x)
	assert.Equal(t, 2, y)

	require.NoError(t, e.SetLayerParallaxFactor(2, 0, 0))
	x, y, _ = e.LayerPosition(2)
	assert.Equal(t, 0, x)
	assert.Equal(t, 0, y)
	assert.ErrorIs(t, e.SetLayerParallaxFactor(0, 1, 1), errcode.ErrIdxLayer)

	require.NoError(t, e.SetSpriteWorldPosition(0, 20, 10))
	st, _ := e.SpriteState(0)
	assert.Equal(t, 10, st.X)
	assert.Equal(t, 6, st.Y)
	e.SetWorldPosition(0, 0)
	st, _ = e.SpriteState(0)
	assert.Equal(t, 20, st.X)

	require.NoError(t, e.UpdateFrame(1))
	fb := e.FrameBuffer()
	assert.Equal(t, resource.RGB(0, 0, 0xFF), fb.GetPixel(0, 0), "sky shows through empty ground cells")
	assert.Equal(t, resource.RGB(0xFF, 0, 0), fb.GetPixel(0, 8))

	require.NoError(t, e.DisableLayer(2))
	require.NoError(t, e.UpdateFrame(2))
	assert.Equal(t, resource.RGB(0x20, 0x40, 0x60), fb.GetPixel(0, 0), "map background color")
}

func TestLoadWorldErrors(t *testing.T) {
	e := newEngine(t, 32, 16, 2, 0, 0)
	e.SetLoadPath(writeDir(t, worldFiles(t)))
	before := e.NumObjects()

	assert.ErrorIs(t, e.LoadWorld("missing.tmx", 0), errcode.ErrFileNotFound)
	assert.ErrorIs(t, e.LoadWorld("level.tmx", 1), errcode.ErrIdxLayer)
	assert.Equal(t, before, e.NumObjects(), "failed loads release everything")
	assert.ErrorIs(t, e.SetSpriteWorldPosition(0, 0, 0), errcode.ErrIdxSprite)
}

func TestReleaseWorld(t *testing.T) {
	e := newEngine(t, 32, 16, 2, 0, 0)
	e.SetLoadPath(writeDir(t, worldFiles(t)))
	before := e.NumObjects()

	require.NoError(t, e.LoadWorld("level.tmx", 0))
	assert.Greater(t, e.NumObjects(), before)

	e.ReleaseWorld()
	assert.Equal(t, before, e.NumObjects())
	typ, _ := e.LayerType(0)
	assert.Equal(t, tilengine.LayerNone, typ)
}

func TestResourcePack(t *testing.T) {
	w := loader.NewPackWriter("secret")
	for name, data := range worldFiles(t) {
		w.Add(name, data)
	}
	file := filepath.Join(t.TempDir(), "assets.pak")
	f, err := os.Create(file)
	require.NoError(t, err)
	_, err = w.WriteTo(f)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	e := newEngine(t, 32, 16, 2, 0, 0)
	e.SetLoadPath(t.TempDir())
	assert.ErrorIs(t, e.OpenResourcePack(file+".missing", "secret"), errcode.ErrFileNotFound)

	require.NoError(t, e.OpenResourcePack(file, "secret"))
	bmp, err := e.LoadBitmap("tiles.png")
	require.NoError(t, err)
	defer bmp.Delete()
	assert.Equal(t, 16, bmp.Width())
	require.NoError(t, e.LoadWorld("level.tmx", 0))

	e.CloseResourcePack()
	_, err = e.LoadBitmap("tiles.png")
	assert.ErrorIs(t, err, errcode.ErrFileNotFound)
}
