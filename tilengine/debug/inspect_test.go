package debug

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valerio/go-tilengine/tilengine"
	"github.com/valerio/go-tilengine/tilengine/resource"
)

func TestTileSheet(t *testing.T) {
	pal, err := resource.NewPalette(4)
	require.NoError(t, err)
	defer pal.Delete()
	require.NoError(t, pal.SetColor(1, 0xFF, 0, 0))
	require.NoError(t, pal.SetColor(2, 0, 0, 0xFF))

	ts, err := resource.NewTileset(3, 2, 2, pal, nil, nil)
	require.NoError(t, err)
	defer ts.Delete()
	require.NoError(t, ts.SetPixels(1, []byte{1, 1, 1, 1}, 2))
	require.NoError(t, ts.SetPixels(2, []byte{2, 0, 0, 2}, 2))

	img, err := TileSheet(ts, 2)
	require.NoError(t, err)
	assert.Equal(t, 4, img.Bounds().Dx())
	assert.Equal(t, 4, img.Bounds().Dy())

	assert.Zero(t, img.NRGBAAt(0, 0).A, "tile 0 is blank")
	assert.Equal(t, uint8(0xFF), img.NRGBAAt(2, 0).R)
	assert.Equal(t, uint8(0xFF), img.NRGBAAt(0, 2).B)
	assert.Zero(t, img.NRGBAAt(1, 2).A, "color 0 is transparent")

	require.NoError(t, ts.Delete())
	_, err = TileSheet(ts, 2)
	assert.Error(t, err)
}

func TestSprites(t *testing.T) {
	e, err := tilengine.Init(32, 32, 1, 4, 0, tilengine.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	require.NoError(t, err)
	defer e.Deinit()

	bmp, err := resource.NewBitmap(8, 8, 8)
	require.NoError(t, err)
	require.NoError(t, bmp.SetPixel(0, 0, 1))
	ss, err := resource.NewSpriteset(bmp, []resource.SpriteData{{Name: "a", W: 8, H: 8}})
	require.NoError(t, err)
	defer ss.Delete()

	require.NoError(t, e.ConfigSprite(2, ss, tilengine.FlagFlipX))
	require.NoError(t, e.SetSpritePosition(2, 5, 6))

	sprites := Sprites(e)
	require.Len(t, sprites, 1)
	assert.Equal(t, 2, sprites[0].Index)
	assert.Equal(t, 5, sprites[0].X)
	assert.Equal(t, 8, sprites[0].W)
	assert.Contains(t, sprites[0].String(), "Sprite  2: X=   5 Y=   6")
	assert.Contains(t, sprites[0].String(), "Flags=0x8000")

	assert.Equal(t, "Frame: 0 | Active Sprites: 1/4 | Collisions: 0", FormatSummary(e))
}
