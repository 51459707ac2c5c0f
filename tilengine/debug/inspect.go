package debug

import (
	"fmt"
	"image"
	"image/color"

	"github.com/valerio/go-tilengine/tilengine"
	"github.com/valerio/go-tilengine/tilengine/resource"
)

// SpriteInfo describes an enabled sprite slot.
type SpriteInfo struct {
	Index     int
	X, Y      int
	W, H      int
	Picture   int
	Flags     tilengine.TileFlags
	Collision bool
}

func (s SpriteInfo) String() string {
	status := "-"
	if s.Collision {
		status = "HIT"
	}
	return fmt.Sprintf("Sprite %2d: X=%4d Y=%4d %3dx%-3d Picture=%3d Flags=0x%04X [%s]",
		s.Index, s.X, s.Y, s.W, s.H, s.Picture, uint16(s.Flags), status)
}

// Sprites lists the enabled sprites of e in slot order.
func Sprites(e *tilengine.Engine) []SpriteInfo {
	var sprites []SpriteInfo
	for n := 0; n < e.NumSprites(); n++ {
		st, err := e.SpriteState(n)
		if err != nil || !st.Enabled {
			continue
		}
		sprites = append(sprites, SpriteInfo{
			Index:     n,
			X:         st.X,
			Y:         st.Y,
			W:         st.W,
			H:         st.H,
			Picture:   st.Index,
			Flags:     st.Flags,
			Collision: st.Collision,
		})
	}
	return sprites
}

// FormatSummary returns a one line count of the enabled sprites.
func FormatSummary(e *tilengine.Engine) string {
	sprites := Sprites(e)
	hits := 0
	for _, s := range sprites {
		if s.Collision {
			hits++
		}
	}
	return fmt.Sprintf("Frame: %d | Active Sprites: %d/%d | Collisions: %d",
		e.Frame(), len(sprites), e.NumSprites(), hits)
}

// TileSheet draws every tile of ts in a grid perRow tiles wide, colored
// with the tileset palette. Color 0 stays transparent.
func TileSheet(ts *resource.Tileset, perRow int) (*image.NRGBA, error) {
	if ts == nil || ts.Deleted() {
		return nil, fmt.Errorf("tile sheet: invalid tileset")
	}
	if ts.IsImageTileset() {
		return nil, fmt.Errorf("tile sheet: image tilesets are not supported")
	}
	perRow = max(perRow, 1)
	tw, th := ts.TileWidth(), ts.TileHeight()
	rows := (ts.NumTiles() + perRow - 1) / perRow
	img := image.NewNRGBA(image.Rect(0, 0, perRow*tw, rows*th))
	colors := ts.Palette().Entries()

	for i := 0; i < ts.NumTiles(); i++ {
		ox, oy := (i%perRow)*tw, (i/perRow)*th
		pixels := ts.Tile(i)
		for y := 0; y < th; y++ {
			for x := 0; x < tw; x++ {
				index := pixels[y*tw+x]
				if index == 0 || int(index) >= len(colors) {
					continue
				}
				r, g, b := resource.Channels(colors[index])
				img.SetNRGBA(ox+x, oy+y, color.NRGBA{R: r, G: g, B: b, A: 0xFF})
			}
		}
	}
	return img, nil
}
