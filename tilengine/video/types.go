package video

import "github.com/valerio/go-tilengine/tilengine/resource"

// LayerType is the content bound to a layer.
type LayerType int

const (
	LayerNone LayerType = iota
	LayerTile
	LayerObject
	LayerBitmap
)

func (t LayerType) String() string {
	switch t {
	case LayerTile:
		return "tile"
	case LayerObject:
		return "object"
	case LayerBitmap:
		return "bitmap"
	}
	return "none"
}

// TileInfo describes the tile found at a layer position.
type TileInfo struct {
	Index   uint16
	Flags   resource.TileFlags
	Row     int
	Col     int
	XOffset int
	YOffset int
	Color   uint8
	Type    uint8
	Empty   bool
}

// SpriteState is a snapshot of a sprite slot.
type SpriteState struct {
	X, Y      int
	W, H      int
	Flags     resource.TileFlags
	Palette   *resource.Palette
	Spriteset *resource.Spriteset
	Index     int
	Enabled   bool
	Collision bool
}
