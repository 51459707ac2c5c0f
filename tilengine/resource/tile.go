package resource

import "github.com/valerio/go-tilengine/tilengine/bit"

// TileFlags holds the per-tile and per-sprite attribute bits.
type TileFlags uint16

const (
	FlagNone     TileFlags = 0
	FlagFlipX    TileFlags = 1 << 15 // horizontal flip
	FlagFlipY    TileFlags = 1 << 14 // vertical flip
	FlagRotate   TileFlags = 1 << 13 // row/column swap (90 degree rotation)
	FlagPriority TileFlags = 1 << 12 // tile or sprite in front of regular sprites
	FlagMasked   TileFlags = 1 << 11 // sprite hidden inside the mask region
)

// Has reports whether all bits of mask are set.
func (f TileFlags) Has(mask TileFlags) bool {
	return f&mask == mask
}

// Tile is one tilemap cell. Index 0 is an empty cell; any other index
// references the tileset entry with the same number.
type Tile struct {
	Index uint16
	Flags TileFlags
}

// Value packs the tile as flags in the high half and index in the low half.
func (t Tile) Value() uint32 {
	return bit.Combine(uint16(t.Flags), t.Index)
}

// TileFromValue unpacks a tile packed with Value.
func TileFromValue(v uint32) Tile {
	return Tile{Index: bit.Low(v), Flags: TileFlags(bit.High(v))}
}

// Empty reports whether the cell draws nothing.
func (t Tile) Empty() bool {
	return t.Index == 0
}

// TransformPixel maps a destination pixel of a w×h tile to the source
// pixel according to the flip and rotate flags. Flips apply to the
// destination coordinates before the row/column swap, matching the Tiled
// diagonal flip convention.
func TransformPixel(flags TileFlags, x, y, w, h int) (int, int) {
	if flags.Has(FlagFlipX) {
		x = w - 1 - x
	}
	if flags.Has(FlagFlipY) {
		y = h - 1 - y
	}
	if flags.Has(FlagRotate) {
		x, y = y, x
	}
	return x, y
}
