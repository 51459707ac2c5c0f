package resource

import "github.com/valerio/go-tilengine/tilengine/errcode"

// TileAttribute holds the user type and priority bit of a tileset entry.
type TileAttribute struct {
	Type     uint8
	Priority bool
}

// TileImage is one entry of an image tileset.
type TileImage struct {
	Bitmap *Bitmap
	ID     uint16
	Type   uint8
}

// Tileset is an indexed collection of equally sized tiles sharing one
// palette, or an image tileset whose entries are individual bitmaps.
//
// Entry 0 is reserved for empty tilemap cells: loaders create tilesets with
// one more entry than the source image holds.
type Tileset struct {
	handle
	numTiles   int
	tileWidth  int
	tileHeight int
	palette    *Palette
	sp         *SequencePack
	attributes []TileAttribute
	pixels     []byte

	images  []TileImage
	imageID map[uint16]int

	// frames remaps tile indices for tileset animations
	frames []uint16

	owns bool
}

// NewTileset creates a tileset of numTiles blank tiles. attributes may be
// nil; otherwise it must hold one entry per tile.
func NewTileset(numTiles, tileWidth, tileHeight int, palette *Palette, sp *SequencePack, attributes []TileAttribute) (*Tileset, error) {
	if numTiles <= 0 || tileWidth <= 0 || tileHeight <= 0 {
		return nil, errcode.New("CreateTileset", errcode.WrongSize)
	}
	if attributes != nil && len(attributes) != numTiles {
		return nil, errcode.New("CreateTileset", errcode.WrongSize)
	}
	if palette != nil && palette.Deleted() {
		return nil, refError("CreateTileset", KindPalette)
	}
	if palette == nil {
		var err error
		if palette, err = NewPalette(MaxPaletteEntries); err != nil {
			return nil, err
		}
	}

	ts := &Tileset{
		numTiles:   numTiles,
		tileWidth:  tileWidth,
		tileHeight: tileHeight,
		palette:    palette,
		sp:         sp,
		attributes: make([]TileAttribute, numTiles),
		pixels:     make([]byte, numTiles*tileWidth*tileHeight),
	}
	copy(ts.attributes, attributes)
	ts.ResetFrames()
	ts.register(KindTileset, len(ts.pixels)+numTiles*4)
	return ts, nil
}

// NewImageTileset creates a tileset whose entries are whole bitmaps. Tile
// width and height report the largest image.
func NewImageTileset(images []TileImage) (*Tileset, error) {
	if len(images) == 0 {
		return nil, errcode.New("CreateImageTileset", errcode.WrongSize)
	}

	ts := &Tileset{
		numTiles: len(images) + 1,
		images:   make([]TileImage, len(images)+1),
		imageID:  make(map[uint16]int, len(images)),
	}
	size := 0
	for i, img := range images {
		if img.Bitmap == nil || img.Bitmap.Deleted() {
			return nil, refError("CreateImageTileset", KindBitmap)
		}
		ts.images[i+1] = img
		ts.imageID[img.ID] = i + 1
		ts.tileWidth = max(ts.tileWidth, img.Bitmap.Width())
		ts.tileHeight = max(ts.tileHeight, img.Bitmap.Height())
		if ts.palette == nil {
			ts.palette = img.Bitmap.Palette()
		}
		size += img.Bitmap.Width() * img.Bitmap.Height()
	}
	ts.attributes = make([]TileAttribute, ts.numTiles)
	for i, img := range images {
		ts.attributes[i+1].Type = img.Type
	}
	ts.ResetFrames()
	ts.register(KindTileset, size)
	return ts, nil
}

func (ts *Tileset) check(op string) error {
	if ts == nil || ts.deleted {
		return refError(op, KindTileset)
	}
	return nil
}

// Clone creates a deep copy of the tile data. The palette and sequence pack
// are shared with the source, as are image tileset bitmaps.
func (ts *Tileset) Clone() (*Tileset, error) {
	if err := ts.check("CloneTileset"); err != nil {
		return nil, err
	}
	if ts.images != nil {
		return NewImageTileset(ts.images[1:])
	}
	clone, err := NewTileset(ts.numTiles, ts.tileWidth, ts.tileHeight, ts.palette, ts.sp, ts.attributes)
	if err != nil {
		return nil, err
	}
	copy(clone.pixels, ts.pixels)
	return clone, nil
}

// SetPixels copies a tile's pixel data from src, reading rows pitch bytes
// apart.
func (ts *Tileset) SetPixels(entry int, src []byte, pitch int) error {
	if err := ts.check("SetTilesetPixels"); err != nil {
		return err
	}
	if ts.images != nil {
		return errcode.New("SetTilesetPixels", errcode.Unsupported)
	}
	if entry < 0 || entry >= ts.numTiles {
		return errcode.New("SetTilesetPixels", errcode.IdxPicture)
	}
	if src == nil {
		return errcode.New("SetTilesetPixels", errcode.NullPointer)
	}
	if pitch < ts.tileWidth || len(src) < pitch*(ts.tileHeight-1)+ts.tileWidth {
		return errcode.New("SetTilesetPixels", errcode.WrongSize)
	}
	dst := ts.Tile(entry)
	for y := 0; y < ts.tileHeight; y++ {
		copy(dst[y*ts.tileWidth:(y+1)*ts.tileWidth], src[y*pitch:])
	}
	return nil
}

func (ts *Tileset) TileWidth() int  { return ts.tileWidth }
func (ts *Tileset) TileHeight() int { return ts.tileHeight }
func (ts *Tileset) NumTiles() int   { return ts.numTiles }

// Palette returns the tileset palette.
func (ts *Tileset) Palette() *Palette {
	if ts == nil {
		return nil
	}
	return ts.palette
}

// SequencePack returns the tile animations bundled with the tileset, if any.
func (ts *Tileset) SequencePack() *SequencePack {
	if ts == nil {
		return nil
	}
	return ts.sp
}

// Attribute returns the attributes of an entry.
func (ts *Tileset) Attribute(entry int) (TileAttribute, error) {
	if err := ts.check("GetTileAttribute"); err != nil {
		return TileAttribute{}, err
	}
	if entry < 0 || entry >= ts.numTiles {
		return TileAttribute{}, errcode.New("GetTileAttribute", errcode.IdxPicture)
	}
	return ts.attributes[entry], nil
}

// Priority reports the priority attribute of an entry without checks.
func (ts *Tileset) Priority(entry int) bool {
	return entry >= 0 && entry < len(ts.attributes) && ts.attributes[entry].Priority
}

// Tile returns the pixel data of an entry, row-major with TileWidth bytes
// per row.
func (ts *Tileset) Tile(entry int) []byte {
	size := ts.tileWidth * ts.tileHeight
	return ts.pixels[entry*size : (entry+1)*size]
}

// IsImageTileset reports whether entries are standalone bitmaps.
func (ts *Tileset) IsImageTileset() bool {
	return ts.images != nil
}

// Image returns the bitmap entry with the given image id.
func (ts *Tileset) Image(id uint16) (TileImage, bool) {
	entry, ok := ts.imageID[id]
	if !ok {
		return TileImage{}, false
	}
	return ts.images[entry], true
}

// Lookup resolves a tile index through the active tileset animations.
func (ts *Tileset) Lookup(index uint16) uint16 {
	if int(index) < len(ts.frames) {
		return ts.frames[index]
	}
	return index
}

// SetFrame makes every cell with index target display the tile index instead.
func (ts *Tileset) SetFrame(target, index uint16) {
	if int(target) < len(ts.frames) {
		ts.frames[target] = index
	}
}

// ResetFrames removes every animation substitution.
func (ts *Tileset) ResetFrames() {
	if ts.frames == nil {
		ts.frames = make([]uint16, ts.numTiles)
	}
	for i := range ts.frames {
		ts.frames[i] = uint16(i)
	}
}

// OwnResources makes Delete release the palette and sequence pack too.
// Image tilesets also release their bitmaps.
func (ts *Tileset) OwnResources() {
	ts.owns = true
}

// Delete releases the tileset. The palette, sequence pack and images are
// left alive unless the tileset owns them.
func (ts *Tileset) Delete() error {
	if err := ts.check("DeleteTileset"); err != nil {
		return err
	}
	ts.release()
	ts.pixels = nil
	if !ts.owns {
		return nil
	}
	if ts.sp != nil && !ts.sp.Deleted() {
		_ = ts.sp.Delete()
	}
	for _, img := range ts.images {
		if img.Bitmap != nil && !img.Bitmap.Deleted() {
			_ = img.Bitmap.Delete()
		}
	}
	if ts.images == nil && ts.palette != nil && !ts.palette.Deleted() {
		return ts.palette.Delete()
	}
	return nil
}
