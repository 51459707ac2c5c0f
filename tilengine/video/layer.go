package video

import (
	"github.com/valerio/go-tilengine/tilengine/errcode"
	"github.com/valerio/go-tilengine/tilengine/resource"
)

// layerMode selects how screen pixels map to layer pixels.
type layerMode int

const (
	modeNormal layerMode = iota
	modeScaling
	modeAffine
	modePixelMap
)

type clipRect struct {
	enabled        bool
	x1, y1, x2, y2 int
}

// Layer is an engine-owned background plane. A layer shows one kind of
// content at a time: a tilemap, a bitmap or an object list.
type Layer struct {
	index  int
	width  int // screen size
	height int

	typ     LayerType
	enabled bool
	tileset *resource.Tileset
	tilemap *resource.Tilemap
	bitmap  *resource.Bitmap
	objects *resource.ObjectList
	palette *resource.Palette // overrides the content palette

	hstart, vstart int
	mode           layerMode
	sx, sy         float64
	affine         Affine
	inverse        Matrix
	pixelMap       []PixelMap

	blend    Blend
	columns  []int
	clip     clipRect
	mosaicW  int
	mosaicH  int
	priority bool
	parent   *Layer
}

func newLayer(index, width, height int) *Layer {
	return &Layer{index: index, width: width, height: height, sx: 1, sy: 1}
}

func (l *Layer) Index() int { return l.index }

// Type returns the kind of content bound to the layer. Layers whose
// resources were deleted report LayerNone.
func (l *Layer) Type() LayerType {
	if !l.valid() {
		return LayerNone
	}
	return l.typ
}

// valid reports whether the bound content is still alive.
func (l *Layer) valid() bool {
	switch l.typ {
	case LayerTile:
		return !l.tilemap.Deleted() && !l.tileset.Deleted()
	case LayerBitmap:
		return !l.bitmap.Deleted()
	case LayerObject:
		return !l.objects.Deleted() && !l.tileset.Deleted()
	}
	return false
}

// Visible reports whether the layer draws anything.
func (l *Layer) Visible() bool {
	return l.enabled && l.valid()
}

func (l *Layer) clear() {
	l.tileset, l.tilemap, l.bitmap, l.objects, l.palette = nil, nil, nil, nil, nil
	l.typ = LayerNone
}

// SetTilemap shows tm with its own tileset.
func (l *Layer) SetTilemap(tm *resource.Tilemap) error {
	return l.SetTiles(nil, tm)
}

// SetTiles shows tm drawn with ts. A nil tileset selects the tileset of the
// tilemap.
func (l *Layer) SetTiles(ts *resource.Tileset, tm *resource.Tilemap) error {
	if tm == nil || tm.Deleted() {
		return errcode.New("SetLayer", errcode.RefTilemap)
	}
	if ts == nil {
		ts = tm.Tileset()
	}
	if ts == nil || ts.Deleted() {
		return errcode.New("SetLayer", errcode.RefTileset)
	}
	if ts.IsImageTileset() {
		return errcode.New("SetLayer", errcode.Unsupported)
	}
	l.clear()
	l.typ = LayerTile
	l.tileset = ts
	l.tilemap = tm
	l.enabled = true
	return nil
}

// SetBitmap shows a bitmap.
func (l *Layer) SetBitmap(bmp *resource.Bitmap) error {
	if bmp == nil || bmp.Deleted() {
		return errcode.New("SetLayerBitmap", errcode.RefBitmap)
	}
	l.clear()
	l.typ = LayerBitmap
	l.bitmap = bmp
	l.enabled = true
	return nil
}

// SetObjects shows an object list drawn with the images of ts. Objects
// without a size get the size of their image.
func (l *Layer) SetObjects(list *resource.ObjectList, ts *resource.Tileset) error {
	if list == nil || list.Deleted() {
		return errcode.New("SetLayerObjects", errcode.RefList)
	}
	if ts == nil || ts.Deleted() {
		return errcode.New("SetLayerObjects", errcode.RefTileset)
	}
	objects := list.Objects()
	for i := range objects {
		o := &objects[i]
		if o.Width != 0 && o.Height != 0 {
			continue
		}
		w, h, ok := objectSize(ts, o.GID)
		if ok && o.Flags.Has(resource.FlagRotate) {
			w, h = h, w
		}
		if ok {
			o.Width, o.Height = w, h
		}
	}
	l.clear()
	l.typ = LayerObject
	l.objects = list
	l.tileset = ts
	l.enabled = true
	return nil
}

func objectSize(ts *resource.Tileset, gid int) (int, int, bool) {
	if gid <= 0 {
		return 0, 0, false
	}
	if ts.IsImageTileset() {
		img, ok := ts.Image(uint16(gid))
		if !ok {
			return 0, 0, false
		}
		return img.Bitmap.Width(), img.Bitmap.Height(), true
	}
	if gid >= ts.NumTiles() {
		return 0, 0, false
	}
	return ts.TileWidth(), ts.TileHeight(), true
}

// SetPalette overrides the palette of the layer content. A nil palette
// restores the content palette.
func (l *Layer) SetPalette(p *resource.Palette) error {
	if p != nil && p.Deleted() {
		return errcode.New("SetLayerPalette", errcode.RefPalette)
	}
	l.palette = p
	return nil
}

// Palette returns the palette used to draw the layer.
func (l *Layer) Palette() *resource.Palette {
	if l.palette != nil {
		return l.palette
	}
	switch l.typ {
	case LayerTile:
		return l.tileset.Palette()
	case LayerBitmap:
		return l.bitmap.Palette()
	case LayerObject:
		return l.tileset.Palette()
	}
	return nil
}

func (l *Layer) Tileset() *resource.Tileset    { return l.tileset }
func (l *Layer) Tilemap() *resource.Tilemap    { return l.tilemap }
func (l *Layer) Bitmap() *resource.Bitmap      { return l.bitmap }
func (l *Layer) Objects() *resource.ObjectList { return l.objects }

// SetPosition sets the layer pixel shown at the top-left corner of the
// screen.
func (l *Layer) SetPosition(hstart, vstart int) {
	l.hstart, l.vstart = hstart, vstart
}

// Position returns the effective position, following the parent layer.
func (l *Layer) Position() (int, int) {
	if l.parent != nil {
		return l.parent.hstart, l.parent.vstart
	}
	return l.hstart, l.vstart
}

// SetScaling enlarges (factor > 1) or shrinks the layer.
func (l *Layer) SetScaling(sx, sy float64) error {
	if sx <= 0 || sy <= 0 {
		return errcode.New("SetLayerScaling", errcode.WrongSize)
	}
	l.mode = modeScaling
	l.sx, l.sy = sx, sy
	return nil
}

// SetAffine rotates and scales the layer.
func (l *Layer) SetAffine(a Affine) error {
	if a.Sx == 0 && a.Sy == 0 {
		a.Sx, a.Sy = 1, 1
	}
	l.mode = modeAffine
	l.affine = a
	l.inverse = a.Inverse()
	return nil
}

// Affine returns the current affine transform.
func (l *Layer) Affine() Affine { return l.affine }

// SetPixelMapping displaces every screen pixel by its table entry. The
// table holds one entry per screen pixel; nil disables the mapping.
func (l *Layer) SetPixelMapping(table []PixelMap) error {
	if table == nil {
		l.pixelMap = nil
		if l.mode == modePixelMap {
			l.mode = modeNormal
		}
		return nil
	}
	if len(table) != l.width*l.height {
		return errcode.New("SetLayerPixelMapping", errcode.WrongSize)
	}
	l.mode = modePixelMap
	l.pixelMap = table
	return nil
}

// ResetMode disables scaling, affine transform and pixel mapping.
func (l *Layer) ResetMode() {
	l.mode = modeNormal
	l.sx, l.sy = 1, 1
	l.affine = Affine{}
	l.pixelMap = nil
}

// SetBlendMode sets how the layer mixes with what is below. factor is
// accepted for compatibility and ignored.
func (l *Layer) SetBlendMode(mode Blend, factor uint8) error {
	if mode < BlendNone || mode >= numBlends {
		return errcode.New("SetLayerBlendMode", errcode.Unsupported)
	}
	l.blend = mode
	return nil
}

func (l *Layer) BlendMode() Blend { return l.blend }

// SetColumnOffset shifts every screen tile column vertically by the matching
// entry. nil disables column offsets.
func (l *Layer) SetColumnOffset(offsets []int) {
	l.columns = offsets
}

// SetClip restricts drawing to the rectangle [x1,x2)×[y1,y2).
func (l *Layer) SetClip(x1, y1, x2, y2 int) error {
	if x2 < x1 || y2 < y1 {
		return errcode.New("SetLayerClip", errcode.WrongSize)
	}
	l.clip = clipRect{
		enabled: true,
		x1:      max(x1, 0),
		y1:      max(y1, 0),
		x2:      min(x2, l.width),
		y2:      min(y2, l.height),
	}
	return nil
}

func (l *Layer) DisableClip() {
	l.clip = clipRect{}
}

// SetMosaic pixelates the layer into w×h blocks.
func (l *Layer) SetMosaic(w, h int) error {
	if w < 0 || h < 0 {
		return errcode.New("SetLayerMosaic", errcode.WrongSize)
	}
	l.mosaicW, l.mosaicH = w, h
	return nil
}

func (l *Layer) DisableMosaic() {
	l.mosaicW, l.mosaicH = 0, 0
}

// SetPriority draws the whole layer in front of regular sprites.
func (l *Layer) SetPriority(enable bool) {
	l.priority = enable
}

func (l *Layer) Priority() bool { return l.priority }

// SetParent makes the layer follow the position of parent.
func (l *Layer) SetParent(parent *Layer) error {
	for p := parent; p != nil; p = p.parent {
		if p == l {
			return errcode.New("SetLayerParent", errcode.IdxLayer)
		}
	}
	l.parent = parent
	return nil
}

func (l *Layer) DisableParent() {
	l.parent = nil
}

func (l *Layer) Parent() *Layer { return l.parent }

func (l *Layer) Disable() {
	l.enabled = false
}

// Enable shows a disabled layer again with its previous configuration.
func (l *Layer) Enable() error {
	if l.typ == LayerNone {
		return errcode.New("EnableLayer", errcode.RefTilemap)
	}
	l.enabled = true
	return nil
}

func (l *Layer) Enabled() bool { return l.enabled }

// Width returns the content width in pixels.
func (l *Layer) Width() int {
	switch l.Type() {
	case LayerTile:
		return l.tilemap.Cols() * l.tileset.TileWidth()
	case LayerBitmap:
		return l.bitmap.Width()
	case LayerObject:
		w := 0
		for _, o := range l.objects.Objects() {
			w = max(w, o.X+o.Width)
		}
		return w
	}
	return 0
}

// Height returns the content height in pixels.
func (l *Layer) Height() int {
	switch l.Type() {
	case LayerTile:
		return l.tilemap.Rows() * l.tileset.TileHeight()
	case LayerBitmap:
		return l.bitmap.Height()
	case LayerObject:
		h := 0
		for _, o := range l.objects.Objects() {
			h = max(h, o.Y+o.Height)
		}
		return h
	}
	return 0
}

// Tile returns the tile under layer pixel (x, y), wrapping around the map.
func (l *Layer) Tile(x, y int) (TileInfo, error) {
	if l.Type() != LayerTile {
		return TileInfo{}, errcode.New("GetLayerTile", errcode.RefTilemap)
	}
	tw, th := l.tileset.TileWidth(), l.tileset.TileHeight()
	x = wrap(x, l.tilemap.Cols()*tw)
	y = wrap(y, l.tilemap.Rows()*th)

	info := TileInfo{
		Row:     y / th,
		Col:     x / tw,
		XOffset: x % tw,
		YOffset: y % th,
	}
	tile := l.tilemap.Cell(info.Row, info.Col)
	info.Index = tile.Index
	info.Flags = tile.Flags
	info.Empty = tile.Empty()
	if !info.Empty && int(tile.Index) < l.tileset.NumTiles() {
		attr, _ := l.tileset.Attribute(int(tile.Index))
		info.Type = attr.Type
		info.Color = l.tilePixel(tile, info.XOffset, info.YOffset)
	}
	return info, nil
}

func wrap(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}
