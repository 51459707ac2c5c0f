package video

import (
	"github.com/valerio/go-tilengine/tilengine/display"
	"github.com/valerio/go-tilengine/tilengine/errcode"
	"github.com/valerio/go-tilengine/tilengine/resource"
)

// Renderer composites layers and sprites into a frame buffer one scanline
// at a time.
type Renderer struct {
	width  int
	height int

	layers  []*Layer
	sprites []*Sprite
	first   int

	bgColor   uint32
	bgEnabled bool
	bgBitmap  *resource.Bitmap
	bgPalette *resource.Palette

	raster  func(line int)
	onFrame func(frame int)

	target   *FrameBuffer
	internal *FrameBuffer

	blender   *Blender
	collision *CollisionBuffer

	// pixels of priority tiles, composited after regular sprites
	prio      []uint32
	prioBlend []Blend
	prioSet   []bool
	prioUsed  bool

	maskTop    int
	maskBottom int
}

// NewRenderer allocates the layer and sprite slots for a width x height
// frame.
func NewRenderer(width, height, numLayers, numSprites int) (*Renderer, error) {
	if width <= 0 || height <= 0 || numLayers < 0 || numSprites < 0 {
		return nil, errcode.New("Init", errcode.WrongSize)
	}
	r := &Renderer{
		width:      width,
		height:     height,
		layers:     make([]*Layer, numLayers),
		sprites:    make([]*Sprite, numSprites),
		internal:   NewFrameBuffer(width, height),
		blender:    NewBlender(),
		collision:  NewCollisionBuffer(width),
		prio:       make([]uint32, width),
		prioBlend:  make([]Blend, width),
		prioSet:    make([]bool, width),
		maskTop:    -1,
		maskBottom: -1,
	}
	for i := range r.layers {
		r.layers[i] = newLayer(i, width, height)
	}
	for i := range r.sprites {
		r.sprites[i] = newSprite(i)
	}
	if numSprites > 0 {
		r.sprites[numSprites-1].next = -1
	} else {
		r.first = -1
	}
	r.target = r.internal
	return r, nil
}

func (r *Renderer) Width() int      { return r.width }
func (r *Renderer) Height() int     { return r.height }
func (r *Renderer) NumLayers() int  { return len(r.layers) }
func (r *Renderer) NumSprites() int { return len(r.sprites) }

// Layer returns layer slot n.
func (r *Renderer) Layer(n int) (*Layer, error) {
	if n < 0 || n >= len(r.layers) {
		return nil, errcode.New("Layer", errcode.IdxLayer)
	}
	return r.layers[n], nil
}

// Sprite returns sprite slot n.
func (r *Renderer) Sprite(n int) (*Sprite, error) {
	if n < 0 || n >= len(r.sprites) {
		return nil, errcode.New("Sprite", errcode.IdxSprite)
	}
	return r.sprites[n], nil
}

// AvailableSprite returns the first free sprite slot, or -1.
func (r *Renderer) AvailableSprite() int {
	for i, s := range r.sprites {
		if s.Available() {
			return i
		}
	}
	return -1
}

// SetFirstSprite sets the sprite drawn first.
func (r *Renderer) SetFirstSprite(n int) error {
	if n < 0 || n >= len(r.sprites) {
		return errcode.New("SetFirstSprite", errcode.IdxSprite)
	}
	r.first = n
	return nil
}

// SetNextSprite sets the sprite drawn after n. A negative next ends the
// list at n.
func (r *Renderer) SetNextSprite(n, next int) error {
	if n < 0 || n >= len(r.sprites) || next >= len(r.sprites) {
		return errcode.New("SetNextSprite", errcode.IdxSprite)
	}
	if next < 0 {
		next = -1
	}
	r.sprites[n].next = next
	return nil
}

// SetSpritesMaskRegion sets the lines, inclusive, where masked sprites are
// hidden.
func (r *Renderer) SetSpritesMaskRegion(top, bottom int) {
	r.maskTop, r.maskBottom = top, bottom
}

// SetTarget renders into buf, whose rows are pitch bytes apart. A nil buf
// restores the internal frame buffer.
func (r *Renderer) SetTarget(buf []uint32, pitch int) error {
	if buf == nil {
		r.target = r.internal
		return nil
	}
	if pitch%display.BytesPerPixel != 0 || pitch < r.width*display.BytesPerPixel {
		return errcode.New("SetRenderTarget", errcode.WrongSize)
	}
	stride := pitch / display.BytesPerPixel
	if len(buf) < stride*(r.height-1)+r.width {
		return errcode.New("SetRenderTarget", errcode.WrongSize)
	}
	r.target = WrapFrameBuffer(buf, r.width, r.height, pitch)
	return nil
}

// Target returns the frame buffer being rendered to.
func (r *Renderer) Target() *FrameBuffer { return r.target }

func (r *Renderer) SetBGColor(color uint32) {
	r.bgColor = color
	r.bgEnabled = true
}

func (r *Renderer) BGColor() (uint32, bool) { return r.bgColor, r.bgEnabled }

func (r *Renderer) DisableBGColor() {
	r.bgEnabled = false
}

// SetBGBitmap draws bmp behind all layers; nil disables it.
func (r *Renderer) SetBGBitmap(bmp *resource.Bitmap) error {
	if bmp != nil && bmp.Deleted() {
		return errcode.New("SetBGBitmap", errcode.RefBitmap)
	}
	r.bgBitmap = bmp
	r.bgPalette = nil
	return nil
}

// SetBGPalette changes the palette of the background bitmap.
func (r *Renderer) SetBGPalette(p *resource.Palette) error {
	if r.bgBitmap == nil {
		return errcode.New("SetBGPalette", errcode.RefBitmap)
	}
	if p == nil || p.Deleted() {
		return errcode.New("SetBGPalette", errcode.RefPalette)
	}
	r.bgPalette = p
	return nil
}

func (r *Renderer) SetRasterCallback(fn func(line int)) { r.raster = fn }
func (r *Renderer) SetFrameCallback(fn func(frame int)) { r.onFrame = fn }

// SetCustomBlendFunction sets the function used by BlendCustom.
func (r *Renderer) SetCustomBlendFunction(fn BlendFunc) {
	r.blender.SetCustom(fn)
}

// Draw renders a whole frame. The raster callback runs before each line so
// it can change layers, sprites and palettes mid-frame.
func (r *Renderer) Draw(frame int) {
	for _, s := range r.sprites {
		if s.collision {
			s.collided = false
		}
	}
	for y := 0; y < r.height; y++ {
		if r.raster != nil {
			r.raster(y)
		}
		r.drawLine(y, r.target.Row(y)[:r.width])
	}
	if r.onFrame != nil {
		r.onFrame(frame)
	}
}

func (r *Renderer) drawLine(y int, dst []uint32) {
	r.drawBackground(y, dst)
	r.collision.Clear()

	for i := len(r.layers) - 1; i >= 0; i-- {
		if l := r.layers[i]; l.Visible() && !l.priority {
			r.drawLayerLine(l, y, dst)
		}
	}
	r.drawSprites(y, dst, false)
	for i := len(r.layers) - 1; i >= 0; i-- {
		if l := r.layers[i]; l.Visible() && l.priority {
			r.drawLayerLine(l, y, dst)
		}
	}
	r.flushPriority(dst)
	r.drawSprites(y, dst, true)
}

func (r *Renderer) drawBackground(y int, dst []uint32) {
	if r.bgEnabled {
		for x := range dst {
			dst[x] = r.bgColor
		}
	}
	bmp := r.bgBitmap
	if bmp == nil || bmp.Deleted() || y >= bmp.Height() {
		return
	}
	pal := r.bgPalette
	if pal == nil || pal.Deleted() {
		pal = bmp.Palette()
	}
	if pal == nil || pal.Deleted() {
		return
	}
	row, err := bmp.Row(y)
	if err != nil {
		return
	}
	colors := pal.Entries()
	for x := 0; x < min(len(dst), len(row)); x++ {
		if int(row[x]) < len(colors) {
			dst[x] = colors[row[x]]
		}
	}
}

// drawSprites draws the sprites in list order, either the regular ones or
// the ones flagged with priority.
func (r *Renderer) drawSprites(y int, dst []uint32, priority bool) {
	n := r.first
	for steps := 0; n >= 0 && steps < len(r.sprites); steps++ {
		s := r.sprites[n]
		if s.visible() && s.flags.Has(resource.FlagPriority) == priority {
			r.drawSpriteLine(s, y, dst)
		}
		n = s.next
	}
}

func (r *Renderer) flushPriority(dst []uint32) {
	if !r.prioUsed {
		return
	}
	for x, set := range r.prioSet {
		if !set {
			continue
		}
		color := r.prio[x]
		if mode := r.prioBlend[x]; mode != BlendNone {
			color = r.blender.Apply(mode, color, dst[x])
		}
		dst[x] = color
		r.prioSet[x] = false
	}
	r.prioUsed = false
}
