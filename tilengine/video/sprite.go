package video

import (
	"math"

	"github.com/valerio/go-tilengine/tilengine/errcode"
	"github.com/valerio/go-tilengine/tilengine/resource"
)

// Sprite is an engine-owned sprite slot.
//
// A slot starts unconfigured. ConfigSprite binds a spriteset and makes it
// visible; Disable hides it but keeps the binding, picture and position so
// Enable can restore it.
type Sprite struct {
	index int

	spriteset  *resource.Spriteset
	configured bool
	enabled    bool

	flags   resource.TileFlags
	x, y    int
	picture int
	palette *resource.Palette // overrides the spriteset palette
	blend   Blend

	scaled bool
	sx, sy float64
	px, py float64 // pivot, as a fraction of the drawn size

	collision bool
	collided  bool

	next int
}

func newSprite(index int) *Sprite {
	return &Sprite{index: index, sx: 1, sy: 1, next: index + 1}
}

func (s *Sprite) Index() int { return s.index }

// Config binds a spriteset, sets the flags and enables the sprite.
func (s *Sprite) Config(ss *resource.Spriteset, flags resource.TileFlags) error {
	if err := s.SetSpriteset(ss); err != nil {
		return err
	}
	s.flags = flags
	s.enabled = true
	return nil
}

// SetSpriteset binds a spriteset. The picture is reset to the first entry
// and any palette override is dropped.
func (s *Sprite) SetSpriteset(ss *resource.Spriteset) error {
	if ss == nil || ss.Deleted() {
		return errcode.New("SetSpriteSet", errcode.RefSpriteset)
	}
	s.spriteset = ss
	s.palette = nil
	s.picture = 0
	s.configured = true
	return nil
}

func (s *Sprite) Spriteset() *resource.Spriteset { return s.spriteset }

// visible reports whether the sprite can be drawn this frame. Sprites whose
// spriteset or atlas bitmap were deleted are skipped.
func (s *Sprite) visible() bool {
	return s.enabled && s.configured && !s.spriteset.Deleted() &&
		!s.spriteset.Bitmap().Deleted() && s.picture < s.spriteset.Count()
}

func (s *Sprite) SetFlags(flags resource.TileFlags) {
	s.flags = flags
}

func (s *Sprite) Flags() resource.TileFlags { return s.flags }

// EnableFlag sets or clears the given flag bits.
func (s *Sprite) EnableFlag(flag resource.TileFlags, enable bool) {
	if enable {
		s.flags |= flag
	} else {
		s.flags &^= flag
	}
}

// SetPivot sets the point of the sprite placed at its position, as a
// fraction of its size: (0, 0) is the top-left corner and (1, 1) the
// bottom-right one.
func (s *Sprite) SetPivot(px, py float64) {
	s.px, s.py = px, py
}

func (s *Sprite) SetPosition(x, y int) {
	s.x, s.y = x, y
}

func (s *Sprite) Position() (int, int) { return s.x, s.y }

// SetPicture selects the spriteset entry to show.
func (s *Sprite) SetPicture(entry int) error {
	if !s.configured || s.spriteset.Deleted() {
		return errcode.New("SetSpritePicture", errcode.RefSpriteset)
	}
	if entry < 0 || entry >= s.spriteset.Count() {
		return errcode.New("SetSpritePicture", errcode.IdxPicture)
	}
	s.picture = entry
	return nil
}

func (s *Sprite) Picture() int { return s.picture }

// SetPalette overrides the spriteset palette; nil restores it.
func (s *Sprite) SetPalette(p *resource.Palette) error {
	if p != nil && p.Deleted() {
		return errcode.New("SetSpritePalette", errcode.RefPalette)
	}
	s.palette = p
	return nil
}

// Palette returns the palette used to draw the sprite.
func (s *Sprite) Palette() *resource.Palette {
	if s.palette != nil {
		return s.palette
	}
	if s.spriteset == nil {
		return nil
	}
	return s.spriteset.Palette()
}

func (s *Sprite) SetBlendMode(mode Blend, factor uint8) error {
	if mode < BlendNone || mode >= numBlends {
		return errcode.New("SetSpriteBlendMode", errcode.Unsupported)
	}
	s.blend = mode
	return nil
}

func (s *Sprite) BlendMode() Blend { return s.blend }

// SetScaling draws the sprite sx, sy times its size.
func (s *Sprite) SetScaling(sx, sy float64) error {
	if sx <= 0 || sy <= 0 {
		return errcode.New("SetSpriteScaling", errcode.WrongSize)
	}
	s.scaled = true
	s.sx, s.sy = sx, sy
	return nil
}

func (s *Sprite) ResetScaling() {
	s.scaled = false
	s.sx, s.sy = 1, 1
}

// EnableCollision turns pixel-exact collision detection on or off.
func (s *Sprite) EnableCollision(enable bool) {
	s.collision = enable
	if !enable {
		s.collided = false
	}
}

// Collision reports whether the sprite touched another collision-enabled
// sprite during the last frame.
func (s *Sprite) Collision() bool { return s.collided }

// EnableMasking makes the sprite hide inside the mask region.
func (s *Sprite) EnableMasking(enable bool) {
	s.EnableFlag(resource.FlagMasked, enable)
}

// Disable hides the sprite and makes the slot available. The binding is
// kept.
func (s *Sprite) Disable() {
	s.enabled = false
	s.collided = false
}

// Enable shows a disabled sprite again.
func (s *Sprite) Enable() error {
	if !s.configured || s.spriteset.Deleted() {
		return errcode.New("EnableSprite", errcode.RefSpriteset)
	}
	s.enabled = true
	return nil
}

func (s *Sprite) Enabled() bool    { return s.enabled }
func (s *Sprite) Configured() bool { return s.configured }

// Available reports whether the slot is free for a new sprite.
func (s *Sprite) Available() bool { return !s.enabled }

// size returns the drawn width and height, before rotation.
func (s *Sprite) size() (w, h int) {
	d := s.spriteset.Data(s.picture)
	w, h = d.W, d.H
	if s.scaled {
		w = int(math.Round(float64(w) * s.sx))
		h = int(math.Round(float64(h) * s.sy))
	}
	return w, h
}

// rect returns the screen rectangle covered by the sprite.
func (s *Sprite) rect() (x, y, w, h int) {
	w, h = s.size()
	if s.flags.Has(resource.FlagRotate) {
		w, h = h, w
	}
	x = s.x - int(s.px*float64(w))
	y = s.y - int(s.py*float64(h))
	return x, y, w, h
}

// State returns a snapshot of the slot.
func (s *Sprite) State() SpriteState {
	st := SpriteState{
		X:         s.x,
		Y:         s.y,
		Flags:     s.flags,
		Palette:   s.Palette(),
		Spriteset: s.spriteset,
		Index:     s.picture,
		Enabled:   s.enabled,
		Collision: s.collided,
	}
	if s.configured && !s.spriteset.Deleted() && s.picture < s.spriteset.Count() {
		_, _, st.W, st.H = s.rect()
	}
	return st
}

// drawSpriteLine draws the part of sprite s crossing screen line y.
func (r *Renderer) drawSpriteLine(s *Sprite, y int, dst []uint32) {
	if s.flags.Has(resource.FlagMasked) && y >= r.maskTop && y <= r.maskBottom {
		return
	}
	ox, oy, dw, dh := s.rect()
	if y < oy || y >= oy+dh || dw <= 0 || dh <= 0 {
		return
	}
	pal := s.Palette()
	if pal == nil || pal.Deleted() {
		return
	}
	colors := pal.Entries()

	d := s.spriteset.Data(s.picture)
	// unscaled source dimensions in drawn orientation
	srcW, srcH := d.W, d.H
	if s.flags.Has(resource.FlagRotate) {
		srcW, srcH = srcH, srcW
	}
	ry := (y - oy) * srcH / dh

	x1 := max(ox, 0)
	x2 := min(ox+dw, r.width)
	for x := x1; x < x2; x++ {
		rx := (x - ox) * srcW / dw
		px, py := resource.TransformPixel(s.flags, rx, ry, srcW, srcH)
		if px < 0 || py < 0 || px >= d.W || py >= d.H {
			continue
		}
		index := s.spriteset.Pixel(s.picture, px, py)
		if index == 0 || int(index) >= len(colors) {
			continue
		}
		color := colors[index]
		if s.blend != BlendNone {
			color = r.blender.Apply(s.blend, color, dst[x])
		}
		dst[x] = color

		if s.collision {
			if other := r.collision.Claim(x, s.index); other >= 0 {
				s.collided = true
				r.sprites[other].collided = true
			}
		}
	}
}
