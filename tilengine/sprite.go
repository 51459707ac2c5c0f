package tilengine

import (
	"github.com/valerio/go-tilengine/tilengine/anim"
	"github.com/valerio/go-tilengine/tilengine/errcode"
	"github.com/valerio/go-tilengine/tilengine/resource"
	"github.com/valerio/go-tilengine/tilengine/video"
)

func (e *Engine) sprite(op string, n int) (*video.Sprite, error) {
	if err := e.check(op); err != nil {
		return nil, err
	}
	if n < 0 || n >= e.renderer.NumSprites() {
		return nil, errcode.New(op, errcode.IdxSprite)
	}
	s, _ := e.renderer.Sprite(n)
	return s, nil
}

func (e *Engine) withSprite(op string, n int, fn func(s *video.Sprite) error) error {
	s, err := e.sprite(op, n)
	if err != nil {
		return e.report(err)
	}
	return e.report(fn(s))
}

// ConfigSprite binds a spriteset to sprite n and enables it.
func (e *Engine) ConfigSprite(n int, ss *resource.Spriteset, flags TileFlags) error {
	return e.withSprite("ConfigSprite", n, func(s *video.Sprite) error {
		return s.Config(ss, flags)
	})
}

func (e *Engine) SetSpriteSet(n int, ss *resource.Spriteset) error {
	return e.withSprite("SetSpriteSet", n, func(s *video.Sprite) error {
		return s.SetSpriteset(ss)
	})
}

func (e *Engine) SetSpriteFlags(n int, flags TileFlags) error {
	return e.withSprite("SetSpriteFlags", n, func(s *video.Sprite) error {
		s.SetFlags(flags)
		return nil
	})
}

// EnableSpriteFlag sets or clears flag on sprite n.
func (e *Engine) EnableSpriteFlag(n int, flag TileFlags, enable bool) error {
	return e.withSprite("EnableSpriteFlag", n, func(s *video.Sprite) error {
		s.EnableFlag(flag, enable)
		return nil
	})
}

// SetSpritePivot sets the point of sprite n placed at its position, as a
// fraction of its size.
func (e *Engine) SetSpritePivot(n int, px, py float64) error {
	return e.withSprite("SetSpritePivot", n, func(s *video.Sprite) error {
		s.SetPivot(px, py)
		return nil
	})
}

// SetSpritePosition places sprite n in screen space.
func (e *Engine) SetSpritePosition(n, x, y int) error {
	return e.withSprite("SetSpritePosition", n, func(s *video.Sprite) error {
		if e.world != nil {
			e.world.unpin(n)
		}
		s.SetPosition(x, y)
		return nil
	})
}

func (e *Engine) SetSpritePicture(n, entry int) error {
	return e.withSprite("SetSpritePicture", n, func(s *video.Sprite) error {
		return s.SetPicture(entry)
	})
}

// SetSpritePalette overrides the palette of sprite n; nil restores the
// spriteset palette.
func (e *Engine) SetSpritePalette(n int, p *resource.Palette) error {
	return e.withSprite("SetSpritePalette", n, func(s *video.Sprite) error {
		return s.SetPalette(p)
	})
}

func (e *Engine) SpritePalette(n int) (*resource.Palette, error) {
	s, err := e.sprite("GetSpritePalette", n)
	if err != nil {
		return nil, e.report(err)
	}
	return s.Palette(), e.report(nil)
}

func (e *Engine) SetSpriteBlendMode(n int, mode Blend, factor uint8) error {
	return e.withSprite("SetSpriteBlendMode", n, func(s *video.Sprite) error {
		return s.SetBlendMode(mode, factor)
	})
}

func (e *Engine) SetSpriteScaling(n int, sx, sy float64) error {
	return e.withSprite("SetSpriteScaling", n, func(s *video.Sprite) error {
		return s.SetScaling(sx, sy)
	})
}

func (e *Engine) ResetSpriteScaling(n int) error {
	return e.withSprite("ResetSpriteScaling", n, func(s *video.Sprite) error {
		s.ResetScaling()
		return nil
	})
}

func (e *Engine) SpritePicture(n int) (int, error) {
	s, err := e.sprite("GetSpritePicture", n)
	if err != nil {
		return 0, e.report(err)
	}
	return s.Picture(), e.report(nil)
}

// AvailableSprite returns the first unused sprite slot, or -1.
func (e *Engine) AvailableSprite() int {
	if e.renderer == nil {
		return -1
	}
	return e.renderer.AvailableSprite()
}

func (e *Engine) EnableSpriteCollision(n int, enable bool) error {
	return e.withSprite("EnableSpriteCollision", n, func(s *video.Sprite) error {
		s.EnableCollision(enable)
		return nil
	})
}

// SpriteCollision reports whether sprite n touched another collision
// enabled sprite in the last frame.
func (e *Engine) SpriteCollision(n int) (bool, error) {
	s, err := e.sprite("GetSpriteCollision", n)
	if err != nil {
		return false, e.report(err)
	}
	return s.Collision(), e.report(nil)
}

func (e *Engine) SpriteState(n int) (SpriteState, error) {
	s, err := e.sprite("GetSpriteState", n)
	if err != nil {
		return SpriteState{}, e.report(err)
	}
	return s.State(), e.report(nil)
}

// EnableSpriteMasking hides sprite n inside the mask region.
func (e *Engine) EnableSpriteMasking(n int, enable bool) error {
	return e.withSprite("EnableSpriteMasking", n, func(s *video.Sprite) error {
		s.EnableMasking(enable)
		return nil
	})
}

// SetSpritesMaskRegion sets the lines, inclusive, where masked sprites are
// not drawn.
func (e *Engine) SetSpritesMaskRegion(top, bottom int) {
	if e.renderer != nil {
		e.renderer.SetSpritesMaskRegion(top, bottom)
	}
}

// SetFirstSprite sets the first sprite of the draw list.
func (e *Engine) SetFirstSprite(n int) error {
	if err := e.check("SetFirstSprite"); err != nil {
		return e.report(err)
	}
	return e.report(e.renderer.SetFirstSprite(n))
}

// SetNextSprite sets the sprite drawn after n; a negative next ends the
// list.
func (e *Engine) SetNextSprite(n, next int) error {
	if err := e.check("SetNextSprite"); err != nil {
		return e.report(err)
	}
	return e.report(e.renderer.SetNextSprite(n, next))
}

// SetSpriteAnimation plays seq on sprite n loop times; zero loops repeats
// forever.
func (e *Engine) SetSpriteAnimation(n int, seq *resource.Sequence, loop int) error {
	return e.withSprite("SetSpriteAnimation", n, func(s *video.Sprite) error {
		p, err := anim.NewPlayer(seq, loop)
		if err != nil {
			return err
		}
		if s.Configured() {
			for _, f := range seq.Frames() {
				if f.Index < 0 || f.Index >= s.Spriteset().Count() {
					return errcode.New("SetSpriteAnimation", errcode.IdxPicture)
				}
			}
			if err := s.SetPicture(p.Picture()); err != nil {
				return err
			}
		}
		e.players[n] = p
		return nil
	})
}

// SpriteAnimationDone reports whether the animation of sprite n finished.
// Sprites without an animation report true.
func (e *Engine) SpriteAnimationDone(n int) (bool, error) {
	if _, err := e.sprite("GetAnimationState", n); err != nil {
		return false, e.report(err)
	}
	p := e.players[n]
	return p == nil || p.Done(), e.report(nil)
}

func (e *Engine) DisableSpriteAnimation(n int) error {
	return e.withSprite("DisableSpriteAnimation", n, func(s *video.Sprite) error {
		e.players[n] = nil
		return nil
	})
}

// DisableSprite hides sprite n and frees its slot. Its configuration is kept
// for EnableSprite.
func (e *Engine) DisableSprite(n int) error {
	return e.withSprite("DisableSprite", n, func(s *video.Sprite) error {
		s.Disable()
		return nil
	})
}

func (e *Engine) EnableSprite(n int) error {
	return e.withSprite("EnableSprite", n, func(s *video.Sprite) error {
		return s.Enable()
	})
}
