package tilengine

import (
	"github.com/valerio/go-tilengine/tilengine/anim"
	"github.com/valerio/go-tilengine/tilengine/errcode"
	"github.com/valerio/go-tilengine/tilengine/resource"
)

func (e *Engine) animation(op string, index int) error {
	if err := e.check(op); err != nil {
		return err
	}
	if index < 0 || index >= len(e.animations) {
		return errcode.New(op, errcode.IdxAnimation)
	}
	return nil
}

// SetPaletteAnimation starts color cycle seq on palette p in slot index.
// With blend set colors fade between steps.
func (e *Engine) SetPaletteAnimation(index int, p *resource.Palette, seq *resource.Sequence, blend bool) error {
	if err := e.animation("SetPaletteAnimation", index); err != nil {
		return e.report(err)
	}
	c, err := anim.NewCycle(p, seq, blend)
	if err != nil {
		return e.report(err)
	}
	if old := e.animations[index]; old != nil {
		old.Close()
	}
	e.animations[index] = c
	return e.report(nil)
}

// SetPaletteAnimationSource replaces the colors cycled by slot index.
func (e *Engine) SetPaletteAnimationSource(index int, p *resource.Palette) error {
	if err := e.animation("SetPaletteAnimationSource", index); err != nil {
		return e.report(err)
	}
	c := e.animations[index]
	if c == nil {
		return e.report(errcode.New("SetPaletteAnimationSource", errcode.RefSequence))
	}
	return e.report(c.SetSource(p))
}

// SetAnimationDelay overrides the delay of one strip of slot index.
func (e *Engine) SetAnimationDelay(index, strip, delay int) error {
	if err := e.animation("SetAnimationDelay", index); err != nil {
		return e.report(err)
	}
	c := e.animations[index]
	if c == nil {
		return e.report(errcode.New("SetAnimationDelay", errcode.RefSequence))
	}
	return e.report(c.SetDelay(strip, delay))
}

// AnimationState reports whether slot index is running.
func (e *Engine) AnimationState(index int) (bool, error) {
	if err := e.animation("GetAnimationState", index); err != nil {
		return false, e.report(err)
	}
	return e.animations[index] != nil, e.report(nil)
}

// AvailableAnimation returns the first free animation slot, or -1.
func (e *Engine) AvailableAnimation() int {
	for i, c := range e.animations {
		if c == nil {
			return i
		}
	}
	return -1
}

// DisablePaletteAnimation stops slot index. The palette keeps its current
// colors.
func (e *Engine) DisablePaletteAnimation(index int) error {
	if err := e.animation("DisablePaletteAnimation", index); err != nil {
		return e.report(err)
	}
	if c := e.animations[index]; c != nil {
		c.Close()
		e.animations[index] = nil
	}
	return e.report(nil)
}

func (e *Engine) updateAnimations(frame int) {
	for i, c := range e.animations {
		if c != nil && !c.Update(frame) {
			e.logger.Debug("palette animation stopped", "slot", i)
			c.Close()
			e.animations[i] = nil
		}
	}

	for i, p := range e.players {
		if p == nil {
			continue
		}
		picture := p.Update(frame)
		if picture < 0 {
			e.players[i] = nil
			continue
		}
		s, _ := e.renderer.Sprite(i)
		if !s.Configured() {
			continue
		}
		if err := s.SetPicture(picture); err != nil {
			e.logger.Debug("sprite animation frame skipped", "sprite", i, "picture", picture, "err", err)
		}
	}

	for ts, a := range e.tiles {
		if ts.Deleted() {
			delete(e.tiles, ts)
			continue
		}
		if a != nil {
			a.Update(frame)
		}
	}
}
