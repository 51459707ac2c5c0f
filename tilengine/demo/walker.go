package demo

import (
	"github.com/valerio/go-tilengine/tilengine"
	"github.com/valerio/go-tilengine/tilengine/input/action"
	"github.com/valerio/go-tilengine/tilengine/resource"
)

const (
	walkerW     = 16
	walkerH     = 24
	walkerSpeed = 1
	walkerDelay = 6 // frames per walk picture

	spriteWalker = 0
	spriteShadow = 1
)

// Walker moves a character along the ground playing a walk cycle built
// from the spriteset picture names. A flipped, translucent copy follows it
// as its shadow.
type Walker struct {
	bag
	e      *tilengine.Engine
	walk   *resource.Sequence
	stand  int
	width  int
	ground int

	x       int
	dir     int
	manual  bool
	walking bool
}

func (w *Walker) Name() string        { return "walker" }
func (w *Walker) Description() string { return "sprite sequence walk cycle with a blended shadow" }

// figure draws the character with the legs spread by stride pixels.
func figure(stride int) pixelFunc {
	return func(x, y int) uint8 {
		cx := walkerW / 2
		switch {
		case y < 7: // head
			dx, dy := 2*(x-cx)+1, 2*(y-3)
			if dx*dx+dy*dy <= 36 {
				return 1
			}
		case y < 16: // body and arms
			if abs(x-cx) <= 2 || (y == 9 && abs(x-cx) <= 2+stride/2) {
				return 2
			}
		default: // legs
			spread := stride * (y - 15) / 8
			if abs(x-(cx-1-spread)) <= 1 || abs(x-(cx+spread)) <= 1 {
				return 3
			}
		}
		return 0
	}
}

func (w *Walker) Setup(e *tilengine.Engine) error {
	if err := checkSlots(e); err != nil {
		return err
	}
	w.e = e
	w.width = e.Width()
	w.ground = e.Height() * 3 / 4
	w.x = w.width / 4
	w.dir = 1

	ss, err := newSpriteset(&w.bag, walkerW, walkerH,
		[]string{"stand", "walk1", "walk2", "walk3", "walk4"},
		[]pixelFunc{figure(0), figure(2), figure(5), figure(2), figure(0)},
	)
	if err != nil {
		return err
	}
	pal := ss.Palette()
	for i, c := range []uint32{0xFFF0C090, 0xFF3060C0, 0xFF303848} {
		r, g, b := resource.Channels(c)
		if err := pal.SetColor(i+1, r, g, b); err != nil {
			return err
		}
	}
	w.stand = ss.Find("stand")

	if w.walk, err = resource.NewSpriteSequence("walk", ss, "walk", walkerDelay); err != nil {
		return err
	}
	w.add(w.walk)

	shadow, err := resource.NewPalette(4)
	if err != nil {
		return err
	}
	w.add(shadow)
	for i := 1; i < shadow.Len(); i++ {
		if err := shadow.SetColor(i, 0, 0, 0); err != nil {
			return err
		}
	}

	if err := w.groundLayer(); err != nil {
		return err
	}
	if err := e.ConfigSprite(spriteShadow, ss, tilengine.FlagFlipY); err != nil {
		return err
	}
	if err := e.SetSpritePalette(spriteShadow, shadow); err != nil {
		return err
	}
	if err := e.SetSpriteBlendMode(spriteShadow, tilengine.BlendMix50, 0); err != nil {
		return err
	}
	if err := e.SetSpritePivot(spriteShadow, 0.5, 0); err != nil {
		return err
	}
	if err := e.ConfigSprite(spriteWalker, ss, tilengine.FlagNone); err != nil {
		return err
	}
	if err := e.SetSpritePivot(spriteWalker, 0.5, 1); err != nil {
		return err
	}
	// the shadow is drawn before the walker
	if err := e.SetFirstSprite(spriteShadow); err != nil {
		return err
	}
	if err := e.SetNextSprite(spriteShadow, spriteWalker); err != nil {
		return err
	}
	if err := e.SetNextSprite(spriteWalker, -1); err != nil {
		return err
	}
	e.SetBGColor(0x70, 0x90, 0xB0)
	return w.startWalking()
}

// groundLayer fills the screen below the feet line with tiles.
func (w *Walker) groundLayer() error {
	pal, err := resource.NewPalette(4)
	if err != nil {
		return err
	}
	w.add(pal)
	if err := ramp(pal, 1, 2, 0xFF808060, 0xFFA0A080); err != nil {
		return err
	}
	ts, err := newTileset(&w.bag, tileSize, pal, func(x, y int) uint8 { return uint8(1 + (x/4+y/4)%2) })
	if err != nil {
		return err
	}
	rows := w.e.Height()/tileSize + 1
	cols := w.width/tileSize + 1
	tm, err := resource.NewTilemap(rows, cols, nil, 0, ts)
	if err != nil {
		return err
	}
	w.add(tm)
	for row := w.ground / tileSize; row < rows; row++ {
		for col := 0; col < cols; col++ {
			if err := tm.SetTile(row, col, resource.Tile{Index: 1}); err != nil {
				return err
			}
		}
	}
	if err := w.e.SetLayerTilemap(0, tm); err != nil {
		return err
	}
	return w.e.SetLayerPosition(0, 0, -(w.ground % tileSize))
}

func (w *Walker) startWalking() error {
	w.walking = true
	if err := w.e.SetSpriteAnimation(spriteWalker, w.walk, 0); err != nil {
		return err
	}
	return w.e.SetSpriteAnimation(spriteShadow, w.walk, 0)
}

func (w *Walker) stop() error {
	w.walking = false
	for _, n := range []int{spriteWalker, spriteShadow} {
		if err := w.e.DisableSpriteAnimation(n); err != nil {
			return err
		}
		if err := w.e.SetSpritePicture(n, w.stand); err != nil {
			return err
		}
	}
	return nil
}

// X returns the horizontal position of the walker's feet.
func (w *Walker) X() int { return w.x }

func (w *Walker) Update(frame int, in Controls) error {
	left, right := in.Input(action.Left), in.Input(action.Right)
	switch {
	case left || right:
		w.manual = true
		w.dir = 1
		if left {
			w.dir = -1
		}
		if !w.walking {
			if err := w.startWalking(); err != nil {
				return err
			}
		}
	case w.manual:
		if w.walking {
			if err := w.stop(); err != nil {
				return err
			}
		}
	default:
		// pace between the screen edges
		if w.x <= walkerW || w.x >= w.width-walkerW {
			w.dir = -w.dir
		}
	}

	if w.walking {
		w.x = min(max(w.x+w.dir*walkerSpeed, walkerW/2), w.width-walkerW/2)
	}
	flip := w.dir < 0
	for _, n := range []int{spriteWalker, spriteShadow} {
		if err := w.e.EnableSpriteFlag(n, tilengine.FlagFlipX, flip); err != nil {
			return err
		}
	}
	if err := w.e.SetSpritePosition(spriteWalker, w.x, w.ground); err != nil {
		return err
	}
	return w.e.SetSpritePosition(spriteShadow, w.x, w.ground)
}

func (w *Walker) Close() error {
	if w.e != nil {
		for _, n := range []int{spriteWalker, spriteShadow} {
			_ = w.e.DisableSpriteAnimation(n)
			_ = w.e.DisableSprite(n)
		}
	}
	return w.release()
}
