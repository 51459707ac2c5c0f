package demo

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/valerio/go-tilengine/tilengine"
	"github.com/valerio/go-tilengine/tilengine/input/action"
	"github.com/valerio/go-tilengine/tilengine/resource"
)

const (
	layerFront = 0
	layerBack  = 1

	tileSize = 8
	mapCols  = 96

	// palette entries cycled by the water animation
	waterFirst = 16
	waterCount = 4
)

// sky colors at the top of the screen and at the horizon, for day and dusk
var (
	skyDay  = [2]uint32{0xFF1C4CA8, 0xFF8CC4F0}
	skyDusk = [2]uint32{0xFF281848, 0xFFF08C50}
)

// Platformer scrolls a ground layer over a background whose hills and water
// bands scroll at different speeds per line. The sky is a gradient set per
// line that slowly fades between day and dusk.
type Platformer struct {
	bag
	e      *tilengine.Engine
	width  int
	height int

	x       float64
	speed   float64
	horizon int // first line of the hills band
	water   int // first line of the water band

	fade    *gween.Tween
	fadeOut bool
	dusk    float32
}

func (p *Platformer) Name() string { return "platformer" }
func (p *Platformer) Description() string {
	return "line scroll parallax, sky gradient and water palette cycle"
}

func (p *Platformer) Setup(e *tilengine.Engine) error {
	if err := checkSlots(e); err != nil {
		return err
	}
	p.e = e
	p.width, p.height = e.Width(), e.Height()
	p.speed = 1
	p.horizon = p.height / 3
	p.water = p.height * 3 / 4
	p.fade = gween.New(0, 1, 8, ease.InOutSine)

	front, err := p.frontMap()
	if err != nil {
		return err
	}
	back, err := p.backMap()
	if err != nil {
		return err
	}
	if err := e.SetLayerTilemap(layerFront, front); err != nil {
		return err
	}
	if err := e.SetLayerTilemap(layerBack, back); err != nil {
		return err
	}

	cycle, err := resource.NewCycle("water", []resource.ColorStrip{
		{Delay: 8, First: waterFirst, Count: waterCount},
	})
	if err != nil {
		return err
	}
	p.add(cycle)
	if err := e.SetPaletteAnimation(0, back.Tileset().Palette(), cycle, true); err != nil {
		return err
	}

	e.SetRasterCallback(p.raster)
	return nil
}

// frontMap builds the ground: a floor two tiles high and floating platforms.
func (p *Platformer) frontMap() (*resource.Tilemap, error) {
	pal, err := resource.NewPalette(8)
	if err != nil {
		return nil, err
	}
	p.add(pal)
	if err := ramp(pal, 1, 3, 0xFF306018, 0xFF60B030); err != nil {
		return nil, err
	}
	if err := ramp(pal, 4, 3, 0xFF583818, 0xFF906030); err != nil {
		return nil, err
	}
	ts, err := newTileset(&p.bag, tileSize, pal,
		func(x, y int) uint8 { // grass
			if y < 3 {
				return uint8(1 + (x+y)%3)
			}
			return uint8(4 + (x*y)%3)
		},
		func(x, y int) uint8 { return uint8(4 + (x+2*y)%3) }, // dirt
		box(6, 4, tileSize), // brick
	)
	if err != nil {
		return nil, err
	}

	rows := p.height / tileSize
	tm, err := resource.NewTilemap(rows, mapCols, nil, 0, ts)
	if err != nil {
		return nil, err
	}
	p.add(tm)
	for col := 0; col < mapCols; col++ {
		if err := tm.SetTile(rows-2, col, resource.Tile{Index: 1}); err != nil {
			return nil, err
		}
		if err := tm.SetTile(rows-1, col, resource.Tile{Index: 2}); err != nil {
			return nil, err
		}
	}
	for i := 0; i < mapCols/12; i++ {
		row := rows - 6 - (i%3)*3
		if row < 0 {
			continue
		}
		for col := i*12 + 3; col < i*12+8; col++ {
			if err := tm.SetTile(row, col, resource.Tile{Index: 3}); err != nil {
				return nil, err
			}
		}
	}
	return tm, nil
}

// backMap builds rolling hills over a band of water. Water tiles use the
// cycled palette entries.
func (p *Platformer) backMap() (*resource.Tilemap, error) {
	pal, err := resource.NewPalette(32)
	if err != nil {
		return nil, err
	}
	p.add(pal)
	if err := ramp(pal, 1, 4, 0xFF285828, 0xFF4C8C3C); err != nil {
		return nil, err
	}
	if err := ramp(pal, waterFirst, waterCount, 0xFF1848A0, 0xFF60A0E0, 0xFF1848A0); err != nil {
		return nil, err
	}
	ts, err := newTileset(&p.bag, tileSize, pal,
		solid(2), // hill body
		func(x, y int) uint8 { // hill slope up
			if y >= tileSize-1-x {
				return uint8(1 + y%4)
			}
			return 0
		},
		func(x, y int) uint8 { // hill slope down
			if y >= x {
				return uint8(1 + y%4)
			}
			return 0
		},
		func(x, y int) uint8 { return uint8(waterFirst + (x/2+y)%waterCount) }, // water
	)
	if err != nil {
		return nil, err
	}

	rows := p.height / tileSize
	tm, err := resource.NewTilemap(rows, mapCols, nil, 0, ts)
	if err != nil {
		return nil, err
	}
	p.add(tm)
	waterRow := p.water / tileSize
	for col := 0; col < mapCols; col++ {
		// triangular hills 8 tiles wide
		peak := 4 - abs(col%8-4)
		top := waterRow - peak
		for row := top; row < waterRow; row++ {
			tile := resource.Tile{Index: 1}
			if row == top && peak > 0 {
				if col%8 < 4 {
					tile.Index = 2
				} else {
					tile.Index = 3
				}
			}
			if err := tm.SetTile(row, col, tile); err != nil {
				return nil, err
			}
		}
		for row := waterRow; row < rows; row++ {
			if err := tm.SetTile(row, col, resource.Tile{Index: 4}); err != nil {
				return nil, err
			}
		}
	}
	return tm, nil
}

// raster sets the sky color and the background scroll of each line.
func (p *Platformer) raster(line int) {
	if line < p.horizon {
		top := resource.Lerp(skyDay[0], skyDusk[0], int(p.dusk*255), 255)
		bottom := resource.Lerp(skyDay[1], skyDusk[1], int(p.dusk*255), 255)
		r, g, b := resource.Channels(resource.Lerp(top, bottom, line, p.horizon))
		p.e.SetBGColor(r, g, b)
	}

	var x float64
	switch {
	case line < p.water:
		x = p.x / 3
	default:
		// water bands speed up towards the bottom of the screen
		depth := float64(line-p.water) / float64(p.height-p.water)
		x = p.x * (0.4 + 0.6*depth)
	}
	_ = p.e.SetLayerPosition(layerBack, int(x), 0)
}

func (p *Platformer) Update(frame int, in Controls) error {
	switch {
	case in.Input(action.Right):
		p.speed = min(p.speed+0.25, 4)
	case in.Input(action.Left):
		p.speed = max(p.speed-0.25, -4)
	}
	p.x += p.speed
	if p.x < 0 {
		p.x += float64(mapCols * tileSize * 3)
	}

	v, done := p.fade.Update(1.0 / 60)
	p.dusk = v
	if p.fadeOut {
		p.dusk = 1 - v
	}
	if done {
		p.fadeOut = !p.fadeOut
		p.fade = gween.New(0, 1, 8, ease.InOutSine)
	}
	return p.e.SetLayerPosition(layerFront, int(p.x), 0)
}

func (p *Platformer) Close() error {
	if p.e != nil {
		p.e.SetRasterCallback(nil)
		_ = p.e.DisablePaletteAnimation(0)
	}
	return p.release()
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
