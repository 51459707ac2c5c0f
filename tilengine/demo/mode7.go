package demo

import (
	"github.com/valerio/go-tilengine/tilengine"
	"github.com/valerio/go-tilengine/tilengine/input/action"
	"github.com/valerio/go-tilengine/tilengine/resource"
)

const (
	mode7Floor = 0
	mode7Sky   = 1
	mode7Cols  = 64
)

// Mode7 draws a rotating floor in perspective by changing the floor layer
// transform on every line below the horizon.
type Mode7 struct {
	bag
	e      *tilengine.Engine
	width  int
	height int

	horizon int
	angle   float64
	x, y    float64
	speed   float64
}

func (m *Mode7) Name() string        { return "mode7" }
func (m *Mode7) Description() string { return "per line affine transform of a floor layer" }

func (m *Mode7) Setup(e *tilengine.Engine) error {
	if err := checkSlots(e); err != nil {
		return err
	}
	m.e = e
	m.width, m.height = e.Width(), e.Height()
	m.horizon = m.height / 3
	m.speed = 1

	pal, err := resource.NewPalette(16)
	if err != nil {
		return err
	}
	m.add(pal)
	if err := ramp(pal, 1, 4, 0xFF207020, 0xFF40A040); err != nil {
		return err
	}
	if err := ramp(pal, 5, 4, 0xFF707070, 0xFFB0B0B0); err != nil {
		return err
	}
	if err := ramp(pal, 9, 2, 0xFFF0F0F0, 0xFFD02020); err != nil {
		return err
	}
	ts, err := newTileset(&m.bag, tileSize, pal,
		func(x, y int) uint8 { return uint8(1 + (x^y)%4) },     // grass
		func(x, y int) uint8 { return uint8(5 + (x+y)%4) },     // road
		func(x, y int) uint8 { return uint8(9 + (x/4+y/4)%2) }, // kerb
	)
	if err != nil {
		return err
	}

	floor, err := resource.NewTilemap(mode7Cols, mode7Cols, nil, 0, ts)
	if err != nil {
		return err
	}
	m.add(floor)
	for row := 0; row < mode7Cols; row++ {
		for col := 0; col < mode7Cols; col++ {
			// a square track around the map center
			d := max(abs(row-mode7Cols/2), abs(col-mode7Cols/2))
			tile := resource.Tile{Index: 1}
			switch {
			case d == 12 || d == 20:
				tile.Index = 3
			case d > 12 && d < 20:
				tile.Index = 2
			}
			if err := floor.SetTile(row, col, tile); err != nil {
				return err
			}
		}
	}

	sky, err := m.skyMap()
	if err != nil {
		return err
	}
	if err := e.SetLayerTilemap(mode7Floor, floor); err != nil {
		return err
	}
	if err := e.SetLayerClip(mode7Floor, 0, m.horizon, m.width, m.height); err != nil {
		return err
	}
	if err := e.SetLayerTilemap(mode7Sky, sky); err != nil {
		return err
	}
	if err := e.SetLayerClip(mode7Sky, 0, 0, m.width, m.horizon); err != nil {
		return err
	}
	e.SetBGColor(0x60, 0xA0, 0xF0)

	m.x = float64(mode7Cols * tileSize / 2)
	m.y = float64(mode7Cols*tileSize/2 + 16*tileSize)
	e.SetRasterCallback(m.raster)
	return nil
}

// skyMap builds a strip of distant mountains shown above the horizon.
func (m *Mode7) skyMap() (*resource.Tilemap, error) {
	pal, err := resource.NewPalette(4)
	if err != nil {
		return nil, err
	}
	m.add(pal)
	if err := ramp(pal, 1, 2, 0xFF404868, 0xFF687090); err != nil {
		return nil, err
	}
	ts, err := newTileset(&m.bag, tileSize, pal,
		solid(1),
		func(x, y int) uint8 {
			if y >= tileSize-1-x {
				return 2
			}
			return 0
		},
		func(x, y int) uint8 {
			if y >= x {
				return 2
			}
			return 0
		},
	)
	if err != nil {
		return nil, err
	}
	rows := (m.horizon + tileSize - 1) / tileSize
	tm, err := resource.NewTilemap(rows, mode7Cols, nil, 0, ts)
	if err != nil {
		return nil, err
	}
	m.add(tm)
	for col := 0; col < mode7Cols; col++ {
		peak := 3 - abs(col%6-3)
		for row := rows - peak; row < rows; row++ {
			tile := resource.Tile{Index: 1}
			if row == rows-peak {
				tile.Index = 2
				if col%6 >= 3 {
					tile.Index = 3
				}
			}
			if err := tm.SetTile(row, col, tile); err != nil {
				return nil, err
			}
		}
	}
	return tm, nil
}

// raster projects the floor: lines close to the horizon sample a wide area
// far ahead of the camera, lines at the bottom a narrow one right in front.
func (m *Mode7) raster(line int) {
	if line < m.horizon {
		return
	}
	depth := float64(line-m.horizon+1) / float64(m.height-m.horizon)
	scale := 0.1 + 1.9*depth
	dist := float64(tileSize*4) / scale
	s, c := sincos(m.angle)
	hstart := int(m.x+s*dist) - m.width/2
	vstart := int(m.y-c*dist) - line
	_ = m.e.SetLayerPosition(mode7Floor, hstart, vstart)
	_ = m.e.SetLayerTransform(mode7Floor, m.angle, float64(m.width)/2, float64(line), scale, scale)
}

func (m *Mode7) Update(frame int, in Controls) error {
	if in.Input(action.Left) {
		m.angle -= 2
	}
	if in.Input(action.Right) {
		m.angle += 2
	}
	if in.Input(action.Up) {
		m.speed = min(m.speed+0.1, 3)
	}
	if in.Input(action.Down) {
		m.speed = max(m.speed-0.1, -3)
	}
	if !in.Input(action.Left) && !in.Input(action.Right) {
		m.angle += 0.25
	}
	s, c := sincos(m.angle)
	m.x += s * m.speed
	m.y -= c * m.speed

	// the sky scrolls with the heading
	return m.e.SetLayerPosition(mode7Sky, int(m.angle*float64(mode7Cols*tileSize)/360), 0)
}

func (m *Mode7) Close() error {
	if m.e != nil {
		m.e.SetRasterCallback(nil)
	}
	return m.release()
}
