package demo

import (
	"time"

	"github.com/valerio/go-tilengine/tilengine"
	"github.com/valerio/go-tilengine/tilengine/resource"
)

// Engine shape used by the benchmark.
const (
	BenchWidth   = 400
	BenchHeight  = 240
	BenchLayers  = 1
	BenchSprites = 250

	benchSpriteW = 15
	benchSpriteH = 21
)

// BenchResult is the throughput of one benchmark mode.
type BenchResult struct {
	Mode    string
	Frames  int
	Pixels  int // pixels drawn per frame
	Elapsed time.Duration
}

// MPixels returns the throughput in millions of pixels per second.
func (r BenchResult) MPixels() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Frames) * float64(r.Pixels) / r.Elapsed.Seconds() / 1e6
}

// benchStep changes the engine state for the next mode. Steps build on
// each other and run in order.
type benchStep struct {
	name  string
	apply func(b *Bench) error
}

var benchSteps = []benchStep{
	{"normal layer", func(b *Bench) error { return nil }},
	{"scaling layer", func(b *Bench) error { return b.e.SetLayerScaling(0, 2, 2) }},
	{"affine layer", func(b *Bench) error { return b.e.SetLayerTransform(0, 45, 0, 0, 1, 1) }},
	{"blend layer", func(b *Bench) error {
		if err := b.e.ResetLayerMode(0); err != nil {
			return err
		}
		return b.e.SetLayerBlendMode(0, tilengine.BlendMix50, 128)
	}},
	{"scaling blend layer", func(b *Bench) error { return b.e.SetLayerScaling(0, 2, 2) }},
	{"affine blend layer", func(b *Bench) error { return b.e.SetLayerTransform(0, 45, 0, 0, 1, 1) }},
	{"normal sprites", (*Bench).sprites},
	{"colliding sprites", func(b *Bench) error {
		for n := 0; n < BenchSprites; n++ {
			if err := b.e.EnableSpriteCollision(n, true); err != nil {
				return err
			}
		}
		return nil
	}},
}

// BenchModes lists the benchmark modes in the order they run.
func BenchModes() []string {
	names := make([]string, len(benchSteps))
	for i, s := range benchSteps {
		names[i] = s.name
	}
	return names
}

// Bench measures rendering throughput on an engine created with the Bench
// constants.
type Bench struct {
	bag
	e      *tilengine.Engine
	pixels int
}

// NewBench builds the benchmark tilemap and spriteset on e.
func NewBench(e *tilengine.Engine) (*Bench, error) {
	b := &Bench{e: e, pixels: e.Width() * e.Height()}
	if err := b.setup(); err != nil {
		_ = b.release()
		return nil, err
	}
	return b, nil
}

func (b *Bench) setup() error {
	if b.e.NumSprites() < BenchSprites || b.e.NumLayers() < BenchLayers {
		return errSlots(b.e)
	}
	pal, err := resource.NewPalette(resource.MaxPaletteEntries)
	if err != nil {
		return err
	}
	b.add(pal)
	if err := ramp(pal, 1, 255, 0xFF102040, 0xFF40C0A0, 0xFFF0E060); err != nil {
		return err
	}
	tiles := make([]pixelFunc, 16)
	for i := range tiles {
		seed := i
		tiles[i] = func(x, y int) uint8 { return uint8(1 + (x*7+y*13+seed*31)%255) }
	}
	ts, err := newTileset(&b.bag, tileSize, pal, tiles...)
	if err != nil {
		return err
	}
	const size = 64
	cells := make([]resource.Tile, size*size)
	for i := range cells {
		cells[i] = resource.Tile{Index: uint16(1 + (i*5)%16)}
		if i%7 == 0 {
			cells[i].Flags = resource.FlagFlipX
		}
	}
	tm, err := resource.NewTilemap(size, size, cells, 0, ts)
	if err != nil {
		return err
	}
	b.add(tm)
	b.e.DisableBGColor()
	return b.e.SetLayerTilemap(0, tm)
}

// sprites replaces the layer with a grid of sprites.
func (b *Bench) sprites() error {
	if err := b.e.DisableLayer(0); err != nil {
		return err
	}
	ss, err := newSpriteset(&b.bag, benchSpriteW, benchSpriteH, []string{"leo"}, []pixelFunc{
		func(x, y int) uint8 {
			if (x+y)%5 == 0 {
				return 0
			}
			return uint8(1 + (x+y)%3)
		},
	})
	if err != nil {
		return err
	}
	if err := ramp(ss.Palette(), 1, 3, 0xFFE04020, 0xFFF0C040); err != nil {
		return err
	}
	for n := 0; n < BenchSprites; n++ {
		if err := b.e.ConfigSprite(n, ss, tilengine.FlagNone); err != nil {
			return err
		}
		if err := b.e.SetSpritePosition(n, (n%25)*15, (n/25)*21); err != nil {
			return err
		}
	}
	b.pixels = BenchSprites * benchSpriteW * benchSpriteH
	return nil
}

// Run renders frames frames in every mode and reports the throughput. The
// optional progress function is called after each mode.
func (b *Bench) Run(frames int, progress func(BenchResult)) ([]BenchResult, error) {
	results := make([]BenchResult, 0, len(benchSteps))
	for _, step := range benchSteps {
		if err := step.apply(b); err != nil {
			return results, err
		}
		start := time.Now()
		for f := 1; f <= frames; f++ {
			if err := b.e.UpdateFrame(f); err != nil {
				return results, err
			}
		}
		r := BenchResult{Mode: step.name, Frames: frames, Pixels: b.pixels, Elapsed: time.Since(start)}
		results = append(results, r)
		if progress != nil {
			progress(r)
		}
	}
	return results, nil
}

// Close disables the benchmark sprites and releases its resources.
func (b *Bench) Close() error {
	for n := 0; n < min(BenchSprites, b.e.NumSprites()); n++ {
		_ = b.e.DisableSprite(n)
	}
	return b.release()
}
