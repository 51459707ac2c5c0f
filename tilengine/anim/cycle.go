package anim

import (
	"github.com/valerio/go-tilengine/tilengine/errcode"
	"github.com/valerio/go-tilengine/tilengine/resource"
)

// Cycle rotates ranges of a palette according to the color strips of a
// cycle sequence. Rotated colors are read from a source copy taken when
// the cycle starts, so the target palette can be written every frame.
type Cycle struct {
	target *resource.Palette
	source *resource.Palette
	seq    *resource.Sequence
	blend  bool
	timers []timer
	delays map[int]int
}

// NewCycle binds seq to target. In blend mode colors fade between steps
// instead of switching at once.
func NewCycle(target *resource.Palette, seq *resource.Sequence, blend bool) (*Cycle, error) {
	if target == nil || target.Deleted() {
		return nil, errcode.New("SetPaletteAnimation", errcode.RefPalette)
	}
	if seq == nil || seq.Deleted() || !seq.IsCycle() {
		return nil, errcode.New("SetPaletteAnimation", errcode.RefSequence)
	}
	for _, s := range seq.Strips() {
		if int(s.First)+int(s.Count) > target.Len() {
			return nil, errcode.New("SetPaletteAnimation", errcode.IdxPicture)
		}
	}
	source, err := target.Clone()
	if err != nil {
		return nil, err
	}
	return &Cycle{
		target: target,
		source: source,
		seq:    seq,
		blend:  blend,
		timers: make([]timer, len(seq.Strips())),
	}, nil
}

// Target returns the animated palette.
func (c *Cycle) Target() *resource.Palette { return c.target }

// Sequence returns the cycle sequence.
func (c *Cycle) Sequence() *resource.Sequence { return c.seq }

// SetSource replaces the colors the cycle rotates.
func (c *Cycle) SetSource(p *resource.Palette) error {
	return c.source.CopyFrom(p)
}

// Close releases the source copy. The target palette keeps its current
// colors.
func (c *Cycle) Close() {
	if !c.source.Deleted() {
		c.source.Delete()
	}
}

// SetDelay overrides the delay of one strip.
func (c *Cycle) SetDelay(strip, delay int) error {
	if strip < 0 || strip >= len(c.timers) {
		return errcode.New("SetAnimationDelay", errcode.IdxPicture)
	}
	if c.delays == nil {
		c.delays = make(map[int]int)
	}
	c.delays[strip] = delay
	return nil
}

func (c *Cycle) delay(strip int, s resource.ColorStrip) int {
	if d, ok := c.delays[strip]; ok {
		return d
	}
	return s.Delay
}

// Update advances the strips due at frame and writes the rotated colors to
// the target palette. It reports false once either palette or the sequence
// has been deleted.
func (c *Cycle) Update(frame int) bool {
	if c.target.Deleted() || c.seq.Deleted() {
		return false
	}
	src := c.source.Entries()
	dst := c.target.Entries()

	for i, s := range c.seq.Strips() {
		count := int(s.Count)
		delay := c.delay(i, s)
		if count == 0 || delay <= 0 {
			continue
		}
		t := &c.timers[i]
		if t.tick(frame, delay) {
			t.pos = (t.pos + 1) % count
		}

		num := 0
		if c.blend {
			num = t.progress(frame, delay)
		}
		first := int(s.First)
		if first+count > len(src) || first+count > len(dst) {
			continue
		}
		for j := 0; j < count; j++ {
			from := rotate(j, t.pos, count, s.Dir)
			color := src[first+from]
			if num > 0 {
				to := rotate(j, t.pos+1, count, s.Dir)
				color = resource.Lerp(color, src[first+to], num, delay)
			}
			dst[first+j] = color
		}
	}
	return true
}

// rotate returns the source offset shown at offset j after pos steps.
// Upward cycles move colors to higher entries.
func rotate(j, pos, count int, down bool) int {
	if down {
		return (j + pos) % count
	}
	return ((j-pos)%count + count) % count
}
