package anim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valerio/go-tilengine/tilengine/errcode"
	"github.com/valerio/go-tilengine/tilengine/resource"
)

// rampPalette returns a palette where entry i is (i, i, i).
func rampPalette(t *testing.T, n int) *resource.Palette {
	t.Helper()
	p, err := resource.NewPalette(n)
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		require.NoError(t, p.SetColor(i, uint8(i), uint8(i), uint8(i)))
	}
	return p
}

func reds(p *resource.Palette, from, to int) []uint8 {
	var out []uint8
	for _, c := range p.Entries()[from:to] {
		r, _, _ := resource.Channels(c)
		out = append(out, r)
	}
	return out
}

func TestCycleRotatesStrip(t *testing.T) {
	tests := []struct {
		name string
		dir  bool
		want [][]uint8
	}{
		{"up", false, [][]uint8{{1, 2, 3, 4}, {4, 1, 2, 3}, {3, 4, 1, 2}}},
		{"down", true, [][]uint8{{1, 2, 3, 4}, {2, 3, 4, 1}, {3, 4, 1, 2}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pal := rampPalette(t, 8)
			defer pal.Delete()
			seq, err := resource.NewCycle("c", []resource.ColorStrip{{Delay: 2, First: 1, Count: 4, Dir: tt.dir}})
			require.NoError(t, err)
			defer seq.Delete()

			c, err := NewCycle(pal, seq, false)
			require.NoError(t, err)

			for step, want := range tt.want {
				for f := 0; f < 2; f++ {
					require.True(t, c.Update(step*2+f))
				}
				assert.Equal(t, want, reds(pal, 1, 5), "step %d", step)
			}
			assert.Equal(t, []uint8{0}, reds(pal, 0, 1), "entries outside the strip are untouched")
		})
	}
}

func TestCycleBlend(t *testing.T) {
	pal := rampPalette(t, 4)
	defer pal.Delete()
	require.NoError(t, pal.SetColor(1, 100, 100, 100))
	require.NoError(t, pal.SetColor(2, 200, 200, 200))
	seq, _ := resource.NewCycle("c", []resource.ColorStrip{{Delay: 4, First: 1, Count: 2, Dir: true}})
	defer seq.Delete()

	c, err := NewCycle(pal, seq, true)
	require.NoError(t, err)

	c.Update(0)
	assert.Equal(t, []uint8{100, 200}, reds(pal, 1, 3))
	c.Update(2)
	assert.Equal(t, []uint8{150, 150}, reds(pal, 1, 3), "halfway between steps")
	c.Update(4)
	assert.Equal(t, []uint8{200, 100}, reds(pal, 1, 3))
}

func TestCycleSourceAndDelay(t *testing.T) {
	pal := rampPalette(t, 4)
	defer pal.Delete()
	seq, _ := resource.NewCycle("c", []resource.ColorStrip{{Delay: 100, First: 0, Count: 2, Dir: true}})
	defer seq.Delete()
	c, err := NewCycle(pal, seq, false)
	require.NoError(t, err)

	other := rampPalette(t, 4)
	defer other.Delete()
	require.NoError(t, other.SetColor(0, 50, 50, 50))
	require.NoError(t, c.SetSource(other))

	require.NoError(t, c.SetDelay(0, 1))
	assert.ErrorIs(t, c.SetDelay(1, 1), errcode.ErrIdxPicture)

	c.Update(0)
	assert.Equal(t, []uint8{50, 1}, reds(pal, 0, 2))
	c.Update(1)
	assert.Equal(t, []uint8{1, 50}, reds(pal, 0, 2))
}

func TestNewCycleValidates(t *testing.T) {
	pal := rampPalette(t, 4)
	defer pal.Delete()
	frames, _ := resource.NewSequence("f", 0, []resource.SequenceFrame{{Index: 1, Delay: 1}})
	defer frames.Delete()

	_, err := NewCycle(pal, frames, false)
	assert.ErrorIs(t, err, errcode.ErrRefSequence)
	_, err = NewCycle(nil, frames, false)
	assert.ErrorIs(t, err, errcode.ErrRefPalette)

	cyc, _ := resource.NewCycle("c", []resource.ColorStrip{{Delay: 1, Count: 2}})
	c, err := NewCycle(pal, cyc, false)
	require.NoError(t, err)
	require.NoError(t, cyc.Delete())
	assert.False(t, c.Update(0), "deleted sequences stop the cycle")
}

func TestNewCycleRejectsStripsPastPalette(t *testing.T) {
	pal := rampPalette(t, 16)
	defer pal.Delete()
	seq, err := resource.NewCycle("c", []resource.ColorStrip{{Delay: 1, First: 8, Count: 16}})
	require.NoError(t, err)
	defer seq.Delete()

	_, err = NewCycle(pal, seq, false)
	assert.ErrorIs(t, err, errcode.ErrIdxPicture)
}

func TestCycleSkipsStripsPastSource(t *testing.T) {
	pal := rampPalette(t, 8)
	defer pal.Delete()
	seq, err := resource.NewCycle("c", []resource.ColorStrip{{Delay: 1, First: 4, Count: 4}})
	require.NoError(t, err)
	defer seq.Delete()

	c, err := NewCycle(pal, seq, false)
	require.NoError(t, err)
	defer c.Close()
	c.source.Delete()
	c.source = rampPalette(t, 4)

	assert.NotPanics(t, func() {
		for f := 0; f < 4; f++ {
			c.Update(f)
		}
	})
	assert.Equal(t, []uint8{4, 5, 6, 7}, reds(pal, 4, 8))
}

func TestCycleClose(t *testing.T) {
	pal := rampPalette(t, 4)
	defer pal.Delete()
	seq, _ := resource.NewCycle("c", []resource.ColorStrip{{Delay: 1, Count: 2}})
	defer seq.Delete()

	before, _ := resource.Stats()
	c, err := NewCycle(pal, seq, false)
	require.NoError(t, err)
	during, _ := resource.Stats()
	assert.Equal(t, before+1, during, "the source copy is a live palette")

	c.Close()
	c.Close()
	after, _ := resource.Stats()
	assert.Equal(t, before, after)
}
