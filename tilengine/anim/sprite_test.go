package anim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valerio/go-tilengine/tilengine/errcode"
	"github.com/valerio/go-tilengine/tilengine/resource"
)

func walkSequence(t *testing.T) *resource.Sequence {
	t.Helper()
	seq, err := resource.NewSequence("walk", 0, []resource.SequenceFrame{
		{Index: 10, Delay: 2},
		{Index: 11, Delay: 1},
		{Index: 12, Delay: 3},
	})
	require.NoError(t, err)
	return seq
}

func play(p *Player, from, to int) []int {
	var out []int
	for f := from; f < to; f++ {
		out = append(out, p.Update(f))
	}
	return out
}

func TestPlayerLoopsForever(t *testing.T) {
	seq := walkSequence(t)
	defer seq.Delete()
	p, err := NewPlayer(seq, 0)
	require.NoError(t, err)

	assert.Equal(t, []int{10, 10, 11, 12, 12, 12, 10, 10, 11}, play(p, 0, 9))
	assert.False(t, p.Done())
}

func TestPlayerStopsOnLastFrame(t *testing.T) {
	seq := walkSequence(t)
	defer seq.Delete()
	p, err := NewPlayer(seq, 1)
	require.NoError(t, err)

	assert.Equal(t, []int{10, 10, 11, 12, 12, 12, 12, 12}, play(p, 0, 8))
	assert.True(t, p.Done())
	assert.Equal(t, 12, p.Picture())
}

func TestPlayerTwoLoops(t *testing.T) {
	seq := walkSequence(t)
	defer seq.Delete()
	p, _ := NewPlayer(seq, 2)

	got := play(p, 0, 14)
	assert.Equal(t, []int{10, 10, 11, 12, 12, 12, 10, 10, 11, 12, 12, 12, 12, 12}, got)
	assert.True(t, p.Done())
}

func TestPlayerDelayOverride(t *testing.T) {
	seq := walkSequence(t)
	defer seq.Delete()
	p, _ := NewPlayer(seq, 0)
	require.NoError(t, p.SetDelay(0, 4))
	assert.ErrorIs(t, p.SetDelay(3, 1), errcode.ErrIdxPicture)

	assert.Equal(t, []int{10, 10, 10, 10, 11}, play(p, 0, 5))
}

func TestNewPlayerValidates(t *testing.T) {
	cycle, _ := resource.NewCycle("c", []resource.ColorStrip{{Delay: 1, Count: 1}})
	defer cycle.Delete()
	_, err := NewPlayer(cycle, 0)
	assert.ErrorIs(t, err, errcode.ErrRefSequence)

	seq := walkSequence(t)
	defer seq.Delete()
	_, err = NewPlayer(seq, -1)
	assert.ErrorIs(t, err, errcode.ErrWrongSize)
}
