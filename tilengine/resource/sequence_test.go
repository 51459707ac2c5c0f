package resource

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valerio/go-tilengine/tilengine/errcode"
)

func TestNewSequence(t *testing.T) {
	_, err := NewSequence("empty", 0, nil)
	assert.ErrorIs(t, err, errcode.ErrWrongSize)

	frames := []SequenceFrame{{Index: 1, Delay: 4}, {Index: 2, Delay: 6}}
	seq, err := NewSequence("water", 7, frames)
	require.NoError(t, err)
	defer seq.Delete()

	frames[0].Index = 9
	assert.Equal(t, 1, seq.Frames()[0].Index, "frames are copied")
	assert.Equal(t, 7, seq.Target())
	assert.False(t, seq.IsCycle())

	info, err := seq.Info()
	require.NoError(t, err)
	assert.Equal(t, SequenceInfo{Name: "water", NumFrames: 2}, info)
}

func TestNewCycle(t *testing.T) {
	_, err := NewCycle("bad", []ColorStrip{{Delay: 1, First: 250, Count: 10}})
	assert.ErrorIs(t, err, errcode.ErrIdxPicture)

	cycle, err := NewCycle("waves", []ColorStrip{{Delay: 5, First: 16, Count: 8}})
	require.NoError(t, err)
	defer cycle.Delete()
	assert.True(t, cycle.IsCycle())

	clone, err := cycle.Clone()
	require.NoError(t, err)
	defer clone.Delete()
	assert.Equal(t, cycle.Strips(), clone.Strips())
}

func TestNewSpriteSequence(t *testing.T) {
	ss := newTestSpriteset(t)
	defer ss.Delete()

	seq, err := NewSpriteSequence("walk", ss, "walk", 5)
	require.NoError(t, err)
	defer seq.Delete()
	assert.Equal(t, []SequenceFrame{{0, 5}, {1, 5}, {2, 5}}, seq.Frames())

	_, err = NewSpriteSequence("run", ss, "run", 5)
	assert.ErrorIs(t, err, errcode.ErrIdxPicture)
}

func TestSequencePack(t *testing.T) {
	sp, err := NewSequencePack()
	require.NoError(t, err)

	a, _ := NewSequence("a", 0, []SequenceFrame{{Index: 1, Delay: 1}})
	b, _ := NewSequence("b", 0, []SequenceFrame{{Index: 2, Delay: 1}})
	require.NoError(t, sp.Add(a))
	require.NoError(t, sp.Add(b))
	assert.Equal(t, 2, sp.Count())

	got, err := sp.Find("b")
	require.NoError(t, err)
	assert.Same(t, b, got)
	got, err = sp.Get(0)
	require.NoError(t, err)
	assert.Same(t, a, got)

	_, err = sp.Find("c")
	assert.ErrorIs(t, err, errcode.ErrRefSequence)
	_, err = sp.Get(2)
	assert.ErrorIs(t, err, errcode.ErrIdxPicture)

	require.NoError(t, sp.Delete())
	assert.True(t, a.Deleted())
	assert.True(t, b.Deleted())
	assert.ErrorIs(t, sp.Delete(), errcode.ErrRefSeqPack)
}
