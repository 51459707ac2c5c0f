package errcode

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeValues(t *testing.T) {
	// values must match the native enumeration
	tests := []struct {
		code     Code
		expected int
	}{
		{OK, 0},
		{OutOfMemory, 1},
		{IdxLayer, 2},
		{IdxSprite, 3},
		{IdxAnimation, 4},
		{IdxPicture, 5},
		{RefTileset, 6},
		{RefTilemap, 7},
		{RefSpriteset, 8},
		{RefPalette, 9},
		{RefSequence, 10},
		{RefSeqPack, 11},
		{RefBitmap, 12},
		{NullPointer, 13},
		{FileNotFound, 14},
		{WrongFormat, 15},
		{WrongSize, 16},
		{Unsupported, 17},
		{RefList, 18},
	}

	for _, tt := range tests {
		t.Run(tt.code.String(), func(t *testing.T) {
			assert.Equal(t, tt.expected, int(tt.code))
		})
	}
	assert.Len(t, Codes(), 19)
}

func TestDescriptions(t *testing.T) {
	assert.Equal(t, "No error", OK.String())
	assert.Equal(t, "Layer index out of range", IdxLayer.String())
	assert.Equal(t, "Invalid ObjectList reference", RefList.String())
	assert.Equal(t, "Invalid error code", Code(99).String())
	assert.Equal(t, "Invalid error code", Code(-1).String())

	for _, c := range Codes() {
		assert.NotEmpty(t, c.String())
	}
}

func TestErrorMatching(t *testing.T) {
	err := New("SetLayerTilemap", IdxLayer)
	assert.True(t, errors.Is(err, ErrIdxLayer))
	assert.False(t, errors.Is(err, ErrIdxSprite))
	assert.Equal(t, "SetLayerTilemap: Layer index out of range", err.Error())

	wrapped := fmt.Errorf("loading level: %w", err)
	assert.True(t, errors.Is(wrapped, ErrIdxLayer))
	assert.Equal(t, IdxLayer, Of(wrapped))
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("unexpected EOF")
	err := Wrap("LoadTilemap", WrongFormat, cause)

	assert.True(t, errors.Is(err, cause))
	assert.True(t, errors.Is(err, ErrWrongFormat))
	assert.Contains(t, err.Error(), "unexpected EOF")
}

func TestOf(t *testing.T) {
	assert.Equal(t, OK, Of(nil))
	assert.Equal(t, RefBitmap, Of(ErrRefBitmap))
	assert.Equal(t, Unsupported, Of(errors.New("plain")))
}
