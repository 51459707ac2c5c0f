package resource

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valerio/go-tilengine/tilengine/errcode"
)

func TestNewPaletteSize(t *testing.T) {
	tests := []struct {
		name    string
		entries int
		wantErr bool
	}{
		{"zero", 0, true},
		{"negative", -4, true},
		{"one", 1, false},
		{"full", 256, false},
		{"too large", 257, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewPalette(tt.entries)
			if tt.wantErr {
				assert.ErrorIs(t, err, errcode.ErrWrongSize)
				assert.Nil(t, p)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.entries, p.Len())
			require.NoError(t, p.Delete())
		})
	}
}

func TestPaletteSetColorRoundTrip(t *testing.T) {
	p, err := NewPalette(16)
	require.NoError(t, err)
	defer p.Delete()

	require.NoError(t, p.SetColor(3, 115, 48, 57))
	c, err := p.Color(3)
	require.NoError(t, err)
	r, g, b := Channels(c)
	assert.Equal(t, [3]uint8{115, 48, 57}, [3]uint8{r, g, b})
	assert.Equal(t, uint32(0xFF), c>>24, "colors are opaque")

	assert.ErrorIs(t, p.SetColor(16, 0, 0, 0), errcode.ErrIdxPicture)
	_, err = p.Color(-1)
	assert.ErrorIs(t, err, errcode.ErrIdxPicture)
}

func TestPaletteArithmeticClamps(t *testing.T) {
	p, err := NewPalette(4)
	require.NoError(t, err)
	defer p.Delete()

	require.NoError(t, p.SetColor(0, 200, 100, 10))
	require.NoError(t, p.SetColor(1, 200, 100, 10))

	require.NoError(t, p.AddColor(100, 100, 100, 0, 1))
	c, _ := p.Color(0)
	r, g, b := Channels(c)
	assert.Equal(t, [3]uint8{255, 200, 110}, [3]uint8{r, g, b})

	require.NoError(t, p.SubColor(50, 150, 20, 1, 1))
	c, _ = p.Color(1)
	r, g, b = Channels(c)
	assert.Equal(t, [3]uint8{150, 0, 0}, [3]uint8{r, g, b})

	require.NoError(t, p.SetColor(2, 200, 100, 255))
	require.NoError(t, p.ModColor(255, 0, 128, 2, 1))
	c, _ = p.Color(2)
	r, g, b = Channels(c)
	assert.Equal(t, [3]uint8{200, 0, 128}, [3]uint8{r, g, b})

	assert.ErrorIs(t, p.AddColor(1, 1, 1, 3, 2), errcode.ErrIdxPicture)
}

func TestMixPalettes(t *testing.T) {
	a, _ := NewPalette(2)
	b, _ := NewPalette(2)
	dst, _ := NewPalette(2)
	defer a.Delete()
	defer b.Delete()
	defer dst.Delete()

	require.NoError(t, b.SetColor(0, 255, 255, 255))
	require.NoError(t, b.SetColor(1, 100, 0, 0))

	require.NoError(t, MixPalettes(a, b, dst, 0))
	assert.Equal(t, a.Entries(), dst.Entries())

	require.NoError(t, MixPalettes(a, b, dst, 255))
	assert.Equal(t, b.Entries(), dst.Entries())

	require.NoError(t, MixPalettes(a, b, dst, 128))
	r, _, _ := Channels(dst.Entries()[0])
	assert.InDelta(t, 128, int(r), 1)
}

func TestPaletteDoubleDelete(t *testing.T) {
	p, err := NewPalette(8)
	require.NoError(t, err)

	require.NoError(t, p.Delete())
	err = p.Delete()
	require.Error(t, err)
	assert.Equal(t, errcode.RefPalette, errcode.Of(err))

	var e *errcode.Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, "DeletePalette", e.Op)

	assert.ErrorIs(t, p.SetColor(0, 1, 2, 3), errcode.ErrRefPalette)
}

func TestPaletteCloneIsIndependent(t *testing.T) {
	p, _ := NewPalette(4)
	defer p.Delete()
	require.NoError(t, p.SetColor(1, 10, 20, 30))

	clone, err := p.Clone()
	require.NoError(t, err)
	defer clone.Delete()

	require.NoError(t, p.SetColor(1, 0, 0, 0))
	c, _ := clone.Color(1)
	assert.Equal(t, RGB(10, 20, 30), c)
}

func TestStatsTracksLiveResources(t *testing.T) {
	objects, bytes := Stats()

	p, _ := NewPalette(16)
	o, b := Stats()
	assert.Equal(t, objects+1, o)
	assert.Equal(t, bytes+64, b)

	require.NoError(t, p.Delete())
	o, b = Stats()
	assert.Equal(t, objects, o)
	assert.Equal(t, bytes, b)
}
