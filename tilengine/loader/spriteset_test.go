package loader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valerio/go-tilengine/tilengine/errcode"
	"github.com/valerio/go-tilengine/tilengine/resource"
)

func TestLoadSpritesetDescriptors(t *testing.T) {
	atlas := indexedPNG(t, 16, 8, func(x, y int) uint8 { return uint8(x / 8) })
	want := []resource.SpriteData{
		{Name: "idle", X: 0, Y: 0, W: 8, H: 8},
		{Name: "jump", X: 8, Y: 0, W: 8, H: 8},
	}

	tests := []struct {
		name string
		ext  string
		desc string
	}{
		{"text", ".txt", "# hero\nidle = 0 0 8 8\njump = 8 0 8 8\n"},
		{"csv", ".csv", "idle,0,0,8,8\njump, 8, 0, 8, 8\n"},
		{"json hash", ".json", `{"frames":{"jump.png":{"frame":{"x":8,"y":0,"w":8,"h":8}},"idle.png":{"frame":{"x":0,"y":0,"w":8,"h":8}}}}`},
		{"json array", ".json", `{"frames":[{"filename":"idle","frame":{"x":0,"y":0,"w":8,"h":8}},{"filename":"jump","frame":{"x":8,"y":0,"w":8,"h":8}}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, _ := writeFiles(t, map[string][]byte{
				"hero.png":      atlas,
				"hero" + tt.ext: []byte(tt.desc),
			})
			ss, err := l.LoadSpriteset("hero")
			require.NoError(t, err)
			defer ss.Delete()

			require.Equal(t, len(want), ss.Count())
			for i, d := range want {
				assert.Equal(t, d, ss.Data(i))
			}
			assert.Equal(t, uint8(1), ss.Pixel(ss.Find("jump"), 0, 0))
		})
	}
}

func TestLoadSpritesetErrors(t *testing.T) {
	atlas := indexedPNG(t, 8, 8, func(x, y int) uint8 { return 1 })
	l, _ := writeFiles(t, map[string][]byte{
		"nodesc.png": atlas,
		"bad.png":    atlas,
		"bad.txt":    []byte("idle 0 0 8 8\n"),
		"big.png":    atlas,
		"big.csv":    []byte("idle,0,0,16,8\n"),
	})

	_, err := l.LoadSpriteset("nodesc")
	assert.ErrorIs(t, err, errcode.ErrFileNotFound)

	_, err = l.LoadSpriteset("bad")
	assert.ErrorIs(t, err, errcode.ErrWrongFormat)

	_, err = l.LoadSpriteset("big")
	assert.ErrorIs(t, err, errcode.ErrWrongSize)

	_, err = l.LoadSpriteset("none")
	assert.ErrorIs(t, err, errcode.ErrFileNotFound)
}
