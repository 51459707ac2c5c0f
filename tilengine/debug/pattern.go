package debug

import (
	"fmt"

	"github.com/valerio/go-tilengine/tilengine/display"
	"github.com/valerio/go-tilengine/tilengine/video"
)

// Pattern selects a test pattern.
type Pattern int

const (
	Checkerboard Pattern = iota
	Gradient
	Stripes
	Diagonal
)

var patternNames = [display.TestPatternCount]string{"checkerboard", "gradient", "stripes", "diagonal"}

func (p Pattern) String() string {
	if p < 0 || int(p) >= len(patternNames) {
		return "unknown"
	}
	return patternNames[p]
}

// ParsePattern returns the pattern with the given name.
func ParsePattern(name string) (Pattern, error) {
	for i, n := range patternNames {
		if n == name {
			return Pattern(i), nil
		}
	}
	return 0, fmt.Errorf("unknown test pattern %q", name)
}

// Next cycles to the following pattern.
func (p Pattern) Next() Pattern {
	return (p + 1) % display.TestPatternCount
}

const (
	patternWhite = 0xFFFFFFFF
	patternBlack = 0xFF000000
	patternLight = 0xFFAAAAAA
	patternDark  = 0xFF555555
)

// DrawTestPattern fills the frame with a pattern. offset scrolls the
// animated patterns.
func DrawTestPattern(frame *video.FrameBuffer, p Pattern, offset int) {
	w := frame.Width()
	for y := 0; y < frame.Height(); y++ {
		row := frame.Row(y)
		for x := range row {
			var c uint32
			switch p {
			case Checkerboard:
				c = patternDark
				if ((x/display.TestPatternTileSize)+(y/display.TestPatternTileSize))%2 == 0 {
					c = patternWhite
				}
			case Gradient:
				v := uint32(x * 255 / max(w-1, 1))
				c = 0xFF000000 | v<<16 | uint32(y&0xFF)<<8 | (255 - v)
			case Stripes:
				c = patternDark
				if ((x+offset)/display.TestPatternStripeWidth)%2 == 0 {
					c = patternWhite
				}
			case Diagonal:
				c = patternDark
				if ((x+y+offset)/display.TestPatternTileSize)%2 == 0 {
					c = patternLight
				}
			default:
				c = patternBlack
			}
			row[x] = c
		}
	}
}
