package render

import "github.com/valerio/go-tilengine/tilengine/video"

// UpperHalfBlock is drawn with the top pixel as foreground and the bottom
// pixel as background, so each terminal cell shows two frame rows.
const UpperHalfBlock = '▀'

// Sampler maps terminal cells to frame buffer pixels, shrinking the frame
// by an integer step until it fits the available cells.
type Sampler struct {
	Step int
}

// FitSampler returns the sampler for a frame of fw x fh pixels shown in a
// cols x rows cell area.
func FitSampler(fw, fh, cols, rows int) Sampler {
	step := 1
	if cols <= 0 || rows <= 0 {
		return Sampler{Step: step}
	}
	for fw > cols*step || fh > rows*2*step {
		step++
	}
	return Sampler{Step: step}
}

// Cells returns the size in cells of the sampled frame.
func (s Sampler) Cells(fw, fh int) (cols, rows int) {
	cols = (fw + s.Step - 1) / s.Step
	rows = (fh + 2*s.Step - 1) / (2 * s.Step)
	return cols, rows
}

// Pixels returns the colors of the top and bottom halves of a cell. The
// bottom half repeats the top one past the last frame row.
func (s Sampler) Pixels(frame *video.FrameBuffer, col, row int) (top, bottom uint32) {
	x := col * s.Step
	y := row * 2 * s.Step
	top = frame.GetPixel(x, y)
	bottom = top
	if y+s.Step < frame.Height() {
		bottom = frame.GetPixel(x, y+s.Step)
	}
	return top, bottom
}

// FramePosition converts a cell position to frame coordinates.
func (s Sampler) FramePosition(col, row int) (x, y int) {
	return col * s.Step, row * 2 * s.Step
}
