package video

import "github.com/valerio/go-tilengine/tilengine/display"

// FrameBuffer is a 32 bit ARGB render target. Rows are Stride pixels apart,
// which may exceed the visible width.
type FrameBuffer struct {
	width  int
	height int
	stride int
	buffer []uint32
}

// NewFrameBuffer creates a frame buffer with the specified size.
func NewFrameBuffer(width, height int) *FrameBuffer {
	return &FrameBuffer{
		width:  width,
		height: height,
		stride: width,
		buffer: make([]uint32, width*height),
	}
}

// WrapFrameBuffer renders into caller memory. pitch is the distance between
// rows in bytes.
func WrapFrameBuffer(buf []uint32, width, height, pitch int) *FrameBuffer {
	return &FrameBuffer{
		width:  width,
		height: height,
		stride: pitch / display.BytesPerPixel,
		buffer: buf,
	}
}

func (fb *FrameBuffer) Width() int  { return fb.width }
func (fb *FrameBuffer) Height() int { return fb.height }

// Pitch returns the distance between rows in bytes.
func (fb *FrameBuffer) Pitch() int { return fb.stride * display.BytesPerPixel }

func (fb *FrameBuffer) GetPixel(x, y int) uint32 {
	return fb.buffer[y*fb.stride+x]
}

func (fb *FrameBuffer) SetPixel(x, y int, color uint32) {
	fb.buffer[y*fb.stride+x] = color
}

// Row returns the visible pixels of line y.
func (fb *FrameBuffer) Row(y int) []uint32 {
	start := y * fb.stride
	return fb.buffer[start : start+fb.width]
}

// ToSlice returns the backing buffer, including any row padding.
func (fb *FrameBuffer) ToSlice() []uint32 {
	return fb.buffer
}

// Fill sets every visible pixel to color.
func (fb *FrameBuffer) Fill(color uint32) {
	for y := 0; y < fb.height; y++ {
		row := fb.Row(y)
		for x := range row {
			row[x] = color
		}
	}
}
