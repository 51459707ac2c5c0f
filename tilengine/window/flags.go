package window

// Flags select how a window is created.
type Flags int

const (
	Fullscreen Flags = 1 << 0
	VSync      Flags = 1 << 1
	S1         Flags = 1 << 2
	S2         Flags = 2 << 2
	S3         Flags = 3 << 2
	S4         Flags = 4 << 2
	S5         Flags = 5 << 2
	Nearest    Flags = 1 << 6

	scaleMask = 7 << 2
)

// Scale returns the pixel scale selected by S1..S5, 0 if none.
func (f Flags) Scale() int {
	return int(f&scaleMask) >> 2
}

func (f Flags) has(flag Flags) bool {
	return f&flag != 0
}
