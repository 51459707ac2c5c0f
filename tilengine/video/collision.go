package video

// CollisionBuffer records which sprite drew each pixel of the current line.
//
// Only sprites with collision detection enabled claim pixels. When a sprite
// draws an opaque pixel over a pixel already claimed by another sprite,
// both are flagged as colliding. Transparent pixels never claim, so sprites
// whose bounding boxes overlap without touching opaque pixels don't collide.
type CollisionBuffer struct {
	owner []int
}

// NewCollisionBuffer creates a buffer for lines of the given width.
func NewCollisionBuffer(width int) *CollisionBuffer {
	c := &CollisionBuffer{owner: make([]int, width)}
	c.Clear()
	return c
}

// Clear resets the buffer for a new scanline.
func (c *CollisionBuffer) Clear() {
	for i := range c.owner {
		c.owner[i] = -1
	}
}

// Claim marks pixel x as drawn by sprite and returns the sprite that drew it
// before, or -1.
func (c *CollisionBuffer) Claim(x, sprite int) int {
	if x < 0 || x >= len(c.owner) {
		return -1
	}
	prev := c.owner[x]
	c.owner[x] = sprite
	if prev == sprite {
		return -1
	}
	return prev
}

// Owner returns the last sprite that claimed pixel x, or -1.
func (c *CollisionBuffer) Owner(x int) int {
	if x < 0 || x >= len(c.owner) {
		return -1
	}
	return c.owner[x]
}
