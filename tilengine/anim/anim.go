// Package anim drives the three kinds of timed animation: palette color
// cycles, sprite frame sequences and tileset tile substitutions.
//
// Animations are advanced with the frame number passed to the renderer.
// Delays are counted in frames.
package anim

// timer tracks the position of a timed sequence and the frame at which it
// advances next.
type timer struct {
	pos     int
	next    int
	started bool
}

// tick reports whether the sequence moves to the next position at frame.
// The first tick only arms the timer.
func (t *timer) tick(frame, delay int) bool {
	if !t.started {
		t.started = true
		t.next = frame + delay
		return false
	}
	if frame < t.next {
		return false
	}
	t.next = frame + delay
	return true
}

// progress returns how far the timer is into the current delay, as a
// fraction num/delay.
func (t *timer) progress(frame, delay int) int {
	if !t.started || delay <= 0 {
		return 0
	}
	elapsed := delay - (t.next - frame)
	return min(max(elapsed, 0), delay)
}

func (t *timer) reset() {
	*t = timer{}
}
