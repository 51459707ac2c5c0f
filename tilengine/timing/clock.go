package timing

import "time"

// Clock measures milliseconds since its creation.
type Clock struct {
	start time.Time
}

func NewClock() *Clock {
	return &Clock{start: time.Now()}
}

// Ticks returns the number of milliseconds elapsed since the clock was
// created. It wraps after about 49 days.
func (c *Clock) Ticks() uint32 {
	return uint32(time.Since(c.start).Milliseconds())
}

// Delay suspends the calling goroutine for ms milliseconds.
func Delay(ms uint32) {
	time.Sleep(time.Duration(ms) * time.Millisecond)
}
