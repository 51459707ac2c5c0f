package timing

import (
	"log/slog"
	"time"
)

// spinThreshold is the remaining wait below which VSyncLimiter spins
// instead of sleeping.
const spinThreshold = 2 * time.Millisecond

// VSyncLimiter paces presented frames to a fixed refresh rate. Frames that
// miss their deadline by more than maxLag are counted as dropped and the
// schedule restarts from the current time.
type VSyncLimiter struct {
	period  time.Duration
	maxLag  time.Duration
	due     time.Time
	frames  int64
	dropped int64

	now   func() time.Time
	sleep func(time.Duration)
}

func NewVSyncLimiter(fps float64) *VSyncLimiter {
	period := FrameDuration(fps)
	return &VSyncLimiter{
		period: period,
		maxLag: period / 2,
		due:    time.Now(),
		now:    time.Now,
		sleep:  time.Sleep,
	}
}

func (v *VSyncLimiter) WaitForNextFrame() {
	now := v.now()
	wait := v.due.Sub(now)
	switch {
	case wait > spinThreshold:
		v.sleep(wait - time.Millisecond)
		fallthrough
	case wait > 0:
		for v.now().Before(v.due) {
		}
	case -wait > v.maxLag:
		v.dropped++
		v.due = now
		if v.dropped%60 == 1 {
			slog.Debug("vsync frame dropped", "late_ms", -wait.Milliseconds(), "dropped", v.dropped)
		}
	}
	v.due = v.due.Add(v.period)
	v.frames++
}

func (v *VSyncLimiter) Reset() {
	v.due = v.now()
	v.frames = 0
	v.dropped = 0
}

// Frames returns the number of frames paced since the last reset.
func (v *VSyncLimiter) Frames() int64 { return v.frames }

// Dropped returns the number of frames that missed their deadline.
func (v *VSyncLimiter) Dropped() int64 { return v.dropped }
