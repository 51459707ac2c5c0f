package timing

import "time"

// TickerLimiter paces a loop with a time.Ticker. Missed ticks are not
// queued, so a slow loop runs at its own rate instead of catching up.
type TickerLimiter struct {
	ticker *time.Ticker
	period time.Duration
}

func NewTickerLimiter(fps float64) *TickerLimiter {
	period := FrameDuration(fps)
	return &TickerLimiter{
		ticker: time.NewTicker(period),
		period: period,
	}
}

func (t *TickerLimiter) WaitForNextFrame() {
	<-t.ticker.C
}

// C returns the tick channel for use in a select.
func (t *TickerLimiter) C() <-chan time.Time {
	return t.ticker.C
}

func (t *TickerLimiter) Reset() {
	t.ticker.Reset(t.period)
}

func (t *TickerLimiter) Stop() {
	t.ticker.Stop()
}
