package debug

import (
	"fmt"
	"time"

	"github.com/valerio/go-tilengine/tilengine/resource"
)

// Stats tracks the frame rate of a running window and formats the status
// line the backends show.
type Stats struct {
	frames    int
	last      time.Time
	lastCount int
	fps       float64
	now       func() time.Time
}

func NewStats() *Stats {
	return &Stats{now: time.Now}
}

// Frame records a presented frame. The rate is recomputed once a second.
func (s *Stats) Frame() {
	now := s.now()
	if s.last.IsZero() {
		s.last = now
	}
	s.frames++
	if elapsed := now.Sub(s.last); elapsed >= time.Second {
		s.fps = float64(s.frames-s.lastCount) / elapsed.Seconds()
		s.last = now
		s.lastCount = s.frames
	}
}

func (s *Stats) Frames() int  { return s.frames }
func (s *Stats) FPS() float64 { return s.fps }

// String returns the status line: frame count, rate and live resources.
func (s *Stats) String() string {
	objects, bytes := resource.Stats()
	return fmt.Sprintf("frame %d  %.1f fps  %d objects  %d KiB", s.frames, s.fps, objects, bytes/1024)
}
