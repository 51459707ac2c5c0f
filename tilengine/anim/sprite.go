package anim

import (
	"github.com/valerio/go-tilengine/tilengine/errcode"
	"github.com/valerio/go-tilengine/tilengine/resource"
)

// Player steps through the frames of a sprite sequence.
type Player struct {
	seq    *resource.Sequence
	loops  int // loops left to play
	infin  bool
	timer  timer
	done   bool
	delays map[int]int
}

// NewPlayer plays seq loop times; zero loops repeats forever.
func NewPlayer(seq *resource.Sequence, loop int) (*Player, error) {
	if seq == nil || seq.Deleted() || seq.IsCycle() {
		return nil, errcode.New("SetSpriteAnimation", errcode.RefSequence)
	}
	if loop < 0 {
		return nil, errcode.New("SetSpriteAnimation", errcode.WrongSize)
	}
	return &Player{seq: seq, loops: loop, infin: loop == 0}, nil
}

// Sequence returns the sequence being played.
func (p *Player) Sequence() *resource.Sequence { return p.seq }

// Done reports whether the last loop has finished.
func (p *Player) Done() bool { return p.done }

// Picture returns the current frame index.
func (p *Player) Picture() int {
	return p.seq.Frames()[p.timer.pos].Index
}

// SetDelay overrides the delay of one frame.
func (p *Player) SetDelay(frame, delay int) error {
	if frame < 0 || frame >= len(p.seq.Frames()) {
		return errcode.New("SetAnimationDelay", errcode.IdxPicture)
	}
	if p.delays == nil {
		p.delays = make(map[int]int)
	}
	p.delays[frame] = delay
	return nil
}

func (p *Player) delay() int {
	if d, ok := p.delays[p.timer.pos]; ok {
		return d
	}
	return p.seq.Frames()[p.timer.pos].Delay
}

// Update advances the sequence at frame and returns the picture to show.
// Once finished the player keeps returning the last frame.
func (p *Player) Update(frame int) int {
	if p.done || p.seq.Deleted() {
		p.done = true
		if p.seq.Deleted() {
			return -1
		}
		return p.Picture()
	}
	frames := p.seq.Frames()
	if p.timer.tick(frame, p.delay()) {
		if p.timer.pos+1 < len(frames) {
			p.timer.pos++
		} else if p.infin || p.loops > 1 {
			if !p.infin {
				p.loops--
			}
			p.timer.pos = 0
		} else {
			p.done = true
		}
		// the new frame waits its own delay
		p.timer.next = frame + p.delay()
	}
	return p.Picture()
}
