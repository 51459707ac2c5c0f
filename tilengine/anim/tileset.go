package anim

import "github.com/valerio/go-tilengine/tilengine/resource"

// Tiles runs every frame sequence of a tileset sequence pack, remapping the
// sequence target tile to the current frame tile.
type Tiles struct {
	ts     *resource.Tileset
	seqs   []*resource.Sequence
	timers []timer
}

// NewTiles returns nil when the tileset has no animations.
func NewTiles(ts *resource.Tileset) *Tiles {
	sp := ts.SequencePack()
	if sp == nil || sp.Deleted() || sp.Count() == 0 {
		return nil
	}
	var seqs []*resource.Sequence
	for _, s := range sp.Sequences() {
		if !s.IsCycle() {
			seqs = append(seqs, s)
		}
	}
	if len(seqs) == 0 {
		return nil
	}
	ts.ResetFrames()
	return &Tiles{ts: ts, seqs: seqs, timers: make([]timer, len(seqs))}
}

// Tileset returns the animated tileset.
func (a *Tiles) Tileset() *resource.Tileset { return a.ts }

// Update advances the sequences due at frame.
func (a *Tiles) Update(frame int) {
	if a.ts.Deleted() {
		return
	}
	for i, s := range a.seqs {
		if s.Deleted() {
			continue
		}
		frames := s.Frames()
		t := &a.timers[i]
		if t.tick(frame, frames[t.pos].Delay) {
			t.pos = (t.pos + 1) % len(frames)
			t.next = frame + frames[t.pos].Delay
		}
		a.ts.SetFrame(uint16(s.Target()), uint16(frames[t.pos].Index))
	}
}

// Stop removes the substitutions from the tileset.
func (a *Tiles) Stop() {
	if !a.ts.Deleted() {
		a.ts.ResetFrames()
	}
}
