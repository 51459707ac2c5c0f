package resource

import (
	"fmt"

	"github.com/valerio/go-tilengine/tilengine/errcode"
)

// SequenceFrame is one step of a frame sequence: the picture (sprite entry
// or tile index) and how many frames it stays on screen.
type SequenceFrame struct {
	Index int
	Delay int
}

// ColorStrip rotates Count palette entries starting at First every Delay
// frames. Dir false rotates up, true rotates down.
type ColorStrip struct {
	Delay int
	First uint8
	Count uint8
	Dir   bool
}

// SequenceInfo describes a sequence.
type SequenceInfo struct {
	Name      string
	NumFrames int
}

// Sequence is either a list of frames (sprite and tileset animations) or a
// list of color strips (palette cycles).
type Sequence struct {
	handle
	name   string
	target int
	frames []SequenceFrame
	strips []ColorStrip
}

// NewSequence creates a frame sequence. target is the tile index replaced by
// a tileset animation and is ignored by sprite animations.
func NewSequence(name string, target int, frames []SequenceFrame) (*Sequence, error) {
	if len(frames) == 0 {
		return nil, errcode.New("CreateSequence", errcode.WrongSize)
	}
	for _, f := range frames {
		if f.Index < 0 {
			return nil, errcode.New("CreateSequence", errcode.IdxPicture)
		}
	}
	s := &Sequence{
		name:   name,
		target: target,
		frames: append([]SequenceFrame(nil), frames...),
	}
	s.register(KindSequence, len(frames)*8)
	return s, nil
}

// NewCycle creates a palette color cycle.
func NewCycle(name string, strips []ColorStrip) (*Sequence, error) {
	if len(strips) == 0 {
		return nil, errcode.New("CreateCycle", errcode.WrongSize)
	}
	for _, s := range strips {
		if int(s.First)+int(s.Count) > MaxPaletteEntries {
			return nil, errcode.New("CreateCycle", errcode.IdxPicture)
		}
	}
	s := &Sequence{
		name:   name,
		strips: append([]ColorStrip(nil), strips...),
	}
	s.register(KindSequence, len(strips)*8)
	return s, nil
}

// NewSpriteSequence builds a sequence from the spriteset entries named
// basename followed by consecutive numbers, starting at 0 or 1. Every frame
// lasts delay frames.
func NewSpriteSequence(name string, ss *Spriteset, basename string, delay int) (*Sequence, error) {
	if err := ss.check("CreateSpriteSequence"); err != nil {
		return nil, err
	}
	start := 0
	if ss.Find(basename+"0") < 0 {
		start = 1
	}
	var frames []SequenceFrame
	for n := start; ; n++ {
		entry := ss.Find(fmt.Sprintf("%s%d", basename, n))
		if entry < 0 {
			break
		}
		frames = append(frames, SequenceFrame{Index: entry, Delay: delay})
	}
	if len(frames) == 0 {
		return nil, errcode.New("CreateSpriteSequence", errcode.IdxPicture)
	}
	return NewSequence(name, 0, frames)
}

func (s *Sequence) check(op string) error {
	if s == nil || s.deleted {
		return refError(op, KindSequence)
	}
	return nil
}

// Clone creates a copy of the sequence.
func (s *Sequence) Clone() (*Sequence, error) {
	if err := s.check("CloneSequence"); err != nil {
		return nil, err
	}
	if s.strips != nil {
		return NewCycle(s.name, s.strips)
	}
	return NewSequence(s.name, s.target, s.frames)
}

// Info returns the name and length of the sequence.
func (s *Sequence) Info() (SequenceInfo, error) {
	if err := s.check("GetSequenceInfo"); err != nil {
		return SequenceInfo{}, err
	}
	n := len(s.frames)
	if s.strips != nil {
		n = len(s.strips)
	}
	return SequenceInfo{Name: s.name, NumFrames: n}, nil
}

func (s *Sequence) Name() string            { return s.name }
func (s *Sequence) Target() int             { return s.target }
func (s *Sequence) Frames() []SequenceFrame { return s.frames }
func (s *Sequence) Strips() []ColorStrip    { return s.strips }
func (s *Sequence) IsCycle() bool           { return s.strips != nil }

// Delete releases the sequence.
func (s *Sequence) Delete() error {
	if err := s.check("DeleteSequence"); err != nil {
		return err
	}
	s.release()
	return nil
}

// SequencePack is an ordered collection of sequences with name lookup.
type SequencePack struct {
	handle
	sequences []*Sequence
	names     map[string]int
}

// NewSequencePack creates an empty pack.
func NewSequencePack() (*SequencePack, error) {
	sp := &SequencePack{names: make(map[string]int)}
	sp.register(KindSequencePack, 0)
	return sp, nil
}

func (sp *SequencePack) check(op string) error {
	if sp == nil || sp.deleted {
		return refError(op, KindSequencePack)
	}
	return nil
}

// Add appends a sequence. The pack takes ownership of it.
func (sp *SequencePack) Add(s *Sequence) error {
	if err := sp.check("AddSequenceToSequencePack"); err != nil {
		return err
	}
	if err := s.check("AddSequenceToSequencePack"); err != nil {
		return err
	}
	if _, dup := sp.names[s.name]; !dup {
		sp.names[s.name] = len(sp.sequences)
	}
	sp.sequences = append(sp.sequences, s)
	return nil
}

// Get returns the sequence at index.
func (sp *SequencePack) Get(index int) (*Sequence, error) {
	if err := sp.check("GetSequence"); err != nil {
		return nil, err
	}
	if index < 0 || index >= len(sp.sequences) {
		return nil, errcode.New("GetSequence", errcode.IdxPicture)
	}
	return sp.sequences[index], nil
}

// Find returns the sequence named name.
func (sp *SequencePack) Find(name string) (*Sequence, error) {
	if err := sp.check("FindSequence"); err != nil {
		return nil, err
	}
	i, ok := sp.names[name]
	if !ok {
		return nil, errcode.New("FindSequence", errcode.RefSequence)
	}
	return sp.sequences[i], nil
}

// Count returns the number of sequences.
func (sp *SequencePack) Count() int {
	if sp == nil {
		return 0
	}
	return len(sp.sequences)
}

// Sequences returns the sequences in insertion order.
func (sp *SequencePack) Sequences() []*Sequence {
	return sp.sequences
}

// Delete releases the pack and every sequence it holds.
func (sp *SequencePack) Delete() error {
	if err := sp.check("DeleteSequencePack"); err != nil {
		return err
	}
	sp.release()
	for _, s := range sp.sequences {
		if !s.Deleted() {
			_ = s.Delete()
		}
	}
	sp.sequences = nil
	return nil
}
