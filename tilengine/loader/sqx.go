package loader

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/valerio/go-tilengine/tilengine/resource"
)

// A sequence pack file looks like:
//
//	<sequences>
//	  <sequence name="walk" delay="6" target="0">1,2,3,4</sequence>
//	  <cycle name="water">
//	    <strip delay="4" first="16" count="8" dir="1"/>
//	  </cycle>
//	</sequences>
type sqxFile struct {
	XMLName   xml.Name      `xml:"sequences"`
	Sequences []sqxSequence `xml:"sequence"`
	Cycles    []sqxCycle    `xml:"cycle"`
}

type sqxSequence struct {
	Name   string `xml:"name,attr"`
	Delay  int    `xml:"delay,attr"`
	Target int    `xml:"target,attr"`
	Frames string `xml:",chardata"`
}

type sqxCycle struct {
	Name   string     `xml:"name,attr"`
	Strips []sqxStrip `xml:"strip"`
}

type sqxStrip struct {
	Delay int `xml:"delay,attr"`
	First int `xml:"first,attr"`
	Count int `xml:"count,attr"`
	Dir   int `xml:"dir,attr"`
}

// LoadSequencePack loads frame sequences and color cycles from an .sqx file.
func (l *Loader) LoadSequencePack(name string) (*resource.SequencePack, error) {
	data, err := l.ReadFile("LoadSequencePack", name)
	if err != nil {
		return nil, err
	}
	var sqx sqxFile
	if err := xml.Unmarshal(data, &sqx); err != nil {
		return nil, formatError("LoadSequencePack", err)
	}

	sp, err := resource.NewSequencePack()
	if err != nil {
		return nil, err
	}
	for _, s := range sqx.Sequences {
		frames, err := parseFrames(s.Frames, s.Delay)
		if err != nil {
			sp.Delete()
			return nil, formatError("LoadSequencePack", fmt.Errorf("sequence %q: %w", s.Name, err))
		}
		seq, err := resource.NewSequence(s.Name, s.Target, frames)
		if err != nil {
			sp.Delete()
			return nil, err
		}
		_ = sp.Add(seq)
	}
	for _, c := range sqx.Cycles {
		strips := make([]resource.ColorStrip, len(c.Strips))
		for i, s := range c.Strips {
			if s.First < 0 || s.Count < 0 || s.First+s.Count > resource.MaxPaletteEntries {
				sp.Delete()
				return nil, formatError("LoadSequencePack", fmt.Errorf("cycle %q: strip %d out of range", c.Name, i))
			}
			strips[i] = resource.ColorStrip{
				Delay: s.Delay,
				First: uint8(s.First),
				Count: uint8(s.Count),
				Dir:   s.Dir != 0,
			}
		}
		seq, err := resource.NewCycle(c.Name, strips)
		if err != nil {
			sp.Delete()
			return nil, err
		}
		_ = sp.Add(seq)
	}
	return sp, nil
}

func parseFrames(text string, delay int) ([]resource.SequenceFrame, error) {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\n' || r == '\r' || r == '\t'
	})
	frames := make([]resource.SequenceFrame, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, err
		}
		frames = append(frames, resource.SequenceFrame{Index: n, Delay: delay})
	}
	return frames, nil
}
