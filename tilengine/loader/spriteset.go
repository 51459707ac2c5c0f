package loader

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/valerio/go-tilengine/tilengine/errcode"
	"github.com/valerio/go-tilengine/tilengine/resource"
)

// LoadSpriteset loads a spriteset from an indexed image and a sprite
// descriptor with the same base name. Descriptors are tried in order:
//
//	.txt   one "name = x y w h" per line
//	.csv   "name,x,y,w,h" records
//	.json  TexturePacker hash or array atlas
func (l *Loader) LoadSpriteset(name string) (*resource.Spriteset, error) {
	base := trimExt(name)
	atlas, err := l.LoadBitmap(base + ".png")
	if err != nil {
		return nil, err
	}

	var data []resource.SpriteData
	for _, d := range []struct {
		ext   string
		parse func([]byte) ([]resource.SpriteData, error)
	}{
		{".txt", parseSpriteText},
		{".csv", parseSpriteCSV},
		{".json", parseSpriteJSON},
	} {
		raw, rerr := l.ReadFile("LoadSpriteset", base+d.ext)
		if errcode.Of(rerr) == errcode.FileNotFound {
			continue
		}
		if rerr != nil {
			atlas.Delete()
			return nil, rerr
		}
		if data, err = d.parse(raw); err != nil {
			atlas.Delete()
			return nil, formatError("LoadSpriteset", fmt.Errorf("%s%s: %w", base, d.ext, err))
		}
		break
	}
	if data == nil {
		atlas.Delete()
		return nil, errcode.Wrap("LoadSpriteset", errcode.FileNotFound,
			fmt.Errorf("no sprite descriptor for %s", base))
	}

	ss, err := resource.NewSpriteset(atlas, data)
	if err != nil {
		atlas.Delete()
		return nil, err
	}
	return ss, nil
}

func parseSpriteText(raw []byte) ([]resource.SpriteData, error) {
	var out []resource.SpriteData
	sc := bufio.NewScanner(bytes.NewReader(raw))
	for n := 1; sc.Scan(); n++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		name, rect, ok := strings.Cut(line, "=")
		if !ok {
			return nil, fmt.Errorf("line %d: missing '='", n)
		}
		d, err := spriteRect(strings.TrimSpace(name), strings.Fields(rect))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n, err)
		}
		out = append(out, d)
	}
	return out, sc.Err()
}

func parseSpriteCSV(raw []byte) ([]resource.SpriteData, error) {
	r := csv.NewReader(bytes.NewReader(raw))
	r.FieldsPerRecord = 5
	r.TrimLeadingSpace = true
	var out []resource.SpriteData
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		d, err := spriteRect(rec[0], rec[1:])
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
}

func spriteRect(name string, fields []string) (resource.SpriteData, error) {
	if len(fields) != 4 {
		return resource.SpriteData{}, fmt.Errorf("sprite %q: want x y w h", name)
	}
	var v [4]int
	for i, f := range fields {
		n, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return resource.SpriteData{}, fmt.Errorf("sprite %q: %w", name, err)
		}
		v[i] = n
	}
	return resource.SpriteData{Name: name, X: v[0], Y: v[1], W: v[2], H: v[3]}, nil
}

type jsonRect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

type jsonFrame struct {
	Filename string   `json:"filename"`
	Frame    jsonRect `json:"frame"`
}

// parseSpriteJSON reads TexturePacker atlases. The hash format maps names to
// frames; the array format lists frames with a filename. Sprites keep the
// file order of the array format and are sorted by name for the hash
// format.
func parseSpriteJSON(raw []byte) ([]resource.SpriteData, error) {
	var probe struct {
		Frames json.RawMessage `json:"frames"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, err
	}
	if probe.Frames == nil {
		return nil, errors.New(`atlas has no "frames" key`)
	}

	var frames []jsonFrame
	if bytes.HasPrefix(bytes.TrimSpace(probe.Frames), []byte("[")) {
		if err := json.Unmarshal(probe.Frames, &frames); err != nil {
			return nil, err
		}
	} else {
		var hash map[string]jsonFrame
		if err := json.Unmarshal(probe.Frames, &hash); err != nil {
			return nil, err
		}
		for name, f := range hash {
			f.Filename = name
			frames = append(frames, f)
		}
		sort.Slice(frames, func(a, b int) bool { return frames[a].Filename < frames[b].Filename })
	}

	out := make([]resource.SpriteData, len(frames))
	for i, f := range frames {
		out[i] = resource.SpriteData{
			Name: trimExt(f.Filename),
			X:    f.Frame.X,
			Y:    f.Frame.Y,
			W:    f.Frame.W,
			H:    f.Frame.H,
		}
	}
	return out, nil
}
