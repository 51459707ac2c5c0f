package loader

import (
	"encoding/xml"
	"fmt"
	"strconv"

	"github.com/valerio/go-tilengine/tilengine/errcode"
	"github.com/valerio/go-tilengine/tilengine/resource"
)

// framesPerSecond converts Tiled animation durations to frame delays.
const framesPerSecond = 60

// LoadTileset loads a Tiled .tsx tileset.
//
// Single image tilesets become regular tilesets where entry n+1 holds Tiled
// tile id n; entry 0 stays blank for empty cells. Image collections become
// image tilesets. Tile animations are returned in the tileset sequence pack.
func (l *Loader) LoadTileset(name string) (*resource.Tileset, error) {
	data, err := l.ReadFile("LoadTileset", name)
	if err != nil {
		return nil, err
	}
	var tsx tsxTileset
	if err := xml.Unmarshal(data, &tsx); err != nil {
		return nil, formatError("LoadTileset", err)
	}
	return l.buildTileset(name, &tsx, 0)
}

// buildTileset creates the tileset described by tsx. base is the Tiled
// first GID of the tileset; image tileset entries are keyed by base+id.
func (l *Loader) buildTileset(name string, tsx *tsxTileset, base int) (*resource.Tileset, error) {
	if tsx.Image == nil {
		return l.buildImageTileset(name, tsx, base)
	}
	if tsx.TileWidth <= 0 || tsx.TileHeight <= 0 {
		return nil, errcode.New("LoadTileset", errcode.WrongSize)
	}

	atlas, err := l.LoadBitmap(resolve(name, tsx.Image.Source))
	if err != nil {
		return nil, err
	}
	defer atlas.Delete()

	columns := tsx.Columns
	if columns == 0 {
		columns = (atlas.Width() - 2*tsx.Margin + tsx.Spacing) / (tsx.TileWidth + tsx.Spacing)
	}
	count := tsx.TileCount
	if count == 0 {
		rows := (atlas.Height() - 2*tsx.Margin + tsx.Spacing) / (tsx.TileHeight + tsx.Spacing)
		count = columns * rows
	}
	if columns <= 0 || count <= 0 {
		return nil, errcode.New("LoadTileset", errcode.WrongSize)
	}

	attrs := make([]resource.TileAttribute, count+1)
	for _, t := range tsx.Tiles {
		if t.ID < 0 || t.ID >= count {
			continue
		}
		attrs[t.ID+1] = tileAttribute(&t)
	}

	sp, err := tileAnimations(tsx, 1)
	if err != nil {
		return nil, err
	}
	pal, err := atlas.Palette().Clone()
	if err != nil {
		return nil, err
	}
	ts, err := resource.NewTileset(count+1, tsx.TileWidth, tsx.TileHeight, pal, sp, attrs)
	if err != nil {
		pal.Delete()
		if sp != nil {
			sp.Delete()
		}
		return nil, err
	}
	ts.OwnResources()

	for id := 0; id < count; id++ {
		x := tsx.Margin + (id%columns)*(tsx.TileWidth+tsx.Spacing)
		y := tsx.Margin + (id/columns)*(tsx.TileHeight+tsx.Spacing)
		if x+tsx.TileWidth > atlas.Width() || y+tsx.TileHeight > atlas.Height() {
			ts.Delete()
			return nil, errcode.Wrap("LoadTileset", errcode.WrongSize,
				fmt.Errorf("tile %d lies outside %s", id, tsx.Image.Source))
		}
		src := atlas.Data()[y*atlas.Pitch()+x:]
		if err := ts.SetPixels(id+1, src, atlas.Pitch()); err != nil {
			ts.Delete()
			return nil, err
		}
	}
	return ts, nil
}

func (l *Loader) buildImageTileset(name string, tsx *tsxTileset, base int) (*resource.Tileset, error) {
	var images []resource.TileImage
	for _, t := range tsx.Tiles {
		if t.Image == nil {
			continue
		}
		bmp, err := l.LoadBitmap(resolve(name, t.Image.Source))
		if err != nil {
			for _, img := range images {
				img.Bitmap.Delete()
			}
			return nil, err
		}
		images = append(images, resource.TileImage{
			Bitmap: bmp,
			ID:     uint16(base + t.ID),
			Type:   tileAttribute(&t).Type,
		})
	}
	if len(images) == 0 {
		return nil, errcode.Wrap("LoadTileset", errcode.WrongFormat,
			fmt.Errorf("%s has neither an image nor image tiles", name))
	}
	ts, err := resource.NewImageTileset(images)
	if err != nil {
		return nil, err
	}
	ts.OwnResources()
	return ts, nil
}

// tileAttribute reads the numeric type and the priority flag of a tile,
// either from attributes or from custom properties.
func tileAttribute(t *tsxTile) resource.TileAttribute {
	var a resource.TileAttribute
	typ := t.class()
	if v, ok := property(t.Props, "type"); ok {
		typ = v
	}
	if n, err := strconv.Atoi(typ); err == nil {
		a.Type = uint8(n)
	}
	if v, ok := property(t.Props, "priority"); ok {
		a.Priority, _ = strconv.ParseBool(v)
	}
	return a
}

// tileAnimations turns Tiled tile animations into frame sequences whose
// indices are offset by base. Returns nil when the tileset has none.
func tileAnimations(tsx *tsxTileset, base int) (*resource.SequencePack, error) {
	var sp *resource.SequencePack
	for _, t := range tsx.Tiles {
		if len(t.Animation) == 0 {
			continue
		}
		if sp == nil {
			var err error
			if sp, err = resource.NewSequencePack(); err != nil {
				return nil, err
			}
		}
		frames := make([]resource.SequenceFrame, len(t.Animation))
		for i, f := range t.Animation {
			frames[i] = resource.SequenceFrame{
				Index: f.TileID + base,
				Delay: max(1, f.Duration*framesPerSecond/1000),
			}
		}
		seq, err := resource.NewSequence(fmt.Sprintf("tile%d", t.ID), t.ID+base, frames)
		if err != nil {
			sp.Delete()
			return nil, err
		}
		_ = sp.Add(seq)
	}
	return sp, nil
}
