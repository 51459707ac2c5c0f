package loader

import (
	"encoding/xml"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/valerio/go-tilengine/tilengine/errcode"
	"github.com/valerio/go-tilengine/tilengine/resource"
)

// LayerKind tells tile layers from object layers.
type LayerKind int

const (
	TileLayer LayerKind = iota
	ObjectLayer
)

// MapLayer is one tile or object layer of a loaded map.
type MapLayer struct {
	Name    string
	Kind    LayerKind
	Visible bool

	Tilemap *resource.Tilemap    // tile layers
	Objects *resource.ObjectList // object layers
	Tileset *resource.Tileset    // tileset referenced by the layer, may be nil

	ParallaxX, ParallaxY float64
	OffsetX, OffsetY     int
}

// Map is a Tiled map with every layer loaded. Layers are in file order,
// with group layers flattened.
type Map struct {
	Width, Height         int
	TileWidth, TileHeight int
	BGColor               uint32
	HasBGColor            bool
	Layers                []MapLayer

	tilesets []*resource.Tileset
}

// Release deletes every resource loaded with the map.
func (m *Map) Release() {
	for _, layer := range m.Layers {
		if layer.Tilemap != nil && !layer.Tilemap.Deleted() {
			layer.Tilemap.Delete()
		}
		if layer.Objects != nil && !layer.Objects.Deleted() {
			layer.Objects.Delete()
		}
	}
	for _, ts := range m.tilesets {
		if ts != nil && !ts.Deleted() {
			ts.Delete()
		}
	}
	m.Layers = nil
	m.tilesets = nil
}

// Layer returns the first layer of the given kind named name, or the first
// layer of that kind when name is empty.
func (m *Map) Layer(kind LayerKind, name string) (*MapLayer, bool) {
	for i := range m.Layers {
		layer := &m.Layers[i]
		if layer.Kind == kind && (name == "" || layer.Name == name) {
			return layer, true
		}
	}
	return nil, false
}

// LoadMap loads a Tiled .tmx map with all of its layers and tilesets. Layer
// data is decoded concurrently.
func (l *Loader) LoadMap(name string) (*Map, error) {
	data, err := l.ReadFile("LoadMap", name)
	if err != nil {
		return nil, err
	}
	var tmx tmxMap
	if err := xml.Unmarshal(data, &tmx); err != nil {
		return nil, formatError("LoadMap", err)
	}
	if tmx.Orientation != "" && tmx.Orientation != "orthogonal" {
		return nil, errcode.Wrap("LoadMap", errcode.Unsupported,
			fmt.Errorf("%s orientation", tmx.Orientation))
	}

	refs, err := l.tilesetRefs(name, tmx.Tilesets)
	if err != nil {
		return nil, err
	}
	layers := flattenLayers(tmx.Layers)

	m := &Map{
		Width:      tmx.Width,
		Height:     tmx.Height,
		TileWidth:  tmx.TileWidth,
		TileHeight: tmx.TileHeight,
		Layers:     make([]MapLayer, len(layers)),
		tilesets:   make([]*resource.Tileset, len(refs)),
	}
	if r, g, b, ok := parseColor(tmx.BackgroundColor); ok {
		m.BGColor = resource.RGB(r, g, b)
		m.HasBGColor = true
	}

	// decode cells and pick the tileset of every layer
	gids := make([][]uint32, len(layers))
	used := make([]bool, len(refs))
	var g errgroup.Group
	for i, layer := range layers {
		if layer.XMLName.Local != "layer" {
			continue
		}
		g.Go(func() error {
			w, h := layer.Width, layer.Height
			if w == 0 || h == 0 {
				w, h = tmx.Width, tmx.Height
			}
			cells, err := decodeGIDs(layer.Data, w*h)
			if err != nil {
				return fmt.Errorf("layer %q: %w", layer.Name, err)
			}
			gids[i] = cells
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, formatError("LoadMap", err)
	}
	owner := make([]int, len(layers))
	for i, layer := range layers {
		owner[i] = -1
		switch layer.XMLName.Local {
		case "layer":
			owner[i] = refFor(refs, firstGID(gids[i]))
		case "objectgroup":
			owner[i] = refFor(refs, firstObjectGID(layer.Objects))
		}
		if owner[i] >= 0 {
			used[owner[i]] = true
		}
	}

	// load referenced tilesets
	var tg errgroup.Group
	for i := range refs {
		if !used[i] {
			continue
		}
		tg.Go(func() error {
			ts, err := l.buildTileset(refs[i].file, &refs[i].tsx, refs[i].firstGID)
			if err != nil {
				return err
			}
			m.tilesets[i] = ts
			return nil
		})
	}
	if err := tg.Wait(); err != nil {
		m.Release()
		return nil, err
	}

	for i, layer := range layers {
		ml := &m.Layers[i]
		ml.Name = layer.Name
		ml.Visible = layer.visible()
		ml.ParallaxX, ml.ParallaxY = 1, 1
		if layer.ParallaxX != nil {
			ml.ParallaxX = *layer.ParallaxX
		}
		if layer.ParallaxY != nil {
			ml.ParallaxY = *layer.ParallaxY
		}
		ml.OffsetX, ml.OffsetY = int(layer.OffsetX), int(layer.OffsetY)

		var ref *tilesetRef
		if owner[i] >= 0 {
			ref = &refs[owner[i]]
			ml.Tileset = m.tilesets[owner[i]]
		}

		var err error
		if layer.XMLName.Local == "layer" {
			ml.Kind = TileLayer
			ml.Tilemap, err = buildTilemap(&tmx, &layer, gids[i], ref, ml.Tileset, m.BGColor)
		} else {
			ml.Kind = ObjectLayer
			ml.Objects, err = buildObjects(layer.Objects, ref, ml.Tileset)
		}
		if err != nil {
			m.Release()
			return nil, err
		}
	}
	return m, nil
}

// LoadTilemap loads one tile layer of a Tiled map. An empty layer name
// selects the first tile layer. The returned tilemap owns its tileset.
func (l *Loader) LoadTilemap(name, layer string) (*resource.Tilemap, error) {
	m, err := l.LoadMap(name)
	if err != nil {
		return nil, err
	}
	ml, ok := m.Layer(TileLayer, layer)
	if !ok {
		m.Release()
		return nil, errcode.Wrap("LoadTilemap", errcode.WrongFormat, fmt.Errorf("no tile layer %q", layer))
	}
	tm := ml.Tilemap
	m.detach(tm.Tileset())
	ml.Tilemap = nil
	m.Release()
	tm.OwnTileset()
	return tm, nil
}

// LoadObjectList loads one object layer of a Tiled map and the tileset its
// objects reference. An empty layer name selects the first object layer.
// The caller owns both.
func (l *Loader) LoadObjectList(name, layer string) (*resource.ObjectList, *resource.Tileset, error) {
	m, err := l.LoadMap(name)
	if err != nil {
		return nil, nil, err
	}
	ml, ok := m.Layer(ObjectLayer, layer)
	if !ok {
		m.Release()
		return nil, nil, errcode.Wrap("LoadObjectList", errcode.WrongFormat, fmt.Errorf("no object layer %q", layer))
	}
	list, ts := ml.Objects, ml.Tileset
	m.detach(ts)
	ml.Objects = nil
	m.Release()
	return list, ts, nil
}

// detach removes ts from the map so Release leaves it alive.
func (m *Map) detach(ts *resource.Tileset) {
	for i, t := range m.tilesets {
		if t == ts {
			m.tilesets[i] = nil
		}
	}
}

type tilesetRef struct {
	firstGID int
	file     string // file the tileset paths are relative to
	tsx      tsxTileset
}

// tilesetRefs resolves external tileset sources, sorted by first GID.
func (l *Loader) tilesetRefs(name string, sets []tmxTilesetRef) ([]tilesetRef, error) {
	refs := make([]tilesetRef, len(sets))
	for i, s := range sets {
		refs[i] = tilesetRef{firstGID: s.FirstGID, file: name, tsx: s.tsxTileset}
		if s.Source == "" {
			continue
		}
		file := resolve(name, s.Source)
		data, err := l.ReadFile("LoadMap", file)
		if err != nil {
			return nil, err
		}
		if err := xml.Unmarshal(data, &refs[i].tsx); err != nil {
			return nil, formatError("LoadMap", fmt.Errorf("%s: %w", file, err))
		}
		refs[i].file = file
	}
	sort.Slice(refs, func(a, b int) bool { return refs[a].firstGID < refs[b].firstGID })
	return refs, nil
}

// refFor returns the index of the tileset holding gid, or -1.
func refFor(refs []tilesetRef, gid uint32) int {
	if gid == 0 {
		return -1
	}
	found := -1
	for i, r := range refs {
		if uint32(r.firstGID) <= gid {
			found = i
		}
	}
	return found
}

func firstGID(cells []uint32) uint32 {
	for _, c := range cells {
		if gid := c &^ gidMask; gid != 0 {
			return gid
		}
	}
	return 0
}

func firstObjectGID(objects []tmxObject) uint32 {
	for _, o := range objects {
		if gid := o.GID &^ gidMask; gid != 0 {
			return gid
		}
	}
	return 0
}

func flattenLayers(layers []tmxLayer) []tmxLayer {
	var out []tmxLayer
	for _, layer := range layers {
		switch layer.XMLName.Local {
		case "layer", "objectgroup":
			out = append(out, layer)
		case "group":
			out = append(out, flattenLayers(layer.Layers)...)
		}
	}
	return out
}

func gidFlags(gid uint32) resource.TileFlags {
	var flags resource.TileFlags
	if gid&gidFlipX != 0 {
		flags |= resource.FlagFlipX
	}
	if gid&gidFlipY != 0 {
		flags |= resource.FlagFlipY
	}
	if gid&gidRotate != 0 {
		flags |= resource.FlagRotate
	}
	return flags
}

func buildTilemap(tmx *tmxMap, layer *tmxLayer, cells []uint32, ref *tilesetRef, ts *resource.Tileset, bg uint32) (*resource.Tilemap, error) {
	w, h := layer.Width, layer.Height
	if w == 0 || h == 0 {
		w, h = tmx.Width, tmx.Height
	}
	tiles := make([]resource.Tile, len(cells))
	if ref != nil {
		for i, c := range cells {
			gid := int(c &^ gidMask)
			index := gid - ref.firstGID + 1
			if gid == 0 || index <= 0 || index >= ts.NumTiles() {
				continue
			}
			flags := gidFlags(c)
			if ts.Priority(index) {
				flags |= resource.FlagPriority
			}
			tiles[i] = resource.Tile{Index: uint16(index), Flags: flags}
		}
	}
	return resource.NewTilemap(h, w, tiles, bg, ts)
}

func buildObjects(objects []tmxObject, ref *tilesetRef, ts *resource.Tileset) (*resource.ObjectList, error) {
	list, err := resource.NewObjectList()
	if err != nil {
		return nil, err
	}
	for _, o := range objects {
		gid := int(o.GID &^ gidMask)
		obj := resource.Object{
			ID:      o.ID,
			Flags:   gidFlags(o.GID),
			X:       int(o.X),
			Y:       int(o.Y),
			Width:   int(o.Width),
			Height:  int(o.Height),
			Visible: o.visible(),
			Name:    o.Name,
		}
		if gid != 0 && ref != nil && ts != nil {
			// tile objects are anchored at their bottom-left corner
			obj.Y -= obj.Height
			if ts.IsImageTileset() {
				obj.GID = gid
				if img, ok := ts.Image(uint16(gid)); ok {
					obj.Type = img.Type
				}
			} else {
				obj.GID = gid - ref.firstGID + 1
				if a, err := ts.Attribute(obj.GID); err == nil {
					obj.Type = a.Type
				}
			}
		}
		_ = list.Add(obj)
	}
	return list, nil
}
