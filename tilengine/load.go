package tilengine

import (
	"github.com/valerio/go-tilengine/tilengine/loader"
	"github.com/valerio/go-tilengine/tilengine/resource"
)

// SetLoadPath sets the directory asset names are relative to.
func (e *Engine) SetLoadPath(path string) {
	e.loader.SetPath(path)
}

// OpenResourcePack makes every Load method read from the pack in file
// instead of the load path. key is the passphrase the pack was built with.
func (e *Engine) OpenResourcePack(file, key string) error {
	pack, err := loader.OpenPack(file, key)
	if err != nil {
		return e.report(err)
	}
	e.CloseResourcePack()
	e.loader.SetPack(pack)
	e.logger.Debug("resource pack opened", "file", file, "entries", pack.Len())
	return e.report(nil)
}

// CloseResourcePack closes the open resource pack, if any.
func (e *Engine) CloseResourcePack() {
	if pack := e.loader.Pack(); pack != nil {
		e.loader.SetPack(nil)
		pack.Close()
	}
}

func (e *Engine) LoadPalette(name string) (*resource.Palette, error) {
	p, err := e.loader.LoadPalette(name)
	return p, e.report(err)
}

func (e *Engine) LoadBitmap(name string) (*resource.Bitmap, error) {
	b, err := e.loader.LoadBitmap(name)
	return b, e.report(err)
}

func (e *Engine) LoadTileset(name string) (*resource.Tileset, error) {
	ts, err := e.loader.LoadTileset(name)
	return ts, e.report(err)
}

// LoadTilemap loads a tile layer of a Tiled map. An empty layer name
// selects the first one.
func (e *Engine) LoadTilemap(name, layer string) (*resource.Tilemap, error) {
	tm, err := e.loader.LoadTilemap(name, layer)
	return tm, e.report(err)
}

// LoadObjectList loads an object layer of a Tiled map along with the
// tileset its objects use.
func (e *Engine) LoadObjectList(name, layer string) (*resource.ObjectList, *resource.Tileset, error) {
	list, ts, err := e.loader.LoadObjectList(name, layer)
	return list, ts, e.report(err)
}

func (e *Engine) LoadSpriteset(name string) (*resource.Spriteset, error) {
	ss, err := e.loader.LoadSpriteset(name)
	return ss, e.report(err)
}

func (e *Engine) LoadSequencePack(name string) (*resource.SequencePack, error) {
	sp, err := e.loader.LoadSequencePack(name)
	return sp, e.report(err)
}
