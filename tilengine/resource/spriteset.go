package resource

import "github.com/valerio/go-tilengine/tilengine/errcode"

// SpriteData names a rectangle of the spriteset atlas.
type SpriteData struct {
	Name string
	X, Y int
	W, H int
}

// SpriteInfo is the size of a sprite picture.
type SpriteInfo struct {
	W, H int
}

// Spriteset is a bitmap atlas with named sprite rectangles. The spriteset
// owns its bitmap and deletes it along with itself.
type Spriteset struct {
	handle
	bitmap *Bitmap
	data   []SpriteData
	names  map[string]int
}

// NewSpriteset creates a spriteset over bitmap. Every rectangle must fit in
// the bitmap.
func NewSpriteset(bitmap *Bitmap, data []SpriteData) (*Spriteset, error) {
	if err := bitmap.check("CreateSpriteset"); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, errcode.New("CreateSpriteset", errcode.WrongSize)
	}
	ss := &Spriteset{
		bitmap: bitmap,
		data:   make([]SpriteData, len(data)),
		names:  make(map[string]int, len(data)),
	}
	for i, d := range data {
		if !ss.fits(d) {
			return nil, errcode.New("CreateSpriteset", errcode.WrongSize)
		}
		ss.data[i] = d
		if _, dup := ss.names[d.Name]; !dup {
			ss.names[d.Name] = i
		}
	}
	ss.register(KindSpriteset, len(data)*32)
	return ss, nil
}

func (ss *Spriteset) fits(d SpriteData) bool {
	return d.W > 0 && d.H > 0 && d.X >= 0 && d.Y >= 0 &&
		d.X+d.W <= ss.bitmap.width && d.Y+d.H <= ss.bitmap.height
}

func (ss *Spriteset) check(op string) error {
	if ss == nil || ss.deleted {
		return refError(op, KindSpriteset)
	}
	return nil
}

// Clone creates a spriteset with a copy of the atlas.
func (ss *Spriteset) Clone() (*Spriteset, error) {
	if err := ss.check("CloneSpriteset"); err != nil {
		return nil, err
	}
	bitmap, err := ss.bitmap.Clone()
	if err != nil {
		return nil, err
	}
	return NewSpriteset(bitmap, ss.data)
}

// Count returns the number of sprite entries.
func (ss *Spriteset) Count() int {
	return len(ss.data)
}

// Info returns the size of an entry.
func (ss *Spriteset) Info(entry int) (SpriteInfo, error) {
	if err := ss.check("GetSpriteInfo"); err != nil {
		return SpriteInfo{}, err
	}
	if entry < 0 || entry >= len(ss.data) {
		return SpriteInfo{}, errcode.New("GetSpriteInfo", errcode.IdxPicture)
	}
	d := ss.data[entry]
	return SpriteInfo{W: d.W, H: d.H}, nil
}

// Data returns the rectangle of an entry without checks.
func (ss *Spriteset) Data(entry int) SpriteData {
	return ss.data[entry]
}

// Find returns the entry named name, or -1.
func (ss *Spriteset) Find(name string) int {
	if ss == nil || ss.deleted {
		return -1
	}
	if i, ok := ss.names[name]; ok {
		return i
	}
	return -1
}

// Palette returns the atlas palette.
func (ss *Spriteset) Palette() *Palette {
	if ss == nil {
		return nil
	}
	return ss.bitmap.Palette()
}

// Bitmap returns the atlas.
func (ss *Spriteset) Bitmap() *Bitmap {
	return ss.bitmap
}

// Pixel returns the color index of pixel (x, y) of an entry. A deleted
// atlas reads as transparent.
func (ss *Spriteset) Pixel(entry, x, y int) uint8 {
	if ss.bitmap.Deleted() {
		return 0
	}
	d := ss.data[entry]
	return ss.bitmap.pixels[(d.Y+y)*ss.bitmap.pitch+d.X+x]
}

// SetData replaces the rectangle of an entry and, when pixels is not nil,
// copies the picture into the atlas reading rows pitch bytes apart.
func (ss *Spriteset) SetData(entry int, data SpriteData, pixels []byte, pitch int) error {
	if err := ss.check("SetSpritesetData"); err != nil {
		return err
	}
	if entry < 0 || entry >= len(ss.data) {
		return errcode.New("SetSpritesetData", errcode.IdxPicture)
	}
	if !ss.fits(data) {
		return errcode.New("SetSpritesetData", errcode.WrongSize)
	}
	if pixels != nil {
		if pitch < data.W || len(pixels) < pitch*(data.H-1)+data.W {
			return errcode.New("SetSpritesetData", errcode.WrongSize)
		}
		for y := 0; y < data.H; y++ {
			row := (data.Y+y)*ss.bitmap.pitch + data.X
			copy(ss.bitmap.pixels[row:row+data.W], pixels[y*pitch:])
		}
	}

	old := ss.data[entry]
	if ss.names[old.Name] == entry {
		delete(ss.names, old.Name)
	}
	ss.data[entry] = data
	if _, dup := ss.names[data.Name]; !dup {
		ss.names[data.Name] = entry
	}
	return nil
}

// Delete releases the spriteset and its atlas.
func (ss *Spriteset) Delete() error {
	if err := ss.check("DeleteSpriteset"); err != nil {
		return err
	}
	ss.release()
	if !ss.bitmap.Deleted() {
		return ss.bitmap.Delete()
	}
	return nil
}
