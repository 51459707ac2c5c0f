package resource

import "github.com/valerio/go-tilengine/tilengine/errcode"

// Object is an item of an object layer. Tile objects reference an image
// tileset entry through GID.
type Object struct {
	ID      int
	GID     int
	Flags   TileFlags
	X, Y    int
	Width   int
	Height  int
	Type    uint8
	Visible bool
	Name    string
}

// ObjectList is a list of objects with a cursor for iteration.
type ObjectList struct {
	handle
	objects []Object
	cursor  int
}

// NewObjectList creates an empty list.
func NewObjectList() (*ObjectList, error) {
	ol := &ObjectList{}
	ol.register(KindObjectList, 0)
	return ol, nil
}

func (ol *ObjectList) check(op string) error {
	if ol == nil || ol.deleted {
		return refError(op, KindObjectList)
	}
	return nil
}

// Clone copies the list.
func (ol *ObjectList) Clone() (*ObjectList, error) {
	if err := ol.check("CloneObjectList"); err != nil {
		return nil, err
	}
	clone, _ := NewObjectList()
	clone.objects = append([]Object(nil), ol.objects...)
	return clone, nil
}

// AddTileObject appends a visible tile object. Its size is resolved from the
// tileset when the list is attached to a layer.
func (ol *ObjectList) AddTileObject(id, gid int, flags TileFlags, x, y int) error {
	return ol.Add(Object{ID: id, GID: gid, Flags: flags, X: x, Y: y, Visible: true})
}

// Add appends an object.
func (ol *ObjectList) Add(obj Object) error {
	if err := ol.check("AddTileObjectToList"); err != nil {
		return err
	}
	if obj.GID < 0 {
		return errcode.New("AddTileObjectToList", errcode.IdxPicture)
	}
	ol.objects = append(ol.objects, obj)
	return nil
}

// Len returns the number of objects.
func (ol *ObjectList) Len() int {
	if ol == nil {
		return 0
	}
	return len(ol.objects)
}

// Object returns the object at index.
func (ol *ObjectList) Object(index int) (Object, error) {
	if err := ol.check("GetListObject"); err != nil {
		return Object{}, err
	}
	if index < 0 || index >= len(ol.objects) {
		return Object{}, errcode.New("GetListObject", errcode.IdxPicture)
	}
	return ol.objects[index], nil
}

// Objects returns the backing slice; callers may update objects in place.
func (ol *ObjectList) Objects() []Object {
	return ol.objects
}

// Rewind moves the iteration cursor back to the first object.
func (ol *ObjectList) Rewind() {
	ol.cursor = 0
}

// Next returns the object under the cursor and advances it. ok is false
// once the list is exhausted.
func (ol *ObjectList) Next() (obj Object, ok bool) {
	if ol == nil || ol.deleted || ol.cursor >= len(ol.objects) {
		return Object{}, false
	}
	obj = ol.objects[ol.cursor]
	ol.cursor++
	return obj, true
}

// Delete releases the list.
func (ol *ObjectList) Delete() error {
	if err := ol.check("DeleteObjectList"); err != nil {
		return err
	}
	ol.release()
	ol.objects = nil
	return nil
}
