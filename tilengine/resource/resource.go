// Package resource implements the engine's resource store: palettes,
// bitmaps, tilesets, tilemaps, spritesets, sequences, sequence packs and
// object lists.
//
// Resources follow an explicit create/clone/delete lifecycle. Deletion is
// checked: every operation on a deleted resource fails with the matching
// reference error, and deleting twice reports an error instead of freeing
// memory twice.
package resource

import (
	"sync/atomic"

	"github.com/valerio/go-tilengine/tilengine/errcode"
)

// Kind identifies the type of a resource.
type Kind int

const (
	KindPalette Kind = iota
	KindBitmap
	KindTileset
	KindTilemap
	KindSpriteset
	KindSequence
	KindSequencePack
	KindObjectList
)

// refCode is the error reported when a resource of this kind is invalid.
func (k Kind) refCode() errcode.Code {
	switch k {
	case KindPalette:
		return errcode.RefPalette
	case KindBitmap:
		return errcode.RefBitmap
	case KindTileset:
		return errcode.RefTileset
	case KindTilemap:
		return errcode.RefTilemap
	case KindSpriteset:
		return errcode.RefSpriteset
	case KindSequence:
		return errcode.RefSequence
	case KindSequencePack:
		return errcode.RefSeqPack
	case KindObjectList:
		return errcode.RefList
	}
	return errcode.NullPointer
}

var (
	liveObjects atomic.Int64
	liveBytes   atomic.Int64
)

// Stats returns the number of live resources and the approximate number of
// bytes they hold.
func Stats() (objects, bytes int) {
	return int(liveObjects.Load()), int(liveBytes.Load())
}

// handle carries the lifecycle state shared by every resource.
type handle struct {
	kind    Kind
	size    int
	deleted bool
}

func (h *handle) register(kind Kind, size int) {
	h.kind = kind
	h.size = size
	liveObjects.Add(1)
	liveBytes.Add(int64(size))
}

func (h *handle) release() {
	h.deleted = true
	liveObjects.Add(-1)
	liveBytes.Add(-int64(h.size))
}

// Deleted reports whether the resource has been deleted.
func (h *handle) Deleted() bool {
	return h.deleted
}

func refError(op string, kind Kind) error {
	return errcode.New(op, kind.refCode())
}
