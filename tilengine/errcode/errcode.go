// Package errcode holds the engine error taxonomy.
//
// Code values match the native engine enumeration so they can be exchanged
// with existing tools. Operations return *Error values; the engine also keeps
// the code of the last failure for callers that prefer polling.
package errcode

import (
	"errors"
	"fmt"
)

// Code is an engine error code.
type Code int

const (
	OK Code = iota
	OutOfMemory
	IdxLayer
	IdxSprite
	IdxAnimation
	IdxPicture
	RefTileset
	RefTilemap
	RefSpriteset
	RefPalette
	RefSequence
	RefSeqPack
	RefBitmap
	NullPointer
	FileNotFound
	WrongFormat
	WrongSize
	Unsupported
	RefList

	numCodes
)

var descriptions = [numCodes]string{
	OK:           "No error",
	OutOfMemory:  "Not enough memory",
	IdxLayer:     "Layer index out of range",
	IdxSprite:    "Sprite index out of range",
	IdxAnimation: "Animation index out of range",
	IdxPicture:   "Picture or tile index out of range",
	RefTileset:   "Invalid Tileset reference",
	RefTilemap:   "Invalid Tilemap reference",
	RefSpriteset: "Invalid Spriteset reference",
	RefPalette:   "Invalid Palette reference",
	RefSequence:  "Invalid Sequence reference",
	RefSeqPack:   "Invalid SequencePack reference",
	RefBitmap:    "Invalid Bitmap reference",
	NullPointer:  "Null pointer as required argument",
	FileNotFound: "Resource file not found",
	WrongFormat:  "Resource file has invalid format",
	WrongSize:    "A width or height parameter is invalid",
	Unsupported:  "Unsupported function",
	RefList:      "Invalid ObjectList reference",
}

// String returns the description of the code.
func (c Code) String() string {
	if c < 0 || c >= numCodes {
		return "Invalid error code"
	}
	return descriptions[c]
}

// Error lets a bare code be used as a sentinel with errors.Is.
func (c Code) Error() string {
	return c.String()
}

// Codes returns every defined code in ascending order.
func Codes() []Code {
	codes := make([]Code, numCodes)
	for i := range codes {
		codes[i] = Code(i)
	}
	return codes
}

// Sentinels for errors.Is comparisons.
var (
	ErrOutOfMemory  error = OutOfMemory
	ErrIdxLayer     error = IdxLayer
	ErrIdxSprite    error = IdxSprite
	ErrIdxAnimation error = IdxAnimation
	ErrIdxPicture   error = IdxPicture
	ErrRefTileset   error = RefTileset
	ErrRefTilemap   error = RefTilemap
	ErrRefSpriteset error = RefSpriteset
	ErrRefPalette   error = RefPalette
	ErrRefSequence  error = RefSequence
	ErrRefSeqPack   error = RefSeqPack
	ErrRefBitmap    error = RefBitmap
	ErrNullPointer  error = NullPointer
	ErrFileNotFound error = FileNotFound
	ErrWrongFormat  error = WrongFormat
	ErrWrongSize    error = WrongSize
	ErrUnsupported  error = Unsupported
	ErrRefList      error = RefList
)

// Error is returned by every failing engine operation.
type Error struct {
	Code Code
	Op   string // operation that failed, e.g. "SetLayerTilemap"
	Err  error  // optional underlying cause
}

// New builds an error for op with the given code.
func New(op string, code Code) *Error {
	return &Error{Code: code, Op: op}
}

// Wrap builds an error for op with the given code and underlying cause.
func Wrap(op string, code Code, err error) *Error {
	return &Error{Code: code, Op: op, Err: err}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Code, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Code)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches a bare Code sentinel.
func (e *Error) Is(target error) bool {
	if c, ok := target.(Code); ok {
		return c == e.Code
	}
	return false
}

// Of extracts the code carried by err. Nil maps to OK and errors that carry
// no code map to Unsupported.
func Of(err error) Code {
	if err == nil {
		return OK
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	var c Code
	if errors.As(err, &c) {
		return c
	}
	return Unsupported
}
