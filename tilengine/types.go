package tilengine

import (
	"github.com/valerio/go-tilengine/tilengine/resource"
	"github.com/valerio/go-tilengine/tilengine/video"
)

// Aliases of the types used by the engine API.
type (
	LayerType   = video.LayerType
	Blend       = video.Blend
	Affine      = video.Affine
	PixelMap    = video.PixelMap
	TileInfo    = video.TileInfo
	SpriteState = video.SpriteState
	TileFlags   = resource.TileFlags
)

const (
	LayerNone   = video.LayerNone
	LayerTile   = video.LayerTile
	LayerObject = video.LayerObject
	LayerBitmap = video.LayerBitmap
)

const (
	BlendNone   = video.BlendNone
	BlendMix25  = video.BlendMix25
	BlendMix50  = video.BlendMix50
	BlendMix75  = video.BlendMix75
	BlendAdd    = video.BlendAdd
	BlendSub    = video.BlendSub
	BlendMod    = video.BlendMod
	BlendCustom = video.BlendCustom
	BlendMix    = video.BlendMix
)

const (
	FlagNone     = resource.FlagNone
	FlagFlipX    = resource.FlagFlipX
	FlagFlipY    = resource.FlagFlipY
	FlagRotate   = resource.FlagRotate
	FlagPriority = resource.FlagPriority
	FlagMasked   = resource.FlagMasked
)
