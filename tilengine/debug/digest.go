package debug

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/valerio/go-tilengine/tilengine/video"
)

// FrameDigest hashes the visible pixels of a frame. Row padding does not
// affect the result, so frames rendered into padded targets compare equal
// to unpadded ones.
func FrameDigest(frame *video.FrameBuffer) uint64 {
	d := xxhash.New()
	var buf [4]byte
	for y := 0; y < frame.Height(); y++ {
		for _, c := range frame.Row(y) {
			binary.LittleEndian.PutUint32(buf[:], c)
			d.Write(buf[:])
		}
	}
	return d.Sum64()
}

// FormatDigest prints a digest the way the CLI and snapshots name it.
func FormatDigest(sum uint64) string {
	return fmt.Sprintf("%016x", sum)
}
