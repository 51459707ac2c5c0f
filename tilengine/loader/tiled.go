package loader

import (
	"bytes"
	"compress/gzip"
	"compress/zlib"
	"encoding/base64"
	"encoding/binary"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Tiled GID flag bits.
const (
	gidFlipX  uint32 = 1 << 31
	gidFlipY  uint32 = 1 << 30
	gidRotate uint32 = 1 << 29
	gidMask          = gidFlipX | gidFlipY | gidRotate | 1<<28
)

type tmxMap struct {
	XMLName         xml.Name        `xml:"map"`
	Orientation     string          `xml:"orientation,attr"`
	Width           int             `xml:"width,attr"`
	Height          int             `xml:"height,attr"`
	TileWidth       int             `xml:"tilewidth,attr"`
	TileHeight      int             `xml:"tileheight,attr"`
	BackgroundColor string          `xml:"backgroundcolor,attr"`
	Tilesets        []tmxTilesetRef `xml:"tileset"`
	Layers          []tmxLayer      `xml:",any"`
}

type tmxTilesetRef struct {
	FirstGID int    `xml:"firstgid,attr"`
	Source   string `xml:"source,attr"`
	tsxTileset
}

type tmxLayer struct {
	XMLName   xml.Name
	Name      string        `xml:"name,attr"`
	Width     int           `xml:"width,attr"`
	Height    int           `xml:"height,attr"`
	Visible   *int          `xml:"visible,attr"`
	ParallaxX *float64      `xml:"parallaxx,attr"`
	ParallaxY *float64      `xml:"parallaxy,attr"`
	OffsetX   float64       `xml:"offsetx,attr"`
	OffsetY   float64       `xml:"offsety,attr"`
	Data      tmxData       `xml:"data"`
	Objects   []tmxObject   `xml:"object"`
	Layers    []tmxLayer    `xml:",any"`
	Props     []tmxProperty `xml:"properties>property"`
}

type tmxData struct {
	Encoding    string `xml:"encoding,attr"`
	Compression string `xml:"compression,attr"`
	Text        string `xml:",chardata"`
}

type tmxObject struct {
	ID      int     `xml:"id,attr"`
	GID     uint32  `xml:"gid,attr"`
	Name    string  `xml:"name,attr"`
	Type    string  `xml:"type,attr"`
	Class   string  `xml:"class,attr"`
	X       float64 `xml:"x,attr"`
	Y       float64 `xml:"y,attr"`
	Width   float64 `xml:"width,attr"`
	Height  float64 `xml:"height,attr"`
	Visible *int    `xml:"visible,attr"`
}

type tmxProperty struct {
	Name  string `xml:"name,attr"`
	Type  string `xml:"type,attr"`
	Value string `xml:"value,attr"`
}

type tsxTileset struct {
	Name       string    `xml:"name,attr"`
	TileWidth  int       `xml:"tilewidth,attr"`
	TileHeight int       `xml:"tileheight,attr"`
	Spacing    int       `xml:"spacing,attr"`
	Margin     int       `xml:"margin,attr"`
	TileCount  int       `xml:"tilecount,attr"`
	Columns    int       `xml:"columns,attr"`
	Image      *tsxImage `xml:"image"`
	Tiles      []tsxTile `xml:"tile"`
}

type tsxImage struct {
	Source string `xml:"source,attr"`
	Width  int    `xml:"width,attr"`
	Height int    `xml:"height,attr"`
}

type tsxTile struct {
	ID        int           `xml:"id,attr"`
	Type      string        `xml:"type,attr"`
	Class     string        `xml:"class,attr"`
	Image     *tsxImage     `xml:"image"`
	Props     []tmxProperty `xml:"properties>property"`
	Animation []tsxFrame    `xml:"animation>frame"`
}

type tsxFrame struct {
	TileID   int `xml:"tileid,attr"`
	Duration int `xml:"duration,attr"`
}

func (l *tmxLayer) visible() bool {
	return l.Visible == nil || *l.Visible != 0
}

func (o *tmxObject) visible() bool {
	return o.Visible == nil || *o.Visible != 0
}

func (o *tmxObject) class() string {
	if o.Class != "" {
		return o.Class
	}
	return o.Type
}

func (t *tsxTile) class() string {
	if t.Class != "" {
		return t.Class
	}
	return t.Type
}

func property(props []tmxProperty, name string) (string, bool) {
	for _, p := range props {
		if p.Name == name {
			return p.Value, true
		}
	}
	return "", false
}

// decodeGIDs returns the cells of a tile layer as raw Tiled GIDs.
func decodeGIDs(d tmxData, count int) ([]uint32, error) {
	switch d.Encoding {
	case "csv":
		fields := strings.FieldsFunc(d.Text, func(r rune) bool {
			return r == ',' || r == '\n' || r == '\r' || r == ' ' || r == '\t'
		})
		if len(fields) != count {
			return nil, fmt.Errorf("csv layer has %d cells, want %d", len(fields), count)
		}
		gids := make([]uint32, count)
		for i, f := range fields {
			v, err := strconv.ParseUint(f, 10, 32)
			if err != nil {
				return nil, fmt.Errorf("csv cell %d: %w", i, err)
			}
			gids[i] = uint32(v)
		}
		return gids, nil

	case "base64":
		raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(d.Text))
		if err != nil {
			return nil, fmt.Errorf("base64 layer: %w", err)
		}
		if raw, err = decompress(d.Compression, raw); err != nil {
			return nil, err
		}
		if len(raw) != count*4 {
			return nil, fmt.Errorf("layer data is %d bytes, want %d", len(raw), count*4)
		}
		gids := make([]uint32, count)
		for i := range gids {
			gids[i] = binary.LittleEndian.Uint32(raw[i*4:])
		}
		return gids, nil
	}
	return nil, fmt.Errorf("unsupported layer encoding %q", d.Encoding)
}

func decompress(method string, raw []byte) ([]byte, error) {
	var r io.ReadCloser
	var err error
	switch method {
	case "":
		return raw, nil
	case "zlib":
		r, err = zlib.NewReader(bytes.NewReader(raw))
	case "gzip":
		r, err = gzip.NewReader(bytes.NewReader(raw))
	default:
		return nil, fmt.Errorf("unsupported layer compression %q", method)
	}
	if err != nil {
		return nil, fmt.Errorf("%s layer: %w", method, err)
	}
	defer r.Close()
	return io.ReadAll(r)
}

// parseColor reads a Tiled "#RRGGBB" or "#AARRGGBB" color.
func parseColor(s string) (r, g, b uint8, ok bool) {
	s = strings.TrimPrefix(s, "#")
	if len(s) == 8 {
		s = s[2:]
	}
	if len(s) != 6 {
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return uint8(v >> 16), uint8(v >> 8), uint8(v), true
}
