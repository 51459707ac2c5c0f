package resource

import "github.com/valerio/go-tilengine/tilengine/errcode"

// Tilemap is a grid of tile references.
type Tilemap struct {
	handle
	rows    int
	cols    int
	tiles   []Tile
	bgcolor uint32
	tileset *Tileset
	owns    bool
}

// NewTilemap creates a rows×cols tilemap. tiles may be nil for an empty map;
// otherwise it is copied and must hold rows*cols cells in row-major order.
func NewTilemap(rows, cols int, tiles []Tile, bgcolor uint32, tileset *Tileset) (*Tilemap, error) {
	if rows <= 0 || cols <= 0 {
		return nil, errcode.New("CreateTilemap", errcode.WrongSize)
	}
	if tiles != nil && len(tiles) != rows*cols {
		return nil, errcode.New("CreateTilemap", errcode.WrongSize)
	}
	if tileset != nil && tileset.Deleted() {
		return nil, refError("CreateTilemap", KindTileset)
	}
	tm := &Tilemap{
		rows:    rows,
		cols:    cols,
		tiles:   make([]Tile, rows*cols),
		bgcolor: bgcolor,
		tileset: tileset,
	}
	copy(tm.tiles, tiles)
	tm.register(KindTilemap, len(tm.tiles)*4)
	return tm, nil
}

func (tm *Tilemap) check(op string) error {
	if tm == nil || tm.deleted {
		return refError(op, KindTilemap)
	}
	return nil
}

// Clone copies the cells; the tileset is shared.
func (tm *Tilemap) Clone() (*Tilemap, error) {
	if err := tm.check("CloneTilemap"); err != nil {
		return nil, err
	}
	return NewTilemap(tm.rows, tm.cols, tm.tiles, tm.bgcolor, tm.tileset)
}

func (tm *Tilemap) Rows() int       { return tm.rows }
func (tm *Tilemap) Cols() int       { return tm.cols }
func (tm *Tilemap) BGColor() uint32 { return tm.bgcolor }

// Tileset returns the tileset attached to the map, if any.
func (tm *Tilemap) Tileset() *Tileset {
	if tm == nil {
		return nil
	}
	return tm.tileset
}

// OwnTileset makes Delete release the attached tileset as well. Loaders use
// it for maps whose tileset nobody else references.
func (tm *Tilemap) OwnTileset() {
	tm.owns = true
}

// Tile returns the cell at (row, col).
func (tm *Tilemap) Tile(row, col int) (Tile, error) {
	if err := tm.check("GetTilemapTile"); err != nil {
		return Tile{}, err
	}
	if row < 0 || col < 0 || row >= tm.rows || col >= tm.cols {
		return Tile{}, errcode.New("GetTilemapTile", errcode.IdxPicture)
	}
	return tm.tiles[row*tm.cols+col], nil
}

// SetTile replaces the cell at (row, col).
func (tm *Tilemap) SetTile(row, col int, tile Tile) error {
	if err := tm.check("SetTilemapTile"); err != nil {
		return err
	}
	if row < 0 || col < 0 || row >= tm.rows || col >= tm.cols {
		return errcode.New("SetTilemapTile", errcode.IdxPicture)
	}
	tm.tiles[row*tm.cols+col] = tile
	return nil
}

// Cell returns the cell at (row, col), wrapping coordinates around the map.
func (tm *Tilemap) Cell(row, col int) Tile {
	row %= tm.rows
	if row < 0 {
		row += tm.rows
	}
	col %= tm.cols
	if col < 0 {
		col += tm.cols
	}
	return tm.tiles[row*tm.cols+col]
}

// CopyTiles copies a rows×cols block of cells from src to dst. The block
// must fit in both maps.
func CopyTiles(src *Tilemap, srcRow, srcCol, rows, cols int, dst *Tilemap, dstRow, dstCol int) error {
	if err := src.check("CopyTiles"); err != nil {
		return err
	}
	if err := dst.check("CopyTiles"); err != nil {
		return err
	}
	if rows < 0 || cols < 0 || srcRow < 0 || srcCol < 0 || dstRow < 0 || dstCol < 0 ||
		srcRow+rows > src.rows || srcCol+cols > src.cols ||
		dstRow+rows > dst.rows || dstCol+cols > dst.cols {
		return errcode.New("CopyTiles", errcode.WrongSize)
	}

	// copy through a scratch block so overlapping copies in the same map work
	block := make([]Tile, rows*cols)
	for r := 0; r < rows; r++ {
		copy(block[r*cols:(r+1)*cols], src.tiles[(srcRow+r)*src.cols+srcCol:])
	}
	for r := 0; r < rows; r++ {
		copy(dst.tiles[(dstRow+r)*dst.cols+dstCol:(dstRow+r)*dst.cols+dstCol+cols], block[r*cols:(r+1)*cols])
	}
	return nil
}

// Delete releases the tilemap. Its tileset is left alive unless the map
// owns it.
func (tm *Tilemap) Delete() error {
	if err := tm.check("DeleteTilemap"); err != nil {
		return err
	}
	tm.release()
	tm.tiles = nil
	if tm.owns && tm.tileset != nil && !tm.tileset.Deleted() {
		return tm.tileset.Delete()
	}
	return nil
}
