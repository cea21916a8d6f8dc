package t2048

// Position addresses a grid cell. Row 0 is the top row, Col 0 the left column.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// inBounds reports whether p lies on the grid.
func (p Position) inBounds() bool {
	return p.Row >= 0 && p.Row < BoardSize && p.Col >= 0 && p.Col < BoardSize
}

// Rand is the random source used for tile values and spawn positions.
// *math/rand.Rand satisfies it; tests inject seeded or scripted sources.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// Tile is a single numbered piece on the board.
type Tile struct {
	value int
	pos   Position
}

// NewTile creates a tile at pos holding 4 with probability fourProb and 2 otherwise.
func NewTile(pos Position, rng Rand, fourProb float64) *Tile {
	value := 2
	if rng.Float64() < fourProb {
		value = 4
	}
	return &Tile{value: value, pos: pos}
}

// Value returns the tile's number.
func (t *Tile) Value() int {
	return t.value
}

// Row returns the tile's row.
func (t *Tile) Row() int {
	return t.pos.Row
}

// Col returns the tile's column.
func (t *Tile) Col() int {
	return t.pos.Col
}

// Position returns the tile's cell.
func (t *Tile) Position() Position {
	return t.pos
}

// SetPosition moves the tile's recorded cell. The board keeps it in sync
// with the grid slot holding the tile.
func (t *Tile) SetPosition(p Position) {
	t.pos = p
}

// IsMergeableWith reports whether both tiles hold the same value.
func (t *Tile) IsMergeableWith(other *Tile) bool {
	if t == nil || other == nil {
		return false
	}
	return t.value == other.value
}

// MergeWith absorbs other's value into t.
func (t *Tile) MergeWith(other *Tile) {
	if other == nil {
		return
	}
	t.value += other.value
}

// TileView is a read-only copy of an occupied cell handed to the presentation layer.
type TileView struct {
	Row   int `json:"row"`
	Col   int `json:"col"`
	Value int `json:"value"`
}

func (t *Tile) view() TileView {
	return TileView{Row: t.pos.Row, Col: t.pos.Col, Value: t.value}
}
