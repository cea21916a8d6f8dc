package t2048

const (
	// BoardSize is the board dimension.
	BoardSize = 4
	// CellCount is the number of cells on the board.
	CellCount = BoardSize * BoardSize
	// WinValue is the tile value that wins the game.
	WinValue = 2048
	// DefaultFourProbability is the chance a spawned tile is a 4 rather than a 2.
	DefaultFourProbability = 0.5

	initialTiles = 2
)

// Board owns a 4x4 grid of tiles and implements the move rules.
// A Board is not safe for concurrent use; drivers serialize calls.
type Board struct {
	cells    [BoardSize][BoardSize]*Tile
	moves    int
	tiles    int
	rng      Rand
	fourProb float64
}

// BoardOption configures a Board.
type BoardOption func(*Board)

// WithFourProbability overrides the chance of spawning a 4.
// Values outside [0, 1] are clamped.
func WithFourProbability(p float64) BoardOption {
	return func(b *Board) {
		switch {
		case p < 0:
			p = 0
		case p > 1:
			p = 1
		}
		b.fourProb = p
	}
}

// NewBoard creates a board with two randomly placed starting tiles.
func NewBoard(rng Rand, opts ...BoardOption) *Board {
	b := newEmptyBoard(rng, opts)
	for range initialTiles {
		b.SpawnTile()
	}
	return b
}

// NewBoardFromValues creates a board holding exactly the given values.
// No tiles are spawned. Values that are not powers of two >= 2 are treated as empty.
func NewBoardFromValues(values Grid, rng Rand, opts ...BoardOption) *Board {
	b := newEmptyBoard(rng, opts)
	for r := range BoardSize {
		for c := range BoardSize {
			v := values[r][c]
			if !isTileValue(v) {
				continue
			}
			b.cells[r][c] = &Tile{value: v, pos: Position{Row: r, Col: c}}
			b.tiles++
		}
	}
	return b
}

func newEmptyBoard(rng Rand, opts []BoardOption) *Board {
	b := &Board{
		rng:      rng,
		fourProb: DefaultFourProbability,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// isTileValue reports whether v is a power of two >= 2.
func isTileValue(v int) bool {
	return v >= 2 && v&(v-1) == 0
}

func (b *Board) at(p Position) *Tile {
	return b.cells[p.Row][p.Col]
}

// put stores t at p and keeps the tile's recorded position in sync.
func (b *Board) put(p Position, t *Tile) {
	b.cells[p.Row][p.Col] = t
	if t != nil {
		t.SetPosition(p)
	}
}

// SpawnTile places a new tile on a uniformly chosen empty cell.
// On a full board it does nothing and returns false.
func (b *Board) SpawnTile() (TileView, bool) {
	empty := b.emptyCells()
	if len(empty) == 0 {
		return TileView{}, false
	}

	pos := empty[b.rng.Intn(len(empty))]
	t := NewTile(pos, b.rng, b.fourProb)
	b.put(pos, t)
	b.tiles++

	return t.view(), true
}

// emptyCells returns empty positions in row-major order.
func (b *Board) emptyCells() []Position {
	cells := make([]Position, 0, CellCount-b.tiles)
	for r := range BoardSize {
		for c := range BoardSize {
			if b.cells[r][c] == nil {
				cells = append(cells, Position{Row: r, Col: c})
			}
		}
	}
	return cells
}

// canMove reports whether the tile at p can take one step toward dir.
func (b *Board) canMove(p Position, dir Direction) bool {
	t := b.at(p)
	if t == nil {
		return false
	}

	dr, dc := dir.vector()
	next := Position{Row: p.Row + dr, Col: p.Col + dc}
	if !next.inBounds() || next == p {
		return false
	}

	neighbor := b.at(next)
	return neighbor == nil || neighbor.IsMergeableWith(t)
}

// IsMovePermitted reports whether shifting toward dir would change the board.
func (b *Board) IsMovePermitted(dir Direction) bool {
	if !dir.Valid() {
		return false
	}
	for r := range BoardSize {
		for c := range BoardSize {
			if b.canMove(Position{Row: r, Col: c}, dir) {
				return true
			}
		}
	}
	return false
}

// LegalMoves returns the directions for which IsMovePermitted holds.
func (b *Board) LegalMoves() []Direction {
	var dirs []Direction
	for _, d := range Directions {
		if b.IsMovePermitted(d) {
			dirs = append(dirs, d)
		}
	}
	return dirs
}

// HasWonGame reports whether any tile has reached WinValue.
func (b *Board) HasWonGame() bool {
	return b.MaxTile() >= WinValue
}

// IsGameOver reports whether the board is full and no adjacent pair can merge.
func (b *Board) IsGameOver() bool {
	if b.tiles < CellCount {
		return false
	}

	for r := range BoardSize {
		for c := range BoardSize {
			t := b.cells[r][c]
			if r+1 < BoardSize && t.IsMergeableWith(b.cells[r+1][c]) {
				return false
			}
			if c+1 < BoardSize && t.IsMergeableWith(b.cells[r][c+1]) {
				return false
			}
		}
	}
	return true
}

// MoveCount returns the number of accepted shifts.
func (b *Board) MoveCount() int {
	return b.moves
}

// TileCount returns the number of occupied cells.
func (b *Board) TileCount() int {
	return b.tiles
}

// Cell returns the tile at p, if any.
func (b *Board) Cell(p Position) (TileView, bool) {
	if !p.inBounds() {
		return TileView{}, false
	}
	t := b.at(p)
	if t == nil {
		return TileView{}, false
	}
	return t.view(), true
}

// Tiles returns every occupied cell in row-major order.
func (b *Board) Tiles() []TileView {
	views := make([]TileView, 0, b.tiles)
	for r := range BoardSize {
		for c := range BoardSize {
			if t := b.cells[r][c]; t != nil {
				views = append(views, t.view())
			}
		}
	}
	return views
}

// Values returns the board as a value grid.
func (b *Board) Values() Grid {
	var g Grid
	for r := range BoardSize {
		for c := range BoardSize {
			if t := b.cells[r][c]; t != nil {
				g[r][c] = t.value
			}
		}
	}
	return g
}

// MaxTile returns the highest tile value, or 0 on an empty board.
func (b *Board) MaxTile() int {
	maxVal := 0
	for r := range BoardSize {
		for c := range BoardSize {
			if t := b.cells[r][c]; t != nil && t.value > maxVal {
				maxVal = t.value
			}
		}
	}
	return maxVal
}

// Sum returns the total of all tile values.
func (b *Board) Sum() int {
	sum := 0
	for r := range BoardSize {
		for c := range BoardSize {
			if t := b.cells[r][c]; t != nil {
				sum += t.value
			}
		}
	}
	return sum
}
