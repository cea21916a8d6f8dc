package t2048

// TileMove records where one tile travelled during a shift.
// A tile absorbed by a merge ends at its absorber's cell.
type TileMove struct {
	From   Position `json:"from"`
	To     Position `json:"to"`
	Value  int      `json:"value"`  // Value before the merge
	Merged bool     `json:"merged"` // Took part in a merge, either side
}

// MoveResult describes the outcome of one Shift call.
type MoveResult struct {
	Accepted  bool       `json:"accepted"`
	Direction Direction  `json:"direction"`
	Merges    int        `json:"merges"`
	Moves     []TileMove `json:"moves,omitempty"`
	Spawned   *TileView  `json:"spawned,omitempty"`
	Before    Grid       `json:"before"`
	After     Grid       `json:"after"`
}

// shiftTrace tracks tile identity across the slide and merge phases.
type shiftTrace struct {
	start    [BoardSize][BoardSize]*Tile
	values   [BoardSize][BoardSize]int
	absorbed map[*Tile]*Tile // trailing tile -> tile it merged into
	merged   map[*Tile]bool
}

// Shift applies one move: slide, merge, slide, spawn, count.
// If no tile can move toward dir the board is left untouched.
func (b *Board) Shift(dir Direction) MoveResult {
	result := MoveResult{Direction: dir, Before: b.Values()}

	if !b.IsMovePermitted(dir) {
		result.After = result.Before
		return result
	}

	trace := b.beginTrace()

	b.slide(dir)
	result.Merges = b.merge(dir, trace)
	b.slide(dir)

	result.Moves = trace.moves()

	if spawned, ok := b.SpawnTile(); ok {
		result.Spawned = &spawned
	}
	b.moves++

	result.Accepted = true
	result.After = b.Values()
	return result
}

func (b *Board) beginTrace() *shiftTrace {
	trace := &shiftTrace{
		start:    b.cells,
		absorbed: make(map[*Tile]*Tile),
		merged:   make(map[*Tile]bool),
	}
	for r := range BoardSize {
		for c := range BoardSize {
			if t := b.cells[r][c]; t != nil {
				trace.values[r][c] = t.value
			}
		}
	}
	return trace
}

// moves lists one TileMove per tile present before the shift, row-major.
func (tr *shiftTrace) moves() []TileMove {
	var moves []TileMove
	for r := range BoardSize {
		for c := range BoardSize {
			t := tr.start[r][c]
			if t == nil {
				continue
			}

			dest := t
			if absorber, ok := tr.absorbed[t]; ok {
				dest = absorber
			}

			moves = append(moves, TileMove{
				From:   Position{Row: r, Col: c},
				To:     dest.Position(),
				Value:  tr.values[r][c],
				Merged: tr.merged[t],
			})
		}
	}
	return moves
}

// slide closes gaps toward the leading edge, one row or column at a time.
// No merging happens here.
func (b *Board) slide(dir Direction) {
	for i := range BoardSize {
		line := dir.line(i)
		for k := 1; k < BoardSize; k++ {
			t := b.at(line[k])
			if t == nil {
				continue
			}
			j := k
			for j > 0 && b.at(line[j-1]) == nil {
				b.put(line[j-1], t)
				b.put(line[j], nil)
				j--
			}
		}
	}
}

// merge folds each tile into its leading neighbour when their values match.
// A cell that has absorbed a tile is not merged again in the same pass.
// Returns the number of merges.
func (b *Board) merge(dir Direction, trace *shiftTrace) int {
	merges := 0
	for i := range BoardSize {
		line := dir.line(i)
		var mergedInto [BoardSize]bool

		for k := 1; k < BoardSize; k++ {
			trailing := b.at(line[k])
			leading := b.at(line[k-1])
			if mergedInto[k-1] || !leading.IsMergeableWith(trailing) {
				continue
			}

			leading.MergeWith(trailing)
			b.put(line[k], nil)
			b.tiles--
			mergedInto[k-1] = true
			merges++

			trace.absorbed[trailing] = leading
			trace.merged[trailing] = true
			trace.merged[leading] = true
		}
	}
	return merges
}
