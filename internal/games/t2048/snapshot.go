package t2048

// Snapshot captures the game state for tests, replays and remote clients.
type Snapshot struct {
	Tick       uint64      `json:"tick"`
	Mode       Mode        `json:"mode"`
	Seed       int64       `json:"seed"`
	Board      Grid        `json:"board"`
	Moves      int         `json:"moves"`
	Tiles      int         `json:"tiles"`
	MaxTile    int         `json:"max_tile"`
	Sum        int         `json:"sum"`
	Won        bool        `json:"won"`
	Outcome    Outcome     `json:"outcome"`
	LegalMoves []Direction `json:"legal_moves"`
	LastMove   *MoveResult `json:"last_move,omitempty"`
}

// BoardSnapshot builds a snapshot of b as seen by mode m.
func BoardSnapshot(b *Board, m Mode) Snapshot {
	legal := b.LegalMoves()
	if m.Finished(b) {
		legal = nil
	}
	if legal == nil {
		legal = []Direction{}
	}
	return Snapshot{
		Mode:       m,
		Board:      b.Values(),
		Moves:      b.MoveCount(),
		Tiles:      b.TileCount(),
		MaxTile:    b.MaxTile(),
		Sum:        b.Sum(),
		Won:        b.HasWonGame(),
		Outcome:    m.Outcome(b),
		LegalMoves: legal,
	}
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	s := BoardSnapshot(g.board, g.mode)
	s.Tick = g.tick
	s.Seed = g.seed
	s.Won = g.won
	s.LastMove = g.last
	return s
}
