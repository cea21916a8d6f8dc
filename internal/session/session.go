// Package session keeps the boards played over the network.
// The HTTP API, the WebSocket hub and the MCP server all drive boards
// through one Manager, so each board sees its moves in a single order.
package session

import (
	"math/rand"
	"sync"
	"time"

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
)

// Session is one remote game.
type Session struct {
	ID        string
	Mode      t2048.Mode
	Seed      int64
	CreatedAt time.Time

	mu             sync.Mutex
	notifyMu       sync.Mutex // taken under mu so updates leave in move order
	board          *t2048.Board
	lastMove       *t2048.MoveResult
	lastAccessedAt time.Time
	recorded       bool // summary handed to the ResultSaver
}

func newSession(id string, seed int64, mode t2048.Mode, fourProb float64) *Session {
	now := time.Now()
	return &Session{
		ID:             id,
		Mode:           mode,
		Seed:           seed,
		CreatedAt:      now,
		board:          t2048.NewBoard(rand.New(rand.NewSource(seed)), t2048.WithFourProbability(fourProb)),
		lastAccessedAt: now,
	}
}

// State is a session's snapshot as served to clients.
type State struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	t2048.Snapshot
}

// state must be called with s.mu held.
func (s *Session) state() State {
	snap := t2048.BoardSnapshot(s.board, s.Mode)
	snap.Seed = s.Seed
	snap.LastMove = s.lastMove
	return State{ID: s.ID, CreatedAt: s.CreatedAt, Snapshot: snap}
}

// summary must be called with s.mu held.
func (s *Session) summary() Summary {
	return Summary{
		SessionID: s.ID,
		Mode:      s.Mode,
		Moves:     s.board.MoveCount(),
		MaxTile:   s.board.MaxTile(),
		Tiles:     s.board.TileCount(),
		Won:       s.board.HasWonGame(),
		Outcome:   s.Mode.Outcome(s.board),
		Seed:      s.Seed,
	}
}

// Summary describes a finished game.
type Summary struct {
	SessionID string
	Mode      t2048.Mode
	Moves     int
	MaxTile   int
	Tiles     int
	Won       bool
	Outcome   t2048.Outcome
	Seed      int64
}

// ResultSaver records finished games.
type ResultSaver interface {
	SaveSummary(Summary) error
}

// ShiftResult is the reply to one shift request.
type ShiftResult struct {
	Move  t2048.MoveResult `json:"move"`
	State State            `json:"state"`
}
