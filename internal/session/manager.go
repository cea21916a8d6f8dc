package session

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
)

var (
	ErrSessionNotFound = errors.New("session: not found")
	ErrGameFinished    = errors.New("session: game finished")
)

// UpdateFunc receives a session's state after every accepted shift.
type UpdateFunc func(State)

// Manager handles game session lifecycle.
type Manager struct {
	sessions  map[string]*Session
	mu        sync.RWMutex
	saver     ResultSaver
	observers []UpdateFunc
	logger    *log.Logger
	fourProb  float64
}

// Option configures a Manager.
type Option func(*Manager)

// WithResultSaver records each finished game once.
func WithResultSaver(s ResultSaver) Option {
	return func(m *Manager) { m.saver = s }
}

// WithLogger sets the logger used for save failures and lifecycle events.
func WithLogger(l *log.Logger) Option {
	return func(m *Manager) { m.logger = l }
}

// WithFourProbability sets the spawn probability for new boards.
func WithFourProbability(p float64) Option {
	return func(m *Manager) { m.fourProb = p }
}

// NewManager creates a new session manager.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		sessions: make(map[string]*Session),
		fourProb: t2048.DefaultFourProbability,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.logger == nil {
		m.logger = log.New(io.Discard)
	}
	return m
}

// OnUpdate registers fn to receive states after accepted shifts.
func (m *Manager) OnUpdate(fn UpdateFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.observers = append(m.observers, fn)
}

// Create starts a new board. A zero seed picks one from the clock.
func (m *Manager) Create(seed int64, mode t2048.Mode) (State, error) {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	id, err := generateSessionID()
	if err != nil {
		return State{}, err
	}

	s := newSession(id, seed, mode, m.fourProb)

	m.mu.Lock()
	m.sessions[id] = s
	m.mu.Unlock()

	m.logger.Debug("session created", "id", id, "mode", mode, "seed", seed)

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state(), nil
}

func (m *Manager) get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[strings.ToLower(id)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return s, nil
}

// Get returns the current state of a session.
func (m *Manager) Get(id string) (State, error) {
	s, err := m.get(id)
	if err != nil {
		return State{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastAccessedAt = time.Now()
	return s.state(), nil
}

// List returns all sessions, oldest first.
func (m *Manager) List() []State {
	m.mu.RLock()
	sessions := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		sessions = append(sessions, s)
	}
	m.mu.RUnlock()

	states := make([]State, 0, len(sessions))
	for _, s := range sessions {
		s.mu.Lock()
		states = append(states, s.state())
		s.mu.Unlock()
	}

	sort.Slice(states, func(i, j int) bool {
		if states[i].CreatedAt.Equal(states[j].CreatedAt) {
			return states[i].ID < states[j].ID
		}
		return states[i].CreatedAt.Before(states[j].CreatedAt)
	})
	return states
}

// Delete removes a session.
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := strings.ToLower(id)
	if _, ok := m.sessions[key]; !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	delete(m.sessions, key)
	return nil
}

// Shift applies one move to a session's board.
// A rejected move is not an error; the result reports Accepted=false.
func (m *Manager) Shift(id string, dir t2048.Direction) (ShiftResult, error) {
	if !dir.Valid() {
		return ShiftResult{}, fmt.Errorf("%w: %d", t2048.ErrUnknownDirection, dir)
	}

	s, err := m.get(id)
	if err != nil {
		return ShiftResult{}, err
	}

	s.mu.Lock()
	if s.Mode.Finished(s.board) {
		s.mu.Unlock()
		return ShiftResult{}, fmt.Errorf("%w: %s", ErrGameFinished, id)
	}

	move := s.board.Shift(dir)
	if move.Accepted {
		s.lastMove = &move
	}
	s.lastAccessedAt = time.Now()
	state := s.state()

	var summary *Summary
	if move.Accepted && s.Mode.Finished(s.board) && !s.recorded {
		s.recorded = true
		sum := s.summary()
		summary = &sum
	}
	s.notifyMu.Lock()
	s.mu.Unlock()

	if move.Accepted {
		m.notify(state)
	}
	s.notifyMu.Unlock()

	if summary != nil {
		m.record(*summary)
	}

	return ShiftResult{Move: move, State: state}, nil
}

// LegalMoves returns the directions that would change the board.
func (m *Manager) LegalMoves(id string) ([]t2048.Direction, error) {
	st, err := m.Get(id)
	if err != nil {
		return nil, err
	}
	return st.LegalMoves, nil
}

// CleanupExpiredSessions removes sessions not accessed within maxAge.
func (m *Manager) CleanupExpiredSessions(maxAge time.Duration) int {
	cutoff := time.Now().Add(-maxAge)

	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, s := range m.sessions {
		s.mu.Lock()
		expired := s.lastAccessedAt.Before(cutoff)
		s.mu.Unlock()
		if expired {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}

func (m *Manager) record(sum Summary) {
	if m.saver == nil {
		return
	}
	if err := m.saver.SaveSummary(sum); err != nil {
		m.logger.Error("cannot save result", "session", sum.SessionID, "err", err)
		return
	}
	m.logger.Info("game finished", "session", sum.SessionID, "outcome", sum.Outcome, "moves", sum.Moves, "max_tile", sum.MaxTile)
}

func (m *Manager) notify(st State) {
	m.mu.RLock()
	observers := append([]UpdateFunc(nil), m.observers...)
	m.mu.RUnlock()

	for _, fn := range observers {
		fn(st)
	}
}

// generateSessionID returns 8 random bytes as lowercase hex.
func generateSessionID() (string, error) {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("session: generate id: %w", err)
	}
	return hex.EncodeToString(b), nil
}
