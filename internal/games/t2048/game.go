package t2048

import (
	"math/rand"
	"sync"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/registry"
)

// Settings tunes new games. Zero tick counts fall back to the defaults.
type Settings struct {
	FourProbability float64
	Animate         bool
	SlideTicks      int
	PopTicks        int
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		FourProbability: DefaultFourProbability,
		Animate:         true,
		SlideTicks:      defaultSlideTicks,
		PopTicks:        defaultPopTicks,
	}
}

var (
	settingsMu      sync.RWMutex
	currentSettings = DefaultSettings()
)

// Configure sets the settings picked up by games created afterwards.
func Configure(s Settings) {
	if s.SlideTicks <= 0 {
		s.SlideTicks = defaultSlideTicks
	}
	if s.PopTicks <= 0 {
		s.PopTicks = defaultPopTicks
	}
	settingsMu.Lock()
	currentSettings = s
	settingsMu.Unlock()
}

// CurrentSettings returns the settings new games will use.
func CurrentSettings() Settings {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return currentSettings
}

// Game runs a Board as a tick-driven arcade game.
type Game struct {
	mode     Mode
	settings Settings
	rng      *rand.Rand
	tick     uint64
	seed     int64

	board *Board
	last  *MoveResult

	screenW int
	screenH int

	won       bool // 2048 reached at some point
	winBanner bool // endless: show the win message until the next move
	paused    bool
	tooSmall  bool

	anim animator
}

// New creates a classic game.
func New() *Game {
	return NewWithMode(ModeClassic)
}

// NewEndless creates an endless game.
func NewEndless() *Game {
	return NewWithMode(ModeEndless)
}

// NewWithMode creates a game for m using the current settings.
func NewWithMode(m Mode) *Game {
	return &Game{
		mode:     m,
		settings: CurrentSettings(),
	}
}

func init() {
	registry.Register(IDClassic, func() registry.Game {
		return New()
	})
	registry.Register(IDEndless, func() registry.Game {
		return NewEndless()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return g.mode.ID()
}

// Title returns the display name.
func (g *Game) Title() string {
	return g.mode.Title()
}

// Mode returns the game mode.
func (g *Game) Mode() Mode {
	return g.mode
}

// Board returns the underlying board. Callers must not shift it directly
// while the game is being stepped.
func (g *Game) Board() *Board {
	return g.board
}

// Reset starts a new board seeded from cfg.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.seed = cfg.Seed
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.tick = 0
	g.board = NewBoard(g.rng, WithFourProbability(g.settings.FourProbability))
	g.last = nil
	g.won = false
	g.winBanner = false
	g.paused = false
	g.anim = animator{}
	g.Resize(cfg.ScreenW, cfg.ScreenH)
}

// Resize updates the screen dimensions without touching the board.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.tooSmall = w < MinScreenW || h < MinScreenH
}

// Step advances the game by one tick.
// At most one direction is applied per tick, and none while a tile animation runs.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && !g.finished() {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	if g.anim.update() {
		return core.StepResult{State: g.State()}
	}

	if g.finished() {
		return core.StepResult{State: g.State()}
	}

	dir, ok := directionFromInput(in)
	if !ok {
		return core.StepResult{State: g.State()}
	}

	res := g.Apply(dir)
	return core.StepResult{State: g.State(), Moved: res.Accepted}
}

// Apply shifts the board toward dir and starts the animation for the move.
// Rejected moves change nothing.
func (g *Game) Apply(dir Direction) MoveResult {
	if g.finished() {
		return MoveResult{Direction: dir, Before: g.board.Values(), After: g.board.Values()}
	}

	res := g.board.Shift(dir)
	if !res.Accepted {
		return res
	}
	g.last = &res
	g.winBanner = false

	if !g.won && g.board.HasWonGame() {
		g.won = true
		g.winBanner = g.mode == ModeEndless
	}

	if g.settings.Animate {
		g.anim.start(res, g.settings.SlideTicks, g.settings.PopTicks)
	}
	return res
}

// LastMove returns the most recent accepted move, if any.
func (g *Game) LastMove() (MoveResult, bool) {
	if g.last == nil {
		return MoveResult{}, false
	}
	return *g.last, true
}

// Animating reports whether a slide or pop animation is in progress.
func (g *Game) Animating() bool {
	return g.anim.active()
}

// Outcome returns the mode's view of the board.
func (g *Game) Outcome() Outcome {
	return g.mode.Outcome(g.board)
}

func (g *Game) finished() bool {
	return g.mode.Finished(g.board)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Moves:    g.board.MoveCount(),
		MaxTile:  g.board.MaxTile(),
		Tiles:    g.board.TileCount(),
		Won:      g.won,
		GameOver: g.finished(),
		Paused:   g.paused || g.tooSmall,
	}
}

// directionFromInput picks the first directional action in the frame.
func directionFromInput(in core.InputFrame) (Direction, bool) {
	switch {
	case in.Has(core.ActionUp):
		return DirUp, true
	case in.Has(core.ActionDown):
		return DirDown, true
	case in.Has(core.ActionLeft):
		return DirLeft, true
	case in.Has(core.ActionRight):
		return DirRight, true
	}
	return 0, false
}
