package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gammazero/deque"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

// maxPending caps how many directions can be typed ahead of the board.
const maxPending = 4

// animating is implemented by games that block input while tiles move.
type animating interface {
	Animating() bool
}

// outcomer is implemented by games that classify their own result.
type outcomer interface {
	Outcome() t2048.Outcome
}

// GameModel is the Bubble Tea model for one running game.
// Directions typed while the board is busy are queued and applied one per tick.
type GameModel struct {
	game          registry.Game
	screen        *core.Screen
	store         *storage.Store
	config        core.RuntimeConfig
	keyMapper     *KeyMapper
	pending       *deque.Deque[core.Action]
	pauseNext     bool
	gameState     core.GameState
	screenshotDir string
	quitting      bool
	backToMenu    bool
	resultSaved   bool // Whether the result has been saved for the current game
}

// NewGameModel creates a model for game and starts a new board.
// A zero seed in cfg is replaced by the current time.
func NewGameModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) GameModel {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	game.Reset(cfg)

	return GameModel{
		game:          game,
		screen:        core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:         store,
		config:        cfg,
		keyMapper:     NewKeyMapper(),
		pending:       new(deque.Deque[core.Action]),
		gameState:     game.State(),
		screenshotDir: defaultScreenshotDir(),
	}
}

func defaultScreenshotDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".t2048", "screenshots")
	}
	return filepath.Join(home, ".t2048", "screenshots")
}

// Init starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		m.game.Resize(msg.Width, msg.Height)
		m.gameState = m.game.State()
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	switch {
	case action.IsDirectional():
		if !m.gameState.GameOver && m.pending.Len() < maxPending {
			m.pending.PushBack(action)
		}
	case action == core.ActionPause:
		m.pauseNext = true
	case action == core.ActionRestart:
		m.restart(time.Now().UnixNano())
	case action == core.ActionBack:
		if m.gameState.GameOver || m.gameState.Paused {
			m.backToMenu = true
			return m, tea.Quit
		}
	}

	return m, nil
}

// handleTick runs one simulation step with at most one queued direction.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	frame := core.NewInputFrame()
	if m.pauseNext {
		frame.Set(core.ActionPause)
		m.pauseNext = false
	} else if m.ready() && m.pending.Len() > 0 {
		frame.Set(m.pending.PopFront())
	}

	result := m.game.Step(frame)
	m.gameState = result.State

	if m.gameState.GameOver {
		m.pending.Clear()
		m.saveResult()
	}

	return m, tickCmd(m.config.TickRate)
}

// ready reports whether the game would act on a direction this tick.
func (m GameModel) ready() bool {
	if m.gameState.Paused || m.gameState.GameOver {
		return false
	}
	if a, ok := m.game.(animating); ok && a.Animating() {
		return false
	}
	return true
}

// restart begins a new board with seed. Unfinished games are not recorded.
func (m *GameModel) restart(seed int64) {
	m.config.Seed = seed
	m.game.Reset(m.config)
	m.gameState = m.game.State()
	m.pending.Clear()
	m.pauseNext = false
	m.resultSaved = false
}

// saveResult stores the finished game once.
func (m *GameModel) saveResult() {
	if m.resultSaved {
		return
	}
	m.resultSaved = true
	if m.store == nil {
		return
	}

	//nolint:errcheck // Best-effort save, the game continues regardless
	m.store.SaveResult(m.result())
}

func (m GameModel) result() storage.Result {
	outcome := t2048.OutcomeLost
	if o, ok := m.game.(outcomer); ok {
		outcome = o.Outcome()
	} else if m.gameState.Won {
		outcome = t2048.OutcomeWon
	}

	return storage.Result{
		Mode:    m.game.ID(),
		Moves:   m.gameState.Moves,
		MaxTile: m.gameState.MaxTile,
		Tiles:   m.gameState.Tiles,
		Won:     m.gameState.Won,
		Outcome: string(outcome),
		Seed:    m.config.Seed,
	}
}

// saveScreenshot writes the current screen as plain text.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(m.screenshotDir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)

	//nolint:errcheck // Best-effort save, the game continues regardless
	os.WriteFile(filepath.Join(m.screenshotDir, filename), []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	m.drawControls()
	return RenderScreen(m.screen)
}

// drawControls puts the key hints on the bottom row when they fit.
func (m GameModel) drawControls() {
	controls := m.game.Controls()
	w, h := m.screen.Width(), m.screen.Height()
	if len(controls) > w || h < t2048.MinScreenH {
		return
	}
	m.screen.DrawTextColored((w-len(controls))/2, h-1, controls, core.ColorGray)
}

// State returns the game state after the last tick.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// Pending returns the number of queued directions.
func (m GameModel) Pending() int {
	return m.pending.Len()
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run plays a single game until the user quits.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) error {
	p := tea.NewProgram(
		NewGameModel(game, store, cfg),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
