package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

type appScreen int

const (
	screenMenu appScreen = iota
	screenGame
	screenScores
)

// AppModel manages the full flow: menu -> game or scoreboard -> menu.
// It is the top-level model for the menu command and SSH sessions.
type AppModel struct {
	store      *storage.Store
	config     core.RuntimeConfig
	screen     appScreen
	menu       MenuModel
	game       GameModel
	scoreboard ScoreboardModel
	quitting   bool
}

// NewAppModel creates the app starting at the menu.
// A non-zero cfg.Seed is used for the first game only.
func NewAppModel(store *storage.Store, cfg core.RuntimeConfig) AppModel {
	return AppModel{
		store:  store,
		config: cfg,
		menu:   NewMenuModel(store, cfg),
	}
}

// Init initializes the app.
func (m AppModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update routes messages to the active screen.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenScores:
		return m.updateScores(msg)
	default:
		return m.updateMenu(msg)
	}
}

func (m AppModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menu, ok := newMenu.(MenuModel); ok {
		m.menu = menu
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsScoreboard():
		m.scoreboard = NewScoreboardModel(m.store, m.config.ScreenW, m.config.ScreenH)
		m.screen = screenScores
		return m, m.scoreboard.Init()

	case m.menu.Selected() != nil:
		game, err := registry.Create(m.menu.Selected().GameID)
		if err != nil {
			m.menu = NewMenuModel(m.store, m.config)
			return m, nil
		}
		m.game = NewGameModel(game, m.store, m.config)
		m.config.Seed = 0
		m.screen = screenGame
		return m, m.game.Init()
	}

	return m, cmd
}

func (m AppModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newGame, cmd := m.game.Update(msg)
	if game, ok := newGame.(GameModel); ok {
		m.game = game
	}

	switch {
	case m.game.BackToMenu():
		return m.backToMenu()
	case m.game.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

func (m AppModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	newBoard, cmd := m.scoreboard.Update(msg)
	if board, ok := newBoard.(ScoreboardModel); ok {
		m.scoreboard = board
	}

	switch {
	case m.scoreboard.IsGoingBack():
		return m.backToMenu()
	case m.scoreboard.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

// backToMenu drops the child's quit command and rebuilds the menu so best tiles are fresh.
func (m AppModel) backToMenu() (tea.Model, tea.Cmd) {
	m.screen = screenMenu
	m.menu = NewMenuModel(m.store, m.config)
	return m, m.menu.Init()
}

// View renders the active screen.
func (m AppModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		return m.game.View()
	case screenScores:
		return m.scoreboard.View()
	default:
		return m.menu.View()
	}
}

// RunApp runs the menu flow until the user quits.
func RunApp(store *storage.Store, cfg core.RuntimeConfig) error {
	p := tea.NewProgram(NewAppModel(store, cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
