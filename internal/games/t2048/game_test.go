package t2048

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-2048/internal/core"
)

func newTestGame(t *testing.T, mode Mode, grid Grid) *Game {
	t.Helper()
	g := NewWithMode(mode)
	g.settings.Animate = false
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 42})
	g.board = NewBoardFromValues(grid, &scriptRand{})
	return g
}

func frame(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

func TestGameReset(t *testing.T) {
	g := New()
	g.Reset(core.DefaultConfig())

	st := g.State()
	if st.Tiles != 2 || st.Moves != 0 || st.GameOver || st.Won || st.Paused {
		t.Errorf("fresh state = %+v", st)
	}
	if g.ID() != IDClassic || NewEndless().ID() != IDEndless {
		t.Error("unexpected game IDs")
	}
}

func TestGameStepAppliesDirection(t *testing.T) {
	g := newTestGame(t, ModeClassic, Grid{{2, 2}})

	res := g.Step(frame(core.ActionLeft))
	if !res.Moved {
		t.Fatal("left should move")
	}
	if res.State.Moves != 1 || res.State.MaxTile != 4 {
		t.Errorf("state = %+v", res.State)
	}

	last, ok := g.LastMove()
	if !ok || last.Direction != DirLeft || last.Merges != 1 {
		t.Errorf("LastMove = %+v, %v", last, ok)
	}

	// Row 0 is now [4 2 _ _]; nothing can move up.
	res = g.Step(frame(core.ActionUp))
	if res.Moved {
		t.Error("up from the top row should be rejected")
	}
	if g.State().Moves != 1 {
		t.Errorf("Moves = %d, want 1", g.State().Moves)
	}
}

func TestGameOneDirectionPerTick(t *testing.T) {
	g := newTestGame(t, ModeClassic, Grid{{0, 0, 0, 2}})

	g.Step(frame(core.ActionLeft, core.ActionDown))
	if g.State().Moves != 1 {
		t.Errorf("Moves = %d, want 1", g.State().Moves)
	}
}

func TestGamePause(t *testing.T) {
	g := newTestGame(t, ModeClassic, Grid{{0, 2}})

	g.Step(frame(core.ActionPause))
	if !g.State().Paused {
		t.Fatal("game should be paused")
	}
	if res := g.Step(frame(core.ActionLeft)); res.Moved {
		t.Error("paused game accepted a move")
	}

	g.Step(frame(core.ActionPause))
	if res := g.Step(frame(core.ActionLeft)); !res.Moved {
		t.Error("resumed game should accept a move")
	}
}

func TestGameAnimationBlocksInput(t *testing.T) {
	g := newTestGame(t, ModeClassic, Grid{{0, 2}})
	g.settings = DefaultSettings()

	if !g.Step(frame(core.ActionLeft)).Moved {
		t.Fatal("first move rejected")
	}
	if !g.Animating() {
		t.Fatal("expected animation after a move")
	}
	if g.Step(frame(core.ActionRight)).Moved {
		t.Error("move accepted during animation")
	}

	ticks := 1
	for g.Animating() && ticks < 100 {
		g.Step(core.NewInputFrame())
		ticks++
	}
	if want := defaultSlideTicks + defaultPopTicks; ticks != want {
		t.Errorf("animation took %d ticks, want %d", ticks, want)
	}
	if !g.Step(frame(core.ActionRight)).Moved {
		t.Error("move rejected after animation")
	}
}

func TestClassicEndsOnWin(t *testing.T) {
	g := newTestGame(t, ModeClassic, Grid{{1024, 1024}})

	g.Step(frame(core.ActionLeft))
	st := g.State()
	if !st.Won || !st.GameOver {
		t.Errorf("state after 2048 = %+v", st)
	}
	if g.Outcome() != OutcomeWon {
		t.Errorf("Outcome() = %v, want won", g.Outcome())
	}
	if g.Step(frame(core.ActionRight)).Moved {
		t.Error("finished game accepted a move")
	}
}

func TestEndlessContinuesAfterWin(t *testing.T) {
	g := newTestGame(t, ModeEndless, Grid{{1024, 1024}})

	g.Step(frame(core.ActionLeft))
	st := g.State()
	if !st.Won || st.GameOver {
		t.Errorf("state after 2048 = %+v", st)
	}
	if !g.winBanner {
		t.Error("endless mode should announce the win")
	}
	if !g.Step(frame(core.ActionRight)).Moved {
		t.Error("endless game should keep accepting moves")
	}
	if g.winBanner {
		t.Error("win banner should clear on the next move")
	}
}

func TestGameOverOnLoss(t *testing.T) {
	g := newTestGame(t, ModeClassic, checkerboard)
	if !g.State().GameOver || g.Outcome() != OutcomeLost {
		t.Errorf("checkerboard state = %+v outcome %v", g.State(), g.Outcome())
	}

	e := newTestGame(t, ModeEndless, Grid{{2048, 4, 2, 4}, {4, 2, 4, 2}, {2, 4, 2, 4}, {4, 2, 4, 2}})
	if e.Outcome() != OutcomeWon {
		t.Errorf("finished endless board with 2048: Outcome() = %v, want won", e.Outcome())
	}
}

func TestDeterministicGames(t *testing.T) {
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 99}
	g1, g2 := New(), New()
	g1.settings.Animate, g2.settings.Animate = false, false
	g1.Reset(cfg)
	g2.Reset(cfg)

	for _, a := range []core.Action{core.ActionLeft, core.ActionUp, core.ActionRight, core.ActionDown, core.ActionLeft} {
		g1.Step(frame(a))
		g2.Step(frame(a))
	}

	s1, s2 := g1.Snapshot(), g2.Snapshot()
	if s1.Board != s2.Board || s1.Moves != s2.Moves {
		t.Errorf("same seed diverged:\n%+v\n%+v", s1, s2)
	}
}

func TestSnapshotJSON(t *testing.T) {
	g := newTestGame(t, ModeEndless, Grid{{2, 2}})
	g.Step(frame(core.ActionLeft))

	data, err := json.Marshal(g.Snapshot())
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	for _, want := range []string{`"mode":"endless"`, `"moves":1`, `"outcome":"playing"`, `"direction":"left"`, `"seed":42`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("snapshot JSON missing %s: %s", want, data)
		}
	}
}

func TestBoardSnapshotLegalMoves(t *testing.T) {
	s := BoardSnapshot(NewBoardFromValues(Grid{{2}}, &scriptRand{}), ModeClassic)
	if len(s.LegalMoves) != 2 {
		t.Errorf("LegalMoves = %v, want down and right", s.LegalMoves)
	}

	s = BoardSnapshot(NewBoardFromValues(checkerboard, &scriptRand{}), ModeClassic)
	if s.LegalMoves == nil || len(s.LegalMoves) != 0 {
		t.Errorf("finished board LegalMoves = %#v, want empty", s.LegalMoves)
	}
}

func TestRender(t *testing.T) {
	g := newTestGame(t, ModeClassic, Grid{{2, 0, 0, 128}})
	screen := core.NewScreen(80, 24)
	g.Render(screen)

	out := screen.String()
	for _, want := range []string{"2048", "Moves: 0", "Max: 128", "Tiles: 2/16", "┌", "128"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q:\n%s", want, out)
		}
	}
}

func TestRenderTooSmall(t *testing.T) {
	g := New()
	g.Reset(core.RuntimeConfig{ScreenW: 30, ScreenH: 8, TickRate: 60, Seed: 1})
	if !g.State().Paused {
		t.Error("too small window should pause the game")
	}

	screen := core.NewScreen(30, 8)
	g.Render(screen)
	if !strings.Contains(screen.String(), "too small") {
		t.Errorf("expected too small message:\n%s", screen.String())
	}

	g.Resize(80, 24)
	if g.State().Paused {
		t.Error("resize should unpause")
	}
}

func TestTileColorLadder(t *testing.T) {
	seen := map[core.Color]int{}
	for v := 2; v <= 2048; v *= 2 {
		c := tileColor(v)
		if prev, ok := seen[c]; ok {
			t.Errorf("tiles %d and %d share a colour", prev, v)
		}
		seen[c] = v
	}
}

func TestParseMode(t *testing.T) {
	for in, want := range map[string]Mode{"": ModeClassic, "2048": ModeClassic, "Endless": ModeEndless, "2048_endless": ModeEndless} {
		got, err := ParseMode(in)
		if err != nil || got != want {
			t.Errorf("ParseMode(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseMode("campaign"); err == nil {
		t.Error("ParseMode(campaign) should fail")
	}
}
