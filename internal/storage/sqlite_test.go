package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/session"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreSaveAndTop(t *testing.T) {
	store := openTestStore(t)

	results := []Result{
		{Mode: "2048", Moves: 300, MaxTile: 512, Tiles: 16, Outcome: "lost", Seed: 1},
		{Mode: "2048", Moves: 900, MaxTile: 2048, Tiles: 10, Won: true, Outcome: "won", Seed: 2},
		{Mode: "2048", Moves: 700, MaxTile: 2048, Tiles: 9, Won: true, Outcome: "won", Seed: 3},
		{Mode: "2048", Moves: 250, MaxTile: 512, Tiles: 16, Outcome: "lost", Seed: 4},
		{Mode: "2048_endless", Moves: 5000, MaxTile: 8192, Tiles: 16, Won: true, Outcome: "won", Seed: 5},
	}
	for _, r := range results {
		if _, err := store.SaveResult(r); err != nil {
			t.Fatalf("SaveResult() failed: %v", err)
		}
	}

	top, err := store.TopResults("2048", 10)
	if err != nil {
		t.Fatalf("TopResults() failed: %v", err)
	}
	if len(top) != 4 {
		t.Fatalf("Expected 4 results, got %d", len(top))
	}

	wantSeeds := []int64{3, 2, 4, 1}
	for i, seed := range wantSeeds {
		if top[i].Seed != seed {
			t.Errorf("top[%d].Seed = %d, want %d (%+v)", i, top[i].Seed, seed, top[i])
		}
	}
	if !top[0].Won || top[0].Outcome != "won" || top[0].Tiles != 9 {
		t.Errorf("top[0] = %+v", top[0])
	}
	if top[0].CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}

	limited, err := store.TopResults("2048", 2)
	if err != nil {
		t.Fatalf("TopResults() failed: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("Expected 2 results, got %d", len(limited))
	}
}

func TestStoreBestResult(t *testing.T) {
	store := openTestStore(t)

	if _, ok, err := store.BestResult("2048"); err != nil || ok {
		t.Errorf("BestResult on empty store = %v, %v", ok, err)
	}

	store.SaveResult(Result{Mode: "2048", Moves: 10, MaxTile: 64, Outcome: "lost"})
	store.SaveResult(Result{Mode: "2048", Moves: 12, MaxTile: 128, Outcome: "lost"})

	best, ok, err := store.BestResult("2048")
	if err != nil || !ok {
		t.Fatalf("BestResult() = %v, %v", ok, err)
	}
	if best.MaxTile != 128 {
		t.Errorf("best MaxTile = %d, want 128", best.MaxTile)
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveResult(Result{Mode: "2048", Moves: 100, MaxTile: 256, Outcome: "lost"})
	store.SaveResult(Result{Mode: "2048", Moves: 300, MaxTile: 2048, Won: true, Outcome: "won"})
	store.SaveResult(Result{Mode: "2048_endless", Moves: 50, MaxTile: 64, Outcome: "lost"})

	stats, err := store.Stats("2048")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Games != 2 || stats.Wins != 1 || stats.BestTile != 2048 || stats.TotalMoves != 400 || stats.AvgMoves != 200 {
		t.Errorf("Stats = %+v", stats)
	}

	empty, err := store.Stats("nothing")
	if err != nil {
		t.Fatalf("Stats(empty) failed: %v", err)
	}
	if empty.Games != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", empty)
	}

	all, err := store.AllStats()
	if err != nil {
		t.Fatalf("AllStats() failed: %v", err)
	}
	if len(all) != 2 || all["2048_endless"].Games != 1 {
		t.Errorf("AllStats = %+v", all)
	}
}

func TestStoreClearResults(t *testing.T) {
	store := openTestStore(t)

	store.SaveResult(Result{Mode: "2048", Moves: 1, MaxTile: 4, Outcome: "lost"})
	store.SaveResult(Result{Mode: "2048_endless", Moves: 1, MaxTile: 4, Outcome: "lost"})

	if err := store.ClearResults("2048"); err != nil {
		t.Fatalf("ClearResults() failed: %v", err)
	}

	cleared, _ := store.TopResults("2048", 10)
	if len(cleared) != 0 {
		t.Errorf("Expected 0 results after clear, got %d", len(cleared))
	}
	other, _ := store.TopResults("2048_endless", 10)
	if len(other) != 1 {
		t.Errorf("Clear removed results of another mode")
	}
}

func TestStoreSaveSummary(t *testing.T) {
	store := openTestStore(t)

	err := store.SaveSummary(session.Summary{
		SessionID: "abc",
		Mode:      t2048.ModeEndless,
		Moves:     42,
		MaxTile:   128,
		Tiles:     16,
		Outcome:   t2048.OutcomeLost,
		Seed:      99,
	})
	if err != nil {
		t.Fatalf("SaveSummary() failed: %v", err)
	}

	top, _ := store.TopResults(t2048.IDEndless, 1)
	if len(top) != 1 || top[0].Moves != 42 || top[0].Outcome != "lost" || top[0].Seed != 99 {
		t.Errorf("saved summary = %+v", top)
	}
}
