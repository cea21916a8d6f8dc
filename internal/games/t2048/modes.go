package t2048

import (
	"errors"
	"fmt"
	"strings"
)

// Mode selects when a game ends.
type Mode string

const (
	// ModeClassic ends the game on the first 2048 tile or when no move is left.
	ModeClassic Mode = "classic"
	// ModeEndless announces 2048 once and keeps going until no move is left.
	ModeEndless Mode = "endless"
)

// Registry IDs for the two modes.
const (
	IDClassic = "2048"
	IDEndless = "2048_endless"
)

// ErrUnknownMode is returned by ParseMode for unrecognized input.
var ErrUnknownMode = errors.New("t2048: unknown mode")

// Modes lists the supported modes.
var Modes = []Mode{ModeClassic, ModeEndless}

// ParseMode accepts a mode name or its registry ID.
// An empty string selects classic.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "classic", IDClassic:
		return ModeClassic, nil
	case "endless", IDEndless:
		return ModeEndless, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// ID returns the registry ID for the mode.
func (m Mode) ID() string {
	if m == ModeEndless {
		return IDEndless
	}
	return IDClassic
}

// Title returns the display name.
func (m Mode) Title() string {
	if m == ModeEndless {
		return "2048 (Endless)"
	}
	return "2048"
}

// Outcome is the state of a game as seen by its mode.
type Outcome string

const (
	OutcomePlaying Outcome = "playing"
	OutcomeWon     Outcome = "won"
	OutcomeLost    Outcome = "lost"
)

// Outcome classifies the board under the rules of m.
// In endless mode a finished game that reached 2048 counts as won.
func (m Mode) Outcome(b *Board) Outcome {
	switch {
	case m == ModeClassic && b.HasWonGame():
		return OutcomeWon
	case !b.IsGameOver():
		return OutcomePlaying
	case b.HasWonGame():
		return OutcomeWon
	default:
		return OutcomeLost
	}
}

// Finished reports whether the board accepts no further moves under m.
func (m Mode) Finished(b *Board) bool {
	return m.Outcome(b) != OutcomePlaying
}
