package t2048

import (
	"errors"
	"fmt"
	"strings"
)

// Direction represents a move direction.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// Directions lists every valid direction in a stable order.
var Directions = []Direction{DirUp, DirDown, DirLeft, DirRight}

// ErrUnknownDirection is returned by ParseDirection for unrecognized input.
var ErrUnknownDirection = errors.New("t2048: unknown direction")

// String returns the lowercase direction name.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// Valid reports whether d is one of the four directions.
func (d Direction) Valid() bool {
	return d >= DirUp && d <= DirRight
}

// ParseDirection converts a name, arrow-key name, or WASD/hjkl letter into a Direction.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up", "w", "k":
		return DirUp, nil
	case "down", "s", "j":
		return DirDown, nil
	case "left", "a", "h":
		return DirLeft, nil
	case "right", "d", "l":
		return DirRight, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownDirection, s)
}

// MarshalText implements encoding.TextMarshaler.
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Direction) UnmarshalText(text []byte) error {
	parsed, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// vector returns the single-cell step toward the leading edge.
func (d Direction) vector() (dRow, dCol int) {
	switch d {
	case DirUp:
		return -1, 0
	case DirDown:
		return 1, 0
	case DirLeft:
		return 0, -1
	case DirRight:
		return 0, 1
	default:
		return 0, 0
	}
}

// line returns the cells of the i-th row (left/right) or column (up/down),
// ordered from the leading edge to the trailing edge.
func (d Direction) line(i int) [BoardSize]Position {
	var cells [BoardSize]Position
	for k := range BoardSize {
		switch d {
		case DirLeft:
			cells[k] = Position{Row: i, Col: k}
		case DirRight:
			cells[k] = Position{Row: i, Col: BoardSize - 1 - k}
		case DirUp:
			cells[k] = Position{Row: k, Col: i}
		case DirDown:
			cells[k] = Position{Row: BoardSize - 1 - k, Col: i}
		}
	}
	return cells
}
