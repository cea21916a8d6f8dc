package core

// Color represents a foreground color for a screen cell.
// Values map onto ANSI 256-color codes in the platform renderer.
type Color uint8

// Palette used by the board renderer. The order runs roughly from the
// coolest tile colour to the hottest, matching the classic 2048 ladder.
const (
	ColorDefault Color = iota
	ColorGray
	ColorWhite
	ColorBrightWhite
	ColorYellow
	ColorOrange
	ColorRed
	ColorBrightRed
	ColorMagenta
	ColorBrightYellow
	ColorGreen
	ColorBrightGreen
	ColorCyan
	ColorBlue
)

// Cell is one character of a Screen with its foreground colour.
type Cell struct {
	Rune  rune
	Color Color
}

// blankCell is what Clear writes into every cell.
var blankCell = Cell{Rune: ' ', Color: ColorDefault}
