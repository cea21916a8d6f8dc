package t2048

import (
	"fmt"
	"math"
	"strconv"

	"github.com/vovakirdan/tui-2048/internal/core"
)

const (
	cellWidth  = 7 // Width of each cell including its left border
	cellHeight = 2 // Height of each cell including its top border
	hudHeight  = 3

	boardW = BoardSize*cellWidth + 1
	boardH = BoardSize*cellHeight + 1
)

// Minimum screen size for the board plus HUD and help line.
const (
	MinScreenW = boardW + 4
	MinScreenH = boardH + hudHeight + 2
)

// tileColor maps a tile value onto the palette, doubling by doubling.
func tileColor(value int) core.Color {
	switch {
	case value <= 2:
		return core.ColorWhite
	case value == 4:
		return core.ColorBrightWhite
	case value == 8:
		return core.ColorYellow
	case value == 16:
		return core.ColorOrange
	case value == 32:
		return core.ColorRed
	case value == 64:
		return core.ColorBrightRed
	case value == 128:
		return core.ColorMagenta
	case value == 256:
		return core.ColorBrightYellow
	case value == 512:
		return core.ColorGreen
	case value == 1024:
		return core.ColorBrightGreen
	case value == 2048:
		return core.ColorCyan
	default:
		return core.ColorBlue
	}
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	boardX := (g.screenW - boardW) / 2
	boardY := hudHeight + 1

	g.renderHUD(dst, boardX)
	renderGrid(dst, boardX, boardY)

	if g.anim.active() {
		g.renderAnimated(dst, boardX, boardY)
	} else {
		g.renderTiles(dst, boardX, boardY)
	}

	g.renderOverlays(dst, boardX, boardY)
}

func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need %dx%d", MinScreenW, MinScreenH))
}

// renderHUD draws the title, move counter and board stats.
func (g *Game) renderHUD(dst *core.Screen, boardX int) {
	title := g.Title()
	dst.DrawTextColored(boardX+(boardW-len(title))/2, 0, title, core.ColorBrightYellow)

	moves := fmt.Sprintf("Moves: %d", g.board.MoveCount())
	dst.DrawText(boardX, 1, moves)

	maxStr := fmt.Sprintf("Max: %d", g.board.MaxTile())
	dst.DrawTextColored(boardX+boardW-len(maxStr), 1, maxStr, tileColor(g.board.MaxTile()))

	tiles := fmt.Sprintf("Tiles: %d/%d", g.board.TileCount(), CellCount)
	dst.DrawTextColored(boardX+(boardW-len(tiles))/2, 2, tiles, core.ColorGray)
}

// renderGrid draws the 4x4 cell borders.
func renderGrid(dst *core.Screen, boardX, boardY int) {
	for y := range BoardSize + 1 {
		for x := range BoardSize + 1 {
			px := boardX + x*cellWidth
			py := boardY + y*cellHeight

			var corner rune
			switch {
			case y == 0 && x == 0:
				corner = '┌'
			case y == 0 && x == BoardSize:
				corner = '┐'
			case y == BoardSize && x == 0:
				corner = '└'
			case y == BoardSize && x == BoardSize:
				corner = '┘'
			case y == 0:
				corner = '┬'
			case y == BoardSize:
				corner = '┴'
			case x == 0:
				corner = '├'
			case x == BoardSize:
				corner = '┤'
			default:
				corner = '┼'
			}
			dst.SetColored(px, py, corner, core.ColorGray)

			if x < BoardSize {
				for i := 1; i < cellWidth; i++ {
					dst.SetColored(px+i, py, '─', core.ColorGray)
				}
			}
			if y < BoardSize {
				for i := 1; i < cellHeight; i++ {
					dst.SetColored(px, py+i, '│', core.ColorGray)
				}
			}
		}
	}
}

// drawValue writes value centred in the cell at fractional grid position (row, col).
func drawValue(dst *core.Screen, boardX, boardY int, row, col float64, text string, color core.Color) {
	cellX := boardX + int(math.Round(col*cellWidth)) + 1
	cellY := boardY + int(math.Round(row*cellHeight)) + 1
	pad := max((cellWidth-1-len(text))/2, 0)
	dst.DrawTextColored(cellX+pad, cellY, text, color)
}

func (g *Game) renderTiles(dst *core.Screen, boardX, boardY int) {
	for _, t := range g.board.Tiles() {
		drawValue(dst, boardX, boardY, float64(t.Row), float64(t.Col), strconv.Itoa(t.Value), tileColor(t.Value))
	}
}

// renderAnimated draws tiles in flight during the slide, or the settled
// board with the spawned tile growing in during the pop.
func (g *Game) renderAnimated(dst *core.Screen, boardX, boardY int) {
	if g.anim.phase == PhaseSlide {
		for i := range g.anim.tiles {
			a := &g.anim.tiles[i]
			row, col := a.interpolate()
			drawValue(dst, boardX, boardY, row, col, strconv.Itoa(a.Value), tileColor(a.Value))
		}
		return
	}

	var popping *TileAnimation
	if len(g.anim.tiles) > 0 {
		popping = &g.anim.tiles[0]
	}
	for _, t := range g.board.Tiles() {
		if popping != nil && popping.To.Row == t.Row && popping.To.Col == t.Col {
			continue
		}
		drawValue(dst, boardX, boardY, float64(t.Row), float64(t.Col), strconv.Itoa(t.Value), tileColor(t.Value))
	}
	if popping != nil {
		text := "·"
		if popping.Progress >= 0.5 {
			text = strconv.Itoa(popping.Value)
		}
		drawValue(dst, boardX, boardY, float64(popping.To.Row), float64(popping.To.Col), text, tileColor(popping.Value))
	}
}

// renderOverlays draws pause, win and loss messages over the board.
func (g *Game) renderOverlays(dst *core.Screen, boardX, boardY int) {
	centerX := boardX + boardW/2
	centerY := boardY + boardH/2

	switch {
	case g.paused:
		drawOverlay(dst, centerX, centerY, "PAUSED", "Press P to resume")
	case g.anim.active():
	case g.Outcome() == OutcomeWon:
		drawOverlay(dst, centerX, centerY, "YOU WIN!", fmt.Sprintf("%d moves", g.board.MoveCount()), "Press R to restart")
	case g.Outcome() == OutcomeLost:
		drawOverlay(dst, centerX, centerY, "GAME OVER", fmt.Sprintf("Max tile: %d", g.board.MaxTile()), "Press R to restart")
	case g.winBanner:
		drawOverlay(dst, centerX, centerY, "2048!", "Keep going")
	}
}

// drawOverlay draws a centered text box.
func drawOverlay(dst *core.Screen, centerX, centerY int, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, len([]rune(line)))
	}

	box := core.NewRect(centerX-(maxLen+4)/2, centerY-(len(lines)+2)/2, maxLen+4, len(lines)+2)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box)

	for i, line := range lines {
		dst.DrawTextColored(centerX-len([]rune(line))/2, box.Y+1+i, line, core.ColorBrightWhite)
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows/WASD/hjkl: Move | P: Pause | R: Restart | Q: Quit"
}
