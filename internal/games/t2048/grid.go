package t2048

import (
	"fmt"
	"strings"
)

// Grid is a value-only view of the board. Zero means empty.
type Grid [BoardSize][BoardSize]int

// String renders the grid as four right-aligned rows, with "." for empty cells.
func (g Grid) String() string {
	var sb strings.Builder
	for r := range BoardSize {
		for c := range BoardSize {
			if c > 0 {
				sb.WriteByte(' ')
			}
			if g[r][c] == 0 {
				fmt.Fprintf(&sb, "%5s", ".")
			} else {
				fmt.Fprintf(&sb, "%5d", g[r][c])
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
