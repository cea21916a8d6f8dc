package t2048

// scriptRand replays fixed values. Intn falls back to 0 (first empty cell,
// row-major) and Float64 to 0.9 (a 2 at the default probability).
type scriptRand struct {
	ints   []int
	floats []float64
	calls  int
}

func (r *scriptRand) Intn(n int) int {
	r.calls++
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	return v % n
}

func (r *scriptRand) Float64() float64 {
	r.calls++
	if len(r.floats) == 0 {
		return 0.9
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

func gridSum(g Grid) int {
	sum := 0
	for r := range BoardSize {
		for c := range BoardSize {
			sum += g[r][c]
		}
	}
	return sum
}

func gridTiles(g Grid) int {
	n := 0
	for r := range BoardSize {
		for c := range BoardSize {
			if g[r][c] != 0 {
				n++
			}
		}
	}
	return n
}

// checkerboard is a full board where no neighbours match.
var checkerboard = Grid{
	{2, 4, 2, 4},
	{4, 2, 4, 2},
	{2, 4, 2, 4},
	{4, 2, 4, 2},
}
