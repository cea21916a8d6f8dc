package t2048

// Animation durations in ticks (~133ms and ~100ms at 60 ticks/s).
const (
	defaultSlideTicks = 8
	defaultPopTicks   = 6
)

// AnimationPhase represents the current phase of animation.
type AnimationPhase int

const (
	PhaseNone AnimationPhase = iota
	PhaseSlide
	PhasePop
)

// TileAnimation is one tile in flight, positions in grid cells.
type TileAnimation struct {
	Value    int
	From     Position
	To       Position
	Progress float64 // 0.0 → 1.0
	Merged   bool
	IsNew    bool
}

// animator plays a MoveResult back: every tile slides, then the spawned tile pops.
type animator struct {
	phase      AnimationPhase
	ticks      int
	slideTicks int
	popTicks   int
	tiles      []TileAnimation
	pending    *TileView
}

func (a *animator) active() bool {
	return a.phase != PhaseNone
}

// start begins the slide phase for res.
func (a *animator) start(res MoveResult, slideTicks, popTicks int) {
	a.slideTicks = slideTicks
	a.popTicks = popTicks
	a.pending = res.Spawned

	a.tiles = a.tiles[:0]
	for _, m := range res.Moves {
		a.tiles = append(a.tiles, TileAnimation{
			Value:  m.Value,
			From:   m.From,
			To:     m.To,
			Merged: m.Merged,
		})
	}
	a.phase = PhaseSlide
	a.ticks = 0
}

func (a *animator) startPop(t TileView) {
	a.tiles = []TileAnimation{{
		Value: t.Value,
		From:  Position{Row: t.Row, Col: t.Col},
		To:    Position{Row: t.Row, Col: t.Col},
		IsNew: true,
	}}
	a.phase = PhasePop
	a.ticks = 0
}

// update advances one tick. Returns true while the animation is still running.
func (a *animator) update() bool {
	var duration int
	switch a.phase {
	case PhaseSlide:
		duration = a.slideTicks
	case PhasePop:
		duration = a.popTicks
	default:
		return false
	}

	a.ticks++
	progress := float64(a.ticks) / float64(duration)
	if progress > 1.0 {
		progress = 1.0
	}
	for i := range a.tiles {
		a.tiles[i].Progress = progress
	}

	if a.ticks >= duration {
		a.finish()
		return a.active()
	}
	return true
}

// finish completes the current phase and chains the pop after the slide.
func (a *animator) finish() {
	if a.phase == PhaseSlide && a.pending != nil {
		t := *a.pending
		a.pending = nil
		a.startPop(t)
		return
	}
	a.phase = PhaseNone
	a.tiles = nil
}

// easeOutQuad provides smooth deceleration for animation.
func easeOutQuad(t float64) float64 {
	return t * (2 - t)
}

// interpolate returns the tile's current position in fractional cells.
func (t *TileAnimation) interpolate() (row, col float64) {
	p := easeOutQuad(t.Progress)
	row = float64(t.From.Row) + float64(t.To.Row-t.From.Row)*p
	col = float64(t.From.Col) + float64(t.To.Col-t.From.Col)*p
	return row, col
}
