package dnd

import "time"

const (
	DefaultAutoScrollMargin   = 2
	DefaultAutoScrollInterval = 60 * time.Millisecond
)

// AutoScroll scrolls a viewport while a dragged pointer rests near its top
// or bottom edge. Like Hold it is driven by generation-tagged ticks.
type AutoScroll struct {
	Margin   int
	Interval time.Duration

	enabled bool
	dir     int
	gen     int
}

func (a *AutoScroll) Enable() { a.enabled = true }

// Disable stops scrolling and invalidates pending ticks.
func (a *AutoScroll) Disable() {
	a.enabled = false
	a.dir = 0
	a.gen++
}

func (a *AutoScroll) Enabled() bool { return a.enabled }

// Gen is the generation ticks must carry to be honoured.
func (a *AutoScroll) Gen() int { return a.gen }

// Update takes the pointer row relative to the viewport top. It returns the
// scroll direction (-1, 0, 1) and, when the direction just changed to a
// non-zero value, start=true with the generation to tick for.
func (a *AutoScroll) Update(row, height int) (dir int, start bool, gen int) {
	if !a.enabled || height <= 0 {
		return 0, false, a.gen
	}
	margin := a.margin()
	if margin*2 > height {
		margin = height / 2
	}
	switch {
	case row < margin:
		dir = -1
	case row >= height-margin:
		dir = 1
	}
	if dir == a.dir {
		return dir, false, a.gen
	}
	a.dir = dir
	a.gen++
	return dir, dir != 0, a.gen
}

// Tick reports the direction to scroll for a tick of generation gen, or false
// when the tick is stale.
func (a *AutoScroll) Tick(gen int) (int, bool) {
	if !a.enabled || gen != a.gen || a.dir == 0 {
		return 0, false
	}
	return a.dir, true
}

// Every returns the tick interval.
func (a *AutoScroll) Every() time.Duration {
	if a.Interval <= 0 {
		return DefaultAutoScrollInterval
	}
	return a.Interval
}

func (a *AutoScroll) margin() int {
	if a.Margin <= 0 {
		return DefaultAutoScrollMargin
	}
	return a.Margin
}
