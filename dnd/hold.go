package dnd

import "time"

// DefaultHoldThreshold is how long a target must stay unchanged to count as
// held.
const DefaultHoldThreshold = 600 * time.Millisecond

// Hold detects a pointer resting over the same target. Every target change
// bumps a generation; a timer scheduled for an older generation is ignored
// by Check.
type Hold[K comparable] struct {
	Threshold time.Duration

	target K
	since  time.Time
	active bool
	fired  bool
	gen    int
}

// Set records the current target. It reports whether the target changed
// (and a new timer should be scheduled for the returned generation).
func (h *Hold[K]) Set(target K, now time.Time) (gen int, changed bool) {
	if h.active && h.target == target {
		return h.gen, false
	}
	h.gen++
	h.target = target
	h.since = now
	h.active = true
	h.fired = false
	return h.gen, true
}

// Check reports the held target if gen is current, the threshold has passed
// and the hold has not fired yet. A hold fires at most once per target.
func (h *Hold[K]) Check(gen int, now time.Time) (K, bool) {
	var zero K
	if !h.active || h.fired || gen != h.gen {
		return zero, false
	}
	if now.Sub(h.since) < h.threshold() {
		return zero, false
	}
	h.fired = true
	return h.target, true
}

// Wait returns how long is left before the current target counts as held.
func (h *Hold[K]) Wait(now time.Time) time.Duration {
	return max(0, h.threshold()-now.Sub(h.since))
}

// End stops tracking. Pending timers become stale.
func (h *Hold[K]) End() {
	var zero K
	h.gen++
	h.target = zero
	h.active = false
	h.fired = false
}

// Gen is the generation of the current target.
func (h *Hold[K]) Gen() int { return h.gen }

// Active reports whether a target is being tracked.
func (h *Hold[K]) Active() bool { return h.active }

func (h *Hold[K]) threshold() time.Duration {
	if h.Threshold <= 0 {
		return DefaultHoldThreshold
	}
	return h.Threshold
}
