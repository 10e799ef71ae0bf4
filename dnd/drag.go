package dnd

import "math"

// DragPhase is the state of a pointer capture.
type DragPhase int

const (
	DragIdle DragPhase = iota
	// DragPending: pressed on a draggable item, not moved far enough yet.
	DragPending
	DragActive
)

// DragUpdate describes the effect of one pointer move.
type DragUpdate[K comparable] struct {
	Item    K
	Start   Point
	Point   Point
	Started bool // this move crossed the threshold
	Moving  bool // a drag is in progress (including the move that started it)
}

// Drag captures a pointer from press to release and decides when a press
// turns into a drag.
type Drag[K comparable] struct {
	// Threshold is the distance in cells the pointer must travel after the
	// press before a drag starts. Zero means one cell.
	Threshold float64

	phase DragPhase
	item  K
	start Point
	last  Point
}

// Press arms a drag of item at p.
func (d *Drag[K]) Press(item K, p Point) {
	d.phase = DragPending
	d.item = item
	d.start = p
	d.last = p
}

// Move feeds a pointer position.
func (d *Drag[K]) Move(p Point) DragUpdate[K] {
	d.last = p
	switch d.phase {
	case DragPending:
		if math.Abs(p.X-d.start.X) < d.threshold() && math.Abs(p.Y-d.start.Y) < d.threshold() {
			return DragUpdate[K]{Item: d.item, Start: d.start, Point: p}
		}
		d.phase = DragActive
		return DragUpdate[K]{Item: d.item, Start: d.start, Point: p, Started: true, Moving: true}
	case DragActive:
		return DragUpdate[K]{Item: d.item, Start: d.start, Point: p, Moving: true}
	}
	return DragUpdate[K]{Point: p}
}

// Release ends the capture. It reports the item and whether a drag (not just
// a press) was in progress.
func (d *Drag[K]) Release() (K, bool) {
	item, active := d.item, d.phase == DragActive
	d.Cancel()
	return item, active
}

// Cancel drops the capture without reporting anything.
func (d *Drag[K]) Cancel() {
	var zero K
	d.phase = DragIdle
	d.item = zero
}

func (d *Drag[K]) Phase() DragPhase { return d.phase }
func (d *Drag[K]) Start() Point     { return d.start }
func (d *Drag[K]) Last() Point      { return d.last }

func (d *Drag[K]) threshold() float64 {
	if d.Threshold <= 0 {
		return 1
	}
	return d.Threshold
}
