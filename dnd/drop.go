package dnd

// DefaultEdgeRatio gives the top and bottom quarter of a row to its edges.
// A pointer at a terminal cell's center is never inside either band.
const DefaultEdgeRatio = 0.25

// DropTarget is the pointer-resolved candidate under the cursor.
type DropTarget[K comparable] struct {
	Item K
	Rect Rect
	Area Area
	// Final is false when nothing was under the pointer and the surface's
	// fallback item was used.
	Final bool
	// IndexWithinChildren is PlacementIndex over Item's visible children,
	// or -1 when it has none.
	IndexWithinChildren int
}

// Surface is the layout a Drop resolves against.
type Surface[K comparable] interface {
	ItemAt(p Point) (K, Rect, bool)
	ChildRects(item K) []Rect
	Fallback() (K, Rect)
}

// Drop tracks the drop target while a drag is in progress.
type Drop[K comparable] struct {
	EdgeRatio float64

	active bool
	target DropTarget[K]
	has    bool
	last   Point
}

// Start begins drop detection.
func (d *Drop[K]) Start() {
	d.active = true
	d.has = false
}

// Move resolves the target under p and reports whether it differs from the
// previous one. It does nothing before Start.
func (d *Drop[K]) Move(p Point, s Surface[K]) (DropTarget[K], bool) {
	if !d.active {
		return DropTarget[K]{}, false
	}
	d.last = p
	item, rect, ok := s.ItemAt(p)
	if !ok {
		item, rect = s.Fallback()
	}
	t := DropTarget[K]{
		Item:                item,
		Rect:                rect,
		Area:                DetectArea(rect, p, d.edgeRatio()),
		Final:               ok,
		IndexWithinChildren: -1,
	}
	if children := s.ChildRects(item); len(children) > 0 {
		t.IndexWithinChildren = PlacementIndex(children, p)
	}
	changed := !d.has || t != d.target
	d.target, d.has = t, true
	return t, changed
}

// Target returns the last resolved target.
func (d *Drop[K]) Target() (DropTarget[K], bool) {
	return d.target, d.active && d.has
}

// Last is the most recent point given to Move.
func (d *Drop[K]) Last() Point { return d.last }

func (d *Drop[K]) Active() bool { return d.active }

// End stops detection and forgets the target.
func (d *Drop[K]) End() {
	d.active = false
	d.has = false
	d.target = DropTarget[K]{}
}

func (d *Drop[K]) edgeRatio() float64 {
	if d.EdgeRatio <= 0 {
		return DefaultEdgeRatio
	}
	return d.EdgeRatio
}
