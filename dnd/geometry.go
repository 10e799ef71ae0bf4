// Package dnd holds the pointer primitives a drag-and-drop capable view is
// built from: press/move capture, drop target resolution, hold detection and
// edge auto-scroll. Each primitive is a plain state machine; callers feed it
// events and act on the returned values.
package dnd

import "math"

// Point is a pointer position in layout cells.
type Point struct {
	X, Y float64
}

// CellCenter maps a terminal cell to the point at its center.
func CellCenter(col, row int) Point {
	return Point{X: float64(col) + 0.5, Y: float64(row) + 0.5}
}

// Rect is an axis-aligned box in layout cells.
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Right() float64   { return r.X + r.W }
func (r Rect) Bottom() float64  { return r.Y + r.H }
func (r Rect) CenterX() float64 { return r.X + r.W/2 }
func (r Rect) CenterY() float64 { return r.Y + r.H/2 }

// Contains reports whether p lies inside r (right and bottom edges excluded).
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.Right() && p.Y >= r.Y && p.Y < r.Bottom()
}

// Area is the band of a hovered row the pointer is in.
type Area string

const (
	AreaTop         Area = "top"
	AreaBottom      Area = "bottom"
	AreaCenterLeft  Area = "center-left"
	AreaCenterRight Area = "center-right"
)

// IsEdge reports whether the area sits between rows rather than on one.
func (a Area) IsEdge() bool {
	return a == AreaTop || a == AreaBottom
}

// DetectArea classifies p against r. A point left of r.X is in the row's
// gutter and always lands on an edge, split at the vertical center. Inside r,
// edgeRatio is the fraction of the row height that counts as the top and
// bottom band; with 0.5 every point falls in one of the two.
func DetectArea(r Rect, p Point, edgeRatio float64) Area {
	if p.X < r.X {
		if p.Y < r.CenterY() {
			return AreaTop
		}
		return AreaBottom
	}
	edge := math.Max(0, edgeRatio) * r.H
	switch {
	case p.Y < r.Y+edge:
		return AreaTop
	case p.Y >= r.Bottom()-edge:
		return AreaBottom
	case p.X < r.CenterX():
		return AreaCenterLeft
	default:
		return AreaCenterRight
	}
}

// PlacementIndex counts the child rects whose vertical center lies at or
// above p: the index a dropped item would take among those children.
func PlacementIndex(children []Rect, p Point) int {
	n := 0
	for _, r := range children {
		if r.CenterY() <= p.Y {
			n++
		}
	}
	return n
}
