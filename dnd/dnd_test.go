package dnd

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectArea(t *testing.T) {
	row := Rect{X: 2, Y: 3, W: 20, H: 1}
	tests := []struct {
		name  string
		p     Point
		ratio float64
		want  Area
	}{
		{"terminal cell resolves to bottom", CellCenter(5, 3), 0.5, AreaBottom},
		{"upper half", Point{X: 5, Y: 3.2}, 0.5, AreaTop},
		{"narrow band left", Point{X: 5, Y: 3.5}, 0.25, AreaCenterLeft},
		{"narrow band right", Point{X: 15, Y: 3.5}, 0.25, AreaCenterRight},
		{"narrow band top", Point{X: 15, Y: 3.1}, 0.25, AreaTop},
		{"narrow band bottom", Point{X: 15, Y: 3.8}, 0.25, AreaBottom},
		{"terminal cell on the label", CellCenter(5, 3), DefaultEdgeRatio, AreaCenterLeft},
		{"terminal cell in the gutter", CellCenter(1, 3), DefaultEdgeRatio, AreaBottom},
		{"gutter upper half", Point{X: 1, Y: 3.2}, DefaultEdgeRatio, AreaTop},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectArea(row, tt.p, tt.ratio))
		})
	}
	assert.True(t, AreaTop.IsEdge())
	assert.False(t, AreaCenterLeft.IsEdge())
}

func TestPlacementIndex(t *testing.T) {
	children := []Rect{{Y: 1, H: 1}, {Y: 2, H: 3}, {Y: 5, H: 1}}
	assert.Equal(t, 0, PlacementIndex(children, Point{Y: 1.2}))
	assert.Equal(t, 1, PlacementIndex(children, Point{Y: 1.5}))
	assert.Equal(t, 1, PlacementIndex(children, Point{Y: 3.4}))
	assert.Equal(t, 2, PlacementIndex(children, Point{Y: 3.5}))
	assert.Equal(t, 3, PlacementIndex(children, Point{Y: 9}))
	assert.Equal(t, 0, PlacementIndex(nil, Point{Y: 9}))
}

func TestRectContains(t *testing.T) {
	r := Rect{X: 1, Y: 1, W: 2, H: 1}
	assert.True(t, r.Contains(Point{X: 1, Y: 1}))
	assert.True(t, r.Contains(Point{X: 2.9, Y: 1.9}))
	assert.False(t, r.Contains(Point{X: 3, Y: 1.5}))
	assert.False(t, r.Contains(Point{X: 1.5, Y: 2}))
}

func TestHold(t *testing.T) {
	var h Hold[string]
	t0 := time.Unix(0, 0)

	gen, changed := h.Set("a", t0)
	require.True(t, changed)
	_, changed = h.Set("a", t0.Add(100*time.Millisecond))
	assert.False(t, changed, "same target keeps the timer")

	_, ok := h.Check(gen, t0.Add(599*time.Millisecond))
	assert.False(t, ok, "threshold not reached")

	got, ok := h.Check(gen, t0.Add(600*time.Millisecond))
	require.True(t, ok)
	assert.Equal(t, "a", got)

	_, ok = h.Check(gen, t0.Add(time.Second))
	assert.False(t, ok, "fires once")
}

func TestHoldTargetChangeInvalidatesTimer(t *testing.T) {
	var h Hold[string]
	t0 := time.Unix(0, 0)
	first, _ := h.Set("a", t0)
	second, changed := h.Set("b", t0.Add(300*time.Millisecond))
	require.True(t, changed)

	_, ok := h.Check(first, t0.Add(700*time.Millisecond))
	assert.False(t, ok, "stale generation")
	_, ok = h.Check(second, t0.Add(700*time.Millisecond))
	assert.False(t, ok, "new target restarted the clock")
	assert.Equal(t, 200*time.Millisecond, h.Wait(t0.Add(700*time.Millisecond)))
	_, ok = h.Check(second, t0.Add(900*time.Millisecond))
	assert.True(t, ok)

	h.End()
	assert.False(t, h.Active())
	_, ok = h.Check(second, t0.Add(2*time.Second))
	assert.False(t, ok)
}

func TestDrag(t *testing.T) {
	var d Drag[string]
	u := d.Move(CellCenter(1, 1))
	assert.False(t, u.Moving, "no press")

	d.Press("a", CellCenter(4, 2))
	assert.Equal(t, DragPending, d.Phase())

	u = d.Move(CellCenter(4, 2))
	assert.False(t, u.Started)
	assert.False(t, u.Moving)

	u = d.Move(CellCenter(5, 2))
	assert.True(t, u.Started)
	assert.True(t, u.Moving)
	assert.Equal(t, "a", u.Item)
	assert.Equal(t, CellCenter(4, 2), u.Start)

	u = d.Move(CellCenter(6, 3))
	assert.False(t, u.Started)
	assert.True(t, u.Moving)

	item, dragging := d.Release()
	assert.Equal(t, "a", item)
	assert.True(t, dragging)
	assert.Equal(t, DragIdle, d.Phase())
}

func TestDragReleaseWithoutMove(t *testing.T) {
	var d Drag[string]
	d.Press("a", CellCenter(0, 0))
	_, dragging := d.Release()
	assert.False(t, dragging)
}

type listSurface struct {
	rows []string
	kids map[string][]Rect
}

func (s listSurface) ItemAt(p Point) (string, Rect, bool) {
	i := int(p.Y)
	if p.Y < 0 || i >= len(s.rows) {
		return "", Rect{}, false
	}
	return s.rows[i], Rect{Y: float64(i), W: 10, H: 1}, true
}

func (s listSurface) ChildRects(item string) []Rect { return s.kids[item] }

func (s listSurface) Fallback() (string, Rect) {
	return s.rows[0], Rect{W: 10, H: float64(len(s.rows))}
}

func TestDrop(t *testing.T) {
	s := listSurface{
		rows: []string{"r", "a", "b"},
		kids: map[string][]Rect{"r": {{Y: 1, H: 1}, {Y: 2, H: 1}}},
	}
	var d Drop[string]

	_, changed := d.Move(CellCenter(1, 1), s)
	assert.False(t, changed, "inactive before Start")

	d.Start()
	target, changed := d.Move(CellCenter(1, 1), s)
	require.True(t, changed)
	assert.Equal(t, "a", target.Item)
	assert.Equal(t, AreaCenterLeft, target.Area)
	assert.True(t, target.Final)
	assert.Equal(t, -1, target.IndexWithinChildren)

	_, changed = d.Move(CellCenter(3, 1), s)
	assert.False(t, changed, "same row, same area")

	target, changed = d.Move(CellCenter(1, 0), s)
	require.True(t, changed)
	assert.Equal(t, "r", target.Item)
	assert.Equal(t, 0, target.IndexWithinChildren)

	target, _ = d.Move(CellCenter(1, 7), s)
	assert.Equal(t, "r", target.Item)
	assert.False(t, target.Final)
	assert.Equal(t, 2, target.IndexWithinChildren)
	assert.Equal(t, CellCenter(1, 7), d.Last())

	d.End()
	_, ok := d.Target()
	assert.False(t, ok)
}

func TestAutoScroll(t *testing.T) {
	a := AutoScroll{Margin: 2}
	dir, start, _ := a.Update(0, 10)
	assert.Zero(t, dir, "disabled")
	assert.False(t, start)

	a.Enable()
	dir, start, gen := a.Update(1, 10)
	assert.Equal(t, -1, dir)
	require.True(t, start)

	d, ok := a.Tick(gen)
	assert.True(t, ok)
	assert.Equal(t, -1, d)

	_, start, _ = a.Update(0, 10)
	assert.False(t, start, "same direction keeps ticking")

	dir, start, gen2 := a.Update(9, 10)
	assert.Equal(t, 1, dir)
	assert.True(t, start)
	_, ok = a.Tick(gen)
	assert.False(t, ok, "direction change invalidates old ticks")

	dir, start, _ = a.Update(5, 10)
	assert.Zero(t, dir)
	assert.False(t, start)
	_, ok = a.Tick(gen2)
	assert.False(t, ok)

	a.Disable()
	_, start, _ = a.Update(0, 10)
	assert.False(t, start)
}
