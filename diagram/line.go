package diagram

import (
	"math"
	"slices"

	"linkage/geometry"
)

// Line is a polyline item. Its first and last handles (tail and head) can be
// connected to ports on other items; every segment is a port itself.
type Line struct {
	base
	handles []*Handle
	ports   []Port

	// Width is the stroke width; points within half of it count as inside.
	Width float64
}

// NewLine creates a line through the given points. A line needs at least two
// points.
func NewLine(points ...geometry.Point) *Line {
	if len(points) < 2 {
		panic("diagram: a line needs at least two points")
	}

	l := &Line{base: newBase(), Width: 2}
	for _, p := range points {
		l.handles = append(l.handles, NewHandle(l, p))
	}
	l.Tail().Connectable = true
	l.Head().Connectable = true

	for i := 0; i+1 < len(l.handles); i++ {
		l.ports = append(l.ports, NewLinePort(l.handles[i], l.handles[i+1]))
	}
	return l
}

// Kind implements Item.
func (l *Line) Kind() Kind { return KindLine }

// Handles implements Item.
func (l *Line) Handles() []*Handle { return l.handles }

// Ports implements Item.
func (l *Line) Ports() []Port { return l.ports }

// Tail returns the first handle.
func (l *Line) Tail() *Handle { return l.handles[0] }

// Head returns the last handle.
func (l *Line) Head() *Handle { return l.handles[len(l.handles)-1] }

// Bounds implements Item.
func (l *Line) Bounds() geometry.Rect {
	return geometry.RectFromPoints(positions(l.handles)...).Expand(l.Width / 2)
}

// Distance implements Item. It is the distance to the nearest segment minus
// half the stroke width.
func (l *Line) Distance(p geometry.Point) (float64, error) {
	if !finite(l.handles...) {
		return 0, ErrGeometryUnavailable
	}
	d := math.Inf(1)
	for i := 0; i+1 < len(l.handles); i++ {
		sd, _ := geometry.DistancePointLine(l.handles[i].Pos, l.handles[i+1].Pos, p)
		d = math.Min(d, sd)
	}
	return d - l.Width/2, nil
}

// NewHandle creates a handle owned by the line without inserting it.
func (l *Line) NewHandle(pos geometry.Point) *Handle {
	return NewHandle(l, pos)
}

// InsertHandle inserts h at index i.
func (l *Line) InsertHandle(i int, h *Handle) {
	l.handles = slices.Insert(l.handles, i, h)
}

// RemoveHandle removes h from the line.
func (l *Line) RemoveHandle(h *Handle) {
	l.handles = slices.DeleteFunc(l.handles, func(x *Handle) bool { return x == h })
}

// InsertPort inserts p at index i.
func (l *Line) InsertPort(i int, p Port) {
	l.ports = slices.Insert(l.ports, i, p)
}

// RemovePort removes p from the line.
func (l *Line) RemovePort(p Port) {
	l.ports = slices.DeleteFunc(l.ports, func(x Port) bool { return x == p })
}
