package diagram

import (
	"math"

	"linkage/geometry"
)

// Corner handle positions of an Element, clockwise from the top-left.
const (
	NW = iota
	NE
	SE
	SW
)

// Element is a resizable rectangular item with a handle on each corner and a
// port along each side. Its local origin is the NW corner.
type Element struct {
	base
	handles []*Handle
	ports   []Port

	MinWidth  float64
	MinHeight float64
}

// NewElement creates an element of the given size.
func NewElement(width, height float64) *Element {
	e := &Element{base: newBase(), MinWidth: 10, MinHeight: 10}
	e.handles = []*Handle{
		NewHandle(e, geometry.Pt(0, 0)),
		NewHandle(e, geometry.Pt(width, 0)),
		NewHandle(e, geometry.Pt(width, height)),
		NewHandle(e, geometry.Pt(0, height)),
	}
	h := e.handles
	e.ports = []Port{
		NewLinePort(h[NW], h[NE]),
		NewLinePort(h[NE], h[SE]),
		NewLinePort(h[SE], h[SW]),
		NewLinePort(h[SW], h[NW]),
	}
	return e
}

// Kind implements Item.
func (e *Element) Kind() Kind { return KindElement }

// Handles implements Item.
func (e *Element) Handles() []*Handle { return e.handles }

// Ports implements Item.
func (e *Element) Ports() []Port { return e.ports }

// Width returns the current width.
func (e *Element) Width() float64 {
	return e.handles[SE].Pos.X - e.handles[NW].Pos.X
}

// Height returns the current height.
func (e *Element) Height() float64 {
	return e.handles[SE].Pos.Y - e.handles[NW].Pos.Y
}

// Bounds implements Item.
func (e *Element) Bounds() geometry.Rect {
	return geometry.RectFromPoints(positions(e.handles)...)
}

// Distance implements Item.
func (e *Element) Distance(p geometry.Point) (float64, error) {
	if !finite(e.handles...) {
		return 0, ErrGeometryUnavailable
	}
	return geometry.DistanceRectanglePoint(e.Bounds(), p), nil
}

// MoveCorner moves corner handle i to p, dragging the two adjacent corners
// along so the element stays a rectangle no smaller than its minimum size.
func (e *Element) MoveCorner(i int, p geometry.Point) {
	h := e.handles
	switch i {
	case NW:
		p.X = math.Min(p.X, h[SE].Pos.X-e.MinWidth)
		p.Y = math.Min(p.Y, h[SE].Pos.Y-e.MinHeight)
		h[NE].Pos.Y = p.Y
		h[SW].Pos.X = p.X
	case NE:
		p.X = math.Max(p.X, h[SW].Pos.X+e.MinWidth)
		p.Y = math.Min(p.Y, h[SW].Pos.Y-e.MinHeight)
		h[NW].Pos.Y = p.Y
		h[SE].Pos.X = p.X
	case SE:
		p.X = math.Max(p.X, h[NW].Pos.X+e.MinWidth)
		p.Y = math.Max(p.Y, h[NW].Pos.Y+e.MinHeight)
		h[NE].Pos.X = p.X
		h[SW].Pos.Y = p.Y
	case SW:
		p.X = math.Min(p.X, h[NE].Pos.X-e.MinWidth)
		p.Y = math.Max(p.Y, h[NE].Pos.Y+e.MinHeight)
		h[SE].Pos.Y = p.Y
		h[NW].Pos.X = p.X
	default:
		return
	}
	h[i].Pos = p
}

// Normalize implements Normalizer by moving the NW corner back to the origin.
func (e *Element) Normalize() (dx, dy float64) {
	origin := e.handles[NW].Pos
	if origin.X == 0 && origin.Y == 0 {
		return 0, 0
	}
	for _, h := range e.handles {
		h.Pos = h.Pos.Sub(origin)
	}
	return origin.X, origin.Y
}

func positions(handles []*Handle) []geometry.Point {
	out := make([]geometry.Point, len(handles))
	for i, h := range handles {
		out[i] = h.Pos
	}
	return out
}

func finite(handles ...*Handle) bool {
	for _, h := range handles {
		if math.IsNaN(h.Pos.X) || math.IsNaN(h.Pos.Y) || math.IsInf(h.Pos.X, 0) || math.IsInf(h.Pos.Y, 0) {
			return false
		}
	}
	return true
}
