package diagram

import "linkage/geometry"

type portState struct {
	disabled bool
}

// Connectable implements Port.
func (s *portState) Connectable() bool {
	return !s.disabled
}

// SetConnectable enables or disables connections to the port.
func (s *portState) SetConnectable(connectable bool) {
	s.disabled = !connectable
}

// PointPort is a port at the position of a handle.
type PointPort struct {
	portState
	At *Handle
}

// NewPointPort creates a connectable port that follows h.
func NewPointPort(h *Handle) *PointPort {
	return &PointPort{At: h}
}

// Glue implements Port.
func (p *PointPort) Glue(pos geometry.Point) (geometry.Point, float64) {
	return p.At.Pos, geometry.DistancePointPoint(p.At.Pos, pos)
}

// LinePort is a port along the segment between two handles.
type LinePort struct {
	portState
	Start, End *Handle
}

// NewLinePort creates a connectable port between start and end.
func NewLinePort(start, end *Handle) *LinePort {
	return &LinePort{Start: start, End: end}
}

// Glue implements Port.
func (p *LinePort) Glue(pos geometry.Point) (geometry.Point, float64) {
	d, closest := geometry.DistancePointLine(p.Start.Pos, p.End.Pos, pos)
	return closest, d
}
