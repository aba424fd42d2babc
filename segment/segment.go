// Package segment splits and merges the segments of a line. Handles of other
// items connected to the line are reattached to the closest of the new ports.
package segment

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"linkage/connections"
	"linkage/connector"
	"linkage/diagram"
	"linkage/geometry"
)

var (
	ErrBadSegment    = errors.New("incorrect segment")
	ErrBadCount      = errors.New("incorrect count of segments")
	ErrSingleSegment = errors.New("cannot merge line with one segment")
)

// SplitTolerance is how close to the middle of a segment a point has to be
// for Split to act on it.
const SplitTolerance = 4

// Segment edits the segments of one line.
type Segment struct {
	line     *diagram.Line
	view     diagram.View
	updater  diagram.Updater
	registry *connections.Registry
	solver   connector.Solver
}

// New creates a segment editor for line.
func New(line *diagram.Line, view diagram.View, updater diagram.Updater, registry *connections.Registry, s connector.Solver) *Segment {
	return &Segment{line: line, view: view, updater: updater, registry: registry, solver: s}
}

// Split splits the segment whose middle is near p (view coordinates) in two
// and returns the new handle.
func (s *Segment) Split(p geometry.Point) (*diagram.Handle, bool) {
	local := geometry.Apply(s.view.ViewToItem(s.line), p)
	handles := s.line.Handles()
	for i := 0; i+1 < len(handles); i++ {
		mid := geometry.Pt((handles[i].Pos.X+handles[i+1].Pos.X)/2, (handles[i].Pos.Y+handles[i+1].Pos.Y)/2)
		if geometry.DistancePointPointFast(local, mid) <= SplitTolerance {
			created, _, err := s.SplitSegment(i, 2)
			if err != nil {
				return nil, false
			}
			return created[0], true
		}
	}
	return nil, false
}

// SplitSegment splits segment into count equal pieces. It returns the
// created handles and the ports now covering the old segment.
func (s *Segment) SplitSegment(segment, count int) ([]*diagram.Handle, []diagram.Port, error) {
	line := s.line
	if segment < 0 || segment >= len(line.Ports()) {
		return nil, nil, fmt.Errorf("%w: %d", ErrBadSegment, segment)
	}
	if count < 2 {
		return nil, nil, fmt.Errorf("%w: %d", ErrBadCount, count)
	}

	for i, n := segment, count; n >= 2; i, n = i+1, n-1 {
		start, end := line.Handles()[i], line.Handles()[i+1]
		d := end.Pos.Sub(start.Pos)
		h := line.NewHandle(start.Pos.Add(geometry.Pt(d.X/float64(n), d.Y/float64(n))))
		line.InsertHandle(i+1, h)

		line.RemovePort(line.Ports()[i])
		line.InsertPort(i, diagram.NewLinePort(start, h))
		line.InsertPort(i+1, diagram.NewLinePort(h, end))
	}

	s.recreateConstraints()
	s.updater.RequestUpdate(line, true)

	handles := slices.Clone(line.Handles()[segment+1 : segment+count])
	ports := slices.Clone(line.Ports()[segment : segment+count])
	return handles, ports, nil
}

// MergeSegment merges count segments starting at segment into one. It
// returns the removed handles and ports.
func (s *Segment) MergeSegment(segment, count int) ([]*diagram.Handle, []diagram.Port, error) {
	line := s.line
	if len(line.Ports()) < 2 {
		return nil, nil, ErrSingleSegment
	}
	if segment < 0 || segment >= len(line.Ports()) {
		return nil, nil, fmt.Errorf("%w: %d", ErrBadSegment, segment)
	}
	if count < 2 || segment+count > len(line.Ports()) {
		return nil, nil, fmt.Errorf("%w: %d", ErrBadCount, count)
	}

	handles := slices.Clone(line.Handles()[segment+1 : segment+count])
	ports := slices.Clone(line.Ports()[segment : segment+count])
	for _, h := range handles {
		line.RemoveHandle(h)
	}
	for _, p := range ports {
		line.RemovePort(p)
	}
	line.InsertPort(segment, diagram.NewLinePort(line.Handles()[segment], line.Handles()[segment+1]))

	s.recreateConstraints()
	s.updater.RequestUpdate(line, true)
	return handles, ports, nil
}

// recreateConstraints moves every connection to the line onto the port now
// closest to the connected handle.
func (s *Segment) recreateConstraints() {
	for _, conn := range slices.Collect(s.registry.ConnectedTo(s.line)) {
		h := conn.Handle
		pos := geometry.Apply(s.view.ItemToView(h.Owner()), h.Pos)
		port := closestPort(s.line, geometry.Apply(s.view.ViewToItem(s.line), pos))
		if port == nil {
			continue
		}

		if conn.Constraint != nil {
			s.solver.RemoveConstraint(conn.Constraint)
		}
		constraint := s.solver.AddConstraint(connector.NewPortConstraint(s.view, h, s.line, port))
		s.registry.SetConnection(h, s.line, port, constraint)
	}
}

func closestPort(item diagram.Item, p geometry.Point) diagram.Port {
	var port diagram.Port
	limit := math.Inf(1)
	for _, candidate := range item.Ports() {
		if _, d := candidate.Glue(p); d < limit {
			port, limit = candidate, d
		}
	}
	return port
}
