package segment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linkage/canvas"
	"linkage/connections"
	"linkage/connector"
	"linkage/diagram"
	"linkage/geometry"
	"linkage/solver"
)

type fixture struct {
	canvas    *canvas.Canvas
	solver    *solver.Solver
	reg       *connections.Registry
	connector *connector.Connector
	line      *diagram.Line
	seg       *Segment
}

func setup(t *testing.T) *fixture {
	t.Helper()
	s := solver.New()
	c := canvas.New(s)
	reg := connections.New()
	line := diagram.NewLine(geometry.Pt(0, 0), geometry.Pt(90, 0))
	require.NoError(t, c.Add(line, geometry.Translation(10, 10)))
	return &fixture{
		canvas:    c,
		solver:    s,
		reg:       reg,
		connector: connector.New(c, reg, s, nil),
		line:      line,
		seg:       New(line, c, c, reg, s),
	}
}

func positions(l *diagram.Line) []geometry.Point {
	var out []geometry.Point
	for _, h := range l.Handles() {
		out = append(out, h.Pos)
	}
	return out
}

func TestSplitSegment(t *testing.T) {
	f := setup(t)

	handles, ports, err := f.seg.SplitSegment(0, 3)
	require.NoError(t, err)
	assert.Len(t, handles, 2)
	assert.Len(t, ports, 3)
	assert.Equal(t, []geometry.Point{{X: 0}, {X: 30}, {X: 60}, {X: 90}}, positions(f.line))
	assert.Len(t, f.line.Ports(), 3)

	for i, p := range f.line.Ports() {
		lp := p.(*diagram.LinePort)
		assert.Same(t, f.line.Handles()[i], lp.Start)
		assert.Same(t, f.line.Handles()[i+1], lp.End)
	}
	assert.False(t, handles[0].Connectable)

	queued, matrix := f.canvas.Pending(f.line)
	assert.True(t, queued)
	assert.True(t, matrix)
}

func TestSplitSegmentErrors(t *testing.T) {
	f := setup(t)

	_, _, err := f.seg.SplitSegment(1, 2)
	require.ErrorIs(t, err, ErrBadSegment)
	_, _, err = f.seg.SplitSegment(-1, 2)
	require.ErrorIs(t, err, ErrBadSegment)
	_, _, err = f.seg.SplitSegment(0, 1)
	require.ErrorIs(t, err, ErrBadCount)
	assert.Len(t, f.line.Handles(), 2)
}

func TestSplitNearMiddle(t *testing.T) {
	f := setup(t)

	h, ok := f.seg.Split(geometry.Pt(56, 11))
	require.True(t, ok)
	assert.Equal(t, geometry.Pt(45, 0), h.Pos)
	assert.Len(t, f.line.Handles(), 3)

	_, ok = f.seg.Split(geometry.Pt(80, 30))
	assert.False(t, ok)
}

func TestMergeSegment(t *testing.T) {
	f := setup(t)
	_, _, err := f.seg.SplitSegment(0, 3)
	require.NoError(t, err)

	handles, ports, err := f.seg.MergeSegment(0, 3)
	require.NoError(t, err)
	assert.Len(t, handles, 2)
	assert.Len(t, ports, 3)
	assert.Equal(t, []geometry.Point{{X: 0}, {X: 90}}, positions(f.line))
	require.Len(t, f.line.Ports(), 1)
	lp := f.line.Ports()[0].(*diagram.LinePort)
	assert.Same(t, f.line.Tail(), lp.Start)
	assert.Same(t, f.line.Head(), lp.End)
}

func TestMergeSegmentErrors(t *testing.T) {
	f := setup(t)

	_, _, err := f.seg.MergeSegment(0, 2)
	require.ErrorIs(t, err, ErrSingleSegment)

	_, _, err = f.seg.SplitSegment(0, 2)
	require.NoError(t, err)
	_, _, err = f.seg.MergeSegment(2, 2)
	require.ErrorIs(t, err, ErrBadSegment)
	_, _, err = f.seg.MergeSegment(1, 2)
	require.ErrorIs(t, err, ErrBadCount)
	_, _, err = f.seg.MergeSegment(0, 1)
	require.ErrorIs(t, err, ErrBadCount)
}

func TestSplitReattachesConnections(t *testing.T) {
	f := setup(t)
	other := diagram.NewLine(geometry.Pt(0, 0), geometry.Pt(0, 50))
	require.NoError(t, f.canvas.Add(other, geometry.Translation(85, 15)))

	head := other.Head()
	require.True(t, f.connector.Connect(head, geometry.Pt(85, 12), 10))
	old, ok := f.reg.GetConnection(head)
	require.True(t, ok)
	require.Same(t, f.line.Ports()[0], old.Port)

	_, _, err := f.seg.SplitSegment(0, 2)
	require.NoError(t, err)

	conn, ok := f.reg.GetConnection(head)
	require.True(t, ok)
	assert.Same(t, f.line.Ports()[1], conn.Port, "the head sits on the second half")
	assert.False(t, f.solver.Has(old.Constraint))
	assert.True(t, f.solver.Has(conn.Constraint))
	assert.Equal(t, 1, f.solver.Len())

	_, _, err = f.seg.MergeSegment(0, 2)
	require.NoError(t, err)
	conn, ok = f.reg.GetConnection(head)
	require.True(t, ok)
	assert.Same(t, f.line.Ports()[0], conn.Port)
	assert.Equal(t, 1, f.solver.Len())
}
