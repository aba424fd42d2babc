package connector

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linkage/canvas"
	"linkage/connections"
	"linkage/diagram"
	"linkage/geometry"
	"linkage/solver"
)

type fixture struct {
	canvas    *canvas.Canvas
	solver    *solver.Solver
	registry  *connections.Registry
	connector *Connector
	line      *diagram.Line
	box       *diagram.Element
}

// newFixture places a 38x20 box at (60,101) and a vertical line starting at
// the origin. The top left corner of the box is the closest port point to
// (100,100).
func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		solver:   solver.New(),
		registry: connections.New(),
		line:     diagram.NewLine(geometry.Pt(0, 0), geometry.Pt(0, 50)),
		box:      diagram.NewElement(38, 20),
	}
	f.canvas = canvas.New(f.solver)
	f.connector = New(f.canvas, f.registry, f.solver, nil)
	f.line.SetID("line")
	f.box.SetID("box")
	require.NoError(t, f.canvas.Add(f.box, geometry.Translation(60, 101)))
	require.NoError(t, f.canvas.Add(f.line, geometry.Identity()))
	return f
}

func constraintsFor(s *solver.Solver, h *diagram.Handle) int {
	n := 0
	for _, c := range s.Constraints() {
		if pc, ok := c.(*PortConstraint); ok && pc.Handle() == h {
			n++
		}
	}
	return n
}

func TestGlue(t *testing.T) {
	f := newFixture(t)
	tail := f.line.Tail()

	sink, ok := f.connector.Glue(tail, geometry.Pt(100, 100), 10)
	require.True(t, ok)
	assert.Same(t, f.box, sink.Item)
	assert.Same(t, f.box.Ports()[0], sink.Port)
	assert.Equal(t, geometry.Pt(98, 101), sink.Pos)
	assert.Equal(t, geometry.Pt(98, 101), tail.Pos)
	assert.True(t, tail.Glued)

	assert.Zero(t, f.registry.Len(), "glue never records a connection")
	assert.Zero(t, f.solver.Len(), "glue never adds constraints")
}

func TestGlueMiss(t *testing.T) {
	f := newFixture(t)
	tail := f.line.Tail()
	tail.Glued = true

	_, ok := f.connector.Glue(tail, geometry.Pt(300, 300), 10)
	assert.False(t, ok)
	assert.False(t, tail.Glued)
	assert.Equal(t, geometry.Pt(0, 0), tail.Pos)
}

func TestGlueNotConnectable(t *testing.T) {
	f := newFixture(t)
	tail := f.line.Tail()
	tail.Connectable = false

	_, ok := f.connector.Glue(tail, geometry.Pt(100, 100), 10)
	assert.False(t, ok)
	assert.Equal(t, geometry.Pt(0, 0), tail.Pos)
}

func TestGlueSkipsOwner(t *testing.T) {
	f := newFixture(t)
	head := f.line.Head()

	_, ok := f.connector.Glue(head, geometry.Pt(0, 45), 10)
	assert.False(t, ok, "a handle does not glue to its own line")
}

type refusing struct {
	*diagram.Element
}

func (refusing) AllowConnect(*diagram.Handle, diagram.Port) bool { return false }

func TestGlueRefused(t *testing.T) {
	s := solver.New()
	c := canvas.New(s)
	target := refusing{diagram.NewElement(20, 20)}
	line := diagram.NewLine(geometry.Pt(0, 0), geometry.Pt(0, 50))
	require.NoError(t, c.Add(target, geometry.Translation(100, 100)))
	require.NoError(t, c.Add(line, geometry.Identity()))

	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	conn := New(c, connections.New(), s, log)

	_, ok := conn.Glue(line.Tail(), geometry.Pt(105, 98), 10)
	assert.False(t, ok)
	assert.False(t, line.Tail().Glued)
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, "connection refused", hook.LastEntry().Message)
}

func TestConnectDisconnectConsistency(t *testing.T) {
	f := newFixture(t)
	tail := f.line.Tail()

	require.True(t, f.connector.Connect(tail, geometry.Pt(100, 100), 10))
	conn, ok := f.registry.GetConnection(tail)
	require.True(t, ok)
	assert.Same(t, f.box, conn.Item)
	assert.Same(t, f.box.Ports()[0], conn.Port)
	assert.True(t, f.solver.Has(conn.Constraint))
	assert.Equal(t, 1, constraintsFor(f.solver, tail))

	// Connecting again supersedes the first connection.
	first := conn.Constraint
	require.True(t, f.connector.Connect(tail, geometry.Pt(97, 125), 10))
	conn, ok = f.registry.GetConnection(tail)
	require.True(t, ok)
	assert.Same(t, f.box.Ports()[2], conn.Port)
	assert.False(t, f.solver.Has(first))
	assert.Equal(t, 1, constraintsFor(f.solver, tail))
	assert.Equal(t, 1, f.registry.Len())

	f.connector.Disconnect(tail)
	_, ok = f.registry.GetConnection(tail)
	assert.False(t, ok)
	assert.Zero(t, constraintsFor(f.solver, tail))

	f.connector.Disconnect(tail)
	assert.Zero(t, f.registry.Len())
	assert.Zero(t, f.solver.Len())
}

func TestConnectWithoutTargetDisconnects(t *testing.T) {
	f := newFixture(t)
	tail := f.line.Tail()
	require.True(t, f.connector.Connect(tail, geometry.Pt(100, 100), 10))

	assert.False(t, f.connector.Connect(tail, geometry.Pt(300, 300), 10))
	_, ok := f.registry.GetConnection(tail)
	assert.False(t, ok)
	assert.Zero(t, f.solver.Len())
}

func TestPortConstraintFollowsItem(t *testing.T) {
	f := newFixture(t)
	tail := f.line.Tail()
	require.True(t, f.connector.Connect(tail, geometry.Pt(100, 100), 10))
	require.NoError(t, f.solver.Solve())

	require.NoError(t, f.canvas.SetMatrix(f.box, geometry.Translation(60, 111)))
	f.canvas.RequestUpdate(f.box, true)
	require.NoError(t, f.canvas.Update())

	assert.InDelta(t, 98, tail.Pos.X, 1e-9)
	assert.InDelta(t, 111, tail.Pos.Y, 1e-9)
}

func TestPortConstraintDependsOn(t *testing.T) {
	f := newFixture(t)
	pc := NewPortConstraint(f.canvas, f.line.Tail(), f.box, f.box.Ports()[0])

	assert.True(t, pc.DependsOn(f.box))
	assert.True(t, pc.DependsOn(f.line))
	assert.False(t, pc.DependsOn(diagram.NewElement(1, 1)))
	assert.Equal(t, "port constraint line#0 -> box", pc.String())
}

func TestHandleNameAndPortIndex(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, "line#1", HandleName(f.line.Head()))
	assert.Equal(t, "?#-1", HandleName(diagram.NewHandle(nil, geometry.Pt(0, 0))))
	assert.Equal(t, 3, PortIndex(f.box, f.box.Ports()[3]))
	assert.Equal(t, -1, PortIndex(f.box, f.line.Ports()[0]))
}
