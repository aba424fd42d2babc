// Package linkage wires the connection core together: a canvas with its
// solver, the connection registry and the connector, plus helpers to build
// diagrams and drag handles programmatically.
package linkage

import (
	"cmp"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/sirupsen/logrus"

	"linkage/canvas"
	"linkage/config"
	"linkage/connections"
	"linkage/connector"
	"linkage/diagram"
	"linkage/geometry"
	"linkage/handlemove"
	"linkage/segment"
	"linkage/solver"
	"linkage/tool"
)

// ErrEmptyPath is returned by Drag when there is nothing to drag along.
var ErrEmptyPath = errors.New("drag path is empty")

// Model owns one diagram and everything needed to edit its connections.
type Model struct {
	Canvas    *canvas.Canvas
	Solver    *solver.Solver
	Registry  *connections.Registry
	Connector *connector.Connector

	cfg config.Config
	log logrus.FieldLogger
}

// New creates an empty model. A nil log discards everything.
func New(cfg config.Config, log logrus.FieldLogger) *Model {
	if log == nil {
		l := logrus.New()
		l.Out = io.Discard
		log = l
	}
	s := solver.New()
	c := canvas.New(s)
	reg := connections.New()
	return &Model{
		Canvas:    c,
		Solver:    s,
		Registry:  reg,
		Connector: connector.New(c, reg, s, log),
		cfg:       cfg,
		log:       log,
	}
}

// Config returns the settings the model was created with.
func (m *Model) Config() config.Config {
	return m.cfg
}

// Env returns the collaborators a handle drag needs.
func (m *Model) Env() handlemove.Env {
	return handlemove.Env{
		View:      m.Canvas,
		Updater:   m.Canvas,
		Connector: m.Connector,
		Registry:  m.Registry,
		Solver:    m.Solver,
		Radius:    m.cfg.GlueDistance,
		Log:       m.log,
	}
}

// HandleTool returns a gesture tool operating on the model.
func (m *Model) HandleTool() *tool.HandleTool {
	return tool.NewHandleTool(m.Env(), m.cfg.HandleTolerance)
}

// Segment returns a segment editor for line.
func (m *Model) Segment(line *diagram.Line) *segment.Segment {
	return segment.New(line, m.Canvas, m.Canvas, m.Registry, m.Solver)
}

// AddElement places a width x height element with its top-left corner at
// (x, y). An empty id keeps the generated one.
func (m *Model) AddElement(id string, x, y, width, height float64) (*diagram.Element, error) {
	e := diagram.NewElement(width, height)
	e.MinWidth = m.cfg.MinElementSize
	e.MinHeight = m.cfg.MinElementSize
	e.SetID(id)
	if err := m.Canvas.Add(e, geometry.Translation(x, y)); err != nil {
		return nil, err
	}
	return e, nil
}

// AddLine places a line through points, which are relative to (x, y).
func (m *Model) AddLine(id string, x, y float64, points ...geometry.Point) (*diagram.Line, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("line %q needs at least two points, got %d", id, len(points))
	}
	l := diagram.NewLine(points...)
	l.SetID(id)
	if err := m.Canvas.Add(l, geometry.Translation(x, y)); err != nil {
		return nil, err
	}
	return l, nil
}

// Drag moves handle h of item along path (view coordinates) the way a
// pointer drag would, running canvas updates after every step, and commits
// at the last point.
func (m *Model) Drag(item diagram.Item, h *diagram.Handle, path []geometry.Point) error {
	if len(path) == 0 {
		return ErrEmptyPath
	}
	move := handlemove.New(item, h, m.Env())
	move.StartMove(path[0])
	for _, p := range path {
		move.Move(p)
		if err := m.Update(); err != nil {
			return err
		}
	}
	move.StopMove(path[len(path)-1])
	return m.Update()
}

// Update runs the pending canvas updates and the solver.
func (m *Model) Update() error {
	if err := m.Canvas.Update(); err != nil {
		return fmt.Errorf("updating canvas: %w", err)
	}
	return nil
}

// Connections returns all connections ordered by handle name.
func (m *Model) Connections() []connections.Connection {
	conns := slices.Collect(m.Registry.Connections())
	slices.SortFunc(conns, func(a, b connections.Connection) int {
		return cmp.Compare(connector.HandleName(a.Handle), connector.HandleName(b.Handle))
	})
	return conns
}

// Report writes one line per connection: "owner#index -> item (port N)".
func (m *Model) Report(w io.Writer) error {
	for _, c := range m.Connections() {
		if _, err := fmt.Fprintf(w, "%s -> %s (port %d)\n",
			connector.HandleName(c.Handle), c.Item.ID(), connector.PortIndex(c.Item, c.Port)); err != nil {
			return err
		}
	}
	return nil
}
