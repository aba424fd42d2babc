// Package handlemove drives a single handle through a drag:
// StartMove, any number of Move calls, then StopMove.
//
// Behaviour differs per item kind. The variant for an item is picked by New
// from the factories registered for its diagram.Kind.
package handlemove

import (
	"io"

	"github.com/sirupsen/logrus"

	"linkage/connections"
	"linkage/connector"
	"linkage/diagram"
	"linkage/geometry"
	"linkage/locator"
)

// DefaultGlueDistance is the glue radius used when Env.Radius is zero.
const DefaultGlueDistance = 10

// HandleMove moves one handle. Points are in view coordinates.
type HandleMove interface {
	StartMove(p geometry.Point)
	Move(p geometry.Point)
	StopMove(p geometry.Point)
	Glue(p geometry.Point) (locator.Sink, bool)
}

// Env holds the collaborators a drag needs.
type Env struct {
	View      diagram.View
	Updater   diagram.Updater
	Connector *connector.Connector
	Registry  *connections.Registry
	Solver    connector.Solver
	Radius    float64
	Log       logrus.FieldLogger
}

func (env Env) radius() float64 {
	if env.Radius > 0 {
		return env.Radius
	}
	return DefaultGlueDistance
}

func (env Env) log() logrus.FieldLogger {
	if env.Log != nil {
		return env.Log
	}
	l := logrus.New()
	l.Out = io.Discard
	return l
}

// ItemHandleMove is the variant used for any item kind without a more
// specific one.
type ItemHandleMove struct {
	item   diagram.Item
	handle *diagram.Handle
	env    Env
	log    logrus.FieldLogger

	last geometry.Point
}

// NewItemHandleMove creates the generic variant.
func NewItemHandleMove(item diagram.Item, h *diagram.Handle, env Env) *ItemHandleMove {
	return &ItemHandleMove{
		item:   item,
		handle: h,
		env:    env,
		log:    env.log().WithField("handle", connector.HandleName(h)),
	}
}

// StartMove frees the handle from its constraint. The connection record
// stays until the drag is committed by StopMove.
func (m *ItemHandleMove) StartMove(p geometry.Point) {
	m.last = p
	if conn, ok := m.env.Registry.GetConnection(m.handle); ok {
		m.handle.Glued = true
		if conn.Constraint != nil {
			m.env.Solver.RemoveConstraint(conn.Constraint)
		}
		m.log.Debug("released constraint for drag")
	}
}

// Move puts the handle under p and previews a glue target.
func (m *ItemHandleMove) Move(p geometry.Point) {
	m.last = p
	m.handle.Pos = geometry.Apply(m.env.View.ViewToItem(m.item), p)
	m.Glue(p)
	m.env.Updater.RequestUpdate(m.item, false)
}

// StopMove commits the drag: the handle is connected to whatever it glues to
// at p, or disconnected when there is nothing.
func (m *ItemHandleMove) StopMove(p geometry.Point) {
	m.last = p
	if m.env.Connector.Connect(m.handle, p, m.env.radius()) {
		m.log.Debug("drag ended connected")
	}
	// Glued only lives for the duration of the drag.
	m.handle.Glued = false
	m.env.Updater.RequestUpdate(m.item, true)
}

// Glue implements HandleMove.
func (m *ItemHandleMove) Glue(p geometry.Point) (locator.Sink, bool) {
	return m.env.Connector.Glue(m.handle, p, m.env.radius())
}

// Last returns the last point the handle was moved to.
func (m *ItemHandleMove) Last() geometry.Point {
	return m.last
}

// ElementHandleMove resizes an element by one of its corner handles. The
// other corners follow and the element never shrinks below its minimum
// size.
type ElementHandleMove struct {
	*ItemHandleMove
	element *diagram.Element
	corner  int
}

// NewElementHandleMove creates the resizing variant. Handles that are not
// corners of e are moved like any other handle.
func NewElementHandleMove(e *diagram.Element, h *diagram.Handle, env Env) *ElementHandleMove {
	return &ElementHandleMove{
		ItemHandleMove: NewItemHandleMove(e, h, env),
		element:        e,
		corner:         h.Index(),
	}
}

// Move implements HandleMove.
func (m *ElementHandleMove) Move(p geometry.Point) {
	if m.corner < diagram.NW || m.corner > diagram.SW {
		m.ItemHandleMove.Move(p)
		return
	}
	m.last = p
	m.element.MoveCorner(m.corner, geometry.Apply(m.env.View.ViewToItem(m.element), p))
	m.Glue(p)
	m.env.Updater.RequestUpdate(m.element, false)
}
