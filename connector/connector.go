// Package connector glues handles to ports and turns glues into connections.
//
// A handle goes Free -> Glued -> Connected -> Free. Glue only previews a
// target and never touches the registry or the solver. Connect is the single
// committing operation. Disconnect removes the solver constraint before it
// forgets the registry record, so the two never disagree.
package connector

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"linkage/connections"
	"linkage/diagram"
	"linkage/geometry"
	"linkage/locator"
	"linkage/solver"
)

// Solver is the part of the constraint solver the connector needs.
type Solver interface {
	AddConstraint(c solver.Constraint) solver.Constraint
	RemoveConstraint(c solver.Constraint)
}

// Connector connects handles to ports on a view.
type Connector struct {
	view     diagram.View
	locator  *locator.Locator
	registry *connections.Registry
	solver   Solver
	log      logrus.FieldLogger
}

// New creates a connector. All collaborators are required except log.
func New(view diagram.View, registry *connections.Registry, s Solver, log logrus.FieldLogger) *Connector {
	if log == nil {
		l := logrus.New()
		l.Out = io.Discard
		log = l
	}
	return &Connector{
		view:     view,
		locator:  locator.New(view, log),
		registry: registry,
		solver:   s,
		log:      log,
	}
}

// Locator returns the locator the connector searches with.
func (c *Connector) Locator() *locator.Locator {
	return c.locator
}

// Glue looks for a port within radius of point (view coordinates) that
// accepts h. When one is found h is moved onto it and marked glued.
// Otherwise h.Glued is cleared and false is returned.
func (c *Connector) Glue(h *diagram.Handle, point geometry.Point, radius float64) (locator.Sink, bool) {
	h.Glued = false
	if !h.Connectable {
		return locator.Sink{}, false
	}

	owner := h.Owner()
	sink, ok := c.locator.NearestPort(point, radius, owner)
	if !ok {
		return locator.Sink{}, false
	}
	if !diagram.Allows(sink.Item, h, sink.Port) {
		c.log.WithFields(logrus.Fields{
			"handle": HandleName(h),
			"item":   sink.Item.ID(),
		}).Debug("connection refused")
		return locator.Sink{}, false
	}

	h.Pos = geometry.Apply(c.view.ViewToItem(owner), sink.Pos)
	h.Glued = true
	return sink, true
}

// Connect glues h near point and commits the result. Any earlier connection
// of h is dropped first. When nothing can be glued the handle ends up
// disconnected and false is returned.
func (c *Connector) Connect(h *diagram.Handle, point geometry.Point, radius float64) bool {
	sink, ok := c.Glue(h, point, radius)
	if !ok {
		c.Disconnect(h)
		return false
	}
	c.ConnectSink(h, sink)
	return true
}

// ConnectSink connects h to a sink found earlier, without searching.
func (c *Connector) ConnectSink(h *diagram.Handle, sink locator.Sink) {
	c.Disconnect(h)

	constraint := c.solver.AddConstraint(NewPortConstraint(c.view, h, sink.Item, sink.Port))
	c.registry.SetConnection(h, sink.Item, sink.Port, constraint)

	c.log.WithFields(logrus.Fields{
		"handle": HandleName(h),
		"item":   sink.Item.ID(),
		"port":   PortIndex(sink.Item, sink.Port),
	}).Debug("connected")
}

// Disconnect removes the connection of h, if any. Calling it for a handle
// that is not connected does nothing.
func (c *Connector) Disconnect(h *diagram.Handle) {
	conn, ok := c.registry.GetConnection(h)
	if !ok {
		return
	}
	if conn.Constraint != nil {
		c.solver.RemoveConstraint(conn.Constraint)
	}
	c.registry.RemoveConnection(h)

	entry := c.log.WithField("handle", HandleName(h))
	if conn.Item != nil {
		entry = entry.WithField("item", conn.Item.ID())
	}
	entry.Debug("disconnected")
}

// HandleName formats h as owner#index for logs and reports.
func HandleName(h *diagram.Handle) string {
	if h.Owner() == nil {
		return fmt.Sprintf("?#%d", h.Index())
	}
	return fmt.Sprintf("%s#%d", h.Owner().ID(), h.Index())
}

// PortIndex returns the position of port in item's port list, or -1.
func PortIndex(item diagram.Item, port diagram.Port) int {
	for i, p := range item.Ports() {
		if p == port {
			return i
		}
	}
	return -1
}
