package connector

import (
	"fmt"

	"linkage/diagram"
	"linkage/geometry"
)

// PortConstraint keeps a handle on a port of another item.
type PortConstraint struct {
	view   diagram.View
	handle *diagram.Handle
	item   diagram.Item
	port   diagram.Port
}

// NewPortConstraint binds h to port of item.
func NewPortConstraint(view diagram.View, h *diagram.Handle, item diagram.Item, port diagram.Port) *PortConstraint {
	return &PortConstraint{view: view, handle: h, item: item, port: port}
}

// Handle returns the constrained handle.
func (pc *PortConstraint) Handle() *diagram.Handle { return pc.handle }

// Item returns the item owning the port.
func (pc *PortConstraint) Item() diagram.Item { return pc.item }

// Port returns the port the handle is kept on.
func (pc *PortConstraint) Port() diagram.Port { return pc.port }

// Solve moves the handle to the point of the port closest to it.
func (pc *PortConstraint) Solve() {
	owner := pc.handle.Owner()
	pos := geometry.Apply(pc.view.ItemToView(owner), pc.handle.Pos)
	closest, _ := pc.port.Glue(geometry.Apply(pc.view.ViewToItem(pc.item), pos))
	pos = geometry.Apply(pc.view.ItemToView(pc.item), closest)
	pc.handle.Pos = geometry.Apply(pc.view.ViewToItem(owner), pos)
}

// DependsOn implements solver.Dependent: the constraint is stale once either
// the item with the port or the owner of the handle changes.
func (pc *PortConstraint) DependsOn(x any) bool {
	return x == any(pc.item) || x == any(pc.handle.Owner()) || x == any(pc.handle)
}

func (pc *PortConstraint) String() string {
	return fmt.Sprintf("port constraint %s -> %s", HandleName(pc.handle), pc.item.ID())
}
