// Package diagram contains the items, handles and ports the connection core
// works on.
package diagram

import (
	"errors"

	"linkage/geometry"
)

// ErrGeometryUnavailable is returned when an item cannot answer a geometric
// query, for example because its handles hold invalid coordinates.
var ErrGeometryUnavailable = errors.New("geometry unavailable")

// Kind tags an item type. Behaviour that differs per item type (such as how a
// handle drag is handled) is looked up by Kind.
type Kind string

const (
	KindElement Kind = "element"
	KindLine    Kind = "line"
)

// Handle is a draggable point owned by exactly one item. Its position is in
// the owner's local coordinate space.
type Handle struct {
	Pos geometry.Point
	// Connectable tells whether the handle may ever be glued to a port.
	Connectable bool
	// Movable tells whether the handle may be dragged.
	Movable bool
	// Glued is drag scoped: it is true only while a glue candidate is being
	// previewed, and must be reset when the drag stops or is abandoned.
	Glued bool

	owner Item
}

// NewHandle creates a movable handle owned by item.
func NewHandle(owner Item, pos geometry.Point) *Handle {
	return &Handle{Pos: pos, Movable: true, owner: owner}
}

// Owner returns the item the handle belongs to.
func (h *Handle) Owner() Item {
	return h.owner
}

// Index returns the position of the handle in its owner's handle list, or -1.
func (h *Handle) Index() int {
	if h.owner == nil {
		return -1
	}
	for i, other := range h.owner.Handles() {
		if other == h {
			return i
		}
	}
	return -1
}
