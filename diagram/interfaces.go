package diagram

import "linkage/geometry"

// Item is a visual object on a view. All coordinates it deals with are in its
// own local space.
type Item interface {
	// ID returns a unique identifier for logging and lookups.
	ID() string

	// Kind returns the item type tag.
	Kind() Kind

	// Handles returns the item's handles in a stable order.
	Handles() []*Handle

	// Ports returns the connection targets exposed by the item.
	Ports() []Port

	// Distance returns the signed distance from p to the item's outline:
	// zero or negative inside, positive outside.
	// Returns ErrGeometryUnavailable when it cannot be computed.
	Distance(p geometry.Point) (float64, error)

	// Bounds returns the bounding box in local coordinates.
	Bounds() geometry.Rect
}

// Port is a connection target exposed by an item.
type Port interface {
	// Connectable tells whether handles may be glued to the port.
	Connectable() bool

	// Glue returns the point on the port closest to p and its distance.
	Glue(p geometry.Point) (geometry.Point, float64)
}

// Acceptor is implemented by items that want a say in which handles connect
// to their ports. Items without it accept any handle not owned by themselves.
type Acceptor interface {
	AllowConnect(h *Handle, port Port) bool
}

// View gives access to the items on a view and their coordinate spaces.
type View interface {
	// ItemsInRect returns the items whose bounds intersect r (view
	// coordinates) in paint order, bottom-most first.
	ItemsInRect(r geometry.Rect) []Item

	// ViewToItem returns the transform from view to item coordinates.
	ViewToItem(item Item) geometry.Transform

	// ItemToView returns the transform from item to view coordinates.
	ItemToView(item Item) geometry.Transform
}

// Updater receives requests to refresh an item after its geometry changed.
type Updater interface {
	// RequestUpdate schedules item for an update. When matrix is false the
	// item's transform is not recomputed.
	RequestUpdate(item Item, matrix bool)
}

// Normalizer is implemented by items that keep their local origin at a fixed
// handle. Normalize moves the handles back and returns the offset the item's
// transform has to absorb.
type Normalizer interface {
	Normalize() (dx, dy float64)
}

// Allows reports whether item accepts a connection of h to port.
func Allows(item Item, h *Handle, port Port) bool {
	if a, ok := item.(Acceptor); ok {
		return a.AllowConnect(h, port)
	}
	return h.Owner() != item
}
