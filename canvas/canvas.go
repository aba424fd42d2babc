// Package canvas holds the items of a diagram in paint order together with
// their item-to-view transforms, and queues geometry updates.
//
// Canvas implements diagram.View and diagram.Updater. It is not safe for
// concurrent use; a single goroutine owns it.
package canvas

import (
	"errors"
	"fmt"
	"slices"

	"linkage/diagram"
	"linkage/geometry"
)

// ErrUnknownItem is returned for items that were never added to the canvas.
var ErrUnknownItem = errors.New("item is not on the canvas")

// Resolver is the part of the constraint solver an update needs.
type Resolver interface {
	RequestResolveFor(x any)
	Solve() error
}

type placement struct {
	i2v geometry.Matrix
	v2i geometry.Matrix
}

type request struct {
	item   diagram.Item
	matrix bool
}

// Canvas is an ordered collection of items on a view.
type Canvas struct {
	items    []diagram.Item
	place    map[diagram.Item]placement
	pending  []request
	resolver Resolver
}

// New creates an empty canvas. resolver may be nil when no constraints are
// involved.
func New(resolver Resolver) *Canvas {
	return &Canvas{
		place:    make(map[diagram.Item]placement),
		resolver: resolver,
	}
}

// Add places item on top of all other items with the given item-to-view
// transform.
func (c *Canvas) Add(item diagram.Item, i2v geometry.Matrix) error {
	if _, ok := c.place[item]; ok {
		return fmt.Errorf("item %s already on canvas", item.ID())
	}
	if err := c.setMatrix(item, i2v); err != nil {
		return err
	}
	c.items = append(c.items, item)
	return nil
}

// Remove takes item off the canvas.
func (c *Canvas) Remove(item diagram.Item) {
	delete(c.place, item)
	c.items = slices.DeleteFunc(c.items, func(x diagram.Item) bool { return x == item })
	c.pending = slices.DeleteFunc(c.pending, func(r request) bool { return r.item == item })
}

// Items returns all items in paint order, bottom-most first.
func (c *Canvas) Items() []diagram.Item {
	return slices.Clone(c.items)
}

// Lookup finds an item by ID.
func (c *Canvas) Lookup(id string) (diagram.Item, bool) {
	for _, item := range c.items {
		if item.ID() == id {
			return item, true
		}
	}
	return nil, false
}

// Matrix returns the item-to-view transform of item.
func (c *Canvas) Matrix(item diagram.Item) (geometry.Matrix, error) {
	p, ok := c.place[item]
	if !ok {
		return geometry.Matrix{}, fmt.Errorf("%w: %s", ErrUnknownItem, item.ID())
	}
	return p.i2v, nil
}

// SetMatrix replaces the item-to-view transform of item.
func (c *Canvas) SetMatrix(item diagram.Item, i2v geometry.Matrix) error {
	if _, ok := c.place[item]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownItem, item.ID())
	}
	return c.setMatrix(item, i2v)
}

func (c *Canvas) setMatrix(item diagram.Item, i2v geometry.Matrix) error {
	v2i, err := i2v.Inverse()
	if err != nil {
		return fmt.Errorf("placing %s: %w", item.ID(), err)
	}
	c.place[item] = placement{i2v: i2v, v2i: v2i}
	return nil
}

// ItemToView implements diagram.View. Unknown items get the identity.
func (c *Canvas) ItemToView(item diagram.Item) geometry.Transform {
	if p, ok := c.place[item]; ok {
		return p.i2v
	}
	return geometry.Identity()
}

// ViewToItem implements diagram.View. Unknown items get the identity.
func (c *Canvas) ViewToItem(item diagram.Item) geometry.Transform {
	if p, ok := c.place[item]; ok {
		return p.v2i
	}
	return geometry.Identity()
}

// ViewBounds returns the bounding box of item in view coordinates.
func (c *Canvas) ViewBounds(item diagram.Item) geometry.Rect {
	i2v := c.ItemToView(item)
	corners := item.Bounds().Corners()
	points := make([]geometry.Point, 0, len(corners))
	for _, p := range corners {
		points = append(points, geometry.Apply(i2v, p))
	}
	return geometry.RectFromPoints(points...)
}

// ItemsInRect implements diagram.View.
func (c *Canvas) ItemsInRect(r geometry.Rect) []diagram.Item {
	var out []diagram.Item
	for _, item := range c.items {
		if c.ViewBounds(item).Intersects(r) {
			out = append(out, item)
		}
	}
	return out
}

// RequestUpdate implements diagram.Updater. Requests for the same item are
// merged; a matrix request is never downgraded.
func (c *Canvas) RequestUpdate(item diagram.Item, matrix bool) {
	for i := range c.pending {
		if c.pending[i].item == item {
			c.pending[i].matrix = c.pending[i].matrix || matrix
			return
		}
	}
	c.pending = append(c.pending, request{item: item, matrix: matrix})
}

// Pending reports whether item has an update queued and whether the queued
// update includes a matrix recomputation.
func (c *Canvas) Pending(item diagram.Item) (queued, matrix bool) {
	for _, r := range c.pending {
		if r.item == item {
			return true, r.matrix
		}
	}
	return false, false
}

// Update runs the queued updates. Items queued with a matrix request are
// normalized (their transform absorbs the shift of the local origin). For
// every queued item the constraints depending on it are marked, then the
// solver runs.
func (c *Canvas) Update() error {
	pending := c.pending
	c.pending = nil

	for _, r := range pending {
		p, ok := c.place[r.item]
		if !ok {
			continue
		}
		if n, ok := r.item.(diagram.Normalizer); ok && r.matrix {
			if dx, dy := n.Normalize(); dx != 0 || dy != 0 {
				if err := c.setMatrix(r.item, p.i2v.Multiply(geometry.Translation(dx, dy))); err != nil {
					return err
				}
			}
		}
		if c.resolver != nil {
			c.resolver.RequestResolveFor(r.item)
		}
	}

	if c.resolver == nil {
		return nil
	}
	return c.resolver.Solve()
}
