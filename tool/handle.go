// Package tool turns pointer gestures into handle drags.
package tool

import (
	"linkage/diagram"
	"linkage/geometry"
	"linkage/handlemove"
)

// DefaultTolerance is how far (in view units) from a handle a press may land
// and still grab it.
const DefaultTolerance = 4

// FindHandle returns the movable handle closest to p within tolerance,
// looking at the topmost items first.
func FindHandle(view diagram.View, p geometry.Point, tolerance float64) (diagram.Item, *diagram.Handle, bool) {
	items := view.ItemsInRect(geometry.RectAround(p, tolerance))
	for i := len(items) - 1; i >= 0; i-- {
		item := items[i]
		i2v := view.ItemToView(item)

		var best *diagram.Handle
		limit := tolerance
		for _, h := range item.Handles() {
			if !h.Movable {
				continue
			}
			if d := geometry.DistancePointPoint(geometry.Apply(i2v, h.Pos), p); d <= limit {
				best, limit = h, d
			}
		}
		if best != nil {
			return item, best, true
		}
	}
	return nil, nil, false
}

// HandleTool grabs a handle on press, drags it on motion and commits the
// drag on release.
type HandleTool struct {
	env       handlemove.Env
	tolerance float64

	item   diagram.Item
	handle *diagram.Handle
	motion handlemove.HandleMove
}

// NewHandleTool creates a tool. A tolerance of zero means DefaultTolerance.
func NewHandleTool(env handlemove.Env, tolerance float64) *HandleTool {
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	return &HandleTool{env: env, tolerance: tolerance}
}

// Grabbed returns the handle being dragged, if any.
func (t *HandleTool) Grabbed() (diagram.Item, *diagram.Handle) {
	return t.item, t.handle
}

// Grab makes h the grabbed handle as if it had been pressed.
func (t *HandleTool) Grab(item diagram.Item, h *diagram.Handle) {
	t.item, t.handle, t.motion = item, h, nil
}

// Press grabs the handle under p. It reports whether a handle was grabbed.
func (t *HandleTool) Press(p geometry.Point) bool {
	item, h, ok := FindHandle(t.env.View, p, t.tolerance)
	if !ok {
		return false
	}
	t.Grab(item, h)
	return true
}

// Motion drags the grabbed handle to p. The first motion after a press
// starts the move.
func (t *HandleTool) Motion(p geometry.Point) bool {
	if t.handle == nil {
		return false
	}
	if t.motion == nil {
		t.motion = handlemove.New(t.item, t.handle, t.env)
		t.motion.StartMove(p)
	}
	t.motion.Move(p)
	return true
}

// Release ends the drag at p and lets go of the handle.
func (t *HandleTool) Release(p geometry.Point) bool {
	if t.handle == nil {
		return false
	}
	if t.motion != nil {
		t.motion.StopMove(p)
	}
	t.env.Updater.RequestUpdate(t.item, true)
	t.ungrab()
	return true
}

// Cancel abandons the drag. Nothing is committed; the handle stays where
// the last motion put it.
func (t *HandleTool) Cancel() {
	if t.handle != nil {
		t.handle.Glued = false
	}
	t.ungrab()
}

func (t *HandleTool) ungrab() {
	t.item, t.handle, t.motion = nil, nil, nil
}
