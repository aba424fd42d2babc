package handlemove

import (
	"sync"

	"linkage/diagram"
)

// Factory creates the HandleMove variant for one item kind.
type Factory func(item diagram.Item, h *diagram.Handle, env Env) HandleMove

var (
	mu        sync.RWMutex
	factories = map[diagram.Kind]Factory{}
)

func init() {
	Register(diagram.KindElement, func(item diagram.Item, h *diagram.Handle, env Env) HandleMove {
		if e, ok := item.(*diagram.Element); ok {
			return NewElementHandleMove(e, h, env)
		}
		return NewItemHandleMove(item, h, env)
	})
}

// Register installs the factory for kind, replacing any earlier one.
func Register(kind diagram.Kind, f Factory) {
	mu.Lock()
	defer mu.Unlock()
	factories[kind] = f
}

// New returns the HandleMove for dragging h of item. Kinds without a
// registered factory get an ItemHandleMove.
func New(item diagram.Item, h *diagram.Handle, env Env) HandleMove {
	mu.RLock()
	f, ok := factories[item.Kind()]
	mu.RUnlock()
	if ok {
		return f(item, h, env)
	}
	return NewItemHandleMove(item, h, env)
}
