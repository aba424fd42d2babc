// Package connections records which handle is connected to which item, port
// and constraint.
package connections

import (
	"fmt"
	"iter"

	"linkage/diagram"
	"linkage/solver"
	"linkage/table"
)

// Connection is one row of the registry: Handle is glued to Port of Item and
// Constraint is what the solver uses to keep it there. The registry never
// inspects Constraint.
type Connection struct {
	Handle     *diagram.Handle
	Item       diagram.Item
	Port       diagram.Port
	Constraint solver.Constraint
}

var schema = table.Schema[Connection]{
	Columns: []string{"handle", "item", "port", "constraint"},
	Indexes: []string{"handle"},
	Make: func(values []any) (Connection, error) {
		var c Connection
		var ok bool
		if c.Handle, ok = values[0].(*diagram.Handle); !ok {
			return c, fmt.Errorf("handle: unexpected %T", values[0])
		}
		if values[1] != nil {
			if c.Item, ok = values[1].(diagram.Item); !ok {
				return c, fmt.Errorf("item: unexpected %T", values[1])
			}
		}
		if values[2] != nil {
			if c.Port, ok = values[2].(diagram.Port); !ok {
				return c, fmt.Errorf("port: unexpected %T", values[2])
			}
		}
		if values[3] != nil {
			if c.Constraint, ok = values[3].(solver.Constraint); !ok {
				return c, fmt.Errorf("constraint: unexpected %T", values[3])
			}
		}
		return c, nil
	},
	Field: func(c Connection, i int) any {
		switch i {
		case 0:
			return c.Handle
		case 1:
			return c.Item
		case 2:
			return c.Port
		default:
			return c.Constraint
		}
	},
}

// Registry holds at most one Connection per handle. It does not manage the
// lifetime of constraints; callers remove them from the solver before
// replacing or forgetting a record.
type Registry struct {
	table *table.Table[Connection]
}

// New creates an empty registry.
func New() *Registry {
	t, err := table.New(schema)
	if err != nil {
		panic(fmt.Sprintf("connections: invalid schema: %v", err))
	}
	return &Registry{table: t}
}

// GetConnection returns the record for h, if any.
func (r *Registry) GetConnection(h *diagram.Handle) (Connection, bool) {
	if h == nil {
		return Connection{}, false
	}
	for c := range r.query(table.Where{"handle": h}) {
		return c, true
	}
	return Connection{}, false
}

// SetConnection records that h is connected to port of item through
// constraint, replacing any earlier record for h.
func (r *Registry) SetConnection(h *diagram.Handle, item diagram.Item, port diagram.Port, constraint solver.Constraint) {
	r.RemoveConnection(h)
	r.table.Add(Connection{Handle: h, Item: item, Port: port, Constraint: constraint})
}

// RemoveConnection forgets the record for h. It is a no-op when h is not
// connected.
func (r *Registry) RemoveConnection(h *diagram.Handle) {
	if err := r.table.DeleteWhere(table.Where{"handle": h}); err != nil {
		panic(fmt.Sprintf("connections: %v", err))
	}
}

// Connections returns every record in no particular order.
func (r *Registry) Connections() iter.Seq[Connection] {
	return r.query(nil)
}

// ConnectedTo returns the records whose handles are connected to item.
func (r *Registry) ConnectedTo(item diagram.Item) iter.Seq[Connection] {
	return func(yield func(Connection) bool) {
		for c := range r.Connections() {
			if c.Item == item && !yield(c) {
				return
			}
		}
	}
}

// Len returns the number of records.
func (r *Registry) Len() int {
	return r.table.Len()
}

func (r *Registry) query(where table.Where) iter.Seq[Connection] {
	seq, err := r.table.Query(where)
	if err != nil {
		panic(fmt.Sprintf("connections: %v", err))
	}
	return seq
}
