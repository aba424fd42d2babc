package diagram

import "github.com/google/uuid"

// base carries the identity shared by all items.
type base struct {
	id string
}

func newBase() base {
	return base{id: uuid.NewString()}
}

// ID returns the item identifier.
func (b *base) ID() string {
	return b.id
}

// SetID replaces the generated identifier, typically with a readable name.
func (b *base) SetID(id string) {
	if id != "" {
		b.id = id
	}
}
