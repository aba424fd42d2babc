// Package solver keeps a set of constraints and makes them valid again when
// something they depend on changes.
//
// Constraints are marked dirty (RequestResolve) and solved in marking order by
// Solve. Constraints solved during Solve may mark others; those are solved in
// the same pass.
package solver

import (
	"errors"
	"fmt"
)

// maxResolves is how often a single constraint may be re-marked within one
// Solve before the solver gives up.
const maxResolves = 100

// ErrJuggle is returned when constraints keep marking each other dirty.
var ErrJuggle = errors.New("variable juggling detected")

// Constraint is a geometric relationship the solver keeps valid.
// Implementations must be comparable (pointer types are).
type Constraint interface {
	// Solve changes whatever is needed to make the constraint valid.
	Solve()
}

// Dependent is implemented by constraints that can tell which objects they
// follow. It lets the solver mark only the constraints touched by a change.
type Dependent interface {
	DependsOn(x any) bool
}

// Solver holds constraints and solves the dirty ones.
type Solver struct {
	constraints map[Constraint]struct{}
	marked      []Constraint
	solving     bool
	juggled     Constraint
}

// New creates an empty solver.
func New() *Solver {
	return &Solver{constraints: make(map[Constraint]struct{})}
}

// AddConstraint adds a constraint and marks it dirty. The constraint is
// returned so it can be removed later on.
func (s *Solver) AddConstraint(c Constraint) Constraint {
	if c == nil {
		panic("solver: nil constraint")
	}
	s.constraints[c] = struct{}{}
	s.marked = append(s.marked, c)
	return c
}

// RemoveConstraint removes a constraint. Removing it twice has no effect.
// During Solve the marked list is left in place; removed constraints are
// skipped when their turn comes.
func (s *Solver) RemoveConstraint(c Constraint) {
	if c == nil {
		return
	}
	delete(s.constraints, c)
	if !s.solving {
		s.marked = removeAll(s.marked, c)
	}
}

// Has reports whether c is registered.
func (s *Solver) Has(c Constraint) bool {
	_, ok := s.constraints[c]
	return ok
}

// Len returns the number of registered constraints.
func (s *Solver) Len() int {
	return len(s.constraints)
}

// Constraints returns the registered constraints in no particular order.
func (s *Solver) Constraints() []Constraint {
	out := make([]Constraint, 0, len(s.constraints))
	for c := range s.constraints {
		out = append(out, c)
	}
	return out
}

// RequestResolve marks a constraint dirty.
func (s *Solver) RequestResolve(c Constraint) {
	if !s.Has(c) {
		return
	}
	if !s.solving {
		s.marked = removeAll(s.marked, c)
		s.marked = append(s.marked, c)
		return
	}

	s.marked = append(s.marked, c)
	if s.juggled == nil && count(s.marked, c) > maxResolves {
		s.juggled = c
	}
}

// RequestResolveFor marks every Dependent constraint that depends on x.
func (s *Solver) RequestResolveFor(x any) {
	for c := range s.constraints {
		if d, ok := c.(Dependent); ok && d.DependsOn(x) {
			s.RequestResolve(c)
		}
	}
}

// Solve solves all marked constraints, including the ones marked while
// solving.
func (s *Solver) Solve() error {
	s.solving = true
	defer func() {
		s.solving = false
		s.juggled = nil
	}()

	for n := 0; n < len(s.marked); n++ {
		if s.juggled != nil {
			c := s.juggled
			resolved := count(s.marked, c)
			total := len(s.marked)
			s.marked = nil
			return fmt.Errorf("%w: constraint %v resolved %d times out of %d", ErrJuggle, c, resolved, total)
		}
		if c := s.marked[n]; s.Has(c) {
			c.Solve()
		}
	}

	s.marked = nil
	return nil
}

func removeAll(cs []Constraint, c Constraint) []Constraint {
	out := cs[:0]
	for _, x := range cs {
		if x != c {
			out = append(out, x)
		}
	}
	return out
}

func count(cs []Constraint, c Constraint) int {
	n := 0
	for _, x := range cs {
		if x == c {
			n++
		}
	}
	return n
}
