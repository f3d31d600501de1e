package component

import "fmt"

// Clone deep-copies c: it recreates each node via the factory (so the clone
// gets its own freshly bound storage), copies every variable's value across
// via its literal round-trip form, and recurses into children. This keeps
// Clone free of reflection or unsafe pointer copying — it reuses the same
// textual machinery serialization and SetVariableValue already need.
//
// Clone requires every class reachable in c's subtree to be constructible
// from its own class name with no arguments (CreateComponent(className)),
// i.e. to be fully described by its bound variables. Clone returns an error
// naming the class when that construction fails or the fresh instance binds
// a different number of variables; state a class holds outside its bound
// variables is not carried over to the clone.
func (c *Component) Clone() (*Component, error) {
	clone, err := CreateComponent(c.className)
	if err != nil {
		return nil, fmt.Errorf("component: cloning %q: %w", c.className, err)
	}
	clone.name = c.name
	if len(clone.vars) != len(c.vars) {
		return nil, fmt.Errorf("component: cloning %q: variable count mismatch (%d vs %d)",
			c.className, len(clone.vars), len(c.vars))
	}
	for i := range c.vars {
		if err := clone.vars[i].SetLiteral(c.vars[i].Literal()); err != nil {
			return nil, fmt.Errorf("component: cloning %q variable %q: %w",
				c.className, c.vars[i].name, err)
		}
	}
	for _, ch := range c.children {
		chClone, err := ch.Clone()
		if err != nil {
			return nil, err
		}
		clone.AddChild(chClone)
	}
	if r, ok := clone.impl.(Restorable); ok {
		r.AfterRestore()
	}
	return clone, nil
}

// Restorable is implemented by classes whose derived internal state (not
// itself a bound Variable) needs recomputing after a clone's variables have
// been set, e.g. resizing a backing buffer to match a restored size field.
type Restorable interface {
	AfterRestore()
}
