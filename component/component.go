package component

import (
	"fmt"
	"strings"
)

// ClassImpl is the extension point a concrete component class implements.
// Composition stands in for the original's virtual-method inheritance: a
// Component embeds the tree plumbing, and delegates class-specific
// behavior to an impl value.
type ClassImpl interface {
	// ClassName returns the registered factory name for this class.
	ClassName() string
	// Variables returns the bindings this class exposes, in declaration
	// order. Called once, when the Component wrapping this impl is built.
	Variables() []Variable
}

// AttributeSource is implemented by classes that answer GetAttribute
// queries beyond the defaults a Component already provides.
type AttributeSource interface {
	GetAttribute(name string) string
}

// Component is one node of the tree: a class name, a weak parent back-
// reference, ordered owned children, and an ordered set of named state
// variables bound to the impl's live storage.
type Component struct {
	className    string
	name         string // explicit name, empty if auto-generated
	parent       *Component
	children     []*Component
	bornChildren []*Component
	vars         []Variable
	varIndex     map[string]int
	impl         ClassImpl
}

// New wraps impl in a fresh, parentless Component.
func New(impl ClassImpl) *Component {
	c := &Component{
		className: impl.ClassName(),
		impl:      impl,
		varIndex:  make(map[string]int),
	}
	for _, v := range impl.Variables() {
		c.addVariable(v)
	}
	return c
}

func (c *Component) addVariable(v Variable) {
	c.varIndex[v.name] = len(c.vars)
	c.vars = append(c.vars, v)
}

func (c *Component) ClassName() string { return c.className }

func (c *Component) Impl() ClassImpl { return c.impl }

func (c *Component) Parent() *Component { return c.parent }

func (c *Component) Children() []*Component {
	out := make([]*Component, len(c.children))
	copy(out, c.children)
	return out
}

// Name returns the component's name: the explicitly set name, or an
// auto-generated "<className><index>" among same-class siblings if none
// was set, matching the unnamed-child auto-naming scheme (indices are
// assigned by birth order among same-class siblings and are never
// reassigned when an earlier sibling is removed).
func (c *Component) Name() string {
	if c.name != "" {
		return c.name
	}
	if c.parent == nil {
		return ""
	}
	return fmt.Sprintf("%s%d", c.className, c.parent.classIndexOf(c))
}

// SetName gives the component an explicit name overriding auto-naming.
func (c *Component) SetName(name string) { c.name = name }

// classIndexOf returns the birth-order index of child among same-class
// siblings ever added to p (not renumbered when earlier siblings leave).
func (p *Component) classIndexOf(child *Component) int {
	idx := 0
	for _, sib := range p.bornChildren {
		if sib == child {
			return idx
		}
		if sib.className == child.className {
			idx++
		}
	}
	return idx
}

// AddChild appends child to c's owned children and sets its parent back-
// reference. Panics if child already has a parent, matching the original's
// programmer-error assertion on double-adoption.
func (c *Component) AddChild(child *Component) {
	if child.parent != nil {
		panic(fmt.Sprintf("component: %q already has a parent", child.className))
	}
	child.parent = c
	c.children = append(c.children, child)
	c.bornChildren = append(c.bornChildren, child)
}

// RemoveChild detaches child from c. The slot is removed from Children()
// but the auto-naming birth-order ledger (bornChildren) is left intact, so
// surviving same-class siblings keep their original numeric suffixes.
func (c *Component) RemoveChild(child *Component) bool {
	for i, sib := range c.children {
		if sib == child {
			c.children = append(c.children[:i], c.children[i+1:]...)
			child.parent = nil
			return true
		}
	}
	return false
}

// GetVariable looks up a variable bound directly on this component by name.
func (c *Component) GetVariable(name string) (*Variable, bool) {
	i, ok := c.varIndex[name]
	if !ok {
		return nil, false
	}
	return &c.vars[i], true
}

// Variables returns all variables bound on this component, in declaration
// order.
func (c *Component) Variables() []*Variable {
	out := make([]*Variable, len(c.vars))
	for i := range c.vars {
		out[i] = &c.vars[i]
	}
	return out
}

// SetVariableValue parses literalValue (the quoted round-trip form) and
// stores it into the named variable.
func (c *Component) SetVariableValue(name, literalValue string) error {
	v, ok := c.GetVariable(name)
	if !ok {
		return fmt.Errorf("component %q: no such variable %q", c.className, name)
	}
	return v.SetLiteral(literalValue)
}

// GetAttribute answers class-level metadata queries. Classes that need
// more than the default ("" for everything) implement AttributeSource.
func (c *Component) GetAttribute(name string) string {
	if src, ok := c.impl.(AttributeSource); ok {
		if v := src.GetAttribute(name); v != "" {
			return v
		}
	}
	return ""
}

// HasAttribute reports whether GetAttribute(name) would return a non-empty
// value.
func (c *Component) HasAttribute(name string) bool {
	return c.GetAttribute(name) != ""
}

func (c *Component) String() string {
	var b strings.Builder
	b.WriteString(c.className)
	if n := c.Name(); n != "" {
		b.WriteString("(")
		b.WriteString(n)
		b.WriteString(")")
	}
	return b.String()
}
