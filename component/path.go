package component

import "strings"

// GeneratePath returns the dotted path from the tree root down to c, e.g.
// "mainbus0.pcibus0". A nameless node is rendered as "(" + className + ")"
// rather than its empty name, so the path stays non-empty and identifies
// the node's class even when nothing named it.
func (c *Component) GeneratePath() string {
	var parts []string
	for n := c; n != nil; n = n.parent {
		name := n.Name()
		if name == "" {
			name = "(" + n.className + ")"
		}
		parts = append([]string{name}, parts...)
	}
	return strings.Join(parts, ".")
}

// LookupPath resolves a dotted path against c treated as the tree root, and
// returns the component at that path if it exists.
func (c *Component) LookupPath(path string) (*Component, bool) {
	segs := strings.Split(path, ".")
	if len(segs) == 0 {
		return nil, false
	}
	rootName := c.Name()
	if rootName == "" {
		rootName = "(" + c.className + ")"
	}
	if segs[0] != rootName {
		return nil, false
	}
	cur := c
	for _, seg := range segs[1:] {
		next := cur.childNamed(seg)
		if next == nil {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

func (c *Component) childNamed(name string) *Component {
	for _, ch := range c.children {
		if ch.Name() == name {
			return ch
		}
	}
	return nil
}

// FindPathByPartialMatch walks the tree rooted at c and returns the full
// paths of every component whose class name or explicit name contains
// substr, in pre-order. Matches scenario:
// FindPathByPartialMatch("pci") over a two-machine tree returns
// ["(mainbus).machine1.pcibus0", "(mainbus).machine1.pcibus1", "(mainbus).machine2.pcibus0"].
func (c *Component) FindPathByPartialMatch(substr string) []string {
	var out []string
	var walk func(n *Component)
	walk = func(n *Component) {
		if strings.Contains(n.className, substr) || strings.Contains(n.name, substr) {
			out = append(out, n.GeneratePath())
		}
		for _, ch := range n.children {
			walk(ch)
		}
	}
	walk(c)
	return out
}
