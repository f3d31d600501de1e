package component

import (
	"hash"
	"hash/fnv"
)

// Checksum folds c's class name, each bound variable's literal form, and
// each child's checksum (in child order) into a single stable value. Two
// components are checksum-equal iff their trees are structurally and
// value-identical, independent of identity — the invariant Clone relies on.
func (c *Component) Checksum() uint64 {
	h := fnv.New64a()
	c.AddChecksum(h)
	return h.Sum64()
}

// AddChecksum writes c's contribution (and its children's, recursively)
// into h, in the same order Checksum uses.
func (c *Component) AddChecksum(h hash.Hash64) {
	writeString(h, c.className)
	writeString(h, c.Name())
	for _, v := range c.vars {
		writeString(h, v.name)
		writeString(h, v.Literal())
	}
	for _, ch := range c.children {
		ch.AddChecksum(h)
	}
}

func writeString(h hash.Hash64, s string) {
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(s))
}
