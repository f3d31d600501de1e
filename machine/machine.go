package machine

import (
	"fmt"

	"github.com/rcornwell/dyntrans-sparc/bus"
	"github.com/rcornwell/dyntrans-sparc/component"
	"github.com/rcornwell/dyntrans-sparc/sparc"
)

// Machine is an assembled system: the component tree root plus direct
// handles to the pieces the run loop and console need without re-walking
// paths on every access.
type Machine struct {
	Root *component.Component
	CPU  *sparc.CPU
}

// NewDefault assembles the canonical mainbus→{ram,cpu} tree in code,
// without a config file: a mainbus root (purely structural, see
// bus.Mainbus's doc comment), one RAM device sized ramBytes, and one SPARC
// CPU attached directly to that RAM — mainbus.AddressSelect/Read/Write
// are all no-ops, so routing loads/stores through it would silently
// discard them; the CPU's bus is wired straight to the populated device,
// same as it would be had the config file named "mainbus" as RAM's parent
// for tree shape only.
func NewDefault(ramBytes uint32) (*Machine, error) {
	mb, err := component.CreateComponent("mainbus")
	if err != nil {
		return nil, fmt.Errorf("machine: creating mainbus: %w", err)
	}

	ramComp, err := component.CreateComponent(fmt.Sprintf("ram(size=%d)", ramBytes))
	if err != nil {
		return nil, fmt.Errorf("machine: creating ram: %w", err)
	}
	mb.AddChild(ramComp)

	cpuComp, err := component.CreateComponent("sparc-cpu")
	if err != nil {
		return nil, fmt.Errorf("machine: creating sparc-cpu: %w", err)
	}
	mb.AddChild(cpuComp)

	ramBus, ok := ramComp.Impl().(bus.AddressDataBus)
	if !ok {
		return nil, fmt.Errorf("machine: ram component does not implement AddressDataBus")
	}
	cpu, ok := cpuComp.Impl().(*sparc.CPU)
	if !ok {
		return nil, fmt.Errorf("machine: sparc-cpu component is not a *sparc.CPU")
	}
	cpu.AttachBus(ramBus)

	return &Machine{Root: mb, CPU: cpu}, nil
}

// FromConfig assembles a Machine from an already-loaded config tree,
// locating the first sparc-cpu component in the tree (pre-order) and
// attaching it to the first component of class "ram" found anywhere in the
// tree. The mainbus is never used as the CPU's bus; with no "ram"
// component the CPU is left without a bus.
func FromConfig(root *component.Component) (*Machine, error) {
	var cpu *sparc.CPU
	var ramBus bus.AddressDataBus
	var walk func(c *component.Component)
	walk = func(c *component.Component) {
		if cpu == nil {
			if impl, ok := c.Impl().(*sparc.CPU); ok {
				cpu = impl
			}
		}
		if ramBus == nil && c.ClassName() == "ram" {
			if impl, ok := c.Impl().(bus.AddressDataBus); ok {
				ramBus = impl
			}
		}
		for _, ch := range c.Children() {
			walk(ch)
		}
	}
	walk(root)

	if cpu == nil {
		return nil, fmt.Errorf("machine: config tree contains no sparc-cpu component")
	}
	if ramBus != nil {
		cpu.AttachBus(ramBus)
	}
	return &Machine{Root: root, CPU: cpu}, nil
}
