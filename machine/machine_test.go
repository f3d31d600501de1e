package machine

import (
	"strings"
	"testing"

	"github.com/rcornwell/dyntrans-sparc/bus"
)

func TestNewDefaultWiresCPUToRAM(t *testing.T) {
	m, err := NewDefault(4096)
	if err != nil {
		t.Fatalf("NewDefault: %v", err)
	}
	if m.CPU == nil {
		t.Fatal("Machine.CPU is nil")
	}
	if len(m.Root.Children()) != 2 {
		t.Fatalf("root has %d children, want 2 (ram, sparc-cpu)", len(m.Root.Children()))
	}

	ram, ok := m.Root.Children()[0].Impl().(bus.AddressDataBus)
	if !ok {
		t.Fatal("first child of root does not implement bus.AddressDataBus")
	}
	ram.AddressSelect(0)
	ram.WriteData32(0x01000000, bus.BigEndian) // nop

	m.CPU.PC = 0
	m.CPU.RunInstructions(1)
	if m.CPU.NTranslatedInstrs != 1 {
		t.Fatalf("NTranslatedInstrs = %d, want 1", m.CPU.NTranslatedInstrs)
	}
	if m.CPU.PC != 4 {
		t.Fatalf("PC = %#x, want 0x4 (the nop must be fetched through the wired bus)", m.CPU.PC)
	}
}

func TestLoadConfigBuildsTreeAndWiresCPU(t *testing.T) {
	cfg := `
# root bus
- mainbus
(mainbus) ram(size=65536) as mem0
(mainbus) sparc-cpu(is32bit=false) as cpu0
`
	root, err := LoadConfig(strings.NewReader(cfg))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if got := root.GeneratePath(); got != "(mainbus)" {
		t.Fatalf("root.GeneratePath() = %q, want (mainbus)", got)
	}
	if _, ok := root.LookupPath("(mainbus).mem0"); !ok {
		t.Fatal("(mainbus).mem0 not found")
	}
	if _, ok := root.LookupPath("(mainbus).cpu0"); !ok {
		t.Fatal("(mainbus).cpu0 not found")
	}

	m, err := FromConfig(root)
	if err != nil {
		t.Fatalf("FromConfig: %v", err)
	}
	if m.CPU == nil {
		t.Fatal("FromConfig did not locate the sparc-cpu component")
	}
}

func TestLoadConfigRejectsMissingRoot(t *testing.T) {
	cfg := "mainbus.ram ram(size=1024)\n"
	if _, err := LoadConfig(strings.NewReader(cfg)); err == nil {
		t.Fatal("expected an error when no root line (\"-\") is present")
	}
}
