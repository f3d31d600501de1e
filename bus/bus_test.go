package bus

import (
	"testing"

	"github.com/rcornwell/dyntrans-sparc/component"
)

func TestMainbusIsStable(t *testing.T) {
	if !component.HasAttribute("mainbus", "stable") {
		t.Fatal("mainbus should be stable")
	}
}

func TestMainbusImplementsAddressDataBus(t *testing.T) {
	c, err := component.CreateComponent("mainbus")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := c.Impl().(AddressDataBus); !ok {
		t.Fatal("mainbus component should implement AddressDataBus")
	}
}

func TestRAMReadWriteRoundTrip(t *testing.T) {
	c, err := component.CreateComponent("ram(size=4096)")
	if err != nil {
		t.Fatal(err)
	}
	r := c.Impl().(AddressDataBus)

	r.AddressSelect(0x100)
	if ok := r.WriteData32(0xdeadbeef, BigEndian); !ok {
		t.Fatal("WriteData32 failed")
	}
	r.AddressSelect(0x100)
	got, ok := r.ReadData32(BigEndian)
	if !ok || got != 0xdeadbeef {
		t.Fatalf("ReadData32 = (%#x, %v), want (0xdeadbeef, true)", got, ok)
	}

	r.AddressSelect(4096 - 2)
	if _, ok := r.ReadData32(BigEndian); ok {
		t.Fatal("ReadData32 past end of RAM should fail")
	}
}

func TestRAMCloneIsIndependent(t *testing.T) {
	c, err := component.CreateComponent("ram(size=16)")
	if err != nil {
		t.Fatal(err)
	}
	r := c.Impl().(AddressDataBus)
	r.AddressSelect(0)
	r.WriteData8(0x42)

	clone, err := c.Clone()
	if err != nil {
		t.Fatal(err)
	}
	if clone.Checksum() != c.Checksum() {
		t.Fatalf("clone checksum %d != source %d", clone.Checksum(), c.Checksum())
	}
	cr := clone.Impl().(*RAM)
	if len(cr.mem) != 16 {
		t.Fatalf("cloned RAM mem len = %d, want 16", len(cr.mem))
	}
}
