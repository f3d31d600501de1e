package console

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rcornwell/dyntrans-sparc/bus"
	"github.com/rcornwell/dyntrans-sparc/machine"
)

func newTestConsole(t *testing.T) (*Console, *bytes.Buffer) {
	t.Helper()
	m, err := machine.NewDefault(65536)
	if err != nil {
		t.Fatalf("machine.NewDefault: %v", err)
	}
	var out bytes.Buffer
	return New(m, &out), &out
}

func writeWord(t *testing.T, con *Console, addr uint64, word uint32) {
	t.Helper()
	ramBus := findRAMBus(con.Machine.Root)
	if ramBus == nil {
		t.Fatal("no RAM bus found in default machine")
	}
	ramBus.AddressSelect(addr)
	if !ramBus.WriteData32(word, bus.BigEndian) { // sparc's fetch path reads big-endian
		t.Fatalf("write failed at %#x", addr)
	}
}

func TestProcessLinePath(t *testing.T) {
	con, out := newTestConsole(t)
	if quit, err := con.ProcessLine("path"); err != nil || quit {
		t.Fatalf("path: quit=%v err=%v", quit, err)
	}
	if !strings.Contains(out.String(), "(mainbus)") {
		t.Fatalf("path output missing nameless-root rendering: %q", out.String())
	}
}

func TestProcessLineFind(t *testing.T) {
	con, out := newTestConsole(t)
	if _, err := con.ProcessLine("find ram"); err != nil {
		t.Fatalf("find: %v", err)
	}
	if !strings.Contains(out.String(), "ram") {
		t.Fatalf("find output missing ram match: %q", out.String())
	}
}

func TestProcessLineChecksumStable(t *testing.T) {
	con1, out1 := newTestConsole(t)
	con2, out2 := newTestConsole(t)
	if _, err := con1.ProcessLine("checksum"); err != nil {
		t.Fatalf("checksum: %v", err)
	}
	if _, err := con2.ProcessLine("checksum"); err != nil {
		t.Fatalf("checksum: %v", err)
	}
	if out1.String() != out2.String() {
		t.Fatalf("two freshly built default machines checksum differently: %q vs %q", out1.String(), out2.String())
	}
}

func TestProcessLineChecksumUnknownPath(t *testing.T) {
	con, _ := newTestConsole(t)
	if _, err := con.ProcessLine("checksum root.nope"); err == nil {
		t.Fatal("expected an error for an unknown path")
	}
}

func TestProcessLineStepAdvancesPC(t *testing.T) {
	con, out := newTestConsole(t)
	writeWord(t, con, 0, 0x01000000) // nop (sethi 0,%g0)
	con.Machine.CPU.PC = 0

	if _, err := con.ProcessLine("step"); err != nil {
		t.Fatalf("step: %v", err)
	}
	if con.Machine.CPU.PC != 4 {
		t.Fatalf("PC after one nop step = %#x, want 0x4", con.Machine.CPU.PC)
	}
	if !strings.Contains(out.String(), "pc=0x4") {
		t.Fatalf("step output missing updated pc: %q", out.String())
	}
}

func TestProcessLineStepRejectsBadCount(t *testing.T) {
	con, _ := newTestConsole(t)
	if _, err := con.ProcessLine("step -1"); err == nil {
		t.Fatal("expected an error for a negative step count")
	}
}

func TestProcessLineRegisters(t *testing.T) {
	con, out := newTestConsole(t)
	if _, err := con.ProcessLine("registers"); err != nil {
		t.Fatalf("registers: %v", err)
	}
	if !strings.Contains(out.String(), "pc=0x0") {
		t.Fatalf("registers output missing pc: %q", out.String())
	}
}

func TestProcessLineExamine(t *testing.T) {
	con, out := newTestConsole(t)
	writeWord(t, con, 0x10, 0xdeadbeef)

	if _, err := con.ProcessLine("examine 10 4"); err != nil {
		t.Fatalf("examine: %v", err)
	}
	if !strings.Contains(out.String(), "DE AD BE EF") {
		t.Fatalf("examine output missing written bytes: %q", out.String())
	}
}

func TestProcessLineUnknownCommand(t *testing.T) {
	con, _ := newTestConsole(t)
	if _, err := con.ProcessLine("frobnicate"); err == nil {
		t.Fatal("expected an error for an unknown command")
	}
}

func TestProcessLineAmbiguousCommand(t *testing.T) {
	con, _ := newTestConsole(t)
	// "st" matches both step and stop; make sure it's reported as
	// ambiguous rather than silently picking one.
	if _, err := con.ProcessLine("st"); err == nil {
		t.Fatal("expected an error for an ambiguous two-letter command")
	}
}

func TestProcessLineQuit(t *testing.T) {
	con, _ := newTestConsole(t)
	quit, err := con.ProcessLine("quit")
	if err != nil {
		t.Fatalf("quit: %v", err)
	}
	if !quit {
		t.Fatal("quit command did not signal quit=true")
	}
}

func TestCompleterPrefixesCommandNames(t *testing.T) {
	matches := Completer("st")
	want := map[string]bool{"step": true, "stop": true}
	if len(matches) != len(want) {
		t.Fatalf("Completer(\"st\") = %v, want two matches: step, stop", matches)
	}
	for _, m := range matches {
		if !want[m] {
			t.Fatalf("Completer(\"st\") returned unexpected match %q", m)
		}
	}
}
