package sparc

import (
	"testing"

	"github.com/rcornwell/dyntrans-sparc/bus"
	"github.com/rcornwell/dyntrans-sparc/component"
)

func newTestCPU(t *testing.T) (*CPU, bus.AddressDataBus) {
	t.Helper()
	comp, err := component.CreateComponent("ram(size=65536)")
	if err != nil {
		t.Fatalf("CreateComponent(ram): %v", err)
	}
	ramBus, ok := comp.Impl().(bus.AddressDataBus)
	if !ok {
		t.Fatalf("ram impl does not satisfy bus.AddressDataBus")
	}
	cpu := NewCPU()
	cpu.AttachBus(ramBus)
	return cpu, ramBus
}

func writeWord(b bus.AddressDataBus, addr uint64, word uint32) {
	b.AddressSelect(addr)
	b.WriteData32(word, bus.BigEndian)
}

// TestSethiOr covers E3: sethi %hi(0x400),%g1 then or %g1,1,%g1 leaves
// %g1 = 0x401 and PC advanced by 8.
func TestSethiOr(t *testing.T) {
	cpu, ramBus := newTestCPU(t)
	writeWord(ramBus, 0x1000, 0x03000001) // sethi %hi(0x400), %g1
	writeWord(ramBus, 0x1004, 0x82106001) // or %g1, 1, %g1
	cpu.PC = 0x1000

	cpu.RunInstructions(2)

	if got := cpu.R[1]; got != 0x401 {
		t.Errorf("%%g1 = %#x, want 0x401", got)
	}
	if cpu.PC != 0x1008 {
		t.Errorf("PC = %#x, want 0x1008", cpu.PC)
	}
}

// TestBranchWithDelaySlot covers E4: bne .+8 taken with delay slot
// add %g0,%g0,%g0 jumps to the target after the delay slot runs, and
// counts as two translated instructions.
func TestBranchWithDelaySlot(t *testing.T) {
	cpu, ramBus := newTestCPU(t)
	writeWord(ramBus, 0x1000, 0x12800002) // bne .+8
	writeWord(ramBus, 0x1004, 0x80000000) // add %g0, %g0, %g0 (delay slot)
	cpu.PC = 0x1000

	cpu.RunInstructions(1)

	if cpu.PC != 0x1008 {
		t.Errorf("PC = %#x, want 0x1008", cpu.PC)
	}
	if cpu.NTranslatedInstrs != 2 {
		t.Errorf("NTranslatedInstrs = %d, want 2", cpu.NTranslatedInstrs)
	}
}

// TestSubccOverflow covers E5: subcc 0x80000000, 1, %g2 leaves
// result 0x7fffffff, icc N=0 Z=0 V=1, and xcc V=0 since the 64-bit
// operands don't overflow.
func TestSubccOverflow(t *testing.T) {
	cpu, ramBus := newTestCPU(t)
	cpu.R[1] = 0x80000000
	writeWord(ramBus, 0x1000, 0x84A06001) // subcc %g1, 1, %g2
	cpu.PC = 0x1000

	cpu.RunInstructions(1)

	if got := cpu.R[2]; got != 0x7fffffff {
		t.Errorf("%%g2 = %#x, want 0x7fffffff", got)
	}
	icc := cpu.icc()
	if icc&FlagN != 0 {
		t.Errorf("icc N set, want clear")
	}
	if icc&FlagZ != 0 {
		t.Errorf("icc Z set, want clear")
	}
	if icc&FlagV == 0 {
		t.Errorf("icc V clear, want set")
	}
	if cpu.xcc()&FlagV != 0 {
		t.Errorf("xcc V set, want clear")
	}
}

// TestCallReturn covers E6: call X; nop; ...; retl; nop at X returns to
// the call site's PC+8, and %o7 at the callee equals the call-site PC.
func TestCallReturn(t *testing.T) {
	cpu, ramBus := newTestCPU(t)
	writeWord(ramBus, 0x1000, 0x40000400) // call 0x2000
	writeWord(ramBus, 0x1004, 0x01000000) // nop (call's delay slot)
	writeWord(ramBus, 0x2000, 0x81C3E008) // retl == jmpl %o7+8, %g0
	writeWord(ramBus, 0x2004, 0x01000000) // nop (retl's delay slot)
	cpu.PC = 0x1000

	cpu.RunInstructions(1)
	if cpu.PC != 0x2000 {
		t.Fatalf("after call, PC = %#x, want 0x2000", cpu.PC)
	}
	if got := cpu.R[15]; got != 0x1000 {
		t.Errorf("%%o7 at callee = %#x, want 0x1000", got)
	}

	cpu.RunInstructions(1)
	if cpu.PC != 0x1008 {
		t.Errorf("after retl, PC = %#x, want 0x1008", cpu.PC)
	}
}

// TestSaveRestoreRoundTrip covers the register-window round-trip property:
// a save followed eventually by a matching restore leaves the out/local/in
// registers and window bookkeeping exactly as they were before the save.
func TestSaveRestoreRoundTrip(t *testing.T) {
	cpu := NewCPU()
	for i := 8; i < 32; i++ {
		cpu.R[i] = uint64(i) * 0x1111
	}
	var original [32]uint64
	original = cpu.R

	startCWP := cpu.CWP
	startCansave := cpu.Cansave
	startCanrestore := cpu.Canrestore

	if err := cpu.saveWindow(); err != nil {
		t.Fatalf("saveWindow: %v", err)
	}
	for i := 8; i < 32; i++ {
		cpu.R[i] = 0xdeadbeef
	}
	if err := cpu.restoreWindow(); err != nil {
		t.Fatalf("restoreWindow: %v", err)
	}

	if cpu.CWP != startCWP {
		t.Errorf("CWP = %d, want %d", cpu.CWP, startCWP)
	}
	if cpu.Cansave != startCansave {
		t.Errorf("Cansave = %d, want %d", cpu.Cansave, startCansave)
	}
	if cpu.Canrestore != startCanrestore {
		t.Errorf("Canrestore = %d, want %d", cpu.Canrestore, startCanrestore)
	}
	for i := 8; i < 32; i++ {
		if cpu.R[i] != original[i] {
			t.Errorf("R[%d] = %#x, want %#x", i, cpu.R[i], original[i])
		}
	}
}

// TestInvalidInstructionRequestsStop verifies a reserved/unimplemented
// opcode requests a dispatch-loop stop rather than panicking.
func TestInvalidInstructionRequestsStop(t *testing.T) {
	cpu, ramBus := newTestCPU(t)
	writeWord(ramBus, 0x1000, 0x00000000) // format2, op2=0 (reserved)
	cpu.PC = 0x1000

	cpu.RunInstructions(1)

	if !cpu.stopPending() {
		t.Errorf("stopPending() = false, want true after an invalid instruction")
	}
}

// TestCrossPageFallthroughAdvances covers the dispatch loop crossing a
// 4KiB page boundary via straight-line fallthrough: the instruction at the
// last real slot of one page must actually reach and execute the first
// real slot of the next page rather than looping forever on the
// end-of-page sentinel.
func TestCrossPageFallthroughAdvances(t *testing.T) {
	cpu, ramBus := newTestCPU(t)
	writeWord(ramBus, 0x1ffc, 0x01000000) // nop, last real slot of the 0x1000 page
	writeWord(ramBus, 0x2000, 0x01000000) // nop, first real slot of the 0x2000 page
	cpu.PC = 0x1ffc

	cpu.RunInstructions(3) // 0x1ffc, the endOfPage sentinel, then 0x2000

	if cpu.PC != 0x2004 {
		t.Fatalf("PC = %#x, want 0x2004 (the instruction at 0x2000 must actually execute)", cpu.PC)
	}
	if cpu.stopPending() {
		t.Fatal("stopPending() = true, want false (crossing a page boundary must not fault)")
	}
}

// TestBPccV9TakesBranch covers the v9 BPcc encoding (op2=1), distinct from
// the v8 Bicc encoding (op2=2) TestBranchWithDelaySlot covers: bne .+8 on
// icc, taken, with its delay slot run, counts as two translated instructions.
func TestBPccV9TakesBranch(t *testing.T) {
	cpu, ramBus := newTestCPU(t)
	writeWord(ramBus, 0x1000, 0x12400002) // bpcc %icc, bne, .+8 (op2=1)
	writeWord(ramBus, 0x1004, 0x80000000) // add %g0, %g0, %g0 (delay slot)
	cpu.PC = 0x1000

	cpu.RunInstructions(1)

	if cpu.PC != 0x1008 {
		t.Errorf("PC = %#x, want 0x1008", cpu.PC)
	}
	if cpu.NTranslatedInstrs != 2 {
		t.Errorf("NTranslatedInstrs = %d, want 2", cpu.NTranslatedInstrs)
	}
}

// TestSelfModifyingStoreInvalidatesPage covers spec.md §5's self-modifying
// code requirement: a store to an address whose page is already
// materialized in the translation cache must invalidate that page, so a
// later fetch re-decodes the new bytes instead of running the stale
// cached instruction.
func TestSelfModifyingStoreInvalidatesPage(t *testing.T) {
	cpu, ramBus := newTestCPU(t)
	writeWord(ramBus, 0x1000, 0x01000000) // nop
	writeWord(ramBus, 0x2000, 0xC2208000) // st %g1, [%g2]
	cpu.R[2] = 0x1000
	cpu.PC = 0x1000

	cpu.RunInstructions(1) // materializes the page covering 0x1000

	key := cpu.trans.pageKey(0x1000)
	if _, ok := cpu.trans.pages[key]; !ok {
		t.Fatal("page covering 0x1000 was not materialized")
	}

	cpu.PC = 0x2000
	cpu.curICPage = nil // force re-resolution; the CPU jumped outside Step()'s own control
	cpu.RunInstructions(1) // st %g1(=0),[%g2(=0x1000)] overwrites the nop with zero

	if _, ok := cpu.trans.pages[key]; ok {
		t.Fatal("page covering 0x1000 is still cached after a store to that address")
	}

	cpu.PC = 0x1000
	cpu.curICPage = nil
	cpu.RunInstructions(1) // re-decodes the now-zeroed word: format2, op2=0, reserved
	if !cpu.stopPending() {
		t.Error("stopPending() = false, want true: the overwritten word should decode as invalid")
	}
}

// TestTickCmprFires covers the tick/tick_cmpr event-queue wiring: writing
// tick_cmpr arms an event that fires once Step()'s per-slot Events.Advance
// catches Tick up to it.
func TestTickCmprFires(t *testing.T) {
	cpu, ramBus := newTestCPU(t)
	for i := 0; i < 3; i++ {
		writeWord(ramBus, uint64(0x1000+4*i), 0x01000000) // nop
	}
	cpu.PC = 0x1000
	cpu.setTickCmpr(3)

	cpu.RunInstructions(2)
	if cpu.ConsumeTickCmprPending() {
		t.Fatal("tick_cmpr fired early, want pending only once Tick reaches 3")
	}

	cpu.RunInstructions(1)
	if !cpu.ConsumeTickCmprPending() {
		t.Fatal("tick_cmpr did not fire once Tick reached 3")
	}
	if cpu.ConsumeTickCmprPending() {
		t.Fatal("ConsumeTickCmprPending did not clear the latch")
	}
}

// TestHandlerMatchesReferenceAdd checks add's result and condition codes
// against a plain-Go reference computation, the shared-semantics property
// any pre-decoded handler must satisfy relative to a non-translated
// interpreter.
func TestHandlerMatchesReferenceAdd(t *testing.T) {
	cpu, ramBus := newTestCPU(t)
	cpu.R[1] = 0xfffffffe
	cpu.R[2] = 3
	writeWord(ramBus, 0x1000, 0x86804002) // addcc %g1, %g2, %g3 (no imm)
	cpu.PC = 0x1000

	cpu.RunInstructions(1)

	wantResult := cpu.R[1] + cpu.R[2]
	if cpu.R[3] != wantResult {
		t.Errorf("%%g3 = %#x, want %#x", cpu.R[3], wantResult)
	}
	wantICC := addFlags32(uint32(0xfffffffe), uint32(3))
	if cpu.icc() != wantICC {
		t.Errorf("icc = %#x, want %#x", cpu.icc(), wantICC)
	}
}
