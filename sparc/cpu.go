package sparc

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/rcornwell/dyntrans-sparc/bus"
	"github.com/rcornwell/dyntrans-sparc/component"
)

// WindowTrap is raised when a save/restore/flushw operation can't proceed
// without spilling or filling a register window to guest memory. The
// original fatal()s here; this implementation surfaces it as a typed error
// on the CPU's fault path instead of crashing the host process. Actually
// performing the spilled window's save/restore against guest memory is a
// named TODO — WindowTrap only prevents silent corruption of cansave/
// canrestore/cleanwin bookkeeping in the meantime.
type WindowTrap struct {
	Reason string
}

func (e *WindowTrap) Error() string { return "sparc: window trap: " + e.Reason }

// CPU holds the architectural state of one SPARC v8/v9 core: the visible
// register file, shadow per-window storage, condition codes, the
// privileged state registers, the delay-slot state machine, and the
// currently executing translation-cache page.
type CPU struct {
	// R holds the 32 currently visible logical registers: r[0:8] globals,
	// r[8:16] outs, r[16:24] locals, r[24:32] ins.
	R [32]uint64

	// RLocal shadows the locals of every window other than the one
	// currently mapped into R; RInOut shadows that window's ins (first 8)
	// and outs (last 8) — together, the full 24-register context of an
	// inactive window.
	RLocal [NWindows][8]uint64
	RInOut [NWindows][16]uint64

	CCR      uint8 // icc in the low nibble, xcc in the high nibble
	Y        uint64
	TBA      uint64
	Ver      uint64
	PIL      uint64
	Pstate   uint64
	Tick     uint64
	TickCmpr uint64
	Fprs     uint64

	CWP        uint8
	Cansave    uint8
	Canrestore uint8
	Cleanwin   uint8
	Nwindows   uint8

	Scratch uint64 // sink for writes to r[0]

	PC        uint64
	DelaySlot DelaySlot
	Is32Bit   bool

	// CrosspageDelaySlot marks that the delay slot currently being decoded
	// or skipped sits at page-offset zero of the next guest page: decode
	// sets it when invoked with DelaySlot==ToBeDelayed at a page-aligned
	// address, and opBranchCondAnnul's not-taken path sets it too, so a
	// subsequently taken annulled branch reusing the same slot is decoded
	// consistently either way.
	CrosspageDelaySlot bool

	NTranslatedInstrs uint64

	// Events is the tick delta-queue: tickCmprFire is armed against it by
	// writes to %tick_cmpr and drained by Step() advancing the clock one
	// tick per dispatched slot.
	Events *EventQueue
	// TickCmprPending latches when the armed tick_cmpr event fires;
	// ConsumeTickCmprPending reads and clears it.
	TickCmprPending bool

	curICPage *Page
	nextIC    int

	trans  *TranslationCache
	membus bus.AddressDataBus

	// TraceHook, when non-nil, is invoked by the call, jmpl and return
	// handlers (checked at run time; there are no separate traced handler
	// variants), mirroring the original's machine.show_trace_tree gated
	// call-trace hook.
	TraceHook func(cpu *CPU, kind string, target uint64)

	// done is closed to signal the dispatch loop to stop; checked
	// non-blockingly after every translated instruction, the same poll
	// point emu/core.Start()'s select against its done channel uses.
	done     chan struct{}
	stopOnce sync.Once

	log *slog.Logger
}

func init() {
	component.RegisterComponentClass("sparc-cpu", func(args map[string]string) (component.ClassImpl, error) {
		c := NewCPU()
		if v, ok := args["is32bit"]; ok {
			c.Is32Bit = v == "true" || v == "1"
		}
		return c, nil
	})
}

// NewCPU returns a freshly reset CPU with a fresh, empty translation cache
// and no attached bus — matching emu/cpu's InitializeCPU field-by-field
// reset idiom, generalized to SPARC's register-window shape.
func NewCPU() *CPU {
	c := &CPU{
		Nwindows: NWindows,
		done:     make(chan struct{}),
		log:      slog.Default(),
	}
	c.Reset()
	return c
}

// Reset zeroes architectural state the way InitializeCPU resets cpuState:
// field by field, leaving the translation cache and attached bus intact
// (a reset doesn't re-decode already-translated pages or detach hardware).
func (c *CPU) Reset() {
	c.R = [32]uint64{}
	c.RLocal = [NWindows][8]uint64{}
	c.RInOut = [NWindows][16]uint64{}
	c.CCR = 0
	c.Y = 0
	c.TBA = 0
	c.Ver = 0
	c.PIL = 0
	c.Pstate = 0
	c.Tick = 0
	c.TickCmpr = 0
	c.Fprs = 0
	c.CWP = 0
	c.Cansave = c.Nwindows - 2
	c.Canrestore = 0
	c.Cleanwin = c.Nwindows - 2
	c.Scratch = 0
	c.PC = 0
	c.DelaySlot = NotDelayed
	c.CrosspageDelaySlot = false
	c.NTranslatedInstrs = 0
	c.Events = &EventQueue{}
	c.TickCmprPending = false
	if c.trans == nil {
		c.trans = NewTranslationCache(c.Is32Bit)
	}
	c.done = make(chan struct{})
	c.stopOnce = sync.Once{}
	c.curICPage = nil
	c.nextIC = 0
}

func (c *CPU) ClassName() string { return "sparc-cpu" }

func (c *CPU) Variables() []component.Variable {
	return []component.Variable{
		component.BindUint64("pc", &c.PC),
		component.BindUint64("y", &c.Y),
		component.BindUint64("tba", &c.TBA),
		component.BindUint64("ver", &c.Ver),
		component.BindUint64("pil", &c.PIL),
		component.BindUint64("pstate", &c.Pstate),
		component.BindUint64("tick", &c.Tick),
		component.BindUint64("tick_cmpr", &c.TickCmpr),
		component.BindUint64("fprs", &c.Fprs),
		component.BindUint8("ccr", &c.CCR),
		component.BindUint8("cwp", &c.CWP),
		component.BindUint8("cansave", &c.Cansave),
		component.BindUint8("canrestore", &c.Canrestore),
		component.BindUint8("cleanwin", &c.Cleanwin),
		component.BindUint8("nwindows", &c.Nwindows),
	}
}

func (c *CPU) GetAttribute(name string) string {
	switch name {
	case "description":
		return "A SPARC v8/v9 dynamic-translation core."
	}
	return ""
}

// AttachBus wires the bus this CPU fetches instructions and performs
// loads/stores through.
func (c *CPU) AttachBus(b bus.AddressDataBus) { c.membus = b }

// RequestStop signals the dispatch loop to stop by closing done. Safe to
// call more than once or from the fault path mid-dispatch.
func (c *CPU) RequestStop() { c.stopOnce.Do(func() { close(c.done) }) }

func (c *CPU) stopPending() bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}

// icc returns the low (32-bit) condition-code nibble.
func (c *CPU) icc() uint8 { return c.CCR & 0x0f }

// xcc returns the high (64-bit) condition-code nibble.
func (c *CPU) xcc() uint8 { return (c.CCR >> 4) & 0x0f }

func (c *CPU) setICC(flags uint8) { c.CCR = (c.CCR & 0xf0) | (flags & 0x0f) }
func (c *CPU) setXCC(flags uint8) { c.CCR = (c.CCR & 0x0f) | (flags << 4) }

// writeReg implements the register-zero convention: a write to r[0] is
// always redirected to Scratch so that hardwired-zero reads are unaffected.
// Condition-code and window side effects are performed by the handlers
// themselves, whatever the destination register.
func (c *CPU) writeReg(n uint8, v uint64) {
	if n == 0 {
		c.Scratch = v
		return
	}
	c.R[n] = v
}

func (c *CPU) readReg(n uint8) uint64 {
	return c.R[n]
}

// ConsumeTickCmprPending reports whether the armed tick_cmpr event has
// fired since the last call, clearing it.
func (c *CPU) ConsumeTickCmprPending() bool {
	fired := c.TickCmprPending
	c.TickCmprPending = false
	return fired
}

// tickCmprFire is the Callback armed by setTickCmpr; its identity is what
// CancelEvent matches against to re-arm on a subsequent %tick_cmpr write.
func tickCmprFire(cpu *CPU, arg int) {
	cpu.TickCmprPending = true
}

// setTickCmpr stores v and (re)arms the tick event queue so
// TickCmprPending latches once Tick reaches v, mirroring the %tick_cmpr
// compare-and-interrupt behavior spec.md's data model names without a full
// interrupt-vector implementation (tracked as a TODO alongside the window
// trap's memory spill/fill path).
func (c *CPU) setTickCmpr(v uint64) {
	c.TickCmpr = v
	c.Events.CancelEvent(tickCmprFire)
	if v > c.Tick {
		c.Events.AddEvent(int(v-c.Tick), tickCmprFire, 0)
	}
}

// memoryRW is the CPU's hookup to the attached bus for instruction fetch on
// a translation-cache miss and for load/store handlers, matching spec.md
// §4.4's memory_rw(cpu, mem, addr, buf, len, dir, hint) shape (collapsed
// here into direction-specific Go methods over the typed AddressDataBus
// calls rather than a single (buf,len) form, since Go has no natural
// analogue to an out-parameter byte buffer of varying width).
func (c *CPU) memoryRW(addr uint64) (word uint32, ok bool) {
	if c.membus == nil {
		return 0, false
	}
	c.membus.AddressSelect(addr)
	v, ok := c.membus.ReadData32(bus.BigEndian)
	return v, ok
}

func (c *CPU) fetchInstruction(addr uint64) (uint32, error) {
	w, ok := c.memoryRW(addr)
	if !ok {
		return 0, fmt.Errorf("sparc: instruction fetch fault at %#x", addr)
	}
	return w, nil
}
