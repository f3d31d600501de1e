package sparc

import "fmt"

// saveWindow and restoreWindow implement the register-window rotation
// spec.md §4.6 describes: shadow storage for an inactive window holds its
// locals (RLocal) and its ins+outs together (RInOut[0:8]=ins, [8:16]=outs).
// save() advances the window and shadows the outgoing one; restore()
// reverses it by reloading exactly what the matching save() shadowed —
// this is the invariant Property 6 (save;...;restore round-trip) relies
// on.
func (c *CPU) saveWindow() error {
	if c.Cansave == 0 {
		return &WindowTrap{Reason: "save: cansave exhausted"}
	}
	if int(c.Cleanwin)-int(c.Canrestore) <= 0 {
		return &WindowTrap{Reason: "save: no clean window available"}
	}
	oldCWP := c.CWP
	newCWP := (oldCWP + 1) % c.Nwindows

	copy(c.RLocal[oldCWP][:], c.R[16:24])
	copy(c.RInOut[oldCWP][0:8], c.R[24:32])
	copy(c.RInOut[oldCWP][8:16], c.R[8:16])

	var newIns [8]uint64
	copy(newIns[:], c.R[8:16])

	newLocals := c.RLocal[newCWP]
	var newOuts [8]uint64
	copy(newOuts[:], c.RInOut[newCWP][8:16])

	copy(c.R[24:32], newIns[:])
	copy(c.R[16:24], newLocals[:])
	copy(c.R[8:16], newOuts[:])

	c.CWP = newCWP
	c.Cansave--
	c.Canrestore++
	return nil
}

func (c *CPU) restoreWindow() error {
	if c.Canrestore == 0 {
		return &WindowTrap{Reason: "restore: canrestore exhausted"}
	}
	oldCWP := c.CWP
	newCWP := (oldCWP - 1 + c.Nwindows) % c.Nwindows

	var restoredIns, restoredLocals, restoredOuts [8]uint64
	copy(restoredIns[:], c.RInOut[newCWP][0:8])
	copy(restoredLocals[:], c.RLocal[newCWP][:])
	copy(restoredOuts[:], c.RInOut[newCWP][8:16])

	copy(c.R[24:32], restoredIns[:])
	copy(c.R[16:24], restoredLocals[:])
	copy(c.R[8:16], restoredOuts[:])

	c.CWP = newCWP
	c.Cansave++
	c.Canrestore--
	return nil
}

func (c *CPU) faultWindowTrap(err error) {
	if c.log != nil {
		c.log.Error("sparc: window trap", "pc", fmt.Sprintf("%#x", c.PC), "err", err)
	}
	c.RequestStop()
}

func opSave(cpu *CPU, ic *InstrCall)    { doSave(cpu, ic, true) }
func opSaveImm(cpu *CPU, ic *InstrCall) { doSave(cpu, ic, false) }

func doSave(cpu *CPU, ic *InstrCall, reg bool) {
	addr := cpu.PC
	a := cpu.readReg(uint8(ic.Arg[0]))
	var b uint64
	if reg {
		b = cpu.readReg(uint8(ic.Arg[1]))
	} else {
		b = ic.Arg[1]
	}
	result := a + b
	if err := cpu.saveWindow(); err != nil {
		cpu.faultWindowTrap(err)
		return
	}
	cpu.writeReg(uint8(ic.Arg[2]), result)
	cpu.PC = addr + 4
}

func opRestore(cpu *CPU, ic *InstrCall)    { doRestore(cpu, ic, true) }
func opRestoreImm(cpu *CPU, ic *InstrCall) { doRestore(cpu, ic, false) }

func doRestore(cpu *CPU, ic *InstrCall, reg bool) {
	addr := cpu.PC
	a := cpu.readReg(uint8(ic.Arg[0]))
	var b uint64
	if reg {
		b = cpu.readReg(uint8(ic.Arg[1]))
	} else {
		b = ic.Arg[1]
	}
	result := a + b
	if err := cpu.restoreWindow(); err != nil {
		cpu.faultWindowTrap(err)
		return
	}
	cpu.writeReg(uint8(ic.Arg[2]), result)
	cpu.PC = addr + 4
}

// opFlushw is a no-op when cansave == nwindows-2 (every window clean);
// otherwise it raises the window trap the original leaves as an
// implementation TODO.
func opFlushw(cpu *CPU, ic *InstrCall) {
	addr := cpu.PC
	if cpu.Cansave != cpu.Nwindows-2 {
		cpu.faultWindowTrap(&WindowTrap{Reason: "flushw: dirty windows present"})
		return
	}
	cpu.PC = addr + 4
}
