package sparc

// opCall implements CALL (op=01): target = addr + disp30, %o7 (r[15])
// receives the call's own address, and (unlike conditional branches) the
// delay slot always executes. Grounded on cpu_sparc_instr.cc's
// call/call_trace pair; TraceHook stands in for the original's
// machine.show_trace_tree-gated call-trace hook.
func opCall(cpu *CPU, ic *InstrCall) {
	addr := cpu.PC
	target := uint64(int64(addr) + int64(ic.Arg[0]))
	cpu.writeReg(15, addr) // %o7
	if cpu.TraceHook != nil {
		cpu.TraceHook(cpu, "call", target)
	}
	cpu.executeDelaySlotThen(addr, target)
}

func jmplTarget(cpu *CPU, ic *InstrCall, reg bool) uint64 {
	rs1 := cpu.readReg(uint8(ic.Arg[0]))
	var off uint64
	if reg {
		off = cpu.readReg(uint8(ic.Arg[1]))
	} else {
		off = ic.Arg[1]
	}
	return rs1 + off
}

func opJmplReg(cpu *CPU, ic *InstrCall) { doJmpl(cpu, ic, true) }
func opJmplImm(cpu *CPU, ic *InstrCall) { doJmpl(cpu, ic, false) }

func doJmpl(cpu *CPU, ic *InstrCall, reg bool) {
	addr := cpu.PC
	target := jmplTarget(cpu, ic, reg)
	rd := uint8(ic.Arg[2])
	cpu.writeReg(rd, addr)
	if cpu.TraceHook != nil {
		cpu.TraceHook(cpu, "jmpl", target)
	}
	cpu.executeDelaySlotThen(addr, target)
}

// opReturnReg/opReturnImm implement RETURN: jump (with delay slot) to
// r[rs1] + offset, then restore the register window — the delay-slot
// instruction itself still runs in the pre-restore window, and only once
// the jump has committed does restore run, matching the original's
// return_imm/return_reg sequencing where restore() is the last step after
// the jmpl-shaped branch, not a precondition for it.
func opReturnReg(cpu *CPU, ic *InstrCall) { doReturn(cpu, ic, true) }
func opReturnImm(cpu *CPU, ic *InstrCall) { doReturn(cpu, ic, false) }

func doReturn(cpu *CPU, ic *InstrCall, reg bool) {
	addr := cpu.PC
	target := jmplTarget(cpu, ic, reg)
	if cpu.TraceHook != nil {
		cpu.TraceHook(cpu, "return", target)
	}
	cpu.executeDelaySlotThen(addr, target)
	if err := cpu.restoreWindow(); err != nil {
		cpu.faultWindowTrap(err)
	}
}
