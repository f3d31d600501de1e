package sparc

// State-register selectors for rd/wr (the rs1 field when reading, the rd
// field when writing) and rdpr/wrpr (privileged registers). Not a complete
// %asr/%tstate encoding — just the subset spec.md names (tba, ver, pil,
// pstate, tick, tick_cmpr, cleanwin) plus %y, the one rd/wr almost every guest program
// touches.
const (
	selY        = 0
	selTBA      = 5
	selTick     = 4
	selTickCmpr = 23
	selPIL      = 6
	selPstate   = 7
	selCleanwin = 8
	selVer      = 31
)

func (c *CPU) readStateReg(sel uint8) uint64 {
	switch sel {
	case selY:
		return c.Y
	case selTBA:
		return c.TBA
	case selTick:
		return c.Tick
	case selTickCmpr:
		return c.TickCmpr
	case selPIL:
		return c.PIL
	case selPstate:
		return c.Pstate
	case selCleanwin:
		return uint64(c.Cleanwin)
	case selVer:
		return c.Ver
	}
	return 0
}

func (c *CPU) writeStateReg(sel uint8, v uint64) {
	switch sel {
	case selY:
		c.Y = v
	case selTBA:
		c.TBA = v
	case selTick:
		c.Tick = v
	case selTickCmpr:
		c.setTickCmpr(v)
	case selPIL:
		c.PIL = v
	case selPstate:
		c.Pstate = v
	case selCleanwin:
		c.Cleanwin = uint8(v)
	}
	// %ver is read-only; writes are silently discarded.
}

func opRd(cpu *CPU, ic *InstrCall) {
	addr := cpu.PC
	sel := uint8(ic.Arg[0])
	rd := uint8(ic.Arg[2])
	cpu.writeReg(rd, cpu.readStateReg(sel))
	cpu.PC = addr + 4
}

func opRdpr(cpu *CPU, ic *InstrCall) {
	addr := cpu.PC
	sel := uint8(ic.Arg[0])
	rd := uint8(ic.Arg[2])
	cpu.writeReg(rd, cpu.readStateReg(sel))
	cpu.PC = addr + 4
}

// wr/wrpr XOR their two source operands into the target state register —
// an architecturally-accurate quirk (spec.md §4.6), not a bug.
func opWr(cpu *CPU, ic *InstrCall)    { doWr(cpu, ic, true) }
func opWrImm(cpu *CPU, ic *InstrCall) { doWr(cpu, ic, false) }

func doWr(cpu *CPU, ic *InstrCall, reg bool) {
	addr := cpu.PC
	a := cpu.readReg(uint8(ic.Arg[0]))
	var b uint64
	if reg {
		b = cpu.readReg(uint8(ic.Arg[1]))
	} else {
		b = ic.Arg[1]
	}
	sel := uint8(ic.Arg[2])
	cpu.writeStateReg(sel, a^b)
	cpu.PC = addr + 4
}

func opWrpr(cpu *CPU, ic *InstrCall)    { doWr(cpu, ic, true) }
func opWrprImm(cpu *CPU, ic *InstrCall) { doWr(cpu, ic, false) }
