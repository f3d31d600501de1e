package sparc

// aluOperands reads the rs1 register and the second operand (register or
// sign-extended immediate, per how decode filled ic.Arg[1]) that every ALU
// handler needs, plus the instruction's own address (the PC at entry,
// before any handler advances it).
func aluOperands(cpu *CPU, ic *InstrCall, reg bool) (addr uint64, a, b uint64, rd uint8) {
	addr = cpu.PC
	a = cpu.readReg(uint8(ic.Arg[0]))
	if reg {
		b = cpu.readReg(uint8(ic.Arg[1]))
	} else {
		b = ic.Arg[1] // already sign-extended to 64 bits by decode
	}
	rd = uint8(ic.Arg[2])
	return
}

func opAdd(cpu *CPU, ic *InstrCall)      { doAdd(cpu, ic, true, false) }
func opAddImm(cpu *CPU, ic *InstrCall)   { doAdd(cpu, ic, false, false) }
func opAddcc(cpu *CPU, ic *InstrCall)    { doAdd(cpu, ic, true, true) }
func opAddccImm(cpu *CPU, ic *InstrCall) { doAdd(cpu, ic, false, true) }

func doAdd(cpu *CPU, ic *InstrCall, reg, cc bool) {
	addr, a, b, rd := aluOperands(cpu, ic, reg)
	result := a + b
	if cc {
		cpu.setICC(addFlags32(uint32(a), uint32(b)))
		cpu.setXCC(addFlags64(a, b))
	}
	cpu.writeReg(rd, result)
	cpu.PC = addr + 4
}

func opSub(cpu *CPU, ic *InstrCall)      { doSub(cpu, ic, true, false) }
func opSubImm(cpu *CPU, ic *InstrCall)   { doSub(cpu, ic, false, false) }
func opSubcc(cpu *CPU, ic *InstrCall)    { doSub(cpu, ic, true, true) }
func opSubccImm(cpu *CPU, ic *InstrCall) { doSub(cpu, ic, false, true) }

func doSub(cpu *CPU, ic *InstrCall, reg, cc bool) {
	addr, a, b, rd := aluOperands(cpu, ic, reg)
	result := a - b
	if cc {
		cpu.setICC(subFlags32(uint32(a), uint32(b)))
		cpu.setXCC(subFlags64(a, b))
	}
	cpu.writeReg(rd, result)
	cpu.PC = addr + 4
}

func opAnd(cpu *CPU, ic *InstrCall) {
	doLogic(cpu, ic, true, false, func(a, b uint64) uint64 { return a & b })
}
func opAndImm(cpu *CPU, ic *InstrCall) {
	doLogic(cpu, ic, false, false, func(a, b uint64) uint64 { return a & b })
}
func opAndcc(cpu *CPU, ic *InstrCall) {
	doLogic(cpu, ic, true, true, func(a, b uint64) uint64 { return a & b })
}
func opAndccImm(cpu *CPU, ic *InstrCall) {
	doLogic(cpu, ic, false, true, func(a, b uint64) uint64 { return a & b })
}

func opOr(cpu *CPU, ic *InstrCall) {
	doLogic(cpu, ic, true, false, func(a, b uint64) uint64 { return a | b })
}
func opOrImm(cpu *CPU, ic *InstrCall) {
	doLogic(cpu, ic, false, false, func(a, b uint64) uint64 { return a | b })
}
func opOrcc(cpu *CPU, ic *InstrCall) {
	doLogic(cpu, ic, true, true, func(a, b uint64) uint64 { return a | b })
}
func opOrccImm(cpu *CPU, ic *InstrCall) {
	doLogic(cpu, ic, false, true, func(a, b uint64) uint64 { return a | b })
}

func opXor(cpu *CPU, ic *InstrCall) {
	doLogic(cpu, ic, true, false, func(a, b uint64) uint64 { return a ^ b })
}
func opXorImm(cpu *CPU, ic *InstrCall) {
	doLogic(cpu, ic, false, false, func(a, b uint64) uint64 { return a ^ b })
}
func opXorcc(cpu *CPU, ic *InstrCall) {
	doLogic(cpu, ic, true, true, func(a, b uint64) uint64 { return a ^ b })
}
func opXorccImm(cpu *CPU, ic *InstrCall) {
	doLogic(cpu, ic, false, true, func(a, b uint64) uint64 { return a ^ b })
}

func opAndn(cpu *CPU, ic *InstrCall) {
	doLogic(cpu, ic, true, false, func(a, b uint64) uint64 { return a &^ b })
}
func opAndnImm(cpu *CPU, ic *InstrCall) {
	doLogic(cpu, ic, false, false, func(a, b uint64) uint64 { return a &^ b })
}

// doLogic implements and/or/xor/andn and their cc-setting variants. V and C
// are always cleared for logical ops, per spec.md §4.6.
func doLogic(cpu *CPU, ic *InstrCall, reg, cc bool, op func(a, b uint64) uint64) {
	addr, a, b, rd := aluOperands(cpu, ic, reg)
	result := op(a, b)
	if cc {
		cpu.setICC(logicFlags(uint32(result)))
		cpu.setXCC(logicFlags64(result))
	}
	cpu.writeReg(rd, result)
	cpu.PC = addr + 4
}

func opUdiv(cpu *CPU, ic *InstrCall)    { doUdiv(cpu, ic, true) }
func opUdivImm(cpu *CPU, ic *InstrCall) { doUdiv(cpu, ic, false) }

func doUdiv(cpu *CPU, ic *InstrCall, reg bool) {
	addr, a, b, rd := aluOperands(cpu, ic, reg)
	var result uint64
	if b == 0 {
		result = 0xffffffff // architectural divide-by-zero saturation, no trap modeled
	} else {
		result = (a & 0xffffffff) / (b & 0xffffffff)
		if result > 0xffffffff {
			result = 0xffffffff
		}
	}
	cpu.writeReg(rd, result)
	cpu.PC = addr + 4
}

func addFlags32(a, b uint32) uint8 {
	result := a + b
	var f uint8
	if int32(result) < 0 {
		f |= FlagN
	}
	if result == 0 {
		f |= FlagZ
	}
	if (a>>31 == b>>31) && (result>>31 != a>>31) {
		f |= FlagV
	}
	if uint64(a)+uint64(b) > 0xffffffff {
		f |= FlagC
	}
	return f
}

func addFlags64(a, b uint64) uint8 {
	result := a + b
	var f uint8
	if int64(result) < 0 {
		f |= FlagN
	}
	if result == 0 {
		f |= FlagZ
	}
	if (a>>63 == b>>63) && (result>>63 != a>>63) {
		f |= FlagV
	}
	// carry out of bit 63: unsigned overflow, detectable as result < a.
	if result < a {
		f |= FlagC
	}
	return f
}

func subFlags32(a, b uint32) uint8 {
	result := a - b
	var f uint8
	if int32(result) < 0 {
		f |= FlagN
	}
	if result == 0 {
		f |= FlagZ
	}
	if (a>>31 != b>>31) && (result>>31 != a>>31) {
		f |= FlagV
	}
	if a < b {
		f |= FlagC // borrow
	}
	return f
}

func subFlags64(a, b uint64) uint8 {
	result := a - b
	var f uint8
	if int64(result) < 0 {
		f |= FlagN
	}
	if result == 0 {
		f |= FlagZ
	}
	if (a>>63 != b>>63) && (result>>63 != a>>63) {
		f |= FlagV
	}
	if a < b {
		f |= FlagC // borrow
	}
	return f
}

func logicFlags(result uint32) uint8 {
	var f uint8
	if int32(result) < 0 {
		f |= FlagN
	}
	if result == 0 {
		f |= FlagZ
	}
	return f
}

func logicFlags64(result uint64) uint8 {
	var f uint8
	if int64(result) < 0 {
		f |= FlagN
	}
	if result == 0 {
		f |= FlagZ
	}
	return f
}
