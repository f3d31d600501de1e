package sparc

// Shift-count masks: sll/srl/sra use the low 5 bits of the count (32-bit
// shift amount range); sllx/srlx/srax use the low 6 bits (64-bit range).
const (
	shiftMask32 = 0x1f
	shiftMask64 = 0x3f
)

func shiftOperands(cpu *CPU, ic *InstrCall, reg bool) (addr uint64, a, count uint64, rd uint8) {
	addr = cpu.PC
	a = cpu.readReg(uint8(ic.Arg[0]))
	if reg {
		count = cpu.readReg(uint8(ic.Arg[1]))
	} else {
		count = ic.Arg[1]
	}
	rd = uint8(ic.Arg[2])
	return
}

func opSll(cpu *CPU, ic *InstrCall) {
	addr, a, count, rd := shiftOperands(cpu, ic, true)
	cpu.writeReg(rd, uint64(uint32(a)<<(count&shiftMask32)))
	cpu.PC = addr + 4
}

func opSllImm(cpu *CPU, ic *InstrCall) {
	addr, a, count, rd := shiftOperands(cpu, ic, false)
	cpu.writeReg(rd, uint64(uint32(a)<<(count&shiftMask32)))
	cpu.PC = addr + 4
}

func opSllx(cpu *CPU, ic *InstrCall) {
	addr, a, count, rd := shiftOperands(cpu, ic, true)
	cpu.writeReg(rd, a<<(count&shiftMask64))
	cpu.PC = addr + 4
}

func opSllxImm(cpu *CPU, ic *InstrCall) {
	addr, a, count, rd := shiftOperands(cpu, ic, false)
	cpu.writeReg(rd, a<<(count&shiftMask64))
	cpu.PC = addr + 4
}

func opSrl(cpu *CPU, ic *InstrCall) {
	addr, a, count, rd := shiftOperands(cpu, ic, true)
	cpu.writeReg(rd, uint64(uint32(a)>>(count&shiftMask32)))
	cpu.PC = addr + 4
}

func opSrlImm(cpu *CPU, ic *InstrCall) {
	addr, a, count, rd := shiftOperands(cpu, ic, false)
	cpu.writeReg(rd, uint64(uint32(a)>>(count&shiftMask32)))
	cpu.PC = addr + 4
}

func opSrlx(cpu *CPU, ic *InstrCall) {
	addr, a, count, rd := shiftOperands(cpu, ic, true)
	cpu.writeReg(rd, a>>(count&shiftMask64))
	cpu.PC = addr + 4
}

func opSrlxImm(cpu *CPU, ic *InstrCall) {
	addr, a, count, rd := shiftOperands(cpu, ic, false)
	cpu.writeReg(rd, a>>(count&shiftMask64))
	cpu.PC = addr + 4
}

func opSra(cpu *CPU, ic *InstrCall) {
	addr, a, count, rd := shiftOperands(cpu, ic, true)
	cpu.writeReg(rd, uint64(uint32(int32(uint32(a))>>(count&shiftMask32))))
	cpu.PC = addr + 4
}

func opSraImm(cpu *CPU, ic *InstrCall) {
	addr, a, count, rd := shiftOperands(cpu, ic, false)
	cpu.writeReg(rd, uint64(uint32(int32(uint32(a))>>(count&shiftMask32))))
	cpu.PC = addr + 4
}

func opSrax(cpu *CPU, ic *InstrCall) {
	addr, a, count, rd := shiftOperands(cpu, ic, true)
	cpu.writeReg(rd, uint64(int64(a)>>(count&shiftMask64)))
	cpu.PC = addr + 4
}

func opSraxImm(cpu *CPU, ic *InstrCall) {
	addr, a, count, rd := shiftOperands(cpu, ic, false)
	cpu.writeReg(rd, uint64(int64(a)>>(count&shiftMask64)))
	cpu.PC = addr + 4
}
