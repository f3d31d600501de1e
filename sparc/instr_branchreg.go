package sparc

// evalRcond evaluates a register-test branch predicate against the signed
// value of rs1, generalized per SPEC_FULL §5 from the original's lone
// X(brnz) to the full br*z/br*lz/etc. set op2=3 defines.
func evalRcond(rcond uint8, v int64) bool {
	switch rcond {
	case rcondZ:
		return v == 0
	case rcondLEZ:
		return v <= 0
	case rcondLZ:
		return v < 0
	case rcondNZ:
		return v != 0
	case rcondGZ:
		return v > 0
	case rcondGEZ:
		return v >= 0
	}
	return false
}

func opBranchReg(cpu *CPU, ic *InstrCall) {
	addr := cpu.PC
	rcond := uint8(ic.Arg[0])
	rs1 := uint8(ic.Arg[1])
	taken := evalRcond(rcond, int64(cpu.readReg(rs1)))
	if !taken {
		cpu.PC = addr + 4
		return
	}
	target := branchTarget(ic, addr)
	cpu.executeDelaySlotThen(addr, target)
}

func opBranchRegAnnul(cpu *CPU, ic *InstrCall) {
	addr := cpu.PC
	rcond := uint8(ic.Arg[0])
	rs1 := uint8(ic.Arg[1])
	taken := evalRcond(rcond, int64(cpu.readReg(rs1)))
	if !taken {
		cpu.PC = addr + 8
		return
	}
	target := branchTarget(ic, addr)
	cpu.executeDelaySlotThen(addr, target)
}
