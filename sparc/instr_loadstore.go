package sparc

import "github.com/rcornwell/dyntrans-sparc/bus"

// loadStoreDispatch is the 4-D table spec.md §4.6 names, indexed by
// use_imm*16 + store*8 + size*2 + signedness. Built once at package init
// from the generator closures below rather than by hand-naming 32
// functions — the shape of each handler is entirely determined by its four
// axis values.
var loadStoreDispatch [32]Handler

func init() {
	for useImmBit := 0; useImmBit < 2; useImmBit++ {
		useImm := useImmBit == 1
		for size := 0; size < 4; size++ {
			for signedBit := 0; signedBit < 2; signedBit++ {
				signed := signedBit == 1
				idx := useImmBit*16 + 0*8 + size*2 + signedBit
				loadStoreDispatch[idx] = makeLoad(!useImm, size, signed)
			}
			// stores: signedness axis unused (decode always passes 0)
			idxStore := useImmBit*16 + 1*8 + size*2 + 0
			loadStoreDispatch[idxStore] = makeStore(!useImm, size)
		}
	}
}

func effectiveAddr(cpu *CPU, ic *InstrCall, reg bool) (addr uint64, rs1 uint64, rd uint8) {
	base := cpu.readReg(uint8(ic.Arg[0]))
	var off uint64
	if reg {
		off = cpu.readReg(uint8(ic.Arg[1]))
	} else {
		off = ic.Arg[1]
	}
	return base + off, base, uint8(ic.Arg[2])
}

func makeLoad(reg bool, size int, signed bool) Handler {
	return func(cpu *CPU, ic *InstrCall) {
		instrAddr := cpu.PC
		ea, _, rd := effectiveAddr(cpu, ic, reg)
		if cpu.membus == nil {
			cpu.faultDecode(errNoBus)
			return
		}
		cpu.membus.AddressSelect(ea)
		var value uint64
		var ok bool
		switch size {
		case lsSizeByte:
			var v uint8
			v, ok = cpu.membus.ReadData8()
			if signed {
				value = uint64(int64(int8(v)))
			} else {
				value = uint64(v)
			}
		case lsSizeHalf:
			var v uint16
			v, ok = cpu.membus.ReadData16(bus.BigEndian)
			if signed {
				value = uint64(int64(int16(v)))
			} else {
				value = uint64(v)
			}
		case lsSizeWord:
			var v uint32
			v, ok = cpu.membus.ReadData32(bus.BigEndian)
			if signed {
				value = uint64(int64(int32(v)))
			} else {
				value = uint64(v)
			}
		case lsSizeDouble:
			value, ok = cpu.membus.ReadData64(bus.BigEndian)
		}
		if !ok {
			cpu.faultDecode(errLoadFault)
			return
		}
		cpu.writeReg(rd, value)
		cpu.PC = instrAddr + 4
	}
}

func makeStore(reg bool, size int) Handler {
	return func(cpu *CPU, ic *InstrCall) {
		instrAddr := cpu.PC
		ea, _, rd := effectiveAddr(cpu, ic, reg)
		if cpu.membus == nil {
			cpu.faultDecode(errNoBus)
			return
		}
		value := cpu.readReg(rd)
		cpu.membus.AddressSelect(ea)
		var ok bool
		switch size {
		case lsSizeByte:
			ok = cpu.membus.WriteData8(uint8(value))
		case lsSizeHalf:
			ok = cpu.membus.WriteData16(uint16(value), bus.BigEndian)
		case lsSizeWord:
			ok = cpu.membus.WriteData32(uint32(value), bus.BigEndian)
		case lsSizeDouble:
			ok = cpu.membus.WriteData64(value, bus.BigEndian)
		}
		if !ok {
			cpu.faultDecode(errStoreFault)
			return
		}
		cpu.trans.Invalidate(ea)
		// Dispatch must not continue in a page that was just dropped.
		if cpu.curICPage != nil && cpu.curICPage.BaseAddr == cpu.trans.pageKey(ea) {
			cpu.curICPage = nil
		}
		cpu.PC = instrAddr + 4
	}
}
