package bus

import (
	"encoding/binary"

	"github.com/rcornwell/dyntrans-sparc/component"
)

// RAM is a populated bus device backing a byte slice sized by its "size"
// constructor argument. Unlike emu/memory's single process-wide global
// array, each RAM is its own component instance with its own storage, so
// distinct machines built by the factory don't alias memory and Clone
// produces a RAM of the same size with its own storage. The byte contents
// are not copied: a clone's memory starts zeroed.
type RAM struct {
	SizeBytes uint32
	mem       []byte
	addr      uint64
}

func init() {
	component.RegisterComponentClass("ram", func(args map[string]string) (component.ClassImpl, error) {
		size := uint32(64 * 1024 * 1024)
		if s, ok := args["size"]; ok {
			v := component.BindUint32("size", &size)
			if err := v.SetFromString(s); err != nil {
				return nil, err
			}
		}
		r := &RAM{SizeBytes: size}
		r.mem = make([]byte, size)
		return r, nil
	})
}

func (r *RAM) ClassName() string { return "ram" }

func (r *RAM) Variables() []component.Variable {
	return []component.Variable{component.BindUint32("size", &r.SizeBytes)}
}

// AfterRestore resizes mem to match SizeBytes once a clone's variables have
// been restored, since SizeBytes alone (not the byte contents) is the part
// of RAM's state tracked as a Variable.
func (r *RAM) AfterRestore() {
	if uint32(len(r.mem)) != r.SizeBytes {
		r.mem = make([]byte, r.SizeBytes)
	}
}

func (r *RAM) GetAttribute(name string) string {
	if name == "description" {
		return "A block of byte-addressable RAM."
	}
	return ""
}

func (r *RAM) AddressSelect(addr uint64) { r.addr = addr }

func (r *RAM) inRange(n uint64) bool {
	return r.addr+n <= uint64(len(r.mem))
}

func (r *RAM) ReadData8() (uint8, bool) {
	if !r.inRange(1) {
		return 0, false
	}
	return r.mem[r.addr], true
}

func (r *RAM) ReadData16(e Endianness) (uint16, bool) {
	if !r.inRange(2) {
		return 0, false
	}
	b := r.mem[r.addr : r.addr+2]
	if e == BigEndian {
		return binary.BigEndian.Uint16(b), true
	}
	return binary.LittleEndian.Uint16(b), true
}

func (r *RAM) ReadData32(e Endianness) (uint32, bool) {
	if !r.inRange(4) {
		return 0, false
	}
	b := r.mem[r.addr : r.addr+4]
	if e == BigEndian {
		return binary.BigEndian.Uint32(b), true
	}
	return binary.LittleEndian.Uint32(b), true
}

func (r *RAM) ReadData64(e Endianness) (uint64, bool) {
	if !r.inRange(8) {
		return 0, false
	}
	b := r.mem[r.addr : r.addr+8]
	if e == BigEndian {
		return binary.BigEndian.Uint64(b), true
	}
	return binary.LittleEndian.Uint64(b), true
}

func (r *RAM) WriteData8(data uint8) bool {
	if !r.inRange(1) {
		return false
	}
	r.mem[r.addr] = data
	return true
}

func (r *RAM) WriteData16(data uint16, e Endianness) bool {
	if !r.inRange(2) {
		return false
	}
	b := r.mem[r.addr : r.addr+2]
	if e == BigEndian {
		binary.BigEndian.PutUint16(b, data)
	} else {
		binary.LittleEndian.PutUint16(b, data)
	}
	return true
}

func (r *RAM) WriteData32(data uint32, e Endianness) bool {
	if !r.inRange(4) {
		return false
	}
	b := r.mem[r.addr : r.addr+4]
	if e == BigEndian {
		binary.BigEndian.PutUint32(b, data)
	} else {
		binary.LittleEndian.PutUint32(b, data)
	}
	return true
}

func (r *RAM) WriteData64(data uint64, e Endianness) bool {
	if !r.inRange(8) {
		return false
	}
	b := r.mem[r.addr : r.addr+8]
	if e == BigEndian {
		binary.BigEndian.PutUint64(b, data)
	} else {
		binary.LittleEndian.PutUint64(b, data)
	}
	return true
}

var _ AddressDataBus = (*RAM)(nil)
