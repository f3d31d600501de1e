package bus

import "github.com/rcornwell/dyntrans-sparc/component"

// Mainbus is a no-op bus skeleton: it implements AddressDataBus but every
// access is a stub, the way MainbusComponent.cc's bus methods all have
// empty bodies — it exists purely so components downstream of it can be
// wired to *something* implementing AddressDataBus before a populated bus
// (e.g. RAM) is attached.
type Mainbus struct {
	addr uint64
}

func init() {
	component.RegisterComponentClass("mainbus", func(map[string]string) (component.ClassImpl, error) {
		return &Mainbus{}, nil
	})
}

func (m *Mainbus) ClassName() string               { return "mainbus" }
func (m *Mainbus) Variables() []component.Variable { return nil }

func (m *Mainbus) GetAttribute(name string) string {
	switch name {
	case "stable":
		return "yes"
	case "description":
		return "A generic main bus."
	}
	return ""
}

func (m *Mainbus) AddressSelect(addr uint64) { m.addr = addr }

func (m *Mainbus) ReadData8() (uint8, bool)             { return 0, true }
func (m *Mainbus) ReadData16(Endianness) (uint16, bool) { return 0, true }
func (m *Mainbus) ReadData32(Endianness) (uint32, bool) { return 0, true }
func (m *Mainbus) ReadData64(Endianness) (uint64, bool) { return 0, true }
func (m *Mainbus) WriteData8(uint8) bool                { return true }
func (m *Mainbus) WriteData16(uint16, Endianness) bool  { return true }
func (m *Mainbus) WriteData32(uint32, Endianness) bool  { return true }
func (m *Mainbus) WriteData64(uint64, Endianness) bool  { return true }

var _ AddressDataBus = (*Mainbus)(nil)
