// Package bus implements the address/data bus capability interface that
// exposes memory-mapped access across the component tree.
package bus

// Endianness selects the byte order a multi-byte ReadData/WriteData call
// uses, since a bus may carry devices of either byte order regardless of
// the host's own.
type Endianness int

const (
	LittleEndian Endianness = iota
	BigEndian
)

// AddressDataBus is implemented by any component capable of acting as a
// memory-mapped bus: AddressSelect latches the address for the access that
// follows, and the typed Read/Write calls perform it. Grounded on
// MainbusComponent.cc's AddressDataBus interface.
type AddressDataBus interface {
	AddressSelect(addr uint64)

	ReadData8() (data uint8, ok bool)
	ReadData16(e Endianness) (data uint16, ok bool)
	ReadData32(e Endianness) (data uint32, ok bool)
	ReadData64(e Endianness) (data uint64, ok bool)

	WriteData8(data uint8) bool
	WriteData16(data uint16, e Endianness) bool
	WriteData32(data uint32, e Endianness) bool
	WriteData64(data uint64, e Endianness) bool
}
