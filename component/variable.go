// Package component implements the polymorphic, clonable, serializable
// component tree that models emulated hardware.
package component

import (
	"fmt"
	"strconv"
)

// Kind identifies which member of the Variable tagged union is live.
type Kind int

const (
	KindString Kind = iota
	KindUint8
	KindUint16
	KindUint32
	KindUint64
	KindInt8
	KindInt16
	KindInt32
	KindInt64
)

// Variable binds a name to a typed value stored in an arbitrary Go field,
// the way DummyComponentWithAllVariableTypes binds each AddVariable call to
// one of its own struct fields.
type Variable struct {
	name string
	kind Kind

	strPtr *string
	u8Ptr  *uint8
	u16Ptr *uint16
	u32Ptr *uint32
	u64Ptr *uint64
	i8Ptr  *int8
	i16Ptr *int16
	i32Ptr *int32
	i64Ptr *int64
}

func (v *Variable) Name() string { return v.name }
func (v *Variable) Kind() Kind   { return v.kind }

func newVariable(name string, kind Kind) Variable {
	return Variable{name: name, kind: kind}
}

// BindString binds name to a live string field.
func BindString(name string, p *string) Variable {
	vr := newVariable(name, KindString)
	vr.strPtr = p
	return vr
}

func BindUint8(name string, p *uint8) Variable {
	vr := newVariable(name, KindUint8)
	vr.u8Ptr = p
	return vr
}

func BindUint16(name string, p *uint16) Variable {
	vr := newVariable(name, KindUint16)
	vr.u16Ptr = p
	return vr
}

func BindUint32(name string, p *uint32) Variable {
	vr := newVariable(name, KindUint32)
	vr.u32Ptr = p
	return vr
}

func BindUint64(name string, p *uint64) Variable {
	vr := newVariable(name, KindUint64)
	vr.u64Ptr = p
	return vr
}

func BindInt8(name string, p *int8) Variable {
	vr := newVariable(name, KindInt8)
	vr.i8Ptr = p
	return vr
}

func BindInt16(name string, p *int16) Variable {
	vr := newVariable(name, KindInt16)
	vr.i16Ptr = p
	return vr
}

func BindInt32(name string, p *int32) Variable {
	vr := newVariable(name, KindInt32)
	vr.i32Ptr = p
	return vr
}

func BindInt64(name string, p *int64) Variable {
	vr := newVariable(name, KindInt64)
	vr.i64Ptr = p
	return vr
}

// String returns the unquoted display form of the current value.
func (v *Variable) String() string {
	switch v.kind {
	case KindString:
		return *v.strPtr
	case KindUint8:
		return strconv.FormatUint(uint64(*v.u8Ptr), 10)
	case KindUint16:
		return strconv.FormatUint(uint64(*v.u16Ptr), 10)
	case KindUint32:
		return strconv.FormatUint(uint64(*v.u32Ptr), 10)
	case KindUint64:
		return strconv.FormatUint(*v.u64Ptr, 10)
	case KindInt8:
		return strconv.FormatInt(int64(*v.i8Ptr), 10)
	case KindInt16:
		return strconv.FormatInt(int64(*v.i16Ptr), 10)
	case KindInt32:
		return strconv.FormatInt(int64(*v.i32Ptr), 10)
	case KindInt64:
		return strconv.FormatInt(*v.i64Ptr, 10)
	default:
		return ""
	}
}

// Literal returns the quoted, typed round-trip form used by serialization
// and SetVariableValue: strings are double-quoted, everything else is the
// same text as String.
func (v *Variable) Literal() string {
	if v.kind == KindString {
		return strconv.Quote(*v.strPtr)
	}
	return v.String()
}

// SetLiteral parses text in the same form Literal produces and stores it.
func (v *Variable) SetLiteral(text string) error {
	if v.kind == KindString {
		s, err := strconv.Unquote(text)
		if err != nil {
			// Tolerate bare unquoted strings too.
			s = text
		}
		*v.strPtr = s
		return nil
	}
	return v.SetFromString(text)
}

// SetFromString parses an unquoted textual value per the variable's kind.
func (v *Variable) SetFromString(text string) error {
	switch v.kind {
	case KindString:
		*v.strPtr = text
		return nil
	case KindUint8:
		n, err := strconv.ParseUint(text, 0, 8)
		if err != nil {
			return fmt.Errorf("variable %q: %w", v.name, err)
		}
		*v.u8Ptr = uint8(n)
	case KindUint16:
		n, err := strconv.ParseUint(text, 0, 16)
		if err != nil {
			return fmt.Errorf("variable %q: %w", v.name, err)
		}
		*v.u16Ptr = uint16(n)
	case KindUint32:
		n, err := strconv.ParseUint(text, 0, 32)
		if err != nil {
			return fmt.Errorf("variable %q: %w", v.name, err)
		}
		*v.u32Ptr = uint32(n)
	case KindUint64:
		n, err := strconv.ParseUint(text, 0, 64)
		if err != nil {
			return fmt.Errorf("variable %q: %w", v.name, err)
		}
		*v.u64Ptr = n
	case KindInt8:
		n, err := strconv.ParseInt(text, 0, 8)
		if err != nil {
			return fmt.Errorf("variable %q: %w", v.name, err)
		}
		*v.i8Ptr = int8(n)
	case KindInt16:
		n, err := strconv.ParseInt(text, 0, 16)
		if err != nil {
			return fmt.Errorf("variable %q: %w", v.name, err)
		}
		*v.i16Ptr = int16(n)
	case KindInt32:
		n, err := strconv.ParseInt(text, 0, 32)
		if err != nil {
			return fmt.Errorf("variable %q: %w", v.name, err)
		}
		*v.i32Ptr = int32(n)
	case KindInt64:
		n, err := strconv.ParseInt(text, 0, 64)
		if err != nil {
			return fmt.Errorf("variable %q: %w", v.name, err)
		}
		*v.i64Ptr = n
	default:
		return fmt.Errorf("variable %q: unknown kind", v.name)
	}
	return nil
}
