package component

// Dummy is a component class with no behavior of its own and an optional
// set of bound variables, used to exercise the tree's plumbing the way the
// original's DummyComponent and DummyComponentWithAllVariableTypes exercise
// AddChild/RemoveChild/Clone/Checksum/path lookup in its own unit tests.
type Dummy struct {
	class string

	Str string
	U8  uint8
	U16 uint16
	U32 uint32
	U64 uint64
	I8  int8
	I16 int16
	I32 int32
	I64 int64
}

// NewDummy returns a Constructor usable with RegisterComponentClass that
// always builds a Dummy of the given class name (e.g. "dummy", "pcibus",
// "machine") regardless of arguments.
func NewDummy(class string) Constructor {
	return func(map[string]string) (ClassImpl, error) {
		return &Dummy{class: class}, nil
	}
}

func (d *Dummy) ClassName() string { return d.class }

func (d *Dummy) Variables() []Variable {
	return []Variable{
		BindString("str", &d.Str),
		BindUint8("u8", &d.U8),
		BindUint16("u16", &d.U16),
		BindUint32("u32", &d.U32),
		BindUint64("u64", &d.U64),
		BindInt8("i8", &d.I8),
		BindInt16("i16", &d.I16),
		BindInt32("i32", &d.I32),
		BindInt64("i64", &d.I64),
	}
}
