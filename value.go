package flatmap

import (
	"bytes"
	"cmp"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Value is a node of a generic value tree. The set of implementations is
// closed: scalars ([Bool], [U8] .. [U64], [I8] .. [I64], [F32], [F64], [Char],
// [String], [Bytes], [Unit]) and the two composites [Seq] and [Map].
type Value interface {
	// Kind reports the variant.
	Kind() Kind
	// String renders the value as a single cell of text.
	String() string
	// Interface returns the equivalent native Go value.
	Interface() any

	isValue()
}

type (
	Bool   bool
	U8     uint8
	U16    uint16
	U32    uint32
	U64    uint64
	I8     int8
	I16    int16
	I32    int32
	I64    int64
	F32    float32
	F64    float64
	Char   rune
	String string
	Bytes  []byte
	Unit   struct{}
	Seq    []Value
)

func (Bool) Kind() Kind   { return KindBool }
func (U8) Kind() Kind     { return KindU8 }
func (U16) Kind() Kind    { return KindU16 }
func (U32) Kind() Kind    { return KindU32 }
func (U64) Kind() Kind    { return KindU64 }
func (I8) Kind() Kind     { return KindI8 }
func (I16) Kind() Kind    { return KindI16 }
func (I32) Kind() Kind    { return KindI32 }
func (I64) Kind() Kind    { return KindI64 }
func (F32) Kind() Kind    { return KindF32 }
func (F64) Kind() Kind    { return KindF64 }
func (Char) Kind() Kind   { return KindChar }
func (String) Kind() Kind { return KindString }
func (Bytes) Kind() Kind  { return KindBytes }
func (Unit) Kind() Kind   { return KindUnit }
func (Seq) Kind() Kind    { return KindSeq }

func (v Bool) String() string   { return strconv.FormatBool(bool(v)) }
func (v U8) String() string     { return strconv.FormatUint(uint64(v), 10) }
func (v U16) String() string    { return strconv.FormatUint(uint64(v), 10) }
func (v U32) String() string    { return strconv.FormatUint(uint64(v), 10) }
func (v U64) String() string    { return strconv.FormatUint(uint64(v), 10) }
func (v I8) String() string     { return strconv.FormatInt(int64(v), 10) }
func (v I16) String() string    { return strconv.FormatInt(int64(v), 10) }
func (v I32) String() string    { return strconv.FormatInt(int64(v), 10) }
func (v I64) String() string    { return strconv.FormatInt(int64(v), 10) }
func (v F32) String() string    { return strconv.FormatFloat(float64(v), 'g', -1, 32) }
func (v F64) String() string    { return strconv.FormatFloat(float64(v), 'g', -1, 64) }
func (v Char) String() string   { return string(v) }
func (v String) String() string { return string(v) }
func (v Bytes) String() string  { return base64.StdEncoding.EncodeToString(v) }
func (Unit) String() string     { return "" }

// String renders the sequence as JSON text.
func (v Seq) String() string { return compositeText(v) }

func (v Bool) Interface() any   { return bool(v) }
func (v U8) Interface() any     { return uint8(v) }
func (v U16) Interface() any    { return uint16(v) }
func (v U32) Interface() any    { return uint32(v) }
func (v U64) Interface() any    { return uint64(v) }
func (v I8) Interface() any     { return int8(v) }
func (v I16) Interface() any    { return int16(v) }
func (v I32) Interface() any    { return int32(v) }
func (v I64) Interface() any    { return int64(v) }
func (v F32) Interface() any    { return float32(v) }
func (v F64) Interface() any    { return float64(v) }
func (v Char) Interface() any   { return string(v) }
func (v String) Interface() any { return string(v) }
func (v Bytes) Interface() any  { return []byte(v) }
func (Unit) Interface() any     { return nil }

// Interface returns a []any of native values.
func (v Seq) Interface() any {
	out := make([]any, len(v))
	for i, e := range v {
		out[i] = native(e)
	}
	return out
}

func (Bool) isValue()   {}
func (U8) isValue()     {}
func (U16) isValue()    {}
func (U32) isValue()    {}
func (U64) isValue()    {}
func (I8) isValue()     {}
func (I16) isValue()    {}
func (I32) isValue()    {}
func (I64) isValue()    {}
func (F32) isValue()    {}
func (F64) isValue()    {}
func (Char) isValue()   {}
func (String) isValue() {}
func (Bytes) isValue()  {}
func (Unit) isValue()   {}
func (Seq) isValue()    {}

func compositeText(v Value) string {
	b, err := json.Marshal(v.Interface())
	if err != nil {
		return fmt.Sprint(v.Interface())
	}
	return string(b)
}

// Compare returns -1, 0 or +1 depending on whether a sorts before, equal to,
// or after b. Values order first by kind, then by payload.
func Compare(a, b Value) int {
	if c := cmp.Compare(a.Kind(), b.Kind()); c != 0 {
		return c
	}
	switch x := a.(type) {
	case Bool:
		y := b.(Bool)
		switch {
		case x == y:
			return 0
		case !bool(x):
			return -1
		default:
			return 1
		}
	case U8:
		return cmp.Compare(x, b.(U8))
	case U16:
		return cmp.Compare(x, b.(U16))
	case U32:
		return cmp.Compare(x, b.(U32))
	case U64:
		return cmp.Compare(x, b.(U64))
	case I8:
		return cmp.Compare(x, b.(I8))
	case I16:
		return cmp.Compare(x, b.(I16))
	case I32:
		return cmp.Compare(x, b.(I32))
	case I64:
		return cmp.Compare(x, b.(I64))
	case F32:
		return cmp.Compare(x, b.(F32))
	case F64:
		return cmp.Compare(x, b.(F64))
	case Char:
		return cmp.Compare(x, b.(Char))
	case String:
		return strings.Compare(string(x), string(b.(String)))
	case Bytes:
		return bytes.Compare(x, b.(Bytes))
	case Unit:
		return 0
	case Seq:
		y := b.(Seq)
		for i := 0; i < len(x) && i < len(y); i++ {
			if c := Compare(x[i], y[i]); c != 0 {
				return c
			}
		}
		return cmp.Compare(len(x), len(y))
	case Map:
		y := b.(Map)
		for i := 0; i < len(x.entries) && i < len(y.entries); i++ {
			if c := Compare(x.entries[i].Key, y.entries[i].Key); c != 0 {
				return c
			}
			if c := Compare(x.entries[i].Value, y.entries[i].Value); c != 0 {
				return c
			}
		}
		return cmp.Compare(len(x.entries), len(y.entries))
	default:
		panic(fmt.Sprintf("flatmap: unknown value type %T", a))
	}
}

// Equal reports whether a and b hold the same kind and payload.
func Equal(a, b Value) bool { return Compare(a, b) == 0 }
