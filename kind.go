package flatmap

//go:generate go tool stringer -type=Kind -trimprefix=Kind

// Kind identifies the variant of a [Value].
type Kind uint8

const (
	KindUnit Kind = iota
	KindBool
	KindU8
	KindU16
	KindU32
	KindU64
	KindI8
	KindI16
	KindI32
	KindI64
	KindF32
	KindF64
	KindChar
	KindString
	KindBytes
	KindSeq
	KindMap
)

// IsUnsigned reports whether k is an unsigned integer kind of any width.
func (k Kind) IsUnsigned() bool { return k >= KindU8 && k <= KindU64 }

// IsSigned reports whether k is a signed integer kind of any width.
func (k Kind) IsSigned() bool { return k >= KindI8 && k <= KindI64 }

// IsFloat reports whether k is a floating point kind.
func (k Kind) IsFloat() bool { return k == KindF32 || k == KindF64 }

// IsNumeric reports whether k is any integer or floating point kind.
func (k Kind) IsNumeric() bool { return k >= KindU8 && k <= KindF64 }

// IsComposite reports whether k is a sequence or a map.
func (k Kind) IsComposite() bool { return k == KindSeq || k == KindMap }
