package flatmap

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for programmatic error handling.
var (
	ErrConversion            = errors.New("conversion failed")
	ErrInvalidKeyType        = errors.New("invalid map key type")
	ErrUnsupportedFormat     = errors.New("unsupported format")
	ErrUnsupportedEncoding   = errors.New("unsupported encoding")
	ErrUnsupportedSuffixMode = errors.New("unsupported suffix mode")
	ErrInvalidTemplate       = errors.New("invalid template")
)

// KeyTypeError is returned when a map in the value tree has a key that is
// neither a [String] nor a [Char]. It matches [ErrInvalidKeyType].
type KeyTypeError struct {
	// Path is the formatted path of the map holding the key. Empty at the root.
	Path string
	Key  Value
}

// Error implements the error interface.
func (e *KeyTypeError) Error() string {
	var b strings.Builder
	b.WriteString(ErrInvalidKeyType.Error())
	if e.Path != "" {
		b.WriteString(" at ")
		b.WriteString(e.Path)
	}
	fmt.Fprintf(&b, ": map keys must be String or Char, got %s", e.Key.Kind())
	return b.String()
}

// Is reports whether target is [ErrInvalidKeyType].
func (e *KeyTypeError) Is(target error) bool {
	return target == ErrInvalidKeyType
}

// ConversionError is returned when a source cannot be turned into a [Value].
// It matches [ErrConversion] and unwraps to the underlying cause, if any.
type ConversionError struct {
	// Path holds the field names and indices leading to the failure.
	Path   []string
	GoType string
	Detail string
	Cause  error
}

// Error implements the error interface.
func (e *ConversionError) Error() string {
	var b strings.Builder
	b.WriteString(ErrConversion.Error())
	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}
	if e.GoType != "" {
		b.WriteString(": Go type ")
		b.WriteString(e.GoType)
	}
	if e.Detail != "" {
		if e.GoType != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}
	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *ConversionError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is [ErrConversion].
func (e *ConversionError) Is(target error) bool {
	return target == ErrConversion
}
