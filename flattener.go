package flatmap

import (
	"fmt"
	"strconv"

	"go.uber.org/zap"
)

// SuffixMode controls whether leaf keys carry a token naming their scalar kind.
type SuffixMode int

const (
	SuffixOff SuffixMode = iota
	SuffixOn
)

// String returns "off" or "on".
func (m SuffixMode) String() string {
	if m == SuffixOn {
		return "on"
	}
	return "off"
}

// ParseSuffixMode parses "off" or "on".
func ParseSuffixMode(s string) (SuffixMode, error) {
	switch s {
	case "off":
		return SuffixOff, nil
	case "on":
		return SuffixOn, nil
	default:
		return SuffixOff, fmt.Errorf("%w: %q", ErrUnsupportedSuffixMode, s)
	}
}

// Suffix tokens appended to leaf keys when the suffix mode is on. The
// unsigned/signed naming follows the field naming convention of the log
// platform these keys are indexed by and must not be swapped.
const (
	SuffixBool     = "bool"
	SuffixUnsigned = "double"
	SuffixSigned   = "long"
	SuffixFloat    = "float"
)

type options struct {
	prefix string
	suffix SuffixMode
	log    *zap.Logger
}

// Option configures a [Flattener].
type Option interface {
	applyOption(*options)
}

type optionFunc func(*options)

func (f optionFunc) applyOption(o *options) {
	f(o)
}

// WithPrefix sets the string prepended to the first path segment.
func WithPrefix(prefix string) Option {
	return optionFunc(func(o *options) {
		o.prefix = prefix
	})
}

// WithSuffix sets the suffix mode. Default: [SuffixOff].
func WithSuffix(m SuffixMode) Option {
	return optionFunc(func(o *options) {
		o.suffix = m
	})
}

// WithLogger sets the logger used by the Flattener instead of the package
// logger.
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(o *options) {
		o.log = l
	})
}

// Flattener turns value trees into [FlatMap]s. Its configuration is fixed at
// construction, so one Flattener may be shared by concurrent callers.
type Flattener struct {
	separator string
	prefix    string
	suffix    SuffixMode
	log       *zap.Logger
}

// New returns a Flattener joining path segments with separator.
func New(separator string, opts ...Option) *Flattener {
	o := &options{}
	for _, opt := range opts {
		opt.applyOption(o)
	}
	if o.log == nil {
		o.log = Logger()
	}
	return &Flattener{
		separator: separator,
		prefix:    o.prefix,
		suffix:    o.suffix,
		log:       o.log,
	}
}

// Separator returns the configured key separator.
func (f *Flattener) Separator() string { return f.separator }

// Prefix returns the configured root prefix.
func (f *Flattener) Prefix() string { return f.prefix }

// SuffixMode returns the configured suffix mode.
func (f *Flattener) SuffixMode() SuffixMode { return f.suffix }

// Flatten converts src with [ToValue] and flattens the result. Conversion
// errors are returned as is and nothing is flattened.
func (f *Flattener) Flatten(src any) (FlatMap, error) {
	v, err := ToValue(src)
	if err != nil {
		return nil, err
	}
	return f.FlattenValue(v)
}

// FlattenValue flattens v into a new FlatMap holding one entry per scalar
// leaf. It fails with a [*KeyTypeError] when a map key is neither a string
// nor a character; no partial result is returned in that case. A nil Value,
// at the root or inside a Seq or Map, is flattened as [Unit].
func (f *Flattener) FlattenValue(v Value) (FlatMap, error) {
	if v == nil {
		v = Unit{}
	}
	out := make(FlatMap)
	if err := f.disassemble(out, "", "", v); err != nil {
		f.log.Debug("flatten rejected", zap.Error(err))
		return nil, err
	}
	f.log.Debug("flattened value",
		zap.Stringer("root", v.Kind()),
		zap.Int("leaves", len(out)),
		zap.String("prefix", f.prefix),
		zap.Stringer("suffix", f.suffix),
	)
	return out, nil
}

// Flatten flattens src using separator between path segments and prefix in
// front of the first one. An empty prefix means no prefix.
//
//	m, err := flatmap.Flatten("_", "_", record)
func Flatten(separator, prefix string, src any, opts ...Option) (FlatMap, error) {
	opts = append([]Option{WithPrefix(prefix)}, opts...)
	return New(separator, opts...).Flatten(src)
}

func (f *Flattener) disassemble(out FlatMap, xpath, key string, v Value) error {
	if v == nil {
		v = Unit{}
	}
	switch x := v.(type) {
	case Map:
		path := f.formatKey(xpath, key, v)
		for k, child := range x.All() {
			var sub string
			switch kk := k.(type) {
			case String:
				sub = string(kk)
			case Char:
				sub = string(kk)
			default:
				return &KeyTypeError{Path: path, Key: k}
			}
			if err := f.disassemble(out, path, sub, child); err != nil {
				return err
			}
		}
	case Seq:
		path := f.formatKey(xpath, key, v)
		for i, child := range x {
			if err := f.disassemble(out, path, strconv.Itoa(i), child); err != nil {
				return err
			}
		}
	default:
		out[f.formatKey(xpath, key, v)] = v
	}
	return nil
}

// formatKey builds the path for key below xpath. An empty key yields the
// empty path, which makes the next level apply the prefix.
func (f *Flattener) formatKey(xpath, key string, v Value) string {
	switch {
	case key == "":
		return ""
	case xpath == "":
		return f.prefix + key + f.suffixFor(v)
	default:
		return xpath + f.separator + key + f.suffixFor(v)
	}
}

func (f *Flattener) suffixFor(v Value) string {
	if f.suffix != SuffixOn {
		return ""
	}
	k := v.Kind()
	switch {
	case k == KindBool:
		return f.separator + SuffixBool
	case k.IsUnsigned():
		return f.separator + SuffixUnsigned
	case k.IsSigned():
		return f.separator + SuffixSigned
	case k.IsFloat():
		return f.separator + SuffixFloat
	default:
		return ""
	}
}
