package flatmap

import (
	"encoding"
	"reflect"
	"strconv"
	"strings"
)

// Valuer is implemented by types that convert themselves into a [Value].
// An error from FlatValue aborts the conversion.
type Valuer interface {
	FlatValue() (Value, error)
}

var (
	valueType         = reflect.TypeFor[Value]()
	valuerType        = reflect.TypeFor[Valuer]()
	textMarshalerType = reflect.TypeFor[encoding.TextMarshaler]()
)

// ToValue converts src into a value tree.
//
// Structs become maps keyed by field name, honoring `flat` and then `json`
// tags ("-" skips a field, "omitempty" skips zero values). Untagged embedded
// structs are inlined. Slices and arrays become [Seq], except byte slices and
// arrays which become [Bytes]. Nil pointers and interfaces become [Unit].
// Types implementing [Valuer] or [encoding.TextMarshaler] convert themselves.
// Map keys are converted like any other value; keys that are not strings are
// kept and rejected later by the [Flattener].
//
// Complex numbers, channels, functions and unsafe pointers cannot be
// converted and yield a [*ConversionError].
func ToValue(src any) (Value, error) {
	if src == nil {
		return Unit{}, nil
	}
	if v, ok := src.(Value); ok {
		return v, nil
	}
	return convert(reflect.ValueOf(src), nil)
}

func convert(rv reflect.Value, path []string) (Value, error) {
	if !rv.IsValid() {
		return Unit{}, nil
	}

	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return Unit{}, nil
		}
		if v, ok, err := convertSelf(rv, path); ok {
			return v, err
		}
		rv = rv.Elem()
	}
	if v, ok, err := convertSelf(rv, path); ok {
		return v, err
	}

	switch rv.Kind() {
	case reflect.Bool:
		return Bool(rv.Bool()), nil
	case reflect.Int8:
		return I8(rv.Int()), nil
	case reflect.Int16:
		return I16(rv.Int()), nil
	case reflect.Int32:
		return I32(rv.Int()), nil
	case reflect.Int, reflect.Int64:
		return I64(rv.Int()), nil
	case reflect.Uint8:
		return U8(rv.Uint()), nil
	case reflect.Uint16:
		return U16(rv.Uint()), nil
	case reflect.Uint32:
		return U32(rv.Uint()), nil
	case reflect.Uint, reflect.Uint64, reflect.Uintptr:
		return U64(rv.Uint()), nil
	case reflect.Float32:
		return F32(rv.Float()), nil
	case reflect.Float64:
		return F64(rv.Float()), nil
	case reflect.String:
		return String(rv.String()), nil
	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return Bytes(rv.Bytes()), nil
		}
		return convertList(rv, path)
	case reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			b := make([]byte, rv.Len())
			reflect.Copy(reflect.ValueOf(b), rv)
			return Bytes(b), nil
		}
		return convertList(rv, path)
	case reflect.Map:
		return convertMap(rv, path)
	case reflect.Struct:
		entries, err := convertStruct(rv, path, nil)
		if err != nil {
			return nil, err
		}
		return NewMap(entries...), nil
	default:
		return nil, &ConversionError{
			Path:   path,
			GoType: rv.Type().String(),
			Detail: "unsupported kind " + rv.Kind().String(),
		}
	}
}

// convertSelf handles values that already are, or know how to become, a Value.
func convertSelf(rv reflect.Value, path []string) (Value, bool, error) {
	if !rv.CanInterface() {
		return nil, false, nil
	}
	t := rv.Type()
	if t.Kind() != reflect.Pointer && t.Kind() != reflect.Interface && rv.CanAddr() {
		if pt := reflect.PointerTo(t); !implementsSelf(t) && implementsSelf(pt) {
			rv, t = rv.Addr(), pt
		}
	}
	switch {
	case t.Implements(valueType) && t.Kind() != reflect.Interface:
		return rv.Interface().(Value), true, nil
	case t.Implements(valuerType):
		v, err := rv.Interface().(Valuer).FlatValue()
		if err != nil {
			return nil, true, &ConversionError{Path: path, GoType: t.String(), Cause: err}
		}
		if v == nil {
			v = Unit{}
		}
		return v, true, nil
	case t.Implements(textMarshalerType):
		text, err := rv.Interface().(encoding.TextMarshaler).MarshalText()
		if err != nil {
			return nil, true, &ConversionError{Path: path, GoType: t.String(), Cause: err}
		}
		return String(text), true, nil
	default:
		return nil, false, nil
	}
}

func convertList(rv reflect.Value, path []string) (Value, error) {
	out := make(Seq, rv.Len())
	for i := range rv.Len() {
		v, err := convert(rv.Index(i), append(path, strconv.Itoa(i)))
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func convertMap(rv reflect.Value, path []string) (Value, error) {
	entries := make([]Entry, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		k, err := convert(iter.Key(), path)
		if err != nil {
			return nil, err
		}
		v, err := convert(iter.Value(), append(path, k.String()))
		if err != nil {
			return nil, err
		}
		entries = append(entries, Entry{Key: k, Value: v})
	}
	return NewMap(entries...), nil
}

func convertStruct(rv reflect.Value, path []string, entries []Entry) ([]Entry, error) {
	t := rv.Type()
	for i := range t.NumField() {
		field := t.Field(i)
		name, omitempty, skip := fieldName(field)
		if skip {
			continue
		}
		fv := rv.Field(i)

		if field.Anonymous && name == "" {
			inner := fv
			if inner.Kind() == reflect.Pointer {
				if inner.IsNil() {
					continue
				}
				inner = inner.Elem()
			}
			if inner.Kind() == reflect.Struct && !implementsSelf(inner.Type()) {
				var err error
				entries, err = convertStruct(inner, path, entries)
				if err != nil {
					return nil, err
				}
				continue
			}
		}
		if !field.IsExported() {
			continue
		}
		if name == "" {
			name = field.Name
		}
		if omitempty && fv.IsZero() {
			continue
		}
		v, err := convert(fv, append(path, name))
		if err != nil {
			return nil, err
		}
		entries = append(entries, Entry{Key: String(name), Value: v})
	}
	return entries, nil
}

func implementsSelf(t reflect.Type) bool {
	return t.Implements(valueType) || t.Implements(valuerType) || t.Implements(textMarshalerType)
}

// fieldName reads the `flat` tag, falling back to the `json` tag.
func fieldName(f reflect.StructField) (name string, omitempty, skip bool) {
	tag, ok := f.Tag.Lookup("flat")
	if !ok {
		tag, ok = f.Tag.Lookup("json")
	}
	if !ok {
		return "", false, false
	}
	if tag == "-" {
		return "", false, true
	}
	name, opts, _ := strings.Cut(tag, ",")
	for opt := range strings.SplitSeq(opts, ",") {
		if opt == "omitempty" {
			omitempty = true
		}
	}
	return name, omitempty, false
}
