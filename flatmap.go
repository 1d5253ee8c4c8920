package flatmap

import (
	"bytes"
	"encoding/json"
	"iter"
	"maps"
	"math"
	"slices"

	"gopkg.in/yaml.v3"
)

// FlatMap maps a constructed key to a scalar leaf value. Iterate it with
// [FlatMap.All] or [FlatMap.Keys] to get the natural key order.
type FlatMap map[string]Value

// Len returns the number of entries.
func (m FlatMap) Len() int { return len(m) }

// Keys returns the keys in natural string order.
func (m FlatMap) Keys() []string {
	return slices.Sorted(maps.Keys(m))
}

// All iterates the entries in natural key order.
func (m FlatMap) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		for _, k := range m.Keys() {
			if !yield(k, m[k]) {
				return
			}
		}
	}
}

// Native returns a map of native Go values.
func (m FlatMap) Native() map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = native(v)
	}
	return out
}

// MarshalJSON encodes the map as a JSON object with keys in natural order.
// NaN and infinite floats are written as null.
func (m FlatMap) MarshalJSON() ([]byte, error) {
	if m == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(jsonNative(m[k]))
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML encodes the map as a YAML mapping with keys in natural order.
func (m FlatMap) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, k := range m.Keys() {
		var kn, vn yaml.Node
		if err := kn.Encode(k); err != nil {
			return nil, err
		}
		if err := vn.Encode(native(m[k])); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, &kn, &vn)
	}
	return node, nil
}

// Columns returns the union of the keys of rows in natural order.
func Columns(rows ...FlatMap) []string {
	seen := make(map[string]struct{})
	for _, row := range rows {
		for k := range row {
			seen[k] = struct{}{}
		}
	}
	return slices.Sorted(maps.Keys(seen))
}

func native(v Value) any {
	if v == nil {
		return nil
	}
	return v.Interface()
}

// jsonNative is native with non-finite floats mapped to nil, since JSON has no
// literal for them.
func jsonNative(v Value) any {
	var f float64
	switch x := v.(type) {
	case F32:
		f = float64(x)
	case F64:
		f = float64(x)
	default:
		return native(v)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return v.Interface()
}
