package flatmap

import (
	"iter"
	"slices"
)

// Entry is a single key/value pair of a [Map].
type Entry struct {
	Key   Value
	Value Value
}

// Map is a keyed collection of values. Keys are unique and iteration follows
// the [Compare] order of the keys, regardless of the order entries were added.
// The zero Map is empty and ready to use.
type Map struct {
	entries []Entry
}

// NewMap builds a Map from entries. When two entries share a key, the later
// one wins. Nil keys and values are stored as [Unit].
func NewMap(entries ...Entry) Map {
	sorted := make([]Entry, len(entries))
	for i, e := range entries {
		sorted[i] = Entry{Key: orUnit(e.Key), Value: orUnit(e.Value)}
	}
	// Stable keeps the input order among equal keys so the last one survives below.
	slices.SortStableFunc(sorted, func(a, b Entry) int { return Compare(a.Key, b.Key) })
	out := sorted[:0]
	for _, e := range sorted {
		if n := len(out); n > 0 && Compare(out[n-1].Key, e.Key) == 0 {
			out[n-1] = e
			continue
		}
		out = append(out, e)
	}
	return Map{entries: out}
}

// StringMap builds a Map keyed by [String] values.
func StringMap(m map[string]Value) Map {
	entries := make([]Entry, 0, len(m))
	for k, v := range m {
		entries = append(entries, Entry{Key: String(k), Value: v})
	}
	return NewMap(entries...)
}

func (Map) Kind() Kind { return KindMap }
func (Map) isValue()   {}

// String renders the map as JSON text.
func (m Map) String() string { return compositeText(m) }

// Interface returns a map[string]any when every key is a string or a
// character, and a map[any]any otherwise.
func (m Map) Interface() any {
	if m.stringKeyed() {
		out := make(map[string]any, len(m.entries))
		for _, e := range m.entries {
			out[e.Key.String()] = e.Value.Interface()
		}
		return out
	}
	out := make(map[any]any, len(m.entries))
	for _, e := range m.entries {
		out[hashableKey(e.Key)] = e.Value.Interface()
	}
	return out
}

func hashableKey(v Value) any {
	switch v.Kind() {
	case KindBytes, KindSeq, KindMap:
		return v.String()
	default:
		return v.Interface()
	}
}

func (m Map) stringKeyed() bool {
	for _, e := range m.entries {
		if k := e.Key.Kind(); k != KindString && k != KindChar {
			return false
		}
	}
	return true
}

// Len returns the number of entries.
func (m Map) Len() int { return len(m.entries) }

// Get returns the value stored under key.
func (m Map) Get(key Value) (Value, bool) {
	i, ok := slices.BinarySearchFunc(m.entries, key, func(e Entry, k Value) int { return Compare(e.Key, k) })
	if !ok {
		return nil, false
	}
	return m.entries[i].Value, true
}

// All iterates the entries in key order.
func (m Map) All() iter.Seq2[Value, Value] {
	return func(yield func(Value, Value) bool) {
		for _, e := range m.entries {
			if !yield(e.Key, e.Value) {
				return
			}
		}
	}
}

// Entries returns a copy of the entries in key order.
func (m Map) Entries() []Entry {
	return slices.Clone(m.entries)
}

func orUnit(v Value) Value {
	if v == nil {
		return Unit{}
	}
	return v
}
