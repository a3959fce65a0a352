package pipeline

import (
	"fmt"
	"strings"
)

// Value is a shape-tagged value flowing between chain steps.
// The shape determines which typed field is populated.
type Value struct {
	shape   Shape
	text    string
	lines   []string
	mapping *Map
	scalar  any // populated when shape == Any
}

// TextValue wraps a string as a Text value.
func TextValue(s string) Value {
	return Value{shape: Text, text: s}
}

// LinesValue wraps a slice of strings as a Lines value.
// The slice is not copied; callers must not mutate it afterwards.
func LinesValue(lines []string) Value {
	return Value{shape: Lines, lines: lines}
}

// MapValue wraps an ordered Map as a Mapping value.
func MapValue(m *Map) Value {
	if m == nil {
		m = NewMap()
	}
	return Value{shape: Mapping, mapping: m}
}

// AnyValue wraps an arbitrary scalar as an Any value.
func AnyValue(v any) Value {
	return Value{shape: Any, scalar: v}
}

// EmptyValue returns the empty sentinel for a shape: empty Text, empty
// Lines, empty Mapping, or empty Text for Any. The collecting error
// policy substitutes these for a failed step's output.
func EmptyValue(shape Shape) Value {
	switch shape {
	case Lines:
		return LinesValue(nil)
	case Mapping:
		return MapValue(NewMap())
	default:
		return TextValue("")
	}
}

// Shape returns the value's shape tag.
func (v Value) Shape() Shape { return v.shape }

// Text returns the underlying string. Valid only for Text values.
func (v Value) Text() string { return v.text }

// Lines returns the underlying line slice. Valid only for Lines values.
// Callers must not mutate the returned slice.
func (v Value) Lines() []string { return v.lines }

// Map returns the underlying ordered map. Valid only for Mapping values.
func (v Value) Map() *Map { return v.mapping }

// Scalar returns the underlying untyped value. Valid only for Any values.
func (v Value) Scalar() any { return v.scalar }

// Raw returns the value without its shape tag: string for Text,
// []string for Lines, *Map for Mapping, the wrapped scalar for Any.
func (v Value) Raw() any {
	switch v.shape {
	case Text:
		return v.text
	case Lines:
		return v.lines
	case Mapping:
		return v.mapping
	default:
		return v.scalar
	}
}

// Map is an insertion-ordered string key/value mapping. The zero value
// is not usable; create instances with NewMap.
type Map struct {
	keys   []string
	values map[string]string
}

// NewMap creates an empty ordered map.
func NewMap() *Map {
	return &Map{values: make(map[string]string)}
}

// Set stores a key/value pair. A new key is appended to the insertion
// order; an existing key keeps its position and gets the new value.
func (m *Map) Set(key, value string) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Get returns the value for a key and whether it was present.
func (m *Map) Get(key string) (string, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Len returns the number of pairs.
func (m *Map) Len() int { return len(m.keys) }

// Keys returns the keys in insertion order. The returned slice is a copy.
func (m *Map) Keys() []string {
	keys := make([]string, len(m.keys))
	copy(keys, m.keys)
	return keys
}

// Clone returns a copy sharing no state with the receiver.
func (m *Map) Clone() *Map {
	c := NewMap()
	for _, k := range m.keys {
		c.Set(k, m.values[k])
	}
	return c
}

// String renders the map as "k1: v1, k2: v2, ..." in insertion order.
func (m *Map) String() string {
	var b strings.Builder
	for i, k := range m.keys {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s: %s", k, m.values[k])
	}
	return b.String()
}
