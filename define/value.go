package define

import (
	"bytes"
	"encoding/json"
	"fmt"
	"iter"
	"reflect"
	"slices"

	"github.com/goccy/go-yaml"
)

// Kind identifies the variant of a [Node].
type Kind int

const (
	KindScalar Kind = iota // scalar
	KindList               // list
	KindMap                // map
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Node is one position in a define tree: a [Scalar], a [List] or a [*Map].
// Scalars and lists are leaves; maps are branches.
type Node interface {
	// Kind reports the variant of the node.
	Kind() Kind
	// Native returns the node as plain Go values: the scalar value itself,
	// []any for a list, or map[string]any for a map.
	Native() any

	node()
}

// Scalar is a single value.
//
// A scalar holds a string for every define given as KEY=VALUE. For a bare
// KEY it holds the builder's default value unconverted, which is an int or a
// bool as often as it is a string. Consumers must not assume strings.
type Scalar struct {
	v any
}

// NewScalar returns a scalar holding v.
func NewScalar(v any) Scalar { return Scalar{v: v} }

// Value returns the held value.
func (s Scalar) Value() any { return s.v }

// String formats the held value with fmt.
func (s Scalar) String() string { return fmt.Sprint(s.v) }

func (Scalar) Kind() Kind    { return KindScalar }
func (s Scalar) Native() any { return s.v }
func (Scalar) node()         {}

// MarshalJSON implements json.Marshaler.
func (s Scalar) MarshalJSON() ([]byte, error) { return json.Marshal(s.v) }

// List is an ordered sequence of scalars accumulated from repeated
// assignments to the same key, in assignment order.
type List []Scalar

func (List) Kind() Kind { return KindList }
func (List) node()      {}

// Native returns the list values as []any.
func (l List) Native() any {
	out := make([]any, len(l))
	for i, s := range l {
		out[i] = s.v
	}

	return out
}

// Map is a string-keyed map of nodes that remembers insertion order.
// The zero value is an empty map ready to use.
type Map struct {
	keys []string
	vals map[string]Node
}

// NewMap returns an empty map.
func NewMap() *Map {
	return &Map{vals: make(map[string]Node)}
}

func (*Map) Kind() Kind { return KindMap }
func (*Map) node()      {}

// Len returns the number of keys.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}

	return len(m.keys)
}

// Keys returns the keys in insertion order.
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}

	return slices.Clone(m.keys)
}

// Get returns the node stored at key.
func (m *Map) Get(key string) (Node, bool) {
	if m == nil || m.vals == nil {
		return nil, false
	}

	n, ok := m.vals[key]

	return n, ok
}

// Set stores n at key. Replacing an existing key keeps its position.
func (m *Map) Set(key string, n Node) {
	if m.vals == nil {
		m.vals = make(map[string]Node)
	}

	if _, ok := m.vals[key]; !ok {
		m.keys = append(m.keys, key)
	}

	m.vals[key] = n
}

// Lookup descends through nested maps along path.
// An empty path returns m itself.
func (m *Map) Lookup(path KeyPath) (Node, bool) {
	var cur Node = m

	for _, c := range path {
		branch, ok := cur.(*Map)
		if !ok {
			return nil, false
		}

		if cur, ok = branch.Get(c); !ok {
			return nil, false
		}
	}

	return cur, true
}

// All returns an iterator over the entries in insertion order.
func (m *Map) All() iter.Seq2[string, Node] {
	return func(yield func(string, Node) bool) {
		if m == nil {
			return
		}

		for _, k := range m.keys {
			if !yield(k, m.vals[k]) {
				return
			}
		}
	}
}

// Walk returns an iterator over every node below m in depth-first,
// insertion order, paired with its path from m.
func (m *Map) Walk() iter.Seq2[KeyPath, Node] {
	return func(yield func(KeyPath, Node) bool) {
		m.walk(nil, yield)
	}
}

func (m *Map) walk(prefix KeyPath, yield func(KeyPath, Node) bool) bool {
	for k, n := range m.All() {
		path := append(slices.Clip(prefix), k)
		if !yield(path, n) {
			return false
		}

		if sub, ok := n.(*Map); ok && !sub.walk(path, yield) {
			return false
		}
	}

	return true
}

// Native returns the map as map[string]any, converting nested nodes.
func (m *Map) Native() any {
	return m.ToMap()
}

// ToMap returns the map as map[string]any, converting nested nodes.
func (m *Map) ToMap() map[string]any {
	out := make(map[string]any, m.Len())
	for k, n := range m.All() {
		out[k] = n.Native()
	}

	return out
}

// Equal reports whether m and o hold the same keys in the same order with
// equal nodes.
func (m *Map) Equal(o *Map) bool {
	if m.Len() != o.Len() {
		return false
	}

	if m.Len() == 0 {
		return true
	}

	for i, k := range m.keys {
		if o.keys[i] != k || !equalNode(m.vals[k], o.vals[k]) {
			return false
		}
	}

	return true
}

func equalNode(a, b Node) bool {
	switch x := a.(type) {
	case Scalar:
		y, ok := b.(Scalar)

		return ok && reflect.DeepEqual(x.v, y.v)

	case List:
		y, ok := b.(List)

		return ok && slices.EqualFunc(x, y, func(p, q Scalar) bool {
			return reflect.DeepEqual(p.v, q.v)
		})

	case *Map:
		y, ok := b.(*Map)

		return ok && x.Equal(y)

	default:
		return a == nil && b == nil
	}
}

// MarshalJSON implements json.Marshaler, emitting keys in insertion order.
func (m *Map) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')

	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}

		val, err := json.Marshal(m.vals[k])
		if err != nil {
			return nil, err
		}

		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// MarshalYAML implements yaml.InterfaceMarshaler, emitting keys in insertion
// order.
func (m *Map) MarshalYAML() (any, error) {
	return m.mapSlice(), nil
}

func (m *Map) mapSlice() yaml.MapSlice {
	out := make(yaml.MapSlice, 0, m.Len())
	for k, n := range m.All() {
		var v any
		if sub, ok := n.(*Map); ok {
			v = sub.mapSlice()
		} else {
			v = n.Native()
		}

		out = append(out, yaml.MapItem{Key: k, Value: v})
	}

	return out
}
