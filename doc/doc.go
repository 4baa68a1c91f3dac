package doc

import (
	"iter"
	"slices"
	"strconv"
	"strings"
)

// Doc is a document whose fields keep their insertion order. Setting an
// existing key overwrites the value in place without moving the key.
type Doc struct {
	keys   []string
	values map[string]Value
}

func New() *Doc {
	return &Doc{values: make(map[string]Value)}
}

func (d *Doc) Set(key string, v Value) *Doc {
	if d.values == nil {
		d.values = make(map[string]Value)
	}
	if _, ok := d.values[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.values[key] = v
	return d
}

func (d *Doc) Get(key string) (Value, bool) {
	v, ok := d.values[key]
	return v, ok
}

func (d *Doc) Delete(key string) bool {
	if _, ok := d.values[key]; !ok {
		return false
	}
	delete(d.values, key)
	i := slices.Index(d.keys, key)
	d.keys = slices.Delete(d.keys, i, i+1)
	return true
}

func (d *Doc) Len() int {
	return len(d.keys)
}

func (d *Doc) Keys() []string {
	return slices.Clone(d.keys)
}

func (d *Doc) Values() []Value {
	out := make([]Value, len(d.keys))
	for i, k := range d.keys {
		out[i] = d.values[k]
	}
	return out
}

// All yields key/value pairs in insertion order.
func (d *Doc) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		for _, k := range d.keys {
			if !yield(k, d.values[k]) {
				return
			}
		}
	}
}

// Equal reports whether both documents hold the same pairs in the same order.
func (d *Doc) Equal(other *Doc) bool {
	if d == nil || other == nil {
		return d == other
	}
	if len(d.keys) != len(other.keys) {
		return false
	}
	for i, k := range d.keys {
		if other.keys[i] != k {
			return false
		}
		if !Equal(d.values[k], other.values[k]) {
			return false
		}
	}
	return true
}

// Clone returns a deep copy sharing no state with the original.
func (d *Doc) Clone() *Doc {
	c := &Doc{
		keys:   slices.Clone(d.keys),
		values: make(map[string]Value, len(d.values)),
	}
	for k, v := range d.values {
		c.values[k] = Clone(v)
	}
	return c
}

func (d *Doc) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, k := range d.keys {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(strconv.Quote(k))
		sb.WriteString(": ")
		sb.WriteString(valueString(d.values[k]))
	}
	sb.WriteByte('}')
	return sb.String()
}

func (*Doc) isValue() {}
