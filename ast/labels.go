package ast

import (
	"fmt"
)

// OrderedMap is an insertion-ordered label → Expr map, used for record and
// union field lists. Iteration order is preserve-on-write:
// re-setting an existing label keeps its original position.
type OrderedMap struct {
	keys   []string
	values map[string]Expr
}

// NewOrderedMap returns an empty OrderedMap.
func NewOrderedMap() *OrderedMap {
	return &OrderedMap{values: map[string]Expr{}}
}

// Set inserts or overwrites the binding for label. It reports an error if
// label is already bound and overwrite is false, enforcing the "labels
// within one record/union literal are pairwise distinct" invariant
// during parsing.
func (m *OrderedMap) Set(label string, v Expr, overwrite bool) error {
	if _, ok := m.values[label]; ok {
		if !overwrite {
			return fmt.Errorf("duplicate label %q", label)
		}
		m.values[label] = v
		return nil
	}
	m.keys = append(m.keys, label)
	m.values[label] = v
	return nil
}

// Get returns the value bound to label, if any.
func (m *OrderedMap) Get(label string) (Expr, bool) {
	v, ok := m.values[label]
	return v, ok
}

// Delete removes label, if bound.
func (m *OrderedMap) Delete(label string) {
	if _, ok := m.values[label]; !ok {
		return
	}
	delete(m.values, label)
	for i, k := range m.keys {
		if k == label {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
}

// Len returns the number of bindings.
func (m *OrderedMap) Len() int { return len(m.keys) }

// Keys returns the bound labels in insertion order. The caller must not
// mutate the returned slice.
func (m *OrderedMap) Keys() []string { return m.keys }

// Clone returns a deep-enough copy: a new key slice and map, sharing Expr
// values (which are treated as immutable once built).
func (m *OrderedMap) Clone() *OrderedMap {
	out := &OrderedMap{
		keys:   append([]string(nil), m.keys...),
		values: make(map[string]Expr, len(m.values)),
	}
	for k, v := range m.values {
		out.values[k] = v
	}
	return out
}
