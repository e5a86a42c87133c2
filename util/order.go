package util

import (
	"sort"

	"golang.org/x/exp/constraints"

	"github.com/daedaleanai/hbc/log"
)

// OrderedMap is a map supporting iteration ordered by the key.
//
// Inserting a key twice aborts the program, callers that expect duplicates check with Lookup first.
type OrderedMap[K constraints.Ordered, V any] struct {
	data map[K]V
}

// Instantiates an empty OrderedMap object.
func NewOrderedMap[K constraints.Ordered, V any]() OrderedMap[K, V] {
	return OrderedMap[K, V]{data: map[K]V{}}
}

// Instantiates a new OrderedMap from a given conventional map by shallow-copying it.
func NewOrderedMapFrom[K constraints.Ordered, V any](raw map[K]V) OrderedMap[K, V] {
	result := OrderedMap[K, V]{data: make(map[K]V, len(raw))}
	for k, v := range raw {
		result.data[k] = v
	}
	return result
}

// Insert a (key, value) pair.
func (m *OrderedMap[K, V]) Insert(key K, value V) {
	if val, ok := m.data[key]; ok {
		log.Fatal("Attempting to override a value with key: %v; old value: %v; new value: %v\n", key, val, value)
	}
	m.data[key] = value
}

// Performs a lookup of the key, similar to `v, ok := m[k]`.
func (m *OrderedMap[K, V]) Lookup(key K) (V, bool) {
	val, ok := m.data[key]
	return val, ok
}

// Returns the ordered list of map keys.
func (m *OrderedMap[K, V]) Keys() []K {
	keys := make([]K, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Returns the values of entries ordered by their keys.
func (m *OrderedMap[K, V]) Values() []V {
	result := make([]V, 0, len(m.data))
	for _, k := range m.Keys() {
		result = append(result, m.data[k])
	}
	return result
}

// Convenience function, returning the list of ordered keys of the input map.
func OrderedKeys[K constraints.Ordered, V any](m map[K]V) []K {
	tmp := NewOrderedMapFrom(m)
	return tmp.Keys()
}
