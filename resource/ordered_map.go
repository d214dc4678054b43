package resource

import (
	"unsafe"

	jsoniter "github.com/json-iterator/go"
)

// OrderedMapItem is a key-value pair for an item in an OrderedMap.
type OrderedMapItem struct {
	Key   string
	Value any
}

// OrderedMap is a string-keyed map that remembers the order its keys were first set in. It holds
// a resource's payload and every representation the writers produce.
//
// Values are expected to be JSON-like: strings, booleans, numbers, nil, []any, or *OrderedMap.
type OrderedMap struct {
	items []OrderedMapItem
	index map[string]int
}

// NewOrderedMap creates a new, empty ordered map.
func NewOrderedMap() *OrderedMap {
	return &OrderedMap{}
}

// MapOf builds an ordered map from alternating keys and values. It panics if a key is not a
// string or a value is missing, so it's only meant for literals.
func MapOf(kv ...any) *OrderedMap {
	if len(kv)%2 != 0 {
		panic("resource: MapOf requires an even number of arguments")
	}
	m := NewOrderedMap()
	for i := 0; i < len(kv); i += 2 {
		m.Set(kv[i].(string), kv[i+1])
	}
	return m
}

// Set writes a key-value pair. If the key already exists its value is replaced and it keeps its
// position.
func (m *OrderedMap) Set(key string, value any) {
	if i, ok := m.index[key]; ok {
		m.items[i].Value = value
		return
	}
	if m.index == nil {
		m.index = map[string]int{}
	}
	m.index[key] = len(m.items)
	m.items = append(m.items, OrderedMapItem{
		Key:   key,
		Value: value,
	})
}

// Get returns the value for the given key.
func (m *OrderedMap) Get(key string) (any, bool) {
	if m == nil {
		return nil, false
	}
	if i, ok := m.index[key]; ok {
		return m.items[i].Value, true
	}
	return nil, false
}

// Has reports whether the key is present.
func (m *OrderedMap) Has(key string) bool {
	_, ok := m.Get(key)
	return ok
}

// Delete removes the key if it exists.
func (m *OrderedMap) Delete(key string) {
	i, ok := m.index[key]
	if !ok {
		return
	}
	m.items = append(m.items[:i], m.items[i+1:]...)
	delete(m.index, key)
	for j := i; j < len(m.items); j++ {
		m.index[m.items[j].Key] = j
	}
}

// Len returns the length of the map.
func (m *OrderedMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.items)
}

// Keys returns the keys in the order they were added.
func (m *OrderedMap) Keys() []string {
	if m == nil {
		return nil
	}
	ret := make([]string, len(m.items))
	for i, item := range m.items {
		ret[i] = item.Key
	}
	return ret
}

// Items provides the items in the map, in the order they were added. The returned slice must not
// be modified.
func (m *OrderedMap) Items() []OrderedMapItem {
	if m == nil {
		return nil
	}
	return m.items
}

// Clone returns a shallow copy of the map. Nested maps and slices are shared.
func (m *OrderedMap) Clone() *OrderedMap {
	ret := NewOrderedMap()
	for _, item := range m.Items() {
		ret.Set(item.Key, item.Value)
	}
	return ret
}

// Merge returns a new map with the entries of m followed by the entries of other whose keys
// aren't already in m. On collision the value from m wins.
func (m *OrderedMap) Merge(other *OrderedMap) *OrderedMap {
	ret := m.Clone()
	for _, item := range other.Items() {
		if !ret.Has(item.Key) {
			ret.Set(item.Key, item.Value)
		}
	}
	return ret
}

func (m *OrderedMap) MarshalJSON() ([]byte, error) {
	return jsoniter.Marshal(m)
}

type orderedMapEncoder struct{}

func (e *orderedMapEncoder) IsEmpty(ptr unsafe.Pointer) bool {
	m := (*OrderedMap)(ptr)
	return m.Len() == 0
}

func (e *orderedMapEncoder) Encode(ptr unsafe.Pointer, stream *jsoniter.Stream) {
	m := (*OrderedMap)(ptr)
	if m.Len() == 0 {
		stream.WriteEmptyObject()
		return
	}
	stream.WriteObjectStart()
	for i, kv := range m.items {
		if i != 0 {
			stream.WriteMore()
		}
		stream.WriteObjectField(kv.Key)
		stream.WriteVal(kv.Value)
	}
	stream.WriteObjectEnd()
}

func init() {
	jsoniter.RegisterTypeEncoder("resource.OrderedMap", &orderedMapEncoder{})
}
