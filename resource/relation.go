package resource

// Relation holds the value of a single relation: either exactly one item or an ordered sequence of
// items. The distinction is kept because it's visible in every wire format (an object vs. an
// array).
type Relation[T any] struct {
	items []T
	many  bool
}

// One creates a to-one relation.
func One[T any](v T) Relation[T] {
	return Relation[T]{
		items: []T{v},
	}
}

// Many creates a to-many relation. The slice is copied.
func Many[T any](vs []T) Relation[T] {
	items := make([]T, len(vs))
	copy(items, vs)
	return Relation[T]{
		items: items,
		many:  true,
	}
}

// IsMany reports whether the relation was created with Many.
func (r Relation[T]) IsMany() bool {
	return r.many
}

// Single returns the item of a to-one relation, or the first item of a to-many relation. If the
// relation is empty, the zero value is returned.
func (r Relation[T]) Single() T {
	var zero T
	if len(r.items) == 0 {
		return zero
	}
	return r.items[0]
}

// Items returns the relation's items in order. A to-one relation yields a single item. The
// returned slice must not be modified.
func (r Relation[T]) Items() []T {
	return r.items
}

// Len returns the number of items in the relation.
func (r Relation[T]) Len() int {
	return len(r.items)
}

// Relations is a set of named relations that remembers the order relation names were first set
// in. Setting an existing relation replaces its value in place.
type Relations[T any] struct {
	names  []string
	values map[string]Relation[T]
}

// Set stores the relation under the given name.
func (rs *Relations[T]) Set(name string, rel Relation[T]) {
	if rs.values == nil {
		rs.values = map[string]Relation[T]{}
	}
	if _, ok := rs.values[name]; !ok {
		rs.names = append(rs.names, name)
	}
	rs.values[name] = rel
}

// Get returns the relation with the given name.
func (rs *Relations[T]) Get(name string) (Relation[T], bool) {
	if rs == nil {
		return Relation[T]{}, false
	}
	rel, ok := rs.values[name]
	return rel, ok
}

// Len returns the number of named relations.
func (rs *Relations[T]) Len() int {
	if rs == nil {
		return 0
	}
	return len(rs.names)
}

// Names returns the relation names in order.
func (rs *Relations[T]) Names() []string {
	if rs == nil {
		return nil
	}
	return append([]string(nil), rs.names...)
}

// Each invokes fn for every relation in order.
func (rs *Relations[T]) Each(fn func(name string, rel Relation[T])) {
	if rs == nil {
		return
	}
	for _, name := range rs.names {
		fn(name, rs.values[name])
	}
}
