package node

// Arrayable holds either a single value or an ordered list of values.
// The zero value is an empty list.
//
// Callers branch on IsList explicitly rather than inspecting the shape of
// the stored value.
type Arrayable[T any] struct {
	items []T
	list  bool
}

// Single wraps a bare value.
func Single[T any](v T) Arrayable[T] {
	return Arrayable[T]{items: []T{v}}
}

// List wraps an ordered sequence, even when it holds a single element.
func List[T any](vs ...T) Arrayable[T] {
	items := make([]T, len(vs))
	copy(items, vs)
	return Arrayable[T]{items: items, list: true}
}

// AsArrayable inspects a field value and wraps it: sequences become lists,
// anything else becomes a single value.
func AsArrayable(v any) Arrayable[any] {
	switch t := v.(type) {
	case []any:
		return List(t...)
	case []Node:
		items := make([]any, len(t))
		for i, e := range t {
			items[i] = e
		}
		return Arrayable[any]{items: items, list: true}
	case []map[string]any:
		items := make([]any, len(t))
		for i, e := range t {
			items[i] = e
		}
		return Arrayable[any]{items: items, list: true}
	case []string:
		items := make([]any, len(t))
		for i, e := range t {
			items[i] = e
		}
		return Arrayable[any]{items: items, list: true}
	default:
		return Single(v)
	}
}

// IsList reports whether the value is a sequence.
func (a Arrayable[T]) IsList() bool {
	return a.list || len(a.items) == 0
}

// Len returns the number of values.
func (a Arrayable[T]) Len() int {
	return len(a.items)
}

// Items returns the values as a sequence, wrapping a single value.
func (a Arrayable[T]) Items() []T {
	out := make([]T, len(a.items))
	copy(out, a.items)
	return out
}

// First returns the first value, if any.
func (a Arrayable[T]) First() (T, bool) {
	if len(a.items) == 0 {
		var zero T
		return zero, false
	}
	return a.items[0], true
}

// Value returns the bare value for a single value and a []T for a list,
// suitable for storing back into a Node field.
func (a Arrayable[T]) Value() any {
	if !a.IsList() {
		return a.items[0]
	}
	return a.Items()
}
