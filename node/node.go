// Package node defines the generic key-value container used for Schema.org
// graph nodes, together with the structural operations the resolution
// engine relies on: id references, arrayable values, deep merging and
// attribute cleaning.
package node

// Reserved JSON-LD keys.
const (
	KeyID      = "@id"
	KeyType    = "@type"
	KeyContext = "@context"
	KeyGraph   = "@graph"
)

// Node is a Schema.org graph node. Fields hold scalars, nested nodes,
// id references or lists of those.
//
// Nested objects may be stored either as Node or as map[string]any; every
// operation in this package treats both the same way.
type Node map[string]any

// AsNode reports whether v is an object value and returns it as a Node.
func AsNode(v any) (Node, bool) {
	switch t := v.(type) {
	case Node:
		return t, t != nil
	case map[string]any:
		return Node(t), t != nil
	default:
		return nil, false
	}
}

// ID returns the node's "@id", or an empty string when it is unset or not a string.
func (n Node) ID() string {
	id, _ := n[KeyID].(string)
	return id
}

// Types returns the node's "@type" as a list, whether it was stored as a
// single string or a sequence.
func (n Node) Types() []string {
	switch t := n[KeyType].(type) {
	case string:
		if t == "" {
			return nil
		}
		return []string{t}
	case []string:
		out := make([]string, len(t))
		copy(out, t)
		return out
	case []any:
		out := make([]string, 0, len(t))
		for _, v := range t {
			if s, ok := v.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// String returns the string stored under key, if any.
func (n Node) String(key string) (string, bool) {
	s, ok := n[key].(string)
	return s, ok
}

// Has reports whether key is present with a non-nil value.
func (n Node) Has(key string) bool {
	v, ok := n[key]
	return ok && v != nil
}

// Clone returns a deep copy of the node. Nested maps and slices are copied;
// leaf values are shared.
func (n Node) Clone() Node {
	if n == nil {
		return nil
	}
	out := make(Node, len(n))
	for k, v := range n {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case Node:
		return t.Clone()
	case map[string]any:
		return map[string]any(Node(t).Clone())
	case []any:
		if t == nil {
			return t
		}
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	case []Node:
		if t == nil {
			return t
		}
		out := make([]Node, len(t))
		for i, e := range t {
			out[i] = e.Clone()
		}
		return out
	case []map[string]any:
		if t == nil {
			return t
		}
		out := make([]map[string]any, len(t))
		for i, e := range t {
			out[i] = map[string]any(Node(e).Clone())
		}
		return out
	case []string:
		if t == nil {
			return t
		}
		out := make([]string, len(t))
		copy(out, t)
		return out
	default:
		return v
	}
}
