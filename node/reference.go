package node

// Kind discriminates the shapes a field value can take.
type Kind int

const (
	// KindNil is an absent value.
	KindNil Kind = iota
	// KindScalar is a string, number, bool or any other non-container value.
	KindScalar
	// KindReference is a {"@id": ...} pointer.
	KindReference
	// KindNode is an object with fields other than a lone "@id".
	KindNode
	// KindList is an ordered sequence.
	KindList
)

// String returns a readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindScalar:
		return "scalar"
	case KindReference:
		return "reference"
	case KindNode:
		return "node"
	case KindList:
		return "list"
	default:
		return "unknown"
	}
}

// KindOf classifies v.
func KindOf(v any) Kind {
	if v == nil {
		return KindNil
	}
	if n, ok := AsNode(v); ok {
		if isReferenceNode(n) {
			return KindReference
		}
		return KindNode
	}
	switch v.(type) {
	case []any, []Node, []map[string]any, []string:
		return KindList
	}
	return KindScalar
}

// RefTo returns an id reference pointing at id.
func RefTo(id string) Node {
	return Node{KeyID: id}
}

// Ref returns an id reference pointing at this node.
func (n Node) Ref() Node {
	return RefTo(n.ID())
}

// IsReference reports whether v is an id reference: an object with exactly
// one key, "@id", holding a non-empty value. Strings are never references.
func IsReference(v any) bool {
	n, ok := AsNode(v)
	if !ok {
		return false
	}
	return isReferenceNode(n)
}

func isReferenceNode(n Node) bool {
	if len(n) != 1 {
		return false
	}
	id, ok := n[KeyID]
	return ok && id != nil && id != ""
}
