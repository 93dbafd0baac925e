package node

// Clean removes every field holding nil or an empty string, at every depth,
// and returns n. The node is modified in place.
//
// Objects and lists are recursed into before the parent finishes its scan
// but are never removed themselves. Lists are compacted: empty elements are
// dropped and the remaining elements keep their relative order with no gaps.
func Clean(n Node) Node {
	for k, v := range n {
		if isEmpty(v) {
			delete(n, k)
			continue
		}
		if isContainer(v) {
			n[k] = cleanValue(v)
		}
	}
	return n
}

func isEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case Node:
		return t == nil
	case map[string]any:
		return t == nil
	case []any:
		return t == nil
	case []Node:
		return t == nil
	case []map[string]any:
		return t == nil
	case []string:
		return t == nil
	default:
		return false
	}
}

func isContainer(v any) bool {
	switch v.(type) {
	case Node, map[string]any, []any, []Node, []map[string]any, []string:
		return true
	default:
		return false
	}
}

func cleanValue(v any) any {
	switch t := v.(type) {
	case Node:
		return Clean(t)
	case map[string]any:
		Clean(Node(t))
		return t
	case []any:
		out := t[:0]
		for _, e := range t {
			if isEmpty(e) {
				continue
			}
			if isContainer(e) {
				e = cleanValue(e)
			}
			out = append(out, e)
		}
		clear(t[len(out):])
		return out
	case []Node:
		out := t[:0]
		for _, e := range t {
			if e == nil {
				continue
			}
			out = append(out, Clean(e))
		}
		clear(t[len(out):])
		return out
	case []map[string]any:
		out := t[:0]
		for _, e := range t {
			if e == nil {
				continue
			}
			Clean(Node(e))
			out = append(out, e)
		}
		clear(t[len(out):])
		return out
	case []string:
		out := t[:0]
		for _, e := range t {
			if e != "" {
				out = append(out, e)
			}
		}
		return out
	default:
		return v
	}
}
