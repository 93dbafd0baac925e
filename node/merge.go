package node

// Merge deep-merges input on top of defaults and returns a new node.
// Neither argument is modified.
//
// For every field the input value wins when both sides define it. When both
// values are objects they are merged recursively with the same rule. A nil
// input value counts as undefined and leaves the default in place. Lists are
// not concatenated: an input list replaces the default list.
func Merge(input, defaults Node) Node {
	out := defaults.Clone()
	if out == nil {
		out = make(Node, len(input))
	}
	for k, v := range input {
		if v == nil {
			continue
		}
		if in, ok := AsNode(v); ok {
			if def, ok := AsNode(out[k]); ok {
				out[k] = Merge(in, def)
				continue
			}
		}
		out[k] = cloneValue(v)
	}
	return out
}
