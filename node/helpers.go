package node

import (
	"strings"
	"unicode/utf8"
)

// SetIfEmpty sets key to value unless the node already holds a truthy value
// there. Existing values are never overwritten.
func SetIfEmpty(n Node, key string, value any) {
	if n == nil {
		return
	}
	if !truthy(n[key]) {
		n[key] = value
	}
}

// truthy mirrors the loose notion of "set" used for fill-gap merging:
// nil, empty strings, false and zero numbers count as unset.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case bool:
		return t
	case int:
		return t != 0
	case int64:
		return t != 0
	case float64:
		return t != 0
	default:
		return !isEmpty(v)
	}
}

// IncludesType reports whether the node's "@type" is, or contains, t.
func IncludesType(n Node, t string) bool {
	for _, typ := range n.Types() {
		if typ == t {
			return true
		}
	}
	return false
}

// ResolveType combines a node's declared type with the definition's default
// type. The default types come first, duplicates are dropped, and when only
// one type remains the declared value is returned as given.
func ResolveType(val, defaultType any) any {
	if s, ok := val.(string); ok {
		if d, ok := defaultType.(string); ok && s == d {
			return val
		}
	}

	seen := make(map[string]struct{})
	var types []string
	for _, t := range append(typeList(defaultType), typeList(val)...) {
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		types = append(types, t)
	}
	if len(types) == 1 {
		if val == nil {
			return types[0]
		}
		return val
	}
	return types
}

func typeList(v any) []string {
	return Node{KeyType: v}.Types()
}

// TrimLength shortens s to at most length characters, cutting back to the
// last space so that words are not split. A string with no space inside the
// limit is cut at the limit.
func TrimLength(s string, length int) string {
	if length < 0 || utf8.RuneCountInString(s) <= length {
		return s
	}
	trimmed := string([]rune(s)[:length])
	if i := strings.LastIndex(trimmed, " "); i >= 0 {
		return trimmed[:i]
	}
	return trimmed
}
