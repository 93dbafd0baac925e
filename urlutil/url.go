// Package urlutil rewrites locator strings (urls and node ids) against a
// site base url.
package urlutil

import (
	"regexp"
	"strings"

	"github.com/zero-day-ai/schemaorg"
	"github.com/zero-day-ai/schemaorg/node"
)

var protocolRE = regexp.MustCompile(`^[\s\w+.-]{2,}:([/\\]{2})?`)

// HasProtocol reports whether s starts with a scheme such as "https:" or "mailto:".
// Protocol-relative urls ("//cdn.example.com") do not count.
func HasProtocol(s string) bool {
	return protocolRE.MatchString(s)
}

// Join appends segment to base. Fragment segments are appended to base as
// is; path segments are joined with exactly one slash.
func Join(base, segment string) string {
	if segment == "" {
		return base
	}
	if base == "" {
		return segment
	}
	if strings.HasPrefix(segment, "#") {
		return base + segment
	}
	segment = strings.TrimPrefix(segment, "./")
	segment = strings.TrimPrefix(segment, "/")
	return strings.TrimSuffix(base, "/") + "/" + segment
}

// WithBase prefixes input with base unless input already carries a protocol
// or already starts with base.
func WithBase(input, base string) string {
	if base == "" || base == "/" || HasProtocol(input) {
		return input
	}
	trimmed := strings.TrimSuffix(base, "/")
	if hasSegmentPrefix(input, trimmed) {
		return input
	}
	if strings.HasPrefix(input, "#") {
		return Join(base, input)
	}
	return Join(trimmed, input)
}

// hasSegmentPrefix reports whether s starts with prefix followed by the end
// of s or a path, fragment or query separator.
func hasSegmentPrefix(s, prefix string) bool {
	if !strings.HasPrefix(s, prefix) {
		return false
	}
	if len(s) == len(prefix) {
		return true
	}
	switch s[len(prefix)] {
	case '/', '#', '?':
		return true
	}
	return false
}

// ResolveAgainstBase rewrites a root-relative ("/about") or fragment-relative
// ("#section") value onto base. Empty values, values with a protocol,
// protocol-relative values ("//cdn.example.com/x") and any other relative
// form are returned unchanged.
func ResolveAgainstBase(base, value string) string {
	if value == "" || HasProtocol(value) || strings.HasPrefix(value, "//") ||
		(!strings.HasPrefix(value, "/") && !strings.HasPrefix(value, "#")) {
		return value
	}
	return WithBase(value, base)
}

// PrefixID turns a local id into a fully qualified one under base, adding
// the leading '#' when missing: PrefixID("https://example.com", "hero")
// returns "https://example.com#hero".
//
// An id that already carries a protocol is treated as already absolute and
// base is returned untouched.
func PrefixID(base, id string) string {
	if HasProtocol(id) {
		return base
	}
	if !strings.HasPrefix(id, "#") {
		id = "#" + id
	}
	return Join(base, id)
}

// RewriteField resolves n[key] against base in place when it is a non-empty
// string. Other values are left alone.
func RewriteField(n node.Node, key, base string) {
	if s, ok := n[key].(string); ok && s != "" {
		n[key] = ResolveAgainstBase(base, s)
	}
}

// RewriteID resolves the node's "@id" against base in place.
func RewriteID(n node.Node, base string) {
	RewriteField(n, node.KeyID, base)
}

// ExtractFragment returns the node's id from its last '#' onwards, recovering
// the local name of a fully qualified id ("https://example.com/#article"
// gives "#article"). Ids without a fragment yield a malformed id error.
func ExtractFragment(n node.Node) (string, error) {
	id := n.ID()
	i := strings.LastIndex(id, "#")
	if i < 0 {
		return "", schemaorg.NewMalformedIDError("urlutil.ExtractFragment", id)
	}
	return id[i:], nil
}
