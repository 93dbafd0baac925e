package nodes

import (
	"github.com/zero-day-ai/schemaorg/node"
	"github.com/zero-day-ai/schemaorg/resolver"
	"github.com/zero-day-ai/schemaorg/urlutil"
)

// relate points n[key] at the node found under id, unless n already holds
// a value for key or no such node is in the graph. It reports whether the
// relation was added.
func relate(n node.Node, key string, nodes resolver.NodeFinder, id string) bool {
	if isSet(n[key]) {
		return false
	}
	target, ok := nodes.FindNode(id)
	if !ok {
		return false
	}
	n[key] = target.Ref()
	return true
}

func isSet(v any) bool {
	return v != nil && v != ""
}

// rewritePageID qualifies a page-level id: fragments are resolved against
// the page url and root-relative ids against the canonical host.
func rewritePageID(n node.Node, c *resolver.Client) {
	id := n.ID()
	if len(id) > 0 && id[0] == '#' {
		urlutil.RewriteID(n, c.CanonicalURL())
		return
	}
	urlutil.RewriteID(n, c.CanonicalHost())
}

// pageID prefixes a local id with the page url.
func pageID(c *resolver.Client, local string) string {
	return urlutil.PrefixID(c.CanonicalURL(), local)
}

// siteID prefixes a local id with the canonical host.
func siteID(c *resolver.Client, local string) string {
	return urlutil.PrefixID(c.CanonicalHost(), local)
}

func normalizeDates(n node.Node, keys ...string) error {
	for _, key := range keys {
		if err := node.NormalizeDate(n, key); err != nil {
			return err
		}
	}
	return nil
}

func isHomePage(c *resolver.Client) bool {
	u := c.CanonicalURL()
	return u == c.CanonicalHost() || u == c.CanonicalHost()+"/"
}
