package nodes

import (
	"github.com/zero-day-ai/schemaorg/node"
	"github.com/zero-day-ai/schemaorg/resolver"
	"github.com/zero-day-ai/schemaorg/urlutil"
)

// WebSiteDefinition resolves the site-wide WebSite node, identified as
// <host>#website and named after site.name. Its publisher is the site
// Identity.
var WebSiteDefinition = resolver.Definition{
	DefaultsFunc: func(c *resolver.Client) node.Node {
		return node.Node{
			node.KeyType: TypeWebSite,
			node.KeyID:   siteID(c, WebSiteID),
			"url":        c.CanonicalHost(),
			"name":       c.Config().Site.Name,
			"inLanguage": c.DefaultLanguage(),
		}
	},
	Required: []string{"name", "url"},
	Resolve: func(n node.Node, c *resolver.Client) (node.Node, error) {
		n[node.KeyType] = node.ResolveType(n[node.KeyType], TypeWebSite)
		urlutil.RewriteID(n, c.CanonicalHost())
		urlutil.RewriteField(n, "url", c.CanonicalHost())
		return n, nil
	},
	MergeRelations: func(n node.Node, c *resolver.Client, nodes resolver.NodeFinder) error {
		relate(n, "publisher", nodes, IdentityID)
		return nil
	},
}

// WebSite creates a resolver for the WebSite node.
func WebSite(input node.Node, opts ...resolver.Option) *resolver.NodeResolver {
	return resolver.New(input, WebSiteDefinition, opts...)
}
