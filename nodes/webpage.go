package nodes

import (
	"github.com/zero-day-ai/schemaorg/node"
	"github.com/zero-day-ai/schemaorg/resolver"
	"github.com/zero-day-ai/schemaorg/urlutil"
)

var webPageMetaKeys = []string{"name", "description", "dateModified", "datePublished"}

// WebPageDefinition resolves the WebPage of the current route.
//
// Defaults:
//   - @id: <page url>#webpage
//   - url: the page url
//   - name, description and dates from route metadata
//   - inLanguage: the site language
//
// Relationships:
//   - isPartOf: the WebSite
//   - primaryImageOfPage: the primary image, when one was expanded
//   - about: the site Identity, on the home page only
var WebPageDefinition = resolver.Definition{
	DefaultsFunc: func(c *resolver.Client) node.Node {
		defaults := node.Node{
			node.KeyType: TypeWebPage,
			node.KeyID:   pageID(c, WebPageID),
			"url":        c.CanonicalURL(),
			"inLanguage": c.DefaultLanguage(),
		}
		resolver.ApplyRouteMeta(defaults, c.RouteMeta(), webPageMetaKeys)
		return defaults
	},
	Required: []string{"name", "url"},
	Resolve: func(n node.Node, c *resolver.Client) (node.Node, error) {
		n[node.KeyType] = node.ResolveType(n[node.KeyType], TypeWebPage)
		rewritePageID(n, c)
		urlutil.RewriteField(n, "url", c.CanonicalHost())
		if err := normalizeDates(n, "datePublished", "dateModified"); err != nil {
			return nil, err
		}
		return n, nil
	},
	MergeRelations: func(n node.Node, c *resolver.Client, nodes resolver.NodeFinder) error {
		relate(n, "isPartOf", nodes, WebSiteID)
		relate(n, "primaryImageOfPage", nodes, PrimaryImageID)
		if isHomePage(c) {
			relate(n, "about", nodes, IdentityID)
		}
		return nil
	},
}

// WebPage creates a resolver for the WebPage node of the current route.
// Subtypes such as "AboutPage" or "FAQPage" may be given as @type and are
// emitted alongside WebPage.
func WebPage(input node.Node, opts ...resolver.Option) *resolver.NodeResolver {
	return resolver.New(input, WebPageDefinition, opts...)
}
