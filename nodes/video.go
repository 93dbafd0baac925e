package nodes

import (
	"fmt"

	"github.com/zero-day-ai/schemaorg/node"
	"github.com/zero-day-ai/schemaorg/resolver"
	"github.com/zero-day-ai/schemaorg/urlutil"
)

var videoMetaKeys = []string{"name", "description", "uploadDate"}

// VideoObjectDefinition resolves a VideoObject. Without an explicit id the
// video is identified by its content url, embed url or name, in that order.
var VideoObjectDefinition = resolver.Definition{
	DefaultsFunc: func(c *resolver.Client) node.Node {
		defaults := node.Node{
			node.KeyType: TypeVideoObject,
			"inLanguage": c.DefaultLanguage(),
		}
		resolver.ApplyRouteMeta(defaults, c.RouteMeta(), videoMetaKeys)
		return defaults
	},
	Required: []string{"name", "uploadDate"},
	Rules: []resolver.Rule{
		{Name: "media-url", Expr: `"contentUrl" in node || "embedUrl" in node`},
	},
	Resolve: func(n node.Node, c *resolver.Client) (node.Node, error) {
		host := c.CanonicalHost()
		n[node.KeyType] = node.ResolveType(n[node.KeyType], TypeVideoObject)
		for _, key := range []string{"contentUrl", "embedUrl", "thumbnailUrl"} {
			urlutil.RewriteField(n, key, host)
		}
		if err := normalizeDates(n, "uploadDate"); err != nil {
			return nil, err
		}

		if n.ID() != "" {
			rewritePageID(n, c)
			return n, nil
		}
		generated, err := c.IDs().Generate(host, TypeVideoObject, n)
		if err != nil {
			return nil, fmt.Errorf("video id: %w", err)
		}
		n[node.KeyID] = generated
		return n, nil
	},
}

// VideoObject creates a resolver for a video embedded in the page.
func VideoObject(input node.Node, opts ...resolver.Option) *resolver.NodeResolver {
	return resolver.New(input, VideoObjectDefinition, opts...)
}
