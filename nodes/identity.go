package nodes

import (
	"github.com/zero-day-ai/schemaorg/image"
	"github.com/zero-day-ai/schemaorg/node"
	"github.com/zero-day-ai/schemaorg/resolver"
	"github.com/zero-day-ai/schemaorg/urlutil"
)

// IdentityDefinition resolves the Organization or Person the site belongs
// to, taken from the identity section of the configuration.
//
// An Organization's logo and a Person's image are kept as a root
// ImageObject identified as <host>#logo.
var IdentityDefinition = resolver.Definition{
	DefaultsFunc: identityDefaults,
	Required:     []string{"name"},
	Resolve: func(n node.Node, c *resolver.Client) (node.Node, error) {
		host := c.CanonicalHost()
		urlutil.RewriteID(n, host)
		urlutil.RewriteField(n, "url", host)

		if logo := n["logo"]; isSet(logo) {
			if s, ok := logo.(string); ok {
				logo = node.Node{node.KeyID: LogoID, "url": s}
			}
			n["logo"] = c.Images().ResolveImages(logo, image.Options{AsRootNodes: true}).Value()
			node.SetIfEmpty(n, "image", n["logo"])
		}
		return n, nil
	},
}

// Identity creates a resolver for the site identity.
func Identity(input node.Node, opts ...resolver.Option) *resolver.NodeResolver {
	return resolver.New(input, IdentityDefinition, opts...)
}

func identityDefaults(c *resolver.Client) node.Node {
	cfg := c.Config().Identity
	typ := cfg.IdentityType()

	defaults := node.Node{
		node.KeyType: typ,
		node.KeyID:   siteID(c, IdentityID),
		"url":        c.CanonicalHost(),
		"name":       c.Config().Site.Name,
	}
	if cfg == nil {
		return defaults
	}

	if cfg.URL != "" {
		defaults["url"] = cfg.URL
	}
	if cfg.Name != "" {
		defaults["name"] = cfg.Name
	}
	if len(cfg.SameAs) > 0 {
		sameAs := make([]any, len(cfg.SameAs))
		for i, s := range cfg.SameAs {
			sameAs[i] = s
		}
		defaults["sameAs"] = sameAs
	}
	if cfg.Logo != "" {
		if typ == TypePerson {
			defaults["image"] = node.Node{node.KeyID: LogoID, "url": cfg.Logo}
		} else {
			defaults["logo"] = cfg.Logo
		}
	}
	return defaults
}
