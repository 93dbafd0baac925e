// Package nodes provides the Schema.org node definitions a site graph is
// usually built from: WebSite, WebPage, Article, the site Identity, Person
// and VideoObject.
//
// Each constructor returns a resolver.NodeResolver for the given partial
// node. Defaults are computed from the active resolver.Client (canonical
// host, page url, language, route metadata) and relations to sibling nodes
// are added by the graph builder once every node is resolved.
//
// Example:
//
//	b := graph.NewBuilder(client)
//	b.Add(
//	    nodes.Identity(nil),
//	    nodes.WebSite(nil),
//	    nodes.WebPage(nil),
//	    nodes.Article(node.Node{"author": "Jane Doe"}),
//	)
//	g, err := b.Build(ctx)
package nodes

import "github.com/zero-day-ai/schemaorg/image"

// Schema.org types produced by this package.
const (
	TypeWebSite      = "WebSite"
	TypeWebPage      = "WebPage"
	TypeArticle      = "Article"
	TypeOrganization = "Organization"
	TypePerson       = "Person"
	TypeVideoObject  = "VideoObject"
	TypeImageObject  = image.TypeImageObject
)

// Local ids of the singleton nodes. They are prefixed with the canonical
// host (site-level nodes) or the page url (page-level nodes).
const (
	IdentityID     = "#identity"
	WebSiteID      = "#website"
	WebPageID      = "#webpage"
	ArticleID      = "#article"
	LogoID         = "#logo"
	PrimaryImageID = image.PrimaryImageID
)

// HeadlineMaxLength is the longest headline search engines accept.
const HeadlineMaxLength = 110
