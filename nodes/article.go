package nodes

import (
	"fmt"

	"github.com/zero-day-ai/schemaorg/node"
	"github.com/zero-day-ai/schemaorg/resolver"
)

var articleMetaKeys = []string{"headline", "description", "image", "dateModified", "datePublished"}

// ArticleDefinition resolves the Article of the current page.
//
// Defaults:
//   - @id: <page url>#article
//   - headline, description, image and dates from route metadata
//   - inLanguage: the site language
//
// Relationships:
//   - isPartOf, mainEntityOfPage: the WebPage
//   - publisher: the site Identity
//   - author: the Identity when it is a Person and no author is given
//   - the WebPage gains a ReadAction targeting its url
var ArticleDefinition = resolver.Definition{
	DefaultsFunc: func(c *resolver.Client) node.Node {
		defaults := node.Node{
			node.KeyType: TypeArticle,
			node.KeyID:   pageID(c, ArticleID),
			"inLanguage": c.DefaultLanguage(),
		}
		resolver.ApplyRouteMeta(defaults, c.RouteMeta(), articleMetaKeys)
		return defaults
	},
	Required: []string{"headline"},
	Rules: []resolver.Rule{
		{Name: "headline-length", Expr: fmt.Sprintf(`!("headline" in node) || size(node.headline) <= %d`, HeadlineMaxLength)},
	},
	Resolve:        resolveArticle,
	MergeRelations: articleRelations,
}

// Article creates a resolver for the page's Article node. Authors may be
// names, Person nodes, id references or a list of any of these.
func Article(input node.Node, opts ...resolver.Option) *resolver.NodeResolver {
	return resolver.New(input, ArticleDefinition, opts...)
}

func resolveArticle(n node.Node, c *resolver.Client) (node.Node, error) {
	n[node.KeyType] = node.ResolveType(n[node.KeyType], TypeArticle)
	rewritePageID(n, c)

	if headline, ok := n.String("headline"); ok {
		n["headline"] = node.TrimLength(headline, HeadlineMaxLength)
	}
	if err := normalizeDates(n, "datePublished", "dateModified"); err != nil {
		return nil, err
	}

	if author := n["author"]; isSet(author) {
		authors, err := resolver.ResolveArrayableWith(c, node.AsArrayable(author), resolvePerson, resolver.ArrayOptions{})
		if err != nil {
			return nil, fmt.Errorf("author: %w", err)
		}
		n["author"] = authors.Value()
	}
	return n, nil
}

func articleRelations(n node.Node, c *resolver.Client, nodes resolver.NodeFinder) error {
	relate(n, "isPartOf", nodes, WebPageID)
	relate(n, "mainEntityOfPage", nodes, WebPageID)
	relate(n, "publisher", nodes, IdentityID)

	if identity, ok := nodes.FindNode(IdentityID); ok && node.IncludesType(identity, TypePerson) {
		relate(n, "author", nodes, IdentityID)
	}

	if page, ok := nodes.FindNode(WebPageID); ok {
		if u, ok := page.String("url"); ok {
			node.SetIfEmpty(page, "potentialAction", []any{
				node.Node{node.KeyType: "ReadAction", "target": []any{u}},
			})
		}
	}
	return nil
}
