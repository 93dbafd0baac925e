package nodes_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zero-day-ai/schemaorg/graph"
	"github.com/zero-day-ai/schemaorg/node"
	"github.com/zero-day-ai/schemaorg/nodes"
	"github.com/zero-day-ai/schemaorg/resolver"
)

func TestRelations_ArticlePage(t *testing.T) {
	c := newClient(t, siteConfig,
		resolver.WithCanonicalURL("/blog/hello"),
		resolver.WithRouteMeta(map[string]any{
			"title": "Hello",
			"image": "/og.png",
		}),
	)

	g, err := graph.NewBuilder(c).Add(
		nodes.Identity(nil),
		nodes.WebSite(nil),
		nodes.WebPage(nil),
		nodes.Article(node.Node{"author": "Jane Doe"}),
	).Build(context.Background())
	require.NoError(t, err)

	identityRef := node.RefTo("https://example.com#identity")
	pageRef := node.RefTo("https://example.com/blog/hello#webpage")

	website, ok := g.FindNode("#website")
	require.True(t, ok)
	assert.Equal(t, identityRef, website["publisher"])

	page, ok := g.FindNode("#webpage")
	require.True(t, ok)
	assert.Equal(t, node.RefTo("https://example.com#website"), page["isPartOf"])
	assert.Equal(t, node.RefTo("https://example.com#primaryimage"), page["primaryImageOfPage"])
	assert.NotContains(t, page, "about")
	assert.Equal(t, []any{node.Node{
		"@type":  "ReadAction",
		"target": []any{"https://example.com/blog/hello"},
	}}, page["potentialAction"])

	article, ok := g.FindNode("#article")
	require.True(t, ok)
	assert.Equal(t, pageRef, article["isPartOf"])
	assert.Equal(t, pageRef, article["mainEntityOfPage"])
	assert.Equal(t, identityRef, article["publisher"])
	assert.Equal(t, "Jane Doe", article["author"].(node.Node)["name"])

	_, ok = g.FindNode("https://example.com#primaryimage")
	assert.True(t, ok, "primary image should be a root node")
	_, ok = g.FindNode("https://example.com#logo")
	assert.True(t, ok, "logo should be a root node")
}

func TestRelations_HomePageAbout(t *testing.T) {
	c := newClient(t, siteConfig)

	g, err := graph.NewBuilder(c).Add(
		nodes.Identity(nil),
		nodes.WebPage(node.Node{"name": "Home"}),
	).Build(context.Background())
	require.NoError(t, err)

	page, ok := g.FindNode("#webpage")
	require.True(t, ok)
	assert.Equal(t, node.RefTo("https://example.com#identity"), page["about"])
	assert.NotContains(t, page, "isPartOf")
}

func TestRelations_PersonIdentityAuthorsArticle(t *testing.T) {
	c := newClient(t, `
site:
  canonical_host: https://jane.dev
  name: Jane's blog
identity:
  type: Person
  name: Jane Doe
`, resolver.WithCanonicalURL("/posts/one"))

	g, err := graph.NewBuilder(c).Add(
		nodes.Identity(nil),
		nodes.Article(node.Node{"headline": "One"}),
	).Build(context.Background())
	require.NoError(t, err)

	article, ok := g.FindNode("#article")
	require.True(t, ok)
	assert.Equal(t, node.RefTo("https://jane.dev#identity"), article["author"])
	assert.Equal(t, node.RefTo("https://jane.dev#identity"), article["publisher"])
	assert.NotContains(t, article, "isPartOf")
}

func TestRelations_ExplicitValuesKept(t *testing.T) {
	c := newClient(t, siteConfig)

	g, err := graph.NewBuilder(c).Add(
		nodes.Identity(nil),
		nodes.WebSite(node.Node{"publisher": node.RefTo("https://partner.example.org#org")}),
	).Build(context.Background())
	require.NoError(t, err)

	website, ok := g.FindNode("#website")
	require.True(t, ok)
	assert.Equal(t, node.RefTo("https://partner.example.org#org"), website["publisher"])
}
