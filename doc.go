// Package schemaorg builds Schema.org JSON-LD graphs from partially specified
// nodes.
//
// The module is organized around a lazy node-resolution engine: callers
// describe each node they want in the graph as a partial input plus a
// definition (defaults, required fields, a custom resolve hook and an
// optional relation hook), and the engine merges, expands, normalizes and
// cleans that node exactly once, on first access.
//
// # Core Concepts
//
//   - Nodes: string-keyed maps carrying an "@id" and an "@type" (package node)
//   - Id references: single-key {"@id": ...} pointers into the graph
//   - Resolvers: memoized units of work turning one partial node into one
//     resolved node (package resolver)
//   - Client: the resolution context holding site-wide configuration,
//     passed explicitly through context.Context
//   - Graph: the assembled, deduplicated set of resolved nodes (package graph)
//
// # Getting Started
//
//	cfg, err := config.Load("schema-org.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	client, err := resolver.NewClient(cfg,
//		resolver.WithCanonicalURL("https://example.com/blog/hello"),
//		resolver.WithRouteMeta(map[string]any{"title": "Hello"}),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	b := graph.NewBuilder(client)
//	b.Add(nodes.Identity(nil), nodes.WebSite(nil), nodes.WebPage(nil), nodes.Article(node.Node{"wordCount": 1200}))
//
//	g, err := b.Build(ctx)
//	if err != nil {
//		log.Fatal(err)
//	}
//	doc := g.Document()
//
// # Error Handling
//
// Sentinel errors in this package can be checked with errors.Is. Failures
// that carry an operation and a category are returned as *Error. Errors
// returned by custom resolve hooks are propagated unchanged.
package schemaorg
