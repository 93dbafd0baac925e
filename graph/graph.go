// Package graph assembles resolved nodes into a Schema.org JSON-LD graph.
//
// A Builder collects node resolvers, resolves them against one
// resolver.Client, merges nodes that share an @id, adds the image nodes the
// resolvers expanded and finally lets every node link itself to its
// siblings.
package graph

import (
	"strings"

	"github.com/zero-day-ai/schemaorg/node"
)

// SchemaContext is the JSON-LD context of every document.
const SchemaContext = "https://schema.org"

// Graph is an assembled set of resolved nodes. Node ids are unique; nodes
// without an id are kept in insertion order alongside the others.
type Graph struct {
	nodes []node.Node
	index map[string]int
}

func newGraph() *Graph {
	return &Graph{index: make(map[string]int)}
}

// Nodes returns the graph nodes in insertion order.
func (g *Graph) Nodes() []node.Node {
	out := make([]node.Node, len(g.nodes))
	copy(out, g.nodes)
	return out
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// FindNode returns the node with the given id. A lookup starting with '#'
// also matches the first node whose id ends with that fragment, so
// FindNode("#webpage") finds "https://example.com/blog#webpage".
//
// The returned node is the one held by the graph; changes to it are visible
// in the document.
func (g *Graph) FindNode(id string) (node.Node, bool) {
	if id == "" {
		return nil, false
	}
	if i, ok := g.index[id]; ok {
		return g.nodes[i], true
	}
	if !strings.HasPrefix(id, "#") {
		return nil, false
	}
	for _, n := range g.nodes {
		if strings.HasSuffix(n.ID(), id) {
			return n, true
		}
	}
	return nil, false
}

// Document returns the graph as a JSON-LD document:
//
//	{"@context": "https://schema.org", "@graph": [...]}
func (g *Graph) Document() node.Node {
	items := make([]any, len(g.nodes))
	for i, n := range g.nodes {
		items[i] = n
	}
	return node.Node{
		node.KeyContext: SchemaContext,
		node.KeyGraph:   items,
	}
}

// put stores n, returning its position and whether a node with the same id
// was already present. Existing nodes are replaced or patched per patch.
func (g *Graph) put(n node.Node, patch bool) (int, bool) {
	id := n.ID()
	if id == "" {
		g.nodes = append(g.nodes, n)
		return len(g.nodes) - 1, false
	}
	if i, ok := g.index[id]; ok {
		if patch {
			g.nodes[i] = node.Merge(n, g.nodes[i])
		} else {
			g.nodes[i] = n
		}
		return i, true
	}
	g.index[id] = len(g.nodes)
	g.nodes = append(g.nodes, n)
	return len(g.nodes) - 1, false
}
