package nodes

import (
	"fmt"

	"github.com/zero-day-ai/schemaorg"
	"github.com/zero-day-ai/schemaorg/node"
	"github.com/zero-day-ai/schemaorg/resolver"
	"github.com/zero-day-ai/schemaorg/urlutil"
)

// PersonDefinition resolves a Person node. A person without an id gets one
// derived from its name (or url), so the same author declared on several
// pages maps to a single graph node.
var PersonDefinition = resolver.Definition{
	Defaults: node.Node{node.KeyType: TypePerson},
	Required: []string{"name"},
	Resolve: func(n node.Node, c *resolver.Client) (node.Node, error) {
		n[node.KeyType] = node.ResolveType(n[node.KeyType], TypePerson)
		return completePerson(n, c)
	},
}

// Person creates a resolver for a Person node.
func Person(input node.Node, opts ...resolver.Option) *resolver.NodeResolver {
	return resolver.New(input, PersonDefinition, opts...)
}

// resolvePerson turns an author value into an inline Person node. Strings
// are taken as the person's name.
func resolvePerson(v any, c *resolver.Client) (any, error) {
	var p node.Node
	switch t := v.(type) {
	case string:
		p = node.Node{"name": t}
	default:
		n, ok := node.AsNode(v)
		if !ok {
			return nil, fmt.Errorf("person of type %T: %w", v, schemaorg.ErrUnsupportedValue)
		}
		p = n.Clone()
	}

	p, err := completePerson(p, c)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func completePerson(p node.Node, c *resolver.Client) (node.Node, error) {
	host := c.CanonicalHost()
	node.SetIfEmpty(p, node.KeyType, TypePerson)
	urlutil.RewriteField(p, "url", host)

	if p.ID() != "" {
		urlutil.RewriteID(p, host)
		return p, nil
	}
	generated, err := c.IDs().Generate(host, TypePerson, p)
	if err != nil {
		return nil, fmt.Errorf("person id: %w", err)
	}
	p[node.KeyID] = generated
	return p, nil
}
